/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

package timeaxis

import (
	elementpool "github.com/qbs-nt/timeline-plus/element_pool"
	"github.com/qbs-nt/timeline-plus/scene"
)

// createElement creates a node for the pool: labels in the foreground, lines
// in the background.
func (a *Axis) createElement(kind elementpool.Kind) *scene.Node {
	node := scene.New("div")
	switch kind {
	case elementpool.MajorLabel, elementpool.MinorLabel:
		return a.foreground.AppendChild(node)
	}
	return a.background.AppendChild(node)
}

func (a *Axis) acquire(kind elementpool.Kind) *scene.Node {
	e := a.pool.Acquire(kind)
	if err := a.pool.Activate(e); err != nil {
		a.logger.Printf("time axis element recycling: %s", err)
	}
	return e.Node
}

// setX places node at x from the leading edge.
func (a *Axis) setX(node *scene.Node, x float64) {
	if a.opts.RTL {
		node.Style.Unset("left").WithPx("right", x)
	} else {
		node.Style.Unset("right").WithPx("left", x)
	}
}

func (a *Axis) verticalClass() string {
	if a.opts.RTL {
		return "timeline-grid timeline-vertical-rtl"
	}
	return "timeline-grid timeline-vertical"
}

// paint materializes frame, reusing the nodes of the previous frame.
func (a *Axis) paint(frame Frame, geometry Geometry) {
	a.pool.BeginFrame()
	for _, label := range frame.MinorLabels {
		a.paintMinorText(label)
	}
	for _, label := range frame.MajorLabels {
		a.paintMajorText(label)
	}
	for _, line := range frame.Lines {
		switch line.Kind {
		case MinorLine:
			a.paintMinorLine(line, geometry)
		case MajorLine:
			a.paintMajorLine(line, geometry)
		case SubstepLine:
			a.paintSubstepLine(line, geometry)
		}
	}
	a.pool.ReleaseUnused()
}

func (a *Axis) paintMinorText(label Label) {
	node := a.acquire(elementpool.MinorLabel)
	node.Text = label.Text
	node.Class = "timeline-text timeline-minor " + label.ClassName
	top := 0.0
	if a.opts.Orientation == OrientationTop {
		top = a.props.MajorLabelHeight
	}
	node.Style.WithPx("top", top).WithPx("width", label.Width)
	a.setX(node, label.X)
}

func (a *Axis) paintMajorText(label Label) {
	node := a.acquire(elementpool.MajorLabel)
	node.Text = label.Text
	node.Class = "timeline-text timeline-major " + label.ClassName
	top := a.props.MinorLabelHeight
	if a.opts.Orientation == OrientationTop {
		top = 0
	}
	node.Style.WithPx("top", top)
	a.setX(node, label.X)
}

func (a *Axis) paintMinorLine(line Line, geometry Geometry) {
	node := a.acquire(elementpool.Line)
	node.Text = ""
	node.Class = a.verticalClass() + " timeline-minor " + line.ClassName
	top := geometry.TopHeight
	if a.opts.Orientation == OrientationTop {
		top = a.props.MajorLabelHeight
	}
	node.Style.
		WithPx("top", top).
		WithPx("height", a.props.MinorLineHeight).
		WithPx("width", line.Width)
	a.setX(node, line.X-a.props.MinorLineWidth/2)
}

func (a *Axis) paintMajorLine(line Line, geometry Geometry) {
	node := a.acquire(elementpool.Line)
	node.Text = ""
	node.Class = a.verticalClass() + " timeline-major " + line.ClassName
	top := geometry.TopHeight
	if a.opts.Orientation == OrientationTop {
		top = 0
	}
	node.Style.
		WithPx("top", top).
		WithPx("height", a.props.MajorLineHeight).
		WithPx("width", line.Width)
	a.setX(node, line.X-a.props.MajorLineWidth/2)
}

func (a *Axis) paintSubstepLine(line Line, geometry Geometry) {
	node := a.acquire(elementpool.SubstepLine)
	node.Text = ""
	node.Class = a.verticalClass() + " timeline-substep " + line.ClassName
	top := geometry.TopHeight - a.props.MinorLabelHeight
	if a.opts.Orientation == OrientationTop {
		top = a.props.MajorLabelHeight + a.props.MinorLabelHeight
	}
	node.Style.
		WithPx("top", top).
		WithPx("height", a.props.MinorLineHeight-a.props.MinorLabelHeight).
		WithPx("width", line.Width)
	a.setX(node, line.X-line.Width/2)
}
