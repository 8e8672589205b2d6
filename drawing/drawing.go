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

// Package drawing flattens the scene of a Timeline into absolutely
// positioned lines and texts, for renderers that do not lay out styled nodes
// themselves.
package drawing

import (
	"github.com/qbs-nt/timeline-plus/container"
	"github.com/qbs-nt/timeline-plus/scene"
	timeaxis "github.com/qbs-nt/timeline-plus/time_axis"
)

// Kind classifies grid lines.
type Kind int

// Grid line kinds.
const (
	Minor Kind = iota
	Major
	Substep
)

// Line is a vertical grid line at X spanning [Y1, Y2).
type Line struct {
	Kind   Kind
	X      float64
	Y1, Y2 float64
	Class  string
}

// Text is a label whose top-leading corner lies at (X, Y).  If End is true,
// the text extends leftwards from X.  A positive Width bounds the text.
type Text struct {
	Major bool
	X, Y  float64
	End   bool
	Width float64
	Text  string
	Class string
}

// Drawing is the flattened content of a Timeline.
type Drawing struct {
	Width, Height float64
	Lines         []Line
	Texts         []Text
}

// Flatten returns the lines and texts drawn in tl's anchors.  Hidden nodes and
// their subtrees are skipped.
func Flatten(tl *container.Timeline) Drawing {
	settings := tl.Settings()
	d := Drawing{
		Width:  settings.WidthPx,
		Height: settings.HeightPx,
	}
	for _, panel := range []struct {
		anchor  timeaxis.Anchor
		offsetY float64
	}{
		{timeaxis.AnchorBackgroundVertical, 0},
		{timeaxis.AnchorTop, 0},
		{timeaxis.AnchorBottom, settings.HeightPx - settings.BottomHeightPx},
	} {
		tl.Anchor(panel.anchor).Walk(func(node *scene.Node, depth int) bool {
			if node.Hidden {
				return false
			}
			switch {
			case node.HasClass("timeline-grid"):
				d.addLine(node, panel.offsetY)
			case node.HasClass("timeline-text"):
				d.addText(node, panel.offsetY)
			}
			return true
		})
	}
	return d
}

// x returns the leading-edge offset of node, converted to a left offset, and
// whether the node was placed from the right.
func (d *Drawing) x(node *scene.Node) (float64, bool) {
	if right, ok := node.Style.PxOf("right"); ok {
		return d.Width - right, true
	}
	left, _ := node.Style.PxOf("left")
	return left, false
}

func (d *Drawing) addLine(node *scene.Node, offsetY float64) {
	kind := Minor
	switch {
	case node.HasClass("timeline-major"):
		kind = Major
	case node.HasClass("timeline-substep"):
		kind = Substep
	}
	// Lines are drawn along the leading border of their node, one pixel wide.
	x, fromRight := d.x(node)
	if fromRight {
		x -= 0.5
	} else {
		x += 0.5
	}
	top, _ := node.Style.PxOf("top")
	height, _ := node.Style.PxOf("height")
	d.Lines = append(d.Lines, Line{
		Kind:  kind,
		X:     x,
		Y1:    offsetY + top,
		Y2:    offsetY + top + height,
		Class: node.Class,
	})
}

func (d *Drawing) addText(node *scene.Node, offsetY float64) {
	x, fromRight := d.x(node)
	top, _ := node.Style.PxOf("top")
	width, _ := node.Style.PxOf("width")
	d.Texts = append(d.Texts, Text{
		Major: node.HasClass("timeline-major"),
		X:     x,
		Y:     offsetY + top,
		End:   fromRight,
		Width: width,
		Text:  node.Text,
		Class: node.Class,
	})
}
