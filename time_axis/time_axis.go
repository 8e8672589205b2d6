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

// Package timeaxis implements a horizontal time axis.
//
// On every Redraw, an Axis measures its label styles, derives the minimum
// step that leaves room for a minor label, lays out the ticks of a
// timestep.Stepper over the container's visible range, and paints the
// resulting Frame into the container's scene, recycling the nodes of the
// previous frame.  An Axis is not safe for concurrent use.
package timeaxis

import (
	"fmt"
	"log"
	"time"

	"github.com/qbs-nt/timeline-plus/calendar"
	charmetrics "github.com/qbs-nt/timeline-plus/char_metrics"
	"github.com/qbs-nt/timeline-plus/diag"
	elementpool "github.com/qbs-nt/timeline-plus/element_pool"
	"github.com/qbs-nt/timeline-plus/scene"
	timestep "github.com/qbs-nt/timeline-plus/time_step"
)

// Style classes of axis nodes.
const (
	ForegroundClass   = "timeline-time-axis timeline-foreground"
	BackgroundClass   = "timeline-time-axis timeline-background"
	MinorMeasureClass = "timeline-text timeline-minor timeline-measure"
	MajorMeasureClass = "timeline-text timeline-major timeline-measure"

	measureWarning = "timeaxis.measure"
)

// Props holds the dimensions computed by the last Redraw.
type Props struct {
	Start, End time.Time
	// MinimumStep is in milliseconds.
	MinimumStep float64

	Width, Height float64

	MinorCharWidth, MinorCharHeight float64
	MajorCharWidth, MajorCharHeight float64

	MinorLabelHeight, MajorLabelHeight float64
	MinorLineHeight, MajorLineHeight   float64
	MinorLineWidth, MajorLineWidth     float64
}

// Axis is a time axis drawn in a Body.
type Axis struct {
	body     Body
	opts     Options
	metrics  *charmetrics.Cache
	pool     *elementpool.Pool
	warnings diag.Warner
	logger   *log.Logger

	foreground, background *scene.Node

	props                         Props
	previousWidth, previousHeight float64
	frame                         Frame
}

// New returns a new Axis drawn in body, measuring labels on surface and
// reporting degraded conditions to warnings.  If logger is nil, the standard
// logger is used.
func New(body Body, surface charmetrics.Surface, warnings diag.Warner, logger *log.Logger, patch *OptionsPatch) (*Axis, error) {
	if logger == nil {
		logger = log.Default()
	}
	if warnings == nil {
		warnings = diag.NewOnce(logger)
	}
	metrics, err := charmetrics.New(surface, 2)
	if err != nil {
		return nil, err
	}
	a := &Axis{
		body:       body,
		opts:       DefaultOptions(),
		metrics:    metrics,
		warnings:   warnings,
		logger:     logger,
		foreground: scene.New("div"),
		background: scene.New("div"),
	}
	a.foreground.Class = ForegroundClass
	a.background.Class = BackgroundClass
	a.pool = elementpool.New(a.createElement)
	if err := a.SetOptions(patch); err != nil {
		return nil, err
	}
	return a, nil
}

// SetOptions merges patch into the receiver's options.  On error, the options
// are unchanged.
func (a *Axis) SetOptions(patch *OptionsPatch) error {
	opts, err := patch.Apply(a.opts)
	if err != nil {
		return fmt.Errorf("invalid time axis options: %w", err)
	}
	a.opts = opts
	return nil
}

// Options returns the receiver's current options.
func (a *Axis) Options() Options {
	return a.opts
}

// Frame returns the layout of the last Redraw.
func (a *Axis) Frame() Frame {
	return a.frame
}

// Props returns the dimensions computed by the last Redraw.
func (a *Axis) Props() Props {
	return a.props
}

// Foreground returns the node holding the receiver's labels.
func (a *Axis) Foreground() *scene.Node {
	return a.foreground
}

// Background returns the node holding the receiver's grid lines.
func (a *Axis) Background() *scene.Node {
	return a.background
}

// Stats returns the receiver's element recycling statistics.
func (a *Axis) Stats() elementpool.Stats {
	return a.pool.Stats()
}

// Redraw repaints the receiver.  It returns true if the receiver was resized
// or moved to a different anchor, in which case the container should lay
// out dependent components again.
func (a *Axis) Redraw() bool {
	if a.body == nil {
		a.logger.Printf("redraw of a destroyed time axis ignored")
		return false
	}
	props := &a.props
	orientation := a.opts.Orientation
	parentAnchor := AnchorBottom
	if orientation == OrientationTop {
		parentAnchor = AnchorTop
	}
	parent := a.body.Anchor(parentAnchor)
	parentChanged := a.foreground.Parent() != parent

	a.calculateCharSize()

	showMinorLabels := a.opts.ShowMinorLabels && orientation != OrientationNone
	showMajorLabels := a.opts.ShowMajorLabels && orientation != OrientationNone

	geometry := a.body.Geometry()
	props.MinorLabelHeight, props.MajorLabelHeight = 0, 0
	if showMinorLabels {
		props.MinorLabelHeight = props.MinorCharHeight
	}
	if showMajorLabels {
		props.MajorLabelHeight = props.MajorCharHeight
	}
	props.Height = props.MinorLabelHeight + props.MajorLabelHeight
	props.Width = geometry.Width
	props.MinorLineHeight = geometry.RootHeight - props.MajorLabelHeight
	if orientation == OrientationTop {
		props.MinorLineHeight -= geometry.BottomHeight
	} else {
		props.MinorLineHeight -= geometry.TopHeight
	}
	props.MinorLineWidth = 1
	props.MajorLineHeight = props.MinorLineHeight + props.MajorLabelHeight
	props.MajorLineWidth = 1

	// Take the axis offline while repainting, and put it back in place.
	foregroundNext := a.foreground.NextSibling()
	backgroundNext := a.background.NextSibling()
	a.foreground.Remove()
	a.background.Remove()

	a.foreground.Style.WithPx("height", props.Height)
	a.frame = a.layout(showMinorLabels, showMajorLabels)
	a.paint(a.frame, geometry)

	reattach(parent, a.foreground, foregroundNext)
	reattach(a.body.Anchor(AnchorBackgroundVertical), a.background, backgroundNext)
	return a.isResized() || parentChanged
}

func reattach(parent, node, next *scene.Node) {
	if next != nil && next.Parent() == parent {
		if _, err := parent.InsertBefore(node, next); err == nil {
			return
		}
	}
	parent.AppendChild(node)
}

// Destroy detaches the receiver and all of its elements from the container.
// The receiver must not be redrawn afterwards.
func (a *Axis) Destroy() {
	a.pool.Destroy()
	a.metrics.Close()
	a.foreground.Remove()
	a.background.Remove()
	a.body = nil
}

func (a *Axis) isResized() bool {
	resized := a.previousWidth != a.props.Width || a.previousHeight != a.props.Height
	a.previousWidth, a.previousHeight = a.props.Width, a.props.Height
	return resized
}

// calculateCharSize measures the label styles.  Sizes are re-read on every
// redraw; on failure the previous sizes are kept.
func (a *Axis) calculateCharSize() {
	m, err := a.metrics.Metrics(MinorMeasureClass, MajorMeasureClass)
	if err != nil {
		a.warnings.Warnf(measureWarning, "failed to measure time axis labels: %s", err)
		return
	}
	a.props.MinorCharWidth, a.props.MinorCharHeight = m.Minor.Width, m.Minor.Height
	a.props.MajorCharWidth, a.props.MajorCharHeight = m.Major.Width, m.Major.Height
}

// layout builds the stepper for the visible range and lays out its ticks.
func (a *Axis) layout(showMinorLabels, showMajorLabels bool) Frame {
	start, end := a.body.Range()
	hidden := a.body.HiddenDates()
	if a.opts.HiddenDates != nil {
		hidden = a.opts.HiddenDates
	}
	charWidth := a.props.MinorCharWidth
	if charWidth == 0 {
		charWidth = charmetrics.FallbackCharWidth
	}
	// The minimum step covers a minor label's width.  ToTime skips hidden
	// ranges, so the span already includes any hidden time under the label.
	timeLabel := a.body.ToTime(charWidth * float64(a.opts.MaxMinorChars))
	minimumStep := calendar.Millis(a.body.ToTime(0), timeLabel)
	a.props.Start, a.props.End, a.props.MinimumStep = start, end, minimumStep

	stepper := timestep.New(start, end, minimumStep, timestep.Options{
		Calendar:        a.opts.Calendar,
		Format:          a.opts.Format,
		Scale:           a.opts.TimeAxis,
		ShowWeekScale:   a.opts.ShowWeekScale,
		ShowMajorLabels: a.opts.ShowMajorLabels,
		Hidden:          hidden,
		Now:             a.opts.Now,
		Warner:          a.warnings,
	})
	return Layout(stepper, a.body, LayoutSettings{
		ShowMinorLabels: showMinorLabels,
		ShowMajorLabels: showMajorLabels,
		Substeps:        a.opts.Substeps,
		AbsorptionRatio: a.opts.AbsorptionRatio,
		MajorCharWidth:  a.props.MajorCharWidth,
		Calendar:        a.opts.Calendar,
		Warner:          a.warnings,
	})
}
