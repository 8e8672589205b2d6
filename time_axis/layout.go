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
	"unicode/utf8"

	"github.com/qbs-nt/timeline-plus/calendar"
	charmetrics "github.com/qbs-nt/timeline-plus/char_metrics"
	"github.com/qbs-nt/timeline-plus/coordinate"
	"github.com/qbs-nt/timeline-plus/diag"
	timestep "github.com/qbs-nt/timeline-plus/time_step"
)

// LineKind is the kind of a vertical grid line.
type LineKind int

// Grid line kinds.
const (
	MinorLine LineKind = iota
	MajorLine
	SubstepLine
)

func (lk LineKind) String() string {
	switch lk {
	case MinorLine:
		return "minor"
	case MajorLine:
		return "major"
	}
	return "substep"
}

// Line is a vertical grid line at X, shading a cell Width pixels wide.
type Line struct {
	Kind      LineKind
	X, Width  float64
	ClassName string
}

// Label is a text label whose leading edge is at X.  A zero Width leaves the
// label unconstrained.
type Label struct {
	X, Width  float64
	Text      string
	ClassName string
}

// Frame is the layout of one redraw.  Lines are in paint order, substep
// lines following the grid line of their cell.
type Frame struct {
	Scale       timestep.Scale
	Lines       []Line
	MinorLabels []Label
	MajorLabels []Label
	// Cells is the number of tick pairs laid out.
	Cells int
}

// LayoutSettings holds the inputs of Layout other than ticks and mapping.
type LayoutSettings struct {
	// ShowMinorLabels and ShowMajorLabels are the effective flags, already
	// cleared if the axis has no labels.
	ShowMinorLabels bool
	ShowMajorLabels bool
	Substeps        Substeps
	AbsorptionRatio float64
	// MajorCharWidth sizes the synthetic left-edge label.
	MajorCharWidth float64
	Calendar       *calendar.Calendar
	Warner         diag.Warner
}

// Layout lays out the ticks of stepper along mapper.  Every pair of
// consecutive ticks forms a cell.  A cell starting on a major tick gets a
// major line and, if its position is positive, a major label.  Otherwise it
// gets a minor line unless it is narrower than AbsorptionRatio times the
// previous cell, in which case the previous line is widened to cover it.
// Week cells are never absorbed.  Minor labels accompany every unabsorbed
// cell.  If the first major label is missing, or leaves room for a label at
// the left edge, a major label for the instant at pixel 0 is added.
func Layout(stepper *timestep.Stepper, mapper coordinate.Mapper, settings LayoutSettings) Frame {
	if settings.Calendar == nil {
		settings.Calendar = calendar.New()
	}
	l := &layout{
		stepper:  stepper,
		mapper:   mapper,
		settings: settings,
		frame: Frame{
			Scale: stepper.Scale(),
		},
		lastLine: -1,
	}
	l.run()
	return l.frame
}

type layout struct {
	stepper  *timestep.Stepper
	mapper   coordinate.Mapper
	settings LayoutSettings
	frame    Frame
	// The index of the last minor or major line in frame.Lines.
	lastLine int
}

func (l *layout) run() {
	s := l.settings
	var (
		current, next    timestep.Tick
		x, xNext         float64
		width, prevWidth float64
		started          bool
		haveFirstMajor   bool
		xFirstMajorLabel float64
		leftClassName    string
	)
	weekScale := l.frame.Scale.Unit == calendar.Week
	for tick := range l.stepper.Ticks() {
		if !started {
			started = true
			next, xNext = tick, l.mapper.ToScreen(tick.Time)
			leftClassName = tick.ClassName
			continue
		}
		current, x = next, xNext
		next, xNext = tick, l.mapper.ToScreen(tick.Time)
		l.frame.Cells++
		if x <= 0 {
			leftClassName = current.ClassName
		}

		prevWidth = width
		width = xNext - x
		showMinorGrid := weekScale || width >= prevWidth*s.AbsorptionRatio

		if s.ShowMinorLabels && showMinorGrid {
			l.frame.MinorLabels = append(l.frame.MinorLabels, Label{
				X:         x,
				Width:     width,
				Text:      l.stepper.LabelMinor(current.Time),
				ClassName: current.ClassName,
			})
		}

		switch {
		case current.Major && s.ShowMajorLabels:
			if x > 0 {
				if !haveFirstMajor {
					haveFirstMajor = true
					xFirstMajorLabel = x
				}
				l.frame.MajorLabels = append(l.frame.MajorLabels, Label{
					X:         x,
					Text:      l.stepper.LabelMajor(current.Time),
					ClassName: current.ClassName,
				})
			}
			l.addLine(MajorLine, x, width, current.ClassName)
			if s.Substeps.Visible {
				l.substeps(current, next, x)
			}
		case showMinorGrid:
			l.addLine(MinorLine, x, width, current.ClassName)
			if s.Substeps.Visible {
				l.substeps(current, next, x)
			}
		case l.lastLine >= 0:
			l.frame.Lines[l.lastLine].Width += width
		}
	}

	if s.ShowMajorLabels && started {
		leftText := l.stepper.LabelMajor(l.mapper.ToTime(0))
		charWidth := s.MajorCharWidth
		if charWidth == 0 {
			charWidth = charmetrics.FallbackCharWidth
		}
		widthText := float64(utf8.RuneCountInString(leftText))*charWidth + 10
		if !haveFirstMajor || widthText < xFirstMajorLabel {
			l.frame.MajorLabels = append(l.frame.MajorLabels, Label{
				X:         0,
				Text:      leftText,
				ClassName: leftClassName,
			})
		}
	}
}

func (l *layout) addLine(kind LineKind, x, width float64, className string) {
	l.frame.Lines = append(l.frame.Lines, Line{
		Kind:      kind,
		X:         x,
		Width:     width,
		ClassName: className,
	})
	l.lastLine = len(l.frame.Lines) - 1
}

// substeps adds unlabeled lines at the subscale of current between current
// and next.  Nothing is added if the first substep would lie within the
// minimum substep width of x.
func (l *layout) substeps(current, next timestep.Tick, x float64) {
	sub, ok := current.Scale.Subscale(next.Time.Sub(current.Time))
	if !ok {
		if l.settings.Warner != nil {
			l.settings.Warner.Logf("could not derive subscale from step %s", current.Scale)
		}
		return
	}
	cal := l.settings.Calendar
	for t, idx := cal.Add(current.Time, sub.Step, sub.Unit), 0; t.Before(next.Time); t, idx = cal.Add(t, sub.Step, sub.Unit), idx+1 {
		subX := l.mapper.ToScreen(t)
		if idx == 0 && subX-x < l.settings.Substeps.MinWidth {
			return
		}
		l.frame.Lines = append(l.frame.Lines, Line{
			Kind:      SubstepLine,
			X:         subX,
			Width:     1,
			ClassName: current.ClassName,
		})
	}
}
