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

// Package coordinate converts between time instants and horizontal pixel
// offsets along a timeline.
package coordinate

import (
	"time"

	"github.com/qbs-nt/timeline-plus/calendar"
	hiddendates "github.com/qbs-nt/timeline-plus/hidden_dates"
)

// Mapper is implemented by types converting between instants and pixels.
// Implementations must not block.
type Mapper interface {
	ToScreen(t time.Time) float64
	ToTime(x float64) time.Time
}

// Linear maps the visible range [start, end] linearly onto [0, width]
// pixels, with hidden ranges compressed out of the mapping.  Instants before
// start are mapped without hidden-range compression.  Spans are measured in
// milliseconds, so ranges may cover millennia.
type Linear struct {
	start, end time.Time
	width      float64
	hidden     hiddendates.Set
	// The visible milliseconds in [start, end].
	visible float64
}

// NewLinear returns a new Linear mapper.
func NewLinear(start, end time.Time, width float64, hidden hiddendates.Set) *Linear {
	l := &Linear{
		start:  start,
		end:    end,
		width:  width,
		hidden: hidden,
	}
	l.visible = calendar.Millis(start, end) - hidden.Within(start, end)
	return l
}

// Range returns the receiver's visible range.
func (l *Linear) Range() (start, end time.Time) {
	return l.start, l.end
}

// Width returns the receiver's width in pixels.
func (l *Linear) Width() float64 {
	return l.width
}

// ToScreen returns the pixel offset of t.  Instants inside a hidden range map
// to the range's start.
func (l *Linear) ToScreen(t time.Time) float64 {
	if l.visible <= 0 {
		return 0
	}
	if t.Before(l.start) {
		return -l.scale(calendar.Millis(t, l.start))
	}
	return l.scale(calendar.Millis(l.start, t) - l.hidden.Within(l.start, t))
}

// ToTime returns the instant at pixel offset x.
func (l *Linear) ToTime(x float64) time.Time {
	if l.visible <= 0 || l.width == 0 {
		return l.start
	}
	remaining := x * l.visible / l.width
	if remaining <= 0 {
		return calendar.AddMillis(l.start, remaining)
	}
	t := l.start
	for _, r := range l.hidden {
		if !r.End.After(t) {
			continue
		}
		rs := r.Start
		if rs.Before(t) {
			rs = t
		}
		gap := calendar.Millis(t, rs)
		if remaining < gap {
			break
		}
		remaining -= gap
		t = r.End
	}
	return calendar.AddMillis(t, remaining)
}

func (l *Linear) scale(ms float64) float64 {
	return ms * l.width / l.visible
}
