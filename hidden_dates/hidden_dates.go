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

// Package hiddendates describes time ranges that are excluded from a
// displayed timeline, and computes how much of a span they cover.
package hiddendates

import (
	"sort"
	"time"

	"github.com/qbs-nt/timeline-plus/calendar"
)

// Range is a hidden interval [Start, End).
type Range struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// Contains returns true if t lies within the receiver.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Set is an ordered list of hidden ranges.
type Set []Range

// New returns a Set holding the provided ranges ordered by start.  Empty and
// inverted ranges are dropped.
func New(ranges ...Range) Set {
	ret := make(Set, 0, len(ranges))
	for _, r := range ranges {
		if r.End.After(r.Start) {
			ret = append(ret, r)
		}
	}
	sort.Slice(ret, func(a, b int) bool {
		return ret[a].Start.Before(ret[b].Start)
	})
	return ret
}

// Containing returns the hidden range containing t, if any.
func (s Set) Containing(t time.Time) (Range, bool) {
	for _, r := range s {
		if r.Contains(t) {
			return r, true
		}
	}
	return Range{}, false
}

// Within returns how many milliseconds of [a, b) are hidden.
func (s Set) Within(a, b time.Time) float64 {
	var total float64
	for _, r := range s {
		start, end := r.Start, r.End
		if start.Before(a) {
			start = a
		}
		if end.After(b) {
			end = b
		}
		if end.After(start) {
			total += calendar.Millis(start, end)
		}
	}
	return total
}

// SnapAway moves t out of any hidden range containing it: to the range's end
// if direction is positive, or to just before its start otherwise.
func (s Set) SnapAway(t time.Time, direction int) time.Time {
	r, ok := s.Containing(t)
	if !ok {
		return t
	}
	if direction > 0 {
		return r.End
	}
	return r.Start.Add(-time.Millisecond)
}
