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

// Package timestep implements the scale stepper of a time axis: given a
// visible range and a minimum step, it picks a readable calendar scale and
// produces the sequence of ticks along it.
package timestep

import (
	"fmt"
	"time"

	"github.com/qbs-nt/timeline-plus/calendar"
)

// Scale is a calendar unit and an integer multiplier, e.g. every 10 years.
type Scale struct {
	Unit calendar.Unit `json:"scale" yaml:"scale"`
	Step int           `json:"step" yaml:"step"`
}

// NominalMillis returns the nominal length of one step of the receiver in
// milliseconds.
func (s Scale) NominalMillis() float64 {
	return float64(s.Step) * s.Unit.NominalMillis()
}

func (s Scale) String() string {
	if s.Step == 1 {
		return s.Unit.String()
	}
	return fmt.Sprintf("%d %ss", s.Step, s.Unit)
}

// Validate returns an error if the receiver cannot be stepped.
func (s Scale) Validate() error {
	if s.Step < 1 {
		return fmt.Errorf("scale step must be positive, got %d", s.Step)
	}
	if s.Unit < calendar.Millisecond || s.Unit > calendar.Year {
		return fmt.Errorf("unknown scale unit %d", int(s.Unit))
	}
	return nil
}

// candidates lists the automatically selectable scales, coarsest first.
var candidates = []Scale{
	{calendar.Year, 1000},
	{calendar.Year, 500},
	{calendar.Year, 100},
	{calendar.Year, 50},
	{calendar.Year, 10},
	{calendar.Year, 5},
	{calendar.Year, 2},
	{calendar.Year, 1},
	{calendar.Quarter, 1},
	{calendar.Month, 1},
	{calendar.Week, 1},
	{calendar.Day, 5},
	{calendar.Day, 2},
	{calendar.Day, 1},
	{calendar.Hour, 4},
	{calendar.Hour, 1},
	{calendar.Minute, 15},
	{calendar.Minute, 10},
	{calendar.Minute, 5},
	{calendar.Minute, 1},
	{calendar.Second, 15},
	{calendar.Second, 10},
	{calendar.Second, 5},
	{calendar.Second, 1},
	{calendar.Millisecond, 200},
	{calendar.Millisecond, 100},
	{calendar.Millisecond, 50},
	{calendar.Millisecond, 10},
	{calendar.Millisecond, 5},
	{calendar.Millisecond, 1},
}

// SelectScale returns the finest candidate scale whose nominal step is at
// least minimumStep milliseconds.  Week scales are only considered if
// showWeekScale is set.  If even the coarsest scale is too fine, it is
// returned anyway.
func SelectScale(minimumStep float64, showWeekScale bool) Scale {
	ret := candidates[0]
	for _, c := range candidates {
		if c.Unit == calendar.Week && !showWeekScale {
			continue
		}
		if c.NominalMillis() >= minimumStep {
			ret = c
		}
	}
	return ret
}

// yearSubsteps maps multi-year steps to the year step of their substeps.
var yearSubsteps = map[int]int{
	1000: 500,
	500:  100,
	100:  50,
	50:   10,
}

// Subscale returns the scale of the unlabeled substep lines drawn within one
// step of the receiver, given the step's actual duration.  Multi-step scales
// are subdivided in their own unit; single steps in the next finer unit.  It
// returns false if no finer scale exists.
func (s Scale) Subscale(stepDuration time.Duration) (Scale, bool) {
	if s.Step > 1 {
		switch s.Unit {
		case calendar.Year:
			if sub, ok := yearSubsteps[s.Step]; ok {
				return Scale{calendar.Year, sub}, true
			}
			return Scale{calendar.Year, 1}, true
		case calendar.Millisecond:
			return millisecondSubscale(stepDuration), true
		}
		return Scale{s.Unit, 1}, true
	}
	finer, ok := s.Unit.Finer()
	if !ok {
		return Scale{}, false
	}
	if finer == calendar.Millisecond {
		return millisecondSubscale(stepDuration), true
	}
	return Scale{finer, 1}, true
}

func millisecondSubscale(stepDuration time.Duration) Scale {
	if stepDuration > 100*time.Millisecond {
		return Scale{calendar.Millisecond, 100}
	}
	return Scale{calendar.Millisecond, 10}
}
