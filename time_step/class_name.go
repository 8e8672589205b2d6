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

package timestep

import (
	"fmt"
	"strings"
	"time"

	"github.com/qbs-nt/timeline-plus/calendar"
)

const classPrefix = "timeline-"

// className returns the semantic classes of the current tick.
func (s *Stepper) className() string {
	cal, step := s.cal, s.scale.Step
	cur := cal.In(s.current)
	now := cal.In(s.opts.Now())
	var classes []string
	add := func(format string, args ...any) {
		classes = append(classes, classPrefix+fmt.Sprintf(format, args...))
	}
	even := func(value int) {
		if (value/step)%2 == 0 {
			add("even")
		} else {
			add("odd")
		}
	}
	today := func() {
		day := cal.StartOf(cur, calendar.Day)
		switch {
		case day.Equal(cal.StartOf(now, calendar.Day)):
			add("today")
		case day.Equal(cal.StartOf(cal.Add(now, 1, calendar.Day), calendar.Day)):
			add("tomorrow")
		case day.Equal(cal.StartOf(cal.Add(now, -1, calendar.Day), calendar.Day)):
			add("yesterday")
		}
	}
	current := func(unit calendar.Unit) {
		if cal.StartOf(cur, unit).Equal(cal.StartOf(now, unit)) {
			add("current-%s", unit)
		}
	}
	lower := func(v fmt.Stringer) string {
		return strings.ToLower(v.String())
	}
	switch s.scale.Unit {
	case calendar.Millisecond:
		today()
		even(cur.Nanosecond() / int(time.Millisecond))
	case calendar.Second:
		today()
		even(cur.Second())
	case calendar.Minute:
		today()
		even(cur.Minute())
	case calendar.Hour:
		add("h%d", cur.Hour())
		if step == 4 {
			add("h%d-h%d", cur.Hour(), cur.Hour()+4)
		}
		today()
		even(cur.Hour())
	case calendar.Day:
		add("day%d", cur.Day())
		add("%s", lower(cur.Month()))
		add("%s", lower(cur.Weekday()))
		today()
		current(calendar.Month)
		even(cur.Day() - 1)
	case calendar.Week:
		add("week%d", cal.Week(cur))
		current(calendar.Week)
		even(cal.Week(cur))
	case calendar.Month:
		add("%s", lower(cur.Month()))
		current(calendar.Month)
		even(int(cur.Month()) - 1)
	case calendar.Quarter:
		add("q%d", cal.Quarter(cur))
		current(calendar.Quarter)
		even(cal.Quarter(cur) - 1)
	case calendar.Year:
		add("year%d", cur.Year())
		current(calendar.Year)
		even(cur.Year())
	}
	return strings.Join(classes, " ")
}
