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
	"iter"
	"time"

	"github.com/qbs-nt/timeline-plus/calendar"
	"github.com/qbs-nt/timeline-plus/diag"
	hiddendates "github.com/qbs-nt/timeline-plus/hidden_dates"
)

const (
	// DefaultMaxTicks bounds the ticks produced by a single Stepper.
	DefaultMaxTicks = 1000

	// OverflowWarning is the diag key reported when a Stepper is truncated.
	OverflowWarning = "timestep.overflow"
)

// Tick is one instant produced by a Stepper.
type Tick struct {
	Time  time.Time
	Major bool
	Scale Scale
	// ClassName holds space-separated semantic classes for the tick.
	ClassName string
}

// Options configures a Stepper.
type Options struct {
	Calendar *calendar.Calendar
	Format   FormatTable
	// If non-nil, Scale fixes the stepper's scale instead of deriving it from
	// the minimum step.
	Scale         *Scale
	ShowWeekScale bool
	// ShowMajorLabels makes week scales inject a tick on the first day of
	// every month, where major labels are anchored.
	ShowMajorLabels bool
	Hidden          hiddendates.Set
	// Now is used for the 'today' and 'current' classes.
	Now      func() time.Time
	Warner   diag.Warner
	MaxTicks int
}

// Stepper produces ticks between a start and an end instant.  A Stepper is
// single-use: create one per redraw.
type Stepper struct {
	opts       Options
	cal        *calendar.Calendar
	start, end time.Time
	scale      Scale

	current                                time.Time
	switchedDay, switchedMonth, switchedYr bool
	used                                   bool
}

// New returns a new Stepper over [start, end] whose step is at least
// minimumStep milliseconds, unless opts.Scale fixes the scale.
func New(start, end time.Time, minimumStep float64, opts Options) *Stepper {
	if opts.Calendar == nil {
		opts.Calendar = calendar.New()
	}
	if opts.Format.MinorLabels == nil && opts.Format.MajorLabels == nil {
		opts.Format = DefaultFormat()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Warner == nil {
		opts.Warner = diag.NewOnce(nil)
	}
	if opts.MaxTicks <= 0 {
		opts.MaxTicks = DefaultMaxTicks
	}
	s := &Stepper{
		opts:  opts,
		cal:   opts.Calendar,
		start: start,
		end:   end,
	}
	if opts.Scale != nil && opts.Scale.Validate() == nil {
		s.scale = *opts.Scale
	} else {
		s.scale = SelectScale(minimumStep, opts.ShowWeekScale)
	}
	return s
}

// Scale returns the receiver's scale.
func (s *Stepper) Scale() Scale {
	return s.scale
}

// Ticks returns the receiver's ticks in increasing time order: every tick at
// or before the end, followed by the first tick past the end.  At most
// MaxTicks ticks are produced; if that truncates the sequence, an overflow
// warning is reported.  The sequence can be iterated only once.
func (s *Stepper) Ticks() iter.Seq[Tick] {
	return func(yield func(Tick) bool) {
		if s.used {
			return
		}
		s.used = true
		s.roundToMinor()
		for count := 0; ; count++ {
			if count == s.opts.MaxTicks {
				if !s.current.After(s.end) {
					s.opts.Warner.Warnf(OverflowWarning,
						"something is wrong with the time scale (%s over %v - %v); limited drawing of grid lines to %d lines",
						s.scale, s.start, s.end, s.opts.MaxTicks)
				}
				return
			}
			if !yield(s.tick()) {
				return
			}
			if s.current.After(s.end) {
				return
			}
			s.next()
		}
	}
}

func (s *Stepper) tick() Tick {
	return Tick{
		Time:      s.current,
		Major:     s.isMajor(),
		Scale:     s.scale,
		ClassName: s.className(),
	}
}

// roundToMinor sets the current tick to the start, rounded down to the scale.
func (s *Stepper) roundToMinor() {
	cal, step := s.cal, s.scale.Step
	cur := cal.StartOf(s.start, s.scale.Unit)
	if step == 1 {
		s.current = cur
		return
	}
	prior := cur
	switch s.scale.Unit {
	case calendar.Millisecond:
		cur = cal.Add(cur, -((cur.Nanosecond() / int(time.Millisecond)) % step), calendar.Millisecond)
	case calendar.Second:
		cur = cal.Add(cur, -(cur.Second() % step), calendar.Second)
	case calendar.Minute:
		cur = cal.Add(cur, -(cur.Minute() % step), calendar.Minute)
	case calendar.Hour:
		cur = cal.Add(cur, -(cur.Hour() % step), calendar.Hour)
	case calendar.Day:
		cur = cal.Add(cur, -((cur.Day() - 1) % step), calendar.Day)
	case calendar.Week:
		cur = cal.Add(cur, -(cal.Week(cur) % step), calendar.Week)
	case calendar.Month:
		cur = cal.Add(cur, -((int(cur.Month()) - 1) % step), calendar.Month)
	case calendar.Quarter:
		cur = cal.Add(cur, -((cal.Quarter(cur) - 1) % step), calendar.Quarter)
	case calendar.Year:
		cur = cal.Add(cur, -(((cur.Year() % step) + step) % step), calendar.Year)
	}
	if !cur.Equal(prior) {
		cur = s.opts.Hidden.SnapAway(cur, -1)
	}
	s.current = cur
}

// next advances the current tick by one step.
func (s *Stepper) next() {
	cal, step, unit := s.cal, s.scale.Step, s.scale.Unit
	prev := s.current
	cur := cal.In(s.current)
	switch unit {
	case calendar.Hour:
		cur = cal.In(cal.Add(cur, step, calendar.Hour))
		// Realign to multiples of the step after a daylight-saving change.
		if offset := cur.Hour() % step; offset != 0 {
			if cur.Month() < time.July {
				cur = cal.Add(cur, -offset, calendar.Hour)
			} else {
				cur = cal.Add(cur, step-offset, calendar.Hour)
			}
		}
	case calendar.Week:
		cur = s.nextWeek(cur)
	default:
		cur = cal.Add(cur, step, unit)
	}
	if step != 1 {
		cur = s.realign(cur)
	}
	if !cur.After(prev) {
		cur = s.end
	}
	s.current = cur
	s.switchedDay, s.switchedMonth, s.switchedYr = false, false, false
	s.stepOverHidden(prev)
}

// nextWeek advances a week-scale tick.  When major labels are shown, a tick is
// injected on the first day of each month; the following tick returns to the
// week cycle.
func (s *Stepper) nextWeek(cur time.Time) time.Time {
	cal, step := s.cal, s.scale.Step
	if cal.Weekday(cur) != 0 {
		return cal.Add(cal.StartOf(cur, calendar.Week), step, calendar.Week)
	}
	next := cal.Add(cur, step, calendar.Week)
	if !s.opts.ShowMajorLabels {
		return next
	}
	if following := cal.Add(cur, 1, calendar.Week); following.Month() == cur.Month() {
		return next
	}
	return cal.Date(next.Year(), next.Month(), 1, next.Hour(), next.Minute(), next.Second(), next.Nanosecond())
}

// realign snaps a multi-step tick back onto the start of the next coarser
// unit once it has crossed that boundary.
func (s *Stepper) realign(cur time.Time) time.Time {
	cal, step := s.cal, s.scale.Step
	y, m, d := cur.Date()
	h, min, sec, ns := cur.Hour(), cur.Minute(), cur.Second(), cur.Nanosecond()
	switch s.scale.Unit {
	case calendar.Millisecond:
		if ms := ns / int(time.Millisecond); ms > 0 && ms < step {
			return cal.Date(y, m, d, h, min, sec, 0)
		}
	case calendar.Second:
		if sec > 0 && sec < step {
			return cal.Date(y, m, d, h, min, 0, 0)
		}
	case calendar.Minute:
		if min > 0 && min < step {
			return cal.Date(y, m, d, h, 0, 0, 0)
		}
	case calendar.Hour:
		if h > 0 && h < step {
			return cal.Date(y, m, d, 0, 0, 0, 0)
		}
	case calendar.Day:
		if d < step+1 {
			return cal.Date(y, m, 1, h, min, sec, ns)
		}
	case calendar.Week:
		if week := cal.Week(cur); week < step {
			return cal.Add(cur, 1-week, calendar.Week)
		}
	case calendar.Month:
		if int(m)-1 < step {
			return cal.Date(y, time.January, d, h, min, sec, ns)
		}
	case calendar.Quarter:
		if cal.Quarter(cur)-1 < step {
			return cal.Date(y, time.Month((int(m)-1)%3+1), d, h, min, sec, ns)
		}
	}
	return cur
}

// stepOverHidden moves a tick that landed inside a hidden range to the end of
// that range, recording which calendar boundaries were skipped.
func (s *Stepper) stepOverHidden(prev time.Time) {
	r, ok := s.opts.Hidden.Containing(s.current)
	if !ok || !s.current.Before(s.end) || s.current.Equal(prev) {
		return
	}
	from, to := s.cal.In(prev), s.cal.In(r.End)
	switch {
	case from.Year() != to.Year():
		s.switchedYr = true
	case from.Month() != to.Month():
		s.switchedMonth = true
	case from.YearDay() != to.YearDay():
		s.switchedDay = true
	}
	s.current = r.End
}

// isMajor returns true if the current tick starts a unit coarser than the
// scale's, or if a hidden range was skipped across such a boundary.
func (s *Stepper) isMajor() bool {
	unit := s.scale.Unit
	switch {
	case s.switchedYr:
		return true
	case s.switchedMonth:
		return unit <= calendar.Week
	case s.switchedDay:
		return unit <= calendar.Hour
	}
	cur := s.cal.In(s.current)
	switch unit {
	case calendar.Millisecond:
		return cur.Nanosecond()/int(time.Millisecond) == 0
	case calendar.Second:
		return cur.Second() == 0
	case calendar.Minute:
		return cur.Hour() == 0 && cur.Minute() == 0
	case calendar.Hour:
		return cur.Hour() == 0
	case calendar.Day, calendar.Week:
		return cur.Day() == 1
	case calendar.Month, calendar.Quarter:
		return cur.Month() == time.January
	}
	return false
}

// LabelMinor returns the minor label of t on the receiver's scale.
func (s *Stepper) LabelMinor(t time.Time) string {
	layout := s.opts.Format.MinorLabels[s.scale.Unit]
	if s.scale.Unit == calendar.Week {
		if local := s.cal.In(t); local.Day() == 1 && s.cal.Week(local) != 1 {
			return ""
		}
	}
	if layout == "" {
		return ""
	}
	return s.cal.Format(t, layout)
}

// LabelMajor returns the major label of t on the receiver's scale.
func (s *Stepper) LabelMajor(t time.Time) string {
	layout := s.opts.Format.MajorLabels[s.scale.Unit]
	if layout == "" {
		return ""
	}
	return s.cal.Format(t, layout)
}
