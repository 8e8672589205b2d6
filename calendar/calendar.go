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

package calendar

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// sundayFirstRegions lists regions whose weeks start on Sunday and whose first
// week of the year is the one containing January 1st.  Everything else uses
// ISO-8601 weeks.
var sundayFirstRegions = map[string]bool{
	"US": true, "CA": true, "JP": true, "BR": true, "MX": true,
	"IL": true, "KR": true, "TW": true, "PH": true, "ZA": true,
}

// Calendar performs calendar arithmetic and label formatting in a single
// location and locale.
type Calendar struct {
	loc    *time.Location
	locale language.Tag
	// Weeks start on firstWeekday; the first week of the year is the one
	// containing January doy.
	firstWeekday time.Weekday
	doy          int
}

// Option configures a Calendar.
type Option func(*Calendar)

// WithLocation sets the location in which calendar fields are evaluated.
func WithLocation(loc *time.Location) Option {
	return func(c *Calendar) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithLocale sets the locale, which determines week numbering.
func WithLocale(tag language.Tag) Option {
	return func(c *Calendar) {
		c.locale = tag
	}
}

// New returns a new Calendar.  By default it uses time.Local and the "en"
// locale.
func New(opts ...Option) *Calendar {
	c := &Calendar{
		loc:    time.Local,
		locale: language.English,
	}
	for _, opt := range opts {
		opt(c)
	}
	region, _ := c.locale.Region()
	if sundayFirstRegions[region.String()] {
		c.firstWeekday, c.doy = time.Sunday, 1
	} else {
		c.firstWeekday, c.doy = time.Monday, 4
	}
	return c
}

// ParseLocale parses a BCP 47 locale string, such as "en-GB" or "nl".
func ParseLocale(locale string) (language.Tag, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale '%s': %w", locale, err)
	}
	return tag, nil
}

// Location returns the receiver's location.
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// Locale returns the receiver's locale.
func (c *Calendar) Locale() language.Tag {
	return c.locale
}

// FirstWeekday returns the weekday on which weeks start.
func (c *Calendar) FirstWeekday() time.Weekday {
	return c.firstWeekday
}

// In returns t in the receiver's location.
func (c *Calendar) In(t time.Time) time.Time {
	return t.In(c.loc)
}

// Date returns the instant with the specified wall-clock fields in the
// receiver's location.
func (c *Calendar) Date(year int, month time.Month, day, hour, min, sec, nsec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, nsec, c.loc)
}

// Add returns t advanced by n units.  Month, quarter and year arithmetic clamp
// to the last day of the resulting month; day and week arithmetic keep the
// wall-clock time across daylight-saving changes; finer units add absolute
// time.
func (c *Calendar) Add(t time.Time, n int, u Unit) time.Time {
	t = c.In(t)
	switch u {
	case Millisecond, Second, Minute, Hour:
		return t.Add(time.Duration(n) * u.Nominal())
	case Day:
		return t.AddDate(0, 0, n)
	case Week:
		return t.AddDate(0, 0, 7*n)
	case Month:
		return c.addMonths(t, n)
	case Quarter:
		return c.addMonths(t, 3*n)
	case Year:
		return c.addMonths(t, 12*n)
	}
	return t
}

func (c *Calendar) addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + n
	year := y + floorDiv(total, 12)
	month := time.Month(total - 12*floorDiv(total, 12) + 1)
	if last := DaysIn(year, month); d > last {
		d = last
	}
	return time.Date(year, month, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), c.loc)
}

// StartOf returns the start of the unit containing t.
func (c *Calendar) StartOf(t time.Time, u Unit) time.Time {
	t = c.In(t)
	y, m, d := t.Date()
	switch u {
	case Millisecond:
		return t.Truncate(time.Millisecond)
	case Second:
		return c.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0)
	case Minute:
		return c.Date(y, m, d, t.Hour(), t.Minute(), 0, 0)
	case Hour:
		return c.Date(y, m, d, t.Hour(), 0, 0, 0)
	case Day:
		return c.Date(y, m, d, 0, 0, 0, 0)
	case Week:
		back := (int(t.Weekday()) - int(c.firstWeekday) + 7) % 7
		return c.Date(y, m, d-back, 0, 0, 0, 0)
	case Month:
		return c.Date(y, m, 1, 0, 0, 0, 0)
	case Quarter:
		return c.Date(y, time.Month((int(m)-1)/3*3+1), 1, 0, 0, 0, 0)
	case Year:
		return c.Date(y, time.January, 1, 0, 0, 0, 0)
	}
	return t
}

// Weekday returns the locale weekday of t: 0 for the first day of the week.
func (c *Calendar) Weekday(t time.Time) int {
	return (int(c.In(t).Weekday()) - int(c.firstWeekday) + 7) % 7
}

// Quarter returns the quarter (1-4) containing t.
func (c *Calendar) Quarter(t time.Time) int {
	return (int(c.In(t).Month())-1)/3 + 1
}

// Week returns the locale week-of-year of t.
func (c *Calendar) Week(t time.Time) int {
	t = c.In(t)
	year := t.Year()
	offset := c.firstWeekOffset(year)
	week := floorDiv(t.YearDay()-offset-1, 7) + 1
	if week < 1 {
		return week + c.weeksInYear(year-1)
	}
	if weeks := c.weeksInYear(year); week > weeks {
		return week - weeks
	}
	return week
}

// firstWeekOffset returns the day-of-year offset at which week 1 of year
// starts, relative to January 1st.
func (c *Calendar) firstWeekOffset(year int) int {
	fwd := time.Date(year, time.January, c.doy, 0, 0, 0, 0, time.UTC)
	fwdlw := (int(fwd.Weekday()) - int(c.firstWeekday) + 7) % 7
	return c.doy - fwdlw - 1
}

func (c *Calendar) weeksInYear(year int) int {
	days := 365
	if DaysIn(year, time.February) == 29 {
		days = 366
	}
	return (days - c.firstWeekOffset(year) + c.firstWeekOffset(year+1)) / 7
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
