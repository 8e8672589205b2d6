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

// Package calendar provides the calendar arithmetic and formatting capability
// used by time axes.  A Calendar is injected per axis; nothing in this package
// mutates process-wide state.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Unit is a calendar unit, ordered from finest to coarsest.
type Unit int

// Calendar units.
const (
	Millisecond Unit = iota
	Second
	Minute
	Hour
	Day
	Week
	Month
	Quarter
	Year
)

var unitNames = map[Unit]string{
	Millisecond: "millisecond",
	Second:      "second",
	Minute:      "minute",
	Hour:        "hour",
	Day:         "day",
	Week:        "week",
	Month:       "month",
	Quarter:     "quarter",
	Year:        "year",
}

// Units lists all units, coarsest first.
var Units = []Unit{Year, Quarter, Month, Week, Day, Hour, Minute, Second, Millisecond}

func (u Unit) String() string {
	if name, ok := unitNames[u]; ok {
		return name
	}
	return fmt.Sprintf("unit(%d)", int(u))
}

// ParseUnit returns the Unit named by s.  Plural forms ("months") are
// accepted.
func ParseUnit(s string) (Unit, error) {
	name := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s")
	for u, n := range unitNames {
		if n == name {
			return u, nil
		}
	}
	return 0, fmt.Errorf("unknown calendar unit '%s'", s)
}

// MarshalText implements encoding.TextMarshaler.
func (u Unit) MarshalText() ([]byte, error) {
	if _, ok := unitNames[u]; !ok {
		return nil, fmt.Errorf("unknown calendar unit %d", int(u))
	}
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Unit) UnmarshalText(text []byte) error {
	parsed, err := ParseUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Finer returns the next finer unit, and false if u is already the finest.
func (u Unit) Finer() (Unit, bool) {
	switch u {
	case Year:
		return Quarter, true
	case Quarter:
		return Month, true
	case Month:
		return Week, true
	case Week:
		return Day, true
	case Day:
		return Hour, true
	case Hour:
		return Minute, true
	case Minute:
		return Second, true
	case Second:
		return Millisecond, true
	}
	return u, false
}

const nominalDay = 24 * time.Hour

// Nominal returns the nominal duration of one u, used to compare scales.
// Months are thirty days and years twelve such months.
func (u Unit) Nominal() time.Duration {
	switch u {
	case Millisecond:
		return time.Millisecond
	case Second:
		return time.Second
	case Minute:
		return time.Minute
	case Hour:
		return time.Hour
	case Day:
		return nominalDay
	case Week:
		return 7 * nominalDay
	case Month:
		return 30 * nominalDay
	case Quarter:
		return 90 * nominalDay
	case Year:
		return 360 * nominalDay
	}
	return 0
}

// NominalMillis returns the nominal length of one u in milliseconds.
func (u Unit) NominalMillis() float64 {
	return float64(u.Nominal() / time.Millisecond)
}
