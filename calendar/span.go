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
	"math"
	"time"
)

// Spans along an axis may cover millennia, well past the ~292 years a
// time.Duration holds, so they are measured in float64 milliseconds.

// Millis returns the number of milliseconds from a to b, negative if b is
// before a.
func Millis(a, b time.Time) float64 {
	return float64(b.Unix()-a.Unix())*1000 + float64(b.Nanosecond()-a.Nanosecond())/1e6
}

// AddMillis returns t advanced by ms milliseconds, rounded to the
// nanosecond, in t's location.
func AddMillis(t time.Time, ms float64) time.Time {
	sec := math.Floor(ms / 1000)
	nsec := math.Round((ms - sec*1000) * 1e6)
	return time.Unix(t.Unix()+int64(sec), int64(t.Nanosecond())+int64(nsec)).In(t.Location())
}
