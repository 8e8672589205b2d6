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

import "github.com/qbs-nt/timeline-plus/calendar"

// FormatTable holds, per scale unit, the calendar layouts of minor and major
// labels.
type FormatTable struct {
	MinorLabels map[calendar.Unit]string
	MajorLabels map[calendar.Unit]string
}

// DefaultFormat returns the default label layouts.
func DefaultFormat() FormatTable {
	return FormatTable{
		MinorLabels: map[calendar.Unit]string{
			calendar.Millisecond: "SSS",
			calendar.Second:      "s",
			calendar.Minute:      "HH:mm",
			calendar.Hour:        "HH:mm",
			calendar.Day:         "D",
			calendar.Week:        "w",
			calendar.Month:       "MMM",
			calendar.Quarter:     "[Q]Q",
			calendar.Year:        "YYYY",
		},
		MajorLabels: map[calendar.Unit]string{
			calendar.Millisecond: "HH:mm:ss",
			calendar.Second:      "D MMMM HH:mm",
			calendar.Minute:      "ddd D MMMM",
			calendar.Hour:        "ddd D MMMM",
			calendar.Day:         "MMMM YYYY",
			calendar.Week:        "MMMM YYYY",
			calendar.Month:       "YYYY",
			calendar.Quarter:     "YYYY",
			calendar.Year:        "",
		},
	}
}

// Merge returns a copy of the receiver with the layouts present in patch
// overriding its own.  Units absent from patch keep the receiver's layouts.
func (f FormatTable) Merge(patch FormatTable) FormatTable {
	merge := func(base, over map[calendar.Unit]string) map[calendar.Unit]string {
		ret := make(map[calendar.Unit]string, len(base)+len(over))
		for u, layout := range base {
			ret[u] = layout
		}
		for u, layout := range over {
			ret[u] = layout
		}
		return ret
	}
	return FormatTable{
		MinorLabels: merge(f.MinorLabels, patch.MinorLabels),
		MajorLabels: merge(f.MajorLabels, patch.MajorLabels),
	}
}
