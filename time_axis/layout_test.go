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
	"bytes"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/qbs-nt/timeline-plus/calendar"
	"github.com/qbs-nt/timeline-plus/coordinate"
	"github.com/qbs-nt/timeline-plus/diag"
	timestep "github.com/qbs-nt/timeline-plus/time_step"
	"golang.org/x/text/language"
)

var utcCalendar = calendar.New(calendar.WithLocation(time.UTC), calendar.WithLocale(language.AmericanEnglish))

func utc(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// geometryOnly compares frames by position, ignoring class names.
var geometryOnly = cmp.Options{
	cmpopts.IgnoreFields(Line{}, "ClassName"),
	cmpopts.IgnoreFields(Label{}, "ClassName"),
	cmpopts.EquateApprox(0, 1e-6),
	cmpopts.EquateEmpty(),
}

// millis converts d to the milliseconds taken as a minimum step.
func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

type layoutTest struct {
	start, end  time.Time
	widthPx     float64
	scale       *timestep.Scale
	minimumStep float64
	warner      diag.Warner
	settings    LayoutSettings
}

func (lt layoutTest) run() Frame {
	stepper := timestep.New(lt.start, lt.end, lt.minimumStep, timestep.Options{
		Calendar:        utcCalendar,
		Scale:           lt.scale,
		ShowMajorLabels: lt.settings.ShowMajorLabels,
		Warner:          lt.warner,
	})
	settings := lt.settings
	settings.Calendar = utcCalendar
	settings.Warner = lt.warner
	if settings.AbsorptionRatio == 0 {
		settings.AbsorptionRatio = DefaultAbsorptionRatio
	}
	return Layout(stepper, coordinate.NewLinear(lt.start, lt.end, lt.widthPx, nil), settings)
}

// fiveDays lays out five-day cells at ten pixels per day from January 20th
// to March 3rd 2021.  The cell of January 31st is one day wide.
func fiveDays(showMinorLabels bool) layoutTest {
	return layoutTest{
		start:   utc(2021, time.January, 20),
		end:     utc(2021, time.March, 3),
		widthPx: 420,
		scale:   &timestep.Scale{Unit: calendar.Day, Step: 5},
		settings: LayoutSettings{
			ShowMinorLabels: showMinorLabels,
			ShowMajorLabels: true,
			MajorCharWidth:  8,
		},
	}
}

var fiveDayLines = []Line{
	{Kind: MinorLine, X: -40, Width: 50},
	{Kind: MinorLine, X: 10, Width: 50},
	// Absorbs the cell of January 31st.
	{Kind: MinorLine, X: 60, Width: 60},
	{Kind: MajorLine, X: 120, Width: 50},
	{Kind: MinorLine, X: 170, Width: 50},
	{Kind: MinorLine, X: 220, Width: 50},
	{Kind: MinorLine, X: 270, Width: 50},
	{Kind: MinorLine, X: 320, Width: 50},
	{Kind: MinorLine, X: 370, Width: 30},
	{Kind: MajorLine, X: 400, Width: 50},
}

func TestLayout(t *testing.T) {
	for _, test := range []struct {
		description string
		layout      layoutTest
		want        Frame
	}{{
		description: "absorption with minor labels",
		layout:      fiveDays(true),
		want: Frame{
			Scale: timestep.Scale{Unit: calendar.Day, Step: 5},
			Lines: fiveDayLines,
			MinorLabels: []Label{
				{X: -40, Width: 50, Text: "16"},
				{X: 10, Width: 50, Text: "21"},
				{X: 60, Width: 50, Text: "26"},
				{X: 120, Width: 50, Text: "1"},
				{X: 170, Width: 50, Text: "6"},
				{X: 220, Width: 50, Text: "11"},
				{X: 270, Width: 50, Text: "16"},
				{X: 320, Width: 50, Text: "21"},
				{X: 370, Width: 30, Text: "26"},
				{X: 400, Width: 50, Text: "1"},
			},
			MajorLabels: []Label{
				{X: 120, Text: "February 2021"},
				{X: 400, Text: "March 2021"},
				{X: 0, Text: "January 2021"},
			},
			Cells: 11,
		},
	}, {
		description: "absorption without minor labels",
		layout:      fiveDays(false),
		want: Frame{
			Scale: timestep.Scale{Unit: calendar.Day, Step: 5},
			Lines: fiveDayLines,
			MajorLabels: []Label{
				{X: 120, Text: "February 2021"},
				{X: 400, Text: "March 2021"},
				{X: 0, Text: "January 2021"},
			},
			Cells: 11,
		},
	}, {
		description: "first major label too close for a left-edge label",
		layout: layoutTest{
			start:   time.Date(2021, time.January, 31, 12, 0, 0, 0, time.UTC),
			end:     time.Date(2021, time.February, 3, 12, 0, 0, 0, time.UTC),
			widthPx: 300,
			scale:   &timestep.Scale{Unit: calendar.Day, Step: 1},
			settings: LayoutSettings{
				ShowMajorLabels: true,
				MajorCharWidth:  8,
			},
		},
		want: Frame{
			Scale: timestep.Scale{Unit: calendar.Day, Step: 1},
			Lines: []Line{
				{Kind: MinorLine, X: -50, Width: 100},
				{Kind: MajorLine, X: 50, Width: 100},
				{Kind: MinorLine, X: 150, Width: 100},
				{Kind: MinorLine, X: 250, Width: 100},
			},
			MajorLabels: []Label{
				{X: 50, Text: "February 2021"},
			},
			Cells: 4,
		},
	}, {
		description: "no major tick in range",
		layout: layoutTest{
			start:   utc(2021, time.February, 3),
			end:     utc(2021, time.February, 5),
			widthPx: 200,
			scale:   &timestep.Scale{Unit: calendar.Day, Step: 1},
			settings: LayoutSettings{
				ShowMajorLabels: true,
				MajorCharWidth:  8,
			},
		},
		want: Frame{
			Scale: timestep.Scale{Unit: calendar.Day, Step: 1},
			Lines: []Line{
				{Kind: MinorLine, X: 0, Width: 100},
				{Kind: MinorLine, X: 100, Width: 100},
				{Kind: MinorLine, X: 200, Width: 100},
			},
			MajorLabels: []Label{
				{X: 0, Text: "February 2021"},
			},
			Cells: 3,
		},
	}, {
		description: "major labels disabled",
		layout: layoutTest{
			start:   utc(2021, time.January, 31),
			end:     utc(2021, time.February, 2),
			widthPx: 200,
			scale:   &timestep.Scale{Unit: calendar.Day, Step: 1},
		},
		want: Frame{
			Scale: timestep.Scale{Unit: calendar.Day, Step: 1},
			Lines: []Line{
				{Kind: MinorLine, X: 0, Width: 100},
				{Kind: MinorLine, X: 100, Width: 100},
				{Kind: MinorLine, X: 200, Width: 100},
			},
			Cells: 3,
		},
	}} {
		t.Run(test.description, func(t *testing.T) {
			got := test.layout.run()
			if diff := cmp.Diff(test.want, got, geometryOnly); diff != "" {
				t.Errorf("Layout() diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWeekCellsAreNeverAbsorbed(t *testing.T) {
	got := layoutTest{
		start:   utc(2021, time.January, 24),
		end:     utc(2021, time.February, 13),
		widthPx: 200,
		scale:   &timestep.Scale{Unit: calendar.Week, Step: 1},
		settings: LayoutSettings{
			ShowMinorLabels: true,
			ShowMajorLabels: true,
			MajorCharWidth:  8,
		},
	}.run()
	// January 31st to February 1st is a one-day cell after a week-long one.
	want := []Line{
		{Kind: MinorLine, X: 0, Width: 70},
		{Kind: MinorLine, X: 70, Width: 10},
		{Kind: MajorLine, X: 80, Width: 60},
		{Kind: MinorLine, X: 140, Width: 70},
	}
	if diff := cmp.Diff(want, got.Lines, geometryOnly); diff != "" {
		t.Errorf("week lines diff (-want +got):\n%s", diff)
	}
	if got, want := len(got.MinorLabels), len(want); got != want {
		t.Errorf("got %d minor labels, want %d", got, want)
	}
}

func TestSubsteps(t *testing.T) {
	month := &timestep.Scale{Unit: calendar.Month, Step: 1}
	for _, test := range []struct {
		description  string
		minWidth     float64
		wantSubsteps int
	}{
		// Four weeks in January, three in February and four in March.
		{"weekly substeps", DefaultSubstepMinWidth, 11},
		{"substeps too dense", 71, 0},
	} {
		t.Run(test.description, func(t *testing.T) {
			got := layoutTest{
				start:   utc(2021, time.January, 1),
				end:     utc(2021, time.March, 31),
				widthPx: 890,
				scale:   month,
				settings: LayoutSettings{
					ShowMinorLabels: true,
					ShowMajorLabels: true,
					Substeps:        Substeps{Visible: true, MinWidth: test.minWidth},
				},
			}.run()
			substeps := 0
			cellStart, cellEnd := 0.0, 0.0
			firstInCell := false
			for idx, line := range got.Lines {
				if line.Kind != SubstepLine {
					cellStart, cellEnd = line.X, line.X+line.Width
					firstInCell = true
					continue
				}
				substeps++
				if line.X <= cellStart || line.X >= cellEnd {
					t.Errorf("substep %d at %v lies outside its cell [%v, %v]", idx, line.X, cellStart, cellEnd)
				}
				if firstInCell && line.X-cellStart < test.minWidth {
					t.Errorf("first substep %d at %v is within %v of its line at %v", idx, line.X, test.minWidth, cellStart)
				}
				firstInCell = false
			}
			if substeps != test.wantSubsteps {
				t.Errorf("got %d substeps, want %d", substeps, test.wantSubsteps)
			}
		})
	}
}

func TestLayoutOverMillennia(t *testing.T) {
	got := layoutTest{
		start:       utc(1000, time.January, 1),
		end:         utc(4000, time.January, 1),
		widthPx:     900,
		minimumStep: 600 * millis(360*24*time.Hour),
		settings:    LayoutSettings{ShowMinorLabels: true},
	}.run()
	if diff := cmp.Diff(timestep.Scale{Unit: calendar.Year, Step: 1000}, got.Scale); diff != "" {
		t.Errorf("scale diff (-want +got):\n%s", diff)
	}
	var texts []string
	xs := map[float64]bool{}
	for i, label := range got.MinorLabels {
		texts = append(texts, label.Text)
		if xs[label.X] {
			t.Errorf("label %s shares x=%f with another label", label.Text, label.X)
		}
		xs[label.X] = true
		if i > 0 && label.X <= got.MinorLabels[i-1].X {
			t.Errorf("label %s at x=%f, not right of the previous label", label.Text, label.X)
		}
	}
	if diff := cmp.Diff([]string{"1000", "2000", "3000", "4000"}, texts); diff != "" {
		t.Errorf("minor label texts diff (-want +got):\n%s", diff)
	}
}

func TestSubstepsOfMultiYearScales(t *testing.T) {
	start, end := utc(1900, time.January, 1), utc(2100, time.January, 1)
	got := layoutTest{
		start:   start,
		end:     end,
		widthPx: 2000,
		scale:   &timestep.Scale{Unit: calendar.Year, Step: 100},
		settings: LayoutSettings{
			Substeps: Substeps{Visible: true, MinWidth: DefaultSubstepMinWidth},
		},
	}.run()
	mapper := coordinate.NewLinear(start, end, 2000, nil)
	var years []int
	for _, line := range got.Lines {
		if line.Kind == SubstepLine {
			// Round to the nearest hour before reading the year.
			years = append(years, mapper.ToTime(line.X).Add(30*time.Minute).Truncate(time.Hour).Year())
		}
	}
	if diff := cmp.Diff([]int{1950, 2050, 2150}, years); diff != "" {
		t.Errorf("substep years diff (-want +got):\n%s", diff)
	}
}

func TestUnderivableSubscaleIsLogged(t *testing.T) {
	var buf bytes.Buffer
	warnings := diag.NewOnce(log.New(&buf, "", 0))
	start := utc(2021, time.January, 1)
	got := layoutTest{
		start:   start,
		end:     start.Add(5 * time.Millisecond),
		widthPx: 500,
		scale:   &timestep.Scale{Unit: calendar.Millisecond, Step: 1},
		warner:  warnings,
		settings: LayoutSettings{
			ShowMinorLabels: true,
			Substeps:        Substeps{Visible: true, MinWidth: DefaultSubstepMinWidth},
		},
	}.run()
	for _, line := range got.Lines {
		if line.Kind == SubstepLine {
			t.Fatalf("got a substep line on a millisecond scale")
		}
	}
	if len(got.Lines) != 6 {
		t.Errorf("got %d lines, want 6", len(got.Lines))
	}
	if !strings.Contains(buf.String(), "could not derive subscale from step millisecond") {
		t.Errorf("log %q lacks the subscale warning", buf.String())
	}
}

func TestLayoutOverflow(t *testing.T) {
	var buf bytes.Buffer
	warnings := diag.NewOnce(log.New(&buf, "", 0))
	lt := layoutTest{
		start:   utc(2000, time.January, 1),
		end:     utc(2100, time.January, 1),
		widthPx: 1000,
		warner:  warnings,
		settings: LayoutSettings{
			ShowMinorLabels: true,
			ShowMajorLabels: true,
		},
	}
	for i := 0; i < 2; i++ {
		if got := lt.run().Cells; got != timestep.DefaultMaxTicks-1 {
			t.Errorf("run %d laid out %d cells, want %d", i, got, timestep.DefaultMaxTicks-1)
		}
	}
	if got := strings.Count(buf.String(), "warning:"); got != 1 {
		t.Errorf("got %d warnings, want 1:\n%s", got, buf.String())
	}
	if got := warnings.Occurrences(timestep.OverflowWarning); got != 2 {
		t.Errorf("overflow occurred %d times, want 2", got)
	}
}
