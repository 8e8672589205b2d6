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

package drawing

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	charmetrics "github.com/qbs-nt/timeline-plus/char_metrics"
	"github.com/qbs-nt/timeline-plus/container"
	timeaxis "github.com/qbs-nt/timeline-plus/time_axis"
)

func utc(m time.Month, d int) time.Time {
	return time.Date(2021, m, d, 0, 0, 0, 0, time.UTC)
}

// drawAxis draws an axis at ten pixels per day from January 20th to March
// 3rd 2021, so that ticks fall every five days.
func drawAxis(t *testing.T, patch timeaxis.OptionsPatch) (*container.Timeline, *timeaxis.Axis) {
	t.Helper()
	tl, err := container.New(utc(time.January, 20), utc(time.March, 3), container.RenderSettings{
		WidthPx:        420,
		HeightPx:       100,
		TopHeightPx:    20,
		BottomHeightPx: 30,
	})
	if err != nil {
		t.Fatalf("container.New() yielded unexpected error %s", err)
	}
	zone := "UTC"
	patch.Timezone = &zone
	axis, err := timeaxis.New(tl, charmetrics.NewFontSurface(timeaxis.MajorMeasureClass), nil, nil, &patch)
	if err != nil {
		t.Fatalf("timeaxis.New() yielded unexpected error %s", err)
	}
	axis.Redraw()
	return tl, axis
}

var ignoreClass = cmpopts.IgnoreFields(Line{}, "Class")

func TestFlattenLines(t *testing.T) {
	tl, axis := drawAxis(t, timeaxis.OptionsPatch{})
	d := Flatten(tl)
	if got, want := len(d.Lines), len(axis.Frame().Lines); got != want {
		t.Fatalf("got %d lines, want %d", got, want)
	}
	// Minor lines span the center and the minor label row; major lines also
	// span the major label row.
	wantFirst := []Line{
		{Kind: Minor, X: -40, Y1: 20, Y2: 84},
		{Kind: Minor, X: 10, Y1: 20, Y2: 84},
		{Kind: Minor, X: 60, Y1: 20, Y2: 84},
		{Kind: Major, X: 120, Y1: 20, Y2: 100},
	}
	if diff := cmp.Diff(wantFirst, d.Lines[:4], ignoreClass); diff != "" {
		t.Errorf("lines diff (-want +got):\n%s", diff)
	}
}

func TestFlattenTexts(t *testing.T) {
	tl, _ := drawAxis(t, timeaxis.OptionsPatch{})
	d := Flatten(tl)
	var major []Text
	for _, text := range d.Texts {
		if text.Major {
			major = append(major, text)
		}
	}
	want := []Text{
		{Major: true, X: 120, Y: 83, Text: "February 2021"},
		{Major: true, X: 400, Y: 83, Text: "March 2021"},
		{Major: true, X: 0, Y: 83, Text: "January 2021"},
	}
	if diff := cmp.Diff(want, major, cmpopts.IgnoreFields(Text{}, "Class")); diff != "" {
		t.Errorf("major texts diff (-want +got):\n%s", diff)
	}
	if got := d.Texts[0]; got.X != -40 || got.Y != 70 || got.Width != 50 || got.Text != "16" {
		t.Errorf("first minor text = %+v, want '16' at (-40, 70) spanning 50", got)
	}
}

func TestFlattenRightToLeft(t *testing.T) {
	rtl := true
	tl, _ := drawAxis(t, timeaxis.OptionsPatch{RTL: &rtl})
	d := Flatten(tl)
	var gotMajor []Line
	for _, line := range d.Lines {
		if line.Kind == Major {
			gotMajor = append(gotMajor, line)
		}
	}
	want := []Line{
		{Kind: Major, X: 300, Y1: 20, Y2: 100},
		{Kind: Major, X: 20, Y1: 20, Y2: 100},
	}
	if diff := cmp.Diff(want, gotMajor, ignoreClass); diff != "" {
		t.Errorf("mirrored major lines diff (-want +got):\n%s", diff)
	}
	for _, text := range d.Texts {
		if !text.End {
			t.Fatalf("right-to-left text %q is not end-anchored", text.Text)
		}
	}
}

func TestFlattenSkipsHiddenNodes(t *testing.T) {
	tl, axis := drawAxis(t, timeaxis.OptionsPatch{})
	axis.Foreground().Hidden = true
	d := Flatten(tl)
	if len(d.Texts) != 0 {
		t.Errorf("got %d texts from a hidden foreground, want none", len(d.Texts))
	}
	if len(d.Lines) == 0 {
		t.Errorf("got no lines, want the background's")
	}
}
