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

// Package container provides a timeline container in which time axes are
// drawn.  A Timeline holds the visible time range and the hidden ranges,
// maps instants to pixels, and owns the scene anchors axes attach to.
package container

import (
	"fmt"
	"time"

	"github.com/qbs-nt/timeline-plus/coordinate"
	hiddendates "github.com/qbs-nt/timeline-plus/hidden_dates"
	"github.com/qbs-nt/timeline-plus/scene"
	timeaxis "github.com/qbs-nt/timeline-plus/time_axis"
)

// RenderSettings contains the pixel dimensions of a Timeline.
type RenderSettings struct {
	WidthPx  float64 `json:"width" yaml:"width"`
	HeightPx float64 `json:"height" yaml:"height"`
	// TopHeightPx and BottomHeightPx are the heights of the top and bottom
	// panels, where top and bottom axes are drawn.
	TopHeightPx    float64 `json:"topHeight" yaml:"topHeight"`
	BottomHeightPx float64 `json:"bottomHeight" yaml:"bottomHeight"`
}

// Validate returns an error if the receiver cannot be rendered.
func (rs RenderSettings) Validate() error {
	if rs.WidthPx <= 0 {
		return fmt.Errorf("width must be positive, got %v", rs.WidthPx)
	}
	if rs.HeightPx < rs.TopHeightPx+rs.BottomHeightPx {
		return fmt.Errorf("height %v is less than the panel heights %v + %v", rs.HeightPx, rs.TopHeightPx, rs.BottomHeightPx)
	}
	return nil
}

// Timeline is a timeline container implementing timeaxis.Body.
type Timeline struct {
	start, end time.Time
	settings   RenderSettings
	hidden     hiddendates.Set
	mapper     *coordinate.Linear

	root               *scene.Node
	backgroundVertical *scene.Node
	top, center        *scene.Node
	bottom             *scene.Node
}

// New returns a new Timeline showing [start, end], with the optional hidden
// ranges excluded.
func New(start, end time.Time, settings RenderSettings, hidden ...hiddendates.Range) (*Timeline, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	tl := &Timeline{
		settings: settings,
		hidden:   hiddendates.New(hidden...),
		root:     scene.New("div"),
	}
	tl.root.Class = "timeline-root"
	panel := func(class string) *scene.Node {
		node := tl.root.AppendChild(scene.New("div"))
		node.Class = class
		return node
	}
	tl.backgroundVertical = panel("timeline-background timeline-vertical")
	tl.top = panel("timeline-panel timeline-top")
	tl.center = panel("timeline-panel timeline-center")
	tl.bottom = panel("timeline-panel timeline-bottom")
	if err := tl.SetRange(start, end); err != nil {
		return nil, err
	}
	return tl, nil
}

// Extents returns the lowest and highest of the provided instants.
func Extents(extents ...time.Time) (min, max time.Time) {
	for _, extent := range extents {
		if min.IsZero() || min.After(extent) {
			min = extent
		}
		if max.IsZero() || max.Before(extent) {
			max = extent
		}
	}
	return min, max
}

// NewFromExtents returns a new Timeline whose range spans the lowest and
// highest of the provided extents.
func NewFromExtents(settings RenderSettings, extents ...time.Time) (*Timeline, error) {
	min, max := Extents(extents...)
	return New(min, max, settings)
}

// SetRange sets the visible range.
func (tl *Timeline) SetRange(start, end time.Time) error {
	if !start.Before(end) {
		return fmt.Errorf("range start %v is not before its end %v", start, end)
	}
	tl.start, tl.end = start, end
	tl.remap()
	return nil
}

// SetWidth sets the width in pixels.
func (tl *Timeline) SetWidth(widthPx float64) error {
	settings := tl.settings
	settings.WidthPx = widthPx
	if err := settings.Validate(); err != nil {
		return err
	}
	tl.settings = settings
	tl.remap()
	return nil
}

// SetHiddenDates replaces the hidden ranges.
func (tl *Timeline) SetHiddenDates(hidden ...hiddendates.Range) {
	tl.hidden = hiddendates.New(hidden...)
	tl.remap()
}

func (tl *Timeline) remap() {
	tl.mapper = coordinate.NewLinear(tl.start, tl.end, tl.settings.WidthPx, tl.hidden)
}

// Settings returns the receiver's dimensions.
func (tl *Timeline) Settings() RenderSettings {
	return tl.settings
}

// Root returns the root of the receiver's scene.
func (tl *Timeline) Root() *scene.Node {
	return tl.root
}

// Range implements timeaxis.Body.
func (tl *Timeline) Range() (start, end time.Time) {
	return tl.start, tl.end
}

// HiddenDates implements timeaxis.Body.
func (tl *Timeline) HiddenDates() hiddendates.Set {
	return tl.hidden
}

// Geometry implements timeaxis.Body.
func (tl *Timeline) Geometry() timeaxis.Geometry {
	return timeaxis.Geometry{
		Width:        tl.settings.WidthPx,
		RootHeight:   tl.settings.HeightPx,
		TopHeight:    tl.settings.TopHeightPx,
		BottomHeight: tl.settings.BottomHeightPx,
	}
}

// Anchor implements timeaxis.Body.
func (tl *Timeline) Anchor(anchor timeaxis.Anchor) *scene.Node {
	switch anchor {
	case timeaxis.AnchorTop:
		return tl.top
	case timeaxis.AnchorBackgroundVertical:
		return tl.backgroundVertical
	}
	return tl.bottom
}

// Center returns the center panel, between the top and bottom panels.
func (tl *Timeline) Center() *scene.Node {
	return tl.center
}

// ToScreen implements coordinate.Mapper.
func (tl *Timeline) ToScreen(t time.Time) float64 {
	return tl.mapper.ToScreen(t)
}

// ToTime implements coordinate.Mapper.
func (tl *Timeline) ToTime(x float64) time.Time {
	return tl.mapper.ToTime(x)
}
