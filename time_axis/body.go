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
	"time"

	"github.com/qbs-nt/timeline-plus/coordinate"
	hiddendates "github.com/qbs-nt/timeline-plus/hidden_dates"
	"github.com/qbs-nt/timeline-plus/scene"
)

// Anchor identifies an insertion point of the container.
type Anchor int

// Container anchors.
const (
	// AnchorTop holds the foreground of top-oriented axes.
	AnchorTop Anchor = iota
	// AnchorBottom holds the foreground of other axes.
	AnchorBottom
	// AnchorBackgroundVertical holds the grid lines of all axes.
	AnchorBackgroundVertical
)

// Geometry holds the container dimensions an axis depends on, in pixels.
type Geometry struct {
	Width        float64
	RootHeight   float64
	TopHeight    float64
	BottomHeight float64
}

// Body is implemented by the timeline container an axis is drawn in.  Its
// Mapper methods must not block.
type Body interface {
	coordinate.Mapper
	// Range returns the visible time range.
	Range() (start, end time.Time)
	HiddenDates() hiddendates.Set
	Geometry() Geometry
	Anchor(anchor Anchor) *scene.Node
}
