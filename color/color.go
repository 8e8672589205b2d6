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

// Package color supports declaring the colors of a rendered time axis.
//
// A Theme holds up to four colors, each an HTML hex color specifier:
//
//   - The primary color is used for major grid lines.
//   - The secondary color is used for minor grid lines.  Substep lines are
//     drawn halfway between the secondary and background colors.
//   - The stroke color is used for label text.
//   - The background color fills the area behind the axis.
//
// Colors along a continuum may be obtained from a Space, which linearly
// interpolates a sequence of colors; for instance,
//
//	fade, err := color.NewSpace("fade", "#e5e5e5", "#ffffff")
//	...
//	halfway := fade.At(0.5)
package color

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Theme colors a rendered axis.  Empty colors are unset.
type Theme struct {
	Primary    string `json:"primary,omitempty" yaml:"primary,omitempty"`
	Secondary  string `json:"secondary,omitempty" yaml:"secondary,omitempty"`
	Stroke     string `json:"stroke,omitempty" yaml:"stroke,omitempty"`
	Background string `json:"background,omitempty" yaml:"background,omitempty"`
}

// DefaultTheme returns the default colors: grey grid lines and text on white.
func DefaultTheme() Theme {
	return Theme{
		Primary:    "#bfbfbf",
		Secondary:  "#e5e5e5",
		Stroke:     "#4d4d4d",
		Background: "#ffffff",
	}
}

// With returns a copy of the receiver with the colors set in other
// overriding its own.
func (t Theme) With(other Theme) Theme {
	override := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	override(&t.Primary, other.Primary)
	override(&t.Secondary, other.Secondary)
	override(&t.Stroke, other.Stroke)
	override(&t.Background, other.Background)
	return t
}

// Validate returns an error if any set color cannot be parsed.
func (t Theme) Validate() error {
	for _, c := range []struct{ name, value string }{
		{"primary", t.Primary},
		{"secondary", t.Secondary},
		{"stroke", t.Stroke},
		{"background", t.Background},
	} {
		if c.value == "" {
			continue
		}
		if _, err := colorful.Hex(c.value); err != nil {
			return fmt.Errorf("invalid %s color '%s': %w", c.name, c.value, err)
		}
	}
	return nil
}

// Substep returns the color of substep lines.
func (t Theme) Substep() string {
	fade, err := NewSpace("substep", t.Secondary, t.Background)
	if err != nil {
		return t.Secondary
	}
	return fade.At(0.5)
}

// Space represents a color space: a color continuum that can map double
// values to colors.
type Space struct {
	name   string
	colors []colorful.Color
}

// NewSpace defines a new color space.  Colors in this space will be linearly
// interpolated between the specified colors.
func NewSpace(name string, colors ...string) (*Space, error) {
	if len(colors) == 0 {
		return nil, fmt.Errorf("color space '%s' has no colors", name)
	}
	s := &Space{
		name: name,
	}
	for _, c := range colors {
		parsed, err := colorful.Hex(c)
		if err != nil {
			return nil, fmt.Errorf("in color space '%s': invalid color '%s': %w", name, c, err)
		}
		s.colors = append(s.colors, parsed)
	}
	return s, nil
}

// Name returns the Space's name.
func (s *Space) Name() string {
	return s.name
}

// At returns the hex color at position v of the receiver, where 0 is the
// first color and 1 the last.  v is clamped to [0, 1].
func (s *Space) At(v float64) string {
	if len(s.colors) == 1 || v <= 0 || math.IsNaN(v) {
		return s.colors[0].Hex()
	}
	if v >= 1 {
		return s.colors[len(s.colors)-1].Hex()
	}
	pos := v * float64(len(s.colors)-1)
	idx := int(pos)
	return s.colors[idx].BlendRgb(s.colors[idx+1], pos-float64(idx)).Clamped().Hex()
}
