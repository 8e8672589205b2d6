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
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/qbs-nt/timeline-plus/calendar"
	hiddendates "github.com/qbs-nt/timeline-plus/hidden_dates"
	timestep "github.com/qbs-nt/timeline-plus/time_step"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultAbsorptionRatio is the fraction of the previous cell's width
	// below which a minor cell is merged into it.
	DefaultAbsorptionRatio = 0.4

	// DefaultSubstepMinWidth is the minimum distance in pixels between a
	// grid line and its first substep line.
	DefaultSubstepMinWidth = 8.0

	// DefaultMaxMinorChars is the number of minor characters a minor label
	// must have room for.
	DefaultMaxMinorChars = 7
)

// Orientation places the axis above or below the timeline, or hides its
// labels.
type Orientation int

// Orientations.
const (
	OrientationBottom Orientation = iota
	OrientationTop
	OrientationNone
)

func (o Orientation) String() string {
	switch o {
	case OrientationBottom:
		return "bottom"
	case OrientationTop:
		return "top"
	case OrientationNone:
		return "none"
	}
	return fmt.Sprintf("orientation(%d)", int(o))
}

// ParseOrientation returns the Orientation named by s.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bottom":
		return OrientationBottom, nil
	case "top":
		return OrientationTop, nil
	case "none":
		return OrientationNone, nil
	}
	return 0, fmt.Errorf("unknown orientation '%s'", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// orientationObject is the object form of an orientation, as in
// `{axis: top}`.
type orientationObject struct {
	Axis *string `json:"axis" yaml:"axis"`
}

func (o *Orientation) set(axis *string) error {
	if axis == nil {
		return fmt.Errorf("orientation object has no 'axis' field")
	}
	parsed, err := ParseOrientation(*axis)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// UnmarshalYAML accepts either a bare orientation string or an object with an
// `axis` field.
func (o *Orientation) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return o.set(&node.Value)
	case yaml.MappingNode:
		var obj orientationObject
		if err := node.Decode(&obj); err != nil {
			return err
		}
		return o.set(obj.Axis)
	}
	return fmt.Errorf("line %d: orientation must be a string or an object", node.Line)
}

// UnmarshalJSON accepts either a bare orientation string or an object with an
// `axis` field.
func (o *Orientation) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return o.set(&s)
	}
	var obj orientationObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("orientation must be a string or an object: %w", err)
	}
	return o.set(obj.Axis)
}

// Substeps configures the unlabeled lines drawn between grid lines.
type Substeps struct {
	Visible  bool    `json:"visible" yaml:"visible"`
	MinWidth float64 `json:"minWidth" yaml:"minWidth"`
}

// Options is the resolved configuration of an Axis.
type Options struct {
	Orientation     Orientation
	ShowMinorLabels bool
	ShowMajorLabels bool
	Substeps        Substeps
	MaxMinorChars   int
	Format          timestep.FormatTable
	RTL             bool
	// If non-nil, HiddenDates replaces the body's hidden dates.
	HiddenDates hiddendates.Set
	// If non-nil, TimeAxis fixes the scale.
	TimeAxis        *timestep.Scale
	ShowWeekScale   bool
	Calendar        *calendar.Calendar
	AbsorptionRatio float64
	// Now is the clock used for relative class names.
	Now func() time.Time
}

// DefaultOptions returns the default Options.
func DefaultOptions() Options {
	return Options{
		Orientation:     OrientationBottom,
		ShowMinorLabels: true,
		ShowMajorLabels: true,
		Substeps: Substeps{
			MinWidth: DefaultSubstepMinWidth,
		},
		MaxMinorChars:   DefaultMaxMinorChars,
		Format:          timestep.DefaultFormat(),
		Calendar:        calendar.New(),
		AbsorptionRatio: DefaultAbsorptionRatio,
		Now:             time.Now,
	}
}

// SubstepsPatch updates Substeps field by field.
type SubstepsPatch struct {
	Visible  *bool    `json:"visible,omitempty" yaml:"visible,omitempty"`
	MinWidth *float64 `json:"minWidth,omitempty" yaml:"minWidth,omitempty"`
}

// FormatPatch overrides label layouts per calendar unit name, e.g.
// `{minorLabels: {day: "DD"}}`.
type FormatPatch struct {
	MinorLabels map[string]string `json:"minorLabels,omitempty" yaml:"minorLabels,omitempty"`
	MajorLabels map[string]string `json:"majorLabels,omitempty" yaml:"majorLabels,omitempty"`
}

func (fp *FormatPatch) table() (timestep.FormatTable, error) {
	convert := func(layouts map[string]string) (map[calendar.Unit]string, error) {
		ret := make(map[calendar.Unit]string, len(layouts))
		for name, layout := range layouts {
			unit, err := calendar.ParseUnit(name)
			if err != nil {
				return nil, fmt.Errorf("in format: %w", err)
			}
			ret[unit] = layout
		}
		return ret, nil
	}
	minor, err := convert(fp.MinorLabels)
	if err != nil {
		return timestep.FormatTable{}, err
	}
	major, err := convert(fp.MajorLabels)
	if err != nil {
		return timestep.FormatTable{}, err
	}
	return timestep.FormatTable{
		MinorLabels: minor,
		MajorLabels: major,
	}, nil
}

// OptionsPatch holds option updates.  Nil fields leave the corresponding
// option unchanged.
type OptionsPatch struct {
	Orientation     *Orientation        `json:"orientation,omitempty" yaml:"orientation,omitempty"`
	ShowMinorLabels *bool               `json:"showMinorLabels,omitempty" yaml:"showMinorLabels,omitempty"`
	ShowMajorLabels *bool               `json:"showMajorLabels,omitempty" yaml:"showMajorLabels,omitempty"`
	Substeps        *SubstepsPatch      `json:"substeps,omitempty" yaml:"substeps,omitempty"`
	MaxMinorChars   *int                `json:"maxMinorChars,omitempty" yaml:"maxMinorChars,omitempty"`
	Format          *FormatPatch        `json:"format,omitempty" yaml:"format,omitempty"`
	RTL             *bool               `json:"rtl,omitempty" yaml:"rtl,omitempty"`
	HiddenDates     []hiddendates.Range `json:"hiddenDates,omitempty" yaml:"hiddenDates,omitempty"`
	TimeAxis        *timestep.Scale     `json:"timeAxis,omitempty" yaml:"timeAxis,omitempty"`
	ShowWeekScale   *bool               `json:"showWeekScale,omitempty" yaml:"showWeekScale,omitempty"`
	AbsorptionRatio *float64            `json:"absorptionRatio,omitempty" yaml:"absorptionRatio,omitempty"`
	// Locale is a BCP 47 tag selecting week numbering.
	Locale *string `json:"locale,omitempty" yaml:"locale,omitempty"`
	// Timezone is an IANA location name in which calendar fields are
	// evaluated.
	Timezone *string `json:"timezone,omitempty" yaml:"timezone,omitempty"`
	// Calendar, if non-nil, replaces the calendar; Locale and Timezone then
	// apply on top of it.
	Calendar *calendar.Calendar `json:"-" yaml:"-"`
}

// Apply returns a copy of opts updated by the receiver.  opts is left
// unchanged if an error is returned.
func (p *OptionsPatch) Apply(opts Options) (Options, error) {
	if p == nil {
		return opts, nil
	}
	if p.Orientation != nil {
		opts.Orientation = *p.Orientation
	}
	if p.ShowMinorLabels != nil {
		opts.ShowMinorLabels = *p.ShowMinorLabels
	}
	if p.ShowMajorLabels != nil {
		opts.ShowMajorLabels = *p.ShowMajorLabels
	}
	if p.Substeps != nil {
		if p.Substeps.Visible != nil {
			opts.Substeps.Visible = *p.Substeps.Visible
		}
		if p.Substeps.MinWidth != nil {
			if *p.Substeps.MinWidth < 0 {
				return opts, fmt.Errorf("substeps.minWidth must not be negative, got %v", *p.Substeps.MinWidth)
			}
			opts.Substeps.MinWidth = *p.Substeps.MinWidth
		}
	}
	if p.MaxMinorChars != nil {
		if *p.MaxMinorChars < 1 {
			return opts, fmt.Errorf("maxMinorChars must be positive, got %d", *p.MaxMinorChars)
		}
		opts.MaxMinorChars = *p.MaxMinorChars
	}
	if p.Format != nil {
		table, err := p.Format.table()
		if err != nil {
			return opts, err
		}
		opts.Format = opts.Format.Merge(table)
	}
	if p.RTL != nil {
		opts.RTL = *p.RTL
	}
	if p.HiddenDates != nil {
		opts.HiddenDates = hiddendates.New(p.HiddenDates...)
	}
	if p.TimeAxis != nil {
		if err := p.TimeAxis.Validate(); err != nil {
			return opts, fmt.Errorf("in timeAxis: %w", err)
		}
		scale := *p.TimeAxis
		opts.TimeAxis = &scale
	}
	if p.ShowWeekScale != nil {
		opts.ShowWeekScale = *p.ShowWeekScale
	}
	if p.AbsorptionRatio != nil {
		if *p.AbsorptionRatio < 0 {
			return opts, fmt.Errorf("absorptionRatio must not be negative, got %v", *p.AbsorptionRatio)
		}
		opts.AbsorptionRatio = *p.AbsorptionRatio
	}
	cal, err := p.calendar(opts.Calendar)
	if err != nil {
		return opts, err
	}
	opts.Calendar = cal
	return opts, nil
}

func (p *OptionsPatch) calendar(cal *calendar.Calendar) (*calendar.Calendar, error) {
	if p.Calendar != nil {
		cal = p.Calendar
	}
	if p.Locale == nil && p.Timezone == nil {
		return cal, nil
	}
	loc, tag := cal.Location(), cal.Locale()
	if p.Locale != nil {
		parsed, err := calendar.ParseLocale(*p.Locale)
		if err != nil {
			return nil, err
		}
		tag = parsed
	}
	if p.Timezone != nil {
		parsed, err := time.LoadLocation(*p.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone '%s': %w", *p.Timezone, err)
		}
		loc = parsed
	}
	return calendar.New(calendar.WithLocation(loc), calendar.WithLocale(tag)), nil
}
