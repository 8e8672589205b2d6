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

// Package config loads time axis rendering configurations from YAML files.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/qbs-nt/timeline-plus/batch"
	"github.com/qbs-nt/timeline-plus/color"
	"github.com/qbs-nt/timeline-plus/container"
	hiddendates "github.com/qbs-nt/timeline-plus/hidden_dates"
	timeaxis "github.com/qbs-nt/timeline-plus/time_axis"
	"gopkg.in/yaml.v3"
)

// Font selects how label text is measured.
type Font string

// Supported fonts.
const (
	// FontBasic measures with fixed bitmap faces.
	FontBasic Font = "basic"
	// FontEstimate estimates text size from the font size.
	FontEstimate Font = "estimate"
	// FontBrowser measures in a headless browser.
	FontBrowser Font = "browser"
	// FontCell measures in terminal cells.
	FontCell Font = "cell"
)

// ParseFont returns the Font named by s.
func ParseFont(s string) (Font, error) {
	switch f := Font(s); f {
	case FontBasic, FontEstimate, FontBrowser, FontCell:
		return f, nil
	}
	return "", fmt.Errorf("unsupported font '%s'", s)
}

// Config describes a single axis rendition.
type Config struct {
	Start time.Time `yaml:"start"`
	End   time.Time `yaml:"end"`

	container.RenderSettings `yaml:",inline"`

	HiddenDates []hiddendates.Range    `yaml:"hiddenDates,omitempty"`
	Axis        *timeaxis.OptionsPatch `yaml:"axis,omitempty"`
	Theme       color.Theme            `yaml:"theme,omitempty"`
	Font        Font                   `yaml:"font,omitempty"`
}

// Default returns the default configuration.  Its range is unset.
func Default() Config {
	return Config{
		RenderSettings: container.RenderSettings{
			WidthPx:        800,
			HeightPx:       60,
			BottomHeightPx: 40,
		},
		Theme: color.DefaultTheme(),
		Font:  FontBasic,
	}
}

// Load reads the configuration at path over the defaults.  An empty path
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing config file: %w", err)
	}
	return cfg, nil
}

// Validate returns an error if the receiver cannot be rendered.
func (c Config) Validate() error {
	if c.Start.IsZero() || c.End.IsZero() {
		return fmt.Errorf("start and end must both be set")
	}
	if !c.End.After(c.Start) {
		return fmt.Errorf("end %s must follow start %s", c.End.Format(time.RFC3339), c.Start.Format(time.RFC3339))
	}
	if err := c.RenderSettings.Validate(); err != nil {
		return err
	}
	if err := c.Theme.Validate(); err != nil {
		return fmt.Errorf("in theme: %w", err)
	}
	if _, err := ParseFont(string(c.Font)); err != nil {
		return err
	}
	if _, err := c.Axis.Apply(timeaxis.DefaultOptions()); err != nil {
		return fmt.Errorf("in axis: %w", err)
	}
	return nil
}

// Request returns the batch request rendering the receiver as output.
func (c Config) Request(output batch.Output) batch.Request {
	return batch.Request{
		Start:          c.Start,
		End:            c.End,
		RenderSettings: c.RenderSettings,
		HiddenDates:    c.HiddenDates,
		Axis:           c.Axis,
		Output:         output,
	}
}
