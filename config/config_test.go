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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/qbs-nt/timeline-plus/batch"
	"github.com/qbs-nt/timeline-plus/color"
	"github.com/qbs-nt/timeline-plus/container"
	timeaxis "github.com/qbs-nt/timeline-plus/time_axis"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "axis.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write config: %s", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
start: 2021-01-20T00:00:00Z
end: 2021-03-03T00:00:00Z
width: 420
hiddenDates:
  - start: 2021-02-06T00:00:00Z
    end: 2021-02-08T00:00:00Z
axis:
  orientation: top
  locale: en-GB
theme:
  stroke: "#000000"
font: estimate
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() yielded unexpected error %s", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() yielded unexpected error %s", err)
	}
	if !cfg.Start.Equal(time.Date(2021, time.January, 20, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Start = %v", cfg.Start)
	}
	if diff := cmp.Diff(container.RenderSettings{WidthPx: 420, HeightPx: 60, BottomHeightPx: 40}, cfg.RenderSettings); diff != "" {
		t.Errorf("settings diff (-want +got):\n%s", diff)
	}
	wantTheme := color.DefaultTheme()
	wantTheme.Stroke = "#000000"
	if diff := cmp.Diff(wantTheme, cfg.Theme); diff != "" {
		t.Errorf("theme diff (-want +got):\n%s", diff)
	}
	if cfg.Font != FontEstimate {
		t.Errorf("Font = %s, want estimate", cfg.Font)
	}
	if cfg.Axis == nil || cfg.Axis.Orientation == nil || *cfg.Axis.Orientation != timeaxis.OrientationTop {
		t.Errorf("axis orientation was not loaded as top: %+v", cfg.Axis)
	}
	req := cfg.Request(batch.Term)
	if req.Output != batch.Term || len(req.HiddenDates) != 1 || req.Axis != cfg.Axis {
		t.Errorf("Request() = %+v does not carry the configuration", req)
	}
}

func TestLoadDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() yielded unexpected error %s", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config diff (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err == nil {
		t.Errorf("default config without a range validated")
	}
}

func TestInvalidConfigs(t *testing.T) {
	for _, test := range []struct {
		description string
		contents    string
		wantErr     string
	}{{
		description: "malformed YAML",
		contents:    "start: [",
		wantErr:     "error parsing config file",
	}, {
		description: "bad orientation",
		contents:    "axis:\n  orientation: left\n",
		wantErr:     "error parsing config file",
	}, {
		description: "inverted range",
		contents:    "start: 2021-03-03T00:00:00Z\nend: 2021-01-20T00:00:00Z\n",
		wantErr:     "must follow start",
	}, {
		description: "bad color",
		contents:    "start: 2021-01-20T00:00:00Z\nend: 2021-03-03T00:00:00Z\ntheme:\n  primary: mauve\n",
		wantErr:     "in theme",
	}, {
		description: "bad font",
		contents:    "start: 2021-01-20T00:00:00Z\nend: 2021-03-03T00:00:00Z\nfont: serif\n",
		wantErr:     "unsupported font 'serif'",
	}, {
		description: "bad axis option",
		contents:    "start: 2021-01-20T00:00:00Z\nend: 2021-03-03T00:00:00Z\naxis:\n  maxMinorChars: 0\n",
		wantErr:     "in axis",
	}, {
		description: "narrow panels",
		contents:    "start: 2021-01-20T00:00:00Z\nend: 2021-03-03T00:00:00Z\nheight: 10\n",
		wantErr:     "less than the panel heights",
	}} {
		t.Run(test.description, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, test.contents))
			if err == nil {
				err = cfg.Validate()
			}
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("got error %v, want one containing %q", err, test.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Errorf("Load() of a missing file yielded no error")
	}
}
