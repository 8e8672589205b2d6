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

package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/qbs-nt/timeline-plus/config"
)

func TestApplyFlags(t *testing.T) {
	for _, test := range []struct {
		description string
		flags       flags
		wantFormat  string
		wantFont    config.Font
		wantWidth   float64
		wantErr     string
	}{{
		description: "defaults",
		wantFormat:  "svg",
		wantFont:    config.FontBasic,
		wantWidth:   800,
	}, {
		description: "overrides",
		flags:       flags{start: "2021-01-20T00:00:00Z", width: 420, format: "png", font: "estimate"},
		wantFormat:  "png",
		wantFont:    config.FontEstimate,
		wantWidth:   420,
	}, {
		description: "terminal output measures cells",
		flags:       flags{format: "term", font: "basic"},
		wantFormat:  "term",
		wantFont:    config.FontCell,
		wantWidth:   800,
	}, {
		description: "bad start",
		flags:       flags{start: "yesterday"},
		wantErr:     "invalid --start",
	}, {
		description: "bad format",
		flags:       flags{format: "gif"},
		wantErr:     "unsupported image format 'gif'",
	}, {
		description: "bad font",
		flags:       flags{font: "serif"},
		wantErr:     "unsupported font 'serif'",
	}} {
		t.Run(test.description, func(t *testing.T) {
			cfg := config.Default()
			format, err := test.flags.apply(&cfg)
			if test.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), test.wantErr) {
					t.Fatalf("apply() yielded error %v, want one containing %q", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("apply() yielded unexpected error %s", err)
			}
			if format != test.wantFormat || cfg.Font != test.wantFont || cfg.WidthPx != test.wantWidth {
				t.Errorf("apply() = %s, font %s, width %v; want %s, font %s, width %v",
					format, cfg.Font, cfg.WidthPx, test.wantFormat, test.wantFont, test.wantWidth)
			}
			if test.flags.start != "" && !cfg.Start.Equal(time.Date(2021, time.January, 20, 0, 0, 0, 0, time.UTC)) {
				t.Errorf("Start = %v", cfg.Start)
			}
		})
	}
}

func TestSurfaces(t *testing.T) {
	fontSizePx := 13.0
	for _, test := range []struct {
		font      config.Font
		wantWidth float64
	}{
		{config.FontBasic, 7},
		{config.FontEstimate, 0.6 * fontSizePx},
		{config.FontCell, 1},
	} {
		t.Run(string(test.font), func(t *testing.T) {
			cfg := config.Default()
			cfg.Font = test.font
			surfaceFn, closeSurfaces, err := surfaces(context.Background(), cfg, nil)
			if err != nil {
				t.Fatalf("surfaces() yielded unexpected error %s", err)
			}
			defer closeSurfaces()
			probe, err := surfaceFn().NewProbe("timeline-text timeline-minor timeline-measure", "0")
			if err != nil {
				t.Fatalf("NewProbe() yielded unexpected error %s", err)
			}
			defer probe.Close()
			size, err := probe.Size()
			if err != nil {
				t.Fatalf("Size() yielded unexpected error %s", err)
			}
			if size.Width != test.wantWidth {
				t.Errorf("width of '0' = %v, want %v", size.Width, test.wantWidth)
			}
		})
	}
	cfg := config.Default()
	cfg.Font = config.FontBrowser
	if _, _, err := surfaces(context.Background(), cfg, nil); err == nil {
		t.Errorf("browser measurement without a browser yielded no error")
	}
}
