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

// Package main provides the timeaxis CLI, which renders time axes to files
// or the terminal, and serves them over HTTP.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/qbs-nt/timeline-plus/batch"
	"github.com/qbs-nt/timeline-plus/browser"
	charmetrics "github.com/qbs-nt/timeline-plus/char_metrics"
	"github.com/qbs-nt/timeline-plus/config"
	"github.com/qbs-nt/timeline-plus/diag"
	"github.com/qbs-nt/timeline-plus/service"
	svgrender "github.com/qbs-nt/timeline-plus/svg_render"
	termrender "github.com/qbs-nt/timeline-plus/term_render"
	timeaxis "github.com/qbs-nt/timeline-plus/time_axis"
	"github.com/spf13/cobra"
)

var (
	configPath string

	renderFlags flags
	outputPath  string

	port      int
	cacheSize int
)

// flags override the loaded configuration when set.
type flags struct {
	start, end string
	width      float64
	format     string
	font       string
}

func main() {
	rootCmd := &cobra.Command{
		Use:          "timeaxis",
		Short:        "Render time axes",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&renderFlags.font, "font", "", "Text measurement: basic, estimate, browser, or cell")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render a single time axis",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	renderCmd.Flags().StringVar(&renderFlags.start, "start", "", "Range start (RFC 3339)")
	renderCmd.Flags().StringVar(&renderFlags.end, "end", "", "Range end (RFC 3339)")
	renderCmd.Flags().Float64Var(&renderFlags.width, "width", 0, "Axis width in pixels, or cells for terminal output")
	renderCmd.Flags().StringVar(&renderFlags.format, "format", "svg", "Output format: svg, png, jpeg, or term")
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve time axes over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().IntVar(&port, "port", 7410, "Port to serve axes on")
	serveCmd.Flags().IntVar(&cacheSize, "cache_size", 64, "Number of recent renditions to remember")

	rootCmd.AddCommand(renderCmd, serveCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// apply overrides cfg with the set flags, returning the requested output
// format.
func (f flags) apply(cfg *config.Config) (string, error) {
	for _, tf := range []struct {
		name string
		val  string
		dst  *time.Time
	}{
		{"start", f.start, &cfg.Start},
		{"end", f.end, &cfg.End},
	} {
		if tf.val == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, tf.val)
		if err != nil {
			return "", fmt.Errorf("invalid --%s: %w", tf.name, err)
		}
		*tf.dst = t
	}
	if f.width > 0 {
		cfg.WidthPx = f.width
	}
	if f.font != "" {
		font, err := config.ParseFont(f.font)
		if err != nil {
			return "", err
		}
		cfg.Font = font
	}
	switch f.format {
	case "", "svg":
		return "svg", nil
	case "term":
		// Terminal output is measured in cells.
		cfg.Font = config.FontCell
		return "term", nil
	}
	format, err := browser.ParseFormat(f.format)
	if err != nil {
		return "", err
	}
	return string(format), nil
}

// surfaces returns the SurfaceFunc measuring text in the configured font.
// The returned close function releases any browser it started.
func surfaces(ctx context.Context, cfg config.Config, b *browser.Browser) (batch.SurfaceFunc, func(), error) {
	nop := func() {}
	switch cfg.Font {
	case config.FontBasic:
		return func() charmetrics.Surface {
			return charmetrics.NewFontSurface(timeaxis.MajorMeasureClass)
		}, nop, nil
	case config.FontEstimate:
		settings := svgrender.DefaultSettings()
		return func() charmetrics.Surface {
			return &charmetrics.EstimateSurface{DefaultFontSizePx: settings.FontSizePx}
		}, nop, nil
	case config.FontCell:
		return func() charmetrics.Surface {
			return charmetrics.CellSurface{}
		}, nop, nil
	case config.FontBrowser:
		if b == nil {
			return nil, nil, fmt.Errorf("browser measurement requires a browser")
		}
		surface, err := b.Surface(ctx)
		if err != nil {
			return nil, nil, err
		}
		return func() charmetrics.Surface {
			return surface
		}, func() { surface.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unsupported font '%s'", cfg.Font)
}

func needsBrowser(cfg config.Config, format string) bool {
	return cfg.Font == config.FontBrowser || format == string(browser.PNG) || format == string(browser.JPEG)
}

func newRenderer(ctx context.Context, cfg config.Config, b *browser.Browser, logger *log.Logger, opts ...batch.Option) (*batch.Renderer, func(), error) {
	surfaceFn, closeSurfaces, err := surfaces(ctx, cfg, b)
	if err != nil {
		return nil, nil, err
	}
	settings := svgrender.DefaultSettings()
	settings.Theme = settings.Theme.With(cfg.Theme)
	term, err := termrender.New(lipgloss.NewRenderer(os.Stdout), settings.Theme)
	if err != nil {
		closeSurfaces()
		return nil, nil, err
	}
	opts = append(opts, batch.WithSVGSettings(settings), batch.WithTermRenderer(term))
	if cfg.Font == config.FontBrowser {
		// Browser measurements share a single page.
		opts = append(opts, batch.WithLimit(1))
	}
	r, err := batch.New(surfaceFn, diag.NewOnce(logger), logger, opts...)
	if err != nil {
		closeSurfaces()
		return nil, nil, err
	}
	return r, closeSurfaces, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := log.New(os.Stderr, "", log.LstdFlags)
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	format, err := renderFlags.apply(&cfg)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	var b *browser.Browser
	if needsBrowser(cfg, format) {
		if b, err = browser.New(ctx, browser.WithLogger(logger)); err != nil {
			return err
		}
		defer b.Close()
	}
	r, closeSurfaces, err := newRenderer(ctx, cfg, b, logger)
	if err != nil {
		return err
	}
	defer closeSurfaces()
	output := batch.SVG
	if format == "term" {
		output = batch.Term
	}
	resp, err := r.RenderOne(cfg.Request(output))
	if err != nil {
		return fmt.Errorf("rendering failed: %w", err)
	}
	logger.Printf("Rendered %s axis at scale %s", format, resp.Scale)

	var w io.Writer = os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	switch format {
	case "svg", "term":
		if _, err := io.WriteString(w, resp.Body); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if format == "term" && outputPath == "" {
			fmt.Fprintln(w)
		}
		return nil
	}
	return b.Rasterize(ctx, []byte(resp.Body), browser.Format(format), w)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := log.Default()
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if _, err := renderFlags.apply(&cfg); err != nil {
		return err
	}
	var b *browser.Browser
	if needsBrowser(cfg, "svg") {
		if b, err = browser.New(ctx, browser.WithLogger(logger)); err != nil {
			return err
		}
		defer b.Close()
	}
	r, closeSurfaces, err := newRenderer(ctx, cfg, b, logger)
	if err != nil {
		return err
	}
	defer closeSurfaces()
	svc, err := service.New(r, cacheSize)
	if err != nil {
		return fmt.Errorf("failed to create axis service: %w", err)
	}
	mux := http.NewServeMux()
	svc.RegisterHandlers(mux)
	hostname, err := os.Hostname()
	if err != nil {
		return fmt.Errorf("failed to get hostname: %w", err)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
	context.AfterFunc(ctx, func() { srv.Close() })
	// Provide OSC 8 (https://en.wikipedia.org/wiki/ANSI_escape_code#OSC) link for
	// compatible terminals.
	fmt.Printf("Serving time axes at \x1B]8;;http://%[1]s:%[2]d/axis.svg\x07http://%[1]s:%[2]d/axis.svg\x1B]8;;\x07\n", hostname, port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
