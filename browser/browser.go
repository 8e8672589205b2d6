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

// Package browser drives a headless Chrome instance, through chromedp, to
// rasterize SVG timelines and to measure label text as a browser lays it out.
package browser

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"strings"

	"github.com/chromedp/chromedp"
)

// DefaultStylesheet styles the measurement page.
const DefaultStylesheet = `.timeline-text { font: 13px monospace; white-space: nowrap; }
.timeline-major { font-weight: bold; }`

// Format is a raster image format.
type Format string

// Supported raster formats.
const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
)

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	}
	return "", fmt.Errorf("unsupported image format '%s'", s)
}

type config struct {
	allocatorOpts []chromedp.ExecAllocatorOption
	stylesheet    string
	logger        *log.Logger
}

// Option configures a Browser.
type Option func(*config)

// WithAllocatorOptions appends options used to launch Chrome.
func WithAllocatorOptions(opts ...chromedp.ExecAllocatorOption) Option {
	return func(c *config) {
		c.allocatorOpts = append(c.allocatorOpts, opts...)
	}
}

// WithStylesheet replaces the stylesheet of the measurement page.
func WithStylesheet(css string) Option {
	return func(c *config) {
		c.stylesheet = css
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Browser is a running headless Chrome.  Each Rasterize call and each
// Surface uses its own tab.
type Browser struct {
	ctx        context.Context
	cancel     func()
	stylesheet string
	logger     *log.Logger
}

// New launches a headless Chrome, which stops when ctx is done or Close is
// called.
func New(ctx context.Context, opts ...Option) (*Browser, error) {
	cfg := &config{
		allocatorOpts: append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Headless),
		stylesheet:    DefaultStylesheet,
		logger:        log.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, cfg.allocatorOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	b := &Browser{
		ctx: browserCtx,
		cancel: func() {
			cancelBrowser()
			cancelAlloc()
		},
		stylesheet: cfg.stylesheet,
		logger:     cfg.logger,
	}
	// Running no actions starts the browser.
	if err := chromedp.Run(browserCtx); err != nil {
		b.cancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	return b, nil
}

// Close stops the browser.
func (b *Browser) Close() error {
	b.cancel()
	return nil
}

// tab returns a new tab that is closed when ctx is done.
func (b *Browser) tab(ctx context.Context) (context.Context, func()) {
	tabCtx, cancelTab := chromedp.NewContext(b.ctx)
	stop := context.AfterFunc(ctx, cancelTab)
	return tabCtx, func() {
		stop()
		cancelTab()
	}
}

func dataURI(mediaType string, content []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(content)
}

// Rasterize renders svg in the browser and writes it to w in the specified
// format.
func (b *Browser) Rasterize(ctx context.Context, svg []byte, format Format, w io.Writer) error {
	tabCtx, cancel := b.tab(ctx)
	defer cancel()
	var screenshot []byte
	if err := chromedp.Run(tabCtx,
		chromedp.Navigate(dataURI("image/svg+xml", svg)),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		chromedp.Screenshot(`svg`, &screenshot, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("failed to rasterize SVG: %w", err)
	}
	if len(screenshot) == 0 {
		return fmt.Errorf("failed to rasterize SVG: empty screenshot")
	}
	b.logger.Printf("Rasterized %d bytes of SVG to %s", len(svg), format)
	return encode(screenshot, format, w)
}

// encode writes the PNG image in screenshot to w in the specified format.
func encode(screenshot []byte, format Format, w io.Writer) error {
	switch format {
	case PNG:
		if _, err := w.Write(screenshot); err != nil {
			return fmt.Errorf("failed to write PNG: %w", err)
		}
		return nil
	case JPEG:
		img, err := png.Decode(bytes.NewReader(screenshot))
		if err != nil {
			return fmt.Errorf("failed to decode screenshot: %w", err)
		}
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: 90}); err != nil {
			return fmt.Errorf("failed to encode JPEG: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unsupported image format '%s'", format)
}
