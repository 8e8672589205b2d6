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

// Package batch provides Renderer, a type for rendering many independent
// axis requests concurrently.
package batch

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	charmetrics "github.com/qbs-nt/timeline-plus/char_metrics"
	"github.com/qbs-nt/timeline-plus/container"
	"github.com/qbs-nt/timeline-plus/diag"
	hiddendates "github.com/qbs-nt/timeline-plus/hidden_dates"
	svgrender "github.com/qbs-nt/timeline-plus/svg_render"
	termrender "github.com/qbs-nt/timeline-plus/term_render"
	timeaxis "github.com/qbs-nt/timeline-plus/time_axis"
	"golang.org/x/sync/errgroup"
)

// Output is the rendition of a response.
type Output string

// Supported outputs.
const (
	SVG  Output = "svg"
	Term Output = "term"
)

// Request describes a single axis to render.
type Request struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`

	container.RenderSettings `yaml:",inline"`

	HiddenDates []hiddendates.Range    `json:"hiddenDates,omitempty" yaml:"hiddenDates,omitempty"`
	Axis        *timeaxis.OptionsPatch `json:"axis,omitempty" yaml:"axis,omitempty"`
	// Output defaults to SVG.
	Output Output `json:"output,omitempty" yaml:"output,omitempty"`
}

// Response is the rendition of a single Request.
type Response struct {
	Output Output `json:"output"`
	Body   string `json:"body"`
	// Scale is the scale the axis was drawn at, e.g. "5 days".
	Scale string `json:"scale"`
}

// SurfaceFunc returns the measurement surface of a new axis.  It must
// support concurrent calls.
type SurfaceFunc func() charmetrics.Surface

// Renderer renders axis requests.  Each request is drawn by its own axis, so
// a Renderer supports concurrent Render calls as long as its SurfaceFunc
// does.
type Renderer struct {
	surfaces    SurfaceFunc
	svgSettings svgrender.Settings
	term        *termrender.Renderer
	warnings    diag.Warner
	logger      *log.Logger
	limit       int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSVGSettings sets the SVG settings.
func WithSVGSettings(settings svgrender.Settings) Option {
	return func(r *Renderer) {
		r.svgSettings = settings
	}
}

// WithTermRenderer sets the terminal renderer.
func WithTermRenderer(term *termrender.Renderer) Option {
	return func(r *Renderer) {
		r.term = term
	}
}

// WithLimit bounds the number of requests rendered at once.  A limit of 0
// or less is unbounded.
func WithLimit(limit int) Option {
	return func(r *Renderer) {
		r.limit = limit
	}
}

// New returns a new Renderer drawing axes measured on the surfaces returned
// by surfaces, and reporting to warnings and logger.
func New(surfaces SurfaceFunc, warnings diag.Warner, logger *log.Logger, opts ...Option) (*Renderer, error) {
	if logger == nil {
		logger = log.Default()
	}
	if warnings == nil {
		warnings = diag.NewOnce(logger)
	}
	r := &Renderer{
		surfaces:    surfaces,
		svgSettings: svgrender.DefaultSettings(),
		warnings:    warnings,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.term == nil {
		term, err := termrender.New(nil, r.svgSettings.Theme)
		if err != nil {
			return nil, err
		}
		r.term = term
	}
	return r, nil
}

// Render renders the provided requests concurrently, returning their
// responses in request order.  Any failing request cancels the entire batch.
func (r *Renderer) Render(ctx context.Context, reqs ...Request) ([]Response, error) {
	resps := make([]Response, len(reqs))
	errg, ctx := errgroup.WithContext(ctx)
	if r.limit > 0 {
		errg.SetLimit(r.limit)
	}
	for idx, req := range reqs {
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			resp, err := r.RenderOne(req)
			if err != nil {
				return fmt.Errorf("request %d: %w", idx, err)
			}
			resps[idx] = resp
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	return resps, nil
}

// RenderOne renders a single request.
func (r *Renderer) RenderOne(req Request) (Response, error) {
	tl, err := container.New(req.Start, req.End, req.RenderSettings, req.HiddenDates...)
	if err != nil {
		return Response{}, err
	}
	axis, err := timeaxis.New(tl, r.surfaces(), r.warnings, r.logger, req.Axis)
	if err != nil {
		return Response{}, err
	}
	defer axis.Destroy()
	axis.Redraw()
	resp := Response{
		Output: req.Output,
		Scale:  axis.Frame().Scale.String(),
	}
	switch req.Output {
	case "", SVG:
		resp.Output = SVG
		var buf bytes.Buffer
		if err := svgrender.Render(&buf, tl, r.svgSettings); err != nil {
			return Response{}, err
		}
		resp.Body = buf.String()
	case Term:
		resp.Body = r.term.Render(tl)
	default:
		return Response{}, fmt.Errorf("unsupported output '%s'", req.Output)
	}
	return resp, nil
}
