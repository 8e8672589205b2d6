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

package charmetrics

import (
	"errors"
	"sync"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

var errClosed = errors.New("probe is closed")

func fixedToPx(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// FontSurface measures text set in bitmap font faces.  Each style class maps
// to a face; unknown classes use the default face.
type FontSurface struct {
	mu          sync.Mutex
	faces       map[string]font.Face
	defaultFace font.Face
	hidden      bool
}

// NewFontSurface returns a FontSurface using basicfont.Face7x13 by default
// and inconsolata.Bold8x16 for majorClass.
func NewFontSurface(majorClass string) *FontSurface {
	return &FontSurface{
		faces: map[string]font.Face{
			majorClass: inconsolata.Bold8x16,
		},
		defaultFace: basicfont.Face7x13,
	}
}

// SetFace sets the face of the specified style class.  Existing probes pick
// up the change on their next read.
func (fs *FontSurface) SetFace(class string, face font.Face) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.faces[class] = face
}

// SetHidden sets whether the surface is hidden.  Probes on a hidden surface
// measure as zero.
func (fs *FontSurface) SetHidden(hidden bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.hidden = hidden
}

func (fs *FontSurface) face(class string) (font.Face, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if face, ok := fs.faces[class]; ok {
		return face, fs.hidden
	}
	return fs.defaultFace, fs.hidden
}

// NewProbe implements Surface.
func (fs *FontSurface) NewProbe(class, text string) (Probe, error) {
	return &fontProbe{
		surface: fs,
		class:   class,
		text:    text,
	}, nil
}

type fontProbe struct {
	surface     *FontSurface
	class, text string
	closed      bool
}

func (fp *fontProbe) Size() (Size, error) {
	if fp.closed {
		return Size{}, errClosed
	}
	face, hidden := fp.surface.face(fp.class)
	if hidden {
		return Size{}, nil
	}
	return Size{
		Width:  fixedToPx(font.MeasureString(face, fp.text)),
		Height: fixedToPx(face.Metrics().Height),
	}, nil
}

func (fp *fontProbe) Close() error {
	fp.closed = true
	return nil
}

// EstimateSurface estimates text size from a font size in pixels per style
// class, assuming glyphs are 0.6em wide and lines 1.2em tall.
type EstimateSurface struct {
	FontSizePx map[string]float64
	// DefaultFontSizePx applies to classes absent from FontSizePx.
	DefaultFontSizePx float64
}

// NewProbe implements Surface.
func (es *EstimateSurface) NewProbe(class, text string) (Probe, error) {
	return &estimateProbe{
		surface: es,
		class:   class,
		cells:   runewidth.StringWidth(text),
	}, nil
}

type estimateProbe struct {
	surface *EstimateSurface
	class   string
	cells   int
	closed  bool
}

func (ep *estimateProbe) Size() (Size, error) {
	if ep.closed {
		return Size{}, errClosed
	}
	size, ok := ep.surface.FontSizePx[ep.class]
	if !ok {
		size = ep.surface.DefaultFontSizePx
	}
	return Size{
		Width:  0.6 * size * float64(ep.cells),
		Height: 1.2 * size,
	}, nil
}

func (ep *estimateProbe) Close() error {
	ep.closed = true
	return nil
}

// CellSurface measures text in terminal cells, one pixel per cell.
type CellSurface struct{}

// NewProbe implements Surface.
func (CellSurface) NewProbe(class, text string) (Probe, error) {
	return &cellProbe{
		cells: runewidth.StringWidth(text),
	}, nil
}

type cellProbe struct {
	cells  int
	closed bool
}

func (cp *cellProbe) Size() (Size, error) {
	if cp.closed {
		return Size{}, errClosed
	}
	return Size{
		Width:  float64(cp.cells),
		Height: 1,
	}, nil
}

func (cp *cellProbe) Close() error {
	cp.closed = true
	return nil
}
