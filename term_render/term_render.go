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

// Package termrender renders timelines as styled terminal text.  One pixel of
// the timeline maps to one terminal cell, so axes rendered here should
// measure their labels with charmetrics.CellSurface.
package termrender

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/qbs-nt/timeline-plus/color"
	"github.com/qbs-nt/timeline-plus/container"
	"github.com/qbs-nt/timeline-plus/drawing"
)

// Grid line glyphs.
const (
	MajorGlyph   = '┃'
	MinorGlyph   = '│'
	SubstepGlyph = '╎'
)

type ink int

const (
	blank ink = iota
	minorInk
	majorInk
	substepInk
	textInk
	majorTextInk
)

type cell struct {
	r   rune
	ink ink
	// Wide runes occupy a cell followed by a continuation cell.
	continuation bool
}

type canvas struct {
	width int
	rows  [][]cell
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width}
	for range height {
		row := make([]cell, width)
		for i := range row {
			row[i] = cell{r: ' '}
		}
		c.rows = append(c.rows, row)
	}
	return c
}

func (c *canvas) set(x, y int, r rune, ink ink) {
	if y < 0 || y >= len(c.rows) || x < 0 || x >= c.width {
		return
	}
	c.rows[y][x] = cell{r: r, ink: ink}
}

// write draws s from column x, clipped to the canvas.
func (c *canvas) write(x, y int, s string, ink ink) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x >= 0 && x+w <= c.width {
			c.set(x, y, r, ink)
			for i := 1; i < w; i++ {
				c.rows[y][x+i] = cell{continuation: true, ink: ink}
			}
		}
		x += w
	}
}

func cellOf(v float64) int {
	return int(math.Floor(v))
}

// Renderer renders timelines with a lipgloss renderer.
type Renderer struct {
	styles map[ink]lipgloss.Style
}

// New returns a Renderer coloring its output with theme on r.  If r is nil,
// lipgloss's default renderer is used.
func New(r *lipgloss.Renderer, theme color.Theme) (*Renderer, error) {
	if err := theme.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	base := r.NewStyle()
	if theme.Background != "" {
		base = base.Background(lipgloss.Color(theme.Background))
	}
	fg := func(c string) lipgloss.Style {
		if c == "" {
			return base
		}
		return base.Foreground(lipgloss.Color(c))
	}
	return &Renderer{
		styles: map[ink]lipgloss.Style{
			blank:        base,
			minorInk:     fg(theme.Secondary),
			majorInk:     fg(theme.Primary),
			substepInk:   fg(theme.Substep()),
			textInk:      fg(theme.Stroke),
			majorTextInk: fg(theme.Stroke).Bold(true),
		},
	}, nil
}

// Render returns tl as terminal text, one line per pixel row.
func (r *Renderer) Render(tl *container.Timeline) string {
	return r.RenderDrawing(drawing.Flatten(tl))
}

// RenderDrawing returns d as terminal text, one line per pixel row.
func (r *Renderer) RenderDrawing(d drawing.Drawing) string {
	c := newCanvas(cellOf(d.Width), cellOf(d.Height))
	for _, line := range d.Lines {
		glyph, ink := MinorGlyph, minorInk
		switch line.Kind {
		case drawing.Major:
			glyph, ink = MajorGlyph, majorInk
		case drawing.Substep:
			glyph, ink = SubstepGlyph, substepInk
		}
		x := cellOf(line.X)
		for y := cellOf(line.Y1); y < cellOf(line.Y2); y++ {
			c.set(x, y, glyph, ink)
		}
	}
	for _, text := range d.Texts {
		ink := textInk
		if text.Major {
			ink = majorTextInk
		}
		s := text.Text
		if text.Width > 0 {
			s = runewidth.Truncate(s, cellOf(text.Width), "")
		}
		x := cellOf(text.X)
		if text.End {
			x -= runewidth.StringWidth(s)
		}
		c.write(x, cellOf(text.Y), s, ink)
	}
	return r.paint(c)
}

// paint renders each row as runs of equally styled cells.
func (r *Renderer) paint(c *canvas) string {
	lines := make([]string, 0, len(c.rows))
	for _, row := range c.rows {
		var sb, run strings.Builder
		runInk := blank
		flush := func() {
			if run.Len() > 0 {
				sb.WriteString(r.styles[runInk].Render(run.String()))
				run.Reset()
			}
		}
		for _, cl := range row {
			if cl.continuation {
				continue
			}
			if cl.ink != runInk {
				flush()
				runInk = cl.ink
			}
			run.WriteRune(cl.r)
		}
		flush()
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}
