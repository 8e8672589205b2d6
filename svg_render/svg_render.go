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

// Package svgrender renders timelines as SVG documents.
package svgrender

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/qbs-nt/timeline-plus/color"
	"github.com/qbs-nt/timeline-plus/container"
	"github.com/qbs-nt/timeline-plus/drawing"
)

// Settings configures SVG output.
type Settings struct {
	Theme color.Theme
	// FontFamily and FontSizePx style label text.
	FontFamily string
	FontSizePx float64
	// MajorFontWeight styles major label text.
	MajorFontWeight string
}

// DefaultSettings returns the default SVG settings.
func DefaultSettings() Settings {
	return Settings{
		Theme:           color.DefaultTheme(),
		FontFamily:      "monospace",
		FontSizePx:      13,
		MajorFontWeight: "bold",
	}
}

func px(v float64) int {
	return int(math.Round(v))
}

// Render writes tl as an SVG document to w.
func Render(w io.Writer, tl *container.Timeline, settings Settings) error {
	if err := settings.Theme.Validate(); err != nil {
		return err
	}
	return RenderDrawing(w, drawing.Flatten(tl), settings)
}

// RenderDrawing writes d as an SVG document to w.
func RenderDrawing(w io.Writer, d drawing.Drawing, settings Settings) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(px(d.Width), px(d.Height))
	theme := settings.Theme
	if theme.Background != "" {
		canvas.Rect(0, 0, px(d.Width), px(d.Height), "fill:"+theme.Background)
	}
	canvas.Group(`class="timeline-grid"`, `shape-rendering="crispEdges"`)
	for _, line := range d.Lines {
		stroke := theme.Secondary
		switch line.Kind {
		case drawing.Major:
			stroke = theme.Primary
		case drawing.Substep:
			stroke = theme.Substep()
		}
		canvas.Line(px(line.X), px(line.Y1), px(line.X), px(line.Y2),
			attr("class", line.Class),
			"stroke:"+stroke+";stroke-width:1")
	}
	canvas.Gend()
	canvas.Group(`class="timeline-labels"`,
		fmt.Sprintf(`font-family="%s"`, settings.FontFamily),
		fmt.Sprintf(`font-size="%gpx"`, settings.FontSizePx),
		fmt.Sprintf(`fill="%s"`, theme.Stroke))
	for _, text := range d.Texts {
		attrs := []string{attr("class", text.Class), `dominant-baseline="hanging"`}
		if text.End {
			attrs = append(attrs, `text-anchor="end"`)
		}
		if text.Major && settings.MajorFontWeight != "" {
			attrs = append(attrs, attr("font-weight", settings.MajorFontWeight))
		}
		canvas.Text(px(text.X), px(text.Y), text.Text, attrs...)
	}
	canvas.Gend()
	canvas.End()
	return ew.err
}

// attr formats an XML attribute.  Values are class lists and keywords, which
// need no escaping.
func attr(name, value string) string {
	return fmt.Sprintf(`%s="%s"`, name, value)
}

// errWriter remembers the first write error, since svgo does not report
// them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}
