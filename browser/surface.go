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

package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/chromedp/chromedp"
	charmetrics "github.com/qbs-nt/timeline-plus/char_metrics"
)

// Surface is a charmetrics.Surface measuring text laid out by the browser.
// Probes are hidden elements of a measurement page styled with the browser's
// stylesheet.  A Surface is safe for concurrent use.
type Surface struct {
	ctx    context.Context
	cancel func()

	mu     sync.Mutex
	nextID int
}

// Surface opens a measurement page in a new tab, which is closed when ctx is
// done or the Surface is closed.
func (b *Browser) Surface(ctx context.Context) (*Surface, error) {
	tabCtx, cancel := b.tab(ctx)
	if err := chromedp.Run(tabCtx,
		chromedp.Navigate(dataURI("text/html", []byte(measurementPage(b.stylesheet)))),
		chromedp.WaitReady(`body`, chromedp.ByQuery),
	); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to open measurement page: %w", err)
	}
	return &Surface{
		ctx:    tabCtx,
		cancel: cancel,
	}, nil
}

// Close closes the measurement page.
func (s *Surface) Close() error {
	s.cancel()
	return nil
}

// NewProbe implements charmetrics.Surface.
func (s *Surface) NewProbe(class, text string) (charmetrics.Probe, error) {
	s.mu.Lock()
	s.nextID++
	id := fmt.Sprintf("probe-%d", s.nextID)
	s.mu.Unlock()
	var ok bool
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(createScript(id, class, text), &ok)); err != nil {
		return nil, fmt.Errorf("failed to create probe for '%s': %w", class, err)
	}
	return &probe{
		surface: s,
		id:      id,
	}, nil
}

type probe struct {
	surface *Surface
	id      string
}

type rect struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Size implements charmetrics.Probe.  The element's layout is read anew on
// every call.
func (p *probe) Size() (charmetrics.Size, error) {
	var r rect
	if err := chromedp.Run(p.surface.ctx, chromedp.Evaluate(sizeScript(p.id), &r)); err != nil {
		return charmetrics.Size{}, fmt.Errorf("failed to measure probe %s: %w", p.id, err)
	}
	return charmetrics.Size{Width: r.Width, Height: r.Height}, nil
}

// Close implements charmetrics.Probe.
func (p *probe) Close() error {
	var ok bool
	if err := chromedp.Run(p.surface.ctx, chromedp.Evaluate(removeScript(p.id), &ok)); err != nil {
		return fmt.Errorf("failed to remove probe %s: %w", p.id, err)
	}
	return nil
}

// jsString returns s as a JavaScript string literal.
func jsString(s string) string {
	buf, _ := json.Marshal(s)
	return string(buf)
}

func measurementPage(stylesheet string) string {
	return "<!DOCTYPE html><html><head><style>" + stylesheet + "</style></head><body></body></html>"
}

func createScript(id, class, text string) string {
	return fmt.Sprintf(`(() => {
  const e = document.createElement('div');
  e.id = %s;
  e.className = %s;
  e.textContent = %s;
  e.style.position = 'absolute';
  e.style.visibility = 'hidden';
  document.body.appendChild(e);
  return true;
})()`, jsString(id), jsString(class), jsString(text))
}

func sizeScript(id string) string {
	return fmt.Sprintf(`(() => {
  const e = document.getElementById(%s);
  if (e === null || e.hidden || getComputedStyle(e).display === 'none') {
    return {width: 0, height: 0};
  }
  return {width: e.clientWidth, height: e.clientHeight};
})()`, jsString(id))
}

func removeScript(id string) string {
	return fmt.Sprintf(`(() => {
  const e = document.getElementById(%s);
  if (e !== null) {
    e.remove();
  }
  return true;
})()`, jsString(id))
}
