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

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/simplelru"
	"github.com/qbs-nt/timeline-plus/batch"
	timeaxis "github.com/qbs-nt/timeline-plus/time_axis"
)

// HandlerFunc is a HTTP handler function.
type HandlerFunc func(http.ResponseWriter, *http.Request)

// WrapFunc is a function that rewrites a HandlerFunc.
type WrapFunc func(HandlerFunc) HandlerFunc

// Handler describes an HTTP handler.
type Handler interface {
	HandlersByPath() map[string]func(http.ResponseWriter, *http.Request)
}

// AxisHandler is a Handler for axis renditions.  It supports a Wrap method
// that wraps all handlers, e.g. adding cookies.
type AxisHandler interface {
	Handler
	Wrap(...WrapFunc) Handler
}

const (
	axisMethod = "/axis.svg"
	axesMethod = "/axes"
)

// sendHTTPResponse serializes the provided value as JSON and sends it along
// the provided http.ResponseWriter.  Any failures during serialization yield
// an HTTP internal status error.
func sendHTTPResponse(resp any, w http.ResponseWriter) {
	respStr, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Failed to marshal response: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	fmt.Fprint(w, string(respStr))
}

// axisHandler serves axis renditions, remembering the most recent ones.
type axisHandler struct {
	renderer *batch.Renderer
	wrappers []WrapFunc

	mu    sync.Mutex
	cache *simplelru.LRU
}

// NewAxisHandler returns a new Handler serving axes rendered by renderer.
// Up to cacheSize responses are remembered.
func NewAxisHandler(renderer *batch.Renderer, cacheSize int) (AxisHandler, error) {
	cache, err := simplelru.NewLRU(cacheSize, nil /* no onEvict policy */)
	if err != nil {
		return nil, err
	}
	return &axisHandler{
		renderer: renderer,
		cache:    cache,
	}, nil
}

func (ah *axisHandler) Wrap(wrappers ...WrapFunc) Handler {
	ah.wrappers = append(ah.wrappers, wrappers...)
	return ah
}

// HandlersByPath returns a mapping of HTTP request path to HTTP handler for
// this Handler.
func (ah *axisHandler) HandlersByPath() map[string]func(http.ResponseWriter, *http.Request) {
	ret := map[string]func(http.ResponseWriter, *http.Request){}
	for path, h := range map[string]HandlerFunc{
		axisMethod: ah.getAxisHandler,
		axesMethod: ah.getAxesHandler,
	} {
		for _, wrapper := range ah.wrappers {
			h = wrapper(h)
		}
		ret[path] = h
	}
	return ret
}

// render renders req, or returns its remembered response.
func (ah *axisHandler) render(req batch.Request) (batch.Response, error) {
	key, err := json.Marshal(req)
	if err != nil {
		return batch.Response{}, err
	}
	ah.mu.Lock()
	respIf, ok := ah.cache.Get(string(key))
	ah.mu.Unlock()
	if ok {
		if resp, ok := respIf.(batch.Response); ok {
			return resp, nil
		}
	}
	resp, err := ah.renderer.RenderOne(req)
	if err != nil {
		return batch.Response{}, err
	}
	ah.mu.Lock()
	ah.cache.Add(string(key), resp)
	ah.mu.Unlock()
	return resp, nil
}

func (ah *axisHandler) getAxisHandler(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	axisReq, err := requestFromForm(req)
	if err != nil {
		http.Error(w, "Failed to parse axis request: "+err.Error(), http.StatusBadRequest)
		return
	}
	axisReq.Output = batch.SVG
	resp, err := ah.render(axisReq)
	if err != nil {
		http.Error(w, "Axis request failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Add("Content-Type", "image/svg+xml")
	fmt.Fprint(w, resp.Body)
}

func (ah *axisHandler) getAxesHandler(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		http.Error(w, "Axes requests must be POSTed", http.StatusMethodNotAllowed)
		return
	}
	var axisReqs []batch.Request
	if err := json.NewDecoder(req.Body).Decode(&axisReqs); err != nil {
		http.Error(w, "Failed to parse axis requests: "+err.Error(), http.StatusBadRequest)
		return
	}
	resps, err := ah.renderer.Render(req.Context(), axisReqs...)
	if err != nil {
		http.Error(w, "Axes request failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	sendHTTPResponse(resps, w)
}

// requestFromForm builds an axis request from the `req` form value, a JSON
// batch.Request, or else from individual form values: `start` and `end` in
// RFC 3339, the pixel dimensions `width`, `height`, `topHeight`, and
// `bottomHeight`, and the axis options `orientation`, `locale`, and
// `timezone`.
func requestFromForm(req *http.Request) (batch.Request, error) {
	var ret batch.Request
	if reqStr := req.Form.Get("req"); reqStr != "" {
		if err := json.Unmarshal([]byte(reqStr), &ret); err != nil {
			return batch.Request{}, err
		}
		return ret, nil
	}
	for _, f := range []struct {
		name string
		dst  *time.Time
	}{
		{"start", &ret.Start},
		{"end", &ret.End},
	} {
		t, err := time.Parse(time.RFC3339, req.Form.Get(f.name))
		if err != nil {
			return batch.Request{}, fmt.Errorf("invalid %s: %w", f.name, err)
		}
		*f.dst = t
	}
	for _, f := range []struct {
		name     string
		dst      *float64
		required bool
	}{
		{"width", &ret.WidthPx, true},
		{"height", &ret.HeightPx, true},
		{"topHeight", &ret.TopHeightPx, false},
		{"bottomHeight", &ret.BottomHeightPx, false},
	} {
		v := req.Form.Get(f.name)
		if v == "" && !f.required {
			continue
		}
		px, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return batch.Request{}, fmt.Errorf("invalid %s: %w", f.name, err)
		}
		*f.dst = px
	}
	patch := &timeaxis.OptionsPatch{}
	if v := req.Form.Get("orientation"); v != "" {
		orientation, err := timeaxis.ParseOrientation(v)
		if err != nil {
			return batch.Request{}, err
		}
		patch.Orientation = &orientation
	}
	if v := req.Form.Get("locale"); v != "" {
		patch.Locale = &v
	}
	if v := req.Form.Get("timezone"); v != "" {
		patch.Timezone = &v
	}
	ret.Axis = patch
	return ret, nil
}
