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

// Package service assembles the HTTP handlers serving rendered time axes.
package service

import (
	"net/http"

	"github.com/qbs-nt/timeline-plus/batch"
	"github.com/qbs-nt/timeline-plus/handlers"
)

// Service serves time axes over HTTP.
type Service struct {
	axisHandler handlers.AxisHandler
}

// New returns a new Service rendering axes with renderer and remembering up
// to cacheSize recent renditions.  Any provided wrappers are applied to every
// handler.
func New(renderer *batch.Renderer, cacheSize int, wrappers ...handlers.WrapFunc) (*Service, error) {
	ah, err := handlers.NewAxisHandler(renderer, cacheSize)
	if err != nil {
		return nil, err
	}
	ah.Wrap(wrappers...)
	return &Service{
		axisHandler: ah,
	}, nil
}

// RegisterHandlers registers all of the Service's handlers on mux.
func (s *Service) RegisterHandlers(mux *http.ServeMux) {
	for path, handler := range s.axisHandler.HandlersByPath() {
		mux.HandleFunc(path, handler)
	}
}
