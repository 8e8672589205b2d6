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

// Package style supports specifying SVG or CSS styling of scene nodes.
//
// A Style instance comprises a mapping from style attribute name to value,
// both represented as strings.  Lengths in pixels are stored alongside, so
// that renderers can read back geometry without reparsing.  Which attributes
// are supported, and how they are used, is up to each renderer, but in
// general styles should have the names and expected values of CSS
// properties, e.g. `left`, `width`, or `height`.
package style

import (
	"fmt"
	"sort"
	"strings"
)

// Style defines a set of styles that can be attached to a scene node.
type Style struct {
	attrs map[string]string
	px    map[string]float64
}

// New returns a new, empty Style.
func New() *Style {
	return &Style{
		attrs: map[string]string{},
		px:    map[string]float64{},
	}
}

// Px formats the provided value as a pixel specifier.
func Px(valPx float64) string {
	return fmt.Sprintf("%.2fpx", valPx)
}

// With sets the specified attribute type and value in the receiver.
func (s *Style) With(attrType string, attrVal string) *Style {
	delete(s.px, attrType)
	s.attrs[attrType] = attrVal
	return s
}

// WithPx sets the specified attribute to a length in pixels.
func (s *Style) WithPx(attrType string, valPx float64) *Style {
	s.attrs[attrType] = Px(valPx)
	s.px[attrType] = valPx
	return s
}

// Unset removes the specified attributes from the receiver.
func (s *Style) Unset(attrTypes ...string) *Style {
	for _, attrType := range attrTypes {
		delete(s.attrs, attrType)
		delete(s.px, attrType)
	}
	return s
}

// Get returns the value of the specified attribute, and whether it is set.
func (s *Style) Get(attrType string) (string, bool) {
	val, ok := s.attrs[attrType]
	return val, ok
}

// PxOf returns the pixel length of the specified attribute, and whether it
// was set with WithPx.
func (s *Style) PxOf(attrType string) (float64, bool) {
	val, ok := s.px[attrType]
	return val, ok
}

// Clear removes all attributes from the receiver.
func (s *Style) Clear() *Style {
	clear(s.attrs)
	clear(s.px)
	return s
}

// CSS renders the receiver as an inline CSS declaration list, with
// attributes in name order.
func (s *Style) CSS() string {
	names := make([]string, 0, len(s.attrs))
	for name := range s.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	decls := make([]string, len(names))
	for idx, name := range names {
		decls[idx] = name + ": " + s.attrs[name]
	}
	return strings.Join(decls, "; ")
}
