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

// Package charmetrics measures the rendered size of a reference glyph in the
// label styles of an axis.
//
// Measurement happens through a Surface, which creates one hidden Probe per
// style class.  Probes are kept in an LRU cache and re-read on every Measure,
// since the surface may have been resized or restyled since the last read.
package charmetrics

import (
	"fmt"

	"github.com/hashicorp/golang-lru/simplelru"
)

const (
	// ReferenceGlyph is the text of every probe.
	ReferenceGlyph = "0"

	// DefaultCapacity is the default number of cached probes.
	DefaultCapacity = 16

	// FallbackCharWidth is used by axes when a measured width is zero, for
	// instance because the surface is hidden.
	FallbackCharWidth = 10
)

// Size is a measured extent in pixels.
type Size struct {
	Width, Height float64
}

// Metrics holds the reference glyph size of the minor and major label
// styles.
type Metrics struct {
	Minor, Major Size
}

// Probe is a hidden element whose rendered size can be read.
type Probe interface {
	Size() (Size, error)
	Close() error
}

// Surface is implemented by types that can create probes.
type Surface interface {
	// NewProbe returns a new probe containing text in the style class.
	NewProbe(class, text string) (Probe, error)
}

// Cache holds one probe per style class.
type Cache struct {
	surface Surface
	// An LRU cache holding the most recently-measured probes.
	lru *simplelru.LRU
}

// New returns a new Cache measuring on the provided surface and holding at
// most capacity probes.  Evicted probes are closed.
func New(surface Surface, capacity int) (*Cache, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	lru, err := simplelru.NewLRU(capacity, func(key, value interface{}) {
		if probe, ok := value.(Probe); ok {
			probe.Close()
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create probe cache: %w", err)
	}
	return &Cache{
		surface: surface,
		lru:     lru,
	}, nil
}

// Measure returns the current size of the reference glyph in the specified
// style class.  The probe is created on first use and re-read on every call.
func (c *Cache) Measure(class string) (Size, error) {
	probe, err := c.probe(class)
	if err != nil {
		return Size{}, err
	}
	size, err := probe.Size()
	if err != nil {
		return Size{}, fmt.Errorf("failed to measure class '%s': %w", class, err)
	}
	return size, nil
}

// Metrics measures both label styles.
func (c *Cache) Metrics(minorClass, majorClass string) (Metrics, error) {
	minor, err := c.Measure(minorClass)
	if err != nil {
		return Metrics{}, err
	}
	major, err := c.Measure(majorClass)
	if err != nil {
		return Metrics{}, err
	}
	return Metrics{
		Minor: minor,
		Major: major,
	}, nil
}

// Len returns the number of live probes.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Close closes every probe held by the receiver.
func (c *Cache) Close() {
	c.lru.Purge()
}

func (c *Cache) probe(class string) (Probe, error) {
	probeIf, ok := c.lru.Get(class)
	if ok {
		probe, ok := probeIf.(Probe)
		if !ok {
			return nil, fmt.Errorf("cached entry for class '%s' is not a probe", class)
		}
		return probe, nil
	}
	probe, err := c.surface.NewProbe(class, ReferenceGlyph)
	if err != nil {
		return nil, fmt.Errorf("failed to create probe for class '%s': %w", class, err)
	}
	c.lru.Add(class, probe)
	return probe, nil
}
