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

// Package elementpool recycles the visual nodes of an axis across redraws.
//
// A frame begins with BeginFrame, which moves every element active in the
// previous frame into a free pool.  During the frame, Acquire takes an element
// of the requested kind from the pool, or creates one if the pool is empty,
// and Activate marks it as in use.  ReleaseUnused ends the frame, destroying
// whatever is still pooled.  A Pool is not safe for concurrent use; it belongs
// to a single axis.
package elementpool

import (
	"fmt"

	"github.com/qbs-nt/timeline-plus/scene"
)

// Kind is the kind of a visual element.
type Kind int

// Element kinds.
const (
	Line Kind = iota
	MajorLabel
	MinorLabel
	// SubstepLine elements share the Line pool.
	SubstepLine
)

func (k Kind) String() string {
	switch k {
	case Line:
		return "line"
	case MajorLabel:
		return "majorLabel"
	case MinorLabel:
		return "minorLabel"
	case SubstepLine:
		return "substepLine"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// pool returns the pool from which elements of k are drawn.
func (k Kind) pool() Kind {
	if k == SubstepLine {
		return Line
	}
	return k
}

// Element is a recyclable visual element.
type Element struct {
	// Kind is the kind the element was last acquired as.
	Kind Kind
	Node *scene.Node

	generation uint64
	active     bool
}

// Generation returns the frame in which the receiver was last acquired.
func (e *Element) Generation() uint64 {
	return e.generation
}

// Stats counts the receiver's element traffic since creation.
type Stats struct {
	Created, Reused, Released int
	// Active and Free are the current element counts.
	Active, Free int
}

// Pool is an arena of recyclable elements indexed by kind.
type Pool struct {
	create  func(Kind) *scene.Node
	release func(*Element)

	generation uint64
	free       map[Kind][]*Element
	active     []*Element
	pending    []*Element
	stats      Stats
}

// Option configures a Pool.
type Option func(*Pool)

// WithRelease sets a function invoked on every element the Pool destroys.
// By default destroyed elements are detached from their parents.
func WithRelease(release func(*Element)) Option {
	return func(p *Pool) {
		p.release = release
	}
}

// New returns a new, empty Pool creating nodes with create.
func New(create func(Kind) *scene.Node, opts ...Option) *Pool {
	p := &Pool{
		create: create,
		release: func(e *Element) {
			e.Node.Remove()
		},
		free: map[Kind][]*Element{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Generation returns the receiver's current frame number.
func (p *Pool) Generation() uint64 {
	return p.generation
}

// BeginFrame starts a new frame, moving every active element into the free
// pool.
func (p *Pool) BeginFrame() {
	p.generation++
	for _, e := range p.active {
		e.active = false
		p.free[e.Kind.pool()] = append(p.free[e.Kind.pool()], e)
	}
	p.active = p.active[:0]
}

// Acquire returns an element of the specified kind, reused from the free pool
// if possible.
func (p *Pool) Acquire(kind Kind) *Element {
	var e *Element
	key := kind.pool()
	if free := p.free[key]; len(free) > 0 {
		// Reuse from the head so that elements keep their order across frames.
		e = free[0]
		p.free[key] = free[1:]
		p.stats.Reused++
	} else {
		e = &Element{Node: p.create(kind)}
		p.stats.Created++
	}
	e.Kind = kind
	e.generation = p.generation
	p.pending = append(p.pending, e)
	return e
}

// Activate marks e as in use during the current frame.  It returns an error
// if e was not acquired during the current frame.
func (p *Pool) Activate(e *Element) error {
	if e.generation != p.generation {
		return fmt.Errorf("%s element from frame %d activated in frame %d", e.Kind, e.generation, p.generation)
	}
	if e.active {
		return nil
	}
	e.active = true
	p.active = append(p.active, e)
	return nil
}

// ReleaseUnused ends the current frame, destroying every pooled element and
// every element acquired but never activated.
func (p *Pool) ReleaseUnused() {
	for _, key := range []Kind{Line, MajorLabel, MinorLabel} {
		for _, e := range p.free[key] {
			p.destroy(e)
		}
		delete(p.free, key)
	}
	for _, e := range p.pending {
		if !e.active {
			p.destroy(e)
		}
	}
	p.pending = p.pending[:0]
}

// Active returns the elements active in the current frame, in activation
// order.
func (p *Pool) Active() []*Element {
	return p.active
}

// Destroy releases every element the receiver holds.
func (p *Pool) Destroy() {
	p.BeginFrame()
	p.ReleaseUnused()
}

// Stats returns the receiver's statistics.
func (p *Pool) Stats() Stats {
	ret := p.stats
	ret.Active = len(p.active)
	for _, free := range p.free {
		ret.Free += len(free)
	}
	return ret
}

func (p *Pool) destroy(e *Element) {
	p.release(e)
	p.stats.Released++
}
