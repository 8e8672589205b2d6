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

package elementpool

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/qbs-nt/timeline-plus/scene"
)

func newPool(parent *scene.Node) *Pool {
	return New(func(kind Kind) *scene.Node {
		return parent.AppendChild(scene.New(kind.String()))
	})
}

func frame(p *Pool, kinds ...Kind) []*Element {
	p.BeginFrame()
	var ret []*Element
	for _, kind := range kinds {
		e := p.Acquire(kind)
		if err := p.Activate(e); err != nil {
			panic(err)
		}
		ret = append(ret, e)
	}
	p.ReleaseUnused()
	return ret
}

func TestRecycling(t *testing.T) {
	for _, test := range []struct {
		description string
		frames      [][]Kind
		wantStats   Stats
		wantNodes   int
	}{{
		description: "first frame creates",
		frames:      [][]Kind{{Line, Line, MajorLabel}},
		wantStats:   Stats{Created: 3, Active: 3},
		wantNodes:   3,
	}, {
		description: "identical frames reuse",
		frames: [][]Kind{
			{Line, MinorLabel, MinorLabel},
			{Line, MinorLabel, MinorLabel},
		},
		wantStats: Stats{Created: 3, Reused: 3, Active: 3},
		wantNodes: 3,
	}, {
		description: "substep lines share the line pool",
		frames: [][]Kind{
			{Line, Line},
			{Line, SubstepLine},
		},
		wantStats: Stats{Created: 2, Reused: 2, Active: 2},
		wantNodes: 2,
	}, {
		description: "shrinking frames release",
		frames: [][]Kind{
			{Line, Line, MajorLabel, MinorLabel},
			{Line},
		},
		wantStats: Stats{Created: 4, Reused: 1, Released: 3, Active: 1},
		wantNodes: 1,
	}, {
		description: "labels are not drawn from the line pool",
		frames: [][]Kind{
			{Line},
			{MinorLabel},
		},
		wantStats: Stats{Created: 2, Released: 1, Active: 1},
		wantNodes: 1,
	}} {
		t.Run(test.description, func(t *testing.T) {
			parent := scene.New("axis")
			p := newPool(parent)
			for _, kinds := range test.frames {
				frame(p, kinds...)
			}
			if diff := cmp.Diff(test.wantStats, p.Stats()); diff != "" {
				t.Errorf("Stats() diff (-want +got):\n%s", diff)
			}
			if got := len(parent.Children()); got != test.wantNodes {
				t.Errorf("axis holds %d nodes, want %d", got, test.wantNodes)
			}
		})
	}
}

func TestReuseKeepsOrder(t *testing.T) {
	p := newPool(scene.New("axis"))
	first := frame(p, MinorLabel, MinorLabel, MinorLabel)
	second := frame(p, MinorLabel, MinorLabel, MinorLabel)
	for idx := range first {
		if first[idx] != second[idx] {
			t.Errorf("element %d was not reused in order", idx)
		}
		if got := second[idx].Generation(); got != 2 {
			t.Errorf("element %d generation = %d, want 2", idx, got)
		}
	}
}

func TestActivateRejectsStaleElements(t *testing.T) {
	p := newPool(scene.New("axis"))
	p.BeginFrame()
	stale := p.Acquire(Line)
	p.BeginFrame()
	if err := p.Activate(stale); err == nil {
		t.Errorf("Activate() of a stale element yielded no error")
	}
}

func TestUnactivatedElementsAreReleased(t *testing.T) {
	parent := scene.New("axis")
	p := newPool(parent)
	p.BeginFrame()
	p.Acquire(MajorLabel)
	p.ReleaseUnused()
	if got := len(parent.Children()); got != 0 {
		t.Errorf("axis holds %d nodes, want 0", got)
	}
}

func TestDestroy(t *testing.T) {
	parent := scene.New("axis")
	var released []Kind
	p := New(func(kind Kind) *scene.Node {
		return parent.AppendChild(scene.New(kind.String()))
	}, WithRelease(func(e *Element) {
		released = append(released, e.Kind)
		e.Node.Remove()
	}))
	frame(p, Line, MajorLabel)
	p.Destroy()
	if diff := cmp.Diff([]Kind{Line, MajorLabel}, released); diff != "" {
		t.Errorf("released kinds diff (-want +got):\n%s", diff)
	}
	if got := len(parent.Children()); got != 0 {
		t.Errorf("axis holds %d nodes after Destroy(), want 0", got)
	}
}
