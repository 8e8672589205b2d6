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

// Package testutil provides types and methods facilitating testing scene
// construction.
package testutil

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/qbs-nt/timeline-plus/scene"
)

// FixedClock returns a clock that always reads t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time {
		return t
	}
}

// Snapshot returns the pretty-printed subtree of node with each line
// trimmed, suitable for comparison against a literal.
func Snapshot(node *scene.Node) string {
	lines := strings.Split(strings.TrimRight(node.PrettyPrint(""), "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

// CompareScenes compares the subtrees rooted at got and want, raising an
// error on the provided testing.T if they differ.
func CompareScenes(t *testing.T, got, want *scene.Node) {
	t.Helper()
	if diff := cmp.Diff(Snapshot(want), Snapshot(got)); diff != "" {
		t.Errorf("Got scene\n%s\ndiff (-want +got):\n%s", Snapshot(got), diff)
	}
}

// CompareSnapshot compares the subtree rooted at got with a wanted snapshot,
// raising an error on the provided testing.T if they differ.  Leading and
// trailing blank lines and a common indentation of want are ignored.
func CompareSnapshot(t *testing.T, got *scene.Node, want string) {
	t.Helper()
	if diff := cmp.Diff(dedent(want), Snapshot(got)); diff != "" {
		t.Errorf("Got scene\n%s\ndiff (-want +got):\n%s", Snapshot(got), diff)
	}
}

// dedent removes blank leading and trailing lines from s, and the longest
// whitespace prefix common to its remaining lines.
func dedent(s string) string {
	s = strings.TrimRight(strings.TrimLeft(s, "\n"), " \t\n")
	lines := strings.Split(s, "\n")
	var prefix string
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			prefix, first = indent, false
			continue
		}
		for !strings.HasPrefix(indent, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	for i, line := range lines {
		lines[i] = strings.TrimRight(strings.TrimPrefix(line, prefix), " \t")
	}
	return strings.Join(lines, "\n")
}
