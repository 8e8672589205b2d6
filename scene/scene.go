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

// Package scene provides a retained tree of visual nodes.  Axes paint their
// grid lines and labels into a scene; renderers walk it.
package scene

import (
	"fmt"
	"slices"
	"strings"

	"github.com/qbs-nt/timeline-plus/style"
)

// Node is a visual node: a grid line, a label, or a container of other nodes.
type Node struct {
	Tag   string
	Class string
	Text  string
	Style *style.Style
	// Hidden nodes are measured but not rendered.
	Hidden bool

	parent   *Node
	children []*Node
}

// New returns a new detached node with the specified tag.
func New(tag string) *Node {
	return &Node{
		Tag:   tag,
		Style: style.New(),
	}
}

// Parent returns the receiver's parent, or nil if it is detached.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the receiver's children.  The returned slice must not be
// modified.
func (n *Node) Children() []*Node {
	return n.children
}

// AppendChild attaches child as the receiver's last child, detaching it from
// any previous parent.
func (n *Node) AppendChild(child *Node) *Node {
	child.Remove()
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// InsertBefore attaches child immediately before ref, which must be a child
// of the receiver.  If ref is nil, child is appended.
func (n *Node) InsertBefore(child, ref *Node) (*Node, error) {
	if ref == nil {
		return n.AppendChild(child), nil
	}
	if ref.parent != n {
		return nil, fmt.Errorf("reference node is not a child of this node")
	}
	if child == ref {
		return child, nil
	}
	child.Remove()
	idx := slices.Index(n.children, ref)
	child.parent = n
	n.children = slices.Insert(n.children, idx, child)
	return child, nil
}

// Remove detaches the receiver from its parent, if any.
func (n *Node) Remove() {
	if n.parent == nil {
		return
	}
	p := n.parent
	if idx := slices.Index(p.children, n); idx >= 0 {
		p.children = slices.Delete(p.children, idx, idx+1)
	}
	n.parent = nil
}

// NextSibling returns the node following the receiver under its parent, or
// nil if there is none.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	siblings := n.parent.children
	idx := slices.Index(siblings, n)
	if idx < 0 || idx+1 >= len(siblings) {
		return nil
	}
	return siblings[idx+1]
}

// Walk invokes visit on the receiver and its descendants in depth-first
// order.  If visit returns false, the visited node's descendants are skipped.
func (n *Node) Walk(visit func(node *Node, depth int) bool) {
	n.walk(visit, 0)
}

func (n *Node) walk(visit func(node *Node, depth int) bool, depth int) {
	if !visit(n, depth) {
		return
	}
	for _, child := range n.children {
		child.walk(visit, depth+1)
	}
}

// HasClass returns true if the receiver's class list contains class.
func (n *Node) HasClass(class string) bool {
	for _, c := range strings.Fields(n.Class) {
		if c == class {
			return true
		}
	}
	return false
}

// PrettyPrint returns a deterministic, indented rendering of the receiver's
// subtree.
func (n *Node) PrettyPrint(indent string) string {
	var sb strings.Builder
	n.Walk(func(node *Node, depth int) bool {
		sb.WriteString(indent + strings.Repeat("  ", depth) + "<" + node.Tag)
		if node.Class != "" {
			fmt.Fprintf(&sb, " class=%q", node.Class)
		}
		if css := node.Style.CSS(); css != "" {
			fmt.Fprintf(&sb, " style=%q", css)
		}
		if node.Hidden {
			sb.WriteString(" hidden")
		}
		sb.WriteString(">")
		if node.Text != "" {
			sb.WriteString(" " + node.Text)
		}
		sb.WriteString("\n")
		return true
	})
	return sb.String()
}
