package surface

import (
	"github.com/pagemark-labs/pagemark/internal/core/domain"
	"github.com/pagemark-labs/pagemark/internal/core/ports/driven"
)

// Ensure node implements the port.
var _ driven.Node = (*node)(nil)

// node is one element in the in-memory node graph. It mimics the parts of
// a DOM element the annotation subsystem relies on: parentage, dataset
// attributes and a bounding rect.
type node struct {
	kind     string
	parent   *node
	children []*node
	attrs    map[string]string
	bounds   domain.Rect

	// root marks the surface root node. Attachment is defined as having a
	// parent chain that ends at a root.
	root bool
}

func newNode(kind string) *node {
	return &node{
		kind:  kind,
		attrs: make(map[string]string),
	}
}

// Kind returns the element kind.
func (n *node) Kind() string { return n.kind }

// Parent returns the parent node, or nil when detached.
func (n *node) Parent() driven.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Append attaches child under this node, detaching it from any previous
// parent first.
func (n *node) Append(child driven.Node) {
	c, ok := child.(*node)
	if !ok {
		return
	}
	c.Detach()
	c.parent = n
	n.children = append(n.children, c)
}

// Detach removes the node from its parent. A no-op when already detached.
func (n *node) Detach() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Attached reports whether the parent chain ends at the surface root. A
// marker whose page container was destroyed reports false.
func (n *node) Attached() bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.root {
			return true
		}
	}
	return false
}

// Get returns a dataset attribute.
func (n *node) Get(attr string) string { return n.attrs[attr] }

// Set stores a dataset attribute.
func (n *node) Set(attr, value string) { n.attrs[attr] = value }

// Bounds returns the node's bounding rect in viewport coordinates.
func (n *node) Bounds() domain.Rect { return n.bounds }

// SetBounds positions the node.
func (n *node) SetBounds(r domain.Rect) { n.bounds = r }

// Children returns the current child nodes.
func (n *node) Children() []driven.Node {
	out := make([]driven.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}
