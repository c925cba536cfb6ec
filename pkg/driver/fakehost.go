package driver

import (
	"fmt"
	"strings"
)

// FakeHost is an in-memory HostAdapter: a cheap stand-in for the real
// rendering backend rather than a browser or HTML string sink. It keeps
// just enough of a node tree to let tests assert on structure and text
// without a real DOM.
type FakeHost struct {
	nodes   []*FakeNode
	void    map[string]bool
}

// FakeNode is one node in a FakeHost tree.
type FakeNode struct {
	Kind     string // "element", "text", "comment"
	Tag      string
	Attrs    map[string]any
	Text     string
	Parent   *FakeNode
	Children []*FakeNode
}

// NewFakeHost builds an empty fake host. voidTags names the element tags
// the adapter should treat as childless.
func NewFakeHost(voidTags ...string) *FakeHost {
	h := &FakeHost{void: map[string]bool{}}
	for _, t := range voidTags {
		h.void[t] = true
	}
	return h
}

func (h *FakeHost) CreateElement(tag string, isSVG bool) Node {
	return &FakeNode{Kind: "element", Tag: tag, Attrs: map[string]any{}}
}

func (h *FakeHost) CreateText(value string) Node {
	return &FakeNode{Kind: "text", Text: value}
}

func (h *FakeHost) CreateComment(value string) Node {
	return &FakeNode{Kind: "comment", Text: value}
}

func (h *FakeHost) CreateFragmentAnchors() (start, end Node) {
	return &FakeNode{Kind: "comment", Text: "fragment-start"}, &FakeNode{Kind: "comment", Text: "fragment-end"}
}

func (h *FakeHost) Insert(child, parent, anchor Node) {
	c, ok := child.(*FakeNode)
	if !ok || c == nil {
		return
	}
	p, ok := parent.(*FakeNode)
	if !ok || p == nil {
		// Mounting directly under the root container.
		h.insertRoot(c, anchor)
		return
	}
	if c.Parent != nil {
		removeFrom(c.Parent, c)
	}
	c.Parent = p
	p.Children = insertBefore(p.Children, c, anchor)
}

func (h *FakeHost) insertRoot(c *FakeNode, anchor Node) {
	h.nodes = insertBefore(h.nodes, c, anchor)
}

func insertBefore(list []*FakeNode, n *FakeNode, anchor Node) []*FakeNode {
	if anchor == nil {
		return append(list, n)
	}
	a, ok := anchor.(*FakeNode)
	if !ok {
		return append(list, n)
	}
	for i, existing := range list {
		if existing == a {
			out := make([]*FakeNode, 0, len(list)+1)
			out = append(out, list[:i]...)
			out = append(out, n)
			out = append(out, list[i:]...)
			return out
		}
	}
	return append(list, n)
}

func removeFrom(parent *FakeNode, n *FakeNode) {
	for i, c := range parent.Children {
		if c == n {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			return
		}
	}
}

func (h *FakeHost) Remove(node Node) {
	n, ok := node.(*FakeNode)
	if !ok || n == nil {
		return
	}
	if n.Parent != nil {
		removeFrom(n.Parent, n)
		n.Parent = nil
		return
	}
	for i, top := range h.nodes {
		if top == n {
			h.nodes = append(h.nodes[:i], h.nodes[i+1:]...)
			return
		}
	}
}

func (h *FakeHost) SetAttribute(el Node, name string, next, prev any) {
	n, ok := el.(*FakeNode)
	if !ok || n == nil {
		return
	}
	if next == nil {
		delete(n.Attrs, name)
		return
	}
	n.Attrs[name] = next
}

func (h *FakeHost) SetText(node Node, value string) {
	if n, ok := node.(*FakeNode); ok {
		n.Text = value
	}
}

func (h *FakeHost) ParentOf(node Node) Node {
	if n, ok := node.(*FakeNode); ok && n.Parent != nil {
		return n.Parent
	}
	return nil
}

func (h *FakeHost) NextSiblingOf(node Node) Node {
	n, ok := node.(*FakeNode)
	if !ok || n == nil {
		return nil
	}
	siblings := h.nodes
	if n.Parent != nil {
		siblings = n.Parent.Children
	}
	for i, s := range siblings {
		if s == n && i+1 < len(siblings) {
			return siblings[i+1]
		}
	}
	return nil
}

func (h *FakeHost) IsVoidTag(tag string) bool { return h.void[tag] }

// String renders the tree as a compact HTML-ish string for test
// assertions, without going through a real SSR renderer.
func (h *FakeHost) String() string {
	var b strings.Builder
	for _, n := range h.nodes {
		writeFakeNode(&b, n)
	}
	return b.String()
}

func writeFakeNode(b *strings.Builder, n *FakeNode) {
	switch n.Kind {
	case "text":
		b.WriteString(n.Text)
	case "comment":
		fmt.Fprintf(b, "<!--%s-->", n.Text)
	default:
		b.WriteString("<" + n.Tag)
		for k, v := range n.Attrs {
			fmt.Fprintf(b, " %s=%q", k, fmt.Sprint(v))
		}
		b.WriteString(">")
		for _, c := range n.Children {
			writeFakeNode(b, c)
		}
		b.WriteString("</" + n.Tag + ">")
	}
}
