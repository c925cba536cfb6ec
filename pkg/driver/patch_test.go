package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitarx-lib/core-sub005/pkg/vdom"
)

func el(tag, key string, children ...*vdom.VNode) *vdom.VNode {
	return &vdom.VNode{Kind: vdom.KindElement, Tag: tag, Key: key, Children: children, Props: vdom.Props{}}
}

func txt(s string) *vdom.VNode {
	return &vdom.VNode{Kind: vdom.KindText, Text: s}
}

func TestPatchMountsFreshTree(t *testing.T) {
	host := NewFakeHost()
	d := NewDispatcher(host)

	tree := el("div", "", el("span", "", txt("hello")))
	d.Mount(tree, nil, nil, host)

	assert.Equal(t, `<div><span>hello</span></div>`, host.String())
}

func TestPatchUpdatesTextInPlace(t *testing.T) {
	host := NewFakeHost()
	d := NewDispatcher(host)

	prev := el("div", "", txt("a"))
	d.Mount(prev, nil, nil, host)

	next := el("div", "", txt("b"))
	d.Patch(prev, next, nil, nil, host, nil)

	assert.Equal(t, `<div>b</div>`, host.String())
}

func TestPatchAddsAndRemovesAttributes(t *testing.T) {
	host := NewFakeHost()
	d := NewDispatcher(host)

	prev := el("div", "")
	prev.Props = vdom.Props{"class": "a"}
	d.Mount(prev, nil, nil, host)

	next := el("div", "")
	next.Props = vdom.Props{"id": "x"}
	d.Patch(prev, next, nil, nil, host, nil)

	assert.Equal(t, `<div id="x"></div>`, host.String())
}

func TestPatchUnmountsRemovedNode(t *testing.T) {
	host := NewFakeHost()
	d := NewDispatcher(host)

	prev := el("div", "")
	d.Mount(prev, nil, nil, host)
	assert.Equal(t, `<div></div>`, host.String())

	d.Patch(prev, nil, nil, nil, host, nil)
	assert.Equal(t, "", host.String())
}

func TestPatchKeyedChildrenMinimalMoves(t *testing.T) {
	host := NewFakeHost()
	d := NewDispatcher(host)

	mk := func(keys ...string) *vdom.VNode {
		children := make([]*vdom.VNode, len(keys))
		for i, k := range keys {
			children[i] = el("li", k, txt(k))
		}
		return el("ul", "", children...)
	}

	prev := mk("a", "b", "c", "d")
	d.Mount(prev, nil, nil, host)
	assert.Equal(t, `<ul><li>a</li><li>b</li><li>c</li><li>d</li></ul>`, host.String())

	next := mk("d", "b", "a", "c")
	d.Patch(prev, next, nil, nil, host, nil)

	assert.Equal(t, `<ul><li>d</li><li>b</li><li>a</li><li>c</li></ul>`, host.String())
}

func TestPatchKeyedChildrenMountAndRemove(t *testing.T) {
	host := NewFakeHost()
	d := NewDispatcher(host)

	mk := func(keys ...string) *vdom.VNode {
		children := make([]*vdom.VNode, len(keys))
		for i, k := range keys {
			children[i] = el("li", k, txt(k))
		}
		return el("ul", "", children...)
	}

	prev := mk("a", "b", "c")
	d.Mount(prev, nil, nil, host)

	next := mk("b", "c", "d")
	d.Patch(prev, next, nil, nil, host, nil)

	assert.Equal(t, `<ul><li>b</li><li>c</li><li>d</li></ul>`, host.String())
}

func TestPatchKeyedListFallsBackToPositionalForUnkeyedSiblings(t *testing.T) {
	host := NewFakeHost()
	d := NewDispatcher(host)

	prev := el("ul", "",
		el("li", "a", txt("a")),
		el("li", "", txt("unkeyed-1")),
		el("li", "b", txt("b")),
	)
	d.Mount(prev, nil, nil, host)
	assert.Equal(t, `<ul><li>a</li><li>unkeyed-1</li><li>b</li></ul>`, host.String())

	unkeyedPrevNode := d.NodeOf(prev.Children[1])

	next := el("ul", "",
		el("li", "a", txt("a")),
		el("li", "", txt("unkeyed-2")),
		el("li", "b", txt("b")),
	)
	d.Patch(prev, next, nil, nil, host, nil)

	assert.Equal(t, `<ul><li>a</li><li>unkeyed-2</li><li>b</li></ul>`, host.String())
	// The unkeyed <li> reused the same host node (patched in place)
	// instead of being unmounted and a fresh one mounted.
	assert.Same(t, unkeyedPrevNode, d.NodeOf(next.Children[1]))
}

func TestPatchKindChangeReplacesSubtree(t *testing.T) {
	host := NewFakeHost()
	d := NewDispatcher(host)

	prev := el("div", "", txt("x"))
	d.Mount(prev, nil, nil, host)

	next := txt("x")
	result := d.Patch(prev, next, nil, nil, host, nil)

	assert.Equal(t, "x", host.String())
	assert.Same(t, next, result)
}
