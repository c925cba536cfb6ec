// Package driver implements the host adapter contract (C10) and the
// kind-dispatch table that consumes it (C11): a kind-discriminated
// switch style generalized from one function into a
// map[vdom.VKind]Driver, per spec.md §9 ("Dynamic dispatch by node
// kind: a tagged variant with a dispatcher table keyed by kind ...
// drivers implemented as records of functions").
package driver

import "github.com/vitarx-lib/core-sub005/pkg/vdom"

// Node is an opaque handle to a host element/text/comment. The core
// never inspects it; only a HostAdapter implementation does.
type Node any

// HostAdapter is the contract spec.md §6 requires from platform
// drivers (the DOM adapter, a headless test fake, an SSR sink, ...).
// No concrete DOM implementation ships in this module.
type HostAdapter interface {
	CreateElement(tag string, isSVG bool) Node
	CreateText(value string) Node
	CreateComment(value string) Node
	CreateFragmentAnchors() (start, end Node)

	Insert(child, parent Node, anchor Node)
	Remove(node Node)

	SetAttribute(el Node, name string, next, prev any)
	SetText(node Node, value string)

	ParentOf(node Node) Node
	NextSiblingOf(node Node) Node

	IsVoidTag(tag string) bool
}

// EventListener is the shape of a handler value accepted by
// SetAttribute for keys beginning with "on": the core does not itself
// dispatch events, it only hands the closure (plus its parsed modifier
// suffix) to the adapter. Combinable suffixes: Capture, Once, Passive.
type EventListener struct {
	Name     string // base event name, e.g. "click"
	Handler  func(any)
	Capture  bool
	Once     bool
	Passive  bool
}
