// Package vdom defines the virtual-node tree and its construction rules.
//
// VNode is the fundamental building block: elements, void elements,
// text, comments, fragments, stateful/stateless widgets, a dynamic
// switch, and a keyed list (VKind's ten kinds). Props holds attributes
// and event handlers.
//
// CreateVNode is the single constructor: it drains the reserved props
// (key, ref, v-if, v-show, v-memo, v-static, v-parent, v-bind, class,
// style), normalizes class/style, merges v-bind spreads, flattens
// children, and routes to the right Kind. v-if short-circuits to a
// comment placeholder; v-memo returns a cached subtree when its tuple
// is unchanged from the last render of the same owner.
//
// LIS exposes the longest-increasing-subsequence computation the
// keyed-list reconciler (pkg/driver) uses to find the minimal set of
// DOM moves. vdom stays independent of pkg/reactive and pkg/component:
// it has no notion of an effect graph or a mounted instance, only the
// opaque owner token CreateVNode's v-memo cache is scoped by.
package vdom
