package driver

import "github.com/vitarx-lib/core-sub005/pkg/vdom"

// SwitchObserver is notified when a KindDynamic node's structural
// identity changes (mount new / unmount old), per spec.md §4.8's "notify
// the enclosing component if it registered a switch handler (used by
// keep-alive-style caches)".
type SwitchObserver func(prev, next *vdom.VNode)

// Patch is the live-tree reconciler entry point spec.md §4.8 describes:
// it operates directly on already-mounted host nodes via HostAdapter
// rather than emitting a serialized patch list. Patch returns the vnode
// that now occupies prev's former position (next, unless next is nil).
func (d *Dispatcher) Patch(prev, next *vdom.VNode, parent, anchor Node, host HostAdapter, onSwitch SwitchObserver) *vdom.VNode {
	if prev == next {
		return next
	}
	if prev == nil {
		if next == nil {
			return nil
		}
		d.Mount(next, parent, anchor, host)
		return next
	}
	if next == nil {
		d.Unmount(prev, host)
		return nil
	}
	if prev.Kind != next.Kind || prev.Tag != next.Tag || prev.Key != next.Key {
		d.Unmount(prev, host)
		d.Mount(next, parent, anchor, host)
		if onSwitch != nil {
			onSwitch(prev, next)
		}
		return next
	}
	if prev.Static {
		d.SetNode(next, d.NodeOf(prev))
		next.Children = prev.Children
		return next
	}

	d.UpdateProps(prev, next, host)

	switch prev.Kind {
	case vdom.KindText, vdom.KindComment:
		// UpdateProps's textDriver/commentDriver branch already applied
		// the text change; nothing structural to recurse into.
	case vdom.KindDynamic:
		d.patchDynamic(prev, next, parent, host, onSwitch)
	default:
		if len(prev.Children) > 0 || len(next.Children) > 0 {
			d.patchChildren(prev, next, host)
		}
	}
	return next
}

func (d *Dispatcher) patchDynamic(prev, next *vdom.VNode, parent Node, host HostAdapter, onSwitch SwitchObserver) {
	var prevChild, nextChild *vdom.VNode
	if len(prev.Children) > 0 {
		prevChild = prev.Children[0]
	}
	if len(next.Children) > 0 {
		nextChild = next.Children[0]
	}
	anchorNode := d.endAnchorOf(next)
	patched := d.Patch(prevChild, nextChild, parent, anchorNode, host, onSwitch)
	if patched != nil {
		next.Children = []*vdom.VNode{patched}
	} else {
		next.Children = nil
	}
}

func (d *Dispatcher) endAnchorOf(n *vdom.VNode) Node {
	if a, ok := fragAnchors[n]; ok {
		return a.end
	}
	return nil
}

// patchChildren implements spec.md §4.8's keyed-child algorithm
// directly against host nodes: build the key map, find reusable
// matches, compute the LIS of matched old indices, then walk next
// right-to-left issuing only the moves/mounts/unmounts the LIS pass
// says are necessary.
func (d *Dispatcher) patchChildren(prev, next *vdom.VNode, host HostAdapter) {
	prevChildren := prev.Children
	nextChildren := next.Children
	parentNode := d.NodeOf(next)

	keyed := false
	for _, c := range prevChildren {
		if c.Key != "" {
			keyed = true
			break
		}
	}
	for _, c := range nextChildren {
		if c.Key != "" {
			keyed = true
			break
		}
	}
	if !keyed {
		d.patchUnkeyedChildren(prevChildren, nextChildren, parentNode, host)
		next.Children = nextChildren
		return
	}

	nextKeyMap := make(map[string]int, len(nextChildren))
	for i, c := range nextChildren {
		if c.Key != "" {
			if _, exists := nextKeyMap[c.Key]; !exists {
				nextKeyMap[c.Key] = i
			}
		}
	}

	newIndexToOldIndex := make([]int, len(nextChildren))
	for i := range newIndexToOldIndex {
		newIndexToOldIndex[i] = -1
	}
	oldMatched := make([]bool, len(prevChildren))
	usedKeys := make(map[string]bool, len(prevChildren))

	for oldIdx, c := range prevChildren {
		if c.Key == "" || usedKeys[c.Key] {
			continue
		}
		if newIdx, ok := nextKeyMap[c.Key]; ok && newIndexToOldIndex[newIdx] == -1 {
			usedKeys[c.Key] = true
			oldMatched[oldIdx] = true
			newIndexToOldIndex[newIdx] = oldIdx
		}
	}

	// Unkeyed siblings inside an otherwise-keyed list fall back to
	// positional, same-type matching (spec.md §4.8 bullet 2) instead of
	// being treated as pure inserts/removals: walk the still-unmatched
	// old and new indices in order and pair up same Kind/Tag entries.
	var unmatchedOld []int
	for oldIdx, c := range prevChildren {
		if c.Key == "" && !oldMatched[oldIdx] {
			unmatchedOld = append(unmatchedOld, oldIdx)
		}
	}
	takenOld := make([]bool, len(unmatchedOld))
	for newIdx, c := range nextChildren {
		if c.Key != "" || newIndexToOldIndex[newIdx] != -1 {
			continue
		}
		for ui, oldIdx := range unmatchedOld {
			if takenOld[ui] {
				continue
			}
			oc := prevChildren[oldIdx]
			if oc.Kind == c.Kind && oc.Tag == c.Tag {
				takenOld[ui] = true
				oldMatched[oldIdx] = true
				newIndexToOldIndex[newIdx] = oldIdx
				break
			}
		}
	}

	lis := vdom.LIS(newIndexToOldIndex)
	onLIS := make(map[int]bool, len(lis))
	for _, i := range lis {
		onLIS[i] = true
	}

	result := make([]*vdom.VNode, len(nextChildren))
	for newIdx := len(nextChildren) - 1; newIdx >= 0; newIdx-- {
		nextChild := nextChildren[newIdx]
		oldIdx := newIndexToOldIndex[newIdx]
		anchor := d.siblingAnchor(result, nextChildren, newIdx, parentNode, host)
		if oldIdx == -1 {
			d.Mount(nextChild, parentNode, anchor, host)
			result[newIdx] = nextChild
			continue
		}
		prevChild := prevChildren[oldIdx]
		if !onLIS[newIdx] {
			host.Remove(d.NodeOf(prevChild))
			d.SetNode(nextChild, d.NodeOf(prevChild))
			d.insertSubtree(nextChild, parentNode, anchor, host)
		}
		d.Patch(prevChild, nextChild, parentNode, anchor, host, nil)
		result[newIdx] = nextChild
	}

	for oldIdx, c := range prevChildren {
		if !oldMatched[oldIdx] {
			d.Unmount(c, host)
		}
	}
	next.Children = result
}

// siblingAnchor returns the host node to insert/move before: the
// already-placed next sibling's node if known, else nil (append at end
// of currently-processed tail -- safe since we walk right-to-left).
func (d *Dispatcher) siblingAnchor(result []*vdom.VNode, next []*vdom.VNode, idx int, parent Node, host HostAdapter) Node {
	for i := idx + 1; i < len(result); i++ {
		if result[i] != nil {
			if n := d.NodeOf(result[i]); n != nil {
				return n
			}
		}
	}
	return nil
}

// insertSubtree re-inserts an already-rendered (but just-removed) node
// at its new position without re-running Render, used for keyed moves.
func (d *Dispatcher) insertSubtree(n *vdom.VNode, parent, anchor Node, host HostAdapter) {
	host.Insert(d.NodeOf(n), parent, anchor)
}

func (d *Dispatcher) patchUnkeyedChildren(prev, next []*vdom.VNode, parent Node, host HostAdapter) {
	max := len(prev)
	if len(next) > max {
		max = len(next)
	}
	for i := 0; i < max; i++ {
		var p, n *vdom.VNode
		if i < len(prev) {
			p = prev[i]
		}
		if i < len(next) {
			n = next[i]
		}
		d.Patch(p, n, parent, nil, host, nil)
	}
}
