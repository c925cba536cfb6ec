package driver

import "github.com/vitarx-lib/core-sub005/pkg/vdom"

// RegisterDefaultDrivers wires the core's own kinds (everything except
// KindComponent/KindStateless, which need the component runtime and are
// registered by pkg/component) into d.
func RegisterDefaultDrivers(d *Dispatcher) {
	d.Register(vdom.KindElement, elementDriver{})
	d.Register(vdom.KindVoidElement, elementDriver{})
	d.Register(vdom.KindText, textDriver{})
	d.Register(vdom.KindComment, commentDriver{})
	d.Register(vdom.KindFragment, fragmentDriver{})
	d.Register(vdom.KindRaw, commentDriver{}) // placeholder: real HTML injection is adapter-specific
	d.Register(vdom.KindDynamic, dynamicDriver{})
	d.Register(vdom.KindList, listDriver{})
}

// applyProps diffs prev against next and forwards every add/change/
// remove to the adapter's single SetAttribute entry point (spec.md §6:
// the adapter itself decides attribute vs. property vs. listener based
// on the key, including the event name-suffix convention).
func applyProps(n *vdom.VNode, host HostAdapter, el Node, prev, next map[string]any) {
	for k, v := range next {
		if old, existed := prev[k]; !existed || !propsEqual(old, v) {
			host.SetAttribute(el, k, v, prev[k])
		}
	}
	for k, v := range prev {
		if _, ok := next[k]; !ok {
			host.SetAttribute(el, k, nil, v)
		}
	}
}

func propsEqual(a, b any) bool {
	return vdom.PropsEqual(a, b)
}

type elementDriver struct{}

func (elementDriver) Render(n *vdom.VNode, host HostAdapter, d *Dispatcher) Node {
	el := host.CreateElement(n.Tag, false)
	d.SetNode(n, el)
	applyProps(n, host, el, nil, n.Props)
	for _, child := range n.Children {
		d.driverFor(child).Render(child, host, d)
	}
	return el
}

func (elementDriver) Mount(n *vdom.VNode, parent, anchor Node, host HostAdapter, d *Dispatcher) {
	el := d.NodeOf(n)
	host.Insert(el, parent, anchor)
	for _, child := range n.Children {
		d.driverFor(child).Mount(child, el, nil, host, d)
	}
}

func (elementDriver) Unmount(n *vdom.VNode, host HostAdapter, d *Dispatcher) {
	for _, child := range n.Children {
		d.driverFor(child).Unmount(child, host, d)
	}
	host.Remove(d.NodeOf(n))
}

func (elementDriver) Activate(n *vdom.VNode, host HostAdapter, d *Dispatcher) {
	for _, child := range n.Children {
		d.driverFor(child).Activate(child, host, d)
	}
}

func (elementDriver) Deactivate(n *vdom.VNode, host HostAdapter, d *Dispatcher) {
	for _, child := range n.Children {
		d.driverFor(child).Deactivate(child, host, d)
	}
}

func (elementDriver) UpdateProps(prev, next *vdom.VNode, host HostAdapter, d *Dispatcher) {
	el := d.NodeOf(prev)
	d.SetNode(next, el)
	applyProps(next, host, el, prev.Props, next.Props)
}

type textDriver struct{}

func (textDriver) Render(n *vdom.VNode, host HostAdapter, d *Dispatcher) Node {
	node := host.CreateText(n.Text)
	d.SetNode(n, node)
	return node
}
func (textDriver) Mount(n *vdom.VNode, parent, anchor Node, host HostAdapter, d *Dispatcher) {
	host.Insert(d.NodeOf(n), parent, anchor)
}
func (textDriver) Unmount(n *vdom.VNode, host HostAdapter, d *Dispatcher) { host.Remove(d.NodeOf(n)) }
func (textDriver) Activate(n *vdom.VNode, host HostAdapter, d *Dispatcher)   {}
func (textDriver) Deactivate(n *vdom.VNode, host HostAdapter, d *Dispatcher) {}
func (textDriver) UpdateProps(prev, next *vdom.VNode, host HostAdapter, d *Dispatcher) {
	node := d.NodeOf(prev)
	d.SetNode(next, node)
	if prev.Text != next.Text {
		host.SetText(node, next.Text)
	}
}

type commentDriver struct{}

func (commentDriver) Render(n *vdom.VNode, host HostAdapter, d *Dispatcher) Node {
	node := host.CreateComment(n.Text)
	d.SetNode(n, node)
	return node
}
func (commentDriver) Mount(n *vdom.VNode, parent, anchor Node, host HostAdapter, d *Dispatcher) {
	host.Insert(d.NodeOf(n), parent, anchor)
}
func (commentDriver) Unmount(n *vdom.VNode, host HostAdapter, d *Dispatcher) {
	host.Remove(d.NodeOf(n))
}
func (commentDriver) Activate(n *vdom.VNode, host HostAdapter, d *Dispatcher)   {}
func (commentDriver) Deactivate(n *vdom.VNode, host HostAdapter, d *Dispatcher) {}
func (commentDriver) UpdateProps(prev, next *vdom.VNode, host HostAdapter, d *Dispatcher) {
	node := d.NodeOf(prev)
	d.SetNode(next, node)
	if prev.Text != next.Text {
		host.SetText(node, next.Text)
	}
}

// fragmentAnchors pairs the {start,end} comment handles a fragment's
// children are inserted between, per spec.md §4.8's "synthetic handle
// maintaining start/end anchor comments".
type fragmentAnchors struct{ start, end Node }

var fragAnchors = map[*vdom.VNode]fragmentAnchors{}

type fragmentDriver struct{}

func (fragmentDriver) Render(n *vdom.VNode, host HostAdapter, d *Dispatcher) Node {
	start, end := host.CreateFragmentAnchors()
	fragAnchors[n] = fragmentAnchors{start, end}
	d.SetNode(n, start)
	for _, child := range n.Children {
		d.driverFor(child).Render(child, host, d)
	}
	return start
}

func (fragmentDriver) Mount(n *vdom.VNode, parent, anchor Node, host HostAdapter, d *Dispatcher) {
	a := fragAnchors[n]
	host.Insert(a.start, parent, anchor)
	for _, child := range n.Children {
		d.driverFor(child).Mount(child, parent, a.end, host, d)
	}
	host.Insert(a.end, parent, anchor)
}

func (fragmentDriver) Unmount(n *vdom.VNode, host HostAdapter, d *Dispatcher) {
	for _, child := range n.Children {
		d.driverFor(child).Unmount(child, host, d)
	}
	a := fragAnchors[n]
	host.Remove(a.start)
	host.Remove(a.end)
	delete(fragAnchors, n)
}

func (fragmentDriver) Activate(n *vdom.VNode, host HostAdapter, d *Dispatcher) {
	for _, child := range n.Children {
		d.driverFor(child).Activate(child, host, d)
	}
}
func (fragmentDriver) Deactivate(n *vdom.VNode, host HostAdapter, d *Dispatcher) {
	for _, child := range n.Children {
		d.driverFor(child).Deactivate(child, host, d)
	}
}
func (fragmentDriver) UpdateProps(prev, next *vdom.VNode, host HostAdapter, d *Dispatcher) {
	if a, ok := fragAnchors[prev]; ok {
		fragAnchors[next] = a
		delete(fragAnchors, prev)
		d.SetNode(next, a.start)
	}
}

// dynamicDriver mounts the single child of a KindDynamic (switch) node.
// On update, Dispatcher.Patch compares the two children: the same vnode
// is a no-op, the same kind/tag/key is patched in place (a text child's
// text included), anything else replaces the child wholesale. The
// node's Classifier field is not consulted.
type dynamicDriver struct{}

func (dynamicDriver) Render(n *vdom.VNode, host HostAdapter, d *Dispatcher) Node {
	if len(n.Children) == 0 {
		return nil
	}
	return d.driverFor(n.Children[0]).Render(n.Children[0], host, d)
}
func (dynamicDriver) Mount(n *vdom.VNode, parent, anchor Node, host HostAdapter, d *Dispatcher) {
	if len(n.Children) == 0 {
		return
	}
	d.driverFor(n.Children[0]).Mount(n.Children[0], parent, anchor, host, d)
}
func (dynamicDriver) Unmount(n *vdom.VNode, host HostAdapter, d *Dispatcher) {
	if len(n.Children) == 0 {
		return
	}
	d.driverFor(n.Children[0]).Unmount(n.Children[0], host, d)
}
func (dynamicDriver) Activate(n *vdom.VNode, host HostAdapter, d *Dispatcher) {
	if len(n.Children) > 0 {
		d.driverFor(n.Children[0]).Activate(n.Children[0], host, d)
	}
}
func (dynamicDriver) Deactivate(n *vdom.VNode, host HostAdapter, d *Dispatcher) {
	if len(n.Children) > 0 {
		d.driverFor(n.Children[0]).Deactivate(n.Children[0], host, d)
	}
}
func (dynamicDriver) UpdateProps(prev, next *vdom.VNode, host HostAdapter, d *Dispatcher) {
	// Child structural replacement is driven by the reconciler's
	// patch(prev,next) entry point, not UpdateProps; see Dispatcher.Patch
	// in patch.go.
}

// listDriver mounts/unmounts each keyed item; the reconciler's LIS pass
// drives which items move versus mount fresh (spec.md §4.8).
type listDriver struct{}

func (listDriver) Render(n *vdom.VNode, host HostAdapter, d *Dispatcher) Node {
	start, end := host.CreateFragmentAnchors()
	fragAnchors[n] = fragmentAnchors{start, end}
	d.SetNode(n, start)
	for _, child := range n.Children {
		d.driverFor(child).Render(child, host, d)
	}
	return start
}
func (listDriver) Mount(n *vdom.VNode, parent, anchor Node, host HostAdapter, d *Dispatcher) {
	a := fragAnchors[n]
	host.Insert(a.start, parent, anchor)
	for _, child := range n.Children {
		d.driverFor(child).Mount(child, parent, a.end, host, d)
	}
	host.Insert(a.end, parent, anchor)
}
func (listDriver) Unmount(n *vdom.VNode, host HostAdapter, d *Dispatcher) {
	for _, child := range n.Children {
		d.driverFor(child).Unmount(child, host, d)
	}
	a := fragAnchors[n]
	host.Remove(a.start)
	host.Remove(a.end)
	delete(fragAnchors, n)
}
func (listDriver) Activate(n *vdom.VNode, host HostAdapter, d *Dispatcher) {
	for _, child := range n.Children {
		d.driverFor(child).Activate(child, host, d)
	}
}
func (listDriver) Deactivate(n *vdom.VNode, host HostAdapter, d *Dispatcher) {
	for _, child := range n.Children {
		d.driverFor(child).Deactivate(child, host, d)
	}
}
func (listDriver) UpdateProps(prev, next *vdom.VNode, host HostAdapter, d *Dispatcher) {
	if a, ok := fragAnchors[prev]; ok {
		fragAnchors[next] = a
		delete(fragAnchors, prev)
		d.SetNode(next, a.start)
	}
}
