package component

import (
	"github.com/vitarx-lib/core-sub005/pkg/driver"
	"github.com/vitarx-lib/core-sub005/pkg/vdom"
)

// RegisterDrivers installs the KindComponent/KindStateless drivers the
// core's own RegisterDefaultDrivers deliberately leaves out, per
// spec.md §4.10: these two kinds need the component runtime, not just a
// host adapter.
func RegisterDrivers(d *driver.Dispatcher) {
	d.Register(vdom.KindComponent, componentDriver{})
	d.Register(vdom.KindStateless, statelessDriver{})
	d.RefHook = resolveRef
}

// resolveRef attaches (or, on a nil node, detaches) n's `ref` prop
// against whichever instance is currently mounting the subtree n
// belongs to.
func resolveRef(n *vdom.VNode, node driver.Node) {
	inst := currentMountingInstance()
	if inst == nil {
		return
	}
	inst.mu.Lock()
	rs, ok := inst.refs[n.Ref]
	inst.mu.Unlock()
	if ok {
		rs.SetHost(node)
	}
}

var instances = map[*vdom.VNode]*Instance{}

// componentDriver adapts Instance's combined render+mount (it needs an
// anchor to place its subview, which the Driver.Render step doesn't
// receive) onto the Render/Mount split the dispatcher expects: Render is
// a no-op and Mount does the full instance creation and mount sequence.
type componentDriver struct{}

func (componentDriver) Render(n *vdom.VNode, host driver.HostAdapter, d *driver.Dispatcher) driver.Node {
	return nil
}

func (componentDriver) Mount(n *vdom.VNode, parent, anchor driver.Node, host driver.HostAdapter, d *driver.Dispatcher) {
	inst := NewInstance(n, currentMountingInstance(), NewProps(map[string]any(n.Props), nil))
	instances[n] = inst
	// The factory (the widget's "setup" function) runs exactly once,
	// inside the new instance's own context, so hook registration calls
	// (OnMounted, Provide, ...) made during construction attach here.
	inst.runInInstanceContext(func() {
		inst.comp = n.CompFactory(n.Props)
	})
	inst.Mount(parent, anchor, host, d)
	d.SetNode(n, d.NodeOf(instSubview(inst)))
}

func (componentDriver) Unmount(n *vdom.VNode, host driver.HostAdapter, d *driver.Dispatcher) {
	if inst, ok := instances[n]; ok {
		inst.Unmount()
		delete(instances, n)
	}
}

func (componentDriver) Activate(n *vdom.VNode, host driver.HostAdapter, d *driver.Dispatcher) {
	if inst, ok := instances[n]; ok {
		inst.Activate()
	}
}

func (componentDriver) Deactivate(n *vdom.VNode, host driver.HostAdapter, d *driver.Dispatcher) {
	if inst, ok := instances[n]; ok {
		inst.Deactivate()
	}
}

func (componentDriver) UpdateProps(prev, next *vdom.VNode, host driver.HostAdapter, d *driver.Dispatcher) {
	inst, ok := instances[prev]
	if !ok {
		return
	}
	delete(instances, prev)
	instances[next] = inst
	inst.VNode = next
	inst.Props.update(map[string]any(next.Props))
	d.SetNode(next, d.NodeOf(instSubview(inst)))
}

func instSubview(i *Instance) *vdom.VNode { return i.subview }

// statelessDriver treats a KindStateless vnode as a transparent wrapper
// around whatever its pure render function returns: no Instance, no
// hooks, no own reactivity -- it only re-renders because its parent's
// render produced a brand new vnode (and therefore a brand new closure)
// for it, per spec.md §3's "stateless-widget: pure render function, no
// instance" kind.
type statelessDriver struct{}

var statelessSubviews = map[*vdom.VNode]*vdom.VNode{}

func (statelessDriver) Render(n *vdom.VNode, host driver.HostAdapter, d *driver.Dispatcher) driver.Node {
	return nil
}

func (statelessDriver) Mount(n *vdom.VNode, parent, anchor driver.Node, host driver.HostAdapter, d *driver.Dispatcher) {
	sub := n.Comp.Render()
	statelessSubviews[n] = sub
	d.Mount(sub, parent, anchor, host)
	d.SetNode(n, d.NodeOf(sub))
}

func (statelessDriver) Unmount(n *vdom.VNode, host driver.HostAdapter, d *driver.Dispatcher) {
	if sub, ok := statelessSubviews[n]; ok {
		d.Unmount(sub, host)
		delete(statelessSubviews, n)
	}
}

func (statelessDriver) Activate(n *vdom.VNode, host driver.HostAdapter, d *driver.Dispatcher) {
	if sub, ok := statelessSubviews[n]; ok {
		d.Activate(sub, host)
	}
}

func (statelessDriver) Deactivate(n *vdom.VNode, host driver.HostAdapter, d *driver.Dispatcher) {
	if sub, ok := statelessSubviews[n]; ok {
		d.Deactivate(sub, host)
	}
}

func (statelessDriver) UpdateProps(prev, next *vdom.VNode, host driver.HostAdapter, d *driver.Dispatcher) {
	prevSub, hadPrev := statelessSubviews[prev]
	delete(statelessSubviews, prev)
	nextSub := next.Comp.Render()
	if hadPrev {
		nextSub = d.Patch(prevSub, nextSub, nil, nil, host, nil)
	}
	statelessSubviews[next] = nextSub
	d.SetNode(next, d.NodeOf(nextSub))
}
