package driver

import (
	"sync"

	"github.com/vitarx-lib/core-sub005/pkg/reactive"
	"github.com/vitarx-lib/core-sub005/pkg/vdom"
)

// State is a vnode's position in the mount/activation state machine
// spec.md §7 defines: Unused -> Rendered -> Activated <-> Deactivated ->
// Unmounted. Transitions outside this graph raise reactive.StateError.
type State int

const (
	StateUnused State = iota
	StateRendered
	StateActivated
	StateDeactivated
	StateUnmounted
)

func (s State) String() string {
	switch s {
	case StateUnused:
		return "Unused"
	case StateRendered:
		return "Rendered"
	case StateActivated:
		return "Activated"
	case StateDeactivated:
		return "Deactivated"
	case StateUnmounted:
		return "Unmounted"
	default:
		return "Unknown"
	}
}

// Driver implements the mount/activate/deactivate/unmount/updateProps
// operations for one VKind. Host is passed explicitly to every call
// rather than captured, so a single Driver value is reusable across
// applications bound to different adapters.
type Driver interface {
	// Render produces (but does not attach) the host node(s) for n,
	// recursing into children as needed, and returns the primary node
	// a parent should anchor around.
	Render(n *vdom.VNode, host HostAdapter, d *Dispatcher) Node
	// Mount attaches the already-rendered node(s) for n into parent
	// before anchor.
	Mount(n *vdom.VNode, parent, anchor Node, host HostAdapter, d *Dispatcher)
	Unmount(n *vdom.VNode, host HostAdapter, d *Dispatcher)
	Activate(n *vdom.VNode, host HostAdapter, d *Dispatcher)
	Deactivate(n *vdom.VNode, host HostAdapter, d *Dispatcher)
	UpdateProps(prev, next *vdom.VNode, host HostAdapter, d *Dispatcher)
}

// Dispatcher is the C11 lookup table: vnode.Kind -> Driver. It owns the
// state-machine bookkeeping so individual Driver implementations stay
// free of state-transition validation.
type Dispatcher struct {
	drivers map[vdom.VKind]Driver
	host    HostAdapter

	mu     sync.Mutex
	states map[*vdom.VNode]State
	nodes  map[*vdom.VNode]Node

	// RefHook, when set, is called with the resolved host node of any
	// vnode that carries a non-empty Ref (the `ref` reserved prop), right
	// after mount and again with nil right before unmount. The component
	// runtime installs this to resolve refs against whichever instance is
	// currently mounting, since the driver layer has no notion of
	// instances.
	RefHook func(n *vdom.VNode, node Node)
}

// NewDispatcher builds a dispatcher bound to host, with drivers
// registered for every VKind the core ships a default driver for.
func NewDispatcher(host HostAdapter) *Dispatcher {
	d := &Dispatcher{drivers: make(map[vdom.VKind]Driver), host: host,
		states: make(map[*vdom.VNode]State), nodes: make(map[*vdom.VNode]Node)}
	RegisterDefaultDrivers(d)
	return d
}

// Register installs driver for kind, overwriting any previous entry.
// Host applications use this to swap in platform-specific drivers for
// KindComponent (which needs to reach the component runtime).
func (d *Dispatcher) Register(kind vdom.VKind, drv Driver) {
	d.drivers[kind] = drv
}

func (d *Dispatcher) driverFor(n *vdom.VNode) Driver {
	drv, ok := d.drivers[n.Kind]
	if !ok {
		panic(&reactive.StateError{Op: "dispatch", From: "no driver registered for kind " + n.Kind.String()})
	}
	return drv
}

func (d *Dispatcher) stateOf(n *vdom.VNode) State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.states[n]
}

func (d *Dispatcher) setState(n *vdom.VNode, s State) {
	d.mu.Lock()
	d.states[n] = s
	d.mu.Unlock()
}

func (d *Dispatcher) requireState(n *vdom.VNode, op string, allowed ...State) {
	cur := d.stateOf(n)
	for _, a := range allowed {
		if cur == a {
			return
		}
	}
	panic(&reactive.StateError{Op: op, From: cur.String()})
}

// Mount renders and attaches n, running directive Created/BeforeMount
// hooks before the host insert and Mounted after, per spec.md §4.10.
func (d *Dispatcher) Mount(n *vdom.VNode, parent, anchor Node, host HostAdapter) {
	d.requireState(n, "mount", StateUnused)
	runDirectives(n, func(b *vdom.DirectiveBinding) {
		if b.Directive.Created != nil {
			b.Directive.Created(n, b)
		}
	})
	runDirectives(n, func(b *vdom.DirectiveBinding) {
		if b.Directive.BeforeMount != nil {
			b.Directive.BeforeMount(n, b)
		}
	})
	drv := d.driverFor(n)
	drv.Render(n, host, d)
	drv.Mount(n, parent, anchor, host, d)
	d.setState(n, StateActivated)
	runDirectives(n, func(b *vdom.DirectiveBinding) {
		if b.Directive.Mounted != nil {
			b.Directive.Mounted(n, b)
		}
	})
	if n.Ref != "" && d.RefHook != nil {
		d.RefHook(n, d.NodeOf(n))
	}
}

// Unmount tears n down: BeforeUnmount hooks, the driver's unmount, then
// Unmounted hooks, then the node's state is retired.
func (d *Dispatcher) Unmount(n *vdom.VNode, host HostAdapter) {
	cur := d.stateOf(n)
	if cur == StateUnmounted {
		return
	}
	runDirectives(n, func(b *vdom.DirectiveBinding) {
		if b.Directive.BeforeUnmount != nil {
			b.Directive.BeforeUnmount(n, b)
		}
	})
	if n.Ref != "" && d.RefHook != nil {
		d.RefHook(n, nil)
	}
	d.driverFor(n).Unmount(n, host, d)
	d.setState(n, StateUnmounted)
	runDirectives(n, func(b *vdom.DirectiveBinding) {
		if b.Directive.Unmounted != nil {
			b.Directive.Unmounted(n, b)
		}
	})
}

// Activate transitions a deactivated (keep-alive) subtree back to
// Activated.
func (d *Dispatcher) Activate(n *vdom.VNode, host HostAdapter) {
	d.requireState(n, "activate", StateDeactivated)
	d.driverFor(n).Activate(n, host, d)
	d.setState(n, StateActivated)
}

// Deactivate transitions an Activated subtree to Deactivated without
// unmounting it (used by keep-alive-style caches).
func (d *Dispatcher) Deactivate(n *vdom.VNode, host HostAdapter) {
	d.requireState(n, "deactivate", StateActivated)
	d.driverFor(n).Deactivate(n, host, d)
	d.setState(n, StateDeactivated)
}

// UpdateProps runs the BeforeUpdate/Updated directive hooks around the
// driver's prop patch.
func (d *Dispatcher) UpdateProps(prev, next *vdom.VNode, host HostAdapter) {
	runDirectives(prev, func(b *vdom.DirectiveBinding) {
		if b.Directive.BeforeUpdate != nil {
			b.Directive.BeforeUpdate(prev, b)
		}
	})
	d.driverFor(prev).UpdateProps(prev, next, host, d)
	d.mu.Lock()
	if s, ok := d.states[prev]; ok {
		d.states[next] = s
		delete(d.states, prev)
	}
	d.mu.Unlock()
	runDirectives(next, func(b *vdom.DirectiveBinding) {
		if b.Directive.Updated != nil {
			b.Directive.Updated(next, b)
		}
	})
}

// MarkRendered records that n was constructed but not yet mounted --
// the Unused->Rendered half-step spec.md §7 names, kept distinct from
// Mount so SSR-only render paths can observe it.
func (d *Dispatcher) MarkRendered(n *vdom.VNode) {
	d.setState(n, StateRendered)
}

// NodeOf returns the host node previously recorded for n via SetNode.
func (d *Dispatcher) NodeOf(n *vdom.VNode) Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.nodes[n]
}

// SetNode records the primary host node produced for n.
func (d *Dispatcher) SetNode(n *vdom.VNode, node Node) {
	d.mu.Lock()
	d.nodes[n] = node
	d.mu.Unlock()
}

// Host returns the adapter this dispatcher was constructed with.
func (d *Dispatcher) Host() HostAdapter { return d.host }

func runDirectives(n *vdom.VNode, fn func(*vdom.DirectiveBinding)) {
	for _, b := range n.Directives {
		fn(b)
	}
}
