package component

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vitarx-lib/core-sub005/internal/observability"
	"github.com/vitarx-lib/core-sub005/pkg/driver"
	"github.com/vitarx-lib/core-sub005/pkg/reactive"
	"github.com/vitarx-lib/core-sub005/pkg/vdom"
)

// instanceCtxTag is the C6 dynamic-context key "current instance" is
// pushed under while a build/hook/init function runs, so package-level
// helpers (OnMounted, Provide, Inject, ...) can find the right instance
// without it being threaded through every call explicitly.
type instanceCtxTag struct{}

// Instance is the per-mounted-widget runtime state spec.md §3's
// "Component instance" type describes: name, public instance, props
// proxy, scope, provide map, hooks, error handler, subview, async init
// promise, visibility.
type Instance struct {
	Name string
	VNode *vdom.VNode
	comp  vdom.Component // constructed once, at mount, independent of which vnode object currently points at this instance

	Public any // opaque, user-attachable; never tracked reactively

	Props *Props
	Scope *reactive.Scope
	Hooks *HookStore

	parent *Instance

	mu      sync.Mutex
	provide map[any]any
	refs    map[string]refSetter
	subview *vdom.VNode
	visible bool
	onError func(err error) (ErrorHookResult, bool)

	dispatcher   *driver.Dispatcher
	host         driver.HostAdapter
	renderEffect *reactive.Effect
	hostParent   driver.Node
	hostAnchor   driver.Node

	asyncPending atomic.Int32
}

// NewInstance builds an instance for vn (KindComponent or KindStateless)
// nested under parent's scope (or a root scope if parent is nil), per
// spec.md §3.
func NewInstance(vn *vdom.VNode, parent *Instance, props *Props) *Instance {
	var parentScope *reactive.Scope
	var p *Instance
	if parent != nil {
		parentScope = parent.Scope
		p = parent
	}
	inst := &Instance{
		Name:   vn.Tag,
		VNode:  vn,
		Props:  props,
		Scope:  reactive.NewScope(parentScope),
		Hooks:  newHookStore(),
		parent: p,
	}
	return inst
}

// runInInstanceContext executes fn with i as the Current() instance and
// i.Scope as the active tracking scope, so hook registration and
// reactive reads inside fn attach correctly.
func (i *Instance) runInInstanceContext(fn func()) {
	reactive.WithScope(i.Scope, func() {
		reactive.RunInContext(instanceCtxTag{}, i, func() {
			vdom.WithMemoOwner(i, fn)
		})
	})
}

// Current returns the instance currently building/running a hook on the
// calling goroutine, or nil outside any instance context.
func Current() *Instance {
	v, ok := reactive.GetContext(instanceCtxTag{})
	if !ok {
		return nil
	}
	return v.(*Instance)
}

// Mount runs the full mount sequence spec.md §4.9 describes: init hooks
// (suspense-counted), beforeMount, subview render+mount, mounted,
// activated.
func (i *Instance) Mount(parent, anchor driver.Node, host driver.HostAdapter, d *driver.Dispatcher) {
	i.host = host
	i.dispatcher = d
	i.hostParent = parent
	i.hostAnchor = anchor
	observability.Default().IncComponentMount()

	i.runInInstanceContext(func() {
		i.Hooks.Run(StageInit)
		i.Hooks.Run(StageBeforeMount)
	})

	i.build(parent, anchor)

	i.visible = true
	i.runInInstanceContext(func() {
		i.Hooks.Run(StageMounted)
		i.Hooks.Run(StageActivated)
	})
}

// build (re)runs the component's Render via a tracked render effect, so
// a signal read during render re-triggers build on its own. The first
// run mounts the subview; later runs patch it in place via the
// dispatcher's live-node reconciler.
func (i *Instance) build(parent, anchor driver.Node) {
	i.renderEffect = reactive.CreateEffect(i.Scope, func() (cleanup reactive.Cleanup) {
		_, endSpan := observability.StartSpan(context.Background(), "component.render")
		var spanErr error
		defer func() { endSpan(spanErr) }()

		next := i.renderOnce()
		pushMounting(i)
		defer popMounting()
		if i.subview == nil {
			i.subview = next
			if i.dispatcher != nil {
				i.dispatcher.Mount(next, parent, anchor, i.host)
			}
			return nil
		}
		i.runInInstanceContext(func() { i.Hooks.Run(StageBeforeUpdate) })
		prev := i.subview
		start := time.Now()
		i.subview = i.dispatcher.Patch(prev, next, i.hostParent, i.hostAnchor, i.host, nil)
		observability.Default().ObserveReconcile(time.Since(start))
		i.runInInstanceContext(func() { i.Hooks.Run(StageUpdated) })
		return nil
	}, reactive.WithPhase(reactive.PhasePre), reactive.WithErrorHandler(func(err error) {
		i.reportError(err, "render")
	}))
}

// mountingStack tracks which instance is currently mounting its subview,
// so a nested component vnode discovered during that mount can attach to
// the right parent instance. Safe without locking under the scheduling
// model's single-threaded-cooperative invariant (spec.md §5).
var mountingStack []*Instance

func pushMounting(i *Instance) { mountingStack = append(mountingStack, i) }
func popMounting()              { mountingStack = mountingStack[:len(mountingStack)-1] }

// currentMountingInstance returns the instance whose subview is being
// mounted right now, or nil at the application root.
func currentMountingInstance() *Instance {
	if len(mountingStack) == 0 {
		return nil
	}
	return mountingStack[len(mountingStack)-1]
}

// renderOnce invokes the backing Component's Render inside this
// instance's context and routes a panic through reportError (a non-error
// panic value is first wrapped in a UserError; an error value is passed
// as is). On a handled error with a fallback, that
// fallback vnode is rendered instead.
func (i *Instance) renderOnce() (result *vdom.VNode) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = &reactive.UserError{Err: asError(r), Source: i.Name}
			}
			handled, fallback := i.reportError(err, "render")
			if handled && fallback != nil {
				result = fallback
				return
			}
			result = &vdom.VNode{Kind: vdom.KindComment, Text: "error"}
		}
	}()
	var v *vdom.VNode
	i.runInInstanceContext(func() {
		v = i.comp.Render()
	})
	return v
}

// reportError implements spec.md §4.9's bubbling rule: the nearest
// ancestor onError hook that does not decline gets the error; returning
// false suppresses propagation, a vnode replaces the subview, anything
// else means "not handled", keep bubbling. Unhandled at the root goes to
// the application error handler when one is installed, else is logged.
func (i *Instance) reportError(err error, source string) (handled bool, fallback *vdom.VNode) {
	for cur := i; cur != nil; cur = cur.parent {
		if cur.onError == nil {
			continue
		}
		res, ran := cur.onError(err)
		if !ran {
			continue
		}
		if res.Handled {
			if fb, ok := res.Fallback.(*vdom.VNode); ok {
				return true, fb
			}
			return true, nil
		}
	}
	if appErrorHandler != nil {
		appErrorHandler(err)
		return false, nil
	}
	slog.Error("component: unhandled error", "source", source, "component", i.Name, "err", err)
	return false, nil
}

func asError(v any) error {
	if e, ok := v.(error); ok {
		return e
	}
	return &panicValue{v: v}
}

type panicValue struct{ v any }

func (p *panicValue) Error() string { return fmt.Sprint(p.v) }

// OnErrorCaptured registers fn as this instance's error hook, per
// spec.md §4.9's reportError contract.
func (i *Instance) OnErrorCaptured(fn func(err error) (ErrorHookResult, bool)) {
	i.onError = fn
}

// Unmount runs beforeUnmount, unmounts the subview, disposes the scope
// (running cleanups), clears the hook store, then unmounted -- and
// releases every reference that could keep the instance graph alive.
func (i *Instance) Unmount() {
	i.runInInstanceContext(func() { i.Hooks.Run(StageBeforeUnmount) })
	if i.subview != nil && i.dispatcher != nil {
		pushMounting(i)
		i.dispatcher.Unmount(i.subview, i.host)
		popMounting()
	}
	i.Scope.Dispose()
	unmounted := i.Hooks.stages[StageUnmounted]
	i.Hooks.clear()
	i.runInInstanceContext(func() {
		for _, fn := range unmounted {
			fn()
		}
	})
	vdom.ClearMemoOwner(i)

	i.visible = false
	i.subview = nil
	i.Public = nil
	i.provide = nil
	i.refs = nil
	i.comp = nil
}

// Activate/Deactivate implement spec.md §4.9's preserved-subtree rule:
// deactivate runs hooks parent-before then pauses the scope; activate
// resumes the scope (coalescing any invalidations accumulated while
// paused into one update) then runs hooks child-before.
func (i *Instance) Deactivate() {
	i.runInInstanceContext(func() { i.Hooks.Run(StageDeactivated) })
	i.Scope.Pause()
	if i.subview != nil && i.dispatcher != nil {
		i.dispatcher.Deactivate(i.subview, i.host)
	}
	i.visible = false
}

func (i *Instance) Activate() {
	if i.subview != nil && i.dispatcher != nil {
		i.dispatcher.Activate(i.subview, i.host)
	}
	i.Scope.Resume()
	i.visible = true
	i.runInInstanceContext(func() { i.Hooks.Run(StageActivated) })
}

// Provide writes value under name into this instance's own provide map,
// per spec.md §4.9's dependency injection (provide writes local;
// inject walks parents, then falls back to an application-level table).
func (i *Instance) Provide(name string, value any) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.provide == nil {
		i.provide = map[any]any{}
	}
	i.provide[name] = value
}

// Inject walks this instance and its ancestors for name, falling back
// to appProvide (the application-level provide table) and finally def.
func (i *Instance) Inject(name string, def any, appProvide func(string) (any, bool)) any {
	for cur := i; cur != nil; cur = cur.parent {
		cur.mu.Lock()
		v, ok := cur.provide[name]
		cur.mu.Unlock()
		if ok {
			return v
		}
	}
	if appProvide != nil {
		if v, ok := appProvide(name); ok {
			return v
		}
	}
	return def
}

// IncSuspense/DecSuspense implement the suspense counter cell spec.md
// §4.9 describes: incrementing makes the nearest boundary show its
// fallback, decrementing past zero restores the real subtree.
func (i *Instance) IncSuspense() int32 {
	observability.Default().IncSuspenseToggle()
	return i.asyncPending.Add(1)
}
func (i *Instance) DecSuspense() int32 {
	observability.Default().IncSuspenseToggle()
	n := i.asyncPending.Add(-1)
	if n < 0 {
		i.asyncPending.Store(0)
		return 0
	}
	return n
}
func (i *Instance) Pending() bool { return i.asyncPending.Load() > 0 }
