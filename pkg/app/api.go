// Package app is the public surface spec.md §6 lists: the free
// functions user code calls directly (signal, derived, effect, scope,
// reactive, readonly, raw, untracked, provide, inject, nextTick,
// createVNode) plus the createApp/mount/unmount/use/provide/directive
// application object. It is a thin façade over pkg/reactive,
// pkg/reactive/proxy, pkg/vdom, pkg/component and pkg/driver -- none of
// those packages import this one.
package app

import (
	"github.com/vitarx-lib/core-sub005/pkg/component"
	"github.com/vitarx-lib/core-sub005/pkg/reactive"
	"github.com/vitarx-lib/core-sub005/pkg/reactive/proxy"
	"github.com/vitarx-lib/core-sub005/pkg/vdom"
)

// Signal creates a writable reactive cell.
func Signal[T any](initial T, opts ...reactive.SignalOption[T]) *reactive.Signal[T] {
	return reactive.NewSignal(initial, opts...)
}

// Derived creates a lazily-recomputed reactive cell.
func Derived[T any](compute func() T, opts ...reactive.DerivedOption[T]) *reactive.Derived[T] {
	return reactive.NewDerived(compute, opts...)
}

// Effect schedules fn to run now and again whenever a signal it read
// changes, per the chosen phase (reactive.WithPhase).
func Effect(fn func() reactive.Cleanup, opts ...reactive.EffectOption) *reactive.Effect {
	return reactive.CreateEffect(nil, fn, opts...)
}

// Scope runs fn inside a fresh child scope of the current one and
// returns it still live (the caller keeps the returned handle to dispose
// later, or never, for an app-lifetime scope).
func Scope(fn func()) *reactive.Scope {
	s := reactive.NewScope(reactive.CurrentScope())
	reactive.WithScope(s, fn)
	return s
}

// Reactive wraps target (a map[string]any or *[]any) in a fine-grained
// reactive proxy, per spec.md §4.5.
func Reactive(target any, opts ...proxy.ObjectOption) any {
	switch t := target.(type) {
	case map[string]any:
		return proxy.Reactive(t, opts...)
	case *[]any:
		return proxy.ReactiveArray(t, opts...)
	case map[any]any:
		return proxy.ReactiveMap(t)
	case map[any]struct{}:
		return proxy.ReactiveSet(t)
	default:
		return target
	}
}

// Readonly wraps a reactive Object or Array proxy in a facade that
// exposes only Get; other values are returned unchanged.
func Readonly(p any) any { return proxy.AsReadonly(p) }

// Raw unwraps a reactive proxy back to its underlying target.
func Raw(p any) any { return proxy.Raw(p) }

// Untracked runs fn with dependency collection suspended.
func Untracked(fn func()) { reactive.Untracked(fn) }

// Provide writes name -> value into the current component instance's
// provide map, or the application-level table outside any instance.
func Provide(name string, value any) {
	inst := component.Current()
	if inst == nil {
		provideTable[name] = value
		return
	}
	inst.Provide(name, value)
}

// Inject walks the current instance's ancestors, then the
// application-level provide table, then returns def.
func Inject(name string, def any) any {
	return component.Inject(name, def)
}

var provideTable = map[string]any{}

func appProvideLookup(name string) (any, bool) {
	v, ok := provideTable[name]
	return v, ok
}

func init() {
	component.SetAppProvideTable(appProvideLookup)
}

// Ref creates a host-node reference cell, attached by the driver once a
// vnode carrying a matching `ref` prop mounts (see BindRef).
func Ref[T any](initial T) *component.Ref[T] { return component.NewRef(initial) }

// BindRef registers ref under name against the widget currently being
// constructed, so any vnode in its render output with `ref: name`
// resolves to it once mounted.
func BindRef(name string, ref any) { component.BindRef(name, ref) }

// NextTick runs fn after the next scheduler flush completes.
func NextTick(fn func()) { reactive.NextTickFunc(fn) }

// CreateVNode is the canonical vnode constructor, re-exported at the
// application boundary so call sites never need to import pkg/vdom
// directly.
func CreateVNode(typ any, props vdom.Props, children []any) *vdom.VNode {
	return vdom.CreateVNode(typ, props, children)
}
