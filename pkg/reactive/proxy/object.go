package proxy

import (
	"sync"

	"github.com/vitarx-lib/core-sub005/pkg/reactive"
)

// Object is a reactive wrapper over a map[string]any. Own-property reads
// route through a lazily created per-key signal; reads of keys that do
// not (yet) exist record a "has" dependency so a later Set of that same
// key still invalidates them. Iterating Keys tracks a structural
// sentinel bumped on every add/delete.
type Object struct {
	raw  map[string]any
	deep bool

	mu          sync.Mutex
	propSignals map[string]*reactive.Signal[any]
	hasSignals  map[string]*reactive.Signal[bool]
	structural  *reactive.Signal[uint64]
}

type objectConfig struct{ deep bool }

// ObjectOption configures Reactive.
type ObjectOption func(*objectConfig)

// Deep makes nested plain-object/array values returned by Get wrapped
// reactively in turn, recursively, the first time they are read.
func Deep() ObjectOption { return func(c *objectConfig) { c.deep = true } }

// Reactive wraps target, returning a cached *Object for repeat calls on
// the same target so identity is stable. A target previously passed to
// MarkRaw is returned unwrapped.
func Reactive(target map[string]any, opts ...ObjectOption) any {
	if isMarkedRaw(target) {
		return target
	}
	cfg := &objectConfig{}
	for _, o := range opts {
		o(cfg)
	}
	id := identity(target)
	if cached, ok := caches.get(id, cfg.deep); ok {
		return cached
	}
	obj := &Object{
		raw:         target,
		deep:        cfg.deep,
		propSignals: make(map[string]*reactive.Signal[any]),
		hasSignals:  make(map[string]*reactive.Signal[bool]),
		structural:  reactive.NewSignal[uint64](0),
	}
	caches.put(id, cfg.deep, obj)
	return obj
}

func (o *Object) propSignal(key string, create bool) *reactive.Signal[any] {
	o.mu.Lock()
	defer o.mu.Unlock()
	s, ok := o.propSignals[key]
	if ok || !create {
		return s
	}
	s = reactive.NewSignal[any](o.raw[key])
	o.propSignals[key] = s
	return s
}

func (o *Object) hasSignal(key string) *reactive.Signal[bool] {
	o.mu.Lock()
	defer o.mu.Unlock()
	s, ok := o.hasSignals[key]
	if !ok {
		_, existed := o.raw[key]
		s = reactive.NewSignal(existed)
		o.hasSignals[key] = s
	}
	return s
}

func asWrappable(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// Get reads key, tracking a dependency on it (an own-property signal if
// key exists, otherwise a "has" existence signal).
func (o *Object) Get(key string) any {
	o.mu.Lock()
	_, own := o.raw[key]
	o.mu.Unlock()

	if !own {
		o.hasSignal(key).Get()
		return nil
	}
	val := o.propSignal(key, true).Get()
	if o.deep {
		if nested, ok := asWrappable(val); ok {
			opts := []ObjectOption{}
			if o.deep {
				opts = append(opts, Deep())
			}
			return Reactive(nested, opts...)
		}
		if nestedArr, ok := val.(*[]any); ok {
			return ReactiveArray(nestedArr, Deep())
		}
	}
	return val
}

// Has reports whether key is an own property, tracking the same
// dependency Get would for a non-own read.
func (o *Object) Has(key string) bool {
	o.mu.Lock()
	_, existed := o.raw[key]
	o.mu.Unlock()
	o.hasSignal(key).Get()
	return existed
}

// Set writes key, routing through the property signal when one already
// exists. A write that does not change the value (per reflect.DeepEqual)
// is a no-op: no signal fires.
func (o *Object) Set(key string, v any) {
	o.mu.Lock()
	old, existed := o.raw[key]
	sig := o.propSignals[key]
	o.mu.Unlock()

	if existed {
		o.mu.Lock()
		o.raw[key] = v
		o.mu.Unlock()
		if sig != nil {
			sig.Set(v)
		}
		return
	}
	if equalAny(old, v) {
		return
	}
	o.mu.Lock()
	o.raw[key] = v
	o.mu.Unlock()
	if hs, ok := o.hasSignals[key]; ok {
		hs.Set(true)
	}
	o.bumpStructural()
}

// Delete removes key, invalidating both its property signal (so current
// readers see the deletion) and its has-signal, then bumps the
// structural sentinel so iteration-dependent effects re-run.
func (o *Object) Delete(key string) bool {
	o.mu.Lock()
	_, existed := o.raw[key]
	if !existed {
		o.mu.Unlock()
		return false
	}
	delete(o.raw, key)
	sig := o.propSignals[key]
	delete(o.propSignals, key)
	o.mu.Unlock()

	if sig != nil {
		sig.Set(nil)
	}
	if hs, ok := o.hasSignals[key]; ok {
		hs.Set(false)
	}
	o.bumpStructural()
	return true
}

// Keys returns a snapshot of the current own keys, tracking the
// structural sentinel (any future add/delete invalidates callers).
func (o *Object) Keys() []string {
	o.structural.Get()
	o.mu.Lock()
	defer o.mu.Unlock()
	keys := make([]string, 0, len(o.raw))
	for k := range o.raw {
		keys = append(keys, k)
	}
	return keys
}

func (o *Object) bumpStructural() {
	o.structural.Update(func(n uint64) uint64 { return n + 1 })
}
