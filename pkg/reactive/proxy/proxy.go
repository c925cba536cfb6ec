// Package proxy implements reactive object/array/map/set wrappers (C5):
// transparent-ish wrappers that emit structural signals on mutation and
// track per-property/per-key reads, with stable wrapper identity cached
// per target.
//
// Go has no language-level Proxy trap, so per the core spec's design
// notes ("where proxy-style interception is unavailable, expose explicit
// get(path)/set(path, v) with the same dependency-tracking discipline")
// these wrappers expose explicit Get/Set/Delete/Has rather than
// intercepting native map/slice indexing.
package proxy

import (
	"reflect"
	"sync"
)

// identity is the cache/mark key derived from a raw target. Maps are
// reference types in Go -- the pointer backing a map value never moves
// even as the map grows -- so reflect.ValueOf(m).Pointer() is a stable
// identity for the life of that map value. Slices are not: append can
// reallocate the backing array, so array targets are identified by a
// pointer to the slice header itself (*[]any), which is stable.
func identity(target any) any {
	switch t := target.(type) {
	case map[string]any:
		return reflect.ValueOf(t).Pointer()
	case *[]any:
		return t
	default:
		return nil
	}
}

var markedRaw sync.Map // identity -> struct{}

// MarkRaw excludes target from ever being wrapped: Reactive(target)
// returns target itself, unwrapped, even when nested inside a deep
// reactive read.
func MarkRaw(target any) any {
	if id := identity(target); id != nil {
		markedRaw.Store(id, struct{}{})
	}
	return target
}

func isMarkedRaw(target any) bool {
	id := identity(target)
	if id == nil {
		return false
	}
	_, ok := markedRaw.Load(id)
	return ok
}

type wrapperCache struct {
	mu      sync.Mutex
	deep    map[any]any
	shallow map[any]any
}

var caches = &wrapperCache{deep: make(map[any]any), shallow: make(map[any]any)}

func (c *wrapperCache) get(id any, deep bool) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := c.shallow
	if deep {
		m = c.deep
	}
	v, ok := m[id]
	return v, ok
}

func (c *wrapperCache) put(id any, deep bool, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := c.shallow
	if deep {
		m = c.deep
	}
	m[id] = v
}

// Raw returns the underlying target of an Object, Array or Readonly
// wrapper, or p unchanged otherwise (a *Map or *Set_ included).
func Raw(p any) any {
	switch v := p.(type) {
	case *Object:
		return v.raw
	case *Array:
		return v.ptr
	case *Readonly:
		return Raw(v.inner)
	default:
		return p
	}
}

// Readonly wraps an Object or Array (as returned by Reactive/ReactiveArray)
// and exposes only Get, which keeps the same dependency-tracking
// discipline as the writable wrapper. It has no write methods.
type Readonly struct {
	inner any
}

// AsReadonly wraps a reactive Object or Array in a read-only facade.
// Passing a non-wrapper value returns it unchanged.
func AsReadonly(p any) any {
	switch p.(type) {
	case *Object, *Array:
		return &Readonly{inner: p}
	default:
		return p
	}
}

// Get proxies to the wrapped Object/Array's Get. The value it returns is
// not itself wrapped read-only: a nested wrapper from a deep read is the
// writable one.
func (r *Readonly) Get(key any) any {
	switch v := r.inner.(type) {
	case *Object:
		k, _ := key.(string)
		return v.Get(k)
	case *Array:
		i, _ := key.(int)
		return v.Get(i)
	}
	return nil
}

func equalAny(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
