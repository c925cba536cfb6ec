package proxy

import (
	"sync"

	"github.com/vitarx-lib/core-sub005/pkg/reactive"
)

// Array is a reactive wrapper over a *[]any. Each index has its own
// lazily created signal (mirroring Object's per-property signals) plus
// a bound length signal and a structural sentinel bumped by any
// operation that changes the element count (push/pop/delete, SetLength,
// or a Set that appends),
// matching spec.md §4.5's "assignments to length must invalidate
// property signals for indices that become out-of-bounds".
type Array struct {
	ptr  *[]any
	deep bool

	mu      sync.Mutex
	indexes map[int]*reactive.Signal[any]
	length  *reactive.Signal[int]
	struct_ *reactive.Signal[uint64]
}

// ReactiveArray wraps target, returning a cached *Array for repeat calls
// on the same pointer so identity is stable. A target previously passed
// to MarkRaw is returned unwrapped.
func ReactiveArray(target *[]any, opts ...ObjectOption) any {
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
	a := &Array{
		ptr:     target,
		deep:    cfg.deep,
		indexes: make(map[int]*reactive.Signal[any]),
		length:  reactive.NewSignal(len(*target)),
		struct_: reactive.NewSignal[uint64](0),
	}
	caches.put(id, cfg.deep, a)
	return a
}

func (a *Array) indexSignal(i int, create bool) *reactive.Signal[any] {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.indexes[i]
	if ok || !create {
		return s
	}
	var v any
	if i >= 0 && i < len(*a.ptr) {
		v = (*a.ptr)[i]
	}
	s = reactive.NewSignal(v)
	a.indexes[i] = s
	return s
}

// Len tracks the bound length signal and returns the current length.
func (a *Array) Len() int { return a.length.Get() }

// Get reads index i, tracking a dependency on that index's signal. Deep
// arrays return nested map/array values wrapped in turn.
func (a *Array) Get(i int) any {
	val := a.indexSignal(i, true).Get()
	if a.deep {
		if nested, ok := val.(map[string]any); ok {
			return Reactive(nested, Deep())
		}
		if nestedArr, ok := val.(*[]any); ok {
			return ReactiveArray(nestedArr, Deep())
		}
	}
	return val
}

// Set writes index i. Writing at i == Len() appends (growing the
// array); writing within bounds updates in place. No-op writes (per
// Object.is-style equality) do not emit.
func (a *Array) Set(i int, v any) {
	a.mu.Lock()
	n := len(*a.ptr)
	if i < 0 || i > n {
		a.mu.Unlock()
		return
	}
	if i == n {
		*a.ptr = append(*a.ptr, v)
		a.mu.Unlock()
		a.indexSignal(i, true).Set(v)
		a.length.Set(n + 1)
		a.bumpStructural()
		return
	}
	old := (*a.ptr)[i]
	if equalAny(old, v) {
		a.mu.Unlock()
		return
	}
	(*a.ptr)[i] = v
	a.mu.Unlock()
	a.indexSignal(i, true).Set(v)
}

// SetLength truncates or extends the array to n elements. Truncation
// invalidates the signals of every index that falls out of bounds;
// extension pads with nil and leaves existing index signals untouched.
func (a *Array) SetLength(n int) {
	if n < 0 {
		n = 0
	}
	a.mu.Lock()
	old := len(*a.ptr)
	if n == old {
		a.mu.Unlock()
		return
	}
	if n < old {
		*a.ptr = (*a.ptr)[:n]
	} else {
		*a.ptr = append(*a.ptr, make([]any, n-old)...)
	}
	a.mu.Unlock()

	if n < old {
		for i := n; i < old; i++ {
			if sig, ok := a.indexes[i]; ok {
				sig.Set(nil)
			}
		}
	}
	a.length.Set(n)
	a.bumpStructural()
}

// Push appends items, growing the length and bumping the structural
// sentinel once.
func (a *Array) Push(items ...any) {
	if len(items) == 0 {
		return
	}
	a.mu.Lock()
	start := len(*a.ptr)
	*a.ptr = append(*a.ptr, items...)
	a.mu.Unlock()
	for i, v := range items {
		a.indexSignal(start+i, true).Set(v)
	}
	a.length.Set(start + len(items))
	a.bumpStructural()
}

// Pop removes and returns the last element, or (nil, false) if empty.
func (a *Array) Pop() (any, bool) {
	a.mu.Lock()
	n := len(*a.ptr)
	if n == 0 {
		a.mu.Unlock()
		return nil, false
	}
	v := (*a.ptr)[n-1]
	*a.ptr = (*a.ptr)[:n-1]
	a.mu.Unlock()

	if sig, ok := a.indexes[n-1]; ok {
		sig.Set(nil)
	}
	a.length.Set(n - 1)
	a.bumpStructural()
	return v, true
}

// Delete removes the element at i, shifting subsequent elements down by
// one. Every index signal from i to the old last index is invalidated
// since its value shifts.
func (a *Array) Delete(i int) bool {
	a.mu.Lock()
	n := len(*a.ptr)
	if i < 0 || i >= n {
		a.mu.Unlock()
		return false
	}
	*a.ptr = append((*a.ptr)[:i], (*a.ptr)[i+1:]...)
	snapshot := append([]any(nil), *a.ptr...)
	a.mu.Unlock()

	for j := i; j < n-1; j++ {
		if sig, ok := a.indexes[j]; ok {
			sig.Set(snapshot[j])
		}
	}
	if sig, ok := a.indexes[n-1]; ok {
		sig.Set(nil)
	}
	a.length.Set(n - 1)
	a.bumpStructural()
	return true
}

// Values returns a snapshot of the current elements, tracking the
// structural sentinel so any future length-changing op invalidates
// iteration-dependent callers.
func (a *Array) Values() []any {
	a.struct_.Get()
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]any(nil), (*a.ptr)...)
}

func (a *Array) bumpStructural() {
	a.struct_.Update(func(n uint64) uint64 { return n + 1 })
}
