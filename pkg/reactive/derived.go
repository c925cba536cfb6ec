package reactive

import (
	"sync"
	"sync/atomic"
)

// Derived is a signal whose value is the return of a pure function,
// evaluated lazily: recomputation happens on first read after any
// source invalidation, not eagerly on write.
type Derived[T any] struct {
	base signalBase

	compute func() T
	equal   EqualFunc[T]

	mu    sync.Mutex
	value T
	ready bool

	dirty     atomic.Bool
	computing atomic.Bool

	sources []*signalBase
}

// DerivedOption configures a Derived at construction.
type DerivedOption[T any] func(*Derived[T])

// NewDerived creates a lazily-evaluated signal from compute.
func NewDerived[T any](compute func() T, opts ...DerivedOption[T]) *Derived[T] {
	d := &Derived[T]{
		base:    newSignalBase(),
		compute: compute,
		equal:   defaultEquals[T],
	}
	d.dirty.Store(true)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithDerivedEquals stores eq as the Derived's equality function. The
// Derived does not consult it: dependents are notified on invalidation,
// before any recompute, whether or not the new value is equal.
func WithDerivedEquals[T any](eq EqualFunc[T]) DerivedOption[T] {
	return func(d *Derived[T]) { d.equal = eq }
}

func (d *Derived[T]) ID() uint64 { return d.base.id }

// addSource implements listener: called while d.compute runs inside its
// own collector frame.
func (d *Derived[T]) addSource(s *signalBase) {
	for _, existing := range d.sources {
		if existing == s {
			return
		}
	}
	d.sources = append(d.sources, s)
	s.subscribe(d)
}

// invalidate implements listener: a source changed. Derived signals
// cascade dirtiness lazily -- only notify our own dependents once, the
// first time we transition clean->dirty, so a burst of upstream writes
// before anyone reads us still produces one downstream invalidation.
func (d *Derived[T]) invalidate() {
	if d.dirty.CompareAndSwap(false, true) {
		d.base.notify()
	}
}

// Get records a dependency and returns the up-to-date value, recomputing
// first if dirty.
func (d *Derived[T]) Get() T {
	track(&d.base)
	if d.dirty.Load() {
		d.recompute()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value
}

// Peek returns the up-to-date value without recording a dependency.
func (d *Derived[T]) Peek() T {
	if d.dirty.Load() {
		d.recompute()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value
}

func (d *Derived[T]) recompute() {
	if !d.computing.CompareAndSwap(false, true) {
		panic(&ReactivityError{Msg: "circular dependency in derived signal"})
	}
	defer d.computing.Store(false)

	for _, s := range d.sources {
		s.unsubscribe(d.base.id)
	}
	d.sources = d.sources[:0]

	var v T
	runWithCollector(d, func() {
		v = d.compute()
	})

	d.mu.Lock()
	d.value = v
	d.ready = true
	d.mu.Unlock()
	d.dirty.Store(false)
}
