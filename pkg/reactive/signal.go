package reactive

import (
	"math"
	"reflect"
	"sync"
)

// signalBase is the dependent-set half of every signal kind (plain
// signals and derived signals both embed it). It is deliberately free of
// a value so Signal[T] and Derived[T] can each store theirs with the
// representation that fits them.
type signalBase struct {
	id    uint64
	subMu sync.RWMutex
	subs  map[uint64]listener
}

func newSignalBase() signalBase {
	return signalBase{id: nextID()}
}

func (b *signalBase) ID() uint64 { return b.id }

func (b *signalBase) subscribe(l listener) {
	b.subMu.Lock()
	defer b.subMu.Unlock()
	if b.subs == nil {
		b.subs = make(map[uint64]listener)
	}
	b.subs[l.ID()] = l
}

func (b *signalBase) unsubscribe(id uint64) {
	b.subMu.Lock()
	defer b.subMu.Unlock()
	delete(b.subs, id)
}

// notify invalidates every current subscriber. The subscriber set is
// copied under lock first since invalidate() may re-enter and mutate it
// (an effect that unsubscribes/resubscribes on the very run we trigger).
// The invalidations run inside a Batch, so queued effects drain only
// after every subscriber has been invalidated.
func (b *signalBase) notify() {
	b.subMu.RLock()
	subs := make([]listener, 0, len(b.subs))
	for _, l := range b.subs {
		subs = append(subs, l)
	}
	b.subMu.RUnlock()
	Batch(func() {
		for _, l := range subs {
			l.invalidate()
		}
	})
}

// EqualFunc decides whether a write is a no-op. It must be deterministic
// and side-effect-free; violating that is observable as missed or extra
// updates, never a safety failure.
type EqualFunc[T any] func(a, b T) bool

// Signal is a readable, optionally-writable reactive cell with identity.
type Signal[T any] struct {
	base signalBase

	mu       sync.RWMutex
	value    T
	equal    EqualFunc[T]
	readOnly bool
}

// SignalOption configures a Signal at construction.
type SignalOption[T any] func(*Signal[T])

// WithEquals overrides the default equality function.
func WithEquals[T any](eq EqualFunc[T]) SignalOption[T] {
	return func(s *Signal[T]) { s.equal = eq }
}

// ReadOnly marks the signal so Set/Update panic with ErrReadOnlyWrite.
func ReadOnly[T any]() SignalOption[T] {
	return func(s *Signal[T]) { s.readOnly = true }
}

// NewSignal creates a writable signal with the given initial value.
func NewSignal[T any](initial T, opts ...SignalOption[T]) *Signal[T] {
	s := &Signal[T]{
		base:  newSignalBase(),
		value: initial,
		equal: defaultEquals[T],
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get records a dependency (if inside a collector frame) and returns the
// current value.
func (s *Signal[T]) Get() T {
	track(&s.base)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Peek returns the current value without recording a dependency.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set compares v against the current value with the signal's equality
// function; on a difference it stores v and notifies dependents.
func (s *Signal[T]) Set(v T) {
	if s.readOnly {
		panic(ErrReadOnlyWrite)
	}
	s.mu.Lock()
	if s.equal(s.value, v) {
		s.mu.Unlock()
		return
	}
	s.value = v
	s.mu.Unlock()
	s.base.notify()
}

// Update reads the current value, applies fn, and writes the result back
// through Set (so equality and notification still apply).
func (s *Signal[T]) Update(fn func(T) T) {
	s.Set(fn(s.Peek()))
}

// ID returns the signal's stable identity.
func (s *Signal[T]) ID() uint64 { return s.base.id }

// defaultEquals mirrors JS's Object.is for the scalar kinds that need
// -0/NaN handling, and falls back to reflect.DeepEqual otherwise.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case float64:
		bv, ok := any(b).(float64)
		if !ok {
			return false
		}
		if math.IsNaN(av) && math.IsNaN(bv) {
			return true
		}
		return math.Float64bits(av) == math.Float64bits(bv)
	case float32:
		bv, ok := any(b).(float32)
		if !ok {
			return false
		}
		if math.IsNaN(float64(av)) && math.IsNaN(float64(bv)) {
			return true
		}
		return math.Float32bits(av) == math.Float32bits(bv)
	case string, int, int64, bool:
		return any(a) == any(b)
	case nil:
		return any(b) == nil
	}
	return reflect.DeepEqual(a, b)
}
