package reactive

import (
	"fmt"
	"sync/atomic"

	"github.com/vitarx-lib/core-sub005/internal/observability"
)

// Phase selects which scheduler queue an effect's re-runs enqueue into.
type Phase int

const (
	// PhasePre effects drain before a dependent render (pre-paint work).
	PhasePre Phase = iota
	// PhaseSync effects run immediately, interleaved with the write site.
	PhaseSync
	// PhasePost effects drain after host mutations have been applied.
	PhasePost
)

func (p Phase) String() string {
	switch p {
	case PhasePre:
		return "pre"
	case PhaseSync:
		return "sync"
	case PhasePost:
		return "post"
	default:
		return "unknown"
	}
}

// Cleanup is returned by an effect function and run before the next
// invocation, or at disposal.
type Cleanup func()

// Effect is a re-runnable unit of work tracked against the signals it
// reads. It re-entrancy-guards itself: an effect must not synchronously
// run itself during its own execution.
type Effect struct {
	id uint64

	fn      func() Cleanup
	cleanup Cleanup
	phase   Phase
	scope   *Scope

	sources []*signalBase

	pending  atomic.Bool
	running  atomic.Bool
	paused   atomic.Bool
	disposed atomic.Bool

	onError func(error)
}

// EffectOption configures an Effect at creation.
type EffectOption func(*Effect)

// WithPhase sets which queue the effect's invalidations enqueue into.
// The default is PhasePre.
func WithPhase(p Phase) EffectOption {
	return func(e *Effect) { e.phase = p }
}

// WithErrorHandler installs a handler invoked if fn panics with any
// value, which is first normalized by wrapAsUserError; without one, run
// re-panics with that error, so it propagates out of the write or flush
// that ran the effect.
func WithErrorHandler(h func(error)) EffectOption {
	return func(e *Effect) { e.onError = h }
}

// CreateEffect builds an effect inside scope (CurrentScope() if scope is
// nil), applies opts, registers it for disposal with the scope, and runs
// it once immediately.
func CreateEffect(scope *Scope, fn func() Cleanup, opts ...EffectOption) *Effect {
	if scope == nil {
		scope = CurrentScope()
	}
	e := &Effect{id: nextID(), fn: fn, scope: scope}
	for _, opt := range opts {
		opt(e)
	}
	if scope != nil {
		scope.own(e)
	}
	e.run()
	return e
}

func (e *Effect) ID() uint64 { return e.id }

func (e *Effect) addSource(s *signalBase) {
	for _, existing := range e.sources {
		if existing == s {
			return
		}
	}
	e.sources = append(e.sources, s)
	s.subscribe(e)
}

// invalidate implements listener. It enqueues the effect on its phase's
// scheduler queue, deduping by identity; PhaseSync effects run in place.
func (e *Effect) invalidate() {
	if e.disposed.Load() {
		return
	}
	if e.phase == PhaseSync {
		e.run()
		return
	}
	if e.pending.CompareAndSwap(false, true) {
		globalScheduler.enqueue(e)
	}
}

// run executes the effect body under a fresh collector frame, clearing
// the previous link set and firing the prior cleanup first.
func (e *Effect) run() {
	if e.disposed.Load() || e.paused.Load() {
		return
	}
	if !e.running.CompareAndSwap(false, true) {
		panic(&ReactivityError{Msg: "effect re-entered itself synchronously"})
	}
	defer e.running.Store(false)

	e.pending.Store(false)

	if e.cleanup != nil {
		c := e.cleanup
		e.cleanup = nil
		c()
	}

	for _, s := range e.sources {
		s.unsubscribe(e.id)
	}
	e.sources = e.sources[:0]

	observability.Default().IncEffectRun(e.phase.String())
	e.runProtected()
}

func (e *Effect) runProtected() {
	defer func() {
		if r := recover(); r != nil {
			err := wrapAsUserError(r, "effect")
			if e.onError != nil {
				e.onError(err)
				return
			}
			panic(err)
		}
	}()
	runWithCollector(e, func() {
		e.cleanup = e.fn()
	})
}

// wrapAsUserError normalizes a recovered panic value into the error
// taxonomy: existing taxonomy errors pass through unchanged, anything
// else becomes a UserError tagged with source.
func wrapAsUserError(v any, source string) error {
	switch v.(type) {
	case *UserError, *ShapeError, *StateError, *ReactivityError, *AsyncRejection:
		return v.(error)
	}
	var err error
	if e, ok := v.(error); ok {
		err = e
	} else {
		err = fmt.Errorf("%v", v)
	}
	return &UserError{Err: err, Source: source}
}

// dispose implements disposable.
func (e *Effect) dispose() {
	if !e.disposed.CompareAndSwap(false, true) {
		return
	}
	for _, s := range e.sources {
		s.unsubscribe(e.id)
	}
	e.sources = nil
	if e.cleanup != nil {
		c := e.cleanup
		e.cleanup = nil
		c()
	}
}

// setPaused implements disposable; resuming re-queues accumulated
// invalidations for the next drain.
func (e *Effect) setPaused(p bool) {
	wasPaused := e.paused.Swap(p)
	if wasPaused && !p && e.pending.Load() {
		globalScheduler.enqueue(e)
	}
}

// OnMount runs fn once, immediately, inside an effect owned by scope,
// with dependency collection paused so fn never re-runs.
func OnMount(scope *Scope, fn func()) {
	CreateEffect(scope, func() Cleanup {
		pauseCollection(fn)
		return nil
	})
}

// OnUnmount registers fn as a scope-disposal cleanup.
func OnUnmount(scope *Scope, fn func()) {
	if scope == nil {
		scope = CurrentScope()
	}
	if scope != nil {
		scope.OnCleanup(fn)
	}
}
