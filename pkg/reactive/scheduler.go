package reactive

import (
	"log/slog"
	"sync"

	"github.com/vitarx-lib/core-sub005/internal/observability"
)

// scheduler holds the pre/post queues. Sync-phase effects never touch a
// queue: invalidate() runs them in place at the write site.
//
// There is no JS-style microtask in Go, so "drains on a microtask after
// the first enqueue in a tick" is modeled as: outside a Batch, the first
// enqueue of a tick drains immediately once the triggering write
// returns; inside a Batch, draining is deferred to the outermost Batch
// exit. Either way draining happens synchronously on the calling
// goroutine -- there is no background flusher goroutine, matching the
// single-threaded-cooperative model.
type scheduler struct {
	mu       sync.Mutex
	pre      []*Effect
	preSeen  map[uint64]bool
	post     []*Effect
	postSeen map[uint64]bool
	draining bool

	// MaxReentrantDrains bounds how many times a single Flush may loop
	// over a phase before giving up and logging a diagnostic, guarding
	// against pathological effect cycles.
	MaxReentrantDrains int
}

var globalScheduler = newScheduler()

func newScheduler() *scheduler {
	return &scheduler{
		preSeen:            make(map[uint64]bool),
		postSeen:           make(map[uint64]bool),
		MaxReentrantDrains: 1000,
	}
}

func (s *scheduler) enqueue(e *Effect) {
	s.mu.Lock()
	switch e.phase {
	case PhasePre:
		if !s.preSeen[e.id] {
			s.preSeen[e.id] = true
			s.pre = append(s.pre, e)
		}
	case PhasePost:
		if !s.postSeen[e.id] {
			s.postSeen[e.id] = true
			s.post = append(s.post, e)
		}
	}
	s.mu.Unlock()

	if batchDepth() == 0 {
		s.Flush()
	}
}

func (s *scheduler) popPhase(phase Phase) []*Effect {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch phase {
	case PhasePre:
		batch := s.pre
		s.pre = nil
		for k := range s.preSeen {
			delete(s.preSeen, k)
		}
		return batch
	case PhasePost:
		batch := s.post
		s.post = nil
		for k := range s.postSeen {
			delete(s.postSeen, k)
		}
		return batch
	}
	return nil
}

// Flush drains the pre queue to quiescence, then the post queue to
// quiescence. While a drain is in progress (on any goroutine) a call
// simply returns: the in-progress loop will pick up anything newly enqueued
// because it keeps re-checking the queue until it is empty.
func (s *scheduler) Flush() {
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true
	s.mu.Unlock()

	observability.Default().IncFlush()

	defer func() {
		s.mu.Lock()
		s.draining = false
		s.mu.Unlock()
	}()

	s.drainPhase(PhasePre)
	s.drainPhase(PhasePost)
}

func (s *scheduler) drainPhase(phase Phase) {
	iterations := 0
	for {
		batch := s.popPhase(phase)
		if len(batch) == 0 {
			return
		}
		iterations++
		if iterations > s.MaxReentrantDrains {
			slog.Warn("reactive: max re-entrant scheduler drain depth exceeded, aborting flush", "phase", phase, "iterations", iterations)
			return
		}
		for _, e := range batch {
			e.run()
		}
	}
}

// FlushSync drains all queues to quiescence regardless of batching state.
// Tests and the SSR path use it to settle async init before inspection.
func FlushSync() {
	globalScheduler.Flush()
}

// NextTickFunc runs fn after the next flush completes. Since this
// runtime has no background flusher, "after the next flush" means:
// flush now, then call fn -- matching flushSync-driven test usage.
func NextTickFunc(fn func()) {
	FlushSync()
	fn()
}
