package reactive

import (
	"sync"

	"github.com/vitarx-lib/core-sub005/internal/gid"
)

// listener is anything a signal can notify: effects and derived signals
// both implement it so a collector frame can point at either.
type listener interface {
	ID() uint64
	addSource(s *signalBase)
	invalidate()
}

// frame is one entry of the collector-frame stack. A nil listener marks a
// paused frame: reads performed while it is on top register nothing, but
// the frame beneath it remains intact once popped.
type frame struct {
	listener listener
}

// trackingContext is the full per-goroutine reactive state: the collector
// stack, the current scope, the current dynamic-context stacks, and the
// batching depth, all behind one goroutine-id lookup. The collector side
// is a real stack of frames rather than one flat "current listener"
// field, so a paused frame can sit above an active one without losing it.
type trackingContext struct {
	stack      []frame
	owner      *Scope
	ctxStacks  map[any][]any
	batchDepth int
}

var trackingContexts sync.Map // int64 goroutine id -> *trackingContext

func currentTrackingContext() *trackingContext {
	g := gid.Get()
	if v, ok := trackingContexts.Load(g); ok {
		return v.(*trackingContext)
	}
	tc := &trackingContext{ctxStacks: make(map[any][]any)}
	trackingContexts.Store(g, tc)
	return tc
}

// releaseGoroutineContext drops the tracking state for the calling
// goroutine. Call it when a goroutine that touched the reactive graph is
// about to exit, so the sync.Map doesn't accumulate dead entries.
func releaseGoroutineContext() {
	trackingContexts.Delete(gid.Get())
}

// runWithCollector pushes l as the active collector frame, runs fn, and
// pops. Nested runWithCollector calls (an effect reading a derived signal
// whose compute reads a plain signal) are supported because each call
// only ever touches the top of the stack.
func runWithCollector(l listener, fn func()) {
	tc := currentTrackingContext()
	tc.stack = append(tc.stack, frame{listener: l})
	defer func() {
		tc.stack = tc.stack[:len(tc.stack)-1]
	}()
	fn()
}

// pauseCollection hides the current frame for the duration of fn: reads
// performed inside fn register no dependency, and the frame beneath is
// restored exactly once fn returns.
func pauseCollection(fn func()) {
	tc := currentTrackingContext()
	tc.stack = append(tc.stack, frame{listener: nil})
	defer func() {
		tc.stack = tc.stack[:len(tc.stack)-1]
	}()
	fn()
}

func currentListener() listener {
	tc := currentTrackingContext()
	if len(tc.stack) == 0 {
		return nil
	}
	return tc.stack[len(tc.stack)-1].listener
}

// track registers a read of s against the current collector frame, if any.
func track(s *signalBase) {
	if l := currentListener(); l != nil {
		l.addSource(s)
	}
}

// CurrentScope returns the scope active on the calling goroutine, or nil.
func CurrentScope() *Scope {
	return currentTrackingContext().owner
}

// WithScope makes s the current scope for the duration of fn.
func WithScope(s *Scope, fn func()) {
	tc := currentTrackingContext()
	prev := tc.owner
	tc.owner = s
	defer func() { tc.owner = prev }()
	fn()
}

func batchDepth() int {
	return currentTrackingContext().batchDepth
}
