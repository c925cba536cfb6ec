package reactive

// Package-level dynamic-scope context store (C6). This is a stack per
// tag, never a global singleton map, kept inside the goroutine-local
// trackingContext so withAsyncContext-style capture/restore composes
// with the collector-frame stack above. It answers "what is the current
// component/render" during a tracked run; hierarchical provide/inject
// (C9) is a separate, tree-shaped mechanism: pkg/component keeps its own
// per-instance provide map and walks the instance parent chain.

// RunInContext pushes value onto tag's stack, runs fn, and pops.
func RunInContext(tag, value any, fn func()) {
	tc := currentTrackingContext()
	tc.ctxStacks[tag] = append(tc.ctxStacks[tag], value)
	defer func() {
		stack := tc.ctxStacks[tag]
		tc.ctxStacks[tag] = stack[:len(stack)-1]
	}()
	fn()
}

// GetContext returns the top value pushed for tag, if any.
func GetContext(tag any) (any, bool) {
	tc := currentTrackingContext()
	stack := tc.ctxStacks[tag]
	if len(stack) == 0 {
		return nil, false
	}
	return stack[len(stack)-1], true
}

// AsyncContextSnapshot captures the top-of-stack values for a fixed list
// of tags so they can be restored around a continuation that resumes
// after an await boundary (modeled in Go as resuming after a channel
// receive or goroutine handoff).
type AsyncContextSnapshot struct {
	tags   []any
	values []any
}

// CaptureAsyncContext snapshots the current values for tags.
func CaptureAsyncContext(tags ...any) *AsyncContextSnapshot {
	snap := &AsyncContextSnapshot{tags: tags, values: make([]any, len(tags))}
	for i, t := range tags {
		v, _ := GetContext(t)
		snap.values[i] = v
	}
	return snap
}

// Run re-pushes the captured values, runs fn, and pops them again -- so
// user code that awaits inside a component function still sees its
// originating component's context on resumption, without the context
// persisting into unrelated concurrent work.
func (snap *AsyncContextSnapshot) Run(fn func()) {
	tc := currentTrackingContext()
	for i, t := range snap.tags {
		tc.ctxStacks[t] = append(tc.ctxStacks[t], snap.values[i])
	}
	defer func() {
		for _, t := range snap.tags {
			stack := tc.ctxStacks[t]
			tc.ctxStacks[t] = stack[:len(stack)-1]
		}
	}()
	fn()
}
