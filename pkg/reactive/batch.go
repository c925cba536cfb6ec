package reactive

// Batch defers scheduler draining until the outermost Batch call on this
// goroutine returns. Writes inside nested Batch calls still take effect
// immediately (signals always store synchronously); only the resulting
// effect re-runs are deferred and deduplicated.
func Batch(fn func()) {
	tc := currentTrackingContext()
	tc.batchDepth++
	defer func() {
		tc.batchDepth--
		if tc.batchDepth == 0 {
			globalScheduler.Flush()
		}
	}()
	fn()
}

// Untracked runs fn with the current collector frame hidden: reads
// performed inside fn register no dependency.
func Untracked(fn func()) {
	pauseCollection(fn)
}

// UntrackedGet reads a signal's value without recording a dependency,
// equivalent to s.Peek() but spelled to match the public API surface.
func UntrackedGet[T any](s *Signal[T]) T {
	return s.Peek()
}
