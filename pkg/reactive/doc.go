// Package reactive implements the signal/effect graph: reactive cells,
// derived cells, effect scopes, dependency tracking, and a phased
// scheduler.
//
// Signal[T] is a reactive cell:
//
//	count := reactive.NewSignal(0)
//	v := count.Get()  // read, subscribes the current listener
//	count.Set(5)       // write, notifies dependents
//
// Derived[T] is a lazily-recomputed cell:
//
//	doubled := reactive.NewDerived(func() int { return count.Get() * 2 })
//
// Effect re-runs its body whenever a signal it read last run changes:
//
//	reactive.CreateEffect(scope, func() reactive.Cleanup {
//	    fmt.Println("count is", count.Get())
//	    return nil
//	})
//
// Scope owns effects and child scopes; disposing a scope cascades to
// its children first, then runs its own cleanups LIFO.
//
// Writes inside Batch coalesce into a single scheduler drain:
//
//	reactive.Batch(func() {
//	    a.Set(1)
//	    b.Set(2)
//	})
package reactive
