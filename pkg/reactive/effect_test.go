package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectReRunsOnDependencyChange(t *testing.T) {
	scope := NewScope(nil)
	defer scope.Dispose()

	count := NewSignal(0)
	var seen []int
	CreateEffect(scope, func() Cleanup {
		seen = append(seen, count.Get())
		return nil
	})
	assert.Equal(t, []int{0}, seen)

	count.Set(1)
	FlushSync()
	assert.Equal(t, []int{0, 1}, seen)
}

func TestEffectClearsStaleDependencies(t *testing.T) {
	scope := NewScope(nil)
	defer scope.Dispose()

	branch := NewSignal(true)
	a := NewSignal("a")
	b := NewSignal("b")
	runs := 0
	CreateEffect(scope, func() Cleanup {
		runs++
		if branch.Get() {
			a.Get()
		} else {
			b.Get()
		}
		return nil
	})
	assert.Equal(t, 1, runs)

	branch.Set(false)
	FlushSync()
	assert.Equal(t, 2, runs)

	// a is no longer a dependency; writing it must not re-run the effect.
	a.Set("a2")
	FlushSync()
	assert.Equal(t, 2, runs)

	b.Set("b2")
	FlushSync()
	assert.Equal(t, 3, runs)
}

func TestEffectCleanupRunsBeforeNextRunAndOnDispose(t *testing.T) {
	scope := NewScope(nil)
	count := NewSignal(0)
	var cleanups int
	CreateEffect(scope, func() Cleanup {
		count.Get()
		return func() { cleanups++ }
	})
	assert.Equal(t, 0, cleanups)

	count.Set(1)
	FlushSync()
	assert.Equal(t, 1, cleanups)

	scope.Dispose()
	assert.Equal(t, 2, cleanups)
}

func TestEffectReentrancyIsDetected(t *testing.T) {
	scope := NewScope(nil)
	defer scope.Dispose()

	count := NewSignal(0)
	var captured error
	CreateEffect(scope, func() Cleanup {
		v := count.Get()
		if v == 0 {
			// A sync-phase write inside the effect's own run re-enters
			// run() synchronously, which must be rejected.
			count.Set(1)
		}
		return nil
	}, WithPhase(PhaseSync), WithErrorHandler(func(err error) { captured = err }))

	assert.Error(t, captured)
	assert.Contains(t, captured.Error(), "re-entered")
}

func TestEffectErrorHandlerCatchesPanic(t *testing.T) {
	scope := NewScope(nil)
	defer scope.Dispose()

	var captured error
	CreateEffect(scope, func() Cleanup {
		panic("boom")
	}, WithErrorHandler(func(err error) { captured = err }))

	assert.Error(t, captured)
	assert.Contains(t, captured.Error(), "boom")
}

func TestEffectDedupesMultipleWritesInATick(t *testing.T) {
	scope := NewScope(nil)
	defer scope.Dispose()

	a := NewSignal(0)
	b := NewSignal(0)
	runs := 0
	CreateEffect(scope, func() Cleanup {
		a.Get()
		b.Get()
		runs++
		return nil
	}, WithPhase(PhasePre))
	assert.Equal(t, 1, runs)

	Batch(func() {
		a.Set(1)
		b.Set(1)
		a.Set(2)
	})
	assert.Equal(t, 2, runs)
}
