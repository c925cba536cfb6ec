package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUntrackedHidesReads(t *testing.T) {
	scope := NewScope(nil)
	defer scope.Dispose()

	tracked := NewSignal(0)
	untracked := NewSignal(0)
	runs := 0
	CreateEffect(scope, func() Cleanup {
		tracked.Get()
		Untracked(func() {
			untracked.Get()
		})
		runs++
		return nil
	})
	assert.Equal(t, 1, runs)

	untracked.Set(1)
	FlushSync()
	assert.Equal(t, 1, runs, "reads inside Untracked must not register a dependency")

	tracked.Set(1)
	FlushSync()
	assert.Equal(t, 2, runs)
}

func TestUntrackedGetMatchesPeek(t *testing.T) {
	s := NewSignal(7)
	assert.Equal(t, s.Peek(), UntrackedGet(s))
}

func TestBatchCoalescesSharedDependent(t *testing.T) {
	scope := NewScope(nil)
	defer scope.Dispose()

	a := NewSignal(0)
	b := NewSignal(0)
	runs := 0
	CreateEffect(scope, func() Cleanup {
		_ = a.Get() + b.Get()
		runs++
		return nil
	})
	assert.Equal(t, 1, runs)

	Batch(func() {
		a.Set(1)
		b.Set(1)
	})
	assert.Equal(t, 2, runs, "both writes in one batch must coalesce into a single re-run")
}
