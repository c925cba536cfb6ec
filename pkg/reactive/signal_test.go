package reactive

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalReadWrite(t *testing.T) {
	count := NewSignal(0)
	assert.Equal(t, 0, count.Get())

	count.Set(5)
	assert.Equal(t, 5, count.Get())

	count.Update(func(n int) int { return n * 2 })
	assert.Equal(t, 10, count.Get())
}

func TestSignalNoOpWriteDoesNotNotify(t *testing.T) {
	scope := NewScope(nil)
	defer scope.Dispose()

	count := NewSignal(1)
	runs := 0
	CreateEffect(scope, func() Cleanup {
		count.Get()
		runs++
		return nil
	})
	assert.Equal(t, 1, runs)

	count.Set(1) // same value, equality short-circuits
	assert.Equal(t, 1, runs)

	count.Set(2)
	FlushSync()
	assert.Equal(t, 2, runs)
}

func TestSignalPeekDoesNotTrack(t *testing.T) {
	scope := NewScope(nil)
	defer scope.Dispose()

	count := NewSignal(42)
	runs := 0
	CreateEffect(scope, func() Cleanup {
		count.Peek()
		runs++
		return nil
	})
	assert.Equal(t, 1, runs)

	count.Set(100)
	FlushSync()
	assert.Equal(t, 1, runs, "peek must not subscribe the effect")
}

func TestReadOnlySignalPanics(t *testing.T) {
	s := NewSignal(1, ReadOnly[int]())
	assert.PanicsWithValue(t, ErrReadOnlyWrite, func() {
		s.Set(2)
	})
}

func TestDefaultEqualsHandlesNaN(t *testing.T) {
	nan := NewSignal(math.NaN())
	runs := 0
	scope := NewScope(nil)
	defer scope.Dispose()
	CreateEffect(scope, func() Cleanup {
		nan.Get()
		runs++
		return nil
	})
	nan.Set(nan.Get()) // equal value, no notification
	FlushSync()
	assert.Equal(t, 1, runs)
}
