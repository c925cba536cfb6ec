package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeDisposalCascadesChildrenFirst(t *testing.T) {
	var order []string
	root := NewScope(nil)
	child := NewScope(root)
	grandchild := NewScope(child)

	root.OnCleanup(func() { order = append(order, "root") })
	child.OnCleanup(func() { order = append(order, "child") })
	grandchild.OnCleanup(func() { order = append(order, "grandchild") })

	root.Dispose()
	assert.Equal(t, []string{"grandchild", "child", "root"}, order)
}

func TestScopeDisposalSoundness(t *testing.T) {
	scope := NewScope(nil)
	count := NewSignal(0)
	runs := 0
	CreateEffect(scope, func() Cleanup {
		count.Get()
		runs++
		return nil
	})
	assert.Equal(t, 1, runs)

	scope.Dispose()
	count.Set(1)
	FlushSync()
	assert.Equal(t, 1, runs, "a disposed scope's effects must never run again")
}

func TestScopeValuesWalkParentChain(t *testing.T) {
	root := NewScope(nil)
	child := NewScope(root)

	root.SetValue("theme", "dark")
	v, ok := child.GetValue("theme")
	assert.True(t, ok)
	assert.Equal(t, "dark", v)

	_, ok = child.GetValue("missing")
	assert.False(t, ok)
}

func TestScopePauseResumeCoalescesInvalidations(t *testing.T) {
	scope := NewScope(nil)
	defer scope.Dispose()

	count := NewSignal(0)
	runs := 0
	CreateEffect(scope, func() Cleanup {
		count.Get()
		runs++
		return nil
	})
	assert.Equal(t, 1, runs)

	scope.Pause()
	count.Set(1)
	FlushSync()
	assert.Equal(t, 1, runs, "paused scope effects must not run")

	count.Set(2)
	scope.Resume()
	FlushSync()
	assert.Equal(t, 2, runs, "resuming re-queues the coalesced invalidation")
}
