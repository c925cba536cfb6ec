package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunInContextPushesAndPops(t *testing.T) {
	_, ok := GetContext("theme")
	assert.False(t, ok)

	RunInContext("theme", "dark", func() {
		v, ok := GetContext("theme")
		assert.True(t, ok)
		assert.Equal(t, "dark", v)

		RunInContext("theme", "light", func() {
			v, _ := GetContext("theme")
			assert.Equal(t, "light", v, "nested RunInContext shadows the outer value")
		})

		v, _ = GetContext("theme")
		assert.Equal(t, "dark", v, "popping the nested frame restores the outer one")
	})

	_, ok = GetContext("theme")
	assert.False(t, ok)
}

func TestAsyncContextSnapshotRestoresAcrossContinuation(t *testing.T) {
	RunInContext("component", "Widget", func() {
		snap := CaptureAsyncContext("component")

		// Simulate the context stack having moved on by the time the
		// continuation resumes (e.g. after an awaited promise).
		RunInContext("component", "Other", func() {
			snap.Run(func() {
				v, ok := GetContext("component")
				assert.True(t, ok)
				assert.Equal(t, "Widget", v)
			})
			v, _ := GetContext("component")
			assert.Equal(t, "Other", v)
		})
	})
}
