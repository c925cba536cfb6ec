package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEventPropPlain(t *testing.T) {
	event, capture, once, passive, ok := ParseEventProp("onClick")
	assert.True(t, ok)
	assert.Equal(t, "click", event)
	assert.False(t, capture)
	assert.False(t, once)
	assert.False(t, passive)
}

func TestParseEventPropCombinedModifiers(t *testing.T) {
	event, capture, once, passive, ok := ParseEventProp("onScrollCapturePassive")
	assert.True(t, ok)
	assert.Equal(t, "scroll", event)
	assert.True(t, capture)
	assert.False(t, once)
	assert.True(t, passive)
}

func TestParseEventPropRejectsNonEventKeys(t *testing.T) {
	_, _, _, _, ok := ParseEventProp("class")
	assert.False(t, ok)

	_, _, _, _, ok = ParseEventProp("on")
	assert.False(t, ok)

	_, _, _, _, ok = ParseEventProp("online")
	assert.False(t, ok)
}
