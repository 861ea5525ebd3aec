package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionString(t *testing.T) {
	assert.Equal(t, "forward", ActionForward.String())
	assert.Equal(t, "quit", ActionQuit.String())
	assert.Equal(t, "unknown", Action(-1).String())
	assert.Equal(t, "unknown", actionCount.String())
}

func TestKeyState(t *testing.T) {
	var k KeyState
	assert.False(t, k.Held(ActionForward))

	k.Set(ActionForward, true)
	assert.True(t, k.Held(ActionForward))
	assert.False(t, k.Held(ActionBackward))

	k.Set(ActionForward, false)
	assert.False(t, k.Held(ActionForward))

	// Out-of-range actions are ignored.
	k.Set(ActionNone, true)
	k.Set(actionCount, true)
	assert.False(t, k.Held(ActionNone))
	assert.False(t, k.Held(actionCount))
}
