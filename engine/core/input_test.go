package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputKeyStateTransitions(t *testing.T) {
	require.NoError(t, InputInitialize())
	defer InputShutdown()

	assert.False(t, InputIsKeyDown(KEY_W))
	assert.True(t, InputIsKeyUp(KEY_W))

	require.NoError(t, InputProcessKey(KEY_W, true))
	assert.True(t, InputIsKeyDown(KEY_W))
	assert.False(t, InputWasKeyDown(KEY_W))

	// End of frame: current snapshot becomes the previous one.
	require.NoError(t, InputUpdate(0.016))
	assert.True(t, InputIsKeyDown(KEY_W))
	assert.True(t, InputWasKeyDown(KEY_W))

	require.NoError(t, InputProcessKey(KEY_W, false))
	assert.False(t, InputIsKeyDown(KEY_W))
	assert.True(t, InputWasKeyDown(KEY_W))

	require.NoError(t, InputProcessKey(KEY_W, true))
	require.NoError(t, InputProcessKey(KEY_W, false))
	require.NoError(t, InputUpdate(0.016))
}

func TestInputProcessKeyFiresEventsOnChangeOnly(t *testing.T) {
	require.NoError(t, InputInitialize())
	defer InputShutdown()
	require.True(t, EventSystemInitialize())
	defer EventSystemShutdown()

	var pressed, released int
	EventRegister(EVENT_CODE_KEY_PRESSED, func(ctx EventContext) {
		ke, ok := ctx.Data.(*KeyEvent)
		require.True(t, ok)
		assert.Equal(t, KEY_G, ke.KeyCode)
		pressed++
	})
	EventRegister(EVENT_CODE_KEY_RELEASED, func(ctx EventContext) {
		released++
	})

	// Repeated reports of a held key fire a single press event.
	require.NoError(t, InputProcessKey(KEY_G, true))
	require.NoError(t, InputProcessKey(KEY_G, true))
	require.NoError(t, InputProcessKey(KEY_G, true))
	assert.Equal(t, 1, pressed)
	assert.Equal(t, 0, released)

	require.NoError(t, InputProcessKey(KEY_G, false))
	assert.Equal(t, 1, released)
}

func TestEventDispatchOrderAndResult(t *testing.T) {
	require.True(t, EventSystemInitialize())
	defer EventSystemShutdown()

	// No listeners: fire reports false.
	assert.False(t, EventFire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}))

	var order []int
	EventRegister(EVENT_CODE_APPLICATION_QUIT, func(ctx EventContext) {
		order = append(order, 1)
	})
	EventRegister(EVENT_CODE_APPLICATION_QUIT, func(ctx EventContext) {
		order = append(order, 2)
	})

	assert.True(t, EventFire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}))
	assert.Equal(t, []int{1, 2}, order)
}

func TestEventFireCarriesPayload(t *testing.T) {
	require.True(t, EventSystemInitialize())
	defer EventSystemShutdown()

	var got uint32
	EventRegister(EVENT_CODE_RESIZED, func(ctx EventContext) {
		se, ok := ctx.Data.(*SystemEvent)
		require.True(t, ok)
		got = se.WindowWidth
	})
	EventFire(EventContext{
		Type: EVENT_CODE_RESIZED,
		Data: &SystemEvent{WindowWidth: 800, WindowHeight: 600},
	})
	assert.EqualValues(t, 800, got)
}
