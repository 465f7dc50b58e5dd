package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withEvents(t *testing.T) {
	t.Helper()
	require.True(t, EventSystemInitialize())
	t.Cleanup(func() { _ = EventSystemShutdown() })
}

func TestEventFireStopsWhenHandled(t *testing.T) {
	withEvents(t)

	var calls []string
	first := func(ctx EventContext) bool {
		calls = append(calls, "first")
		return ctx.Data == "stop"
	}
	second := func(EventContext) bool {
		calls = append(calls, "second")
		return false
	}
	require.True(t, EventRegister(EVENT_CODE_RESIZED, "a", first))
	require.True(t, EventRegister(EVENT_CODE_RESIZED, "b", second))
	assert.False(t, EventRegister(EVENT_CODE_RESIZED, "a", second))

	assert.False(t, EventFire(EventContext{Type: EVENT_CODE_RESIZED}))
	assert.True(t, EventFire(EventContext{Type: EVENT_CODE_RESIZED, Data: "stop"}))
	assert.Equal(t, []string{"first", "second", "first"}, calls)

	assert.False(t, EventFire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT}))
}

func TestEventUnregister(t *testing.T) {
	withEvents(t)

	count := 0
	handler := func(EventContext) bool {
		count++
		return false
	}
	require.True(t, EventRegister(EVENT_CODE_KEY_PRESSED, "a", handler))
	require.True(t, EventRegister(EVENT_CODE_KEY_PRESSED, "b", handler))

	assert.True(t, EventUnregister(EVENT_CODE_KEY_PRESSED, "a"))
	assert.False(t, EventUnregister(EVENT_CODE_KEY_PRESSED, "a"))

	EventFire(EventContext{Type: EVENT_CODE_KEY_PRESSED})
	assert.Equal(t, 1, count)
}

func TestEventsBeforeInitialize(t *testing.T) {
	assert.False(t, EventRegister(EVENT_CODE_RESIZED, "a", func(EventContext) bool { return true }))
	assert.False(t, EventFire(EventContext{Type: EVENT_CODE_RESIZED}))
}

func TestInputKeys(t *testing.T) {
	withEvents(t)
	require.NoError(t, InputInitialize())
	t.Cleanup(func() { _ = InputShutdown() })

	var pressed []KeyCode
	EventRegister(EVENT_CODE_KEY_PRESSED, "test", func(ctx EventContext) bool {
		pressed = append(pressed, ctx.Data.(*KeyEvent).KeyCode)
		return true
	})

	InputProcessKey(KEY_W, true)
	InputProcessKey(KEY_W, true)
	assert.True(t, InputIsKeyDown(KEY_W))
	assert.True(t, InputKeyPressed(KEY_W))
	assert.Equal(t, []KeyCode{KEY_W}, pressed)

	InputUpdate()
	assert.True(t, InputWasKeyDown(KEY_W))
	assert.False(t, InputKeyPressed(KEY_W))

	InputProcessKey(KEY_W, false)
	assert.False(t, InputIsKeyDown(KEY_W))
	assert.False(t, InputIsKeyDown(KEYS_MAX_KEYS))
}

func TestInputMouse(t *testing.T) {
	withEvents(t)
	require.NoError(t, InputInitialize())
	t.Cleanup(func() { _ = InputShutdown() })

	InputProcessMouseMove(10, 20)
	InputUpdate()
	InputProcessMouseMove(15, 12)
	dx, dy := InputGetMouseDelta()
	assert.Equal(t, int32(5), dx)
	assert.Equal(t, int32(-8), dy)

	InputProcessButton(BUTTON_RIGHT, true)
	assert.True(t, InputIsButtonDown(BUTTON_RIGHT))
	assert.False(t, InputIsButtonDown(BUTTON_LEFT))
}
