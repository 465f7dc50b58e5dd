package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifierPool(t *testing.T) {
	pool := NewIdentifierPool(4)

	err := pool.Release(0)
	require.ErrorIs(t, err, ErrIdentifierPoolEmpty)

	a := pool.Acquire("a")
	b := pool.Acquire("b")
	c := pool.Acquire("c")
	assert.Equal(t, []uint32{0, 1, 2}, []uint32{a, b, c})
	assert.Equal(t, "b", pool.Owner(b))

	require.NoError(t, pool.Release(b))
	assert.Nil(t, pool.Owner(b))

	// released ids are recycled lowest first
	assert.Equal(t, b, pool.Acquire("d"))
	assert.Equal(t, uint32(3), pool.Acquire("e"))

	err = pool.Release(10)
	assert.ErrorIs(t, err, ErrIdentifierOutOfRange)
	assert.Nil(t, pool.Owner(10))
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < int(AVG_COUNT); i++ {
		m.Update(0.016)
	}
	assert.InDelta(t, 16.0, m.FrameTime(), 1e-9)
	assert.Equal(t, float64(0), m.FPS)

	// crossing one accumulated second publishes the frame count
	for i := 0; i < 40; i++ {
		m.Update(0.016)
	}
	fps, avg := m.Frame()
	assert.Equal(t, float64(62), fps)
	assert.InDelta(t, 16.0, avg, 1e-9)

	m.RecordRender(3, 1, 42)
	assert.Equal(t, 3, m.PassesVisited)
	assert.Equal(t, 1, m.PassesSkipped)
	assert.Equal(t, 42, m.Renderables)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in    string
		level LogLevel
		ok    bool
	}{
		{"debug", LogLevelDebug, true},
		{" INFO ", LogLevelInfo, true},
		{"Warning", LogLevelWarn, true},
		{"error", LogLevelError, true},
		{"verbose", LogLevelInfo, false},
	}
	for _, tt := range tests {
		level, ok := ParseLogLevel(tt.in)
		assert.Equal(t, tt.level, level, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
	assert.Equal(t, "warn", LogLevelWarn.String())
}

func TestClock(t *testing.T) {
	c := NewClock()
	c.Update()
	assert.Equal(t, float64(0), c.Elapsed())

	c.Start()
	time.Sleep(5 * time.Millisecond)
	c.Update()
	assert.GreaterOrEqual(t, c.ElapsedMS(), uint64(5))
	assert.Greater(t, c.Elapsed(), 0.004)

	c.Stop()
	elapsed := c.Elapsed()
	c.Update()
	assert.Equal(t, elapsed, c.Elapsed())
}
