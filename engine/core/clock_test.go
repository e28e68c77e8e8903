package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockElapsed(t *testing.T) {
	c := NewClock()
	c.Start()
	c.Update()
	first := c.Elapsed()
	assert.GreaterOrEqual(t, first, 0.0)

	time.Sleep(10 * time.Millisecond)
	c.Update()
	assert.Greater(t, c.Elapsed(), first)
}

func TestClockStopFreezesElapsed(t *testing.T) {
	c := NewClock()
	c.Start()
	c.Update()
	c.Stop()

	frozen := c.Elapsed()
	time.Sleep(5 * time.Millisecond)
	c.Update()
	assert.Equal(t, frozen, c.Elapsed())
}

func TestMetricsAverages(t *testing.T) {
	require.NoError(t, MetricsInitialize())

	// A full averaging window of 2ms frames.
	for i := uint8(0); i < AVG_COUNT; i++ {
		MetricsUpdate(0.002)
	}
	assert.InDelta(t, 2.0, MetricsFrameTime(), 0.01)
}
