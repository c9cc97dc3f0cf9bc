package profiler

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/stretchr/testify/assert"
)

func TestTick_ReportsOncePerInterval(t *testing.T) {
	start := time.Unix(0, 0)
	clock := start
	p := NewProfiler(common.NewNopLogger(), 500*time.Millisecond)
	p.now = func() time.Time { return clock }
	p.lastTime = start

	for range 29 {
		clock = clock.Add(10 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	assert.Zero(t, p.Last().Frames)

	clock = start.Add(time.Second)
	assert.True(t, p.Tick())
	assert.Equal(t, 30, p.Last().Frames)
	assert.InDelta(t, 30.0, p.Last().FPS, 1e-9)
	assert.Positive(t, p.Last().SysMB)

	clock = clock.Add(10 * time.Millisecond)
	assert.False(t, p.Tick())
}

func TestNewProfiler_Defaults(t *testing.T) {
	p := NewProfiler(nil, 0)
	assert.Equal(t, time.Second, p.updateInterval)
	assert.NotNil(t, p.logger)
}
