package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewProfilerDefaultsInterval(t *testing.T) {
	assert.Equal(t, time.Second, NewProfiler(0).updateInterval)
	assert.Equal(t, 250*time.Millisecond, NewProfiler(250*time.Millisecond).updateInterval)
}

func TestTickReportsOncePerInterval(t *testing.T) {
	base := time.Unix(100, 0)
	clock := base
	p := NewProfiler(time.Second)
	p.now = func() time.Time { return clock }
	p.lastTime = base

	for i := 0; i < 59; i++ {
		clock = clock.Add(time.Second / 60)
		_, ok := p.Tick()
		assert.False(t, ok)
	}
	clock = base.Add(time.Second)
	stats, ok := p.Tick()
	assert.True(t, ok)
	assert.InDelta(t, 60, stats.FPS, 1e-9)
	assert.Greater(t, stats.SysMB, 0.0)

	// the window restarts after a report
	clock = clock.Add(time.Second / 2)
	_, ok = p.Tick()
	assert.False(t, ok)
	assert.Equal(t, 1, p.frameCount)
}
