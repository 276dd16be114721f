package engine_test

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/prism/engine"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

// fakeWindow runs the update callback a fixed number of times, or until RequestClose.
type fakeWindow struct {
	update func()
	resize func(int, int)
	frames int
	closed bool
	title  string
}

func (w *fakeWindow) SetUpdateCallback(cb func())                { w.update = cb }
func (w *fakeWindow) SetResizeCallback(cb func(int, int))        { w.resize = cb }
func (w *fakeWindow) SetKeyDownCallback(func(uint32))            {}
func (w *fakeWindow) SetPointerDownCallback(func(x, y float32))  {}
func (w *fakeWindow) SetPointerUpCallback(func(x, y float32))    {}
func (w *fakeWindow) SetPointerMoveCallback(func(x, y float32))  {}
func (w *fakeWindow) SetPointerLeaveCallback(func())             {}
func (w *fakeWindow) SetTitle(title string)                      { w.title = title }
func (w *fakeWindow) Title() string                              { return w.title }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (w *fakeWindow) IsRunning() bool                            { return !w.closed }
func (w *fakeWindow) RequestClose()                              { w.closed = true }
func (w *fakeWindow) Close() error                               { return nil }
func (w *fakeWindow) Width() int                                 { return 800 }
func (w *fakeWindow) Height() int                                { return 600 }

func (w *fakeWindow) ProcessMessages() {
	for i := 0; i < w.frames && !w.closed; i++ {
		w.update()
	}
}

// fakeClock advances by step on every read.
type fakeClock struct {
	t     time.Time
	step  time.Duration
	slept []time.Duration
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func (c *fakeClock) sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.t = c.t.Add(d)
}

func TestRunTicksThenRenders(t *testing.T) {
	w := &fakeWindow{frames: 3}
	e := engine.NewEngine(engine.WithWindow(w))

	var order []string
	e.SetTickCallback(func(float32) { order = append(order, "tick") })
	e.SetRenderCallback(func(float32) { order = append(order, "render") })
	e.Run()

	assert.Equal(t, []string{"tick", "render", "tick", "render", "tick", "render"}, order)
	assert.Equal(t, uint64(3), e.Frames())
	assert.Same(t, w, e.Window())
}

func TestQuitStopsBeforeRender(t *testing.T) {
	w := &fakeWindow{frames: 10}
	e := engine.NewEngine(engine.WithWindow(w))

	ticks, renders := 0, 0
	e.SetTickCallback(func(float32) {
		ticks++
		if ticks == 2 {
			e.Quit()
		}
	})
	e.SetRenderCallback(func(float32) { renders++ })
	e.Run()

	assert.Equal(t, 2, ticks)
	assert.Equal(t, 1, renders)
	assert.True(t, w.closed)
	assert.NotPanics(t, e.Quit)
}

func TestResizeIgnoresEmptySizes(t *testing.T) {
	w := &fakeWindow{}
	e := engine.NewEngine(engine.WithWindow(w))

	var sizes [][2]int
	e.SetResizeCallback(func(width, height int) { sizes = append(sizes, [2]int{width, height}) })
	e.Run()

	w.resize(0, 0)
	w.resize(1024, 768)
	assert.Equal(t, [][2]int{{1024, 768}}, sizes)
}

func TestFrameLimitSleepsRemainder(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0), step: time.Millisecond}
	w := &fakeWindow{frames: 2}
	e := engine.NewEngine(
		engine.WithWindow(w),
		engine.WithRenderFrameLimit(100),
		engine.WithClock(clock.now, clock.sleep),
	)
	e.Run()

	// each frame reads the clock twice, one step apart, so 9ms of the 10ms budget remain
	assert.Equal(t, []time.Duration{9 * time.Millisecond, 9 * time.Millisecond}, clock.slept)
}

func TestDeltaTimeAndElapsed(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0), step: 20 * time.Millisecond}
	w := &fakeWindow{frames: 2}
	e := engine.NewEngine(engine.WithWindow(w), engine.WithClock(clock.now, nil))
	assert.Zero(t, e.Elapsed())

	var deltas []float32
	e.SetTickCallback(func(dt float32) { deltas = append(deltas, dt) })
	e.Run()

	assert.InDeltaSlice(t, []float32{0.02, 0.02}, deltas, 1e-6)
	assert.Greater(t, e.Elapsed(), float32(0))
}

func TestRunWithoutWindow(t *testing.T) {
	e := engine.NewEngine()
	assert.NotPanics(t, e.Run)
	assert.Zero(t, e.Frames())
}

func TestProfilerToggle(t *testing.T) {
	w := &fakeWindow{frames: 5}
	e := engine.NewEngine(engine.WithWindow(w), engine.WithProfilerInterval(time.Nanosecond))
	e.EnableProfiler()
	assert.NotPanics(t, e.Run)
	e.DisableProfiler()
	assert.Equal(t, uint64(5), e.Frames())
}
