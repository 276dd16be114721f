package engine

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/prism/common"
	"github.com/Carmen-Shannon/prism/engine/profiler"
	"github.com/Carmen-Shannon/prism/engine/window"
)

// engine implements the Engine interface.
// Everything runs on the thread that calls Run: window events, tick, render.
type engine struct {
	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)
	resizeCallback func(width, height int)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	start     time.Time
	lastFrame time.Time
	frames    uint64

	quitOnce sync.Once
	quit     bool

	now   func() time.Time
	sleep func(time.Duration)
}

// Engine is the main entry point for the engine.
// It owns the frame loop: each window update polls events, runs the tick callback, then the render
// callback, then optional profiling and frame limiting.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickCallback registers the function called once per frame before rendering.
	// Use this for input-driven state, animation and draining async results.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called once per frame after the tick.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetResizeCallback registers the function called when the window framebuffer changes size.
	//
	// Parameters:
	//   - callback: function receiving the new size in pixels
	SetResizeCallback(callback func(width, height int))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Elapsed returns the seconds since Run started.
	//
	// Returns:
	//   - float32: elapsed seconds
	Elapsed() float32

	// Frames returns the number of frames run so far.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64

	// Run starts the frame loop and blocks until the window closes or Quit is called.
	Run()

	// Quit asks the window to close after the current frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (window, profiling, frame limit)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		profiler: profiler.NewProfiler(time.Second),
		now:      time.Now,
		sleep:    time.Sleep,
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	if e.window == nil {
		common.Logger().Error("engine has no window")
		return
	}
	e.window.SetResizeCallback(func(width, height int) {
		if e.resizeCallback != nil && width > 0 && height > 0 {
			e.resizeCallback(width, height)
		}
	})
	e.window.SetUpdateCallback(e.frame)

	e.start = e.now()
	e.lastFrame = e.start
	e.window.ProcessMessages()
}

// frame runs one iteration of the loop. Called by the window after it has polled events.
func (e *engine) frame() {
	if e.quit {
		return
	}
	frameStart := e.now()
	dt := float32(frameStart.Sub(e.lastFrame).Seconds())
	e.lastFrame = frameStart

	if e.tickCallback != nil {
		e.tickCallback(dt)
	}
	if e.quit {
		return
	}
	if e.renderCallback != nil {
		e.renderCallback(dt)
	}
	e.frames++

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(frameStart); remaining > 0 {
			e.sleep(remaining)
		}
	}
}

// Quit stops the loop. Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.quit = true
		if e.window != nil {
			e.window.RequestClose()
		}
	})
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetResizeCallback(callback func(width, height int)) {
	e.resizeCallback = callback
}

// SetRenderFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) Elapsed() float32 {
	if e.start.IsZero() {
		return 0
	}
	return float32(e.now().Sub(e.start).Seconds())
}

func (e *engine) Frames() uint64 {
	return e.frames
}

// frameDuration converts a frame rate to the minimum frame duration; fps <= 0 means uncapped.
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
