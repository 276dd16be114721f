package app

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/prism/common"
	"github.com/Carmen-Shannon/prism/engine"
	"github.com/Carmen-Shannon/prism/engine/camera"
	"github.com/Carmen-Shannon/prism/engine/config"
	"github.com/Carmen-Shannon/prism/engine/loader"
	"github.com/Carmen-Shannon/prism/engine/renderer"
	"github.com/Carmen-Shannon/prism/engine/scene"
	"github.com/Carmen-Shannon/prism/engine/window"
)

// RunOptions are the process-level knobs that are not part of the config file.
type RunOptions struct {
	// WatchPath, when set, hot reloads the config file at this path.
	WatchPath string
}

// Run opens the window, creates the GPU renderer and drives the App until the window closes.
// It must be called from the main goroutine.
//
// Parameters:
//   - cfg: the resolved configuration (file merged with flags)
//   - opts: process-level options
//
// Returns:
//   - error: if the renderer cannot be created
func Run(cfg config.Config, opts RunOptions) error {
	log := common.Logger()

	w := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	defer w.Close()

	background := common.Color(cfg.Render.ClearColor)
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, w,
		renderer.WithPresentMode(renderer.ParsePresentMode(cfg.Window.PresentMode)),
		renderer.WithMSAA(renderer.ParseMSAA(cfg.Window.MSAA)),
		renderer.WithClearColor(background),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer r.Release()

	pass, err := renderer.NewScenePass(r)
	if err != nil {
		return fmt.Errorf("failed to create scene pass: %w", err)
	}
	defer pass.Release()

	cam := camera.NewCamera(
		camera.WithPosition(0, 0, 8),
		camera.WithTarget(0, 0, 0),
		camera.WithFov(50),
		camera.WithClipPlanes(0.1, 100),
	)
	cam.Resize(w.Width(), w.Height())

	appOptions := []AppBuilderOption{
		WithSceneOptions(
			scene.WithDustSeed(cfg.Scene.DustSeed),
			scene.WithBackground(background),
		),
		WithDisplay(w),
		WithPanelTitle(cfg.Window.Title),
		WithLoader(loader.NewLoader(loader.WithMaxWidth(cfg.Environment.MaxWidth))),
	}
	if opts.WatchPath != "" {
		watcher, err := config.Watch(opts.WatchPath)
		if err != nil {
			log.Warn("config hot reload disabled", slog.Any("err", err))
		} else {
			defer watcher.Close()
			appOptions = append(appOptions, WithConfigUpdates(watcher.Updates()))
		}
	}
	a := New(appOptions...)
	if err := a.ApplyConfig(cfg); err != nil {
		log.Warn("config settings", slog.Any("err", err))
	}

	e := engine.NewEngine(
		engine.WithWindow(w),
		engine.WithProfiling(cfg.Render.Profiling),
		engine.WithRenderFrameLimit(cfg.Render.FrameLimit),
	)
	a.SetQuitHandler(e.Quit)

	ctrl := a.Controller()
	w.SetKeyDownCallback(func(key uint32) { a.HandleKey(key) })
	w.SetPointerDownCallback(ctrl.PointerDown)
	w.SetPointerMoveCallback(ctrl.PointerMove)
	w.SetPointerUpCallback(func(x, y float32) { ctrl.PointerUp() })
	w.SetPointerLeaveCallback(ctrl.PointerLeave)

	e.SetResizeCallback(func(width, height int) {
		if err := r.Resize(width, height); err != nil {
			log.Error("resize", slog.Any("err", err))
		}
		cam.Resize(width, height)
	})
	e.SetTickCallback(a.Tick)
	e.SetRenderCallback(func(float32) {
		if err := pass.Render(a.Scene(), cam, e.Elapsed()); err != nil {
			log.Debug("frame skipped", slog.Any("err", err))
		}
	})

	log.Info("prism started",
		slog.Int("width", w.Width()),
		slog.Int("height", w.Height()),
		slog.String("shape", a.Settings().Shape),
	)
	e.Run()
	log.Info("prism stopped", slog.Uint64("frames", e.Frames()))
	return nil
}
