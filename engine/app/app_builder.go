package app

import (
	"github.com/Carmen-Shannon/prism/engine/config"
	"github.com/Carmen-Shannon/prism/engine/loader"
	"github.com/Carmen-Shannon/prism/engine/panel"
	"github.com/Carmen-Shannon/prism/engine/scene"
)

// AppBuilderOption is a functional option for configuring an App.
type AppBuilderOption func(*app)

// WithSceneOptions passes options to the scene the App composes.
//
// Parameters:
//   - options: scene builder options
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithSceneOptions(options ...scene.SceneBuilderOption) AppBuilderOption {
	return func(a *app) {
		a.sceneOptions = append(a.sceneOptions, options...)
	}
}

// WithScene uses an already composed scene instead of building one.
//
// Parameters:
//   - s: the scene
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithScene(s scene.Scene) AppBuilderOption {
	return func(a *app) {
		a.scene = s
	}
}

// WithDisplay sets the surface the control panel writes its status line to.
//
// Parameters:
//   - d: the display, usually the window
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithDisplay(d panel.Display) AppBuilderOption {
	return func(a *app) {
		a.panelOptions = append(a.panelOptions, panel.WithDisplay(d))
	}
}

// WithPanelTitle sets the prefix of the panel status line.
//
// Parameters:
//   - title: the prefix
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithPanelTitle(title string) AppBuilderOption {
	return func(a *app) {
		a.panelOptions = append(a.panelOptions, panel.WithTitle(title))
	}
}

// WithLoader sets the loader used for environment images. Without one, LoadEnvironment is a no-op.
//
// Parameters:
//   - l: the loader
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithLoader(l loader.Loader) AppBuilderOption {
	return func(a *app) {
		a.loader = l
	}
}

// WithConfigUpdates sets a channel of reloaded configurations that Tick drains.
//
// Parameters:
//   - updates: the channel, usually config.Watcher.Updates()
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithConfigUpdates(updates <-chan config.Config) AppBuilderOption {
	return func(a *app) {
		a.updates = updates
	}
}

// WithQuitHandler sets the function called when the quit key is pressed.
//
// Parameters:
//   - fn: the handler
//
// Returns:
//   - AppBuilderOption: option function to apply
func WithQuitHandler(fn func()) AppBuilderOption {
	return func(a *app) {
		a.quit = fn
	}
}
