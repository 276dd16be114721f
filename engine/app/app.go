package app

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/prism/common"
	"github.com/Carmen-Shannon/prism/engine/config"
	"github.com/Carmen-Shannon/prism/engine/interaction"
	"github.com/Carmen-Shannon/prism/engine/loader"
	"github.com/Carmen-Shannon/prism/engine/panel"
	"github.com/Carmen-Shannon/prism/engine/scene"
	"github.com/Carmen-Shannon/prism/engine/settings"
)

// app is the implementation of the App interface.
type app struct {
	record     settings.Settings
	registry   *settings.Registry
	scene      scene.Scene
	controller interaction.Controller
	panel      panel.Panel

	loader  loader.Loader
	envPath string
	updates <-chan config.Config

	sceneOptions []scene.SceneBuilderOption
	panelOptions []panel.PanelBuilderOption
	quit         func()
}

// App binds the settings record, the scene, the pointer controller and the control panel together.
//
// The record is the single source of truth. Panel writes go through the registry, whose callbacks push
// each new value into the scene. Drag, auto-rotate, keyboard shortcuts and config reloads write the
// record and the scene directly and then refresh the registry display. Everything runs on the frame
// loop's goroutine; background results (environment image, config reload) are drained in Tick.
type App interface {
	interaction.Target

	// Settings returns a copy of the canonical record.
	//
	// Returns:
	//   - settings.Settings: the record
	Settings() settings.Settings

	// Registry returns the control registry.
	//
	// Returns:
	//   - *settings.Registry: the registry
	Registry() *settings.Registry

	// Scene returns the composed scene.
	//
	// Returns:
	//   - scene.Scene: the scene
	Scene() scene.Scene

	// Controller returns the pointer/auto-rotate controller.
	//
	// Returns:
	//   - interaction.Controller: the controller
	Controller() interaction.Controller

	// Panel returns the control panel.
	//
	// Returns:
	//   - panel.Panel: the panel
	Panel() panel.Panel

	// HandleKey applies a keyboard shortcut or forwards the key to the panel.
	//
	// Parameters:
	//   - key: the virtual key code
	//
	// Returns:
	//   - bool: true if the key was consumed
	HandleKey(key uint32) bool

	// Tick drains finished background work and advances auto-rotation by one frame.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous tick (auto-rotate is per tick, not per second)
	Tick(deltaTime float32)

	// ApplyConfig applies the [settings] overrides and starts loading a changed environment image.
	//
	// Parameters:
	//   - cfg: the configuration
	//
	// Returns:
	//   - error: the joined override failures, if any. Valid overrides are still applied.
	ApplyConfig(cfg config.Config) error

	// LoadEnvironment starts decoding an environment image in the background. The scene is updated in
	// a later Tick. Failures are logged and leave the environment unchanged.
	//
	// Parameters:
	//   - path: the image path
	LoadEnvironment(path string)

	// SetQuitHandler registers the function called when the quit key is pressed.
	//
	// Parameters:
	//   - fn: the handler
	SetQuitHandler(fn func())
}

var _ App = &app{}

// New creates an App with the default record, a freshly composed scene and every parameter registered.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - App: the app, with the scene already matching the record
func New(options ...AppBuilderOption) App {
	a := &app{record: settings.Defaults()}
	for _, opt := range options {
		opt(a)
	}
	if a.scene == nil {
		a.scene = scene.NewScene(a.sceneOptions...)
	}
	a.registry = settings.NewRegistry()
	a.register()
	a.syncScene()

	a.controller = interaction.NewController(a)
	a.panel = panel.NewPanel(a.registry, a.panelOptions...)
	a.registry.UpdateDisplay()
	return a
}

// declaration looks up a built-in parameter. The names are package constants, so a miss is a programming error.
func declaration(name string) settings.Param {
	p, ok := settings.Declaration(name)
	if !ok {
		panic(fmt.Sprintf("app: parameter %q is not declared", name))
	}
	return p
}

// register binds every declared parameter to its record field and its scene effect.
func (a *app) register() {
	r, s, rec := a.registry, a.scene, &a.record

	r.AddChoice(declaration(settings.ParamShape), &rec.Shape, func(name string) {
		if kind, err := scene.ParseShape(name); err == nil {
			s.SetActiveShape(kind)
		}
	})
	r.AddFloat(declaration(settings.ParamGap), &rec.Gap, s.SetBiPyramidGap)

	orient := func(float32) { s.SetOrientation(rec.RotateX, rec.RotateY, rec.RotateZ) }
	r.AddFloat(declaration(settings.ParamRotateX), &rec.RotateX, orient)
	r.AddFloat(declaration(settings.ParamRotateY), &rec.RotateY, orient)
	r.AddFloat(declaration(settings.ParamRotateZ), &rec.RotateZ, orient)
	r.AddBool(declaration(settings.ParamAutoRotate), &rec.AutoRotate, nil)
	r.AddFloat(declaration(settings.ParamRotationSpeed), &rec.RotationSpeed, nil)

	m := s.Material()
	r.AddFloat(declaration(settings.ParamTransmission), &rec.Transmission, m.SetTransmission)
	r.AddFloat(declaration(settings.ParamIOR), &rec.IOR, m.SetIOR)
	r.AddFloat(declaration(settings.ParamDispersion), &rec.Dispersion, m.SetDispersion)
	r.AddFloat(declaration(settings.ParamThickness), &rec.Thickness, m.SetThickness)
	r.AddFloat(declaration(settings.ParamRoughness), &rec.Roughness, m.SetRoughness)

	r.AddFloat(declaration(settings.ParamLightIntensity), &rec.LightIntensity, s.SetLightIntensity)
	r.AddBool(declaration(settings.ParamShowBeam), &rec.ShowBeam, s.SetBeamVisible)
	r.AddFloat(declaration(settings.ParamBeamOpacity), &rec.BeamOpacity, s.SetBeamOpacity)

	r.AddFloat(declaration(settings.ParamFogDensity), &rec.FogDensity, s.SetFogDensity)
	r.AddBool(declaration(settings.ParamShowParticles), &rec.ShowParticles, s.SetParticlesVisible)
}

// syncScene pushes the whole record into the scene.
func (a *app) syncScene() {
	rec, s := a.record, a.scene
	if kind, err := scene.ParseShape(rec.Shape); err == nil {
		s.SetActiveShape(kind)
	}
	s.SetBiPyramidGap(rec.Gap)
	s.SetOrientation(rec.RotateX, rec.RotateY, rec.RotateZ)

	m := s.Material()
	m.SetTransmission(rec.Transmission)
	m.SetIOR(rec.IOR)
	m.SetDispersion(rec.Dispersion)
	m.SetThickness(rec.Thickness)
	m.SetRoughness(rec.Roughness)

	s.SetLightIntensity(rec.LightIntensity)
	s.SetBeamVisible(rec.ShowBeam)
	s.SetBeamOpacity(rec.BeamOpacity)
	s.SetFogDensity(rec.FogDensity)
	s.SetParticlesVisible(rec.ShowParticles)
}

func (a *app) Settings() settings.Settings {
	return a.record
}

func (a *app) Registry() *settings.Registry {
	return a.registry
}

func (a *app) Scene() scene.Scene {
	return a.scene
}

func (a *app) Controller() interaction.Controller {
	return a.controller
}

func (a *app) Panel() panel.Panel {
	return a.panel
}

func (a *app) Orientation() (x, y, z float32) {
	return a.record.RotateX, a.record.RotateY, a.record.RotateZ
}

// SetOrientation is the non-panel write path used by drag, auto-rotate and reset. Angles outside
// [-π, π] are wrapped into it, so the record always sits inside the panel range.
func (a *app) SetOrientation(x, y, z float32) {
	x, y, z = common.WrapAngle32(x), common.WrapAngle32(y), common.WrapAngle32(z)
	a.record.RotateX, a.record.RotateY, a.record.RotateZ = x, y, z
	a.scene.SetOrientation(x, y, z)
	a.registry.UpdateDisplay()
}

func (a *app) AutoRotate() (bool, float32) {
	return a.record.AutoRotate, a.record.RotationSpeed
}

func (a *app) Tick(deltaTime float32) {
	if a.loader != nil {
		a.loader.Drain(a.installEnvironment)
	}
	if a.updates != nil {
		a.drainConfig()
	}
	a.controller.Tick()
}

func (a *app) drainConfig() {
	for {
		select {
		case cfg, ok := <-a.updates:
			if !ok {
				a.updates = nil
				return
			}
			common.Logger().Info("config reloaded")
			if err := a.ApplyConfig(cfg); err != nil {
				common.Logger().Warn("config reload", slog.Any("err", err))
			}
		default:
			return
		}
	}
}

func (a *app) installEnvironment(res loader.Result) {
	if res.Err != nil {
		common.Logger().Warn("environment load failed", slog.String("path", res.Path), slog.Any("err", res.Err))
		return
	}
	// A result for a path that has since been replaced is stale.
	if res.Path != a.envPath {
		return
	}
	a.scene.SetEnvironment(res.Texture)
	common.Logger().Info("environment installed",
		slog.String("path", res.Path),
		slog.Int("width", int(res.Texture.Width)),
		slog.Int("height", int(res.Texture.Height)),
	)
}

func (a *app) ApplyConfig(cfg config.Config) error {
	var err error
	if len(cfg.Settings) > 0 {
		err = a.registry.Apply(cfg.Settings)
	}
	if cfg.Environment.Path != "" && cfg.Environment.Path != a.envPath {
		a.LoadEnvironment(cfg.Environment.Path)
	}
	return err
}

func (a *app) LoadEnvironment(path string) {
	if a.loader == nil || path == "" {
		return
	}
	a.envPath = path
	a.loader.Load(path)
}

func (a *app) SetQuitHandler(fn func()) {
	a.quit = fn
}
