package app_test

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/Carmen-Shannon/prism/common"
	"github.com/Carmen-Shannon/prism/engine/app"
	"github.com/Carmen-Shannon/prism/engine/config"
	"github.com/Carmen-Shannon/prism/engine/loader"
	"github.com/Carmen-Shannon/prism/engine/scene"
	"github.com/Carmen-Shannon/prism/engine/settings"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

// fakeLoader records requests and hands back queued results on Drain.
type fakeLoader struct {
	requested []string
	results   []loader.Result
}

func (f *fakeLoader) Load(path string) { f.requested = append(f.requested, path) }
func (f *fakeLoader) LoadSync(string) (*common.TextureStagingData, error) {
	return nil, errors.New("not supported")
}
func (f *fakeLoader) LoadReader(string, io.Reader) (*common.TextureStagingData, error) {
	return nil, errors.New("not supported")
}
func (f *fakeLoader) Get(string) *common.TextureStagingData { return nil }
func (f *fakeLoader) Pending() int                          { return len(f.results) }
func (f *fakeLoader) Drain(fn func(loader.Result)) int {
	n := len(f.results)
	for _, r := range f.results {
		fn(r)
	}
	f.results = nil
	return n
}

type fakeDisplay struct{ title string }

func (d *fakeDisplay) SetTitle(title string) { d.title = title }

func orientation(s scene.Scene) mgl32.Vec3 {
	x, y, z := s.Orientation()
	return mgl32.Vec3{x, y, z}
}

// assertInSync checks the scene reflects the record and the panel shows no stale value.
func assertInSync(t *testing.T, a app.App) {
	t.Helper()
	rec, s := a.Settings(), a.Scene()

	assert.Equal(t, rec.Shape, s.ActiveShape().String())
	assert.Equal(t, mgl32.Vec3{rec.RotateX, rec.RotateY, rec.RotateZ}, orientation(s))
	assert.InDelta(t, rec.Gap, s.BiPyramidGap(), eps)

	m := s.Material()
	assert.InDelta(t, rec.Transmission, m.Transmission(), eps)
	assert.InDelta(t, rec.IOR, m.IOR(), eps)
	assert.InDelta(t, rec.Dispersion, m.Dispersion(), eps)
	assert.InDelta(t, rec.Thickness, m.Thickness(), eps)
	assert.InDelta(t, rec.Roughness, m.Roughness(), eps)

	assert.InDelta(t, rec.LightIntensity, s.LightIntensity(), eps)
	assert.Equal(t, rec.ShowBeam, s.BeamVisible())
	assert.InDelta(t, rec.BeamOpacity, s.BeamOpacity(), eps)
	assert.InDelta(t, rec.FogDensity, s.FogDensity(), eps)
	assert.Equal(t, rec.ShowParticles, s.ParticlesVisible())

	assert.Empty(t, a.Registry().Stale())
}

func TestNewStartsInSync(t *testing.T) {
	a := app.New()
	assert.Equal(t, settings.Defaults(), a.Settings())
	assert.Equal(t, scene.ShapeBiPyramid, a.Scene().ActiveShape())
	assert.Equal(t, scene.InitialOrientation, orientation(a.Scene()))
	assert.Len(t, a.Registry().Controls(), len(settings.Declarations()))
	assertInSync(t, a)
}

func TestPanelWritesReachScene(t *testing.T) {
	a := app.New()
	r := a.Registry()

	require.NoError(t, r.Set(settings.ParamDispersion, 8))
	require.NoError(t, r.Set(settings.ParamShape, "Single Pyramid"))
	require.NoError(t, r.Set(settings.ParamGap, 0.4))
	require.NoError(t, r.Set(settings.ParamRotateZ, 1))
	require.NoError(t, r.Set(settings.ParamLightIntensity, 80))
	require.NoError(t, r.Set(settings.ParamShowParticles, false))
	require.NoError(t, r.Set(settings.ParamFogDensity, 0.1))

	assert.Equal(t, float32(8), a.Scene().Material().Dispersion())
	assert.Equal(t, scene.ShapeSinglePyramid, a.Scene().ActiveShape())
	assert.Equal(t, float32(1), orientation(a.Scene()).Z())
	assertInSync(t, a)
}

func TestPanelWritesAreClamped(t *testing.T) {
	a := app.New()
	require.NoError(t, a.Registry().Set(settings.ParamIOR, 7))
	assert.Equal(t, float32(3), a.Settings().IOR)
	assert.Equal(t, float32(3), a.Scene().Material().IOR())
}

func TestDragUpdatesRecordSceneAndDisplay(t *testing.T) {
	a := app.New()
	before := a.Settings()

	c := a.Controller()
	c.PointerDown(10, 10)
	c.PointerMove(30, 0)
	c.PointerUp()

	rec := a.Settings()
	assert.InDelta(t, before.RotateX-10*0.005, rec.RotateX, eps)
	assert.InDelta(t, before.RotateY+20*0.005, rec.RotateY, eps)
	assertInSync(t, a)
}

func TestTickAutoRotates(t *testing.T) {
	a := app.New()
	y := a.Settings().RotateY

	a.Tick(1.0 / 60)
	a.Tick(1.0 / 60)
	assert.InDelta(t, y+2*0.5*0.01, a.Settings().RotateY, eps)
	assertInSync(t, a)

	a.Controller().PointerDown(0, 0)
	a.Tick(1.0 / 60)
	assert.InDelta(t, y+2*0.5*0.01, a.Settings().RotateY, eps, "drag suspends auto-rotate")
}

// turn returns the signed rotation from a to b, wrapped into [-π, π).
func turn(a, b float32) float64 {
	return common.WrapAngle(float64(b) - float64(a))
}

func TestOutsideRotationIsWrappedNotClamped(t *testing.T) {
	a := app.New()
	a.SetOrientation(0, 10, 0)
	assert.InDelta(t, 10-2*math.Pi, a.Settings().RotateY, eps)
	assert.Equal(t, a.Settings().RotateY, orientation(a.Scene()).Y())
	assertInSync(t, a)
}

func TestPanelStepAfterLongAutoRotate(t *testing.T) {
	a := app.New()
	for range 1200 {
		a.Tick(1.0 / 60)
	}
	before := a.Settings().RotateY
	assert.InDelta(t, turn(scene.InitialOrientation.Y(), before), turn(0, 1200*0.5*0.01), 1e-4)
	assert.LessOrEqual(t, math.Abs(float64(before)), math.Pi+eps)

	c, ok := a.Registry().Control(settings.ParamRotateY)
	require.True(t, ok)
	c.Nudge(1)
	assert.InDelta(t, 0.01, turn(before, a.Settings().RotateY), eps, "one step turns the solid by one step")
	assertInSync(t, a)
}

func TestPanelStepAcrossTheSeam(t *testing.T) {
	a := app.New()
	a.SetOrientation(0, 3.14, 0)

	c, ok := a.Registry().Control(settings.ParamRotateY)
	require.True(t, ok)
	c.Nudge(1)
	assert.Less(t, a.Settings().RotateY, float32(0), "stepping past π continues from -π")
	assert.InDelta(t, 0.01, turn(3.14, a.Settings().RotateY), eps)
	c.Nudge(-1)
	assert.InDelta(t, 3.14, a.Settings().RotateY, eps)
	assertInSync(t, a)
}

func TestKeyboardShortcuts(t *testing.T) {
	quit := 0
	a := app.New(app.WithQuitHandler(func() { quit++ }))

	assert.True(t, a.HandleKey(common.Key1))
	assert.Equal(t, scene.ShapeSinglePyramid, a.Scene().ActiveShape())
	assert.True(t, a.HandleKey(common.Key2))
	assert.Equal(t, scene.ShapeBiPyramid, a.Scene().ActiveShape())

	a.HandleKey(common.KeySpace)
	assert.False(t, a.Settings().AutoRotate)
	a.HandleKey(common.KeyB)
	assert.False(t, a.Scene().BeamVisible())
	a.HandleKey(common.KeyP)
	assert.False(t, a.Scene().ParticlesVisible())

	a.SetOrientation(1, 1, 1)
	a.HandleKey(common.KeyR)
	assert.Equal(t, scene.InitialOrientation, orientation(a.Scene()))

	assert.True(t, a.HandleKey(common.KeyH))
	assert.True(t, a.HandleKey(common.KeyEsc))
	assert.Equal(t, 1, quit)

	assertInSync(t, a)
}

func TestUnhandledKeysGoToPanel(t *testing.T) {
	display := &fakeDisplay{}
	a := app.New(app.WithDisplay(display), app.WithPanelTitle("glass"))

	assert.True(t, a.HandleKey(common.KeyDown))
	assert.Equal(t, settings.ParamGap, a.Panel().Selected().Param().Name)
	assert.Contains(t, display.title, "glass | Shape > Bi-Pyramid Gap")

	assert.False(t, a.HandleKey(common.KeyLeftShift))
}

func TestEscWithoutQuitHandler(t *testing.T) {
	a := app.New()
	assert.NotPanics(t, func() { a.HandleKey(common.KeyEsc) })
}

func TestApplyConfig(t *testing.T) {
	fl := &fakeLoader{}
	a := app.New(app.WithLoader(fl))

	cfg := config.Default()
	cfg.Environment.Path = "studio.hdr.png"
	cfg.Settings = map[string]any{
		settings.ParamThickness: int64(4),
		settings.ParamShape:     "Single Pyramid",
		settings.ParamShowBeam:  "nope",
		"sparkle":               1.0,
	}
	err := a.ApplyConfig(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, settings.ErrInvalidValue)
	assert.ErrorIs(t, err, settings.ErrUnknownParam)

	assert.Equal(t, float32(4), a.Scene().Material().Thickness())
	assert.Equal(t, scene.ShapeSinglePyramid, a.Scene().ActiveShape())
	assert.Equal(t, []string{"studio.hdr.png"}, fl.requested)
	assertInSync(t, a)

	// the same path is not reloaded
	require.NoError(t, a.ApplyConfig(config.Config{Environment: cfg.Environment}))
	assert.Len(t, fl.requested, 1)
}

func TestEnvironmentInstalledOnTick(t *testing.T) {
	fl := &fakeLoader{}
	a := app.New(app.WithLoader(fl))

	a.LoadEnvironment("old.png")
	a.LoadEnvironment("new.png")
	tex := &common.TextureStagingData{Name: "new.png", Width: 1, Height: 1, Pixels: make([]byte, 4)}
	fl.results = []loader.Result{
		{Path: "new.png", Texture: tex},
		{Path: "old.png", Texture: &common.TextureStagingData{Name: "old.png"}},
	}
	assert.Nil(t, a.Scene().Environment(), "nothing changes before the next tick")

	a.Tick(0)
	assert.Same(t, tex, a.Scene().Environment(), "stale results are dropped")
}

func TestEnvironmentFailureKeepsCurrent(t *testing.T) {
	fl := &fakeLoader{}
	a := app.New(app.WithLoader(fl))

	a.LoadEnvironment("broken.png")
	fl.results = []loader.Result{{Path: "broken.png", Err: loader.ErrUnsupportedFormat}}
	a.Tick(0)
	assert.Nil(t, a.Scene().Environment())
}

func TestLoadEnvironmentWithoutLoader(t *testing.T) {
	a := app.New()
	assert.NotPanics(t, func() { a.LoadEnvironment("sky.png") })
	a.Tick(0)
	assert.Nil(t, a.Scene().Environment())
}

func TestConfigUpdatesAppliedOnTick(t *testing.T) {
	updates := make(chan config.Config, 2)
	a := app.New(app.WithConfigUpdates(updates))

	first := config.Default()
	first.Settings = map[string]any{settings.ParamIOR: 1.2}
	second := config.Default()
	second.Settings = map[string]any{settings.ParamIOR: 2.4, settings.ParamAutoRotate: false}
	updates <- first
	updates <- second

	assert.Equal(t, float32(1.5), a.Scene().Material().IOR())
	a.Tick(0)
	assert.InDelta(t, 2.4, a.Scene().Material().IOR(), eps, "later reloads win")
	assert.False(t, a.Settings().AutoRotate)
	assertInSync(t, a)

	close(updates)
	assert.NotPanics(t, func() { a.Tick(0) })
}

func TestWithScene(t *testing.T) {
	s := scene.NewScene(scene.WithDustCount(5))
	a := app.New(app.WithScene(s))
	assert.Same(t, s, a.Scene())
	assert.Len(t, a.Scene().Dust().Positions, 5)
	assertInSync(t, a)
}
