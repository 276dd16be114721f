package panel_test

import (
	"testing"

	"github.com/Carmen-Shannon/prism/common"
	"github.com/Carmen-Shannon/prism/engine/panel"
	"github.com/Carmen-Shannon/prism/engine/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDisplay struct {
	titles []string
}

func (f *fakeDisplay) SetTitle(title string) { f.titles = append(f.titles, title) }

type fixture struct {
	rec      settings.Settings
	registry *settings.Registry
	display  *fakeDisplay
	panel    panel.Panel
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{rec: settings.Defaults(), registry: settings.NewRegistry(), display: &fakeDisplay{}}

	decl := func(name string) settings.Param {
		p, ok := settings.Declaration(name)
		require.True(t, ok)
		return p
	}
	f.registry.AddChoice(decl(settings.ParamShape), &f.rec.Shape, nil)
	f.registry.AddFloat(decl(settings.ParamGap), &f.rec.Gap, nil)
	f.registry.AddFloat(decl(settings.ParamRotateY), &f.rec.RotateY, nil)
	f.registry.AddBool(decl(settings.ParamAutoRotate), &f.rec.AutoRotate, nil)
	f.registry.AddFloat(decl(settings.ParamIOR), &f.rec.IOR, nil)

	f.panel = panel.NewPanel(f.registry, panel.WithDisplay(f.display), panel.WithTitle("prism"))
	return f
}

func TestPanelStartsOnFirstControl(t *testing.T) {
	f := newFixture(t)
	require.NotNil(t, f.panel.Selected())
	assert.Equal(t, settings.ParamShape, f.panel.Selected().Param().Name)
	assert.Equal(t, "prism | Shape > Shape: Bi-Pyramid", f.panel.Status())
	require.NotEmpty(t, f.display.titles)
	assert.Equal(t, f.panel.Status(), f.display.titles[len(f.display.titles)-1])
}

func TestPanelNavigation(t *testing.T) {
	f := newFixture(t)

	assert.True(t, f.panel.HandleKey(common.KeyDown))
	assert.Equal(t, settings.ParamGap, f.panel.Selected().Param().Name)

	assert.True(t, f.panel.HandleKey(common.KeyUp))
	assert.True(t, f.panel.HandleKey(common.KeyUp))
	assert.Equal(t, settings.ParamIOR, f.panel.Selected().Param().Name, "up wraps to the last control")

	assert.True(t, f.panel.HandleKey(common.KeyTab))
	assert.Equal(t, settings.ParamShape, f.panel.Selected().Param().Name, "tab wraps to the first group")
	assert.True(t, f.panel.HandleKey(common.KeyTab))
	assert.Equal(t, settings.ParamRotateY, f.panel.Selected().Param().Name)

	assert.False(t, f.panel.HandleKey(common.KeyB))
}

func TestPanelEditWritesRecord(t *testing.T) {
	f := newFixture(t)

	require.True(t, f.panel.Select(settings.ParamIOR))
	f.panel.HandleKey(common.KeyRight)
	assert.InDelta(t, 1.51, f.rec.IOR, 1e-5)
	assert.Contains(t, f.panel.Status(), "IOR: 1.51")

	f.panel.HandleKey(common.KeyLeft)
	f.panel.HandleKey(common.KeyLeft)
	assert.InDelta(t, 1.49, f.rec.IOR, 1e-5)

	require.True(t, f.panel.Select(settings.ParamAutoRotate))
	f.panel.HandleKey(common.KeyEnter)
	assert.False(t, f.rec.AutoRotate)
	assert.Contains(t, f.panel.Status(), "Auto Rotate: off")

	assert.False(t, f.panel.Select("missing"))
}

func TestPanelFollowsOutsideWrites(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.panel.Select(settings.ParamRotateY))

	f.rec.RotateY = 1.25
	f.registry.UpdateDisplay()
	assert.Contains(t, f.panel.Status(), "Rotate Y: 1.25")
	assert.Empty(t, f.registry.Stale())
}

func TestPanelSkipsUnchangedTitle(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.panel.Select(settings.ParamRotateY))
	n := len(f.display.titles)

	for range 10 {
		f.registry.UpdateDisplay()
	}
	assert.Len(t, f.display.titles, n, "an unchanged status is not pushed again")

	f.rec.RotateY = 1.25
	f.registry.UpdateDisplay()
	require.Len(t, f.display.titles, n+1)
	assert.Equal(t, "prism | Rotation > Rotate Y: 1.25", f.display.titles[n])

	f.registry.UpdateDisplay()
	assert.Len(t, f.display.titles, n+1)
}

func TestPanelListing(t *testing.T) {
	f := newFixture(t)
	listing := f.panel.Listing()

	assert.Contains(t, listing, "[Shape]\n")
	assert.Contains(t, listing, "[Rotation]\n")
	assert.Contains(t, listing, "[Glass Properties]\n")
	assert.Contains(t, listing, "> Shape")
	assert.Contains(t, listing, "  IOR")
	assert.NotPanics(t, f.panel.LogListing)
}

func TestPanelWithEmptyRegistry(t *testing.T) {
	p := panel.NewPanel(settings.NewRegistry())
	assert.Nil(t, p.Selected())
	assert.False(t, p.HandleKey(common.KeyDown))
	assert.Equal(t, "prism", p.Status())
}
