package app

import (
	"github.com/Carmen-Shannon/prism/common"
	"github.com/Carmen-Shannon/prism/engine/scene"
	"github.com/Carmen-Shannon/prism/engine/settings"
)

func (a *app) HandleKey(key uint32) bool {
	switch key {
	case common.Key1:
		a.set(settings.ParamShape, scene.ShapeSinglePyramid.String())
	case common.Key2:
		a.set(settings.ParamShape, scene.ShapeBiPyramid.String())
	case common.KeySpace:
		a.set(settings.ParamAutoRotate, !a.record.AutoRotate)
	case common.KeyB:
		a.set(settings.ParamShowBeam, !a.record.ShowBeam)
	case common.KeyP:
		a.set(settings.ParamShowParticles, !a.record.ShowParticles)
	case common.KeyR:
		a.SetOrientation(scene.InitialOrientation.X(), scene.InitialOrientation.Y(), scene.InitialOrientation.Z())
	case common.KeyH:
		a.panel.LogListing()
	case common.KeyEsc:
		if a.quit != nil {
			a.quit()
		}
	default:
		return a.panel.HandleKey(key)
	}
	return true
}

// set routes a shortcut through the registry so it behaves exactly like the panel control.
func (a *app) set(name string, v any) {
	if err := a.registry.Set(name, v); err != nil {
		common.Logger().Warn("shortcut", "param", name, "err", err)
	}
}
