package settings

import (
	"github.com/Carmen-Shannon/prism/engine/scene"
)

// Settings is the canonical record of every tunable value.
// It is the single source of truth: the scene, the material and the panel display are derived from it.
type Settings struct {
	Shape string
	Gap   float32

	RotateX       float32
	RotateY       float32
	RotateZ       float32
	AutoRotate    bool
	RotationSpeed float32

	Transmission float32
	IOR          float32
	Dispersion   float32
	Thickness    float32
	Roughness    float32

	LightIntensity float32
	ShowBeam       bool
	BeamOpacity    float32

	FogDensity    float32
	ShowParticles bool
}

// Defaults returns the startup record. Its shape and orientation match the scene's initial state.
//
// Returns:
//   - Settings: the default record
func Defaults() Settings {
	return Settings{
		Shape: scene.ShapeBiPyramid.String(),
		Gap:   scene.DefaultGap,

		RotateX:       scene.InitialOrientation.X(),
		RotateY:       scene.InitialOrientation.Y(),
		RotateZ:       scene.InitialOrientation.Z(),
		AutoRotate:    true,
		RotationSpeed: 0.5,

		Transmission: 1,
		IOR:          1.5,
		Dispersion:   5,
		Thickness:    1.5,
		Roughness:    0.05,

		LightIntensity: 40,
		ShowBeam:       true,
		BeamOpacity:    0.15,

		FogDensity:    0.03,
		ShowParticles: true,
	}
}
