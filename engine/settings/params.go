package settings

import (
	"github.com/Carmen-Shannon/prism/engine/renderer/material"
	"github.com/Carmen-Shannon/prism/engine/scene"
	"github.com/chewxy/math32"
)

// Panel group names, in display order.
const (
	GroupShape      = "Shape"
	GroupRotation   = "Rotation"
	GroupGlass      = "Glass Properties"
	GroupLighting   = "Lighting"
	GroupAtmosphere = "Atmosphere"
)

// Parameter names. These are the keys used by Registry.Set, Registry.Apply and the config file.
const (
	ParamShape          = "shape"
	ParamGap            = "gap"
	ParamRotateX        = "rotateX"
	ParamRotateY        = "rotateY"
	ParamRotateZ        = "rotateZ"
	ParamAutoRotate     = "autoRotate"
	ParamRotationSpeed  = "rotationSpeed"
	ParamTransmission   = "transmission"
	ParamIOR            = "ior"
	ParamDispersion     = "dispersion"
	ParamThickness      = "thickness"
	ParamRoughness      = "roughness"
	ParamLightIntensity = "lightIntensity"
	ParamShowBeam       = "showBeam"
	ParamBeamOpacity    = "beamOpacity"
	ParamFogDensity     = "fogDensity"
	ParamShowParticles  = "showParticles"
)

// Kind is the value type of a parameter.
type Kind int

const (
	KindFloat Kind = iota
	KindBool
	KindChoice
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindChoice:
		return "choice"
	}
	return "unknown"
}

// Param declares one tunable parameter: its identity, its panel placement and its domain.
type Param struct {
	Name  string
	Label string
	Group string
	Kind  Kind

	// Min, Max and Step bound KindFloat values.
	Min, Max, Step float32
	// Wrap makes Nudge wrap around the [Min, Max) period instead of stopping at a bound.
	Wrap bool
	// Options is the domain of a KindChoice parameter.
	Options []string
}

func floatParam(name, label, group string, lo, hi, step float32) Param {
	return Param{Name: name, Label: label, Group: group, Kind: KindFloat, Min: lo, Max: hi, Step: step}
}

func angleParam(name, label string) Param {
	p := floatParam(name, label, GroupRotation, -math32.Pi, math32.Pi, 0.01)
	p.Wrap = true
	return p
}

func boolParam(name, label, group string) Param {
	return Param{Name: name, Label: label, Group: group, Kind: KindBool}
}

// Declarations returns every parameter in panel order.
//
// Returns:
//   - []Param: the declarations, grouped Shape, Rotation, Glass Properties, Lighting, Atmosphere
func Declarations() []Param {
	return []Param{
		{Name: ParamShape, Label: "Shape", Group: GroupShape, Kind: KindChoice, Options: append([]string(nil), scene.ShapeNames...)},
		floatParam(ParamGap, "Bi-Pyramid Gap", GroupShape, 0, 1, 0.01),

		angleParam(ParamRotateX, "Rotate X"),
		angleParam(ParamRotateY, "Rotate Y"),
		angleParam(ParamRotateZ, "Rotate Z"),
		boolParam(ParamAutoRotate, "Auto Rotate", GroupRotation),
		floatParam(ParamRotationSpeed, "Rotation Speed", GroupRotation, 0, 5, 0.1),

		floatParam(ParamTransmission, "Transmission", GroupGlass, material.TransmissionMin, material.TransmissionMax, 0.01),
		floatParam(ParamIOR, "IOR", GroupGlass, material.IORMin, material.IORMax, 0.01),
		floatParam(ParamDispersion, "Dispersion", GroupGlass, material.DispersionMin, material.DispersionMax, 0.1),
		floatParam(ParamThickness, "Thickness", GroupGlass, material.ThicknessMin, material.ThicknessMax, 0.1),
		floatParam(ParamRoughness, "Roughness", GroupGlass, material.RoughnessMin, material.RoughnessMax, 0.01),

		floatParam(ParamLightIntensity, "Light Intensity", GroupLighting, 0, 200, 1),
		boolParam(ParamShowBeam, "Show Beam", GroupLighting),
		floatParam(ParamBeamOpacity, "Beam Opacity", GroupLighting, 0, 1, 0.01),

		floatParam(ParamFogDensity, "Fog Density", GroupAtmosphere, 0, 0.2, 0.005),
		boolParam(ParamShowParticles, "Show Particles", GroupAtmosphere),
	}
}

// Declaration returns the declaration of a single parameter.
//
// Parameters:
//   - name: the parameter name
//
// Returns:
//   - Param: the declaration
//   - bool: false if no parameter has that name
func Declaration(name string) (Param, bool) {
	for _, p := range Declarations() {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}
