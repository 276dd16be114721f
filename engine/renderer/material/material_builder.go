package material

import (
	"github.com/Carmen-Shannon/prism/common"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithColor is an option builder that sets the linear base tint of the glass.
//
// Parameters:
//   - color: the tint as linear RGB
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a material
func WithColor(color common.Color) MaterialBuilderOption {
	return func(m *material) {
		m.color = color
	}
}

// WithTransmission is an option builder that sets the initial transmission (clamped to [0, 1]).
//
// Parameters:
//   - v: transmission
//
// Returns:
//   - MaterialBuilderOption: a function that applies the transmission option to a material
func WithTransmission(v float32) MaterialBuilderOption {
	return func(m *material) {
		m.transmission = common.Clamp(v, TransmissionMin, TransmissionMax)
	}
}

// WithRoughness is an option builder that sets the initial roughness (clamped to [0, 1]).
//
// Parameters:
//   - v: roughness
//
// Returns:
//   - MaterialBuilderOption: a function that applies the roughness option to a material
func WithRoughness(v float32) MaterialBuilderOption {
	return func(m *material) {
		m.roughness = common.Clamp(v, RoughnessMin, RoughnessMax)
	}
}

// WithThickness is an option builder that sets the initial thickness (clamped to [0, 10]).
//
// Parameters:
//   - v: thickness
//
// Returns:
//   - MaterialBuilderOption: a function that applies the thickness option to a material
func WithThickness(v float32) MaterialBuilderOption {
	return func(m *material) {
		m.thickness = common.Clamp(v, ThicknessMin, ThicknessMax)
	}
}

// WithIOR is an option builder that sets the initial index of refraction (clamped to [1, 3]).
//
// Parameters:
//   - v: index of refraction
//
// Returns:
//   - MaterialBuilderOption: a function that applies the IOR option to a material
func WithIOR(v float32) MaterialBuilderOption {
	return func(m *material) {
		m.ior = common.Clamp(v, IORMin, IORMax)
	}
}

// WithDispersion is an option builder that sets the initial dispersion (clamped to [0, 10]).
//
// Parameters:
//   - v: dispersion
//
// Returns:
//   - MaterialBuilderOption: a function that applies the dispersion option to a material
func WithDispersion(v float32) MaterialBuilderOption {
	return func(m *material) {
		m.dispersion = common.Clamp(v, DispersionMin, DispersionMax)
	}
}
