package material

import (
	"github.com/Carmen-Shannon/prism/common"
)

// Tunable parameter bounds. Setters clamp into these ranges.
const (
	TransmissionMin, TransmissionMax = 0, 1
	RoughnessMin, RoughnessMax       = 0, 1
	ThicknessMin, ThicknessMax       = 0, 10
	IORMin, IORMax                   = 1, 3
	DispersionMin, DispersionMax     = 0, 10
)

// material is the implementation of the Material interface.
type material struct {
	name  string
	color common.Color

	transmission float32
	roughness    float32
	thickness    float32
	ior          float32
	dispersion   float32

	version uint64
}

// Material is a physically based transmissive surface description.
//
// A single Material instance is shared by every solid in the scene, so a change made through any
// setter is seen by whichever solid is drawn next. The tunable fields are clamped to their declared
// ranges on write. Metalness, clearcoat, clearcoat roughness, double-sidedness and environment
// intensity are fixed for glass and exposed read-only.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Color retrieves the linear base tint of the glass.
	//
	// Returns:
	//   - common.Color: the base color
	Color() common.Color

	// Transmission retrieves the fraction of light passing through the surface.
	//
	// Returns:
	//   - float32: transmission in [0, 1]
	Transmission() float32

	// Roughness retrieves the microfacet roughness.
	//
	// Returns:
	//   - float32: roughness in [0, 1]
	Roughness() float32

	// Thickness retrieves the virtual volume thickness used for absorption and refraction offset.
	//
	// Returns:
	//   - float32: thickness in [0, 10]
	Thickness() float32

	// IOR retrieves the index of refraction.
	//
	// Returns:
	//   - float32: IOR in [1, 3]
	IOR() float32

	// Dispersion retrieves the chromatic spread of the refraction.
	//
	// Returns:
	//   - float32: dispersion in [0, 10]
	Dispersion() float32

	// Metalness is always 0 for glass.
	Metalness() float32

	// Clearcoat is always 1 for glass.
	Clearcoat() float32

	// ClearcoatRoughness is always 0 for glass.
	ClearcoatRoughness() float32

	// DoubleSided is always true; back faces are shaded.
	DoubleSided() bool

	// EnvMapIntensity is always 1.
	EnvMapIntensity() float32

	// Version returns a counter that increases on every mutation.
	// Consumers compare it against the last value they uploaded to skip redundant GPU writes.
	//
	// Returns:
	//   - uint64: the mutation counter
	Version() uint64

	// SetTransmission sets the transmission, clamped to [0, 1].
	//
	// Parameters:
	//   - v: the new transmission
	SetTransmission(v float32)

	// SetRoughness sets the roughness, clamped to [0, 1].
	//
	// Parameters:
	//   - v: the new roughness
	SetRoughness(v float32)

	// SetThickness sets the thickness, clamped to [0, 10].
	//
	// Parameters:
	//   - v: the new thickness
	SetThickness(v float32)

	// SetIOR sets the index of refraction, clamped to [1, 3].
	//
	// Parameters:
	//   - v: the new IOR
	SetIOR(v float32)

	// SetDispersion sets the dispersion, clamped to [0, 10].
	//
	// Parameters:
	//   - v: the new dispersion
	SetDispersion(v float32)

	// GPUParams returns the current values packed in the layout the glass shader expects.
	//
	// Returns:
	//   - GPUGlassParams: the uniform block
	GPUParams() GPUGlassParams
}

var _ Material = &material{}

// NewMaterial creates a new glass Material configured with the provided options.
// Defaults describe clear, smooth glass: transmission 1, roughness 0, thickness 1, IOR 1.5, no dispersion.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		name:         "glass",
		color:        common.Color{1, 1, 1},
		transmission: 1,
		roughness:    0,
		thickness:    1,
		ior:          1.5,
		dispersion:   0,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Color() common.Color {
	return m.color
}

func (m *material) Transmission() float32 {
	return m.transmission
}

func (m *material) Roughness() float32 {
	return m.roughness
}

func (m *material) Thickness() float32 {
	return m.thickness
}

func (m *material) IOR() float32 {
	return m.ior
}

func (m *material) Dispersion() float32 {
	return m.dispersion
}

func (m *material) Metalness() float32 {
	return 0
}

func (m *material) Clearcoat() float32 {
	return 1
}

func (m *material) ClearcoatRoughness() float32 {
	return 0
}

func (m *material) DoubleSided() bool {
	return true
}

func (m *material) EnvMapIntensity() float32 {
	return 1
}

func (m *material) Version() uint64 {
	return m.version
}

func (m *material) SetTransmission(v float32) {
	m.transmission = common.Clamp(v, TransmissionMin, TransmissionMax)
	m.version++
}

func (m *material) SetRoughness(v float32) {
	m.roughness = common.Clamp(v, RoughnessMin, RoughnessMax)
	m.version++
}

func (m *material) SetThickness(v float32) {
	m.thickness = common.Clamp(v, ThicknessMin, ThicknessMax)
	m.version++
}

func (m *material) SetIOR(v float32) {
	m.ior = common.Clamp(v, IORMin, IORMax)
	m.version++
}

func (m *material) SetDispersion(v float32) {
	m.dispersion = common.Clamp(v, DispersionMin, DispersionMax)
	m.version++
}

func (m *material) GPUParams() GPUGlassParams {
	return GPUGlassParams{
		Color:              [3]float32(m.color),
		Transmission:       m.transmission,
		Roughness:          m.roughness,
		Thickness:          m.thickness,
		IOR:                m.ior,
		Dispersion:         m.dispersion,
		Metalness:          m.Metalness(),
		Clearcoat:          m.Clearcoat(),
		ClearcoatRoughness: m.ClearcoatRoughness(),
		EnvMapIntensity:    m.EnvMapIntensity(),
	}
}
