package light

import (
	"github.com/chewxy/math32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient adds a constant color to every fragment regardless of position or normal.
	LightTypeAmbient LightType = iota

	// LightTypePoint emits in all directions from a position and attenuates with distance.
	LightTypePoint

	// LightTypeSpot emits in a cone from a position toward a target. It attenuates with
	// distance and with the angle from the cone axis.
	LightTypeSpot
)

// String returns a short human-readable name for the light type.
func (t LightType) String() string {
	switch t {
	case LightTypeAmbient:
		return "ambient"
	case LightTypePoint:
		return "point"
	case LightTypeSpot:
		return "spot"
	}
	return "unknown"
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType  LightType
	position   [3]float32
	target     [3]float32
	color      [3]float32
	intensity  float32
	lightRange float32
	angle      float32 // outer half-angle in radians
	penumbra   float32 // fraction of the cone that fades, [0, 1]
	decay      float32
	enabled    bool
}

// Light defines the interface for a light source in the scene.
//
// Spot lights are aimed by position and target; the direction is derived. Cone properties
// return meaningful values only for spot lights, and distance properties only for point and
// spot lights.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (ambient, point, or spot)
	Type() LightType

	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Target returns the world-space point a spot light is aimed at.
	//
	// Returns:
	//   - [3]float32: target as (x, y, z)
	Target() [3]float32

	// Direction returns the normalized direction from position to target.
	// Returns the zero vector when position and target coincide.
	//
	// Returns:
	//   - [3]float32: normalized direction
	Direction() [3]float32

	// Distance returns the distance from position to target.
	//
	// Returns:
	//   - float32: the distance
	Distance() float32

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Range returns the distance at which point and spot light contributions reach zero.
	// A range of 0 means unlimited.
	//
	// Returns:
	//   - float32: the range value
	Range() float32

	// Angle returns the outer cone half-angle of a spot light in radians.
	//
	// Returns:
	//   - float32: the outer half-angle
	Angle() float32

	// Penumbra returns the fraction of the cone over which the spot light fades out.
	//
	// Returns:
	//   - float32: the penumbra in [0, 1]
	Penumbra() float32

	// Decay returns the exponent of the distance falloff.
	//
	// Returns:
	//   - float32: the decay exponent (2 is physically correct)
	Decay() float32

	// InnerCone returns cos(inner half-angle). Fragments inside receive full intensity.
	//
	// Returns:
	//   - float32: cos(angle * (1 - penumbra))
	InnerCone() float32

	// OuterCone returns cos(outer half-angle). Fragments outside receive nothing.
	//
	// Returns:
	//   - float32: cos(angle)
	OuterCone() float32

	// Enabled returns whether this light is active for rendering.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetTarget sets the point a spot light is aimed at.
	//
	// Parameters:
	//   - x, y, z: target components
	SetTarget(x, y, z float32)

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - r, g, b: color components
	SetColor(r, g, b float32)

	// SetIntensity sets the scalar intensity multiplier. Negative values are stored as 0.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetSpotCone sets the outer half-angle and the penumbra fraction of a spot light.
	//
	// Parameters:
	//   - angle: outer half-angle in radians, limited to [0, π/2]
	//   - penumbra: fade fraction, limited to [0, 1]
	SetSpotCone(angle, penumbra float32)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// GPULight returns the light packed in the layout the lit shaders expect.
	//
	// Returns:
	//   - GPULight: the uniform block
	GPULight() GPULight
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create (ambient, point, or spot)
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:  lightType,
		position:   [3]float32{0, 1, 0},
		target:     [3]float32{0, 0, 0},
		color:      [3]float32{1, 1, 1},
		intensity:  1.0,
		lightRange: 0,
		angle:      math32.Pi / 3,
		penumbra:   0,
		decay:      2,
		enabled:    true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	return l.position
}

func (l *lightImpl) Target() [3]float32 {
	return l.target
}

func (l *lightImpl) Direction() [3]float32 {
	return normalize3(
		l.target[0]-l.position[0],
		l.target[1]-l.position[1],
		l.target[2]-l.position[2],
	)
}

func (l *lightImpl) Distance() float32 {
	dx := l.target[0] - l.position[0]
	dy := l.target[1] - l.position[1]
	dz := l.target[2] - l.position[2]
	return math32.Sqrt(dx*dx + dy*dy + dz*dz)
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) Angle() float32 {
	return l.angle
}

func (l *lightImpl) Penumbra() float32 {
	return l.penumbra
}

func (l *lightImpl) Decay() float32 {
	return l.decay
}

func (l *lightImpl) InnerCone() float32 {
	return math32.Cos(l.angle * (1 - l.penumbra))
}

func (l *lightImpl) OuterCone() float32 {
	return math32.Cos(l.angle)
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = [3]float32{x, y, z}
}

func (l *lightImpl) SetTarget(x, y, z float32) {
	l.target = [3]float32{x, y, z}
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.color = [3]float32{r, g, b}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = math32.Max(0, intensity)
}

func (l *lightImpl) SetSpotCone(angle, penumbra float32) {
	l.angle = math32.Max(0, math32.Min(math32.Pi/2, angle))
	l.penumbra = math32.Max(0, math32.Min(1, penumbra))
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

func (l *lightImpl) GPULight() GPULight {
	g := GPULight{
		Position:   l.position,
		Intensity:  l.intensity,
		Color:      l.color,
		LightRange: l.lightRange,
		Direction:  l.Direction(),
		Decay:      l.decay,
		InnerCone:  l.InnerCone(),
		OuterCone:  l.OuterCone(),
		LightType:  uint32(l.lightType),
	}
	if l.enabled {
		g.Enabled = 1
	}
	return g
}

// normalize3 normalizes a 3-component vector. Returns a zero vector if the input
// has zero length.
func normalize3(x, y, z float32) [3]float32 {
	length := math32.Sqrt(x*x + y*y + z*z)
	if length == 0 {
		return [3]float32{0, 0, 0}
	}
	inv := 1.0 / length
	return [3]float32{x * inv, y * inv, z * inv}
}
