package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// PyramidRadialSegments is the number of sides of the pyramid base.
	PyramidRadialSegments = 4
	// PyramidHeightSegments is the number of stacked rings between base and apex.
	PyramidHeightSegments = 1
	// PyramidFaceTurn is the rotation about Y applied to the base so a face, not an edge, points at +Z.
	PyramidFaceTurn = math32.Pi / 4
)

// buildPyramidMesh builds a flat-shaded four-sided cone centered on the origin.
// The apex sits at +height/2 and the base at -height/2.
func buildPyramidMesh(name string, radius, height float32) *Mesh {
	m := &Mesh{Name: name}
	half := height / 2
	apex := mgl32.Vec3{0, half, 0}
	interior := mgl32.Vec3{}

	corners := make([]mgl32.Vec3, PyramidRadialSegments)
	for i := range corners {
		theta := float32(i)*2*math32.Pi/PyramidRadialSegments + PyramidFaceTurn
		corners[i] = mgl32.Vec3{radius * math32.Sin(theta), -half, radius * math32.Cos(theta)}
	}

	for i := range corners {
		next := corners[(i+1)%len(corners)]
		u0 := float32(i) / PyramidRadialSegments
		u1 := float32(i+1) / PyramidRadialSegments
		m.addFlatTriangle(corners[i], next, apex,
			[2]float32{u0, 1}, [2]float32{u1, 1}, [2]float32{(u0 + u1) / 2, 0}, interior)
	}

	// base cap, normal -Y
	uv := func(p mgl32.Vec3) [2]float32 {
		return [2]float32{p.X()/(2*radius) + 0.5, p.Z()/(2*radius) + 0.5}
	}
	for i := 1; i+1 < len(corners); i++ {
		m.addFlatTriangle(corners[0], corners[i], corners[i+1],
			uv(corners[0]), uv(corners[i]), uv(corners[i+1]), apex)
	}
	return m
}

// BuildSinglePyramid builds one apex-up pyramid of the given base radius and height.
// The base is turned 45° about the vertical axis so a flat face points forward.
//
// Parameters:
//   - radius: distance from the axis to each base corner
//   - height: distance from base to apex
//
// Returns:
//   - *Solid: the pyramid at the origin with no extra rotation
func BuildSinglePyramid(radius, height float32) *Solid {
	return &Solid{Mesh: buildPyramidMesh("single_pyramid", radius, height)}
}

// BiPyramidPair is two congruent pyramids joined base to base, separated by a gap.
// Both solids share one mesh. Their offsets are derived together from the gap.
type BiPyramidPair struct {
	Upper *Solid
	Lower *Solid

	height float32
	gap    float32
}

// BuildBiPyramidPair builds the upper (apex-up) and lower (flipped about X) halves.
//
// Parameters:
//   - radius: base corner radius of each half
//   - height: height of each half
//   - gap: distance between the two bases
//
// Returns:
//   - *BiPyramidPair: the positioned pair
func BuildBiPyramidPair(radius, height, gap float32) *BiPyramidPair {
	mesh := buildPyramidMesh("bi_pyramid_half", radius, height)
	p := &BiPyramidPair{
		Upper:  &Solid{Mesh: mesh},
		Lower:  &Solid{Mesh: mesh, Rotation: mgl32.Vec3{math32.Pi, 0, 0}},
		height: height,
	}
	p.SetGap(gap)
	return p
}

// SetGap repositions both halves for a new gap. The meshes are not rebuilt.
//
// Parameters:
//   - gap: distance between the two bases; negative values are treated as 0
func (p *BiPyramidPair) SetGap(gap float32) {
	p.gap = math32.Max(0, gap)
	offset := p.Offset()
	p.Upper.Position = mgl32.Vec3{0, offset, 0}
	p.Lower.Position = mgl32.Vec3{0, -offset, 0}
}

// Gap returns the current gap between the two bases.
func (p *BiPyramidPair) Gap() float32 {
	return p.gap
}

// Height returns the height of each half.
func (p *BiPyramidPair) Height() float32 {
	return p.height
}

// Offset returns the distance of each half's center from the origin: height/2 + gap/2.
func (p *BiPyramidPair) Offset() float32 {
	return p.height/2 + p.gap/2
}
