package geometry_test

import (
	"testing"

	"github.com/Carmen-Shannon/prism/engine/geometry"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-4

func TestBuildSinglePyramidShape(t *testing.T) {
	s := geometry.BuildSinglePyramid(1.5, 2)
	require.NotNil(t, s.Mesh)

	// four sides plus a two-triangle base cap
	assert.Equal(t, 6, s.Mesh.TriangleCount())
	assert.Len(t, s.Mesh.Vertices, 18)
	assert.Equal(t, mgl32.Vec3{}, s.Position)
	assert.Equal(t, mgl32.Vec3{}, s.Rotation)

	lo, hi := s.Mesh.Bounds()
	assert.InDelta(t, -1, lo.Y(), eps)
	assert.InDelta(t, 1, hi.Y(), eps)

	// the base is turned 45° so corners sit on the diagonals: |x| == |z| == r/√2
	corner := 1.5 / math32.Sqrt2
	assert.InDelta(t, corner, hi.X(), eps)
	assert.InDelta(t, corner, hi.Z(), eps)
}

func TestPyramidHasFaceTowardViewer(t *testing.T) {
	s := geometry.BuildSinglePyramid(1.5, 2)

	found := false
	for _, v := range s.Mesh.Vertices {
		n := mgl32.Vec3(v.Normal)
		if math32.Abs(n.X()) < eps && n.Z() > 0.5 {
			found = true
		}
	}
	assert.True(t, found, "expected a side face whose normal points straight at +Z")
}

func TestPyramidNormalsPointOutward(t *testing.T) {
	m := geometry.BuildSinglePyramid(1.5, 2).Mesh
	for tri := 0; tri < m.TriangleCount(); tri++ {
		a := mgl32.Vec3(m.Vertices[m.Indices[tri*3]].Position)
		b := mgl32.Vec3(m.Vertices[m.Indices[tri*3+1]].Position)
		c := mgl32.Vec3(m.Vertices[m.Indices[tri*3+2]].Position)
		n := mgl32.Vec3(m.Vertices[m.Indices[tri*3]].Normal)

		centroid := a.Add(b).Add(c).Mul(1.0 / 3.0)
		assert.Greater(t, n.Dot(centroid), float32(0), "triangle %d faces inward", tri)
		assert.InDelta(t, 1, n.Len(), eps)

		// counter-clockwise winding seen from outside
		assert.Greater(t, b.Sub(a).Cross(c.Sub(a)).Dot(n), float32(0), "triangle %d winding", tri)
	}
}

func TestBuildBiPyramidPairOffsets(t *testing.T) {
	p := geometry.BuildBiPyramidPair(1.2, 1.4, 0.1)

	assert.Same(t, p.Upper.Mesh, p.Lower.Mesh)
	assert.InDelta(t, 0.75, p.Upper.Position.Y(), eps)
	assert.InDelta(t, -0.75, p.Lower.Position.Y(), eps)
	assert.InDelta(t, math32.Pi, p.Lower.Rotation.X(), eps)
	assert.Equal(t, float32(0), p.Upper.Rotation.X())
	assert.InDelta(t, 0.1, p.Gap(), eps)
	assert.InDelta(t, 1.4, p.Height(), eps)
}

func TestBiPyramidSetGapKeepsSymmetry(t *testing.T) {
	p := geometry.BuildBiPyramidPair(1.2, 1.4, 0.1)
	mesh := p.Upper.Mesh

	for _, gap := range []float32{0, 0.25, 0.5, 1} {
		p.SetGap(gap)
		assert.InDelta(t, 0.7+gap/2, p.Upper.Position.Y(), eps)
		assert.InDelta(t, -p.Upper.Position.Y(), p.Lower.Position.Y(), eps)
		assert.Same(t, mesh, p.Upper.Mesh, "SetGap must not rebuild the mesh")
	}
}

func TestBiPyramidNegativeGapTouches(t *testing.T) {
	p := geometry.BuildBiPyramidPair(1.2, 1.4, -3)
	assert.Equal(t, float32(0), p.Gap())
	assert.InDelta(t, 0.7, p.Upper.Position.Y(), eps)
	assert.InDelta(t, -0.7, p.Lower.Position.Y(), eps)

	p.SetGap(0.4)
	p.SetGap(-0.2)
	assert.Equal(t, float32(0), p.Gap())
	assert.Greater(t, p.Upper.Position.Y(), p.Lower.Position.Y(), "the apex-up half stays on top")
}

func TestBiPyramidBasesAreGapApart(t *testing.T) {
	p := geometry.BuildBiPyramidPair(1.2, 1.4, 0.3)

	upperBase := p.Upper.LocalMatrix().Mul4x1(mgl32.Vec4{0, -0.7, 0, 1})
	lowerBase := p.Lower.LocalMatrix().Mul4x1(mgl32.Vec4{0, -0.7, 0, 1})
	assert.InDelta(t, 0.3, upperBase.Y()-lowerBase.Y(), eps)

	lowerApex := p.Lower.LocalMatrix().Mul4x1(mgl32.Vec4{0, 0.7, 0, 1})
	assert.Less(t, lowerApex.Y(), lowerBase.Y(), "lower half points down")
}

func TestBuildBeamCone(t *testing.T) {
	m := geometry.BuildBeamCone(10, 2, 8)
	assert.Len(t, m.Vertices, 18)
	assert.Equal(t, 16, m.TriangleCount())

	lo, hi := m.Bounds()
	assert.InDelta(t, -10, lo.Y(), eps)
	assert.InDelta(t, 0, hi.Y(), eps)

	for _, v := range m.Vertices {
		if v.TexCoord[1] == 0 {
			assert.Equal(t, [3]float32{0, 0, 0}, v.Position)
		} else {
			r := math32.Hypot(v.Position[0], v.Position[2])
			assert.InDelta(t, 2, r, eps)
		}
	}
}

func TestBuildBeamConeMinimumSegments(t *testing.T) {
	m := geometry.BuildBeamCone(1, 1, 1)
	assert.Equal(t, 6, m.TriangleCount())
}

func TestMarshalVertices(t *testing.T) {
	v := geometry.GPUVertex{Position: [3]float32{1, 2, 3}, Normal: [3]float32{0, 1, 0}, TexCoord: [2]float32{0.5, 1}}
	assert.Equal(t, geometry.GPUVertexStride, v.Size())

	buf := geometry.MarshalVertices([]geometry.GPUVertex{v, v})
	require.Len(t, buf, 2*geometry.GPUVertexStride)
	assert.Equal(t, v.Marshal(), buf[geometry.GPUVertexStride:])
}

func TestEmptyMeshBounds(t *testing.T) {
	lo, hi := (&geometry.Mesh{}).Bounds()
	assert.Equal(t, mgl32.Vec3{}, lo)
	assert.Equal(t, mgl32.Vec3{}, hi)
}
