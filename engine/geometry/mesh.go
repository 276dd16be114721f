package geometry

import (
	"github.com/Carmen-Shannon/prism/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is an indexed triangle list in model space.
type Mesh struct {
	Name     string
	Vertices []GPUVertex
	Indices  []uint32
}

// TriangleCount returns the number of triangles described by the index list.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds returns the axis-aligned bounding box of the mesh vertices.
//
// Returns:
//   - mgl32.Vec3: minimum corner
//   - mgl32.Vec3: maximum corner
func (m *Mesh) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	if len(m.Vertices) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	lo := mgl32.Vec3(m.Vertices[0].Position)
	hi := lo
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			if v.Position[i] < lo[i] {
				lo[i] = v.Position[i]
			}
			if v.Position[i] > hi[i] {
				hi[i] = v.Position[i]
			}
		}
	}
	return lo, hi
}

// Solid is a renderable shape: a mesh plus its local transform relative to the parent node.
type Solid struct {
	Mesh     *Mesh
	Position mgl32.Vec3
	// Rotation holds XYZ euler angles in radians.
	Rotation mgl32.Vec3
}

// LocalMatrix returns the solid's model matrix relative to its parent.
func (s *Solid) LocalMatrix() mgl32.Mat4 {
	return common.Transform(s.Position, s.Rotation, mgl32.Vec3{1, 1, 1})
}

// addFlatTriangle appends a triangle with its own three vertices sharing the face normal.
// The winding is flipped when needed so the normal points away from the given interior point.
func (m *Mesh) addFlatTriangle(a, b, c mgl32.Vec3, uvA, uvB, uvC [2]float32, interior mgl32.Vec3) {
	n := b.Sub(a).Cross(c.Sub(a)).Normalize()
	centroid := a.Add(b).Add(c).Mul(1.0 / 3.0)
	if n.Dot(centroid.Sub(interior)) < 0 {
		b, c = c, b
		uvB, uvC = uvC, uvB
		n = n.Mul(-1)
	}
	base := uint32(len(m.Vertices))
	for _, p := range []struct {
		pos mgl32.Vec3
		uv  [2]float32
	}{{a, uvA}, {b, uvB}, {c, uvC}} {
		m.Vertices = append(m.Vertices, GPUVertex{
			Position: [3]float32(p.pos),
			Normal:   [3]float32(n),
			TexCoord: p.uv,
		})
	}
	m.Indices = append(m.Indices, base, base+1, base+2)
}
