package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// BuildBeamCone builds an open cone with its apex at the origin that widens along -Y.
// TexCoord.y runs from 0 at the apex to 1 at the open end so a shader can fade along the beam.
//
// Parameters:
//   - length: distance from apex to the open end
//   - radius: radius of the open end
//   - segments: number of radial segments (minimum 3)
//
// Returns:
//   - *Mesh: the beam mesh
func BuildBeamCone(length, radius float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	m := &Mesh{Name: "beam_cone"}
	slope := radius / length

	for i := 0; i <= segments; i++ {
		u := float32(i) / float32(segments)
		theta := u * 2 * math32.Pi
		s, c := math32.Sin(theta), math32.Cos(theta)
		n := mgl32.Vec3{s, slope, c}.Normalize()

		m.Vertices = append(m.Vertices,
			GPUVertex{Position: [3]float32{0, 0, 0}, Normal: [3]float32(n), TexCoord: [2]float32{u, 0}},
			GPUVertex{Position: [3]float32{radius * s, -length, radius * c}, Normal: [3]float32(n), TexCoord: [2]float32{u, 1}},
		)
	}
	for i := 0; i < segments; i++ {
		a := uint32(i * 2)
		m.Indices = append(m.Indices, a, a+1, a+3, a, a+3, a+2)
	}
	return m
}
