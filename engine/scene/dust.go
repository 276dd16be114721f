package scene

import (
	"math/rand/v2"

	"github.com/Carmen-Shannon/prism/common"
	"github.com/go-gl/mathgl/mgl32"
)

// PointCloud is a set of unlit, additively blended points drawn as camera-facing sprites.
type PointCloud struct {
	Positions []mgl32.Vec3
	Color     common.Color
	// Size is the sprite edge length in world units.
	Size      float32
	Opacity   float32
}

// NewDustCloud scatters count points uniformly inside an axis-aligned box centered on the origin.
//
// Parameters:
//   - count: number of points
//   - extent: full edge lengths of the box
//   - seed: seed for the random source, so layouts are reproducible
//
// Returns:
//   - *PointCloud: the dust cloud with its fixed appearance
func NewDustCloud(count int, extent mgl32.Vec3, seed uint64) *PointCloud {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	pc := &PointCloud{
		Positions: make([]mgl32.Vec3, count),
		Color:     common.Color{1, 0.95, 0.85},
		Size:      0.03,
		Opacity:   0.6,
	}
	for i := range pc.Positions {
		pc.Positions[i] = mgl32.Vec3{
			(rng.Float32() - 0.5) * extent.X(),
			(rng.Float32() - 0.5) * extent.Y(),
			(rng.Float32() - 0.5) * extent.Z(),
		}
	}
	return pc
}
