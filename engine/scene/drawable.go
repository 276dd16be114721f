package scene

import (
	"github.com/Carmen-Shannon/prism/common"
	"github.com/Carmen-Shannon/prism/engine/geometry"
	"github.com/Carmen-Shannon/prism/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// Drawable is a renderer-facing snapshot of one visible node.
type Drawable struct {
	Handle Handle
	Kind   NodeKind
	World  mgl32.Mat4

	// Mesh is set for NodeMesh and NodeBeam.
	Mesh *geometry.Mesh

	// Material is set for NodeMesh.
	Material material.Material

	// Points is set for NodePoints.
	Points *PointCloud

	// Color and Opacity drive the beam effect.
	Color   common.Color
	Opacity float32
}
