package scene

import (
	"github.com/Carmen-Shannon/prism/common"
	"github.com/Carmen-Shannon/prism/engine/geometry"
	"github.com/Carmen-Shannon/prism/engine/light"
	"github.com/go-gl/mathgl/mgl32"
)

// Handle is a stable index into the scene's node arena. Handles are never reused.
type Handle int

// InvalidHandle is returned for lookups that do not resolve to a node.
const InvalidHandle Handle = -1

// MaterialHandle is a stable index into the scene's material arena.
type MaterialHandle int

// NodeKind identifies what a node carries.
type NodeKind int

const (
	NodeGroup NodeKind = iota
	NodeMesh
	NodeLight
	NodeBeam
	NodePoints
)

func (k NodeKind) String() string {
	switch k {
	case NodeGroup:
		return "group"
	case NodeMesh:
		return "mesh"
	case NodeLight:
		return "light"
	case NodeBeam:
		return "beam"
	case NodePoints:
		return "points"
	}
	return "unknown"
}

// node is one arena entry. Only the fields relevant to kind are set.
type node struct {
	kind     NodeKind
	name     string
	parent   Handle
	children []Handle
	visible  bool

	position mgl32.Vec3
	rotation mgl32.Vec3
	// basis is applied after the euler rotation; used to aim nodes along a direction.
	basis    mgl32.Quat
	scale    mgl32.Vec3

	mesh     *geometry.Mesh
	material MaterialHandle
	light    light.Light
	points   *PointCloud
	opacity  float32
	color    common.Color
}

func (n *node) localMatrix() mgl32.Mat4 {
	return common.Transform(n.position, n.rotation, n.scale).Mul4(n.basis.Mat4())
}
