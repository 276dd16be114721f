package scene

import (
	"github.com/Carmen-Shannon/prism/common"
	"github.com/Carmen-Shannon/prism/engine/geometry"
	"github.com/Carmen-Shannon/prism/engine/light"
	"github.com/Carmen-Shannon/prism/engine/renderer/material"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Scene construction constants.
const (
	SingleRadius = 1.5
	SingleHeight = 2.0
	BiRadius     = 1.2
	BiHeight     = 1.4
	DefaultGap   = 0.1

	DustCount = 300

	SpotAngle    = 0.12
	SpotPenumbra = 0.3
	SpotDecay    = 2.0
	SpotRange    = 40.0

	AmbientIntensity = 0.15

	beamSegments = 32
)

// InitialOrientation is the prism group rotation at startup: (30°, 45°, 0°).
var InitialOrientation = mgl32.Vec3{math32.Pi / 6, math32.Pi / 4, 0}

// SpotPosition is the fixed, far off-axis spotlight position. The light is aimed at the origin.
var SpotPosition = mgl32.Vec3{-12, 9, 6}

// DustExtent is the full size of the box the dust is scattered in.
var DustExtent = mgl32.Vec3{16, 10, 10}

// scene is the implementation of the Scene interface.
type scene struct {
	nodes     []*node
	materials []material.Material

	root          Handle
	prism         Handle
	single        Handle
	bi            Handle
	biUpper       Handle
	biLower       Handle
	ambient       Handle
	spot          Handle
	beam          Handle
	dust          Handle
	glass         MaterialHandle
	pair          *geometry.BiPyramidPair
	activeShape   ShapeKind
	fogDensity    float32
	fogColor      common.Color
	background    common.Color
	environment   *common.TextureStagingData
	dustSeed      uint64
	dustCount     int
	initialGap    float32
	sharedMatOpts []material.MaterialBuilderOption
}

// Scene is the composed glass-prism scene: a node arena with a prism group holding both shape
// variants, lighting, a decorative beam, fog and a dust cloud.
//
// Nodes live in an arena and are addressed by stable Handles. The glass material lives in a
// separate material arena and every solid references the same slot, so a material change shows
// on whichever variant is visible. Exactly one of the two variants is visible at any time.
type Scene interface {
	// Root returns the handle of the scene root group.
	//
	// Returns:
	//   - Handle: the root handle
	Root() Handle

	// PrismGroup returns the group whose rotation is the orientation of the solid.
	//
	// Returns:
	//   - Handle: the prism group handle
	PrismGroup() Handle

	// ShapeNode returns the node holding the given variant.
	//
	// Parameters:
	//   - kind: the shape variant
	//
	// Returns:
	//   - Handle: the variant's node, or InvalidHandle for an unknown kind
	ShapeNode(kind ShapeKind) Handle

	// BiPyramidHalves returns the upper and lower mesh nodes of the bi-pyramid.
	//
	// Returns:
	//   - Handle: the upper (apex-up) half
	//   - Handle: the lower (flipped) half
	BiPyramidHalves() (Handle, Handle)

	// BeamNode returns the decorative beam node.
	//
	// Returns:
	//   - Handle: the beam handle
	BeamNode() Handle

	// DustNode returns the dust point cloud node.
	//
	// Returns:
	//   - Handle: the dust handle
	DustNode() Handle

	// Kind returns the kind of a node.
	//
	// Parameters:
	//   - h: the node handle
	//
	// Returns:
	//   - NodeKind: the node kind
	//   - bool: false if the handle is invalid
	Kind(h Handle) (NodeKind, bool)

	// Name returns the debug name of a node, or "" for an invalid handle.
	Name(h Handle) string

	// Parent returns the parent of a node, or InvalidHandle for the root or an invalid handle.
	Parent(h Handle) Handle

	// Children returns a copy of a node's child handles.
	Children(h Handle) []Handle

	// Visible returns the node's own visibility flag.
	//
	// Parameters:
	//   - h: the node handle
	//
	// Returns:
	//   - bool: the flag; false for an invalid handle
	Visible(h Handle) bool

	// EffectivelyVisible reports whether the node and every ancestor are visible.
	//
	// Parameters:
	//   - h: the node handle
	//
	// Returns:
	//   - bool: true if the node would be drawn
	EffectivelyVisible(h Handle) bool

	// LocalPosition returns the node's translation relative to its parent.
	LocalPosition(h Handle) mgl32.Vec3

	// LocalRotation returns the node's XYZ euler rotation relative to its parent.
	LocalRotation(h Handle) mgl32.Vec3

	// WorldMatrix resolves the node's model matrix through its parent chain.
	//
	// Parameters:
	//   - h: the node handle
	//
	// Returns:
	//   - mgl32.Mat4: the world matrix, identity for an invalid handle
	WorldMatrix(h Handle) mgl32.Mat4

	// MaterialOf returns the material referenced by a mesh node.
	//
	// Parameters:
	//   - h: the mesh node handle
	//
	// Returns:
	//   - material.Material: the referenced material, or nil if the node is not a mesh
	MaterialOf(h Handle) material.Material

	// MaterialHandleOf returns the material arena slot referenced by a mesh node.
	//
	// Parameters:
	//   - h: the mesh node handle
	//
	// Returns:
	//   - MaterialHandle: the slot
	//   - bool: false if the node is not a mesh
	MaterialHandleOf(h Handle) (MaterialHandle, bool)

	// MaterialCount returns the number of slots in the material arena.
	MaterialCount() int

	// Material returns the shared glass material.
	//
	// Returns:
	//   - material.Material: the material every solid references
	Material() material.Material

	// SetActiveShape makes exactly one variant visible. Calling it again with the same kind is a no-op.
	//
	// Parameters:
	//   - kind: the variant to show
	SetActiveShape(kind ShapeKind)

	// ActiveShape returns the visible variant.
	//
	// Returns:
	//   - ShapeKind: the visible variant
	ActiveShape() ShapeKind

	// SetOrientation sets the prism group rotation. The angles are absolute.
	//
	// Parameters:
	//   - x, y, z: rotation in radians about each axis
	SetOrientation(x, y, z float32)

	// Orientation returns the prism group rotation.
	//
	// Returns:
	//   - x, y, z: rotation in radians about each axis
	Orientation() (x, y, z float32)

	// SetBiPyramidGap repositions both bi-pyramid halves for a new gap in one step.
	//
	// Parameters:
	//   - gap: distance between the two bases
	SetBiPyramidGap(gap float32)

	// BiPyramidGap returns the current bi-pyramid gap.
	BiPyramidGap() float32

	// BiPyramidOffsets returns the vertical positions of the upper and lower halves.
	//
	// Returns:
	//   - float32: upper half Y
	//   - float32: lower half Y
	BiPyramidOffsets() (float32, float32)

	// SetBeamVisible shows or hides the decorative beam.
	//
	// Parameters:
	//   - visible: true to show
	SetBeamVisible(visible bool)

	// BeamVisible reports whether the beam is shown.
	BeamVisible() bool

	// SetBeamOpacity sets the beam effect opacity, limited to [0, 1].
	//
	// Parameters:
	//   - opacity: the opacity
	SetBeamOpacity(opacity float32)

	// BeamOpacity returns the beam effect opacity.
	BeamOpacity() float32

	// SetLightIntensity sets the spotlight intensity.
	//
	// Parameters:
	//   - intensity: the intensity (negative values are stored as 0)
	SetLightIntensity(intensity float32)

	// LightIntensity returns the spotlight intensity.
	LightIntensity() float32

	// SpotLight returns the scene spotlight.
	SpotLight() light.Light

	// AmbientLight returns the scene ambient light.
	AmbientLight() light.Light

	// SetFogDensity sets the exponential-squared fog density. Negative values are stored as 0.
	//
	// Parameters:
	//   - density: the fog density
	SetFogDensity(density float32)

	// FogDensity returns the fog density.
	FogDensity() float32

	// FogColor returns the fog color.
	FogColor() common.Color

	// Background returns the clear color.
	Background() common.Color

	// SetParticlesVisible shows or hides the dust cloud.
	//
	// Parameters:
	//   - visible: true to show
	SetParticlesVisible(visible bool)

	// ParticlesVisible reports whether the dust cloud is shown.
	ParticlesVisible() bool

	// Dust returns the dust point cloud.
	Dust() *PointCloud

	// SetEnvironment installs the environment image used for reflections and refraction.
	// Passing nil clears it.
	//
	// Parameters:
	//   - env: decoded RGBA pixels, or nil
	SetEnvironment(env *common.TextureStagingData)

	// Environment returns the installed environment image, or nil if none has been set.
	Environment() *common.TextureStagingData

	// Drawables returns a snapshot of every visible drawable node in draw order:
	// solids first, then the beam, then the dust.
	//
	// Returns:
	//   - []Drawable: the snapshot
	Drawables() []Drawable
}

var _ Scene = &scene{}

// NewScene composes the prism scene and applies the provided options.
// The result starts with the bi-pyramid visible and the InitialOrientation applied.
//
// Parameters:
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the composed scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		fogDensity: 0.03,
		fogColor:   common.Color{0.02, 0.02, 0.035},
		background: common.Color{0.02, 0.02, 0.035},
		dustSeed:   1,
		dustCount:  DustCount,
		initialGap: DefaultGap,
	}
	for _, opt := range options {
		opt(s)
	}
	s.compose()
	return s
}

// compose builds the node graph once. Nothing is rebuilt afterwards.
func (s *scene) compose() {
	s.glass = s.addMaterial(material.NewMaterial(s.sharedMatOpts...))

	s.root = s.addNode(&node{kind: NodeGroup, name: "root"}, InvalidHandle)
	s.prism = s.addNode(&node{kind: NodeGroup, name: "prism"}, s.root)

	singleSolid := geometry.BuildSinglePyramid(SingleRadius, SingleHeight)
	s.single = s.addSolid("single_pyramid", singleSolid, s.prism)

	s.bi = s.addNode(&node{kind: NodeGroup, name: "bi_pyramid"}, s.prism)
	s.pair = geometry.BuildBiPyramidPair(BiRadius, BiHeight, s.initialGap)
	s.biUpper = s.addSolid("bi_pyramid_upper", s.pair.Upper, s.bi)
	s.biLower = s.addSolid("bi_pyramid_lower", s.pair.Lower, s.bi)

	ambient := light.NewLight(light.LightTypeAmbient,
		light.WithColor(1, 1, 1),
		light.WithIntensity(AmbientIntensity),
	)
	s.ambient = s.addNode(&node{kind: NodeLight, name: "ambient", light: ambient}, s.root)

	spot := light.NewLight(light.LightTypeSpot,
		light.WithPosition(SpotPosition.X(), SpotPosition.Y(), SpotPosition.Z()),
		light.WithTarget(0, 0, 0),
		light.WithColor(1, 0.95, 0.85),
		light.WithIntensity(40),
		light.WithSpotCone(SpotAngle, SpotPenumbra),
		light.WithDecay(SpotDecay),
		light.WithRange(SpotRange),
	)
	s.spot = s.addNode(&node{kind: NodeLight, name: "spot", light: spot, position: SpotPosition}, s.root)

	length := spot.Distance()
	beamMesh := geometry.BuildBeamCone(length, math32.Tan(SpotAngle)*length, beamSegments)
	dir := mgl32.Vec3(spot.Direction())
	s.beam = s.addNode(&node{
		kind:     NodeBeam,
		name:     "beam",
		mesh:     beamMesh,
		position: SpotPosition,
		basis:    mgl32.QuatBetweenVectors(mgl32.Vec3{0, -1, 0}, dir),
		opacity:  0.15,
		color:    common.Color(spot.Color()),
	}, s.root)

	s.dust = s.addNode(&node{
		kind:   NodePoints,
		name:   "dust",
		points: NewDustCloud(s.dustCount, DustExtent, s.dustSeed),
	}, s.root)

	s.activeShape = ShapeBiPyramid
	s.nodes[s.single].visible = false
	s.nodes[s.bi].visible = true
	s.SetOrientation(InitialOrientation.X(), InitialOrientation.Y(), InitialOrientation.Z())
}

func (s *scene) addMaterial(m material.Material) MaterialHandle {
	s.materials = append(s.materials, m)
	return MaterialHandle(len(s.materials) - 1)
}

func (s *scene) addNode(n *node, parent Handle) Handle {
	n.parent = parent
	n.visible = true
	n.scale = mgl32.Vec3{1, 1, 1}
	if n.basis == (mgl32.Quat{}) {
		n.basis = mgl32.QuatIdent()
	}
	s.nodes = append(s.nodes, n)
	h := Handle(len(s.nodes) - 1)
	if p := s.get(parent); p != nil {
		p.children = append(p.children, h)
	}
	return h
}

func (s *scene) addSolid(name string, solid *geometry.Solid, parent Handle) Handle {
	return s.addNode(&node{
		kind:     NodeMesh,
		name:     name,
		mesh:     solid.Mesh,
		material: s.glass,
		position: solid.Position,
		rotation: solid.Rotation,
	}, parent)
}

func (s *scene) get(h Handle) *node {
	if h < 0 || int(h) >= len(s.nodes) {
		return nil
	}
	return s.nodes[h]
}

func (s *scene) Root() Handle {
	return s.root
}

func (s *scene) PrismGroup() Handle {
	return s.prism
}

func (s *scene) ShapeNode(kind ShapeKind) Handle {
	switch kind {
	case ShapeSinglePyramid:
		return s.single
	case ShapeBiPyramid:
		return s.bi
	}
	return InvalidHandle
}

func (s *scene) BiPyramidHalves() (Handle, Handle) {
	return s.biUpper, s.biLower
}

func (s *scene) BeamNode() Handle {
	return s.beam
}

func (s *scene) DustNode() Handle {
	return s.dust
}

func (s *scene) Kind(h Handle) (NodeKind, bool) {
	n := s.get(h)
	if n == nil {
		return 0, false
	}
	return n.kind, true
}

func (s *scene) Name(h Handle) string {
	if n := s.get(h); n != nil {
		return n.name
	}
	return ""
}

func (s *scene) Parent(h Handle) Handle {
	if n := s.get(h); n != nil {
		return n.parent
	}
	return InvalidHandle
}

func (s *scene) Children(h Handle) []Handle {
	n := s.get(h)
	if n == nil {
		return nil
	}
	out := make([]Handle, len(n.children))
	copy(out, n.children)
	return out
}

func (s *scene) Visible(h Handle) bool {
	n := s.get(h)
	return n != nil && n.visible
}

func (s *scene) EffectivelyVisible(h Handle) bool {
	for n := s.get(h); n != nil; n = s.get(n.parent) {
		if !n.visible {
			return false
		}
	}
	return s.get(h) != nil
}

func (s *scene) LocalPosition(h Handle) mgl32.Vec3 {
	if n := s.get(h); n != nil {
		return n.position
	}
	return mgl32.Vec3{}
}

func (s *scene) LocalRotation(h Handle) mgl32.Vec3 {
	if n := s.get(h); n != nil {
		return n.rotation
	}
	return mgl32.Vec3{}
}

func (s *scene) WorldMatrix(h Handle) mgl32.Mat4 {
	m := mgl32.Ident4()
	for n := s.get(h); n != nil; n = s.get(n.parent) {
		m = n.localMatrix().Mul4(m)
	}
	return m
}

func (s *scene) MaterialOf(h Handle) material.Material {
	mh, ok := s.MaterialHandleOf(h)
	if !ok {
		return nil
	}
	return s.materials[mh]
}

func (s *scene) MaterialHandleOf(h Handle) (MaterialHandle, bool) {
	n := s.get(h)
	if n == nil || n.kind != NodeMesh {
		return 0, false
	}
	return n.material, true
}

func (s *scene) MaterialCount() int {
	return len(s.materials)
}

func (s *scene) Material() material.Material {
	return s.materials[s.glass]
}

func (s *scene) SetActiveShape(kind ShapeKind) {
	if kind != ShapeSinglePyramid && kind != ShapeBiPyramid {
		return
	}
	s.activeShape = kind
	s.nodes[s.single].visible = kind == ShapeSinglePyramid
	s.nodes[s.bi].visible = kind == ShapeBiPyramid
}

func (s *scene) ActiveShape() ShapeKind {
	return s.activeShape
}

func (s *scene) SetOrientation(x, y, z float32) {
	s.nodes[s.prism].rotation = mgl32.Vec3{x, y, z}
}

func (s *scene) Orientation() (x, y, z float32) {
	r := s.nodes[s.prism].rotation
	return r.X(), r.Y(), r.Z()
}

func (s *scene) SetBiPyramidGap(gap float32) {
	s.pair.SetGap(gap)
	s.nodes[s.biUpper].position = s.pair.Upper.Position
	s.nodes[s.biLower].position = s.pair.Lower.Position
}

func (s *scene) BiPyramidGap() float32 {
	return s.pair.Gap()
}

func (s *scene) BiPyramidOffsets() (float32, float32) {
	return s.nodes[s.biUpper].position.Y(), s.nodes[s.biLower].position.Y()
}

func (s *scene) SetBeamVisible(visible bool) {
	s.nodes[s.beam].visible = visible
}

func (s *scene) BeamVisible() bool {
	return s.nodes[s.beam].visible
}

func (s *scene) SetBeamOpacity(opacity float32) {
	s.nodes[s.beam].opacity = common.Clamp(opacity, 0, 1)
}

func (s *scene) BeamOpacity() float32 {
	return s.nodes[s.beam].opacity
}

func (s *scene) SetLightIntensity(intensity float32) {
	s.nodes[s.spot].light.SetIntensity(intensity)
}

func (s *scene) LightIntensity() float32 {
	return s.nodes[s.spot].light.Intensity()
}

func (s *scene) SpotLight() light.Light {
	return s.nodes[s.spot].light
}

func (s *scene) AmbientLight() light.Light {
	return s.nodes[s.ambient].light
}

func (s *scene) SetFogDensity(density float32) {
	s.fogDensity = math32.Max(0, density)
}

func (s *scene) FogDensity() float32 {
	return s.fogDensity
}

func (s *scene) FogColor() common.Color {
	return s.fogColor
}

func (s *scene) Background() common.Color {
	return s.background
}

func (s *scene) SetParticlesVisible(visible bool) {
	s.nodes[s.dust].visible = visible
}

func (s *scene) ParticlesVisible() bool {
	return s.nodes[s.dust].visible
}

func (s *scene) Dust() *PointCloud {
	return s.nodes[s.dust].points
}

func (s *scene) SetEnvironment(env *common.TextureStagingData) {
	s.environment = env
}

func (s *scene) Environment() *common.TextureStagingData {
	return s.environment
}

func (s *scene) Drawables() []Drawable {
	var meshes, beams, points []Drawable
	for i, n := range s.nodes {
		h := Handle(i)
		switch n.kind {
		case NodeMesh, NodeBeam, NodePoints:
		default:
			continue
		}
		if !s.EffectivelyVisible(h) {
			continue
		}
		d := Drawable{Handle: h, Kind: n.kind, World: s.WorldMatrix(h)}
		switch n.kind {
		case NodeMesh:
			d.Mesh = n.mesh
			d.Material = s.materials[n.material]
			meshes = append(meshes, d)
		case NodeBeam:
			d.Mesh = n.mesh
			d.Color = n.color
			d.Opacity = n.opacity
			beams = append(beams, d)
		case NodePoints:
			d.Points = n.points
			points = append(points, d)
		}
	}
	out := append(meshes, beams...)
	return append(out, points...)
}
