package scene_test

import (
	"testing"

	"github.com/Carmen-Shannon/prism/common"
	"github.com/Carmen-Shannon/prism/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-4

func TestNewSceneInitialState(t *testing.T) {
	s := scene.NewScene()

	assert.Equal(t, scene.ShapeBiPyramid, s.ActiveShape())
	assert.True(t, s.Visible(s.ShapeNode(scene.ShapeBiPyramid)))
	assert.False(t, s.Visible(s.ShapeNode(scene.ShapeSinglePyramid)))

	x, y, z := s.Orientation()
	assert.Equal(t, scene.InitialOrientation, mgl32.Vec3{x, y, z})

	assert.InDelta(t, scene.DefaultGap, s.BiPyramidGap(), eps)
	assert.True(t, s.BeamVisible())
	assert.True(t, s.ParticlesVisible())
	assert.Nil(t, s.Environment())
	assert.Len(t, s.Dust().Positions, scene.DustCount)
}

func TestSceneHierarchy(t *testing.T) {
	s := scene.NewScene()

	prism := s.PrismGroup()
	assert.Equal(t, s.Root(), s.Parent(prism))
	assert.ElementsMatch(t,
		[]scene.Handle{s.ShapeNode(scene.ShapeSinglePyramid), s.ShapeNode(scene.ShapeBiPyramid)},
		s.Children(prism))

	upper, lower := s.BiPyramidHalves()
	assert.Equal(t, s.ShapeNode(scene.ShapeBiPyramid), s.Parent(upper))
	assert.Equal(t, s.ShapeNode(scene.ShapeBiPyramid), s.Parent(lower))

	kind, ok := s.Kind(s.BeamNode())
	require.True(t, ok)
	assert.Equal(t, scene.NodeBeam, kind)
	assert.Equal(t, s.Root(), s.Parent(s.BeamNode()), "beam is not part of the rotating group")

	kind, ok = s.Kind(s.DustNode())
	require.True(t, ok)
	assert.Equal(t, scene.NodePoints, kind)

	_, ok = s.Kind(scene.Handle(9999))
	assert.False(t, ok)
	assert.Equal(t, scene.InvalidHandle, s.Parent(scene.Handle(9999)))
	assert.Empty(t, s.Name(scene.InvalidHandle))
}

func TestExactlyOneShapeVisible(t *testing.T) {
	s := scene.NewScene()
	single := s.ShapeNode(scene.ShapeSinglePyramid)
	bi := s.ShapeNode(scene.ShapeBiPyramid)

	for _, kind := range []scene.ShapeKind{scene.ShapeSinglePyramid, scene.ShapeBiPyramid, scene.ShapeSinglePyramid} {
		s.SetActiveShape(kind)
		assert.Equal(t, kind, s.ActiveShape())
		assert.NotEqual(t, s.Visible(single), s.Visible(bi))
		assert.Equal(t, kind == scene.ShapeSinglePyramid, s.Visible(single))
	}

	s.SetActiveShape(scene.ShapeKind(7))
	assert.Equal(t, scene.ShapeSinglePyramid, s.ActiveShape(), "unknown kinds are ignored")
}

func TestHiddenParentHidesChildren(t *testing.T) {
	s := scene.NewScene()
	upper, _ := s.BiPyramidHalves()

	assert.True(t, s.EffectivelyVisible(upper))
	s.SetActiveShape(scene.ShapeSinglePyramid)
	assert.True(t, s.Visible(upper))
	assert.False(t, s.EffectivelyVisible(upper))
}

func TestAllSolidsShareOneMaterial(t *testing.T) {
	s := scene.NewScene()
	upper, lower := s.BiPyramidHalves()
	single := s.ShapeNode(scene.ShapeSinglePyramid)

	assert.Equal(t, 1, s.MaterialCount())
	for _, h := range []scene.Handle{upper, lower, single} {
		mh, ok := s.MaterialHandleOf(h)
		require.True(t, ok)
		assert.Equal(t, scene.MaterialHandle(0), mh)
		assert.Same(t, s.Material(), s.MaterialOf(h))
	}

	s.Material().SetIOR(2.2)
	assert.Equal(t, float32(2.2), s.MaterialOf(single).IOR())

	_, ok := s.MaterialHandleOf(s.PrismGroup())
	assert.False(t, ok)
	assert.Nil(t, s.MaterialOf(s.BeamNode()))
}

func TestSetOrientationIsAbsolute(t *testing.T) {
	s := scene.NewScene()
	s.SetOrientation(1, 2, 3)
	s.SetOrientation(0.5, 0, 0)

	x, y, z := s.Orientation()
	assert.Equal(t, mgl32.Vec3{0.5, 0, 0}, mgl32.Vec3{x, y, z})
	assert.Equal(t, mgl32.Vec3{0.5, 0, 0}, s.LocalRotation(s.PrismGroup()))
}

func TestOrientationRotatesBothVariants(t *testing.T) {
	s := scene.NewScene()
	s.SetOrientation(0, 0, 0)
	upper, _ := s.BiPyramidHalves()
	before := s.WorldMatrix(upper).Col(3).Vec3()

	s.SetOrientation(mgl32.DegToRad(90), 0, 0)
	after := s.WorldMatrix(upper).Col(3).Vec3()

	// rotating 90° about X takes +Y to +Z
	assert.InDelta(t, before.Y(), after.Z(), eps)
	assert.InDelta(t, 0, after.Y(), eps)
}

func TestSetBiPyramidGap(t *testing.T) {
	s := scene.NewScene()
	upper, lower := s.BiPyramidHalves()

	s.SetBiPyramidGap(0.5)
	assert.InDelta(t, 0.5, s.BiPyramidGap(), eps)

	u, l := s.BiPyramidOffsets()
	assert.InDelta(t, scene.BiHeight/2+0.25, u, eps)
	assert.InDelta(t, -u, l, eps)
	assert.InDelta(t, u, s.LocalPosition(upper).Y(), eps)
	assert.InDelta(t, l, s.LocalPosition(lower).Y(), eps)

	s.SetBiPyramidGap(-3)
	assert.Equal(t, float32(0), s.BiPyramidGap())
	u, l = s.BiPyramidOffsets()
	assert.InDelta(t, scene.BiHeight/2, u, eps)
	assert.InDelta(t, -scene.BiHeight/2, l, eps)
}

func TestBeamAndLight(t *testing.T) {
	s := scene.NewScene()

	s.SetBeamOpacity(2)
	assert.Equal(t, float32(1), s.BeamOpacity())
	s.SetBeamOpacity(0.4)
	assert.Equal(t, float32(0.4), s.BeamOpacity())

	s.SetLightIntensity(12)
	assert.Equal(t, float32(12), s.LightIntensity())
	assert.Equal(t, float32(0.4), s.BeamOpacity(), "beam opacity is independent of light intensity")

	spot := s.SpotLight()
	assert.Equal(t, [3]float32(scene.SpotPosition), spot.Position())
	assert.InDelta(t, scene.SpotAngle, spot.Angle(), 1e-6)
	assert.InDelta(t, scene.AmbientIntensity, s.AmbientLight().Intensity(), 1e-6)

	// the beam apex sits at the light and its axis points at the origin
	world := s.WorldMatrix(s.BeamNode())
	apex := world.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	assert.InDelta(t, 0, apex.Sub(scene.SpotPosition).Len(), eps)
	axis := world.Mul4x1(mgl32.Vec4{0, -1, 0, 0}).Vec3().Normalize()
	toOrigin := scene.SpotPosition.Mul(-1).Normalize()
	assert.InDelta(t, 1, axis.Dot(toOrigin), eps)
}

func TestFogAndEnvironment(t *testing.T) {
	s := scene.NewScene(scene.WithFogDensity(0.05), scene.WithBackground(common.Color{0.1, 0.2, 0.3}))
	assert.Equal(t, float32(0.05), s.FogDensity())
	assert.Equal(t, common.Color{0.1, 0.2, 0.3}, s.Background())

	s.SetFogDensity(-1)
	assert.Equal(t, float32(0), s.FogDensity())

	env := &common.TextureStagingData{Name: "sky.png", Width: 1, Height: 1, Pixels: make([]byte, 4)}
	s.SetEnvironment(env)
	assert.Same(t, env, s.Environment())
}

func TestDrawablesOrderAndVisibility(t *testing.T) {
	s := scene.NewScene()

	kinds := func() []scene.NodeKind {
		var out []scene.NodeKind
		for _, d := range s.Drawables() {
			out = append(out, d.Kind)
		}
		return out
	}
	assert.Equal(t, []scene.NodeKind{scene.NodeMesh, scene.NodeMesh, scene.NodeBeam, scene.NodePoints}, kinds())

	s.SetActiveShape(scene.ShapeSinglePyramid)
	s.SetBeamVisible(false)
	s.SetParticlesVisible(false)
	ds := s.Drawables()
	require.Len(t, ds, 1)
	assert.Equal(t, s.ShapeNode(scene.ShapeSinglePyramid), ds[0].Handle)
	assert.Same(t, s.Material(), ds[0].Material)
	assert.NotNil(t, ds[0].Mesh)
}

func TestBiPyramidHalvesShareMesh(t *testing.T) {
	s := scene.NewScene()
	ds := s.Drawables()
	require.GreaterOrEqual(t, len(ds), 2)
	assert.Same(t, ds[0].Mesh, ds[1].Mesh)
}

func TestDustCloudIsSeeded(t *testing.T) {
	a := scene.NewDustCloud(50, scene.DustExtent, 7)
	b := scene.NewDustCloud(50, scene.DustExtent, 7)
	c := scene.NewDustCloud(50, scene.DustExtent, 8)

	assert.Equal(t, a.Positions, b.Positions)
	assert.NotEqual(t, a.Positions, c.Positions)
	for _, p := range a.Positions {
		assert.LessOrEqual(t, abs(p.X()), scene.DustExtent.X()/2)
		assert.LessOrEqual(t, abs(p.Y()), scene.DustExtent.Y()/2)
		assert.LessOrEqual(t, abs(p.Z()), scene.DustExtent.Z()/2)
	}

	s := scene.NewScene(scene.WithDustCount(10), scene.WithDustSeed(7))
	assert.Equal(t, scene.NewDustCloud(10, scene.DustExtent, 7).Positions, s.Dust().Positions)
}

func TestParseShape(t *testing.T) {
	kind, err := scene.ParseShape("bi-pyramid")
	require.NoError(t, err)
	assert.Equal(t, scene.ShapeBiPyramid, kind)

	kind, err = scene.ParseShape("Single Pyramid")
	require.NoError(t, err)
	assert.Equal(t, scene.ShapeSinglePyramid, kind)

	_, err = scene.ParseShape("cube")
	assert.Error(t, err)
	assert.Equal(t, "ShapeKind(5)", scene.ShapeKind(5).String())
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
