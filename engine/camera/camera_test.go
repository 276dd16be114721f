package camera_test

import (
	"testing"

	"github.com/Carmen-Shannon/prism/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCameraDefaults(t *testing.T) {
	c := camera.NewCamera()
	assert.Equal(t, mgl32.Vec3{0, 0, 8}, c.Position())
	assert.Equal(t, mgl32.Vec3{}, c.Target())
	assert.InDelta(t, mgl32.DegToRad(50), c.Fov(), 1e-6)
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(100), c.Far())
}

func TestResize(t *testing.T) {
	c := camera.NewCamera()
	c.Resize(1600, 800)
	assert.Equal(t, float32(2), c.Aspect())

	c.Resize(100, 0)
	assert.Equal(t, float32(2), c.Aspect(), "zero height is ignored")
	c.SetAspect(-1)
	assert.Equal(t, float32(2), c.Aspect())
}

func TestProjectionUsesZeroToOneDepth(t *testing.T) {
	c := camera.NewCamera(camera.WithClipPlanes(1, 10))
	vp := c.ViewProjectionMatrix()

	project := func(p mgl32.Vec3) mgl32.Vec3 {
		v := vp.Mul4x1(p.Vec4(1))
		return v.Vec3().Mul(1 / v.W())
	}
	// the camera sits at z=8 looking at the origin
	assert.InDelta(t, 0, project(mgl32.Vec3{0, 0, 7}).Z(), 1e-4)
	assert.InDelta(t, 1, project(mgl32.Vec3{0, 0, -2}).Z(), 1e-4)

	center := project(mgl32.Vec3{})
	assert.InDelta(t, 0, center.X(), 1e-5)
	assert.InDelta(t, 0, center.Y(), 1e-5)
}

func TestUniform(t *testing.T) {
	c := camera.NewCamera(camera.WithPosition(1, 2, 3))
	u := camera.Uniform(c)
	assert.Equal(t, 144, u.Size())
	assert.Equal(t, [3]float32{1, 2, 3}, u.CameraPosition)
	assert.Equal(t, c.ViewMatrix(), u.View)
	require.Len(t, u.Marshal(), 144)
}
