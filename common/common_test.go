package common_test

import (
	"bytes"
	"encoding/binary"
	"log/slog"
	"math"
	"testing"

	"github.com/Carmen-Shannon/prism/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(1), common.Clamp(5, 0, 1))
	assert.Equal(t, float32(0), common.Clamp(-5, 0, 1))
	assert.Equal(t, float32(0.5), common.Clamp(0.5, 0, 1))
}

func TestWrap(t *testing.T) {
	assert.InDelta(t, 0.5, common.Wrap(10.5, 0, 1), 1e-12)
	assert.InDelta(t, 0.75, common.Wrap(-0.25, 0, 1), 1e-12)
	assert.Equal(t, 0.0, common.Wrap(1, 0, 1), "the upper bound is exclusive")
	assert.Equal(t, 2.0, common.Wrap(7, 2, 2))

	assert.InDelta(t, 10-2*math.Pi, common.WrapAngle(10), 1e-12)
	assert.InDelta(t, -math.Pi, common.WrapAngle(math.Pi), 1e-12)

	assert.Equal(t, math32.Pi, common.WrapAngle32(math32.Pi), "in-range values pass through unchanged")
	assert.Equal(t, float32(-1), common.WrapAngle32(-1))
	assert.InDelta(t, 4-2*math.Pi, common.WrapAngle32(4), 1e-6)
}

func TestPutFloats(t *testing.T) {
	buf := make([]byte, 12)
	off := common.PutFloats(buf, 4, 1.5, -2)
	assert.Equal(t, 12, off)
	assert.Equal(t, []byte{0, 0, 0, 0}, buf[:4])
	assert.Equal(t, float32(1.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[4:])))
	assert.Equal(t, float32(-2), math.Float32frombits(binary.LittleEndian.Uint32(buf[8:])))
}

func TestPutMat4IsColumnMajor(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3)
	buf := make([]byte, 64)
	assert.Equal(t, 64, common.PutMat4(buf, 0, m))
	// translation lives in the fourth column, elements 12..14
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(buf[13*4:])))
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, common.SliceToBytes([]float32{}))
	assert.Len(t, common.SliceToBytes([]uint32{1, 2, 3}), 12)
}

func TestEulerXYZOrder(t *testing.T) {
	x, y := math32.Pi/6, math32.Pi/4
	want := mgl32.HomogRotate3DX(x).Mul4(mgl32.HomogRotate3DY(y))
	assert.True(t, want.ApproxEqualThreshold(common.EulerXYZ(x, y, 0), 1e-5))
	assert.True(t, mgl32.Ident4().ApproxEqual(common.EulerXYZ(0, 0, 0)))
}

func TestTransform(t *testing.T) {
	m := common.Transform(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{math32.Pi, 0, 0}, mgl32.Vec3{1, 1, 1})
	p := m.Mul4x1(mgl32.Vec4{0, 1, 0, 1})
	assert.InDelta(t, 0, p.Y(), 1e-5)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, common.Coalesce(0, 0, 3, 4))
	assert.Equal(t, "", common.Coalesce[string]())
	assert.Equal(t, "a", common.Coalesce("", "a"))
}

func TestTextureStagingDataValid(t *testing.T) {
	var nilData *common.TextureStagingData
	assert.False(t, nilData.Valid())
	assert.False(t, (&common.TextureStagingData{Width: 2, Height: 2, Pixels: make([]byte, 15)}).Valid())
	assert.False(t, (&common.TextureStagingData{Width: 0, Height: 2}).Valid())
	assert.True(t, (&common.TextureStagingData{Width: 2, Height: 2, Pixels: make([]byte, 16)}).Valid())
}

func TestLogger(t *testing.T) {
	assert.NotNil(t, common.Logger())
	assert.False(t, common.Logger().Enabled(t.Context(), slog.LevelError))

	var buf bytes.Buffer
	common.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { common.SetLogger(nil) })

	common.Logger().Info("hello", slog.Int("n", 1))
	assert.Contains(t, buf.String(), "msg=hello n=1")

	common.SetLogger(nil)
	assert.False(t, common.Logger().Enabled(t.Context(), slog.LevelError))
}
