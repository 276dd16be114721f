package renderer

import (
	_ "embed"
	"encoding/binary"
	"unsafe"

	"github.com/Carmen-Shannon/prism/common"
	"github.com/Carmen-Shannon/prism/engine/light"
	"github.com/Carmen-Shannon/prism/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUFrameUniformSource is the canonical WGSL definition of the FrameUniform struct.
// Matches GPUFrameUniform layout exactly (160 bytes, uniform aligned). Requires the Light include.
//
//go:embed assets/frame_uniform.wgsl
var GPUFrameUniformSource string

// GPUObjectUniformSource is the canonical WGSL definition of the ObjectUniform struct.
// Matches GPUObjectUniform layout exactly (160 bytes, uniform aligned).
//
//go:embed assets/object_uniform.wgsl
var GPUObjectUniformSource string

// GPUFrameUniform carries the per-frame lighting and fog state shared by every pipeline.
// Size: 160 bytes.
type GPUFrameUniform struct {
	Ambient    light.GPULight // offset   0
	Spot       light.GPULight // offset  64
	FogColor   [3]float32     // offset 128
	FogDensity float32        // offset 140: exp2 fog density, 0 disables fog
	EnvEnabled uint32         // offset 144: 1 when an environment texture is bound
	Time       float32        // offset 148: seconds since start
	_pad0      float32        // offset 152
	_pad1      float32        // offset 156
}

// Size returns the size of the GPUFrameUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (160)
func (g *GPUFrameUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFrameUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 160-byte buffer ready for GPU upload
func (g *GPUFrameUniform) Marshal() []byte {
	buf := make([]byte, 160)
	copy(buf[0:64], g.Ambient.Marshal())
	copy(buf[64:128], g.Spot.Marshal())
	off := common.PutFloats(buf, 128, g.FogColor[:]...)
	common.PutFloats(buf, off, g.FogDensity)
	binary.LittleEndian.PutUint32(buf[144:148], g.EnvEnabled)
	common.PutFloats(buf, 148, g.Time)
	return buf
}

// NewFrameUniform snapshots the scene's lights, fog and environment state.
//
// Parameters:
//   - s: the scene
//   - elapsed: seconds since start
//
// Returns:
//   - GPUFrameUniform: the uniform block
func NewFrameUniform(s scene.Scene, elapsed float32) GPUFrameUniform {
	u := GPUFrameUniform{
		Ambient:    s.AmbientLight().GPULight(),
		Spot:       s.SpotLight().GPULight(),
		FogColor:   s.FogColor(),
		FogDensity: s.FogDensity(),
		Time:       elapsed,
	}
	if s.Environment() != nil {
		u.EnvEnabled = 1
	}
	return u
}

// GPUObjectUniform carries one drawable's transform and flat appearance.
// Size: 160 bytes.
type GPUObjectUniform struct {
	Model        mgl32.Mat4 // offset   0: world matrix
	NormalMatrix mgl32.Mat4 // offset  64: inverse-transpose of the world matrix
	Color        [3]float32 // offset 128: beam/point tint
	Opacity      float32    // offset 140
	PointSize    float32    // offset 144: sprite edge length in world units
	_pad0        float32    // offset 148
	_pad1        float32    // offset 152
	_pad2        float32    // offset 156
}

// Size returns the size of the GPUObjectUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (160)
func (g *GPUObjectUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUObjectUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 160-byte buffer ready for GPU upload
func (g *GPUObjectUniform) Marshal() []byte {
	buf := make([]byte, 160)
	off := common.PutMat4(buf, 0, g.Model)
	off = common.PutMat4(buf, off, g.NormalMatrix)
	off = common.PutFloats(buf, off, g.Color[:]...)
	common.PutFloats(buf, off, g.Opacity, g.PointSize)
	return buf
}

// NewObjectUniform packs a drawable for upload. Glass meshes are drawn white and opaque here;
// their tint and transparency come from the material uniform.
//
// Parameters:
//   - d: the drawable
//
// Returns:
//   - GPUObjectUniform: the uniform block
func NewObjectUniform(d scene.Drawable) GPUObjectUniform {
	u := GPUObjectUniform{
		Model:        d.World,
		NormalMatrix: d.World.Inv().Transpose(),
		Color:        [3]float32{1, 1, 1},
		Opacity:      1,
	}
	switch d.Kind {
	case scene.NodeBeam:
		u.Color = d.Color
		u.Opacity = d.Opacity
	case scene.NodePoints:
		if d.Points != nil {
			u.Color = d.Points.Color
			u.Opacity = d.Points.Opacity
			u.PointSize = d.Points.Size
		}
	}
	return u
}

// MarshalPoints packs point positions as vec4<f32> (w = 1) for a read-only storage buffer.
//
// Parameters:
//   - points: the positions
//
// Returns:
//   - []byte: len(points) * 16 bytes
func MarshalPoints(points []mgl32.Vec3) []byte {
	buf := make([]byte, len(points)*16)
	for i, p := range points {
		common.PutFloats(buf, i*16, p.X(), p.Y(), p.Z(), 1)
	}
	return buf
}
