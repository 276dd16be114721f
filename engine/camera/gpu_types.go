package camera

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/prism/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (144 bytes, uniform aligned).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer.
// Size: 144 bytes.
type GPUCameraUniform struct {
	ViewProj       mgl32.Mat4 // offset   0: combined view-projection matrix
	View           mgl32.Mat4 // offset  64: view matrix, used to orient sprites toward the eye
	CameraPosition [3]float32 // offset 128: world-space eye position
	_pad           float32    // offset 140: padding to 144 bytes
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (144)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, 144)
	off := common.PutMat4(buf, 0, g.ViewProj)
	off = common.PutMat4(buf, off, g.View)
	common.PutFloats(buf, off, g.CameraPosition[0], g.CameraPosition[1], g.CameraPosition[2], 0)
	return buf
}

// Uniform packs the camera's current matrices for upload.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - GPUCameraUniform: the uniform block
func Uniform(c Camera) GPUCameraUniform {
	return GPUCameraUniform{
		ViewProj:       c.ViewProjectionMatrix(),
		View:           c.ViewMatrix(),
		CameraPosition: [3]float32(c.Position()),
	}
}
