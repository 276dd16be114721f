package material

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/prism/common"
)

// GPUGlassParamsSource is the canonical WGSL definition of the GlassParams struct.
// Matches GPUGlassParams layout exactly (48 bytes, uniform aligned).
//
//go:embed assets/glass_params.wgsl
var GPUGlassParamsSource string

// GPUGlassParams is the GPU-aligned uniform consumed by the glass fragment shader.
// Size: 48 bytes.
type GPUGlassParams struct {
	Color              [3]float32 // offset  0: linear tint
	Transmission       float32    // offset 12
	Roughness          float32    // offset 16
	Thickness          float32    // offset 20
	IOR                float32    // offset 24
	Dispersion         float32    // offset 28
	Metalness          float32    // offset 32
	Clearcoat          float32    // offset 36
	ClearcoatRoughness float32    // offset 40
	EnvMapIntensity    float32    // offset 44
}

// Size returns the size of the GPUGlassParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUGlassParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUGlassParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload.
func (g *GPUGlassParams) Marshal() []byte {
	buf := make([]byte, 48)
	off := common.PutFloats(buf, 0, g.Color[:]...)
	common.PutFloats(buf, off,
		g.Transmission,
		g.Roughness, g.Thickness, g.IOR, g.Dispersion,
		g.Metalness, g.Clearcoat, g.ClearcoatRoughness, g.EnvMapIntensity,
	)
	return buf
}
