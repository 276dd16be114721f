package light

import (
	_ "embed"
	"encoding/binary"
	"unsafe"

	"github.com/Carmen-Shannon/prism/common"
)

// GPULightSource is the canonical WGSL definition of the Light struct.
// Matches GPULight layout exactly (64 bytes, uniform aligned).
//
//go:embed assets/light.wgsl
var GPULightSource string

// GPULight is the GPU-aligned representation of a single light source.
// Size: 64 bytes.
type GPULight struct {
	Position   [3]float32 // offset  0: world-space position
	Intensity  float32    // offset 12: scalar multiplier
	Color      [3]float32 // offset 16: RGB color
	LightRange float32    // offset 28: cutoff distance, 0 = unlimited
	Direction  [3]float32 // offset 32: normalized cone axis
	Decay      float32    // offset 44: distance falloff exponent
	InnerCone  float32    // offset 48: cos(inner half-angle)
	OuterCone  float32    // offset 52: cos(outer half-angle)
	LightType  uint32     // offset 56: 0 = ambient, 1 = point, 2 = spot
	Enabled    uint32     // offset 60: 1 = enabled
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, 64)
	off := common.PutFloats(buf, 0, g.Position[:]...)
	off = common.PutFloats(buf, off, g.Intensity)
	off = common.PutFloats(buf, off, g.Color[:]...)
	off = common.PutFloats(buf, off, g.LightRange)
	off = common.PutFloats(buf, off, g.Direction[:]...)
	common.PutFloats(buf, off, g.Decay, g.InnerCone, g.OuterCone)
	binary.LittleEndian.PutUint32(buf[56:60], g.LightType)
	binary.LittleEndian.PutUint32(buf[60:64], g.Enabled)
	return buf
}
