package geometry

import (
	"unsafe"

	"github.com/Carmen-Shannon/prism/common"
)

// GPUVertexStride is the byte stride of one GPUVertex in a vertex buffer.
const GPUVertexStride = 32

// GPUVertex is the GPU-aligned representation of a single mesh vertex.
// Matches the VertexInput struct in the renderer's WGSL sources.
// Size: 32 bytes (no padding required).
type GPUVertex struct {
	Position [3]float32 // offset  0: model-space position (12 bytes)
	Normal   [3]float32 // offset 12: unit normal (12 bytes)
	TexCoord [2]float32 // offset 24: UV coordinate (8 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, GPUVertexStride)
	off := common.PutFloats(buf, 0, g.Position[:]...)
	off = common.PutFloats(buf, off, g.Normal[:]...)
	common.PutFloats(buf, off, g.TexCoord[:]...)
	return buf
}

// MarshalVertices packs a vertex slice into one contiguous upload buffer.
//
// Parameters:
//   - vertices: the vertices to pack
//
// Returns:
//   - []byte: len(vertices) * GPUVertexStride bytes
func MarshalVertices(vertices []GPUVertex) []byte {
	buf := make([]byte, 0, len(vertices)*GPUVertexStride)
	for i := range vertices {
		buf = append(buf, vertices[i].Marshal()...)
	}
	return buf
}
