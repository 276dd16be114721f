package common

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Clamp limits v to the closed interval [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float32: v limited to [lo, hi]
func Clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}

// Wrap maps v into the half-open interval [lo, hi) by adding or removing whole periods of hi-lo.
//
// Parameters:
//   - v: the value to wrap
//   - lo: lower bound, inclusive
//   - hi: upper bound, exclusive
//
// Returns:
//   - float64: the wrapped value, or lo if the interval is empty
func Wrap(v, lo, hi float64) float64 {
	span := hi - lo
	if span <= 0 {
		return lo
	}
	w := math.Mod(v-lo, span)
	if w < 0 {
		w += span
	}
	return lo + w
}

// WrapAngle maps an angle in radians into [-π, π).
func WrapAngle(a float64) float64 {
	return Wrap(a, -math.Pi, math.Pi)
}

// WrapAngle32 returns a unchanged when it already lies in [-π, π] at float32 precision and wraps it
// otherwise.
func WrapAngle32(a float32) float32 {
	if a >= -math32.Pi && a <= math32.Pi {
		return a
	}
	return float32(WrapAngle(float64(a)))
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// The returned slice shares memory with the input and must not be modified.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(size)*len(data))
}

// PutFloats writes vals as little-endian float32 words into buf starting at byte offset.
// The caller guarantees buf is large enough.
//
// Parameters:
//   - buf: destination buffer
//   - offset: byte offset of the first word
//   - vals: values to write
//
// Returns:
//   - int: the byte offset just past the last written word
func PutFloats(buf []byte, offset int, vals ...float32) int {
	for _, v := range vals {
		binary.LittleEndian.PutUint32(buf[offset:offset+4], math.Float32bits(v))
		offset += 4
	}
	return offset
}

// PutMat4 writes a column-major 4x4 matrix into buf at offset.
//
// Parameters:
//   - buf: destination buffer
//   - offset: byte offset of the first element
//   - m: the matrix to write
//
// Returns:
//   - int: the byte offset just past the matrix
func PutMat4(buf []byte, offset int, m mgl32.Mat4) int {
	return PutFloats(buf, offset, m[:]...)
}

// EulerXYZ builds a rotation matrix applying X, then Y, then Z as intrinsic rotations.
// This is the composition used for every node rotation in the engine.
//
// Parameters:
//   - x, y, z: rotation angles in radians
//
// Returns:
//   - mgl32.Mat4: the rotation matrix Rx * Ry * Rz
func EulerXYZ(x, y, z float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DX(x).Mul4(mgl32.HomogRotate3DY(y)).Mul4(mgl32.HomogRotate3DZ(z))
}

// Transform composes translation, XYZ rotation and uniform-free scale into a model matrix (T * R * S).
//
// Parameters:
//   - position: translation
//   - rotation: XYZ euler angles in radians
//   - scale: per-axis scale
//
// Returns:
//   - mgl32.Mat4: the model matrix
func Transform(position, rotation, scale mgl32.Vec3) mgl32.Mat4 {
	t := mgl32.Translate3D(position.X(), position.Y(), position.Z())
	r := EulerXYZ(rotation.X(), rotation.Y(), rotation.Z())
	s := mgl32.Scale3D(scale.X(), scale.Y(), scale.Z())
	return t.Mul4(r).Mul4(s)
}
