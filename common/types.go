// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import "github.com/cogentcore/webgpu/wgpu"

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload.
// The environment loader produces one of these and the renderer uploads it on the next frame.
type TextureStagingData struct {
	// Name identifies where the pixels came from (usually the source file path).
	Name string
	// Pixels is the RGBA8 pixel data, 4 bytes per pixel, rows tightly packed.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// Valid reports whether the staging data holds a complete RGBA image.
//
// Returns:
//   - bool: true if the pixel buffer matches the declared dimensions
func (t *TextureStagingData) Valid() bool {
	if t == nil || t.Width == 0 || t.Height == 0 {
		return false
	}
	return len(t.Pixels) == int(t.Width)*int(t.Height)*4
}

// Color is a linear RGB color.
type Color [3]float32

// SamplerStagingData holds the configuration for a sampler pending GPU creation.
// Zero fields fall back to repeat addressing and linear filtering.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW control addressing outside [0, 1] per axis.
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter control magnification and minification filtering.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter controls filtering between mip levels.
	MipmapFilter wgpu.MipmapFilterMode
	// MaxAnisotropy caps anisotropic filtering; 0 means 1.
	MaxAnisotropy uint16
}
