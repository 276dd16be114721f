package renderer

import "strings"

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	PresentModeUncapped
)

// ParsePresentMode maps a config string to a PresentMode. "uncapped" and "immediate" disable VSync;
// anything else ("fifo", "vsync", "") keeps it.
//
// Parameters:
//   - s: the configured mode name
//
// Returns:
//   - PresentMode: the parsed mode
func ParsePresentMode(s string) PresentMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "uncapped", "immediate":
		return PresentModeUncapped
	}
	return PresentModeVSync
}

// MSAASampleCount is the number of samples used for multisample anti-aliasing.
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing.
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// ParseMSAA maps a sample count from config to a supported MSAASampleCount.
//
// Parameters:
//   - samples: requested sample count
//
// Returns:
//   - MSAASampleCount: MSAAOff for 0 or 1, MSAA4x otherwise
func ParseMSAA(samples uint32) MSAASampleCount {
	if samples <= 1 {
		return MSAAOff
	}
	return MSAA4x
}

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}
