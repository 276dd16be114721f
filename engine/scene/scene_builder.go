package scene

import (
	"github.com/Carmen-Shannon/prism/common"
	"github.com/Carmen-Shannon/prism/engine/renderer/material"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithDustSeed sets the seed used to scatter the dust cloud.
// The same seed always yields the same layout.
//
// Parameters:
//   - seed: the random seed
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithDustSeed(seed uint64) SceneBuilderOption {
	return func(s *scene) {
		s.dustSeed = seed
	}
}

// WithDustCount overrides the number of dust points. Negative values are treated as 0.
//
// Parameters:
//   - count: number of points
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithDustCount(count int) SceneBuilderOption {
	return func(s *scene) {
		s.dustCount = max(0, count)
	}
}

// WithGap sets the initial bi-pyramid gap.
//
// Parameters:
//   - gap: distance between the two bases
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithGap(gap float32) SceneBuilderOption {
	return func(s *scene) {
		s.initialGap = gap
	}
}

// WithFogDensity sets the initial fog density.
//
// Parameters:
//   - density: the fog density
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFogDensity(density float32) SceneBuilderOption {
	return func(s *scene) {
		s.fogDensity = density
	}
}

// WithBackground sets the clear color and the fog color together.
//
// Parameters:
//   - c: the color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackground(c common.Color) SceneBuilderOption {
	return func(s *scene) {
		s.background = c
		s.fogColor = c
	}
}

// WithMaterialOptions configures the shared glass material before it is placed in the arena.
//
// Parameters:
//   - options: material options applied in order
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithMaterialOptions(options ...material.MaterialBuilderOption) SceneBuilderOption {
	return func(s *scene) {
		s.sharedMatOpts = append(s.sharedMatOpts, options...)
	}
}
