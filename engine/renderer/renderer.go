package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/prism/common"
	"github.com/Carmen-Shannon/prism/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/prism/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// SurfaceSource is the part of a host window the renderer needs to create and size its surface.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	// construction config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           common.Color
}

// Renderer is the high-level rendering API. It caches pipelines by key, creates GPU resources on
// BindGroupProviders and records one render pass per frame.
//
// Frame flow: WriteBuffers for the frame's uniforms, then BeginFrame, one DrawCall or Draw per
// drawable, EndFrame and Present.
type Renderer interface {
	// Pipeline returns the registered Pipeline for key, or nil.
	//
	// Parameters:
	//   - key: the pipeline key
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines creates the GPU objects for each pipeline and caches it by key.
	// Keys that are already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the pipelines to register
	//
	// Returns:
	//   - error: if GPU pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize reconfigures the surface and its attachments. Zero sizes (minimized windows) are ignored.
	//
	// Parameters:
	//   - width: surface width in pixels
	//   - height: surface height in pixels
	//
	// Returns:
	//   - error: if an attachment cannot be created
	Resize(width, height int) error

	// SetPresentMode changes the present mode. Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the present mode
	SetPresentMode(mode PresentMode)

	// SetClearColor changes the color the next frames are cleared to.
	//
	// Parameters:
	//   - c: linear RGB clear color
	SetClearColor(c common.Color)

	// InitMeshBuffers uploads vertex and index data and stores the buffers on the provider.
	//
	// Parameters:
	//   - provider: the mesh provider
	//   - vertexData: packed vertex bytes
	//   - indexData: packed uint32 indices
	//   - indexCount: number of indices
	//
	// Returns:
	//   - error: if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates the bind group for one group of a registered pipeline. Buffers the provider
	// does not hold yet are created at the reflected MinBindingSize unless sizeOverrides names the binding.
	// Texture and sampler bindings must already be initialized. Calling it again rebuilds the bind group
	// around the provider's current resources.
	//
	// Parameters:
	//   - provider: the provider receiving the bind group
	//   - pipelineKey: a registered pipeline key
	//   - group: the bind group index in that pipeline
	//   - sizeOverrides: buffer sizes keyed by binding (nil safe)
	//
	// Returns:
	//   - error: if the pipeline or group is unknown, or a resource is missing
	InitBindGroup(provider bind_group_provider.BindGroupProvider, pipelineKey string, group int, sizeOverrides map[int]uint64) error

	// InitTextureView uploads RGBA8 pixels into a new sRGB texture at binding.
	//
	// Parameters:
	//   - provider: the provider receiving the texture
	//   - binding: the binding index
	//   - staging: the pixels and dimensions
	//
	// Returns:
	//   - error: if the data is invalid or texture creation fails
	InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, staging common.TextureStagingData) error

	// InitSampler creates a sampler at binding.
	//
	// Parameters:
	//   - provider: the provider receiving the sampler
	//   - binding: the binding index
	//   - staging: the sampler configuration
	//
	// Returns:
	//   - error: if sampler creation fails
	InitSampler(provider bind_group_provider.BindGroupProvider, binding int, staging common.SamplerStagingData) error

	// WriteBuffers submits staged buffer writes to the GPU queue.
	//
	// Parameters:
	//   - writes: the writes to submit
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the swapchain texture and begins the main render pass.
	//
	// Returns:
	//   - error: if the swapchain texture could not be acquired
	BeginFrame() error

	// DrawCall records an indexed draw of the provider's mesh.
	//
	// Parameters:
	//   - pipelineKey: a registered pipeline key
	//   - meshProvider: provider holding vertex and index buffers
	//   - instanceCount: number of instances
	//   - bindGroups: providers bound at groups 0..n-1
	//
	// Returns:
	//   - error: if the pipeline is not registered
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// Draw records a non-indexed draw without vertex buffers. Shaders generate
	// geometry from the vertex and instance indices.
	//
	// Parameters:
	//   - pipelineKey: a registered pipeline key
	//   - vertexCount: vertices per instance
	//   - instanceCount: number of instances
	//   - bindGroups: providers bound at groups 0..n-1
	//
	// Returns:
	//   - error: if the pipeline is not registered
	Draw(pipelineKey string, vertexCount, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends the render pass and submits the command buffer.
	EndFrame()

	// Present shows the frame and releases the swapchain texture.
	Present()

	// Release frees every pipeline and the device.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer for the surface of the given window.
//
// Parameters:
//   - backendType: the GPU backend (BackendTypeWGPU)
//   - window: the window providing the surface descriptor and initial size
//   - options: functional options
//
// Returns:
//   - Renderer: the renderer
//   - error: if no adapter or device is available, or the surface cannot be configured
func NewRenderer(backendType RendererBackendType, window SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
		presentMode:   PresentModeVSync,
		msaa:          MSAA4x,
		clearColor:    common.Color{0.02, 0.02, 0.03},
	}
	for _, opt := range options {
		opt(r)
	}

	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend, err = newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
	}
	if err != nil {
		return nil, fmt.Errorf("create renderer backend: %w", err)
	}

	r.backend.SetPresentMode(r.presentMode)
	r.backend.SetClearColor(r.clearColor)
	if err := r.backend.ConfigureSurface(window.Width(), window.Height()); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("configure surface: %w", err)
	}
	return r, nil
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("register pipeline %q: %w", key, err)
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) Resize(width, height int) error {
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetClearColor(c common.Color) {
	r.backend.SetClearColor(c)
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, pipelineKey string, group int, sizeOverrides map[int]uint64) error {
	p := r.Pipeline(pipelineKey)
	if p == nil {
		return fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}
	descriptor, ok := p.BindGroupLayoutDescriptors()[group]
	if !ok {
		return fmt.Errorf("render pipeline %q has no bind group %d", pipelineKey, group)
	}
	return r.backend.InitBindGroup(provider, p.BindGroupLayout(group), descriptor, sizeOverrides)
}

func (r *renderer) InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, staging common.TextureStagingData) error {
	if !staging.Valid() {
		return fmt.Errorf("texture %q: pixel data does not match %dx%d", staging.Name, staging.Width, staging.Height)
	}
	return r.backend.InitTextureView(provider, binding, staging)
}

func (r *renderer) InitSampler(provider bind_group_provider.BindGroupProvider, binding int, staging common.SamplerStagingData) error {
	return r.backend.InitSampler(provider, binding, staging)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	p := r.Pipeline(pipelineKey)
	if p == nil {
		return fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}
	r.backend.DrawCall(p, meshProvider, instanceCount, bindGroups)
	return nil
}

func (r *renderer) Draw(pipelineKey string, vertexCount, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	p := r.Pipeline(pipelineKey)
	if p == nil {
		return fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}
	r.backend.Draw(p, vertexCount, instanceCount, bindGroups)
	return nil
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	r.mu.Unlock()
	r.backend.Release()
}
