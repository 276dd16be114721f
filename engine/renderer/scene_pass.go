package renderer

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/prism/common"
	"github.com/Carmen-Shannon/prism/engine/camera"
	"github.com/Carmen-Shannon/prism/engine/geometry"
	"github.com/Carmen-Shannon/prism/engine/light"
	"github.com/Carmen-Shannon/prism/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/prism/engine/renderer/material"
	"github.com/Carmen-Shannon/prism/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/prism/engine/renderer/shader"
	"github.com/Carmen-Shannon/prism/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/glass.wgsl
var glassShaderSource string

//go:embed assets/beam.wgsl
var beamShaderSource string

//go:embed assets/dust.wgsl
var dustShaderSource string

// Pipeline keys registered by the scene pass.
const (
	PipelineGlassBack  = "glass_back"
	PipelineGlassFront = "glass_front"
	PipelineBeam       = "beam"
	PipelineDust       = "dust"
)

// Bindings used by the scene pass, matching the @binding indices in the WGSL sources.
const (
	bindingCamera = 0
	bindingFrame  = 1

	bindingObject = 0
	bindingPoints = 1

	bindingGlassParams = 0
	bindingEnvTexture  = 1
	bindingEnvSampler  = 2

	groupFrame    = 0
	groupObject   = 1
	groupMaterial = 2
)

// fallbackEnvironment is bound while no environment image is installed. The shader ignores it and
// draws its procedural gradient instead.
var fallbackEnvironment = common.TextureStagingData{
	Name:   "fallback_env",
	Pixels: []byte{0, 0, 0, 255},
	Width:  1,
	Height: 1,
}

// materialBinding tracks the GPU copy of one shared material.
type materialBinding struct {
	provider bind_group_provider.BindGroupProvider
	version  uint64
	env      *common.TextureStagingData
	uploaded bool
}

// scenePass is the implementation of the ScenePass interface.
type scenePass struct {
	renderer Renderer

	// frames holds the group 0 provider for each pipeline family. Both glass pipelines share one.
	frames    map[string]bind_group_provider.BindGroupProvider
	meshes    map[*geometry.Mesh]bind_group_provider.BindGroupProvider
	objects   map[scene.Handle]bind_group_provider.BindGroupProvider
	materials map[material.Material]*materialBinding
	points    map[scene.Handle]int
}

// ScenePass draws a composed scene: glass solids (back faces then front faces), the additive beam and
// the additive dust sprites. GPU resources are created lazily the first time a drawable is seen and
// are reused for the lifetime of the pass.
type ScenePass interface {
	// Render uploads the frame state and draws every visible drawable, then presents.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - cam: the camera to draw from
	//   - elapsed: seconds since start, used for subtle animation in the shaders
	//
	// Returns:
	//   - error: if a GPU resource cannot be created or the frame cannot be acquired
	Render(s scene.Scene, cam camera.Camera, elapsed float32) error

	// Release frees every GPU resource the pass created. Pipelines are owned by the Renderer.
	Release()
}

var _ ScenePass = &scenePass{}

// NewShaderPreProcessor returns a pre-processor with every shared uniform struct registered as an include.
//
// Returns:
//   - shader.PreProcessor: the pre-processor
func NewShaderPreProcessor() shader.PreProcessor {
	return shader.NewPreProcessor(map[string]string{
		"camera": camera.GPUCameraUniformSource,
		"light":  light.GPULightSource,
		"frame":  GPUFrameUniformSource,
		"object": GPUObjectUniformSource,
		"glass":  material.GPUGlassParamsSource,
	})
}

// ScenePipelines builds the (unregistered) pipelines used by the scene pass.
//
// Parameters:
//   - pp: the pre-processor used to expand shader includes
//
// Returns:
//   - []pipeline.Pipeline: the glass back, glass front, beam and dust pipelines
//   - error: if a shader cannot be processed
func ScenePipelines(pp shader.PreProcessor) ([]pipeline.Pipeline, error) {
	stages := func(key, source string) (shader.Shader, shader.Shader, error) {
		vs, err := shader.NewShader(key+"_vs", shader.ShaderTypeVertex, source, pp)
		if err != nil {
			return nil, nil, err
		}
		fs, err := shader.NewShader(key+"_fs", shader.ShaderTypeFragment, source, pp)
		if err != nil {
			return nil, nil, err
		}
		return vs, fs, nil
	}

	glassVS, glassFS, err := stages("glass", glassShaderSource)
	if err != nil {
		return nil, err
	}
	beamVS, beamFS, err := stages("beam", beamShaderSource)
	if err != nil {
		return nil, err
	}
	dustVS, dustFS, err := stages("dust", dustShaderSource)
	if err != nil {
		return nil, err
	}

	return []pipeline.Pipeline{
		pipeline.NewPipeline(PipelineGlassBack,
			pipeline.WithShaders(glassVS, glassFS),
			pipeline.WithCullMode(wgpu.CullModeFront),
			pipeline.WithBlendState(pipeline.BlendAlpha),
		),
		pipeline.NewPipeline(PipelineGlassFront,
			pipeline.WithShaders(glassVS, glassFS),
			pipeline.WithCullMode(wgpu.CullModeBack),
			pipeline.WithBlendState(pipeline.BlendAlpha),
		),
		pipeline.NewPipeline(PipelineBeam,
			pipeline.WithShaders(beamVS, beamFS),
			pipeline.WithDepthWriteEnabled(false),
			pipeline.WithBlendState(pipeline.BlendAdditive),
		),
		pipeline.NewPipeline(PipelineDust,
			pipeline.WithShaders(dustVS, dustFS),
			pipeline.WithDepthWriteEnabled(false),
			pipeline.WithBlendState(pipeline.BlendAdditive),
		),
	}, nil
}

// NewScenePass registers the scene pipelines on r and creates the per-frame bind groups.
//
// Parameters:
//   - r: the renderer to draw with
//
// Returns:
//   - ScenePass: the pass
//   - error: if a shader, pipeline or bind group cannot be created
func NewScenePass(r Renderer) (ScenePass, error) {
	pipelines, err := ScenePipelines(NewShaderPreProcessor())
	if err != nil {
		return nil, err
	}
	if err := r.RegisterPipelines(pipelines...); err != nil {
		return nil, err
	}

	sp := &scenePass{
		renderer:  r,
		frames:    make(map[string]bind_group_provider.BindGroupProvider),
		meshes:    make(map[*geometry.Mesh]bind_group_provider.BindGroupProvider),
		objects:   make(map[scene.Handle]bind_group_provider.BindGroupProvider),
		materials: make(map[material.Material]*materialBinding),
		points:    make(map[scene.Handle]int),
	}
	for _, key := range []string{PipelineGlassFront, PipelineBeam, PipelineDust} {
		provider := bind_group_provider.NewBindGroupProvider(key + " frame")
		if err := r.InitBindGroup(provider, key, groupFrame, nil); err != nil {
			sp.Release()
			provider.Release()
			return nil, err
		}
		sp.frames[key] = provider
	}
	return sp, nil
}

func (sp *scenePass) Render(s scene.Scene, cam camera.Camera, elapsed float32) error {
	cameraUniform := camera.Uniform(cam)
	frameUniform := NewFrameUniform(s, elapsed)
	cameraBytes, frameBytes := cameraUniform.Marshal(), frameUniform.Marshal()

	writes := make([]bind_group_provider.BufferWrite, 0, 16)
	for _, provider := range sp.frames {
		writes = append(writes,
			bind_group_provider.BufferWrite{Provider: provider, Binding: bindingCamera, Data: cameraBytes},
			bind_group_provider.BufferWrite{Provider: provider, Binding: bindingFrame, Data: frameBytes},
		)
	}

	drawables := s.Drawables()
	for _, d := range drawables {
		w, err := sp.prepare(d, s.Environment())
		if err != nil {
			return err
		}
		writes = append(writes, w...)
	}
	sp.renderer.WriteBuffers(writes)

	if err := sp.renderer.BeginFrame(); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	// Back faces of every glass solid go first so front faces blend over them.
	for _, key := range []string{PipelineGlassBack, PipelineGlassFront} {
		for _, d := range drawables {
			if d.Kind != scene.NodeMesh {
				continue
			}
			groups := []bind_group_provider.BindGroupProvider{
				sp.frames[PipelineGlassFront], sp.objects[d.Handle], sp.materials[d.Material].provider,
			}
			if err := sp.renderer.DrawCall(key, sp.meshes[d.Mesh], 1, groups); err != nil {
				sp.finishFrame()
				return err
			}
		}
	}
	for _, d := range drawables {
		var err error
		switch d.Kind {
		case scene.NodeBeam:
			groups := []bind_group_provider.BindGroupProvider{sp.frames[PipelineBeam], sp.objects[d.Handle]}
			err = sp.renderer.DrawCall(PipelineBeam, sp.meshes[d.Mesh], 1, groups)
		case scene.NodePoints:
			count := sp.points[d.Handle]
			if count == 0 {
				continue
			}
			groups := []bind_group_provider.BindGroupProvider{sp.frames[PipelineDust], sp.objects[d.Handle]}
			err = sp.renderer.Draw(PipelineDust, 6, uint32(count), groups)
		}
		if err != nil {
			sp.finishFrame()
			return err
		}
	}
	sp.finishFrame()
	return nil
}

func (sp *scenePass) finishFrame() {
	sp.renderer.EndFrame()
	sp.renderer.Present()
}

// prepare creates any missing GPU resources for d and returns the writes for its per-frame data.
func (sp *scenePass) prepare(d scene.Drawable, env *common.TextureStagingData) ([]bind_group_provider.BufferWrite, error) {
	switch d.Kind {
	case scene.NodeMesh:
		if err := sp.ensureMesh(d.Mesh); err != nil {
			return nil, err
		}
		if err := sp.ensureObject(d.Handle, PipelineGlassFront, nil); err != nil {
			return nil, err
		}
		writes, err := sp.ensureMaterial(d.Material, env)
		if err != nil {
			return nil, err
		}
		return append(writes, sp.objectWrite(d)), nil

	case scene.NodeBeam:
		if err := sp.ensureMesh(d.Mesh); err != nil {
			return nil, err
		}
		if err := sp.ensureObject(d.Handle, PipelineBeam, nil); err != nil {
			return nil, err
		}
		return []bind_group_provider.BufferWrite{sp.objectWrite(d)}, nil

	case scene.NodePoints:
		if d.Points == nil || len(d.Points.Positions) == 0 {
			return nil, nil
		}
		if _, ok := sp.objects[d.Handle]; !ok {
			count := len(d.Points.Positions)
			sizes := map[int]uint64{bindingPoints: uint64(count) * 16}
			if err := sp.ensureObject(d.Handle, PipelineDust, sizes); err != nil {
				return nil, err
			}
			// Point positions never move; upload them once.
			sp.renderer.WriteBuffers([]bind_group_provider.BufferWrite{{
				Provider: sp.objects[d.Handle],
				Binding:  bindingPoints,
				Data:     MarshalPoints(d.Points.Positions),
			}})
			sp.points[d.Handle] = count
		}
		return []bind_group_provider.BufferWrite{sp.objectWrite(d)}, nil
	}
	return nil, nil
}

func (sp *scenePass) objectWrite(d scene.Drawable) bind_group_provider.BufferWrite {
	u := NewObjectUniform(d)
	return bind_group_provider.BufferWrite{Provider: sp.objects[d.Handle], Binding: bindingObject, Data: u.Marshal()}
}

func (sp *scenePass) ensureMesh(m *geometry.Mesh) error {
	if _, ok := sp.meshes[m]; ok {
		return nil
	}
	provider := bind_group_provider.NewBindGroupProvider(m.Name + " mesh")
	err := sp.renderer.InitMeshBuffers(provider, geometry.MarshalVertices(m.Vertices), common.SliceToBytes(m.Indices), len(m.Indices))
	if err != nil {
		provider.Release()
		return fmt.Errorf("upload mesh %s: %w", m.Name, err)
	}
	sp.meshes[m] = provider
	return nil
}

func (sp *scenePass) ensureObject(h scene.Handle, pipelineKey string, sizeOverrides map[int]uint64) error {
	if _, ok := sp.objects[h]; ok {
		return nil
	}
	provider := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("object %d", h))
	if err := sp.renderer.InitBindGroup(provider, pipelineKey, groupObject, sizeOverrides); err != nil {
		provider.Release()
		return fmt.Errorf("object %d bind group: %w", h, err)
	}
	sp.objects[h] = provider
	return nil
}

// ensureMaterial keeps the material's bind group in step with the material values and the installed
// environment. The bind group is rebuilt only when the environment texture changes.
func (sp *scenePass) ensureMaterial(m material.Material, env *common.TextureStagingData) ([]bind_group_provider.BufferWrite, error) {
	mb, ok := sp.materials[m]
	if !ok {
		provider := bind_group_provider.NewBindGroupProvider(m.Name() + " material")
		if err := sp.renderer.InitSampler(provider, bindingEnvSampler, common.SamplerStagingData{
			AddressModeV: wgpu.AddressModeClampToEdge,
		}); err != nil {
			provider.Release()
			return nil, err
		}
		mb = &materialBinding{provider: provider}
		sp.materials[m] = mb
		if err := sp.bindEnvironment(mb, env); err != nil {
			return nil, err
		}
	} else if mb.env != env {
		if err := sp.bindEnvironment(mb, env); err != nil {
			return nil, err
		}
	}

	if mb.uploaded && mb.version == m.Version() {
		return nil, nil
	}
	params := m.GPUParams()
	mb.version = m.Version()
	mb.uploaded = true
	return []bind_group_provider.BufferWrite{{Provider: mb.provider, Binding: bindingGlassParams, Data: params.Marshal()}}, nil
}

func (sp *scenePass) bindEnvironment(mb *materialBinding, env *common.TextureStagingData) error {
	staging := fallbackEnvironment
	if env.Valid() {
		staging = *env
	}
	if err := sp.renderer.InitTextureView(mb.provider, bindingEnvTexture, staging); err != nil {
		return fmt.Errorf("environment texture: %w", err)
	}
	if err := sp.renderer.InitBindGroup(mb.provider, PipelineGlassFront, groupMaterial, nil); err != nil {
		return fmt.Errorf("material bind group: %w", err)
	}
	mb.env = env
	return nil
}

func (sp *scenePass) Release() {
	for _, p := range sp.frames {
		p.Release()
	}
	for _, p := range sp.meshes {
		p.Release()
	}
	for _, p := range sp.objects {
		p.Release()
	}
	for _, mb := range sp.materials {
		mb.provider.Release()
	}
	clear(sp.frames)
	clear(sp.meshes)
	clear(sp.objects)
	clear(sp.materials)
	clear(sp.points)
}
