package pipeline_test

import (
	"testing"

	"github.com/Carmen-Shannon/prism/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/prism/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const source = `
struct Params {
    color: vec4<f32>,
};

@group(0) @binding(0) var<uniform> params: Params;
@group(1) @binding(0) var tex: texture_2d<f32>;

@vertex
fn vs_main(@builtin(vertex_index) i: u32) -> @builtin(position) vec4<f32> {
    return params.color;
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return params.color;
}
`

func stages(t *testing.T) (shader.Shader, shader.Shader) {
	t.Helper()
	pp := shader.NewPreProcessor(nil)
	vs, err := shader.NewShader("vs", shader.ShaderTypeVertex, source, pp)
	require.NoError(t, err)
	fs, err := shader.NewShader("fs", shader.ShaderTypeFragment, source, pp)
	require.NoError(t, err)
	return vs, fs
}

func TestNewPipelineDefaults(t *testing.T) {
	p := pipeline.NewPipeline("opaque")

	assert.Equal(t, "opaque", p.PipelineKey())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.False(t, p.BlendEnabled())
	assert.Nil(t, p.BlendState())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Equal(t, wgpu.ColorWriteMaskAll, p.WriteMask())
	assert.Nil(t, p.RenderPipeline())
	assert.Nil(t, p.BindGroupLayout(0))
	assert.Nil(t, p.Shader(shader.ShaderTypeVertex))
	assert.Empty(t, p.BindGroupLayoutDescriptors())
}

func TestPipelineOptions(t *testing.T) {
	vs, fs := stages(t)
	p := pipeline.NewPipeline("transparent",
		pipeline.WithShaders(vs, fs),
		pipeline.WithCullMode(wgpu.CullModeFront),
		pipeline.WithDepthWriteEnabled(false),
		pipeline.WithBlendState(pipeline.BlendAlpha),
	)

	assert.Same(t, vs, p.Shader(shader.ShaderTypeVertex))
	assert.Same(t, fs, p.Shader(shader.ShaderTypeFragment))
	assert.Equal(t, wgpu.CullModeFront, p.CullMode())
	assert.False(t, p.DepthWriteEnabled())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.BlendEnabled())
	assert.Same(t, pipeline.BlendAlpha, p.BlendState())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
}

func TestBindGroupLayoutsMergeStageVisibility(t *testing.T) {
	vs, fs := stages(t)
	p := pipeline.NewPipeline("merged", pipeline.WithShaders(vs, fs))

	groups := p.BindGroupLayoutDescriptors()
	require.Len(t, groups, 2)

	g0 := groups[0]
	assert.Equal(t, "merged", g0.Label)
	require.Len(t, g0.Entries, 1)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, g0.Entries[0].Visibility)
	assert.Equal(t, uint64(16), g0.Entries[0].Buffer.MinBindingSize)

	require.Len(t, groups[1].Entries, 1)
	assert.Equal(t, wgpu.TextureViewDimension2D, groups[1].Entries[0].Texture.ViewDimension)
}

func TestReleaseWithoutGPUObjects(t *testing.T) {
	p := pipeline.NewPipeline("empty")
	assert.NotPanics(t, p.Release)
	p.SetRenderPipeline(nil, nil)
	assert.Nil(t, p.BindGroupLayout(0))
}
