package renderer_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/prism/common"
	"github.com/Carmen-Shannon/prism/engine/renderer"
	"github.com/Carmen-Shannon/prism/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/prism/engine/renderer/shader"
	"github.com/Carmen-Shannon/prism/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func word(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func TestParsePresentMode(t *testing.T) {
	assert.Equal(t, renderer.PresentModeUncapped, renderer.ParsePresentMode(" Immediate "))
	assert.Equal(t, renderer.PresentModeUncapped, renderer.ParsePresentMode("uncapped"))
	assert.Equal(t, renderer.PresentModeVSync, renderer.ParsePresentMode("fifo"))
	assert.Equal(t, renderer.PresentModeVSync, renderer.ParsePresentMode(""))
}

func TestParseMSAA(t *testing.T) {
	assert.Equal(t, renderer.MSAAOff, renderer.ParseMSAA(0))
	assert.Equal(t, renderer.MSAAOff, renderer.ParseMSAA(1))
	assert.Equal(t, renderer.MSAA4x, renderer.ParseMSAA(4))
	assert.Equal(t, renderer.MSAA4x, renderer.ParseMSAA(8))
}

func TestFrameUniform(t *testing.T) {
	s := scene.NewScene(scene.WithFogDensity(0.04))
	u := renderer.NewFrameUniform(s, 2.5)

	assert.Equal(t, 160, u.Size())
	assert.Equal(t, uint32(0), u.EnvEnabled)
	assert.Equal(t, s.SpotLight().GPULight(), u.Spot)

	buf := u.Marshal()
	require.Len(t, buf, 160)
	assert.InDelta(t, 0.04, word(buf, 140), 1e-6)
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(buf[144:]))
	assert.Equal(t, float32(2.5), word(buf, 148))
	assert.Equal(t, s.SpotLight().Intensity(), word(buf, 64+12))

	s.SetEnvironment(&common.TextureStagingData{Width: 1, Height: 1, Pixels: make([]byte, 4)})
	u = renderer.NewFrameUniform(s, 0)
	assert.Equal(t, uint32(1), u.EnvEnabled)
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(u.Marshal()[144:]))
}

func TestObjectUniform(t *testing.T) {
	s := scene.NewScene()
	s.SetBeamOpacity(0.3)

	var sawMesh, sawBeam, sawPoints bool
	for _, d := range s.Drawables() {
		u := renderer.NewObjectUniform(d)
		assert.Equal(t, 160, u.Size())
		assert.Equal(t, d.World, u.Model)
		assert.True(t, d.World.Inv().Transpose().ApproxEqualThreshold(u.NormalMatrix, 1e-5))

		switch d.Kind {
		case scene.NodeMesh:
			sawMesh = true
			assert.Equal(t, [3]float32{1, 1, 1}, u.Color)
			assert.Equal(t, float32(1), u.Opacity)
		case scene.NodeBeam:
			sawBeam = true
			assert.Equal(t, float32(0.3), u.Opacity)
			assert.Equal(t, [3]float32(s.SpotLight().Color()), u.Color)
			assert.InDelta(t, 0.3, word(u.Marshal(), 140), 1e-6)
		case scene.NodePoints:
			sawPoints = true
			assert.Equal(t, s.Dust().Size, u.PointSize)
			assert.Equal(t, s.Dust().Opacity, u.Opacity)
			assert.Equal(t, s.Dust().Size, word(u.Marshal(), 144))
		}
	}
	assert.True(t, sawMesh && sawBeam && sawPoints)
}

func TestMarshalPoints(t *testing.T) {
	buf := renderer.MarshalPoints([]mgl32.Vec3{{1, 2, 3}, {4, 5, 6}})
	require.Len(t, buf, 32)
	assert.Equal(t, float32(4), word(buf, 16))
	assert.Equal(t, float32(1), word(buf, 12))
	assert.Equal(t, float32(1), word(buf, 28))
}

func TestScenePipelines(t *testing.T) {
	pipelines, err := renderer.ScenePipelines(renderer.NewShaderPreProcessor())
	require.NoError(t, err)
	require.Len(t, pipelines, 4)

	byKey := map[string]pipeline.Pipeline{}
	for _, p := range pipelines {
		byKey[p.PipelineKey()] = p
	}
	back, front := byKey[renderer.PipelineGlassBack], byKey[renderer.PipelineGlassFront]
	beam, dust := byKey[renderer.PipelineBeam], byKey[renderer.PipelineDust]
	require.NotNil(t, back)
	require.NotNil(t, front)
	require.NotNil(t, beam)
	require.NotNil(t, dust)

	assert.Equal(t, wgpu.CullModeFront, back.CullMode())
	assert.Equal(t, wgpu.CullModeBack, front.CullMode())
	assert.Same(t, pipeline.BlendAlpha, front.BlendState())
	assert.Same(t, pipeline.BlendAdditive, beam.BlendState())
	assert.Same(t, pipeline.BlendAdditive, dust.BlendState())
	assert.False(t, beam.DepthWriteEnabled())
	assert.False(t, dust.DepthWriteEnabled())
	assert.True(t, front.DepthWriteEnabled())
}

func TestGlassPipelineReflection(t *testing.T) {
	pipelines, err := renderer.ScenePipelines(renderer.NewShaderPreProcessor())
	require.NoError(t, err)
	glass := pipelines[1]
	require.Equal(t, renderer.PipelineGlassFront, glass.PipelineKey())

	vs := glass.Shader(shader.ShaderTypeVertex)
	layouts := vs.VertexLayouts()
	require.Len(t, layouts, 1)
	assert.Equal(t, uint64(32), layouts[0].ArrayStride)
	assert.Len(t, layouts[0].Attributes, 3)

	groups := glass.BindGroupLayoutDescriptors()
	require.Len(t, groups, 3)

	g0 := groups[0].Entries
	require.Len(t, g0, 2)
	assert.Equal(t, uint64(144), g0[0].Buffer.MinBindingSize, "camera")
	assert.Equal(t, uint64(160), g0[1].Buffer.MinBindingSize, "frame")

	g1 := groups[1].Entries
	require.Len(t, g1, 1)
	assert.Equal(t, uint64(160), g1[0].Buffer.MinBindingSize, "object")

	g2 := groups[2].Entries
	require.Len(t, g2, 3)
	assert.Equal(t, uint64(48), g2[0].Buffer.MinBindingSize, "glass params")
	assert.Equal(t, wgpu.TextureViewDimension2D, g2[1].Texture.ViewDimension)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, g2[2].Sampler.Type)

	// both glass pipelines share bind groups, so their layouts must agree
	backGroups := pipelines[0].BindGroupLayoutDescriptors()
	for g, desc := range groups {
		assert.Equal(t, desc.Entries, backGroups[g].Entries, "group %d", g)
	}
}

func TestDustPipelineReflection(t *testing.T) {
	pipelines, err := renderer.ScenePipelines(renderer.NewShaderPreProcessor())
	require.NoError(t, err)
	dust := pipelines[3]
	require.Equal(t, renderer.PipelineDust, dust.PipelineKey())

	assert.Empty(t, dust.Shader(shader.ShaderTypeVertex).VertexLayouts(), "sprites are generated from the vertex index")

	g1 := dust.BindGroupLayoutDescriptors()[1].Entries
	require.Len(t, g1, 2)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, g1[0].Buffer.Type)
	assert.Equal(t, wgpu.BufferBindingTypeReadOnlyStorage, g1[1].Buffer.Type)
	assert.Equal(t, uint64(16), g1[1].Buffer.MinBindingSize)
}
