package bind_group_provider_test

import (
	"testing"

	"github.com/Carmen-Shannon/prism/engine/renderer/bind_group_provider"
	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProviderIsEmpty(t *testing.T) {
	p := bind_group_provider.NewBindGroupProvider("glass material")

	assert.Equal(t, "glass material", p.Label())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.BindGroupLayout())
	assert.Nil(t, p.Buffer(0))
	assert.Nil(t, p.TextureView(1))
	assert.Nil(t, p.Sampler(2))
	assert.Nil(t, p.VertexBuffer())
	assert.Nil(t, p.IndexBuffer())
	assert.Zero(t, p.IndexCount())
}

func TestReleaseResetsMesh(t *testing.T) {
	p := bind_group_provider.NewBindGroupProvider("mesh")
	p.SetMesh(nil, nil, 18)
	assert.Equal(t, 18, p.IndexCount())

	assert.NotPanics(t, p.Release)
	assert.Zero(t, p.IndexCount())
	assert.NotPanics(t, p.Release, "release is idempotent")
}

func TestBufferWriteTargetsProvider(t *testing.T) {
	p := bind_group_provider.NewBindGroupProvider("object 3")
	w := bind_group_provider.BufferWrite{Provider: p, Binding: 1, Offset: 16, Data: []byte{1, 2, 3, 4}}
	assert.Same(t, p, w.Provider)
	assert.Len(t, w.Data, 4)
}
