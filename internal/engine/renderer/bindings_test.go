package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/scenepick/internal/engine/texture"
)

func TestTextureBindingsNumbersPerKind(t *testing.T) {
	got := TextureBindings([]texture.Texture{
		{ID: 4, Kind: texture.Diffuse},
		{ID: 0, Kind: texture.Diffuse},
		{ID: 7, Kind: texture.Specular},
		{ID: 9, Kind: texture.Diffuse},
	})
	require.Len(t, got, 3)

	assert.Equal(t, TextureBinding{Unit: 0, Uniform: "material.texture_diffuse1", ID: 4, Kind: texture.Diffuse}, got[0])
	assert.Equal(t, TextureBinding{Unit: 1, Uniform: "material.texture_specular1", ID: 7, Kind: texture.Specular}, got[1])
	assert.Equal(t, TextureBinding{Unit: 2, Uniform: "material.texture_diffuse2", ID: 9, Kind: texture.Diffuse}, got[2])

	assert.True(t, hasKind(got, texture.Specular))
}

func TestTextureBindingsEmpty(t *testing.T) {
	assert.Empty(t, TextureBindings(nil))
	assert.Empty(t, TextureBindings([]texture.Texture{{Kind: texture.Diffuse}}))
	assert.False(t, hasKind(nil, texture.Diffuse))
}
