package renderer

import (
	"fmt"

	"github.com/Faultbox/scenepick/internal/engine/texture"
)

// TextureBinding assigns one texture to a texture unit and sampler uniform.
type TextureBinding struct {
	Unit    uint32
	Uniform string
	ID      uint32
	Kind    texture.Kind
}

// TextureBindings numbers textures per kind starting at 1, giving
// material.texture_diffuse1, material.texture_specular1, material.texture_diffuse2 and so on.
// Textures that failed to load are skipped and do not consume a number.
func TextureBindings(textures []texture.Texture) []TextureBinding {
	var out []TextureBinding
	counts := make(map[texture.Kind]int)
	for _, t := range textures {
		if !t.Valid() {
			continue
		}
		counts[t.Kind]++
		out = append(out, TextureBinding{
			Unit:    uint32(len(out)),
			Uniform: fmt.Sprintf("material.%s%d", t.Kind.UniformName(), counts[t.Kind]),
			ID:      t.ID,
			Kind:    t.Kind,
		})
	}
	return out
}

// hasKind reports whether bindings include a texture of kind k.
func hasKind(bindings []TextureBinding, k texture.Kind) bool {
	for _, b := range bindings {
		if b.Kind == k {
			return true
		}
	}
	return false
}
