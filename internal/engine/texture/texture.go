// Package texture decodes image files and deduplicates texture uploads.
package texture

import (
	"fmt"
	"path/filepath"
)

// Kind tags which material slot a texture feeds.
type Kind int

const (
	Diffuse Kind = iota
	Specular
)

// UniformName returns the shader sampler prefix for the slot, e.g. "texture_diffuse".
func (k Kind) UniformName() string {
	switch k {
	case Specular:
		return "texture_specular"
	default:
		return "texture_diffuse"
	}
}

func (k Kind) String() string {
	switch k {
	case Diffuse:
		return "diffuse"
	case Specular:
		return "specular"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Texture is a backend texture handle plus the slot it is bound to.
// An ID of 0 marks a texture that failed to load; meshes skip it when binding.
type Texture struct {
	ID   uint32
	Kind Kind
	Path string
}

// Valid reports whether the texture refers to a live backend handle.
func (t Texture) Valid() bool {
	return t.ID != 0
}

// NormalizePath returns the cache key for a texture path.
// Embedded keys of the form "scene.glb#image0" pass through the same cleaning.
func NormalizePath(path string) string {
	if path == "" {
		return ""
	}
	return filepath.ToSlash(filepath.Clean(path))
}

// LoadError reports an image that could not be decoded or uploaded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("texture %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
