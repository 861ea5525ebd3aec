package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/scenepick/internal/engine/lighting"
	"github.com/Faultbox/scenepick/internal/engine/scene"
	"github.com/Faultbox/scenepick/internal/engine/texture"
)

// Frame carries the per-frame state shared by every model draw.
type Frame struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	ViewPos    mgl32.Vec3
	Lights     *lighting.LightSet
}

// defaultBaseColor is used by meshes without a diffuse texture.
var defaultBaseColor = mgl32.Vec3{1.0, 0.5, 0.31}

// BeginLit makes the lit program current and uploads camera and light uniforms.
func (r *Renderer) BeginLit(f Frame) {
	r.lit.Use()
	r.lit.SetMat4("view", f.View)
	r.lit.SetMat4("projection", f.Projection)
	r.lit.SetVec3("viewPos", f.ViewPos)
	r.lit.SetVec3("ambient", r.config.Ambient)
	r.lit.SetFloat("material.shininess", 32)
	r.lit.SetVec3("material.baseColor", defaultBaseColor)
	if f.Lights != nil {
		f.Lights.Apply(r.lit)
	}
}

// DrawModel draws every uploaded mesh of m. BeginLit must have been called.
func (r *Renderer) DrawModel(m *scene.Model) {
	if m == nil || !m.Visible {
		return
	}
	r.lit.SetMat4("model", m.Matrix())

	for _, md := range m.Meshes {
		if !md.GPU.Uploaded() {
			continue
		}
		bindings := TextureBindings(md.Textures)
		for _, b := range bindings {
			gl.ActiveTexture(gl.TEXTURE0 + b.Unit)
			gl.BindTexture(gl.TEXTURE_2D, b.ID)
			r.lit.SetInt(b.Uniform, int32(b.Unit))
		}
		r.lit.SetBool("material.hasDiffuse", hasKind(bindings, texture.Diffuse))
		r.lit.SetBool("material.hasSpecular", hasKind(bindings, texture.Specular))

		gl.BindVertexArray(md.GPU.VAO)
		gl.DrawElementsWithOffset(gl.TRIANGLES, int32(len(md.Indices)), gl.UNSIGNED_INT, 0)
	}

	gl.BindVertexArray(0)
	gl.ActiveTexture(gl.TEXTURE0)
}
