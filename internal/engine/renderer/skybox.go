package renderer

import (
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/Faultbox/scenepick/internal/engine/scene"
	"github.com/Faultbox/scenepick/internal/engine/shader"
	"github.com/Faultbox/scenepick/internal/engine/shader/shaders"
	"github.com/Faultbox/scenepick/internal/engine/texture"
)

// SkyboxFaces names the cubemap faces in upload order, which matches
// GL_TEXTURE_CUBE_MAP_POSITIVE_X + i.
var SkyboxFaces = [...]string{"right", "left", "top", "bottom", "front", "back"}

// CheckSkyboxFaces reports whether faces lists one non-empty path per cubemap face.
func CheckSkyboxFaces(faces []string) error {
	if len(faces) != len(SkyboxFaces) {
		return errors.Errorf("skybox needs %d faces, got %d", len(SkyboxFaces), len(faces))
	}
	for i, f := range faces {
		if f == "" {
			return errors.Errorf("skybox %s face has no path", SkyboxFaces[i])
		}
	}
	return nil
}

// LoadSkyboxFaces decodes every face. Faces must be square and share one size.
func LoadSkyboxFaces(faces []string, dec texture.Decoder) ([]*image.RGBA, error) {
	if err := CheckSkyboxFaces(faces); err != nil {
		return nil, err
	}

	imgs := make([]*image.RGBA, len(faces))
	for i, path := range faces {
		img, err := dec.DecodeFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "skybox %s face %s", SkyboxFaces[i], path)
		}
		size := img.Bounds().Size()
		if size.X != size.Y {
			return nil, errors.Errorf("skybox %s face is %dx%d, not square", SkyboxFaces[i], size.X, size.Y)
		}
		if i > 0 && size != imgs[0].Bounds().Size() {
			return nil, errors.Errorf("skybox %s face is %dx%d, %s face is %dx%d",
				SkyboxFaces[i], size.X, size.Y, SkyboxFaces[0], imgs[0].Bounds().Dx(), imgs[0].Bounds().Dy())
		}
		imgs[i] = img
	}
	return imgs, nil
}

// SkyboxView drops the translation from view so the box stays centred on the camera.
func SkyboxView(view mgl32.Mat4) mgl32.Mat4 {
	return view.Mat3().Mat4()
}

// skyboxPositions expands a 2-unit cube into 36 bare triangle positions.
func skyboxPositions() []float32 {
	cube := scene.GenerateCube(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
	out := make([]float32, 0, len(cube.Indices)*3)
	for _, idx := range cube.Indices {
		p := cube.Vertices[idx].Position
		out = append(out, p[0], p[1], p[2])
	}
	return out
}

// Skybox draws a cubemap behind everything else.
type Skybox struct {
	program *shader.Program
	vao     uint32
	vbo     uint32
	cubemap uint32
	count   int32
}

// NewSkybox decodes the six faces with dec and uploads them as a cubemap.
// Requires a current GL context.
func NewSkybox(faces []string, dec texture.Decoder) (*Skybox, error) {
	imgs, err := LoadSkyboxFaces(faces, dec)
	if err != nil {
		return nil, err
	}

	program, err := shader.NewProgram(shaders.SkyboxVertexShader, shaders.SkyboxFragmentShader)
	if err != nil {
		return nil, errors.Wrap(err, "skybox shader")
	}

	s := &Skybox{program: program}
	s.cubemap = uploadCubemap(imgs)
	s.createBuffers()
	return s, nil
}

func uploadCubemap(faces []*image.RGBA) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	for i, img := range faces {
		b := img.Bounds()
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA,
			int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	}

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return id
}

func (s *Skybox) createBuffers() {
	positions := skyboxPositions()
	s.count = int32(len(positions) / 3)

	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)

	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(positions)*4, unsafe.Pointer(&positions[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// Draw renders the box at the far plane without writing depth.
func (s *Skybox) Draw(view, projection mgl32.Mat4) {
	if s == nil {
		return
	}
	gl.DepthMask(false)
	gl.DepthFunc(gl.LEQUAL)

	s.program.Use()
	s.program.SetMat4("view", SkyboxView(view))
	s.program.SetMat4("projection", projection)
	s.program.SetInt("skybox", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, s.cubemap)
	gl.BindVertexArray(s.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, s.count)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	gl.DepthMask(true)
	gl.DepthFunc(gl.LESS)
}

// Close releases the cubemap, buffers and program.
func (s *Skybox) Close() {
	if s == nil {
		return
	}
	if s.vao != 0 {
		gl.DeleteVertexArrays(1, &s.vao)
	}
	if s.vbo != 0 {
		gl.DeleteBuffers(1, &s.vbo)
	}
	if s.cubemap != 0 {
		gl.DeleteTextures(1, &s.cubemap)
	}
	s.program.Delete()
}
