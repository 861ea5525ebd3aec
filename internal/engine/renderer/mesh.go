package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/scenepick/internal/engine/scene"
)

// UploadMesh creates the VAO, VBO and EBO for md and records them in md.GPU.
// Already-uploaded and empty meshes are left alone.
func UploadMesh(md *scene.MeshData) {
	if md.GPU.Uploaded() || len(md.Vertices) == 0 || len(md.Indices) == 0 {
		return
	}
	vertices := md.Interleaved()

	gl.GenVertexArrays(1, &md.GPU.VAO)
	gl.BindVertexArray(md.GPU.VAO)

	gl.GenBuffers(1, &md.GPU.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, md.GPU.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	stride := int32(scene.VertexStride * 4)
	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &md.GPU.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, md.GPU.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(md.Indices)*4, unsafe.Pointer(&md.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
}

// ReleaseMesh deletes md's GPU buffers. Textures belong to the cache and are untouched.
func ReleaseMesh(md *scene.MeshData) {
	if md.GPU.VAO != 0 {
		gl.DeleteVertexArrays(1, &md.GPU.VAO)
	}
	if md.GPU.VBO != 0 {
		gl.DeleteBuffers(1, &md.GPU.VBO)
	}
	if md.GPU.EBO != 0 {
		gl.DeleteBuffers(1, &md.GPU.EBO)
	}
	md.GPU = scene.GPUHandles{}
}

// UploadModel uploads every mesh of m.
func UploadModel(m *scene.Model) {
	for _, md := range m.Meshes {
		UploadMesh(md)
	}
}

// ReleaseModel releases every mesh of m.
func ReleaseModel(m *scene.Model) {
	for _, md := range m.Meshes {
		ReleaseMesh(md)
	}
}
