package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Model is a placed set of meshes sharing one world transform.
// Rotation is Euler angles in degrees, applied X then Y then Z.
type Model struct {
	Path     string
	Meshes   []*MeshData
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
	Visible  bool
}

// NewModel wraps meshes with an identity transform.
func NewModel(path string, meshes []*MeshData) *Model {
	return &Model{
		Path:    path,
		Meshes:  meshes,
		Scale:   mgl32.Vec3{1, 1, 1},
		Visible: true,
	}
}

// LoadModel imports path and always returns a model. A failed import is
// logged by the importer and yields a model with no meshes.
func LoadModel(im *Importer, path string) *Model {
	meshes, _ := im.Import(path)
	return NewModel(path, meshes)
}

// SetTransform sets position, Euler rotation in degrees, and scale.
func (m *Model) SetTransform(position, rotation, scale mgl32.Vec3) {
	m.Position = position
	m.Rotation = rotation
	m.Scale = scale
}

// Matrix returns T * Rx * Ry * Rz * S.
func (m *Model) Matrix() mgl32.Mat4 {
	result := mgl32.Translate3D(m.Position[0], m.Position[1], m.Position[2])
	result = result.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(m.Rotation[0])))
	result = result.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(m.Rotation[1])))
	result = result.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(m.Rotation[2])))
	return result.Mul4(mgl32.Scale3D(m.Scale[0], m.Scale[1], m.Scale[2]))
}

// Bounds returns the union of mesh bounds in model space.
func (m *Model) Bounds() Bounds {
	b := EmptyBounds()
	for _, mesh := range m.Meshes {
		b.Union(mesh.Bounds)
	}
	return b
}

// WorldBounds transforms the model-space box corners by Matrix and returns
// the enclosing axis-aligned box.
func (m *Model) WorldBounds() Bounds {
	local := m.Bounds()
	if local.IsEmpty() {
		return local
	}
	mat := m.Matrix()
	out := EmptyBounds()
	for i := 0; i < 8; i++ {
		corner := mgl32.Vec4{local.Min[0], local.Min[1], local.Min[2], 1}
		if i&1 != 0 {
			corner[0] = local.Max[0]
		}
		if i&2 != 0 {
			corner[1] = local.Max[1]
		}
		if i&4 != 0 {
			corner[2] = local.Max[2]
		}
		p := mat.Mul4x1(corner)
		out.Extend([3]float32{p[0], p[1], p[2]})
	}
	return out
}

// Stats returns vertex, triangle, and texture reference counts.
func (m *Model) Stats() (vertices, triangles, textures int) {
	for _, mesh := range m.Meshes {
		vertices += len(mesh.Vertices)
		triangles += mesh.TriangleCount()
		textures += len(mesh.Textures)
	}
	return vertices, triangles, textures
}
