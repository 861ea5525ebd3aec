package scene

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadModelNeverFails(t *testing.T) {
	im, logs := newObservedImporter(nil, nil)
	m := LoadModel(im, filepath.Join(t.TempDir(), "missing.gltf"))
	require.NotNil(t, m)
	assert.Empty(t, m.Meshes)
	assert.True(t, m.Bounds().IsEmpty())
	assert.Equal(t, 1, logs.FilterMessage("scene import failed").Len())
}

func TestLoadModelImportsMeshes(t *testing.T) {
	im, _ := newObservedImporter(&docDecoder{doc: quadDoc()}, nil)
	m := LoadModel(im, "quad.gltf")
	assert.Len(t, m.Meshes, 1)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, m.Scale)
	assert.True(t, m.Visible)

	v, tris, tex := m.Stats()
	assert.Equal(t, 4, v)
	assert.Equal(t, 2, tris)
	assert.Zero(t, tex)
}

func TestModelMatrixIdentity(t *testing.T) {
	m := NewModel("", nil)
	assert.True(t, m.Matrix().ApproxEqual(mgl32.Ident4()))
}

func TestModelMatrixOrder(t *testing.T) {
	m := NewModel("", nil)
	m.SetTransform(mgl32.Vec3{5, 0, 0}, mgl32.Vec3{0, 90, 0}, mgl32.Vec3{2, 2, 2})

	// Scale, then rotate +X onto -Z, then translate.
	p := m.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 5, p[0], 1e-5)
	assert.InDelta(t, 0, p[1], 1e-5)
	assert.InDelta(t, -2, p[2], 1e-5)
}

func TestModelWorldBounds(t *testing.T) {
	m := NewModel("", []*MeshData{GenerateCube(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})})
	m.SetTransform(mgl32.Vec3{0, 3, 0}, mgl32.Vec3{}, mgl32.Vec3{2, 1, 1})

	b := m.WorldBounds()
	assert.InDelta(t, -2, b.Min[0], 1e-5)
	assert.InDelta(t, 2, b.Max[0], 1e-5)
	assert.InDelta(t, 2, b.Min[1], 1e-5)
	assert.InDelta(t, 4, b.Max[1], 1e-5)
}

func TestBoundsUnionIgnoresEmpty(t *testing.T) {
	b := EmptyBounds()
	b.Union(EmptyBounds())
	assert.True(t, b.IsEmpty())

	b.Extend([3]float32{1, 2, 3})
	b.Extend([3]float32{-1, 0, 5})
	assert.Equal(t, [3]float32{-1, 0, 3}, b.Min)
	assert.Equal(t, [3]float32{1, 2, 5}, b.Max)
	assert.Equal(t, [3]float32{0, 1, 4}, b.Center())
}

func TestMeshInterleaved(t *testing.T) {
	md := &MeshData{Vertices: []Vertex{{
		Position: [3]float32{1, 2, 3},
		Normal:   [3]float32{0, 1, 0},
		TexCoord: [2]float32{0.5, 0.25},
	}}}
	assert.Equal(t, []float32{1, 2, 3, 0, 1, 0, 0.5, 0.25}, md.Interleaved())
	assert.Len(t, md.Interleaved(), VertexStride)
}

func TestMeshValidate(t *testing.T) {
	md := &MeshData{Vertices: make([]Vertex, 3), Indices: []uint32{0, 1, 2}}
	assert.NoError(t, md.Validate())

	md.Indices = []uint32{0, 1}
	assert.Error(t, md.Validate())

	md.Indices = []uint32{0, 1, 3}
	assert.Error(t, md.Validate())
}
