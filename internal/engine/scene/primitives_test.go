package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertOutwardWinding checks that every triangle's geometric normal agrees
// with its stored vertex normal.
func assertOutwardWinding(t *testing.T, md *MeshData) {
	t.Helper()
	for i := 0; i+2 < len(md.Indices); i += 3 {
		a := mgl32.Vec3(md.Vertices[md.Indices[i]].Position)
		b := mgl32.Vec3(md.Vertices[md.Indices[i+1]].Position)
		c := mgl32.Vec3(md.Vertices[md.Indices[i+2]].Position)
		n := mgl32.Vec3(md.Vertices[md.Indices[i]].Normal)
		face := b.Sub(a).Cross(c.Sub(a))
		assert.Greater(t, face.Dot(n), float32(0), "triangle %d", i/3)
	}
}

func TestGeneratePlane(t *testing.T) {
	md := GeneratePlane(4, 2, mgl32.Vec3{1, -1, 0})
	require.NoError(t, md.Validate())
	assert.Len(t, md.Vertices, 4)
	assert.Equal(t, 2, md.TriangleCount())
	assert.Equal(t, [3]float32{-1, -1, -1}, md.Bounds.Min)
	assert.Equal(t, [3]float32{3, -1, 1}, md.Bounds.Max)
	assertOutwardWinding(t, md)
}

func TestGenerateCube(t *testing.T) {
	md := GenerateCube(mgl32.Vec3{-1, 0, -2}, mgl32.Vec3{1, 2, 2})
	require.NoError(t, md.Validate())
	assert.Len(t, md.Vertices, 24)
	assert.Len(t, md.Indices, 36)
	assert.Equal(t, [3]float32{-1, 0, -2}, md.Bounds.Min)
	assert.Equal(t, [3]float32{1, 2, 2}, md.Bounds.Max)
	assertOutwardWinding(t, md)

	for _, v := range md.Vertices {
		n := mgl32.Vec3(v.Normal)
		assert.InDelta(t, 1, n.Len(), 1e-6)
	}
}
