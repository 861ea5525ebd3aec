// Package scene imports external scene files into flat, GPU-ready mesh records.
package scene

import (
	"fmt"

	"github.com/Faultbox/scenepick/internal/engine/texture"
)

// VertexStride is the number of float32 values per interleaved vertex:
// position(3) + normal(3) + texcoord(2).
const VertexStride = 8

// Vertex is one mesh vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// GPUHandles are filled in by the renderer when a mesh is uploaded.
type GPUHandles struct {
	VAO, VBO, EBO uint32
}

// Uploaded reports whether the renderer has created buffers for the mesh.
func (h GPUHandles) Uploaded() bool {
	return h.VAO != 0
}

// MeshData is a triangle-list mesh ready for upload. Textures reference handles
// owned by a texture.Cache; a texture with ID 0 failed to load and is skipped at bind time.
type MeshData struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Textures []texture.Texture
	Bounds   Bounds
	GPU      GPUHandles
}

// TriangleCount returns the number of triangles in the index buffer.
func (m *MeshData) TriangleCount() int {
	return len(m.Indices) / 3
}

// Validate checks the triangle-list invariants: index count divisible by 3
// and every index inside the vertex buffer.
func (m *MeshData) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(m.Indices))
	}
	n := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("index %d at position %d out of range (%d vertices)", idx, i, n)
		}
	}
	return nil
}

// Interleaved returns the vertex buffer as position/normal/texcoord floats.
func (m *MeshData) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)*VertexStride)
	for _, v := range m.Vertices {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.TexCoord[0], v.TexCoord[1],
		)
	}
	return out
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// EmptyBounds returns an inverted box that any point will extend.
func EmptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e30, 1e30, 1e30},
		Max: [3]float32{-1e30, -1e30, -1e30},
	}
}

// IsEmpty reports whether no point has been added.
func (b Bounds) IsEmpty() bool {
	return b.Min[0] > b.Max[0]
}

// Extend grows the box to include p.
func (b *Bounds) Extend(p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Union grows the box to include other.
func (b *Bounds) Union(other Bounds) {
	if other.IsEmpty() {
		return
	}
	b.Extend(other.Min)
	b.Extend(other.Max)
}

// Center returns the box midpoint.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// ComputeBounds returns the bounding box of the vertex positions.
func ComputeBounds(vertices []Vertex) Bounds {
	b := EmptyBounds()
	for i := range vertices {
		b.Extend(vertices[i].Position)
	}
	return b
}

// SceneNode mirrors one node of the decoded scene graph during import.
// Trees are discarded once flattened into MeshData.
type SceneNode struct {
	Name     string
	Meshes   []int
	Children []*SceneNode
}
