// Package debug builds line geometry for debug overlays and captures screenshots.
package debug

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/scenepick/internal/engine/picking"
	"github.com/Faultbox/scenepick/internal/engine/scene"
)

// LineVertexStride is the float count per vertex: position(3) + color(3).
const LineVertexStride = 6

// BoundsVertexCount is the number of vertices in a box wireframe (12 edges × 2).
const BoundsVertexCount = 24

// Overlay colors.
var (
	RayColor    = mgl32.Vec3{1, 0.2, 0.2}
	BoundsColor = mgl32.Vec3{1, 0.85, 0.2}
	GridColor   = mgl32.Vec3{0.35, 0.35, 0.35}
)

// LineVertex is one endpoint of a debug line.
type LineVertex struct {
	Position [3]float32
	Color    [3]float32
}

// Lines accumulates line-list geometry for a frame.
type Lines struct {
	Vertices []LineVertex
}

// Reset drops all lines, keeping capacity.
func (l *Lines) Reset() {
	l.Vertices = l.Vertices[:0]
}

// Len returns the vertex count.
func (l *Lines) Len() int {
	return len(l.Vertices)
}

// Add appends the segment a-b.
func (l *Lines) Add(a, b, color mgl32.Vec3) {
	l.Vertices = append(l.Vertices,
		LineVertex{Position: a, Color: color},
		LineVertex{Position: b, Color: color},
	)
}

// AddRay appends the ray's debug segment.
func (l *Lines) AddRay(r picking.Ray, color mgl32.Vec3) {
	start, end := r.DebugSegment()
	l.Add(start, end, color)
}

// AddBounds appends the 12 edges of b. Empty bounds add nothing.
func (l *Lines) AddBounds(b scene.Bounds, color mgl32.Vec3) {
	if b.IsEmpty() {
		return
	}
	lo, hi := b.Min, b.Max
	corner := func(i int) mgl32.Vec3 {
		c := mgl32.Vec3(lo)
		if i&1 != 0 {
			c[0] = hi[0]
		}
		if i&2 != 0 {
			c[1] = hi[1]
		}
		if i&4 != 0 {
			c[2] = hi[2]
		}
		return c
	}
	// Corners differing in exactly one bit share an edge.
	for i := 0; i < 8; i++ {
		for bit := 1; bit < 8; bit <<= 1 {
			if i&bit == 0 {
				l.Add(corner(i), corner(i|bit), color)
			}
		}
	}
}

// AddGrid appends a square grid on the XZ plane at height y, spanning
// ±halfExtent with lines every step units.
func (l *Lines) AddGrid(y, halfExtent, step float32, color mgl32.Vec3) {
	if step <= 0 || halfExtent <= 0 {
		return
	}
	n := int(halfExtent / step)
	for i := -n; i <= n; i++ {
		o := float32(i) * step
		l.Add(mgl32.Vec3{o, y, -halfExtent}, mgl32.Vec3{o, y, halfExtent}, color)
		l.Add(mgl32.Vec3{-halfExtent, y, o}, mgl32.Vec3{halfExtent, y, o}, color)
	}
}

// Floats returns the interleaved vertex buffer.
func (l *Lines) Floats() []float32 {
	out := make([]float32, 0, len(l.Vertices)*LineVertexStride)
	for _, v := range l.Vertices {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.Color[0], v.Color[1], v.Color[2])
	}
	return out
}
