package scene

import "github.com/go-gl/mathgl/mgl32"

// GeneratePlane returns a horizontal quad of the given size centred on center,
// facing +Y.
func GeneratePlane(width, depth float32, center mgl32.Vec3) *MeshData {
	hw, hd := width/2, depth/2
	up := [3]float32{0, 1, 0}
	corner := func(x, z, u, v float32) Vertex {
		return Vertex{
			Position: [3]float32{center[0] + x, center[1], center[2] + z},
			Normal:   up,
			TexCoord: [2]float32{u, v},
		}
	}
	md := &MeshData{
		Name: "plane",
		Vertices: []Vertex{
			corner(-hw, -hd, 0, 0),
			corner(hw, -hd, 1, 0),
			corner(hw, hd, 1, 1),
			corner(-hw, hd, 0, 1),
		},
		Indices: []uint32{0, 2, 1, 0, 3, 2},
	}
	md.Bounds = ComputeBounds(md.Vertices)
	return md
}

type cubeFace struct {
	normal, u, v mgl32.Vec3
}

// u x v == normal for every face, so corners listed (-u-v, +u-v, +u+v, -u+v)
// wind counter-clockwise seen from outside.
var cubeFaces = [6]cubeFace{
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
}

// GenerateCube returns an axis-aligned box spanning min..max with per-face
// normals and texture coordinates.
func GenerateCube(min, max mgl32.Vec3) *MeshData {
	center := min.Add(max).Mul(0.5)
	half := max.Sub(min).Mul(0.5)

	md := &MeshData{Name: "cube"}
	signs := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for _, f := range cubeFaces {
		base := uint32(len(md.Vertices))
		for i, s := range signs {
			dir := f.normal.Add(f.u.Mul(s[0])).Add(f.v.Mul(s[1]))
			p := center.Add(mgl32.Vec3{dir[0] * half[0], dir[1] * half[1], dir[2] * half[2]})
			md.Vertices = append(md.Vertices, Vertex{
				Position: p,
				Normal:   f.normal,
				TexCoord: uvs[i],
			})
		}
		md.Indices = append(md.Indices, base, base+1, base+2, base+2, base+3, base)
	}
	md.Bounds = ComputeBounds(md.Vertices)
	return md
}
