package geometry

import "github.com/go-gl/mathgl/mgl32"

// cubeIndices wires the eight corners produced by IndexedCube: corners 0-3
// are the near face (z), 4-7 the far face (z+side), each counter-clockwise
// from bottom-left.
var cubeIndices = []uint32{
	0, 1, 2, 0, 3, 2, // front
	4, 5, 6, 4, 7, 6, // back
	3, 2, 6, 3, 7, 6, // top
	0, 1, 5, 0, 4, 5, // bottom
	4, 0, 3, 4, 7, 3, // left
	1, 2, 6, 1, 5, 6, // right
}

// IndexedCube builds an eight-vertex cube with its bottom-left-near corner
// at origin. Layout: position(3).
func IndexedCube(origin mgl32.Vec3, side float32) Data {
	d := Data{
		Vertices:   make([]float32, 0, 8*3),
		Indices:    append([]uint32(nil), cubeIndices...),
		Components: []int{3},
	}
	for face := range 2 {
		z := origin.Z() + float32(face)*side
		d.Vertices = append(d.Vertices,
			origin.X(), origin.Y(), z,
			origin.X()+side, origin.Y(), z,
			origin.X()+side, origin.Y()+side, z,
			origin.X(), origin.Y()+side, z,
		)
	}
	return d
}

var cubeFaces = []struct {
	normal mgl32.Vec3
	u, v   mgl32.Vec3
}{
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
}

// Cube builds a cube centred on center with per-face normals, 4 vertices
// and 2 counter-clockwise triangles per face. Layout: position(3), normal(3).
func Cube(center mgl32.Vec3, side float32) Data {
	h := side / 2
	d := Data{
		Vertices:   make([]float32, 0, 24*6),
		Indices:    make([]uint32, 0, 36),
		Components: []int{3, 3},
	}
	for i, f := range cubeFaces {
		c := center.Add(f.normal.Mul(h))
		corners := [4]mgl32.Vec3{
			c.Sub(f.u.Mul(h)).Sub(f.v.Mul(h)),
			c.Add(f.u.Mul(h)).Sub(f.v.Mul(h)),
			c.Add(f.u.Mul(h)).Add(f.v.Mul(h)),
			c.Sub(f.u.Mul(h)).Add(f.v.Mul(h)),
		}
		for _, p := range corners {
			d.Vertices = append(d.Vertices, p[0], p[1], p[2], f.normal[0], f.normal[1], f.normal[2])
		}
		base := uint32(i * 4)
		d.Indices = append(d.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return d
}
