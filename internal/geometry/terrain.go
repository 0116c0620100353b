package geometry

import "github.com/go-gl/mathgl/mgl32"

// Terrain triangulates a height field into a grid centred on the origin in
// the xz plane. Heights are multiplied by heightScale; cells are cellSize
// apart. Layout: position(3), normal(3).
func Terrain(h HeightField, cellSize, heightScale float32) Data {
	if h.Width < 2 || h.Depth < 2 {
		return Data{Components: []int{3, 3}}
	}

	d := Data{
		Vertices:   make([]float32, 0, h.Width*h.Depth*6),
		Indices:    make([]uint32, 0, (h.Width-1)*(h.Depth-1)*6),
		Components: []int{3, 3},
	}

	offX := float32(h.Width-1) * cellSize / 2
	offZ := float32(h.Depth-1) * cellSize / 2

	for z := range h.Depth {
		for x := range h.Width {
			px := float32(x)*cellSize - offX
			pz := float32(z)*cellSize - offZ
			py := h.At(x, z) * heightScale

			// central differences, one-sided at the border via At's clamping
			dx := (h.At(x+1, z) - h.At(x-1, z)) * heightScale
			dz := (h.At(x, z+1) - h.At(x, z-1)) * heightScale
			n := mgl32.Vec3{-dx, 2 * cellSize, -dz}.Normalize()

			d.Vertices = append(d.Vertices, px, py, pz, n[0], n[1], n[2])
		}
	}

	w := uint32(h.Width)
	for z := range uint32(h.Depth - 1) {
		for x := range uint32(h.Width - 1) {
			i := z*w + x
			// counter-clockwise seen from +y
			d.Indices = append(d.Indices,
				i, i+w, i+1,
				i+1, i+w, i+w+1,
			)
		}
	}
	return d
}
