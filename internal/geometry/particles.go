package geometry

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ParticleLine lays n points along the x axis over one full period [0, 2π),
// coloured by a hue sweep across the line. Layout: position(3), colour(3).
// The vertex shader displaces them.
func ParticleLine(n int) Data {
	d := Data{
		Vertices:   make([]float32, 0, n*6),
		Components: []int{3, 3},
	}
	for i := range n {
		t := float64(i) / float64(n)
		c := colorful.Hsv(t*360, 1, 1)
		d.Vertices = append(d.Vertices,
			float32(t*2*math.Pi), 0, 0,
			float32(c.R), float32(c.G), float32(c.B),
		)
	}
	return d
}
