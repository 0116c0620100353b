// Package geometry generates vertex and index data on the CPU. Nothing here
// touches the GPU.
package geometry

// Data is an interleaved float32 vertex stream with optional indices.
// Components lists the float count of each attribute, in attribute order;
// attribute i is bound to shader location i.
type Data struct {
	Vertices   []float32
	Indices    []uint32
	Components []int
}

// Stride is the number of floats per vertex.
func (d Data) Stride() int {
	n := 0
	for _, c := range d.Components {
		n += c
	}
	return n
}

func (d Data) VertexCount() int {
	s := d.Stride()
	if s == 0 {
		return 0
	}
	return len(d.Vertices) / s
}

// Indexed reports whether the data should be drawn with an element buffer.
func (d Data) Indexed() bool { return len(d.Indices) > 0 }

// Append adds other to d, rebasing its indices past d's vertices. Both must
// share the same attribute layout.
func (d *Data) Append(other Data) {
	if d.Components == nil {
		d.Components = append([]int(nil), other.Components...)
	}
	base := uint32(d.VertexCount())
	d.Vertices = append(d.Vertices, other.Vertices...)
	for _, i := range other.Indices {
		d.Indices = append(d.Indices, i+base)
	}
}
