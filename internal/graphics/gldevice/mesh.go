package gldevice

import (
	"errors"

	"gldemos/internal/geometry"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// DrawMode selects the primitive type for a draw call.
type DrawMode uint32

const (
	Triangles DrawMode = gl.TRIANGLES
	Lines     DrawMode = gl.LINES
	LineStrip DrawMode = gl.LINE_STRIP
	Points    DrawMode = gl.POINTS
)

// Mesh owns a vertex array object and, unless it shares them, the vertex
// and index buffers behind it. Delete releases exactly what it owns.
type Mesh struct {
	vao uint32
	vbo uint32
	ebo uint32

	stride      int
	vertexCount int32
	indexCount  int32
	ownsBuffers bool
}

// NewMesh uploads d to the GPU. Attribute i of d is bound to location i.
func NewMesh(d geometry.Data, dynamic bool) (*Mesh, error) {
	if d.VertexCount() == 0 {
		return nil, errors.New("mesh has no vertices")
	}

	usage := uint32(gl.STATIC_DRAW)
	if dynamic {
		usage = gl.DYNAMIC_DRAW
	}

	m := &Mesh{
		stride:      d.Stride(),
		vertexCount: int32(d.VertexCount()),
		indexCount:  int32(len(d.Indices)),
		ownsBuffers: true,
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(d.Vertices)*4, gl.Ptr(d.Vertices), usage)

	if d.Indexed() {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(d.Indices)*4, gl.Ptr(d.Indices), gl.STATIC_DRAW)
	}

	setAttributes(d.Components)

	// unbind to reduce accidental state changes
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if CheckError("NewMesh") {
		m.Delete()
		return nil, errors.New("mesh upload failed")
	}
	return m, nil
}

// Share creates a second vertex array over the same buffers, interpreting
// the vertices with components. The shared mesh must be deleted before or
// together with its owner; it never frees the buffers.
func (m *Mesh) Share(components []int) *Mesh {
	s := &Mesh{
		stride:      geometry.Data{Components: components}.Stride(),
		vbo:         m.vbo,
		ebo:         m.ebo,
		vertexCount: m.vertexCount,
		indexCount:  m.indexCount,
	}
	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	if s.ebo != 0 {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, s.ebo)
	}
	setAttributes(components)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return s
}

// Update replaces the vertex data of a non-indexed mesh. The buffer is
// orphaned first so the driver need not wait on draws still using it.
func (m *Mesh) Update(vertices []float32) {
	if m.vbo == 0 || m.stride == 0 {
		return
	}
	size := len(vertices) * 4
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	if size > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(vertices))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	m.vertexCount = int32(len(vertices) / m.stride)
}

// Draw binds the vertex array and issues one draw call for every vertex
// (or index).
func (m *Mesh) Draw(mode DrawMode) {
	if m.vao == 0 || m.vertexCount == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	if m.indexCount > 0 {
		gl.DrawElementsWithOffset(uint32(mode), m.indexCount, gl.UNSIGNED_INT, 0)
	} else {
		gl.DrawArrays(uint32(mode), 0, m.vertexCount)
	}
}

// Delete releases the GL objects this mesh owns. Safe to call twice.
func (m *Mesh) Delete() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if !m.ownsBuffers {
		return
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
}

func setAttributes(components []int) {
	stride := 0
	for _, c := range components {
		stride += c
	}
	offset := 0
	for i, c := range components {
		gl.EnableVertexAttribArray(uint32(i))
		gl.VertexAttribPointerWithOffset(uint32(i), int32(c), gl.FLOAT, false, int32(stride*4), uintptr(offset*4))
		offset += c
	}
}

// SetWireframe switches polygon rasterisation between lines and fill.
func SetWireframe(on bool) {
	if on {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}
