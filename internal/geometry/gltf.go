package geometry

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF reads every triangle primitive of the first mesh in a .gltf or
// .glb file and merges them. Missing normals default to +y and missing
// indices to sequential order. Layout: position(3), normal(3).
func LoadGLTF(path string) (Data, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return Data{}, fmt.Errorf("gltf open %q: %w", path, err)
	}
	if len(doc.Meshes) == 0 {
		return Data{}, fmt.Errorf("gltf %q: no meshes", path)
	}

	out := Data{Components: []int{3, 3}}
	for i, prim := range doc.Meshes[0].Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		d, err := gltfPrimitive(doc, prim)
		if err != nil {
			return Data{}, fmt.Errorf("gltf %q primitive %d: %w", path, i, err)
		}
		out.Append(d)
	}
	if out.VertexCount() == 0 {
		return Data{}, fmt.Errorf("gltf %q: no triangle primitives", path)
	}
	return out, nil
}

func gltfPrimitive(doc *gltf.Document, prim *gltf.Primitive) (Data, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return Data{}, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return Data{}, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
		if err != nil {
			return Data{}, fmt.Errorf("normals: %w", err)
		}
	}

	d := Data{
		Vertices:   make([]float32, 0, len(positions)*6),
		Components: []int{3, 3},
	}
	for i, p := range positions {
		n := [3]float32{0, 1, 0}
		if i < len(normals) {
			n = normals[i]
		}
		d.Vertices = append(d.Vertices, p[0], p[1], p[2], n[0], n[1], n[2])
	}

	if prim.Indices != nil {
		d.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return Data{}, fmt.Errorf("indices: %w", err)
		}
	} else {
		d.Indices = make([]uint32, len(positions))
		for i := range d.Indices {
			d.Indices[i] = uint32(i)
		}
	}
	return d, nil
}
