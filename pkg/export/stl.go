package export

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/comrob/build123things/pkg/kernel"
)

// WriteSTL writes a mesh as binary STL. Facet normals are recomputed
// from the triangle winding; vertex normals in the mesh are ignored
// because STL carries per facet normals only.
func WriteSTL(w io.Writer, m *kernel.Mesh) error {
	if m == nil || m.IsEmpty() {
		return exportErr("stl", "empty mesh", nil)
	}

	var header [80]byte
	copy(header[:], m.Name)
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return exportErr("stl", "writing header", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(m.TriangleCount())); err != nil {
		return exportErr("stl", "writing facet count", err)
	}

	vertex := func(i uint32) [3]float32 {
		return [3]float32{m.Vertices[3*i], m.Vertices[3*i+1], m.Vertices[3*i+2]}
	}
	for t := 0; t < m.TriangleCount(); t++ {
		a := vertex(m.Indices[3*t])
		b := vertex(m.Indices[3*t+1])
		c := vertex(m.Indices[3*t+2])

		var facet struct {
			Normal  [3]float32
			A, B, C [3]float32
			Attr    uint16
		}
		facet.Normal = facetNormal(a, b, c)
		facet.A, facet.B, facet.C = a, b, c
		if err := binary.Write(w, binary.LittleEndian, facet); err != nil {
			return exportErr("stl", "writing facet", err)
		}
	}
	return nil
}

func facetNormal(a, b, c [3]float32) [3]float32 {
	u := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	v := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
	n := [3]float32{
		u[1]*v[2] - u[2]*v[1],
		u[2]*v[0] - u[0]*v[2],
		u[0]*v[1] - u[1]*v[0],
	}
	len2 := n[0]*n[0] + n[1]*n[1] + n[2]*n[2]
	if len2 == 0 {
		return [3]float32{}
	}
	inv := 1 / float32(math.Sqrt(float64(len2)))
	return [3]float32{n[0] * inv, n[1] * inv, n[2] * inv}
}
