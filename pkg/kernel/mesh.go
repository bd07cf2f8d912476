package kernel

// Mesh is a triangle mesh suitable for export or rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Name     string    `json:"name"`     // which assembly node this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Append merges another mesh into m, offsetting indices. The other
// mesh is not modified.
func (m *Mesh) Append(o *Mesh) {
	base := uint32(m.VertexCount())
	m.Vertices = append(m.Vertices, o.Vertices...)
	m.Normals = append(m.Normals, o.Normals...)
	for _, idx := range o.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
}

// Bounds returns the axis-aligned bounding box of the mesh vertices.
// An empty mesh yields a zero box.
func (m *Mesh) Bounds() (min, max [3]float64) {
	if m.IsEmpty() {
		return min, max
	}
	for k := 0; k < 3; k++ {
		min[k] = float64(m.Vertices[k])
		max[k] = float64(m.Vertices[k])
	}
	for i := 1; i < m.VertexCount(); i++ {
		for k := 0; k < 3; k++ {
			v := float64(m.Vertices[i*3+k])
			if v < min[k] {
				min[k] = v
			}
			if v > max[k] {
				max[k] = v
			}
		}
	}
	return min, max
}
