// Package kerneltest provides an analytic kernel backend for tests.
// Primitives and booleans evaluate closed form signed distance
// functions, so geometric assertions need no tessellation backend.
// Meshing is exact for cuboids and unsupported elsewhere.
package kerneltest

import (
	"fmt"
	"math"

	"github.com/comrob/build123things/pkg/geom"
	"github.com/comrob/build123things/pkg/kernel"
)

// Kernel is the analytic backend. The zero value is ready to use.
type Kernel struct{}

var _ kernel.Kernel = Kernel{}

type solid struct {
	eval     func(p geom.Vec3) float64
	min, max [3]float64

	// set when the solid is an exact cuboid, kept through transforms
	// so meshing can emit exact triangles
	half *geom.Vec3
	pose geom.Transform
}

func (s *solid) BoundingBox() (min, max [3]float64) { return s.min, s.max }

func (Kernel) Box(x, y, z float64) kernel.Solid {
	h := geom.Vec3{X: x / 2, Y: y / 2, Z: z / 2}
	return &solid{
		eval: func(p geom.Vec3) float64 { return boxDist(p, h) },
		min:  [3]float64{-h.X, -h.Y, -h.Z},
		max:  [3]float64{h.X, h.Y, h.Z},
		half: &h,
		pose: geom.Identity(),
	}
}

func (Kernel) Cylinder(height, radius float64) kernel.Solid {
	hz := height / 2
	return &solid{
		eval: func(p geom.Vec3) float64 {
			dr := math.Hypot(p.X, p.Y) - radius
			dz := math.Abs(p.Z) - hz
			if dr > 0 && dz > 0 {
				return math.Hypot(dr, dz)
			}
			return math.Max(dr, dz)
		},
		min: [3]float64{-radius, -radius, -hz},
		max: [3]float64{radius, radius, hz},
	}
}

func (Kernel) Sphere(radius float64) kernel.Solid {
	return &solid{
		eval: func(p geom.Vec3) float64 { return p.Norm() - radius },
		min:  [3]float64{-radius, -radius, -radius},
		max:  [3]float64{radius, radius, radius},
	}
}

func (Kernel) Union(a, b kernel.Solid) kernel.Solid {
	sa, sb := a.(*solid), b.(*solid)
	out := &solid{
		eval: func(p geom.Vec3) float64 { return math.Min(sa.eval(p), sb.eval(p)) },
	}
	for i := 0; i < 3; i++ {
		out.min[i] = math.Min(sa.min[i], sb.min[i])
		out.max[i] = math.Max(sa.max[i], sb.max[i])
	}
	return out
}

func (Kernel) Difference(a, b kernel.Solid) kernel.Solid {
	sa, sb := a.(*solid), b.(*solid)
	return &solid{
		eval: func(p geom.Vec3) float64 { return math.Max(sa.eval(p), -sb.eval(p)) },
		min:  sa.min,
		max:  sa.max,
	}
}

func (Kernel) Intersection(a, b kernel.Solid) kernel.Solid {
	sa, sb := a.(*solid), b.(*solid)
	out := &solid{
		eval: func(p geom.Vec3) float64 { return math.Max(sa.eval(p), sb.eval(p)) },
	}
	for i := 0; i < 3; i++ {
		out.min[i] = math.Max(sa.min[i], sb.min[i])
		out.max[i] = math.Min(sa.max[i], sb.max[i])
	}
	return out
}

func (Kernel) Transform(s kernel.Solid, t geom.Transform) kernel.Solid {
	in := s.(*solid)
	inv := t.Inverse()
	out := &solid{
		eval: func(p geom.Vec3) float64 { return in.eval(inv.Apply(p)) },
	}
	out.min, out.max = transformedBounds(in.min, in.max, t)
	if in.half != nil {
		out.half = in.half
		out.pose = t.Compose(in.pose)
	}
	return out
}

func (Kernel) SignedDistanceAt(s kernel.Solid, p geom.Vec3) float64 {
	return s.(*solid).eval(p)
}

// ToMesh triangulates exact cuboids. Cells is accepted for interface
// compatibility and ignored.
func (Kernel) ToMesh(s kernel.Solid, cells int) (*kernel.Mesh, error) {
	in := s.(*solid)
	if in.half == nil {
		return nil, fmt.Errorf("kerneltest: ToMesh supports cuboids only")
	}
	h := *in.half
	corners := make([]geom.Vec3, 8)
	for i := 0; i < 8; i++ {
		c := geom.Vec3{X: h.X, Y: h.Y, Z: h.Z}
		if i&1 != 0 {
			c.X = -c.X
		}
		if i&2 != 0 {
			c.Y = -c.Y
		}
		if i&4 != 0 {
			c.Z = -c.Z
		}
		corners[i] = in.pose.Apply(c)
	}

	m := &kernel.Mesh{}
	for _, c := range corners {
		m.Vertices = append(m.Vertices, float32(c.X), float32(c.Y), float32(c.Z))
		m.Normals = append(m.Normals, 0, 0, 1)
	}
	// two triangles per face, indexed into the corner table
	faces := [][4]uint32{
		{0, 2, 6, 4}, {1, 5, 7, 3}, // +x, -x
		{0, 4, 5, 1}, {2, 3, 7, 6}, // +y, -y
		{0, 1, 3, 2}, {4, 6, 7, 5}, // +z, -z
	}
	for _, f := range faces {
		m.Indices = append(m.Indices, f[0], f[1], f[2], f[0], f[2], f[3])
	}
	return m, nil
}

func boxDist(p, h geom.Vec3) float64 {
	q := geom.Vec3{
		X: math.Abs(p.X) - h.X,
		Y: math.Abs(p.Y) - h.Y,
		Z: math.Abs(p.Z) - h.Z,
	}
	outside := geom.Vec3{
		X: math.Max(q.X, 0),
		Y: math.Max(q.Y, 0),
		Z: math.Max(q.Z, 0),
	}.Norm()
	inside := math.Min(math.Max(q.X, math.Max(q.Y, q.Z)), 0)
	return outside + inside
}

func transformedBounds(min, max [3]float64, t geom.Transform) (omin, omax [3]float64) {
	first := true
	for i := 0; i < 8; i++ {
		c := geom.Vec3{X: min[0], Y: min[1], Z: min[2]}
		if i&1 != 0 {
			c.X = max[0]
		}
		if i&2 != 0 {
			c.Y = max[1]
		}
		if i&4 != 0 {
			c.Z = max[2]
		}
		w := t.Apply(c)
		if first {
			omin = [3]float64{w.X, w.Y, w.Z}
			omax = omin
			first = false
			continue
		}
		for j, v := range [3]float64{w.X, w.Y, w.Z} {
			omin[j] = math.Min(omin[j], v)
			omax[j] = math.Max(omax[j], v)
		}
	}
	return omin, omax
}
