// Package kernel defines the abstract geometry kernel interface.
// Implementations (sdfx) provide solid modeling, boolean operations and
// tessellation behind this interface. The kernel abstraction allows
// swapping backends without changing the rest of the system; the core
// never touches a backend type directly.
package kernel

import "github.com/comrob/build123things/pkg/geom"

// DefaultMeshCells is the marching cubes tessellation resolution used
// when a caller passes a non-positive cell count.
const DefaultMeshCells = 200

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives. All primitives are centered at the local origin.
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64) Solid
	Sphere(radius float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transform applies a rigid transform to a solid.
	Transform(s Solid, t geom.Transform) Solid

	// SignedDistanceAt evaluates the signed distance from p to the
	// solid's surface; negative means inside. Used by the voxel-based
	// mass property estimator.
	SignedDistanceAt(s Solid, p geom.Vec3) float64

	// ToMesh tessellates a solid into a triangle mesh. cells controls
	// the marching cubes resolution; non-positive means DefaultMeshCells.
	ToMesh(s Solid, cells int) (*Mesh, error)
}
