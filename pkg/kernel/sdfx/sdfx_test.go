package sdfx

import (
	"math"
	"testing"

	"github.com/comrob/build123things/pkg/geom"
)

func TestBoxDistanceAndBounds(t *testing.T) {
	k := New()
	box := k.Box(100, 50, 25)

	min, max := box.BoundingBox()
	if min[0] != -50 || max[0] != 50 || min[2] != -12.5 || max[2] != 12.5 {
		t.Fatalf("bounds = %v %v", min, max)
	}

	if d := k.SignedDistanceAt(box, geom.Vec3{}); d >= 0 {
		t.Fatalf("distance at center = %v, want negative", d)
	}
	if d := k.SignedDistanceAt(box, geom.Vec3{X: 60}); math.Abs(d-10) > 1e-9 {
		t.Fatalf("distance outside = %v, want 10", d)
	}
}

func TestCylinderDistance(t *testing.T) {
	k := New()
	cyl := k.Cylinder(50, 10)

	if d := k.SignedDistanceAt(cyl, geom.Vec3{}); d >= 0 {
		t.Fatalf("distance at center = %v, want negative", d)
	}
	if d := k.SignedDistanceAt(cyl, geom.Vec3{X: 15}); d <= 0 {
		t.Fatalf("distance outside radius = %v, want positive", d)
	}
	if d := k.SignedDistanceAt(cyl, geom.Vec3{Z: 30}); d <= 0 {
		t.Fatalf("distance past the cap = %v, want positive", d)
	}
}

func TestBooleans(t *testing.T) {
	k := New()
	box := k.Box(100, 100, 100)
	drill := k.Cylinder(120, 20)

	diff := k.Difference(box, drill)
	if d := k.SignedDistanceAt(diff, geom.Vec3{}); d <= 0 {
		t.Fatalf("drilled center should be outside, got %v", d)
	}
	if d := k.SignedDistanceAt(diff, geom.Vec3{X: 40}); d >= 0 {
		t.Fatalf("material next to the bore missing, got %v", d)
	}

	union := k.Union(box, k.Sphere(80))
	if d := k.SignedDistanceAt(union, geom.Vec3{X: 70}); d >= 0 {
		t.Fatalf("sphere part of union missing, got %v", d)
	}

	inter := k.Intersection(box, k.Sphere(80))
	if d := k.SignedDistanceAt(inter, geom.Vec3{X: 70}); d <= 0 {
		t.Fatalf("intersection too large, got %v", d)
	}
}

func TestTransformMovesSolid(t *testing.T) {
	k := New()
	box := k.Box(10, 10, 10)

	moved := k.Transform(box, geom.Translate(geom.Vec3{X: 100}))
	if d := k.SignedDistanceAt(moved, geom.Vec3{X: 100}); d >= 0 {
		t.Fatalf("moved center not inside, got %v", d)
	}
	if d := k.SignedDistanceAt(moved, geom.Vec3{}); d <= 0 {
		t.Fatalf("origin still inside after move, got %v", d)
	}

	rotated := k.Transform(k.Box(20, 2, 2), geom.Euler(geom.Vec3{}, 0, 0, 90))
	// the long axis now lies along y
	if d := k.SignedDistanceAt(rotated, geom.Vec3{Y: 9}); d >= 0 {
		t.Fatalf("rotated bar missing along y, got %v", d)
	}
	if d := k.SignedDistanceAt(rotated, geom.Vec3{X: 9}); d <= 0 {
		t.Fatalf("rotated bar still along x, got %v", d)
	}
}

func TestToMesh(t *testing.T) {
	k := New()
	box := k.Box(100, 50, 25)

	mesh, err := k.ToMesh(box, 64)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != mesh.TriangleCount()*3 {
		t.Fatalf("indices length %d inconsistent", len(mesh.Indices))
	}

	// marching cubes output stays near the solid
	min, max := mesh.Bounds()
	if min[0] < -55 || max[0] > 55 || min[2] < -15 || max[2] > 15 {
		t.Fatalf("mesh bounds = %v %v", min, max)
	}
}
