package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestVec3(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	if sum := a.Add(b); sum != (Vec3{5, 7, 9}) {
		t.Errorf("Add = %v, want (5, 7, 9)", sum)
	}
	if d := b.Sub(a); d != (Vec3{3, 3, 3}) {
		t.Errorf("Sub = %v, want (3, 3, 3)", d)
	}
	if s := a.Scale(2); s != (Vec3{2, 4, 6}) {
		t.Errorf("Scale = %v, want (2, 4, 6)", s)
	}
	if dot := a.Dot(b); dot != 32 {
		t.Errorf("Dot = %v, want 32", dot)
	}
	if c := (Vec3{1, 0, 0}).Cross(Vec3{0, 1, 0}); c != (Vec3{0, 0, 1}) {
		t.Errorf("Cross = %v, want (0, 0, 1)", c)
	}
	if n := (Vec3{3, 4, 0}).Norm(); math.Abs(n-5) > eps {
		t.Errorf("Norm = %v, want 5", n)
	}
}

func TestIdentity(t *testing.T) {
	id := Identity()
	p := Vec3{1, 2, 3}
	if got := id.Apply(p); got != p {
		t.Errorf("identity.Apply = %v, want %v", got, p)
	}
	if !id.IsIdentity(eps) {
		t.Error("Identity() should report IsIdentity")
	}
	if Translate(Vec3{0, 0, 1}).IsIdentity(eps) {
		t.Error("translation should not report IsIdentity")
	}
}

func TestRotateZ(t *testing.T) {
	r := RotateZ(90)
	got := r.Apply(Vec3{1, 0, 0})
	want := Vec3{0, 1, 0}
	if got.Sub(want).Norm() > eps {
		t.Errorf("RotateZ(90).Apply(1,0,0) = %v, want %v", got, want)
	}
}

func TestComposeOrder(t *testing.T) {
	// Rotate first, then translate: p' = T(Rz(90) p).
	tr := Translate(Vec3{10, 0, 0}).Compose(RotateZ(90))
	got := tr.Apply(Vec3{1, 0, 0})
	want := Vec3{10, 1, 0}
	if got.Sub(want).Norm() > eps {
		t.Errorf("composed transform = %v, want %v", got, want)
	}
}

func TestComposeAssociative(t *testing.T) {
	a := Euler(Vec3{1, 2, 3}, 30, 0, 0)
	b := Euler(Vec3{-4, 0, 2}, 0, 45, 0)
	c := Euler(Vec3{0, 7, 0}, 0, 0, 60)

	left := a.Compose(b).Compose(c)
	right := a.Compose(b.Compose(c))
	if !left.ApproxEqual(right, 1e-12) {
		t.Error("composition should be associative")
	}
}

func TestInverse(t *testing.T) {
	tr := Euler(Vec3{5, -3, 2}, 25, -40, 110)
	round := tr.Compose(tr.Inverse())
	if !round.IsIdentity(1e-12) {
		t.Errorf("t * t^-1 = %v, want identity", round)
	}

	p := Vec3{1, 1, 1}
	back := tr.Inverse().Apply(tr.Apply(p))
	if back.Sub(p).Norm() > 1e-12 {
		t.Errorf("inverse round trip moved point: %v", back)
	}
}

func TestEulerZYXRoundTrip(t *testing.T) {
	cases := [][3]float64{
		{0, 0, 0},
		{180, 0, 90},
		{30, -45, 60},
		{-120, 10, 170},
		{90, 0, 0},
	}
	for _, c := range cases {
		tr := Euler(Vec3{}, c[0], c[1], c[2])
		rx, ry, rz := tr.EulerZYX()
		rebuilt := Euler(Vec3{}, rx, ry, rz)
		if !tr.ApproxEqual(rebuilt, 1e-9) {
			t.Errorf("Euler round trip failed for %v: got (%g, %g, %g)", c, rx, ry, rz)
		}
	}
}

func TestEulerZYXGimbalLock(t *testing.T) {
	tr := Euler(Vec3{}, 0, 90, 0)
	rx, ry, rz := tr.EulerZYX()
	rebuilt := Euler(Vec3{}, rx, ry, rz)
	if !tr.ApproxEqual(rebuilt, 1e-9) {
		t.Errorf("gimbal lock round trip failed: got (%g, %g, %g)", rx, ry, rz)
	}
}

func TestApplyDir(t *testing.T) {
	tr := Translate(Vec3{100, 100, 100}).Compose(RotateZ(90))
	got := tr.ApplyDir(Vec3{1, 0, 0})
	want := Vec3{0, 1, 0}
	if got.Sub(want).Norm() > eps {
		t.Errorf("ApplyDir should ignore translation: got %v, want %v", got, want)
	}
}
