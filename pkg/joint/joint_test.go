package joint

import (
	"errors"
	"testing"

	"github.com/comrob/build123things/pkg/geom"
	"github.com/comrob/build123things/pkg/thing"
)

func TestRigidIsIdentity(t *testing.T) {
	tr, err := Rigid{}.Transform(nil)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if !tr.IsIdentity(1e-12) {
		t.Fatalf("rigid transform = %v", tr)
	}
}

func TestRevoluteRotatesAboutZ(t *testing.T) {
	j := &Revolute{}
	tr, err := j.Transform([]float64{90})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	got := tr.Apply(geom.Vec3{X: 1})
	want := geom.Vec3{Y: 1}
	if got.Sub(want).Norm() > 1e-12 {
		t.Fatalf("rotated x axis = %v, want %v", got, want)
	}
}

func TestRevoluteLimits(t *testing.T) {
	j := &Revolute{LimitAngle: &[2]float64{-45, 45}}

	if _, err := j.Transform([]float64{30}); err != nil {
		t.Fatalf("in range angle rejected: %v", err)
	}

	_, err := j.Transform([]float64{90})
	var ip *thing.InvalidParameterError
	if !errors.As(err, &ip) {
		t.Fatalf("err = %v, want InvalidParameterError", err)
	}
	if ip.Value != 90 {
		t.Fatalf("error value = %v", ip.Value)
	}
}

func TestPrismaticSlidesAlongZ(t *testing.T) {
	j := &Prismatic{LimitTravel: &[2]float64{0, 20}}
	tr, err := j.Transform([]float64{12.5})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if tr.T.Z != 12.5 {
		t.Fatalf("offset = %v", tr.T)
	}

	if _, err := j.Transform([]float64{-1}); err == nil {
		t.Fatal("below travel limit accepted")
	}
}

func TestTranslationOffset(t *testing.T) {
	tr, err := Translation{}.Transform([]float64{1, 2, 3})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	want := geom.Vec3{X: 1, Y: 2, Z: 3}
	if tr.T.Sub(want).Norm() > 1e-12 {
		t.Fatalf("offset = %v", tr.T)
	}
}

func TestWrongParamLength(t *testing.T) {
	cases := []struct {
		j     Joint
		param []float64
	}{
		{Rigid{}, []float64{1}},
		{&Revolute{}, nil},
		{&Prismatic{}, []float64{1, 2}},
		{Translation{}, []float64{1}},
	}
	for _, c := range cases {
		if _, err := c.j.Transform(c.param); err == nil {
			t.Errorf("%s accepted %d params", c.j.Kind(), len(c.param))
		}
	}
}

func TestDefaultsMatchDOF(t *testing.T) {
	for _, j := range []Joint{Rigid{}, &Revolute{}, &Prismatic{}, Translation{}} {
		if len(j.Default()) != j.DOF() {
			t.Errorf("%s: default length %d, DOF %d", j.Kind(), len(j.Default()), j.DOF())
		}
		if _, err := j.Transform(j.Default()); err != nil {
			t.Errorf("%s: default params rejected: %v", j.Kind(), err)
		}
	}
}

func TestMatingFrameIsInvolutionOnZ(t *testing.T) {
	m := MatingFrame()
	z := geom.Vec3{Z: 1}
	flipped := m.ApplyDir(z)
	if flipped.Sub(geom.Vec3{Z: -1}).Norm() > 1e-12 {
		t.Fatalf("mating frame maps z to %v", flipped)
	}
}
