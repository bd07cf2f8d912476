package partlib

import (
	"github.com/comrob/build123things/pkg/geom"
	"github.com/comrob/build123things/pkg/kernel"
	"github.com/comrob/build123things/pkg/thing"
)

// Wheel is a rubber cylinder spinning about its z axis. The hub mount
// sits on the inner face so the wheel body clears whatever it bolts to.
type Wheel struct {
	*thing.Base
}

var _ thing.Thing = (*Wheel)(nil)

func NewWheel(k kernel.Kernel, radius, thickness float64) (*Wheel, error) {
	return newWheel(k, radius, thickness, "")
}

func newWheel(k kernel.Kernel, radius, thickness float64, derivedFrom string) (*Wheel, error) {
	if err := thing.RequirePositive("wheel", "radius", radius); err != nil {
		return nil, err
	}
	if err := thing.RequirePositive("wheel", "thickness", thickness); err != nil {
		return nil, err
	}

	b := thing.NewBase("wheel", thing.Rubber, thing.NewParamSet(
		thing.Param{Name: "radius", Value: radius, Doc: "rolling radius"},
		thing.Param{Name: "thickness", Value: thickness, Doc: "tread width"},
	))
	b.SetResult(k.Cylinder(thickness, radius))
	b.AddReference("tread", k.Cylinder(thickness, radius), "contact envelope")
	b.AddMount("hub", geom.Translate(geom.Vec3{Z: -thickness / 2}), thing.MotionFree)
	if derivedFrom != "" {
		b.MarkDerived(derivedFrom)
	}
	b.Finalize()
	return &Wheel{Base: b}, nil
}

func (w *Wheel) Rebuild(k kernel.Kernel, overrides map[string]float64) (thing.Thing, error) {
	merged, err := w.Params().WithOverrides(w.Name(), overrides)
	if err != nil {
		return nil, err
	}
	return newWheel(k, merged["radius"], merged["thickness"], w.Name())
}
