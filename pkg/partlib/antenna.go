package partlib

import (
	"github.com/comrob/build123things/pkg/geom"
	"github.com/comrob/build123things/pkg/kernel"
	"github.com/comrob/build123things/pkg/thing"
)

// Antenna is a brass rod standing on its base mount.
type Antenna struct {
	*thing.Base
}

var _ thing.Thing = (*Antenna)(nil)

func NewAntenna(k kernel.Kernel, length, radius float64) (*Antenna, error) {
	return newAntenna(k, length, radius, "")
}

func newAntenna(k kernel.Kernel, length, radius float64, derivedFrom string) (*Antenna, error) {
	if err := thing.RequirePositive("antenna", "length", length); err != nil {
		return nil, err
	}
	if err := thing.RequirePositive("antenna", "radius", radius); err != nil {
		return nil, err
	}

	b := thing.NewBase("antenna", thing.Brass, thing.NewParamSet(
		thing.Param{Name: "length", Value: length, Doc: "rod length"},
		thing.Param{Name: "radius", Value: radius, Doc: "rod radius"},
	))
	// rod stands on the origin, tip at z = length
	rod := k.Transform(k.Cylinder(length, radius), geom.Translate(geom.Vec3{Z: length / 2}))
	b.SetResult(rod)
	b.AddMount("tip", geom.Translate(geom.Vec3{Z: length}), thing.MotionFixed)
	if derivedFrom != "" {
		b.MarkDerived(derivedFrom)
	}
	b.Finalize()
	return &Antenna{Base: b}, nil
}

func (a *Antenna) Rebuild(k kernel.Kernel, overrides map[string]float64) (thing.Thing, error) {
	merged, err := a.Params().WithOverrides(a.Name(), overrides)
	if err != nil {
		return nil, err
	}
	return newAntenna(k, merged["length"], merged["radius"], a.Name())
}
