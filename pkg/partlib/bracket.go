package partlib

import (
	"github.com/comrob/build123things/pkg/geom"
	"github.com/comrob/build123things/pkg/kernel"
	"github.com/comrob/build123things/pkg/thing"
)

// Bracket is an L profile of two joined plates with a bolt hole through
// each leg. The base leg lies in the xy plane; the upright rises along
// z at the rear edge.
type Bracket struct {
	*thing.Base
}

var _ thing.Thing = (*Bracket)(nil)

func NewBracket(k kernel.Kernel, size, thickness, holeRadius float64) (*Bracket, error) {
	return newBracket(k, size, thickness, holeRadius, "")
}

func newBracket(k kernel.Kernel, size, thickness, holeRadius float64, derivedFrom string) (*Bracket, error) {
	if err := thing.RequirePositive("bracket", "size", size); err != nil {
		return nil, err
	}
	if err := thing.RequirePositive("bracket", "thickness", thickness); err != nil {
		return nil, err
	}
	if err := thing.RequireRange("bracket", "hole_radius", holeRadius, 0, size/4); err != nil {
		return nil, err
	}

	b := thing.NewBase("bracket", thing.Steel, thing.NewParamSet(
		thing.Param{Name: "size", Value: size, Doc: "leg length"},
		thing.Param{Name: "thickness", Value: thickness, Doc: "plate thickness"},
		thing.Param{Name: "hole_radius", Value: holeRadius, Doc: "bolt hole radius, 0 for none"},
	))

	base := k.Transform(
		k.Box(size, size, thickness),
		geom.Translate(geom.Vec3{Z: thickness / 2}))
	upright := k.Transform(
		k.Box(thickness, size, size),
		geom.Translate(geom.Vec3{X: -(size - thickness) / 2, Z: size / 2}))
	solid := k.Union(base, upright)

	if holeRadius > 0 {
		baseHole := k.Transform(
			k.Cylinder(3*thickness, holeRadius),
			geom.Translate(geom.Vec3{X: size / 4, Z: thickness / 2}))
		uprightHole := k.Transform(
			k.Cylinder(3*thickness, holeRadius),
			geom.Euler(geom.Vec3{X: -(size - thickness) / 2, Z: 3 * size / 4}, 0, 90, 0))
		solid = k.Difference(solid, k.Union(baseHole, uprightHole))
	}
	b.SetResult(solid)

	b.AddMount("base", geom.Euler(geom.Vec3{}, 180, 0, 0), thing.MotionFixed)
	b.AddMount("shelf", geom.Translate(geom.Vec3{Z: thickness}), thing.MotionFixed)
	b.AddMount("face", geom.Euler(geom.Vec3{X: -(size - 2*thickness) / 2, Z: size / 2}, 0, 90, 0), thing.MotionFixed)
	if derivedFrom != "" {
		b.MarkDerived(derivedFrom)
	}
	b.Finalize()
	return &Bracket{Base: b}, nil
}

func (b *Bracket) Rebuild(k kernel.Kernel, overrides map[string]float64) (thing.Thing, error) {
	merged, err := b.Params().WithOverrides(b.Name(), overrides)
	if err != nil {
		return nil, err
	}
	return newBracket(k, merged["size"], merged["thickness"], merged["hole_radius"], b.Name())
}
