package partlib

import (
	"github.com/comrob/build123things/pkg/geom"
	"github.com/comrob/build123things/pkg/kernel"
	"github.com/comrob/build123things/pkg/thing"
)

// Box is a cube with mount points on its top and bottom faces.
type Box struct {
	*thing.Base
}

var _ thing.Thing = (*Box)(nil)

// NewBox builds a cube of the given edge length, centered at its
// origin.
func NewBox(k kernel.Kernel, side float64) (*Box, error) {
	return newBox(k, side, "")
}

func newBox(k kernel.Kernel, side float64, derivedFrom string) (*Box, error) {
	if err := thing.RequirePositive("box", "side", side); err != nil {
		return nil, err
	}

	b := thing.NewBase("box", thing.PETG, thing.NewParamSet(
		thing.Param{Name: "side", Value: side, Doc: "edge length"},
	))
	b.SetResult(k.Box(side, side, side))
	b.AddMount("top", geom.Translate(geom.Vec3{Z: side / 2}), thing.MotionFixed)
	b.AddMount("bottom", geom.Euler(geom.Vec3{Z: -side / 2}, 180, 0, 0), thing.MotionFixed)
	if derivedFrom != "" {
		b.MarkDerived(derivedFrom)
	}
	b.Finalize()
	return &Box{Base: b}, nil
}

func (b *Box) Rebuild(k kernel.Kernel, overrides map[string]float64) (thing.Thing, error) {
	merged, err := b.Params().WithOverrides(b.Name(), overrides)
	if err != nil {
		return nil, err
	}
	return newBox(k, merged["side"], b.Name())
}
