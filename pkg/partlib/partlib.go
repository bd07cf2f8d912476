// Package partlib is a small library of ready made component families
// and the composite builders that arrange them. It doubles as the
// reference for how families are written: validate parameters first,
// build geometry through the kernel, declare mounts, seal.
package partlib

import (
	"github.com/comrob/build123things/pkg/kernel"
	"github.com/comrob/build123things/pkg/thing"
)

// Register adds every family in the library to reg.
func Register(reg *thing.Registry) error {
	families := map[string]thing.Constructor{
		"box": func(k kernel.Kernel, params map[string]float64) (thing.Thing, error) {
			return NewBox(k, pick(params, "side", 10))
		},
		"wheel": func(k kernel.Kernel, params map[string]float64) (thing.Thing, error) {
			return NewWheel(k, pick(params, "radius", 30), pick(params, "thickness", 12))
		},
		"antenna": func(k kernel.Kernel, params map[string]float64) (thing.Thing, error) {
			return NewAntenna(k, pick(params, "length", 80), pick(params, "radius", 1.5))
		},
		"bracket": func(k kernel.Kernel, params map[string]float64) (thing.Thing, error) {
			return NewBracket(k,
				pick(params, "size", 40),
				pick(params, "thickness", 4),
				pick(params, "hole_radius", 3))
		},
		"car-body": func(k kernel.Kernel, params map[string]float64) (thing.Thing, error) {
			return NewCarBody(k,
				pick(params, "length", 160),
				pick(params, "width", 80),
				pick(params, "height", 40))
		},
	}
	for name, ctor := range families {
		if err := reg.Register(name, ctor); err != nil {
			return err
		}
	}
	return nil
}

func pick(params map[string]float64, name string, fallback float64) float64 {
	if v, ok := params[name]; ok {
		return v
	}
	return fallback
}
