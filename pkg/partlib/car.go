package partlib

import (
	"github.com/comrob/build123things/pkg/assembly"
	"github.com/comrob/build123things/pkg/geom"
	"github.com/comrob/build123things/pkg/joint"
	"github.com/comrob/build123things/pkg/kernel"
	"github.com/comrob/build123things/pkg/thing"
)

// CarBody is a box shaped chassis with four revolute wheel hubs and an
// antenna deck. Hub frames point their z axes outward so wheels spin
// about them directly.
type CarBody struct {
	*thing.Base
}

var _ thing.Thing = (*CarBody)(nil)

// Hub mount names, front to rear, left to right.
var carHubs = []string{"hub-fl", "hub-fr", "hub-rl", "hub-rr"}

func NewCarBody(k kernel.Kernel, length, width, height float64) (*CarBody, error) {
	return newCarBody(k, length, width, height, "")
}

func newCarBody(k kernel.Kernel, length, width, height float64, derivedFrom string) (*CarBody, error) {
	for _, p := range []struct {
		name  string
		value float64
	}{{"length", length}, {"width", width}, {"height", height}} {
		if err := thing.RequirePositive("car-body", p.name, p.value); err != nil {
			return nil, err
		}
	}

	b := thing.NewBase("car-body", thing.PETG, thing.NewParamSet(
		thing.Param{Name: "length", Value: length, Doc: "chassis length along x"},
		thing.Param{Name: "width", Value: width, Doc: "chassis width along y"},
		thing.Param{Name: "height", Value: height, Doc: "chassis height along z"},
	))
	b.SetResult(k.Box(length, width, height))

	wheelbase := 0.7 * length / 2
	for _, hub := range carHubs {
		x := wheelbase
		if hub == "hub-rl" || hub == "hub-rr" {
			x = -wheelbase
		}
		y, rx := width/2, -90.0 // left side, z out along +y
		if hub == "hub-fr" || hub == "hub-rr" {
			y, rx = -width/2, 90.0
		}
		b.AddMount(hub, geom.Euler(geom.Vec3{X: x, Y: y}, rx, 0, 0), thing.MotionRevolute)
	}
	b.AddMount("deck", geom.Translate(geom.Vec3{Z: height / 2}), thing.MotionFixed)
	if derivedFrom != "" {
		b.MarkDerived(derivedFrom)
	}
	b.Finalize()
	return &CarBody{Base: b}, nil
}

func (c *CarBody) Rebuild(k kernel.Kernel, overrides map[string]float64) (thing.Thing, error) {
	merged, err := c.Params().WithOverrides(c.Name(), overrides)
	if err != nil {
		return nil, err
	}
	return newCarBody(k, merged["length"], merged["width"], merged["height"], c.Name())
}

// BuildSimpleCar assembles a chassis, four driven wheels and an
// antenna. Recognized params: length, width, height, wheel_radius,
// wheel_thickness, antenna_length, antenna_radius; everything else is
// rejected.
func BuildSimpleCar(k kernel.Kernel, params map[string]float64) (*assembly.Assembly, error) {
	known := map[string]float64{
		"length": 160, "width": 80, "height": 40,
		"wheel_radius": 30, "wheel_thickness": 12,
		"antenna_length": 80, "antenna_radius": 1.5,
	}
	for name, v := range params {
		if _, ok := known[name]; !ok {
			return nil, &thing.UnresolvedReferenceError{Thing: "simple-car", Kind: "parameter", Name: name}
		}
		known[name] = v
	}

	body, err := NewCarBody(k, known["length"], known["width"], known["height"])
	if err != nil {
		return nil, err
	}
	a := assembly.New("simple-car", body)

	for _, hub := range carHubs {
		wheel, err := NewWheel(k, known["wheel_radius"], known["wheel_thickness"])
		if err != nil {
			return nil, err
		}
		j := &joint.Revolute{Name: "drive-" + hub}
		if _, err := a.AttachThing(a.Root(), hub, wheel, "hub", j); err != nil {
			return nil, err
		}
	}

	ant, err := NewAntenna(k, known["antenna_length"], known["antenna_radius"])
	if err != nil {
		return nil, err
	}
	if _, err := a.AttachThing(a.Root(), "deck", ant, thing.OriginMount, joint.Rigid{}); err != nil {
		return nil, err
	}
	return a, nil
}

// BuildAssembly constructs a named composite.
func BuildAssembly(k kernel.Kernel, name string, params map[string]float64) (*assembly.Assembly, error) {
	switch name {
	case "simple-car":
		return BuildSimpleCar(k, params)
	default:
		return nil, &thing.UnresolvedReferenceError{Thing: "partlib", Kind: "assembly", Name: name}
	}
}

// AssemblyNames lists the composites BuildAssembly recognizes.
func AssemblyNames() []string {
	return []string{"simple-car"}
}
