// Package thing defines the basic semantic unit of design: a Thing is
// an instantiated parametric component with construction parameters,
// named reference geometry, named mount points and a single result
// solid, all fixed at construction time. Things are immutable once
// built; variants are produced by constructing anew, never by mutation.
package thing

import (
	"fmt"

	"github.com/comrob/build123things/pkg/geom"
	"github.com/comrob/build123things/pkg/kernel"
)

// ReferenceGeometry is an auxiliary named solid kept alongside the
// result. Reference geometries are stable measurement and construction
// anchors; they do not contribute to the assembly's exported shape.
type ReferenceGeometry struct {
	Name  string
	Solid kernel.Solid
	Desc  string
}

// Thing is the capability interface every parametric component family
// implements, usually by embedding Base. All accessors are pure reads
// of state frozen at construction.
type Thing interface {
	// Name returns the family name (the codename of the component).
	Name() string

	// Params returns the captured construction parameters.
	Params() ParamSet

	// Material returns the material annotation.
	Material() Material

	// Result returns the Thing's externally visible geometry
	// contribution, or nil for pure assemblies and construction aids.
	Result() kernel.Solid

	// ReferenceGeometries enumerates reference geometry in declaration order.
	ReferenceGeometries() []ReferenceGeometry

	// ReferenceGeometry resolves reference geometry by name.
	ReferenceGeometry(name string) (ReferenceGeometry, error)

	// MountPoints enumerates mount points in declaration order.
	MountPoints() []MountPoint

	// MountPoint resolves a mount point by name.
	MountPoint(name string) (MountPoint, error)

	// DerivedFrom records pedigree: the family name this instance was
	// rebuilt from, or "" for an original construction.
	DerivedFrom() string

	// Rebuild constructs a new instance of the same family with the
	// given parameter overrides applied on top of this instance's
	// captured parameters. The receiver is never modified.
	Rebuild(k kernel.Kernel, overrides map[string]float64) (Thing, error)
}

// OriginMount is the mount point every Thing carries at its local
// origin.
const OriginMount = "origin"

// Base holds the frozen state shared by all Thing families. Concrete
// constructors populate it with the builder methods and call Finalize
// before returning; after Finalize every mutator panics, which makes an
// escaped half-built Thing a loud construction bug rather than a quiet
// aliasing hazard.
type Base struct {
	name        string
	material    Material
	params      ParamSet
	derivedFrom string

	result     kernel.Solid
	refs       []ReferenceGeometry
	refIndex   map[string]int
	mounts     []MountPoint
	mountIndex map[string]int

	sealed bool
}

// NewBase starts a Thing under construction. The origin mount point is
// declared automatically.
func NewBase(name string, material Material, params ParamSet) *Base {
	b := &Base{
		name:       name,
		material:   material,
		params:     params,
		refIndex:   map[string]int{},
		mountIndex: map[string]int{},
	}
	b.AddMount(OriginMount, geom.Identity(), MotionFixed)
	return b
}

func (b *Base) mustOpen(op string) {
	if b.sealed {
		panic(fmt.Sprintf("thing %q: %s after Finalize", b.name, op))
	}
}

// AddMount declares a named mount point. The frame is relative to the
// Thing's local origin.
func (b *Base) AddMount(name string, frame geom.Transform, motion Motion) {
	b.mustOpen("AddMount")
	if _, dup := b.mountIndex[name]; dup {
		panic(fmt.Sprintf("thing %q: duplicate mount point %q", b.name, name))
	}
	b.mountIndex[name] = len(b.mounts)
	b.mounts = append(b.mounts, MountPoint{Name: name, Frame: frame, Motion: motion})
}

// AddReference declares a named reference geometry.
func (b *Base) AddReference(name string, s kernel.Solid, desc string) {
	b.mustOpen("AddReference")
	if _, dup := b.refIndex[name]; dup {
		panic(fmt.Sprintf("thing %q: duplicate reference geometry %q", b.name, name))
	}
	b.refIndex[name] = len(b.refs)
	b.refs = append(b.refs, ReferenceGeometry{Name: name, Solid: s, Desc: desc})
}

// SetResult fixes the Thing's result solid. May be left unset for pure
// assemblies.
func (b *Base) SetResult(s kernel.Solid) {
	b.mustOpen("SetResult")
	b.result = s
}

// MarkDerived records the family this instance was rebuilt from.
func (b *Base) MarkDerived(from string) {
	b.mustOpen("MarkDerived")
	b.derivedFrom = from
}

// Finalize seals the Thing. Constructors call it exactly once, as their
// last step before returning.
func (b *Base) Finalize() {
	b.mustOpen("Finalize")
	b.sealed = true
}

// Sealed reports whether construction has completed.
func (b *Base) Sealed() bool { return b.sealed }

func (b *Base) Name() string         { return b.name }
func (b *Base) Material() Material   { return b.material }
func (b *Base) Params() ParamSet     { return b.params }
func (b *Base) DerivedFrom() string  { return b.derivedFrom }
func (b *Base) Result() kernel.Solid { return b.result }

// ReferenceGeometries returns reference geometry in declaration order.
func (b *Base) ReferenceGeometries() []ReferenceGeometry {
	out := make([]ReferenceGeometry, len(b.refs))
	copy(out, b.refs)
	return out
}

// ReferenceGeometry resolves reference geometry by name.
func (b *Base) ReferenceGeometry(name string) (ReferenceGeometry, error) {
	i, ok := b.refIndex[name]
	if !ok {
		return ReferenceGeometry{}, &UnresolvedReferenceError{Thing: b.name, Kind: "reference geometry", Name: name}
	}
	return b.refs[i], nil
}

// MountPoints returns the mount points in declaration order.
func (b *Base) MountPoints() []MountPoint {
	out := make([]MountPoint, len(b.mounts))
	copy(out, b.mounts)
	return out
}

// MountPoint resolves a mount point by name.
func (b *Base) MountPoint(name string) (MountPoint, error) {
	i, ok := b.mountIndex[name]
	if !ok {
		return MountPoint{}, &UnresolvedReferenceError{Thing: b.name, Kind: "mount point", Name: name}
	}
	return b.mounts[i], nil
}

// RequirePositive validates that a dimension parameter is positive.
// Constructors call it before building any geometry so that degenerate
// parameters fail at construction time.
func RequirePositive(thing, param string, v float64) error {
	if v <= 0 {
		return &InvalidParameterError{Thing: thing, Param: param, Value: v, Reason: "must be positive"}
	}
	return nil
}

// RequireRange validates that a parameter lies in [lo, hi].
func RequireRange(thing, param string, v, lo, hi float64) error {
	if v < lo || v > hi {
		return &InvalidParameterError{
			Thing: thing, Param: param, Value: v,
			Reason: fmt.Sprintf("must be within [%g, %g]", lo, hi),
		}
	}
	return nil
}
