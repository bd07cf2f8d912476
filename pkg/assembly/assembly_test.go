package assembly

import (
	"errors"
	"testing"

	"github.com/comrob/build123things/pkg/geom"
	"github.com/comrob/build123things/pkg/joint"
	"github.com/comrob/build123things/pkg/kernel"
	"github.com/comrob/build123things/pkg/thing"
)

// plate is a minimal component family for tree tests. It exposes a
// fixed mount on top, a revolute hub on its side and remembers its
// construction parameters so Rebuild can be observed.
type plate struct {
	*thing.Base
}

func newPlate(name string, size float64) *plate {
	b := thing.NewBase(name, thing.PETG, thing.NewParamSet(
		thing.Param{Name: "size", Value: size},
	))
	b.AddMount("top", geom.Translate(geom.Vec3{Z: size / 2}), thing.MotionFixed)
	b.AddMount("hub", geom.Euler(geom.Vec3{X: size / 2}, 0, 90, 0), thing.MotionRevolute)
	b.Finalize()
	return &plate{Base: b}
}

func (p *plate) Rebuild(k kernel.Kernel, overrides map[string]float64) (thing.Thing, error) {
	merged, err := p.Params().WithOverrides(p.Name(), overrides)
	if err != nil {
		return nil, err
	}
	out := newPlate(p.Name(), merged["size"])
	out.MarkDerived(p.Name())
	return out, nil
}

func buildPair(t *testing.T) (*Assembly, *Node) {
	t.Helper()
	a := New("rig", newPlate("base", 10))
	child, err := a.AttachThing(a.Root(), "top", newPlate("deck", 4), thing.OriginMount, joint.Rigid{})
	if err != nil {
		t.Fatalf("AttachThing: %v", err)
	}
	return a, child
}

func TestAttachAndPaths(t *testing.T) {
	a, child := buildPair(t)

	if a.Len() != 2 {
		t.Fatalf("Len() = %d", a.Len())
	}
	if got := a.Root().Path(); got != "base" {
		t.Fatalf("root path = %q", got)
	}
	if got := child.Path(); got != "base/top" {
		t.Fatalf("child path = %q", got)
	}

	byPath, err := a.NodeByPath("base/top")
	if err != nil {
		t.Fatalf("NodeByPath: %v", err)
	}
	if byPath != child {
		t.Fatal("NodeByPath returned a different node")
	}
}

func TestAttachRejectsSecondParent(t *testing.T) {
	a, child := buildPair(t)
	before := a.Len()

	err := a.Attach(a.Root(), "hub", child, thing.OriginMount, joint.Rigid{})
	var ce *ConstraintError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want ConstraintError", err)
	}
	if a.Len() != before {
		t.Fatalf("rejected attach changed node count: %d -> %d", before, a.Len())
	}
	if child.Parent() != a.Root() || child.ParentEdge().ParentMount != "top" {
		t.Fatal("rejected attach disturbed existing edge")
	}
}

func TestAttachRejectsOccupiedMount(t *testing.T) {
	a, _ := buildPair(t)

	_, err := a.AttachThing(a.Root(), "top", newPlate("extra", 2), thing.OriginMount, joint.Rigid{})
	var ce *ConstraintError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want ConstraintError", err)
	}
}

func TestAttachRejectsForeignParent(t *testing.T) {
	a := New("rig", newPlate("base", 10))
	other := New("other", newPlate("stray", 10))

	err := a.Attach(other.Root(), "top", NewNode(newPlate("deck", 4)), thing.OriginMount, joint.Rigid{})
	var ce *ConstraintError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want ConstraintError", err)
	}
}

func TestAttachUnknownMount(t *testing.T) {
	a := New("rig", newPlate("base", 10))

	_, err := a.AttachThing(a.Root(), "bogus", newPlate("deck", 4), thing.OriginMount, joint.Rigid{})
	var ce *ConstraintError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want ConstraintError", err)
	}
	var ur *thing.UnresolvedReferenceError
	if !errors.As(err, &ur) || ur.Name != "bogus" {
		t.Fatalf("cause = %v, want UnresolvedReferenceError for %q", err, "bogus")
	}

	_, err = a.AttachThing(a.Root(), "top", newPlate("deck", 4), "bogus", joint.Rigid{})
	if !errors.As(err, &ce) {
		t.Fatalf("child mount err = %v, want ConstraintError", err)
	}

	if a.Len() != 1 {
		t.Fatalf("failed attach changed node count: %d", a.Len())
	}
}

func TestAttachMotionMismatch(t *testing.T) {
	a := New("rig", newPlate("base", 10))

	_, err := a.AttachThing(a.Root(), "top", newPlate("wheel", 4), thing.OriginMount, &joint.Revolute{})
	var ce *ConstraintError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want ConstraintError", err)
	}

	if _, err := a.AttachThing(a.Root(), "hub", newPlate("wheel", 4), thing.OriginMount, &joint.Revolute{}); err != nil {
		t.Fatalf("revolute at revolute mount rejected: %v", err)
	}
}

func TestResolveComposesMountJointMount(t *testing.T) {
	base := newPlate("base", 10)
	deck := newPlate("deck", 4)
	a := New("rig", base)
	child, err := a.AttachThing(a.Root(), "top", deck, "top", joint.Rigid{})
	if err != nil {
		t.Fatalf("AttachThing: %v", err)
	}

	poses, err := a.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !poses[a.Root()].IsIdentity(1e-12) {
		t.Fatalf("root pose = %v", poses[a.Root()])
	}

	// base top sits at z=5, deck top at z=2; with an identity joint
	// the deck origin lands at z = 5 - 2 = 3.
	want := geom.Translate(geom.Vec3{Z: 3})
	if !poses[child].ApproxEqual(want, 1e-12) {
		t.Fatalf("child pose = %v, want %v", poses[child], want)
	}
}

func TestSetJointParamMovesChild(t *testing.T) {
	a := New("rig", newPlate("base", 10))
	wheel, err := a.AttachThing(a.Root(), "hub", newPlate("wheel", 4), thing.OriginMount, &joint.Revolute{})
	if err != nil {
		t.Fatalf("AttachThing: %v", err)
	}

	before, err := a.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := a.SetJointParam(wheel, []float64{90}); err != nil {
		t.Fatalf("SetJointParam: %v", err)
	}
	after, err := a.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	// Rotation happens about the hub's own z axis, so the translation
	// part holds still while the orientation changes.
	if before[wheel].T.Sub(after[wheel].T).Norm() > 1e-12 {
		t.Fatalf("hub translation moved: %v -> %v", before[wheel].T, after[wheel].T)
	}
	if before[wheel].ApproxEqual(after[wheel], 1e-9) {
		t.Fatal("pose did not change")
	}
}

func TestSetJointParamRejectsRootAndBadVector(t *testing.T) {
	a, child := buildPair(t)

	var ce *ConstraintError
	if err := a.SetJointParam(a.Root(), nil); !errors.As(err, &ce) {
		t.Fatalf("root err = %v", err)
	}

	var ip *thing.InvalidParameterError
	if err := a.SetJointParam(child, []float64{1}); !errors.As(err, &ip) {
		t.Fatalf("length err = %v", err)
	}
}

func TestAttachOrderDoesNotAffectPoses(t *testing.T) {
	build := func(first string) *Assembly {
		a := New("rig", newPlate("base", 10))
		attach := map[string]func(){
			"deck": func() {
				if _, err := a.AttachThing(a.Root(), "top", newPlate("deck", 4), thing.OriginMount, joint.Rigid{}); err != nil {
					t.Fatalf("attach deck: %v", err)
				}
			},
			"wheel": func() {
				if _, err := a.AttachThing(a.Root(), "hub", newPlate("wheel", 4), thing.OriginMount, &joint.Revolute{}); err != nil {
					t.Fatalf("attach wheel: %v", err)
				}
			},
		}
		if first == "deck" {
			attach["deck"]()
			attach["wheel"]()
		} else {
			attach["wheel"]()
			attach["deck"]()
		}
		return a
	}

	posesByPath := func(a *Assembly) map[string]geom.Transform {
		out := map[string]geom.Transform{}
		poses, err := a.Resolve()
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		for n, p := range poses {
			out[n.Path()] = p
		}
		return out
	}

	p1 := posesByPath(build("deck"))
	p2 := posesByPath(build("wheel"))
	if len(p1) != len(p2) {
		t.Fatalf("node counts differ: %d vs %d", len(p1), len(p2))
	}
	for path, pose := range p1 {
		if !p2[path].ApproxEqual(pose, 1e-12) {
			t.Fatalf("pose at %q differs: %v vs %v", path, pose, p2[path])
		}
	}
}

func TestCloneSharesUnchangedRebuildOverridden(t *testing.T) {
	a, child := buildPair(t)

	clone, err := a.Clone(nil, map[string]map[string]float64{
		"base/top": {"size": 6},
	})
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}

	if clone.Root().Thing() != a.Root().Thing() {
		t.Fatal("unchanged root was rebuilt instead of shared")
	}

	cloned, err := clone.NodeByPath("base/top")
	if err != nil {
		t.Fatalf("NodeByPath: %v", err)
	}
	if cloned.Thing() == child.Thing() {
		t.Fatal("overridden node still shares its Thing")
	}
	if got, _ := cloned.Thing().Params().Get("size"); got != 6 {
		t.Fatalf("rebuilt size = %v", got)
	}
	if cloned.Thing().DerivedFrom() != "deck" {
		t.Fatalf("DerivedFrom = %q", cloned.Thing().DerivedFrom())
	}
	if got, _ := child.Thing().Params().Get("size"); got != 4 {
		t.Fatalf("original mutated, size = %v", got)
	}
}

func TestCloneUnknownPath(t *testing.T) {
	a, _ := buildPair(t)

	_, err := a.Clone(nil, map[string]map[string]float64{"base/bogus": {"size": 1}})
	var ur *thing.UnresolvedReferenceError
	if !errors.As(err, &ur) {
		t.Fatalf("err = %v, want UnresolvedReferenceError", err)
	}
}
