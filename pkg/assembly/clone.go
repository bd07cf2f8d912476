package assembly

import (
	"github.com/comrob/build123things/pkg/kernel"
	"github.com/comrob/build123things/pkg/thing"
)

// Clone produces an independent copy of the assembly, rebuilding the
// Things of nodes named in overrides with new parameters. Overrides are
// keyed by node path; nodes not named share their Thing with the
// original by reference, which is safe because Things are immutable.
// Structure and joint parameters are always copied.
func (a *Assembly) Clone(k kernel.Kernel, overrides map[string]map[string]float64) (*Assembly, error) {
	for path := range overrides {
		if _, err := a.NodeByPath(path); err != nil {
			return nil, err
		}
	}

	rebuilt := func(n *Node) (thing.Thing, error) {
		ov, ok := overrides[n.Path()]
		if !ok {
			return n.thing, nil
		}
		return n.thing.Rebuild(k, ov)
	}

	rootThing, err := rebuilt(a.root)
	if err != nil {
		return nil, err
	}
	out := New(a.name, rootThing)

	var copySubtree func(src, dst *Node) error
	copySubtree = func(src, dst *Node) error {
		for _, e := range src.children {
			ct, err := rebuilt(e.Child)
			if err != nil {
				return err
			}
			dstChild, err := out.AttachThing(dst, e.ParentMount, ct, e.ChildMount, e.Joint)
			if err != nil {
				return err
			}
			if len(e.Param) > 0 {
				if err := out.SetJointParam(dstChild, e.Param); err != nil {
					return err
				}
			}
			if err := copySubtree(e.Child, dstChild); err != nil {
				return err
			}
		}
		return nil
	}
	if err := copySubtree(a.root, out.root); err != nil {
		return nil, err
	}
	return out, nil
}
