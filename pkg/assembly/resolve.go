package assembly

import (
	"github.com/comrob/build123things/pkg/geom"
)

type visitColor int

const (
	colorWhite visitColor = iota
	colorGray
	colorBlack
)

// validate checks the strict tree shape: every registered node is
// reachable from the root exactly once and no edge closes a cycle.
func (a *Assembly) validate() error {
	colors := make(map[*Node]visitColor, len(a.nodes))
	var visit func(n *Node) error
	visit = func(n *Node) error {
		switch colors[n] {
		case colorGray:
			return a.constraint("validate", "cycle through node %q", n.thing.Name())
		case colorBlack:
			return a.constraint("validate", "node %q reached twice", n.thing.Name())
		}
		colors[n] = colorGray
		for _, e := range n.children {
			if err := visit(e.Child); err != nil {
				return err
			}
		}
		colors[n] = colorBlack
		return nil
	}
	if err := visit(a.root); err != nil {
		return err
	}
	for _, n := range a.nodes {
		if colors[n] != colorBlack {
			return a.constraint("validate", "node %q unreachable from root", n.thing.Name())
		}
	}
	return nil
}

// edgeTransform is the frame the child's origin takes in the parent's
// frame: through the parent mount, across the joint at its current
// parameters, then back out of the child mount.
func edgeTransform(e *Edge) (geom.Transform, error) {
	pm, err := e.Parent.thing.MountPoint(e.ParentMount)
	if err != nil {
		return geom.Transform{}, err
	}
	cm, err := e.Child.thing.MountPoint(e.ChildMount)
	if err != nil {
		return geom.Transform{}, err
	}
	jt, err := e.Joint.Transform(e.Param)
	if err != nil {
		return geom.Transform{}, err
	}
	return pm.Frame.Compose(jt).Compose(cm.Frame.Inverse()), nil
}

// Resolve computes the world pose of every node at the current joint
// parameters. The root sits at identity.
func (a *Assembly) Resolve() (map[*Node]geom.Transform, error) {
	poses := make(map[*Node]geom.Transform, len(a.nodes))
	err := a.Walk(func(n *Node, world geom.Transform) error {
		poses[n] = world
		return nil
	})
	if err != nil {
		return nil, err
	}
	return poses, nil
}

// Walk traverses the tree root first, handing each node its world pose.
// Traversal stops at the first error.
func (a *Assembly) Walk(fn func(n *Node, world geom.Transform) error) error {
	var walk func(n *Node, world geom.Transform) error
	walk = func(n *Node, world geom.Transform) error {
		if err := fn(n, world); err != nil {
			return err
		}
		for _, e := range n.children {
			rel, err := edgeTransform(e)
			if err != nil {
				return err
			}
			if err := walk(e.Child, world.Compose(rel)); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(a.root, geom.Identity())
}
