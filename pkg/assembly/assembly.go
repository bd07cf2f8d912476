// Package assembly arranges Thing instances into a strict tree. Each
// node wraps one Thing; each edge couples a parent mount point to a
// child mount point through a joint. The tree owns all structural
// invariants: one root, every non root node has exactly one parent,
// no mount point carries more than one coupling.
package assembly

import (
	"fmt"

	"github.com/comrob/build123things/pkg/joint"
	"github.com/comrob/build123things/pkg/thing"
)

// Node is one placed instance of a Thing. The same Thing may back any
// number of nodes; placement state lives on the node, never on the
// Thing.
type Node struct {
	thing      thing.Thing
	asm        *Assembly
	parent     *Node
	parentEdge *Edge
	children   []*Edge
}

// NewNode wraps a Thing in a detached node, ready to be attached.
func NewNode(t thing.Thing) *Node {
	if t == nil {
		panic("assembly: NewNode with nil thing")
	}
	return &Node{thing: t}
}

// Thing returns the wrapped component.
func (n *Node) Thing() thing.Thing { return n.thing }

// Parent returns the parent node, or nil for the root and for detached
// nodes.
func (n *Node) Parent() *Node { return n.parent }

// ParentEdge returns the coupling to the parent, or nil.
func (n *Node) ParentEdge() *Edge { return n.parentEdge }

// Children returns the outgoing couplings in attachment order.
func (n *Node) Children() []*Edge {
	out := make([]*Edge, len(n.children))
	copy(out, n.children)
	return out
}

// Path identifies the node within its assembly. The root's path is the
// root Thing's name; every other node appends the parent mount point it
// hangs from. Mount points carry at most one coupling, so paths are
// unique.
func (n *Node) Path() string {
	if n.parent == nil {
		return n.thing.Name()
	}
	return n.parent.Path() + "/" + n.parentEdge.ParentMount
}

// Edge couples a parent mount point to a child mount point through a
// joint. Param is the joint's current parameter vector.
type Edge struct {
	Parent      *Node
	Child       *Node
	ParentMount string
	ChildMount  string
	Joint       joint.Joint
	Param       []float64
}

// Assembly is a strict tree of nodes. The zero value is not usable;
// construct with New.
type Assembly struct {
	name  string
	root  *Node
	nodes []*Node
}

// New creates an assembly rooted at the given Thing.
func New(name string, root thing.Thing) *Assembly {
	a := &Assembly{name: name}
	r := NewNode(root)
	r.asm = a
	a.root = r
	a.nodes = []*Node{r}
	return a
}

// Name returns the assembly's name.
func (a *Assembly) Name() string { return a.name }

// Root returns the root node.
func (a *Assembly) Root() *Node { return a.root }

// Nodes returns all nodes in attachment order, root first.
func (a *Assembly) Nodes() []*Node {
	out := make([]*Node, len(a.nodes))
	copy(out, a.nodes)
	return out
}

// Len returns the node count.
func (a *Assembly) Len() int { return len(a.nodes) }

// NodeByPath resolves a node by its Path.
func (a *Assembly) NodeByPath(path string) (*Node, error) {
	for _, n := range a.nodes {
		if n.Path() == path {
			return n, nil
		}
	}
	return nil, &thing.UnresolvedReferenceError{Thing: a.name, Kind: "node", Name: path}
}

func (a *Assembly) constraint(op, format string, args ...any) error {
	return &ConstraintError{Assembly: a.name, Op: op, Reason: fmt.Sprintf(format, args...)}
}

func (a *Assembly) constraintCause(op string, cause error) error {
	return &ConstraintError{Assembly: a.name, Op: op, Reason: cause.Error(), Err: cause}
}

// Attach couples child under parent. The joint starts at its default
// parameter vector. All checks run before any state changes; on error
// the assembly is untouched.
func (a *Assembly) Attach(parent *Node, parentMount string, child *Node, childMount string, j joint.Joint) error {
	switch {
	case parent == nil:
		return a.constraint("attach", "nil parent node")
	case parent.asm != a:
		return a.constraint("attach", "parent node %q is not part of this assembly", parent.thing.Name())
	case child == nil:
		return a.constraint("attach", "nil child node")
	case child.asm != nil:
		return a.constraint("attach", "node %q is already attached", child.Path())
	case j == nil:
		return a.constraint("attach", "nil joint")
	}

	pm, err := parent.thing.MountPoint(parentMount)
	if err != nil {
		return a.constraintCause("attach", err)
	}
	if _, err := child.thing.MountPoint(childMount); err != nil {
		return a.constraintCause("attach", err)
	}
	for _, e := range parent.children {
		if e.ParentMount == parentMount {
			return a.constraint("attach", "mount point %q of %q already carries %q",
				parentMount, parent.thing.Name(), e.Child.thing.Name())
		}
	}
	if pm.Motion != motionForJoint(j) && pm.Motion != thing.MotionFree {
		return a.constraint("attach", "mount point %q of %q admits %s motion, joint is %s",
			parentMount, parent.thing.Name(), pm.Motion, j.Kind())
	}

	param := append([]float64(nil), j.Default()...)
	if _, err := j.Transform(param); err != nil {
		return err
	}

	edge := &Edge{
		Parent:      parent,
		Child:       child,
		ParentMount: parentMount,
		ChildMount:  childMount,
		Joint:       j,
		Param:       param,
	}
	child.asm = a
	child.parent = parent
	child.parentEdge = edge
	parent.children = append(parent.children, edge)
	a.nodes = append(a.nodes, child)

	if err := a.validate(); err != nil {
		child.asm = nil
		child.parent = nil
		child.parentEdge = nil
		parent.children = parent.children[:len(parent.children)-1]
		a.nodes = a.nodes[:len(a.nodes)-1]
		return err
	}
	return nil
}

// AttachThing wraps t in a fresh node and attaches it.
func (a *Assembly) AttachThing(parent *Node, parentMount string, t thing.Thing, childMount string, j joint.Joint) (*Node, error) {
	n := NewNode(t)
	if err := a.Attach(parent, parentMount, n, childMount, j); err != nil {
		return nil, err
	}
	return n, nil
}

// SetJointParam moves the joint above n to a new parameter vector. The
// vector is validated against the joint before the edge is touched.
func (a *Assembly) SetJointParam(n *Node, param []float64) error {
	if n == nil || n.asm != a {
		return a.constraint("set joint param", "node is not part of this assembly")
	}
	if n.parentEdge == nil {
		return a.constraint("set joint param", "node %q is the root", n.Path())
	}
	if _, err := n.parentEdge.Joint.Transform(param); err != nil {
		return err
	}
	n.parentEdge.Param = append([]float64(nil), param...)
	return nil
}

// motionForJoint maps a joint family to the mount motion class it needs.
func motionForJoint(j joint.Joint) thing.Motion {
	switch j.Kind() {
	case "revolute":
		return thing.MotionRevolute
	case "prismatic":
		return thing.MotionSliding
	default:
		return thing.MotionFixed
	}
}
