package thing

import "github.com/comrob/build123things/pkg/geom"

// Motion describes the relative movement a mount point admits. The
// assembly layer rejects attachments whose joint needs a motion class
// the parent mount does not declare; MotionFree admits any joint.
type Motion int

const (
	MotionFixed    Motion = iota // no relative movement intended
	MotionRevolute               // rotation about the mount's z axis
	MotionSliding                // translation along the mount's z axis
	MotionFree                   // unconstrained placement
)

func (m Motion) String() string {
	switch m {
	case MotionFixed:
		return "fixed"
	case MotionRevolute:
		return "revolute"
	case MotionSliding:
		return "sliding"
	case MotionFree:
		return "free"
	default:
		return "unknown"
	}
}

// MountPoint is a named attachment frame on a Thing. The frame is
// expressed in the owning Thing's local coordinate frame and is fixed
// at construction time. Mount point names are the stable addressing
// mechanism for assemblies: downstream references survive parameter
// variation because they bind to the name, not to kernel feature
// indices.
type MountPoint struct {
	Name   string
	Frame  geom.Transform
	Motion Motion
}
