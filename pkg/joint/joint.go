// Package joint models the kinematic couplings placed between mount
// points. A joint maps a parameter vector to a local spatial transform;
// the assembly layer composes those transforms into world poses.
package joint

import (
	"github.com/comrob/build123things/pkg/geom"
	"github.com/comrob/build123things/pkg/thing"
)

// Joint is a parametric coupling between two mount points.
//
// Transform returns the relative frame the joint contributes for a
// given parameter vector. The vector length must equal DOF; joints with
// limits reject out of range values with *thing.InvalidParameterError.
type Joint interface {
	// Kind returns the joint family, such as "rigid" or "revolute".
	Kind() string

	// DOF returns the length of the parameter vector.
	DOF() int

	// Default returns the parameter vector a fresh attachment starts
	// at. Its length equals DOF.
	Default() []float64

	// Transform maps a parameter vector to the joint's local frame.
	Transform(param []float64) (geom.Transform, error)
}

// MatingFrame is the flip applied between two mount points so that
// their z axes oppose and their x axes stay aligned. Part authors place
// mount frames with +z pointing out of the part; composing through
// MatingFrame makes two such frames meet face to face.
func MatingFrame() geom.Transform {
	return geom.Euler(geom.Vec3{}, 180, 0, 90)
}

func checkDOF(kind string, dof int, param []float64) error {
	if len(param) != dof {
		return &thing.InvalidParameterError{
			Thing: "joint/" + kind, Param: "param", Value: float64(len(param)),
			Reason: "wrong parameter vector length",
		}
	}
	return nil
}

// Rigid is the zero degree of freedom joint. Its transform is identity.
type Rigid struct{}

var _ Joint = Rigid{}

func (Rigid) Kind() string { return "rigid" }
func (Rigid) DOF() int { return 0 }
func (Rigid) Default() []float64 { return nil }

func (Rigid) Transform(param []float64) (geom.Transform, error) {
	if err := checkDOF("rigid", 0, param); err != nil {
		return geom.Transform{}, err
	}
	return geom.Identity(), nil
}

// Revolute rotates about the local z axis. The single parameter is the
// angle in degrees.
type Revolute struct {
	// Name labels the joint in exported mechanism descriptions.
	// Optional; attachments synthesize one from their path if empty.
	Name string

	// LimitAngle, when non nil, bounds the angle to [min, max] degrees.
	LimitAngle *[2]float64

	// LimitEffort and LimitVelocity are actuation bounds carried
	// through to mechanism exports. Zero means unspecified.
	LimitEffort   float64
	LimitVelocity float64
}

var _ Joint = (*Revolute)(nil)

func (*Revolute) Kind() string { return "revolute" }
func (*Revolute) DOF() int { return 1 }
func (*Revolute) Default() []float64 { return []float64{0} }

func (j *Revolute) Transform(param []float64) (geom.Transform, error) {
	if err := checkDOF("revolute", 1, param); err != nil {
		return geom.Transform{}, err
	}
	angle := param[0]
	if j.LimitAngle != nil && (angle < j.LimitAngle[0] || angle > j.LimitAngle[1]) {
		return geom.Transform{}, &thing.InvalidParameterError{
			Thing: "joint/revolute", Param: "angle", Value: angle,
			Reason: "outside joint limits",
		}
	}
	return geom.RotateZ(angle), nil
}

// Prismatic slides along the local z axis. The single parameter is the
// displacement.
type Prismatic struct {
	Name string

	// LimitTravel, when non nil, bounds the displacement to [min, max].
	LimitTravel *[2]float64

	LimitEffort   float64
	LimitVelocity float64
}

var _ Joint = (*Prismatic)(nil)

func (*Prismatic) Kind() string { return "prismatic" }
func (*Prismatic) DOF() int { return 1 }
func (*Prismatic) Default() []float64 { return []float64{0} }

func (j *Prismatic) Transform(param []float64) (geom.Transform, error) {
	if err := checkDOF("prismatic", 1, param); err != nil {
		return geom.Transform{}, err
	}
	d := param[0]
	if j.LimitTravel != nil && (d < j.LimitTravel[0] || d > j.LimitTravel[1]) {
		return geom.Transform{}, &thing.InvalidParameterError{
			Thing: "joint/prismatic", Param: "displacement", Value: d,
			Reason: "outside joint limits",
		}
	}
	return geom.Translate(geom.Vec3{Z: d}), nil
}

// Translation is a fixed offset expressed as a three component vector
// parameter. It behaves like Rigid once its offset is chosen; the
// vector form keeps simple spacer attachments adjustable without
// authoring a dedicated mount point per spacing.
type Translation struct{}

var _ Joint = Translation{}

func (Translation) Kind() string { return "translation" }
func (Translation) DOF() int { return 3 }
func (Translation) Default() []float64 { return []float64{0, 0, 0} }

func (Translation) Transform(param []float64) (geom.Transform, error) {
	if err := checkDOF("translation", 3, param); err != nil {
		return geom.Transform{}, err
	}
	return geom.Translate(geom.Vec3{X: param[0], Y: param[1], Z: param[2]}), nil
}
