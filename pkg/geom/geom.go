// Package geom provides the small rigid-body math used throughout the
// assembly model: 3-vectors, 3x3 rotation matrices and rigid transforms.
// Angles are Euler angles in degrees applied in Z*Y*X order, matching the
// geometry kernel's rotation convention.
package geom

import (
	"fmt"
	"math"
)

// Vec3 represents a 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns the component-wise sum of two vectors.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the component-wise difference of two vectors.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns the vector scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v x o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Norm returns the Euclidean length.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Mat3 is a 3x3 matrix in row-major layout.
type Mat3 [3][3]float64

// IdentityMat3 returns the identity matrix.
func IdentityMat3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Mul returns the matrix product m * o.
func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				r[i][j] += m[i][k] * o[k][j]
			}
		}
	}
	return r
}

// MulVec returns the matrix-vector product m * v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Transpose returns the transposed matrix. For rotation matrices this is
// the inverse.
func (m Mat3) Transpose() Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// rotX returns the rotation matrix about the X axis by deg degrees.
func rotX(deg float64) Mat3 {
	s, c := math.Sincos(radians(deg))
	return Mat3{{1, 0, 0}, {0, c, -s}, {0, s, c}}
}

// rotY returns the rotation matrix about the Y axis by deg degrees.
func rotY(deg float64) Mat3 {
	s, c := math.Sincos(radians(deg))
	return Mat3{{c, 0, s}, {0, 1, 0}, {-s, 0, c}}
}

// rotZ returns the rotation matrix about the Z axis by deg degrees.
func rotZ(deg float64) Mat3 {
	s, c := math.Sincos(radians(deg))
	return Mat3{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}
}

// Transform is a rigid transform: rotation R followed by translation T,
// mapping a local point p to R*p + T.
type Transform struct {
	R Mat3
	T Vec3
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{R: IdentityMat3()}
}

// Translate returns a pure translation by v.
func Translate(v Vec3) Transform {
	return Transform{R: IdentityMat3(), T: v}
}

// RotateZ returns a pure rotation about the Z axis by deg degrees.
func RotateZ(deg float64) Transform {
	return Transform{R: rotZ(deg)}
}

// Euler returns a transform translating by t and rotating by Euler angles
// (rx, ry, rz) in degrees, composed as Rz * Ry * Rx.
func Euler(t Vec3, rx, ry, rz float64) Transform {
	return Transform{R: rotZ(rz).Mul(rotY(ry)).Mul(rotX(rx)), T: t}
}

// Compose returns the transform equivalent to applying o first, then a:
// (a.Compose(o))(p) == a(o(p)).
func (a Transform) Compose(o Transform) Transform {
	return Transform{
		R: a.R.Mul(o.R),
		T: a.R.MulVec(o.T).Add(a.T),
	}
}

// Inverse returns the inverse rigid transform.
func (a Transform) Inverse() Transform {
	rt := a.R.Transpose()
	return Transform{R: rt, T: rt.MulVec(a.T).Scale(-1)}
}

// Apply maps a point through the transform.
func (a Transform) Apply(p Vec3) Vec3 {
	return a.R.MulVec(p).Add(a.T)
}

// ApplyDir rotates a direction vector, ignoring translation.
func (a Transform) ApplyDir(d Vec3) Vec3 {
	return a.R.MulVec(d)
}

// IsIdentity reports whether the transform is the identity within eps.
func (a Transform) IsIdentity(eps float64) bool {
	id := IdentityMat3()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(a.R[i][j]-id[i][j]) > eps {
				return false
			}
		}
	}
	return a.T.Norm() <= eps
}

// EulerZYX decomposes the rotation into Euler angles (rx, ry, rz) in
// degrees such that R == Rz(rz)*Ry(ry)*Rx(rx). At the gimbal-lock
// singularity (|ry| == 90deg) rz is fixed to zero.
func (a Transform) EulerZYX() (rx, ry, rz float64) {
	s := -a.R[2][0]
	if s > 1 {
		s = 1
	} else if s < -1 {
		s = -1
	}
	ry = math.Asin(s)
	if math.Abs(s) < 1-1e-9 {
		rx = math.Atan2(a.R[2][1], a.R[2][2])
		rz = math.Atan2(a.R[1][0], a.R[0][0])
	} else {
		rx = math.Atan2(-a.R[0][1], a.R[1][1])
		rz = 0
	}
	return degrees(rx), degrees(ry), degrees(rz)
}

// ApproxEqual reports whether two transforms agree within eps in every
// rotation entry and translation component.
func (a Transform) ApproxEqual(b Transform, eps float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(a.R[i][j]-b.R[i][j]) > eps {
				return false
			}
		}
	}
	return a.T.Sub(b.T).Norm() <= eps
}

func (a Transform) String() string {
	rx, ry, rz := a.EulerZYX()
	return fmt.Sprintf("T%s R(%g, %g, %g)", a.T, rx, ry, rz)
}
