package lsys

import "math"

// Quat represents a rotation as a unit quaternion.
//
// Orientation state is kept as a quaternion rather than Euler angles so
// that arbitrary sequences of yaw, pitch and roll cannot gimbal-lock.
type Quat struct {
	W, X, Y, Z float64
}

// IdentityQuat returns the rotation that leaves every vector unchanged.
func IdentityQuat() Quat {
	return Quat{W: 1}
}

// AxisAngle creates a rotation of angle radians about axis.
// A zero axis yields the identity.
func AxisAngle(axis Vec3, angle float64) Quat {
	axis = axis.Normalize()
	if axis.IsZero() {
		return IdentityQuat()
	}
	s, c := math.Sincos(angle / 2)
	return Quat{W: c, X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s}
}

// Mul returns the Hamilton product q * r.
//
// When q is an accumulated orientation, q.Mul(r) applies r in q's local
// frame: the turtle rotates about its own axes, not the world's.
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
	}
}

// Conjugate returns the inverse rotation of a unit quaternion.
func (q Quat) Conjugate() Quat {
	return Quat{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Norm returns the quaternion magnitude.
func (q Quat) Norm() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Normalize returns q scaled to unit length.
// Returns the identity if q has zero length.
func (q Quat) Normalize() Quat {
	n := q.Norm()
	if n == 0 {
		return IdentityQuat()
	}
	inv := 1 / n
	return Quat{W: q.W * inv, X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	// v' = v + 2w(u×v) + 2u×(u×v), u the vector part.
	u := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Mul(2)
	return v.Add(t.Mul(q.W)).Add(u.Cross(t))
}

// Approx reports whether q and r describe the same rotation within epsilon.
// q and -q are the same rotation.
func (q Quat) Approx(r Quat, epsilon float64) bool {
	same := math.Abs(q.W-r.W) < epsilon && math.Abs(q.X-r.X) < epsilon &&
		math.Abs(q.Y-r.Y) < epsilon && math.Abs(q.Z-r.Z) < epsilon
	if same {
		return true
	}
	return math.Abs(q.W+r.W) < epsilon && math.Abs(q.X+r.X) < epsilon &&
		math.Abs(q.Y+r.Y) < epsilon && math.Abs(q.Z+r.Z) < epsilon
}

// IsIdentity returns true if q is exactly the identity rotation.
func (q Quat) IsIdentity() bool {
	return q.W == 1 && q.X == 0 && q.Y == 0 && q.Z == 0
}
