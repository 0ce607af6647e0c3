package math

import "math"

// axisAngleEpsilon matches single precision epsilon; below it the rotation
// is treated as having no meaningful axis.
const axisAngleEpsilon = 1.1920929e-7

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	halfAngle := angle / 2
	s := math.Sin(halfAngle)
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: math.Cos(halfAngle),
	}
}

// QuatFromEuler creates a quaternion from XYZ euler angles in radians.
// X is applied first, then Y, then Z.
func QuatFromEuler(x, y, z float64) Quat {
	qx := QuatFromAxisAngle(Vec3{X: 1}, x)
	qy := QuatFromAxisAngle(Vec3{Y: 1}, y)
	qz := QuatFromAxisAngle(Vec3{Z: 1}, z)
	return qz.Mul(qy).Mul(qx)
}

// IsZero reports whether all four components are zero, which is never a
// valid rotation and usually means the value was left unset.
func (q Quat) IsZero() bool {
	return q.X == 0 && q.Y == 0 && q.Z == 0 && q.W == 0
}

// Normalize returns a normalized quaternion.
func (q Quat) Normalize() Quat {
	length := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if length < 0.0001 {
		return QuatIdentity()
	}
	invLen := 1.0 / length
	return Quat{
		X: q.X * invLen,
		Y: q.Y * invLen,
		Z: q.Z * invLen,
		W: q.W * invLen,
	}
}

// Canonical returns the quaternion with a non-negative scalar part.
// q and -q describe the same rotation.
func (q Quat) Canonical() Quat {
	if q.W < 0 {
		return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: -q.W}
	}
	return q
}

// Mul multiplies two quaternions (combines rotations).
// The result applies other first, then q.
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// ToMat4 converts the quaternion to a 4x4 rotation matrix.
func (q Quat) ToMat4() Mat4 {
	// Normalize first
	q = q.Normalize()

	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + zw), 2 * (xz - yw), 0,
		2 * (xy - zw), 1 - 2*(xx+zz), 2 * (yz + xw), 0,
		2 * (xz + yw), 2 * (yz - xw), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}

// ToAxisAngle splits the rotation into a rotation axis and an angle in radians.
// A rotation without a meaningful axis reports the Y axis.
func (q Quat) ToAxisAngle() (Vec3, float64) {
	q = q.Normalize()
	w := math.Max(-1, math.Min(1, q.W))

	half := math.Acos(w)
	si := math.Sin(half)
	if math.Abs(si) < axisAngleEpsilon {
		si = 1
	}

	axis := Vec3{q.X / si, q.Y / si, q.Z / si}
	if axis.IsZero() {
		axis.Y = 1
	}
	return axis, half * 2
}

// YUp converts a Z-up rotation to the Y-up runtime convention by remapping
// its vector part the same way as Vec3.YUp.
func (q Quat) YUp() Quat {
	return Quat{X: q.X, Y: q.Z, Z: -q.Y, W: q.W}
}

// ZUp is the inverse of YUp.
func (q Quat) ZUp() Quat {
	return Quat{X: q.X, Y: -q.Z, Z: q.Y, W: q.W}
}
