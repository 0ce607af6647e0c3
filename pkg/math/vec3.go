// Package math provides the vector, quaternion and matrix types used to
// move object transforms between the authoring and runtime coordinate systems.
package math

import "math"

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// One is the unit scale vector.
var One = Vec3{1, 1, 1}

// Negate returns -v.
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Length returns the magnitude.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns a unit vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// IsZero reports whether all components are exactly zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// YUp converts a Z-up vector to the Y-up runtime convention: (x, z, -y).
func (v Vec3) YUp() Vec3 {
	return Vec3{v.X, v.Z, -v.Y}
}

// ZUp converts a Y-up vector to the Z-up authoring convention: (x, -z, y).
// It is the inverse of YUp.
func (v Vec3) ZUp() Vec3 {
	return Vec3{v.X, -v.Z, v.Y}
}

// Vec3From builds a vector from an array.
func Vec3From(a [3]float64) Vec3 {
	return Vec3{a[0], a[1], a[2]}
}
