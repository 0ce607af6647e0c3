package math

import "math"

// Mat4 is a 4x4 matrix in column-major order (OpenGL compatible).
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float64

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(x, y, z float64) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// Scale returns a scale matrix.
func Scale(x, y, z float64) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// RotateX returns a rotation matrix around the X axis.
// angle is in radians.
func RotateX(angle float64) Mat4 {
	c := math.Cos(angle)
	s := math.Sin(angle)

	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// Compose builds translation * rotation * scale.
func Compose(t Vec3, r Quat, s Vec3) Mat4 {
	return Translate(t.X, t.Y, t.Z).Mul(r.ToMat4()).Mul(Scale(s.X, s.Y, s.Z))
}

// Mul multiplies this matrix by another (m * other).
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			result[col*4+row] =
				m[0*4+row]*other[col*4+0] +
					m[1*4+row]*other[col*4+1] +
					m[2*4+row]*other[col*4+2] +
					m[3*4+row]*other[col*4+3]
		}
	}
	return result
}

// at returns the element at the given row and column.
func (m Mat4) at(row, col int) float64 {
	return m[col*4+row]
}

// Determinant3 returns the determinant of the upper-left 3x3 portion.
func (m Mat4) Determinant3() float64 {
	return m.at(0, 0)*(m.at(1, 1)*m.at(2, 2)-m.at(1, 2)*m.at(2, 1)) -
		m.at(0, 1)*(m.at(1, 0)*m.at(2, 2)-m.at(1, 2)*m.at(2, 0)) +
		m.at(0, 2)*(m.at(1, 0)*m.at(2, 1)-m.at(1, 1)*m.at(2, 0))
}

// Decompose splits an affine matrix into translation, rotation and scale.
// A mirroring matrix reports all three scale factors negated.
func (m Mat4) Decompose() (Vec3, Quat, Vec3) {
	t := Vec3{m[12], m[13], m[14]}

	cols := [3]Vec3{
		{m[0], m[1], m[2]},
		{m[4], m[5], m[6]},
		{m[8], m[9], m[10]},
	}
	s := Vec3{cols[0].Length(), cols[1].Length(), cols[2].Length()}

	n := cols
	for i := range n {
		n[i] = n[i].Normalize()
	}
	if m.Determinant3() < 0 {
		for i := range n {
			n[i] = n[i].Negate()
		}
		s = s.Negate()
	}

	r := Mat4{
		n[0].X, n[0].Y, n[0].Z, 0,
		n[1].X, n[1].Y, n[1].Z, 0,
		n[2].X, n[2].Y, n[2].Z, 0,
		0, 0, 0, 1,
	}
	return t, r.rotation(), s
}

// rotation extracts a unit quaternion from an orthonormal upper-left 3x3.
func (m Mat4) rotation() Quat {
	r00, r01, r02 := m.at(0, 0), m.at(0, 1), m.at(0, 2)
	r10, r11, r12 := m.at(1, 0), m.at(1, 1), m.at(1, 2)
	r20, r21, r22 := m.at(2, 0), m.at(2, 1), m.at(2, 2)

	var q Quat
	trace := r00 + r11 + r22
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		q = Quat{W: 0.25 / s, X: (r21 - r12) * s, Y: (r02 - r20) * s, Z: (r10 - r01) * s}
	case r00 > r11 && r00 > r22:
		s := 2 * math.Sqrt(1+r00-r11-r22)
		q = Quat{W: (r21 - r12) / s, X: 0.25 * s, Y: (r01 + r10) / s, Z: (r02 + r20) / s}
	case r11 > r22:
		s := 2 * math.Sqrt(1+r11-r00-r22)
		q = Quat{W: (r02 - r20) / s, X: (r01 + r10) / s, Y: 0.25 * s, Z: (r12 + r21) / s}
	default:
		s := 2 * math.Sqrt(1+r22-r00-r11)
		q = Quat{W: (r10 - r01) / s, X: (r02 + r20) / s, Y: (r12 + r21) / s, Z: 0.25 * s}
	}
	return q.Normalize().Canonical()
}
