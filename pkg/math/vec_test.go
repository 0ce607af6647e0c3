package math

import (
	"math"
	"testing"
)

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 4, 12}.Normalize()
	if l := n.Length(); l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero Normalize() = %v, want zero", got)
	}
}

func TestVec3AxisSwap(t *testing.T) {
	v := Vec3{1, 2, 3}
	if got, want := v.YUp(), (Vec3{1, 3, -2}); got != want {
		t.Errorf("YUp() = %v, want %v", got, want)
	}
	if got := v.YUp().ZUp(); got != v {
		t.Errorf("ZUp(YUp(v)) = %v, want %v", got, v)
	}
	if got := v.ZUp().YUp(); got != v {
		t.Errorf("YUp(ZUp(v)) = %v, want %v", got, v)
	}
}

func TestRadiansDegrees(t *testing.T) {
	tests := []struct {
		deg, rad float64
	}{
		{0, 0},
		{90, math.Pi / 2},
		{-90, -math.Pi / 2},
		{180, math.Pi},
	}
	for _, tt := range tests {
		if got := Radians(tt.deg); math.Abs(got-tt.rad) > 1e-12 {
			t.Errorf("Radians(%v) = %v, want %v", tt.deg, got, tt.rad)
		}
		if got := Degrees(tt.rad); math.Abs(got-tt.deg) > 1e-12 {
			t.Errorf("Degrees(%v) = %v, want %v", tt.rad, got, tt.deg)
		}
	}
}

// dist returns the distance between two points.
func dist(a, b Vec3) float64 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}.Length()
}

// quatDot returns the 4D dot product; |quatDot| == 1 means the same rotation.
func quatDot(a, b Quat) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}
