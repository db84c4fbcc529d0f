package mathutil

import "math"

// RotAxis returns the right-handed rotation by a radians around axis
// (Rodrigues). A zero axis yields the identity.
func RotAxis(axis Vec3, a float64) Mat3 {
	k := axis.Normalize()
	if k == (Vec3{}) {
		return Mat3Identity()
	}
	c, s := math.Cos(a), math.Sin(a)
	t := 1 - c
	x, y, z := k[0], k[1], k[2]
	return Mat3{
		t*x*x + c, t*x*y - s*z, t*x*z + s*y,
		t*x*y + s*z, t*y*y + c, t*y*z - s*x,
		t*x*z - s*y, t*y*z + s*x, t*z*z + c,
	}
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
