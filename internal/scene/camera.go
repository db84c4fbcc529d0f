// Package scene describes what to draw: cameras and actors built from
// vertex arrays. It holds plain values only; drawing them is the job of
// the raster package.
package scene

import (
	"math"

	"meshscene/internal/mathutil"
)

// DefaultViewAngle is the vertical field of view of a new camera, degrees.
const DefaultViewAngle = 30.0

// Placement defaults for Oriented and FromQuat callers that leave a
// parameter out.
const (
	DefaultBackoff      = 500.0
	DefaultQuatDistance = 10000.0
)

var (
	// DefaultOrientedUp is -y, the up direction of image-stack coordinates.
	DefaultOrientedUp    = mathutil.Vec3{0, -1, 0}
	DefaultBackoffVector = mathutil.Vec3{0, 0, 1}
)

// Camera is a perspective camera looking from Position at FocalPoint.
type Camera struct {
	Position   mathutil.Vec3
	FocalPoint mathutil.Vec3
	ViewUp     mathutil.Vec3
	ViewAngle  float64 // degrees
}

// NewCamera returns the default camera: at (0,0,1) looking at the origin
// with +y up.
func NewCamera() Camera {
	return Camera{
		Position:  mathutil.Vec3{0, 0, 1},
		ViewUp:    mathutil.Vec3{0, 1, 0},
		ViewAngle: DefaultViewAngle,
	}
}

// Direction returns the unit vector from Position towards FocalPoint.
func (c Camera) Direction() mathutil.Vec3 {
	return c.FocalPoint.Sub(c.Position).Normalize()
}

// Distance returns the distance between Position and FocalPoint.
func (c Camera) Distance() float64 {
	return c.FocalPoint.Sub(c.Position).Len()
}

// Azimuth rotates the position around the view-up vector through the
// focal point.
func (c Camera) Azimuth(deg float64) Camera {
	r := mathutil.RotAxis(c.ViewUp, mathutil.Deg2Rad(deg))
	c.Position = c.FocalPoint.Add(r.MulVec3(c.Position.Sub(c.FocalPoint)))
	return c
}

// Roll spins the view-up vector around the direction of projection.
func (c Camera) Roll(deg float64) Camera {
	r := mathutil.RotAxis(c.Direction(), mathutil.Deg2Rad(deg))
	c.ViewUp = r.MulVec3(c.ViewUp)
	return c
}

// FromQuat places a camera distance away from center. The default
// orientation (+y up, backed off along +z) is rotated by q (x,y,z,w).
// nglCorrect flips the result for viewers whose y axis points down.
func FromQuat(center mathutil.Vec3, q mathutil.Quat, distance float64, nglCorrect bool) Camera {
	m := mathutil.QuatToMat3(q)

	c := NewCamera()
	c.ViewUp = m.MulVec3(mathutil.Vec3{0, 1, 0})
	c.Position = m.MulVec3(mathutil.Vec3{0, 0, distance})
	c.FocalPoint = mathutil.Vec3{}
	if nglCorrect {
		c = c.Azimuth(-180).Roll(180)
	}

	c.Position = c.Position.Add(center)
	c.FocalPoint = center
	return c
}

// Oriented returns a camera focused on center with the given up direction,
// backed off from center by backoff*1000 along backoffVector.
func Oriented(center, up mathutil.Vec3, backoff float64, backoffVector mathutil.Vec3) Camera {
	c := NewCamera()
	c.FocalPoint = center
	c.ViewUp = up.Normalize()
	c.Position = center.Sub(backoffVector.Scale(backoff * 1000))
	return c
}

// ResetCamera returns a camera looking down -z at the center of the box
// lo..hi, far enough back that the box's bounding sphere fits both the
// vertical view angle and the horizontal one implied by aspect (w/h).
func ResetCamera(lo, hi [3]float64, aspect float64) Camera {
	c := NewCamera()
	center := mathutil.Vec3{(lo[0] + hi[0]) / 2, (lo[1] + hi[1]) / 2, (lo[2] + hi[2]) / 2}
	radius := mathutil.Vec3(hi).Sub(mathutil.Vec3(lo)).Len() / 2
	if radius < 1e-9 {
		radius = 0.5
	}
	half := mathutil.Deg2Rad(c.ViewAngle) / 2
	if aspect > 0 && aspect < 1 {
		half = math.Atan(math.Tan(half) * aspect)
	}
	c.FocalPoint = center
	c.Position = center.Add(mathutil.Vec3{0, 0, radius / math.Sin(half)})
	return c
}
