package raster

import (
	"math"

	"meshscene/internal/mathutil"
	"meshscene/internal/scene"
)

// near is the closest view depth that is still drawn.
const near = 1e-6

// Projector maps world points to pixel coordinates for one camera.
type Projector struct {
	eye    mathutil.Vec3
	view   mathutil.Mat3 // world to camera space, +z towards the viewer
	focal  float64       // pixels per unit at depth 1
	cx, cy float64
}

// NewProjector sets up a perspective projection onto a w×h image. The
// camera's view angle spans the image height.
func NewProjector(cam scene.Camera, w, h int) Projector {
	fwd := cam.Direction()
	right := fwd.Cross(cam.ViewUp).Normalize()
	if right == (mathutil.Vec3{}) {
		// up parallel to the view direction; pick any perpendicular
		right = fwd.Cross(mathutil.Vec3{1, 0, 0}).Normalize()
		if right == (mathutil.Vec3{}) {
			right = fwd.Cross(mathutil.Vec3{0, 1, 0}).Normalize()
		}
	}
	angle := cam.ViewAngle
	if angle <= 0 || angle >= 180 {
		angle = scene.DefaultViewAngle
	}
	return Projector{
		eye:   cam.Position,
		view:  mathutil.Mat3Rows(right, right.Cross(fwd), fwd.Scale(-1)),
		focal: float64(h) / 2 / math.Tan(mathutil.Deg2Rad(angle)/2),
		cx:    float64(w) / 2,
		cy:    float64(h) / 2,
	}
}

// Project returns the pixel position of p, its inverse view depth and its
// view depth. ok is false for points behind the camera.
func (pr Projector) Project(p mathutil.Vec3) (x, y, invZ, depth float64, ok bool) {
	v := pr.view.MulVec3(p.Sub(pr.eye))
	depth = -v[2]
	if !(depth >= near) {
		return 0, 0, 0, depth, false
	}
	s := pr.focal / depth
	x = pr.cx + v[0]*s
	y = pr.cy - v[1]*s
	return x, y, 1 / depth, depth, true
}

// PixelsPerUnit returns how many pixels one world unit spans at depth.
func (pr Projector) PixelsPerUnit(depth float64) float64 {
	return pr.focal / depth
}

// ToView rotates a world direction into camera space (+z towards viewer).
func (pr Projector) ToView(n mathutil.Vec3) mathutil.Vec3 {
	return pr.view.MulVec3(n)
}
