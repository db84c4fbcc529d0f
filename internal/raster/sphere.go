package raster

import (
	"math"

	"meshscene/internal/mathutil"
)

// drawSphere draws a lit sphere impostor: a disc whose per-pixel normal
// and depth follow the sphere's front surface.
func drawSphere(fb *FrameBuffer, pr Projector, center mathutil.Vec3, radius float64, base [3]uint8, alpha float64, lc *LightConfig) {
	cx, cy, _, depth, ok := pr.Project(center)
	if !ok {
		return
	}
	rpx := math.Max(radius*pr.PixelsPerUnit(depth), 0.5)

	minX := int(math.Floor(cx - rpx))
	maxX := int(math.Ceil(cx + rpx))
	minY := int(math.Floor(cy - rpx))
	maxY := int(math.Ceil(cy + rpx))
	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}

	write := alpha >= 1
	for sy := minY; sy <= maxY; sy++ {
		dy := (float64(sy) + 0.5 - cy) / rpx
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dx := (float64(sx) + 0.5 - cx) / rpx
			d2 := dx*dx + dy*dy
			if d2 > 1 {
				continue
			}
			nz := math.Sqrt(1 - d2)
			z := depth - radius*nz
			if z < near {
				continue
			}
			idx := rowOff + sx
			if !fb.depthPass(idx, 1/z, write) {
				continue
			}
			shade := lc.ComputeShade(mathutil.Vec3{dx, -dy, nz})
			fb.blend(idx, lc.Apply(base, shade), alpha)
		}
	}
}
