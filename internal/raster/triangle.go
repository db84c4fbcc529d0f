package raster

import "math"

// vertex is a projected point carrying its lit color.
type vertex struct {
	X, Y, InvZ float64
	RGB        [3]float64 // 0..255
}

// rasterizeTriangle fills a triangle with barycentric color interpolation
// and a z-buffer test. Translucent triangles (alpha < 1) are blended and
// leave the z-buffer untouched.
func rasterizeTriangle(fb *FrameBuffer, v [3]vertex, alpha float64) {
	x0, y0, z0 := v[0].X, v[0].Y, v[0].InvZ
	x1, y1, z1 := v[1].X, v[1].Y, v[1].InvZ
	x2, y2, z2 := v[2].X, v[2].Y, v[2].InvZ

	// Bounding box
	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2)))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2)))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2)))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2)))

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
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	// Precompute edge deltas
	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	write := alpha >= 1

	// Pixel loop, sampled at pixel centers
	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			idx := rowOff + sx
			if !fb.depthPass(idx, z, write) {
				continue
			}

			var c [3]float64
			for k := 0; k < 3; k++ {
				c[k] = w0*v[0].RGB[k] + w1*v[1].RGB[k] + w2*v[2].RGB[k]
			}
			fb.blend(idx, c, alpha)
		}
	}
}

// drawLine draws a segment width pixels wide. Every covered pixel is
// visited once so translucent lines blend evenly. depthTest false draws
// over everything.
func drawLine(fb *FrameBuffer, a, b vertex, width, alpha float64, depthTest bool) {
	r := math.Max(width, 1) / 2

	minX := int(math.Floor(math.Min(a.X, b.X) - r))
	maxX := int(math.Ceil(math.Max(a.X, b.X) + r))
	minY := int(math.Floor(math.Min(a.Y, b.Y) - r))
	maxY := int(math.Ceil(math.Max(a.Y, b.Y) + r))
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

	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	r2 := r * r
	write := depthTest && alpha >= 1

	for sy := minY; sy <= maxY; sy++ {
		py := float64(sy) + 0.5
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			px := float64(sx) + 0.5

			t := 0.0
			if l2 > 1e-12 {
				t = ((px-a.X)*dx + (py-a.Y)*dy) / l2
				t = math.Max(0, math.Min(1, t))
			}
			ex, ey := a.X+t*dx-px, a.Y+t*dy-py
			if ex*ex+ey*ey > r2 {
				continue
			}

			idx := rowOff + sx
			if depthTest {
				z := a.InvZ + t*(b.InvZ-a.InvZ)
				if !fb.depthPass(idx, z, write) {
					continue
				}
			}
			var c [3]float64
			for k := 0; k < 3; k++ {
				c[k] = a.RGB[k] + t*(b.RGB[k]-a.RGB[k])
			}
			fb.blend(idx, c, alpha)
		}
	}
}
