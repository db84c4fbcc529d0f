package raster

import (
	"image"
	"image/color"
	"math"
)

// FrameBuffer holds the rendering target as flat slices for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	ZBuf   []float32 // inverse view depth per pixel, len = W*H, initialized to -inf
}

// NewFrameBuffer allocates a w×h buffer cleared to bg with an empty z-buffer.
func NewFrameBuffer(w, h int, bg color.NRGBA) *FrameBuffer {
	n := w * h
	zbuf := make([]float32, n)
	negInf := float32(math.Inf(-1))
	for i := range zbuf {
		zbuf[i] = negInf
	}
	pix := make([]uint8, n*4)
	for i := 0; i < n; i++ {
		pix[i*4] = bg.R
		pix[i*4+1] = bg.G
		pix[i*4+2] = bg.B
		pix[i*4+3] = bg.A
	}
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  pix,
		ZBuf:   zbuf,
	}
}

// Image wraps the color buffer without copying. Drawing into fb after the
// call shows through the returned image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    fb.Color,
		Stride: fb.Width * 4,
		Rect:   image.Rect(0, 0, fb.Width, fb.Height),
	}
}

// blend composites c (0..255 per channel) over pixel i with coverage alpha.
func (fb *FrameBuffer) blend(i int, c [3]float64, alpha float64) {
	p := fb.Color[i*4 : i*4+4]
	if alpha >= 1 {
		p[0], p[1], p[2], p[3] = clamp255(c[0]), clamp255(c[1]), clamp255(c[2]), 255
		return
	}
	inv := 1 - alpha
	p[0] = clamp255(c[0]*alpha + float64(p[0])*inv)
	p[1] = clamp255(c[1]*alpha + float64(p[1])*inv)
	p[2] = clamp255(c[2]*alpha + float64(p[2])*inv)
	p[3] = clamp255(255*alpha + float64(p[3])*inv)
}

// depthPass reports whether a fragment at inverse depth z is visible at
// pixel i and records it when write is set.
func (fb *FrameBuffer) depthPass(i int, z float64, write bool) bool {
	z32 := float32(z)
	if z32 <= fb.ZBuf[i] {
		return false
	}
	if write {
		fb.ZBuf[i] = z32
	}
	return true
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
