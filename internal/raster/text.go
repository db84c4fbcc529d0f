package raster

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// drawLabel draws text px pixels tall with its lower-left corner at (x, y).
// The 7x13 bitmap face is scaled to size.
func drawLabel(fb *FrameBuffer, x, y float64, text string, px int, rgb [3]float64, alpha float64) {
	face := basicfont.Face7x13
	w := font.MeasureString(face, text).Ceil()
	if w == 0 || px <= 0 {
		return
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, face.Height))
	d := font.Drawer{Dst: mask, Src: image.Opaque, Face: face, Dot: fixed.P(0, face.Ascent)}
	d.DrawString(text)

	sw := int(math.Max(1, math.Round(float64(w)*float64(px)/float64(face.Height))))
	scaled := image.NewAlpha(image.Rect(0, 0, sw, px))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), mask, mask.Bounds(), draw.Src, nil)

	ox, oy := int(math.Round(x)), int(math.Round(y))-px
	for j := 0; j < px; j++ {
		ty := oy + j
		if ty < 0 || ty >= fb.Height {
			continue
		}
		for i := 0; i < sw; i++ {
			tx := ox + i
			if tx < 0 || tx >= fb.Width {
				continue
			}
			a := scaled.AlphaAt(i, j).A
			if a == 0 {
				continue
			}
			fb.blend(ty*fb.Width+tx, rgb, alpha*float64(a)/255)
		}
	}
}
