package raster

import (
	"fmt"
	"image"
	"image/color"

	"meshscene/internal/colors"
	"meshscene/internal/mathutil"
	"meshscene/internal/polydata"
	"meshscene/internal/scene"
)

// labelOffset moves scale bar labels off their axis tips, pixels.
const labelOffset = 4

// Options controls one render.
type Options struct {
	Width      int
	Height     int
	Background color.NRGBA
	Light      LightConfig
}

// DefaultOptions renders 1080×720 on white.
func DefaultOptions() Options {
	return Options{
		Width:      1080,
		Height:     720,
		Background: color.NRGBA{255, 255, 255, 255},
		Light:      DefaultLightConfig(),
	}
}

// Caps describes the renderer to geometry builders. Cell ids are read
// widened to 64 bits, so either storage width is accepted.
type Caps struct{}

// IDTypeSize returns the preferred cell id size in bytes.
func (Caps) IDTypeSize() int { return 8 }

// Render draws actors as seen by cam. Opaque actors are drawn first, then
// translucent ones in order, then overlays on top of everything.
func Render(actors []scene.Actor, cam scene.Camera, opts Options) (*image.NRGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("raster: invalid size %dx%d", opts.Width, opts.Height)
	}
	if opts.Light == (LightConfig{}) {
		opts.Light = DefaultLightConfig()
	}

	fb := NewFrameBuffer(opts.Width, opts.Height, opts.Background)
	pr := NewProjector(cam, opts.Width, opts.Height)

	var opaque, translucent, overlay []scene.Actor
	for _, a := range actors {
		switch {
		case a.Overlay():
			overlay = append(overlay, a)
		case a.Property.Opacity >= 1:
			opaque = append(opaque, a)
		default:
			translucent = append(translucent, a)
		}
	}

	for _, pass := range [][]scene.Actor{opaque, translucent, overlay} {
		for i, a := range pass {
			if err := drawActor(fb, pr, &opts.Light, a); err != nil {
				return nil, fmt.Errorf("raster: %s actor %d: %w", a.Kind, i, err)
			}
		}
	}
	return fb.Image(), nil
}

func drawActor(fb *FrameBuffer, pr Projector, lc *LightConfig, a scene.Actor) error {
	pd := a.Geometry
	if pd == nil {
		return nil
	}
	alpha := clampUnit(a.Property.Opacity)
	if alpha == 0 {
		return nil
	}
	pts := pd.Points()
	pal := newPalette(a)

	if a.Kind == scene.KindPointCloud {
		for i, p := range pts {
			r := 1.0
			if i < len(a.Sizes) {
				r = a.Sizes[i]
			}
			drawSphere(fb, pr, mathutil.Vec3(p), r, pal.at(i, -1), alpha, lc)
		}
		return nil
	}

	type proj struct {
		x, y, invZ float64
		ok         bool
	}
	pp := make([]proj, len(pts))
	for i, p := range pts {
		x, y, invZ, _, ok := pr.Project(mathutil.Vec3(p))
		pp[i] = proj{x, y, invZ, ok}
	}

	faces, err := pd.Polys().Matrix()
	if err != nil {
		return err
	}
	if faces.Rows > 0 {
		faceN, err := polydata.FaceNormals(pd)
		if err != nil {
			return err
		}
	tris:
		for i := 0; i < faces.Rows; i++ {
			var v [3]vertex
			for j, p := range faces.Row(i) {
				if !pp[p].ok {
					continue tris
				}
				n := faceN[i]
				if a.Normals != nil {
					n = a.Normals[p]
				}
				shade := lc.ComputeShade(pr.ToView(mathutil.Vec3(n)))
				v[j] = vertex{pp[p].x, pp[p].y, pp[p].invZ, lc.Apply(pal.at(p, i), shade)}
			}
			rasterizeTriangle(fb, v, alpha)
		}
	}

	lines, err := pd.Lines().Matrix()
	if err != nil {
		return err
	}
	// per-cell colors cover lines only when there are no triangles
	lineCell := func(i int) int {
		if faces.Rows > 0 {
			return -1
		}
		return i
	}
	for i := 0; i < lines.Rows; i++ {
		p, q := lines.At(i, 0), lines.At(i, 1)
		if !pp[p].ok || !pp[q].ok {
			continue
		}
		va := vertex{pp[p].x, pp[p].y, pp[p].invZ, flat(pal.at(p, lineCell(i)))}
		vb := vertex{pp[q].x, pp[q].y, pp[q].invZ, flat(pal.at(q, lineCell(i)))}
		drawLine(fb, va, vb, a.Property.LineWidth, alpha, !a.Overlay())
	}

	rgb := flat(pal.solid)
	for _, l := range a.Labels {
		x, y, _, _, ok := pr.Project(l.At)
		if !ok {
			continue
		}
		drawLabel(fb, x+labelOffset, y-labelOffset, l.Text, a.FontSize, rgb, alpha)
	}
	return nil
}

// palette resolves the color of a point or cell of one actor. Point
// colors win over cell colors, which win over the flat property color.
type palette struct {
	solid [3]uint8
	point [][3]uint8
	cell  [][3]uint8
}

func newPalette(a scene.Actor) palette {
	c := a.Property.Color
	p := palette{solid: [3]uint8{
		colors.ToByte(float32(clampUnit(c[0]))),
		colors.ToByte(float32(clampUnit(c[1]))),
		colors.ToByte(float32(clampUnit(c[2]))),
	}}
	if attr, ok := a.Geometry.PointAttribute(scene.ColorArray); ok {
		p.point = attributeRGB(attr)
	}
	if attr, ok := a.Geometry.CellAttribute(scene.ColorArray); ok {
		p.cell = attributeRGB(attr)
	}
	return p
}

func (p palette) at(point, cell int) [3]uint8 {
	if point >= 0 && point < len(p.point) {
		return p.point[point]
	}
	if cell >= 0 && cell < len(p.cell) {
		return p.cell[cell]
	}
	return p.solid
}

func attributeRGB(a colors.Attribute) [][3]uint8 {
	if a.Mapped() {
		return colors.MapScalars(a.Scalars)
	}
	return a.RGB
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
