package scene

import (
	"meshscene/internal/cells"
	"meshscene/internal/colors"
)

// Option configures an actor constructor. Options that do not apply to a
// given kind of actor are ignored.
type Option func(*config)

type config struct {
	prop  Property
	width cells.IDWidth

	vertexColors  colors.Spec
	faceColors    colors.Spec
	calcNormals   bool
	showLinkEdges bool

	edgeScalars   []float32
	vertexScalars []float32
	normalize     bool

	size  float64
	sizes []float64

	length   float64
	fontSize int
}

func newConfig(prop Property, opts []Option) *config {
	c := &config{
		prop:        prop,
		width:       cells.Native(),
		calcNormals: true,
		normalize:   true,
		size:        100,
		length:      10000,
		fontSize:    20,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *config) scalars(v []float32) []float32 {
	if c.normalize {
		return colors.NormalizeMax(v)
	}
	return v
}

// WithColor sets the flat color, components in [0,1].
func WithColor(rgb [3]float64) Option {
	return func(c *config) { c.prop.Color = rgb }
}

// WithOpacity sets opacity in [0,1].
func WithOpacity(o float64) Option {
	return func(c *config) { c.prop.Opacity = o }
}

// WithLineWidth sets the width of line cells in pixels.
func WithLineWidth(w float64) Option {
	return func(c *config) { c.prop.LineWidth = w }
}

// WithIDWidth selects the index width cell arrays are encoded with.
func WithIDWidth(w cells.IDWidth) Option {
	return func(c *config) { c.width = w }
}

// WithVertexColors colors mesh vertices or cloud points.
func WithVertexColors(s colors.Spec) Option {
	return func(c *config) { c.vertexColors = s }
}

// WithFaceColors colors mesh triangles.
func WithFaceColors(s colors.Spec) Option {
	return func(c *config) { c.faceColors = s }
}

// WithNormals turns smoothed mesh normals on or off.
func WithNormals(on bool) Option {
	return func(c *config) { c.calcNormals = on }
}

// WithLinkEdges draws a mesh's link edges as lines.
func WithLinkEdges(on bool) Option {
	return func(c *config) { c.showLinkEdges = on }
}

// WithEdgeScalars colors skeleton edges by a per-edge property.
func WithEdgeScalars(v []float32) Option {
	return func(c *config) { c.edgeScalars = v }
}

// WithVertexScalars colors skeleton vertices by a per-vertex property.
func WithVertexScalars(v []float32) Option {
	return func(c *config) { c.vertexScalars = v }
}

// WithNormalize controls dividing skeleton properties by their maximum.
func WithNormalize(on bool) Option {
	return func(c *config) { c.normalize = on }
}

// WithSize sets one sphere radius for every point of a cloud.
func WithSize(s float64) Option {
	return func(c *config) { c.size, c.sizes = s, nil }
}

// WithSizes sets per-point sphere radii for a cloud.
func WithSizes(s []float64) Option {
	return func(c *config) { c.sizes = s }
}

// WithLength sets the axis length of a scale bar.
func WithLength(l float64) Option {
	return func(c *config) { c.length = l }
}

// WithFontSize sets the label size of a scale bar in pixels.
func WithFontSize(px int) Option {
	return func(c *config) { c.fontSize = px }
}
