package scene

import (
	"errors"
	"fmt"

	"meshscene/internal/cells"
	"meshscene/internal/colors"
	"meshscene/internal/mathutil"
	"meshscene/internal/polydata"
)

// ColorArray is the attribute name actors store resolved colors under.
const ColorArray = "colors"

// ErrSizeLength is returned when per-point sizes do not match the points.
var ErrSizeLength = errors.New("scene: size must be a scalar or one value per point")

// Kind says how an actor's geometry is drawn.
type Kind int

const (
	KindMesh Kind = iota
	KindSkeleton
	KindPointCloud
	KindLinks
	KindScaleBar
)

func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindSkeleton:
		return "skeleton"
	case KindPointCloud:
		return "points"
	case KindLinks:
		return "links"
	case KindScaleBar:
		return "scale_bar"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Property is the flat appearance of an actor.
type Property struct {
	Color     [3]float64 // [0,1]
	Opacity   float64
	LineWidth float64 // pixels
}

// Label is text anchored at a point in world space.
type Label struct {
	At   mathutil.Vec3
	Text string
}

// Actor is one drawable item: geometry plus how to color it.
type Actor struct {
	Kind     Kind
	Geometry *polydata.PolyData
	Property Property

	// Normals are smoothed per-point normals; nil draws flat shaded.
	Normals [][3]float64

	// Sizes are per-point sphere radii for point clouds.
	Sizes []float64

	// Labels and FontSize are set for scale bars, which are drawn over
	// the scene without depth testing.
	Labels   []Label
	FontSize int
}

// Overlay reports whether the actor is drawn on top of the 3D scene.
func (a Actor) Overlay() bool {
	return a.Kind == KindScaleBar
}

// MeshActor builds an actor for a triangle mesh. Link edges are only drawn
// with WithLinkEdges(true), which also turns normal smoothing off.
func MeshActor(points [][3]float64, faces, linkEdges cells.Matrix, opts ...Option) (Actor, error) {
	cfg := newConfig(Property{Color: [3]float64{0, 1, 0}, Opacity: 0.1, LineWidth: 3}, opts)
	cfg.calcNormals = cfg.calcNormals && !cfg.showLinkEdges

	edges := cells.Matrix{}
	if cfg.showLinkEdges {
		edges = linkEdges
	}
	pd, err := polydata.BuildMesh(points, faces, edges, cfg.width)
	if err != nil {
		return Actor{}, fmt.Errorf("scene: mesh actor: %w", err)
	}

	if cfg.vertexColors != nil {
		if pd, err = withPointColors(pd, cfg.vertexColors); err != nil {
			return Actor{}, fmt.Errorf("scene: mesh vertex colors: %w", err)
		}
	}
	if cfg.faceColors != nil {
		if pd, err = withCellColors(pd, cfg.faceColors); err != nil {
			return Actor{}, fmt.Errorf("scene: mesh face colors: %w", err)
		}
	}

	a := Actor{Kind: KindMesh, Geometry: pd, Property: cfg.prop}
	if cfg.calcNormals {
		if a.Normals, err = polydata.PointNormals(pd); err != nil {
			return Actor{}, fmt.Errorf("scene: mesh normals: %w", err)
		}
	}
	return a, nil
}

// SkeletonActor builds an actor for an edge graph, optionally colored by a
// per-edge or per-vertex scalar property.
func SkeletonActor(points [][3]float64, edges cells.Matrix, opts ...Option) (Actor, error) {
	cfg := newConfig(Property{Color: [3]float64{0, 0, 0}, Opacity: 0.7, LineWidth: 3}, opts)

	pd, err := polydata.BuildGraph(points, edges, cfg.width)
	if err != nil {
		return Actor{}, fmt.Errorf("scene: skeleton actor: %w", err)
	}
	if cfg.edgeScalars != nil {
		if pd, err = withCellColors(pd, colors.Scalars{Values: cfg.scalars(cfg.edgeScalars)}); err != nil {
			return Actor{}, fmt.Errorf("scene: skeleton edge property: %w", err)
		}
	}
	if cfg.vertexScalars != nil {
		if pd, err = withPointColors(pd, colors.Scalars{Values: cfg.scalars(cfg.vertexScalars)}); err != nil {
			return Actor{}, fmt.Errorf("scene: skeleton vertex property: %w", err)
		}
	}
	return Actor{Kind: KindSkeleton, Geometry: pd, Property: cfg.prop}, nil
}

// PointCloudActor draws every point as a sphere of the configured size.
func PointCloudActor(points [][3]float64, opts ...Option) (Actor, error) {
	cfg := newConfig(Property{Color: [3]float64{0, 0, 0}, Opacity: 0.5, LineWidth: 1}, opts)

	sizes := cfg.sizes
	if sizes == nil {
		sizes = make([]float64, len(points))
		for i := range sizes {
			sizes[i] = cfg.size
		}
	} else if len(sizes) != len(points) {
		return Actor{}, fmt.Errorf("%w: %d sizes for %d points", ErrSizeLength, len(sizes), len(points))
	}

	pd, err := polydata.BuildGraph(points, cells.Matrix{}, cfg.width)
	if err != nil {
		return Actor{}, fmt.Errorf("scene: point cloud actor: %w", err)
	}
	spec := cfg.vertexColors
	if spec == nil {
		spec = colors.Solid{RGB: float32RGB(cfg.prop.Color)}
	}
	if pd, err = withPointColors(pd, spec); err != nil {
		return Actor{}, fmt.Errorf("scene: point cloud colors: %w", err)
	}
	return Actor{
		Kind:     KindPointCloud,
		Geometry: pd,
		Property: cfg.prop,
		Sizes:    append([]float64(nil), sizes...),
	}, nil
}

// LinkedPointActor draws segments from a[indsA[i]] to b[indsB[i]]. Nil
// index lists select all points.
func LinkedPointActor(a, b [][3]float64, indsA, indsB []int, opts ...Option) (Actor, error) {
	cfg := newConfig(Property{Color: [3]float64{0, 0, 0}, Opacity: 0.2, LineWidth: 1}, opts)
	pd, err := polydata.LinkPoints(a, b, indsA, indsB, cfg.width)
	if err != nil {
		return Actor{}, fmt.Errorf("scene: linked point actor: %w", err)
	}
	return Actor{Kind: KindLinks, Geometry: pd, Property: cfg.prop}, nil
}

// ScaleBar draws x, y and z axes of the configured length starting at
// center, labelled at their far ends.
func ScaleBar(center mathutil.Vec3, opts ...Option) (Actor, error) {
	cfg := newConfig(Property{Color: [3]float64{0, 0, 0}, Opacity: 1, LineWidth: 5}, opts)

	l := cfg.length
	pts := [][3]float64{
		center,
		center.Add(mathutil.Vec3{l, 0, 0}),
		center.Add(mathutil.Vec3{0, l, 0}),
		center.Add(mathutil.Vec3{0, 0, l}),
	}
	axes := cells.MustFromRows([][]int{{0, 1}, {0, 2}, {0, 3}})
	pd, err := polydata.BuildGraph(pts, axes, cfg.width)
	if err != nil {
		return Actor{}, fmt.Errorf("scene: scale bar: %w", err)
	}
	return Actor{
		Kind:     KindScaleBar,
		Geometry: pd,
		Property: cfg.prop,
		Labels: []Label{
			{At: mathutil.Vec3(pts[1]), Text: "x"},
			{At: mathutil.Vec3(pts[2]), Text: "y"},
			{At: mathutil.Vec3(pts[3]), Text: "z"},
		},
		FontSize: cfg.fontSize,
	}, nil
}

// Bounds returns the box enclosing the geometry of every actor.
func Bounds(actors []Actor) (lo, hi [3]float64, ok bool) {
	var all [][3]float64
	for _, a := range actors {
		if a.Geometry == nil {
			continue
		}
		l, h, has := a.Geometry.Bounds()
		if has {
			all = append(all, l, h)
		}
	}
	return polydata.BoundsOf(all)
}

func withPointColors(pd *polydata.PolyData, spec colors.Spec) (*polydata.PolyData, error) {
	attr, err := colors.Resolve(spec, pd.NumPoints())
	if err != nil {
		return nil, err
	}
	return pd.WithPointAttribute(ColorArray, attr)
}

func withCellColors(pd *polydata.PolyData, spec colors.Spec) (*polydata.PolyData, error) {
	attr, err := colors.Resolve(spec, pd.NumCells())
	if err != nil {
		return nil, err
	}
	return pd.WithCellAttribute(ColorArray, attr)
}

func float32RGB(c [3]float64) [3]float32 {
	return [3]float32{float32(c[0]), float32(c[1]), float32(c[2])}
}
