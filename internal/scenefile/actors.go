package scenefile

import (
	"fmt"

	"meshscene/internal/cells"
	"meshscene/internal/colors"
	"meshscene/internal/mathutil"
	"meshscene/internal/polydata"
	"meshscene/internal/scene"
)

// ActorSpec is one entry of the actors list. Which fields apply depends
// on Type: mesh, skeleton, points, links or scale_bar.
type ActorSpec struct {
	Type string `yaml:"type"`

	Vertices      [][3]float64 `yaml:"vertices"`
	Faces         [][]int      `yaml:"faces"`
	Edges         [][]int      `yaml:"edges"`
	LinkEdges     [][]int      `yaml:"link_edges"`
	ShowLinkEdges bool         `yaml:"show_link_edges"`
	Compact       bool         `yaml:"compact"`

	Color     *[3]float64 `yaml:"color"`
	Opacity   *float64    `yaml:"opacity"`
	LineWidth *float64    `yaml:"line_width"`
	Normals   *bool       `yaml:"normals"`
	IDWidth   int         `yaml:"id_width"`

	VertexColors  [][3]float32 `yaml:"vertex_colors"`
	VertexScalars []float32    `yaml:"vertex_scalars"`
	FaceColors    [][3]float32 `yaml:"face_colors"`
	FaceScalars   []float32    `yaml:"face_scalars"`
	EdgeScalars   []float32    `yaml:"edge_scalars"`
	Normalize     *bool        `yaml:"normalize"`

	Size  *float64  `yaml:"size"`
	Sizes []float64 `yaml:"sizes"`

	A     [][3]float64 `yaml:"a"`
	B     [][3]float64 `yaml:"b"`
	IndsA []int        `yaml:"inds_a"`
	IndsB []int        `yaml:"inds_b"`

	Center   *[3]float64 `yaml:"center"`
	Length   *float64    `yaml:"length"`
	FontSize *int        `yaml:"font_size"`
}

// Build turns every actor entry into a scene actor. Cell arrays use width
// w unless an entry sets id_width.
func (s *Scene) Build(w cells.IDWidth) ([]scene.Actor, error) {
	actors := make([]scene.Actor, 0, len(s.Actors))
	for i, spec := range s.Actors {
		a, err := spec.build(w)
		if err != nil {
			return nil, fmt.Errorf("scenefile: actor %d (%s): %w", i, spec.Type, err)
		}
		actors = append(actors, a)
	}
	return actors, nil
}

func (a ActorSpec) build(w cells.IDWidth) (scene.Actor, error) {
	opts, err := a.common(w)
	if err != nil {
		return scene.Actor{}, err
	}

	switch a.Type {
	case "mesh":
		return a.mesh(opts)
	case "skeleton":
		edges, err := cells.FromRows(a.Edges)
		if err != nil {
			return scene.Actor{}, err
		}
		if a.EdgeScalars != nil {
			opts = append(opts, scene.WithEdgeScalars(a.EdgeScalars))
		}
		if a.VertexScalars != nil {
			opts = append(opts, scene.WithVertexScalars(a.VertexScalars))
		}
		if a.Normalize != nil {
			opts = append(opts, scene.WithNormalize(*a.Normalize))
		}
		return scene.SkeletonActor(a.Vertices, edges, opts...)
	case "points":
		if a.Size != nil {
			opts = append(opts, scene.WithSize(*a.Size))
		}
		if a.Sizes != nil {
			opts = append(opts, scene.WithSizes(a.Sizes))
		}
		spec, err := colorSpec(a.VertexColors, a.VertexScalars)
		if err != nil {
			return scene.Actor{}, err
		}
		if spec != nil {
			opts = append(opts, scene.WithVertexColors(spec))
		}
		return scene.PointCloudActor(a.Vertices, opts...)
	case "links":
		return scene.LinkedPointActor(a.A, a.B, a.IndsA, a.IndsB, opts...)
	case "scale_bar":
		var center mathutil.Vec3
		if a.Center != nil {
			center = *a.Center
		}
		if a.Length != nil {
			opts = append(opts, scene.WithLength(*a.Length))
		}
		if a.FontSize != nil {
			opts = append(opts, scene.WithFontSize(*a.FontSize))
		}
		return scene.ScaleBar(center, opts...)
	}
	return scene.Actor{}, fmt.Errorf("%w: unknown type %q", ErrActor, a.Type)
}

func (a ActorSpec) mesh(opts []scene.Option) (scene.Actor, error) {
	faces, err := cells.FromRows(a.Faces)
	if err != nil {
		return scene.Actor{}, err
	}
	links, err := cells.FromRows(a.LinkEdges)
	if err != nil {
		return scene.Actor{}, err
	}

	verts := a.Vertices
	vertexColors, vertexScalars := a.VertexColors, a.VertexScalars
	if a.Compact {
		if a.ShowLinkEdges && !links.Empty() {
			return scene.Actor{}, fmt.Errorf("%w: compact cannot keep link edges", ErrActor)
		}
		if vertexColors != nil || vertexScalars != nil {
			return scene.Actor{}, fmt.Errorf("%w: compact cannot keep per-vertex colors", ErrActor)
		}
		if err := checkIndices(faces, len(verts)); err != nil {
			return scene.Actor{}, err
		}
		verts, faces = polydata.CompactUnusedVertices(verts, faces)
	}

	if a.Normals != nil {
		opts = append(opts, scene.WithNormals(*a.Normals))
	}
	if a.ShowLinkEdges {
		opts = append(opts, scene.WithLinkEdges(true))
	}
	spec, err := colorSpec(vertexColors, vertexScalars)
	if err != nil {
		return scene.Actor{}, err
	}
	if spec != nil {
		opts = append(opts, scene.WithVertexColors(spec))
	}
	if spec, err = colorSpec(a.FaceColors, a.FaceScalars); err != nil {
		return scene.Actor{}, err
	}
	if spec != nil {
		opts = append(opts, scene.WithFaceColors(spec))
	}
	return scene.MeshActor(verts, faces, links, opts...)
}

func (a ActorSpec) common(w cells.IDWidth) ([]scene.Option, error) {
	switch a.IDWidth {
	case 0:
	case int(cells.Narrow), int(cells.Wide):
		w = cells.IDWidth(a.IDWidth)
	default:
		return nil, fmt.Errorf("%w: id_width %d (want 4 or 8)", ErrActor, a.IDWidth)
	}

	opts := []scene.Option{scene.WithIDWidth(w)}
	if a.Color != nil {
		opts = append(opts, scene.WithColor(*a.Color))
	}
	if a.Opacity != nil {
		opts = append(opts, scene.WithOpacity(*a.Opacity))
	}
	if a.LineWidth != nil {
		opts = append(opts, scene.WithLineWidth(*a.LineWidth))
	}
	return opts, nil
}

// colorSpec picks explicit colors or scalars, never both.
func colorSpec(rgb [][3]float32, scalars []float32) (colors.Spec, error) {
	switch {
	case rgb != nil && scalars != nil:
		return nil, fmt.Errorf("%w: both colors and scalars given", ErrActor)
	case rgb != nil:
		return colors.PerElement{RGB: rgb}, nil
	case scalars != nil:
		return colors.Scalars{Values: scalars}, nil
	}
	return nil, nil
}

// checkIndices rejects out of range faces before compaction would
// silently renumber them.
func checkIndices(m cells.Matrix, n int) error {
	for _, v := range m.Data {
		if v < 0 || v >= n {
			return &polydata.IndexRangeError{What: "faces", Index: v, Count: n}
		}
	}
	return nil
}
