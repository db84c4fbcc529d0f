package polydata

import (
	"fmt"
	"sort"

	"meshscene/internal/cells"
)

// Source is anything exposing a point set and uniform cell arrays.
type Source interface {
	Points() [][3]float64
	Polys() *cells.Array
	Lines() *cells.Array
}

// Components are the array parts of a Source. Faces and Edges are nil when
// the source has no cells of that kind.
type Components struct {
	Points [][3]float64
	Faces  *cells.Matrix
	Edges  *cells.Matrix
}

// Decompose decodes the cell arrays of src. Cell arrays with no cells
// decode to nil rather than to an empty matrix.
func Decompose(src Source) (Components, error) {
	c := Components{Points: src.Points()}

	faces, err := decodeOptional(src.Polys())
	if err != nil {
		return Components{}, fmt.Errorf("polydata: decode faces: %w", err)
	}
	edges, err := decodeOptional(src.Lines())
	if err != nil {
		return Components{}, fmt.Errorf("polydata: decode edges: %w", err)
	}
	c.Faces, c.Edges = faces, edges
	return c, nil
}

func decodeOptional(a *cells.Array) (*cells.Matrix, error) {
	if a.Len() == 0 {
		return nil, nil
	}
	m, err := a.Matrix()
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CompactUnusedVertices drops vertices no cell references. The kept
// vertices appear in ascending order of their old index and every cell is
// rewritten to the new positions. Neither input is modified.
func CompactUnusedVertices[V any](verts []V, faces cells.Matrix) ([]V, cells.Matrix) {
	used := make([]int, 0, len(faces.Data))
	seen := make(map[int]struct{}, len(faces.Data))
	for _, v := range faces.Data {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		used = append(used, v)
	}
	sort.Ints(used)

	remap := make(map[int]int, len(used))
	newVerts := make([]V, len(used))
	for rank, old := range used {
		remap[old] = rank
		newVerts[rank] = verts[old]
	}

	out := cells.Matrix{Rows: faces.Rows, Cols: faces.Cols, Data: make([]int, len(faces.Data))}
	for i, v := range faces.Data {
		out.Data[i] = remap[v]
	}
	return newVerts, out
}
