package polydata

import (
	"fmt"

	"meshscene/internal/cells"
)

// BuildMesh assembles a triangle mesh. faces must be 3 wide and reference
// existing points. edges are optional link edges stored as line cells; an
// empty edges matrix means no lines.
func BuildMesh(points [][3]float64, faces, edges cells.Matrix, w cells.IDWidth) (*PolyData, error) {
	if err := checkCells("faces", faces, 3, len(points)); err != nil {
		return nil, err
	}
	if !edges.Empty() {
		if err := checkCells("edges", edges, 2, len(points)); err != nil {
			return nil, err
		}
	}

	pd := newPolyData(points)
	if !faces.Empty() {
		pd.polys = cells.Encode(faces, w)
	}
	if !edges.Empty() {
		pd.lines = cells.Encode(edges, w)
	}
	return pd, nil
}

// BuildGraph assembles a graph whose edges become line cells.
func BuildGraph(points [][3]float64, edges cells.Matrix, w cells.IDWidth) (*PolyData, error) {
	if err := checkCells("edges", edges, 2, len(points)); err != nil {
		return nil, err
	}
	pd := newPolyData(points)
	if !edges.Empty() {
		pd.lines = cells.Encode(edges, w)
	}
	return pd, nil
}

// LinkPoints builds a graph of segments joining a[indsA[i]] to b[indsB[i]].
// A nil index list selects every point of its set in order.
func LinkPoints(a, b [][3]float64, indsA, indsB []int, w cells.IDWidth) (*PolyData, error) {
	if indsA == nil {
		indsA = identity(len(a))
	}
	if indsB == nil {
		indsB = identity(len(b))
	}
	if len(indsA) != len(indsB) {
		return nil, fmt.Errorf("%w: linked points %d vs %d", ErrLengthMismatch, len(indsA), len(indsB))
	}

	n := len(indsA)
	pts := make([][3]float64, 0, 2*n)
	for _, i := range indsA {
		if i < 0 || i >= len(a) {
			return nil, &IndexRangeError{What: "links", Index: i, Count: len(a)}
		}
		pts = append(pts, a[i])
	}
	for _, i := range indsB {
		if i < 0 || i >= len(b) {
			return nil, &IndexRangeError{What: "links", Index: i, Count: len(b)}
		}
		pts = append(pts, b[i])
	}

	edges := cells.Matrix{Rows: n, Cols: 2, Data: make([]int, 0, 2*n)}
	for i := 0; i < n; i++ {
		edges.Data = append(edges.Data, i, n+i)
	}
	return BuildGraph(pts, edges, w)
}

func checkCells(what string, m cells.Matrix, width, npoints int) error {
	if m.Empty() {
		return nil
	}
	if m.Cols != width {
		return fmt.Errorf("%w: %s have %d columns, want %d", ErrDimension, what, m.Cols, width)
	}
	if hi := m.Max(); hi >= npoints {
		return &IndexRangeError{What: what, Index: hi, Count: npoints}
	}
	for _, v := range m.Data {
		if v < 0 {
			return &IndexRangeError{What: what, Index: v, Count: npoints}
		}
	}
	return nil
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
