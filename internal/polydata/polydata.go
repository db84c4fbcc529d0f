// Package polydata assembles vertex coordinates and index matrices into
// PolyData, the point-set plus cell-array representation handed to the
// rendering layer, and takes such representations apart again.
//
// PolyData values are immutable: constructors copy their inputs, accessors
// return copies, and attaching an attribute yields a new value.
package polydata

import (
	"errors"
	"fmt"
	"math"

	"meshscene/internal/cells"
	"meshscene/internal/colors"
)

var (
	// ErrDimension is returned when a cell matrix has the wrong width.
	ErrDimension = errors.New("polydata: wrong cell width")

	// ErrIndexRange is returned when a cell references a missing vertex.
	ErrIndexRange = errors.New("polydata: index out of range")

	// ErrLengthMismatch is returned when paired inputs differ in length.
	ErrLengthMismatch = errors.New("polydata: length mismatch")

	// ErrAttributeLength is returned when an attribute does not cover
	// every point (or cell) it is attached to.
	ErrAttributeLength = errors.New("polydata: attribute length mismatch")
)

// IndexRangeError reports the largest index of a cell matrix that is not a
// valid vertex index.
type IndexRangeError struct {
	What  string // "faces" or "edges"
	Index int
	Count int // number of vertices
}

func (e *IndexRangeError) Error() string {
	return fmt.Sprintf("polydata: %s refer to non existent vertex %d (have %d)", e.What, e.Index, e.Count)
}

func (e *IndexRangeError) Unwrap() error {
	return ErrIndexRange
}

// PolyData is a point set with optional triangle and line cells and named
// per-point and per-cell attributes.
type PolyData struct {
	points    [][3]float64
	polys     *cells.Array
	lines     *cells.Array
	pointData map[string]colors.Attribute
	cellData  map[string]colors.Attribute
}

// Points returns a copy of the point coordinates.
func (pd *PolyData) Points() [][3]float64 {
	return append([][3]float64(nil), pd.points...)
}

// Point returns point i.
func (pd *PolyData) Point(i int) [3]float64 {
	return pd.points[i]
}

// NumPoints returns the number of points.
func (pd *PolyData) NumPoints() int {
	return len(pd.points)
}

// Polys returns the triangle cells, or nil when there are none.
func (pd *PolyData) Polys() *cells.Array {
	return pd.polys
}

// Lines returns the line cells, or nil when there are none.
func (pd *PolyData) Lines() *cells.Array {
	return pd.lines
}

// NumCells returns the number of cells per-cell attributes must cover:
// the triangles when present, otherwise the lines.
func (pd *PolyData) NumCells() int {
	if pd.polys.Len() > 0 {
		return pd.polys.Len()
	}
	return pd.lines.Len()
}

// PointAttribute returns a copy of the named per-point attribute.
func (pd *PolyData) PointAttribute(name string) (colors.Attribute, bool) {
	a, ok := pd.pointData[name]
	return a.Clone(), ok
}

// CellAttribute returns a copy of the named per-cell attribute.
func (pd *PolyData) CellAttribute(name string) (colors.Attribute, bool) {
	a, ok := pd.cellData[name]
	return a.Clone(), ok
}

// WithPointAttribute returns a copy of pd with the named per-point
// attribute set. a must cover every point.
func (pd *PolyData) WithPointAttribute(name string, a colors.Attribute) (*PolyData, error) {
	if a.Len() != pd.NumPoints() {
		return nil, fmt.Errorf("%w: %q has %d values for %d points", ErrAttributeLength, name, a.Len(), pd.NumPoints())
	}
	out := pd.shallowCopy()
	out.pointData[name] = a.Clone()
	return out, nil
}

// WithCellAttribute returns a copy of pd with the named per-cell attribute
// set. a must cover NumCells cells.
func (pd *PolyData) WithCellAttribute(name string, a colors.Attribute) (*PolyData, error) {
	if a.Len() != pd.NumCells() {
		return nil, fmt.Errorf("%w: %q has %d values for %d cells", ErrAttributeLength, name, a.Len(), pd.NumCells())
	}
	out := pd.shallowCopy()
	out.cellData[name] = a.Clone()
	return out, nil
}

// shallowCopy shares points and cells, which are never written after
// construction, and copies the attribute maps.
func (pd *PolyData) shallowCopy() *PolyData {
	out := &PolyData{
		points:    pd.points,
		polys:     pd.polys,
		lines:     pd.lines,
		pointData: make(map[string]colors.Attribute, len(pd.pointData)+1),
		cellData:  make(map[string]colors.Attribute, len(pd.cellData)+1),
	}
	for k, v := range pd.pointData {
		out.pointData[k] = v
	}
	for k, v := range pd.cellData {
		out.cellData[k] = v
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the points. ok is false
// for an empty point set.
func (pd *PolyData) Bounds() (lo, hi [3]float64, ok bool) {
	return BoundsOf(pd.points)
}

// BoundsOf returns the axis-aligned bounding box of pts.
func BoundsOf(pts [][3]float64) (lo, hi [3]float64, ok bool) {
	if len(pts) == 0 {
		return lo, hi, false
	}
	lo = [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi = [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range pts {
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], p[k])
			hi[k] = math.Max(hi[k], p[k])
		}
	}
	return lo, hi, true
}

func newPolyData(points [][3]float64) *PolyData {
	return &PolyData{
		points:    append([][3]float64(nil), points...),
		pointData: map[string]colors.Attribute{},
		cellData:  map[string]colors.Attribute{},
	}
}
