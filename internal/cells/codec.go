package cells

import (
	"fmt"
	"math"
	"strconv"
)

// IDWidth is the byte width of the index type a cell-array consumer expects.
type IDWidth int

const (
	Narrow IDWidth = 4 // int32 ids
	Wide   IDWidth = 8 // int64 ids
)

// IDSizer is implemented by consumers that report their own index width.
type IDSizer interface {
	IDTypeSize() int
}

// Native returns the index width matching the running program's int size.
func Native() IDWidth {
	if strconv.IntSize == 32 {
		return Narrow
	}
	return Wide
}

// WidthOf queries s for its index width, falling back to Native for
// anything other than 4 or 8 bytes.
func WidthOf(s IDSizer) IDWidth {
	if s == nil {
		return Native()
	}
	switch s.IDTypeSize() {
	case 4:
		return Narrow
	case 8:
		return Wide
	}
	return Native()
}

func (w IDWidth) String() string {
	switch w {
	case Narrow:
		return "int32"
	case Wide:
		return "int64"
	}
	return "IDWidth(" + strconv.Itoa(int(w)) + ")"
}

// Array is an encoded cell list: a count of cells and the length-prefixed
// ids stored in either 32- or 64-bit integers. Arrays are never modified
// after Encode returns them.
type Array struct {
	n      int
	width  IDWidth
	narrow []int32
	wide   []int64
}

// Encode prefixes every row of m with its width and concatenates the rows.
// The result holds m.Rows*(m.Cols+1) ids. Index bounds are not checked.
// A Narrow request falls back to Wide storage when an id does not fit in
// int32.
func Encode(m Matrix, w IDWidth) *Array {
	a := &Array{n: m.Rows, width: w}
	if w == Narrow && fitsInt32(m) {
		a.narrow = encode[int32](m)
	} else {
		a.width = Wide
		a.wide = encode[int64](m)
	}
	return a
}

func fitsInt32(m Matrix) bool {
	if m.Cols > math.MaxInt32 {
		return false
	}
	for _, v := range m.Data {
		if v > math.MaxInt32 || v < math.MinInt32 {
			return false
		}
	}
	return true
}

func encode[T int32 | int64](m Matrix) []T {
	out := make([]T, 0, m.Rows*(m.Cols+1))
	for i := 0; i < m.Rows; i++ {
		out = append(out, T(m.Cols))
		for _, v := range m.Row(i) {
			out = append(out, T(v))
		}
	}
	return out
}

// Len returns the number of cells.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return a.n
}

// Width returns the storage width of the ids.
func (a *Array) Width() IDWidth {
	if a == nil {
		return Native()
	}
	return a.width
}

// Size returns the number of stored ids, prefixes included.
func (a *Array) Size() int {
	if a == nil {
		return 0
	}
	if a.width == Narrow {
		return len(a.narrow)
	}
	return len(a.wide)
}

// Narrow returns a copy of the ids when they are stored as int32, else nil.
func (a *Array) Narrow() []int32 {
	if a == nil || a.width != Narrow {
		return nil
	}
	return append([]int32(nil), a.narrow...)
}

// Flat returns a widened copy of the encoded ids.
func (a *Array) Flat() []int64 {
	if a == nil {
		return nil
	}
	if a.width == Wide {
		return append([]int64(nil), a.wide...)
	}
	out := make([]int64, len(a.narrow))
	for i, v := range a.narrow {
		out[i] = int64(v)
	}
	return out
}

// Matrix decodes the array back into its index matrix.
func (a *Array) Matrix() (Matrix, error) {
	return Decode(a.Flat(), a.Len())
}

// Decode splits flat into ncells rows of equal width and drops the width
// prefix of each row. Every prefix must equal the row width minus one.
func Decode(flat []int64, ncells int) (Matrix, error) {
	if ncells == 0 && len(flat) == 0 {
		return Matrix{}, nil
	}
	if ncells <= 0 || len(flat)%ncells != 0 {
		return Matrix{}, fmt.Errorf("%w: %d ids into %d cells", ErrShape, len(flat), ncells)
	}
	stride := len(flat) / ncells
	if stride < 2 {
		return Matrix{}, fmt.Errorf("%w: stride %d leaves no ids per cell", ErrShape, stride)
	}
	k := stride - 1
	data := make([]int, 0, ncells*k)
	for i := 0; i < ncells; i++ {
		row := flat[i*stride : (i+1)*stride]
		if row[0] != int64(k) {
			return Matrix{}, fmt.Errorf("%w: cell %d declares %d ids, want %d", ErrNonUniform, i, row[0], k)
		}
		for _, v := range row[1:] {
			data = append(data, int(v))
		}
	}
	return Matrix{Rows: ncells, Cols: k, Data: data}, nil
}
