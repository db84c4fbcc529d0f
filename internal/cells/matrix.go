// Package cells converts uniform index matrices (edges, triangles) to and
// from the length-prefixed flat encoding used by cell-array primitives:
//
//	[[0 1 2] [2 3 0]]  <->  [3 0 1 2 3 2 3 0]
//
// Only the uniform-width case is supported. Decoding verifies that every
// row prefix carries the same width, so mixed-width input is rejected
// instead of being reshaped into garbage.
package cells

import (
	"errors"
	"fmt"
)

var (
	// ErrRagged is returned when rows passed to FromRows differ in length.
	ErrRagged = errors.New("cells: rows have different lengths")

	// ErrShape is returned when a flat encoding cannot be split into the
	// stated number of cells.
	ErrShape = errors.New("cells: flat length does not match cell count")

	// ErrNonUniform is returned when a flat encoding mixes cell widths.
	ErrNonUniform = errors.New("cells: cell widths are not uniform")
)

// Matrix is a dense row-major matrix of vertex indices, one cell per row.
// The zero value is the empty matrix.
type Matrix struct {
	Rows int
	Cols int
	Data []int // len = Rows*Cols
}

// FromRows copies rows into a Matrix. All rows must have the same length.
func FromRows(rows [][]int) (Matrix, error) {
	if len(rows) == 0 {
		return Matrix{}, nil
	}
	k := len(rows[0])
	data := make([]int, 0, len(rows)*k)
	for i, r := range rows {
		if len(r) != k {
			return Matrix{}, fmt.Errorf("%w: row %d has %d entries, want %d", ErrRagged, i, len(r), k)
		}
		data = append(data, r...)
	}
	return Matrix{Rows: len(rows), Cols: k, Data: data}, nil
}

// MustFromRows is FromRows for literals known to be rectangular.
func MustFromRows(rows [][]int) Matrix {
	m, err := FromRows(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// Empty reports whether the matrix has no cells.
func (m Matrix) Empty() bool {
	return m.Rows == 0
}

// Row returns row i. The slice aliases the matrix data.
func (m Matrix) Row(i int) []int {
	return m.Data[i*m.Cols : (i+1)*m.Cols]
}

// At returns the entry at row i, column j.
func (m Matrix) At(i, j int) int {
	return m.Data[i*m.Cols+j]
}

// Max returns the largest index in the matrix, or -1 when it is empty.
func (m Matrix) Max() int {
	hi := -1
	for _, v := range m.Data {
		if v > hi {
			hi = v
		}
	}
	return hi
}

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	if m.Data == nil {
		return Matrix{Rows: m.Rows, Cols: m.Cols}
	}
	data := make([]int, len(m.Data))
	copy(data, m.Data)
	return Matrix{Rows: m.Rows, Cols: m.Cols, Data: data}
}

// ToRows returns the matrix as a fresh slice of rows.
func (m Matrix) ToRows() [][]int {
	rows := make([][]int, m.Rows)
	for i := range rows {
		rows[i] = append([]int(nil), m.Row(i)...)
	}
	return rows
}

// Equal reports whether a and b have the same shape and entries.
func (m Matrix) Equal(o Matrix) bool {
	if m.Rows != o.Rows || m.Cols != o.Cols {
		return false
	}
	for i := range m.Data {
		if m.Data[i] != o.Data[i] {
			return false
		}
	}
	return true
}
