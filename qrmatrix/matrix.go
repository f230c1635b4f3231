// Package qrmatrix defines the immutable square grid of on/off
// modules consumed by the renderer. The matrix is produced externally
// (by a QR encoder); this package only stores it and answers
// neighbourhood queries.
package qrmatrix

import (
	"errors"
	"fmt"
)

// Sentinel errors for matrix construction.
var (
	// ErrDimension indicates a requested side lower than 1.
	ErrDimension = errors.New("qrmatrix: side must be at least 1")
	// ErrNotSquare indicates input rows which do not form a square grid.
	ErrNotSquare = errors.New("qrmatrix: input grid must be square")
)

// Matrix is an immutable square grid of boolean modules.
// The side already includes the quiet zone, if any.
// The zero value is an empty matrix, not usable for rendering.
type Matrix struct {
	side  int
	cells []bool // row major, side*side
}

// Neighbours reports the occupancy of the four edge adjacent cells.
type Neighbours struct {
	Top, Right, Bottom, Left bool
}

// New returns an all-off matrix of the given side.
func New(side int) (Matrix, error) {
	if side < 1 {
		return Matrix{}, fmt.Errorf("%w (got %d)", ErrDimension, side)
	}
	return Matrix{side: side, cells: make([]bool, side*side)}, nil
}

// FromRows builds a matrix from a row major slice of rows.
// The input must be square with side >= 1; it is copied, so the
// caller may keep mutating its slice.
func FromRows(rows [][]bool) (Matrix, error) {
	side := len(rows)
	if side < 1 {
		return Matrix{}, ErrDimension
	}
	m := Matrix{side: side, cells: make([]bool, side*side)}
	for y, row := range rows {
		if len(row) != side {
			return Matrix{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNotSquare, y, len(row), side)
		}
		copy(m.cells[y*side:], row)
	}
	return m, nil
}

// Side returns the number of modules per side.
func (m Matrix) Side() int { return m.side }

// At reports whether the cell at x, y is on.
// Out of bounds coordinates read as off, so callers may probe
// neighbourhoods without bound checks.
func (m Matrix) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.side || y >= m.side {
		return false
	}
	return m.cells[y*m.side+x]
}

// Neighbours returns the occupancy of the cells edge adjacent to x, y.
func (m Matrix) Neighbours(x, y int) Neighbours {
	return Neighbours{
		Top:    m.At(x, y-1),
		Right:  m.At(x+1, y),
		Bottom: m.At(x, y+1),
		Left:   m.At(x-1, y),
	}
}

// Inverted returns a copy with every cell flipped.
// Inverted is an involution: m.Inverted().Inverted() equals m.
func (m Matrix) Inverted() Matrix {
	out := Matrix{side: m.side, cells: make([]bool, len(m.cells))}
	for i, v := range m.cells {
		out.cells[i] = !v
	}
	return out
}

// WithRegion returns a copy where every cell for which `region`
// reports true is forced to `value`.
func (m Matrix) WithRegion(region func(x, y int) bool, value bool) Matrix {
	out := Matrix{side: m.side, cells: make([]bool, len(m.cells))}
	copy(out.cells, m.cells)
	for y := 0; y < m.side; y++ {
		for x := 0; x < m.side; x++ {
			if region(x, y) {
				out.cells[y*m.side+x] = value
			}
		}
	}
	return out
}

// Mask returns a copy with the cells inside `region` forced off.
func (m Matrix) Mask(region func(x, y int) bool) Matrix {
	return m.WithRegion(region, false)
}

// WithQuietZone returns a copy padded on each side by `w` off modules.
// A zero or negative width returns the matrix unchanged.
func (m Matrix) WithQuietZone(w int) Matrix {
	if w <= 0 {
		return m
	}
	side := m.side + 2*w
	out := Matrix{side: side, cells: make([]bool, side*side)}
	for y := 0; y < m.side; y++ {
		copy(out.cells[(y+w)*side+w:], m.cells[y*m.side:(y+1)*m.side])
	}
	return out
}

// Builder accumulates cells before freezing them into a Matrix.
// It is the only way to set individual cells: once built, a Matrix
// is read-only.
type Builder struct {
	side  int
	cells []bool
}

// NewBuilder returns a builder for a side*side matrix.
func NewBuilder(side int) (*Builder, error) {
	if side < 1 {
		return nil, fmt.Errorf("%w (got %d)", ErrDimension, side)
	}
	return &Builder{side: side, cells: make([]bool, side*side)}, nil
}

// Set turns the cell at x, y on or off. Out of bounds coordinates
// are ignored.
func (b *Builder) Set(x, y int, on bool) {
	if x < 0 || y < 0 || x >= b.side || y >= b.side {
		return
	}
	b.cells[y*b.side+x] = on
}

// Build freezes the accumulated cells into an immutable Matrix.
// The builder may be reused afterwards without affecting the
// returned matrix.
func (b *Builder) Build() Matrix {
	cells := make([]bool, len(b.cells))
	copy(cells, b.cells)
	return Matrix{side: b.side, cells: cells}
}
