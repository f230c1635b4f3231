// Package qrpath provides the geometric primitives shared by the
// QR shape generators: a compact path model over fixed point
// coordinates, affine transforms, and builders for the cell shapes
// (rects, rounded rects, circles).
// Paths are built in a normalized cell space and transformed to
// output units by the compositor.
package qrpath

import (
	"strings"

	"golang.org/x/image/math/fixed"
)

// This file defines the basic path structure

// Operation groups the different segment commands of a path.
type Operation interface {
	// add itself on the path `p`, after applying the transform `M`
	transformTo(p *Path, M Matrix2D)
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

type QuadTo [2]fixed.Point26_6

type CubicTo [3]fixed.Point26_6

type Close struct{}

func (op MoveTo) transformTo(p *Path, M Matrix2D) {
	p.Start(M.trPoint(fixed.Point26_6(op)))
}

func (op LineTo) transformTo(p *Path, M Matrix2D) {
	p.Line(M.trPoint(fixed.Point26_6(op)))
}

func (op QuadTo) transformTo(p *Path, M Matrix2D) {
	p.QuadBezier(M.trPoint(op[0]), M.trPoint(op[1]))
}

func (op CubicTo) transformTo(p *Path, M Matrix2D) {
	p.CubeBezier(M.trPoint(op[0]), M.trPoint(op[1]), M.trPoint(op[2]))
}

func (op Close) transformTo(p *Path, _ Matrix2D) {
	p.Stop(true)
}

// Path describes a sequence of basic path operations.
// It may contain several subpaths; how they combine is decided
// by the fill rule of the consuming layer.
type Path []Operation

// ToSVGPath returns the 'd' attribute representation of the path.
// Coordinates are written with at most three decimals, which is
// visually lossless at the 26.6 fixed point resolution.
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = "M" + coords(fixed.Point26_6(op))
		case LineTo:
			chunks[i] = "L" + coords(fixed.Point26_6(op))
		case QuadTo:
			chunks[i] = "Q" + coords(op[0]) + " " + coords(op[1])
		case CubicTo:
			chunks[i] = "C" + coords(op[0]) + " " + coords(op[1]) + " " + coords(op[2])
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new subpath at the given point.
func (p *Path) Start(a fixed.Point26_6) {
	*p = append(*p, MoveTo(a))
}

// Line adds a linear segment to the current subpath.
func (p *Path) Line(b fixed.Point26_6) {
	*p = append(*p, LineTo(b))
}

// QuadBezier adds a quadratic segment to the current subpath.
func (p *Path) QuadBezier(b, c fixed.Point26_6) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current subpath.
func (p *Path) CubeBezier(b, c, d fixed.Point26_6) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop closes the current subpath if `closeLoop` is true.
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// Transform returns an independent copy of the path with M applied
// to every point.
func (p Path) Transform(M Matrix2D) Path {
	out := make(Path, 0, len(p))
	for _, op := range p {
		op.transformTo(&out, M)
	}
	return out
}

// Append adds all the operations of `other` to p, as additional subpaths.
func (p *Path) Append(other Path) {
	*p = append(*p, other...)
}

// Bounds returns the control box of the path: the smallest rectangle
// enclosing every anchor and control point. For the geometry built by
// this package (lines and on-axis cubic arcs) it matches the exact
// bounding box.
func (p Path) Bounds() fixed.Rectangle26_6 {
	var (
		bb    fixed.Rectangle26_6
		first = true
	)
	grow := func(pt fixed.Point26_6) {
		if first {
			bb.Min, bb.Max = pt, pt
			first = false
			return
		}
		if pt.X < bb.Min.X {
			bb.Min.X = pt.X
		}
		if pt.Y < bb.Min.Y {
			bb.Min.Y = pt.Y
		}
		if pt.X > bb.Max.X {
			bb.Max.X = pt.X
		}
		if pt.Y > bb.Max.Y {
			bb.Max.Y = pt.Y
		}
	}
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			grow(fixed.Point26_6(op))
		case LineTo:
			grow(fixed.Point26_6(op))
		case QuadTo:
			grow(op[0])
			grow(op[1])
		case CubicTo:
			grow(op[0])
			grow(op[1])
			grow(op[2])
		}
	}
	return bb
}
