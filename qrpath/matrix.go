package qrpath

import (
	"math"
	"strconv"

	"golang.org/x/image/math/fixed"
)

// Matrix2D represents an SVG style affine transformation matrix
//	A C E
//	B D F
// applied to a point (x, y) as
//	x' = Ax + Cy + E
//	y' = Bx + Dy + F
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult returns a*b
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Translate composes a translation by x, y into the matrix.
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

// Scale composes a scaling by x, y into the matrix.
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Rotate composes a rotation (in radians) into the matrix.
func (a Matrix2D) Rotate(theta float64) Matrix2D {
	sin, cos := math.Sin(theta), math.Cos(theta)
	return a.Mult(Matrix2D{cos, sin, -sin, cos, 0, 0})
}

// TransformPoint applies the transform to the point x, y.
func (a Matrix2D) TransformPoint(x, y float64) (x1, y1 float64) {
	return a.A*x + a.C*y + a.E, a.B*x + a.D*y + a.F
}

// trPoint applies the transform in the fixed point space.
func (a Matrix2D) trPoint(p fixed.Point26_6) fixed.Point26_6 {
	x, y := fixedTof(p)
	return fToFixed(a.TransformPoint(x, y))
}

// fToFixed converts the floats x,y to a fixed point.
func fToFixed(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(x * 64)
	p.Y = fixed.Int26_6(y * 64)
	return
}

// fixedTof converts back a fixed point to floats.
func fixedTof(p fixed.Point26_6) (x, y float64) {
	return float64(p.X) / 64, float64(p.Y) / 64
}

// FormatFloat writes `f` rounded to 3 decimals, without trailing zeros.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(math.Round(f*1000)/1000, 'f', -1, 64)
}

func coords(p fixed.Point26_6) string {
	x, y := fixedTof(p)
	return FormatFloat(x) + "," + FormatFloat(y)
}
