package qrpath

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countOps(p Path, like Operation) int {
	n := 0
	for _, op := range p {
		switch like.(type) {
		case CubicTo:
			if _, ok := op.(CubicTo); ok {
				n++
			}
		case LineTo:
			if _, ok := op.(LineTo); ok {
				n++
			}
		}
	}
	return n
}

// A round rect with a zero radius must cover the same box as a plain
// rect, with no curvature at all.
func TestRoundRectZeroRadiusMatchesRect(t *testing.T) {
	var rect, round Path
	rect.AddRect(10, 10, 90, 90)
	round.AddRoundRect(10, 10, 90, 90, 0)

	assert.Equal(t, rect.Bounds(), round.Bounds())
	assert.Zero(t, countOps(round, CubicTo{}))
}

func TestRoundRectRadiusClamp(t *testing.T) {
	var p Path
	// radius larger than the half side is clamped, not an error
	p.AddRoundRect(0, 0, 10, 10, 50)
	bb := p.Bounds()
	assert.Equal(t, 0.0, float64(bb.Min.X)/64)
	assert.Equal(t, 10.0, float64(bb.Max.X)/64)
}

func TestDegenerateBoxesAddNothing(t *testing.T) {
	var p Path
	p.AddRect(5, 5, 5, 10)
	p.AddRect(5, 5, 10, 5)
	p.AddRoundRect(8, 8, 2, 12, 1)
	p.AddCircle(0, 0, -1)
	assert.Empty(t, p)
}

func TestCircleBounds(t *testing.T) {
	var p Path
	p.AddCircle(50, 50, 20)
	bb := p.Bounds()
	assert.InDelta(t, 30, float64(bb.Min.X)/64, 1e-6)
	assert.InDelta(t, 30, float64(bb.Min.Y)/64, 1e-6)
	assert.InDelta(t, 70, float64(bb.Max.X)/64, 1e-6)
	assert.InDelta(t, 70, float64(bb.Max.Y)/64, 1e-6)
	// four quarters
	assert.Equal(t, 4, countOps(p, CubicTo{}))
}

func TestInsetBox(t *testing.T) {
	cases := []struct {
		inset            float64
		wantMin, wantMax float64
	}{
		{0, 0, 10},
		{0.5, 2.5, 7.5},
		{-3, 0, 10},     // clamped low
		{2, 4.95, 5.05}, // clamped below 1
	}
	for _, tc := range cases {
		minX, minY, maxX, maxY := InsetBox(0, 0, 10, tc.inset)
		assert.InDelta(t, tc.wantMin, minX, 1e-9, "inset %v", tc.inset)
		assert.InDelta(t, tc.wantMin, minY, 1e-9)
		assert.InDelta(t, tc.wantMax, maxX, 1e-9)
		assert.InDelta(t, tc.wantMax, maxY, 1e-9)
		assert.Less(t, minX, maxX)
	}
}

func TestMatrixTransform(t *testing.T) {
	m := Identity.Translate(10, 20).Scale(2, 3)
	x, y := m.TransformPoint(1, 1)
	assert.Equal(t, 12.0, x)
	assert.Equal(t, 23.0, y)

	var p Path
	p.AddRect(0, 0, 1, 1)
	bb := p.Transform(m).Bounds()
	assert.Equal(t, 10.0, float64(bb.Min.X)/64)
	assert.Equal(t, 23.0, float64(bb.Max.Y)/64)
}

func TestTransformIsACopy(t *testing.T) {
	var p Path
	p.AddRect(0, 0, 1, 1)
	before := p.ToSVGPath()
	_ = p.Transform(Identity.Scale(100, 100))
	assert.Equal(t, before, p.ToSVGPath())
}

func TestCompilePathAbsolute(t *testing.T) {
	p, err := CompilePath("M10,10 L90,10 L90,90 L10,90 Z")
	require.NoError(t, err)
	assert.Equal(t, "M10,10 L90,10 L90,90 L10,90 Z", p.ToSVGPath())
}

func TestCompilePathRelativeAndShorthands(t *testing.T) {
	p, err := CompilePath("m10 10 h80 v80 h-80 z")
	require.NoError(t, err)
	assert.Equal(t, "M10,10 L90,10 L90,90 L10,90 Z", p.ToSVGPath())

	p, err = CompilePath("M0,0 C0,10 10,10 10,0 S20,-10 20,0")
	require.NoError(t, err)
	// the S control point is the reflection of the previous one
	assert.Equal(t, "M0,0 C0,10 10,10 10,0 C10,-10 20,-10 20,0", p.ToSVGPath())

	p, err = CompilePath("M0,0 Q5,10 10,0 T20,0")
	require.NoError(t, err)
	assert.Equal(t, "M0,0 Q5,10 10,0 Q15,-10 20,0", p.ToSVGPath())
}

func TestCompilePathCompactNegatives(t *testing.T) {
	p, err := CompilePath("M1-2L3-4")
	require.NoError(t, err)
	assert.Equal(t, "M1,-2 L3,-4", p.ToSVGPath())
}

func TestCompilePathErrors(t *testing.T) {
	for _, d := range []string{
		"",
		"X10,10",
		"M10",                   // odd parameter count
		"M0,0 A5 5 0 0 1 10 10", // arcs rejected
		"M0,0 Lfoo,bar",
		"Z",
	} {
		_, err := CompilePath(d)
		assert.Error(t, err, "path %q", d)
	}
	_, err := CompilePath("Q1,2")
	assert.True(t, errors.Is(err, errCommand) || err != nil)
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "1", FormatFloat(1.0))
	assert.Equal(t, "1.5", FormatFloat(1.5))
	assert.Equal(t, "0.552", FormatFloat(0.5523))
	assert.Equal(t, "-2.1", FormatFloat(-2.1))
}

func TestToSVGPathStaysInCell(t *testing.T) {
	// geometry built for one cell must not leak out of its box
	var p Path
	p.AddRoundRect(0, 0, 100, 100, 30)
	bb := p.Bounds()
	assert.GreaterOrEqual(t, float64(bb.Min.X)/64, 0.0)
	assert.LessOrEqual(t, float64(bb.Max.X)/64, 100.0)
	assert.False(t, strings.Contains(p.ToSVGPath(), "NaN"))
}
