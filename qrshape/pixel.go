package qrshape

import (
	"github.com/benoitkugler/qrsvg/qrmatrix"
	"github.com/benoitkugler/qrsvg/qrpath"
)

func init() {
	RegisterPixel("square", func(s Settings) Pixel {
		return squarePixel{inset: s.fraction(KeyInset, 0, maxInsetFraction)}
	})
	RegisterPixel("circle", func(s Settings) Pixel {
		return circlePixel{inset: s.fraction(KeyInset, 0, maxInsetFraction)}
	})
	RegisterPixel("rounded", func(s Settings) Pixel {
		return roundedPixel{
			inset:  s.fraction(KeyInset, 0, maxInsetFraction),
			radius: s.fraction(KeyCornerRadius, 0, 1),
		}
	})
	RegisterPixel("blob", func(s Settings) Pixel {
		return blobPixel{radius: s.fraction(KeyCornerRadius, 0, 1)}
	})
}

// insets of 1 and above would collapse the cell
const maxInsetFraction = 0.99

// eachCell walks the on cells of m, handing out the top left corner
// of each cell box.
func eachCell(m qrmatrix.Matrix, cellSize float64, fn func(x, y int, px, py float64)) {
	for y := 0; y < m.Side(); y++ {
		for x := 0; x < m.Side(); x++ {
			if m.At(x, y) {
				fn(x, y, float64(x)*cellSize, float64(y)*cellSize)
			}
		}
	}
}

// squarePixel renders each module as a plain (possibly inset) square.
type squarePixel struct {
	inset float64
}

func (p squarePixel) Name() string { return "square" }

func (p squarePixel) Settings() Settings { return Settings{KeyInset: p.inset} }

func (p squarePixel) Clone() Pixel { return squarePixel{inset: p.inset} }

func (p squarePixel) OnPath(m qrmatrix.Matrix, cellSize float64) qrpath.Path {
	var out qrpath.Path
	eachCell(m, cellSize, func(_, _ int, px, py float64) {
		out.AddRect(qrpath.InsetBox(px, py, cellSize, p.inset))
	})
	return out
}

func (p squarePixel) OffPath(m qrmatrix.Matrix, cellSize float64) qrpath.Path {
	return p.OnPath(m.Inverted(), cellSize)
}

// circlePixel renders each module as an inscribed circle.
type circlePixel struct {
	inset float64
}

func (p circlePixel) Name() string { return "circle" }

func (p circlePixel) Settings() Settings { return Settings{KeyInset: p.inset} }

func (p circlePixel) Clone() Pixel { return circlePixel{inset: p.inset} }

func (p circlePixel) OnPath(m qrmatrix.Matrix, cellSize float64) qrpath.Path {
	var out qrpath.Path
	r := cellSize * (1 - p.inset) / 2
	eachCell(m, cellSize, func(_, _ int, px, py float64) {
		out.AddCircle(px+cellSize/2, py+cellSize/2, r)
	})
	return out
}

func (p circlePixel) OffPath(m qrmatrix.Matrix, cellSize float64) qrpath.Path {
	return p.OnPath(m.Inverted(), cellSize)
}

// roundedPixel renders each module as a rounded rect. The corner
// radius is a fraction of the half cell, measured after the inset is
// applied, so radius 1 on a square box yields a circle.
type roundedPixel struct {
	inset, radius float64
}

func (p roundedPixel) Name() string { return "rounded" }

func (p roundedPixel) Settings() Settings {
	return Settings{KeyInset: p.inset, KeyCornerRadius: p.radius}
}

func (p roundedPixel) Clone() Pixel { return roundedPixel{inset: p.inset, radius: p.radius} }

func (p roundedPixel) OnPath(m qrmatrix.Matrix, cellSize float64) qrpath.Path {
	var out qrpath.Path
	eachCell(m, cellSize, func(_, _ int, px, py float64) {
		minX, minY, maxX, maxY := qrpath.InsetBox(px, py, cellSize, p.inset)
		out.AddRoundRect(minX, minY, maxX, maxY, p.radius*(maxX-minX)/2)
	})
	return out
}

func (p roundedPixel) OffPath(m qrmatrix.Matrix, cellSize float64) qrpath.Path {
	return p.OnPath(m.Inverted(), cellSize)
}

// blobPixel renders the modules as connected blobs: cells are drawn
// full size, and a corner is rounded only when both edge adjacent
// neighbours on that corner are unset, so that runs of modules merge
// without seams. The non-zero fill rule absorbs the shared edges of
// the per cell subpaths.
type blobPixel struct {
	radius float64
}

func (p blobPixel) Name() string { return "blob" }

func (p blobPixel) Settings() Settings { return Settings{KeyCornerRadius: p.radius} }

func (p blobPixel) Clone() Pixel { return blobPixel{radius: p.radius} }

func (p blobPixel) OnPath(m qrmatrix.Matrix, cellSize float64) qrpath.Path {
	var out qrpath.Path
	r := p.radius * cellSize / 2
	eachCell(m, cellSize, func(x, y int, px, py float64) {
		n := m.Neighbours(x, y)
		var radii [4]float64
		if !n.Top && !n.Left {
			radii[qrpath.TopLeft] = r
		}
		if !n.Top && !n.Right {
			radii[qrpath.TopRight] = r
		}
		if !n.Bottom && !n.Right {
			radii[qrpath.BottomRight] = r
		}
		if !n.Bottom && !n.Left {
			radii[qrpath.BottomLeft] = r
		}
		out.AddCornerRect(px, py, px+cellSize, py+cellSize, radii)
	})
	return out
}

// OffPath runs the same adjacency rule over the inverted matrix, so
// that the off blobs interlock with the on ones.
func (p blobPixel) OffPath(m qrmatrix.Matrix, cellSize float64) qrpath.Path {
	return p.OnPath(m.Inverted(), cellSize)
}
