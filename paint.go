// Package qrsvg assembles a styled vector document from a boolean
// module matrix and a design configuration, and serializes it to SVG.
//
// The rendering pipeline is a pure function: the matrix, the design
// and the optional logo template are read-only inputs, and every
// render builds a fresh Document. Independent renders may run
// concurrently as long as the shared configuration is not mutated.
package qrsvg

import (
	"fmt"
	"image/color"
)

// Pattern is the paint of a layer: either a PlainColor or a *Gradient.
// Parsing of color or gradient syntax is out of scope: callers build
// these values directly.
type Pattern interface {
	isPattern()
}

// PlainColor is a flat RGBA fill.
type PlainColor struct {
	color.RGBA
}

// NewPlainColor returns a solid fill with the given channels.
func NewPlainColor(r, g, b, a uint8) PlainColor {
	return PlainColor{color.RGBA{R: r, G: g, B: b, A: a}}
}

func (PlainColor) isPattern() {}

// GradStop is one color stop of a gradient.
type GradStop struct {
	StopColor color.RGBA
	Offset    float64
	Opacity   float64 // 0 means fully opaque (zero value convenience)
}

// Gradient is a paint server, referenced from layers by ID and
// written once in the document defs. Coordinates are fractions of
// the bounding box of the painted element.
type Gradient struct {
	ID        string
	Direction Direction // nil defaults to a horizontal Linear
	Stops     []GradStop
}

func (*Gradient) isPattern() {}

// Direction discriminates linear and radial gradients.
type Direction interface {
	isRadial() bool
}

// Linear is x1, y1, x2, y2.
type Linear [4]float64

func (Linear) isRadial() bool { return false }

// Radial is cx, cy, r.
type Radial [3]float64

func (Radial) isRadial() bool { return true }

// hexColor formats the color channels as a CSS hex triplet; the
// alpha channel is carried separately as an opacity attribute.
func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// opacity resolves the zero-means-opaque convention and folds in the
// color alpha.
func opacity(explicit float64, alpha uint8) float64 {
	op := explicit
	if op == 0 {
		op = 1
	}
	return op * float64(alpha) / 255
}
