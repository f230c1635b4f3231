package qrsvg

import (
	"errors"

	"github.com/benoitkugler/qrsvg/qrshape"
)

// Sentinel errors surfaced by the compositor.
var (
	// ErrMissingOnStyle indicates a design without a style for the on
	// pixels, which would render an empty document.
	ErrMissingOnStyle = errors.New("qrsvg: design must style the on pixels")
)

// LayerStyle is the paint of one drawing layer.
// The zero value means the layer is absent: it is omitted from the
// output entirely, no transparent element is written.
type LayerStyle struct {
	Fill    Pattern
	Opacity float64 // 0 means fully opaque (zero value convenience)
}

// IsSet reports whether the layer is configured.
func (s LayerStyle) IsSet() bool { return s.Fill != nil }

// PixelLayer pairs a pixel shape generator with its paint.
type PixelLayer struct {
	Shape qrshape.Pixel // nil defaults to the square shape
	Style LayerStyle
}

// Design is the full style configuration of a render. It is treated
// as read-only by the compositor; configure it once and reuse it
// across renders.
type Design struct {
	// Background fills the whole document behind every other layer.
	Background LayerStyle

	// OnPixel renders the on modules. Its style is mandatory: a
	// design without it is rejected with ErrMissingOnStyle.
	OnPixel PixelLayer
	// OffPixel optionally renders the off modules (quiet zone
	// included, finder corners excluded).
	OffPixel PixelLayer

	// Eye is the finder pattern shape, placed at the three corners.
	// nil defaults to the square eye.
	Eye qrshape.Eye
	// EyeStyle paints the outer ring of the eyes.
	EyeStyle LayerStyle
	// PupilStyle paints the inner 3x3 fill of the eyes.
	PupilStyle LayerStyle
	// EyeBackground optionally fills the 7x7 area behind each eye.
	EyeBackground LayerStyle

	// QuietZone is the width, in modules, of the quiet border already
	// present in the matrix. It locates the finder corners.
	QuietZone int

	// NegatedPixelsOnly renders only the on pixel layer over the
	// inverted matrix (a stencil of the code), skipping eyes and off
	// pixels. This is a documented override, not a degraded mode.
	NegatedPixelsOnly bool
}

// pixelShape resolves the configured shape, defaulting to square.
func (l PixelLayer) pixelShape() qrshape.Pixel {
	if l.Shape != nil {
		return l.Shape
	}
	shape, _ := qrshape.NewPixel("square", nil)
	return shape
}

// eyeShape resolves the configured eye, defaulting to square.
func (d Design) eyeShape() qrshape.Eye {
	if d.Eye != nil {
		return d.Eye
	}
	eye, _ := qrshape.NewEye("square", nil)
	return eye
}
