// Package qrshape provides the pluggable shape generators turning
// matrix modules (and finder pattern eyes) into path geometry.
//
// Generators are registered under a stable name and built from a
// string keyed settings map, so that a design can be persisted and
// reconstructed: for any generator g, New*(g.Name(), g.Settings())
// yields an equivalent generator.
package qrshape

import (
	"errors"
	"fmt"

	"github.com/benoitkugler/qrsvg/qrmatrix"
	"github.com/benoitkugler/qrsvg/qrpath"
)

// ErrUnknownShape indicates a shape name with no registered factory.
var ErrUnknownShape = errors.New("qrshape: unknown shape name")

// Settings is the string keyed configuration of a generator.
// Missing keys take documented defaults; unrecognized keys are
// ignored; out of range values are clamped, never rejected.
type Settings map[string]float64

// Common settings keys.
const (
	// KeyInset is the symmetric cell shrink, a fraction in [0, 1).
	KeyInset = "inset"
	// KeyCornerRadius is the corner rounding, a fraction of the half
	// cell in [0, 1].
	KeyCornerRadius = "cornerRadius"
)

// fraction reads a key, defaulting to `def`, clamped to [0, max].
func (s Settings) fraction(key string, def, max float64) float64 {
	v, ok := s[key]
	if !ok {
		return def
	}
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// Pixel generates the geometry of the data modules.
// Implementations are immutable once built and safe for concurrent
// renders.
type Pixel interface {
	// Name is the stable registry name of the variant.
	Name() string
	// Settings returns the configuration; building a new generator
	// from it reproduces this one.
	Settings() Settings
	// Clone returns an independent generator carrying the same settings.
	Clone() Pixel

	// OnPath returns one merged path covering every on module of m,
	// with modules of size cellSize, in output units.
	OnPath(m qrmatrix.Matrix, cellSize float64) qrpath.Path
	// OffPath is OnPath for the off modules of m.
	OffPath(m qrmatrix.Matrix, cellSize float64) qrpath.Path
}

// Eye generates the geometry of one finder pattern corner, in a
// fixed 100x100 cell. The compositor transforms the result to each
// of the three corners.
type Eye interface {
	Name() string
	Settings() Settings
	Clone() Eye

	// EyePath returns the outer ring: an outer boundary and an inner
	// cutout, meant to be filled with the even-odd rule.
	EyePath() qrpath.Path
	// PupilPath returns the inner 3x3 modules fill.
	PupilPath() qrpath.Path
}

var (
	pixelFactories = map[string]func(Settings) Pixel{}
	eyeFactories   = map[string]func(Settings) Eye{}
)

// RegisterPixel adds a pixel shape factory under `name`, replacing
// any previous registration.
func RegisterPixel(name string, factory func(Settings) Pixel) {
	pixelFactories[name] = factory
}

// RegisterEye adds an eye shape factory under `name`, replacing any
// previous registration.
func RegisterEye(name string, factory func(Settings) Eye) {
	eyeFactories[name] = factory
}

// NewPixel builds the pixel shape registered under `name`.
func NewPixel(name string, settings Settings) (Pixel, error) {
	factory, ok := pixelFactories[name]
	if !ok {
		return nil, fmt.Errorf("%w: pixel %q", ErrUnknownShape, name)
	}
	return factory(settings), nil
}

// NewEye builds the eye shape registered under `name`.
func NewEye(name string, settings Settings) (Eye, error) {
	factory, ok := eyeFactories[name]
	if !ok {
		return nil, fmt.Errorf("%w: eye %q", ErrUnknownShape, name)
	}
	return factory(settings), nil
}

// EyeCell is the side of the normalized cell an Eye draws in.
// One finder pattern spans 7 modules, so one module is EyeCell / 7.
const EyeCell = 100.
