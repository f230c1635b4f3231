package qrshape

import (
	"github.com/benoitkugler/qrsvg/qrpath"
)

func init() {
	RegisterEye("square", func(Settings) Eye { return squareEye{} })
	RegisterEye("rounded", func(s Settings) Eye {
		return roundedEye{radius: s.fraction(KeyCornerRadius, 0, 1)}
	})
	RegisterEye("circle", func(Settings) Eye { return circleEye{} })
}

// eyeModule is the side of one module in the normalized eye cell.
const eyeModule = EyeCell / 7

// squareEye is the canonical finder pattern: a one module thick
// square ring and a 3x3 square pupil.
type squareEye struct{}

func (squareEye) Name() string       { return "square" }
func (squareEye) Settings() Settings { return Settings{} }
func (squareEye) Clone() Eye         { return squareEye{} }

func (squareEye) EyePath() qrpath.Path {
	var p qrpath.Path
	p.AddRect(0, 0, EyeCell, EyeCell)
	p.AddRect(eyeModule, eyeModule, EyeCell-eyeModule, EyeCell-eyeModule)
	return p
}

func (squareEye) PupilPath() qrpath.Path {
	var p qrpath.Path
	p.AddRect(2*eyeModule, 2*eyeModule, 5*eyeModule, 5*eyeModule)
	return p
}

// roundedEye rounds the ring and pupil corners by a fraction of the
// half cell. The inner cutout radius is scaled down with its box so
// the ring keeps an even visual thickness.
type roundedEye struct {
	radius float64
}

func (e roundedEye) Name() string       { return "rounded" }
func (e roundedEye) Settings() Settings { return Settings{KeyCornerRadius: e.radius} }
func (e roundedEye) Clone() Eye         { return roundedEye{radius: e.radius} }

func (e roundedEye) EyePath() qrpath.Path {
	var p qrpath.Path
	outer := e.radius * EyeCell / 2
	p.AddRoundRect(0, 0, EyeCell, EyeCell, outer)
	p.AddRoundRect(eyeModule, eyeModule, EyeCell-eyeModule, EyeCell-eyeModule, outer*5/7)
	return p
}

func (e roundedEye) PupilPath() qrpath.Path {
	var p qrpath.Path
	p.AddRoundRect(2*eyeModule, 2*eyeModule, 5*eyeModule, 5*eyeModule, e.radius*3*eyeModule/2)
	return p
}

// circleEye draws the ring and pupil as concentric circles.
type circleEye struct{}

func (circleEye) Name() string       { return "circle" }
func (circleEye) Settings() Settings { return Settings{} }
func (circleEye) Clone() Eye         { return circleEye{} }

func (circleEye) EyePath() qrpath.Path {
	var p qrpath.Path
	c := EyeCell / 2
	p.AddCircle(c, c, c)
	p.AddCircle(c, c, c-eyeModule)
	return p
}

func (circleEye) PupilPath() qrpath.Path {
	var p qrpath.Path
	c := EyeCell / 2
	p.AddCircle(c, c, 1.5*eyeModule)
	return p
}
