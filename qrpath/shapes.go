package qrpath

// This file implements the transformation from
// the cell level shapes to their path equivalent

// kappa is the control point factor approximating a 90 degrees
// circular arc with one cubic bezier.
const kappa = 0.5523

// Corner indices for AddCornerRect, clockwise from the top left.
const (
	TopLeft = iota
	TopRight
	BottomRight
	BottomLeft
)

// AddRect adds an axis aligned rectangle to the path, as a closed
// clockwise subpath. Degenerate boxes (minX >= maxX or minY >= maxY)
// add nothing.
func (p *Path) AddRect(minX, minY, maxX, maxY float64) {
	if minX >= maxX || minY >= maxY {
		return
	}
	p.Start(fToFixed(minX, minY))
	p.Line(fToFixed(maxX, minY))
	p.Line(fToFixed(maxX, maxY))
	p.Line(fToFixed(minX, maxY))
	p.Stop(true)
}

// AddRoundRect adds a rectangle with the same radius `r` on the four
// corners. The radius is clamped to half the smaller side.
func (p *Path) AddRoundRect(minX, minY, maxX, maxY, r float64) {
	p.AddCornerRect(minX, minY, maxX, maxY, [4]float64{r, r, r, r})
}

// AddCornerRect adds a rectangle with an individual corner radius per
// corner, given clockwise from the top left. A zero radius yields a
// square corner; each radius is clamped to half the smaller side.
// Rounded corners are approximated by one cubic bezier each.
func (p *Path) AddCornerRect(minX, minY, maxX, maxY float64, radii [4]float64) {
	w, h := maxX-minX, maxY-minY
	if w <= 0 || h <= 0 {
		return
	}
	max := w / 2
	if h/2 < max {
		max = h / 2
	}
	for i, r := range radii {
		if r < 0 {
			radii[i] = 0
		} else if r > max {
			radii[i] = max
		}
	}
	tl, tr, br, bl := radii[TopLeft], radii[TopRight], radii[BottomRight], radii[BottomLeft]

	p.Start(fToFixed(minX+tl, minY))
	p.Line(fToFixed(maxX-tr, minY))
	if tr > 0 {
		p.CubeBezier(fToFixed(maxX-tr+tr*kappa, minY),
			fToFixed(maxX, minY+tr-tr*kappa), fToFixed(maxX, minY+tr))
	}
	p.Line(fToFixed(maxX, maxY-br))
	if br > 0 {
		p.CubeBezier(fToFixed(maxX, maxY-br+br*kappa),
			fToFixed(maxX-br+br*kappa, maxY), fToFixed(maxX-br, maxY))
	}
	p.Line(fToFixed(minX+bl, maxY))
	if bl > 0 {
		p.CubeBezier(fToFixed(minX+bl-bl*kappa, maxY),
			fToFixed(minX, maxY-bl+bl*kappa), fToFixed(minX, maxY-bl))
	}
	p.Line(fToFixed(minX, minY+tl))
	if tl > 0 {
		p.CubeBezier(fToFixed(minX, minY+tl-tl*kappa),
			fToFixed(minX+tl-tl*kappa, minY), fToFixed(minX+tl, minY))
	}
	p.Stop(true)
}

// AddCircle adds a circle of center cx, cy and radius r, as four
// cubic bezier quarters, clockwise from the top.
func (p *Path) AddCircle(cx, cy, r float64) {
	if r <= 0 {
		return
	}
	k := r * kappa
	p.Start(fToFixed(cx, cy-r))
	p.CubeBezier(fToFixed(cx+k, cy-r), fToFixed(cx+r, cy-k), fToFixed(cx+r, cy))
	p.CubeBezier(fToFixed(cx+r, cy+k), fToFixed(cx+k, cy+r), fToFixed(cx, cy+r))
	p.CubeBezier(fToFixed(cx-k, cy+r), fToFixed(cx-r, cy+k), fToFixed(cx-r, cy))
	p.CubeBezier(fToFixed(cx-r, cy-k), fToFixed(cx-k, cy-r), fToFixed(cx, cy-r))
	p.Stop(true)
}

// InsetBox shrinks the cell [x, x+size] x [y, y+size] symmetrically
// by the `inset` fraction of the cell. The fraction is clamped to
// [0, 1) so that the returned box is never degenerate or negative.
func InsetBox(x, y, size, inset float64) (minX, minY, maxX, maxY float64) {
	if inset < 0 {
		inset = 0
	} else if inset >= 1 {
		inset = maxInset
	}
	d := inset * size / 2
	return x + d, y + d, x + size - d, y + size - d
}

// maxInset keeps 2*inset strictly below the cell size.
const maxInset = 0.99
