package qrsvg

import (
	"fmt"
	"math"

	"github.com/benoitkugler/qrsvg/qrmatrix"
	"github.com/benoitkugler/qrsvg/qrpath"
	"github.com/benoitkugler/qrsvg/qrshape"
)

// Fixed layer names, in z-order.
const (
	layerBackground    = "background"
	layerEyeBackground = "eye-background"
	layerPupil         = "pupil"
	layerEyeOuter      = "eye-outer"
	layerOffPixels     = "off-pixels"
	layerOnPixels      = "on-pixels"
)

// FillAttrs are the resolved paint attributes of one layer.
type FillAttrs struct {
	// Fill is a hex triplet or a paint server reference url(#id).
	Fill string
	// Opacity in (0, 1]; 1 is omitted from the output.
	Opacity float64
	// EvenOdd selects the even-odd fill rule instead of non-zero.
	EvenOdd bool
}

// Layer is one drawable element of the document, in output units.
type Layer struct {
	Name string
	Path qrpath.Path
	Fill FillAttrs
}

// imageLayer is the topmost logo overlay.
type imageLayer struct {
	x, y, w, h float64
	mime       string
	data       []byte
	clip       qrpath.Path
	clipID     string
}

// Document is the composited, z-ordered render output, ready for
// serialization. It is built fresh by every Compose call and holds
// no reference to the inputs.
type Document struct {
	// Size is the output dimension in pixels (the document is square).
	Size int
	// Background, if non nil, fills the document behind the layers.
	Background *FillAttrs
	// Layers are the drawable elements, bottom to top.
	Layers []Layer

	logo *imageLayer
	defs []serverDef
}

// serverDef is one deduplicated paint server entry, keeping the id
// outside the user owned Gradient so configurations stay read-only.
type serverDef struct {
	id  string
	src *Gradient
}

// resolve translates a configured style into output attributes,
// registering paint servers into the document defs (once per ID).
func (doc *Document) resolve(s LayerStyle) FillAttrs {
	switch fill := s.Fill.(type) {
	case PlainColor:
		return FillAttrs{Fill: hexColor(fill.RGBA), Opacity: opacity(s.Opacity, fill.A)}
	case *Gradient:
		id := doc.addServer(fill)
		return FillAttrs{Fill: "url(#" + id + ")", Opacity: opacity(s.Opacity, 0xff)}
	default:
		// not reachable for set styles; callers check IsSet first
		return FillAttrs{}
	}
}

// addServer deduplicates gradients by identifier (or by instance for
// anonymous ones), assigning a generated id when needed.
func (doc *Document) addServer(g *Gradient) string {
	for _, existing := range doc.defs {
		if existing.src == g || (g.ID != "" && existing.id == g.ID) {
			return existing.id
		}
	}
	id := g.ID
	for n := len(doc.defs) + 1; id == ""; n++ {
		// generated ids must not shadow a caller supplied one
		if candidate := fmt.Sprintf("grad%d", n); !doc.hasServer(candidate) {
			id = candidate
		}
	}
	doc.defs = append(doc.defs, serverDef{id: id, src: g})
	return id
}

func (doc *Document) hasServer(id string) bool {
	for _, def := range doc.defs {
		if def.id == id {
			return true
		}
	}
	return false
}

// addLayer appends the layer unless its geometry is empty.
func (doc *Document) addLayer(name string, p qrpath.Path, attrs FillAttrs) {
	if len(p) == 0 {
		return
	}
	doc.Layers = append(doc.Layers, Layer{Name: name, Path: p, Fill: attrs})
}

// Compose assembles the z-ordered layers for the matrix m rendered
// with the design d at the given output dimension. logo may be nil.
//
// Compose is pure: it does not mutate its inputs and two calls with
// identical inputs build identical documents.
func Compose(m qrmatrix.Matrix, d Design, logo *LogoTemplate, dimension int) (*Document, error) {
	side := m.Side()
	if side < 1 {
		return nil, qrmatrix.ErrDimension
	}
	if dimension < 1 {
		return nil, fmt.Errorf("%w: output dimension %d", qrmatrix.ErrDimension, dimension)
	}
	if !d.OnPixel.Style.IsSet() {
		return nil, ErrMissingOnStyle
	}

	doc := &Document{Size: dimension}
	cell := float64(dimension) / float64(side)

	// the logo is materialized first: its footprint may mask modules
	logoLayer, logoRegion := prepareLogo(logo, dimension, cell)

	if d.Background.IsSet() {
		attrs := doc.resolve(d.Background)
		doc.Background = &attrs
	}

	onShape := d.OnPixel.pixelShape()

	if d.NegatedPixelsOnly {
		// stencil override: only the on pixel layer, over the
		// inverted matrix, with the logo footprint knocked out
		inv := m.Inverted()
		if logoLayer != nil {
			inv = inv.Mask(logoRegion)
		}
		doc.addLayer(layerOnPixels, onShape.OnPath(inv, cell), doc.resolve(d.OnPixel.Style))
		doc.logo = logoLayer
		return doc, nil
	}

	eyes := eyePlacement(side, d.QuietZone, cell)

	if len(eyes.origins) > 0 {
		if d.EyeBackground.IsSet() {
			var p qrpath.Path
			for _, o := range eyes.origins {
				x, y := float64(o[0])*cell, float64(o[1])*cell
				p.AddRect(x, y, x+7*cell, y+7*cell)
			}
			doc.addLayer(layerEyeBackground, p, doc.resolve(d.EyeBackground))
		}
		eye := d.eyeShape()
		if d.PupilStyle.IsSet() {
			var p qrpath.Path
			for _, tr := range eyes.transforms {
				p.Append(eye.PupilPath().Transform(tr))
			}
			doc.addLayer(layerPupil, p, doc.resolve(d.PupilStyle))
		}
		if d.EyeStyle.IsSet() {
			var p qrpath.Path
			for _, tr := range eyes.transforms {
				p.Append(eye.EyePath().Transform(tr))
			}
			attrs := doc.resolve(d.EyeStyle)
			attrs.EvenOdd = true // ring = outer boundary + inner cutout
			doc.addLayer(layerEyeOuter, p, attrs)
		}
	}

	if d.OffPixel.Style.IsSet() {
		// finder corners (and the logo footprint) must not read as
		// off modules, so they are forced on before inverting
		mOff := m.WithRegion(eyes.region, true)
		if logoLayer != nil && logo.SafeZone {
			mOff = mOff.WithRegion(logoRegion, true)
		}
		doc.addLayer(layerOffPixels, d.OffPixel.pixelShape().OffPath(mOff, cell), doc.resolve(d.OffPixel.Style))
	}

	mOn := m.Mask(eyes.region)
	if logoLayer != nil && logo.SafeZone {
		mOn = mOn.Mask(logoRegion)
	}
	doc.addLayer(layerOnPixels, onShape.OnPath(mOn, cell), doc.resolve(d.OnPixel.Style))

	doc.logo = logoLayer
	return doc, nil
}

// placement of the three finder patterns, in module coordinates.
type eyeZones struct {
	origins    [][2]int
	transforms []qrpath.Matrix2D
	region     func(x, y int) bool
}

// eyePlacement locates the finder corners of a side*side matrix with
// the given quiet zone. Grids too small to hold finder patterns get
// no eye layers at all.
func eyePlacement(side, quiet int, cell float64) eyeZones {
	if quiet < 0 {
		quiet = 0
	}
	modules := side - 2*quiet
	if modules < 2*7+1 { // below any valid symbol, skip the eyes
		return eyeZones{region: func(int, int) bool { return false }}
	}
	origins := [][2]int{
		{quiet, quiet},               // top left
		{quiet + modules - 7, quiet}, // top right
		{quiet, quiet + modules - 7}, // bottom left
	}
	// each eye is drawn in a fixed 100x100 cell, scaled to 7 modules
	// and rotated so the shape orientation follows its corner
	scale := 7 * cell / qrshape.EyeCell
	rotations := []float64{0, math.Pi / 2, -math.Pi / 2}
	transforms := make([]qrpath.Matrix2D, len(origins))
	for i, o := range origins {
		c := qrshape.EyeCell / 2
		transforms[i] = qrpath.Identity.
			Translate(float64(o[0])*cell, float64(o[1])*cell).
			Scale(scale, scale).
			Translate(c, c).Rotate(rotations[i]).Translate(-c, -c)
	}
	region := func(x, y int) bool {
		for _, o := range origins {
			if x >= o[0] && x < o[0]+7 && y >= o[1] && y < o[1]+7 {
				return true
			}
		}
		return false
	}
	return eyeZones{origins: origins, transforms: transforms, region: region}
}

// prepareLogo turns a template into the topmost image layer and the
// module region it covers. The region is the axis aligned footprint
// of the mask: a non rectangular mask clears the full square of
// modules under its bounding box. Undecodable image bytes or invalid
// mask geometry degrade to no logo (nil layer, nil region).
func prepareLogo(logo *LogoTemplate, dimension int, cell float64) (*imageLayer, func(x, y int) bool) {
	if logo == nil {
		return nil, nil
	}
	mime, ok := sniffImage(logo.Image)
	if !ok {
		return nil, nil
	}
	maskData := logo.MaskPath
	if maskData == "" {
		maskData = DefaultMaskPath
	}
	mask, err := qrpath.CompilePath(maskData)
	if err != nil {
		return nil, nil
	}

	// scale the unit box mask to the output dimension, then inset it
	// towards its own center
	dim := float64(dimension)
	scaled := mask.Transform(qrpath.Identity.Scale(dim, dim))
	inset := logo.Inset
	if inset < 0 {
		inset = 0
	} else if inset >= 1 {
		inset = 0.99
	}
	if inset > 0 {
		bb := scaled.Bounds()
		cx := (float64(bb.Min.X) + float64(bb.Max.X)) / 2 / 64
		cy := (float64(bb.Min.Y) + float64(bb.Max.Y)) / 2 / 64
		f := 1 - inset
		scaled = scaled.Transform(qrpath.Identity.Translate(cx, cy).Scale(f, f).Translate(-cx, -cy))
	}

	bb := scaled.Bounds()
	minX, minY := float64(bb.Min.X)/64, float64(bb.Min.Y)/64
	maxX, maxY := float64(bb.Max.X)/64, float64(bb.Max.Y)/64
	layer := &imageLayer{
		x: minX, y: minY, w: maxX - minX, h: maxY - minY,
		mime:   mime,
		data:   logo.Image,
		clip:   scaled,
		clipID: "logoClip",
	}
	region := func(x, y int) bool {
		px, py := (float64(x)+0.5)*cell, (float64(y)+0.5)*cell
		return px >= minX && px < maxX && py >= minY && py < maxY
	}
	return layer, region
}
