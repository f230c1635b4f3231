package qrsvg

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/benoitkugler/qrsvg/qrmatrix"
	"github.com/benoitkugler/qrsvg/qrpath"
)

// This file serializes a composited Document to SVG text.
// The output contract is strict so renders are byte reproducible:
// lines are separated by a single line feed regardless of the host
// platform, coordinates are written in absolute output units, and
// the document ends with the closing tag plus a trailing line feed.

// RenderSVG composes and serializes in one call.
func RenderSVG(m qrmatrix.Matrix, d Design, logo *LogoTemplate, dimension int) ([]byte, error) {
	doc, err := Compose(m, d, logo, dimension)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := doc.WriteSVG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteSVG writes the document as UTF-8 SVG text.
// Serialization never fails for a document built by Compose; the
// returned error only reflects the writer.
func (doc *Document) WriteSVG(w io.Writer) error {
	_, err := fmt.Fprintf(w, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"+
		"<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n",
		doc.Size, doc.Size, doc.Size, doc.Size)
	if err != nil {
		return err
	}

	if doc.Background != nil {
		_, err = fmt.Fprintf(w, "<rect width=\"%d\" height=\"%d\"%s/>\n", doc.Size, doc.Size, fillAttrs(*doc.Background))
		if err != nil {
			return err
		}
	}

	for _, layer := range doc.Layers {
		_, err = fmt.Fprintf(w, "<path d=\"%s\"%s/>\n", layer.Path.ToSVGPath(), fillAttrs(layer.Fill))
		if err != nil {
			return err
		}
	}

	if doc.logo != nil {
		if err = writeImage(w, doc.logo); err != nil {
			return err
		}
	}

	if err = doc.writeDefs(w); err != nil {
		return err
	}

	_, err = io.WriteString(w, "</svg>\n")
	return err
}

// fillAttrs formats the paint attributes of a layer, leading space
// included. An opacity of 1 and the default fill rule are omitted.
func fillAttrs(a FillAttrs) string {
	out := fmt.Sprintf(" fill=%q", a.Fill)
	if a.Opacity > 0 && a.Opacity < 1 {
		out += fmt.Sprintf(" fill-opacity=%q", qrpath.FormatFloat(a.Opacity))
	}
	if a.EvenOdd {
		out += ` fill-rule="evenodd"`
	}
	return out
}

// writeImage emits the logo overlay, clipped by its mask. The bytes
// are base64 encoded with 64 column wrapping, each line terminated
// by a line feed.
func writeImage(w io.Writer, img *imageLayer) error {
	_, err := fmt.Fprintf(w, "<image x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" preserveAspectRatio=\"xMidYMid slice\" clip-path=\"url(#%s)\" href=\"data:%s;base64,\n",
		qrpath.FormatFloat(img.x), qrpath.FormatFloat(img.y),
		qrpath.FormatFloat(img.w), qrpath.FormatFloat(img.h),
		img.clipID, img.mime)
	if err != nil {
		return err
	}
	if err = writeBase64(w, img.data); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\"/>\n")
	return err
}

// writeBase64 encodes data in 64 character lines, each ending with
// a line feed (the last one included).
func writeBase64(w io.Writer, data []byte) error {
	const cols = 64
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 0 {
		n := cols
		if len(encoded) < n {
			n = len(encoded)
		}
		if _, err := io.WriteString(w, encoded[:n]); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		encoded = encoded[n:]
	}
	return nil
}

// writeDefs emits the shared resource section: paint servers first,
// then the logo clip path. An empty section is omitted entirely.
func (doc *Document) writeDefs(w io.Writer) error {
	if len(doc.defs) == 0 && doc.logo == nil {
		return nil
	}
	if _, err := io.WriteString(w, "<defs>\n"); err != nil {
		return err
	}
	for _, def := range doc.defs {
		if err := writeGradient(w, def.id, def.src); err != nil {
			return err
		}
	}
	if doc.logo != nil {
		_, err := fmt.Fprintf(w, "<clipPath id=%q>\n<path d=\"%s\"/>\n</clipPath>\n",
			doc.logo.clipID, doc.logo.clip.ToSVGPath())
		if err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</defs>\n")
	return err
}

func writeGradient(w io.Writer, id string, g *Gradient) error {
	direction := g.Direction
	if direction == nil {
		direction = Linear{0, 0, 1, 0}
	}
	var err error
	switch direction := direction.(type) {
	case Radial:
		_, err = fmt.Fprintf(w, "<radialGradient id=%q cx=\"%s\" cy=\"%s\" r=\"%s\">\n",
			id, qrpath.FormatFloat(direction[0]), qrpath.FormatFloat(direction[1]), qrpath.FormatFloat(direction[2]))
	case Linear:
		_, err = fmt.Fprintf(w, "<linearGradient id=%q x1=\"%s\" y1=\"%s\" x2=\"%s\" y2=\"%s\">\n",
			id, qrpath.FormatFloat(direction[0]), qrpath.FormatFloat(direction[1]),
			qrpath.FormatFloat(direction[2]), qrpath.FormatFloat(direction[3]))
	}
	if err != nil {
		return err
	}
	for _, stop := range g.Stops {
		_, err = fmt.Fprintf(w, "<stop offset=\"%s\" stop-color=%q",
			qrpath.FormatFloat(stop.Offset), hexColor(stop.StopColor))
		if err != nil {
			return err
		}
		if op := opacity(stop.Opacity, stop.StopColor.A); op < 1 {
			if _, err = fmt.Fprintf(w, " stop-opacity=%q", qrpath.FormatFloat(op)); err != nil {
				return err
			}
		}
		if _, err = io.WriteString(w, "/>\n"); err != nil {
			return err
		}
	}
	switch direction.(type) {
	case Radial:
		_, err = io.WriteString(w, "</radialGradient>\n")
	default:
		_, err = io.WriteString(w, "</linearGradient>\n")
	}
	return err
}
