package qrsvg

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"image"
	"io"
	"strings"

	// decoders for the logo byte formats accepted by default
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/net/html/charset"
)

// DefaultMaskPath is the mask used when a template does not carry
// one: a centered square covering 30% of the document.
const DefaultMaskPath = "M0.35,0.35 L0.65,0.35 L0.65,0.65 L0.35,0.65 Z"

// LogoTemplate describes an image overlaid on the center of the
// code, clipped by a mask outline.
type LogoTemplate struct {
	// Image holds the already materialized image bytes (PNG or JPEG).
	// Bytes that do not decode degrade to "no logo": the render
	// succeeds without the overlay.
	Image []byte
	// MaskPath is the clip outline as SVG path data over the unit
	// box (coordinates are fractions of the output dimension).
	// Empty defaults to DefaultMaskPath.
	MaskPath string
	// Inset shrinks the mask towards its center by this fraction.
	Inset float64
	// SafeZone clears the modules under the mask before rendering,
	// so the code stays scannable behind an opaque logo.
	SafeZone bool
}

// ReadLogoTemplate parses a small SVG stream describing a template:
// the first path element provides the mask outline, and an image
// element with a base64 data URL provides the logo bytes.
func ReadLogoTemplate(stream io.Reader) (*LogoTemplate, error) {
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	var (
		out     LogoTemplate
		seenTag bool
	)
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		se, ok := t.(xml.StartElement)
		if !ok {
			continue
		}
		seenTag = true
		switch se.Name.Local {
		case "path":
			if out.MaskPath != "" {
				continue
			}
			for _, attr := range se.Attr {
				if attr.Name.Local == "d" {
					out.MaskPath = attr.Value
				}
			}
		case "image":
			if out.Image != nil {
				continue
			}
			for _, attr := range se.Attr {
				if attr.Name.Local == "href" { // covers xlink:href as well
					data, err := decodeDataURL(attr.Value)
					if err != nil {
						return nil, err
					}
					out.Image = data
				}
			}
		}
	}
	if !seenTag {
		return nil, errors.New("qrsvg: invalid logo template xml")
	}
	return &out, nil
}

// decodeDataURL extracts the bytes of a base64 data URL.
func decodeDataURL(href string) ([]byte, error) {
	const marker = ";base64,"
	i := strings.Index(href, marker)
	if !strings.HasPrefix(href, "data:") || i == -1 {
		return nil, errors.New("qrsvg: image href is not a base64 data URL")
	}
	payload := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, href[i+len(marker):])
	return base64.StdEncoding.DecodeString(payload)
}

// sniffImage validates the logo bytes and returns their mime type.
func sniffImage(data []byte) (mime string, ok bool) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", false
	}
	return "image/" + format, true
}
