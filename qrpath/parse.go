package qrpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// This file compiles SVG path data strings into a Path.
// Only the subset needed for logo mask outlines is supported:
// moves, lines, cubic and quadratic beziers and their shorthands.
// Elliptical arcs are not accepted.

var errCommand = errors.New("invalid path command")

// pathCursor is the state of the path data compiler.
type pathCursor struct {
	path               Path
	placeX, placeY     float64 // current point
	curX, curY         float64 // start of the current subpath
	cntlPtX, cntlPtY   float64 // last control point, for shorthands
	points             []float64
	inPath, lastIsCntl bool
}

// CompilePath translates the SVG path data string `d` into a Path.
// Coordinates are kept as given; scaling to the target space is the
// caller's concern.
func CompilePath(d string) (Path, error) {
	var c pathCursor
	lastIndex := -1
	for i, v := range d {
		if unicode.IsLetter(v) && v != 'e' && v != 'E' {
			if lastIndex != -1 {
				if err := c.addSeg(d[lastIndex:i]); err != nil {
					return nil, err
				}
			}
			lastIndex = i
		}
	}
	if lastIndex != -1 {
		if err := c.addSeg(d[lastIndex:]); err != nil {
			return nil, err
		}
	}
	if len(c.path) == 0 {
		return nil, errors.New("empty path data")
	}
	return c.path, nil
}

// readFloats fills c.points from the argument part of a segment.
func (c *pathCursor) readFloats(args string) error {
	c.points = c.points[:0]
	args = strings.TrimSpace(args)
	fields := strings.FieldsFunc(args, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	for _, f := range fields {
		// handle compact negative numbers glued to the previous one
		start := 0
		for i, r := range f {
			if r == '-' && i > start && f[i-1] != 'e' && f[i-1] != 'E' {
				v, err := strconv.ParseFloat(f[start:i], 64)
				if err != nil {
					return err
				}
				c.points = append(c.points, v)
				start = i
			}
		}
		v, err := strconv.ParseFloat(f[start:], 64)
		if err != nil {
			return err
		}
		c.points = append(c.points, v)
	}
	return nil
}

// hasSets checks that the number of parameters is a non empty
// multiple of `n`.
func (c *pathCursor) hasSets(n int) error {
	if len(c.points) == 0 || len(c.points)%n != 0 {
		return fmt.Errorf("%w: expected sets of %d parameters, got %d", errCommand, n, len(c.points))
	}
	return nil
}

func (c *pathCursor) startAt(x, y float64) {
	c.path.Start(fToFixed(x, y))
	c.placeX, c.placeY = x, y
	c.curX, c.curY = x, y
	c.inPath = true
}

func (c *pathCursor) lineTo(x, y float64) {
	c.path.Line(fToFixed(x, y))
	c.placeX, c.placeY = x, y
}

func (c *pathCursor) cubicTo(x1, y1, x2, y2, x, y float64) {
	c.path.CubeBezier(fToFixed(x1, y1), fToFixed(x2, y2), fToFixed(x, y))
	c.cntlPtX, c.cntlPtY = x2, y2
	c.placeX, c.placeY = x, y
	c.lastIsCntl = true
}

func (c *pathCursor) quadTo(x1, y1, x, y float64) {
	c.path.QuadBezier(fToFixed(x1, y1), fToFixed(x, y))
	c.cntlPtX, c.cntlPtY = x1, y1
	c.placeX, c.placeY = x, y
	c.lastIsCntl = true
}

// reflectControl returns the reflection of the previous control point
// around the current point, used by the S and T shorthands.
func (c *pathCursor) reflectControl() (x, y float64) {
	if !c.lastIsCntl {
		return c.placeX, c.placeY
	}
	return 2*c.placeX - c.cntlPtX, 2*c.placeY - c.cntlPtY
}

func (c *pathCursor) addSeg(seg string) error {
	key := seg[0]
	rel := key >= 'a' // lowercase commands are relative
	if err := c.readFloats(seg[1:]); err != nil {
		return err
	}
	var dx, dy float64
	if rel {
		dx, dy = c.placeX, c.placeY
	}
	wasCntl := false

	switch upper := key &^ 0x20; upper {
	case 'Z':
		if len(c.points) != 0 {
			return fmt.Errorf("%w: Z takes no parameter", errCommand)
		}
		if c.inPath {
			c.path.Stop(true)
			c.placeX, c.placeY = c.curX, c.curY
		}
	case 'M':
		if err := c.hasSets(2); err != nil {
			return err
		}
		c.startAt(c.points[0]+dx, c.points[1]+dy)
		// additional pairs are implicit line-tos
		for i := 2; i < len(c.points); i += 2 {
			if rel {
				dx, dy = c.placeX, c.placeY
			}
			c.lineTo(c.points[i]+dx, c.points[i+1]+dy)
		}
	case 'L':
		if err := c.hasSets(2); err != nil {
			return err
		}
		for i := 0; i < len(c.points); i += 2 {
			if rel {
				dx, dy = c.placeX, c.placeY
			}
			c.lineTo(c.points[i]+dx, c.points[i+1]+dy)
		}
	case 'H':
		if err := c.hasSets(1); err != nil {
			return err
		}
		for _, v := range c.points {
			if rel {
				dx = c.placeX
			}
			c.lineTo(v+dx, c.placeY)
		}
	case 'V':
		if err := c.hasSets(1); err != nil {
			return err
		}
		for _, v := range c.points {
			if rel {
				dy = c.placeY
			}
			c.lineTo(c.placeX, v+dy)
		}
	case 'C':
		if err := c.hasSets(6); err != nil {
			return err
		}
		for i := 0; i < len(c.points); i += 6 {
			if rel {
				dx, dy = c.placeX, c.placeY
			}
			c.cubicTo(c.points[i]+dx, c.points[i+1]+dy,
				c.points[i+2]+dx, c.points[i+3]+dy,
				c.points[i+4]+dx, c.points[i+5]+dy)
		}
		wasCntl = true
	case 'S':
		if err := c.hasSets(4); err != nil {
			return err
		}
		for i := 0; i < len(c.points); i += 4 {
			if rel {
				dx, dy = c.placeX, c.placeY
			}
			x1, y1 := c.reflectControl()
			c.cubicTo(x1, y1,
				c.points[i]+dx, c.points[i+1]+dy,
				c.points[i+2]+dx, c.points[i+3]+dy)
		}
		wasCntl = true
	case 'Q':
		if err := c.hasSets(4); err != nil {
			return err
		}
		for i := 0; i < len(c.points); i += 4 {
			if rel {
				dx, dy = c.placeX, c.placeY
			}
			c.quadTo(c.points[i]+dx, c.points[i+1]+dy,
				c.points[i+2]+dx, c.points[i+3]+dy)
		}
		wasCntl = true
	case 'T':
		if err := c.hasSets(2); err != nil {
			return err
		}
		for i := 0; i < len(c.points); i += 2 {
			if rel {
				dx, dy = c.placeX, c.placeY
			}
			x1, y1 := c.reflectControl()
			c.quadTo(x1, y1, c.points[i]+dx, c.points[i+1]+dy)
		}
		wasCntl = true
	case 'A':
		return fmt.Errorf("%w: elliptical arcs are not supported in mask paths", errCommand)
	default:
		return fmt.Errorf("%w: %q", errCommand, string(key))
	}
	c.lastIsCntl = wasCntl
	return nil
}
