/*
Package geometry lays an arbitrary image out onto a grid of 128 by 128 pixel
map tiles.

Given both grid dimensions the image is stretched to fill the grid exactly.
Given only one, the image is scaled to match that dimension, the other
dimension gets however many tiles are needed to hold the scaled image and the
image is centered on a transparent canvas.
*/
package geometry

import (
	"errors"
	"fmt"
	"image"
)

// TileSize is the width and height of a single map tile in pixels
const TileSize = 128

// ErrInvalid is returned for impossible source or target dimensions
var ErrInvalid = errors.New("geometry: invalid geometry")

// Scale is the requested grid size in tiles. Zero in exactly one dimension
// means that dimension is computed from the aspect ratio of the source.
type Scale struct {
	Columns int
	Rows    int
}

func (s Scale) String() string {
	dim := func(n int) string {
		if n == 0 {
			return "auto"
		}
		return fmt.Sprint(n)
	}
	return dim(s.Columns) + "x" + dim(s.Rows)
}

// Fit returns the scale that gives the shorter side of the source n tiles
// and computes the longer side. Square sources get n by n tiles.
func Fit(width, height, n int) Scale {
	switch {
	case width > height:
		return Scale{Rows: n}
	case height > width:
		return Scale{Columns: n}
	default:
		return Scale{Columns: n, Rows: n}
	}
}

// Plan describes where the resized source sits on the canvas
type Plan struct {
	// Grid size in tiles
	Columns, Rows int

	// Canvas size in pixels, always a multiple of TileSize
	Width, Height int

	// Top-left corner of the resized source on the canvas
	Offset image.Point

	// Size of the resized source
	Size image.Point
}

// Tiles returns the number of tiles on the canvas
func (p Plan) Tiles() int {
	return p.Columns * p.Rows
}

// Bounds returns the canvas rectangle
func (p Plan) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.Width, p.Height)
}

// Padding returns the padding on each side of the resized source
func (p Plan) Padding() (left, top, right, bottom int) {
	return p.Offset.X, p.Offset.Y, p.Width - p.Offset.X - p.Size.X, p.Height - p.Offset.Y - p.Size.Y
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// autoFit scales the source so that its given dimension is exactly n tiles and
// returns the number of tiles and pixels needed for the other dimension
func autoFit(n, given, other int) (tiles, pixels int) {
	pixels = n * TileSize * other / given
	if pixels < 1 {
		pixels = 1
	}
	return ceilDiv(n*other, given), pixels
}

// New plans the layout of a width by height source onto the grid given by s
func New(width, height int, s Scale) (Plan, error) {
	if width <= 0 || height <= 0 {
		return Plan{}, fmt.Errorf("%w: source is %dx%d", ErrInvalid, width, height)
	}
	if s.Columns < 0 || s.Rows < 0 || s.Columns == 0 && s.Rows == 0 {
		return Plan{}, fmt.Errorf("%w: scale %s", ErrInvalid, s)
	}

	var p Plan

	switch {
	case s.Columns > 0 && s.Rows > 0:
		p.Columns, p.Rows = s.Columns, s.Rows
		p.Size = image.Pt(p.Columns*TileSize, p.Rows*TileSize)
	case s.Rows == 0:
		p.Columns = s.Columns
		p.Size.X = p.Columns * TileSize
		p.Rows, p.Size.Y = autoFit(s.Columns, width, height)
	default:
		p.Rows = s.Rows
		p.Size.Y = p.Rows * TileSize
		p.Columns, p.Size.X = autoFit(s.Rows, height, width)
	}

	p.Width, p.Height = p.Columns*TileSize, p.Rows*TileSize
	p.Offset = image.Pt((p.Width-p.Size.X)/2, (p.Height-p.Size.Y)/2)

	return p, nil
}
