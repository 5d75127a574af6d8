/*
Package palette implements the fixed map color table.

A palette is an ordered list of RGB colors addressed by an 8-bit index. The
first four entries are reserved for the fully transparent color in each of its
four shades; every entry from index four onwards is an opaque color that
pixels may be mapped to.
*/
package palette

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
)

const (
	// Reserved is the number of transparent entries at the start of the
	// palette
	Reserved = 4

	// Transparent is the canonical fully transparent index
	Transparent = 0

	maxEntries = 256
)

// ErrMalformed is returned when palette data cannot be parsed
var ErrMalformed = errors.New("palette: malformed palette")

// Palette is an immutable ordered table of colors. It is safe to share
// between goroutines.
type Palette struct {
	colors    color.Palette
	effective color.Palette
}

// Parse builds a palette from a flat sequence of RGB triples.
func Parse(values []int) (*Palette, error) {
	switch {
	case len(values) == 0:
		return nil, fmt.Errorf("%w: no values", ErrMalformed)
	case len(values)%3 != 0:
		return nil, fmt.Errorf("%w: %d values is not a multiple of 3", ErrMalformed, len(values))
	case len(values)/3 > maxEntries:
		return nil, fmt.Errorf("%w: more than %d entries", ErrMalformed, maxEntries)
	case len(values)/3 <= Reserved:
		return nil, fmt.Errorf("%w: need more than %d entries", ErrMalformed, Reserved)
	}

	p := make(color.Palette, 0, len(values)/3)
	for i := 0; i < len(values); i += 3 {
		for _, v := range values[i : i+3] {
			if v < 0 || v > 0xff {
				return nil, fmt.Errorf("%w: value %d out of range", ErrMalformed, v)
			}
		}
		p = append(p, color.RGBA{uint8(values[i]), uint8(values[i+1]), uint8(values[i+2]), 0xff})
	}

	return &Palette{
		colors:    p,
		effective: p[Reserved:],
	}, nil
}

func isSeparator(r rune) bool {
	switch r {
	case ',', ';', ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

// Read parses a palette from delimited integer text, such as the contents of
// palette.csv
func Read(r io.Reader) (*Palette, error) {
	var values []int

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for s.Scan() {
		for _, f := range strings.FieldsFunc(s.Text(), isSeparator) {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not an integer", ErrMalformed, f)
			}
			values = append(values, v)
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	return Parse(values)
}

// WriteCSV writes the palette in the same flat comma separated form accepted
// by Read
func (p *Palette) WriteCSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, c := range p.colors {
		r, g, b, _ := c.RGBA()
		if i > 0 {
			if err := bw.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(bw, "%d,%d,%d", r>>8, g>>8, b>>8); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Len returns the number of entries including the reserved ones
func (p *Palette) Len() int {
	return len(p.colors)
}

// Color returns the color at index i
func (p *Palette) Color(i uint8) color.Color {
	return p.colors[i]
}

// Effective returns the opaque part of the palette that pixels are quantized
// against. Index i of the returned palette is index i+Reserved of p. The
// returned slice must not be modified.
func (p *Palette) Effective() color.Palette {
	return p.effective
}

// Nearest returns the full palette index of the opaque entry closest to c
func (p *Palette) Nearest(c color.Color) uint8 {
	r, g, b, _ := c.RGBA()
	return uint8(p.effective.Index(color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 0xff}) + Reserved)
}
