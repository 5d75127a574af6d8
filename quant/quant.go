/*
Package quant maps the pixels of a canvas onto a fixed palette.

The canvas is first reduced to a small set of representative colors using one
of several heuristics, each representative is then snapped to its nearest
palette entry and finally every pixel is drawn against that subset of the
palette, optionally with Floyd-Steinberg error diffusion. Alpha is carried
through untouched alongside the color indices.
*/
package quant

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/bodgit/mapped/palette"
	"github.com/ericpauley/go-quantize/quantize"
)

// ErrUnsupportedMethod is returned for methods not available in this build
var ErrUnsupportedMethod = errors.New("quant: unsupported quantize method")

// Method selects the color reduction heuristic
type Method int

// Supported methods
const (
	Off Method = iota
	MedianCut
	MaxCoverage
	FastOctree
	LibImageQuant
)

var methodNames = [...]string{
	Off:           "off",
	MedianCut:     "median-cut",
	MaxCoverage:   "max-coverage",
	FastOctree:    "fast-octree",
	LibImageQuant: "libimagequant",
}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// ParseMethod returns the method with the given name
func ParseMethod(name string) (Method, error) {
	for i, n := range methodNames {
		if n == name {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("quant: unknown quantize method %q", name)
}

// Available reports whether m can be used
func Available(m Method) error {
	switch m {
	case Off, MedianCut, MaxCoverage, FastOctree:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedMethod, m)
	}
}

// Grid holds the quantized canvas. Index holds effective palette indices and
// Alpha the untouched alpha of the same pixel, both row-major.
type Grid struct {
	Width, Height int
	Index         []uint8
	Alpha         []uint8
}

// NewGrid returns an empty width by height grid
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Index:  make([]uint8, width*height),
		Alpha:  make([]uint8, width*height),
	}
}

// stripAlpha returns an opaque copy of m with the same colors along with its
// alpha channel
func stripAlpha(m image.Image) (*image.NRGBA, []uint8) {
	b := m.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	alpha := make([]uint8, b.Dx()*b.Dy())

	if src, ok := m.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			s := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			d := dst.Pix[dst.PixOffset(0, y):]
			for x := 0; x < b.Dx(); x++ {
				copy(d[x*4:x*4+3], s[x*4:x*4+3])
				d[x*4+3] = 0xff
				alpha[y*b.Dx()+x] = s[x*4+3]
			}
		}
		return dst, alpha
	}

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(m.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			alpha[y*b.Dx()+x] = c.A
			c.A = 0xff
			dst.SetNRGBA(x, y, c)
		}
	}
	return dst, alpha
}

func reduce(m image.Image, method Method, n int) color.Palette {
	switch method {
	case MedianCut:
		q := quantize.MedianCutQuantizer{Aggregation: quantize.Mean}
		return q.Quantize(make(color.Palette, 0, n), m)
	case MaxCoverage:
		q := quantize.MedianCutQuantizer{Aggregation: quantize.Mode}
		return q.Quantize(make(color.Palette, 0, n), m)
	case FastOctree:
		return newOctree(m).palette(n)
	}
	return nil
}

// project snaps each color in reduced to its nearest entry in target and
// returns the distinct entries along with their indices in target
func project(reduced, target color.Palette) (color.Palette, []uint8) {
	var (
		sub     color.Palette
		mapping []uint8
		seen    = make(map[int]struct{})
	)
	for _, c := range reduced {
		i := target.Index(c)
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		sub = append(sub, target[i])
		mapping = append(mapping, uint8(i))
	}
	return sub, mapping
}

// Quantize maps every pixel of m onto the effective part of p
func Quantize(m image.Image, p *palette.Palette, method Method, dither bool) (*Grid, error) {
	if err := Available(method); err != nil {
		return nil, err
	}

	opaque, alpha := stripAlpha(m)
	r := opaque.Bounds()
	effective := p.Effective()

	sub, mapping := effective, []uint8(nil)
	if method != Off {
		sub, mapping = project(reduce(opaque, method, len(effective)), effective)
		if len(sub) == 0 {
			sub, mapping = effective, nil
		}
	}

	var drawer draw.Drawer = draw.Src
	if dither && method != Off {
		drawer = draw.FloydSteinberg
	}

	pm := image.NewPaletted(r, sub)
	drawer.Draw(pm, r, opaque, image.Point{})

	g := &Grid{
		Width:  r.Dx(),
		Height: r.Dy(),
		Index:  pm.Pix,
		Alpha:  alpha,
	}
	if mapping != nil {
		for i, c := range g.Index {
			g.Index[i] = mapping[c]
		}
	}

	return g, nil
}
