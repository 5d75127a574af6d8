package geometry

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/gift"
)

// Resampling selects the filter used when resizing the source
type Resampling int

// Supported resampling filters
const (
	Cubic Resampling = iota
	Nearest
	Box
	Linear
	Lanczos
)

var resamplings = map[string]Resampling{
	"cubic":   Cubic,
	"nearest": Nearest,
	"box":     Box,
	"linear":  Linear,
	"lanczos": Lanczos,
}

// ParseResampling returns the resampling filter with the given name
func ParseResampling(name string) (Resampling, error) {
	r, ok := resamplings[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("geometry: unknown resampling %q", name)
	}
	return r, nil
}

func (r Resampling) String() string {
	for k, v := range resamplings {
		if v == r {
			return k
		}
	}
	return fmt.Sprintf("Resampling(%d)", int(r))
}

func (r Resampling) filter() gift.Resampling {
	switch r {
	case Nearest:
		return gift.NearestNeighborResampling
	case Box:
		return gift.BoxResampling
	case Linear:
		return gift.LinearResampling
	case Lanczos:
		return gift.LanczosResampling
	default:
		return gift.CubicResampling
	}
}

// Render resizes src and pastes it onto a new transparent canvas following
// the plan
func (p Plan) Render(src image.Image, r Resampling) *image.NRGBA {
	canvas := image.NewNRGBA(p.Bounds())

	g := gift.New(gift.Resize(p.Size.X, p.Size.Y, r.filter()))
	g.DrawAt(canvas, src, p.Offset, gift.CopyOperator)

	return canvas
}
