package frame

import (
	"image"
	"image/draw"
	"image/gif"
	"io"
)

// animated composites GIF frames onto a canvas one at a time
type animated struct {
	g      *gif.GIF
	canvas *image.RGBA
	saved  *image.RGBA
	pos    int
}

func newGIF(g *gif.GIF) *animated {
	r := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if r.Empty() {
		// No logical screen size, so use the area covered by all frames
		r = image.Rectangle{}
		for _, m := range g.Image {
			r = r.Union(m.Bounds())
		}
	}

	return &animated{
		g:      g,
		canvas: image.NewRGBA(r),
	}
}

func (a *animated) disposal(i int) byte {
	if i < len(a.g.Disposal) {
		return a.g.Disposal[i]
	}
	return 0
}

func (a *animated) dispose(i int) {
	switch a.disposal(i) {
	case gif.DisposalBackground:
		draw.Draw(a.canvas, a.g.Image[i].Bounds(), image.Transparent, image.Point{}, draw.Src)
	case gif.DisposalPrevious:
		if a.saved != nil {
			copy(a.canvas.Pix, a.saved.Pix)
		}
	}
}

func (a *animated) Next() (image.Image, error) {
	if a.pos >= len(a.g.Image) {
		return nil, io.EOF
	}

	if a.pos > 0 {
		a.dispose(a.pos - 1)
	}

	if a.disposal(a.pos) == gif.DisposalPrevious {
		if a.saved == nil {
			a.saved = image.NewRGBA(a.canvas.Bounds())
		}
		copy(a.saved.Pix, a.canvas.Pix)
	}

	m := a.g.Image[a.pos]
	draw.Draw(a.canvas, m.Bounds(), m, m.Bounds().Min, draw.Over)
	a.pos++

	// Hand out a copy, the canvas keeps changing
	snap := image.NewNRGBA(a.canvas.Bounds())
	draw.Draw(snap, snap.Bounds(), a.canvas, a.canvas.Bounds().Min, draw.Src)

	return snap, nil
}

func (a *animated) Len() int {
	return len(a.g.Image)
}
