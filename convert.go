package mapped

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/mapped/frame"
	"github.com/bodgit/mapped/geometry"
	"github.com/bodgit/mapped/mapdata"
	"github.com/bodgit/mapped/quant"
	"github.com/bodgit/mapped/tile"
)

// Placement records where a map record came from
type Placement struct {
	Map    int
	Frame  int
	Column int
	Row    int
}

func interrupted(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrInterrupted, ctx.Err())
	default:
		return nil
	}
}

func (c *Converter) tiles(i int, seq frame.Sequence) ([]tile.Tile, error) {
	m, err := seq.Next()
	if err != nil {
		return nil, err
	}

	b := m.Bounds()
	scale := c.opts.Scale
	if c.opts.Fit > 0 {
		scale = geometry.Fit(b.Dx(), b.Dy(), c.opts.Fit)
	}

	plan, err := geometry.New(b.Dx(), b.Dy(), scale)
	if err != nil {
		return nil, err
	}
	c.logger.Printf("Frame %d: %dx%d source onto %dx%d tiles\n", i, b.Dx(), b.Dy(), plan.Columns, plan.Rows)

	grid, err := quant.Quantize(plan.Render(m, c.opts.Resampling), c.palette, c.opts.Method, c.opts.Dither)
	if err != nil {
		return nil, err
	}

	return tile.Split(grid)
}

func (c *Converter) convert(ctx context.Context, seq frame.Sequence, first int, sink mapdata.Sink, observe func(Placement) error) (int, error) {
	num := first
	for i := 0; ; i++ {
		if err := interrupted(ctx); err != nil {
			return num, err
		}

		tiles, err := c.tiles(i, seq)
		if err != nil {
			if err == io.EOF {
				return num, nil
			}
			return num, fmt.Errorf("frame %d: %w", i, err)
		}

		for _, t := range tiles {
			if err := interrupted(ctx); err != nil {
				return num, err
			}

			b, err := mapdata.Encode(mapdata.New(t.Colors(c.transparency)))
			if err != nil {
				return num, err
			}

			if err := sink.Write(num, b); err != nil {
				return num, err
			}

			if observe != nil {
				if err := observe(Placement{Map: num, Frame: i, Column: t.Column, Row: t.Row}); err != nil {
					return num + 1, err
				}
			}
			c.logger.Printf("Wrote map %d (frame %d, tile %d,%d)\n", num, i, t.Column, t.Row)

			num++
		}
	}
}

// Convert writes a record for every tile of every frame in seq to sink,
// numbered consecutively from first. It returns the number following the
// last record written, which on error is the number of the record that
// failed.
func (c *Converter) Convert(ctx context.Context, seq frame.Sequence, first int, sink mapdata.Sink) (int, error) {
	return c.convert(ctx, seq, first, sink, nil)
}

// ConvertFile converts the image at path, recording every map written in the
// manifest if there is one
func (c *Converter) ConvertFile(ctx context.Context, path string, first int, sink mapdata.Sink) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return first, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return first, err
	}
	defer f.Close()

	h := sha1.New()
	seq, err := frame.Decode(io.TeeReader(f, h))
	if err != nil {
		return first, err
	}
	c.logger.Printf("Decoded %q, %d frame(s)\n", path, seq.Len())

	var observe func(Placement) error
	if c.db != nil {
		// Include anything the decoder didn't need
		if _, err := io.Copy(h, f); err != nil {
			return first, err
		}

		source, err := c.db.AddSource(fmt.Sprintf("%X", h.Sum(nil)), filepath.Base(path))
		if err != nil {
			return first, err
		}

		observe = func(p Placement) error {
			return c.db.AddMap(source, p)
		}
	}

	return c.convert(ctx, seq, first, sink, observe)
}
