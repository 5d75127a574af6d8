/*
Package mapped is a library for converting images into map item data.

Every frame of the source is laid out onto a grid of 128 by 128 pixel tiles,
quantized against the map palette and each tile written as its own
sequentially numbered map record.
*/
package mapped

import (
	"errors"
	"fmt"
	"image/color"
	"log"

	"github.com/bodgit/mapped/geometry"
	"github.com/bodgit/mapped/palette"
	"github.com/bodgit/mapped/quant"
)

var (
	// ErrSourceNotFound is returned when the source image doesn't exist
	ErrSourceNotFound = errors.New("mapped: source not found")

	// ErrInterrupted is returned when a conversion is cancelled
	ErrInterrupted = errors.New("mapped: interrupted")
)

// Options control how images are converted
type Options struct {
	// Grid size in tiles, used when Fit is zero
	Scale geometry.Scale

	// If greater than zero, the shorter side of the source is Fit tiles
	// and the longer side is computed from the aspect ratio
	Fit int

	Resampling geometry.Resampling
	Method     quant.Method
	Dither     bool

	// Pixels with an alpha below this are transparent
	AlphaThreshold int

	// If set, transparent pixels use the nearest palette entry to this
	// color instead
	Transparent color.Color
}

// DefaultOptions returns the options used when nothing else is specified
func DefaultOptions() Options {
	return Options{
		Scale:          geometry.Scale{Columns: 1, Rows: 1},
		Resampling:     geometry.Cubic,
		Method:         quant.MedianCut,
		Dither:         true,
		AlphaThreshold: 128,
	}
}

// Converter converts images into map records
type Converter struct {
	palette      *palette.Palette
	opts         Options
	transparency palette.Transparency
	db           *Manifest
	logger       *log.Logger
}

// New returns a Converter using palette p. The options are validated up
// front so that nothing is written for an impossible conversion. db may be
// nil if conversions shouldn't be recorded.
func New(p *palette.Palette, db *Manifest, logger *log.Logger, opts Options) (*Converter, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: no palette", palette.ErrMalformed)
	}

	if err := quant.Available(opts.Method); err != nil {
		return nil, err
	}

	switch {
	case opts.Fit < 0:
		return nil, fmt.Errorf("%w: fit %d", geometry.ErrInvalid, opts.Fit)
	case opts.Fit == 0:
		// Any source size will do, it's the scale being checked
		if _, err := geometry.New(1, 1, opts.Scale); err != nil {
			return nil, err
		}
	}

	t, err := palette.NewTransparency(p, opts.AlphaThreshold, opts.Transparent)
	if err != nil {
		return nil, err
	}

	return &Converter{
		palette:      p,
		opts:         opts,
		transparency: t,
		db:           db,
		logger:       logger,
	}, nil
}
