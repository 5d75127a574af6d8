/*
Package mapdata implements the map item record written for every tile.

A record is a named binary tag tree: a root compound holding a "data"
compound with the map metadata followed by the 16384 color indices of the
128 by 128 pixel map, row-major from the top-left pixel. On disk the tree is
gzip compressed and stored as map_<n>.dat.
*/
package mapdata

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/bodgit/mapped/nbt"
	"github.com/bodgit/mapped/tile"
	"github.com/klauspost/compress/gzip"
)

const (
	rootName = "root"
	dataName = "data"

	// Size is the width and height of a map in pixels
	Size = 128
)

// ErrInvalid is returned when decoding a tree that isn't a map record
var ErrInvalid = errors.New("mapdata: invalid map record")

// Record is a single map item. It implements the encoding.BinaryMarshaler and
// encoding.BinaryUnmarshaler interfaces.
type Record struct {
	Scale            int8
	Dimension        int8
	Locked           bool
	TrackingPosition bool
	XCenter          int32
	ZCenter          int32
	Height           int16
	Width            int16
	Colors           [tile.Pixels]uint8
}

// New returns a locked record at the origin holding the given colors
func New(colors [tile.Pixels]uint8) *Record {
	return &Record{
		Locked: true,
		Height: Size,
		Width:  Size,
		Colors: colors,
	}
}

func (r *Record) compound() nbt.Compound {
	return nbt.Compound{
		{Name: dataName, Tag: nbt.Compound{
			{Name: "scale", Tag: nbt.Byte(r.Scale)},
			{Name: "dimension", Tag: nbt.Byte(r.Dimension)},
			{Name: "locked", Tag: nbt.Bool(r.Locked)},
			{Name: "trackingPosition", Tag: nbt.Bool(r.TrackingPosition)},
			{Name: "xCenter", Tag: nbt.Int(r.XCenter)},
			{Name: "zCenter", Tag: nbt.Int(r.ZCenter)},
			{Name: "height", Tag: nbt.Short(r.Height)},
			{Name: "width", Tag: nbt.Short(r.Width)},
			{Name: "colors", Tag: nbt.ByteArray(r.Colors[:])},
		}},
	}
}

// MarshalBinary encodes the record as an uncompressed tag tree
func (r *Record) MarshalBinary() ([]byte, error) {
	b := new(bytes.Buffer)
	if err := nbt.Encode(b, rootName, r.compound()); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func setByte(dst *int8) func(nbt.Tag) bool {
	return func(t nbt.Tag) bool {
		v, ok := t.(nbt.Byte)
		*dst = int8(v)
		return ok
	}
}

func setBool(dst *bool) func(nbt.Tag) bool {
	return func(t nbt.Tag) bool {
		v, ok := t.(nbt.Byte)
		*dst = v != 0
		return ok
	}
}

func setShort(dst *int16) func(nbt.Tag) bool {
	return func(t nbt.Tag) bool {
		v, ok := t.(nbt.Short)
		*dst = int16(v)
		return ok
	}
}

func setInt(dst *int32) func(nbt.Tag) bool {
	return func(t nbt.Tag) bool {
		v, ok := t.(nbt.Int)
		*dst = int32(v)
		return ok
	}
}

func setColors(dst *[tile.Pixels]uint8) func(nbt.Tag) bool {
	return func(t nbt.Tag) bool {
		v, ok := t.(nbt.ByteArray)
		if !ok || len(v) != tile.Pixels {
			return false
		}
		copy(dst[:], v)
		return true
	}
}

// UnmarshalBinary decodes the record from an uncompressed tag tree
func (r *Record) UnmarshalBinary(b []byte) error {
	_, root, err := nbt.Decode(bytes.NewReader(b))
	if err != nil {
		return err
	}

	data, err := root.Compound(dataName)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	fields := []struct {
		name string
		set  func(nbt.Tag) bool
	}{
		{"scale", setByte(&r.Scale)},
		{"dimension", setByte(&r.Dimension)},
		{"locked", setBool(&r.Locked)},
		{"trackingPosition", setBool(&r.TrackingPosition)},
		{"xCenter", setInt(&r.XCenter)},
		{"zCenter", setInt(&r.ZCenter)},
		{"height", setShort(&r.Height)},
		{"width", setShort(&r.Width)},
		{"colors", setColors(&r.Colors)},
	}

	for _, f := range fields {
		t, ok := data.Get(f.name)
		if !ok {
			return fmt.Errorf("%w: missing %q", ErrInvalid, f.name)
		}
		if !f.set(t) {
			return fmt.Errorf("%w: unexpected %q", ErrInvalid, f.name)
		}
	}

	return nil
}

// WriteTo writes the gzip compressed record to w
func (r *Record) WriteTo(w io.Writer) (int64, error) {
	b, err := r.MarshalBinary()
	if err != nil {
		return 0, err
	}

	cw := &countingWriter{w: w}
	zw := gzip.NewWriter(cw)
	if _, err := zw.Write(b); err != nil {
		return cw.n, err
	}
	if err := zw.Close(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// Read reads a gzip compressed record from r
func Read(r io.Reader) (*Record, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	b, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}

	rec := new(Record)
	if err := rec.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return rec, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
