/*
Package frame turns a source image into the sequence of frames to convert.

Still images produce a single frame. Animated GIFs produce one fully
composited frame per embedded frame, in storage order; frame timing is
ignored. A sequence is read once from start to finish and can't be rewound.
*/
package frame

import (
	"bufio"
	"bytes"
	"image"
	"image/gif"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"

	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

// Sequence is a single-pass iterator over frames
type Sequence interface {
	// Next returns the next frame or io.EOF once every frame has been
	// returned
	Next() (image.Image, error)

	// Len returns the total number of frames
	Len() int
}

type still struct {
	m image.Image
}

func (s *still) Next() (image.Image, error) {
	if s.m == nil {
		return nil, io.EOF
	}
	m := s.m
	s.m = nil
	return m, nil
}

func (s *still) Len() int {
	return 1
}

// Still returns a sequence of just m
func Still(m image.Image) Sequence {
	return &still{m: m}
}

var gifMagic = [][]byte{[]byte("GIF87a"), []byte("GIF89a")}

func isGIF(b []byte) bool {
	for _, m := range gifMagic {
		if bytes.HasPrefix(b, m) {
			return true
		}
	}
	return false
}

// Decode reads a source image from r. Any format registered with the image
// package is accepted.
func Decode(r io.Reader) (Sequence, error) {
	br := bufio.NewReader(r)

	// A short peek just means it's not a GIF, let the decoder complain
	b, _ := br.Peek(len(gifMagic[0]))
	if isGIF(b) {
		g, err := gif.DecodeAll(br)
		if err != nil {
			return nil, err
		}
		return newGIF(g), nil
	}

	m, _, err := image.Decode(br)
	if err != nil {
		return nil, err
	}
	return Still(m), nil
}
