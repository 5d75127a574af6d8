package mapped

import (
	"context"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/mapped/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, file string, c color.NRGBA) {
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0o755))
	f, err := os.Create(file)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, uniform(64, 64, c)))
	require.NoError(t, f.Close())
}

func TestIsImage(t *testing.T) {
	for _, file := range []string{"a.png", "b.JPG", "c.jpeg", "d.gif", "e.webp", "f.tiff", "g.bmp"} {
		assert.True(t, isImage(file), file)
	}
	for _, file := range []string{"a.txt", "b", "map_0.dat"} {
		assert.False(t, isImage(file), file)
	}
}

func TestConvertDir(t *testing.T) {
	dir := t.TempDir()
	blue := color.NRGBA{0, 0, 0xff, 0xff}

	writePNG(t, filepath.Join(dir, "a.png"), red)
	writePNG(t, filepath.Join(dir, "b", "c.png"), blue)
	writePNG(t, filepath.Join(dir, "d.png"), red)
	writePNG(t, filepath.Join(dir, ".hidden.png"), blue)
	writePNG(t, filepath.Join(dir, ".git", "e.png"), blue)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0o644))

	sink := new(memSink)
	next, err := newConverter(t, DefaultOptions()).ConvertDir(context.Background(), dir, 7, sink)
	require.NoError(t, err)

	assert.Equal(t, 10, next)
	assert.Equal(t, []int{7, 8, 9}, sink.order)
	assertAll(t, sink.records[7], 18)
	assertAll(t, sink.records[8], palette.Default().Nearest(blue))
	assertAll(t, sink.records[9], 18)
}

func TestConvertDirErrors(t *testing.T) {
	c := newConverter(t, DefaultOptions())

	_, err := c.ConvertDir(context.Background(), filepath.Join(t.TempDir(), "missing"), 0, new(memSink))
	assert.ErrorIs(t, err, ErrSourceNotFound)

	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), red)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.png"), []byte("not an image"), 0o644))
	writePNG(t, filepath.Join(dir, "c.png"), red)

	_, err = c.ConvertDir(context.Background(), filepath.Join(dir, "a.png"), 0, new(memSink))
	assert.Error(t, err)

	sink := new(memSink)
	next, err := c.ConvertDir(context.Background(), dir, 0, sink)
	assert.Error(t, err)
	assert.Equal(t, 1, next)
	assert.Equal(t, []int{0}, sink.order)
}

func TestConvertDirInterrupted(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), red)
	writePNG(t, filepath.Join(dir, "b.png"), red)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &memSink{after: func(int) { cancel() }}
	next, err := newConverter(t, DefaultOptions()).ConvertDir(ctx, dir, 0, sink)
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.Equal(t, 1, next)
	assert.Equal(t, []int{0}, sink.order)
}
