package tile

import (
	"testing"

	"github.com/bodgit/mapped/palette"
	"github.com/bodgit/mapped/quant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pattern(tileX, tileY int) *quant.Grid {
	g := quant.NewGrid(tileX*tileWidth, tileY*tileHeight)
	for i := range g.Index {
		g.Index[i] = uint8(i * 7 % 251)
		g.Alpha[i] = uint8(i * 13 % 256)
	}
	return g
}

func TestSplitOrder(t *testing.T) {
	g := quant.NewGrid(3*tileWidth, 2*tileHeight)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			// Encode the tile number in every pixel
			g.Index[y*g.Width+x] = uint8((y/tileHeight)*3 + x/tileWidth)
		}
	}
	g.Index[tileWidth] = 0xff
	g.Alpha[tileWidth+1] = 0x42

	tiles, err := Split(g)
	require.NoError(t, err)
	require.Len(t, tiles, 6)

	for i, tile := range tiles {
		assert.Equal(t, i%3, tile.Column)
		assert.Equal(t, i/3, tile.Row)
		assert.Equal(t, uint8(i), tile.Index[Pixels-1])
	}

	// Top-left pixel of the second tile comes first
	assert.Equal(t, uint8(0xff), tiles[1].Index[0])
	assert.Equal(t, uint8(0x42), tiles[1].Alpha[1])
}

func TestRoundTrip(t *testing.T) {
	for _, dim := range [][2]int{{1, 1}, {2, 1}, {1, 2}, {3, 4}} {
		g := pattern(dim[0], dim[1])

		tiles, err := Split(g)
		require.NoError(t, err)
		assert.Len(t, tiles, dim[0]*dim[1])

		dup, err := Join(tiles, dim[0], dim[1])
		require.NoError(t, err)
		assert.Equal(t, g, dup)
	}
}

func TestSplitSize(t *testing.T) {
	for _, g := range []*quant.Grid{
		quant.NewGrid(127, 128),
		quant.NewGrid(128, 129),
		quant.NewGrid(0, 128),
	} {
		_, err := Split(g)
		assert.ErrorIs(t, err, ErrSize)
	}
}

func TestJoinErrors(t *testing.T) {
	tiles, err := Split(pattern(2, 1))
	require.NoError(t, err)

	_, err = Join(tiles, 1, 1)
	assert.Error(t, err)

	tiles[1].Column = 5
	_, err = Join(tiles, 2, 1)
	assert.Error(t, err)
}

func TestColors(t *testing.T) {
	var tile Tile
	for i := range tile.Index {
		tile.Index[i] = 14
		tile.Alpha[i] = uint8(i)
	}

	tr, err := palette.NewTransparency(palette.Default(), 128, nil)
	require.NoError(t, err)

	colors := tile.Colors(tr)
	assert.Equal(t, uint8(palette.Transparent), colors[0])
	assert.Equal(t, uint8(palette.Transparent), colors[127])
	assert.Equal(t, uint8(18), colors[128])
	assert.Equal(t, uint8(18), colors[255])
	assert.Equal(t, uint8(palette.Transparent), colors[256])
}
