/*
Package tile slices a quantized canvas into 128 by 128 pixel map tiles.

Tiles are produced row-major over the tile grid; the tiles of the first row
left to right, then the second row and so on. Within a tile the pixels are
also row-major, starting from the top-left pixel.
*/
package tile

import (
	"errors"
	"fmt"

	"github.com/bodgit/mapped/geometry"
	"github.com/bodgit/mapped/palette"
	"github.com/bodgit/mapped/quant"
)

const (
	tileWidth  = geometry.TileSize
	tileHeight = tileWidth

	// Pixels is the number of pixels in a single tile
	Pixels = tileWidth * tileHeight
)

// ErrSize is returned when a grid isn't a whole number of tiles
var ErrSize = errors.New("tile: grid is not a multiple of the tile size")

// Tile is a single map tile at the given position in the tile grid
type Tile struct {
	Column, Row int
	Index       [Pixels]uint8
	Alpha       [Pixels]uint8
}

// Colors returns the final map colors of the tile
func (t *Tile) Colors(tr palette.Transparency) [Pixels]uint8 {
	var colors [Pixels]uint8
	for i := range colors {
		colors[i] = tr.Resolve(t.Index[i], t.Alpha[i])
	}
	return colors
}

// Split slices g into tiles
func Split(g *quant.Grid) ([]Tile, error) {
	if g.Width <= 0 || g.Height <= 0 || g.Width%tileWidth != 0 || g.Height%tileHeight != 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrSize, g.Width, g.Height)
	}

	tileX, tileY := g.Width/tileWidth, g.Height/tileHeight
	tiles := make([]Tile, 0, tileX*tileY)

	for ty := 0; ty < tileY; ty++ {
		for tx := 0; tx < tileX; tx++ {
			t := Tile{Column: tx, Row: ty}
			for y := 0; y < tileHeight; y++ {
				i := (ty*tileHeight+y)*g.Width + tx*tileWidth
				copy(t.Index[y*tileWidth:(y+1)*tileWidth], g.Index[i:i+tileWidth])
				copy(t.Alpha[y*tileWidth:(y+1)*tileWidth], g.Alpha[i:i+tileWidth])
			}
			tiles = append(tiles, t)
		}
	}

	return tiles, nil
}

// Join reassembles tiles produced by Split for a grid of the given size in
// tiles
func Join(tiles []Tile, tileX, tileY int) (*quant.Grid, error) {
	if len(tiles) != tileX*tileY {
		return nil, fmt.Errorf("tile: have %d tiles, need %d", len(tiles), tileX*tileY)
	}

	g := quant.NewGrid(tileX*tileWidth, tileY*tileHeight)
	for _, t := range tiles {
		if t.Column < 0 || t.Column >= tileX || t.Row < 0 || t.Row >= tileY {
			return nil, fmt.Errorf("tile: tile at %d,%d is outside the grid", t.Column, t.Row)
		}
		for y := 0; y < tileHeight; y++ {
			i := (t.Row*tileHeight+y)*g.Width + t.Column*tileWidth
			copy(g.Index[i:i+tileWidth], t.Index[y*tileWidth:(y+1)*tileWidth])
			copy(g.Alpha[i:i+tileWidth], t.Alpha[y*tileWidth:(y+1)*tileWidth])
		}
	}

	return g, nil
}
