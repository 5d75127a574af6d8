package geometry

import (
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sources = []image.Point{
	{1, 1}, {64, 64}, {256, 128}, {128, 256}, {640, 480}, {480, 640},
	{1920, 1080}, {1000, 3}, {3, 1000}, {333, 777}, {129, 127},
}

func TestFixedScale(t *testing.T) {
	for _, src := range sources {
		for _, s := range []Scale{{1, 1}, {2, 1}, {1, 3}, {4, 4}} {
			p, err := New(src.X, src.Y, s)
			require.NoError(t, err)

			assert.Equal(t, s.Columns*TileSize, p.Width)
			assert.Equal(t, s.Rows*TileSize, p.Height)
			assert.Equal(t, image.Pt(p.Width, p.Height), p.Size)
			assert.Equal(t, image.Point{}, p.Offset)
		}
	}
}

func TestAutoScale(t *testing.T) {
	for _, src := range sources {
		for n := 1; n <= 4; n++ {
			p, err := New(src.X, src.Y, Scale{Columns: n})
			require.NoError(t, err)

			assert.Equal(t, n, p.Columns)
			assert.Equal(t, (n*src.Y+src.X-1)/src.X, p.Rows, "source %v", src)
			assert.Equal(t, n*TileSize, p.Size.X)
			assert.LessOrEqual(t, p.Size.Y, p.Height)
			assert.Zero(t, p.Height%TileSize)

			left, top, right, bottom := p.Padding()
			assert.Equal(t, p.Width-p.Size.X, left+right)
			assert.Equal(t, p.Height-p.Size.Y, top+bottom)
			assert.GreaterOrEqual(t, bottom, top)
			assert.LessOrEqual(t, bottom-top, 1)

			p, err = New(src.X, src.Y, Scale{Rows: n})
			require.NoError(t, err)

			assert.Equal(t, n, p.Rows)
			assert.Equal(t, (n*src.X+src.Y-1)/src.Y, p.Columns, "source %v", src)
			assert.Equal(t, n*TileSize, p.Size.Y)
			assert.Zero(t, p.Width%TileSize)

			left, top, right, bottom = p.Padding()
			assert.Equal(t, p.Width-p.Size.X, left+right)
			assert.Equal(t, p.Height-p.Size.Y, top+bottom)
			assert.GreaterOrEqual(t, right, left)
			assert.LessOrEqual(t, right-left, 1)
		}
	}
}

func TestSquareAuto(t *testing.T) {
	p, err := New(64, 64, Scale{Rows: 1})
	require.NoError(t, err)

	assert.Equal(t, Plan{
		Columns: 1,
		Rows:    1,
		Width:   128,
		Height:  128,
		Size:    image.Pt(128, 128),
	}, p)
}

func TestPadded(t *testing.T) {
	p, err := New(256, 128, Scale{Columns: 1})
	require.NoError(t, err)

	assert.Equal(t, Plan{
		Columns: 1,
		Rows:    1,
		Width:   128,
		Height:  128,
		Offset:  image.Pt(0, 32),
		Size:    image.Pt(128, 64),
	}, p)
}

func TestInvalid(t *testing.T) {
	tables := []struct {
		width, height int
		scale         Scale
	}{
		{0, 10, Scale{1, 1}},
		{10, 0, Scale{1, 1}},
		{-1, 10, Scale{1, 1}},
		{10, 10, Scale{0, 0}},
		{10, 10, Scale{-1, 1}},
		{10, 10, Scale{1, -1}},
		{10, 10, Scale{-1, 0}},
	}

	for _, table := range tables {
		_, err := New(table.width, table.height, table.scale)
		assert.ErrorIs(t, err, ErrInvalid)
	}
}

func TestFit(t *testing.T) {
	assert.Equal(t, Scale{Rows: 2}, Fit(300, 100, 2))
	assert.Equal(t, Scale{Columns: 2}, Fit(100, 300, 2))
	assert.Equal(t, Scale{Columns: 2, Rows: 2}, Fit(100, 100, 2))

	p, err := New(300, 100, Fit(300, 100, 1))
	require.NoError(t, err)
	assert.Equal(t, 3, p.Columns)
	assert.Equal(t, 1, p.Rows)
}

func TestScaleString(t *testing.T) {
	assert.Equal(t, "2xauto", Scale{Columns: 2}.String())
	assert.Equal(t, "autox3", Scale{Rows: 3}.String())
	assert.Equal(t, "1x1", Scale{1, 1}.String())
}

func TestRender(t *testing.T) {
	red := color.NRGBA{0xff, 0, 0, 0xff}
	src := image.NewNRGBA(image.Rect(0, 0, 256, 128))
	draw.Draw(src, src.Bounds(), image.NewUniform(red), image.Point{}, draw.Src)

	p, err := New(256, 128, Scale{Columns: 1})
	require.NoError(t, err)

	m := p.Render(src, Nearest)
	assert.Equal(t, image.Rect(0, 0, 128, 128), m.Bounds())

	assert.Equal(t, color.NRGBA{}, m.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{}, m.NRGBAAt(127, 31))
	assert.Equal(t, red, m.NRGBAAt(0, 32))
	assert.Equal(t, red, m.NRGBAAt(127, 95))
	assert.Equal(t, color.NRGBA{}, m.NRGBAAt(64, 96))
}

func TestParseResampling(t *testing.T) {
	for _, name := range []string{"nearest", "box", "linear", "cubic", "Lanczos"} {
		r, err := ParseResampling(name)
		require.NoError(t, err)
		assert.Equal(t, strings.ToLower(name), r.String())
	}

	_, err := ParseResampling("bicubic")
	assert.Error(t, err)
}
