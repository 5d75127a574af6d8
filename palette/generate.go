package palette

import "image/color"

// Shade multipliers applied to each base color, in palette order
var shades = [Reserved]uint32{180, 220, 255, 135}

// BaseColors are the map base colors, index 0 being the transparent color
var BaseColors = []color.RGBA{
	{0, 0, 0, 0},
	{127, 178, 56, 0xff},
	{247, 233, 163, 0xff},
	{199, 199, 199, 0xff},
	{255, 0, 0, 0xff},
	{160, 160, 255, 0xff},
	{167, 167, 167, 0xff},
	{0, 124, 0, 0xff},
	{255, 255, 255, 0xff},
	{164, 168, 184, 0xff},
	{151, 109, 77, 0xff},
	{112, 112, 112, 0xff},
	{64, 64, 255, 0xff},
	{143, 119, 72, 0xff},
	{255, 252, 245, 0xff},
	{216, 127, 51, 0xff},
	{178, 76, 216, 0xff},
	{102, 153, 216, 0xff},
	{229, 229, 51, 0xff},
	{127, 204, 25, 0xff},
	{242, 127, 165, 0xff},
	{76, 76, 76, 0xff},
	{153, 153, 153, 0xff},
	{76, 127, 153, 0xff},
	{127, 63, 178, 0xff},
	{51, 76, 178, 0xff},
	{102, 76, 51, 0xff},
	{102, 127, 51, 0xff},
	{153, 51, 51, 0xff},
	{25, 25, 25, 0xff},
	{250, 238, 77, 0xff},
	{92, 219, 213, 0xff},
	{74, 128, 255, 0xff},
	{0, 217, 58, 0xff},
	{129, 86, 49, 0xff},
	{112, 2, 0, 0xff},
	{209, 177, 161, 0xff},
	{159, 82, 36, 0xff},
	{149, 87, 108, 0xff},
	{112, 108, 138, 0xff},
	{186, 133, 36, 0xff},
	{103, 117, 53, 0xff},
	{160, 77, 78, 0xff},
	{57, 41, 35, 0xff},
	{135, 107, 98, 0xff},
	{87, 92, 92, 0xff},
	{122, 73, 88, 0xff},
	{76, 62, 92, 0xff},
	{76, 50, 35, 0xff},
	{76, 82, 42, 0xff},
	{142, 60, 46, 0xff},
	{37, 22, 16, 0xff},
}

// Generate expands base colors into a palette of four shades per color. The
// first base color is treated as transparent and always expands to four
// white entries regardless of its value.
func Generate(base []color.RGBA) (*Palette, error) {
	values := make([]int, 0, len(base)*Reserved*3)
	for i, c := range base {
		for _, m := range shades {
			if i == 0 {
				values = append(values, 0xff, 0xff, 0xff)
				continue
			}
			values = append(values,
				int(uint32(c.R)*m/0xff),
				int(uint32(c.G)*m/0xff),
				int(uint32(c.B)*m/0xff),
			)
		}
	}
	return Parse(values)
}

// Default returns a new palette generated from BaseColors
func Default() *Palette {
	p, err := Generate(BaseColors)
	if err != nil {
		panic(err)
	}
	return p
}
