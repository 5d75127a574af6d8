package palette

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Transparency decides the final index of a quantized pixel from its alpha
type Transparency struct {
	// Pixels with alpha strictly below Threshold are transparent
	Threshold int

	// Override, if HasOverride is set, is the full palette index used in
	// place of transparent pixels
	Override    uint8
	HasOverride bool
}

// NewTransparency returns the resolution rules for threshold. If override is
// non-nil it's resolved against p to the nearest opaque entry.
func NewTransparency(p *Palette, threshold int, override color.Color) (Transparency, error) {
	if threshold < 0 || threshold > 0xff {
		return Transparency{}, fmt.Errorf("palette: alpha threshold %d out of range 0-255", threshold)
	}

	t := Transparency{Threshold: threshold}
	if override != nil {
		t.Override, t.HasOverride = p.Nearest(override), true
	}
	return t, nil
}

// Resolve maps an effective palette index and its alpha to the full palette
// index written to the map
func (t Transparency) Resolve(index, alpha uint8) uint8 {
	if int(alpha) < t.Threshold {
		if t.HasOverride {
			return t.Override
		}
		return Transparent
	}
	return index + Reserved
}

// ParseColor parses either "#rrggbb" or "r,g,b"
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "#") {
		if len(s) != 7 {
			return nil, fmt.Errorf("palette: invalid color %q", s)
		}
		v, err := strconv.ParseUint(s[1:], 16, 24)
		if err != nil {
			return nil, fmt.Errorf("palette: invalid color %q", s)
		}
		return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}, nil
	}

	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return nil, fmt.Errorf("palette: invalid color %q", s)
	}

	var rgb [3]uint8
	for i, f := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("palette: invalid color %q", s)
		}
		rgb[i] = uint8(v)
	}

	return color.RGBA{rgb[0], rgb[1], rgb[2], 0xff}, nil
}
