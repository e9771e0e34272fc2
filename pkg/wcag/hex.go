package wcag

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHex converts a #RGB or #RRGGBB string (leading '#' optional) to a
// ColorSample, dividing each 8-bit channel by 255. Malformed input is an
// error; nothing falls back to black.
func ParseHex(s string) (ColorSample, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return ColorSample{}, fmt.Errorf("invalid hex color %q: want #RGB or #RRGGBB", s)
	}

	channels := [3]float64{}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return ColorSample{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		channels[i] = float64(v) / 255.0
	}
	return ColorSample{R: channels[0], G: channels[1], B: channels[2]}, nil
}

// Hex renders the sample back to #rrggbb for display and storage.
func (c ColorSample) Hex() string {
	to8 := func(v float64) int {
		n := int(v*255.0 + 0.5)
		if n > 255 {
			n = 255
		}
		return n
	}
	return fmt.Sprintf("#%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B))
}
