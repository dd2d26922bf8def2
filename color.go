package sketch

import (
	"fmt"
	"image/color"
)

// Default colors of the two surfaces.
var (
	// SketchBackground is the opaque fill of a blank sketch surface.
	SketchBackground = color.NRGBA{R: 0x1a, G: 0x20, B: 0x2c, A: 0xff}

	// SketchInk is the default draw-mode color on a sketch surface.
	SketchInk = color.NRGBA{R: 0xf7, G: 0xfa, B: 0xfc, A: 0xff}

	// EditInk is the default draw-mode color on an edit surface.
	// Magenta keeps redrawn regions visible over arbitrary photos.
	EditInk = color.NRGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}

	// Transparent is the base color of an edit surface.
	Transparent = color.NRGBA{}
)

// ParseHex parses a hex color string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with or without
// a leading '#'.
func ParseHex(hex string) (color.NRGBA, error) {
	s := hex
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	var r, g, b, a uint32
	a = 255

	var ok bool
	switch len(s) {
	case 3: // RGB
		ok = parseHex(s[0:1], &r) && parseHex(s[1:2], &g) && parseHex(s[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4: // RGBA
		ok = parseHex(s[0:1], &r) && parseHex(s[1:2], &g) && parseHex(s[2:3], &b) && parseHex(s[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6: // RRGGBB
		ok = parseHex(s[0:2], &r) && parseHex(s[2:4], &g) && parseHex(s[4:6], &b)
	case 8: // RRGGBBAA
		ok = parseHex(s[0:2], &r) && parseHex(s[2:4], &g) && parseHex(s[4:6], &b) && parseHex(s[6:8], &a)
	}
	if !ok {
		return color.NRGBA{}, fmt.Errorf("sketch: invalid hex color %q", hex)
	}

	return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}, nil
}

// FormatHex formats c as "#rrggbb", or "#rrggbbaa" when c is not opaque.
func FormatHex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

// parseHex accumulates the hex digits of s into val.
// It reports false on the first non-hex character.
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}
