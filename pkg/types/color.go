package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a packed 0xRRGGBB value. ColorNone marks "no color given";
// expression builders pass it through untouched so the host picks its
// own theme.
type Color int

// ColorNone is the unset sentinel. Zero is a real color (black), so
// unset needs an out-of-range value.
const ColorNone Color = -1

// RGB unpacks the color channels.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Valid reports whether c holds a real packed color.
func (c Color) Valid() bool {
	return c >= 0 && c <= 0xFFFFFF
}

func (c Color) String() string {
	if !c.Valid() {
		return ""
	}
	return fmt.Sprintf("#%06X", int(c))
}

// ParseColor accepts "#RRGGBB", "0xRRGGBB", or a bare hex string.
// An empty string parses to ColorNone.
func ParseColor(s string) (Color, error) {
	if s == "" {
		return ColorNone, nil
	}
	h := strings.TrimPrefix(strings.TrimPrefix(s, "#"), "0x")
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil || v > 0xFFFFFF {
		return ColorNone, fmt.Errorf("invalid color %q", s)
	}
	return Color(v), nil
}
