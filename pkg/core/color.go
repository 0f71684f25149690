package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an opacity + RGB value with every channel in [0,1]
type Color struct {
	A, R, G, B float64
}

// NewColor creates a color from opacity and RGB components
func NewColor(a, r, g, b float64) Color {
	return Color{A: a, R: r, G: g, B: b}
}

// ColorFromARGB decodes a packed ARGB integer. Values that fit in 16 bits are
// read as four 4-bit channels (0xARGB), anything larger as four 8-bit channels
// (0xAARRGGBB).
func ColorFromARGB(argb uint32) Color {
	if argb <= 0xffff {
		return nibbleColor(argb)
	}
	return byteColor(argb)
}

// ParseHexColor parses "#ARGB" or "#AARRGGBB" (the leading '#' is optional).
// Unlike ColorFromARGB the width is taken from the digit count, so "#0000ffff"
// is an 8-bit color even though its value fits in 16 bits.
func ParseHexColor(s string) (Color, error) {
	digits := strings.TrimPrefix(s, "#")
	value, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %v", s, err)
	}

	switch len(digits) {
	case 4:
		return ColorFromARGB(uint32(value)), nil
	case 8:
		return byteColor(uint32(value)), nil
	default:
		return Color{}, fmt.Errorf("invalid color %q: expected 4 or 8 hex digits", s)
	}
}

// nibbleColor decodes 0xARGB with 4 bits per channel
func nibbleColor(v uint32) Color {
	return NewColor(
		float64((v>>12)&0xf)/15,
		float64((v>>8)&0xf)/15,
		float64((v>>4)&0xf)/15,
		float64(v&0xf)/15,
	)
}

// byteColor decodes 0xAARRGGBB with 8 bits per channel
func byteColor(v uint32) Color {
	return NewColor(
		float64((v>>24)&0xff)/255,
		float64((v>>16)&0xff)/255,
		float64((v>>8)&0xff)/255,
		float64(v&0xff)/255,
	)
}

// RGB returns the color channels without opacity
func (c Color) RGB() Vec3 {
	return Vec3{c.R, c.G, c.B}
}

// Opacity returns the alpha channel clamped to [0,1]
func (c Color) Opacity() float64 {
	return max(0, min(1, c.A))
}

// Premultiplied returns the RGB channels scaled by opacity
func (c Color) Premultiplied() Vec3 {
	return c.RGB().Multiply(c.Opacity())
}

func (c Color) String() string {
	return fmt.Sprintf("argb(%.3f, %.3f, %.3f, %.3f)", c.A, c.R, c.G, c.B)
}
