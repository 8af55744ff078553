// Package renderer provides the colors used to draw the field.
package renderer

import "image/color"

// Field colors.
var (
	Backdrop = Hex(0x808080) // window outside the field
	Field    = Hex(0xffffff)
	Food     = Hex(0xe0ffe0)
	Poison   = Hex(0xffe0e0)
)

// Hex converts a 0xRRGGBB value to an opaque color.
func Hex(rgb uint32) color.RGBA {
	return color.RGBA{
		R: uint8(rgb >> 16),
		G: uint8(rgb >> 8),
		B: uint8(rgb),
		A: 0xff,
	}
}

// hueSector is the width of one of the six ramps around the hue circle.
const hueSector = 42

// HueToRGB maps a genome hue onto a six-sector color wheel running
// red, yellow, green, cyan, blue, magenta. Each sector ramps one channel
// while the others sit at 0x00 or 0xff.
func HueToRGB(hue uint8) color.RGBA {
	x := uint8(hue%hueSector) * 6

	var r, g, b uint8
	switch {
	case hue < 1*hueSector:
		r, g, b = 0xff, x, 0
	case hue < 2*hueSector:
		r, g, b = x, 0xff, 0
	case hue < 3*hueSector:
		r, g, b = 0, 0xff, x
	case hue < 4*hueSector:
		r, g, b = 0, x, 0xff
	case hue < 5*hueSector:
		r, g, b = x, 0, 0xff
	default:
		r, g, b = 0xff, 0, x
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Blend mixes two colors, t=0 giving a and t=1 giving b.
func Blend(a, b color.RGBA, t float32) color.RGBA {
	t = max(0, min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// Activation colors a neuron value in [-1, 1]: red negative, green positive.
func Activation(v float32) color.RGBA {
	if v < 0 {
		return Blend(Field, Hex(0xd03030), -v)
	}
	return Blend(Field, Hex(0x30a030), v)
}
