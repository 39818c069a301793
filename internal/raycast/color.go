/*
 * Copyright (C) 2023 by Jason Figge
 */

package raycast

import "image/color"

// Color is an opaque RGB triple.
type Color struct {
	R, G, B uint8
}

var (
	White      = Color{R: 0xFF, G: 0xFF, B: 0xFF}
	Yellow     = Color{R: 0xFF, G: 0xFF, B: 0x00}
	Cyan       = Color{R: 0x00, G: 0xFF, B: 0xFF}
	Red        = Color{R: 0xDC, G: 0x3C, B: 0x3C}
	Green      = Color{R: 0x3C, G: 0xC8, B: 0x5A}
	Blue       = Color{R: 0x46, G: 0x5A, B: 0xE6}
	Background = Color{R: 0x23, G: 0x23, B: 0x23}
)

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xFFFF
}

// Scale darkens the color by f, clamped to [0,1].
func (c Color) Scale(f float64) Color {
	if f >= 1 {
		return c
	}
	if f <= 0 {
		return Color{}
	}
	return Color{R: uint8(float64(c.R) * f), G: uint8(float64(c.G) * f), B: uint8(float64(c.B) * f)}
}

// Mix returns c moved toward o by alpha in [0,1].
func (c Color) Mix(o Color, alpha float64) Color {
	if alpha <= 0 {
		return c
	}
	if alpha >= 1 {
		return o
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*alpha + 0.5)
	}
	return Color{R: mix(c.R, o.R), G: mix(c.G, o.G), B: mix(c.B, o.B)}
}

// ColorFrom converts any color.Color, dropping alpha.
func ColorFrom(c color.Color) Color {
	if rc, ok := c.(Color); ok {
		return rc
	}
	r, g, b, _ := c.RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// Palette maps wall symbols to colors. Adding a wall type is a new entry.
type Palette struct {
	Colors  map[byte]Color
	Default Color
}

// DefaultPalette returns the wall colors used for the reference map.
func DefaultPalette() Palette {
	return Palette{
		Colors: map[byte]Color{
			'0': Cyan,
			'1': Red,
			'2': Green,
			'3': Blue,
		},
		Default: Yellow,
	}
}

func (p Palette) ColorFor(symbol byte) Color {
	if c, ok := p.Colors[symbol]; ok {
		return c
	}
	return p.Default
}
