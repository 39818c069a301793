/*
 * Copyright (C) 2023 by Jason Figge
 */

package raycast

import (
	"image"
	"image/color"
)

// Framebuffer is a row-major RGB24 pixel store with a top-left origin. Every
// write is clipped to its bounds.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []byte
}

func NewFramebuffer(width, height int) *Framebuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Framebuffer{Width: width, Height: height, Pix: make([]byte, width*height*3)}
}

// Pitch is the number of bytes per row.
func (f *Framebuffer) Pitch() int { return f.Width * 3 }

func (f *Framebuffer) Clear(c Color) {
	for i := 0; i+2 < len(f.Pix); i += 3 {
		f.Pix[i] = c.R
		f.Pix[i+1] = c.G
		f.Pix[i+2] = c.B
	}
}

func (f *Framebuffer) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.Width && y < f.Height
}

func (f *Framebuffer) SetPixel(x, y int, c Color) {
	if !f.inside(x, y) {
		return
	}
	offset := (x + y*f.Width) * 3
	f.Pix[offset] = c.R
	f.Pix[offset+1] = c.G
	f.Pix[offset+2] = c.B
}

func (f *Framebuffer) Pixel(x, y int) Color {
	if !f.inside(x, y) {
		return Color{}
	}
	offset := (x + y*f.Width) * 3
	return Color{R: f.Pix[offset], G: f.Pix[offset+1], B: f.Pix[offset+2]}
}

// Blend moves the pixel at (x,y) toward c by alpha.
func (f *Framebuffer) Blend(x, y int, c Color, alpha float64) {
	if !f.inside(x, y) {
		return
	}
	f.SetPixel(x, y, f.Pixel(x, y).Mix(c, alpha))
}

// FillRect paints the w*h rectangle at (x,y), skipping whatever falls outside
// the buffer.
func (f *Framebuffer) FillRect(x, y, w, h int, c Color) {
	x0, x1 := clipSpan(x, w, f.Width)
	y0, y1 := clipSpan(y, h, f.Height)
	for row := y0; row < y1; row++ {
		offset := (x0 + row*f.Width) * 3
		for col := x0; col < x1; col++ {
			f.Pix[offset] = c.R
			f.Pix[offset+1] = c.G
			f.Pix[offset+2] = c.B
			offset += 3
		}
	}
}

func clipSpan(start, length, limit int) (int, int) {
	if length <= 0 {
		return 0, 0
	}
	end := start + length
	if end < start {
		end = limit
	}
	if start < 0 {
		start = 0
	}
	if end > limit {
		end = limit
	}
	if end < start {
		return 0, 0
	}
	return start, end
}

// RGBA expands the buffer into 32-bit RGBA, reusing dst when it is large enough.
func (f *Framebuffer) RGBA(dst []byte) []byte {
	n := f.Width * f.Height * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, j := 0, 0; i+2 < len(f.Pix); i, j = i+3, j+4 {
		dst[j] = f.Pix[i]
		dst[j+1] = f.Pix[i+1]
		dst[j+2] = f.Pix[i+2]
		dst[j+3] = 0xFF
	}
	return dst
}

// ColorModel, Bounds, At and Set make the framebuffer a draw.Image.
func (f *Framebuffer) ColorModel() color.Model {
	return color.ModelFunc(func(c color.Color) color.Color { return ColorFrom(c) })
}

func (f *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width, f.Height)
}

func (f *Framebuffer) At(x, y int) color.Color {
	return f.Pixel(x, y)
}

func (f *Framebuffer) Set(x, y int, c color.Color) {
	f.SetPixel(x, y, ColorFrom(c))
}
