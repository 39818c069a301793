/*
 * Copyright (C) 2023 by Jason Figge
 */

package raycast

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// LineHeight is the pixel height of one line of DrawText output.
const LineHeight = 13

// DrawText writes s with its top-left corner at (x,y). Glyphs falling outside
// the framebuffer are clipped.
func DrawText(fb *Framebuffer, x, y int, s string, c Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  fb,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	d.DrawString(s)
}

// TextWidth is the pixel width DrawText uses for s.
func TextWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}
