/*
 * Copyright (C) 2023 by Jason Figge
 */

package raycast

import "math"

// MinDistance is the smallest corrected distance used for projection; nearer
// hits project as if they were this far away.
const MinDistance = 1e-3

// Column is the vertical strip a hit projects to. Top may be negative and
// Top+Height may exceed the viewport; drawing clips.
type Column struct {
	Top       int
	Height    int
	Corrected float64
}

// Project converts a raw hit distance into a column, removing fisheye
// distortion by measuring distance perpendicular to the view plane.
func Project(distance, offset float64, viewHeight int) Column {
	corrected := distance * math.Cos(offset)
	d := corrected
	if d < MinDistance {
		d = MinDistance
	}
	height := int(float64(viewHeight) / d)
	return Column{
		Top:       viewHeight/2 - height/2,
		Height:    height,
		Corrected: corrected,
	}
}

// Clip returns the visible rows [y0, y1) of the column inside a viewport.
func (c Column) Clip(viewHeight int) (int, int) {
	y0, y1 := c.Top, c.Top+c.Height
	if y0 < 0 {
		y0 = 0
	}
	if y1 > viewHeight {
		y1 = viewHeight
	}
	if y1 < y0 {
		y1 = y0
	}
	return y0, y1
}

// Brightness fades walls quadratically with distance, never below a floor so
// far walls stay visible.
func Brightness(corrected, maxDistance float64) float64 {
	if maxDistance <= 0 {
		return 1
	}
	f := 1 - (corrected*corrected)/(maxDistance*maxDistance)
	if f < 0.15 {
		f = 0.15
	}
	if f > 1 {
		f = 1
	}
	return f
}
