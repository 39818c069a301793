/*
 * Copyright (C) 2023 by Jason Figge
 */

package raycast

import (
	"image"
	"math"
)

const (
	DefaultMarkerSize = 5
	DefaultTraceAlpha = 0.25
)

// Minimap draws the grid scaled into Region of the framebuffer.
type Minimap struct {
	Region      image.Rectangle
	MarkerSize  int
	MarkerColor Color
	TraceColor  Color
	TraceAlpha  float64
}

func NewMinimap(region image.Rectangle) Minimap {
	return Minimap{
		Region:      region,
		MarkerSize:  DefaultMarkerSize,
		MarkerColor: White,
		TraceColor:  White,
		TraceAlpha:  DefaultTraceAlpha,
	}
}

// TileSize is the pixel size of one grid cell.
func (m Minimap) TileSize(g *Grid) (int, int) {
	return m.Region.Dx() / g.Width(), m.Region.Dy() / g.Height()
}

// toPixel maps grid coordinates to framebuffer coordinates.
func (m Minimap) toPixel(g *Grid, x, y float64) (int, int) {
	tw, th := m.TileSize(g)
	return m.Region.Min.X + int(math.Floor(x*float64(tw))), m.Region.Min.Y + int(math.Floor(y*float64(th)))
}

func (m Minimap) DrawTiles(fb *Framebuffer, g *Grid, palette Palette) {
	tw, th := m.TileSize(g)
	if tw == 0 || th == 0 {
		return
	}
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			symbol := g.TileAt(col, row)
			if symbol == Empty {
				continue
			}
			fb.FillRect(m.Region.Min.X+col*tw, m.Region.Min.Y+row*th, tw, th, palette.ColorFor(symbol))
		}
	}
}

// DrawMarker draws the viewer as a square centered on its position.
func (m Minimap) DrawMarker(fb *Framebuffer, g *Grid, pose Pose) {
	x, y := m.toPixel(g, pose.X, pose.Y)
	fb.FillRect(x-m.MarkerSize/2, y-m.MarkerSize/2, m.MarkerSize, m.MarkerSize, m.MarkerColor)
}

// DrawTrace faintly marks one point a ray passed through.
func (m Minimap) DrawTrace(fb *Framebuffer, g *Grid, x, y float64) {
	px, py := m.toPixel(g, x, y)
	if !image.Pt(px, py).In(m.Region) {
		return
	}
	fb.Blend(px, py, m.TraceColor, m.TraceAlpha)
}
