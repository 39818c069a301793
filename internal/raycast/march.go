/*
 * Copyright (C) 2023 by Jason Figge
 */

package raycast

import "math"

const (
	DefaultStepSize    = 0.01
	DefaultMaxDistance = 20.0
)

// Hit is the outcome of a single ray. Ok is false when nothing was struck
// within the caster's range.
type Hit struct {
	Distance float64
	Symbol   byte
	Ok       bool
}

// Caster finds the first wall along a ray. Implementations are pure.
type Caster interface {
	Cast(g *Grid, x, y, angle float64) Hit
	// Trace is Cast that also reports every empty point the ray passes through.
	Trace(g *Grid, x, y, angle float64, visit func(px, py float64)) Hit
}

// FixedStep marches the ray in constant increments.
type FixedStep struct {
	Step        float64
	MaxDistance float64
}

func (f FixedStep) Cast(g *Grid, x, y, angle float64) Hit {
	return f.Trace(g, x, y, angle, nil)
}

func (f FixedStep) Trace(g *Grid, x, y, angle float64, visit func(px, py float64)) Hit {
	step := f.Step
	if step <= 0 {
		step = DefaultStepSize
	}
	maxDistance := f.MaxDistance
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}
	dx, dy := math.Cos(angle), math.Sin(angle)
	for i := 0; ; i++ {
		t := float64(i) * step
		if t > maxDistance {
			return Hit{}
		}
		px, py := x+t*dx, y+t*dy
		col, row := int(math.Floor(px)), int(math.Floor(py))
		if g.Contains(col, row) {
			if symbol := g.TileAt(col, row); symbol != Empty {
				return Hit{Distance: t, Symbol: symbol, Ok: true}
			}
		}
		if visit != nil {
			visit(px, py)
		}
	}
}

// GridTraversal walks cell boundaries exactly (DDA), so it cannot tunnel
// through wall corners the way a fixed step can.
type GridTraversal struct {
	MaxDistance float64
}

func (d GridTraversal) Cast(g *Grid, x, y, angle float64) Hit {
	return d.Trace(g, x, y, angle, nil)
}

func (d GridTraversal) Trace(g *Grid, x, y, angle float64, visit func(px, py float64)) Hit {
	maxDistance := d.MaxDistance
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}
	dx, dy := math.Cos(angle), math.Sin(angle)
	col, row := int(math.Floor(x)), int(math.Floor(y))
	if g.Contains(col, row) {
		if symbol := g.TileAt(col, row); symbol != Empty {
			return Hit{Distance: 0, Symbol: symbol, Ok: true}
		}
	}
	if visit != nil {
		visit(x, y)
	}

	stepCol, nextX, deltaX := axisStep(x, col, dx)
	stepRow, nextY, deltaY := axisStep(y, row, dy)
	for {
		var t float64
		if nextX < nextY {
			t = nextX
			col += stepCol
			nextX += deltaX
		} else {
			t = nextY
			row += stepRow
			nextY += deltaY
		}
		if t > maxDistance {
			return Hit{}
		}
		if g.Contains(col, row) {
			if symbol := g.TileAt(col, row); symbol != Empty {
				return Hit{Distance: t, Symbol: symbol, Ok: true}
			}
		}
		if visit != nil {
			visit(x+t*dx, y+t*dy)
		}
	}
}

// axisStep returns the cell increment, the ray distance to the first boundary
// crossing and the distance between crossings along one axis.
func axisStep(origin float64, cell int, dir float64) (int, float64, float64) {
	switch {
	case dir > 0:
		return 1, (float64(cell+1) - origin) / dir, 1 / dir
	case dir < 0:
		return -1, (origin - float64(cell)) / -dir, -1 / dir
	default:
		return 0, math.Inf(1), math.Inf(1)
	}
}

// NewCaster returns the caster registered under kind ("step" or "dda").
func NewCaster(kind string, step, maxDistance float64) (Caster, bool) {
	switch kind {
	case "", "step":
		return FixedStep{Step: step, MaxDistance: maxDistance}, true
	case "dda":
		return GridTraversal{MaxDistance: maxDistance}, true
	}
	return nil, false
}
