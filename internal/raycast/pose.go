/*
 * Copyright (C) 2023 by Jason Figge
 */

package raycast

import "math"

const TwoPi = 2 * math.Pi

// Pose is the viewer position in grid cells and facing angle in radians (0 = +x).
type Pose struct {
	X, Y  float64
	Angle float64
}

// ReferencePose is the starting pose for the reference map.
var ReferencePose = Pose{X: 3.456, Y: 2.345, Angle: 1.523}

// NormalizeAngle wraps a into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	if a >= TwoPi {
		a = 0
	}
	return a
}

func (p *Pose) Rotate(delta float64) {
	p.Angle = NormalizeAngle(p.Angle + delta)
}

// Move walks forward along the facing direction and strafes to its right.
// A move that would enter a wall or leave the grid is refused.
func (p *Pose) Move(g *Grid, forward, strafe float64) bool {
	dx := forward*math.Cos(p.Angle) - strafe*math.Sin(p.Angle)
	dy := forward*math.Sin(p.Angle) + strafe*math.Cos(p.Angle)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return true
	}
	nx, ny := p.X+dx, p.Y+dy
	col, row := int(math.Floor(nx)), int(math.Floor(ny))
	if !g.Contains(col, row) || !g.IsEmpty(col, row) {
		return false
	}
	probe := FixedStep{Step: DefaultStepSize, MaxDistance: length}
	if hit := probe.Cast(g, p.X, p.Y, math.Atan2(dy, dx)); hit.Ok {
		return false
	}
	p.X, p.Y = nx, ny
	return true
}
