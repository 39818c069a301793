/*
 * Copyright (C) 2023 by Jason Figge
 */

package raycast

import (
	"image"
	"math"
)

const (
	DefaultFOV              = math.Pi / 3
	DefaultRotationPerFrame = TwoPi / 360
)

// Settings tune a Scene. Zero fields fall back to the defaults.
type Settings struct {
	FOV              float64
	RotationPerFrame float64
	Caster           Caster
	Palette          Palette
	Background       Color
	// Columns is the number of rays cast per frame; 0 means one per pixel of
	// the 3D view.
	Columns   int
	ShowTrace bool
	Shading   bool
}

func DefaultSettings() Settings {
	return Settings{
		FOV:              DefaultFOV,
		RotationPerFrame: DefaultRotationPerFrame,
		Caster:           FixedStep{Step: DefaultStepSize, MaxDistance: DefaultMaxDistance},
		Palette:          DefaultPalette(),
		Background:       Background,
	}
}

// FrameStats summarises the last rendered frame.
type FrameStats struct {
	Frame  int
	Pose   Pose
	Hits   int
	Misses int
	// Center is the hit along the facing direction.
	Center Hit
}

// Scene is the render context for one session. It owns the pose and the
// framebuffer; nothing else mutates them.
type Scene struct {
	grid     *Grid
	pose     Pose
	fb       *Framebuffer
	settings Settings
	minimap  Minimap
	view     image.Rectangle
	stats    FrameStats
}

// NewScene lays out a width*height framebuffer with the minimap in the left
// half and the 3D view in the right half.
func NewScene(grid *Grid, pose Pose, width, height int, settings Settings) *Scene {
	if settings.FOV <= 0 {
		settings.FOV = DefaultFOV
	}
	if settings.Caster == nil {
		settings.Caster = FixedStep{Step: DefaultStepSize, MaxDistance: DefaultMaxDistance}
	}
	if settings.Palette.Colors == nil {
		settings.Palette = DefaultPalette()
	}
	half := width / 2
	view := image.Rect(half, 0, width, height)
	if settings.Columns <= 0 || settings.Columns > view.Dx() {
		settings.Columns = view.Dx()
	}
	pose.Angle = NormalizeAngle(pose.Angle)
	return &Scene{
		grid:     grid,
		pose:     pose,
		fb:       NewFramebuffer(width, height),
		settings: settings,
		minimap:  NewMinimap(image.Rect(0, 0, half, height)),
		view:     view,
	}
}

func (s *Scene) Grid() *Grid               { return s.grid }
func (s *Scene) Pose() Pose                { return s.pose }
func (s *Scene) SetPose(p Pose)            { p.Angle = NormalizeAngle(p.Angle); s.pose = p }
func (s *Scene) Settings() Settings        { return s.settings }
func (s *Scene) Framebuffer() *Framebuffer { return s.fb }
func (s *Scene) Stats() FrameStats         { return s.stats }
func (s *Scene) View() image.Rectangle     { return s.view }

// Rotate turns the viewer by delta radians.
func (s *Scene) Rotate(delta float64) { s.pose.Rotate(delta) }

// Move walks the viewer; it is refused when it would run into a wall.
func (s *Scene) Move(forward, strafe float64) bool {
	return s.pose.Move(s.grid, forward, strafe)
}

// Cast fires one ray from the current viewer position.
func (s *Scene) Cast(angle float64) Hit {
	return s.settings.Caster.Cast(s.grid, s.pose.X, s.pose.Y, angle)
}

// RayOffset is the angle between column i's ray and the facing direction.
func (s *Scene) RayOffset(i int) float64 {
	return s.settings.FOV*float64(i)/float64(s.settings.Columns) - s.settings.FOV/2
}

// RenderFrame composes one complete frame and returns the framebuffer. The
// viewer is rotated by the per-frame increment before rays are cast.
func (s *Scene) RenderFrame() *Framebuffer {
	s.fb.Clear(s.settings.Background)
	s.minimap.DrawTiles(s.fb, s.grid, s.settings.Palette)
	s.minimap.DrawMarker(s.fb, s.grid, s.pose)
	s.pose.Rotate(s.settings.RotationPerFrame)

	stats := FrameStats{Frame: s.stats.Frame + 1, Pose: s.pose}
	var visit func(px, py float64)
	if s.settings.ShowTrace {
		visit = func(px, py float64) { s.minimap.DrawTrace(s.fb, s.grid, px, py) }
	}

	n := s.settings.Columns
	viewHeight := s.view.Dy()
	for i := 0; i < n; i++ {
		offset := s.RayOffset(i)
		hit := s.settings.Caster.Trace(s.grid, s.pose.X, s.pose.Y, s.pose.Angle+offset, visit)
		if i == n/2 {
			stats.Center = hit
		}
		if !hit.Ok {
			stats.Misses++
			continue
		}
		stats.Hits++
		s.drawColumn(i, Project(hit.Distance, offset, viewHeight), hit.Symbol)
	}
	if s.RayOffset(n/2) != 0 {
		// An odd column count has no ray along the facing direction.
		stats.Center = s.settings.Caster.Cast(s.grid, s.pose.X, s.pose.Y, s.pose.Angle)
	}
	s.stats = stats
	return s.fb
}

// drawColumn fills the strip of the 3D view that belongs to ray i.
func (s *Scene) drawColumn(i int, col Column, symbol byte) {
	n := s.settings.Columns
	x0 := s.view.Min.X + i*s.view.Dx()/n
	x1 := s.view.Min.X + (i+1)*s.view.Dx()/n
	y0, y1 := col.Clip(s.view.Dy())
	c := s.settings.Palette.ColorFor(symbol)
	if s.settings.Shading {
		c = c.Scale(Brightness(col.Corrected, DefaultMaxDistance))
	}
	s.fb.FillRect(x0, s.view.Min.Y+y0, x1-x0, y1-y0, c)
}
