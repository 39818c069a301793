/*
 * Copyright (C) 2023 by Jason Figge
 */

package raycast

import (
	"math"
	"testing"
)

func referenceScene(settings Settings) *Scene {
	return NewScene(ReferenceGrid(), ReferencePose, 1024, 512, settings)
}

func TestScene_CenterRayMatchesFacing(t *testing.T) {
	settings := DefaultSettings()
	settings.RotationPerFrame = 0
	s := referenceScene(settings)
	if s.Settings().Columns != 512 {
		t.Fatalf("columns = %d, want 512", s.Settings().Columns)
	}
	if off := s.RayOffset(256); off != 0 {
		t.Fatalf("center column offset = %v, want exactly 0", off)
	}
	if first, last := s.RayOffset(0), s.RayOffset(511); math.Abs(first+DefaultFOV/2) > 1e-12 || last >= DefaultFOV/2 {
		t.Fatalf("column offsets span [%v,%v]", first, last)
	}
}

// The regression fixture: from the reference pose the center ray runs almost
// straight down column 3 and strikes the '0' wall on row 13.
func TestScene_ReferenceFrame(t *testing.T) {
	settings := DefaultSettings()
	settings.RotationPerFrame = 0
	s := referenceScene(settings)
	fb := s.RenderFrame()

	stats := s.Stats()
	if stats.Frame != 1 || stats.Pose != s.Pose() {
		t.Fatalf("unexpected stats %+v", stats)
	}
	center := stats.Center
	if !center.Ok || center.Symbol != '0' {
		t.Fatalf("center ray = %+v, want hit on '0'", center)
	}
	const exact = 10.667182
	if center.Distance < exact-1e-4 || center.Distance > exact+DefaultStepSize+1e-4 {
		t.Fatalf("center distance = %.5f, want ~%.4f", center.Distance, exact)
	}
	col := Project(center.Distance, 0, 512)
	if col.Height != 47 || col.Top != 233 {
		t.Fatalf("center column = %+v, want height 47 at row 233", col)
	}
	if stats.Hits != 512 || stats.Misses != 0 {
		t.Fatalf("hits=%d misses=%d, enclosed map should hit every column", stats.Hits, stats.Misses)
	}

	x := 512 + 256
	if fb.Pixel(x, 233) != Cyan || fb.Pixel(x, 279) != Cyan {
		t.Fatal("center column should be painted cyan")
	}
	if fb.Pixel(x, 232) != Background || fb.Pixel(x, 280) != Background {
		t.Fatal("pixels above and below the center column should be background")
	}

	dda := DefaultSettings()
	dda.RotationPerFrame = 0
	dda.Caster = GridTraversal{MaxDistance: DefaultMaxDistance}
	s2 := referenceScene(dda)
	s2.RenderFrame()
	if c := s2.Stats().Center; math.Abs(c.Distance-exact) > 1e-4 || Project(c.Distance, 0, 512).Height != 47 {
		t.Fatalf("dda center = %+v", c)
	}
}

func TestScene_MinimapAndMarker(t *testing.T) {
	settings := DefaultSettings()
	settings.RotationPerFrame = 0
	s := referenceScene(settings)
	fb := s.RenderFrame()
	// 512px minimap over 16 cells: 32px tiles.
	if fb.Pixel(5, 5) != Cyan {
		t.Fatal("tile (0,0) should be drawn in the minimap")
	}
	if fb.Pixel(4*32+5, 5) != Green {
		t.Fatal("tile (4,0) should be green")
	}
	if fb.Pixel(32+5, 32+5) != Background {
		t.Fatal("empty tile (1,1) should stay background")
	}
	vx, vy := 3.456, 2.345
	mx, my := int(vx*32), int(vy*32)
	if fb.Pixel(mx, my) != White {
		t.Fatal("viewer marker should be white")
	}
}

func TestScene_TraceMarksEmptyCellsOnly(t *testing.T) {
	settings := DefaultSettings()
	settings.RotationPerFrame = 0
	settings.ShowTrace = true
	s := referenceScene(settings)
	fb := s.RenderFrame()
	traced := 0
	for y := 0; y < 512; y++ {
		for x := 0; x < 512; x++ {
			p := fb.Pixel(x, y)
			if p == Background || p == White {
				continue
			}
			if p.R == p.G && p.G == p.B && p.R > Background.R {
				traced++
				if !s.Grid().IsEmpty(x/32, y/32) {
					t.Fatalf("trace pixel (%d,%d) landed on a wall tile", x, y)
				}
			}
		}
	}
	if traced == 0 {
		t.Fatal("expected trace pixels in the minimap")
	}
}

func TestScene_RotationHalfTurn(t *testing.T) {
	s := referenceScene(DefaultSettings())
	for i := 0; i < 180; i++ {
		s.RenderFrame()
	}
	want := NormalizeAngle(ReferencePose.Angle + math.Pi)
	if got := s.Pose().Angle; math.Abs(got-want) > 1e-9 {
		t.Fatalf("angle after 180 frames = %v, want %v", got, want)
	}
	if s.Stats().Frame != 180 {
		t.Fatalf("frame counter = %d", s.Stats().Frame)
	}
	if s.Pose().X != ReferencePose.X || s.Pose().Y != ReferencePose.Y {
		t.Fatal("auto-rotation must not move the viewer")
	}
}

func TestScene_OpenMapRendersBackground(t *testing.T) {
	g, err := NewGrid(4, 4, "                ")
	if err != nil {
		t.Fatal(err)
	}
	s := NewScene(g, Pose{X: 2, Y: 2}, 64, 32, DefaultSettings())
	fb := s.RenderFrame()
	if s.Stats().Hits != 0 || s.Stats().Misses != 32 {
		t.Fatalf("stats = %+v", s.Stats())
	}
	for y := 0; y < 32; y++ {
		for x := 32; x < 64; x++ {
			if fb.Pixel(x, y) != Background {
				t.Fatalf("3D pixel (%d,%d) should be background", x, y)
			}
		}
	}
}

func TestScene_FewerColumnsThanPixels(t *testing.T) {
	settings := DefaultSettings()
	settings.RotationPerFrame = 0
	settings.Columns = 50
	s := referenceScene(settings)
	fb := s.RenderFrame()
	if s.Stats().Hits != 50 {
		t.Fatalf("hits = %d, want 50", s.Stats().Hits)
	}
	// Every pixel column of the 3D view belongs to some strip.
	for x := 512; x < 1024; x++ {
		if fb.Pixel(x, 256) == Background {
			t.Fatalf("column %d left unpainted at the horizon", x)
		}
	}
}

func TestScene_OddColumnsCenterIsFacingRay(t *testing.T) {
	settings := DefaultSettings()
	settings.RotationPerFrame = 0
	settings.Columns = 5
	s := referenceScene(settings)
	if s.RayOffset(2) == 0 {
		t.Fatal("odd column count should have no ray at offset 0")
	}
	s.RenderFrame()
	if got, want := s.Stats().Center, s.Cast(s.Pose().Angle); got != want {
		t.Fatalf("center = %+v, want facing ray %+v", got, want)
	}
	if s.Stats().Hits != 5 {
		t.Fatalf("hits = %d, want 5", s.Stats().Hits)
	}
}

func TestScene_ViewerOutsideGrid(t *testing.T) {
	s := NewScene(ReferenceGrid(), Pose{X: -40, Y: 90, Angle: 2}, 200, 100, DefaultSettings())
	fb := s.RenderFrame()
	if len(fb.Pix) != 200*100*3 {
		t.Fatal("framebuffer size changed")
	}
}

func TestScene_ShadingDarkensWalls(t *testing.T) {
	settings := DefaultSettings()
	settings.RotationPerFrame = 0
	settings.Shading = true
	s := referenceScene(settings)
	fb := s.RenderFrame()
	p := fb.Pixel(512+256, 256)
	if p == Cyan || p.G == 0 {
		t.Fatalf("shaded center pixel = %+v, want darkened cyan", p)
	}
}
