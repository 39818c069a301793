/*
 * Copyright (C) 2023 by Jason Figge
 */

package raycast

import (
	"math"
	"testing"
)

func boxGrid(t *testing.T) *Grid {
	t.Helper()
	g, err := NewGrid(8, 8, ""+
		"11111111"+
		"1      1"+
		"1      1"+
		"1      1"+
		"1      1"+
		"1      1"+
		"1      1"+
		"11111111")
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestFixedStep_AxisDistance(t *testing.T) {
	g := boxGrid(t)
	c := FixedStep{Step: DefaultStepSize, MaxDistance: DefaultMaxDistance}
	cases := []struct {
		angle float64
		want  float64
	}{
		{0, 5.5},            // east wall at x=7
		{math.Pi, 0.5},      // west wall ends at x=1
		{math.Pi / 2, 5.5},  // south wall at y=7
		{-math.Pi / 2, 0.5}, // north wall ends at y=1
	}
	for _, tc := range cases {
		hit := c.Cast(g, 1.5, 1.5, tc.angle)
		if !hit.Ok || hit.Symbol != '1' {
			t.Fatalf("angle %.3f: expected wall hit, got %+v", tc.angle, hit)
		}
		if hit.Distance < tc.want-1e-9 || hit.Distance > tc.want+DefaultStepSize+1e-9 {
			t.Fatalf("angle %.3f: distance %.4f, want %.2f within one step", tc.angle, hit.Distance, tc.want)
		}
	}
}

func TestGridTraversal_AxisDistanceExact(t *testing.T) {
	g := boxGrid(t)
	hit := GridTraversal{MaxDistance: DefaultMaxDistance}.Cast(g, 1.5, 1.5, 0)
	if !hit.Ok || math.Abs(hit.Distance-5.5) > 1e-9 {
		t.Fatalf("expected exact hit at 5.5, got %+v", hit)
	}
}

func TestCasters_OpenMapNoHit(t *testing.T) {
	g, err := NewGrid(3, 3, "         ")
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range []Caster{FixedStep{Step: 0.05, MaxDistance: 20}, GridTraversal{MaxDistance: 20}} {
		for a := 0.0; a < TwoPi; a += 0.7 {
			if hit := c.Cast(g, 1.5, 1.5, a); hit.Ok {
				t.Fatalf("%T: expected no hit in open map, got %+v", c, hit)
			}
		}
	}
}

func TestFixedStep_PassesThroughEmptyCells(t *testing.T) {
	g := boxGrid(t)
	c := FixedStep{Step: DefaultStepSize, MaxDistance: DefaultMaxDistance}
	for row := 1; row < 7; row++ {
		// Start just left of the empty run and aim east through it.
		hit := c.Trace(g, 1.01, float64(row)+0.5, 0, func(px, py float64) {
			col, r := int(math.Floor(px)), int(math.Floor(py))
			if !g.IsEmpty(col, r) {
				t.Fatalf("visited wall cell (%d,%d) before the hit", col, r)
			}
		})
		if !hit.Ok || hit.Distance < 5.99-1e-9 {
			t.Fatalf("row %d: stopped early at %+v", row, hit)
		}
	}
}

func TestCasters_Idempotent(t *testing.T) {
	g := ReferenceGrid()
	for _, c := range []Caster{FixedStep{Step: DefaultStepSize, MaxDistance: DefaultMaxDistance}, GridTraversal{MaxDistance: DefaultMaxDistance}} {
		a := c.Cast(g, 3.456, 2.345, 0.9)
		b := c.Cast(g, 3.456, 2.345, 0.9)
		if a != b {
			t.Fatalf("%T: repeated cast differs: %+v vs %+v", c, a, b)
		}
	}
}

func TestCasters_Agree(t *testing.T) {
	g := ReferenceGrid()
	step := FixedStep{Step: DefaultStepSize, MaxDistance: DefaultMaxDistance}
	dda := GridTraversal{MaxDistance: DefaultMaxDistance}
	const rays = 64
	agree := 0
	for i := 0; i < rays; i++ {
		a := TwoPi * float64(i) / rays
		fs := step.Cast(g, ReferencePose.X, ReferencePose.Y, a)
		ex := dda.Cast(g, ReferencePose.X, ReferencePose.Y, a)
		if !fs.Ok || !ex.Ok {
			t.Fatalf("angle %.3f: enclosed map should always hit (%+v, %+v)", a, fs, ex)
		}
		if fs.Distance < ex.Distance-1e-9 {
			t.Fatalf("angle %.3f: fixed step hit %.4f before exact boundary %.4f", a, fs.Distance, ex.Distance)
		}
		if fs.Symbol == ex.Symbol && fs.Distance-ex.Distance <= DefaultStepSize+1e-9 {
			agree++
		}
	}
	if agree < rays*9/10 {
		t.Fatalf("only %d of %d rays agree within one step", agree, rays)
	}
}

func TestGridTraversal_StartInsideWall(t *testing.T) {
	g := boxGrid(t)
	hit := GridTraversal{}.Cast(g, 0.5, 0.5, 1)
	if !hit.Ok || hit.Distance != 0 {
		t.Fatalf("expected immediate hit, got %+v", hit)
	}
}

func TestNewCaster(t *testing.T) {
	if c, ok := NewCaster("dda", 0, 10); !ok {
		t.Fatal("dda should be known")
	} else if _, isDDA := c.(GridTraversal); !isDDA {
		t.Fatalf("dda returned %T", c)
	}
	if _, ok := NewCaster("bogus", 0, 0); ok {
		t.Fatal("unknown caster kind accepted")
	}
}
