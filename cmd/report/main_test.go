/*
 * Copyright (C) 2023 by Jason Figge
 */

package main

import (
	"strings"
	"testing"

	"ray-casting/internal/raycast"
)

func TestBuildReport(t *testing.T) {
	scene := raycast.NewScene(raycast.ReferenceGrid(), raycast.ReferencePose, 64, 32, raycast.DefaultSettings())
	report := buildReport(scene, 60, 30)

	if !strings.HasPrefix(report, "=== Headless Render Report ===\n") {
		t.Fatalf("missing header:\n%s", report)
	}
	if !strings.Contains(report, "map=16x16 frame=64x32 frames=60") {
		t.Fatalf("missing summary line:\n%s", report)
	}
	if got := strings.Count(report, "\nframe "); got != 2 {
		t.Fatalf("frame lines = %d, want 2:\n%s", got, report)
	}
	if !strings.Contains(report, "frame   30") || !strings.Contains(report, "frame   60") {
		t.Fatalf("missing frame 30/60 lines:\n%s", report)
	}
	// The reference map is closed, so every ray hits.
	if !strings.Contains(report, ", 0 misses") {
		t.Fatalf("expected no misses:\n%s", report)
	}
	if scene.Stats().Frame != 60 {
		t.Fatalf("frames rendered = %d", scene.Stats().Frame)
	}
}

func TestBuildReport_LastFrameAlwaysPrinted(t *testing.T) {
	scene := raycast.NewScene(raycast.ReferenceGrid(), raycast.ReferencePose, 64, 32, raycast.DefaultSettings())
	report := buildReport(scene, 7, 30)
	if !strings.Contains(report, "frame    7") {
		t.Fatalf("last frame missing:\n%s", report)
	}
}

func TestDescribeHit(t *testing.T) {
	if got := describeHit(raycast.Hit{}); got != "none" {
		t.Fatalf("miss = %q", got)
	}
	if got := describeHit(raycast.Hit{Ok: true, Symbol: '2', Distance: 1.5}); got != "'2' at 1.500" {
		t.Fatalf("hit = %q", got)
	}
}
