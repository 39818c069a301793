/*
 * Copyright (C) 2023 by Jason Figge
 */

// Command report renders frames without a window and prints what each one saw.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"ray-casting/internal/config"
	"ray-casting/internal/raycast"
	"ray-casting/internal/snapshot"
)

func main() {
	var frames int
	var every int
	var copyOut bool
	var snapshotPath string

	flag.IntVar(&frames, "frames", 180, "frames to render")
	flag.IntVar(&every, "every", 30, "print one line every n frames")
	flag.BoolVar(&copyOut, "copy", false, "copy the report to the clipboard")
	flag.StringVar(&snapshotPath, "snapshot", "", "write the last frame to this .png or .bmp file")
	cfg, err := config.FromFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if frames <= 0 {
		fmt.Println("error: -frames must be > 0")
		return
	}
	if every <= 0 {
		fmt.Println("error: -every must be > 0")
		return
	}

	grid, err := cfg.LoadGrid()
	if err != nil {
		log.Fatalf("map: %v", err)
	}
	scene := raycast.NewScene(grid, cfg.StartPose(), cfg.Width, cfg.Height, cfg.Settings())
	report := buildReport(scene, frames, every)
	fmt.Print(report)

	if snapshotPath != "" {
		if err := snapshot.Write(snapshotPath, scene.Framebuffer()); err != nil {
			log.Fatalf("snapshot: %v", err)
		}
		fmt.Printf("snapshot written to %s\n", snapshotPath)
	}
	if copyOut {
		if err := clipboard.WriteAll(report); err != nil {
			log.Printf("clipboard unavailable: %v", err)
		} else {
			fmt.Println("report copied to clipboard")
		}
	}
}

// buildReport renders frames on scene and summarises them.
func buildReport(scene *raycast.Scene, frames, every int) string {
	var b strings.Builder
	start := scene.Pose()
	fmt.Fprintf(&b, "=== Headless Render Report ===\n")
	fmt.Fprintf(&b, "map=%dx%d frame=%dx%d frames=%d\n\n",
		scene.Grid().Width(), scene.Grid().Height(),
		scene.Framebuffer().Width, scene.Framebuffer().Height, frames)

	hits, misses := 0, 0
	nearest, farthest := math.Inf(1), 0.0
	for i := 0; i < frames; i++ {
		scene.RenderFrame()
		st := scene.Stats()
		hits += st.Hits
		misses += st.Misses
		if st.Center.Ok {
			nearest = math.Min(nearest, st.Center.Distance)
			farthest = math.Max(farthest, st.Center.Distance)
		}
		if st.Frame%every == 0 || i == frames-1 {
			fmt.Fprintf(&b, "frame %4d  angle %.4f  hits %4d  misses %4d  center %s\n",
				st.Frame, st.Pose.Angle, st.Hits, st.Misses, describeHit(st.Center))
		}
	}

	turned := float64(frames) * scene.Settings().RotationPerFrame
	fmt.Fprintf(&b, "\nrays: %d hits, %d misses\n", hits, misses)
	if hits > 0 && !math.IsInf(nearest, 1) {
		fmt.Fprintf(&b, "center distance: nearest %.3f farthest %.3f\n", nearest, farthest)
	}
	fmt.Fprintf(&b, "turned %.4f rad from %.4f to %.4f\n", turned, start.Angle, scene.Pose().Angle)
	return b.String()
}

func describeHit(h raycast.Hit) string {
	if !h.Ok {
		return "none"
	}
	return fmt.Sprintf("'%c' at %.3f", h.Symbol, h.Distance)
}
