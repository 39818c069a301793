/*
 * Copyright (C) 2023 by Jason Figge
 */

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"ray-casting/internal"
	"ray-casting/internal/config"
	"ray-casting/internal/ebitenview"
	"ray-casting/internal/graphics"
	"ray-casting/internal/raycast"
	"ray-casting/internal/termview"
)

const title = "Ray Caster"

func main() {
	cfg, err := config.FromFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	grid, err := cfg.LoadGrid()
	if err != nil {
		log.Fatalf("map: %v", err)
	}
	scene := raycast.NewScene(grid, cfg.StartPose(), cfg.Width, cfg.Height, cfg.Settings())

	switch cfg.Display {
	case "ebiten":
		err = ebitenview.Run(scene, title, cfg.Scale, cfg.TargetFPS, cfg.HUD)
	case "term":
		err = termview.Run(scene, cfg.TargetFPS, cfg.HUD)
	default:
		controller := internal.NewController(scene, cfg.Scale, cfg.Manual, cfg.HUD)
		err = graphics.Open(title, int32(cfg.Width*cfg.Scale), int32(cfg.Height*cfg.Scale), cfg.TargetFPS, controller)
	}
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Game over")
}
