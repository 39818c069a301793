/*
 * Copyright (C) 2023 by Jason Figge
 */

package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"

	"ray-casting/internal/raycast"
)

const (
	ScreenWidth     = 1024
	ScreenHeight    = 512
	WindowScale     = 1
	TargetFPS       = 60
	FieldOfView     = 60
	RotationPerTick = 1
	ServerAddr      = ":8080"
)

var Displays = []string{"sdl", "ebiten", "term"}

// Config holds the settings shared by every command.
type Config struct {
	MapPath    string  `json:"map_path"`
	MapWidth   int     `json:"map_width"`
	MapHeight  int     `json:"map_height"`
	StartX     float64 `json:"start_x"`
	StartY     float64 `json:"start_y"`
	StartAngle float64 `json:"start_angle"`

	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Scale     int    `json:"scale"`
	Display   string `json:"display"`
	TargetFPS int    `json:"target_fps"`
	HUD       bool   `json:"hud"`
	Manual    bool   `json:"manual"`

	FOVDegrees      float64 `json:"fov_degrees"`
	RotationDegrees float64 `json:"rotation_degrees"`
	Caster          string  `json:"caster"`
	StepSize        float64 `json:"step_size"`
	MaxDistance     float64 `json:"max_distance"`
	Columns         int     `json:"columns"`
	ShowTrace       bool    `json:"show_trace"`
	Shading         bool    `json:"shading"`

	ServerAddr string `json:"server_addr"`
}

func Default() *Config {
	return &Config{
		StartX:          raycast.ReferencePose.X,
		StartY:          raycast.ReferencePose.Y,
		StartAngle:      raycast.ReferencePose.Angle,
		Width:           ScreenWidth,
		Height:          ScreenHeight,
		Scale:           WindowScale,
		Display:         "sdl",
		TargetFPS:       TargetFPS,
		HUD:             true,
		FOVDegrees:      FieldOfView,
		RotationDegrees: RotationPerTick,
		Caster:          "step",
		StepSize:        raycast.DefaultStepSize,
		MaxDistance:     raycast.DefaultMaxDistance,
		ServerAddr:      ServerAddr,
	}
}

// Bind registers a flag for every setting on fs, plus -config for a JSON file.
func (c *Config) Bind(fs *flag.FlagSet) *string {
	fs.StringVar(&c.MapPath, "map", c.MapPath, "map file (one row per line); built-in map when empty")
	fs.IntVar(&c.MapWidth, "map-width", c.MapWidth, "map width in tiles (0 = infer)")
	fs.IntVar(&c.MapHeight, "map-height", c.MapHeight, "map height in tiles (0 = infer)")
	fs.Float64Var(&c.StartX, "x", c.StartX, "viewer start x in tiles")
	fs.Float64Var(&c.StartY, "y", c.StartY, "viewer start y in tiles")
	fs.Float64Var(&c.StartAngle, "angle", c.StartAngle, "viewer start angle in radians")
	fs.IntVar(&c.Width, "width", c.Width, "framebuffer width (minimap + 3D view)")
	fs.IntVar(&c.Height, "height", c.Height, "framebuffer height")
	fs.IntVar(&c.Scale, "scale", c.Scale, "window scale factor")
	fs.StringVar(&c.Display, "display", c.Display, "presenter: sdl, ebiten or term")
	fs.IntVar(&c.TargetFPS, "fps", c.TargetFPS, "target frames per second")
	fs.BoolVar(&c.HUD, "hud", c.HUD, "draw the frame rate overlay")
	fs.BoolVar(&c.Manual, "manual", c.Manual, "WASD movement instead of auto-rotation (sdl only)")
	fs.Float64Var(&c.FOVDegrees, "fov", c.FOVDegrees, "field of view in degrees")
	fs.Float64Var(&c.RotationDegrees, "rotate", c.RotationDegrees, "auto-rotation per frame in degrees")
	fs.StringVar(&c.Caster, "caster", c.Caster, "ray marcher: step or dda")
	fs.Float64Var(&c.StepSize, "step", c.StepSize, "fixed-step marcher increment in tiles")
	fs.Float64Var(&c.MaxDistance, "range", c.MaxDistance, "maximum ray distance in tiles")
	fs.IntVar(&c.Columns, "columns", c.Columns, "rays per frame (0 = one per 3D view pixel)")
	fs.BoolVar(&c.ShowTrace, "trace", c.ShowTrace, "draw ray traces on the minimap")
	fs.BoolVar(&c.Shading, "shading", c.Shading, "darken walls with distance")
	fs.StringVar(&c.ServerAddr, "addr", c.ServerAddr, "HTTP listen address")
	return fs.String("config", "", "JSON settings file")
}

// FromFlags parses args into a Config. Values come from defaults, then the
// -config file, then SERVER_ADDR, and finally explicit flags.
func FromFlags(fs *flag.FlagSet, args []string) (*Config, error) {
	c := Default()
	path := c.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *path != "" {
		if err := c.readFile(*path); err != nil {
			return nil, err
		}
	}
	if addr := os.Getenv("SERVER_ADDR"); addr != "" {
		c.ServerAddr = addr
	}
	// Flags given on the command line win over the file and the environment.
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads a JSON settings file over the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if err := c.readFile(path); err != nil {
		return nil, err
	}
	if addr := os.Getenv("SERVER_ADDR"); addr != "" {
		c.ServerAddr = addr
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Width < 2 || c.Height < 1 {
		return fmt.Errorf("framebuffer %dx%d too small", c.Width, c.Height)
	}
	if c.Scale < 1 {
		return fmt.Errorf("scale must be >= 1, got %d", c.Scale)
	}
	if c.TargetFPS <= 0 {
		return fmt.Errorf("fps must be > 0, got %d", c.TargetFPS)
	}
	if c.FOVDegrees <= 0 || c.FOVDegrees >= 180 {
		return fmt.Errorf("fov must be in (0,180), got %v", c.FOVDegrees)
	}
	if c.MaxDistance <= 0 || c.StepSize <= 0 {
		return fmt.Errorf("step (%v) and range (%v) must be > 0", c.StepSize, c.MaxDistance)
	}
	if c.Columns < 0 {
		return fmt.Errorf("columns must be >= 0, got %d", c.Columns)
	}
	if _, ok := raycast.NewCaster(c.Caster, c.StepSize, c.MaxDistance); !ok {
		return fmt.Errorf("unknown caster %q (supported: step, dda)", c.Caster)
	}
	for _, d := range Displays {
		if d == c.Display {
			return nil
		}
	}
	return fmt.Errorf("unknown display %q (supported: sdl, ebiten, term)", c.Display)
}

// Settings converts the configuration into render settings.
func (c *Config) Settings() raycast.Settings {
	s := raycast.DefaultSettings()
	s.FOV = c.FOVDegrees * math.Pi / 180
	s.RotationPerFrame = c.RotationDegrees * math.Pi / 180
	if c.Manual {
		s.RotationPerFrame = 0
	}
	s.Caster, _ = raycast.NewCaster(c.Caster, c.StepSize, c.MaxDistance)
	s.Columns = c.Columns
	s.ShowTrace = c.ShowTrace
	s.Shading = c.Shading
	return s
}

func (c *Config) StartPose() raycast.Pose {
	return raycast.Pose{X: c.StartX, Y: c.StartY, Angle: c.StartAngle}
}

// LoadGrid reads the configured map file, or returns the built-in map.
func (c *Config) LoadGrid() (*raycast.Grid, error) {
	if c.MapPath == "" {
		return raycast.ReferenceGrid(), nil
	}
	f, err := os.Open(c.MapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load map: %w", err)
	}
	defer f.Close()
	g, err := raycast.ReadGrid(f, c.MapWidth, c.MapHeight)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.MapPath, err)
	}
	return g, nil
}
