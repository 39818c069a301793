/*
 * Copyright (C) 2023 by Jason Figge
 */

// Package server renders frames on demand over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ray-casting/internal/raycast"
	"ray-casting/internal/snapshot"
)

const maxFrames = 720

// Server holds the immutable inputs of a render. Every request builds its own
// Scene, so handlers share no mutable state.
type Server struct {
	grid     *raycast.Grid
	settings raycast.Settings
	width    int
	height   int
	start    raycast.Pose
}

func New(grid *raycast.Grid, settings raycast.Settings, width, height int, start raycast.Pose) *Server {
	return &Server{grid: grid, settings: settings, width: width, height: height, start: start}
}

// Routes configures all routes and returns the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/map", s.getMap)
		r.Get("/cast", s.getCast)
	})
	r.Get("/frame.png", s.frameHandler(snapshot.PNG))
	r.Get("/frame.bmp", s.frameHandler(snapshot.BMP))
	return r
}

type mapResponse struct {
	Width   int               `json:"width"`
	Height  int               `json:"height"`
	Rows    []string          `json:"rows"`
	Palette map[string]string `json:"palette"`
	Default string            `json:"default"`
}

func hexColor(c raycast.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// getMap handles GET /api/map
func (s *Server) getMap(w http.ResponseWriter, r *http.Request) {
	resp := mapResponse{
		Width:   s.grid.Width(),
		Height:  s.grid.Height(),
		Rows:    make([]string, s.grid.Height()),
		Palette: map[string]string{},
		Default: hexColor(s.settings.Palette.Default),
	}
	for row := range resp.Rows {
		resp.Rows[row] = s.grid.Row(row)
	}
	for symbol, c := range s.settings.Palette.Colors {
		resp.Palette[string(symbol)] = hexColor(c)
	}
	respondJSON(w, http.StatusOK, resp)
}

type castResponse struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Angle        float64 `json:"angle"`
	Hit          bool    `json:"hit"`
	Distance     float64 `json:"distance,omitempty"`
	Symbol       string  `json:"symbol,omitempty"`
	Color        string  `json:"color,omitempty"`
	ColumnTop    int     `json:"column_top,omitempty"`
	ColumnHeight int     `json:"column_height,omitempty"`
}

// getCast handles GET /api/cast?x=&y=&angle=&height=
func (s *Server) getCast(w http.ResponseWriter, r *http.Request) {
	pose, err := s.parsePose(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	height, err := parseIntParam(r, "height", s.height)
	if err != nil || height < 1 {
		respondError(w, http.StatusBadRequest, "invalid height")
		return
	}
	hit := s.settings.Caster.Cast(s.grid, pose.X, pose.Y, pose.Angle)
	resp := castResponse{X: pose.X, Y: pose.Y, Angle: pose.Angle, Hit: hit.Ok}
	if hit.Ok {
		col := raycast.Project(hit.Distance, 0, height)
		resp.Distance = hit.Distance
		resp.Symbol = string(hit.Symbol)
		resp.Color = hexColor(s.settings.Palette.ColorFor(hit.Symbol))
		resp.ColumnTop = col.Top
		resp.ColumnHeight = col.Height
	}
	respondJSON(w, http.StatusOK, resp)
}

// frameHandler handles GET /frame.{png,bmp}?x=&y=&angle=&frames=
// Frames after the first are rotated by the configured per-frame increment.
func (s *Server) frameHandler(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pose, err := s.parsePose(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		frames, err := parseIntParam(r, "frames", 1)
		if err != nil || frames < 1 || frames > maxFrames {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("frames must be in [1,%d]", maxFrames))
			return
		}

		settings := s.settings
		settings.RotationPerFrame = 0
		scene := raycast.NewScene(s.grid, pose, s.width, s.height, settings)
		for i := 0; i < frames; i++ {
			if i > 0 {
				scene.Rotate(s.settings.RotationPerFrame)
			}
			scene.RenderFrame()
		}

		var buf bytes.Buffer
		if err := snapshot.Encode(&buf, scene.Framebuffer(), format); err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", snapshot.ContentType(format))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		if _, err := buf.WriteTo(w); err != nil {
			log.Printf("Error writing frame: %v", err)
		}
	}
}

// parsePose reads x, y and angle, defaulting to the start pose.
func (s *Server) parsePose(r *http.Request) (raycast.Pose, error) {
	pose := s.start
	var err error
	if pose.X, err = parseFloatParam(r, "x", pose.X); err != nil {
		return pose, err
	}
	if pose.Y, err = parseFloatParam(r, "y", pose.Y); err != nil {
		return pose, err
	}
	if pose.Angle, err = parseFloatParam(r, "angle", pose.Angle); err != nil {
		return pose, err
	}
	return pose, nil
}

func parseFloatParam(r *http.Request, name string, defaultVal float64) (float64, error) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return defaultVal, fmt.Errorf("invalid %s %q", name, val)
	}
	return f, nil
}

func parseIntParam(r *http.Request, name string, defaultVal int) (int, error) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal, fmt.Errorf("invalid %s %q", name, val)
	}
	return i, nil
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON: %v", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
