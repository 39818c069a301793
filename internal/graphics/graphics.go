/*
 * Copyright (C) 2023 by Jason Figge
 */

package graphics

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"ray-casting/internal/pacing"
)

// Handler receives the window's events and draws each frame.
type Handler interface {
	Init(canvas *Canvas)
	Events(event sdl.Event) bool
	OnUpdate()
	OnDraw(renderer *sdl.Renderer)
	Running() bool
	Quit()
	Destroy()
}

type Canvas struct {
	window   *sdl.Window
	renderer *sdl.Renderer
}

func (c *Canvas) Window() *sdl.Window     { return c.window }
func (c *Canvas) Renderer() *sdl.Renderer { return c.renderer }

// ErrorTrap panics on any SDL error; there is nothing sensible to do mid-frame.
func ErrorTrap(err error) {
	if err != nil {
		panic(err)
	}
}

// Open creates a window and runs the event/update/draw loop at fps until the
// handler stops running or the window is closed.
func Open(title string, width, height int32, fps int, handler Handler) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer renderer.Destroy()

	handler.Init(&Canvas{window: window, renderer: renderer})
	defer handler.Destroy()

	pacer := pacing.NewPacer(fps)
	for handler.Running() {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if _, ok := event.(*sdl.QuitEvent); ok {
				handler.Quit()
				continue
			}
			handler.Events(event)
		}
		if !handler.Running() {
			break
		}
		handler.OnUpdate()
		handler.OnDraw(renderer)
		renderer.Present()
		pacer.Wait()
	}
	return nil
}

// BaseHandler provides the quit flag and teardown hooks of a Handler.
type BaseHandler struct {
	stopped    bool
	destroyers []func()
}

func (b *BaseHandler) Running() bool { return !b.stopped }
func (b *BaseHandler) Quit()         { b.stopped = true }

// AddDestroyer registers f to run when the window closes, last added first.
func (b *BaseHandler) AddDestroyer(f func()) {
	b.destroyers = append(b.destroyers, f)
}

func (b *BaseHandler) Destroy() {
	for i := len(b.destroyers) - 1; i >= 0; i-- {
		b.destroyers[i]()
	}
	b.destroyers = nil
}

// CoreMethods are drawing helpers shared by handlers.
type CoreMethods struct {
	frameRate *pacing.FrameRate
}

// Clear fills the render target with an 0xRRGGBB color.
func (c *CoreMethods) Clear(renderer *sdl.Renderer, color uint32) error {
	if err := renderer.SetDrawColor(uint8(color>>16), uint8(color>>8), uint8(color), 0xFF); err != nil {
		return err
	}
	return renderer.Clear()
}

// FrameRate records a presented frame and returns the current rate.
func (c *CoreMethods) FrameRate() float64 {
	if c.frameRate == nil {
		c.frameRate = pacing.NewFrameRate()
	}
	c.frameRate.Tick()
	return c.frameRate.Rate()
}
