/*
 * Copyright (C) 2023 by Jason Figge
 */

// Package ebitenview presents a Scene through Ebiten.
package ebitenview

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"ray-casting/internal/raycast"
)

// Game renders one scene frame per tick and uploads it in Draw.
type Game struct {
	scene  *raycast.Scene
	pixels []byte
	hud    bool
	fps    func() float64
}

func New(scene *raycast.Scene, hud bool) *Game {
	return &Game{scene: scene, hud: hud, fps: ebiten.ActualFPS}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	g.step()
	return nil
}

// step renders the next frame into the RGBA staging buffer.
func (g *Game) step() {
	fb := g.scene.RenderFrame()
	if g.hud {
		x := g.scene.View().Min.X + 4
		raycast.DrawText(fb, x, 2, fmt.Sprintf("%.1f fps", g.fps()), raycast.White)
	}
	g.pixels = fb.RGBA(g.pixels)
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.pixels == nil {
		return
	}
	screen.WritePixels(g.pixels)
}

// Layout reports the framebuffer size as the logical screen size.
func (g *Game) Layout(_, _ int) (int, int) {
	fb := g.scene.Framebuffer()
	return fb.Width, fb.Height
}

// Run opens a window and blocks until it is closed.
func Run(scene *raycast.Scene, title string, scale, fps int, hud bool) error {
	fb := scene.Framebuffer()
	ebiten.SetWindowSize(fb.Width*scale, fb.Height*scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(fps)
	if err := ebiten.RunGame(New(scene, hud)); err != nil {
		return fmt.Errorf("ebiten: %w", err)
	}
	return nil
}
