/*
 * Copyright (C) 2023 by Jason Figge
 */

// Package termview presents a Scene in a terminal. Each character cell shows
// two stacked pixels using an upper half block.
package termview

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"ray-casting/internal/pacing"
	"ray-casting/internal/raycast"
)

const halfBlock = '▀'

// Cell is one terminal character: the upper and lower pixel it stands for.
type Cell struct {
	Top, Bottom raycast.Color
}

// Sample scales the framebuffer down to cols x rows cells by nearest neighbour.
func Sample(fb *raycast.Framebuffer, cols, rows int) [][]Cell {
	if cols <= 0 || rows <= 0 || fb.Width == 0 || fb.Height == 0 {
		return nil
	}
	cells := make([][]Cell, rows)
	pixelRows := rows * 2
	for row := range cells {
		cells[row] = make([]Cell, cols)
		top := (row * 2) * fb.Height / pixelRows
		bottom := (row*2 + 1) * fb.Height / pixelRows
		for col := range cells[row] {
			x := col * fb.Width / cols
			cells[row][col] = Cell{Top: fb.Pixel(x, top), Bottom: fb.Pixel(x, bottom)}
		}
	}
	return cells
}

func toTcell(c raycast.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Viewer draws frames onto a tcell screen.
type Viewer struct {
	screen tcell.Screen
	scene  *raycast.Scene
	rate   *pacing.FrameRate
	hud    bool
}

func NewViewer(screen tcell.Screen, scene *raycast.Scene, hud bool) *Viewer {
	return &Viewer{screen: screen, scene: scene, rate: pacing.NewFrameRate(), hud: hud}
}

// Draw renders the next frame and shows it.
func (v *Viewer) Draw() {
	fb := v.scene.RenderFrame()
	v.rate.Tick()
	cols, rows := v.screen.Size()
	for y, line := range Sample(fb, cols, rows) {
		for x, cell := range line {
			style := tcell.StyleDefault.Foreground(toTcell(cell.Top)).Background(toTcell(cell.Bottom))
			v.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	if v.hud {
		status := fmt.Sprintf(" %.1f fps  q/esc quits ", v.rate.Rate())
		style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
		for i, r := range status {
			if i >= cols {
				break
			}
			v.screen.SetContent(i, 0, r, nil, style)
		}
	}
	v.screen.Show()
}

// quits reports whether ev asks the viewer to stop.
func quits(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	return quitKey(key.Key(), key.Rune())
}

func quitKey(k tcell.Key, r rune) bool {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return r == 'q'
	}
	return false
}

// Loop draws at fps until a quit key arrives.
func (v *Viewer) Loop(fps int) {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go forward(v.screen, events, done)

	ticker := time.NewTicker(pacing.NewPacer(fps).Interval())
	defer ticker.Stop()
	for {
		select {
		case ev := <-events:
			if quits(ev) {
				return
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				v.screen.Sync()
			}
		case <-ticker.C:
			v.Draw()
		}
	}
}

// forward copies screen events to events until the screen is finalized or
// done is closed.
func forward(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Run takes over the terminal until the user quits.
func Run(scene *raycast.Scene, fps int, hud bool) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()
	NewViewer(screen, scene, hud).Loop(fps)
	return nil
}
