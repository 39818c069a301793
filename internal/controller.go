/*
 * Copyright (C) 2023 by Jason Figge
 */

package internal

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"ray-casting/internal/graphics"
	"ray-casting/internal/raycast"
)

const (
	ClearColor = uint32(0x232323)

	MoveStep   = 0.05
	RotateStep = math.Pi / 90
)

// Controller presents a Scene in an SDL window. The scene's framebuffer is
// streamed into an RGB24 texture once per frame.
type Controller struct {
	graphics.BaseHandler
	graphics.CoreMethods
	scene     *raycast.Scene
	texture   *sdl.Texture
	scale     int32
	manual    bool
	hud       bool
	shiftDown bool
}

func NewController(scene *raycast.Scene, scale int, manual, hud bool) *Controller {
	if scale < 1 {
		scale = 1
	}
	return &Controller{
		scene:  scene,
		scale:  int32(scale),
		manual: manual,
		hud:    hud,
	}
}

func (c *Controller) Init(canvas *graphics.Canvas) {
	fb := c.scene.Framebuffer()
	texture, err := canvas.Renderer().CreateTexture(uint32(sdl.PIXELFORMAT_RGB24), int(sdl.TEXTUREACCESS_STREAMING), int32(fb.Width), int32(fb.Height))
	graphics.ErrorTrap(err)
	c.texture = texture
	c.AddDestroyer(func() { _ = texture.Destroy() })
}

func (c *Controller) Events(event sdl.Event) bool {
	processed := false
	switch e := event.(type) {
	case *sdl.MouseButtonEvent:
		processed = c.mouseButtonEvent(e)
	case *sdl.MouseMotionEvent:
		processed = c.mouseMotionEvent(e)
	case *sdl.KeyboardEvent:
		processed = c.keyboardEvent(e)
	}
	return processed
}

func (c *Controller) OnUpdate() {
	if !c.manual {
		return
	}
	codes := sdl.GetKeyboardState()
	if codes[sdl.SCANCODE_W] == 1 {
		c.scene.Move(MoveStep, 0)
	} else if codes[sdl.SCANCODE_S] == 1 {
		c.scene.Move(-MoveStep, 0)
	}

	if c.shiftDown {
		if codes[sdl.SCANCODE_A] == 1 {
			c.scene.Move(0, -MoveStep)
		} else if codes[sdl.SCANCODE_D] == 1 {
			c.scene.Move(0, MoveStep)
		}
	} else {
		if codes[sdl.SCANCODE_A] == 1 {
			c.scene.Rotate(-RotateStep)
		} else if codes[sdl.SCANCODE_D] == 1 {
			c.scene.Rotate(RotateStep)
		}
	}
}

func (c *Controller) OnDraw(renderer *sdl.Renderer) {
	graphics.ErrorTrap(c.Clear(renderer, ClearColor))
	fb := c.scene.RenderFrame()
	rate := c.FrameRate()
	if c.hud {
		drawHUD(fb, c.scene, rate)
	}
	graphics.ErrorTrap(c.texture.Update(nil, unsafe.Pointer(&fb.Pix[0]), fb.Pitch()))
	graphics.ErrorTrap(renderer.Copy(c.texture, nil, nil))
}

// drawHUD writes the frame rate and pose into the top corner of the 3D view.
func drawHUD(fb *raycast.Framebuffer, scene *raycast.Scene, rate float64) {
	pose := scene.Pose()
	x := scene.View().Min.X + 4
	raycast.DrawText(fb, x, 2, fmt.Sprintf("%.1f fps", rate), raycast.White)
	raycast.DrawText(fb, x, 2+raycast.LineHeight, fmt.Sprintf("x %.2f y %.2f a %.3f", pose.X, pose.Y, pose.Angle), raycast.White)
}

// toGrid converts window coordinates over the minimap into grid coordinates.
func (c *Controller) toGrid(X, Y int32) (float64, float64, bool) {
	fb := c.scene.Framebuffer()
	grid := c.scene.Grid()
	px, py := float64(X/c.scale), float64(Y/c.scale)
	half := float64(fb.Width / 2)
	if px >= half {
		return 0, 0, false
	}
	tw := half / float64(grid.Width())
	th := float64(fb.Height) / float64(grid.Height())
	return px / tw, py / th, true
}

// setFovAngle turns the viewer to face the point under the mouse.
func (c *Controller) setFovAngle(X, Y int32) {
	gx, gy, ok := c.toGrid(X, Y)
	if !ok {
		return
	}
	pose := c.scene.Pose()
	pose.Angle = math.Atan2(gy-pose.Y, gx-pose.X)
	c.scene.SetPose(pose)
}

func (c *Controller) mouseButtonEvent(event *sdl.MouseButtonEvent) bool {
	if !c.manual || event.State != sdl.PRESSED {
		return false
	}
	if event.Button == sdl.BUTTON_RIGHT {
		gx, gy, ok := c.toGrid(event.X, event.Y)
		if !ok || !c.scene.Grid().IsEmpty(int(gx), int(gy)) {
			return false
		}
		pose := c.scene.Pose()
		pose.X, pose.Y = gx, gy
		c.scene.SetPose(pose)
	} else {
		c.setFovAngle(event.X, event.Y)
	}
	return true
}

func (c *Controller) mouseMotionEvent(event *sdl.MouseMotionEvent) bool {
	if c.manual && event.State != 0 {
		c.setFovAngle(event.X, event.Y)
		return true
	}
	return false
}

func (c *Controller) keyboardEvent(event *sdl.KeyboardEvent) bool {
	c.shiftDown = event.Keysym.Mod&uint16(sdl.KMOD_SHIFT) != 0
	if event.State != sdl.PRESSED {
		return false
	}
	switch event.Keysym.Scancode {
	case sdl.SCANCODE_Q, sdl.SCANCODE_ESCAPE:
		c.Quit()
		return true
	}
	return false
}
