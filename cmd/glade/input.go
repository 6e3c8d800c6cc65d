package main

import (
	"glade/internal/input"
	"glade/internal/logging"
	"glade/internal/scene"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// wheelNotch is the wheel delta of one notch, so a notch moves the camera by
// wheelNotch*input.WheelScale.
const wheelNotch = 120

var keyMap = map[glfw.Key]input.Key{
	glfw.KeyEscape: input.KeyEscape,
	glfw.KeySpace:  input.KeySpace,
	glfw.KeyEnd:    input.KeyEnd,
	glfw.KeyHome:   input.KeyHome,
	glfw.KeyLeft:   input.KeyLeft,
	glfw.KeyUp:     input.KeyUp,
	glfw.KeyRight:  input.KeyRight,
	glfw.KeyDown:   input.KeyDown,
}

func translateKey(k glfw.Key) (input.Key, bool) {
	key, ok := keyMap[k]
	return key, ok
}

// dragTracker turns cursor positions into drag deltas while the left button
// is held.
type dragTracker struct {
	down   bool
	primed bool
	x, y   float64
}

func (d *dragTracker) button(pressed bool) {
	d.down = pressed
	d.primed = false
}

// move returns the delta since the previous position and whether a drag is
// in progress. The first position after a press only primes the tracker.
func (d *dragTracker) move(x, y float64) (dx, dy float32, ok bool) {
	if !d.down {
		return 0, 0, false
	}
	if !d.primed {
		d.x, d.y, d.primed = x, y, true
		return 0, 0, false
	}
	dx, dy = float32(x-d.x), float32(y-d.y)
	d.x, d.y = x, y
	return dx, dy, true
}

// bindInput routes window events to the scene. Escape closes the window;
// every other bound key goes to the scene controls.
func bindInput(win *glfw.Window, s *scene.Scene) {
	var drag dragTracker

	win.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft || action == glfw.Repeat {
			return
		}
		drag.button(action == glfw.Press)
		if action == glfw.Press {
			drag.move(w.GetCursorPos())
		}
	})

	win.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		if dx, dy, ok := drag.move(x, y); ok {
			s.OnMouseDrag(dx, dy)
		}
	})

	win.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		s.OnMouseWheel(float32(yoff * wheelNotch))
	})

	win.SetKeyCallback(func(w *glfw.Window, k glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		key, ok := translateKey(k)
		if !ok {
			return
		}
		switch action {
		case glfw.Press, glfw.Repeat:
			if key == input.KeyEscape {
				w.SetShouldClose(true)
				return
			}
			s.OnKeyDown(key)
		case glfw.Release:
			s.OnKeyUp(key)
		}
	})

	win.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		if err := s.Resize(width, height); err != nil {
			logging.Warn("resize: %v", err)
		}
	})
}
