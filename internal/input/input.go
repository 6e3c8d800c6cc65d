// Package input translates window events into camera operations. Dispatch is
// direct: every event maps to a fixed set of calls with no state carried
// between events.
package input

import "glade/internal/logging"

// Key is a virtual key code. Values follow the Windows virtual-key table so
// that recorded event logs stay portable between backends.
type Key uint32

const (
	KeyEscape Key = 0x1B
	KeySpace  Key = 0x20
	KeyEnd    Key = 0x23
	KeyHome   Key = 0x24
	KeyLeft   Key = 0x25
	KeyUp     Key = 0x26
	KeyRight  Key = 0x27
	KeyDown   Key = 0x28
)

func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "ESCAPE"
	case KeySpace:
		return "SPACE"
	case KeyEnd:
		return "END"
	case KeyHome:
		return "HOME"
	case KeyLeft:
		return "LEFT"
	case KeyUp:
		return "UP"
	case KeyRight:
		return "RIGHT"
	case KeyDown:
		return "DOWN"
	}
	return "UNKNOWN"
}

// Step sizes applied per event.
const (
	DragScale  = 0.01
	WheelScale = 0.01
	KeyElevate = 0.05
	KeyTurn    = 0.05
	KeyMove    = 0.5
)

// Target is the part of a camera the controls drive.
type Target interface {
	Elevate(delta float32)
	Turn(delta float32)
	Move(delta float32)
	ToggleFlying() bool
}

// Controls dispatches events to a Target.
type Controls struct {
	target Target
}

func NewControls(target Target) *Controls {
	return &Controls{target: target}
}

// MouseDrag handles a drag of (dx, dy) pixels with a button held.
func (c *Controls) MouseDrag(dx, dy float32) {
	c.target.Elevate(-dy * DragScale)
	c.target.Turn(-dx * DragScale)
}

// MouseWheel handles a wheel delta.
func (c *Controls) MouseWheel(z float32) {
	c.target.Move(z * WheelScale)
}

// KeyDown handles a key press and reports whether the key is bound.
func (c *Controls) KeyDown(k Key) bool {
	switch k {
	case KeyHome:
		c.target.Elevate(KeyElevate)
	case KeyEnd:
		c.target.Elevate(-KeyElevate)
	case KeyLeft:
		c.target.Turn(-KeyTurn)
	case KeyRight:
		c.target.Turn(KeyTurn)
	case KeyUp:
		c.target.Move(KeyMove)
	case KeyDown:
		c.target.Move(-KeyMove)
	case KeySpace:
		if c.target.ToggleFlying() {
			logging.Info("flying")
		} else {
			logging.Info("walking")
		}
	default:
		return false
	}
	return true
}

// KeyUp is accepted for symmetry; no binding acts on release.
func (c *Controls) KeyUp(k Key) bool {
	return false
}
