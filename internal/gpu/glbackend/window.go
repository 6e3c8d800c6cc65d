// Package glbackend implements the gpu interfaces on OpenGL 4.1 core with a
// GLFW window. Every call must come from the thread that created the window.
package glbackend

import (
	"fmt"

	"glade/internal/config"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is a GLFW window with a current OpenGL 4.1 core context.
type Window struct {
	win *glfw.Window
}

// OpenWindow initialises GLFW, creates the window and loads the GL entry
// points. V-Sync is off; the frame loop paces itself.
func OpenWindow(cfg config.Window) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}
	glfw.SwapInterval(0)
	return &Window{win: win}, nil
}

// ClientSize returns the framebuffer size in pixels.
func (w *Window) ClientSize() (int, int) {
	return w.win.GetFramebufferSize()
}

// Minimised reports an iconified window or one with an empty client area.
func (w *Window) Minimised() bool {
	if w.win.GetAttrib(glfw.Iconified) == glfw.True {
		return true
	}
	width, height := w.win.GetFramebufferSize()
	return width == 0 || height == 0
}

func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }

func (w *Window) SetShouldClose(v bool) { w.win.SetShouldClose(v) }

func (w *Window) PollEvents() { glfw.PollEvents() }

// GLFW exposes the underlying window for input callbacks.
func (w *Window) GLFW() *glfw.Window { return w.win }

func (w *Window) swap() { w.win.SwapBuffers() }

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	w.win.Destroy()
	glfw.Terminate()
}
