package glbackend

import (
	"fmt"

	"glade/internal/gpu"
	"glade/internal/logging"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var (
	_ gpu.System  = (*System)(nil)
	_ gpu.Device  = (*Device)(nil)
	_ gpu.Context = (*Context)(nil)
)

// System renders into an offscreen framebuffer whose depth attachment is a
// sampleable texture, then blits it to the window on Present.
type System struct {
	window *Window
	device *Device
	ctx    *Context

	target        renderTarget
	depth         depthTarget
	width, height int
}

// NewSystem creates the offscreen targets at the window's framebuffer size.
func NewSystem(w *Window) (*System, error) {
	s := &System{window: w, device: &Device{}, ctx: newContext()}
	gl.GenFramebuffers(1, &s.target.fbo)
	width, height := w.ClientSize()
	if err := s.ResizeBuffers(width, height); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *System) Device() gpu.Device   { return s.device }
func (s *System) Context() gpu.Context { return s.ctx }

func (s *System) BackBuffer() gpu.RenderTargetView { return &s.target }

func (s *System) DepthStencil() gpu.DepthStencilView { return &s.depth }

func (s *System) DepthStencilResource() gpu.ShaderResource { return s.depth.tex }

// Present copies the colour attachment to the default framebuffer and swaps.
func (s *System) Present() error {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, s.target.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	w, h := int32(s.width), int32(s.height)
	gl.BlitFramebuffer(0, 0, w, h, 0, 0, w, h, gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.FRAMEBUFFER, s.target.fbo)
	s.window.swap()
	return checkError("present")
}

// ResizeBuffers recreates the colour and depth attachments. A zero size, as
// reported for a minimised window, keeps the current ones.
func (s *System) ResizeBuffers(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if width == s.width && height == s.height {
		return nil
	}
	s.releaseAttachments()

	gl.GenTextures(1, &s.target.colour)
	gl.BindTexture(gl.TEXTURE_2D, s.target.colour)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	s.depth.tex = &texture{target: gl.TEXTURE_2D}
	gl.GenTextures(1, &s.depth.tex.id)
	gl.BindTexture(gl.TEXTURE_2D, s.depth.tex.id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH24_STENCIL8, int32(width), int32(height), 0, gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.BindFramebuffer(gl.FRAMEBUFFER, s.target.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, s.target.colour, 0)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.TEXTURE_2D, s.depth.tex.id, 0)
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("resize to %dx%d: framebuffer incomplete (0x%x)", width, height, status)
	}
	s.width, s.height = width, height

	// Rebind whatever the context held so a resize mid-frame keeps its targets.
	rt, ds := s.ctx.RenderTargets()
	s.ctx.SetRenderTargets(rt, ds)
	logging.Debug("swap targets %dx%d", width, height)
	return checkError("resize")
}

func (s *System) releaseAttachments() {
	if s.target.colour != 0 {
		gl.DeleteTextures(1, &s.target.colour)
		s.target.colour = 0
	}
	if s.depth.tex != nil {
		s.depth.tex.Release()
		s.depth.tex = nil
	}
}

// Close releases the targets and the context's vertex array. The window is
// closed separately.
func (s *System) Close() {
	s.releaseAttachments()
	if s.target.fbo != 0 {
		gl.DeleteFramebuffers(1, &s.target.fbo)
		s.target.fbo = 0
	}
	s.ctx.release()
}
