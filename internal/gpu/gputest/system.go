package gputest

import "glade/internal/gpu"

// View is an opaque render-target or depth-stencil view.
type View struct {
	Name string
}

// System hosts a recording device and context. Setting Dev or Ctx to nil
// simulates a lost device or context.
type System struct {
	Dev        *Device
	Ctx        *Context
	Back       *View
	Depth      *View
	DepthSRV   *Texture
	PresentErr error
	Presents   int
	Resizes    [][2]int
}

func NewSystem() *System {
	return &System{
		Dev:      NewDevice(),
		Ctx:      NewContext(),
		Back:     &View{Name: "back-buffer"},
		Depth:    &View{Name: "depth-stencil"},
		DepthSRV: &Texture{ID: -1},
	}
}

func (s *System) Device() gpu.Device {
	if s.Dev == nil {
		return nil
	}
	return s.Dev
}

func (s *System) Context() gpu.Context {
	if s.Ctx == nil {
		return nil
	}
	return s.Ctx
}

func (s *System) BackBuffer() gpu.RenderTargetView {
	return s.Back
}

func (s *System) DepthStencil() gpu.DepthStencilView {
	return s.Depth
}

func (s *System) DepthStencilResource() gpu.ShaderResource {
	return s.DepthSRV
}

func (s *System) Present() error {
	if s.PresentErr != nil {
		return s.PresentErr
	}
	s.Presents++
	return nil
}

func (s *System) ResizeBuffers(width, height int) error {
	s.Resizes = append(s.Resizes, [2]int{width, height})
	return nil
}
