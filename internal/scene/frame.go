package scene

import (
	"errors"
	"fmt"

	"glade/internal/config"
	"glade/internal/gpu"
	"glade/internal/input"
	"glade/internal/logging"
	"glade/internal/profiling"
)

// Update advances the clock and pushes every changed buffer: the camera, the
// animated and sync-flagged objects, and the scene buffer once.
func (s *Scene) Update() error {
	if s.clock == nil {
		return ErrNoClock
	}
	defer profiling.Track("scene.Update")()

	s.clock.Tick()
	elapsed := s.clock.Elapsed()
	if interval := s.cfg.Clock.ReportInterval; interval > 0 && elapsed >= s.nextReport {
		s.clock.ReportTimingData()
		for s.nextReport <= elapsed {
			s.nextReport += interval
		}
	}

	ctx := s.system.Context()
	if ctx == nil {
		return fmt.Errorf("%w: %w", ErrFrameSkipped, ErrNoContext)
	}

	var errs []error
	if err := s.camera.Update(ctx); err != nil {
		errs = append(errs, fmt.Errorf("camera: %w", err))
	}
	for _, o := range s.objects {
		switch {
		case o.animate != nil:
			o.item.SetWorldMatrix(worldMatrix(o.transform, spin(o.animate, float32(elapsed))))
		case !o.sync:
			continue
		}
		if err := o.item.Update(ctx); err != nil {
			errs = append(errs, fmt.Errorf("object %s: %w", o.item.Name(), err))
		}
	}

	s.scene.Data.Time = float32(elapsed)
	if err := s.scene.Sync(ctx); err != nil {
		errs = append(errs, fmt.Errorf("scene buffer: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		logging.Warn("update: %v", err)
		return err
	}
	return nil
}

// Render draws one frame and presents it. A minimised window or a missing
// context skips the frame without drawing or presenting.
func (s *Scene) Render() error {
	if s.window.Minimised() {
		return ErrFrameSkipped
	}
	ctx := s.system.Context()
	if ctx == nil {
		return fmt.Errorf("%w: %w", ErrFrameSkipped, ErrNoContext)
	}
	defer profiling.Track("scene.Render")()

	ctx.ClearRenderTarget(s.system.BackBuffer(), s.cfg.ClearColour)
	ctx.ClearDepthStencil(s.system.DepthStencil(), 1, 0)

	renderErr := s.renderer.Render(ctx)
	if renderErr != nil {
		logging.Warn("render: %v", renderErr)
	}
	if err := s.system.Present(); err != nil {
		logging.Warn("present: %v", err)
		return errors.Join(renderErr, fmt.Errorf("%w: %w", ErrPresent, err))
	}
	return renderErr
}

// UpdateAndRender runs one full frame. While the camera walks, its height is
// held at the ground offset, or at the terrain surface plus the offset when
// follow_terrain is set.
func (s *Scene) UpdateAndRender() error {
	if err := s.Update(); err != nil {
		return err
	}
	err := s.Render()
	if !s.camera.Flying() {
		s.camera.SetHeight(s.groundHeight())
	}
	return err
}

func (s *Scene) groundHeight() float32 {
	offset := s.cfg.Camera.GroundOffset
	if !s.cfg.Camera.FollowTerrain || s.ground == nil {
		return offset
	}
	pos := s.camera.Position()
	return s.ground.CalculateYValueWorld(pos.X(), pos.Z()) + offset
}

// Resize resizes the swap chain and rebuilds the viewport. The frame is
// redrawn immediately unless the window is minimised.
func (s *Scene) Resize(width, height int) error {
	if err := s.system.ResizeBuffers(width, height); err != nil {
		return fmt.Errorf("resize to %dx%d: %w", width, height, err)
	}
	if s.window.Minimised() {
		return nil
	}
	if err := s.RebuildViewport(); err != nil {
		return err
	}
	return s.Render()
}

// RebuildViewport covers the window client area and binds the default render
// target and depth-stencil views.
func (s *Scene) RebuildViewport() error {
	ctx := s.system.Context()
	if ctx == nil {
		return ErrNoContext
	}
	w, h := s.window.ClientSize()
	s.viewport = gpu.Viewport{Width: float32(w), Height: float32(h), MinDepth: 0, MaxDepth: 1}
	ctx.SetViewport(s.viewport)
	ctx.SetRenderTargets(s.system.BackBuffer(), s.system.DepthStencil())
	if s.camera != nil {
		s.camera.SetAspect(w, h)
	}
	logging.Debug("viewport %dx%d", w, h)
	return nil
}

func (s *Scene) OnMouseDrag(dx, dy float32) { s.controls.MouseDrag(dx, dy) }

func (s *Scene) OnMouseWheel(z float32) { s.controls.MouseWheel(z) }

// OnKeyDown reports whether the key is bound.
func (s *Scene) OnKeyDown(k input.Key) bool { return s.controls.KeyDown(k) }

func (s *Scene) OnKeyUp(k input.Key) bool { return s.controls.KeyUp(k) }

// ApplyTuning takes reloaded configuration values between frames. The grass
// terrain itself cannot change; its length and pass count can.
func (s *Scene) ApplyTuning(t config.Tuning) error {
	ctx := s.system.Context()
	if ctx == nil {
		return ErrNoContext
	}

	s.cfg.Light = t.Light
	s.light.Data = lightConstants(t.Light)
	s.cfg.Wind = t.Wind
	s.scene.Data.WindDirection = t.Wind
	s.cfg.ClearColour = t.ClearColour
	s.cfg.Grass.Length = t.Grass.Length
	if s.foliage != nil && t.Grass.Passes > 0 {
		s.cfg.Grass.Passes = t.Grass.Passes
		s.foliage.Repeat = t.Grass.Passes
	}
	config.SetFPSLimit(t.FPSLimit)

	var errs []error
	if t.LogLevel != "" {
		if err := logging.SetLevel(t.LogLevel); err != nil {
			errs = append(errs, err)
		}
	}
	if err := s.light.Sync(ctx); err != nil {
		errs = append(errs, fmt.Errorf("light buffer: %w", err))
	}
	if err := s.scene.Sync(ctx); err != nil {
		errs = append(errs, fmt.Errorf("scene buffer: %w", err))
	}
	logging.Info("tuning applied")
	return errors.Join(errs...)
}
