// Package game runs the frame loop around a scene: events, live tuning,
// update and render, then frame pacing.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"glade/internal/config"
	"glade/internal/logging"
	"glade/internal/profiling"
	"glade/internal/scene"
)

// SlowFrame is the processing time above which a frame is logged together
// with its slowest tracked sections.
const SlowFrame = 16 * time.Millisecond

// MaxFailures is the number of consecutive failed frames after which Run
// gives up. Skipped frames are not failures.
const MaxFailures = 120

// Window is the host window driving the loop.
type Window interface {
	ShouldClose() bool
	PollEvents()
	Minimised() bool
}

// Scene is what the loop drives once per frame.
type Scene interface {
	UpdateAndRender() error
	ApplyTuning(t config.Tuning) error
}

type App struct {
	window  Window
	scene   Scene
	tuning  <-chan config.Tuning
	limiter *FPSLimiter

	frames   int
	skipped  int
	failures int
}

func NewApp(window Window, s Scene) *App {
	return &App{
		window:  window,
		scene:   s,
		limiter: NewFPSLimiter(),
	}
}

// WatchTuning makes the loop apply every value received on ch between frames.
func (a *App) WatchTuning(ch <-chan config.Tuning) {
	a.tuning = ch
}

// Run loops until the window is closed or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	logging.Info("frame loop started")
	defer func() {
		logging.Info("frame loop stopped after %d frames (%d skipped)", a.frames, a.skipped)
	}()
	for !a.window.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if err := a.tick(); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) tick() error {
	profiling.ResetFrame()
	start := time.Now()

	func() { defer profiling.Track("window.PollEvents")(); a.window.PollEvents() }()
	a.applyTuning()

	err := a.scene.UpdateAndRender()
	a.frames++
	idle := false
	switch {
	case errors.Is(err, scene.ErrFrameSkipped):
		a.skipped++
		idle = true
	case err != nil:
		a.failures++
		if a.failures >= MaxFailures {
			return fmt.Errorf("%d consecutive failed frames: %w", a.failures, err)
		}
	default:
		a.failures = 0
	}

	if d := time.Since(start); d > SlowFrame {
		logging.Debug("slow frame: %v. Top tasks: %s", d, profiling.TopN(5))
	}

	a.limiter.Wait(idle || a.window.Minimised())
	return nil
}

// applyTuning drains the channel and applies only the newest value.
func (a *App) applyTuning() {
	if a.tuning == nil {
		return
	}
	var (
		latest config.Tuning
		got    bool
	)
drain:
	for {
		select {
		case t, ok := <-a.tuning:
			if !ok {
				a.tuning = nil
				break drain
			}
			latest, got = t, true
		default:
			break drain
		}
	}
	if !got {
		return
	}
	if err := a.scene.ApplyTuning(latest); err != nil {
		logging.Warn("apply tuning: %v", err)
	}
}

// Frames returns the number of frames run and how many of them were skipped.
func (a *App) Frames() (total, skipped int) { return a.frames, a.skipped }
