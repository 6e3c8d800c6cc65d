package game

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"glade/internal/config"
	"glade/internal/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	polls, closeAfter int
	minimised         bool
}

func (w *fakeWindow) ShouldClose() bool { return w.polls >= w.closeAfter }
func (w *fakeWindow) PollEvents()       { w.polls++ }
func (w *fakeWindow) Minimised() bool   { return w.minimised }

type fakeScene struct {
	frames  int
	errs    []error
	applied []config.Tuning
	log     []string
}

func (s *fakeScene) UpdateAndRender() error {
	s.frames++
	s.log = append(s.log, "frame")
	if len(s.errs) == 0 {
		return nil
	}
	err := s.errs[0]
	s.errs = s.errs[1:]
	return err
}

func (s *fakeScene) ApplyTuning(t config.Tuning) error {
	s.applied = append(s.applied, t)
	s.log = append(s.log, fmt.Sprintf("tuning %d", t.FPSLimit))
	return nil
}

func newTestApp(frames int) (*App, *fakeWindow, *fakeScene, *fakeTime) {
	w := &fakeWindow{closeAfter: frames}
	s := &fakeScene{}
	a := NewApp(w, s)
	limiter, c := newTestLimiter(0)
	a.limiter = limiter
	return a, w, s, c
}

func TestRunUntilWindowCloses(t *testing.T) {
	a, w, s, c := newTestApp(3)
	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, 3, w.polls)
	assert.Equal(t, 3, s.frames)
	assert.Empty(t, c.sleeps)

	total, skipped := a.Frames()
	assert.Equal(t, 3, total)
	assert.Zero(t, skipped)
}

func TestRunStopsOnCancel(t *testing.T) {
	a, _, s, _ := newTestApp(1000)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, a.Run(ctx))
	assert.Zero(t, s.frames)
}

func TestSkippedFramesIdle(t *testing.T) {
	a, _, s, c := newTestApp(2)
	s.errs = []error{scene.ErrFrameSkipped}
	require.NoError(t, a.Run(context.Background()))

	_, skipped := a.Frames()
	assert.Equal(t, 1, skipped)
	assert.Len(t, c.sleeps, 1, "only the skipped frame waits at the idle rate")
}

func TestFailuresAreToleratedThenFatal(t *testing.T) {
	lost := errors.New("present failed")

	a, _, s, _ := newTestApp(5)
	s.errs = []error{lost, lost, nil, lost}
	require.NoError(t, a.Run(context.Background()))

	a, _, s, _ = newTestApp(MaxFailures + 10)
	for range MaxFailures {
		s.errs = append(s.errs, lost)
	}
	err := a.Run(context.Background())
	assert.ErrorIs(t, err, lost)
	assert.Equal(t, MaxFailures, s.frames)
}

func TestTuningDrainedBeforeFrame(t *testing.T) {
	a, _, s, _ := newTestApp(2)
	ch := make(chan config.Tuning, 3)
	ch <- config.Tuning{FPSLimit: 30}
	ch <- config.Tuning{FPSLimit: 60}
	a.WatchTuning(ch)

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, []string{"tuning 60", "frame", "frame"}, s.log)
}

func TestClosedTuningChannel(t *testing.T) {
	a, _, s, _ := newTestApp(2)
	ch := make(chan config.Tuning)
	close(ch)
	a.WatchTuning(ch)

	require.NoError(t, a.Run(context.Background()))
	assert.Empty(t, s.applied)
	assert.Nil(t, a.tuning)
}
