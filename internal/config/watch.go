package config

import (
	"context"
	"fmt"
	"path/filepath"

	"glade/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// Tuning is the subset of a scene that may change while it runs.
type Tuning struct {
	Light       Light
	Wind        [4]float32
	Grass       Grass
	ClearColour [4]float32
	LogLevel    string
	FPSLimit    int
}

// Tuning extracts the live-adjustable values.
func (s *Scene) Tuning() Tuning {
	return Tuning{
		Light:       s.Light,
		Wind:        s.Wind,
		Grass:       s.Grass,
		ClearColour: s.ClearColour,
		LogLevel:    s.Log.Level,
		FPSLimit:    s.Clock.FPSLimit,
	}
}

// Watcher reloads a scene file whenever it changes and publishes its Tuning.
type Watcher struct {
	path    string
	fs      *fsnotify.Watcher
	updates chan Tuning
	done    chan struct{}
}

// Watch starts watching path. The watcher runs until ctx is cancelled or Close
// is called. Only the newest pending Tuning is kept.
func Watch(ctx context.Context, path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create config watcher: %w", err)
	}
	// Editors often replace files instead of writing them, so watch the
	// directory and filter by name.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("could not watch %s: %w", path, err)
	}

	w := &Watcher{
		path:    abs,
		fs:      fsw,
		updates: make(chan Tuning, 1),
		done:    make(chan struct{}),
	}
	go w.run(ctx)
	return w, nil
}

// Updates delivers reloaded tuning values.
func (w *Watcher) Updates() <-chan Tuning {
	return w.updates
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			w.fs.Close()
			return
		case e, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path || !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				logging.Warn("ignoring config change: %v", err)
				continue
			}
			w.publish(cfg.Tuning())
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logging.Warn("config watcher: %v", err)
		}
	}
}

func (w *Watcher) publish(t Tuning) {
	select {
	case <-w.updates:
	default:
	}
	w.updates <- t
}
