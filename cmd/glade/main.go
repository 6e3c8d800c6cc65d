// Command glade runs the terrain and foliage demo scene in a window.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"runtime"

	"glade/internal/config"
	"glade/internal/game"
	"glade/internal/gpu/glbackend"
	"glade/internal/logging"
	"glade/internal/scene"

	"github.com/xlab/closer"
)

func init() {
	// GL and GLFW calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	path := flag.String("config", "assets/scene.toml", "scene configuration file")
	flag.Parse()

	cfg, err := loadConfig(*path)
	if err != nil {
		logging.Fatal("%v", err)
	}
	if err := logging.SetLevel(cfg.Log.Level); err != nil {
		logging.Warn("log level: %v", err)
	}
	config.SetFPSLimit(cfg.Clock.FPSLimit)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	closer.Bind(func() {
		cancel()
		<-done
	})

	err = run(ctx, cfg, *path)
	close(done)
	if err != nil {
		logging.Error("%v", err)
		closer.Exit(1)
	}
	closer.Close()
}

// loadConfig reads the scene file, falling back to the built-in scene when it
// does not exist.
func loadConfig(path string) (*config.Scene, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		logging.Warn("%s not found, using the built-in scene", path)
		return config.Default(), nil
	}
	return cfg, err
}

// run owns every GL object. It returns after the window closes or ctx is
// cancelled, with everything released on the main thread.
func run(ctx context.Context, cfg *config.Scene, path string) error {
	win, err := glbackend.OpenWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer win.Close()

	sys, err := glbackend.NewSystem(win)
	if err != nil {
		return err
	}
	defer sys.Close()

	s, err := scene.New(sys, win, cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	bindInput(win.GLFW(), s)

	app := game.NewApp(win, s)
	if _, statErr := os.Stat(path); statErr == nil {
		w, err := config.Watch(ctx, path)
		if err != nil {
			logging.Warn("live tuning disabled: %v", err)
		} else {
			defer w.Close()
			app.WatchTuning(w.Updates())
			logging.Info("watching %s", path)
		}
	}
	return app.Run(ctx)
}
