// Package logging is the process logger shared by the scene, its resources and
// the frame loop.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	once     sync.Once
	instance *log.Logger
)

func logger() *log.Logger {
	once.Do(func() {
		instance = log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    true,
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "glade",
			CallerOffset:    1,
		})
		instance.SetLevel(log.InfoLevel)
	})
	return instance
}

// SetLevel parses a level name ("debug", "info", "warn", "error") and applies
// it. Unknown names leave the level unchanged and return the parse error.
func SetLevel(name string) error {
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return err
	}
	logger().SetLevel(lvl)
	return nil
}

// SetOutput redirects log output, e.g. to io.Discard in tests.
func SetOutput(w io.Writer) {
	logger().SetOutput(w)
}

func Debug(msg string, args ...any) {
	logger().Debugf(msg, args...)
}

func Info(msg string, args ...any) {
	logger().Infof(msg, args...)
}

func Warn(msg string, args ...any) {
	logger().Warnf(msg, args...)
}

func Error(msg string, args ...any) {
	logger().Errorf(msg, args...)
}

// Fatal logs and exits the process.
func Fatal(msg string, args ...any) {
	logger().Fatalf(msg, args...)
}
