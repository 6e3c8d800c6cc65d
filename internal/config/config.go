package config

import "sync"

// RuntimeSettings holds values the frame loop reads every frame and that may
// change while it runs.
type RuntimeSettings struct {
	mu       sync.RWMutex
	fpsLimit int // 0 means unlimited
}

var globalRuntimeSettings = &RuntimeSettings{
	fpsLimit: 0,
}

// GetFPSLimit returns the frame cap, or 0 when frames are not limited.
func GetFPSLimit() int {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.fpsLimit
}

// SetFPSLimit sets the frame cap. Values <= 0 disable the cap; positive values
// are clamped to [MinFPSLimit, MaxFPSLimit].
func SetFPSLimit(limit int) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()

	switch {
	case limit <= 0:
		limit = 0
	case limit < MinFPSLimit:
		limit = MinFPSLimit
	case limit > MaxFPSLimit:
		limit = MaxFPSLimit
	}
	globalRuntimeSettings.fpsLimit = limit
}

const (
	MinFPSLimit = 15
	MaxFPSLimit = 480
)
