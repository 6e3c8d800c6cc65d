// Package resource tracks owned GPU resources and releases them in reverse
// order of acquisition.
package resource

import (
	"glade/internal/gpu"
	"glade/internal/logging"

	"github.com/google/uuid"
)

// Handle identifies one entry in an Arena.
type Handle struct {
	ID   uuid.UUID
	Name string
}

type entry struct {
	handle  Handle
	release func()
}

// Arena owns a stack of release functions. The zero value is ready to use.
type Arena struct {
	entries []entry
}

// Add takes ownership of r. A nil resource is ignored and yields a zero Handle.
func (a *Arena) Add(name string, r gpu.Resource) Handle {
	if r == nil {
		return Handle{}
	}
	return a.AddFunc(name, r.Release)
}

// AddFunc records an arbitrary release function.
func (a *Arena) AddFunc(name string, release func()) Handle {
	h := Handle{ID: uuid.New(), Name: name}
	a.entries = append(a.entries, entry{handle: h, release: release})
	return h
}

// Len returns the number of entries still owned.
func (a *Arena) Len() int {
	return len(a.entries)
}

// Handles returns the owned handles in acquisition order.
func (a *Arena) Handles() []Handle {
	out := make([]Handle, len(a.entries))
	for i, e := range a.entries {
		out[i] = e.handle
	}
	return out
}

// Release runs every release function, newest first, and empties the arena.
// Calling it again is a no-op.
func (a *Arena) Release() {
	for i := len(a.entries) - 1; i >= 0; i-- {
		e := a.entries[i]
		logging.Debug("release %s (%s)", e.handle.Name, e.handle.ID)
		e.release()
	}
	a.entries = nil
}
