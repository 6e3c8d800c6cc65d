// Package profiling accumulates per-frame CPU time by name.
//
//	defer profiling.Track("scene.Update")()
package profiling

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
	frameCounts = make(map[string]int)
)

// Track returns a stop function that adds the time since Track to name.
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		frameCounts[name]++
		mu.Unlock()
	}
}

// ResetFrame clears the totals. The frame loop calls it once per frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	clear(frameCounts)
	mu.Unlock()
}

// Sample is the accumulated time of one name within the current frame.
type Sample struct {
	Name  string
	Total time.Duration
	Calls int
}

// Snapshot returns the current frame's samples, slowest first.
func Snapshot() []Sample {
	mu.Lock()
	out := make([]Sample, 0, len(frameTotals))
	for k, v := range frameTotals {
		out = append(out, Sample{Name: k, Total: v, Calls: frameCounts[k]})
	}
	mu.Unlock()

	slices.SortFunc(out, func(a, b Sample) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// TopN formats the n slowest samples, e.g.
// "renderer.pass.foliage:4.2ms x80, scene.Update:0.3ms".
func TopN(n int) string {
	samples := Snapshot()
	if n < len(samples) {
		samples = samples[:n]
	}
	parts := make([]string, 0, len(samples))
	for _, s := range samples {
		part := fmt.Sprintf("%s:%.1fms", s.Name, float64(s.Total.Microseconds())/1000)
		if s.Calls > 1 {
			part += fmt.Sprintf(" x%d", s.Calls)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}
