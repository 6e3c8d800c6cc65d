package game

import (
	"time"

	"glade/internal/config"
)

// IdleFPS caps the loop while the window is minimised and no frames are drawn.
const IdleFPS = 30

// spinMargin is left to busy-waiting after the coarse sleep.
const spinMargin = 200 * time.Microsecond

// FPSLimiter paces the frame loop to config.GetFPSLimit.
type FPSLimiter struct {
	next time.Time

	limit func() int
	now   func() time.Time
	sleep func(time.Duration)
}

func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{
		limit: config.GetFPSLimit,
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Wait blocks until the next frame is due. Sleeping covers most of the wait
// and the last spinMargin is spun for precision on high caps. An idle loop is
// held to IdleFPS even when frames are otherwise unlimited.
func (f *FPSLimiter) Wait(idle bool) {
	limit := f.limit()
	if idle && (limit <= 0 || limit > IdleFPS) {
		limit = IdleFPS
	}
	if limit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(limit)
	if f.next.IsZero() {
		f.next = f.now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := f.next.Sub(f.now())
		if remaining <= 0 {
			break
		}
		if remaining > spinMargin {
			f.sleep(remaining - spinMargin)
		}
	}

	// Resync after a hitch instead of racing to catch up.
	if late := f.now().Sub(f.next); late > target {
		f.next = f.now().Add(target)
	}
}
