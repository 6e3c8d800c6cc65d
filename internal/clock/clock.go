// Package clock is the game clock the frame loop ticks once per frame.
package clock

import (
	"time"

	"glade/internal/logging"
)

// window is the number of frames averaged by AverageFPS and AverageSPF.
const window = 30

// Option configures a Clock.
type Option func(*Clock)

// WithNow replaces the wall-clock source.
func WithNow(now func() time.Time) Option {
	return func(c *Clock) { c.now = now }
}

// WithStatsDelay ignores frames for the given time after Start when computing
// averages, so start-up hitches do not skew them.
func WithStatsDelay(d time.Duration) Option {
	return func(c *Clock) { c.statsDelay = d }
}

// Clock measures game time. Game time only advances between Start and Stop;
// actual time keeps running from construction.
type Clock struct {
	now        func() time.Time
	statsDelay time.Duration

	created time.Time
	started time.Time
	last    time.Time
	running bool

	delta   float64
	elapsed float64

	samples [window]float64
	count   int
	next    int
}

func New(opts ...Option) *Clock {
	c := &Clock{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	c.created = c.now()
	return c
}

// Start resumes game time. Elapsed game time is preserved across Stop/Start.
func (c *Clock) Start() {
	if c.running {
		return
	}
	c.running = true
	c.started = c.now()
	c.last = c.started
}

// Stop freezes game time. Subsequent ticks report a zero delta.
func (c *Clock) Stop() {
	c.running = false
	c.delta = 0
}

func (c *Clock) Running() bool { return c.running }

// Tick advances the clock by the wall time since the previous tick.
func (c *Clock) Tick() {
	if !c.running {
		c.delta = 0
		return
	}
	now := c.now()
	c.delta = now.Sub(c.last).Seconds()
	if c.delta < 0 {
		c.delta = 0
	}
	c.last = now
	c.elapsed += c.delta

	if now.Sub(c.started) < c.statsDelay || c.delta == 0 {
		return
	}
	c.samples[c.next] = c.delta
	c.next = (c.next + 1) % window
	if c.count < window {
		c.count++
	}
}

// Delta returns the game time of the last tick in seconds.
func (c *Clock) Delta() float64 { return c.delta }

// Elapsed returns the accumulated game time in seconds.
func (c *Clock) Elapsed() float64 { return c.elapsed }

// ActualElapsed returns wall time since the clock was created.
func (c *Clock) ActualElapsed() float64 {
	return c.now().Sub(c.created).Seconds()
}

// AverageSPF returns the mean seconds per frame over the last window frames.
func (c *Clock) AverageSPF() float64 {
	if c.count == 0 {
		return 0
	}
	total := 0.0
	for i := 0; i < c.count; i++ {
		total += c.samples[i]
	}
	return total / float64(c.count)
}

func (c *Clock) AverageFPS() float64 {
	spf := c.AverageSPF()
	if spf == 0 {
		return 0
	}
	return 1 / spf
}

// ReportTimingData logs wall and game time with the frame averages.
func (c *Clock) ReportTimingData() {
	logging.Info("actual time %.1fs, game time %.1fs, fps %.1f, spf %.4f",
		c.ActualElapsed(), c.elapsed, c.AverageFPS(), c.AverageSPF())
}
