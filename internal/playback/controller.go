package playback

import (
	"io"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/algoviz/internal/frames"
)

const (
	DefaultSpeed    = 1.0
	MinSpeed        = 0.5
	MaxSpeed        = 3.0
	SpeedStep       = 0.5
	DefaultInterval = time.Second
)

type Option func(*Controller)

func WithClock(c Clock) Option {
	return func(ctl *Controller) { ctl.clock = c }
}

func WithSpeed(s float64) Option {
	return func(ctl *Controller) { ctl.speed = s }
}

func WithLogger(l *log.Logger) Option {
	return func(ctl *Controller) { ctl.logger = l }
}

// WithBaseInterval sets the per-frame delay at speed 1.
func WithBaseInterval(d time.Duration) Option {
	return func(ctl *Controller) {
		if d > 0 {
			ctl.base = d
		}
	}
}

// Controller is safe for concurrent use. Subscribers are called after the
// lock is released, in registration order, with the snapshot that
// resulted from the change.
type Controller struct {
	mu     sync.Mutex
	clock  Clock
	logger *log.Logger
	base   time.Duration

	seq     *frames.Sequence
	index   int
	running bool
	paused  bool
	speed   float64

	gen   uint64
	timer Timer

	subs    map[int]func(Status)
	nextSub int
}

func New(opts ...Option) *Controller {
	c := &Controller{
		clock: RealClock{},
		base:  DefaultInterval,
		speed: DefaultSpeed,
		subs:  make(map[int]func(Status)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	c.speed = c.clampSpeed(c.speed)
	return c
}

// Start begins a fresh run at index 0, replacing any active sequence.
func (c *Controller) Start(seq *frames.Sequence) error {
	if seq.Len() == 0 {
		c.logger.Warn("start rejected", "err", ErrInvalidSequence)
		return ErrInvalidSequence
	}
	c.update(func() bool {
		c.seq = seq
		c.index = 0
		c.running = true
		c.paused = false
		c.logger.Debug("start", "category", seq.Category(), "frames", seq.Len())
		return true
	})
	return nil
}

func (c *Controller) Pause() {
	c.update(func() bool {
		if c.paused {
			return false
		}
		c.paused = true
		c.logger.Debug("pause", "index", c.index)
		return true
	})
}

// Resume is a no-op unless a run is active and paused.
func (c *Controller) Resume() {
	c.update(func() bool {
		if !c.running || !c.paused {
			return false
		}
		c.paused = false
		c.logger.Debug("resume", "index", c.index)
		return true
	})
}

// TogglePause resumes a paused run and pauses a playing one.
func (c *Controller) TogglePause() {
	c.mu.Lock()
	paused := c.paused
	c.mu.Unlock()
	if paused {
		c.Resume()
		return
	}
	c.Pause()
}

func (c *Controller) StepForward() {
	c.update(func() bool {
		if c.index >= c.seq.Last() {
			return false
		}
		c.index++
		return true
	})
}

func (c *Controller) StepBackward() {
	c.update(func() bool {
		if c.index <= 0 {
			return false
		}
		c.index--
		return true
	})
}

// Seek moves to frame i of the active sequence.
func (c *Controller) Seek(i int) error {
	var err error
	c.update(func() bool {
		if i < 0 || i >= c.seq.Len() {
			err = ErrOutOfRangeIndex
			return false
		}
		if i == c.index {
			return false
		}
		c.index = i
		return true
	})
	return err
}

// Reset rewinds to frame 0 and pauses. The sequence and running flag are
// kept.
func (c *Controller) Reset() {
	c.update(func() bool {
		if c.index == 0 && c.paused {
			return false
		}
		c.index = 0
		c.paused = true
		c.logger.Debug("reset")
		return true
	})
}

// Teardown ends the run and discards the sequence.
func (c *Controller) Teardown() {
	c.update(func() bool {
		if c.seq == nil && !c.running && !c.paused && c.index == 0 {
			return false
		}
		c.seq = nil
		c.index = 0
		c.running = false
		c.paused = false
		c.logger.Debug("teardown")
		return true
	})
}

// SetSpeed changes the multiplier. Values outside [MinSpeed, MaxSpeed]
// are clamped.
func (c *Controller) SetSpeed(m float64) {
	c.update(func() bool {
		m = c.clampSpeed(m)
		if m == c.speed {
			return false
		}
		c.speed = m
		c.logger.Debug("speed", "multiplier", m)
		return true
	})
}

func (c *Controller) Faster() { c.SetSpeed(c.Speed() + SpeedStep) }
func (c *Controller) Slower() { c.SetSpeed(c.Speed() - SpeedStep) }

func (c *Controller) Speed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) Phase() Phase {
	return c.Status().Phase()
}

func (c *Controller) Frame() (frames.Frame, bool) {
	return c.Status().Frame()
}

// Subscribe registers fn for change notifications and returns a function
// that removes it.
func (c *Controller) Subscribe(fn func(Status)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

// Interval is the auto-advance delay at the current speed.
func (c *Controller) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval()
}

func (c *Controller) interval() time.Duration {
	return time.Duration(float64(c.base) / c.speed)
}

func (c *Controller) clampSpeed(m float64) float64 {
	switch {
	case math.IsNaN(m):
		c.logger.Warn("speed is not a number, using default", "default", DefaultSpeed)
		return DefaultSpeed
	case m < MinSpeed:
		c.logger.Warn("speed below range, clamping", "requested", m, "min", MinSpeed)
		return MinSpeed
	case m > MaxSpeed:
		c.logger.Warn("speed above range, clamping", "requested", m, "max", MaxSpeed)
		return MaxSpeed
	}
	return m
}

// update applies fn under the lock. When fn reports a change the pending
// advance is cancelled, a fresh one is scheduled if still playing, and
// subscribers are notified.
func (c *Controller) update(fn func() bool) {
	c.mu.Lock()
	if !fn() {
		c.mu.Unlock()
		return
	}
	c.reschedule()
	st := c.snapshot()
	subs := c.subscribers()
	c.mu.Unlock()

	for _, s := range subs {
		s(st)
	}
}

func (c *Controller) reschedule() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if !c.running || c.paused || c.index >= c.seq.Last() {
		return
	}
	gen := c.gen
	c.timer = c.clock.AfterFunc(c.interval(), func() { c.advance(gen) })
}

func (c *Controller) advance(gen uint64) {
	c.update(func() bool {
		if gen != c.gen {
			c.logger.Debug("stale advance dropped", "gen", gen, "current", c.gen)
			return false
		}
		c.timer = nil
		if !c.running || c.paused || c.index >= c.seq.Last() {
			return false
		}
		c.index++
		return true
	})
}

func (c *Controller) snapshot() Status {
	return Status{
		Sequence:  c.seq,
		Index:     c.index,
		Running:   c.running,
		Paused:    c.paused,
		Speed:     c.speed,
		Scheduled: c.timer != nil,
	}
}

func (c *Controller) subscribers() []func(Status) {
	if len(c.subs) == 0 {
		return nil
	}
	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]func(Status), len(ids))
	for i, id := range ids {
		out[i] = c.subs[id]
	}
	return out
}
