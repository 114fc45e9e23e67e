package playback

import (
	"sort"
	"sync"
	"time"
)

// Clock schedules a callback after a delay.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending callback. Stop reports whether it prevented the call.
type Timer interface {
	Stop() bool
}

// RealClock schedules on the runtime timer. Callbacks run on their own
// goroutine.
type RealClock struct{}

func (RealClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualClock is a virtual clock advanced explicitly. Callbacks run
// synchronously inside Advance, in deadline order. The zero value is ready
// to use.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	clock *ManualClock
	at    time.Duration
	seq   int
	f     func()
}

func (c *ManualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &manualTimer{clock: c, at: c.now + d, seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range c.timers {
		if p == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Now is the virtual time elapsed since the clock was created.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending is the number of scheduled callbacks.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// Advance moves time forward by d, firing every callback that comes due,
// including ones scheduled by earlier callbacks. Time never moves backwards;
// a negative d is treated as zero.
func (c *ManualClock) Advance(d time.Duration) {
	d = max(d, 0)
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		sort.Slice(c.timers, func(i, j int) bool {
			if c.timers[i].at != c.timers[j].at {
				return c.timers[i].at < c.timers[j].at
			}
			return c.timers[i].seq < c.timers[j].seq
		})
		if len(c.timers) == 0 || c.timers[0].at > target {
			c.now = target
			c.mu.Unlock()
			return
		}
		t := c.timers[0]
		c.timers = c.timers[1:]
		c.now = t.at
		c.mu.Unlock()
		t.f()
	}
}

// RunUntilIdle jumps to each next deadline until nothing is scheduled or
// limit jumps were made. It returns the number of jumps.
func (c *ManualClock) RunUntilIdle(limit int) int {
	fired := 0
	for fired < limit {
		c.mu.Lock()
		if len(c.timers) == 0 {
			c.mu.Unlock()
			break
		}
		next := c.timers[0].at
		for _, t := range c.timers[1:] {
			next = min(next, t.at)
		}
		c.mu.Unlock()
		c.Advance(next - c.Now())
		fired++
	}
	return fired
}
