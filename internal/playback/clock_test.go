package playback_test

import (
	"time"

	"github.com/san-kum/algoviz/internal/playback"
)

// capturingClock records every callback so a test can fire one after it
// was stopped.
type capturingClock struct {
	playback.ManualClock
	callbacks []func()
}

func (c *capturingClock) AfterFunc(d time.Duration, f func()) playback.Timer {
	c.callbacks = append(c.callbacks, f)
	return c.ManualClock.AfterFunc(d, f)
}
