package viz

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/algoviz/internal/playback"
)

// timerMsg is delivered when a scheduled advance comes due.
type timerMsg struct{ id uint64 }

// teaClock schedules playback advances as tea.Tick commands so that they
// run on the program's event loop. It is not safe for concurrent use; the
// model owns it.
type teaClock struct {
	next    uint64
	pending map[uint64]func()
	queued  []tea.Cmd
}

func newTeaClock() *teaClock {
	return &teaClock{pending: make(map[uint64]func())}
}

func (c *teaClock) AfterFunc(d time.Duration, f func()) playback.Timer {
	c.next++
	id := c.next
	c.pending[id] = f
	c.queued = append(c.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{id: id}
	}))
	return teaTimer{clock: c, id: id}
}

// fire runs the callback for id unless it was stopped.
func (c *teaClock) fire(id uint64) {
	f, ok := c.pending[id]
	if !ok {
		return
	}
	delete(c.pending, id)
	f()
}

// drain hands the ticks scheduled since the last call to the runtime.
func (c *teaClock) drain() tea.Cmd {
	if len(c.queued) == 0 {
		return nil
	}
	cmds := c.queued
	c.queued = nil
	return tea.Batch(cmds...)
}

type teaTimer struct {
	clock *teaClock
	id    uint64
}

func (t teaTimer) Stop() bool {
	if _, ok := t.clock.pending[t.id]; !ok {
		return false
	}
	delete(t.clock.pending, t.id)
	return true
}
