package viz

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/algoviz/internal/classify"
	"github.com/san-kum/algoviz/internal/frames"
	"github.com/san-kum/algoviz/internal/playback"
)

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// tick fires the most recently scheduled advance.
func tick(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = send(t, m, timerMsg{id: m.clock.next})
	return m
}

func started(t *testing.T, cat classify.Category) (Model, *frames.Sequence) {
	t.Helper()
	seq, err := frames.Materialize(cat)
	require.NoError(t, err)
	m := NewModel(Options{ShowConsole: true})
	require.NotNil(t, m.Start(seq))
	return m, seq
}

func TestModelAutoAdvanceToCompletion(t *testing.T) {
	m, seq := started(t, classify.GraphBFS)
	require.Len(t, m.clock.pending, 1)

	for i := 1; i < seq.Len(); i++ {
		m = tick(t, m)
		require.Equal(t, i, m.ctl.Status().Index)
	}
	require.Equal(t, playback.Complete, m.ctl.Phase())
	require.Empty(t, m.clock.pending)

	console := m.Console()
	require.Contains(t, console[0], "breadth-first search")
	require.Equal(t, seq.Console(), console[1:])
	require.Contains(t, m.View(), "COMPLETE")
}

func TestModelStaleTickIgnored(t *testing.T) {
	m, _ := started(t, classify.Stack)
	stale := m.clock.next

	m, _ = send(t, m, key(" "))
	require.Equal(t, playback.Paused, m.ctl.Phase())
	require.Empty(t, m.clock.pending)

	m, _ = send(t, m, timerMsg{id: stale})
	require.Equal(t, 0, m.ctl.Status().Index)

	m, cmd := send(t, m, key(" "))
	require.NotNil(t, cmd)
	require.Len(t, m.clock.pending, 1)
}

func TestModelKeys(t *testing.T) {
	m, seq := started(t, classify.ArraySort)

	m, _ = send(t, m, key("right"))
	m, _ = send(t, m, key("l"))
	require.Equal(t, 2, m.ctl.Status().Index)

	m, _ = send(t, m, key("left"))
	require.Equal(t, 1, m.ctl.Status().Index)

	m, _ = send(t, m, key("G"))
	require.Equal(t, seq.Len()-1, m.ctl.Status().Index)

	m, _ = send(t, m, key("r"))
	st := m.ctl.Status()
	require.Equal(t, 0, st.Index)
	require.True(t, st.Paused)

	m, _ = send(t, m, key("+"))
	require.Equal(t, 1.5, m.ctl.Speed())
	for i := 0; i < 5; i++ {
		m, _ = send(t, m, key("-"))
	}
	require.Equal(t, playback.MinSpeed, m.ctl.Speed())

	m, _ = send(t, m, key("t"))
	require.Equal(t, "retro", m.styles.theme.Name)

	m, _ = send(t, m, key("c"))
	require.False(t, m.showConsole)

	m, _ = send(t, m, key("?"))
	require.Contains(t, m.View(), "KEYBOARD SHORTCUTS")
}

func TestModelEscTearsDown(t *testing.T) {
	m, _ := started(t, classify.Queue)
	m, cmd := send(t, m, key("esc"))
	require.Equal(t, playback.Idle, m.ctl.Phase())
	require.IsType(t, BackMsg{}, cmd())

	m.standalone = true
	_, cmd = send(t, m, key("esc"))
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelStartRejectsEmpty(t *testing.T) {
	m := NewModel(Options{})
	require.Nil(t, m.Start(nil))
	require.Contains(t, m.Console()[0], "error")
	require.Contains(t, m.View(), "nothing is playing")
}

func TestModelSpeedAndInterval(t *testing.T) {
	m := NewModel(Options{Speed: 2, Interval: 400 * time.Millisecond})
	require.Equal(t, 200*time.Millisecond, m.ctl.Interval())
}

func TestTeaClockStop(t *testing.T) {
	c := newTeaClock()
	fired := 0
	tm := c.AfterFunc(time.Second, func() { fired++ })
	require.NotNil(t, c.drain())
	require.Nil(t, c.drain())

	require.True(t, tm.Stop())
	require.False(t, tm.Stop())
	c.fire(1)
	require.Zero(t, fired)

	c.AfterFunc(time.Second, func() { fired++ })
	c.fire(2)
	c.fire(2)
	require.Equal(t, 1, fired)
}

func TestModelConsoleOnTerminalFrameWhilePaused(t *testing.T) {
	m, seq := started(t, classify.GraphBFS)

	m, _ = send(t, m, key(" "))
	m, _ = send(t, m, key("G"))
	st := m.ctl.Status()
	require.Equal(t, playback.Paused, st.Phase())
	require.Equal(t, seq.Len()-1, st.Index)
	require.Equal(t, seq.Console(), m.Console()[1:])

	m, _ = send(t, m, key("g"))
	m, _ = send(t, m, key("G"))
	require.Len(t, m.Console(), 1+len(seq.Console()))
}

func TestModelTeardownClearsConsole(t *testing.T) {
	m, _ := started(t, classify.Stack)
	m, _ = send(t, m, key("esc"))
	require.Empty(t, m.Console())
	require.Equal(t, -1, m.sess.lastSeen)
	require.False(t, m.sess.printed)
}
