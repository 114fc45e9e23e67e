package viz

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/san-kum/algoviz/internal/frames"
	"github.com/san-kum/algoviz/internal/playback"
)

const (
	defaultWidth   = 100
	defaultHeight  = 30
	consoleHeight  = 6
	sidePanelWidth = 34
)

// BackMsg is sent when the user leaves the visualization.
type BackMsg struct{}

// session holds state shared by every copy of a Model.
type session struct {
	console  []string
	printed  bool
	lastSeen int
}

// Model is the visualization screen. It drives a playback controller and
// renders the frame at the controller's current index.
type Model struct {
	ctl         *playback.Controller
	clock       *teaClock
	logger      *log.Logger
	sess        *session
	styles      styles
	canvas      *Canvas
	console     viewport.Model
	width       int
	height      int
	showConsole bool
	showHelp    bool
	standalone  bool
}

// Options configure a visualization Model.
type Options struct {
	Theme       string
	Speed       float64
	Interval    time.Duration
	Logger      *log.Logger
	ShowConsole bool
	// Standalone makes esc quit the program instead of sending BackMsg.
	Standalone bool
}

func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := newTeaClock()
	popts := []playback.Option{playback.WithClock(clock), playback.WithLogger(logger)}
	if opts.Speed > 0 {
		popts = append(popts, playback.WithSpeed(opts.Speed))
	}
	if opts.Interval > 0 {
		popts = append(popts, playback.WithBaseInterval(opts.Interval))
	}
	m := Model{
		ctl:         playback.New(popts...),
		clock:       clock,
		logger:      logger,
		sess:        &session{lastSeen: -1},
		styles:      newStyles(GetTheme(opts.Theme)),
		canvas:      NewFrameCanvas(),
		console:     viewport.New(defaultWidth, consoleHeight),
		width:       defaultWidth,
		height:      defaultHeight,
		showConsole: opts.ShowConsole,
		standalone:  opts.Standalone,
	}
	sess := m.sess
	m.ctl.Subscribe(func(st playback.Status) {
		if st.Last() && !sess.printed {
			sess.printed = true
			sess.console = append(sess.console, st.Sequence.Console()...)
		}
	})
	return m
}

// Controller exposes the underlying playback controller.
func (m Model) Controller() *playback.Controller { return m.ctl }

// Console returns the console lines accumulated so far.
func (m Model) Console() []string {
	out := make([]string, len(m.sess.console))
	copy(out, m.sess.console)
	return out
}

// Start begins playing seq from the first frame.
func (m *Model) Start(seq *frames.Sequence) tea.Cmd {
	if seq.Len() == 0 {
		m.logf("error: %v", playback.ErrInvalidSequence)
		return nil
	}
	m.sess.printed = false
	m.logf("> running %s (%d frames)", seq.Category().Title(), seq.Len())
	if err := m.ctl.Start(seq); err != nil {
		m.logf("error: %v", err)
		return nil
	}
	m.logger.Info("run started", "category", seq.Category(), "frames", seq.Len())
	return m.clock.drain()
}

func (m *Model) logf(format string, args ...any) {
	m.sess.console = append(m.sess.console, fmt.Sprintf(format, args...))
}

func (m Model) Init() tea.Cmd {
	return m.clock.drain()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.console.Width = msg.Width
	case timerMsg:
		m.clock.fire(msg.id)
	case tea.KeyMsg:
		if cmd, done := m.handleKey(msg); done {
			return m, cmd
		}
	}
	m.syncConsole()
	return m, m.clock.drain()
}

// handleKey applies a key. done reports that cmd should be returned as is.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.teardown()
		return tea.Quit, true
	case "esc":
		m.teardown()
		if m.standalone {
			return tea.Quit, true
		}
		return func() tea.Msg { return BackMsg{} }, true
	case " ", "p":
		m.ctl.TogglePause()
	case "right", "l":
		m.ctl.StepForward()
	case "left", "h":
		m.ctl.StepBackward()
	case "home", "g":
		_ = m.ctl.Seek(0)
	case "end", "G":
		_ = m.ctl.Seek(m.ctl.Status().Total() - 1)
	case "r":
		m.ctl.Reset()
	case "+", "=":
		m.ctl.Faster()
	case "-", "_":
		m.ctl.Slower()
	case "c":
		m.showConsole = !m.showConsole
	case "t":
		m.styles = newStyles(NextTheme(m.styles.theme.Name))
	case "?":
		m.showHelp = !m.showHelp
	case "up", "k", "down", "j", "pgup", "pgdown":
		var cmd tea.Cmd
		m.console, cmd = m.console.Update(msg)
		return tea.Batch(cmd, m.clock.drain()), true
	}
	return nil, false
}

// teardown discards the run and its console output.
func (m *Model) teardown() {
	m.ctl.Teardown()
	*m.sess = session{lastSeen: -1}
	m.console.SetContent("")
}

func (m *Model) syncConsole() {
	if len(m.sess.console) == m.sess.lastSeen {
		return
	}
	m.sess.lastSeen = len(m.sess.console)
	m.console.SetContent(strings.Join(m.sess.console, "\n"))
	m.console.GotoBottom()
}

func (m Model) status(st playback.Status) string {
	switch st.Phase() {
	case playback.Playing:
		return m.styles.playing.Render("▶ PLAYING")
	case playback.Paused:
		return m.styles.paused.Render("⏸ PAUSED")
	case playback.Complete:
		return m.styles.complete.Render("■ COMPLETE")
	}
	return m.styles.idle.Render("IDLE")
}

func (m Model) View() string {
	st := m.ctl.Status()
	s := m.styles
	if st.Phase() == playback.Idle {
		return s.idle.Render("\n  nothing is playing. press esc to return to the editor.\n")
	}
	frame, _ := st.Frame()
	Draw(m.canvas, frame.State)

	var head strings.Builder
	head.WriteString(s.title.Render(strings.ToUpper(st.Sequence.Category().Title())))
	head.WriteString("  " + m.status(st))
	head.WriteString(s.hint.Render(fmt.Sprintf("  step %d / %d  speed %.1fx", st.Index+1, st.Total(), st.Speed)))

	canvasView := lipgloss.NewStyle().Padding(1, 2).Render(s.canvas(m.canvas))

	var side strings.Builder
	side.WriteString(s.header.Render("STATE") + "\n")
	for _, d := range Details(frame.State) {
		side.WriteString(s.label.Render(d.Name) + s.value.Render(d.Value) + "\n")
	}
	side.WriteString("\n" + s.hint.Render(ProgressBar(st.Index+1, st.Total(), sidePanelWidth-6)) + "\n")
	if op := frame.Operation; op != nil {
		side.WriteString("\n" + s.label.Render("Operation") + s.value.Render(op.Kind) + "\n")
	}
	sideView := s.panel.Width(sidePanelWidth).Render(side.String())

	var b strings.Builder
	b.WriteString(head.String() + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, canvasView, sideView) + "\n")
	b.WriteString(s.narration.Render("  "+frame.Describe()) + "\n\n")
	if m.showConsole {
		b.WriteString(s.console.Render(m.console.View()) + "\n")
	}
	b.WriteString(s.hints("space", "pause", "h/l", "step", "r", "reset", "+/-", "speed", "c", "console", "t", "theme", "?", "help", "esc", "back"))

	if m.showHelp {
		return helpOverlay + "\n\n" + b.String()
	}
	return b.String()
}

const helpOverlay = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space/P  - Pause/Resume playback    ║
║  L/Right  - Step forward             ║
║  H/Left   - Step backward            ║
║  G/Home   - First frame              ║
║  Shift+G  - Last frame               ║
║  R        - Reset to first frame     ║
║  +/-      - Speed up/slow down       ║
║  C        - Toggle console           ║
║  J/K      - Scroll console           ║
║  T        - Cycle themes             ║
║  Esc      - Stop and go back         ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`
