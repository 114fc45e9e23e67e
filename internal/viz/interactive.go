package viz

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/san-kum/algoviz/internal/classify"
	"github.com/san-kum/algoviz/internal/frames"
	"github.com/san-kum/algoviz/internal/storage"
	"github.com/san-kum/algoviz/internal/templates"
)

var errEmptySource = errors.New("nothing to run: the editor is empty")

const (
	screenEditor = iota
	screenVisual
)

// AppOptions configure the interactive editor.
type AppOptions struct {
	Theme       string
	Language    string
	Speed       float64
	Interval    time.Duration
	ShowConsole bool
	Source      string
	Logger      *log.Logger
	// Store records each run when set.
	Store *storage.Store
}

type model struct {
	screen    int
	editor    textarea.Model
	language  string
	names     []string
	template  int
	live      Model
	store     *storage.Store
	logger    *log.Logger
	lastRunID string
	err       error
	width     int
	height    int
}

func NewInteractiveApp(opts AppOptions) *model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ed := textarea.New()
	ed.Placeholder = "paste an algorithm, or press ctrl+t for a template"
	ed.ShowLineNumbers = true
	ed.CharLimit = 0
	ed.MaxHeight = 0
	ed.SetWidth(defaultWidth - sidePanelWidth - 4)
	ed.SetHeight(defaultHeight - 8)
	ed.Focus()

	m := &model{
		screen:   screenEditor,
		editor:   ed,
		template: -1,
		store:    opts.Store,
		logger:   logger,
		width:    defaultWidth,
		height:   defaultHeight,
		live: NewModel(Options{
			Theme:       opts.Theme,
			Speed:       opts.Speed,
			Interval:    opts.Interval,
			Logger:      logger,
			ShowConsole: opts.ShowConsole,
		}),
	}
	m.setLanguage(opts.Language)
	if opts.Source != "" {
		m.editor.SetValue(opts.Source)
	}
	return m
}

func (m *model) setLanguage(name string) {
	lang, err := templates.Lookup(name)
	if err != nil {
		lang, _ = templates.Lookup(templates.Languages()[0])
	}
	m.language = lang.Name
	m.names, _ = templates.Names(lang.Name)
	m.template = -1
}

func (m model) Init() tea.Cmd { return textarea.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.editor.SetWidth(max(msg.Width-sidePanelWidth-4, 20))
		m.editor.SetHeight(max(msg.Height-8, 5))
		return m.updateLive(msg)
	case timerMsg:
		return m.updateLive(msg)
	case BackMsg:
		m.screen = screenEditor
		return m, m.editor.Focus()
	case tea.KeyMsg:
		if m.screen == screenVisual {
			return m.updateLive(msg)
		}
		return m.editorKey(msg)
	}
	if m.screen == screenEditor {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateLive(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.live.Update(msg)
	m.live = next.(Model)
	return m, cmd
}

func (m model) editorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+r":
		return m.run()
	case "ctrl+t":
		if len(m.names) > 0 {
			m.template = (m.template + 1) % len(m.names)
			src, err := templates.Get(m.language, m.names[m.template])
			m.err = err
			if err == nil {
				m.editor.SetValue(src)
			}
		}
		return m, nil
	case "ctrl+l":
		next := templates.Languages()
		for i, l := range next {
			if l == m.language {
				m.setLanguage(next[(i+1)%len(next)])
				break
			}
		}
		return m, nil
	case "ctrl+x":
		m.editor.Reset()
		m.template = -1
		m.err = nil
		return m, nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// run classifies the editor text, materializes its frames and starts
// playback.
func (m model) run() (tea.Model, tea.Cmd) {
	src := m.editor.Value()
	if strings.TrimSpace(src) == "" {
		m.err = errEmptySource
		return m, nil
	}
	cat, rule := classify.Explain(src)
	seq, err := frames.Materialize(cat)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.logger.Debug("classified", "category", cat, "rule", rule)

	if m.store != nil {
		id, err := m.store.Save(storage.Run{Source: src, Language: m.language, Speed: m.live.ctl.Speed(), Sequence: seq})
		if err != nil {
			m.logger.Error("save run", "err", err)
		} else {
			m.lastRunID = id
		}
	}

	m.editor.Blur()
	m.screen = screenVisual
	cmd := m.live.Start(seq)
	return m, cmd
}

func (m model) View() string {
	if m.screen == screenVisual {
		return m.live.View()
	}
	return m.viewEditor()
}

func (m model) viewEditor() string {
	s := m.live.styles
	src := m.editor.Value()

	var b strings.Builder
	b.WriteString("  " + GradientText("ALGOVIZ", s.theme.Primary, s.theme.Secondary))
	b.WriteString(s.hint.Render("  step-by-step algorithm visualizer") + "\n\n")

	var side strings.Builder
	side.WriteString(s.header.Render("SOURCE") + "\n")
	side.WriteString(s.label.Render("Language") + s.value.Render(m.language) + "\n")
	tpl := "-"
	if m.template >= 0 && m.template < len(m.names) {
		tpl = m.names[m.template]
	}
	side.WriteString(s.label.Render("Template") + s.value.Render(tpl) + "\n\n")

	side.WriteString(s.header.Render("ANALYSIS") + "\n")
	if strings.TrimSpace(src) == "" {
		side.WriteString(s.hint.Render("type or load code to analyze") + "\n")
	} else {
		cat, rule := classify.Explain(src)
		est := classify.Complexity(src)
		side.WriteString(s.label.Render("Category") + s.value.Render(cat.Title()) + "\n")
		side.WriteString(s.label.Render("Rule") + s.hint.Render(rule) + "\n")
		kind := classify.Structure(src)
		side.WriteString(s.label.Render("Structure") + s.value.Render(string(kind)) + "\n")
		side.WriteString(s.label.Render("Time") + s.value.Render(est.Time) + "\n")
		side.WriteString(s.label.Render("Space") + s.value.Render(est.Space) + "\n")
		side.WriteString(lipgloss.NewStyle().Width(sidePanelWidth-4).Render(s.hint.Render(est.Explanation)) + "\n")
		if lines := classify.Extract(src, kind).Lines(); len(lines) > 0 {
			side.WriteString("\n" + s.header.Render("DATA") + "\n")
			for _, l := range lines {
				side.WriteString(s.value.Render(l) + "\n")
			}
		}
	}
	if m.lastRunID != "" {
		side.WriteString("\n" + s.label.Render("Last run") + s.hint.Render(m.lastRunID) + "\n")
	}
	sideView := s.panel.Width(sidePanelWidth).Render(side.String())

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.editor.View(), " ", sideView) + "\n")
	if m.err != nil {
		b.WriteString(s.errText.Render("  "+m.err.Error()) + "\n")
	}
	b.WriteString("\n  " + s.hints("ctrl+r", "run", "ctrl+t", "template", "ctrl+l", "language", "ctrl+x", "clear", "ctrl+c", "quit"))
	return b.String()
}

// RunInteractive opens the editor.
func RunInteractive(opts AppOptions) error {
	_, err := tea.NewProgram(NewInteractiveApp(opts), tea.WithAltScreen()).Run()
	return err
}

// RunVisual plays seq full screen; esc or q exits.
func RunVisual(seq *frames.Sequence, opts Options) error {
	opts.Standalone = true
	m := NewModel(opts)
	cmd := m.Start(seq)
	_, err := tea.NewProgram(startModel{Model: m, cmd: cmd}, tea.WithAltScreen()).Run()
	return err
}

// startModel hands the first scheduled tick to the program.
type startModel struct {
	Model
	cmd tea.Cmd
}

func (s startModel) Init() tea.Cmd { return s.cmd }

func (s startModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := s.Model.Update(msg)
	s.Model = next.(Model)
	return s, cmd
}
