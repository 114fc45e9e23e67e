package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles is the lipgloss set derived from a Theme.
type styles struct {
	theme     Theme
	title     lipgloss.Style
	header    lipgloss.Style
	panel     lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	dots      lipgloss.Style
	narration lipgloss.Style
	playing   lipgloss.Style
	paused    lipgloss.Style
	complete  lipgloss.Style
	idle      lipgloss.Style
	key       lipgloss.Style
	hint      lipgloss.Style
	errText   lipgloss.Style
	console   lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		theme: t,
		title: lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		label:     lipgloss.NewStyle().Foreground(t.Muted).Width(11),
		value:     lipgloss.NewStyle().Foreground(t.Text),
		dots:      lipgloss.NewStyle().Foreground(t.Secondary),
		narration: lipgloss.NewStyle().Foreground(t.Accent).Italic(true),
		playing:   lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		paused:    lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		complete:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		idle:      lipgloss.NewStyle().Foreground(t.Muted),
		key:       lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		hint:      lipgloss.NewStyle().Foreground(t.Muted),
		errText:   lipgloss.NewStyle().Foreground(t.Error),
		console: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(t.Muted).
			Foreground(t.Text),
	}
}

// canvas renders c with dots in the secondary color and labels by mark.
func (s styles) canvas(c *Canvas) string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		for _, seg := range c.Row(row) {
			if !seg.Label {
				b.WriteString(s.dots.Render(seg.Text))
				continue
			}
			st := lipgloss.NewStyle().Foreground(s.theme.MarkColor(seg.Mark))
			if seg.Mark == MarkCurrent {
				st = st.Bold(true)
			}
			b.WriteString(st.Render(seg.Text))
		}
		if row < c.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// hints renders "key action" pairs.
func (s styles) hints(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, s.key.Render(pairs[i])+s.hint.Render(" "+pairs[i+1]))
	}
	return strings.Join(parts, s.hint.Render("  "))
}

// GradientText creates a gradient effect on text using color interpolation
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	if len(text) == 0 {
		return ""
	}

	sr, sg, sb := parseHex(string(startColor))
	er, eg, eb := parseHex(string(endColor))

	var result strings.Builder
	n := len([]rune(text))

	for i, c := range []rune(text) {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		r := int(float64(sr) + t*float64(er-sr))
		g := int(float64(sg) + t*float64(eg-sg))
		b := int(float64(sb) + t*float64(eb-sb))

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(r, g, b)))
		result.WriteString(style.Render(string(c)))
	}

	return result.String()
}

// ProgressBar renders filled/total as a bar of width cells.
func ProgressBar(filled, total, width int) string {
	if total <= 0 || width <= 0 {
		return strings.Repeat("░", max(width, 0))
	}
	n := filled * width / total
	n = min(max(n, 0), width)
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	r = parseHexByte(hex[1:3])
	g = parseHexByte(hex[3:5])
	b = parseHexByte(hex[5:7])
	return
}

func parseHexByte(s string) int {
	var val int
	for _, c := range s {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	return val
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	v = min(max(v, 0), 255)
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
