package viz

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for the TUI and exported images.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// palette builds a theme from hex colors in field order: primary,
// secondary, accent, background, text, muted, success, warning, error.
func palette(name string, hex ...string) Theme {
	c := make([]lipgloss.Color, len(hex))
	for i, h := range hex {
		c[i] = lipgloss.Color(h)
	}
	return Theme{
		Name: name, Primary: c[0], Secondary: c[1], Accent: c[2],
		Background: c[3], Text: c[4], Muted: c[5],
		Success: c[6], Warning: c[7], Error: c[8],
	}
}

// Visited nodes use Success, the frontier Warning and the current node
// Primary, so every palette keeps those three distinguishable.
var (
	ThemeCyberpunk  = palette("cyberpunk", "#ff00ff", "#00ffff", "#ffff00", "#0a0a0a", "#ffffff", "#666666", "#00ff00", "#ff8800", "#ff0000")
	ThemeRetroGreen = palette("retro", "#00ff00", "#00cc00", "#88ff88", "#001100", "#00ff00", "#005500", "#88ff88", "#ffff00", "#ff0000")
	ThemeMinimal    = palette("minimal", "#ffffff", "#cccccc", "#0088ff", "#000000", "#ffffff", "#888888", "#00ff00", "#ffaa00", "#ff0000")
	ThemeOcean      = palette("ocean", "#0077be", "#00a8cc", "#ffd700", "#001a33", "#e0f0ff", "#4488aa", "#00ff88", "#ffcc00", "#ff4444")
	ThemeSunset     = palette("sunset", "#ff6b6b", "#feca57", "#ff9ff3", "#2d1b2e", "#fff5f5", "#8b6b8c", "#5fd068", "#ffc048", "#ff4757")

	// Themes is the cycle order of the theme key.
	Themes = []Theme{ThemeCyberpunk, ThemeRetroGreen, ThemeMinimal, ThemeOcean, ThemeSunset}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// NextTheme returns the theme after name in Themes, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// MarkColor is the color a label with mark m is drawn in.
func (t Theme) MarkColor(m Mark) lipgloss.Color {
	switch m {
	case MarkVisited:
		return t.Success
	case MarkFrontier:
		return t.Warning
	case MarkCurrent:
		return t.Primary
	case MarkActive:
		return t.Accent
	case MarkMuted:
		return t.Muted
	}
	return t.Text
}

// RGBA converts a "#rrggbb" theme color for image output.
func RGBA(c lipgloss.Color) color.RGBA {
	r, g, b := parseHex(string(c))
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
}
