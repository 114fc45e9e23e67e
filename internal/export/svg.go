package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/algoviz/internal/classify"
	"github.com/san-kum/algoviz/internal/frames"
	"github.com/san-kum/algoviz/internal/viz"
)

// Braille dot-to-bit mapping
var pixelMap = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

const captionHeight = 24

// CanvasToSVG converts a Braille canvas to an SVG group offset by (ox, oy).
// Labels become text elements colored by their mark.
func CanvasToSVG(canvas *viz.Canvas, scale float64, theme viz.Theme, ox, oy float64) string {
	if canvas == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<g transform=\"translate(%.0f %.0f)\">\n<g fill=\"%s\">\n", ox, oy, theme.Secondary)

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
					}
				}
			}
		}
	}
	sb.WriteString("</g>\n")

	fontSize := scale * 3.2
	for _, l := range canvas.SortedLabels() {
		x := float64(l.Col) * scale * 2
		y := float64(l.Row)*scale*4 + scale*3
		w := float64(len([]rune(l.Text))) * scale * 2
		fmt.Fprintf(&sb, "<rect x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" fill=\"%s\"/>\n",
			x, float64(l.Row)*scale*4, w, scale*4, theme.Background)
		fmt.Fprintf(&sb, "<text x=\"%.1f\" y=\"%.1f\" fill=\"%s\" font-size=\"%.1f\"%s>%s</text>\n",
			x, y, theme.MarkColor(l.Mark), fontSize, weight(l.Mark), html.EscapeString(l.Text))
	}
	sb.WriteString("</g>\n")
	return sb.String()
}

func weight(m viz.Mark) string {
	if m == viz.MarkCurrent {
		return ` font-weight="bold"`
	}
	return ""
}

func svgHeader(sb *strings.Builder, width, height float64, bg lipgloss.Color) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" font-family="monospace">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, bg)
}

// FrameToSVG renders one frame with its narration underneath.
func FrameToSVG(f frames.Frame, scale float64, theme viz.Theme) string {
	c := viz.Render(f.State)
	w, h := panelSize(c, scale)

	var sb strings.Builder
	svgHeader(&sb, w, h, theme.Background)
	writePanel(&sb, c, f, scale, theme, 0)
	sb.WriteString("</svg>")
	return sb.String()
}

// SequenceToSVG stacks every frame of seq top to bottom.
func SequenceToSVG(seq *frames.Sequence, scale float64, theme viz.Theme) string {
	if seq.Len() == 0 {
		return ""
	}
	c := viz.NewFrameCanvas()
	w, h := panelSize(c, scale)
	title := fmt.Sprintf("%s (%d frames)", seq.Category().Title(), seq.Len())

	var sb strings.Builder
	svgHeader(&sb, w, h*float64(seq.Len())+captionHeight, theme.Background)
	fmt.Fprintf(&sb, "<text x=\"8\" y=\"17\" fill=\"%s\" font-size=\"14\" font-weight=\"bold\">%s</text>\n",
		theme.Primary, html.EscapeString(title))
	for i, f := range seq.Frames() {
		viz.Draw(c, f.State)
		writePanel(&sb, c, f, scale, theme, captionHeight+h*float64(i))
	}
	sb.WriteString("</svg>")
	return sb.String()
}

func panelSize(c *viz.Canvas, scale float64) (float64, float64) {
	return float64(c.Width) * scale * 2, float64(c.Height)*scale*4 + captionHeight
}

func writePanel(sb *strings.Builder, c *viz.Canvas, f frames.Frame, scale float64, theme viz.Theme, oy float64) {
	sb.WriteString(CanvasToSVG(c, scale, theme, 0, oy))
	fmt.Fprintf(sb, "<text x=\"8\" y=\"%.1f\" fill=\"%s\" font-size=\"12\" font-style=\"italic\">%d. %s</text>\n",
		oy+float64(c.Height)*scale*4+16, theme.Accent, f.Index+1, html.EscapeString(f.Describe()))
}

// GrowthToSVG plots the growth curve of a complexity class for n in [1, size].
func GrowthToSVG(g classify.Growth, size, width, height int, strokeColor string) string {
	values := g.Samples(size)
	if len(values) < 2 {
		return ""
	}

	maxY := values[0]
	for _, v := range values {
		maxY = max(maxY, v)
	}
	if maxY == 0 {
		maxY = 1
	}
	pad := 0.1

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	for i, v := range values {
		x := (pad + (1-2*pad)*float64(i)/float64(len(values)-1)) * float64(width)
		y := float64(height) - (pad+(1-2*pad)*v/maxY)*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	fmt.Fprintf(&sb, "\"/>\n<text x=\"8\" y=\"16\" fill=\"%s\" font-family=\"monospace\" font-size=\"12\">%s</text>\n</svg>",
		strokeColor, html.EscapeString(g.String()))
	return sb.String()
}
