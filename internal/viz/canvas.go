package viz

import (
	"sort"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

// Mark tags a label with the role its subject plays in the frame.
type Mark int

const (
	MarkNone Mark = iota
	MarkVisited
	MarkFrontier
	MarkCurrent
	MarkActive
	MarkMuted
)

// Label is text placed over the dot grid, in cell coordinates.
type Label struct {
	Col, Row int
	Text     string
	Mark     Mark
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Labels        []Label
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
		}
	}
	return c
}

// PixelSize is the canvas size in sub-pixels.
func (c *Canvas) PixelSize() (int, int) {
	return c.Width * 2, c.Height * 4
}

// Set sets a pixel at (x, y) in sub-pixel coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] &= ^rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < brailleBase {
		c.Grid[row][col] = brailleBase
	}
}

// Clear resets dots and labels.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
		}
	}
	c.Labels = c.Labels[:0]
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawCircle draws a circle outline with the midpoint algorithm.
func (c *Canvas) DrawCircle(cx, cy, r int) {
	x, y := r, 0
	d := 1 - r
	for x >= y {
		for _, p := range [8][2]int{
			{x, y}, {y, x}, {-y, x}, {-x, y},
			{-x, -y}, {-y, -x}, {y, -x}, {x, -y},
		} {
			c.Set(cx+p[0], cy+p[1])
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// Rect outlines the box with corners (x0, y0) and (x1, y1).
func (c *Canvas) Rect(x0, y0, x1, y1 int) {
	c.DrawLine(x0, y0, x1, y0)
	c.DrawLine(x1, y0, x1, y1)
	c.DrawLine(x1, y1, x0, y1)
	c.DrawLine(x0, y1, x0, y0)
}

// FillRect sets every pixel of the box.
func (c *Canvas) FillRect(x0, y0, x1, y1 int) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c.Set(x, y)
		}
	}
}

// Label places text at a cell position. Text running off the right edge is
// cut.
func (c *Canvas) Label(col, row int, text string, mark Mark) {
	if row < 0 || row >= c.Height || text == "" {
		return
	}
	if col < 0 {
		r := []rune(text)
		if -col >= len(r) {
			return
		}
		text, col = string(r[-col:]), 0
	}
	if col >= c.Width {
		return
	}
	if r := []rune(text); col+len(r) > c.Width {
		text = string(r[:c.Width-col])
	}
	c.Labels = append(c.Labels, Label{Col: col, Row: row, Text: text, Mark: mark})
}

// LabelAt centres text on the cell containing sub-pixel (x, y).
func (c *Canvas) LabelAt(x, y int, text string, mark Mark) {
	c.Label(x/2-len([]rune(text))/2, y/4, text, mark)
}

// Segment is a run of cells in one row, either dots or a label.
type Segment struct {
	Text  string
	Label bool
	Mark  Mark
}

// Row splits row into dot runs and labels. Later labels win on overlap.
func (c *Canvas) Row(row int) []Segment {
	cells := make([]rune, c.Width)
	copy(cells, c.Grid[row])
	owner := make([]int, c.Width)
	for i := range owner {
		owner[i] = -1
	}
	for i, l := range c.Labels {
		if l.Row != row {
			continue
		}
		for j, r := range []rune(l.Text) {
			if col := l.Col + j; col < c.Width {
				cells[col] = r
				owner[col] = i
			}
		}
	}

	var segs []Segment
	start := 0
	for col := 1; col <= c.Width; col++ {
		if col < c.Width && owner[col] == owner[start] {
			continue
		}
		seg := Segment{Text: string(cells[start:col])}
		if o := owner[start]; o >= 0 {
			seg.Label, seg.Mark = true, c.Labels[o].Mark
		}
		segs = append(segs, seg)
		start = col
	}
	return segs
}

// SortedLabels returns labels ordered by row then column.
func (c *Canvas) SortedLabels() []Label {
	out := make([]Label, len(c.Labels))
	copy(out, c.Labels)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := range c.Grid {
		for _, seg := range c.Row(row) {
			b.WriteString(seg.Text)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
