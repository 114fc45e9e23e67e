package viz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(1, 3)
	require.Equal(t, rune(brailleBase|0x1|0x80), c.Grid[0][0])

	c.Unset(0, 0)
	require.Equal(t, rune(brailleBase|0x80), c.Grid[0][0])

	c.Set(-1, 0)
	c.Set(100, 100)
	require.Equal(t, rune(brailleBase), c.Grid[0][1])
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0)
	for col := 0; col < 4; col++ {
		require.Equal(t, rune(brailleBase|0x1|0x8), c.Grid[0][col], "col %d", col)
	}
}

func TestCanvasCircleStaysInBounds(t *testing.T) {
	c := NewCanvas(3, 2)
	c.DrawCircle(0, 0, 10)
	c.DrawCircle(3, 4, 2)
	require.NotEqual(t, rune(brailleBase), c.Grid[1][1])
}

func TestCanvasLabels(t *testing.T) {
	c := NewCanvas(6, 2)
	c.Label(1, 0, "AB", MarkCurrent)
	c.Label(4, 1, "long", MarkNone)
	c.Label(-2, 1, "xyz", MarkVisited)
	c.Label(0, 5, "off", MarkNone)

	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "⠀AB⠀⠀⠀", lines[0])
	require.Equal(t, "z⠀⠀⠀lo", lines[1])

	segs := c.Row(0)
	require.Len(t, segs, 3)
	require.True(t, segs[1].Label)
	require.Equal(t, MarkCurrent, segs[1].Mark)

	c.Clear()
	require.Empty(t, c.Labels)
}

func TestCanvasLabelAt(t *testing.T) {
	c := NewCanvas(10, 3)
	c.LabelAt(10, 4, "abc", MarkNone)
	require.Equal(t, []Label{{Col: 4, Row: 1, Text: "abc"}}, c.SortedLabels())
}
