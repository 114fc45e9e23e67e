package export

import (
	"bytes"
	"context"
	"errors"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/san-kum/algoviz/internal/classify"
	"github.com/san-kum/algoviz/internal/frames"
	"github.com/san-kum/algoviz/internal/viz"
)

func mustSeq(t *testing.T, cat classify.Category) *frames.Sequence {
	t.Helper()
	seq, err := frames.Materialize(cat)
	require.NoError(t, err)
	return seq
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, "YAML": FormatYAML, "yml": FormatYAML, " svg ": FormatSVG, "gif": FormatGIF} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got)
	}
	_, err := ParseFormat("png")
	require.ErrorIs(t, err, ErrUnknownFormat)
	require.Equal(t, ".gif", FormatGIF.Ext())
}

func TestWriteStructuredRoundTrips(t *testing.T) {
	seq := mustSeq(t, classify.MergeSort)
	for _, f := range []Format{FormatJSON, FormatYAML} {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, seq, f, DefaultOptions()))
		got, err := frames.Decode(&buf, frames.Format(f))
		require.NoError(t, err)
		require.Equal(t, seq.Len(), got.Len())
	}
}

func TestSequenceToSVG(t *testing.T) {
	seq := mustSeq(t, classify.GraphBFS)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, seq, FormatSVG, Options{Theme: viz.ThemeOcean}))
	out := buf.String()

	require.True(t, strings.HasPrefix(out, "<?xml"))
	require.True(t, strings.HasSuffix(out, "</svg>"))
	require.Contains(t, out, string(viz.ThemeOcean.Background))
	require.Contains(t, out, "breadth-first search (9 frames)")
	require.Equal(t, seq.Len(), strings.Count(out, `font-style="italic"`))
	first, _ := seq.At(0)
	require.Contains(t, out, "1. "+first.Describe())
}

func TestFrameToSVGEscapes(t *testing.T) {
	f := frames.Frame{
		State:     frames.GenericState{Variables: []frames.Variable{{Name: "a<b", Value: "&"}}},
		Operation: &frames.Operation{Description: "compare a<b"},
	}
	out := FrameToSVG(f, 2, viz.ThemeMinimal)
	require.Contains(t, out, "compare a&lt;b")
	require.NotContains(t, out, "a<b")
}

func TestCanvasToSVGNil(t *testing.T) {
	require.Empty(t, CanvasToSVG(nil, 1, viz.ThemeMinimal, 0, 0))
}

func TestGrowthToSVG(t *testing.T) {
	out := GrowthToSVG(classify.GrowthQuadratic, 20, 200, 100, "#00ff00")
	require.Contains(t, out, "n^2")
	require.Equal(t, 19, strings.Count(out, " L"))
	require.Empty(t, GrowthToSVG(classify.GrowthLinear, 1, 10, 10, "#fff"))
}

func TestSequenceToGIF(t *testing.T) {
	seq := mustSeq(t, classify.Stack)
	var buf bytes.Buffer
	require.NoError(t, SequenceToGIF(&buf, seq, viz.ThemeRetroGreen, 500*time.Millisecond))

	anim, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	require.Len(t, anim.Image, seq.Len())
	require.Equal(t, 50, anim.Delay[0])
	require.Equal(t, 150, anim.Delay[len(anim.Delay)-1])

	b := anim.Image[0].Bounds()
	c := viz.NewFrameCanvas()
	require.Equal(t, c.Width*charW, b.Dx())
	require.Equal(t, c.Height*charH+captionPad, b.Dy())
}

func TestWriteEmpty(t *testing.T) {
	err := Write(&bytes.Buffer{}, nil, FormatJSON, DefaultOptions())
	require.ErrorIs(t, err, frames.ErrEmptySequence)
}

func TestAll(t *testing.T) {
	dir := t.TempDir()
	cats := []classify.Category{classify.Stack, classify.Queue, classify.BinaryTree}
	paths, err := All(context.Background(), frames.NewRegistry(), dir, cats, []Format{FormatYAML, FormatGIF}, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, paths, 6)
	require.Equal(t, filepath.Join(dir, "binary-tree.gif"), paths[0])
	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		require.NotZero(t, info.Size())
	}
}

func TestAllStopsOnError(t *testing.T) {
	_, err := All(context.Background(), frames.NewRegistry(), t.TempDir(),
		[]classify.Category{classify.Stack, "nope"}, []Format{FormatJSON}, DefaultOptions())
	require.True(t, errors.Is(err, frames.ErrUnknownCategory))
}

func TestAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := All(ctx, frames.NewRegistry(), t.TempDir(), []classify.Category{classify.Stack}, []Format{FormatJSON}, DefaultOptions())
	require.ErrorIs(t, err, context.Canceled)
}
