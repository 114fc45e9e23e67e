package script

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/san-kum/algoviz/internal/classify"
	"github.com/san-kum/algoviz/internal/export"
	"github.com/san-kum/algoviz/internal/frames"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/storage"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func newRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	var out bytes.Buffer
	return &Runner{
		Registry: frames.NewRegistry(),
		Store:    storage.New(t.TempDir()),
		Out:      &out,
		Export:   export.DefaultOptions(),
	}, &out
}

func TestRunScenario(t *testing.T) {
	exportPath := filepath.Join(t.TempDir(), "bfs.svg")
	path := writeScenario(t, `
name: lecture
steps:
  - name: bfs to the end
    category: bfs
    export: `+exportPath+`
    save: true
    expect:
      category: graph-bfs
      index: 8
      phase: complete
      frames: 9
  - name: double speed
    template: python/quicksort
    speed: 2
    actions: ["wait 4s"]
    expect:
      index: 8
      phase: playing
  - name: reset holds
    category: stack
    actions: ["wait 5s", "reset", "wait 10s"]
    expect:
      index: 0
      phase: paused
  - name: teardown cancels
    source: "function dfs(node) { visit(node) }"
    actions: ["teardown", "wait 3s"]
    expect:
      index: 0
      phase: idle
`)
	sc, err := LoadScenario(path)
	require.NoError(t, err)
	require.Equal(t, "lecture", sc.Name)

	r, out := newRunner(t)
	results, err := r.Run(context.Background(), sc)
	require.NoError(t, err)
	require.Len(t, results, 4)

	bfs := results[0]
	require.Equal(t, classify.GraphBFS, bfs.Category)
	require.Equal(t, 8*time.Second, bfs.Elapsed)
	require.NotEmpty(t, bfs.Console)
	require.Equal(t, exportPath, bfs.Exported)
	require.NotEmpty(t, bfs.RunID)
	_, err = os.Stat(exportPath)
	require.NoError(t, err)

	require.Equal(t, classify.ArraySort, results[1].Category)
	require.Equal(t, playback.Paused, results[2].Phase)
	require.Equal(t, classify.GraphDFS, results[3].Category)
	require.Contains(t, out.String(), "Running reset holds (3/4)")
}

func TestRunStopsAtFailedExpectation(t *testing.T) {
	sc := &Scenario{Steps: []Step{
		{Category: "queue"},
		{Category: "queue", Actions: []string{"forward", "forward"}, Expect: &Expect{Index: intp(3)}},
		{Category: "stack"},
	}}
	r, _ := newRunner(t)
	results, err := r.Run(context.Background(), sc)
	require.ErrorIs(t, err, ErrExpectation)
	require.Contains(t, err.Error(), "step 2")
	require.Len(t, results, 1)
}

func TestActions(t *testing.T) {
	tests := []struct {
		actions []string
		index   int
		phase   playback.Phase
		err     error
	}{
		{[]string{"pause", "forward", "forward", "back"}, 1, playback.Paused, nil},
		{[]string{"seek 5", "pause"}, 5, playback.Paused, nil},
		{[]string{"speed 3", "wait 1s"}, 3, playback.Playing, nil},
		{[]string{"pause", "resume", "wait 2s"}, 2, playback.Playing, nil},
		{[]string{"wait 3s", "restart"}, 0, playback.Playing, nil},
		{[]string{"seek 99"}, 0, playback.Playing, playback.ErrOutOfRangeIndex},
		{[]string{"wait soon"}, 0, playback.Playing, ErrAction},
		{[]string{"dance"}, 0, playback.Playing, ErrAction},
	}

	for _, tt := range tests {
		r, _ := newRunner(t)
		res, err := r.runStep(Step{Category: "mergesort", Actions: tt.actions})
		if tt.err != nil {
			require.True(t, errors.Is(err, tt.err), "%v: got %v", tt.actions, err)
			continue
		}
		require.NoError(t, err, tt.actions)
		require.Equal(t, tt.index, res.Index, tt.actions)
		require.Equal(t, tt.phase, res.Phase, tt.actions)
	}
}

func TestStepInputs(t *testing.T) {
	r, _ := newRunner(t)

	_, err := r.runStep(Step{})
	require.ErrorIs(t, err, ErrNoInput)

	_, err = r.runStep(Step{Category: "stack", Template: "javascript/queue"})
	require.ErrorIs(t, err, ErrManyInputs)

	_, err = r.runStep(Step{Source: "bfs", File: "frames.yaml"})
	require.ErrorIs(t, err, ErrManyInputs)

	_, err = r.runStep(Step{Category: "sorting-hat"})
	require.ErrorIs(t, err, classify.ErrUnknownCategory)

	seq, err := frames.Materialize(classify.BinaryTree)
	require.NoError(t, err)
	file := filepath.Join(t.TempDir(), "tree.json")
	require.NoError(t, frames.SaveFile(file, seq))

	res, err := r.runStep(Step{File: file})
	require.NoError(t, err)
	require.Equal(t, classify.BinaryTree, res.Category)
	require.Equal(t, playback.Complete, res.Phase)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r, _ := newRunner(t)
	_, err := r.Run(ctx, &Scenario{Steps: []Step{{Category: "stack"}}})
	require.ErrorIs(t, err, context.Canceled)
}

func intp(v int) *int { return &v }
