package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn")
	require.Equal(t, log.WarnLevel, l.GetLevel())

	l.Info("hidden")
	require.Empty(t, buf.String())
	l.Warn("shown", "k", 1)
	require.Contains(t, buf.String(), "shown")

	require.Equal(t, log.InfoLevel, New(&buf, "nonsense").GetLevel())
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "algoviz.log")
	l, f, err := OpenFile(path, "debug")
	require.NoError(t, err)
	l.Debug("started", "category", "stack")
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "category=stack")
}
