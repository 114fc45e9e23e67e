package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/algoviz/internal/classify"
	"github.com/san-kum/algoviz/internal/frames"
	"github.com/san-kum/algoviz/internal/viz"
)

var ErrUnknownFormat = errors.New("export: unknown format")

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatSVG  Format = "svg"
	FormatGIF  Format = "gif"
)

func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatSVG, FormatGIF}
}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "yml" {
		return FormatYAML, nil
	}
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Ext is the file extension for f, with the dot.
func (f Format) Ext() string { return "." + string(f) }

type Options struct {
	Theme viz.Theme
	Scale float64
	// Delay is the time each GIF frame is shown.
	Delay time.Duration
}

func DefaultOptions() Options {
	return Options{Theme: viz.ThemeCyberpunk, Scale: 4, Delay: time.Second}
}

// Write encodes seq to w in the given format.
func Write(w io.Writer, seq *frames.Sequence, format Format, opts Options) error {
	if seq.Len() == 0 {
		return frames.ErrEmptySequence
	}
	if opts.Scale <= 0 {
		opts.Scale = DefaultOptions().Scale
	}
	switch format {
	case FormatJSON:
		return frames.Encode(w, seq, frames.FormatJSON)
	case FormatYAML:
		return frames.Encode(w, seq, frames.FormatYAML)
	case FormatSVG:
		_, err := io.WriteString(w, SequenceToSVG(seq, opts.Scale, opts.Theme))
		return err
	case FormatGIF:
		return SequenceToGIF(w, seq, opts.Theme, opts.Delay)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// File writes seq to path, creating parent directories.
func File(path string, seq *frames.Sequence, format Format, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, seq, format, opts); err != nil {
		f.Close()
		return fmt.Errorf("export %s: %w", path, err)
	}
	return f.Close()
}

// All exports every category in every format into dir, at most four files
// at a time, and returns the written paths sorted. The first failure
// cancels the rest.
func All(ctx context.Context, reg *frames.Registry, dir string, cats []classify.Category, formats []Format, opts Options) ([]string, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	paths := make([]string, len(cats)*len(formats))
	for i, cat := range cats {
		for j, format := range formats {
			slot := i*len(formats) + j
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				seq, err := reg.Materialize(cat)
				if err != nil {
					return err
				}
				path := filepath.Join(dir, string(cat)+format.Ext())
				if err := File(path, seq, format, opts); err != nil {
					return err
				}
				paths[slot] = path
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
