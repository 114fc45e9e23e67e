// Package script runs batches of visualizations described in YAML. Each
// step picks a frame sequence, drives a playback controller on a virtual
// clock through a list of actions, checks expectations and optionally
// records or exports the result.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/algoviz/internal/classify"
	"github.com/san-kum/algoviz/internal/export"
	"github.com/san-kum/algoviz/internal/frames"
	"github.com/san-kum/algoviz/internal/playback"
	"github.com/san-kum/algoviz/internal/storage"
	"github.com/san-kum/algoviz/internal/templates"
)

var (
	ErrNoInput     = errors.New("script: step has no input")
	ErrManyInputs  = errors.New("script: step has more than one input")
	ErrAction      = errors.New("script: bad action")
	ErrExpectation = errors.New("script: expectation failed")
)

// Scenario is a named list of steps.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step describes one run. Exactly one of Category, Template, Source or
// File selects the frames.
type Step struct {
	Name     string   `yaml:"name"`
	Category string   `yaml:"category"`
	Template string   `yaml:"template"`
	Source   string   `yaml:"source"`
	File     string   `yaml:"file"`
	Speed    float64  `yaml:"speed"`
	Actions  []string `yaml:"actions"`
	Expect   *Expect  `yaml:"expect"`
	Export   string   `yaml:"export"`
	Save     bool     `yaml:"save"`
}

// Expect is checked after the actions ran.
type Expect struct {
	Category string `yaml:"category"`
	Index    *int   `yaml:"index"`
	Phase    string `yaml:"phase"`
	Frames   int    `yaml:"frames"`
}

// Result is the outcome of one step.
type Result struct {
	Name     string
	Category classify.Category
	Frames   int
	Index    int
	Phase    playback.Phase
	Elapsed  time.Duration
	Console  []string
	Exported string
	RunID    string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &scenario, nil
}

// Runner executes scenarios. Registry is required; Store and Out are
// optional.
type Runner struct {
	Registry *frames.Registry
	Store    *storage.Store
	Logger   *log.Logger
	Out      io.Writer
	Interval time.Duration
	Export   export.Options
}

// Run executes every step in order and stops at the first failure,
// returning the results gathered so far.
func (r *Runner) Run(ctx context.Context, sc *Scenario) ([]Result, error) {
	results := make([]Result, 0, len(sc.Steps))

	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step %d", i+1)
		}
		r.printf("Running %s (%d/%d)\n", name, i+1, len(sc.Steps))

		res, err := r.runStep(step)
		res.Name = name
		if err != nil {
			r.logger().Error("step failed", "step", name, "err", err)
			return results, fmt.Errorf("%s: %w", name, err)
		}
		results = append(results, res)
	}

	return results, nil
}

func (r *Runner) runStep(step Step) (Result, error) {
	seq, src, err := r.sequence(step)
	if err != nil {
		return Result{}, err
	}

	clock := &playback.ManualClock{}
	opts := []playback.Option{playback.WithClock(clock), playback.WithLogger(r.logger())}
	if step.Speed > 0 {
		opts = append(opts, playback.WithSpeed(step.Speed))
	}
	if r.Interval > 0 {
		opts = append(opts, playback.WithBaseInterval(r.Interval))
	}
	ctl := playback.New(opts...)
	if err := ctl.Start(seq); err != nil {
		return Result{}, err
	}

	actions := step.Actions
	if len(actions) == 0 {
		actions = []string{"finish"}
	}
	for _, a := range actions {
		if err := apply(ctl, clock, seq, a); err != nil {
			return Result{}, err
		}
	}

	st := ctl.Status()
	res := Result{
		Category: seq.Category(),
		Frames:   seq.Len(),
		Index:    st.Index,
		Phase:    st.Phase(),
		Elapsed:  clock.Now(),
	}
	if st.Phase() == playback.Complete {
		res.Console = seq.Console()
	}
	if err := check(step.Expect, res); err != nil {
		return res, err
	}

	if step.Export != "" {
		format, err := export.ParseFormat(strings.TrimPrefix(filepath.Ext(step.Export), "."))
		if err != nil {
			return res, err
		}
		if err := export.File(step.Export, seq, format, r.Export); err != nil {
			return res, err
		}
		res.Exported = step.Export
	}
	if step.Save && r.Store != nil {
		id, err := r.Store.Save(storage.Run{Source: src, Speed: ctl.Speed(), Sequence: seq})
		if err != nil {
			return res, err
		}
		res.RunID = id
	}
	return res, nil
}

// sequence resolves the frames for a step and the source text, if any.
func (r *Runner) sequence(step Step) (*frames.Sequence, string, error) {
	set := 0
	for _, in := range []string{step.File, step.Category, step.Template, step.Source} {
		if in != "" {
			set++
		}
	}
	if set > 1 {
		return nil, "", ErrManyInputs
	}

	switch {
	case step.File != "":
		seq, err := frames.LoadFile(step.File)
		return seq, "", err
	case step.Category != "":
		cat, err := classify.ParseCategory(step.Category)
		if err != nil {
			return nil, "", err
		}
		seq, err := r.Registry.Materialize(cat)
		return seq, "", err
	case step.Template != "":
		lang, name, ok := strings.Cut(step.Template, "/")
		if !ok {
			lang, name = "javascript", step.Template
		}
		src, err := templates.Get(lang, name)
		if err != nil {
			return nil, "", err
		}
		seq, err := r.Registry.Materialize(classify.Classify(src))
		return seq, src, err
	case step.Source != "":
		seq, err := r.Registry.Materialize(classify.Classify(step.Source))
		return seq, step.Source, err
	}
	return nil, "", ErrNoInput
}

// apply performs one action such as "forward", "seek 3" or "wait 2s".
func apply(ctl *playback.Controller, clock *playback.ManualClock, seq *frames.Sequence, action string) error {
	verb, arg, _ := strings.Cut(strings.TrimSpace(action), " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(verb) {
	case "start", "restart":
		return ctl.Start(seq)
	case "pause":
		ctl.Pause()
	case "resume", "play":
		ctl.Resume()
	case "forward", "next":
		ctl.StepForward()
	case "back", "prev":
		ctl.StepBackward()
	case "reset":
		ctl.Reset()
	case "teardown", "stop":
		ctl.Teardown()
	case "speed":
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrAction, action)
		}
		ctl.SetSpeed(v)
	case "seek":
		i, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrAction, action)
		}
		return ctl.Seek(i)
	case "wait":
		d, err := time.ParseDuration(arg)
		if err != nil || d < 0 {
			return fmt.Errorf("%w: %q", ErrAction, action)
		}
		clock.Advance(d)
	case "finish":
		clock.RunUntilIdle(seq.Len())
	default:
		return fmt.Errorf("%w: %q", ErrAction, action)
	}
	return nil
}

func check(e *Expect, res Result) error {
	if e == nil {
		return nil
	}
	if e.Category != "" {
		want, err := classify.ParseCategory(e.Category)
		if err != nil {
			return err
		}
		if want != res.Category {
			return fmt.Errorf("%w: category %s, want %s", ErrExpectation, res.Category, want)
		}
	}
	if e.Index != nil && *e.Index != res.Index {
		return fmt.Errorf("%w: index %d, want %d", ErrExpectation, res.Index, *e.Index)
	}
	if e.Phase != "" && !strings.EqualFold(e.Phase, res.Phase.String()) {
		return fmt.Errorf("%w: phase %s, want %s", ErrExpectation, res.Phase, e.Phase)
	}
	if e.Frames > 0 && e.Frames != res.Frames {
		return fmt.Errorf("%w: %d frames, want %d", ErrExpectation, res.Frames, e.Frames)
	}
	return nil
}

func (r *Runner) printf(format string, args ...any) {
	if r.Out != nil {
		fmt.Fprintf(r.Out, format, args...)
	}
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		r.Logger = log.New(io.Discard)
	}
	return r.Logger
}
