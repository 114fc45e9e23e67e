package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/algoviz/internal/classify"
	"github.com/san-kum/algoviz/internal/frames"
)

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	sourceFile   = "source.txt"
	framesFile   = "frames.yaml"
	stepsFile    = "steps.csv"
)

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string            `json:"id"`
	Category   classify.Category `json:"category"`
	Rule       string            `json:"rule"`
	Structure  string            `json:"structure"`
	Language   string            `json:"language,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
	Frames     int               `json:"frames"`
	Speed      float64           `json:"speed"`
	Time       string            `json:"time_complexity"`
	Space      string            `json:"space_complexity"`
	SourceSize int               `json:"source_bytes"`
}

// Run is what gets recorded for one visualization.
type Run struct {
	Source   string
	Language string
	Speed    float64
	Sequence *frames.Sequence
}

// Save writes a run directory holding metadata, the source text, the frame
// sequence and a CSV step timeline. It returns the run ID.
func (s *Store) Save(run Run) (string, error) {
	if run.Sequence.Len() == 0 {
		return "", frames.ErrEmptySequence
	}
	cat := run.Sequence.Category()
	runID := fmt.Sprintf("%s_%s", cat, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	_, rule := classify.Explain(run.Source)
	est := classify.Complexity(run.Source)
	meta := RunMetadata{
		ID:         runID,
		Category:   cat,
		Rule:       rule,
		Structure:  string(classify.Structure(run.Source)),
		Language:   run.Language,
		Timestamp:  s.now(),
		Frames:     run.Sequence.Len(),
		Speed:      run.Speed,
		Time:       est.Time,
		Space:      est.Space,
		SourceSize: len(run.Source),
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(runDir, sourceFile), []byte(run.Source), 0644); err != nil {
		return "", err
	}
	if err := frames.SaveFile(filepath.Join(runDir, framesFile), run.Sequence); err != nil {
		return "", err
	}
	if err := writeSteps(filepath.Join(runDir, stepsFile), run.Sequence); err != nil {
		return "", err
	}

	return runID, nil
}

func writeSteps(path string, seq *frames.Sequence) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"index", "state", "operation", "subject", "description"}); err != nil {
		return err
	}
	for _, fr := range seq.Frames() {
		row := []string{strconv.Itoa(fr.Index), string(fr.State.Kind()), "", "", ""}
		if op := fr.Operation; op != nil {
			row[2], row[3], row[4] = op.Kind, op.Subject, op.Description
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(s.path(runID, metadataFile))
	if err != nil {
		return nil, notFound(runID, err)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSource(runID string) (string, error) {
	data, err := os.ReadFile(s.path(runID, sourceFile))
	if err != nil {
		return "", notFound(runID, err)
	}
	return string(data), nil
}

func (s *Store) LoadSequence(runID string) (*frames.Sequence, error) {
	if _, err := os.Stat(s.path(runID, framesFile)); err != nil {
		return nil, notFound(runID, err)
	}
	return frames.LoadFile(s.path(runID, framesFile))
}

// Step is one row of a run's CSV timeline.
type Step struct {
	Index       int
	State       frames.StateKind
	Operation   string
	Subject     string
	Description string
}

func (s *Store) LoadSteps(runID string) ([]Step, error) {
	file, err := os.Open(s.path(runID, stepsFile))
	if err != nil {
		return nil, notFound(runID, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 5

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []Step{}, nil
	}

	steps := make([]Step, 0, len(records)-1)
	for _, rec := range records[1:] {
		idx, err := strconv.Atoi(rec[0])
		if err != nil {
			continue
		}
		steps = append(steps, Step{
			Index:       idx,
			State:       frames.StateKind(rec[1]),
			Operation:   rec[2],
			Subject:     rec[3],
			Description: rec[4],
		})
	}
	return steps, nil
}

// Delete removes a run directory.
func (s *Store) Delete(runID string) error {
	if _, err := s.Load(runID); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(s.baseDir, runID))
}

// path guards against IDs that escape the base directory.
func (s *Store) path(runID, name string) string {
	runID = filepath.Base(strings.TrimSpace(runID))
	return filepath.Join(s.baseDir, runID, name)
}

func notFound(runID string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return err
}
