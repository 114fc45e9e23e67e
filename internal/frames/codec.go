package frames

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/algoviz/internal/classify"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrFormat, filepath.Ext(path))
}

// Document is the serialised form of a sequence. Each frame sets exactly one
// of the state fields.
type Document struct {
	Category string     `json:"category" yaml:"category"`
	Frames   []FrameDoc `json:"frames" yaml:"frames"`
}

type FrameDoc struct {
	Operation *Operation `json:"operation,omitempty" yaml:"operation,omitempty"`
	Console   []string   `json:"console,omitempty" yaml:"console,omitempty"`

	Graph         *GraphState         `json:"graph,omitempty" yaml:"graph,omitempty"`
	WeightedGraph *WeightedGraphState `json:"weighted_graph,omitempty" yaml:"weighted_graph,omitempty"`
	Array         *ArrayState         `json:"array,omitempty" yaml:"array,omitempty"`
	Merge         *MergeState         `json:"merge,omitempty" yaml:"merge,omitempty"`
	Stack         *StackState         `json:"stack,omitempty" yaml:"stack,omitempty"`
	Queue         *QueueState         `json:"queue,omitempty" yaml:"queue,omitempty"`
	Tree          *TreeState          `json:"tree,omitempty" yaml:"tree,omitempty"`
	Generic       *GenericState       `json:"generic,omitempty" yaml:"generic,omitempty"`
}

func (d FrameDoc) state() (RenderState, error) {
	var states []RenderState
	if d.Graph != nil {
		states = append(states, *d.Graph)
	}
	if d.WeightedGraph != nil {
		states = append(states, *d.WeightedGraph)
	}
	if d.Array != nil {
		states = append(states, *d.Array)
	}
	if d.Merge != nil {
		states = append(states, *d.Merge)
	}
	if d.Stack != nil {
		states = append(states, *d.Stack)
	}
	if d.Queue != nil {
		states = append(states, *d.Queue)
	}
	if d.Tree != nil {
		states = append(states, *d.Tree)
	}
	if d.Generic != nil {
		states = append(states, *d.Generic)
	}
	if len(states) != 1 {
		return nil, fmt.Errorf("%w (found %d)", ErrFrameState, len(states))
	}
	return states[0], nil
}

func docFromFrame(f Frame) FrameDoc {
	d := FrameDoc{Operation: f.Operation, Console: f.ConsoleLines}
	switch s := f.State.(type) {
	case GraphState:
		d.Graph = &s
	case WeightedGraphState:
		d.WeightedGraph = &s
	case ArrayState:
		d.Array = &s
	case MergeState:
		d.Merge = &s
	case StackState:
		d.Stack = &s
	case QueueState:
		d.Queue = &s
	case TreeState:
		d.Tree = &s
	case GenericState:
		d.Generic = &s
	}
	return d
}

// ToDocument converts a sequence to its serialisable form.
func ToDocument(seq *Sequence) Document {
	doc := Document{Category: string(seq.Category()), Frames: make([]FrameDoc, 0, seq.Len())}
	for _, f := range seq.Frames() {
		doc.Frames = append(doc.Frames, docFromFrame(f))
	}
	return doc
}

// FromDocument validates a document and builds a sequence from it.
func FromDocument(doc Document) (*Sequence, error) {
	cat, err := classify.ParseCategory(doc.Category)
	if err != nil {
		return nil, err
	}
	out := make([]Frame, 0, len(doc.Frames))
	for i, fd := range doc.Frames {
		st, err := fd.state()
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		out = append(out, Frame{State: st, Operation: fd.Operation, ConsoleLines: fd.Console})
	}
	return NewSequence(cat, out)
}

// Encode writes seq to w in the given format.
func Encode(w io.Writer, seq *Sequence, format Format) error {
	doc := ToDocument(seq)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrFormat, format)
}

// Decode reads a sequence document from r.
func Decode(r io.Reader, format Format) (*Sequence, error) {
	var doc Document
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, format)
	}
	return FromDocument(doc)
}

// LoadFile reads a sequence document, choosing the format by extension.
func LoadFile(path string) (*Sequence, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, format)
}

// SaveFile writes seq to path, choosing the format by extension.
func SaveFile(path string, seq *Sequence) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, seq, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
