package frames

import (
	"fmt"
	"sort"
	"sync"

	"github.com/san-kum/algoviz/internal/classify"
)

// Generator produces the frames for one category. It must return a fresh,
// non-empty slice on every call.
type Generator func() []Frame

type Registry struct {
	mu         sync.RWMutex
	generators map[classify.Category]Generator
}

// NewRegistry returns a registry preloaded with the canned walk-throughs.
func NewRegistry() *Registry {
	r := &Registry{generators: make(map[classify.Category]Generator)}

	r.generators[classify.GraphBFS] = bfsFrames
	r.generators[classify.GraphDFS] = dfsFrames
	r.generators[classify.WeightedGraph] = dijkstraFrames
	r.generators[classify.ArraySort] = quickSortFrames
	r.generators[classify.MergeSort] = mergeSortFrames
	r.generators[classify.Stack] = stackFrames
	r.generators[classify.Queue] = queueFrames
	r.generators[classify.BinaryTree] = binaryTreeFrames
	r.generators[classify.Generic] = genericFrames

	return r
}

// Register installs or replaces the generator for a category.
func (r *Registry) Register(cat classify.Category, gen Generator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generators[cat] = gen
}

// Materialize builds the sequence for cat.
func (r *Registry) Materialize(cat classify.Category) (*Sequence, error) {
	r.mu.RLock()
	gen, ok := r.generators[cat]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, cat)
	}
	seq, err := NewSequence(cat, gen())
	if err != nil {
		return nil, fmt.Errorf("materialize %s: %w", cat, err)
	}
	return seq, nil
}

func (r *Registry) Categories() []classify.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]classify.Category, 0, len(r.generators))
	for c := range r.generators {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

var defaultRegistry = NewRegistry()

// Materialize builds the canned sequence for cat from the default registry.
func Materialize(cat classify.Category) (*Sequence, error) {
	return defaultRegistry.Materialize(cat)
}

// ForSource classifies source text and materializes the matching sequence.
func ForSource(source string) (*Sequence, error) {
	return Materialize(classify.Classify(source))
}
