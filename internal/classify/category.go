package classify

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned by ParseCategory for an unrecognised tag.
var ErrUnknownCategory = errors.New("classify: unknown category")

// Category selects which frame sequence gets materialized for a run.
type Category string

const (
	GraphBFS      Category = "graph-bfs"
	GraphDFS      Category = "graph-dfs"
	WeightedGraph Category = "weighted-graph"
	ArraySort     Category = "array-sort"
	MergeSort     Category = "merge-sort"
	Stack         Category = "stack"
	Queue         Category = "queue"
	BinaryTree    Category = "binary-tree"
	Generic       Category = "generic"
)

var allCategories = []Category{
	GraphBFS, GraphDFS, WeightedGraph, ArraySort, MergeSort, Stack, Queue, BinaryTree, Generic,
}

var categoryTitles = map[Category]string{
	GraphBFS:      "breadth-first search",
	GraphDFS:      "depth-first search",
	WeightedGraph: "dijkstra shortest paths",
	ArraySort:     "quicksort",
	MergeSort:     "merge sort",
	Stack:         "stack operations",
	Queue:         "queue operations",
	BinaryTree:    "binary search tree",
	Generic:       "variable trace",
}

// Categories returns every known category in display order.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// Title is a short human-readable name for the category.
func (c Category) Title() string {
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return string(c)
}

func (c Category) Valid() bool {
	_, ok := categoryTitles[c]
	return ok
}

// ParseCategory accepts a category tag, ignoring case and surrounding space.
// A few aliases (bfs, dfs, dijkstra, quicksort, ...) are accepted as well.
func ParseCategory(s string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if c := Category(key); c.Valid() {
		return c, nil
	}
	if c, ok := aliases[key]; ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

var aliases = map[string]Category{
	"bfs":        GraphBFS,
	"dfs":        GraphDFS,
	"dijkstra":   WeightedGraph,
	"quicksort":  ArraySort,
	"sort":       ArraySort,
	"mergesort":  MergeSort,
	"bst":        BinaryTree,
	"binarytree": BinaryTree,
	"tree":       BinaryTree,
}
