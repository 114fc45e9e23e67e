package classify

import "strings"

// StructureKind is the data structure a program mainly manipulates.
type StructureKind string

const (
	StructArray   StructureKind = "array"
	StructStack   StructureKind = "stack"
	StructQueue   StructureKind = "queue"
	StructTree    StructureKind = "tree"
	StructGraph   StructureKind = "graph"
	StructGeneric StructureKind = "generic"
)

// Structure guesses the dominant data structure. Unlike Classify it looks at
// shape words (left/right, vertex/edge) rather than algorithm names.
func Structure(source string) StructureKind {
	s := strings.ToLower(source)
	switch {
	case isStack(s):
		return StructStack
	case isQueue(s):
		return StructQueue
	case isTree(s):
		return StructTree
	case (has(s, "graph") && (has(s, "vertex") || has(s, "edge"))) ||
		has(s, "bfs") || has(s, "dfs") || has(s, "dijkstra"):
		return StructGraph
	case has(s, "sort") || has(s, "array"):
		return StructArray
	}
	return StructGeneric
}

func isTree(s string) bool {
	if has(s, "binarysearchtree") || has(s, "binary search tree") || has(s, "binary tree") {
		return true
	}
	if has(s, "class node") && (has(s, "left", "right") || has(s, "insert", "value")) {
		return true
	}
	return has(s, "tree") && !has(s, "graph")
}
