package classify

import "strings"

// Rule maps a predicate over lower-cased source text to a category.
type Rule struct {
	Name     string
	Category Category
	Match    func(lower string) bool
}

func has(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// Rules is the ordered rule table used by Classify. The first matching rule
// wins, so broad fallbacks (plain "sort", plain "graph") come last.
var Rules = []Rule{
	{"bfs", GraphBFS, func(s string) bool { return has(s, "bfs") || has(s, "breadth", "search") }},
	{"dfs", GraphDFS, func(s string) bool { return has(s, "dfs") || has(s, "depth", "search") }},
	{"dijkstra", WeightedGraph, func(s string) bool { return has(s, "dijkstra") }},
	{"quicksort", ArraySort, func(s string) bool { return has(s, "quicksort") || has(s, "quick", "sort") }},
	{"mergesort", MergeSort, func(s string) bool { return has(s, "mergesort") || has(s, "merge", "sort") }},
	{"stack", Stack, func(s string) bool { return isStack(s) }},
	{"queue", Queue, func(s string) bool { return isQueue(s) }},
	{"bst", BinaryTree, func(s string) bool { return has(s, "binarysearchtree") || has(s, "binary search tree") }},
	{"sort", ArraySort, func(s string) bool { return has(s, "sort") }},
	{"graph", GraphBFS, func(s string) bool { return has(s, "graph") }},
}

func isStack(s string) bool {
	return has(s, "class stack") || (has(s, "push", "pop") && !has(s, "queue"))
}

func isQueue(s string) bool {
	return has(s, "class queue") || has(s, "enqueue", "dequeue")
}

// Classify returns the category whose canned animation best fits the source
// text. It never fails: text that matches no rule is Generic.
func Classify(source string) Category {
	cat, _ := Explain(source)
	return cat
}

// Explain is Classify plus the name of the rule that fired ("" for Generic).
func Explain(source string) (Category, string) {
	lower := strings.ToLower(source)
	for _, r := range Rules {
		if r.Match(lower) {
			return r.Category, r.Name
		}
	}
	return Generic, ""
}
