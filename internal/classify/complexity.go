package classify

import (
	"math"
	"regexp"
	"strings"
)

// Growth is the asymptotic class used to plot an estimate.
type Growth int

const (
	GrowthConstant Growth = iota
	GrowthLog
	GrowthLinear
	GrowthLinearithmic
	GrowthQuadratic
)

func (g Growth) String() string {
	switch g {
	case GrowthLog:
		return "log n"
	case GrowthLinear:
		return "n"
	case GrowthLinearithmic:
		return "n log n"
	case GrowthQuadratic:
		return "n^2"
	}
	return "1"
}

// Eval returns the cost of the growth class at input size n.
func (g Growth) Eval(n float64) float64 {
	if n < 1 {
		n = 1
	}
	switch g {
	case GrowthLog:
		return math.Log2(n) + 1
	case GrowthLinear:
		return n
	case GrowthLinearithmic:
		return n * (math.Log2(n) + 1)
	case GrowthQuadratic:
		return n * n
	}
	return 1
}

// Samples evaluates the growth class at 1..n.
func (g Growth) Samples(n int) []float64 {
	out := make([]float64, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, g.Eval(float64(i)))
	}
	return out
}

// Estimate is a best-effort complexity guess for a piece of source text.
type Estimate struct {
	Time        string
	Space       string
	Explanation string
	Growth      Growth
}

type complexityRule struct {
	match func(s string) bool
	est   Estimate
}

var (
	nestedLoop = regexp.MustCompile(`(?s)(for|while).*(for|while)`)
	funcDecl   = regexp.MustCompile(`(?:function|def|func)\s+([a-z_][a-z0-9_]*)\s*\(`)
)

var complexityRules = []complexityRule{
	{func(s string) bool { return has(s, "quicksort") || has(s, "quick sort") }, Estimate{
		"O(n log n) average, O(n²) worst case", "O(log n)",
		"QuickSort averages O(n log n) but degrades to O(n²) on bad pivots. The recursion stack costs O(log n).",
		GrowthLinearithmic}},
	{func(s string) bool { return has(s, "mergesort") || has(s, "merge sort") }, Estimate{
		"O(n log n)", "O(n)",
		"MergeSort always splits in half and merges linearly. Merging needs O(n) auxiliary space.",
		GrowthLinearithmic}},
	{func(s string) bool { return has(s, "bubblesort") || has(s, "bubble sort") }, Estimate{
		"O(n²)", "O(1)", "BubbleSort compares adjacent pairs in nested passes and sorts in place.", GrowthQuadratic}},
	{func(s string) bool { return has(s, "insertionsort") || has(s, "insertion sort") }, Estimate{
		"O(n²)", "O(1)", "InsertionSort shifts each element into a sorted prefix and sorts in place.", GrowthQuadratic}},
	{func(s string) bool { return has(s, "heapsort") || has(s, "heap sort") }, Estimate{
		"O(n log n)", "O(1)", "HeapSort performs n sift-downs of O(log n) each and sorts in place.", GrowthLinearithmic}},
	{func(s string) bool { return (has(s, "binarysearch") || has(s, "binary search")) && !has(s, "tree") }, Estimate{
		"O(log n)", "O(1)", "Binary search halves the search space on every comparison.", GrowthLog}},
	{func(s string) bool { return has(s, "linearsearch") || has(s, "linear search") }, Estimate{
		"O(n)", "O(1)", "Linear search may have to inspect every element once.", GrowthLinear}},
	{func(s string) bool { return has(s, "bfs") || has(s, "breadth", "search") }, Estimate{
		"O(V + E)", "O(V)", "BFS visits every vertex and edge once. The queue and visited set hold up to V vertices.", GrowthLinear}},
	{func(s string) bool { return has(s, "dfs") || has(s, "depth", "search") }, Estimate{
		"O(V + E)", "O(V)", "DFS visits every vertex and edge once. The recursion stack and visited set hold up to V vertices.", GrowthLinear}},
	{func(s string) bool { return has(s, "dijkstra") }, Estimate{
		"O((V + E) log V)", "O(V)", "Dijkstra with a binary heap pays log V per relaxation and keeps one distance per vertex.", GrowthLinearithmic}},
	{func(s string) bool { return has(s, "class stack") || has(s, "push", "pop") }, Estimate{
		"O(1) for push/pop", "O(n)", "Stack push, pop and peek touch only the top element. Storage grows with the element count.", GrowthConstant}},
	{func(s string) bool { return isQueue(s) }, Estimate{
		"O(1) for enqueue/dequeue", "O(n)", "Queue enqueue and dequeue touch only the ends. Storage grows with the element count.", GrowthConstant}},
	{func(s string) bool { return has(s, "binary search tree") || has(s, "binarysearchtree") }, Estimate{
		"O(log n) average, O(n) worst case", "O(n)", "BST operations follow one root-to-leaf path, which is O(n) long when the tree is unbalanced.", GrowthLog}},
	{func(s string) bool { return nestedLoop.MatchString(s) }, Estimate{
		"O(n²)", "O(1)", "Nested loops give quadratic time. No structure grows with the input.", GrowthQuadratic}},
	{func(s string) bool { return has(s, "for") || has(s, "while") }, Estimate{
		"O(n)", "O(1)", "A single loop gives linear time. No structure grows with the input.", GrowthLinear}},
	{isRecursive, Estimate{
		"Depends on recursion depth", "O(recursion depth)", "The code recurses. Cost depends on the depth and the work per call.", GrowthLinear}},
}

var constantEstimate = Estimate{"O(1)", "O(1)", "Simple operations with constant time and space.", GrowthConstant}

// Complexity estimates time and space complexity from keywords and loop shape.
func Complexity(source string) Estimate {
	s := strings.ToLower(source)
	if strings.TrimSpace(s) == "" {
		return constantEstimate
	}
	for _, r := range complexityRules {
		if r.match(s) {
			return r.est
		}
	}
	return constantEstimate
}

// isRecursive reports whether a declared function name is called again after
// its declaration.
func isRecursive(s string) bool {
	for _, m := range funcDecl.FindAllStringSubmatchIndex(s, -1) {
		name := s[m[2]:m[3]]
		if strings.Contains(s[m[1]:], name+"(") {
			return true
		}
	}
	return false
}
