package frames

import (
	"fmt"
	"strings"
)

func op(kind, subject, desc string) *Operation {
	return &Operation{Kind: kind, Subject: subject, Description: desc}
}

func intp(v int) *int { return &v }

// withConsole attaches run-level console output to the terminal frame.
func withConsole(frames []Frame, lines ...string) []Frame {
	frames[len(frames)-1].ConsoleLines = lines
	return frames
}

func formatInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprint(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func quoted(ids []string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%q", id)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

var (
	sampleNodes = []string{"A", "B", "C", "D", "E", "F"}
	sampleEdges = []Edge{
		{From: "A", To: "B"}, {From: "A", To: "C"},
		{From: "B", To: "D"}, {From: "B", To: "E"},
		{From: "C", To: "F"}, {From: "E", To: "F"},
	}
)

// traversal builds a graph frame from space-separated vertex lists.
func traversal(frontierKind, visited, frontier, current string, o *Operation) Frame {
	v := strings.Fields(visited)
	return Frame{
		State: GraphState{
			Nodes:        sampleNodes,
			Edges:        sampleEdges,
			Visited:      v,
			Frontier:     strings.Fields(frontier),
			FrontierKind: frontierKind,
			Current:      current,
			Result:       v,
		},
		Operation: o,
	}
}

func bfsFrames() []Frame {
	q := FrontierQueue
	return withConsole([]Frame{
		traversal(q, "A", "B C", "A", op("dequeue", "A", "Dequeue A from the queue")),
		traversal(q, "A", "B C", "A", op("process", "A", "Process node A")),
		traversal(q, "A B", "C D E", "B", op("enqueue", "D E", "Enqueue neighbors of B: D, E")),
		traversal(q, "A B", "C D E", "B", op("dequeue", "B", "Dequeue B from the queue")),
		traversal(q, "A B C", "D E F", "C", op("enqueue", "F", "Enqueue neighbor of C: F")),
		traversal(q, "A B C", "D E F", "C", op("dequeue", "C", "Dequeue C from the queue")),
		traversal(q, "A B C D", "E F", "D", op("dequeue", "D", "Dequeue D from the queue")),
		traversal(q, "A B C D E", "F", "E", op("dequeue", "E", "Dequeue E from the queue")),
		traversal(q, "A B C D E F", "", "F", op("dequeue", "F", "Dequeue F from the queue")),
	}, quoted(sampleNodes))
}

func dfsFrames() []Frame {
	s := FrontierStack
	push := func(v string) *Operation { return op("push", v, fmt.Sprintf("Push %s onto the stack", v)) }
	pop := func(v string) *Operation {
		return op("pop", v, fmt.Sprintf("Pop %s from the stack (no unvisited neighbors)", v))
	}
	return withConsole([]Frame{
		traversal(s, "A", "A", "A", push("A")),
		traversal(s, "A B", "A B", "B", push("B")),
		traversal(s, "A B D", "A B D", "D", push("D")),
		traversal(s, "A B D", "A B", "D", pop("D")),
		traversal(s, "A B D E", "A B E", "E", push("E")),
		traversal(s, "A B D E F", "A B E F", "F", push("F")),
		traversal(s, "A B D E F", "A B E", "F", pop("F")),
		traversal(s, "A B D E F", "A B", "E", pop("E")),
		traversal(s, "A B D E F", "A", "B", pop("B")),
		traversal(s, "A B D E F C", "A C", "C", push("C")),
		traversal(s, "A B D E F C", "A", "C", pop("C")),
		traversal(s, "A B D E F C", "", "A", pop("A")),
	}, quoted([]string{"A", "B", "D", "E", "F", "C"}))
}

var (
	weightedNodes = []string{"A", "B", "C", "D", "E"}
	weightedEdges = []Edge{
		{From: "A", To: "B", Weight: 4}, {From: "A", To: "C", Weight: 2},
		{From: "B", To: "C", Weight: 1}, {From: "B", To: "D", Weight: 5},
		{From: "C", To: "D", Weight: 8}, {From: "C", To: "E", Weight: 10},
		{From: "D", To: "E", Weight: 2},
	}
)

func dijkstraFrames() []Frame {
	const inf = Unreachable
	step := func(d [5]Distance, visited, current string, o *Operation) Frame {
		dist := make(map[string]Distance, len(weightedNodes))
		for i, n := range weightedNodes {
			dist[n] = d[i]
		}
		return Frame{
			State: WeightedGraphState{
				Nodes:     weightedNodes,
				Edges:     weightedEdges,
				Distances: dist,
				Visited:   strings.Fields(visited),
				Current:   current,
			},
			Operation: o,
		}
	}
	sel := func(v string, d int) *Operation {
		return op("select", v, fmt.Sprintf("Select node %s (smallest distance = %d)", v, d))
	}
	return withConsole([]Frame{
		step([5]Distance{0, inf, inf, inf, inf}, "", "", op("initialize", "", "Initialize distances: A=0, all others=∞")),
		step([5]Distance{0, inf, inf, inf, inf}, "A", "A", sel("A", 0)),
		step([5]Distance{0, 4, 2, inf, inf}, "A", "A", op("update", "B C", "Update neighbors: B=4, C=2")),
		step([5]Distance{0, 4, 2, inf, inf}, "A C", "C", sel("C", 2)),
		step([5]Distance{0, 3, 2, 10, 12}, "A C", "C", op("update", "B D E", "Update neighbors: B=3, D=10, E=12")),
		step([5]Distance{0, 3, 2, 10, 12}, "A C B", "B", sel("B", 3)),
		step([5]Distance{0, 3, 2, 8, 12}, "A C B", "B", op("update", "D", "Update neighbor: D=8")),
		step([5]Distance{0, 3, 2, 8, 12}, "A C B D", "D", sel("D", 8)),
		step([5]Distance{0, 3, 2, 8, 10}, "A C B D", "D", op("update", "E", "Update neighbor: E=10")),
		step([5]Distance{0, 3, 2, 8, 10}, "A C B D E", "E", sel("E", 10)),
		step([5]Distance{0, 3, 2, 8, 10}, "A C B D E", "", op("complete", "", "Algorithm complete. Shortest paths found.")),
	}, "{ A: 0, B: 3, C: 2, D: 8, E: 10 }")
}

func quickSortFrames() []Frame {
	arr := func(values []int, pivot, low, high int) ArrayState {
		v := make([]int, len(values))
		copy(v, values)
		return ArrayState{Values: v, Pivot: intp(pivot), Low: intp(low), High: intp(high)}
	}
	frame := func(s ArrayState, o *Operation) Frame { return Frame{State: s, Operation: o} }
	compare := func(values []int, pivot, low, high, i int) Frame {
		s := arr(values, pivot, low, high)
		s.Compare = []int{i, high}
		return frame(s, op("compare", fmt.Sprintf("%d %d", i, high), fmt.Sprintf("Compare %d with pivot %d", values[i], pivot)))
	}
	swap := func(values []int, pivot, low, high, a, b int, desc string) Frame {
		s := arr(values, pivot, low, high)
		s.Swapping = []int{a, b}
		return frame(s, op("swap", fmt.Sprintf("%d %d", a, b), desc))
	}

	initial := []int{10, 7, 8, 9, 1, 5}
	afterFirst := []int{1, 7, 8, 9, 10, 5}
	pivoted := []int{1, 5, 8, 9, 10, 7}
	second := []int{1, 5, 7, 9, 10, 8}
	third := []int{1, 5, 7, 8, 10, 9}
	sorted := []int{1, 5, 7, 8, 9, 10}

	return withConsole([]Frame{
		frame(arr(initial, 5, 0, 5), op("partition", "", "Partition array with pivot = 5")),
		compare(initial, 5, 0, 5, 0),
		compare(initial, 5, 0, 5, 1),
		compare(initial, 5, 0, 5, 2),
		compare(initial, 5, 0, 5, 3),
		compare(initial, 5, 0, 5, 4),
		swap(initial, 5, 0, 5, 0, 4, "Swap 10 and 1"),
		swap(afterFirst, 5, 0, 5, 5, 1, "Swap pivot 5 with 7"),
		frame(arr(pivoted, 5, 0, 1), op("recursive", "left", "Recursively sort left partition [1]")),
		frame(arr(pivoted, 7, 2, 5), op("recursive", "right", "Recursively sort right partition [8, 9, 10, 7]")),
		compare(pivoted, 7, 2, 5, 2),
		compare(pivoted, 7, 2, 5, 3),
		compare(pivoted, 7, 2, 5, 4),
		swap(second, 7, 2, 5, 5, 2, "Swap pivot 7 with 8"),
		frame(arr(third, 8, 3, 5), op("recursive", "right", "Recursively sort right partition [9, 10, 8]")),
		swap(third, 8, 3, 5, 5, 3, "Swap pivot 8 with 9"),
		frame(arr(sorted, 10, 4, 5), op("recursive", "right", "Recursively sort right partition [9, 10]")),
		{State: ArrayState{Values: append([]int(nil), sorted...)}, Operation: op("complete", "", "QuickSort complete")},
	}, formatInts(sorted))
}

func mergeSortFrames() []Frame {
	step := func(groups [][]int, active []int, o *Operation) Frame {
		return Frame{State: MergeState{Groups: groups, Active: active}, Operation: o}
	}
	split := func(desc string) *Operation { return op("split", "", desc) }
	merge := func(a, b []int) *Operation {
		return op("merge", formatInts(a)+" "+formatInts(b),
			fmt.Sprintf("Merge %s and %s", formatInts(a), formatInts(b)))
	}
	g := func(gs ...[]int) [][]int { return gs }

	return withConsole([]Frame{
		step(g([]int{10, 7, 8, 9, 1, 5}), []int{0}, split("Split array into halves")),
		step(g([]int{10, 7, 8}, []int{9, 1, 5}), []int{0}, split("Split left half [10, 7, 8]")),
		step(g([]int{10}, []int{7, 8}), []int{1}, split("Split [7, 8]")),
		step(g([]int{10}, []int{7}, []int{8}), []int{1, 2}, merge([]int{7}, []int{8})),
		step(g([]int{10}, []int{7, 8}), []int{0, 1}, merge([]int{10}, []int{7, 8})),
		step(g([]int{7, 8, 10}, []int{9, 1, 5}), []int{1}, split("Split right half [9, 1, 5]")),
		step(g([]int{7, 8, 10}, []int{9}, []int{1, 5}), []int{2}, split("Split [1, 5]")),
		step(g([]int{7, 8, 10}, []int{9}, []int{1}, []int{5}), []int{2, 3}, merge([]int{1}, []int{5})),
		step(g([]int{7, 8, 10}, []int{9}, []int{1, 5}), []int{1, 2}, merge([]int{9}, []int{1, 5})),
		step(g([]int{7, 8, 10}, []int{1, 5, 9}), []int{0, 1}, merge([]int{7, 8, 10}, []int{1, 5, 9})),
		step(g([]int{1, 5, 7, 8, 9, 10}), nil, op("complete", "", "MergeSort complete")),
	}, "[1, 5, 7, 8, 9, 10]")
}

func stackFrames() []Frame {
	step := func(items []int, o *Operation) Frame { return Frame{State: StackState{Items: items}, Operation: o} }
	push := func(v int) *Operation { return op("push", fmt.Sprint(v), fmt.Sprintf("Push %d onto stack", v)) }
	return withConsole([]Frame{
		step([]int{}, op("initialize", "", "Initialize empty stack")),
		step([]int{10}, push(10)),
		step([]int{10, 20}, push(20)),
		step([]int{10, 20, 30}, push(30)),
		step([]int{10, 20, 30}, op("peek", "30", "Peek: Top element is 30")),
		step([]int{10, 20}, op("pop", "30", "Pop 30 from stack")),
		step([]int{10, 20, 40}, push(40)),
		step([]int{10, 20, 40}, op("size", "3", "Stack size: 3")),
	},
		"Pushed: 10", "Pushed: 20", "Pushed: 30", "[10, 20, 30]",
		"Popped: 30", "[10, 20]", "Pushed: 40", "[10, 20, 40]",
		"Top element: 40", "Stack size: 3",
	)
}

func queueFrames() []Frame {
	step := func(items []int, o *Operation) Frame { return Frame{State: QueueState{Items: items}, Operation: o} }
	enq := func(v int) *Operation { return op("enqueue", fmt.Sprint(v), fmt.Sprintf("Enqueue %d", v)) }
	return withConsole([]Frame{
		step([]int{}, op("initialize", "", "Initialize empty queue")),
		step([]int{10}, enq(10)),
		step([]int{10, 20}, enq(20)),
		step([]int{10, 20, 30}, enq(30)),
		step([]int{10, 20, 30}, op("front", "10", "Front: First element is 10")),
		step([]int{20, 30}, op("dequeue", "10", "Dequeue 10 from queue")),
		step([]int{20, 30, 40}, enq(40)),
		step([]int{20, 30, 40}, op("size", "3", "Queue size: 3")),
	},
		"Enqueued: 10", "Enqueued: 20", "Enqueued: 30", "[10, 20, 30]",
		"Dequeued: 10", "[20, 30]", "Enqueued: 40", "[20, 30, 40]",
		"Front element: 20", "Queue size: 3",
	)
}

func binaryTreeFrames() []Frame {
	var (
		root   *TreeNode
		frames []Frame
		logs   []string
	)
	for _, v := range []int{10, 5, 15, 3, 7, 12, 18} {
		var parent *TreeNode
		root, parent = root.Insert(v)
		desc := fmt.Sprintf("Insert %d as root", v)
		if parent != nil {
			side := "right"
			if v < parent.Value {
				side = "left"
			}
			desc = fmt.Sprintf("Insert %d to the %s of %d", v, side, parent.Value)
		}
		logs = append(logs, strings.Replace(desc, "Insert", "Inserted", 1))
		frames = append(frames, Frame{
			State:     TreeState{Root: root.Clone()},
			Operation: op("insert", fmt.Sprint(v), desc),
		})
	}

	search := func(current int, kind, desc string) Frame {
		return Frame{
			State:     TreeState{Root: root.Clone(), Current: intp(current)},
			Operation: op(kind, "7", desc),
		}
	}
	inorder := root.InOrder()
	frames = append(frames,
		search(10, "search", "Search for 7: Start at root 10"),
		search(5, "search", "Search for 7: Go to left child 5"),
		search(7, "search", "Search for 7: Go to right child 7"),
		search(7, "found", "Found 7!"),
		Frame{
			State:     TreeState{Root: root.Clone(), Traversal: inorder},
			Operation: op("traversal", "inorder", "In-order traversal: "+formatInts(inorder)),
		},
	)
	logs = append(logs,
		"Searching left of 10", "Searching right of 5", "Found 7", "11 not found",
		"In-order traversal: "+formatInts(inorder),
	)
	return withConsole(frames, logs...)
}

func genericFrames() []Frame {
	step := func(i, j, sum, line int, o *Operation) Frame {
		return Frame{
			State: GenericState{
				Variables: []Variable{
					{Name: "i", Value: fmt.Sprint(i)},
					{Name: "j", Value: fmt.Sprint(j)},
					{Name: "sum", Value: fmt.Sprint(sum)},
				},
				Line:      line,
				CallStack: []string{"main()"},
			},
			Operation: o,
		}
	}
	return withConsole([]Frame{
		step(0, 0, 0, 3, op("initialize", "", "Initialize variables: i=0, j=0, sum=0")),
		step(1, 0, 1, 4, op("update", "i", "Update i=1, sum=1")),
		step(1, 1, 2, 5, op("update", "j", "Update j=1, sum=2")),
		step(2, 1, 4, 3, op("update", "i", "Update i=2, sum=4")),
		step(2, 2, 6, 6, op("update", "j", "Update j=2, sum=6")),
		step(2, 2, 6, 7, op("complete", "", "Algorithm complete. Final sum=6")),
	}, "6")
}
