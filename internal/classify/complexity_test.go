package classify

import "testing"

func TestComplexity(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		time   string
		growth Growth
	}{
		{"empty", "", "O(1)", GrowthConstant},
		{"quicksort", "function quickSort() {}", "O(n log n) average, O(n²) worst case", GrowthLinearithmic},
		{"merge sort", "merge sort", "O(n log n)", GrowthLinearithmic},
		{"bubble", "bubble sort", "O(n²)", GrowthQuadratic},
		{"binary search", "binary search on a list", "O(log n)", GrowthLog},
		{"bst is not binary search", "class BinarySearchTree {}", "O(log n) average, O(n) worst case", GrowthLog},
		{"bfs", "bfs", "O(V + E)", GrowthLinear},
		{"dijkstra", "dijkstra", "O((V + E) log V)", GrowthLinearithmic},
		{"stack", "push then pop", "O(1) for push/pop", GrowthConstant},
		{"queue", "enqueue and dequeue", "O(1) for enqueue/dequeue", GrowthConstant},
		{"nested loops", "for i in a:\n  for j in b:\n    x += 1", "O(n²)", GrowthQuadratic},
		{"single loop", "while (x) { x-- }", "O(n)", GrowthLinear},
		{"recursion", "function fib(n) { return fib(n-1) + fib(n-2) }", "Depends on recursion depth", GrowthLinear},
		{"constant", "x = 1", "O(1)", GrowthConstant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := Complexity(tt.src)
			if est.Time != tt.time {
				t.Errorf("time = %q, want %q", est.Time, tt.time)
			}
			if est.Growth != tt.growth {
				t.Errorf("growth = %s, want %s", est.Growth, tt.growth)
			}
			if est.Explanation == "" {
				t.Error("missing explanation")
			}
		})
	}
}

func TestGrowthSamplesMonotonic(t *testing.T) {
	for _, g := range []Growth{GrowthConstant, GrowthLog, GrowthLinear, GrowthLinearithmic, GrowthQuadratic} {
		s := g.Samples(32)
		if len(s) != 32 {
			t.Fatalf("%s: got %d samples", g, len(s))
		}
		for i := 1; i < len(s); i++ {
			if s[i] < s[i-1] {
				t.Errorf("%s: sample %d decreased", g, i)
			}
		}
	}
}
