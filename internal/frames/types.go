package frames

import (
	"fmt"
	"strconv"
)

// StateKind discriminates render state variants.
type StateKind string

const (
	KindGraph         StateKind = "graph"
	KindWeightedGraph StateKind = "weighted-graph"
	KindArray         StateKind = "array"
	KindMerge         StateKind = "merge"
	KindStack         StateKind = "stack"
	KindQueue         StateKind = "queue"
	KindTree          StateKind = "tree"
	KindGeneric       StateKind = "generic"
)

// RenderState is the variant payload of a frame. Playback never looks inside
// it; only renderers do.
type RenderState interface {
	Kind() StateKind
}

// Operation narrates what a frame depicts.
type Operation struct {
	Kind        string `json:"kind" yaml:"kind"`
	Subject     string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Description string `json:"description" yaml:"description"`
}

// Frame is one immutable snapshot. Renderers must treat every slice and
// pointer reachable from a Frame as read-only.
type Frame struct {
	Index        int
	State        RenderState
	Operation    *Operation
	ConsoleLines []string
}

// Describe returns the narration, or a placeholder when there is none.
func (f Frame) Describe() string {
	if f.Operation == nil || f.Operation.Description == "" {
		return fmt.Sprintf("step %d", f.Index+1)
	}
	return f.Operation.Description
}

type Edge struct {
	From   string `json:"from" yaml:"from"`
	To     string `json:"to" yaml:"to"`
	Weight int    `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// FrontierQueue and FrontierStack name the auxiliary structure of a traversal.
const (
	FrontierQueue = "queue"
	FrontierStack = "stack"
)

// GraphState is an unweighted traversal snapshot.
type GraphState struct {
	Nodes        []string `json:"nodes" yaml:"nodes"`
	Edges        []Edge   `json:"edges" yaml:"edges"`
	Visited      []string `json:"visited" yaml:"visited"`
	Frontier     []string `json:"frontier" yaml:"frontier"`
	FrontierKind string   `json:"frontier_kind" yaml:"frontier_kind"`
	Current      string   `json:"current,omitempty" yaml:"current,omitempty"`
	Result       []string `json:"result,omitempty" yaml:"result,omitempty"`
}

func (GraphState) Kind() StateKind { return KindGraph }

// Distance is a tentative shortest-path length; Unreachable stands for infinity.
type Distance int

const Unreachable Distance = -1

func (d Distance) String() string {
	if d < 0 {
		return "∞"
	}
	return strconv.Itoa(int(d))
}

// WeightedGraphState is a shortest-path snapshot.
type WeightedGraphState struct {
	Nodes     []string            `json:"nodes" yaml:"nodes"`
	Edges     []Edge              `json:"edges" yaml:"edges"`
	Distances map[string]Distance `json:"distances" yaml:"distances"`
	Visited   []string            `json:"visited" yaml:"visited"`
	Current   string              `json:"current,omitempty" yaml:"current,omitempty"`
}

func (WeightedGraphState) Kind() StateKind { return KindWeightedGraph }

// ArrayState is an in-place sort snapshot. Pivot is a value, Low and High are
// partition bounds, Compare and Swapping hold indices.
type ArrayState struct {
	Values   []int `json:"values" yaml:"values"`
	Pivot    *int  `json:"pivot,omitempty" yaml:"pivot,omitempty"`
	Low      *int  `json:"low,omitempty" yaml:"low,omitempty"`
	High     *int  `json:"high,omitempty" yaml:"high,omitempty"`
	Compare  []int `json:"compare,omitempty" yaml:"compare,omitempty"`
	Swapping []int `json:"swapping,omitempty" yaml:"swapping,omitempty"`
}

func (ArrayState) Kind() StateKind { return KindArray }

// MergeState shows the current split of a merge sort. Active holds indices of
// the groups being merged or split.
type MergeState struct {
	Groups [][]int `json:"groups" yaml:"groups"`
	Active []int   `json:"active,omitempty" yaml:"active,omitempty"`
}

func (MergeState) Kind() StateKind { return KindMerge }

// StackState lists items bottom to top.
type StackState struct {
	Items []int `json:"items" yaml:"items"`
}

func (StackState) Kind() StateKind { return KindStack }

// QueueState lists items front to back.
type QueueState struct {
	Items []int `json:"items" yaml:"items"`
}

func (QueueState) Kind() StateKind { return KindQueue }

type TreeNode struct {
	Value int       `json:"value" yaml:"value"`
	Left  *TreeNode `json:"left,omitempty" yaml:"left,omitempty"`
	Right *TreeNode `json:"right,omitempty" yaml:"right,omitempty"`
}

// Clone deep-copies the subtree.
func (n *TreeNode) Clone() *TreeNode {
	if n == nil {
		return nil
	}
	return &TreeNode{Value: n.Value, Left: n.Left.Clone(), Right: n.Right.Clone()}
}

// Insert adds v following BST ordering and returns the (possibly new) root
// together with the parent v was attached to. Equal values go right.
func (n *TreeNode) Insert(v int) (root *TreeNode, parent *TreeNode) {
	if n == nil {
		return &TreeNode{Value: v}, nil
	}
	cur := n
	for {
		if v < cur.Value {
			if cur.Left == nil {
				cur.Left = &TreeNode{Value: v}
				return n, cur
			}
			cur = cur.Left
		} else {
			if cur.Right == nil {
				cur.Right = &TreeNode{Value: v}
				return n, cur
			}
			cur = cur.Right
		}
	}
}

// InOrder returns the subtree values in sorted order.
func (n *TreeNode) InOrder() []int {
	if n == nil {
		return nil
	}
	out := n.Left.InOrder()
	out = append(out, n.Value)
	return append(out, n.Right.InOrder()...)
}

// Height is the number of levels; an empty tree has height 0.
func (n *TreeNode) Height() int {
	if n == nil {
		return 0
	}
	return 1 + max(n.Left.Height(), n.Right.Height())
}

// TreeState is a binary search tree snapshot.
type TreeState struct {
	Root      *TreeNode `json:"root" yaml:"root"`
	Current   *int      `json:"current,omitempty" yaml:"current,omitempty"`
	Traversal []int     `json:"traversal,omitempty" yaml:"traversal,omitempty"`
}

func (TreeState) Kind() StateKind { return KindTree }

type Variable struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// GenericState is a free-form variable dump.
type GenericState struct {
	Variables []Variable `json:"variables" yaml:"variables"`
	Line      int        `json:"line,omitempty" yaml:"line,omitempty"`
	CallStack []string   `json:"call_stack,omitempty" yaml:"call_stack,omitempty"`
}

func (GenericState) Kind() StateKind { return KindGeneric }
