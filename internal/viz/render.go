package viz

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/san-kum/algoviz/internal/frames"
)

const (
	canvasWidth  = 60
	canvasHeight = 18
	nodeRadius   = 4
)

// Detail is one label/value line of the side panel.
type Detail struct {
	Name  string
	Value string
}

// NewFrameCanvas returns an empty canvas of the size frames are drawn at.
func NewFrameCanvas() *Canvas {
	return NewCanvas(canvasWidth, canvasHeight)
}

// Render draws a frame's state on a fresh canvas of the default size.
func Render(st frames.RenderState) *Canvas {
	c := NewFrameCanvas()
	Draw(c, st)
	return c
}

// Draw paints st onto c. Unknown states leave the canvas blank.
func Draw(c *Canvas, st frames.RenderState) {
	c.Clear()
	switch s := st.(type) {
	case frames.GraphState:
		drawGraph(c, s)
	case frames.WeightedGraphState:
		drawWeightedGraph(c, s)
	case frames.ArrayState:
		drawArray(c, s)
	case frames.MergeState:
		drawMerge(c, s)
	case frames.StackState:
		drawStack(c, s)
	case frames.QueueState:
		drawQueue(c, s)
	case frames.TreeState:
		drawTree(c, s)
	case frames.GenericState:
		drawGeneric(c, s)
	}
}

type point struct{ x, y int }

// circleLayout places nodes clockwise on an ellipse starting at the top.
func circleLayout(c *Canvas, nodes []string) map[string]point {
	w, h := c.PixelSize()
	cx, cy := w/2, h/2
	rx, ry := float64(w)/2-12, float64(h)/2-8
	pos := make(map[string]point, len(nodes))
	for i, n := range nodes {
		a := -math.Pi/2 + 2*math.Pi*float64(i)/float64(len(nodes))
		pos[n] = point{cx + int(rx*math.Cos(a)), cy + int(ry*math.Sin(a))}
	}
	return pos
}

func drawEdges(c *Canvas, pos map[string]point, edges []frames.Edge, weighted bool) {
	for _, e := range edges {
		a, okA := pos[e.From]
		b, okB := pos[e.To]
		if !okA || !okB {
			continue
		}
		c.DrawLine(a.x, a.y, b.x, b.y)
		if weighted {
			c.LabelAt((a.x+b.x)/2, (a.y+b.y)/2, strconv.Itoa(e.Weight), MarkMuted)
		}
	}
}

func nodeMark(n string, current string, visited, frontier []string) Mark {
	switch {
	case n == current:
		return MarkCurrent
	case slices.Contains(frontier, n):
		return MarkFrontier
	case slices.Contains(visited, n):
		return MarkVisited
	}
	return MarkNone
}

func drawGraph(c *Canvas, s frames.GraphState) {
	pos := circleLayout(c, s.Nodes)
	drawEdges(c, pos, s.Edges, false)
	for _, n := range s.Nodes {
		p := pos[n]
		c.DrawCircle(p.x, p.y, nodeRadius)
		c.LabelAt(p.x, p.y, n, nodeMark(n, s.Current, s.Visited, s.Frontier))
	}
}

func drawWeightedGraph(c *Canvas, s frames.WeightedGraphState) {
	pos := circleLayout(c, s.Nodes)
	drawEdges(c, pos, s.Edges, true)
	for _, n := range s.Nodes {
		p := pos[n]
		c.DrawCircle(p.x, p.y, nodeRadius)
		mark := nodeMark(n, s.Current, s.Visited, nil)
		c.LabelAt(p.x, p.y, n, mark)
		if d, ok := s.Distances[n]; ok {
			c.LabelAt(p.x, p.y+nodeRadius+4, d.String(), mark)
		}
	}
}

// bars draws one bar per value across [x0, x1) and returns the centre of each.
func bars(c *Canvas, values []int, x0, x1, maxVal int, marks func(i int) Mark) []int {
	_, h := c.PixelSize()
	if len(values) == 0 {
		return nil
	}
	if maxVal <= 0 {
		maxVal = 1
	}
	slot := (x1 - x0) / len(values)
	if slot < 2 {
		slot = 2
	}
	base := h - 5
	top := 4
	centres := make([]int, len(values))
	for i, v := range values {
		left := x0 + i*slot + 1
		right := left + slot - 3
		if right < left {
			right = left
		}
		bh := (base - top) * v / maxVal
		if bh < 1 {
			bh = 1
		}
		mark := marks(i)
		if mark == MarkMuted {
			c.Rect(left, base-bh, right, base)
		} else {
			c.FillRect(left, base-bh, right, base)
		}
		centres[i] = (left + right) / 2
		c.LabelAt(centres[i], h-1, strconv.Itoa(v), mark)
	}
	return centres
}

func maxOf(values []int) int {
	m := 0
	for _, v := range values {
		m = max(m, v)
	}
	return m
}

func drawArray(c *Canvas, s frames.ArrayState) {
	w, _ := c.PixelSize()
	bars(c, s.Values, 0, w, maxOf(s.Values), func(i int) Mark {
		switch {
		case slices.Contains(s.Swapping, i):
			return MarkCurrent
		case slices.Contains(s.Compare, i):
			return MarkActive
		case s.Pivot != nil && s.Values[i] == *s.Pivot:
			return MarkFrontier
		case s.Low != nil && s.High != nil && (i < *s.Low || i > *s.High):
			return MarkMuted
		}
		return MarkNone
	})
}

func drawMerge(c *Canvas, s frames.MergeState) {
	w, _ := c.PixelSize()
	var all []int
	for _, g := range s.Groups {
		all = append(all, g...)
	}
	if len(all) == 0 {
		return
	}
	top := maxOf(all)
	gap := 4
	usable := w - gap*(len(s.Groups)-1)
	x := 0
	for gi, g := range s.Groups {
		width := usable * len(g) / len(all)
		mark := MarkNone
		if slices.Contains(s.Active, gi) {
			mark = MarkActive
		}
		bars(c, g, x, x+width, top, func(int) Mark { return mark })
		x += width + gap
	}
}

// drawStack stacks boxes bottom to top.
func drawStack(c *Canvas, s frames.StackState) {
	w, h := c.PixelSize()
	const boxH = 8
	bw := 24
	left := w/2 - bw/2
	c.DrawLine(left-2, h-1, left+bw+2, h-1)
	if len(s.Items) == 0 {
		c.LabelAt(w/2, h/2, "(empty)", MarkMuted)
		return
	}
	for i, v := range s.Items {
		bottom := h - 2 - i*boxH
		top := bottom - boxH + 1
		if top < 0 {
			break
		}
		c.Rect(left, top, left+bw, bottom)
		mark := MarkNone
		if i == len(s.Items)-1 {
			mark = MarkCurrent
			c.Label((left+bw)/2+2, (top+bottom)/8, "<- top", MarkMuted)
		}
		c.LabelAt(left+bw/2, (top+bottom)/2, strconv.Itoa(v), mark)
	}
}

func drawQueue(c *Canvas, s frames.QueueState) {
	w, h := c.PixelSize()
	const boxW = 14
	top, bottom := h/2-6, h/2+6
	if len(s.Items) == 0 {
		c.LabelAt(w/2, h/2, "(empty)", MarkMuted)
		return
	}
	left := 4
	for i, v := range s.Items {
		l := left + i*(boxW+2)
		if l+boxW >= w {
			break
		}
		c.Rect(l, top, l+boxW, bottom)
		mark := MarkNone
		if i == 0 {
			mark = MarkCurrent
		}
		c.LabelAt(l+boxW/2, (top+bottom)/2, strconv.Itoa(v), mark)
	}
	c.Label(left/2, bottom/4+2, "front", MarkMuted)
}

// treeLayout assigns x by in-order rank and y by depth.
func treeLayout(c *Canvas, root *frames.TreeNode) map[*frames.TreeNode]point {
	w, h := c.PixelSize()
	n := len(root.InOrder())
	levels := max(root.Height(), 1)
	pos := make(map[*frames.TreeNode]point, n)
	rank := 0
	var walk func(t *frames.TreeNode, depth int)
	walk = func(t *frames.TreeNode, depth int) {
		if t == nil {
			return
		}
		walk(t.Left, depth+1)
		x := (rank*2 + 1) * w / (2 * n)
		y := nodeRadius + 2 + depth*(h-2*nodeRadius-6)/max(levels-1, 1)
		pos[t] = point{x, y}
		rank++
		walk(t.Right, depth+1)
	}
	walk(root, 0)
	return pos
}

func drawTree(c *Canvas, s frames.TreeState) {
	if s.Root == nil {
		w, h := c.PixelSize()
		c.LabelAt(w/2, h/2, "(empty tree)", MarkMuted)
		return
	}
	pos := treeLayout(c, s.Root)
	var walk func(t *frames.TreeNode)
	walk = func(t *frames.TreeNode) {
		if t == nil {
			return
		}
		p := pos[t]
		for _, child := range []*frames.TreeNode{t.Left, t.Right} {
			if child != nil {
				q := pos[child]
				c.DrawLine(p.x, p.y, q.x, q.y)
				walk(child)
			}
		}
		c.DrawCircle(p.x, p.y, nodeRadius)
		mark := MarkNone
		switch {
		case s.Current != nil && t.Value == *s.Current:
			mark = MarkCurrent
		case slices.Contains(s.Traversal, t.Value):
			mark = MarkVisited
		}
		c.LabelAt(p.x, p.y, strconv.Itoa(t.Value), mark)
	}
	walk(s.Root)
}

func drawGeneric(c *Canvas, s frames.GenericState) {
	row := 1
	for _, v := range s.Variables {
		c.Label(2, row, fmt.Sprintf("%-10s = %s", v.Name, v.Value), MarkNone)
		row++
	}
	if s.Line > 0 {
		c.Label(2, row+1, fmt.Sprintf("line %d", s.Line), MarkCurrent)
	}
	for i, f := range s.CallStack {
		c.Label(c.Width/2, 1+i, "| "+f, MarkFrontier)
	}
}

// Details summarises st for the side panel.
func Details(st frames.RenderState) []Detail {
	switch s := st.(type) {
	case frames.GraphState:
		d := []Detail{
			{"Visited", join(s.Visited)},
			{frontierName(s.FrontierKind), "[" + join(s.Frontier) + "]"},
		}
		if s.Current != "" {
			d = append(d, Detail{"Current", s.Current})
		}
		if len(s.Result) > 0 {
			d = append(d, Detail{"Result", join(s.Result)})
		}
		return d
	case frames.WeightedGraphState:
		dist := make([]string, 0, len(s.Nodes))
		for _, n := range s.Nodes {
			if v, ok := s.Distances[n]; ok {
				dist = append(dist, n+":"+v.String())
			}
		}
		d := []Detail{{"Distances", strings.Join(dist, " ")}, {"Visited", join(s.Visited)}}
		if s.Current != "" {
			d = append(d, Detail{"Current", s.Current})
		}
		return d
	case frames.ArrayState:
		d := []Detail{{"Array", ints(s.Values)}}
		if s.Pivot != nil {
			d = append(d, Detail{"Pivot", strconv.Itoa(*s.Pivot)})
		}
		if s.Low != nil && s.High != nil {
			d = append(d, Detail{"Range", fmt.Sprintf("%d..%d", *s.Low, *s.High)})
		}
		if len(s.Swapping) == 2 {
			d = append(d, Detail{"Swap", fmt.Sprintf("%d <-> %d", s.Swapping[0], s.Swapping[1])})
		}
		return d
	case frames.MergeState:
		groups := make([]string, len(s.Groups))
		for i, g := range s.Groups {
			groups[i] = ints(g)
		}
		return []Detail{{"Groups", strings.Join(groups, " ")}}
	case frames.StackState:
		top := "-"
		if n := len(s.Items); n > 0 {
			top = strconv.Itoa(s.Items[n-1])
		}
		return []Detail{{"Stack", ints(s.Items)}, {"Top", top}, {"Size", strconv.Itoa(len(s.Items))}}
	case frames.QueueState:
		front := "-"
		if len(s.Items) > 0 {
			front = strconv.Itoa(s.Items[0])
		}
		return []Detail{{"Queue", ints(s.Items)}, {"Front", front}, {"Size", strconv.Itoa(len(s.Items))}}
	case frames.TreeState:
		d := []Detail{{"In-order", ints(s.Root.InOrder())}, {"Height", strconv.Itoa(s.Root.Height())}}
		if len(s.Traversal) > 0 {
			d = append(d, Detail{"Traversal", ints(s.Traversal)})
		}
		return d
	case frames.GenericState:
		d := make([]Detail, 0, len(s.Variables))
		for _, v := range s.Variables {
			d = append(d, Detail{v.Name, v.Value})
		}
		return d
	}
	return nil
}

func frontierName(kind string) string {
	switch kind {
	case frames.FrontierQueue:
		return "Queue"
	case frames.FrontierStack:
		return "Stack"
	}
	return "Frontier"
}

func join(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, " ")
}

func ints(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
