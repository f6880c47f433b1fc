package command

import (
	"sort"

	"github.com/matzehuels/flowboard/pkg/flow"
)

// AlignDirection selects the edge or centre line that [Align] lines up.
type AlignDirection string

// Align directions.
const (
	AlignLeft   AlignDirection = "left"
	AlignCenter AlignDirection = "center"
	AlignRight  AlignDirection = "right"
	AlignTop    AlignDirection = "top"
	AlignMiddle AlignDirection = "middle"
	AlignBottom AlignDirection = "bottom"
)

// Axis is the direction [Distribute] spreads nodes along.
type Axis string

// Distribution axes.
const (
	Horizontal Axis = "horizontal"
	Vertical   Axis = "vertical"
)

// CanAlign reports whether [Align] would act on the selection.
func CanAlign(g flow.Graph, sel Selection) bool { return len(selected(g, sel.Nodes)) >= 2 }

// CanDistribute reports whether [Distribute] would act on the selection.
func CanDistribute(g flow.Graph, sel Selection) bool { return len(selected(g, sel.Nodes)) >= 3 }

// Align lines up the selected nodes along one edge or centre line.
//
// The target is the leftmost left edge, the rightmost right edge, the topmost
// top edge, the bottommost bottom edge, or the midpoint between the extremes
// for center and middle. It is computed on absolute bounding boxes and
// snapped to cfg.Grid. Each node moves only along the aligned axis.
//
// Fewer than two selected nodes, or an unknown direction, is a no-op.
func Align(g flow.Graph, sel Selection, dir AlignDirection, cfg Config) flow.Graph {
	idx := selected(g, sel.Nodes)
	if len(idx) < 2 {
		return g
	}

	rects := absoluteRects(g, idx)
	bbox, _ := flow.BoundingBox(rects)

	var target float64
	switch dir {
	case AlignLeft:
		target = bbox.Left()
	case AlignRight:
		target = bbox.Right()
	case AlignCenter:
		target = bbox.CenterX()
	case AlignTop:
		target = bbox.Top()
	case AlignBottom:
		target = bbox.Bottom()
	case AlignMiddle:
		target = bbox.CenterY()
	default:
		return g
	}
	target = flow.Snap(target, cfg.Grid)

	shifts := make(map[int]float64, len(idx))
	for k, i := range idx {
		r := rects[k]
		switch dir {
		case AlignLeft:
			shifts[i] = target - r.Left()
		case AlignRight:
			shifts[i] = target - r.Right()
		case AlignCenter:
			shifts[i] = target - r.CenterX()
		case AlignTop:
			shifts[i] = target - r.Top()
		case AlignBottom:
			shifts[i] = target - r.Bottom()
		case AlignMiddle:
			shifts[i] = target - r.CenterY()
		}
	}
	horizontal := dir == AlignLeft || dir == AlignRight || dir == AlignCenter
	return shiftAbsolute(g, shifts, horizontal)
}

// Distribute spaces the centres of the selected nodes evenly along axis.
//
// Nodes are ordered by centre; the first and last centres fix the span and
// node i is moved so its centre sits at first + i*gap, snapped to cfg.Grid.
// The orthogonal axis is untouched. Fewer than three nodes is a no-op.
func Distribute(g flow.Graph, sel Selection, axis Axis, cfg Config) flow.Graph {
	idx := selected(g, sel.Nodes)
	if len(idx) < 3 || (axis != Horizontal && axis != Vertical) {
		return g
	}

	type item struct {
		pos    int
		center float64
	}
	rects := absoluteRects(g, idx)
	items := make([]item, len(idx))
	for k, i := range idx {
		c := rects[k].CenterX()
		if axis == Vertical {
			c = rects[k].CenterY()
		}
		items[k] = item{pos: i, center: c}
	}
	sort.SliceStable(items, func(a, b int) bool { return items[a].center < items[b].center })

	first, last := items[0].center, items[len(items)-1].center
	gap := (last - first) / float64(len(items)-1)

	shifts := make(map[int]float64, len(items))
	for k, it := range items {
		shifts[it.pos] = flow.Snap(first+float64(k)*gap, cfg.Grid) - it.center
	}
	return shiftAbsolute(g, shifts, axis == Horizontal)
}

// shiftAbsolute moves the nodes at the given positions by an absolute delta
// along one axis. A node whose selected ancestor also moves is compensated
// for the move it inherits, so every node ends at its own target.
func shiftAbsolute(g flow.Graph, shifts map[int]float64, horizontal bool) flow.Graph {
	idx := g.Index()
	memo := make(map[int]float64, len(g.Nodes))

	// moved is the absolute shift node i undergoes, its own or inherited.
	var moved func(i, depth int) float64
	moved = func(i, depth int) float64 {
		if d, ok := shifts[i]; ok {
			return d
		}
		if d, ok := memo[i]; ok {
			return d
		}
		d := 0.0
		if p, ok := idx[g.Nodes[i].ParentID]; ok && depth < len(g.Nodes) {
			d = moved(p, depth+1)
		}
		memo[i] = d
		return d
	}

	out := g.Clone()
	for i, d := range shifts {
		if p, ok := idx[g.Nodes[i].ParentID]; ok {
			d -= moved(p, 1)
		}
		if horizontal {
			out.Nodes[i].Geometry.X += d
		} else {
			out.Nodes[i].Geometry.Y += d
		}
	}
	return out
}

func absoluteRects(g flow.Graph, idx []int) []flow.Rect {
	all := g.AbsoluteRects()
	rects := make([]flow.Rect, len(idx))
	for k, i := range idx {
		rects[k] = all[i]
	}
	return rects
}
