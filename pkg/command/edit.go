package command

import (
	"fmt"

	"github.com/matzehuels/flowboard/pkg/flow"
)

// AddNode appends n to g and returns the new graph with the node's id.
//
// An empty id is generated, a zero width or height falls back to the shape
// defaults. Adding a node whose id already exists is a no-op.
func AddNode(g flow.Graph, n flow.Node, cfg Config) (flow.Graph, string) {
	if n.ID == "" {
		n.ID = cfg.ID("node")
	}
	if g.HasNode(n.ID) {
		return g, ""
	}
	desc := n.Descriptor()
	if n.Geometry.Width <= 0 {
		n.Geometry.Width = desc.DefaultWidth
	}
	if n.Geometry.Height <= 0 {
		n.Geometry.Height = desc.DefaultHeight
	}
	if n.ParentID != "" && !g.HasNode(n.ParentID) {
		n.ParentID = ""
	}
	out := g.Clone()
	out.Nodes = append(out.Nodes, n.Clone())
	return out, n.ID
}

// Delete removes the selected nodes together with everything they contain,
// every edge touching a removed node, and the selected edges.
// Locked nodes that are selected directly are kept.
func Delete(g flow.Graph, sel Selection) flow.Graph {
	nodes := make(map[string]bool)
	for _, i := range selected(g, sel.Nodes) {
		n := g.Nodes[i]
		if n.Locked {
			continue
		}
		nodes[n.ID] = true
		for _, d := range g.Descendants(n.ID) {
			nodes[d] = true
		}
	}
	edges := make(map[string]bool, len(sel.Edges))
	for _, id := range sel.Edges {
		if _, ok := g.Edge(id); ok {
			edges[id] = true
		}
	}
	if len(nodes) == 0 && len(edges) == 0 {
		return g
	}
	return removeNodes(g, nodes, edges)
}

// EdgeOptions describes the edge [Connect] creates. Zero values take the
// editor defaults: orthogonal routing, a closed arrow at the target, a label
// in the middle and the default stroke width.
type EdgeOptions struct {
	SourceHandle string
	TargetHandle string
	Kind         flow.EdgeKind
	Label        string
	Color        string
	ArrowStart   flow.ArrowKind
	ArrowEnd     flow.ArrowKind
}

// Connect adds an edge from source to target and returns the new graph with
// the edge's id. Unknown endpoints, self loops and handles the shape does
// not offer are no-ops.
func Connect(g flow.Graph, source, target string, opts EdgeOptions, cfg Config) (flow.Graph, string) {
	if source == target {
		return g, ""
	}
	src, ok := g.Node(source)
	if !ok {
		return g, ""
	}
	dst, ok := g.Node(target)
	if !ok {
		return g, ""
	}
	if !src.Descriptor().HasHandle(opts.SourceHandle) || !dst.Descriptor().HasHandle(opts.TargetHandle) {
		return g, ""
	}

	e := flow.Edge{
		ID:            cfg.ID("edge"),
		Source:        source,
		Target:        target,
		SourceHandle:  opts.SourceHandle,
		TargetHandle:  opts.TargetHandle,
		Kind:          opts.Kind,
		Label:         opts.Label,
		LabelPosition: flow.DefaultLabelPosition,
		Color:         opts.Color,
		Width:         flow.DefaultEdgeWidth,
		ArrowStart:    opts.ArrowStart,
		ArrowEnd:      opts.ArrowEnd,
	}
	if e.Kind == "" {
		e.Kind = flow.EdgeOrthogonal
	}
	if e.ArrowStart == "" {
		e.ArrowStart = flow.ArrowNone
	}
	if e.ArrowEnd == "" {
		e.ArrowEnd = flow.ArrowClosed
	}

	out := g.Clone()
	out.Edges = append(out.Edges, e)
	return out, e.ID
}

// MoveTo sets the position of node id within its own frame.
func MoveTo(g flow.Graph, id string, x, y float64) flow.Graph {
	i, ok := g.Index()[id]
	if !ok || (g.Nodes[i].Geometry.X == x && g.Nodes[i].Geometry.Y == y) {
		return g
	}
	out := g.Clone()
	out.Nodes[i].Geometry.X, out.Nodes[i].Geometry.Y = x, y
	return out
}

// MoveBy shifts the selected nodes that are not locked by (dx, dy).
// Nodes nested in another selected node move with it and are not shifted
// twice.
func MoveBy(g flow.Graph, sel Selection, dx, dy float64) flow.Graph {
	if dx == 0 && dy == 0 {
		return g
	}
	idx := topmost(g, selected(g, sel.Nodes))
	out := g.Clone()
	moved := false
	for _, i := range idx {
		if out.Nodes[i].Locked {
			continue
		}
		out.Nodes[i].Geometry = out.Nodes[i].Geometry.Translate(flow.Point{X: dx, Y: dy})
		moved = true
	}
	if !moved {
		return g
	}
	return out
}

// Resize sets the size of node id. Non-positive sizes are ignored.
func Resize(g flow.Graph, id string, width, height float64) flow.Graph {
	i, ok := g.Index()[id]
	if !ok || width <= 0 || height <= 0 {
		return g
	}
	geom := g.Nodes[i].Geometry
	if geom.Width == width && geom.Height == height {
		return g
	}
	out := g.Clone()
	out.Nodes[i].Geometry.Width, out.Nodes[i].Geometry.Height = width, height
	return out
}

// Reparent moves node id into parent, or to the top level when parent is
// empty. The node keeps its absolute position.
//
// It returns [ErrUnknownNode] for ids that do not resolve, [ErrNotContainer]
// when parent is not a pool, lane or group, and [ErrCycle] when parent is the
// node itself or one of its descendants.
func Reparent(g flow.Graph, id, parent string) (flow.Graph, error) {
	idx := g.Index()
	i, ok := idx[id]
	if !ok {
		return g, fmt.Errorf("reparent %q: %w", id, ErrUnknownNode)
	}
	if parent != "" {
		p, ok := idx[parent]
		if !ok {
			return g, fmt.Errorf("reparent %q into %q: %w", id, parent, ErrUnknownNode)
		}
		if parent == id || g.IsAncestor(id, parent) {
			return g, fmt.Errorf("reparent %q into %q: %w", id, parent, ErrCycle)
		}
		if !g.Nodes[p].IsContainer() {
			return g, fmt.Errorf("reparent %q into %q: %w", id, parent, ErrNotContainer)
		}
	}
	if g.Nodes[i].ParentID == parent {
		return g, nil
	}

	abs, _ := g.AbsoluteRect(id)
	var frame flow.Point
	if parent != "" {
		r, _ := g.AbsoluteRect(parent)
		frame = r.Origin()
	}

	out := g.Clone()
	out.Nodes[i].ParentID = parent
	out.Nodes[i].Geometry.X = abs.X - frame.X
	out.Nodes[i].Geometry.Y = abs.Y - frame.Y
	return out, nil
}
