package command

import (
	"slices"

	"github.com/matzehuels/flowboard/pkg/flow"
)

// CanGroup reports whether [Group] would act on the selection.
func CanGroup(g flow.Graph, sel Selection) bool {
	return len(topmost(g, selected(g, sel.Nodes))) >= 2
}

// CanUngroup reports whether [Ungroup] would act on the selection.
func CanUngroup(g flow.Graph, sel Selection) bool {
	return len(ungroupTargets(g, sel)) > 0
}

// Group wraps the selected nodes in a new group container and returns the
// new graph with the container's id.
//
// Selected nodes nested inside another selected node move with their
// ancestor and are not counted. When the remaining members share a parent,
// the container is created inside that parent; otherwise it is top-level.
// The container covers the members' bounding box plus cfg.GroupPadding on
// every side and sits one layer below its lowest member. Members are
// re-parented with their position made relative to the container, so their
// absolute positions do not change.
//
// Fewer than two members is a no-op and returns an empty id.
func Group(g flow.Graph, sel Selection, cfg Config) (flow.Graph, string) {
	idx := topmost(g, selected(g, sel.Nodes))
	if len(idx) < 2 {
		return g, ""
	}

	parent := g.Nodes[idx[0]].ParentID
	for _, i := range idx[1:] {
		if g.Nodes[i].ParentID != parent {
			parent = ""
			break
		}
	}
	var frame flow.Point
	if parent != "" {
		frame = g.Origin(g.Nodes[idx[0]].ID)
	}

	rects := absoluteRects(g, idx)
	minZ := g.Nodes[idx[0]].ZIndex
	for k, i := range idx {
		rects[k] = rects[k].Translate(flow.Point{}.Sub(frame))
		minZ = min(minZ, g.Nodes[i].ZIndex)
	}
	bbox, _ := flow.BoundingBox(rects)
	bbox = bbox.Inset(cfg.GroupPadding)

	container := flow.Node{
		ID:       cfg.ID("group"),
		Kind:     flow.KindGroup,
		Geometry: bbox,
		ZIndex:   minZ - 1,
		ParentID: parent,
	}

	out := g.Clone()
	for k, i := range idx {
		n := &out.Nodes[i]
		n.Geometry.X = rects[k].X - bbox.X
		n.Geometry.Y = rects[k].Y - bbox.Y
		n.ParentID = container.ID
	}
	out.Nodes = append(out.Nodes, container)
	return out, container.ID
}

// Ungroup dissolves group containers.
//
// Targets are the selected group nodes and the group parents of selected
// nodes. Each child of a target is moved into the target's own parent with
// its position converted to that frame; the target and every edge attached
// to it are removed. Pools and lanes are never dissolved.
func Ungroup(g flow.Graph, sel Selection) flow.Graph {
	targets := ungroupTargets(g, sel)
	if len(targets) == 0 {
		return g
	}

	out := g.Clone()
	for _, id := range targets {
		i := slices.IndexFunc(out.Nodes, func(n flow.Node) bool { return n.ID == id })
		if i < 0 {
			continue
		}
		c := out.Nodes[i]
		for j := range out.Nodes {
			n := &out.Nodes[j]
			if n.ParentID != c.ID || j == i {
				continue
			}
			n.Geometry.X += c.Geometry.X
			n.Geometry.Y += c.Geometry.Y
			n.ParentID = c.ParentID
		}
		out = removeNodes(out, map[string]bool{c.ID: true}, nil)
	}
	return out
}

// ungroupTargets returns the ids of the groups Ungroup would dissolve, in
// graph order.
func ungroupTargets(g flow.Graph, sel Selection) []string {
	idx := g.Index()
	want := make(map[string]bool)
	for _, i := range selected(g, sel.Nodes) {
		n := g.Nodes[i]
		if n.Kind == flow.KindGroup {
			want[n.ID] = true
			continue
		}
		if p, ok := idx[n.ParentID]; ok && n.ParentID != "" && g.Nodes[p].Kind == flow.KindGroup {
			want[n.ParentID] = true
		}
	}
	var out []string
	for _, n := range g.Nodes {
		if want[n.ID] {
			out = append(out, n.ID)
			delete(want, n.ID)
		}
	}
	return out
}
