package flow

// Graph is the complete editable state of one process chart.
//
// The zero value is an empty, usable graph. Graph is not safe for concurrent
// use; an editing session owns exactly one.
type Graph struct {
	Nodes  []Node
	Edges  []Edge
	Legend []LegendItem
}

// NodeCount returns the number of nodes.
func (g Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges.
func (g Graph) EdgeCount() int { return len(g.Edges) }

// Empty reports whether the graph has no nodes and no edges.
func (g Graph) Empty() bool { return len(g.Nodes) == 0 && len(g.Edges) == 0 }

// Index maps node ids to their slice position. When ids are duplicated the
// first occurrence wins.
func (g Graph) Index() map[string]int {
	idx := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		if _, dup := idx[n.ID]; !dup {
			idx[n.ID] = i
		}
	}
	return idx
}

// EdgeIndex maps edge ids to their slice position.
func (g Graph) EdgeIndex() map[string]int {
	idx := make(map[string]int, len(g.Edges))
	for i, e := range g.Edges {
		if _, dup := idx[e.ID]; !dup {
			idx[e.ID] = i
		}
	}
	return idx
}

// Node returns the node with the given id.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Edge returns the edge with the given id.
func (g Graph) Edge(id string) (Edge, bool) {
	for _, e := range g.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return Edge{}, false
}

// HasNode reports whether a node with id exists.
func (g Graph) HasNode(id string) bool {
	_, ok := g.Node(id)
	return ok
}

// Children returns the ids of the direct children of id, in slice order.
func (g Graph) Children(id string) []string {
	var out []string
	for _, n := range g.Nodes {
		if n.ParentID == id && id != "" {
			out = append(out, n.ID)
		}
	}
	return out
}

// Descendants returns the ids of every node contained, directly or
// transitively, in id. The walk is breadth-first and guards against cycles in
// malformed input.
func (g Graph) Descendants(id string) []string {
	seen := map[string]bool{id: true}
	var out []string
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range g.Children(cur) {
			if seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
			queue = append(queue, c)
		}
	}
	return out
}

// IsAncestor reports whether ancestor contains node, directly or transitively.
func (g Graph) IsAncestor(ancestor, node string) bool {
	idx := g.Index()
	seen := map[string]bool{}
	cur := node
	for {
		i, ok := idx[cur]
		if !ok || seen[cur] {
			return false
		}
		seen[cur] = true
		parent := g.Nodes[i].ParentID
		if parent == "" {
			return false
		}
		if parent == ancestor {
			return true
		}
		cur = parent
	}
}

// Origin returns the absolute position of the coordinate frame that node id's
// geometry is expressed in, i.e. the absolute origin of its parent. Top-level
// nodes and nodes with a missing parent live in the canvas frame (0,0).
func (g Graph) Origin(id string) Point {
	idx := g.Index()
	i, ok := idx[id]
	if !ok {
		return Point{}
	}
	return g.frameOrigin(idx, g.Nodes[i].ParentID)
}

func (g Graph) frameOrigin(idx map[string]int, parent string) Point {
	var origin Point
	seen := map[string]bool{}
	for parent != "" && !seen[parent] {
		seen[parent] = true
		i, ok := idx[parent]
		if !ok {
			break
		}
		p := g.Nodes[i]
		origin = origin.Add(p.Geometry.Origin())
		parent = p.ParentID
	}
	return origin
}

// AbsoluteRect returns the geometry of node id in canvas coordinates.
func (g Graph) AbsoluteRect(id string) (Rect, bool) {
	idx := g.Index()
	i, ok := idx[id]
	if !ok {
		return Rect{}, false
	}
	n := g.Nodes[i]
	return n.Geometry.Translate(g.frameOrigin(idx, n.ParentID)), true
}

// AbsoluteRects returns the canvas geometry of every node, in node order.
// The id index is built once, so this is the call to use inside loops.
func (g Graph) AbsoluteRects() []Rect {
	idx := g.Index()
	out := make([]Rect, len(g.Nodes))
	for i, n := range g.Nodes {
		out[i] = n.Geometry.Translate(g.frameOrigin(idx, n.ParentID))
	}
	return out
}

// Incoming counts the edges ending at each node id.
func (g Graph) Incoming() map[string]int {
	out := make(map[string]int)
	for _, e := range g.Edges {
		out[e.Target]++
	}
	return out
}

// Outgoing counts the edges starting at each node id.
func (g Graph) Outgoing() map[string]int {
	out := make(map[string]int)
	for _, e := range g.Edges {
		out[e.Source]++
	}
	return out
}

// MaxZ returns the highest z-order among all nodes, or 0 for an empty graph.
func (g Graph) MaxZ() int {
	if len(g.Nodes) == 0 {
		return 0
	}
	maxZ := g.Nodes[0].ZIndex
	for _, n := range g.Nodes[1:] {
		maxZ = max(maxZ, n.ZIndex)
	}
	return maxZ
}

// MinZ returns the lowest z-order among all nodes, or 0 for an empty graph.
func (g Graph) MinZ() int {
	if len(g.Nodes) == 0 {
		return 0
	}
	minZ := g.Nodes[0].ZIndex
	for _, n := range g.Nodes[1:] {
		minZ = min(minZ, n.ZIndex)
	}
	return minZ
}

// Clone returns a deep copy of the graph. Nil slices stay nil.
func (g Graph) Clone() Graph {
	var out Graph
	if g.Nodes != nil {
		out.Nodes = make([]Node, len(g.Nodes))
		for i, n := range g.Nodes {
			out.Nodes[i] = n.Clone()
		}
	}
	if g.Edges != nil {
		out.Edges = make([]Edge, len(g.Edges))
		for i, e := range g.Edges {
			out.Edges[i] = e.Clone()
		}
	}
	if g.Legend != nil {
		out.Legend = make([]LegendItem, len(g.Legend))
		copy(out.Legend, g.Legend)
	}
	return out
}

// Equal reports whether two graphs are structurally identical: same nodes,
// edges and legend items in the same order. Nil and empty slices compare equal.
func (g Graph) Equal(o Graph) bool {
	if len(g.Nodes) != len(o.Nodes) || len(g.Edges) != len(o.Edges) || len(g.Legend) != len(o.Legend) {
		return false
	}
	for i := range g.Nodes {
		if !g.Nodes[i].Equal(o.Nodes[i]) {
			return false
		}
	}
	for i := range g.Edges {
		if !g.Edges[i].Equal(o.Edges[i]) {
			return false
		}
	}
	for i := range g.Legend {
		if g.Legend[i] != o.Legend[i] {
			return false
		}
	}
	return true
}
