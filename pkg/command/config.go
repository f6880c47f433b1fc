package command

import (
	"errors"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/flowboard/pkg/flow"
)

// Sentinel errors for structural edits.
var (
	// ErrCycle is returned when a reparent would make a node its own ancestor.
	ErrCycle = errors.New("containment cycle")

	// ErrUnknownNode is returned when an id does not resolve to a node.
	ErrUnknownNode = errors.New("unknown node")

	// ErrNotContainer is returned when a reparent targets a non-container node.
	ErrNotContainer = errors.New("not a container")
)

// Defaults used by [DefaultConfig].
const (
	DefaultGrid         = 10
	DefaultPasteOffset  = 20
	DefaultGroupPadding = 20
)

// Config holds the tunables shared by all commands.
type Config struct {
	Grid         float64    // Snap increment for align/distribute; 0 disables snapping
	PasteOffset  flow.Point // Shift applied to pasted top-level nodes
	GroupPadding float64    // Margin between a group and its members

	// NewID generates ids for pasted nodes, new edges and group containers.
	// The prefix is "node", "edge" or "group". Nil uses [NewID].
	NewID func(prefix string) string
}

// DefaultConfig returns the editor defaults.
func DefaultConfig() Config {
	return Config{
		Grid:         DefaultGrid,
		PasteOffset:  flow.Point{X: DefaultPasteOffset, Y: DefaultPasteOffset},
		GroupPadding: DefaultGroupPadding,
	}
}

// NewID returns a random id of the form "<prefix>-<uuid>".
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// ID generates an id with the configured generator.
func (c Config) ID(prefix string) string {
	if c.NewID != nil {
		return c.NewID(prefix)
	}
	return NewID(prefix)
}

// Selection is the set of node and edge ids a command applies to.
// Order is irrelevant; unknown ids are ignored.
type Selection struct {
	Nodes []string
	Edges []string
}

// Select builds a node selection.
func Select(ids ...string) Selection { return Selection{Nodes: ids} }

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool { return len(s.Nodes) == 0 && len(s.Edges) == 0 }

// HasNode reports whether node id is selected.
func (s Selection) HasNode(id string) bool { return slices.Contains(s.Nodes, id) }

// HasEdge reports whether edge id is selected.
func (s Selection) HasEdge(id string) bool { return slices.Contains(s.Edges, id) }

// selected returns the slice positions of the selected nodes that exist in g,
// in graph order and without duplicates.
func selected(g flow.Graph, ids []string) []int {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []int
	seen := make(map[string]bool, len(ids))
	for i, n := range g.Nodes {
		if want[n.ID] && !seen[n.ID] {
			seen[n.ID] = true
			out = append(out, i)
		}
	}
	return out
}

// topmost drops positions whose node has a selected ancestor.
func topmost(g flow.Graph, idx []int) []int {
	ids := make([]string, len(idx))
	for k, i := range idx {
		ids[k] = g.Nodes[i].ID
	}
	var out []int
	for _, i := range idx {
		nested := false
		for _, other := range ids {
			if other != g.Nodes[i].ID && g.IsAncestor(other, g.Nodes[i].ID) {
				nested = true
				break
			}
		}
		if !nested {
			out = append(out, i)
		}
	}
	return out
}

// removeNodes returns g without the given node ids and without every edge
// touching one of them or listed in edgeIDs. g is not modified.
func removeNodes(g flow.Graph, nodeIDs, edgeIDs map[string]bool) flow.Graph {
	out := flow.Graph{Legend: slices.Clone(g.Legend)}
	for _, n := range g.Nodes {
		if !nodeIDs[n.ID] {
			out.Nodes = append(out.Nodes, n.Clone())
		}
	}
	for _, e := range g.Edges {
		if edgeIDs[e.ID] || nodeIDs[e.Source] || nodeIDs[e.Target] {
			continue
		}
		out.Edges = append(out.Edges, e.Clone())
	}
	return out
}
