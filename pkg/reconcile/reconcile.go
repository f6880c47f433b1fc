// Package reconcile merges an ordered process table into a flowboard chart.
//
// Rows are the source of truth for which reference-linked nodes exist and in
// what order new ones are placed. A row whose reference matches a node
// refreshes that node's label and leaves everything the user set by hand
// (style, position, size, lock, containment) alone. A row with no node gets
// a new one at the row's slot on the layout grid. Nodes without an external
// reference are never touched.
//
// When a reference disappears from the table, [Options.Policy] decides what
// happens to its node: [OrphanDelete] (the default) removes it together with
// its edges, [OrphanKeep] leaves it in place and only lists it in
// [Report.Orphaned].
package reconcile

import (
	"fmt"
	"strings"

	"github.com/matzehuels/flowboard/pkg/command"
	"github.com/matzehuels/flowboard/pkg/flow"
	"github.com/matzehuels/flowboard/pkg/layout"
	"github.com/matzehuels/flowboard/pkg/source"
)

// OrphanPolicy selects what Sync does with nodes whose reference is gone.
type OrphanPolicy string

// Orphan policies.
const (
	OrphanDelete OrphanPolicy = "delete"
	OrphanKeep   OrphanPolicy = "keep"
)

// Options configures [Sync].
type Options struct {
	Grid   layout.Grid
	Policy OrphanPolicy   // Empty means OrphanDelete
	Shape  flow.ShapeKind // Shape for new nodes when the row has none; empty means task
	NewID  func() string  // Id generator for new nodes; nil uses command.NewID
}

// Report summarises a sync. Created, Updated, Unchanged and Duplicates hold
// row references; Removed and Orphaned hold node ids.
type Report struct {
	Created    []string `json:"created"`
	Updated    []string `json:"updated"`
	Unchanged  []string `json:"unchanged"`
	Removed    []string `json:"removed"`
	Orphaned   []string `json:"orphaned"`
	Duplicates []string `json:"duplicates"`
}

// Changed reports whether the sync modified the graph.
func (r Report) Changed() bool {
	return len(r.Created) > 0 || len(r.Updated) > 0 || len(r.Removed) > 0
}

// String returns a one-line summary such as "2 created, 1 updated".
func (r Report) String() string {
	var parts []string
	add := func(n int, what string) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, what))
		}
	}
	add(len(r.Created), "created")
	add(len(r.Updated), "updated")
	add(len(r.Unchanged), "unchanged")
	add(len(r.Removed), "removed")
	add(len(r.Orphaned), "orphaned")
	add(len(r.Duplicates), "duplicate")
	if len(parts) == 0 {
		return "nothing to sync"
	}
	return strings.Join(parts, ", ")
}

// Sync merges rows into g and returns the new graph with a report. The input
// graph is not modified; when nothing changes it is returned as is.
// A reference repeated in rows is applied once, from its first row.
func Sync(g flow.Graph, rows []source.Row, opts Options) (flow.Graph, Report) {
	newID := opts.NewID
	if newID == nil {
		newID = func() string { return command.NewID("node") }
	}

	var rep Report
	out := g.Clone()
	refs := layout.RefIndex(out)
	seen := make(map[string]bool, len(rows))

	for i, row := range rows {
		if row.Ref == "" {
			continue
		}
		if seen[row.Ref] {
			rep.Duplicates = append(rep.Duplicates, row.Ref)
			continue
		}
		seen[row.Ref] = true

		if at, ok := refs[row.Ref]; ok {
			if out.Nodes[at].Label == row.Label {
				rep.Unchanged = append(rep.Unchanged, row.Ref)
				continue
			}
			out.Nodes[at].Label = row.Label
			rep.Updated = append(rep.Updated, row.Ref)
			continue
		}

		n := layout.NodeForRow(newID(), row, opts.Grid.Slot(i), opts.Shape)
		out.Nodes = append(out.Nodes, n)
		refs[row.Ref] = len(out.Nodes) - 1
		rep.Created = append(rep.Created, row.Ref)
	}

	for _, n := range out.Nodes {
		if n.ExternalRef != "" && !seen[n.ExternalRef] {
			rep.Orphaned = append(rep.Orphaned, n.ID)
		}
	}
	if opts.Policy != OrphanKeep && len(rep.Orphaned) > 0 {
		out = removeOrphans(out, rep.Orphaned)
		rep.Removed, rep.Orphaned = rep.Orphaned, nil
	}

	if !rep.Changed() {
		return g, rep
	}
	return out, rep
}

// removeOrphans drops the given nodes and their edges. Children of a
// removed node are lifted into its parent and keep their absolute position.
func removeOrphans(g flow.Graph, ids []string) flow.Graph {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	for _, id := range ids {
		i, ok := g.Index()[id]
		if !ok {
			continue
		}
		gone := g.Nodes[i]
		for j := range g.Nodes {
			if g.Nodes[j].ParentID == gone.ID {
				g.Nodes[j].Geometry = g.Nodes[j].Geometry.Translate(gone.Geometry.Origin())
				g.Nodes[j].ParentID = gone.ParentID
			}
		}
	}

	nodes := g.Nodes[:0:0]
	for _, n := range g.Nodes {
		if !drop[n.ID] {
			nodes = append(nodes, n)
		}
	}
	var edges []flow.Edge
	for _, e := range g.Edges {
		if !drop[e.Source] && !drop[e.Target] {
			edges = append(edges, e)
		}
	}
	g.Nodes, g.Edges = nodes, edges
	return g
}
