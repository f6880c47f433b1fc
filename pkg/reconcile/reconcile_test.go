package reconcile

import (
	"fmt"
	"slices"
	"testing"

	"github.com/matzehuels/flowboard/pkg/flow"
	"github.com/matzehuels/flowboard/pkg/layout"
	"github.com/matzehuels/flowboard/pkg/source"
)

func options(policy OrphanPolicy) Options {
	n := 0
	return Options{
		Grid:   layout.DefaultGrid(),
		Policy: policy,
		NewID: func() string {
			n++
			return fmt.Sprintf("new-%d", n)
		},
	}
}

func baseGraph() flow.Graph {
	return flow.Graph{
		Nodes: []flow.Node{
			{
				ID: "n1", ExternalRef: "R1", Shape: flow.ShapeTask, Label: "Old label", Locked: true,
				Style:    flow.Style{Fill: "#f00"},
				Geometry: flow.Rect{X: 500, Y: 500, Width: 200, Height: 100},
			},
			{ID: "n2", ExternalRef: "R2", Shape: flow.ShapeTask, Label: "Same", Geometry: flow.Rect{Width: 160, Height: 72}},
			{ID: "gone", ExternalRef: "R9", Shape: flow.ShapeTask, Label: "Dropped", Geometry: flow.Rect{Width: 160, Height: 72}},
			{ID: "free", Shape: flow.ShapeTask, Label: "Freestanding", Geometry: flow.Rect{Width: 160, Height: 72}},
		},
		Edges: []flow.Edge{
			{ID: "e1", Source: "n1", Target: "gone"},
			{ID: "e2", Source: "n1", Target: "n2"},
		},
	}
}

func TestSync(t *testing.T) {
	g := baseGraph()
	rows := []source.Row{
		{Ref: "R1", Label: "New label"},
		{Ref: "R2", Label: "Same"},
		{Ref: "R3", Label: "Added", Shape: flow.ShapeGateway},
		{Ref: "R1", Label: "Ignored duplicate"},
	}

	got, rep := Sync(g, rows, options(OrphanDelete))

	n1, _ := got.Node("n1")
	if n1.Label != "New label" {
		t.Errorf("label = %q, want refreshed", n1.Label)
	}
	if !n1.Locked || n1.Style.Fill != "#f00" || n1.Geometry.X != 500 || n1.Geometry.Width != 200 {
		t.Errorf("user overrides lost: %+v", n1)
	}

	added, ok := got.Node("new-1")
	if !ok {
		t.Fatal("R3 did not create a node")
	}
	if added.ExternalRef != "R3" || added.Shape != flow.ShapeGateway || added.Geometry.Origin() != layout.DefaultGrid().Slot(2) {
		t.Errorf("created node = %+v", added)
	}

	if got.HasNode("gone") {
		t.Error("orphan should be removed under the delete policy")
	}
	if got.EdgeCount() != 1 || got.Edges[0].ID != "e2" {
		t.Errorf("edges = %+v, want only e2", got.Edges)
	}
	if !got.HasNode("free") {
		t.Error("freestanding node was touched")
	}

	checks := []struct {
		name string
		got  []string
		want []string
	}{
		{"Created", rep.Created, []string{"R3"}},
		{"Updated", rep.Updated, []string{"R1"}},
		{"Unchanged", rep.Unchanged, []string{"R2"}},
		{"Removed", rep.Removed, []string{"gone"}},
		{"Orphaned", rep.Orphaned, nil},
		{"Duplicates", rep.Duplicates, []string{"R1"}},
	}
	for _, c := range checks {
		if !slices.Equal(c.got, c.want) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if s := rep.String(); s != "1 created, 1 updated, 1 unchanged, 1 removed, 1 duplicate" {
		t.Errorf("String() = %q", s)
	}

	if g.Nodes[0].Label != "Old label" || g.NodeCount() != 4 {
		t.Error("Sync mutated its input")
	}
}

func TestSyncKeepPolicy(t *testing.T) {
	g := baseGraph()
	rows := []source.Row{{Ref: "R1", Label: "Old label"}, {Ref: "R2", Label: "Same"}}

	got, rep := Sync(g, rows, options(OrphanKeep))
	if !got.HasNode("gone") || got.EdgeCount() != 2 {
		t.Error("keep policy must not remove anything")
	}
	if !slices.Equal(rep.Orphaned, []string{"gone"}) || rep.Removed != nil {
		t.Errorf("report = %+v", rep)
	}
	if rep.Changed() || !got.Equal(g) {
		t.Error("a sync that only flags orphans should not change the graph")
	}
}

func TestSyncLiftsChildrenOfRemovedContainer(t *testing.T) {
	g := flow.Graph{Nodes: []flow.Node{
		{ID: "lane", Kind: flow.KindLane, ExternalRef: "L", Geometry: flow.Rect{X: 100, Y: 200, Width: 800, Height: 200}},
		{ID: "inside", ParentID: "lane", Label: "x", Geometry: flow.Rect{X: 10, Y: 20, Width: 50, Height: 50}},
	}}
	got, rep := Sync(g, nil, options(""))
	if !slices.Equal(rep.Removed, []string{"lane"}) {
		t.Fatalf("removed = %v", rep.Removed)
	}
	n, ok := got.Node("inside")
	if !ok || n.ParentID != "" || n.Geometry.X != 110 || n.Geometry.Y != 220 {
		t.Errorf("inside = %+v, want top-level at its old absolute position", n)
	}
}

func TestSyncIsStable(t *testing.T) {
	rows := []source.Row{{Ref: "A", Label: "One"}, {Ref: "B", Label: "Two"}}
	first, _ := Sync(flow.Graph{}, rows, options(OrphanDelete))
	second, rep := Sync(first, rows, options(OrphanDelete))
	if rep.Changed() || !second.Equal(first) {
		t.Errorf("second sync changed the graph: %s", rep)
	}
	if rep.String() != "2 unchanged" {
		t.Errorf("String() = %q", rep.String())
	}
}
