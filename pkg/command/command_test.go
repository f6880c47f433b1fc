package command

import (
	"errors"
	"fmt"
	"testing"

	"github.com/matzehuels/flowboard/pkg/flow"
)

// seqConfig returns the default config with predictable ids.
func seqConfig() Config {
	cfg := DefaultConfig()
	n := 0
	cfg.NewID = func(prefix string) string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
	return cfg
}

func task(id string, x, y, w, h float64) flow.Node {
	return flow.Node{ID: id, Shape: flow.ShapeTask, Label: id, Geometry: flow.Rect{X: x, Y: y, Width: w, Height: h}}
}

func mustNode(t *testing.T, g flow.Graph, id string) flow.Node {
	t.Helper()
	n, ok := g.Node(id)
	if !ok {
		t.Fatalf("node %q missing", id)
	}
	return n
}

func TestAlign(t *testing.T) {
	base := flow.Graph{Nodes: []flow.Node{
		task("A", 50, 10, 100, 40),
		task("B", 120, 95, 100, 60),
	}}

	// Snapped targets: centre 135 -> 140, bottom 155 -> 160, middle 82.5 -> 80.
	tests := []struct {
		dir    AlignDirection
		wantAX float64
		wantBX float64
		wantAY float64
		wantBY float64
	}{
		{AlignLeft, 50, 50, 10, 95},
		{AlignRight, 120, 120, 10, 95},
		{AlignCenter, 90, 90, 10, 95},
		{AlignTop, 50, 120, 10, 10},
		{AlignBottom, 50, 120, 120, 100},
		{AlignMiddle, 50, 120, 60, 50},
	}
	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			g := Align(base, Select("A", "B"), tt.dir, DefaultConfig())
			a, b := mustNode(t, g, "A"), mustNode(t, g, "B")
			if a.Geometry.X != tt.wantAX || b.Geometry.X != tt.wantBX {
				t.Errorf("x = %v, %v; want %v, %v", a.Geometry.X, b.Geometry.X, tt.wantAX, tt.wantBX)
			}
			if a.Geometry.Y != tt.wantAY || b.Geometry.Y != tt.wantBY {
				t.Errorf("y = %v, %v; want %v, %v", a.Geometry.Y, b.Geometry.Y, tt.wantAY, tt.wantBY)
			}
		})
	}

	if base.Nodes[1].Geometry.X != 120 {
		t.Fatal("Align mutated its input")
	}
}

func TestAlignRequiresTwoNodes(t *testing.T) {
	g := flow.Graph{Nodes: []flow.Node{task("A", 50, 0, 100, 40), task("B", 120, 0, 100, 40)}}
	for _, sel := range []Selection{Select("A"), Select("A", "ghost"), Select()} {
		if got := Align(g, sel, AlignLeft, DefaultConfig()); !got.Equal(g) {
			t.Errorf("Align(%v) should be a no-op", sel.Nodes)
		}
		if CanAlign(g, sel) {
			t.Errorf("CanAlign(%v) = true", sel.Nodes)
		}
	}
	if !CanAlign(g, Select("A", "B")) {
		t.Error("CanAlign(A, B) = false")
	}
}

func TestAlignNestedUsesAbsoluteCoordinates(t *testing.T) {
	g := flow.Graph{Nodes: []flow.Node{
		{ID: "pool", Kind: flow.KindPool, Geometry: flow.Rect{X: 100, Y: 0, Width: 500, Height: 300}},
		{ID: "in", ParentID: "pool", Geometry: flow.Rect{X: 30, Y: 10, Width: 50, Height: 50}},
		task("out", 200, 200, 50, 50),
	}}
	g = Align(g, Select("in", "out"), AlignLeft, DefaultConfig())

	in, _ := g.AbsoluteRect("in")
	out, _ := g.AbsoluteRect("out")
	if in.X != 130 || out.X != 130 {
		t.Errorf("absolute x = %v, %v; want 130, 130", in.X, out.X)
	}
	if n := mustNode(t, g, "in"); n.Geometry.X != 30 {
		t.Errorf("nested relative x = %v, want 30", n.Geometry.X)
	}
}

func TestShiftCompensatesSelectedAncestor(t *testing.T) {
	container := func() flow.Graph {
		return flow.Graph{Nodes: []flow.Node{
			{ID: "c", Kind: flow.KindPool, Geometry: flow.Rect{X: 100, Y: 0, Width: 100, Height: 100}},
			{ID: "a", ParentID: "c", Geometry: flow.Rect{X: 50, Y: 10, Width: 20, Height: 20}},
			task("b", 0, 200, 20, 20),
		}}
	}
	spread := func() flow.Graph {
		return flow.Graph{Nodes: []flow.Node{
			{ID: "c", Kind: flow.KindPool, Geometry: flow.Rect{X: 0, Y: 0, Width: 100, Height: 100}},
			{ID: "a", ParentID: "c", Geometry: flow.Rect{X: 10, Y: 10, Width: 20, Height: 20}},
			task("b", 440, 200, 20, 20),
		}}
	}
	noSnap := DefaultConfig()
	noSnap.Grid = 0

	tests := []struct {
		name  string
		apply func() flow.Graph
		want  map[string]float64
		edge  func(flow.Rect) float64
	}{
		{
			name:  "AlignLeft",
			apply: func() flow.Graph { return Align(container(), Select("c", "a", "b"), AlignLeft, DefaultConfig()) },
			want:  map[string]float64{"c": 0, "a": 0, "b": 0},
			edge:  flow.Rect.Left,
		},
		{
			name:  "AlignRight",
			apply: func() flow.Graph { return Align(container(), Select("c", "a", "b"), AlignRight, DefaultConfig()) },
			want:  map[string]float64{"c": 200, "a": 200, "b": 200},
			edge:  flow.Rect.Right,
		},
		{
			name:  "DistributeHorizontal",
			apply: func() flow.Graph { return Distribute(spread(), Select("c", "a", "b"), Horizontal, noSnap) },
			want:  map[string]float64{"a": 20, "c": 235, "b": 450},
			edge:  flow.Rect.CenterX,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.apply()
			for id, want := range tt.want {
				r, ok := g.AbsoluteRect(id)
				if !ok {
					t.Fatalf("node %q missing", id)
				}
				if got := tt.edge(r); got != want {
					t.Errorf("%s = %v, want %v", id, got, want)
				}
			}
		})
	}
}

func TestDistribute(t *testing.T) {
	// Centres at x = 0, 50, 200.
	g := flow.Graph{Nodes: []flow.Node{
		task("C", 190, 7, 20, 20),
		task("A", -10, 3, 20, 20),
		task("B", 40, 5, 20, 20),
	}}
	got := Distribute(g, Select("A", "B", "C"), Horizontal, DefaultConfig())

	wantCenters := map[string]float64{"A": 0, "B": 100, "C": 200}
	for id, want := range wantCenters {
		n := mustNode(t, got, id)
		if c := n.Geometry.CenterX(); c != want {
			t.Errorf("%s centre = %v, want %v", id, c, want)
		}
	}
	if n := mustNode(t, got, "B"); n.Geometry.Y != 5 {
		t.Errorf("orthogonal axis moved: y = %v", n.Geometry.Y)
	}

	if same := Distribute(g, Select("A", "B"), Horizontal, DefaultConfig()); !same.Equal(g) {
		t.Error("Distribute with two nodes should be a no-op")
	}
	if CanDistribute(g, Select("A", "B")) || !CanDistribute(g, Select("A", "B", "C")) {
		t.Error("CanDistribute disagrees with Distribute")
	}
}

func TestDistributeVertical(t *testing.T) {
	g := flow.Graph{Nodes: []flow.Node{
		task("A", 0, 0, 20, 20),
		task("B", 0, 20, 20, 20),
		task("C", 0, 180, 20, 20),
	}}
	got := Distribute(g, Select("A", "B", "C"), Vertical, DefaultConfig())
	if c := mustNode(t, got, "B").Geometry.CenterY(); c != 100 {
		t.Errorf("B centre y = %v, want 100", c)
	}
}

func TestDuplicate(t *testing.T) {
	g := flow.Graph{
		Nodes: []flow.Node{task("A", 0, 0, 100, 50), task("B", 200, 0, 100, 50), task("C", 400, 0, 100, 50)},
		Edges: []flow.Edge{
			{ID: "ab", Source: "A", Target: "B"},
			{ID: "bc", Source: "B", Target: "C"},
		},
	}
	cfg := seqConfig()
	got, ids := Duplicate(g, Select("A", "B"), cfg)

	if len(ids) != 2 {
		t.Fatalf("new ids = %v, want 2", ids)
	}
	if got.NodeCount() != 5 || got.EdgeCount() != 3 {
		t.Fatalf("got %d nodes %d edges, want 5 and 3", got.NodeCount(), got.EdgeCount())
	}

	added := got.Edges[2]
	if added.ID == "ab" || added.Source != ids[0] || added.Target != ids[1] {
		t.Errorf("pasted edge = %+v, want remapped to %v", added, ids)
	}
	for k, id := range ids {
		pasted := mustNode(t, got, id)
		orig := g.Nodes[k]
		if pasted.Geometry == orig.Geometry {
			t.Errorf("%s sits exactly on %s", id, orig.ID)
		}
		if pasted.Geometry.X != orig.Geometry.X+20 || pasted.Geometry.Y != orig.Geometry.Y+20 {
			t.Errorf("%s offset = (%v,%v)", id, pasted.Geometry.X-orig.Geometry.X, pasted.Geometry.Y-orig.Geometry.Y)
		}
	}
	if g.NodeCount() != 3 {
		t.Error("Duplicate mutated its input")
	}
}

func TestCopyPasteContainer(t *testing.T) {
	g := flow.Graph{
		Nodes: []flow.Node{
			{ID: "grp", Kind: flow.KindGroup, Geometry: flow.Rect{X: 100, Y: 100, Width: 300, Height: 200}},
			{ID: "a", ParentID: "grp", Geometry: flow.Rect{X: 10, Y: 10, Width: 50, Height: 50}},
			{ID: "b", ParentID: "grp", Geometry: flow.Rect{X: 100, Y: 10, Width: 50, Height: 50}},
			task("x", 600, 0, 50, 50),
		},
		Edges: []flow.Edge{
			{ID: "ab", Source: "a", Target: "b"},
			{ID: "bx", Source: "b", Target: "x"},
		},
	}
	clip := Copy(g, Select("grp"))
	if len(clip.Nodes) != 3 || len(clip.Edges) != 1 {
		t.Fatalf("clipboard = %d nodes %d edges, want 3 and 1", len(clip.Nodes), len(clip.Edges))
	}

	got, ids := Paste(g, clip, seqConfig())
	container := mustNode(t, got, ids[0])
	if container.Geometry.X != 120 || container.Geometry.Y != 120 {
		t.Errorf("pasted container at (%v,%v), want (120,120)", container.Geometry.X, container.Geometry.Y)
	}
	for _, id := range ids[1:] {
		child := mustNode(t, got, id)
		if child.ParentID != container.ID {
			t.Errorf("%s parent = %q, want %q", id, child.ParentID, container.ID)
		}
	}
	if a := mustNode(t, got, ids[1]); a.Geometry.X != 10 {
		t.Errorf("nested child was offset: x = %v", a.Geometry.X)
	}

	shifted := clip.Shift(flow.Point{X: 20, Y: 20})
	if n := shifted.Nodes[0]; n.Geometry.X != 120 || n.Geometry.Y != 120 {
		t.Errorf("shifted container at (%v,%v), want (120,120)", n.Geometry.X, n.Geometry.Y)
	}
	if n := shifted.Nodes[1]; n.Geometry.X != 10 {
		t.Errorf("shift moved a nested node: x = %v", n.Geometry.X)
	}
	if clip.Nodes[0].Geometry.X != 100 {
		t.Error("Shift modified the original clipboard")
	}

	// Clipboard is detached from the graph.
	clip.Nodes[0].Label = "changed"
	if mustNode(t, g, "grp").Label == "changed" {
		t.Error("clipboard aliases graph nodes")
	}
	if CanPaste(Clipboard{}) {
		t.Error("CanPaste on empty clipboard")
	}
	if same, ids := Paste(g, Clipboard{}, DefaultConfig()); ids != nil || !same.Equal(g) {
		t.Error("pasting an empty clipboard should be a no-op")
	}
}

func TestGroupUngroupRoundTrip(t *testing.T) {
	g := flow.Graph{Nodes: []flow.Node{
		task("A", 40, 60, 100, 50),
		task("B", 300, 220, 80, 40),
		task("C", 700, 700, 80, 40),
	}}
	g.Nodes[0].ZIndex = 2
	g.Nodes[1].ZIndex = 5

	grouped, gid := Group(g, Select("A", "B"), seqConfig())
	if gid == "" {
		t.Fatal("Group returned no container id")
	}
	c := mustNode(t, grouped, gid)
	want := flow.Rect{X: 20, Y: 40, Width: 380, Height: 240}
	if c.Geometry != want {
		t.Errorf("container = %+v, want %+v", c.Geometry, want)
	}
	if c.Kind != flow.KindGroup || c.ZIndex != 1 {
		t.Errorf("container kind=%q z=%d", c.Kind, c.ZIndex)
	}
	a := mustNode(t, grouped, "A")
	if a.ParentID != gid || a.Geometry.X != 20 || a.Geometry.Y != 20 {
		t.Errorf("A = parent %q at (%v,%v)", a.ParentID, a.Geometry.X, a.Geometry.Y)
	}
	for _, id := range []string{"A", "B"} {
		before, _ := g.AbsoluteRect(id)
		after, _ := grouped.AbsoluteRect(id)
		if before != after {
			t.Errorf("%s moved on group: %+v -> %+v", id, before, after)
		}
	}

	for name, sel := range map[string]Selection{"Container": Select(gid), "Member": Select("A")} {
		t.Run(name, func(t *testing.T) {
			if !CanUngroup(grouped, sel) {
				t.Fatal("CanUngroup = false")
			}
			back := Ungroup(grouped, sel)
			if !back.Equal(g) {
				t.Errorf("ungroup did not restore the original graph:\n got  %+v\n want %+v", back.Nodes, g.Nodes)
			}
		})
	}
}

func TestGroupInsideSharedParent(t *testing.T) {
	g := flow.Graph{Nodes: []flow.Node{
		{ID: "lane", Kind: flow.KindLane, Geometry: flow.Rect{X: 100, Y: 100, Width: 800, Height: 200}},
		{ID: "a", ParentID: "lane", Geometry: flow.Rect{X: 40, Y: 40, Width: 60, Height: 40}},
		{ID: "b", ParentID: "lane", Geometry: flow.Rect{X: 200, Y: 40, Width: 60, Height: 40}},
	}}
	grouped, gid := Group(g, Select("a", "b"), seqConfig())
	c := mustNode(t, grouped, gid)
	if c.ParentID != "lane" {
		t.Errorf("container parent = %q, want lane", c.ParentID)
	}
	if c.Geometry.X != 20 || c.Geometry.Y != 20 {
		t.Errorf("container relative origin = (%v,%v), want (20,20)", c.Geometry.X, c.Geometry.Y)
	}
	if back := Ungroup(grouped, Select(gid)); !back.Equal(g) {
		t.Error("ungroup inside a lane did not restore the original graph")
	}
}

func TestGroupPreconditions(t *testing.T) {
	g := flow.Graph{Nodes: []flow.Node{
		{ID: "grp", Kind: flow.KindGroup, Geometry: flow.Rect{Width: 100, Height: 100}},
		{ID: "child", ParentID: "grp", Geometry: flow.Rect{Width: 10, Height: 10}},
		task("solo", 300, 0, 10, 10),
	}}
	// child is nested in a selected node and does not count.
	if CanGroup(g, Select("grp", "child")) {
		t.Error("CanGroup should ignore nested selections")
	}
	if same, id := Group(g, Select("solo"), DefaultConfig()); id != "" || !same.Equal(g) {
		t.Error("Group with one node should be a no-op")
	}
	if CanUngroup(g, Select("solo")) {
		t.Error("CanUngroup on a top-level shape")
	}
	if same := Ungroup(g, Select("solo")); !same.Equal(g) {
		t.Error("Ungroup without targets should be a no-op")
	}
}

func TestUngroupRemovesContainerEdges(t *testing.T) {
	g := flow.Graph{
		Nodes: []flow.Node{
			{ID: "grp", Kind: flow.KindGroup, Geometry: flow.Rect{X: 10, Y: 10, Width: 100, Height: 100}},
			{ID: "a", ParentID: "grp", Geometry: flow.Rect{X: 5, Y: 5, Width: 10, Height: 10}},
			task("b", 300, 0, 10, 10),
		},
		Edges: []flow.Edge{{ID: "gb", Source: "grp", Target: "b"}, {ID: "ab", Source: "a", Target: "b"}},
	}
	got := Ungroup(g, Select("grp"))
	if got.HasNode("grp") || got.EdgeCount() != 1 || got.Edges[0].ID != "ab" {
		t.Errorf("got nodes %+v edges %+v", got.Nodes, got.Edges)
	}
	if a := mustNode(t, got, "a"); a.ParentID != "" || a.Geometry.X != 15 {
		t.Errorf("a = parent %q x %v", a.ParentID, a.Geometry.X)
	}
}

func TestZOrder(t *testing.T) {
	g := flow.Graph{Nodes: []flow.Node{task("A", 0, 0, 1, 1), task("B", 0, 0, 1, 1), task("C", 0, 0, 1, 1)}}
	g.Nodes[0].ZIndex = 3
	g.Nodes[1].ZIndex = 1
	g.Nodes[2].ZIndex = 2

	tests := []struct {
		name string
		fn   func(flow.Graph, Selection) flow.Graph
		want int
	}{
		{"BringToFront", BringToFront, 4},
		{"SendToBack", SendToBack, -1},
		{"BringForward", BringForward, 2},
		{"SendBackward", SendBackward, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(g, Select("B"))
			if z := mustNode(t, got, "B").ZIndex; z != tt.want {
				t.Errorf("z = %d, want %d", z, tt.want)
			}
			if mustNode(t, g, "B").ZIndex != 1 {
				t.Error("input mutated")
			}
		})
	}

	g.Nodes[1].ZIndex = -4
	if z := mustNode(t, SendToBack(g, Select("A")), "A").ZIndex; z != -5 {
		t.Errorf("SendToBack below negative minimum: z = %d, want -5", z)
	}
}

func TestDelete(t *testing.T) {
	g := flow.Graph{
		Nodes: []flow.Node{
			{ID: "pool", Kind: flow.KindPool, Geometry: flow.Rect{Width: 500, Height: 300}},
			{ID: "in", ParentID: "pool", Geometry: flow.Rect{Width: 10, Height: 10}},
			task("locked", 600, 0, 10, 10),
			task("free", 800, 0, 10, 10),
		},
		Edges: []flow.Edge{
			{ID: "e1", Source: "in", Target: "free"},
			{ID: "e2", Source: "locked", Target: "free"},
		},
	}
	g.Nodes[2].Locked = true

	got := Delete(g, Select("pool", "locked"))
	if got.HasNode("pool") || got.HasNode("in") {
		t.Error("container and its contents should be removed")
	}
	if !got.HasNode("locked") {
		t.Error("locked node was deleted")
	}
	if got.EdgeCount() != 1 || got.Edges[0].ID != "e2" {
		t.Errorf("edges = %+v, want only e2", got.Edges)
	}

	onlyEdge := Delete(g, Selection{Edges: []string{"e2"}})
	if onlyEdge.EdgeCount() != 1 || onlyEdge.NodeCount() != 4 {
		t.Error("deleting an edge should keep every node")
	}
	if same := Delete(g, Select("locked")); !same.Equal(g) {
		t.Error("deleting only locked nodes should be a no-op")
	}
}

func TestConnect(t *testing.T) {
	g := flow.Graph{Nodes: []flow.Node{
		task("A", 0, 0, 10, 10),
		task("B", 100, 0, 10, 10),
		{ID: "note", Shape: flow.ShapeAnnotation},
	}}
	cfg := seqConfig()

	got, id := Connect(g, "A", "B", EdgeOptions{SourceHandle: flow.HandleRight}, cfg)
	if id == "" || got.EdgeCount() != 1 {
		t.Fatal("Connect did not add an edge")
	}
	e := got.Edges[0]
	if e.Kind != flow.EdgeOrthogonal || e.ArrowEnd != flow.ArrowClosed || e.LabelPosition != 0.5 || e.Width != flow.DefaultEdgeWidth {
		t.Errorf("edge defaults = %+v", e)
	}

	noops := []struct {
		name     string
		src, dst string
		opts     EdgeOptions
	}{
		{"SelfLoop", "A", "A", EdgeOptions{}},
		{"UnknownSource", "ghost", "B", EdgeOptions{}},
		{"UnknownTarget", "A", "ghost", EdgeOptions{}},
		{"BadHandle", "A", "note", EdgeOptions{TargetHandle: flow.HandleRight}},
	}
	for _, tt := range noops {
		t.Run(tt.name, func(t *testing.T) {
			same, id := Connect(g, tt.src, tt.dst, tt.opts, cfg)
			if id != "" || !same.Equal(g) {
				t.Error("expected no-op")
			}
		})
	}
}

func TestReparent(t *testing.T) {
	g := flow.Graph{Nodes: []flow.Node{
		{ID: "pool", Kind: flow.KindPool, Geometry: flow.Rect{X: 100, Y: 100, Width: 500, Height: 300}},
		{ID: "lane", Kind: flow.KindLane, ParentID: "pool", Geometry: flow.Rect{X: 20, Y: 20, Width: 400, Height: 100}},
		task("t", 300, 300, 10, 10),
	}}

	got, err := Reparent(g, "t", "lane")
	if err != nil {
		t.Fatalf("Reparent: %v", err)
	}
	n := mustNode(t, got, "t")
	if n.ParentID != "lane" || n.Geometry.X != 180 || n.Geometry.Y != 180 {
		t.Errorf("t = parent %q at (%v,%v)", n.ParentID, n.Geometry.X, n.Geometry.Y)
	}
	back, err := Reparent(got, "t", "")
	if err != nil || !back.Equal(g) {
		t.Errorf("moving back to top level: err=%v", err)
	}

	tests := []struct {
		name, id, parent string
		want             error
	}{
		{"Self", "pool", "pool", ErrCycle},
		{"Descendant", "pool", "lane", ErrCycle},
		{"UnknownNode", "ghost", "", ErrUnknownNode},
		{"UnknownParent", "t", "ghost", ErrUnknownNode},
		{"NotContainer", "lane", "t", ErrNotContainer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			same, err := Reparent(g, tt.id, tt.parent)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if !same.Equal(g) {
				t.Error("failed reparent changed the graph")
			}
		})
	}
}

func TestMoveResizeAdd(t *testing.T) {
	g := flow.Graph{Nodes: []flow.Node{task("A", 0, 0, 10, 10)}}

	if got := MoveTo(g, "A", 30, 40); mustNode(t, got, "A").Geometry.Origin() != (flow.Point{X: 30, Y: 40}) {
		t.Error("MoveTo did not move")
	}
	if got := MoveBy(g, Select("A"), 5, -5); mustNode(t, got, "A").Geometry.Origin() != (flow.Point{X: 5, Y: -5}) {
		t.Error("MoveBy did not move")
	}
	if got := Resize(g, "A", 0, 20); !got.Equal(g) {
		t.Error("Resize to zero width should be a no-op")
	}
	if got := Resize(g, "A", 200, 20); mustNode(t, got, "A").Geometry.Width != 200 {
		t.Error("Resize did not resize")
	}

	locked := g.Clone()
	locked.Nodes[0].Locked = true
	if got := MoveBy(locked, Select("A"), 5, 5); !got.Equal(locked) {
		t.Error("MoveBy moved a locked node")
	}

	added, id := AddNode(g, flow.Node{Shape: flow.ShapeGateway}, seqConfig())
	n := mustNode(t, added, id)
	if n.Geometry.Width != 64 || n.Geometry.Height != 64 {
		t.Errorf("new gateway size = %vx%v", n.Geometry.Width, n.Geometry.Height)
	}
	if same, id := AddNode(g, flow.Node{ID: "A"}, DefaultConfig()); id != "" || !same.Equal(g) {
		t.Error("adding a duplicate id should be a no-op")
	}
}

func TestPatch(t *testing.T) {
	g := flow.Graph{
		Nodes: []flow.Node{task("A", 0, 0, 10, 10), task("B", 0, 0, 10, 10)},
		Edges: []flow.Edge{{ID: "e", Source: "A", Target: "B", LabelPosition: 0.5, Badge: &flow.Badge{Text: "x"}}},
	}
	label := "Review"
	lock := true
	got := PatchNodes(g, Select("A"), NodePatch{
		Label:       &label,
		Locked:      &lock,
		Style:       &flow.Style{Fill: "#eee", Opacity: flow.Float(0.5)},
		Interaction: &flow.Interaction{Action: flow.ActionTooltip, Tooltip: "hi"},
	})
	a := mustNode(t, got, "A")
	if a.Label != "Review" || !a.Locked || a.Style.Fill != "#eee" || a.Interaction == nil {
		t.Errorf("patched node = %+v", a)
	}
	if mustNode(t, got, "B").Label != "B" {
		t.Error("unselected node was patched")
	}

	pos := 1.7
	got = PatchEdges(g, Selection{Edges: []string{"e"}}, EdgePatch{LabelPosition: &pos, Badge: &flow.Badge{}})
	if e := got.Edges[0]; e.LabelPosition != 1 || e.Badge != nil {
		t.Errorf("patched edge = %+v", e)
	}
	if g.Edges[0].Badge == nil {
		t.Error("input edge mutated")
	}

	same := "A"
	if out := PatchNodes(g, Select("A"), NodePatch{Label: &same}); !out.Equal(g) {
		t.Error("identical patch should leave the graph equal")
	}
}
