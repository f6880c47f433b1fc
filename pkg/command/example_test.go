package command_test

import (
	"fmt"

	"github.com/matzehuels/flowboard/pkg/command"
	"github.com/matzehuels/flowboard/pkg/flow"
)

func ExampleAlign() {
	g := flow.Graph{Nodes: []flow.Node{
		{ID: "A", Geometry: flow.Rect{X: 50, Y: 0, Width: 100, Height: 40}},
		{ID: "B", Geometry: flow.Rect{X: 120, Y: 80, Width: 100, Height: 40}},
	}}

	g = command.Align(g, command.Select("A", "B"), command.AlignLeft, command.DefaultConfig())
	for _, n := range g.Nodes {
		fmt.Println(n.ID, n.Geometry.X, n.Geometry.Y)
	}
	// Output:
	// A 50 0
	// B 50 80
}

func ExampleDuplicate() {
	g := flow.Graph{
		Nodes: []flow.Node{
			{ID: "A", Geometry: flow.Rect{Width: 100, Height: 40}},
			{ID: "B", Geometry: flow.Rect{X: 200, Width: 100, Height: 40}},
		},
		Edges: []flow.Edge{{ID: "ab", Source: "A", Target: "B"}},
	}

	g, ids := command.Duplicate(g, command.Select("A", "B"), command.DefaultConfig())
	fmt.Println("nodes:", g.NodeCount(), "edges:", g.EdgeCount(), "pasted:", len(ids))

	pasted, _ := g.Node(ids[0])
	fmt.Println("offset:", pasted.Geometry.X, pasted.Geometry.Y)
	// Output:
	// nodes: 4 edges: 2 pasted: 2
	// offset: 20 20
}
