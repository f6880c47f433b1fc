package graph_test

import (
	"fmt"

	"github.com/matzehuels/flowboard/pkg/flow"
	"github.com/matzehuels/flowboard/pkg/graph"
)

func ExampleImport() {
	data := []byte(`{
		"nodes": [
			{"id": "start", "shapeKind": "start", "position": {"x": 40, "y": 40}},
			{"id": "review", "shapeKind": "task", "label": "Review", "position": {"x": 200, "y": 28},
			 "style": {"width": 200}}
		],
		"edges": [{"id": "e1", "from": "start", "to": "review", "arrowEnd": "arrowclosed"}]
	}`)

	g, err := graph.Import(data)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	for _, n := range g.Nodes {
		fmt.Printf("%s %vx%v\n", n.ID, n.Geometry.Width, n.Geometry.Height)
	}
	fmt.Println("label position:", g.Edges[0].LabelPosition)
	// Output:
	// start 48x48
	// review 200x72
	// label position: 0.5
}

func ExampleImport_rejected() {
	_, err := graph.Import([]byte(`[1, 2, 3]`))
	fmt.Println(err != nil)
	// Output:
	// true
}

func ExampleNewDocument() {
	g := flow.Graph{Nodes: []flow.Node{
		{ID: "a", Shape: flow.ShapeStart},
		{ID: "b", Shape: flow.ShapeEnd},
	}}
	doc := graph.NewDocument("onboarding", g)
	fmt.Println(doc.ProcessID, doc.EntryNodeID, len(doc.Nodes))
	// Output:
	// onboarding a 2
}
