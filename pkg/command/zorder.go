package command

import (
	"github.com/matzehuels/flowboard/pkg/flow"
)

// BringToFront places the selected nodes above every other node.
func BringToFront(g flow.Graph, sel Selection) flow.Graph {
	z := g.MaxZ() + 1
	return setZ(g, sel, func(int) int { return z })
}

// SendToBack places the selected nodes below every other node and below the
// default layer 0.
func SendToBack(g flow.Graph, sel Selection) flow.Graph {
	z := min(g.MinZ(), 0) - 1
	return setZ(g, sel, func(int) int { return z })
}

// BringForward raises each selected node by one layer.
func BringForward(g flow.Graph, sel Selection) flow.Graph {
	return setZ(g, sel, func(z int) int { return z + 1 })
}

// SendBackward lowers each selected node by one layer.
func SendBackward(g flow.Graph, sel Selection) flow.Graph {
	return setZ(g, sel, func(z int) int { return z - 1 })
}

func setZ(g flow.Graph, sel Selection, next func(int) int) flow.Graph {
	idx := selected(g, sel.Nodes)
	if len(idx) == 0 {
		return g
	}
	out := g.Clone()
	for _, i := range idx {
		out.Nodes[i].ZIndex = next(out.Nodes[i].ZIndex)
	}
	return out
}
