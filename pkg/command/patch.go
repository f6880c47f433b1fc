package command

import (
	"github.com/matzehuels/flowboard/pkg/flow"
)

// NodePatch lists node fields to overwrite. Nil fields are left alone.
type NodePatch struct {
	Label       *string
	Shape       *flow.ShapeKind
	ExternalRef *string
	Style       *flow.Style
	Locked      *bool
	Interaction *flow.Interaction
	// ClearInteraction removes the interaction; it wins over Interaction.
	ClearInteraction bool
}

func (p NodePatch) apply(n *flow.Node) {
	if p.Label != nil {
		n.Label = *p.Label
	}
	if p.Shape != nil {
		n.Shape = *p.Shape
	}
	if p.ExternalRef != nil {
		n.ExternalRef = *p.ExternalRef
	}
	if p.Style != nil {
		s := *p.Style
		if s.Opacity != nil {
			s.Opacity = flow.Float(*s.Opacity)
		}
		n.Style = s
	}
	if p.Locked != nil {
		n.Locked = *p.Locked
	}
	if p.Interaction != nil {
		ix := *p.Interaction
		n.Interaction = &ix
	}
	if p.ClearInteraction {
		n.Interaction = nil
	}
}

// PatchNodes applies patch to every selected node.
// The input is returned unchanged when no node would differ.
func PatchNodes(g flow.Graph, sel Selection, patch NodePatch) flow.Graph {
	idx := selected(g, sel.Nodes)
	if len(idx) == 0 {
		return g
	}
	out := g.Clone()
	for _, i := range idx {
		patch.apply(&out.Nodes[i])
	}
	if out.Equal(g) {
		return g
	}
	return out
}

// EdgePatch lists edge fields to overwrite. Nil fields are left alone.
type EdgePatch struct {
	Label         *string
	LabelPosition *float64 // Clamped to [0,1]
	Kind          *flow.EdgeKind
	Color         *string
	Width         *float64
	Badge         *flow.Badge // An empty badge removes it
	ArrowStart    *flow.ArrowKind
	ArrowEnd      *flow.ArrowKind
}

func (p EdgePatch) apply(e *flow.Edge) {
	if p.Label != nil {
		e.Label = *p.Label
	}
	if p.LabelPosition != nil {
		e.LabelPosition = flow.ClampLabelPosition(*p.LabelPosition)
	}
	if p.Kind != nil {
		e.Kind = *p.Kind
	}
	if p.Color != nil {
		e.Color = *p.Color
	}
	if p.Width != nil {
		e.Width = *p.Width
	}
	if p.Badge != nil {
		if p.Badge.Empty() {
			e.Badge = nil
		} else {
			b := *p.Badge
			e.Badge = &b
		}
	}
	if p.ArrowStart != nil {
		e.ArrowStart = *p.ArrowStart
	}
	if p.ArrowEnd != nil {
		e.ArrowEnd = *p.ArrowEnd
	}
}

// PatchEdges applies patch to every selected edge.
// The input is returned unchanged when no edge would differ.
func PatchEdges(g flow.Graph, sel Selection, patch EdgePatch) flow.Graph {
	want := make(map[string]bool, len(sel.Edges))
	for _, id := range sel.Edges {
		want[id] = true
	}
	out := g.Clone()
	for i := range out.Edges {
		if want[out.Edges[i].ID] {
			patch.apply(&out.Edges[i])
		}
	}
	if out.Equal(g) {
		return g
	}
	return out
}
