package graph

import (
	"github.com/matzehuels/flowboard/pkg/flow"
)

// =============================================================================
// flow.Graph ↔ PersistedGraph Conversion
// =============================================================================

// ToPersisted converts the editing model to its serialization format.
// Node order, edge order and legend order are preserved. Width and height are
// always taken from the node's current geometry.
func ToPersisted(g flow.Graph) PersistedGraph {
	out := PersistedGraph{
		Nodes:  make([]Node, len(g.Nodes)),
		Edges:  make([]Edge, len(g.Edges)),
		Legend: make([]LegendItem, len(g.Legend)),
	}
	for i, n := range g.Nodes {
		out.Nodes[i] = nodeToPersisted(n)
	}
	for i, e := range g.Edges {
		out.Edges[i] = edgeToPersisted(e)
	}
	for i, l := range g.Legend {
		out.Legend[i] = LegendItem{Key: l.Key, Label: l.Label, Color: l.Color, Bg: l.Background}
	}
	return out
}

// FromPersisted converts a serialized graph to the editing model.
// Missing sizes fall back to the shape defaults and a missing label position
// to the middle of the edge. No structural validation is performed.
func FromPersisted(p PersistedGraph) flow.Graph {
	g := flow.Graph{
		Nodes:  make([]flow.Node, len(p.Nodes)),
		Edges:  make([]flow.Edge, len(p.Edges)),
		Legend: make([]flow.LegendItem, len(p.Legend)),
	}
	for i, n := range p.Nodes {
		g.Nodes[i] = nodeFromPersisted(n)
	}
	for i, e := range p.Edges {
		g.Edges[i] = edgeFromPersisted(e)
	}
	for i, l := range p.Legend {
		g.Legend[i] = flow.LegendItem{Key: l.Key, Label: l.Label, Color: l.Color, Background: l.Bg}
	}
	return g
}

// =============================================================================
// Internal Helpers
// =============================================================================

func nodeToPersisted(n flow.Node) Node {
	width, height := n.Geometry.Width, n.Geometry.Height
	out := Node{
		ID:          n.ID,
		ExternalRef: n.ExternalRef,
		ShapeKind:   string(n.Shape),
		Label:       n.Label,
		Position:    Position{X: n.Geometry.X, Y: n.Geometry.Y},
		Style: &Style{
			Fill:         n.Style.Fill,
			Stroke:       n.Style.Stroke,
			Text:         n.Style.Text,
			Width:        &width,
			Height:       &height,
			FontSize:     n.Style.FontSize,
			BorderRadius: n.Style.BorderRadius,
			Shadow:       n.Style.Shadow,
			Opacity:      copyFloat(n.Style.Opacity),
		},
		Locked:   n.Locked,
		ZIndex:   n.ZIndex,
		ParentID: n.ParentID,
	}
	if n.Kind != "" && n.Kind != flow.KindShape {
		out.NodeKind = string(n.Kind)
	}
	if n.Interaction != nil {
		out.Interaction = &Interaction{
			Action:          n.Interaction.Action,
			TargetType:      n.Interaction.TargetType,
			TargetProcessID: n.Interaction.TargetProcessID,
			TargetURL:       n.Interaction.TargetURL,
			Tooltip:         n.Interaction.Tooltip,
		}
	}
	return out
}

func nodeFromPersisted(p Node) flow.Node {
	n := flow.Node{
		ID:          p.ID,
		ExternalRef: p.ExternalRef,
		Kind:        flow.NodeKind(p.NodeKind),
		Shape:       flow.ShapeKind(p.ShapeKind),
		Label:       p.Label,
		Locked:      p.Locked,
		ZIndex:      p.ZIndex,
		ParentID:    p.ParentID,
	}
	desc := flow.Describe(n.Kind, n.Shape)
	n.Geometry = flow.Rect{X: p.Position.X, Y: p.Position.Y, Width: desc.DefaultWidth, Height: desc.DefaultHeight}

	if s := p.Style; s != nil {
		n.Style = flow.Style{
			Fill:         s.Fill,
			Stroke:       s.Stroke,
			Text:         s.Text,
			FontSize:     s.FontSize,
			BorderRadius: s.BorderRadius,
			Shadow:       s.Shadow,
			Opacity:      copyFloat(s.Opacity),
		}
		if s.Width != nil {
			n.Geometry.Width = *s.Width
		}
		if s.Height != nil {
			n.Geometry.Height = *s.Height
		}
	}
	if p.Interaction != nil {
		n.Interaction = &flow.Interaction{
			Action:          p.Interaction.Action,
			TargetType:      p.Interaction.TargetType,
			TargetProcessID: p.Interaction.TargetProcessID,
			TargetURL:       p.Interaction.TargetURL,
			Tooltip:         p.Interaction.Tooltip,
		}
	}
	return n
}

func edgeToPersisted(e flow.Edge) Edge {
	pos := e.LabelPosition
	out := Edge{
		ID:            e.ID,
		From:          e.Source,
		To:            e.Target,
		FromHandle:    e.SourceHandle,
		ToHandle:      e.TargetHandle,
		Label:         e.Label,
		Kind:          string(e.Kind),
		Color:         e.Color,
		Width:         e.Width,
		ArrowStart:    string(e.ArrowStart),
		ArrowEnd:      string(e.ArrowEnd),
		LabelPosition: &pos,
	}
	if e.Badge != nil {
		out.BadgeText = e.Badge.Text
		out.BadgeColor = e.Badge.Border
		out.BadgeBg = e.Badge.Background
	}
	return out
}

func edgeFromPersisted(p Edge) flow.Edge {
	e := flow.Edge{
		ID:            p.ID,
		Source:        p.From,
		Target:        p.To,
		SourceHandle:  p.FromHandle,
		TargetHandle:  p.ToHandle,
		Label:         p.Label,
		Kind:          flow.EdgeKind(p.Kind),
		Color:         p.Color,
		Width:         p.Width,
		ArrowStart:    flow.ArrowKind(p.ArrowStart),
		ArrowEnd:      flow.ArrowKind(p.ArrowEnd),
		LabelPosition: flow.DefaultLabelPosition,
	}
	if p.LabelPosition != nil {
		e.LabelPosition = *p.LabelPosition
	}
	badge := flow.Badge{Text: p.BadgeText, Border: p.BadgeColor, Background: p.BadgeBg}
	if !badge.Empty() {
		e.Badge = &badge
	}
	return e
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
