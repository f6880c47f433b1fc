package layout

import (
	"github.com/matzehuels/flowboard/pkg/flow"
	"github.com/matzehuels/flowboard/pkg/source"
)

// Grid defaults.
const (
	DefaultColumns  = 5
	DefaultSpacingX = 240
	DefaultSpacingY = 160
	DefaultOriginX  = 40
	DefaultOriginY  = 40
)

// Grid is the slot raster used to place source rows.
type Grid struct {
	Columns  int
	SpacingX float64
	SpacingY float64
	OriginX  float64
	OriginY  float64
}

// DefaultGrid returns a five-column grid with 240x160 spacing.
func DefaultGrid() Grid {
	return Grid{
		Columns:  DefaultColumns,
		SpacingX: DefaultSpacingX,
		SpacingY: DefaultSpacingY,
		OriginX:  DefaultOriginX,
		OriginY:  DefaultOriginY,
	}
}

// Slot returns the canvas position of slot i, filling rows left to right.
func (g Grid) Slot(i int) flow.Point {
	cols := max(g.Columns, 1)
	return flow.Point{
		X: g.OriginX + float64(i%cols)*g.SpacingX,
		Y: g.OriginY + float64(i/cols)*g.SpacingY,
	}
}

// NodeForRow builds the node created for a source row that has none yet.
// The shape is the row's own when set and fallback otherwise; the size is
// the shape default.
func NodeForRow(id string, row source.Row, at flow.Point, fallback flow.ShapeKind) flow.Node {
	shape := row.Shape
	if shape == "" {
		shape = fallback
	}
	if shape == "" {
		shape = flow.ShapeTask
	}
	desc := flow.Describe(flow.KindShape, shape)
	return flow.Node{
		ID:          id,
		ExternalRef: row.Ref,
		Kind:        flow.KindShape,
		Shape:       shape,
		Label:       row.Label,
		Geometry:    flow.Rect{X: at.X, Y: at.Y, Width: desc.DefaultWidth, Height: desc.DefaultHeight},
	}
}

// RefIndex maps external references to node positions. Nodes without a
// reference are skipped and the first node wins for duplicated references.
func RefIndex(g flow.Graph) map[string]int {
	idx := make(map[string]int)
	for i, n := range g.Nodes {
		if n.ExternalRef == "" {
			continue
		}
		if _, dup := idx[n.ExternalRef]; !dup {
			idx[n.ExternalRef] = i
		}
	}
	return idx
}

// AutoLayout moves the node of each row to its slot and returns the new
// graph. Nodes keep style, label and lock state; parented nodes get the
// slot converted into their parent's frame. Rows without a node get a new
// node built by [NodeForRow] with an id from newID. Later rows repeating a
// reference are ignored.
func AutoLayout(g flow.Graph, rows []source.Row, grid Grid, newID func() string) flow.Graph {
	out := g.Clone()
	refs := RefIndex(out)
	placed := make(map[string]bool, len(rows))

	for i, row := range rows {
		if row.Ref == "" || placed[row.Ref] {
			continue
		}
		placed[row.Ref] = true
		slot := grid.Slot(i)

		if at, ok := refs[row.Ref]; ok {
			frame := out.Origin(out.Nodes[at].ID)
			out.Nodes[at].Geometry.X = slot.X - frame.X
			out.Nodes[at].Geometry.Y = slot.Y - frame.Y
			continue
		}
		out.Nodes = append(out.Nodes, NodeForRow(newID(), row, slot, flow.ShapeTask))
		refs[row.Ref] = len(out.Nodes) - 1
	}
	if out.Equal(g) {
		return g
	}
	return out
}
