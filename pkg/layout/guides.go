package layout

import (
	"math"

	"github.com/matzehuels/flowboard/pkg/flow"
)

// DefaultTolerance is the snap distance for guides, in canvas pixels.
const DefaultTolerance = 5

// GuideAxis is the orientation of a guide line.
type GuideAxis string

// Guide axes. A vertical guide is a line of constant x.
const (
	AxisVertical   GuideAxis = "vertical"
	AxisHorizontal GuideAxis = "horizontal"
)

// Guide is an alignment hint line. Position is the matched x (vertical) or
// y (horizontal); Start and End span both nodes along the line.
type Guide struct {
	Axis     GuideAxis
	Position float64
	Start    float64
	End      float64
}

type anchorFunc func(flow.Rect) float64

var (
	xAnchors = []anchorFunc{flow.Rect.Left, flow.Rect.CenterX, flow.Rect.Right}
	yAnchors = []anchorFunc{flow.Rect.Top, flow.Rect.CenterY, flow.Rect.Bottom}
)

// Guides returns at most one vertical and one horizontal guide for the node
// being dragged. For each axis the dragging node's three anchors are compared
// with the same anchors of every other node in absolute coordinates, and the
// closest match within tolerance wins; ties go to the earlier node, then the
// earlier anchor. The dragging node's own descendants are ignored. Unknown
// ids yield no guides.
func Guides(g flow.Graph, draggingID string, tolerance float64) []Guide {
	d, ok := g.AbsoluteRect(draggingID)
	if !ok {
		return nil
	}
	skip := map[string]bool{draggingID: true}
	for _, id := range g.Descendants(draggingID) {
		skip[id] = true
	}

	vertical := best{dist: math.Inf(1)}
	horizontal := best{dist: math.Inf(1)}
	rects := g.AbsoluteRects()
	for i, n := range g.Nodes {
		if skip[n.ID] {
			continue
		}
		r := rects[i]
		vertical.consider(d, r, xAnchors, tolerance)
		horizontal.consider(d, r, yAnchors, tolerance)
	}

	var out []Guide
	if vertical.found {
		out = append(out, Guide{
			Axis:     AxisVertical,
			Position: vertical.pos,
			Start:    min(d.Top(), vertical.rect.Top()),
			End:      max(d.Bottom(), vertical.rect.Bottom()),
		})
	}
	if horizontal.found {
		out = append(out, Guide{
			Axis:     AxisHorizontal,
			Position: horizontal.pos,
			Start:    min(d.Left(), horizontal.rect.Left()),
			End:      max(d.Right(), horizontal.rect.Right()),
		})
	}
	return out
}

type best struct {
	found bool
	dist  float64
	pos   float64
	rect  flow.Rect
}

func (b *best) consider(d, r flow.Rect, anchors []anchorFunc, tolerance float64) {
	for _, anchor := range anchors {
		target := anchor(r)
		dist := math.Abs(anchor(d) - target)
		if dist <= tolerance && dist < b.dist {
			*b = best{found: true, dist: dist, pos: target, rect: r}
		}
	}
}
