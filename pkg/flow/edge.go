package flow

// EdgeKind is how the renderer routes an edge.
type EdgeKind string

// Edge kinds.
const (
	EdgeOrthogonal EdgeKind = "orthogonal"
	EdgeStep       EdgeKind = "step"
	EdgeSmooth     EdgeKind = "smooth"
)

// ArrowKind is the marker drawn at an edge end.
type ArrowKind string

// Arrow kinds.
const (
	ArrowNone    ArrowKind = "none"
	ArrowOpen    ArrowKind = "arrow"
	ArrowClosed  ArrowKind = "arrowclosed"
	ArrowDiamond ArrowKind = "diamond"
	ArrowCircle  ArrowKind = "circle"
)

// Edge defaults applied when a persisted edge omits the field.
const (
	DefaultLabelPosition = 0.5
	DefaultEdgeWidth     = 1.5
)

// Badge is a small label pill drawn on an edge.
type Badge struct {
	Text       string
	Border     string
	Background string
}

// Empty reports whether the badge carries no data.
func (b Badge) Empty() bool { return b == Badge{} }

// Edge is a directed connection between two nodes.
type Edge struct {
	ID            string
	Source        string
	Target        string
	SourceHandle  string
	TargetHandle  string
	Kind          EdgeKind
	Label         string
	LabelPosition float64 // Fraction along the path, in [0,1]
	Color         string
	Width         float64
	Badge         *Badge // nil when the edge has no badge
	ArrowStart    ArrowKind
	ArrowEnd      ArrowKind
}

// Touches reports whether the edge starts or ends at node id.
func (e Edge) Touches(id string) bool { return e.Source == id || e.Target == id }

// Clone returns a deep copy of the edge.
func (e Edge) Clone() Edge {
	out := e
	if e.Badge != nil {
		b := *e.Badge
		out.Badge = &b
	}
	return out
}

// Equal reports whether two edges carry the same data.
func (e Edge) Equal(o Edge) bool {
	a, b := e, o
	a.Badge, b.Badge = nil, nil
	if a != b {
		return false
	}
	switch {
	case e.Badge == nil && o.Badge == nil:
		return true
	case e.Badge == nil || o.Badge == nil:
		return false
	default:
		return *e.Badge == *o.Badge
	}
}

// ClampLabelPosition limits v to [0,1].
func ClampLabelPosition(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// LegendItem is a decorative key explaining a colour used in the chart.
type LegendItem struct {
	Key        string
	Label      string
	Color      string
	Background string
}
