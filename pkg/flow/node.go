package flow

// NodeKind is the variant tag of a [Node].
type NodeKind string

// Node kinds. The empty string is read as KindShape so that persisted graphs
// may omit the field.
const (
	KindShape NodeKind = "shape"
	KindPool  NodeKind = "pool"
	KindLane  NodeKind = "lane"
	KindGroup NodeKind = "group"
)

// Normalize maps the empty kind to KindShape.
func (k NodeKind) Normalize() NodeKind {
	if k == "" {
		return KindShape
	}
	return k
}

// IsContainer reports whether nodes of this kind hold other nodes.
func (k NodeKind) IsContainer() bool {
	switch k {
	case KindPool, KindLane, KindGroup:
		return true
	}
	return false
}

// Style holds the visual overrides of a node. Empty strings and zero values
// mean "use the renderer default", except Opacity which is nil when unset so
// that a fully transparent node can be expressed.
type Style struct {
	Fill         string
	Stroke       string
	Text         string
	FontSize     float64
	BorderRadius float64
	Opacity      *float64
	Shadow       bool
}

// Interaction actions.
const (
	ActionNavigate = "navigate"
	ActionOpen     = "open"
	ActionTooltip  = "tooltip"
)

// Interaction describes what happens when a node is activated in a viewer.
type Interaction struct {
	Action          string
	TargetType      string
	TargetProcessID string
	TargetURL       string
	Tooltip         string
}

// Node is a positioned entity of the flowchart.
//
// Geometry is relative to the parent's origin when ParentID is set and
// absolute otherwise; use [Graph.AbsoluteRect] to resolve it.
type Node struct {
	ID          string
	ExternalRef string // Source row reference (optional)
	Kind        NodeKind
	Shape       ShapeKind
	Label       string
	Geometry    Rect
	Style       Style
	Interaction *Interaction
	Locked      bool
	ZIndex      int
	ParentID    string
}

// IsContainer reports whether the node can hold children.
func (n Node) IsContainer() bool { return n.Kind.Normalize().IsContainer() }

// Descriptor returns the shape descriptor for the node.
func (n Node) Descriptor() Descriptor { return Describe(n.Kind, n.Shape) }

// Category returns the lint category of the node.
func (n Node) Category() Category { return n.Descriptor().Category }

// Clone returns a deep copy of the node.
func (n Node) Clone() Node {
	out := n
	if n.Style.Opacity != nil {
		v := *n.Style.Opacity
		out.Style.Opacity = &v
	}
	if n.Interaction != nil {
		ix := *n.Interaction
		out.Interaction = &ix
	}
	return out
}

// Equal reports whether two nodes carry the same data.
func (n Node) Equal(o Node) bool {
	if n.ID != o.ID || n.ExternalRef != o.ExternalRef ||
		n.Kind.Normalize() != o.Kind.Normalize() || n.Shape != o.Shape ||
		n.Label != o.Label || n.Geometry != o.Geometry ||
		n.Locked != o.Locked || n.ZIndex != o.ZIndex || n.ParentID != o.ParentID {
		return false
	}
	if !n.Style.Equal(o.Style) {
		return false
	}
	switch {
	case n.Interaction == nil && o.Interaction == nil:
		return true
	case n.Interaction == nil || o.Interaction == nil:
		return false
	default:
		return *n.Interaction == *o.Interaction
	}
}

// Equal reports whether two styles carry the same values.
func (s Style) Equal(o Style) bool {
	if s.Fill != o.Fill || s.Stroke != o.Stroke || s.Text != o.Text ||
		s.FontSize != o.FontSize || s.BorderRadius != o.BorderRadius || s.Shadow != o.Shadow {
		return false
	}
	switch {
	case s.Opacity == nil && o.Opacity == nil:
		return true
	case s.Opacity == nil || o.Opacity == nil:
		return false
	default:
		return *s.Opacity == *o.Opacity
	}
}

// Float returns a pointer to v, for optional style fields.
func Float(v float64) *float64 { return &v }
