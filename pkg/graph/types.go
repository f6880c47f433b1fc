package graph

import (
	"time"

	"github.com/matzehuels/flowboard/pkg/flow"
)

// =============================================================================
// PersistedGraph - Wire Format
// =============================================================================

// PersistedGraph is the canonical serialization format for process charts.
// Used for import/export, API payloads and storage.
//
// The format is designed for round-trip fidelity:
// load → edit → save → reload produces identical graphs.
type PersistedGraph struct {
	Nodes  []Node       `json:"nodes" bson:"nodes"`
	Edges  []Edge       `json:"edges" bson:"edges"`
	Legend []LegendItem `json:"legend" bson:"legend"`
}

// Position is a node's top-left corner, relative to its parent if any.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Node is the persisted form of a [flow.Node].
type Node struct {
	ID          string       `json:"id" bson:"id"`
	ExternalRef string       `json:"externalRef,omitempty" bson:"externalRef,omitempty"`
	ShapeKind   string       `json:"shapeKind,omitempty" bson:"shapeKind,omitempty"`
	Label       string       `json:"label,omitempty" bson:"label,omitempty"`
	Position    Position     `json:"position" bson:"position"`
	Style       *Style       `json:"style,omitempty" bson:"style,omitempty"`
	Interaction *Interaction `json:"interaction,omitempty" bson:"interaction,omitempty"`
	NodeKind    string       `json:"nodeKind,omitempty" bson:"nodeKind,omitempty"`
	Locked      bool         `json:"locked,omitempty" bson:"locked,omitempty"`
	ZIndex      int          `json:"zIndex,omitempty" bson:"zIndex,omitempty"`
	ParentID    string       `json:"parentId,omitempty" bson:"parentId,omitempty"`
}

// Style carries visual overrides and the node's actual size.
// Width and Height are pointers so that a zero size survives a round trip.
type Style struct {
	Fill         string   `json:"fill,omitempty" bson:"fill,omitempty"`
	Stroke       string   `json:"stroke,omitempty" bson:"stroke,omitempty"`
	Text         string   `json:"text,omitempty" bson:"text,omitempty"`
	Width        *float64 `json:"width,omitempty" bson:"width,omitempty"`
	Height       *float64 `json:"height,omitempty" bson:"height,omitempty"`
	FontSize     float64  `json:"fontSize,omitempty" bson:"fontSize,omitempty"`
	BorderRadius float64  `json:"borderRadius,omitempty" bson:"borderRadius,omitempty"`
	Shadow       bool     `json:"shadow,omitempty" bson:"shadow,omitempty"`
	Opacity      *float64 `json:"opacity,omitempty" bson:"opacity,omitempty"`
}

// Interaction is the persisted form of a [flow.Interaction].
type Interaction struct {
	Action          string `json:"action" bson:"action"`
	TargetType      string `json:"targetType" bson:"targetType"`
	TargetProcessID string `json:"targetProcessId,omitempty" bson:"targetProcessId,omitempty"`
	TargetURL       string `json:"targetUrl,omitempty" bson:"targetUrl,omitempty"`
	Tooltip         string `json:"tooltip,omitempty" bson:"tooltip,omitempty"`
}

// Edge is the persisted form of a [flow.Edge].
type Edge struct {
	ID            string   `json:"id" bson:"id"`
	From          string   `json:"from" bson:"from"`
	To            string   `json:"to" bson:"to"`
	FromHandle    string   `json:"fromHandle,omitempty" bson:"fromHandle,omitempty"`
	ToHandle      string   `json:"toHandle,omitempty" bson:"toHandle,omitempty"`
	Label         string   `json:"label,omitempty" bson:"label,omitempty"`
	Kind          string   `json:"kind,omitempty" bson:"kind,omitempty"`
	Color         string   `json:"color,omitempty" bson:"color,omitempty"`
	Width         float64  `json:"width,omitempty" bson:"width,omitempty"`
	BadgeText     string   `json:"badgeText,omitempty" bson:"badgeText,omitempty"`
	BadgeColor    string   `json:"badgeColor,omitempty" bson:"badgeColor,omitempty"`
	BadgeBg       string   `json:"badgeBg,omitempty" bson:"badgeBg,omitempty"`
	ArrowStart    string   `json:"arrowStart,omitempty" bson:"arrowStart,omitempty"`
	ArrowEnd      string   `json:"arrowEnd,omitempty" bson:"arrowEnd,omitempty"`
	LabelPosition *float64 `json:"labelPosition,omitempty" bson:"labelPosition,omitempty"`
}

// LegendItem is the persisted form of a [flow.LegendItem].
type LegendItem struct {
	Key   string `json:"key" bson:"key"`
	Label string `json:"label" bson:"label"`
	Color string `json:"color,omitempty" bson:"color,omitempty"`
	Bg    string `json:"bg,omitempty" bson:"bg,omitempty"`
}

// =============================================================================
// Document - Save Payload
// =============================================================================

// Document is what the save operation persists for one process: the graph
// plus the id of the node a viewer should open on.
type Document struct {
	ProcessID      string `json:"processId" bson:"processId"`
	EntryNodeID    string `json:"entryNodeId" bson:"entryNodeId"`
	PersistedGraph `bson:",inline"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}

// NewDocument builds the save payload for g. EntryNodeID defaults to the id
// of the first node, or stays empty for an empty graph. Callers that track a
// different entry node overwrite it.
func NewDocument(processID string, g flow.Graph) Document {
	doc := Document{
		ProcessID:      processID,
		PersistedGraph: ToPersisted(g),
	}
	if len(g.Nodes) > 0 {
		doc.EntryNodeID = g.Nodes[0].ID
	}
	return doc
}

// Graph converts the document back to the editing model.
func (d Document) Graph() flow.Graph {
	return FromPersisted(d.PersistedGraph)
}
