// Package flow defines the in-memory model of a process flowchart.
//
// A [Graph] is a flat arena of [Node] and [Edge] values plus decorative
// [LegendItem] metadata. Containment is expressed by id: a node's ParentID is a
// non-owning back reference resolved by lookup, and a child's geometry is
// relative to its parent's origin. The slice order of nodes and edges carries
// no semantics; paint priority is expressed by [Node.ZIndex].
//
// # Node Kinds
//
// Nodes are a tagged union over [NodeKind]:
//
//	flow.KindShape  // activity, event, gateway, annotation ... (see ShapeKind)
//	flow.KindPool   // swimlane pool container
//	flow.KindLane   // swimlane lane container
//	flow.KindGroup  // free grouping container created by the group command
//
// Shape-specific behaviour (default size, attachment handles, lint category)
// lives in a lookup table reached through [Describe] rather than in per-shape
// types.
//
// # Values, not pointers
//
// Everything in this package is a plain value. [Graph.Clone] produces a deep
// copy that shares no memory with the original and [Graph.Equal] compares two
// graphs structurally. The history manager relies on both.
//
// The model tolerates inconsistent data (dangling edge endpoints, duplicate
// ids) so that undo/redo can pass through transient states; package lint
// reports those problems.
package flow
