// Package command implements the editing operations of a flowboard session.
//
// # Overview
//
// Every operation is a pure function from a [flow.Graph] (plus a [Selection]
// and parameters) to a new graph. Inputs are never mutated: an operation that
// changes anything works on [flow.Graph.Clone] and returns the copy. An
// operation whose preconditions are not met returns its input unchanged, so
// callers can compare with [flow.Graph.Equal] and skip the history commit.
// The Can* predicates report availability up front.
//
// # Clipboard
//
// [Copy] captures the selected nodes, the contents of selected containers and
// the edges whose endpoints were both captured. [Paste] inserts the capture
// with fresh ids, offset by [Config.PasteOffset]. [Duplicate] is Copy followed
// by Paste on the live graph.
//
// # Arrangement
//
// [Align] and [Distribute] work on absolute bounding boxes and snap their
// targets to [Config.Grid]. The resulting delta is applied to each node's own
// geometry, which is relative to its parent when it has one:
//
//	g = command.Align(g, sel, command.AlignLeft, cfg)
//	g = command.Distribute(g, sel, command.Horizontal, cfg)
//
// # Grouping
//
// [Group] wraps the selection in a new group container padded by
// [Config.GroupPadding]; [Ungroup] dissolves it again. Ungroup restores the
// absolute positions Group started from.
//
// # Z-Order
//
// [BringToFront], [SendToBack], [BringForward] and [SendBackward] change
// paint priority only.
//
// # Structure
//
// [AddNode], [Delete], [Connect], [MoveTo], [MoveBy], [Resize], [PatchNodes],
// [PatchEdges] and [Reparent] cover the remaining discrete edits. Reparent is
// the only operation that fails loudly: it returns [ErrCycle] rather than
// letting containment stop being a forest.
package command
