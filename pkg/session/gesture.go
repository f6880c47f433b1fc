package session

import (
	"slices"

	"github.com/matzehuels/flowboard/pkg/command"
	"github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/flow"
	"github.com/matzehuels/flowboard/pkg/layout"
)

// GestureKind names an in-progress pointer interaction.
type GestureKind string

// Gesture kinds. The zero value means no gesture.
const (
	GestureDrag    GestureKind = "drag"
	GestureResize  GestureKind = "resize"
	GestureConnect GestureKind = "connect"
)

// gesture holds the state of a multi-step interaction. before is the graph
// at gesture start; cancelling restores it exactly.
type gesture struct {
	kind   GestureKind
	before flow.Graph
	nodeID string   // dragged or resized node, or the tail of a connect chain
	edges  []string // edges created by a connect chain
}

// Gesture returns the kind of the active gesture, or "" when idle.
func (s *Session) Gesture() GestureKind {
	if s.gesture == nil {
		return ""
	}
	return s.gesture.kind
}

// Guides returns the alignment guides of the current drag frame.
func (s *Session) Guides() []layout.Guide { return slices.Clone(s.guides) }

// Cancel aborts any gesture and restores the graph it started from.
func (s *Session) Cancel() { s.cancelGesture() }

func (s *Session) cancelGesture() {
	if s.gesture == nil {
		return
	}
	before := s.gesture.before
	s.gesture = nil
	s.guides = nil
	s.restore(before)
}

// movable reports why node id cannot be dragged or resized.
func (s *Session) movable(id string) error {
	n, ok := s.graph.Node(id)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "node %q not found", id)
	}
	if n.Locked {
		return errors.New(errors.ErrCodeLocked, "node %q is locked", id)
	}
	return nil
}

func (s *Session) begin(kind GestureKind, id string) {
	s.gesture = &gesture{kind: kind, before: s.graph, nodeID: id}
}

func (s *Session) active(kind GestureKind) bool {
	return s.gesture != nil && s.gesture.kind == kind
}

// end closes the active gesture and commits the live graph once.
func (s *Session) end(reason string) bool {
	s.gesture = nil
	s.guides = nil
	return s.record(reason)
}

// =============================================================================
// Drag
// =============================================================================

// BeginDrag starts moving node id. Locked nodes are refused with a LOCKED
// error.
func (s *Session) BeginDrag(id string) error {
	s.cancelGesture()
	if err := s.movable(id); err != nil {
		return err
	}
	s.begin(GestureDrag, id)
	return nil
}

// DragTo moves the dragged node to x, y within its parent frame, snapped to
// the grid, and returns the guides for this frame. Nothing is committed.
func (s *Session) DragTo(x, y float64) []layout.Guide {
	if !s.active(GestureDrag) {
		return nil
	}
	grid := s.opts.Command.Grid
	id := s.gesture.nodeID
	s.graph = command.MoveTo(s.graph, id, flow.Snap(x, grid), flow.Snap(y, grid))
	s.guides = layout.Guides(s.graph, id, s.opts.GuideTolerance)
	return slices.Clone(s.guides)
}

// EndDrag finishes the drag, clears the guides and commits the final
// position. It reports whether the node actually moved.
func (s *Session) EndDrag() bool {
	if !s.active(GestureDrag) {
		return false
	}
	return s.end("move")
}

// =============================================================================
// Resize
// =============================================================================

// BeginResize starts resizing node id. Locked nodes are refused with a
// LOCKED error.
func (s *Session) BeginResize(id string) error {
	s.cancelGesture()
	if err := s.movable(id); err != nil {
		return err
	}
	s.begin(GestureResize, id)
	return nil
}

// ResizeTo sets the live size of the resized node. Non-positive sizes are
// ignored. Nothing is committed.
func (s *Session) ResizeTo(width, height float64) {
	if !s.active(GestureResize) {
		return
	}
	s.graph = command.Resize(s.graph, s.gesture.nodeID, width, height)
}

// EndResize finishes the resize and commits the final size.
func (s *Session) EndResize() bool {
	if !s.active(GestureResize) {
		return false
	}
	return s.end("resize")
}

// =============================================================================
// Chained connect
// =============================================================================

// BeginConnect starts a connect chain at node from.
func (s *Session) BeginConnect(from string) error {
	s.cancelGesture()
	if !s.graph.HasNode(from) {
		return errors.New(errors.ErrCodeNotFound, "node %q not found", from)
	}
	s.begin(GestureConnect, from)
	return nil
}

// ConnectTo adds a live edge from the chain's tail to target and continues
// the chain from target. It returns the new edge id, or "" when the edge
// could not be created; the chain is unchanged in that case.
func (s *Session) ConnectTo(target string, opts command.EdgeOptions) string {
	if !s.active(GestureConnect) {
		return ""
	}
	next, id := command.Connect(s.graph, s.gesture.nodeID, target, opts, s.opts.Command)
	if id == "" {
		return ""
	}
	s.graph = next
	s.gesture.edges = append(s.gesture.edges, id)
	s.gesture.nodeID = target
	return id
}

// FinishConnect ends the chain and commits every edge it created as one
// history entry.
func (s *Session) FinishConnect() bool {
	if !s.active(GestureConnect) {
		return false
	}
	if len(s.gesture.edges) == 0 {
		s.gesture = nil
		return false
	}
	return s.end("connect")
}

// CancelConnect aborts a connect chain, removing every edge it created.
func (s *Session) CancelConnect() {
	if s.active(GestureConnect) {
		s.cancelGesture()
	}
}
