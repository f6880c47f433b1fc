// Package history keeps the undo/redo timeline of an editing session.
//
// A [Manager] holds three slots: the past (oldest first), the present and the
// future consumed by redo. Every slot is an independent deep copy made with
// [flow.Graph.Clone]; nothing handed in or out of the manager aliases its
// snapshots.
//
// Commit granularity is up to the caller. Continuous gestures such as drags
// should commit once when they end, not on every frame:
//
//	h := history.New(g, history.DefaultDepth)
//	h.Commit(moved, "move")
//	prev, err := h.Undo()
//
// A Manager is not safe for concurrent use.
package history

import (
	"errors"

	"github.com/matzehuels/flowboard/pkg/flow"
)

// DefaultDepth bounds the past when New is given a non-positive depth.
const DefaultDepth = 100

var (
	// ErrNothingToUndo is returned by Undo when the past is empty.
	ErrNothingToUndo = errors.New("cannot undo")

	// ErrNothingToRedo is returned by Redo when the future is empty.
	ErrNothingToRedo = errors.New("cannot redo")
)

// Snapshot is one recorded state together with the reason it was committed.
type Snapshot struct {
	Graph  flow.Graph
	Reason string
}

// Manager is a bounded snapshot history.
type Manager struct {
	past     []Snapshot // oldest first
	present  Snapshot
	future   []Snapshot // next redo first
	maxDepth int
}

// New returns a manager whose present is a copy of initial.
func New(initial flow.Graph, maxDepth int) *Manager {
	if maxDepth <= 0 {
		maxDepth = DefaultDepth
	}
	return &Manager{
		present:  Snapshot{Graph: initial.Clone(), Reason: "initial"},
		maxDepth: maxDepth,
	}
}

// Commit records g as the new present and reports whether anything was
// recorded. A graph structurally equal to the present is ignored. The future
// is discarded and the oldest past entry is evicted once the bound is hit.
func (m *Manager) Commit(g flow.Graph, reason string) bool {
	if g.Equal(m.present.Graph) {
		return false
	}
	m.pushPast(m.present)
	m.present = Snapshot{Graph: g.Clone(), Reason: reason}
	m.future = nil
	return true
}

// Undo steps back one entry and returns a copy of the restored state.
func (m *Manager) Undo() (flow.Graph, error) {
	if len(m.past) == 0 {
		return flow.Graph{}, ErrNothingToUndo
	}
	last := len(m.past) - 1
	prev := m.past[last]
	m.past = m.past[:last]
	m.future = append([]Snapshot{m.present}, m.future...)
	m.present = prev
	return prev.Graph.Clone(), nil
}

// Redo steps forward one entry and returns a copy of the restored state.
func (m *Manager) Redo() (flow.Graph, error) {
	if len(m.future) == 0 {
		return flow.Graph{}, ErrNothingToRedo
	}
	next := m.future[0]
	m.future = m.future[1:]
	m.pushPast(m.present)
	m.present = next
	return next.Graph.Clone(), nil
}

// Reset drops all history and makes g the present.
func (m *Manager) Reset(g flow.Graph) {
	m.past = nil
	m.future = nil
	m.present = Snapshot{Graph: g.Clone(), Reason: "reset"}
}

// CanUndo reports whether Undo would succeed.
func (m *Manager) CanUndo() bool { return len(m.past) > 0 }

// CanRedo reports whether Redo would succeed.
func (m *Manager) CanRedo() bool { return len(m.future) > 0 }

// Depth returns the number of undoable steps.
func (m *Manager) Depth() int { return len(m.past) }

// Present returns a copy of the current state.
func (m *Manager) Present() flow.Graph { return m.present.Graph.Clone() }

// Entries returns the commit reasons of the past followed by the present,
// oldest first.
func (m *Manager) Entries() []string {
	out := make([]string, 0, len(m.past)+1)
	for _, s := range m.past {
		out = append(out, s.Reason)
	}
	return append(out, m.present.Reason)
}

func (m *Manager) pushPast(s Snapshot) {
	m.past = append(m.past, s)
	if over := len(m.past) - m.maxDepth; over > 0 {
		m.past = append(m.past[:0:0], m.past[over:]...)
	}
}
