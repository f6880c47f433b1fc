// Package session provides the editing session that owns a live process
// chart.
//
// A [Session] bundles the graph with its selection, undo history, clipboard,
// dirty flag and any in-progress pointer gesture. Every discrete command
// (align, paste, group, delete, ...) is applied to the graph and committed to
// history once, under a short reason string. Continuous gestures commit only
// when they end:
//
//	s := session.New(g, session.DefaultOptions())
//	s.Select(command.Select("a", "b"))
//	s.Align(command.AlignLeft)
//
//	if err := s.BeginDrag("a"); err == nil {
//	    guides := s.DragTo(140, 80) // live, not committed
//	    _ = guides
//	    s.EndDrag()                 // one history entry
//	}
//
// Graph values are never mutated in place: every command returns a fresh
// graph, so snapshots taken by the session stay valid without copying.
//
// A Session is not safe for concurrent use.
package session

import (
	"context"
	stderrors "errors"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowboard/pkg/command"
	"github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/flow"
	"github.com/matzehuels/flowboard/pkg/graph"
	"github.com/matzehuels/flowboard/pkg/history"
	"github.com/matzehuels/flowboard/pkg/layout"
	"github.com/matzehuels/flowboard/pkg/lint"
	"github.com/matzehuels/flowboard/pkg/observability"
	"github.com/matzehuels/flowboard/pkg/reconcile"
	"github.com/matzehuels/flowboard/pkg/source"
	"github.com/matzehuels/flowboard/pkg/store"
)

// Session is a single-writer editing session over one process chart.
type Session struct {
	opts    Options
	logger  *log.Logger
	graph   flow.Graph
	sel     command.Selection
	history *history.Manager
	clip    command.Clipboard
	entry   string
	dirty   bool
	gesture *gesture
	guides  []layout.Guide
}

// New starts a session on g. The initial graph is the bottom of the undo
// history and the session starts clean.
func New(g flow.Graph, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	g = g.Clone()
	return &Session{
		opts:    opts,
		logger:  logger,
		graph:   g,
		history: history.New(g, opts.HistoryDepth),
	}
}

// Graph returns a copy of the live graph, including uncommitted gesture
// state.
func (s *Session) Graph() flow.Graph { return s.graph.Clone() }

// Dirty reports whether the graph changed since the last load or save.
func (s *Session) Dirty() bool { return s.dirty }

// EntryNodeID returns the node a saved document names as its entry point.
// An entry loaded from the store is kept while that node exists; otherwise
// it is the first node of the committed graph.
func (s *Session) EntryNodeID() string {
	g := s.committed()
	if s.entry != "" && g.HasNode(s.entry) {
		return s.entry
	}
	if len(g.Nodes) > 0 {
		return g.Nodes[0].ID
	}
	return ""
}

// Clipboard returns the current clipboard content.
func (s *Session) Clipboard() command.Clipboard { return s.clip }

// CanUndo reports whether Undo would succeed.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Redo would succeed.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// History returns the commit reasons from oldest to the present.
func (s *Session) History() []string { return s.history.Entries() }

// =============================================================================
// Selection
// =============================================================================

// Selection returns the current selection.
func (s *Session) Selection() command.Selection {
	return command.Selection{
		Nodes: slices.Clone(s.sel.Nodes),
		Edges: slices.Clone(s.sel.Edges),
	}
}

// Select replaces the selection. Ids that do not exist are dropped.
func (s *Session) Select(sel command.Selection) {
	s.sel = command.Selection{
		Nodes: slices.Clone(sel.Nodes),
		Edges: slices.Clone(sel.Edges),
	}
	s.pruneSelection()
}

// SelectAll selects every node and edge.
func (s *Session) SelectAll() {
	var sel command.Selection
	for _, n := range s.graph.Nodes {
		sel.Nodes = append(sel.Nodes, n.ID)
	}
	for _, e := range s.graph.Edges {
		sel.Edges = append(sel.Edges, e.ID)
	}
	s.sel = sel
}

// ClearSelection empties the selection.
func (s *Session) ClearSelection() { s.sel = command.Selection{} }

func (s *Session) pruneSelection() {
	idx, eidx := s.graph.Index(), s.graph.EdgeIndex()
	s.sel.Nodes = slices.DeleteFunc(s.sel.Nodes, func(id string) bool { _, ok := idx[id]; return !ok })
	s.sel.Edges = slices.DeleteFunc(s.sel.Edges, func(id string) bool { _, ok := eidx[id]; return !ok })
}

// =============================================================================
// Commit plumbing
// =============================================================================

// edit cancels any gesture, applies fn to the live graph and commits the
// result under reason. It reports whether anything changed.
func (s *Session) edit(reason string, fn func(flow.Graph) flow.Graph) bool {
	s.cancelGesture()
	next := fn(s.graph)
	if next.Equal(s.graph) {
		return false
	}
	s.graph = next
	return s.record(reason)
}

// record commits the live graph to history.
func (s *Session) record(reason string) bool {
	if !s.history.Commit(s.graph, reason) {
		return false
	}
	s.dirty = true
	depth := s.history.Depth()
	s.logger.Debug("commit", "reason", reason, "depth", depth)
	observability.Editor().OnCommit(context.Background(), reason, depth)
	return true
}

// restore makes g live after undo, redo or a gesture cancel.
func (s *Session) restore(g flow.Graph) {
	s.graph = g
	s.pruneSelection()
}

// committed returns the last committed graph, ignoring gesture state.
func (s *Session) committed() flow.Graph {
	if s.gesture != nil {
		return s.gesture.before
	}
	return s.graph
}

// =============================================================================
// History
// =============================================================================

// Undo cancels any gesture and steps back one commit.
func (s *Session) Undo() error {
	s.cancelGesture()
	g, err := s.history.Undo()
	if err != nil {
		return err
	}
	s.restore(g)
	s.dirty = true
	s.logger.Debug("undo", "depth", s.history.Depth())
	observability.Editor().OnUndo(context.Background(), s.history.Depth())
	return nil
}

// Redo cancels any gesture and re-applies the last undone commit.
func (s *Session) Redo() error {
	s.cancelGesture()
	g, err := s.history.Redo()
	if err != nil {
		return err
	}
	s.restore(g)
	s.dirty = true
	s.logger.Debug("redo", "depth", s.history.Depth())
	observability.Editor().OnRedo(context.Background(), s.history.Depth())
	return nil
}

// =============================================================================
// Import, export and persistence
// =============================================================================

// Import replaces the graph with a persisted payload. A rejected payload
// returns an INVALID_IMPORT error and leaves the session untouched. A
// successful import clears the selection and starts a fresh history.
func (s *Session) Import(data []byte) error {
	g, err := graph.Import(data)
	observability.Editor().OnImport(context.Background(), g.NodeCount(), g.EdgeCount(), err)
	if err != nil {
		s.logger.Warn("import rejected", "err", err)
		return err
	}
	s.reset(g)
	s.dirty = true
	s.logger.Info("imported", "nodes", g.NodeCount(), "edges", g.EdgeCount())
	return nil
}

// Export serialises the last committed graph.
func (s *Session) Export() ([]byte, error) {
	return graph.Marshal(s.committed())
}

// Load replaces the graph with the stored document for processID and starts
// a clean session on it. A missing process is a NOT_FOUND error that still
// matches store.ErrNotFound.
func (s *Session) Load(ctx context.Context, st store.Store, processID string) error {
	doc, err := st.Load(ctx, processID)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			return errors.Wrap(errors.ErrCodeNotFound, err, "process %s", processID)
		}
		return err
	}
	s.reset(doc.Graph())
	s.entry = doc.EntryNodeID
	s.dirty = false
	s.logger.Info("loaded", "process", processID, "nodes", len(doc.Nodes), "edges", len(doc.Edges))
	return nil
}

// Save persists the last committed graph as processID. The dirty flag is
// cleared only when the store accepts the document; any failure is returned
// as a PERSISTENCE_ERROR unless it already carries a code.
func (s *Session) Save(ctx context.Context, st store.Store, processID string) error {
	doc := graph.NewDocument(processID, s.committed())
	doc.EntryNodeID = s.EntryNodeID()
	if err := st.Save(ctx, doc); err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodePersistence, err, "save process %s", processID)
		}
		s.logger.Error("save failed", "process", processID, "err", err)
		return err
	}
	s.dirty = false
	s.logger.Info("saved", "process", processID, "nodes", len(doc.Nodes), "edges", len(doc.Edges))
	return nil
}

func (s *Session) reset(g flow.Graph) {
	s.cancelGesture()
	s.graph = g
	s.history.Reset(g)
	s.sel = command.Selection{}
	s.entry = ""
}

// =============================================================================
// Source sync, layout and validation
// =============================================================================

// Sync reconciles the graph with source rows and commits once. Invalid rows
// are rejected with an INVALID_SOURCE error before anything changes.
func (s *Session) Sync(rows []source.Row) (reconcile.Report, error) {
	if err := source.Validate(rows); err != nil {
		return reconcile.Report{}, err
	}
	start := time.Now()
	var rep reconcile.Report
	s.edit("sync", func(g flow.Graph) flow.Graph {
		next, r := reconcile.Sync(g, rows, s.opts.syncOptions())
		rep = r
		return next
	})
	s.pruneSelection()

	observability.Sync().OnSync(context.Background(), len(rows),
		len(rep.Created), len(rep.Updated), len(rep.Removed), time.Since(start))
	s.logger.Info("synced", "rows", len(rows), "result", rep.String())
	return rep, nil
}

// AutoLayout places the nodes of rows on the layout grid and commits once.
func (s *Session) AutoLayout(rows []source.Row) error {
	if err := source.Validate(rows); err != nil {
		return err
	}
	newID := func() string { return s.opts.Command.ID("node") }
	if s.edit("layout", func(g flow.Graph) flow.Graph {
		return layout.AutoLayout(g, rows, s.opts.Grid, newID)
	}) {
		s.logger.Debug("auto-layout applied", "rows", len(rows))
	}
	return nil
}

// Validate lints the live graph.
func (s *Session) Validate() []lint.Issue {
	return lint.Check(s.graph)
}
