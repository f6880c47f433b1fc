package pipeline

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowboard/pkg/flow"
	"github.com/matzehuels/flowboard/pkg/graph"
	"github.com/matzehuels/flowboard/pkg/lint"
	"github.com/matzehuels/flowboard/pkg/reconcile"
	"github.com/matzehuels/flowboard/pkg/session"
	"github.com/matzehuels/flowboard/pkg/source"
	"github.com/matzehuels/flowboard/pkg/store"
)

// Runner executes process operations against a store.
type Runner struct {
	Store   store.Store
	Options session.Options
	Logger  *log.Logger
}

// NewRunner creates a runner. A nil logger uses log.Default().
func NewRunner(st store.Store, opts session.Options, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	opts.Logger = logger
	return &Runner{Store: st, Options: opts, Logger: logger}
}

// Get loads a process and lints it.
func (r *Runner) Get(ctx context.Context, processID string) (*Result, error) {
	start := time.Now()
	sess, _, err := r.open(ctx, processID, r.Options, false)
	if err != nil {
		return nil, err
	}
	return r.result(processID, sess, false, start), nil
}

// Validate is Get under the name the CLI and API use for linting.
func (r *Runner) Validate(ctx context.Context, processID string) (*Result, error) {
	res, err := r.Get(ctx, processID)
	if err != nil {
		return nil, err
	}
	r.Logger.Info("validated process", "process", processID, "issues", res.Summary.String())
	return res, nil
}

// Put imports a persisted graph payload and saves it as processID,
// replacing any stored version. Malformed payloads fail with INVALID_IMPORT
// and nothing is written.
func (r *Runner) Put(ctx context.Context, processID string, data []byte) (*Result, error) {
	start := time.Now()
	sess := session.New(flow.Graph{}, r.Options)
	if err := sess.Import(data); err != nil {
		return nil, err
	}
	if err := sess.Save(ctx, r.Store, processID); err != nil {
		return nil, err
	}
	r.Logger.Info("stored process", "process", processID, "nodes", sess.Graph().NodeCount())
	return r.result(processID, sess, true, start), nil
}

// Sync reconciles a process with source rows and saves it when anything
// changed. A missing process is created. An empty policy uses the runner's
// configured policy.
func (r *Runner) Sync(ctx context.Context, processID string, rows []source.Row, policy reconcile.OrphanPolicy) (*Result, error) {
	start := time.Now()
	opts := r.Options
	if policy != "" {
		opts.OrphanPolicy = policy
	}
	sess, existed, err := r.open(ctx, processID, opts, true)
	if err != nil {
		return nil, err
	}
	rep, err := sess.Sync(rows)
	if err != nil {
		return nil, err
	}
	saved, err := r.saveIfChanged(ctx, processID, sess, existed)
	if err != nil {
		return nil, err
	}
	res := r.result(processID, sess, saved, start)
	res.Report = &rep
	r.Logger.Info("synced process", "process", processID, "result", rep.String(), "saved", saved)
	return res, nil
}

// Layout places the process's nodes on the layout grid in row order and
// saves the result. A missing process is created.
func (r *Runner) Layout(ctx context.Context, processID string, rows []source.Row) (*Result, error) {
	start := time.Now()
	sess, existed, err := r.open(ctx, processID, r.Options, true)
	if err != nil {
		return nil, err
	}
	if err := sess.AutoLayout(rows); err != nil {
		return nil, err
	}
	saved, err := r.saveIfChanged(ctx, processID, sess, existed)
	if err != nil {
		return nil, err
	}
	r.Logger.Info("laid out process", "process", processID, "rows", len(rows), "saved", saved)
	return r.result(processID, sess, saved, start), nil
}

// Delete removes a stored process.
func (r *Runner) Delete(ctx context.Context, processID string) error {
	if err := r.Store.Delete(ctx, processID); err != nil {
		return err
	}
	r.Logger.Info("deleted process", "process", processID)
	return nil
}

// List returns the stored process ids.
func (r *Runner) List(ctx context.Context) ([]string, error) {
	return r.Store.List(ctx)
}

// Close releases the store.
func (r *Runner) Close() error {
	if r.Store != nil {
		return r.Store.Close()
	}
	return nil
}

// open loads processID into a new session. With create set, a missing
// process yields an empty session and existed=false.
func (r *Runner) open(ctx context.Context, processID string, opts session.Options, create bool) (*session.Session, bool, error) {
	sess := session.New(flow.Graph{}, opts)
	err := sess.Load(ctx, r.Store, processID)
	switch {
	case err == nil:
		return sess, true, nil
	case create && stderrors.Is(err, store.ErrNotFound):
		r.Logger.Debug("creating process", "process", processID)
		return sess, false, nil
	default:
		return nil, false, err
	}
}

func (r *Runner) saveIfChanged(ctx context.Context, processID string, sess *session.Session, existed bool) (bool, error) {
	if existed && !sess.Dirty() {
		return false, nil
	}
	if err := sess.Save(ctx, r.Store, processID); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Runner) result(processID string, sess *session.Session, saved bool, start time.Time) *Result {
	g := sess.Graph()
	doc := graph.NewDocument(processID, g)
	doc.EntryNodeID = sess.EntryNodeID()
	issues := sess.Validate()
	if issues == nil {
		issues = []lint.Issue{}
	}
	return &Result{
		ProcessID: processID,
		Revision:  store.Revision(doc),
		Document:  doc,
		Issues:    issues,
		Summary:   lint.Summarize(issues),
		Saved:     saved,
		Stats: Stats{
			NodeCount: g.NodeCount(),
			EdgeCount: g.EdgeCount(),
			Duration:  time.Since(start),
		},
	}
}
