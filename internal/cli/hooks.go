package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowboard/pkg/observability"
)

// logHooks reports editor, sync and store events at debug level.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.EditorHooks = logHooks{}
	_ observability.SyncHooks   = logHooks{}
	_ observability.StoreHooks  = logHooks{}
)

// registerLogHooks routes every observability event to logger.
func registerLogHooks(logger *log.Logger) {
	h := logHooks{logger: logger.WithPrefix("hook")}
	observability.SetEditorHooks(h)
	observability.SetSyncHooks(h)
	observability.SetStoreHooks(h)
}

func (h logHooks) OnCommit(_ context.Context, reason string, depth int) {
	h.logger.Debug("commit", "reason", reason, "depth", depth)
}

func (h logHooks) OnUndo(_ context.Context, depth int) {
	h.logger.Debug("undo", "depth", depth)
}

func (h logHooks) OnRedo(_ context.Context, depth int) {
	h.logger.Debug("redo", "depth", depth)
}

func (h logHooks) OnImport(_ context.Context, nodes, edges int, err error) {
	if err != nil {
		h.logger.Debug("import rejected", "err", err)
		return
	}
	h.logger.Debug("import", "nodes", nodes, "edges", edges)
}

func (h logHooks) OnSync(_ context.Context, rows, created, updated, removed int, d time.Duration) {
	h.logger.Debug("sync", "rows", rows, "created", created, "updated", updated, "removed", removed, "duration", d)
}

func (h logHooks) OnSave(_ context.Context, backend, processID string, d time.Duration, err error) {
	h.logger.Debug("store save", "backend", backend, "process", processID, "duration", d, "err", err)
}

func (h logHooks) OnLoad(_ context.Context, backend, processID string, d time.Duration, err error) {
	h.logger.Debug("store load", "backend", backend, "process", processID, "duration", d, "err", err)
}
