// Package store persists process documents.
//
// A [Store] keeps one [graph.Document] per process id. Five backends are
// provided:
//
//   - [FileStore]: one JSON file per process in a directory (CLI default)
//   - [MemoryStore]: in-process map, for tests and ephemeral servers
//   - [RedisStore]: msgpack-encoded values under a key prefix
//   - [MongoStore]: one MongoDB document per process keyed by _id
//   - [SQLiteStore]: a processes table holding the JSON payload
//
// Use [Open] to build the backend selected in the configuration. Every
// backend failure surfaces as a PERSISTENCE_ERROR; a missing process is
// reported with [ErrNotFound] so callers can tell the two apart with
// errors.Is.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/graph"
	"github.com/matzehuels/flowboard/pkg/observability"
)

// ErrNotFound is returned by Load and Delete when no document exists for the
// requested process id.
var ErrNotFound = stderrors.New("process not found")

// Store is the persistence collaborator of an editing session.
type Store interface {
	// Save writes doc under doc.ProcessID, replacing any previous version.
	Save(ctx context.Context, doc graph.Document) error

	// Load returns the document for processID or ErrNotFound.
	Load(ctx context.Context, processID string) (graph.Document, error)

	// Delete removes the document for processID or returns ErrNotFound.
	Delete(ctx context.Context, processID string) error

	// List returns all stored process ids in ascending order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// Revision returns a content hash of doc suitable for an HTTP ETag.
// The graph is normalised through the editing model and the timestamp is
// excluded, so identical content hashes the same whichever backend it came
// from.
func Revision(doc graph.Document) string {
	norm := graph.NewDocument(doc.ProcessID, doc.Graph())
	norm.EntryNodeID = doc.EntryNodeID
	data, _ := json.Marshal(norm)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// persistenceError wraps a backend failure. ErrNotFound passes through
// unwrapped.
func persistenceError(err error, format string, args ...any) error {
	if err == nil || stderrors.Is(err, ErrNotFound) {
		return err
	}
	return errors.Wrap(errors.ErrCodePersistence, err, format, args...)
}

func observeSave(ctx context.Context, backend, processID string, start time.Time, err error) {
	observability.Store().OnSave(ctx, backend, processID, time.Since(start), err)
}

func observeLoad(ctx context.Context, backend, processID string, start time.Time, err error) {
	observability.Store().OnLoad(ctx, backend, processID, time.Since(start), err)
}

// stamp prepares doc for writing.
func stamp(doc graph.Document) graph.Document {
	doc.UpdatedAt = time.Now().UTC()
	if doc.Nodes == nil {
		doc.Nodes = []graph.Node{}
	}
	if doc.Edges == nil {
		doc.Edges = []graph.Edge{}
	}
	if doc.Legend == nil {
		doc.Legend = []graph.LegendItem{}
	}
	return doc
}
