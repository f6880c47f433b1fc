package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	_ "modernc.org/sqlite"

	"github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/graph"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS processes (
	id         TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// SQLiteStore keeps the JSON payload of each process in a SQLite table.
type SQLiteStore struct {
	conn *sql.DB
	Path string
}

// NewSQLiteStore opens (or creates) the database at path. Use ":memory:" for
// a throwaway database.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, persistenceError(err, "open database %s", path)
	}
	// A single connection keeps ":memory:" databases alive and serialises
	// writers.
	conn.SetMaxOpenConns(1)

	if path != ":memory:" {
		if _, err := conn.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			conn.Close()
			return nil, persistenceError(err, "set WAL mode")
		}
	}
	if _, err := conn.ExecContext(ctx, sqliteSchema); err != nil {
		conn.Close()
		return nil, persistenceError(err, "create schema")
	}
	return &SQLiteStore{conn: conn, Path: path}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, doc graph.Document) (err error) {
	start := time.Now()
	defer func() { observeSave(ctx, "sqlite", doc.ProcessID, start, err) }()

	if err := errors.ValidateProcessID(doc.ProcessID); err != nil {
		return err
	}
	doc = stamp(doc)
	data, err := graph.MarshalDocument(doc)
	if err != nil {
		return persistenceError(err, "marshal process %s", doc.ProcessID)
	}
	_, err = s.conn.ExecContext(ctx, `
		INSERT INTO processes (id, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		doc.ProcessID, string(data), doc.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return persistenceError(err, "save process %s", doc.ProcessID)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, processID string) (doc graph.Document, err error) {
	start := time.Now()
	defer func() { observeLoad(ctx, "sqlite", processID, start, err) }()

	var payload string
	row := s.conn.QueryRowContext(ctx, `SELECT payload FROM processes WHERE id = ?`, processID)
	if err := row.Scan(&payload); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return graph.Document{}, ErrNotFound
		}
		return graph.Document{}, persistenceError(err, "load process %s", processID)
	}
	doc, err = graph.UnmarshalDocument([]byte(payload))
	if err != nil {
		return graph.Document{}, persistenceError(err, "decode process %s", processID)
	}
	return doc, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, processID string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM processes WHERE id = ?`, processID)
	if err != nil {
		return persistenceError(err, "delete process %s", processID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return persistenceError(err, "delete process %s", processID)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT id FROM processes ORDER BY id`)
	if err != nil {
		return nil, persistenceError(err, "list processes")
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, persistenceError(err, "list processes")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError(err, "list processes")
	}
	return ids, nil
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

var _ Store = (*SQLiteStore)(nil)
