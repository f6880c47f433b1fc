package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/graph"
)

// FileStore keeps one JSON file per process in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store rooted at baseDir, creating the
// directory if needed.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "file store needs a directory")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, persistenceError(err, "create store dir %s", baseDir)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) processPath(processID string) string {
	return filepath.Join(s.baseDir, processID+".json")
}

// Save writes doc atomically by renaming a temporary file into place.
func (s *FileStore) Save(ctx context.Context, doc graph.Document) (err error) {
	start := time.Now()
	defer func() { observeSave(ctx, "file", doc.ProcessID, start, err) }()

	if err := errors.ValidateProcessID(doc.ProcessID); err != nil {
		return err
	}
	data, err := graph.MarshalDocument(stamp(doc))
	if err != nil {
		return persistenceError(err, "marshal process %s", doc.ProcessID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.processPath(doc.ProcessID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return persistenceError(err, "write process %s", doc.ProcessID)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return persistenceError(err, "write process %s", doc.ProcessID)
	}
	return nil
}

func (s *FileStore) Load(ctx context.Context, processID string) (doc graph.Document, err error) {
	start := time.Now()
	defer func() { observeLoad(ctx, "file", processID, start, err) }()

	if err := errors.ValidateProcessID(processID); err != nil {
		return graph.Document{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.processPath(processID))
	if err != nil {
		if os.IsNotExist(err) {
			return graph.Document{}, ErrNotFound
		}
		return graph.Document{}, persistenceError(err, "read process %s", processID)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return graph.Document{}, persistenceError(err, "parse process %s", processID)
	}
	return doc, nil
}

func (s *FileStore) Delete(ctx context.Context, processID string) error {
	if err := errors.ValidateProcessID(processID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.processPath(processID)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return persistenceError(err, "remove process %s", processID)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, persistenceError(err, "read store dir")
	}
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for process files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
