package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/matzehuels/flowboard/pkg/errors"
	"github.com/matzehuels/flowboard/pkg/graph"
)

// MemoryStore keeps documents in a map. Documents are copied on the way in
// and out so that callers cannot alias stored state.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (s *MemoryStore) Save(ctx context.Context, doc graph.Document) (err error) {
	start := time.Now()
	defer func() { observeSave(ctx, "memory", doc.ProcessID, start, err) }()

	if err := errors.ValidateProcessID(doc.ProcessID); err != nil {
		return err
	}
	data, err := graph.MarshalDocument(stamp(doc))
	if err != nil {
		return persistenceError(err, "marshal process %s", doc.ProcessID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ProcessID] = data
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, processID string) (doc graph.Document, err error) {
	start := time.Now()
	defer func() { observeLoad(ctx, "memory", processID, start, err) }()

	s.mu.RLock()
	data, ok := s.docs[processID]
	s.mu.RUnlock()
	if !ok {
		return graph.Document{}, ErrNotFound
	}
	doc, err = graph.UnmarshalDocument(data)
	if err != nil {
		return graph.Document{}, persistenceError(err, "decode process %s", processID)
	}
	return doc, nil
}

func (s *MemoryStore) Delete(ctx context.Context, processID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[processID]; !ok {
		return ErrNotFound
	}
	delete(s.docs, processID)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
