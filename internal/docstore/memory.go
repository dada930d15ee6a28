package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// MemStore implements Store using an in-memory map. It keeps the same
// contract as FileStore, including the non-atomic read-modify-write
// cycle, and is used as the store seam in tests.
type MemStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{docs: make(map[string][]byte)}
}

func (s *MemStore) Load(_ context.Context, key string, out any) error {
	s.mu.RLock()
	data, ok := s.docs[key]
	s.mu.RUnlock()
	if !ok || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("document %s: %w: %v", key, ErrCorrupted, err)
	}
	return nil
}

func (s *MemStore) Save(_ context.Context, key string, docs any) error {
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", key, err)
	}
	s.mu.Lock()
	s.docs[key] = data
	s.mu.Unlock()
	return nil
}

func (s *MemStore) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.docs))
	for k := range s.docs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Corrupt replaces the document at key with content that does not parse,
// so tests can exercise the corrupted-document paths.
func (s *MemStore) Corrupt(key string) {
	s.mu.Lock()
	s.docs[key] = []byte("{not json")
	s.mu.Unlock()
}
