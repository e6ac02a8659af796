package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory layout store for development and testing.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*StoredLayout
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*StoredLayout)}
}

// Get retrieves a stored layout by id.
func (s *MemoryStore) Get(ctx context.Context, id string) (*StoredLayout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *doc
	return &copied, nil
}

// Put stores a layout.
func (s *MemoryStore) Put(ctx context.Context, doc *StoredLayout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *doc
	s.docs[doc.ID] = &copied
	return nil
}

// Delete removes a stored layout.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
