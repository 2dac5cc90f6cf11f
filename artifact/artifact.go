// Package artifact provides in-process storage for generated image bytes so
// hosts can retrieve binaries after the output envelope has been rendered.
// Data is scoped per invocation; the module itself never reads artifacts back.
package artifact

import (
	"fmt"
	"sort"
	"sync"
)

// ErrNotFound is returned when no artifact exists for the given invocation /
// file name pair.
var ErrNotFound = fmt.Errorf("artifact not found")

// Store keeps generated image bytes in a nested map guarded by an RWMutex.
// Data is copied on save and retrieval to avoid accidental external mutation
// of internal buffers.
//
// Layout: invocationID -> fileName -> raw bytes
//
// This implementation is intentionally minimal; it does not enforce retention
// limits, size quotas, or eviction.
type Store struct {
	mu     sync.RWMutex
	images map[string]map[string][]byte
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{images: make(map[string]map[string][]byte)}
}

// Save stores (or overwrites) the image bytes for the given invocation and
// file name. The input slice is copied before storage.
func (s *Store) Save(invocationID, fileName string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.images[invocationID]; !exists {
		s.images[invocationID] = make(map[string][]byte)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.images[invocationID][fileName] = cp
	return nil
}

// Get returns a copy of the stored bytes or ErrNotFound.
func (s *Store) Get(invocationID, fileName string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.images[invocationID]
	if !ok {
		return nil, ErrNotFound
	}
	data, ok := m[fileName]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// List returns the file names stored for the invocation in sorted order. The
// slice is a snapshot and safe for caller mutation.
func (s *Store) List(invocationID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.images[invocationID]
	if !ok {
		return []string{}, nil
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Invocations returns the invocation ids currently holding artifacts in
// sorted order.
func (s *Store) Invocations() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.images))
	for id := range s.images {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Delete removes all artifacts for the invocation or returns ErrNotFound.
func (s *Store) Delete(invocationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.images[invocationID]; !ok {
		return ErrNotFound
	}
	delete(s.images, invocationID)
	return nil
}
