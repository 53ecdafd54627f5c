package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-memory provider store for single-instance deployments
// and tests.
type MemoryStore struct {
	mu        sync.RWMutex
	providers map[string]struct{}
}

// NewMemory creates an empty in-memory provider store.
func NewMemory() *MemoryStore {
	return &MemoryStore{providers: make(map[string]struct{})}
}

func (s *MemoryStore) IsAllowed(_ context.Context, providerID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.providers[providerID]
	return ok, nil
}

func (s *MemoryStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	providers := make([]string, 0, len(s.providers))
	for id := range s.providers {
		providers = append(providers, id)
	}
	sort.Strings(providers)
	return providers, nil
}

func (s *MemoryStore) Add(_ context.Context, providerID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.providers[providerID]; ok {
		return false, nil
	}
	s.providers[providerID] = struct{}{}
	return true, nil
}

func (s *MemoryStore) Remove(_ context.Context, providerID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.providers[providerID]; !ok {
		return false, nil
	}
	delete(s.providers, providerID)
	return true, nil
}

func (s *MemoryStore) Replace(_ context.Context, providers []string) error {
	next := make(map[string]struct{}, len(providers))
	for _, id := range providers {
		next[id] = struct{}{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers = next
	return nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.providers), nil
}
