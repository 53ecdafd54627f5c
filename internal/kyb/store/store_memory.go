// Package store provides verdict recall implementations behind the
// kyb.VerdictStore port.
package store

import (
	"context"
	"sync"
	"time"

	"onyx/internal/kyb"
)

type memoryEntry struct {
	verdict   *kyb.Verdict
	expiresAt time.Time
}

// InMemoryVerdictStore keeps the latest verdict per entity with a TTL.
// Suitable for single-instance deployments and tests.
type InMemoryVerdictStore struct {
	mu       sync.RWMutex
	verdicts map[string]memoryEntry
	ttl      time.Duration
}

// NewMemory constructs an in-memory verdict store. A zero ttl disables expiry.
func NewMemory(ttl time.Duration) *InMemoryVerdictStore {
	return &InMemoryVerdictStore{
		verdicts: make(map[string]memoryEntry),
		ttl:      ttl,
	}
}

func (s *InMemoryVerdictStore) Save(_ context.Context, verdict *kyb.Verdict) error {
	if verdict == nil || verdict.EntityID == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memoryEntry{verdict: verdict}
	if s.ttl > 0 {
		entry.expiresAt = time.Now().Add(s.ttl)
	}
	s.verdicts[verdict.EntityID] = entry
	return nil
}

func (s *InMemoryVerdictStore) Get(_ context.Context, entityID string) (*kyb.Verdict, error) {
	s.mu.RLock()
	entry, exists := s.verdicts[entityID]
	s.mu.RUnlock()

	if !exists {
		return nil, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.verdicts, entityID)
		s.mu.Unlock()
		return nil, nil
	}
	return entry.verdict, nil
}
