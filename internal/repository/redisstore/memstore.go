package redisstore

import (
	"context"
	"sync"
	"time"

	"internmatch-backend/internal/domain"
)

// memSeenStore keeps the ledger in process memory. Used for anonymous device
// scopes and as the fallback when Redis is not configured. Not synced across
// instances - acceptable for an optimization-only set.
type memSeenStore struct {
	mu     sync.RWMutex
	seen   map[string][]string
	stamps map[string]time.Time
}

func NewMemSeenStore() domain.SeenStore {
	return &memSeenStore{
		seen:   make(map[string][]string),
		stamps: make(map[string]time.Time),
	}
}

func (s *memSeenStore) GetSeen(_ context.Context, subjectID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.seen[subjectID]
	out := make([]string, len(ids))
	copy(out, ids)
	return out, nil
}

func (s *memSeenStore) PutSeen(_ context.Context, subjectID string, jobIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, len(jobIDs))
	copy(ids, jobIDs)
	s.seen[subjectID] = ids
	return nil
}

func (s *memSeenStore) GetResetStamp(_ context.Context, subjectID string) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stamps[subjectID], nil
}

func (s *memSeenStore) PutResetStamp(_ context.Context, subjectID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stamps[subjectID] = at
	return nil
}
