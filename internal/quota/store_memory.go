package quota

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mu    sync.Mutex
	byUID map[string]Usage
}

func newMemoryStore() *memoryStore {
	return &memoryStore{byUID: make(map[string]Usage)}
}

func (s *memoryStore) Get(ctx context.Context, userID string) (Usage, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLocked(userID), nil
}

func (s *memoryStore) Consume(ctx context.Context, userID string, n int) (Usage, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.ensureLocked(userID)
	if n <= 0 {
		return u, nil
	}
	if u.Used+n > u.Limit {
		return Usage{}, ErrLimitReached
	}
	u.Used += n
	s.byUID[userID] = u
	return u, nil
}

// ensureLocked initializes or rolls the window. Callers hold mu.
func (s *memoryStore) ensureLocked(userID string) Usage {
	now := time.Now().UTC()
	u, ok := s.byUID[userID]
	if !ok || now.After(u.ResetsAt) {
		u = Usage{
			Plan:     defaultPlan,
			Limit:    defaultLimit,
			Used:     0,
			ResetsAt: now.Add(defaultWindow),
		}
		s.byUID[userID] = u
	}
	return u
}
