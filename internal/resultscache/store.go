// Package resultscache is a keyed store for generated recommendation
// results, so a results view can be reopened by id without regenerating.
// Writes are last-write-wins and nothing is ever evicted; the caller clears
// the store explicitly.
package resultscache

import (
	"sync"

	"picki-backend/internal/recommendations"
)

// Persister saves and restores the full cache contents. A nil Persister
// makes the store purely in-memory.
type Persister interface {
	Load() (map[string]recommendations.Result, error)
	Save(map[string]recommendations.Result) error
}

// Store maps recommendation ids to their generated results.
type Store struct {
	mu        sync.RWMutex
	byID      map[string]recommendations.Result
	persister Persister
}

// New builds a Store, restoring prior contents when a persister is given.
// A persister load failure starts the store empty rather than failing.
func New(p Persister) *Store {
	s := &Store{
		byID:      map[string]recommendations.Result{},
		persister: p,
	}
	if p != nil {
		if restored, err := p.Load(); err == nil && restored != nil {
			s.byID = restored
		}
	}
	return s
}

// Save stores a result under id, replacing any previous entry.
func (s *Store) Save(id string, result recommendations.Result) {
	s.mu.Lock()
	s.byID[id] = result
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(snapshot)
}

// Get fetches the result stored under id.
func (s *Store) Get(id string) (recommendations.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.byID[id]
	return result, ok
}

// Len reports the number of stored results.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// Clear drops every stored result.
func (s *Store) Clear() {
	s.mu.Lock()
	s.byID = map[string]recommendations.Result{}
	s.mu.Unlock()

	s.persist(map[string]recommendations.Result{})
}

func (s *Store) snapshotLocked() map[string]recommendations.Result {
	snapshot := make(map[string]recommendations.Result, len(s.byID))
	for id, result := range s.byID {
		snapshot[id] = result
	}
	return snapshot
}

func (s *Store) persist(snapshot map[string]recommendations.Result) {
	if s.persister == nil {
		return
	}
	// Persistence is best effort; a failed save never breaks the caller.
	_ = s.persister.Save(snapshot)
}
