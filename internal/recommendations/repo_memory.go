package recommendations

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo used in dev and tests when no database is
// configured.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Recommendation
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Recommendation)}
}

func (r *MemoryRepo) Create(ctx context.Context, rec Recommendation) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[rec.ID] = rec
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, id string) (Recommendation, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[id]
	if !ok || rec.UserID != userID {
		return Recommendation{}, ErrNotFound
	}
	return rec, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Recommendation, error) {
	_ = ctx
	r.mu.RLock()
	var out []Recommendation
	for _, rec := range r.byID {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
