package recommendations

import "context"

// Repo persists generation records. Writes are best-effort from the service's
// point of view; reads back the history surface.
type Repo interface {
	Create(ctx context.Context, rec Recommendation) error
	GetByID(ctx context.Context, userID, id string) (Recommendation, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Recommendation, error)
}
