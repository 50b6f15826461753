package recommendations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"picki-backend/internal/llm"
	"picki-backend/internal/quota"
	"picki-backend/internal/shared/metrics"
	"picki-backend/internal/shared/telemetry"
)

// PlaceholderID is returned when a result was generated but not persisted.
const PlaceholderID = "mock-id"

// Service orchestrates validation, the mock-or-live generation branch,
// normalization, and best-effort persistence.
type Service struct {
	Repo     Repo
	Quota    *quota.Service
	LLM      llm.Client
	MockMode bool
	Model    string
}

// Generate runs the full pipeline for one request. On success it returns the
// recommendation id (service-issued when persisted, PlaceholderID otherwise)
// and the normalized result. Persistence failures are logged, never surfaced.
func (s *Service) Generate(ctx context.Context, userID string, req Request) (string, *Result, error) {
	if err := Validate(req); err != nil {
		return "", nil, err
	}

	if s.Quota != nil && userID != "" {
		ok, _, err := s.Quota.CanConsume(ctx, userID, 1)
		if err != nil {
			return "", nil, err
		}
		if !ok {
			return "", nil, quota.ErrLimitReached
		}
	}

	metrics.IncRecommendationStarted()
	startedAt := time.Now()

	result, err := s.generate(ctx, req)
	if err != nil {
		metrics.IncRecommendationFailed()
		return "", nil, err
	}

	metrics.IncRecommendationCompleted()
	metrics.ObserveGenerationDurationMs(float64(time.Since(startedAt).Microseconds()) / 1000.0)

	if len(result.Results) != ExpectedResults {
		telemetry.Warn("recommendation.cardinality", map[string]any{
			"expected": ExpectedResults,
			"got":      len(result.Results),
		})
	}

	if s.Quota != nil && userID != "" {
		if _, err := s.Quota.Consume(ctx, userID, 1); err != nil && !errors.Is(err, quota.ErrLimitReached) {
			telemetry.Warn("quota.consume_failed", map[string]any{"user_id": userID, "error": err.Error()})
		}
	}

	return s.persist(ctx, userID, req, result), result, nil
}

func (s *Service) generate(ctx context.Context, req Request) (*Result, error) {
	if s.MockMode {
		metrics.IncRecommendationMock()
		return MockResult(req), nil
	}

	if s.LLM == nil {
		return nil, ErrMissingCredential
	}

	raw, err := s.LLM.GenerateRecommendations(ctx, llm.RecommendInput{
		DeviceType:      req.ProductType,
		UseCase:         req.UseCase(),
		BudgetEUR:       req.Budget,
		ImportantParams: req.Parameters,
	})
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return nil, ErrMissingCredential
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	result, err := Normalize(raw)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// persist writes the interaction best-effort. A missing repo or a failed
// insert both degrade to the placeholder id; the generation result still
// reaches the caller.
func (s *Service) persist(ctx context.Context, userID string, req Request, result *Result) string {
	if s.Repo == nil || userID == "" {
		return PlaceholderID
	}

	rec := Recommendation{
		ID:        uuid.NewString(),
		UserID:    userID,
		Request:   req,
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		telemetry.Warn("recommendation.persist_failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return PlaceholderID
	}
	return rec.ID
}

// Get returns a persisted recommendation scoped to its owner.
func (s *Service) Get(ctx context.Context, userID, id string) (Recommendation, error) {
	if s.Repo == nil {
		return Recommendation{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID, id)
}

// List returns a user's recommendations newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Recommendation, error) {
	if s.Repo == nil {
		return nil, nil
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}
