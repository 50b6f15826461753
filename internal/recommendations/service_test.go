package recommendations

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"picki-backend/internal/llm"
	"picki-backend/internal/quota"
)

type staticLLMResponse struct {
	resp string
	err  error
}

func (s staticLLMResponse) GenerateRecommendations(ctx context.Context, input llm.RecommendInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	if s.err != nil {
		return nil, s.err
	}
	return json.RawMessage(s.resp), nil
}

type explodingLLM struct {
	t *testing.T
}

func (e explodingLLM) GenerateRecommendations(ctx context.Context, input llm.RecommendInput) (json.RawMessage, error) {
	e.t.Fatalf("LLM must not be called for invalid input")
	return nil, nil
}

type failingRepo struct{}

func (failingRepo) Create(ctx context.Context, rec Recommendation) error { return errors.New("down") }
func (failingRepo) GetByID(ctx context.Context, userID, id string) (Recommendation, error) {
	return Recommendation{}, errors.New("down")
}
func (failingRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Recommendation, error) {
	return nil, errors.New("down")
}

func TestGenerateMockModeReturnsCameraFixture(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(), MockMode: true}

	req := Request{
		ProductType: "camera",
		Purpose:     "photography",
		Budget:      500,
		Parameters:  []string{"performance", "camera", "portability"},
	}
	id, result, err := svc.Generate(context.Background(), "user-1", req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if id == "" || id == PlaceholderID {
		t.Fatalf("expected a persisted id, got %q", id)
	}
	if len(result.Results) != ExpectedResults {
		t.Fatalf("expected %d results, got %d", ExpectedResults, len(result.Results))
	}
	if result.Results[0].DeviceName != "Canon EOS M50 Mark II" {
		t.Fatalf("unexpected first device: %q", result.Results[0].DeviceName)
	}

	saved, err := svc.Get(context.Background(), "user-1", id)
	if err != nil {
		t.Fatalf("Get after Generate: %v", err)
	}
	if saved.Request.ProductType != "camera" {
		t.Fatalf("unexpected persisted request: %+v", saved.Request)
	}
}

func TestGenerateMockModeEchoesBudgetForLaptops(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(), MockMode: true}

	req := validRequest()
	req.Budget = 1234
	_, result, err := svc.Generate(context.Background(), "user-1", req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.Query.BudgetEUR != 1234 {
		t.Fatalf("expected query budget 1234, got %v", result.Query.BudgetEUR)
	}
}

func TestGenerateRejectsInvalidInputBeforeLLMCall(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo(), LLM: explodingLLM{t: t}}

	req := validRequest()
	req.Budget = -10
	_, _, err := svc.Generate(context.Background(), "user-1", req)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestGenerateWithoutClientReportsMissingCredential(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	_, _, err := svc.Generate(context.Background(), "user-1", validRequest())
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}

func TestGenerateWrapsUpstreamFailure(t *testing.T) {
	svc := &Service{
		Repo: NewMemoryRepo(),
		LLM:  staticLLMResponse{err: errors.New("connection refused")},
	}

	_, _, err := svc.Generate(context.Background(), "user-1", validRequest())
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestGenerateSurfacesUnusableResponse(t *testing.T) {
	svc := &Service{
		Repo: NewMemoryRepo(),
		LLM:  staticLLMResponse{resp: "no JSON here at all"},
	}

	_, _, err := svc.Generate(context.Background(), "user-1", validRequest())
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestGeneratePersistFailureDegradesToPlaceholder(t *testing.T) {
	svc := &Service{Repo: failingRepo{}, MockMode: true}

	id, result, err := svc.Generate(context.Background(), "user-1", validRequest())
	if err != nil {
		t.Fatalf("persist failure must not surface: %v", err)
	}
	if id != PlaceholderID {
		t.Fatalf("expected placeholder id, got %q", id)
	}
	if result == nil || len(result.Results) == 0 {
		t.Fatalf("expected a usable result despite persist failure")
	}
}

func TestGenerateWithoutRepoUsesPlaceholder(t *testing.T) {
	svc := &Service{MockMode: true}

	id, _, err := svc.Generate(context.Background(), "user-1", validRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if id != PlaceholderID {
		t.Fatalf("expected placeholder id, got %q", id)
	}
}

func TestGenerateEnforcesQuota(t *testing.T) {
	quotaSvc := quota.NewService()
	svc := &Service{Repo: NewMemoryRepo(), Quota: quotaSvc, MockMode: true}

	usage, err := quotaSvc.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("quota get: %v", err)
	}
	if _, err := quotaSvc.Consume(context.Background(), "user-1", usage.Limit); err != nil {
		t.Fatalf("exhaust quota: %v", err)
	}

	_, _, err = svc.Generate(context.Background(), "user-1", validRequest())
	if !errors.Is(err, quota.ErrLimitReached) {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}
}
