package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts LLM providers for device recommendation generation.
type Client interface {
	GenerateRecommendations(ctx context.Context, input RecommendInput) (json.RawMessage, error)
}

// RecommendInput captures the inputs embedded into the generation prompt.
type RecommendInput struct {
	DeviceType      string   `json:"productType"`
	UseCase         string   `json:"purpose"`
	BudgetEUR       float64  `json:"budget"`
	ImportantParams []string `json:"parameters"`
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM client not configured")

// PlaceholderClient is a stub implementation used when no provider is wired.
type PlaceholderClient struct{}

// GenerateRecommendations returns ErrNotConfigured.
func (PlaceholderClient) GenerateRecommendations(ctx context.Context, input RecommendInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotConfigured
}
