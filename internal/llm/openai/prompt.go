package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"picki-backend/internal/llm"
)

// Message represents an OpenAI chat message.
type Message struct {
	Role    string
	Content string
}

// BuildPrompt renders the single user message for a recommendation request.
// The output schema is embedded in the prompt itself because the completion
// call is not guaranteed to honor structured-output constraints; the
// normalizer downstream recovers from schema near-misses.
func BuildPrompt(promptVersion string, input llm.RecommendInput) ([]Message, error) {
	template, _ := llm.PromptTemplate(strings.TrimSpace(promptVersion))

	inputJSON, err := renderInputJSON(input)
	if err != nil {
		return nil, fmt.Errorf("render prompt input: %w", err)
	}

	content := strings.Replace(template, "{{INPUT_JSON}}", inputJSON, 1)
	return []Message{{Role: "user", Content: content}}, nil
}

func renderInputJSON(input llm.RecommendInput) (string, error) {
	params := input.ImportantParams
	if params == nil {
		params = []string{}
	}
	payload := struct {
		ProductType string   `json:"productType"`
		Purpose     string   `json:"purpose"`
		Budget      float64  `json:"budget"`
		Parameters  []string `json:"parameters"`
	}{
		ProductType: input.DeviceType,
		Purpose:     input.UseCase,
		Budget:      input.BudgetEUR,
		Parameters:  params,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
