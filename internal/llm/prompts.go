package llm

import _ "embed"

//go:embed prompts/recommend_v1.txt
var promptRecommendV1 string

// PromptTemplate returns the prompt template text and whether the version was
// recognized. Unknown versions fall back to v1.
func PromptTemplate(version string) (string, bool) {
	switch version {
	case "v1":
		return promptRecommendV1, true
	default:
		return promptRecommendV1, false
	}
}
