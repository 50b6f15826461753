package recommendations

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// The generator sometimes emits the bare word "unknown" where the schema
// demands a nullable number. The pattern only matches an unquoted token
// immediately preceding a comma, closing brace, or closing bracket, so
// legitimate "unknown" string values are left alone.
var numericUnknown = regexp.MustCompile(`:\s*unknown(\s*[,\}\]])`)

// Normalize coerces an untrusted textual generation response into a Result.
// It tries a direct parse after token substitution, then falls back to
// extracting the outermost brace-delimited span from surrounding prose. If
// both fail the response is unusable and ErrGenerationFailed is returned;
// this is never silently swallowed into an empty result.
func Normalize(raw []byte) (*Result, error) {
	text := substituteUnknown(string(raw))

	result, directErr := parseResult(text)
	if directErr == nil {
		return result, nil
	}

	span, ok := braceSpan(text)
	if ok {
		if result, err := parseResult(span); err == nil {
			return result, nil
		}
	}

	return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, directErr)
}

func substituteUnknown(text string) string {
	return numericUnknown.ReplaceAllString(text, ": null$1")
}

// braceSpan returns the greedy span from the first opening brace to the last
// closing brace, the way the response prose usually wraps a single object.
func braceSpan(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

func parseResult(text string) (*Result, error) {
	var result Result
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, err
	}
	if err := checkResult(&result); err != nil {
		return nil, err
	}
	normalizeEnums(&result)
	return &result, nil
}

// checkResult enforces the invariants a usable result must hold. The
// four-result cardinality is asserted leniently elsewhere; an empty result
// set or unnamed devices make the payload unusable.
func checkResult(r *Result) error {
	if len(r.Results) == 0 {
		return fmt.Errorf("results missing or empty")
	}
	for i, d := range r.Results {
		if strings.TrimSpace(d.DeviceName) == "" {
			return fmt.Errorf("results[%d]: device_name missing", i)
		}
	}
	return nil
}

func normalizeEnums(r *Result) {
	for i := range r.Results {
		d := &r.Results[i]
		d.Price.PriceNote = normalizeToken(d.Price.PriceNote, "msrp", "street")
		if d.Price.Currency == "" {
			d.Price.Currency = "EUR"
		}
		for j := range d.ParametersCheck {
			c := &d.ParametersCheck[j]
			c.Exists = normalizeToken(c.Exists, "true", "partial", "false")
		}
	}
}

// normalizeToken lowercases a token and coerces anything outside the allowed
// set to "unknown".
func normalizeToken(raw string, allowed ...string) string {
	token := strings.ToLower(strings.TrimSpace(raw))
	for _, a := range allowed {
		if token == a {
			return token
		}
	}
	return "unknown"
}
