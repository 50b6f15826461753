package recommendations

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrMissingCredential = errors.New("missing OpenAI API key")
	ErrUpstream          = errors.New("AI generation failed")
	ErrGenerationFailed  = errors.New("generation response unusable")
)

const (
	ErrorCodeValidation    = "VALIDATION_ERROR"
	ErrorCodeConfiguration = "CONFIGURATION_ERROR"
	ErrorCodeUpstream      = "UPSTREAM_UNAVAILABLE"
	ErrorCodeGeneration    = "GENERATION_FAILED"
	ErrorCodeInternal      = "INTERNAL_ERROR"
)

// FieldError carries field-level validation detail.
type FieldError struct {
	Field string `json:"field"`
	Code  string `json:"issue"`
}

// ValidationError aggregates per-field validation failures.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	msg := "invalid input:"
	for _, f := range e.Fields {
		msg += " " + f.Field + "=" + f.Code
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
