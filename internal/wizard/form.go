// Package wizard implements the four-step recommendation form: its field
// state, per-step validation, and the single-slot submit guard. The terminal
// client in cmd/wizard drives it against the API.
package wizard

import (
	"picki-backend/internal/recommendations"
)

// Wizard steps, in order.
const (
	StepProductType = 0
	StepPurpose     = 1
	StepBudget      = 2
	StepParameters  = 3

	TotalSteps = 4
)

// MaxSelections caps the priority parameters a user may pick.
const MaxSelections = recommendations.MaxParameters

// Validation codes reported per field.
const (
	CodeRequired      = "required"
	CodeInvalidBudget = "invalidBudget"
	CodeMinParameters = "minParameters"
)

// FormData is the persistable part of the wizard state. UI state (current
// step, errors, loading) is deliberately excluded from snapshots.
type FormData struct {
	ProductType   string   `json:"productType"`
	Purpose       string   `json:"purpose"`
	CustomPurpose string   `json:"customPurpose,omitempty"`
	Budget        *float64 `json:"budget"`
	Parameters    []string `json:"parameters"`
}

// Form is the wizard state machine. It is not safe for concurrent use; the
// submit path is serialized separately by Guard.
type Form struct {
	Data        FormData
	CurrentStep int
	Errors      map[string]string
	Loading     bool
}

// NewForm returns an empty form positioned at the first step.
func NewForm() *Form {
	return &Form{Errors: map[string]string{}}
}

// SetProductType records the product type and clears its error.
func (f *Form) SetProductType(v string) {
	f.Data.ProductType = v
	f.clearError("productType")
}

// SetPurpose records the purpose and clears its error.
func (f *Form) SetPurpose(v string) {
	f.Data.Purpose = v
	f.clearError("purpose")
}

// SetCustomPurpose records the free-text purpose refinement.
func (f *Form) SetCustomPurpose(v string) {
	f.Data.CustomPurpose = v
	f.clearError("customPurpose")
}

// SetBudget records the budget and clears its error.
func (f *Form) SetBudget(v float64) {
	f.Data.Budget = &v
	f.clearError("budget")
}

// ToggleParameter adds or removes a priority parameter. Adding past
// MaxSelections is a no-op; it reports whether the parameter is selected
// after the call.
func (f *Form) ToggleParameter(name string) bool {
	for i, p := range f.Data.Parameters {
		if p == name {
			f.Data.Parameters = append(f.Data.Parameters[:i], f.Data.Parameters[i+1:]...)
			f.clearError("parameters")
			return false
		}
	}
	if len(f.Data.Parameters) >= MaxSelections {
		return false
	}
	f.Data.Parameters = append(f.Data.Parameters, name)
	f.clearError("parameters")
	return true
}

// SetStep moves to step when it is in range; out-of-range steps are ignored.
func (f *Form) SetStep(step int) {
	if step >= 0 && step < TotalSteps {
		f.CurrentStep = step
	}
}

// Next validates the current step and advances when valid. It reports
// whether the form advanced (or, on the last step, validated clean).
func (f *Form) Next() bool {
	if !f.ValidateStep(f.CurrentStep) {
		return false
	}
	if f.CurrentStep < TotalSteps-1 {
		f.CurrentStep++
	}
	return true
}

// Back moves one step back, stopping at the first step.
func (f *Form) Back() {
	if f.CurrentStep > 0 {
		f.CurrentStep--
	}
}

// Reset returns the form to its initial state.
func (f *Form) Reset() {
	*f = Form{Errors: map[string]string{}}
}

// ValidateStep checks one step and records per-field error codes. Earlier
// errors are replaced wholesale, mirroring the submit flow where each
// validation pass starts clean.
func (f *Form) ValidateStep(step int) bool {
	errs := map[string]string{}

	switch step {
	case StepProductType:
		if f.Data.ProductType == "" {
			errs["productType"] = CodeRequired
		}
	case StepPurpose:
		if f.Data.Purpose == "" {
			errs["purpose"] = CodeRequired
		}
	case StepBudget:
		if f.Data.Budget == nil || *f.Data.Budget <= 0 {
			errs["budget"] = CodeInvalidBudget
		}
	case StepParameters:
		if len(f.Data.Parameters) == 0 {
			errs["parameters"] = CodeMinParameters
		}
	}

	f.Errors = errs
	return len(errs) == 0
}

// CanProceed reports whether step is complete without mutating errors.
func (f *Form) CanProceed(step int) bool {
	switch step {
	case StepProductType:
		return f.Data.ProductType != ""
	case StepPurpose:
		return f.Data.Purpose != ""
	case StepBudget:
		return f.Data.Budget != nil && *f.Data.Budget > 0
	case StepParameters:
		return len(f.Data.Parameters) > 0
	default:
		return false
	}
}

// Request converts the completed form into an API request payload.
func (f *Form) Request() recommendations.Request {
	var budget float64
	if f.Data.Budget != nil {
		budget = *f.Data.Budget
	}
	return recommendations.Request{
		ProductType:   f.Data.ProductType,
		Purpose:       f.Data.Purpose,
		CustomPurpose: f.Data.CustomPurpose,
		Budget:        budget,
		Parameters:    append([]string(nil), f.Data.Parameters...),
	}
}

func (f *Form) clearError(field string) {
	if f.Errors == nil {
		f.Errors = map[string]string{}
	}
	delete(f.Errors, field)
}
