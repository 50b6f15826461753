package recommendations

import (
	"errors"
	"testing"
)

func validRequest() Request {
	return Request{
		ProductType: "laptop",
		Purpose:     "gaming",
		Budget:      1500,
		Parameters:  []string{"performance", "battery"},
	}
}

func fieldCode(t *testing.T, err error, field string) string {
	t.Helper()
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, f := range vErr.Fields {
		if f.Field == field {
			return f.Code
		}
	}
	t.Fatalf("no error recorded for field %q: %+v", field, vErr.Fields)
	return ""
}

func TestValidateAcceptsCompleteRequest(t *testing.T) {
	if err := Validate(validRequest()); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestValidateCollectsAllMissingFields(t *testing.T) {
	err := Validate(Request{})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(vErr.Fields) != 4 {
		t.Fatalf("expected 4 field errors, got %d: %+v", len(vErr.Fields), vErr.Fields)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("ValidationError should unwrap to ErrInvalidInput")
	}
}

func TestValidateBudgetBounds(t *testing.T) {
	for _, budget := range []float64{0, -10} {
		req := validRequest()
		req.Budget = budget
		if code := fieldCode(t, Validate(req), "budget"); code != "invalidBudget" {
			t.Fatalf("budget %v: expected invalidBudget, got %q", budget, code)
		}
	}
}

func TestValidateParameterBounds(t *testing.T) {
	req := validRequest()
	req.Parameters = nil
	if code := fieldCode(t, Validate(req), "parameters"); code != "minParameters" {
		t.Fatalf("expected minParameters, got %q", code)
	}

	req.Parameters = []string{"performance", "battery", "screen", "price"}
	if code := fieldCode(t, Validate(req), "parameters"); code != "maxParameters" {
		t.Fatalf("expected maxParameters, got %q", code)
	}

	req.Parameters = []string{"performance", "warp-drive"}
	if code := fieldCode(t, Validate(req), "parameters"); code != "unknownValue" {
		t.Fatalf("expected unknownValue, got %q", code)
	}
}

func TestValidateRejectsUnknownProductType(t *testing.T) {
	req := validRequest()
	req.ProductType = "spaceship"
	if code := fieldCode(t, Validate(req), "productType"); code != "unknownValue" {
		t.Fatalf("expected unknownValue, got %q", code)
	}
}

func TestValidateOtherPurposeWithoutCustomPasses(t *testing.T) {
	req := validRequest()
	req.Purpose = "other"
	req.CustomPurpose = ""
	if err := Validate(req); err != nil {
		t.Fatalf("purpose=other should pass without customPurpose, got %v", err)
	}
	if req.UseCase() != "other" {
		t.Fatalf("expected use case fallback to purpose, got %q", req.UseCase())
	}
}
