package recommendations

// validation error codes, consumed field-by-field by the wizard UI.
const (
	codeRequired      = "required"
	codeInvalidBudget = "invalidBudget"
	codeMinParameters = "minParameters"
	codeMaxParameters = "maxParameters"
	codeUnknownValue  = "unknownValue"
)

// Validate checks a request's shape and ranges. It reports every failing
// field rather than stopping at the first.
func Validate(req Request) error {
	var fields []FieldError

	if req.ProductType == "" {
		fields = append(fields, FieldError{Field: "productType", Code: codeRequired})
	} else if !contains(ProductTypes, req.ProductType) {
		fields = append(fields, FieldError{Field: "productType", Code: codeUnknownValue})
	}

	// purpose=="other" passes even with an empty customPurpose; the effective
	// use case falls back to the purpose value at prompt time.
	if req.Purpose == "" {
		fields = append(fields, FieldError{Field: "purpose", Code: codeRequired})
	} else if !contains(Purposes, req.Purpose) {
		fields = append(fields, FieldError{Field: "purpose", Code: codeUnknownValue})
	}

	if req.Budget <= 0 {
		fields = append(fields, FieldError{Field: "budget", Code: codeInvalidBudget})
	}

	switch {
	case len(req.Parameters) == 0:
		fields = append(fields, FieldError{Field: "parameters", Code: codeMinParameters})
	case len(req.Parameters) > MaxParameters:
		fields = append(fields, FieldError{Field: "parameters", Code: codeMaxParameters})
	default:
		for _, p := range req.Parameters {
			if !contains(Parameters, p) {
				fields = append(fields, FieldError{Field: "parameters", Code: codeUnknownValue})
				break
			}
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
