package recommendations

import (
	"errors"
	"testing"
)

const wellFormedResponse = `{
  "query": {"device_type": "laptop", "use_case": "gaming", "budget_eur": 1500, "important_params": ["performance"]},
  "results": [
    {
      "device_name": "Test Laptop",
      "type": "gaming laptop",
      "price": {"amount": 1499, "currency": "EUR", "price_note": "msrp"},
      "over_budget_by": null,
      "specs": {
        "gpu": "RTX 4060", "cpu": "Ryzen 7", "ram_gb": 16, "storage_gb": 512,
        "display": {"size_inches": 15.6, "resolution": "2560x1440", "refresh_hz": 165, "panel_type": "IPS"},
        "weight_kg": 2.1, "thickness_mm": 19.9, "battery_wh": 76, "claimed_hours": 8,
        "ports_note": "unknown", "release_year": 2023
      },
      "parameters_check": [{"name": "performance", "exists": "true", "detail": "high-end GPU"}],
      "score": 90,
      "why_ranked": "Best performance for the budget."
    }
  ],
  "overall_conclusion": "Solid pick."
}`

func TestNormalizeParsesWellFormedResponse(t *testing.T) {
	result, err := Normalize([]byte(wellFormedResponse))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(result.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(result.Results))
	}
	device := result.Results[0]
	if device.DeviceName != "Test Laptop" {
		t.Fatalf("unexpected device_name: %q", device.DeviceName)
	}
	if device.Specs.RAMGB == nil || *device.Specs.RAMGB != 16 {
		t.Fatalf("unexpected ram_gb: %v", device.Specs.RAMGB)
	}
	if device.Specs.PortsNote != "unknown" {
		t.Fatalf("quoted unknown string should survive, got %q", device.Specs.PortsNote)
	}
}

func TestNormalizeSubstitutesBareUnknownTokens(t *testing.T) {
	raw := `{
  "results": [
    {
      "device_name": "Mystery Laptop",
      "price": {"amount": unknown, "currency": "EUR", "price_note": "unknown"},
      "specs": {"gpu": "unknown", "ram_gb": unknown, "storage_gb": unknown, "release_year": unknown},
      "score": 70,
      "why_ranked": "ok"
    }
  ],
  "overall_conclusion": "done"
}`
	result, err := Normalize([]byte(raw))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	device := result.Results[0]
	if device.Price.Amount != nil {
		t.Fatalf("expected null amount, got %v", *device.Price.Amount)
	}
	if device.Specs.RAMGB != nil || device.Specs.StorageGB != nil || device.Specs.ReleaseYear != nil {
		t.Fatalf("expected bare unknown numerics to become null")
	}
	if device.Specs.GPU != "unknown" {
		t.Fatalf("quoted unknown string mangled: %q", device.Specs.GPU)
	}
}

func TestNormalizeExtractsObjectFromProse(t *testing.T) {
	raw := "Sure! Here are your recommendations:\n\n" + wellFormedResponse + "\n\nLet me know if you need more."
	result, err := Normalize([]byte(raw))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if result.Results[0].DeviceName != "Test Laptop" {
		t.Fatalf("unexpected device_name: %q", result.Results[0].DeviceName)
	}
}

func TestNormalizeFailsWhenBothParsesFail(t *testing.T) {
	_, err := Normalize([]byte("I could not produce a recommendation this time, sorry {not json}"))
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestNormalizeRejectsEmptyResults(t *testing.T) {
	_, err := Normalize([]byte(`{"query": {}, "results": [], "overall_conclusion": ""}`))
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestNormalizeRejectsUnnamedDevice(t *testing.T) {
	_, err := Normalize([]byte(`{"results": [{"device_name": "  ", "score": 10}]}`))
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestNormalizeCoercesEnums(t *testing.T) {
	raw := `{
  "results": [
    {
      "device_name": "Enum Test",
      "price": {"amount": 100, "price_note": "RETAIL"},
      "parameters_check": [
        {"name": "battery", "exists": "TRUE", "detail": null},
        {"name": "screen", "exists": "maybe", "detail": null}
      ],
      "score": 50,
      "why_ranked": "ok"
    }
  ]
}`
	result, err := Normalize([]byte(raw))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	device := result.Results[0]
	if device.Price.PriceNote != "unknown" {
		t.Fatalf("expected price_note unknown, got %q", device.Price.PriceNote)
	}
	if device.Price.Currency != "EUR" {
		t.Fatalf("expected default currency EUR, got %q", device.Price.Currency)
	}
	if device.ParametersCheck[0].Exists != "true" {
		t.Fatalf("expected exists true, got %q", device.ParametersCheck[0].Exists)
	}
	if device.ParametersCheck[1].Exists != "unknown" {
		t.Fatalf("expected exists unknown, got %q", device.ParametersCheck[1].Exists)
	}
}
