package recommendations

// Result is the normalized generation output: an echo of the request, four
// devices ordered best to worst, and a closing conclusion.
type Result struct {
	Query             Query          `json:"query"`
	Results           []DeviceResult `json:"results"`
	OverallConclusion string         `json:"overall_conclusion"`
}

// Query echoes the normalized request inside the result payload.
type Query struct {
	DeviceType      string   `json:"device_type"`
	UseCase         string   `json:"use_case"`
	BudgetEUR       float64  `json:"budget_eur"`
	ImportantParams []string `json:"important_params"`
}

// DeviceResult is one ranked candidate device.
type DeviceResult struct {
	DeviceName      string           `json:"device_name"`
	Type            string           `json:"type"`
	Price           Price            `json:"price"`
	OverBudgetBy    *float64         `json:"over_budget_by"`
	Specs           Specs            `json:"specs"`
	ParametersCheck []ParameterCheck `json:"parameters_check"`
	Score           float64          `json:"score"`
	WhyRanked       string           `json:"why_ranked"`
}

// Price carries an EUR amount; amount is null when the generator did not know.
type Price struct {
	Amount    *float64 `json:"amount"`
	Currency  string   `json:"currency"`
	PriceNote string   `json:"price_note"`
}

// Specs captures the mixed known/unknown device spec sheet. Numeric fields are
// nullable; string fields use the literal "unknown" when not known.
type Specs struct {
	GPU          string   `json:"gpu"`
	CPU          string   `json:"cpu"`
	RAMGB        *float64 `json:"ram_gb"`
	StorageGB    *float64 `json:"storage_gb"`
	Display      Display  `json:"display"`
	WeightKG     *float64 `json:"weight_kg"`
	ThicknessMM  *float64 `json:"thickness_mm"`
	BatteryWH    *float64 `json:"battery_wh"`
	ClaimedHours *float64 `json:"claimed_hours"`
	PortsNote    string   `json:"ports_note"`
	ReleaseYear  *int     `json:"release_year"`
}

// Display holds the screen-related spec fields.
type Display struct {
	SizeInches *float64 `json:"size_inches"`
	Resolution string   `json:"resolution"`
	RefreshHz  *float64 `json:"refresh_hz"`
	PanelType  string   `json:"panel_type"`
}

// ParameterCheck reports whether a requested priority parameter holds for a
// device. Exists is one of "true", "partial", "false", "unknown".
type ParameterCheck struct {
	Name   string  `json:"name"`
	Exists string  `json:"exists"`
	Detail *string `json:"detail"`
}

// ExpectedResults is the well-formed result cardinality.
const ExpectedResults = 4

func float64Ptr(v float64) *float64 { return &v }
func intPtr(v int) *int             { return &v }
func stringPtr(v string) *string    { return &v }
