package recommendations

import "time"

// Known value sets for wizard answers. "other" is a legitimate member of both
// productType and purpose; customPurpose refines purpose=="other".
var (
	ProductTypes = []string{"smartphone", "laptop", "tablet", "headphones", "camera", "other"}
	Purposes     = []string{"work", "gaming", "travel", "study", "photography", "music", "other"}
	Parameters   = []string{"performance", "battery", "screen", "camera", "brand", "price", "portability", "storage"}
)

// MaxParameters caps the priority-parameter selection.
const MaxParameters = 3

// Request is a recommendation request as submitted from the wizard.
type Request struct {
	ProductType   string   `json:"productType"`
	Purpose       string   `json:"purpose"`
	CustomPurpose string   `json:"customPurpose,omitempty"`
	Budget        float64  `json:"budget"`
	Parameters    []string `json:"parameters"`
}

// UseCase resolves the effective use case, preferring customPurpose.
func (r Request) UseCase() string {
	if r.CustomPurpose != "" {
		return r.CustomPurpose
	}
	return r.Purpose
}

// Recommendation is a persisted generation record.
type Recommendation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Request   Request   `json:"request"`
	Result    *Result   `json:"result,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
