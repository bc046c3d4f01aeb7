package domain

// Tier names the validation stage that produced a verdict.
type Tier string

const (
	TierPostcode     Tier = "postcode"
	TierDistance     Tier = "distance"
	TierInconclusive Tier = "inconclusive"
)

// Verdict is the per-request answer to "do we deliver here?". It is built once
// and never mutated or cached.
type Verdict struct {
	IsValid                bool     `json:"is_valid"`
	DistanceMiles          *float64 `json:"distance_miles,omitempty"`
	Message                string   `json:"message"`
	NearestServiceAreaName string   `json:"nearest_service_area_name,omitempty"`

	Postcode string `json:"postcode,omitempty"` // normalized, e.g. "KT11AA"
	Tier     Tier   `json:"tier"`
}

// HasDistance reports whether the distance tier computed a distance.
func (v Verdict) HasDistance() bool {
	return v.DistanceMiles != nil
}
