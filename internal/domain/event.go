package domain

import (
	"time"

	"github.com/google/uuid"
)

// VerdictEvent records one serviceability check for downstream demand analysis.
// The raw address is deliberately absent; only the postcode area is kept.
type VerdictEvent struct {
	ID            string    `json:"id"`
	CheckedAt     time.Time `json:"checked_at"`
	ServiceArea   string    `json:"service_area"`
	PostcodeArea  string    `json:"postcode_area,omitempty"`
	Tier          Tier      `json:"tier"`
	IsValid       bool      `json:"is_valid"`
	DistanceMiles *float64  `json:"distance_miles,omitempty"`
}

// NewVerdictEvent builds an event for v checked against area.
func NewVerdictEvent(area ServiceArea, v Verdict) VerdictEvent {
	ev := VerdictEvent{
		ID:          uuid.NewString(),
		CheckedAt:   clock.Now().UTC(),
		ServiceArea: area.Name(),
		Tier:        v.Tier,
		IsValid:     v.IsValid,
	}
	if v.Postcode != "" {
		ev.PostcodeArea = PostcodeArea(v.Postcode)
	}
	if v.DistanceMiles != nil {
		d := *v.DistanceMiles
		ev.DistanceMiles = &d
	}
	return ev
}
