package domain

import "fmt"

// Validator applies the tiered service-area policy against one ServiceArea.
type Validator struct {
	area ServiceArea
}

// NewValidator creates a Validator bound to area.
func NewValidator(area ServiceArea) *Validator {
	return &Validator{area: area}
}

// Area returns the service area this validator consults.
func (v *Validator) Area() ServiceArea {
	return v.area
}

// Validate decides whether addressText (and optionally coords) is serviceable.
// It never fails: unparseable input produces a negative verdict with guidance.
// Coordinates that are out of range or non-finite are treated as absent.
func (v *Validator) Validate(addressText string, coords *Coordinate) Verdict {
	postcode, hasPostcode := ExtractPostcode(addressText)
	area := ""
	if hasPostcode {
		area = PostcodeArea(postcode)
		if v.area.IsAcceptedPrefix(area) {
			return Verdict{
				IsValid:  true,
				Message:  fmt.Sprintf("%s is within our %s service area.", FormatPostcode(postcode), v.area.Name()),
				Postcode: postcode,
				Tier:     TierPostcode,
			}
		}
	}

	if coords != nil && coords.Valid() {
		return v.byDistance(*coords, postcode)
	}

	if hasPostcode {
		return Verdict{
			IsValid: false,
			Message: fmt.Sprintf("Postcode area %s is outside our service area. We currently deliver within %s miles of %s.",
				area, formatMiles(v.area.RadiusMiles()), v.area.Name()),
			Postcode: postcode,
			Tier:     TierInconclusive,
		}
	}

	return Verdict{
		IsValid: false,
		Message: "Please enter a valid address with a postcode so we can check delivery.",
		Tier:    TierInconclusive,
	}
}

func (v *Validator) byDistance(c Coordinate, postcode string) Verdict {
	distance := DistanceMiles(v.area.Center(), c)
	if distance <= v.area.RadiusMiles() {
		return Verdict{
			IsValid:       true,
			DistanceMiles: &distance,
			Message: fmt.Sprintf("This address is within our service area, %.1f miles from %s.",
				distance, v.area.Name()),
			Postcode: postcode,
			Tier:     TierDistance,
		}
	}
	return Verdict{
		IsValid:       false,
		DistanceMiles: &distance,
		Message: fmt.Sprintf("This address is %.1f miles from %s, outside our %s-mile delivery radius.",
			distance, v.area.Name(), formatMiles(v.area.RadiusMiles())),
		NearestServiceAreaName: v.area.Name(),
		Postcode:               postcode,
		Tier:                   TierDistance,
	}
}
