package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// describePrefixLimit caps how many prefixes Describe lists before summarizing.
const describePrefixLimit = 6

// ServiceArea is the single named delivery region. It is immutable once built;
// share it freely across goroutines.
type ServiceArea struct {
	name        string
	center      Coordinate
	radiusMiles float64
	prefixes    []string
}

// NewServiceArea validates and normalizes the area definition. Prefixes are
// upper-cased, trimmed and deduplicated, keeping their first-seen order.
func NewServiceArea(name string, center Coordinate, radiusMiles float64, prefixes []string) (ServiceArea, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ServiceArea{}, errors.New("service area: name is required")
	}
	if !center.Valid() {
		return ServiceArea{}, fmt.Errorf("service area: invalid center %.4f,%.4f", center.Lat, center.Lon)
	}
	if !(radiusMiles > 0) || math.IsInf(radiusMiles, 1) {
		return ServiceArea{}, fmt.Errorf("service area: radius must be positive and finite, got %g", radiusMiles)
	}

	seen := make(map[string]struct{}, len(prefixes))
	normalized := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		p = normalizePostcode(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		normalized = append(normalized, p)
	}
	if len(normalized) == 0 {
		return ServiceArea{}, errors.New("service area: at least one postcode prefix is required")
	}

	return ServiceArea{
		name:        name,
		center:      center,
		radiusMiles: radiusMiles,
		prefixes:    normalized,
	}, nil
}

// DefaultServiceArea is the Kingston upon Thames area the service launched with.
func DefaultServiceArea() ServiceArea {
	area, err := NewServiceArea("Kingston upon Thames", Coordinate{Lat: 51.4123, Lon: -0.3007}, 10, DefaultPostcodePrefixes())
	if err != nil {
		panic(err)
	}
	return area
}

// DefaultPostcodePrefixes returns the postcode areas served by DefaultServiceArea.
func DefaultPostcodePrefixes() []string {
	return []string{
		"KT1", "KT2", "KT3", "KT4", "KT5", "KT6", "KT7", "KT8", "KT9",
		"SW15", "SW19", "SW20",
		"TW1", "TW2", "TW9", "TW10", "TW11", "TW12",
		"SM1", "SM2", "SM3", "SM4",
		"CR4",
	}
}

func (a ServiceArea) Name() string         { return a.name }
func (a ServiceArea) Center() Coordinate   { return a.center }
func (a ServiceArea) RadiusMiles() float64 { return a.radiusMiles }

// Prefixes returns a copy of the accepted postcode prefixes.
func (a ServiceArea) Prefixes() []string {
	out := make([]string, len(a.prefixes))
	copy(out, a.prefixes)
	return out
}

// IsAcceptedPrefix reports whether the postcode area starts with any registered
// prefix. This is a starts-with test: "KT1" accepts "KT10" as well.
func (a ServiceArea) IsAcceptedPrefix(area string) bool {
	area = normalizePostcode(area)
	if area == "" {
		return false
	}
	for _, p := range a.prefixes {
		if strings.HasPrefix(area, p) {
			return true
		}
	}
	return false
}

// Describe summarizes the area for humans, e.g.
// "Kingston upon Thames: within 10 miles; postcodes KT1, KT2, ... and 17 more".
func (a ServiceArea) Describe() string {
	shown := a.prefixes
	if len(shown) > describePrefixLimit {
		shown = shown[:describePrefixLimit]
	}

	var b strings.Builder
	b.WriteString(a.name)
	b.WriteString(": within ")
	b.WriteString(formatMiles(a.radiusMiles))
	b.WriteString(" miles; postcodes ")
	b.WriteString(strings.Join(shown, ", "))
	if rest := len(a.prefixes) - len(shown); rest > 0 {
		fmt.Fprintf(&b, " and %d more", rest)
	}
	return b.String()
}

// formatMiles drops a trailing ".0" so whole radii read naturally.
func formatMiles(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
