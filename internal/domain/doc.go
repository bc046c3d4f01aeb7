// Package domain decides whether a delivery address falls inside the configured
// service area.
//
// # UK Postcode Conventions
//
// A full postcode is an outward code followed by an inward code:
//
//	"KT2 6QL"  →  outward "KT2", inward "6QL"
//	"SW1A 1AA" →  outward "SW1A", inward "1AA"
//
// The outward code is one or two letters, one digit, and an optional letter or
// digit. The inward code is always one digit and two letters, so the outward code
// (the "postcode area" in this package) is whatever remains after removing the
// last three characters. Addresses are typed freely, so the space between the two
// halves is optional and matching is case-insensitive.
//
// # Decision Tiers
//
// Validation short-circuits on the first conclusive tier:
//
//	postcode      recognized postcode whose area starts with an accepted prefix
//	distance      haversine distance from supplied coordinates to the center
//	inconclusive  neither of the above; the message tells the user what to fix
//
// A positive postcode match always wins over distance evidence. Prefix matching is
// a plain starts-with test, so a registered "KT1" also accepts "KT10" through
// "KT19". That coarseness is known and kept.
//
// # Distances
//
// Distances are great-circle miles using a spherical Earth of radius 3959 miles.
// GeoMath does not validate its inputs; NaN in means NaN out.
package domain
