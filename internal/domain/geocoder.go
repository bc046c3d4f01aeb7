package domain

import "context"

// Geocoder resolves free-text addresses to an approximate coordinate.
type Geocoder interface {
	// Resolve returns the coordinate for addressText. A false result with a nil
	// error is a normal miss. Errors are reserved for provider failures and
	// context cancellation.
	Resolve(ctx context.Context, addressText string) (Coordinate, bool, error)
}
