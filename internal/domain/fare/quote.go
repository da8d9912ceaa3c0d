package fare

import "context"

// ProviderQuote is the normalized shape all provider clients return. Prices
// are integer cents so comparisons stay exact.
type ProviderQuote struct {
	DisplayName       string `json:"display_name"`
	RideType          string `json:"ride_type"`
	LowEstimateCents  int64  `json:"low_estimate_cents"`
	HighEstimateCents int64  `json:"high_estimate_cents"`
	DurationSeconds   int    `json:"duration_seconds"`
	CostToken         string `json:"cost_token,omitempty"`
	Currency          string `json:"currency"`
}

// QuoteProvider fetches fare quotes from one ride-hailing provider for a
// pickup/dropoff pair. Implementations must be safe for concurrent use.
type QuoteProvider interface {
	// Name identifies the provider in logs and results.
	Name() string

	// Quotes returns all quotes the provider offers for the given trip.
	// A failed or malformed upstream response is returned as an error and
	// affects only the candidate being probed, never the whole search.
	Quotes(ctx context.Context, pickup, dropoff Coordinate) ([]ProviderQuote, error)
}

// StreetValidator decides whether a coordinate is a plausible pickup point.
type StreetValidator interface {
	// IsValidStreet returns true if the coordinate has a routable street
	// nearby. A transport-level failure is returned as an error; callers
	// treat it as "not valid" for that one candidate.
	IsValidStreet(ctx context.Context, point Coordinate) (bool, error)
}
