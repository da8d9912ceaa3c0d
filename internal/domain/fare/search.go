package fare

import (
	"fmt"

	"github.com/farefinder/service-fares/internal/domain"
)

const (
	// DefaultRadiusFeet is the search radius used when the caller does not
	// provide one.
	DefaultRadiusFeet = 500
	// DefaultLimit is the number of options returned when the caller does
	// not ask for a specific count.
	DefaultLimit = 3
)

// SearchParams are the validated inputs to one fare search.
type SearchParams struct {
	Origin      Coordinate
	Destination Coordinate
	RadiusFeet  int
	Limit       int
}

// Validate rejects malformed parameters before any fan-out begins.
func (p SearchParams) Validate() error {
	if err := p.Origin.Validate(); err != nil {
		return err
	}
	if err := p.Destination.Validate(); err != nil {
		return err
	}
	if p.RadiusFeet <= 0 {
		return domain.NewValidationError(fmt.Sprintf("search radius must be positive, got %d", p.RadiusFeet))
	}
	if p.Limit <= 0 {
		return domain.NewValidationError(fmt.Sprintf("result limit must be positive, got %d", p.Limit))
	}
	return nil
}

// FareOption is one ranked result: a quote tagged with the candidate pickup
// point it came from.
type FareOption struct {
	Location   string     `json:"location"`
	Pickup     Coordinate `json:"pickup"`
	PriceCents int64      `json:"price_cents"`
	RideType   string     `json:"ride_type"`
	Provider   string     `json:"provider"`
}

// Price returns the option's low estimate in dollars.
func (o FareOption) Price() float64 {
	return float64(o.PriceCents) / 100.0
}

// SearchResult is the ordered outcome of one fare search. An empty Options
// slice is a legitimate "no fare found" outcome, not an error.
type SearchResult struct {
	Options []FareOption `json:"options"`
}

// Best returns the cheapest option, or false if the search found none.
func (r *SearchResult) Best() (FareOption, bool) {
	if len(r.Options) == 0 {
		return FareOption{}, false
	}
	return r.Options[0], true
}
