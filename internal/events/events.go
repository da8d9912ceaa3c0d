package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics.
const (
	TopicFareEvents = "fare.events"
)

// Event types.
const (
	FareSearchCompleted = "fare.search.completed"
)

// FareSearchCompletedEvent is published after every fare search. UserID is
// nil for anonymous searches; those are not recorded in any history.
type FareSearchCompletedEvent struct {
	SearchID       uuid.UUID  `json:"search_id"`
	UserID         *uuid.UUID `json:"user_id,omitempty"`
	OriginLat      float64    `json:"origin_lat"`
	OriginLng      float64    `json:"origin_lng"`
	DestinationLat float64    `json:"destination_lat"`
	DestinationLng float64    `json:"destination_lng"`
	RadiusFeet     int        `json:"radius_feet"`
	BestLocation   string     `json:"best_location,omitempty"`
	BestRideType   string     `json:"best_ride_type,omitempty"`
	BestPriceCents *int64     `json:"best_price_cents,omitempty"`
	OptionCount    int        `json:"option_count"`
	OccurredAt     time.Time  `json:"occurred_at"`
}
