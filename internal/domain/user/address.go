package user

import (
	"time"

	"github.com/farefinder/service-fares/internal/domain"
	"github.com/google/uuid"
)

// SavedAddress is a nicknamed location a user can pick as a search endpoint.
type SavedAddress struct {
	id        uuid.UUID
	userID    uuid.UUID
	address   string
	nickname  string
	latitude  float64
	longitude float64
	createdAt time.Time
}

// NewSavedAddress creates a saved address for the given user.
func NewSavedAddress(userID uuid.UUID, address, nickname string, latitude, longitude float64) (*SavedAddress, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user ID is required")
	}
	if address == "" {
		return nil, domain.NewValidationError("address is required")
	}

	return &SavedAddress{
		id:        uuid.New(),
		userID:    userID,
		address:   address,
		nickname:  nickname,
		latitude:  latitude,
		longitude: longitude,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructSavedAddress rebuilds a SavedAddress from persistence data.
func ReconstructSavedAddress(id, userID uuid.UUID, address, nickname string, latitude, longitude float64, createdAt time.Time) *SavedAddress {
	return &SavedAddress{
		id:        id,
		userID:    userID,
		address:   address,
		nickname:  nickname,
		latitude:  latitude,
		longitude: longitude,
		createdAt: createdAt,
	}
}

func (a *SavedAddress) ID() uuid.UUID        { return a.id }
func (a *SavedAddress) UserID() uuid.UUID    { return a.userID }
func (a *SavedAddress) Address() string      { return a.address }
func (a *SavedAddress) Nickname() string     { return a.nickname }
func (a *SavedAddress) Latitude() float64    { return a.latitude }
func (a *SavedAddress) Longitude() float64   { return a.longitude }
func (a *SavedAddress) CreatedAt() time.Time { return a.createdAt }

// SearchRecord is one row of a user's fare-search history. It is written by
// the event consumer after a search completes and only ever read back as a
// list, so it stays a plain value type.
type SearchRecord struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	OriginLat      float64   `json:"origin_lat"`
	OriginLng      float64   `json:"origin_lng"`
	DestinationLat float64   `json:"destination_lat"`
	DestinationLng float64   `json:"destination_lng"`
	RadiusFeet     int       `json:"radius_feet"`
	BestLocation   string    `json:"best_location,omitempty"`
	BestRideType   string    `json:"best_ride_type,omitempty"`
	BestPriceCents *int64    `json:"best_price_cents,omitempty"`
	OptionCount    int       `json:"option_count"`
	SearchedAt     time.Time `json:"searched_at"`
}
