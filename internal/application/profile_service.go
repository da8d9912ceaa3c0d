package application

import (
	"context"
	"fmt"
	"time"

	userDomain "github.com/farefinder/service-fares/internal/domain/user"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UpdateInfoRequest holds profile fields a user can change.
type UpdateInfoRequest struct {
	FirstName     string   `json:"first_name"`
	LastName      string   `json:"last_name"`
	HomeAddress   string   `json:"home_address"`
	HomeLatitude  *float64 `json:"home_latitude"`
	HomeLongitude *float64 `json:"home_longitude"`
}

// UpdatePreferencesRequest holds the fare-search defaults a user can change.
type UpdatePreferencesRequest struct {
	SearchRangeFeet int   `json:"search_range_feet" binding:"required"`
	MaxPriceCents   int64 `json:"max_price_cents"`
}

// AddAddressRequest holds the data for saving a new address.
type AddAddressRequest struct {
	Address   string  `json:"address" binding:"required"`
	Nickname  string  `json:"nickname"`
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
}

// ProfileDTO is the response representation of a user's profile.
type ProfileDTO struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name,omitempty"`
	LastName      string    `json:"last_name,omitempty"`
	HomeAddress   string    `json:"home_address,omitempty"`
	HomeLatitude  *float64  `json:"home_latitude,omitempty"`
	HomeLongitude *float64  `json:"home_longitude,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SavedAddressDTO is the response representation of a saved address. The
// synthetic home entry has a nil ID.
type SavedAddressDTO struct {
	ID        *uuid.UUID `json:"id,omitempty"`
	Address   string     `json:"address"`
	Nickname  string     `json:"nickname,omitempty"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
}

// ProfileService is the application service for profile data, preferences,
// saved addresses and search history.
type ProfileService struct {
	users     userDomain.UserRepository
	addresses userDomain.AddressRepository
	logger    *zap.Logger
}

// NewProfileService creates a new ProfileService.
func NewProfileService(users userDomain.UserRepository, addresses userDomain.AddressRepository, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		users:     users,
		addresses: addresses,
		logger:    logger,
	}
}

// GetInfo returns the user's profile.
func (s *ProfileService) GetInfo(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	usr, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := toProfileDTO(usr)
	return &dto, nil
}

// UpdateInfo changes the user's name and home address.
func (s *ProfileService) UpdateInfo(ctx context.Context, userID uuid.UUID, req UpdateInfoRequest) (*ProfileDTO, error) {
	usr, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	usr.UpdateInfo(req.FirstName, req.LastName, req.HomeAddress, req.HomeLatitude, req.HomeLongitude)
	usr.IncrementVersion()

	if err := s.users.Update(ctx, usr); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("profile updated", zap.String("user_id", userID.String()))

	dto := toProfileDTO(usr)
	return &dto, nil
}

// GetPreferences returns the user's fare-search defaults.
func (s *ProfileService) GetPreferences(ctx context.Context, userID uuid.UUID) (*userDomain.Preferences, error) {
	usr, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	prefs := usr.Preferences()
	return &prefs, nil
}

// UpdatePreferences changes the user's fare-search defaults.
func (s *ProfileService) UpdatePreferences(ctx context.Context, userID uuid.UUID, req UpdatePreferencesRequest) (*userDomain.Preferences, error) {
	usr, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := usr.UpdatePreferences(userDomain.Preferences{
		SearchRangeFeet: req.SearchRangeFeet,
		MaxPriceCents:   req.MaxPriceCents,
	}); err != nil {
		return nil, err
	}
	usr.IncrementVersion()

	if err := s.users.Update(ctx, usr); err != nil {
		return nil, fmt.Errorf("failed to update preferences: %w", err)
	}

	prefs := usr.Preferences()
	return &prefs, nil
}

// ListSavedAddresses returns the user's saved addresses. When a home address
// with coordinates is set on the profile, it is prepended as a synthetic
// entry nicknamed "Home".
func (s *ProfileService) ListSavedAddresses(ctx context.Context, userID uuid.UUID) ([]SavedAddressDTO, error) {
	usr, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	saved, err := s.addresses.ListSavedAddresses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved addresses: %w", err)
	}

	dtos := make([]SavedAddressDTO, 0, len(saved)+1)
	if usr.HomeAddress() != "" && usr.HomeLatitude() != nil && usr.HomeLongitude() != nil {
		dtos = append(dtos, SavedAddressDTO{
			Address:   usr.HomeAddress(),
			Nickname:  "Home",
			Latitude:  *usr.HomeLatitude(),
			Longitude: *usr.HomeLongitude(),
		})
	}
	for _, addr := range saved {
		dtos = append(dtos, toSavedAddressDTO(addr))
	}
	return dtos, nil
}

// AddSavedAddress saves a new address for the user.
func (s *ProfileService) AddSavedAddress(ctx context.Context, userID uuid.UUID, req AddAddressRequest) (*SavedAddressDTO, error) {
	addr, err := userDomain.NewSavedAddress(userID, req.Address, req.Nickname, req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}

	if err := s.addresses.SaveAddress(ctx, addr); err != nil {
		return nil, fmt.Errorf("failed to save address: %w", err)
	}

	s.logger.Info("address saved",
		zap.String("user_id", userID.String()),
		zap.String("address_id", addr.ID().String()),
	)

	dto := toSavedAddressDTO(addr)
	return &dto, nil
}

// DeleteSavedAddress removes one of the user's saved addresses.
func (s *ProfileService) DeleteSavedAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	if err := s.addresses.DeleteAddress(ctx, userID, addressID); err != nil {
		return err
	}
	s.logger.Info("address deleted",
		zap.String("user_id", userID.String()),
		zap.String("address_id", addressID.String()),
	)
	return nil
}

// GetHistory returns the user's most recent fare searches.
func (s *ProfileService) GetHistory(ctx context.Context, userID uuid.UUID, limit int) ([]userDomain.SearchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	records, err := s.addresses.ListSearchRecords(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list search history: %w", err)
	}
	return records, nil
}

func toProfileDTO(u *userDomain.User) ProfileDTO {
	return ProfileDTO{
		ID:            u.ID(),
		Email:         u.Email(),
		FirstName:     u.FirstName(),
		LastName:      u.LastName(),
		HomeAddress:   u.HomeAddress(),
		HomeLatitude:  u.HomeLatitude(),
		HomeLongitude: u.HomeLongitude(),
		CreatedAt:     u.CreatedAt(),
		UpdatedAt:     u.UpdatedAt(),
	}
}

func toSavedAddressDTO(a *userDomain.SavedAddress) SavedAddressDTO {
	id := a.ID()
	return SavedAddressDTO{
		ID:        &id,
		Address:   a.Address(),
		Nickname:  a.Nickname(),
		Latitude:  a.Latitude(),
		Longitude: a.Longitude(),
	}
}
