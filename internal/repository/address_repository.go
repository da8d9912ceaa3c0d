package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/farefinder/service-fares/internal/domain"
	userDomain "github.com/farefinder/service-fares/internal/domain/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SavedAddressModel is the GORM model for the saved_addresses table.
type SavedAddressModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Address   string    `gorm:"not null;size:500"`
	Nickname  string    `gorm:"size:100"`
	Latitude  float64   `gorm:"not null"`
	Longitude float64   `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (SavedAddressModel) TableName() string {
	return "saved_addresses"
}

// SearchRecordModel is the GORM model for the search_records table.
type SearchRecordModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;index;not null"`
	OriginLat      float64   `gorm:"not null"`
	OriginLng      float64   `gorm:"not null"`
	DestinationLat float64   `gorm:"not null"`
	DestinationLng float64   `gorm:"not null"`
	RadiusFeet     int       `gorm:"not null"`
	BestLocation   string    `gorm:"size:50"`
	BestRideType   string    `gorm:"size:100"`
	BestPriceCents *int64
	OptionCount    int       `gorm:"not null"`
	SearchedAt     time.Time `gorm:"not null;index"`
}

// TableName returns the table name for the GORM model.
func (SearchRecordModel) TableName() string {
	return "search_records"
}

// GormAddressRepository is the GORM-based implementation of AddressRepository.
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository.
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// ListSavedAddresses retrieves a user's saved addresses, oldest first.
func (r *GormAddressRepository) ListSavedAddresses(ctx context.Context, userID uuid.UUID) ([]*userDomain.SavedAddress, error) {
	var models []SavedAddressModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list saved addresses: %w", err)
	}

	addresses := make([]*userDomain.SavedAddress, len(models))
	for i, m := range models {
		addresses[i] = userDomain.ReconstructSavedAddress(
			m.ID, m.UserID, m.Address, m.Nickname, m.Latitude, m.Longitude, m.CreatedAt,
		)
	}
	return addresses, nil
}

// SaveAddress persists a new saved address.
func (r *GormAddressRepository) SaveAddress(ctx context.Context, addr *userDomain.SavedAddress) error {
	model := SavedAddressModel{
		ID:        addr.ID(),
		UserID:    addr.UserID(),
		Address:   addr.Address(),
		Nickname:  addr.Nickname(),
		Latitude:  addr.Latitude(),
		Longitude: addr.Longitude(),
		CreatedAt: addr.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save address: %w", err)
	}
	return nil
}

// DeleteAddress removes a saved address owned by the given user.
func (r *GormAddressRepository) DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		Delete(&SavedAddressModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete address: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Address", addressID.String())
	}
	return nil
}

// ListSearchRecords retrieves a user's search history, newest first.
func (r *GormAddressRepository) ListSearchRecords(ctx context.Context, userID uuid.UUID, limit int) ([]userDomain.SearchRecord, error) {
	var models []SearchRecordModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("searched_at DESC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list search records: %w", err)
	}

	records := make([]userDomain.SearchRecord, len(models))
	for i, m := range models {
		records[i] = userDomain.SearchRecord{
			ID:             m.ID,
			UserID:         m.UserID,
			OriginLat:      m.OriginLat,
			OriginLng:      m.OriginLng,
			DestinationLat: m.DestinationLat,
			DestinationLng: m.DestinationLng,
			RadiusFeet:     m.RadiusFeet,
			BestLocation:   m.BestLocation,
			BestRideType:   m.BestRideType,
			BestPriceCents: m.BestPriceCents,
			OptionCount:    m.OptionCount,
			SearchedAt:     m.SearchedAt,
		}
	}
	return records, nil
}

// SaveSearchRecord persists one search history row.
func (r *GormAddressRepository) SaveSearchRecord(ctx context.Context, rec userDomain.SearchRecord) error {
	model := SearchRecordModel{
		ID:             rec.ID,
		UserID:         rec.UserID,
		OriginLat:      rec.OriginLat,
		OriginLng:      rec.OriginLng,
		DestinationLat: rec.DestinationLat,
		DestinationLng: rec.DestinationLng,
		RadiusFeet:     rec.RadiusFeet,
		BestLocation:   rec.BestLocation,
		BestRideType:   rec.BestRideType,
		BestPriceCents: rec.BestPriceCents,
		OptionCount:    rec.OptionCount,
		SearchedAt:     rec.SearchedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save search record: %w", err)
	}
	return nil
}
