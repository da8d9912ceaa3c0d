package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/farefinder/service-fares/internal/domain"
	userDomain "github.com/farefinder/service-fares/internal/domain/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email         string    `gorm:"uniqueIndex;not null;size:100"`
	PasswordHash  string    `gorm:"not null;size:255"`
	FirstName     string    `gorm:"size:100"`
	LastName      string    `gorm:"size:100"`
	HomeAddress   string    `gorm:"size:500"`
	HomeLatitude  *float64
	HomeLongitude *float64

	SearchRangeFeet int   `gorm:"not null;default:500"`
	MaxPriceCents   int64 `gorm:"not null;default:0"`

	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (UserModel) TableName() string {
	return "users"
}

// GormUserRepository is the GORM-based implementation of UserRepository.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID retrieves a user by unique identifier.
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", id.String())
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return toDomainUser(&model), nil
}

// FindByEmail retrieves a user by email address.
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", email)
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return toDomainUser(&model), nil
}

// Save persists a new user.
func (r *GormUserRepository) Save(ctx context.Context, u *userDomain.User) error {
	model := toUserModel(u)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// Update persists changes to an existing user with optimistic locking.
func (r *GormUserRepository) Update(ctx context.Context, u *userDomain.User) error {
	model := toUserModel(u)

	expectedVersion := u.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"email":             model.Email,
			"password_hash":     model.PasswordHash,
			"first_name":        model.FirstName,
			"last_name":         model.LastName,
			"home_address":      model.HomeAddress,
			"home_latitude":     model.HomeLatitude,
			"home_longitude":    model.HomeLongitude,
			"search_range_feet": model.SearchRangeFeet,
			"max_price_cents":   model.MaxPriceCents,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("user was modified by another transaction")
	}
	return nil
}

// --- Conversion Helpers ---

func toUserModel(u *userDomain.User) *UserModel {
	return &UserModel{
		ID:              u.ID(),
		Email:           u.Email(),
		PasswordHash:    u.PasswordHash(),
		FirstName:       u.FirstName(),
		LastName:        u.LastName(),
		HomeAddress:     u.HomeAddress(),
		HomeLatitude:    u.HomeLatitude(),
		HomeLongitude:   u.HomeLongitude(),
		SearchRangeFeet: u.Preferences().SearchRangeFeet,
		MaxPriceCents:   u.Preferences().MaxPriceCents,
		Version:         u.Version(),
		CreatedAt:       u.CreatedAt(),
		UpdatedAt:       u.UpdatedAt(),
	}
}

func toDomainUser(m *UserModel) *userDomain.User {
	return userDomain.Reconstruct(
		m.ID,
		m.Email,
		m.PasswordHash,
		m.FirstName,
		m.LastName,
		m.HomeAddress,
		m.HomeLatitude,
		m.HomeLongitude,
		userDomain.Preferences{
			SearchRangeFeet: m.SearchRangeFeet,
			MaxPriceCents:   m.MaxPriceCents,
		},
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
