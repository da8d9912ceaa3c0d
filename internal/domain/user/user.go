package user

import (
	"strings"
	"time"

	"github.com/farefinder/service-fares/internal/domain"
	"github.com/google/uuid"
)

// Preferences holds the user's fare-search defaults.
type Preferences struct {
	SearchRangeFeet int   `json:"search_range_feet"`
	MaxPriceCents   int64 `json:"max_price_cents"`
}

// User is the aggregate root for an account and its profile.
type User struct {
	id           uuid.UUID
	email        string
	passwordHash string
	firstName    string
	lastName     string

	homeAddress   string
	homeLatitude  *float64
	homeLongitude *float64

	preferences Preferences

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a new account with the given (already hashed) password.
func NewUser(email, passwordHash string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("a valid email is required")
	}
	if passwordHash == "" {
		return nil, domain.NewValidationError("password hash is required")
	}

	now := time.Now().UTC()
	return &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		preferences: Preferences{
			SearchRangeFeet: 500,
			MaxPriceCents:   0, // 0 = no cap
		},
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	email, passwordHash, firstName, lastName string,
	homeAddress string,
	homeLatitude, homeLongitude *float64,
	preferences Preferences,
	version int64,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:            id,
		email:         email,
		passwordHash:  passwordHash,
		firstName:     firstName,
		lastName:      lastName,
		homeAddress:   homeAddress,
		homeLatitude:  homeLatitude,
		homeLongitude: homeLongitude,
		preferences:   preferences,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// --- Getters ---

func (u *User) ID() uuid.UUID            { return u.id }
func (u *User) Email() string            { return u.email }
func (u *User) PasswordHash() string     { return u.passwordHash }
func (u *User) FirstName() string        { return u.firstName }
func (u *User) LastName() string         { return u.lastName }
func (u *User) HomeAddress() string      { return u.homeAddress }
func (u *User) HomeLatitude() *float64   { return u.homeLatitude }
func (u *User) HomeLongitude() *float64  { return u.homeLongitude }
func (u *User) Preferences() Preferences { return u.preferences }
func (u *User) Version() int64           { return u.version }
func (u *User) CreatedAt() time.Time     { return u.createdAt }
func (u *User) UpdatedAt() time.Time     { return u.updatedAt }

// --- Behavior ---

// UpdateInfo changes the user's name and home address.
func (u *User) UpdateInfo(firstName, lastName, homeAddress string, homeLat, homeLng *float64) {
	u.firstName = firstName
	u.lastName = lastName
	u.homeAddress = homeAddress
	u.homeLatitude = homeLat
	u.homeLongitude = homeLng
	u.updatedAt = time.Now().UTC()
}

// UpdatePreferences changes the user's fare-search defaults.
func (u *User) UpdatePreferences(prefs Preferences) error {
	if prefs.SearchRangeFeet <= 0 {
		return domain.NewValidationError("search range must be positive")
	}
	if prefs.MaxPriceCents < 0 {
		return domain.NewValidationError("max price cannot be negative")
	}
	u.preferences = prefs
	u.updatedAt = time.Now().UTC()
	return nil
}

// ChangePassword replaces the stored password hash.
func (u *User) ChangePassword(newHash string) error {
	if newHash == "" {
		return domain.NewValidationError("password hash is required")
	}
	u.passwordHash = newHash
	u.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (u *User) IncrementVersion() {
	u.version++
	u.updatedAt = time.Now().UTC()
}
