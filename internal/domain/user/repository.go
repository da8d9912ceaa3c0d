package user

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the persistence contract for user aggregates.
type UserRepository interface {
	// FindByID retrieves a user by unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail retrieves a user by email address.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Save persists a new user.
	Save(ctx context.Context, u *User) error

	// Update persists changes to an existing user with optimistic locking.
	Update(ctx context.Context, u *User) error
}

// AddressRepository defines the persistence contract for saved addresses and
// search history.
type AddressRepository interface {
	// ListSavedAddresses retrieves a user's saved addresses, oldest first.
	ListSavedAddresses(ctx context.Context, userID uuid.UUID) ([]*SavedAddress, error)

	// SaveAddress persists a new saved address.
	SaveAddress(ctx context.Context, addr *SavedAddress) error

	// DeleteAddress removes a saved address owned by the given user.
	DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error

	// ListSearchRecords retrieves a user's search history, newest first.
	ListSearchRecords(ctx context.Context, userID uuid.UUID, limit int) ([]SearchRecord, error)

	// SaveSearchRecord persists one search history row.
	SaveSearchRecord(ctx context.Context, rec SearchRecord) error
}
