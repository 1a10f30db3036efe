package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for user persistence operations
type Repository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByUsernameOrEmail retrieves a user whose username or email
	// equals the identifier, or nil when none matches
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*User, error)

	// Exists checks if a user with the given username or email exists
	Exists(ctx context.Context, username, email string) (bool, error)

	// Delete deletes a user, cascading all owned records
	Delete(ctx context.Context, id uuid.UUID) error
}
