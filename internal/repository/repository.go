package repository

import (
	"context"

	"github.com/seojunkim/fitforge/internal/domain"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user into the store. A duplicate email surfaces
	// as the conflict error kind.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateLastLogin stamps the user's last_login_at with the store's
	// current time.
	UpdateLastLogin(ctx context.Context, id string) error

	// List returns all users ordered by creation time.
	List(ctx context.Context) ([]domain.User, error)
}
