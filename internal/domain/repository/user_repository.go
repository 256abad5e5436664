package repository

import (
	"context"
	"errors"

	"checker/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when a user lookup finds nothing.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create persists a new user; ID and timestamps are filled in on success.
	Create(ctx context.Context, user *entity.User) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
