// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"checker/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCredentialNotFound is returned when a user has no stored credential.
var ErrCredentialNotFound = errors.New("credential not found")

// CredentialRepository persists password digests and their salt positions.
type CredentialRepository interface {
	// Create persists a new credential for a user.
	Create(ctx context.Context, credential *entity.Credential) error

	// FindByUserID returns the credential of the given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Credential, error)

	// Update replaces digest and salt position of an existing credential.
	Update(ctx context.Context, credential *entity.Credential) error
}
