package auth

import (
	"checker/config"
	domainerrors "checker/internal/domain/errors"
	"checker/internal/domain/repository"
	"checker/internal/domain/service"
	"checker/internal/errors"

	"go.uber.org/fx"
)

// PasswordHasherParams holds dependencies for the password hasher, injected by Fx.
type PasswordHasherParams struct {
	fx.In

	Config    *config.Config
	SaltStore repository.SaltStore
}

// NewPasswordHasher builds the salted hasher from the password section.
func NewPasswordHasher(params PasswordHasherParams) (service.PasswordHasher, error) {
	if params.Config.Password == nil {
		return nil, errors.WithStack(domainerrors.ErrInvalidConfiguration.WithDetails("password section is missing"))
	}

	return NewSaltedHasher(params.SaltStore, params.Config.Password.SaltItemsCount)
}
