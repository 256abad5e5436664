package saltstore

import (
	"context"
	"log/slog"

	"checker/config"
	domainerrors "checker/internal/domain/errors"
	"checker/internal/domain/lifecycle"
	"checker/internal/domain/repository"
	"checker/internal/errors"

	"go.uber.org/fx"
)

// Params holds dependencies for the salt store provider, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewFromConfig builds the salt store from the password section. With
// verifyOnStart the store's existence is checked once at startup; reads keep
// re-checking it on every call.
func NewFromConfig(params Params) (repository.SaltStore, error) {
	cfg := params.Config.Password
	if cfg == nil {
		return nil, errors.WithStack(domainerrors.ErrInvalidConfiguration.WithDetails("password section is missing"))
	}

	store, err := New(cfg.SaltSource, WithReadTimeout(cfg.ReadTimeout))
	if err != nil {
		return nil, err
	}

	if cfg.VerifyOnStart {
		params.Append(fx.Hook{
			OnStart: func(startCtx context.Context) error {
				ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
				defer cancel()

				ok, err := store.Exists(ctx)
				if err != nil {
					return err
				}
				if !ok {
					return errors.WithStack(domainerrors.ErrResourceNotFound.WithDetails(cfg.SaltSource))
				}

				params.Logger.Info("Salt store verified", slog.String("source", cfg.SaltSource))

				return nil
			},
		})
	}

	return store, nil
}
