// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "checker/internal/delivery/context"
	"checker/internal/domain/entity"
	domainerrors "checker/internal/domain/errors"
	"checker/internal/domain/repository"
	"checker/internal/domain/service"
	"checker/internal/errors"
	"checker/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager      repository.TransactionManager
	userRepo       repository.UserRepository
	credentialRepo repository.CredentialRepository
	hasher         service.PasswordHasher
	tokenService   service.TokenService
	publisher      service.EventPublisher
	logger         *slog.Logger
	now            func() time.Time
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	UserRepo       repository.UserRepository
	CredentialRepo repository.CredentialRepository
	Hasher         service.PasswordHasher
	TokenService   service.TokenService
	Publisher      service.EventPublisher
	Logger         *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:      params.TxManager,
		userRepo:       params.UserRepo,
		credentialRepo: params.CredentialRepo,
		hasher:         params.Hasher,
		tokenService:   params.TokenService,
		publisher:      params.Publisher,
		logger:         params.Logger,
		now:            time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterUser creates the user and its credential in one transaction. The
// salt position is chosen by the hasher and stored with the digest.
func (srv *userService) RegisterUser(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	var registered *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, err := userRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("registration rejected")
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to look up email")
		}

		position, digest, err := srv.hasher.Hash(ctx, input.Password, service.RandomSaltPosition)
		if err != nil {
			return errors.Wrap(err, "failed to hash password during registration")
		}

		newUser := &entity.User{Name: input.Name, Email: input.Email}
		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		credential := &entity.Credential{
			UserID:       newUser.ID,
			Digest:       digest,
			SaltPosition: position,
		}
		if err := repoFactory.CredentialRepo().Create(ctx, credential); err != nil {
			return errors.Wrap(err, "failed to create credential during registration")
		}

		registered = newUser

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user registration transaction")
	}

	srv.publish(ctx, service.EventCredentialRegistered, registered)
	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registered.ID))

	return &usecase.RegisterOutput{User: registered}, nil
}

// Login verifies the password against the stored digest and salt position.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting user login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, srv.loginFailed(ctx, input.Email, domainerrors.ErrInvalidCredentials)
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	credential, err := srv.credentialRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return nil, srv.loginFailed(ctx, input.Email, domainerrors.ErrInvalidCredentials)
		}

		return nil, errors.Wrap(err, "failed to find credential")
	}

	ok, err := srv.hasher.VerifyPassword(ctx, input.Password, credential.Digest, credential.SaltPosition)
	if err != nil {
		return nil, srv.loginFailed(ctx, input.Email, err)
	}
	if !ok {
		return nil, srv.loginFailed(ctx, input.Email, domainerrors.ErrInvalidCredentials)
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}
	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(srv.tokenService.AccessTokenDuration().Seconds()),
		User:         user,
	}, nil
}

func (srv *userService) loginFailed(ctx context.Context, email string, err error) error {
	srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", err))

	return errors.Wrap(err, "login failed")
}

// ChangePassword verifies the old password and stores a digest of the new one
// under a freshly chosen salt position.
func (srv *userService) ChangePassword(ctx context.Context, userID uuid.UUID, input *usecase.ChangePasswordInput) error {
	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		user, err = repoFactory.UserRepo().FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("change password")
			}

			return errors.Wrap(err, "failed to find user")
		}

		credentialRepo := repoFactory.CredentialRepo()
		credential, err := credentialRepo.FindByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrCredentialNotFound) {
				return domainerrors.ErrInvalidCredentials.WrapMessage("no password set for user")
			}

			return errors.Wrap(err, "failed to find credential")
		}

		ok, err := srv.hasher.VerifyPassword(ctx, input.OldPassword, credential.Digest, credential.SaltPosition)
		if err != nil {
			return errors.Wrap(err, "failed to verify current password")
		}
		if !ok {
			return domainerrors.ErrInvalidCredentials.WrapMessage("current password does not match")
		}

		position, digest, err := srv.hasher.Hash(ctx, input.NewPassword, service.RandomSaltPosition)
		if err != nil {
			return errors.Wrap(err, "failed to hash new password")
		}

		credential.Digest = digest
		credential.SaltPosition = position

		return errors.Wrap(credentialRepo.Update(ctx, credential), "failed to update credential")
	})
	if err != nil {
		srv.log(ctx).Warn("Password change failed", slog.Any("userID", userID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute change password transaction")
	}

	srv.publish(ctx, service.EventCredentialChanged, user)

	return nil
}

// publish emits a credential event. Delivery failures are logged only; the
// credential change has already been committed.
func (srv *userService) publish(ctx context.Context, eventType string, user *entity.User) {
	event := &service.CredentialEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		EventID:    uuid.NewString(),
		Type:       eventType,
		UserID:     user.ID.String(),
		Email:      user.Email,
		OccurredAt: srv.now().UTC(),
	}

	if err := srv.publisher.PublishCredentialEvent(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish credential event",
			slog.String("type", eventType),
			slog.Any("userID", user.ID),
			slog.Any("error", err),
		)
	}
}
