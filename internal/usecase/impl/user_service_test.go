package impl

import (
	"context"
	"testing"
	"time"

	deliverycontext "checker/internal/delivery/context"
	"checker/internal/domain/entity"
	domainerrors "checker/internal/domain/errors"
	"checker/internal/domain/repository"
	"checker/internal/domain/service"
	"checker/internal/errors"
	mockRepo "checker/internal/mocks/repository"
	mockSvc "checker/internal/mocks/service"
	"checker/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service        usecase.UserUsecase
	txManager      *mockRepo.MockTransactionManager
	txFactory      *mockRepo.MockRepositoryFactory
	txUserRepo     *mockRepo.MockUserRepository
	txCredRepo     *mockRepo.MockCredentialRepository
	userRepo       *mockRepo.MockUserRepository
	credentialRepo *mockRepo.MockCredentialRepository
	hasher         *mockSvc.MockPasswordHasher
	tokenService   *mockSvc.MockTokenService
	publisher      *mockSvc.MockEventPublisher
}

func createTestUserService(t *testing.T) userServiceFixtures {
	f := userServiceFixtures{
		txManager:      mockRepo.NewMockTransactionManager(t),
		txFactory:      mockRepo.NewMockRepositoryFactory(t),
		txUserRepo:     mockRepo.NewMockUserRepository(t),
		txCredRepo:     mockRepo.NewMockCredentialRepository(t),
		userRepo:       mockRepo.NewMockUserRepository(t),
		credentialRepo: mockRepo.NewMockCredentialRepository(t),
		hasher:         mockSvc.NewMockPasswordHasher(t),
		tokenService:   mockSvc.NewMockTokenService(t),
		publisher:      mockSvc.NewMockEventPublisher(t),
	}

	f.service = NewUserService(UserServiceParams{
		TxManager:      f.txManager,
		UserRepo:       f.userRepo,
		CredentialRepo: f.credentialRepo,
		Hasher:         f.hasher,
		TokenService:   f.tokenService,
		Publisher:      f.publisher,
		Logger:         newDiscardLogger(),
	})

	return f
}

// expectTransaction runs the callback against the fixture's transactional repositories.
func (f userServiceFixtures) expectTransaction() {
	f.txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(f.txFactory)
		})
	f.txFactory.EXPECT().UserRepo().Return(f.txUserRepo).Maybe()
	f.txFactory.EXPECT().CredentialRepo().Return(f.txCredRepo).Maybe()
}

func TestUserService_RegisterUser_Success(t *testing.T) {
	f := createTestUserService(t)
	ctx := deliverycontext.WithRequestID(context.Background(), "req-42")
	input := &usecase.RegisterUserInput{Name: "Test User", Email: "test@example.com", Password: "Password123!"}
	userID := uuid.New()
	digest := []byte("0123456789abcdef0123456789abcdef")

	f.expectTransaction()
	f.txUserRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, repository.ErrUserNotFound)
	f.hasher.EXPECT().Hash(ctx, input.Password, service.RandomSaltPosition).Return(7, digest, nil)
	f.txUserRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(_ context.Context, user *entity.User) { user.ID = userID }).
		Return(nil)
	f.txCredRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(c *entity.Credential) bool {
			return c.UserID == userID && c.SaltPosition == 7 && string(c.Digest) == string(digest)
		})).
		Return(nil)
	f.publisher.EXPECT().
		PublishCredentialEvent(ctx, mock.MatchedBy(func(e *service.CredentialEvent) bool {
			return e.Type == service.EventCredentialRegistered &&
				e.UserID == userID.String() &&
				e.RequestID == "req-42" &&
				e.EventID != ""
		})).
		Return(nil)

	output, err := f.service.RegisterUser(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, userID, output.User.ID)
	assert.Equal(t, input.Email, output.User.Email)
}

func TestUserService_RegisterUser_EmailTaken(t *testing.T) {
	f := createTestUserService(t)
	ctx := context.Background()
	input := &usecase.RegisterUserInput{Name: "Dup", Email: "dup@example.com", Password: "pw"}

	f.expectTransaction()
	f.txUserRepo.EXPECT().FindByEmail(ctx, input.Email).Return(&entity.User{ID: uuid.New()}, nil)

	_, err := f.service.RegisterUser(ctx, input)

	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestUserService_RegisterUser_BlankPasswordPropagates(t *testing.T) {
	f := createTestUserService(t)
	ctx := context.Background()
	input := &usecase.RegisterUserInput{Name: "Blank", Email: "blank@example.com", Password: "   "}

	f.expectTransaction()
	f.txUserRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, repository.ErrUserNotFound)
	f.hasher.EXPECT().Hash(ctx, input.Password, service.RandomSaltPosition).
		Return(0, nil, errors.WithStack(domainerrors.ErrInvalidCredential))

	_, err := f.service.RegisterUser(ctx, input)

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredential))
}

func TestUserService_RegisterUser_PublishFailureIsNotFatal(t *testing.T) {
	f := createTestUserService(t)
	ctx := context.Background()
	input := &usecase.RegisterUserInput{Name: "Pub", Email: "pub@example.com", Password: "pw"}

	f.expectTransaction()
	f.txUserRepo.EXPECT().FindByEmail(ctx, input.Email).Return(nil, repository.ErrUserNotFound)
	f.hasher.EXPECT().Hash(ctx, input.Password, service.RandomSaltPosition).Return(3, []byte("d"), nil)
	f.txUserRepo.EXPECT().Create(ctx, mock.Anything).Return(nil)
	f.txCredRepo.EXPECT().Create(ctx, mock.Anything).Return(nil)
	f.publisher.EXPECT().PublishCredentialEvent(ctx, mock.Anything).Return(errors.New("broker down"))

	output, err := f.service.RegisterUser(ctx, input)

	require.NoError(t, err)
	assert.NotNil(t, output.User)
}

func TestUserService_Login_Success(t *testing.T) {
	f := createTestUserService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "a@example.com"}
	credential := &entity.Credential{UserID: user.ID, Digest: []byte("digest"), SaltPosition: 12}

	f.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	f.credentialRepo.EXPECT().FindByUserID(ctx, user.ID).Return(credential, nil)
	f.hasher.EXPECT().VerifyPassword(ctx, "pw", credential.Digest, 12).Return(true, nil)
	f.tokenService.EXPECT().GenerateTokens(user.ID).Return("access", "refresh", nil)
	f.tokenService.EXPECT().AccessTokenDuration().Return(15 * time.Minute)

	out, err := f.service.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "access", out.AccessToken)
	assert.Equal(t, "refresh", out.RefreshToken)
	assert.Equal(t, int64(900), out.ExpiresIn)
	assert.Equal(t, user, out.User)
}

func TestUserService_Login_Failures(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "a@example.com"}
	credential := &entity.Credential{UserID: user.ID, Digest: []byte("digest"), SaltPosition: 4}

	tests := []struct {
		name  string
		setup func(f userServiceFixtures)
		want  error
	}{
		{
			name: "unknown email",
			setup: func(f userServiceFixtures) {
				f.userRepo.EXPECT().FindByEmail(mock.Anything, user.Email).Return(nil, repository.ErrUserNotFound)
			},
			want: domainerrors.ErrInvalidCredentials,
		},
		{
			name: "no credential",
			setup: func(f userServiceFixtures) {
				f.userRepo.EXPECT().FindByEmail(mock.Anything, user.Email).Return(user, nil)
				f.credentialRepo.EXPECT().FindByUserID(mock.Anything, user.ID).Return(nil, repository.ErrCredentialNotFound)
			},
			want: domainerrors.ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			setup: func(f userServiceFixtures) {
				f.userRepo.EXPECT().FindByEmail(mock.Anything, user.Email).Return(user, nil)
				f.credentialRepo.EXPECT().FindByUserID(mock.Anything, user.ID).Return(credential, nil)
				f.hasher.EXPECT().VerifyPassword(mock.Anything, "pw", credential.Digest, 4).Return(false, nil)
			},
			want: domainerrors.ErrInvalidCredentials,
		},
		{
			name: "salt store missing",
			setup: func(f userServiceFixtures) {
				f.userRepo.EXPECT().FindByEmail(mock.Anything, user.Email).Return(user, nil)
				f.credentialRepo.EXPECT().FindByUserID(mock.Anything, user.ID).Return(credential, nil)
				f.hasher.EXPECT().VerifyPassword(mock.Anything, "pw", credential.Digest, 4).
					Return(false, errors.WithStack(domainerrors.ErrResourceNotFound))
			},
			want: domainerrors.ErrResourceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := createTestUserService(t)
			tt.setup(f)

			_, err := f.service.Login(context.Background(), &usecase.LoginInput{Email: user.Email, Password: "pw"})

			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestUserService_ChangePassword_Success(t *testing.T) {
	f := createTestUserService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "a@example.com"}
	credential := &entity.Credential{UserID: user.ID, Digest: []byte("old"), SaltPosition: 2}

	f.expectTransaction()
	f.txUserRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
	f.txCredRepo.EXPECT().FindByUserID(ctx, user.ID).Return(credential, nil)
	f.hasher.EXPECT().VerifyPassword(ctx, "old-pw", []byte("old"), 2).Return(true, nil)
	f.hasher.EXPECT().Hash(ctx, "new-pw", service.RandomSaltPosition).Return(9, []byte("new"), nil)
	f.txCredRepo.EXPECT().
		Update(ctx, mock.MatchedBy(func(c *entity.Credential) bool {
			return c.SaltPosition == 9 && string(c.Digest) == "new"
		})).
		Return(nil)
	f.publisher.EXPECT().
		PublishCredentialEvent(ctx, mock.MatchedBy(func(e *service.CredentialEvent) bool {
			return e.Type == service.EventCredentialChanged && e.Email == user.Email
		})).
		Return(nil)

	err := f.service.ChangePassword(ctx, user.ID, &usecase.ChangePasswordInput{OldPassword: "old-pw", NewPassword: "new-pw"})

	require.NoError(t, err)
}

func TestUserService_ChangePassword_WrongOldPassword(t *testing.T) {
	f := createTestUserService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New()}
	credential := &entity.Credential{UserID: user.ID, Digest: []byte("old"), SaltPosition: 2}

	f.expectTransaction()
	f.txUserRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
	f.txCredRepo.EXPECT().FindByUserID(ctx, user.ID).Return(credential, nil)
	f.hasher.EXPECT().VerifyPassword(ctx, "bad", []byte("old"), 2).Return(false, nil)

	err := f.service.ChangePassword(ctx, user.ID, &usecase.ChangePasswordInput{OldPassword: "bad", NewPassword: "new"})

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_ChangePassword_UnknownUser(t *testing.T) {
	f := createTestUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	f.expectTransaction()
	f.txUserRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)

	err := f.service.ChangePassword(ctx, userID, &usecase.ChangePasswordInput{OldPassword: "a", NewPassword: "b"})

	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
