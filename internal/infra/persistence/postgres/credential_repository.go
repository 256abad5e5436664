package postgres

import (
	"context"

	"checker/internal/domain/entity"
	domainerrors "checker/internal/domain/errors"
	"checker/internal/domain/repository"
	"checker/internal/errors"
	"checker/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type credentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository returns a credential repository bound to db.
func NewCredentialRepository(db *gorm.DB) repository.CredentialRepository {
	return &credentialRepository{db: db}
}

func (repo *credentialRepository) Create(ctx context.Context, credential *entity.Credential) error {
	credM := fromCredentialDomain(credential)

	if err := repo.db.WithContext(ctx).Create(credM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("credential already exists for user")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("credential references unknown user")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrInvalidArgument.WrapMessage("salt position must not be negative")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create credential")
	}

	credential.ID = credM.ID
	credential.CreatedAt = credM.CreatedAt
	credential.UpdatedAt = credM.UpdatedAt

	return nil
}

func (repo *credentialRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Credential, error) {
	var credM model.CredentialModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&credM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCredentialNotFound
		}

		return nil, errors.Wrap(err, "failed to find credential by user id")
	}

	return toCredentialDomain(&credM), nil
}

// Update rewrites digest and salt position. Zero affected rows means the user
// has no credential.
func (repo *credentialRepository) Update(ctx context.Context, credential *entity.Credential) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CredentialModel{}).
		Where("user_id = ?", credential.UserID).
		Updates(map[string]any{
			"digest":        credential.Digest,
			"salt_position": credential.SaltPosition,
		})
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrInvalidArgument.WrapMessage("salt position must not be negative")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update credential")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCredentialNotFound
	}

	return nil
}

func toCredentialDomain(data *model.CredentialModel) *entity.Credential {
	if data == nil {
		return nil
	}

	return &entity.Credential{
		ID:           data.ID,
		UserID:       data.UserID,
		Digest:       data.Digest,
		SaltPosition: data.SaltPosition,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromCredentialDomain(data *entity.Credential) *model.CredentialModel {
	if data == nil {
		return nil
	}

	return &model.CredentialModel{
		ID:           data.ID,
		UserID:       data.UserID,
		Digest:       data.Digest,
		SaltPosition: data.SaltPosition,
	}
}
