// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"accounts/internal/domain/entity"
	"accounts/internal/domain/repository"
	"accounts/internal/infra/persistence/model"
)

// credentialRepository implements the repository.CredentialRepository interface.
type credentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository is the constructor for credentialRepository.
// Pass the transaction handle to bind the repository to a transaction.
func NewCredentialRepository(db *gorm.DB) repository.CredentialRepository {
	return &credentialRepository{db: db}
}

// ExistsByEmail reports whether a credential row exists for email.
func (repo *credentialRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.CredentialModel{}).
		Where("email = ?", email).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check credential existence")
	}

	return count > 0, nil
}

// FindByEmail retrieves a credential by email.
func (repo *credentialRepository) FindByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	var credentialM model.CredentialModel
	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&credentialM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCredentialNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toCredentialDomain(&credentialM), nil
}

// Create inserts a credential row. Constraint violations are translated to domain errors.
func (repo *credentialRepository) Create(ctx context.Context, credential *entity.Credential) error {
	credentialM := fromCredentialDomain(credential)

	if err := repo.db.WithContext(ctx).Create(credentialM).Error; err != nil {
		return TranslateConstraintError(err, "failed to create credential")
	}

	credential.CreatedAt = credentialM.CreatedAt

	return nil
}

// UpdatePasswordHash replaces the hash in one UPDATE statement.
func (repo *credentialRepository) UpdatePasswordHash(ctx context.Context, email, passwordHash string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CredentialModel{}).
		Where("email = ?", email).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return TranslateConstraintError(result.Error, "failed to update password hash")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCredentialNotFound
	}

	return nil
}

func fromCredentialDomain(credential *entity.Credential) *model.CredentialModel {
	return &model.CredentialModel{
		Email:        credential.Email,
		PasswordHash: credential.PasswordHash,
		LoginType:    credential.LoginType.String(),
		SuperAdmin:   credential.IsSuperAdmin,
		Verified:     credential.IsVerified,
		Name:         credential.DisplayName,
		Company:      credential.Company,
		CreatedAt:    credential.CreatedAt,
	}
}

func toCredentialDomain(credentialM *model.CredentialModel) *entity.Credential {
	return &entity.Credential{
		Email:        credentialM.Email,
		PasswordHash: credentialM.PasswordHash,
		LoginType:    entity.LoginType(credentialM.LoginType),
		IsSuperAdmin: credentialM.SuperAdmin,
		IsVerified:   credentialM.Verified,
		DisplayName:  credentialM.Name,
		Company:      credentialM.Company,
		CreatedAt:    credentialM.CreatedAt,
	}
}
