package postgres

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"accounts/internal/domain/entity"
	"accounts/internal/domain/repository"
	"accounts/internal/infra/persistence/model"
)

// accountRepository implements the repository.AccountRepository interface.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// ExistsByUsername reports whether username is taken in workspaceID.
func (repo *accountRepository) ExistsByUsername(ctx context.Context, workspaceID, username string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("workspace_id = ? AND username = ?", workspaceID, username).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check account existence")
	}

	return count > 0, nil
}

// FindByUsername retrieves an account by workspace and username.
func (repo *accountRepository) FindByUsername(ctx context.Context, workspaceID, username string) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Where("workspace_id = ? AND username = ?", workspaceID, username).
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toAccountDomain(&accountM), nil
}

// Create inserts an account row. Constraint violations are translated to domain errors.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		return TranslateConstraintError(err, "failed to create account")
	}

	account.CreatedAt = accountM.CreatedAt

	return nil
}

func fromAccountDomain(account *entity.Account) *model.AccountModel {
	return &model.AccountModel{
		WorkspaceID: account.WorkspaceID,
		Username:    account.Username,
		Email:       account.Email,
		IsAdmin:     account.IsAdmin,
		Role:        account.Role,
		CreatedAt:   account.CreatedAt,
	}
}

func toAccountDomain(accountM *model.AccountModel) *entity.Account {
	return &entity.Account{
		WorkspaceID: accountM.WorkspaceID,
		Username:    accountM.Username,
		Email:       accountM.Email,
		IsAdmin:     accountM.IsAdmin,
		Role:        accountM.Role,
		CreatedAt:   accountM.CreatedAt,
	}
}
