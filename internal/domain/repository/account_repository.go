package repository

import (
	"context"
	"errors"

	"accounts/internal/domain/entity"
)

// ErrAccountNotFound is returned when no account exists for a workspace/username pair.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the persistence operations for per-workspace accounts.
type AccountRepository interface {
	// ExistsByUsername reports whether the username is taken inside the workspace.
	ExistsByUsername(ctx context.Context, workspaceID, username string) (bool, error)

	// FindByUsername retrieves an account by workspace and username.
	FindByUsername(ctx context.Context, workspaceID, username string) (*entity.Account, error)

	// Create persists a new account. Constraint violations are returned as domain errors.
	Create(ctx context.Context, account *entity.Account) error
}
