package postgres

import (
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	domainerrors "accounts/internal/domain/errors"
)

// Constraint names declared by the embedded migrations.
const (
	constraintProperEmail    = "proper_email"
	constraintProperUsername = "proper_username"
	constraintPasswordPkey   = "password_pkey"
	constraintUsrPkey        = "usr_pkey"
)

// constraintErrors maps a violated constraint to the domain error reported for it.
var constraintErrors = map[string]*domainerrors.BaseError{
	constraintProperEmail:    domainerrors.ErrInvalidEmail,
	constraintProperUsername: domainerrors.ErrInvalidUsername,
	constraintPasswordPkey:   domainerrors.ErrEmailExists,
	constraintUsrPkey:        domainerrors.ErrUsernameExists,
}

// TranslateConstraintError converts a storage failure into a domain error.
// Known constraint names map through constraintErrors, unique violations on any other
// name become ErrConflict, and everything else is a DatabaseExecuteError carrying details.
func TranslateConstraintError(err error, details string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if domainErr, ok := constraintErrors[pgErr.ConstraintName]; ok {
			return domainErr.WithDetails(describePgError(pgErr))
		}
		if pgErr.Code == pgerrcode.UniqueViolation {
			return domainerrors.ErrConflict.WithDetails(describePgError(pgErr))
		}

		return domainerrors.NewDatabaseExecuteError(err, fmt.Sprintf("%s: %s", details, describePgError(pgErr)))
	}

	// gorm's TranslateError strips the driver error down to a sentinel without a constraint name.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerrors.ErrConflict.WithDetails(err.Error())
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}

func describePgError(pgErr *pgconn.PgError) string {
	if pgErr.Detail != "" {
		return fmt.Sprintf("%s (%s): %s", pgErr.ConstraintName, pgErr.Code, pgErr.Detail)
	}

	return fmt.Sprintf("%s (%s): %s", pgErr.ConstraintName, pgErr.Code, pgErr.Message)
}
