package impl

import (
	"github.com/pkg/errors"

	domainerrors "accounts/internal/domain/errors"
)

// asAppError returns err unchanged when it already carries a domain error.
// Anything else is reported as an internal error with the raw cause kept in details.
func asAppError(err error) error {
	if err == nil {
		return nil
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	return domainerrors.ErrInternalError.WithDetails(err.Error())
}
