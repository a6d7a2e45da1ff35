package usecase

import (
	"context"

	"accounts/internal/domain/entity"
)

// SetPasswordInput carries the new plaintext password.
type SetPasswordInput struct {
	Password string
}

// SetPasswordOutput returns the confirmation message.
type SetPasswordOutput struct {
	Message string
}

// PasswordUsecase defines the interface for credential password changes.
type PasswordUsecase interface {
	// SetPassword replaces the password of targetEmail. Only an admin or the owner may do so.
	SetPassword(ctx context.Context, requestor entity.Requestor, targetEmail string, input *SetPasswordInput) (*SetPasswordOutput, error)
}
