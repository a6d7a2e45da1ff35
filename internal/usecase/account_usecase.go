// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"accounts/internal/domain/entity"
)

// Confirmation messages returned on success.
const (
	MessageAccountCreated  = "User created successfully"
	MessagePasswordUpdated = "Password updated successfully"
)

// Notification subjects dispatched after a successful operation.
const (
	SubjectAccountCreated  = "Account created"
	SubjectPasswordChanged = "Password changed"
)

// --- Input DTOs ---

// CreateAccountInput defines the data required to provision a new account.
type CreateAccountInput struct {
	DisplayName  *string // Required. Also used as the username inside the workspace.
	Email        string
	Password     string
	IsSuperAdmin bool
	Company      *string // Optional.
}

// --- Output DTOs ---

// CreateAccountOutput returns the confirmation and the records written.
type CreateAccountOutput struct {
	Message    string
	Credential *entity.Credential
	Account    *entity.Account
}

// AccountUsecase defines the interface for account provisioning.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	// CreateAccount writes a Credential and its Account in one transaction.
	CreateAccount(ctx context.Context, requestor entity.Requestor, input *CreateAccountInput) (*CreateAccountOutput, error)
}
