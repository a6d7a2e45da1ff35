// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"accounts/internal/domain/entity"
)

// ErrCredentialNotFound is returned when no credential exists for an email.
var ErrCredentialNotFound = errors.New("credential not found")

// CredentialRepository defines the persistence operations for login credentials.
type CredentialRepository interface {
	// ExistsByEmail reports whether a credential with this email is already stored.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindByEmail retrieves a credential by its email.
	FindByEmail(ctx context.Context, email string) (*entity.Credential, error)

	// Create persists a new credential. Constraint violations are returned as domain errors.
	Create(ctx context.Context, credential *entity.Credential) error

	// UpdatePasswordHash replaces the stored hash in a single-row write.
	// It returns ErrCredentialNotFound when no row matched.
	UpdatePasswordHash(ctx context.Context, email, passwordHash string) error
}
