package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestBaseError_IsMatchesCopiesWithDetails(t *testing.T) {
	detailed := ErrInvalidEmail.WithDetails("violates check constraint proper_email")

	assert.True(t, errors.Is(detailed, ErrInvalidEmail))
	assert.False(t, errors.Is(detailed, ErrInvalidUsername))
	assert.Equal(t, "violates check constraint proper_email", detailed.Details())
	assert.Equal(t, "invalid email", detailed.Message())
}

func TestBaseError_WrapMessageKeepsIdentity(t *testing.T) {
	err := ErrEmailExists.WrapMessage("email already registered")

	assert.True(t, errors.Is(err, ErrEmailExists))
	assert.Equal(t, "email already registered: email exists", err.Error())
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: ""},
		{name: "invalid request", err: ErrInvalidRequest, want: KindInvalidRequest},
		{name: "username conflict", err: errors.Wrap(ErrUsernameExists, "ctx"), want: KindConflict},
		{name: "validation", err: ErrInvalidUsername, want: KindValidationFailed},
		{name: "unauthorized", err: ErrUnauthorized, want: KindUnauthorized},
		{name: "not found", err: ErrCredentialNotFound, want: KindNotFound},
		{name: "database", err: NewDatabaseExecuteError(stderrors.New("boom"), "insert"), want: KindInternal},
		{name: "plain error", err: stderrors.New("unexpected"), want: KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestDatabaseExecuteError_HidesDriverDetailFromMessage(t *testing.T) {
	driverErr := stderrors.New("pq: connection reset by peer")
	err := NewDatabaseExecuteError(driverErr, "failed to create credential")

	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Equal(t, "database execution failed", err.Message())
	assert.Equal(t, "failed to create credential", err.Details())
	assert.Contains(t, err.Error(), "connection reset by peer")
	assert.True(t, errors.Is(err, driverErr))
}
