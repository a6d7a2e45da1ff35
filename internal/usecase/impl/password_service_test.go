package impl

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	mockSvc "accounts/internal/mocks/service"
	"accounts/internal/usecase"
)

const seededHash = "$argon2id$v=19$m=1024,t=1,p=1$b2xk$b2xkaGFzaA"

type passwordServiceFixtures struct {
	service  usecase.PasswordUsecase
	store    *memStore
	hasher   *mockSvc.MockPasswordHasher
	notifier *mockSvc.MockNotifier
}

func createTestPasswordService(t *testing.T) passwordServiceFixtures {
	store := newMemStore()
	store.seedCredential(entity.Credential{Email: "a@x.com", PasswordHash: seededHash, LoginType: entity.LoginTypePassword})

	hasher := mockSvc.NewMockPasswordHasher(t)
	notifier := mockSvc.NewMockNotifier(t)

	service := NewPasswordService(PasswordServiceParams{
		CredentialRepo: store.rootCredentialRepo(),
		Hasher:         hasher,
		Notifier:       notifier,
		Logger:         newDiscardLogger(),
	})

	return passwordServiceFixtures{
		service:  service,
		store:    store,
		hasher:   hasher,
		notifier: notifier,
	}
}

func TestPasswordService_SetPassword_Authorized(t *testing.T) {
	tests := []struct {
		name      string
		requestor entity.Requestor
	}{
		{name: "admin", requestor: entity.Requestor{Email: "root@x.com", IsAdmin: true}},
		{name: "owner", requestor: entity.Requestor{Email: "a@x.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestPasswordService(t)
			fx.hasher.On("Hash", "newpw").Return(saltedHash()).Once()
			fx.notifier.On("Notify", mock.Anything, usecase.SubjectPasswordChanged, usecase.MessagePasswordUpdated, "a@x.com").Once()

			out, err := fx.service.SetPassword(context.Background(), tt.requestor, "a@x.com", &usecase.SetPasswordInput{Password: "newpw"})
			require.NoError(t, err)
			assert.Equal(t, "Password updated successfully", out.Message)

			credential, _ := fx.store.credential("a@x.com")
			assert.NotEqual(t, seededHash, credential.PasswordHash)
			assert.Equal(t, 1, fx.store.rootWrites)
		})
	}
}

func TestPasswordService_SetPassword_Unauthorized(t *testing.T) {
	fx := createTestPasswordService(t)

	_, err := fx.service.SetPassword(context.Background(), entity.Requestor{Email: "mallory@x.com"}, "a@x.com", &usecase.SetPasswordInput{Password: "newpw"})

	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	assert.Equal(t, domainerrors.KindUnauthorized, domainerrors.KindOf(err))

	credential, _ := fx.store.credential("a@x.com")
	assert.Equal(t, seededHash, credential.PasswordHash)
	assert.Zero(t, fx.store.rootWrites)
	fx.hasher.AssertNotCalled(t, "Hash", mock.Anything)
	fx.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPasswordService_SetPassword_UnauthorizedSkipsStorage(t *testing.T) {
	fx := createTestPasswordService(t)
	// A storage failure would surface if the check touched storage.
	fx.store.existsErr = errors.New("storage must not be reached")

	_, err := fx.service.SetPassword(context.Background(), entity.Requestor{}, "a@x.com", &usecase.SetPasswordInput{Password: "newpw"})

	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestPasswordService_SetPassword_NotFound(t *testing.T) {
	fx := createTestPasswordService(t)

	_, err := fx.service.SetPassword(context.Background(), entity.Requestor{IsAdmin: true}, "ghost@x.com", &usecase.SetPasswordInput{Password: "newpw"})

	assert.ErrorIs(t, err, domainerrors.ErrCredentialNotFound)
	assert.Equal(t, domainerrors.KindNotFound, domainerrors.KindOf(err))
	assert.Zero(t, fx.store.rootWrites)
	fx.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestPasswordService_SetPassword_VanishedBeforeUpdate(t *testing.T) {
	fx := createTestPasswordService(t)
	fx.hasher.On("Hash", "newpw").Return(saltedHash())
	fx.store.beforeUpdateHash = func(s *memStore) {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.credentials, "a@x.com")
	}

	_, err := fx.service.SetPassword(context.Background(), entity.Requestor{IsAdmin: true}, "a@x.com", &usecase.SetPasswordInput{Password: "newpw"})

	assert.ErrorIs(t, err, domainerrors.ErrCredentialNotFound)
	fx.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPasswordService_SetPassword_EmptyPassword(t *testing.T) {
	fx := createTestPasswordService(t)

	_, err := fx.service.SetPassword(context.Background(), entity.Requestor{IsAdmin: true}, "a@x.com", &usecase.SetPasswordInput{})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidRequest)
	assert.Zero(t, fx.store.rootWrites)
	fx.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestPasswordService_SetPassword_EmptyPasswordForMissingTarget(t *testing.T) {
	fx := createTestPasswordService(t)

	_, err := fx.service.SetPassword(context.Background(), entity.Requestor{IsAdmin: true}, "ghost@x.com", &usecase.SetPasswordInput{})

	assert.ErrorIs(t, err, domainerrors.ErrCredentialNotFound)
	assert.Equal(t, domainerrors.KindNotFound, domainerrors.KindOf(err))
}

func TestPasswordService_SetPassword_HashFailure(t *testing.T) {
	fx := createTestPasswordService(t)
	fx.hasher.On("Hash", "newpw").Return("", domainerrors.ErrPasswordHashFailed)

	_, err := fx.service.SetPassword(context.Background(), entity.Requestor{IsAdmin: true}, "a@x.com", &usecase.SetPasswordInput{Password: "newpw"})

	assert.Equal(t, domainerrors.KindInternal, domainerrors.KindOf(err))
	credential, _ := fx.store.credential("a@x.com")
	assert.Equal(t, seededHash, credential.PasswordHash)
}

func TestPasswordService_SetPassword_UpdateFailureIsInternal(t *testing.T) {
	fx := createTestPasswordService(t)
	fx.hasher.On("Hash", "newpw").Return(saltedHash())
	fx.store.updateErr = errors.New("deadlock detected")

	_, err := fx.service.SetPassword(context.Background(), entity.Requestor{IsAdmin: true}, "a@x.com", &usecase.SetPasswordInput{Password: "newpw"})

	assert.ErrorIs(t, err, domainerrors.ErrInternalError)
	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Details(), "deadlock detected")
}
