package impl

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/usecase"
)

// passwordService implements the PasswordUsecase interface.
type passwordService struct {
	credentialRepo repository.CredentialRepository
	hasher         service.PasswordHasher
	notifier       service.Notifier
	logger         *slog.Logger
}

// PasswordServiceParams holds dependencies for PasswordService, injected by Fx.
type PasswordServiceParams struct {
	fx.In

	CredentialRepo repository.CredentialRepository
	Hasher         service.PasswordHasher
	Notifier       service.Notifier
	Logger         *slog.Logger
}

// NewPasswordService is the constructor for passwordService.
func NewPasswordService(params PasswordServiceParams) usecase.PasswordUsecase {
	return &passwordService{
		credentialRepo: params.CredentialRepo,
		hasher:         params.Hasher,
		notifier:       params.Notifier,
		logger:         params.Logger,
	}
}

func (srv *passwordService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SetPassword replaces the stored hash of targetEmail with a freshly salted one.
// The update is a single statement; no transaction is opened.
func (srv *passwordService) SetPassword(ctx context.Context, requestor entity.Requestor, targetEmail string, input *usecase.SetPasswordInput) (*usecase.SetPasswordOutput, error) {
	if !requestor.CanManageCredential(targetEmail) {
		srv.log(ctx).Warn("Password change denied",
			slog.String("requested_by", requestor.Email),
			slog.String("target", targetEmail),
		)

		return nil, domainerrors.ErrUnauthorized
	}

	exists, err := srv.credentialRepo.ExistsByEmail(ctx, targetEmail)
	if err != nil {
		srv.log(ctx).Error("Failed to look up credential", slog.String("target", targetEmail), slog.Any("error", err))

		return nil, asAppError(errors.Wrap(err, "failed to check credential"))
	}
	if !exists {
		return nil, domainerrors.ErrCredentialNotFound
	}

	if input == nil || input.Password == "" {
		return nil, domainerrors.ErrInvalidRequest.WithDetails("password cannot be empty")
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password", slog.String("target", targetEmail), slog.Any("error", err))

		return nil, asAppError(err)
	}

	if err := srv.credentialRepo.UpdatePasswordHash(ctx, targetEmail, passwordHash); err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			// Removed between the existence check and the update.
			return nil, domainerrors.ErrCredentialNotFound
		}
		srv.log(ctx).Error("Failed to update password", slog.String("target", targetEmail), slog.Any("error", err))

		return nil, asAppError(errors.Wrap(err, "failed to update password"))
	}

	srv.log(ctx).Info("Password updated",
		slog.String("target", targetEmail),
		slog.String("requested_by", requestor.Email),
	)

	srv.notifier.Notify(ctx, usecase.SubjectPasswordChanged, usecase.MessagePasswordUpdated, targetEmail)

	return &usecase.SetPasswordOutput{Message: usecase.MessagePasswordUpdated}, nil
}
