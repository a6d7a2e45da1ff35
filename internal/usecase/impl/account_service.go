// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	"accounts/config"
	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/usecase"
)

// registrationStage is the last step a registration transaction completed.
type registrationStage string

const (
	stageStarted           registrationStage = "started"
	stageEmailChecked      registrationStage = "email_checked"
	stageUsernameChecked   registrationStage = "username_checked"
	stageCredentialWritten registrationStage = "credential_written"
	stageAccountWritten    registrationStage = "account_written"
	stageCommitted         registrationStage = "committed"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager   repository.TransactionManager
	hasher      service.PasswordHasher
	notifier    service.Notifier
	workspaceID string
	logger      *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
	Notifier  service.Notifier
	Config    *config.Config
	Logger    *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	workspaceID := config.DefaultWorkspaceID
	if params.Config != nil && params.Config.Workspace != nil && params.Config.Workspace.DefaultID != "" {
		workspaceID = params.Config.Workspace.DefaultID
	}

	return &accountService{
		txManager:   params.TxManager,
		hasher:      params.Hasher,
		notifier:    params.Notifier,
		workspaceID: workspaceID,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateAccount checks that neither the email nor the username is taken, hashes the password,
// and writes the Credential and the Account in one transaction. Every statement goes through
// the repositories bound to that transaction, so any failure leaves no rows behind.
func (srv *accountService) CreateAccount(ctx context.Context, requestor entity.Requestor, input *usecase.CreateAccountInput) (*usecase.CreateAccountOutput, error) {
	if input == nil || input.DisplayName == nil || strings.TrimSpace(*input.DisplayName) == "" {
		return nil, domainerrors.ErrInvalidRequest.WithDetails("name is required")
	}
	displayName := *input.DisplayName

	srv.log(ctx).Info("Creating account",
		slog.String("email", input.Email),
		slog.String("workspace_id", srv.workspaceID),
		slog.String("requested_by", requestor.Email),
	)

	stage := stageStarted
	var (
		credential *entity.Credential
		account    *entity.Account
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		credentialRepo := repoFactory.CredentialRepo()
		accountRepo := repoFactory.AccountRepo()

		emailTaken, err := credentialRepo.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return errors.Wrap(err, "failed to check email")
		}
		if emailTaken {
			return domainerrors.ErrEmailExists
		}
		stage = stageEmailChecked

		usernameTaken, err := accountRepo.ExistsByUsername(ctx, srv.workspaceID, displayName)
		if err != nil {
			return errors.Wrap(err, "failed to check username")
		}
		if usernameTaken {
			return domainerrors.ErrUsernameExists
		}
		stage = stageUsernameChecked

		passwordHash, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return errors.Wrap(err, "failed to hash password")
		}

		credential = &entity.Credential{
			Email:        input.Email,
			PasswordHash: passwordHash,
			LoginType:    entity.LoginTypePassword,
			IsSuperAdmin: input.IsSuperAdmin,
			IsVerified:   true,
			DisplayName:  displayName,
			Company:      input.Company,
		}
		if err := credentialRepo.Create(ctx, credential); err != nil {
			return errors.Wrap(err, "failed to create credential")
		}
		stage = stageCredentialWritten

		account = &entity.Account{
			WorkspaceID: srv.workspaceID,
			Username:    displayName,
			Email:       input.Email,
			IsAdmin:     input.IsSuperAdmin,
			Role:        displayName,
		}
		if err := accountRepo.Create(ctx, account); err != nil {
			return errors.Wrap(err, "failed to create account")
		}
		stage = stageAccountWritten

		return nil
	})
	if err != nil {
		srv.logAbort(ctx, stage, input.Email, err)

		return nil, asAppError(err)
	}
	stage = stageCommitted

	srv.log(ctx).Info("Account created",
		slog.String("email", input.Email),
		slog.String("username", displayName),
		slog.String("stage", string(stage)),
	)

	srv.notifier.Notify(ctx, usecase.SubjectAccountCreated, usecase.MessageAccountCreated, input.Email)

	return &usecase.CreateAccountOutput{
		Message:    usecase.MessageAccountCreated,
		Credential: credential,
		Account:    account,
	}, nil
}

func (srv *accountService) logAbort(ctx context.Context, stage registrationStage, email string, err error) {
	attrs := []slog.Attr{
		slog.String("email", email),
		slog.String("stage", string(stage)),
		slog.Any("error", err),
	}

	if domainerrors.KindOf(err) == domainerrors.KindInternal {
		srv.log(ctx).LogAttrs(ctx, slog.LevelError, "Account creation aborted", attrs...)

		return
	}
	srv.log(ctx).LogAttrs(ctx, slog.LevelWarn, "Account creation rejected", attrs...)
}
