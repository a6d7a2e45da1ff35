// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/delivery/http/response"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/usecase"
)

// createAccountRequest is the body of POST /api/users/create.
type createAccountRequest struct {
	Name       *string `json:"name"`
	Email      string  `json:"email" validate:"required"`
	Password   string  `json:"password"`
	SuperAdmin bool    `json:"super_admin"`
	Company    *string `json:"company"`
}

// setPasswordRequest is the body of POST /api/users/:email/password.
type setPasswordRequest struct {
	Password string `json:"password"`
}

// credentialResponse never carries the password hash.
type credentialResponse struct {
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Company    *string   `json:"company,omitempty"`
	SuperAdmin bool      `json:"super_admin"`
	Verified   bool      `json:"verified"`
	LoginType  string    `json:"login_type"`
	CreatedAt  time.Time `json:"created_at"`
}

type accountResponse struct {
	WorkspaceID string    `json:"workspace_id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	IsAdmin     bool      `json:"is_admin"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

type createAccountResponse struct {
	Credential credentialResponse `json:"credential"`
	Account    accountResponse    `json:"account"`
}

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	accountUC  usecase.AccountUsecase
	passwordUC usecase.PasswordUsecase
	logger     *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(accountUC usecase.AccountUsecase, passwordUC usecase.PasswordUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accountUC:  accountUC,
		passwordUC: passwordUC,
		logger:     logger,
	}
}

// CreateAccount handles POST /api/users/create.
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req createAccountRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrInvalidRequest.WithDetails("malformed request body")
	}
	if err := c.Validate(&req); err != nil {
		return domainerrors.ErrInvalidRequest.WithDetails(err.Error())
	}

	requestor, _ := deliverycontext.GetRequestor(c)

	output, err := h.accountUC.CreateAccount(c.Request().Context(), requestor, &usecase.CreateAccountInput{
		DisplayName:  req.Name,
		Email:        req.Email,
		Password:     req.Password,
		IsSuperAdmin: req.SuperAdmin,
		Company:      req.Company,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, createAccountResponse{
		Credential: toCredentialResponse(output.Credential),
		Account:    toAccountResponse(output.Account),
	}, output.Message)
}

// SetPassword handles POST /api/users/:email/password.
func (h *AccountHandler) SetPassword(c echo.Context) error {
	targetEmail, err := url.PathUnescape(c.Param("email"))
	if err != nil || targetEmail == "" {
		return domainerrors.ErrInvalidRequest.WithDetails("invalid email in path")
	}

	var req setPasswordRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrInvalidRequest.WithDetails("malformed request body")
	}

	requestor, _ := deliverycontext.GetRequestor(c)

	output, err := h.passwordUC.SetPassword(c.Request().Context(), requestor, targetEmail, &usecase.SetPasswordInput{
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, output.Message)
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

func toCredentialResponse(credential *entity.Credential) credentialResponse {
	if credential == nil {
		return credentialResponse{}
	}

	return credentialResponse{
		Email:      credential.Email,
		Name:       credential.DisplayName,
		Company:    credential.Company,
		SuperAdmin: credential.IsSuperAdmin,
		Verified:   credential.IsVerified,
		LoginType:  credential.LoginType.String(),
		CreatedAt:  credential.CreatedAt,
	}
}

func toAccountResponse(account *entity.Account) accountResponse {
	if account == nil {
		return accountResponse{}
	}

	return accountResponse{
		WorkspaceID: account.WorkspaceID,
		Username:    account.Username,
		Email:       account.Email,
		IsAdmin:     account.IsAdmin,
		Role:        account.Role,
		CreatedAt:   account.CreatedAt,
	}
}
