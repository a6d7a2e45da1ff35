package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/delivery/http/response"
	domainerrors "accounts/internal/domain/errors"
)

// ErrorMiddleware renders errors returned by handlers as the JSON envelope.
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// Classify turns domain errors into echo HTTP errors carrying their status, so the
// access log records the status the client receives. The AppError stays reachable
// through Internal for HandleHTTPError.
func (m *ErrorMiddleware) Classify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		if err == nil {
			return nil
		}

		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return echo.NewHTTPError(appErr.HTTPCode(), appErr.Message()).WithInternal(err)
		}

		return err
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler.
// Diagnostics are logged in full; the client only sees details of malformed requests.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
	attrs := []slog.Attr{
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		attrs = append(attrs, slog.String("code", appErr.ErrorCode()), slog.String("details", appErr.Details()))
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			logger.LogAttrs(c.Request().Context(), slog.LevelError, "Request failed", attrs...)
		} else {
			logger.LogAttrs(c.Request().Context(), slog.LevelWarn, "Request rejected", attrs...)
		}

		details := ""
		if appErr.Kind() == domainerrors.KindInvalidRequest {
			details = appErr.Details()
		}
		_ = response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), details)

		return
	}

	// A 5xx carrying an Internal cause is an unclassified handler error wrapped by the access log.
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) && (httpErr.Internal == nil || httpErr.Code < http.StatusInternalServerError) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}

		_ = response.Error(c, httpErr.Code, "HTTP_ERROR", message, "")

		return
	}

	logger.LogAttrs(c.Request().Context(), slog.LevelError, "Unhandled error", attrs...)

	_ = response.InternalServerError(c, "INTERNAL_ERROR", "Internal server error, please try again later")
}
