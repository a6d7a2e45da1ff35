package context

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"accounts/internal/domain/entity"
)

func TestRequestIDFromContext(t *testing.T) {
	assert.Empty(t, GetRequestIDFromContext(context.Background()))

	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", GetRequestIDFromContext(ctx))

	// Survives detaching from the request's cancellation.
	assert.Equal(t, "req-1", GetRequestIDFromContext(context.WithoutCancel(ctx)))
}

func TestGetLoggerOrDefault(t *testing.T) {
	fallback := slog.Default()
	scoped := slog.Default().With(slog.String("request_id", "req-1"))

	assert.Nil(t, GetLogger(context.Background()))
	assert.Same(t, fallback, GetLoggerOrDefault(context.Background(), fallback))
	assert.Same(t, scoped, GetLoggerOrDefault(WithLogger(context.Background(), scoped), fallback))
}

func TestRequestor(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, ok := GetRequestor(c)
	assert.False(t, ok)

	SetRequestor(c, entity.Requestor{Email: "alice@example.com", IsAdmin: true})
	got, ok := GetRequestor(c)
	assert.True(t, ok)
	assert.Equal(t, entity.Requestor{Email: "alice@example.com", IsAdmin: true}, got)
}
