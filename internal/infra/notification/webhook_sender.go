package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/pkg/errors"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/service"
)

// webhookSender implements NotificationSender by POSTing the notification as JSON.
type webhookSender struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewWebhookSender creates a sender for endpoint. The per-request deadline comes from the dispatcher context.
func NewWebhookSender(endpoint string, httpClient *http.Client, logger *slog.Logger) service.NotificationSender {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &webhookSender{
		endpoint:   endpoint,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Send posts the notification and treats any non-2xx status as a failure.
func (s *webhookSender) Send(ctx context.Context, notification *service.Notification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	if notification.RequestID != "" {
		req.Header.Set(deliverycontext.HeaderXRequestID, notification.RequestID)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("webhook returned non-success status: %d", resp.StatusCode)
	}

	s.logger.DebugContext(ctx, "Notification delivered to webhook",
		slog.String("notification_id", notification.ID),
	)

	return nil
}

// Close releases resources (no-op for HTTP client)
func (s *webhookSender) Close() error {
	return nil
}
