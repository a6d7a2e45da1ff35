package notification

import (
	"context"
	"log/slog"

	"accounts/internal/domain/service"
)

// noopSender is used when no delivery provider is configured.
type noopSender struct {
	logger *slog.Logger
}

// NewNoopSender returns a sender that only records that delivery is not configured.
func NewNoopSender(logger *slog.Logger) service.NotificationSender {
	return &noopSender{logger: logger}
}

func (s *noopSender) Send(ctx context.Context, notification *service.Notification) error {
	s.logger.WarnContext(ctx, "Notification delivery is not configured, skipping",
		slog.String("notification_id", notification.ID),
		slog.String("subject", notification.Subject),
		slog.String("recipient", notification.Recipient),
	)

	return nil
}

func (s *noopSender) Close() error {
	return nil
}
