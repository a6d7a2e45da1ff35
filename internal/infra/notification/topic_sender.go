package notification

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/pkg/errors"
	"gocloud.dev/pubsub"
	_ "gocloud.dev/pubsub/gcppubsub" // registers gcppubsub:// URLs
	_ "gocloud.dev/pubsub/mempubsub" // registers mem:// URLs

	"accounts/internal/domain/service"
)

// topicSender publishes notifications to a gocloud.dev pubsub topic.
type topicSender struct {
	topic  *pubsub.Topic
	logger *slog.Logger
}

// NewTopicSender opens the topic named by topicURL, e.g. mem://accounts or
// gcppubsub://projects/my-project/topics/accounts.
func NewTopicSender(ctx context.Context, topicURL string, logger *slog.Logger) (service.NotificationSender, error) {
	topic, err := pubsub.OpenTopic(ctx, topicURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open topic %s", topicURL)
	}

	return &topicSender{topic: topic, logger: logger}, nil
}

// Send publishes the notification as a JSON message; routing fields are copied into metadata.
func (s *topicSender) Send(ctx context.Context, notification *service.Notification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return errors.WithStack(err)
	}

	metadata := map[string]string{
		"notification_id": notification.ID,
		"subject":         notification.Subject,
	}
	if notification.RequestID != "" {
		metadata["request_id"] = notification.RequestID
	}

	if err := s.topic.Send(ctx, &pubsub.Message{Body: body, Metadata: metadata}); err != nil {
		return errors.Wrap(err, "failed to publish notification")
	}

	s.logger.DebugContext(ctx, "Notification published",
		slog.String("notification_id", notification.ID),
	)

	return nil
}

// Close flushes pending messages and releases the topic.
func (s *topicSender) Close() error {
	return s.topic.Shutdown(context.Background())
}
