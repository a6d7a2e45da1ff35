package notification

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	"accounts/config"
	"accounts/internal/domain/service"
)

// Supported values of notification.provider.
const (
	ProviderNone    = "none"
	ProviderWebhook = "webhook"
	ProviderTopic   = "topic"
)

const defaultDeliveryTimeout = 10 * time.Second

// NotifierParams holds dependencies for the Notifier, injected by Fx
type NotifierParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewNotifier creates a Notifier whose sender is selected by configuration.
func NewNotifier(params NotifierParams) (service.Notifier, error) {
	cfg := params.Config.Notification
	logger := params.Logger

	sender, timeout, err := newSender(context.Background(), cfg, logger)
	if err != nil {
		return nil, err
	}

	dispatcher := NewDispatcher(sender, logger, timeout)

	// Register lifecycle hook to drain deliveries on shutdown
	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing Notifier")

			return dispatcher.Close(ctx)
		},
	})

	return dispatcher, nil
}

func newSender(ctx context.Context, cfg *config.NotificationConfig, logger *slog.Logger) (service.NotificationSender, time.Duration, error) {
	// If notification delivery is not configured, fall back to a no-op sender
	if cfg == nil || cfg.Provider == "" || cfg.Provider == ProviderNone {
		logger.Info("Notification delivery not configured, using no-op sender")

		return NewNoopSender(logger), defaultDeliveryTimeout, nil
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultDeliveryTimeout
	}

	switch cfg.Provider {
	case ProviderWebhook:
		if cfg.WebhookURL == "" {
			return nil, 0, errors.New("webhook URL is required for webhook provider")
		}
		logger.Info("Using webhook notification sender",
			slog.String("endpoint", cfg.WebhookURL),
		)

		return NewWebhookSender(cfg.WebhookURL, &http.Client{Timeout: timeout}, logger), timeout, nil

	case ProviderTopic:
		if cfg.TopicURL == "" {
			return nil, 0, errors.New("topic URL is required for topic provider")
		}
		logger.Info("Using pubsub topic notification sender",
			slog.String("topic_url", cfg.TopicURL),
		)

		sender, err := NewTopicSender(ctx, cfg.TopicURL, logger)
		if err != nil {
			return nil, 0, err
		}

		return sender, timeout, nil

	default:
		return nil, 0, errors.Errorf("unknown notification provider: %s", cfg.Provider)
	}
}

// Module provides the notification FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewNotifier),
)
