// Package notification delivers account notifications without ever blocking
// or failing the operation that triggered them.
package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/service"
)

// Dispatcher implements service.Notifier. Each Notify hands the notification to a
// goroutine that sends it on a context detached from the caller's cancellation.
type Dispatcher struct {
	sender  service.NotificationSender
	logger  *slog.Logger
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher wraps sender in a fire-and-forget notifier. timeout bounds each delivery.
func NewDispatcher(sender service.NotificationSender, logger *slog.Logger, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		sender:  sender,
		logger:  logger,
		timeout: timeout,
	}
}

// Notify schedules delivery and returns immediately. Failures are logged only.
func (d *Dispatcher) Notify(ctx context.Context, subject, content, recipient string) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, d.logger)

	notification := &service.Notification{
		ID:        uuid.NewString(),
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		Subject:   subject,
		Content:   content,
		Recipient: recipient,
		CreatedAt: time.Now().UTC(),
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		logger.Warn("Notifier closed, dropping notification",
			slog.String("notification_id", notification.ID),
			slog.String("subject", subject),
		)

		return
	}

	d.wg.Add(1)
	go d.deliver(context.WithoutCancel(ctx), logger, notification)
}

func (d *Dispatcher) deliver(ctx context.Context, logger *slog.Logger, notification *service.Notification) {
	defer d.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Notification sender panicked",
				slog.String("notification_id", notification.ID),
				slog.Any("panic", r),
			)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.sender.Send(ctx, notification); err != nil {
		logger.Warn("Failed to deliver notification",
			slog.String("notification_id", notification.ID),
			slog.String("subject", notification.Subject),
			slog.String("recipient", notification.Recipient),
			slog.Any("error", err),
		)
	}
}

// Wait blocks until every scheduled delivery has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Close stops accepting notifications, waits for in-flight deliveries until ctx ends,
// then closes the sender.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		d.logger.Warn("Timed out waiting for in-flight notifications")
	}

	if err := d.sender.Close(); err != nil {
		return errors.Wrap(err, "failed to close notification sender")
	}

	return nil
}
