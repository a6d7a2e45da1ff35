package service

import (
	"context"
	"time"
)

// Notification is a single message about an account event.
type Notification struct {
	ID        string    `json:"id"`
	RequestID string    `json:"request_id,omitempty"` // For distributed tracing
	Subject   string    `json:"subject"`
	Content   string    `json:"content"`
	Recipient string    `json:"recipient"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationSender delivers one notification synchronously.
type NotificationSender interface {
	// Send delivers the notification or returns why it could not.
	Send(ctx context.Context, notification *Notification) error

	// Close releases any resources held by the sender
	Close() error
}

// Notifier dispatches notifications fire-and-forget. Notify never blocks on delivery
// and delivery failures never reach the caller.
type Notifier interface {
	Notify(ctx context.Context, subject, content, recipient string)
}
