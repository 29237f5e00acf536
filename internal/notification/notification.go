// Package notification delivers best-effort outbound messages about
// accounts and bookings. Delivery failures are reported to the caller but
// never undo the operation that triggered them.
package notification

import (
	"context"
	"errors"
	"time"

	"turf-booking/internal/logger"

	"go.uber.org/zap"
)

const (
	EventWelcome        = "user.welcome"
	EventPasswordReset  = "user.password_reset"
	EventBookingCreated = "booking.created"
	EventBookingStatus  = "booking.status_changed"
	EventBookingCancel  = "booking.cancelled"
	EventPaymentReceipt = "booking.payment_receipt"
)

type Message struct {
	Event   string         `json:"event"`
	To      string         `json:"to,omitempty"`
	Subject string         `json:"subject,omitempty"`
	Body    string         `json:"body,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Multi fans a message out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, msg Message) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Dispatch sends msg under its own timeout, detached from the caller's
// cancellation, and logs instead of returning failures.
func Dispatch(ctx context.Context, n Notifier, timeout time.Duration, msg Message) {
	if n == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := n.Notify(ctx, msg); err != nil {
		logger.Warn("Notification delivery failed",
			zap.String("notification", msg.Event),
			zap.Error(err),
			zap.String("event", "notification_failed"),
		)
	}
}
