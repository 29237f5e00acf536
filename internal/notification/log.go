package notification

import (
	"context"

	"turf-booking/internal/logger"

	"go.uber.org/zap"
)

// LogNotifier writes messages to the application log. It stands in for a
// mail relay in development.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (LogNotifier) Notify(_ context.Context, msg Message) error {
	logger.Info("Notification dispatched",
		zap.String("notification", msg.Event),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("event", "notification_sent"),
	)
	logger.Debug("Notification body",
		zap.String("notification", msg.Event),
		zap.String("body", msg.Body),
		zap.Any("data", msg.Data),
	)
	return nil
}
