package sms

import (
	"context"

	"qr-dine-be/internal/pkg/logger"
)

// Sender delivers short text messages to a phone number.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// ConsoleSender writes the message to the application log instead of a
// carrier. Used in development where no SMS provider is configured.
type ConsoleSender struct {
	logger logger.ILogger
}

func NewConsoleSender(log logger.ILogger) *ConsoleSender {
	return &ConsoleSender{logger: log}
}

func (s *ConsoleSender) Send(ctx context.Context, phone, message string) error {
	s.logger.Info("SMS", "Outbound message", map[string]interface{}{
		"phone":   phone,
		"message": message,
	})
	return nil
}
