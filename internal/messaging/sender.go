package messaging

import (
	"context"

	"go.uber.org/zap"
)

// Sender delivers a text message to one recipient.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// LogSender is used when no messaging account is configured. It only logs.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a dry-run sender.
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the message and reports success.
func (s *LogSender) Send(_ context.Context, to, body string) error {
	s.logger.Info("dry-run message", zap.String("to", to), zap.String("body", body))
	return nil
}
