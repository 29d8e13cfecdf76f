package auth

import (
	"context"

	"go.uber.org/zap"
)

// LogMailer writes reset links to the log instead of delivering mail.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendResetEmail(_ context.Context, recipient, link string) error {
	m.logger.Info("password reset link",
		zap.String("recipient", recipient),
		zap.String("link", link),
	)
	return nil
}
