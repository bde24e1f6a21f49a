package sender

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// LogSender logs outgoing mail instead of delivering it. Used in local dev
// when SMTP credentials are not configured.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendEmail(ctx context.Context, to, subject, body string) (SendResult, error) {
	s.logger.Info("Email suppressed (no SMTP configured)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_len", len(body)),
	)
	return SendResult{
		MessageID: fmt.Sprintf("log-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}
