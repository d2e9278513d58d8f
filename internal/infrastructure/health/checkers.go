package health

import (
	"context"

	"github.com/relaypoint/mailgate/internal/core/ports"
)

// pinger is implemented by senders that can probe their provider.
type pinger interface {
	Ping(ctx context.Context) error
}

// senderHealthChecker wraps the configured email sender for health checks.
type senderHealthChecker struct{ sender ports.EmailSender }

func (s *senderHealthChecker) Name() string { return "email_provider" }

func (s *senderHealthChecker) Check(ctx context.Context) error {
	if p, ok := s.sender.(pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// NewSenderHealthChecker creates a health checker for the email provider.
func NewSenderHealthChecker(sender ports.EmailSender) ports.HealthChecker {
	return &senderHealthChecker{sender: sender}
}
