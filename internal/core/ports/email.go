package ports

import (
	"context"

	"github.com/relaypoint/mailgate/internal/core/domain/email"
)

// EmailSender abstracts the external mail provider. One operation: a single
// best-effort send, no retry.
type EmailSender interface {
	// Name identifies the provider in responses and logs (e.g. "SES").
	Name() string
	Send(ctx context.Context, msg *email.Email) (*email.SendResult, error)
}

// EmailService defines the interface for the validate-and-dispatch pipeline.
type EmailService interface {
	SendFromRequest(ctx context.Context, req *email.SendEmailRequest) (*email.SendResult, error)
}
