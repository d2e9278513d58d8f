package provider

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/relaypoint/mailgate/internal/core/domain/email"
	"github.com/relaypoint/mailgate/internal/core/ports"
)

const sendGridProviderName = "SendGrid"

// SendGridAPI is the subset of the sendgrid client used by the sender;
// narrowed for testability.
type SendGridAPI interface {
	SendWithContext(ctx context.Context, message *mail.SGMailV3) (*rest.Response, error)
}

// SendGridSender sends mail through the SendGrid v3 API.
type SendGridSender struct {
	api SendGridAPI
}

func NewSendGridSender(api SendGridAPI) *SendGridSender {
	return &SendGridSender{api: api}
}

func (s *SendGridSender) Name() string { return sendGridProviderName }

func (s *SendGridSender) Send(ctx context.Context, msg *email.Email) (*email.SendResult, error) {
	from := mail.NewEmail("", msg.From)
	recipient := mail.NewEmail("", msg.To)
	message := mail.NewSingleEmail(from, msg.Subject, recipient, "", msg.HTMLBody)

	response, err := s.api.SendWithContext(ctx, message)
	if err != nil {
		return nil, err
	}
	// SendGrid reports request-level rejections through the status code, not err.
	if response.StatusCode >= 400 {
		return nil, fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}

	return &email.SendResult{
		Provider:   sendGridProviderName,
		StatusCode: response.StatusCode,
	}, nil
}

var _ ports.EmailSender = (*SendGridSender)(nil)
