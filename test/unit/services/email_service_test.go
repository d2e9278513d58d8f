package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/relaypoint/mailgate/internal/application/services"
	"github.com/relaypoint/mailgate/internal/core/domain/email"
	"github.com/relaypoint/mailgate/internal/core/ports"
	"github.com/relaypoint/mailgate/test/mocks"
)

func strPtr(s string) *string { return &s }

func newService(sender ports.EmailSender) ports.EmailService {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return services.NewEmailService(sender, &services.EmailServiceConfig{
		VerifiedIdentity: "example.com",
		APIKey:           "secret-key",
		Subject:          "You have a new notification",
	}, logger)
}

func TestSendFromRequest_InvalidAPIKey(t *testing.T) {
	sender := &mocks.EmailSenderMock{}
	svc := newService(sender)

	for _, key := range []*string{nil, strPtr(""), strPtr("wrong-key")} {
		_, err := svc.SendFromRequest(context.Background(), &email.SendEmailRequest{
			APIKey:        key,
			ToAddress:     strPtr("user@example.com"),
			EmailTemplate: strPtr("<p>hi</p>"),
		})
		require.ErrorIs(t, err, email.ErrInvalidAPIKey)
	}
	require.Zero(t, sender.SendCalls, "provider must not be invoked on auth failure")
}

func TestSendFromRequest_MissingFields(t *testing.T) {
	sender := &mocks.EmailSenderMock{}
	svc := newService(sender)

	tests := []struct {
		name    string
		req     *email.SendEmailRequest
		missing string
	}{
		{
			name:    "missing emailtemplate",
			req:     &email.SendEmailRequest{APIKey: strPtr("secret-key"), ToAddress: strPtr("user@example.com")},
			missing: "emailtemplate",
		},
		{
			name:    "missing toaddress",
			req:     &email.SendEmailRequest{APIKey: strPtr("secret-key"), EmailTemplate: strPtr("<p>hi</p>")},
			missing: "toaddress",
		},
		{
			// both absent: exactly one field is reported, the first checked
			name:    "both missing",
			req:     &email.SendEmailRequest{APIKey: strPtr("secret-key")},
			missing: "emailtemplate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SendFromRequest(context.Background(), tt.req)
			var missingField *email.MissingFieldError
			require.ErrorAs(t, err, &missingField)
			require.Equal(t, tt.missing, missingField.Field)
		})
	}
	require.Zero(t, sender.SendCalls)
}

func TestSendFromRequest_InvalidRecipientAddress(t *testing.T) {
	sender := &mocks.EmailSenderMock{}
	svc := newService(sender)

	_, err := svc.SendFromRequest(context.Background(), &email.SendEmailRequest{
		APIKey:        strPtr("secret-key"),
		ToAddress:     strPtr("not-an-address"),
		EmailTemplate: strPtr("<p>hi</p>"),
	})
	require.ErrorIs(t, err, email.ErrInvalidAddress)
	require.Zero(t, sender.SendCalls, "provider must not be invoked on address failure")
}

func TestSendFromRequest_Success(t *testing.T) {
	sender := &mocks.EmailSenderMock{
		SendFn: func(ctx context.Context, msg *email.Email) (*email.SendResult, error) {
			return &email.SendResult{Provider: "SES", MessageID: "msg-123"}, nil
		},
	}
	svc := newService(sender)

	result, err := svc.SendFromRequest(context.Background(), &email.SendEmailRequest{
		APIKey:        strPtr("secret-key"),
		ToAddress:     strPtr("user@example.com"),
		EmailTemplate: strPtr("<h1>Hello</h1><p>unescaped & raw</p>"),
	})
	require.NoError(t, err)
	require.Equal(t, "msg-123", result.MessageID)

	require.Equal(t, 1, sender.SendCalls)
	require.Equal(t, "no-reply@example.com", sender.LastMsg.From)
	require.Equal(t, "user@example.com", sender.LastMsg.To)
	require.Equal(t, "You have a new notification", sender.LastMsg.Subject)
	require.Equal(t, "<h1>Hello</h1><p>unescaped & raw</p>", sender.LastMsg.HTMLBody, "template must pass through verbatim")
}

func TestSendFromRequest_ProviderFailure(t *testing.T) {
	cause := errors.New("throttled")
	sender := &mocks.EmailSenderMock{
		SendFn: func(ctx context.Context, msg *email.Email) (*email.SendResult, error) {
			return nil, cause
		},
	}
	svc := newService(sender)

	_, err := svc.SendFromRequest(context.Background(), &email.SendEmailRequest{
		APIKey:        strPtr("secret-key"),
		ToAddress:     strPtr("user@example.com"),
		EmailTemplate: strPtr("<p>hi</p>"),
	})

	var providerErr *email.ProviderError
	require.ErrorAs(t, err, &providerErr)
	require.Equal(t, "SES", providerErr.Provider)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "throttled")
}

func TestSendFromRequest_DuplicateRequestsSendTwice(t *testing.T) {
	sender := &mocks.EmailSenderMock{}
	sender.SendFn = func(ctx context.Context, msg *email.Email) (*email.SendResult, error) {
		return &email.SendResult{Provider: "SES", MessageID: fmt.Sprintf("msg-%d", sender.SendCalls)}, nil
	}
	svc := newService(sender)

	req := &email.SendEmailRequest{
		APIKey:        strPtr("secret-key"),
		ToAddress:     strPtr("user@example.com"),
		EmailTemplate: strPtr("<p>hi</p>"),
	}

	for i := 0; i < 2; i++ {
		_, err := svc.SendFromRequest(context.Background(), req)
		require.NoError(t, err)
	}
	require.Equal(t, 2, sender.SendCalls, "identical requests are sent independently, no dedup")
}
