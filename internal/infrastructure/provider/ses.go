package provider

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/relaypoint/mailgate/internal/core/domain/email"
	"github.com/relaypoint/mailgate/internal/core/ports"
)

const sesProviderName = "SES"

// SESAPI is the subset of the sesv2 client used by the sender; narrowed for
// testability.
type SESAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
	GetAccount(ctx context.Context, params *sesv2.GetAccountInput, optFns ...func(*sesv2.Options)) (*sesv2.GetAccountOutput, error)
}

// SESSender sends mail through Amazon SES (sesv2 API).
type SESSender struct {
	api SESAPI
}

func NewSESSender(api SESAPI) *SESSender {
	return &SESSender{api: api}
}

func (s *SESSender) Name() string { return sesProviderName }

func (s *SESSender) Send(ctx context.Context, msg *email.Email) (*email.SendResult, error) {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(msg.From),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(msg.HTMLBody)},
				},
			},
		},
	}

	out, err := s.api.SendEmail(ctx, input)
	if err != nil {
		return nil, err
	}

	return &email.SendResult{
		Provider:  sesProviderName,
		MessageID: aws.ToString(out.MessageId),
	}, nil
}

// Ping verifies the SES account is reachable with the process credentials.
func (s *SESSender) Ping(ctx context.Context) error {
	_, err := s.api.GetAccount(ctx, &sesv2.GetAccountInput{})
	return err
}

var _ ports.EmailSender = (*SESSender)(nil)
