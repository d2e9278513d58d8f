package mocks

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/relaypoint/mailgate/internal/core/domain/email"
)

// EmailSenderMock is a lightweight mock for ports.EmailSender
type EmailSenderMock struct {
	NameVal   string
	SendFn    func(ctx context.Context, msg *email.Email) (*email.SendResult, error)
	SendCalls int
	LastMsg   *email.Email
}

func (m *EmailSenderMock) Name() string {
	if m.NameVal != "" {
		return m.NameVal
	}
	return "SES"
}

func (m *EmailSenderMock) Send(ctx context.Context, msg *email.Email) (*email.SendResult, error) {
	m.SendCalls++
	m.LastMsg = msg
	if m.SendFn != nil {
		return m.SendFn(ctx, msg)
	}
	return &email.SendResult{Provider: m.Name()}, nil
}

// EmailServiceMock is a lightweight mock for ports.EmailService
type EmailServiceMock struct {
	SendFromRequestFn func(ctx context.Context, req *email.SendEmailRequest) (*email.SendResult, error)
}

func (m *EmailServiceMock) SendFromRequest(ctx context.Context, req *email.SendEmailRequest) (*email.SendResult, error) {
	if m.SendFromRequestFn != nil {
		return m.SendFromRequestFn(ctx, req)
	}
	return nil, fmt.Errorf("not implemented")
}

// HealthCheckerMock is a lightweight mock for ports.HealthChecker
type HealthCheckerMock struct {
	NameVal string
	CheckFn func(ctx context.Context) error
}

func (m *HealthCheckerMock) Name() string { return m.NameVal }

func (m *HealthCheckerMock) Check(ctx context.Context) error {
	if m.CheckFn != nil {
		return m.CheckFn(ctx)
	}
	return nil
}

// SESAPIMock is a lightweight mock for provider.SESAPI
type SESAPIMock struct {
	SendEmailFn    func(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
	GetAccountFn   func(ctx context.Context, params *sesv2.GetAccountInput, optFns ...func(*sesv2.Options)) (*sesv2.GetAccountOutput, error)
	SendEmailCalls int
}

func (m *SESAPIMock) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	m.SendEmailCalls++
	if m.SendEmailFn != nil {
		return m.SendEmailFn(ctx, params, optFns...)
	}
	return &sesv2.SendEmailOutput{}, nil
}

func (m *SESAPIMock) GetAccount(ctx context.Context, params *sesv2.GetAccountInput, optFns ...func(*sesv2.Options)) (*sesv2.GetAccountOutput, error) {
	if m.GetAccountFn != nil {
		return m.GetAccountFn(ctx, params, optFns...)
	}
	return &sesv2.GetAccountOutput{}, nil
}

// SendGridAPIMock is a lightweight mock for provider.SendGridAPI
type SendGridAPIMock struct {
	SendWithContextFn func(ctx context.Context, message *mail.SGMailV3) (*rest.Response, error)
	SendCalls         int
	LastMail          *mail.SGMailV3
}

func (m *SendGridAPIMock) SendWithContext(ctx context.Context, message *mail.SGMailV3) (*rest.Response, error) {
	m.SendCalls++
	m.LastMail = message
	if m.SendWithContextFn != nil {
		return m.SendWithContextFn(ctx, message)
	}
	return &rest.Response{StatusCode: 202}, nil
}
