package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/relaypoint/mailgate/internal/core/domain/email"
	"github.com/relaypoint/mailgate/internal/core/ports"
)

var emailSendsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "email_sends_total",
		Help: "The total number of email send attempts by provider and outcome",
	},
	[]string{"provider", "outcome"},
)

func init() {
	prometheus.MustRegister(emailSendsTotal)
}

// EmailServiceConfig holds the process-wide, read-only values the pipeline
// validates against. Built once at startup, never mutated.
type EmailServiceConfig struct {
	VerifiedIdentity string
	APIKey           string
	Subject          string
}

// EmailService implements the validate-and-dispatch pipeline in front of the
// provider. Each call is independent; duplicate requests send duplicate emails.
type EmailService struct {
	sender ports.EmailSender
	config *EmailServiceConfig
	logger *logrus.Logger
}

func NewEmailService(sender ports.EmailSender, config *EmailServiceConfig, logger *logrus.Logger) ports.EmailService {
	return &EmailService{
		sender: sender,
		config: config,
		logger: logger,
	}
}

// SendFromRequest validates the request and forwards it to the provider.
// Steps run in strict order and short-circuit on the first failure:
// key check, field presence, sender construction, address check, dispatch.
func (s *EmailService) SendFromRequest(ctx context.Context, req *email.SendEmailRequest) (*email.SendResult, error) {
	apiKey := ""
	if req.APIKey != nil {
		apiKey = *req.APIKey
	}
	if apiKey != s.config.APIKey {
		return nil, email.ErrInvalidAPIKey
	}

	if req.EmailTemplate == nil {
		return nil, &email.MissingFieldError{Field: "emailtemplate"}
	}
	if req.ToAddress == nil {
		return nil, &email.MissingFieldError{Field: "toaddress"}
	}

	msg := &email.Email{
		From:     "no-reply@" + s.config.VerifiedIdentity,
		To:       *req.ToAddress,
		Subject:  s.config.Subject,
		HTMLBody: *req.EmailTemplate,
	}

	if !strings.Contains(msg.From, "@") || !strings.Contains(msg.To, "@") {
		return nil, email.ErrInvalidAddress
	}

	sendID := uuid.New().String()
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"send_id":  sendID,
			"to":       msg.To,
			"subject":  msg.Subject,
			"provider": s.sender.Name(),
		}).Debug("dispatching email")
	}

	result, err := s.sender.Send(ctx, msg)
	if err != nil {
		emailSendsTotal.WithLabelValues(s.sender.Name(), "failure").Inc()
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{
				"send_id":  sendID,
				"to":       msg.To,
				"provider": s.sender.Name(),
				"error":    err,
			}).Error("failed to send email")
		}
		return nil, &email.ProviderError{Provider: s.sender.Name(), Err: err}
	}

	emailSendsTotal.WithLabelValues(s.sender.Name(), "success").Inc()
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"send_id":    sendID,
			"to":         msg.To,
			"provider":   s.sender.Name(),
			"message_id": result.MessageID,
		}).Info("email sent")
	}

	return result, nil
}
