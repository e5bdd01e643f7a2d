package sendgrid

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Email struct {
	To      string
	Subject string
	Content string
}

type EmailService interface {
	Send(ctx context.Context, email *Email) error
}

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

// NewEmailService builds a SendGrid-backed sender. With an empty API key
// sends are logged and dropped, which keeps local runs mail-free.
func NewEmailService(apiKey string, fromEmail string, fromName string) EmailService {

	if apiKey == "" {
		return &logOnlyEmailService{}
	}

	return &emailService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (e *emailService) Send(ctx context.Context, email *Email) error {

	from := mail.NewEmail(e.fromName, e.fromEmail)
	to := mail.NewEmail("", email.To)

	message := mail.NewSingleEmail(from, email.Subject, to, email.Content, email.Content)

	response, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}

type logOnlyEmailService struct{}

func (l *logOnlyEmailService) Send(_ context.Context, email *Email) error {

	slog.Info("Email delivery skipped (no SendGrid API key)",
		slog.String("to", email.To), slog.String("subject", email.Subject))

	return nil
}
