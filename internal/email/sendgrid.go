package email

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender delivers email through the SendGrid v3 API.
type SendGridSender struct {
	client *sendgrid.Client
	from   *mail.Email
}

func NewSendGridSender(apiKey, from, fromName string) *SendGridSender {
	return &SendGridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, from),
	}
}

func (s *SendGridSender) Send(_ context.Context, email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}

	response, err := s.client.Send(buildSendGridMessage(s.from, email))
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected email: status %d: %s", response.StatusCode, response.Body)
	}

	slog.Info("email sent successfully", "to", email.To, "subject", email.Subject, "status", response.StatusCode)
	return nil
}

func buildSendGridMessage(from *mail.Email, email *Email) *mail.SGMailV3 {
	message := mail.NewV3Mail()
	message.SetFrom(from)
	message.Subject = email.Subject

	p := mail.NewPersonalization()
	for _, to := range email.To {
		p.AddTos(mail.NewEmail("", to))
	}
	message.AddPersonalizations(p)

	if email.ReplyTo != "" {
		message.SetReplyTo(mail.NewEmail("", email.ReplyTo))
	}

	contentType := "text/plain"
	if email.IsHTML {
		contentType = "text/html"
	}
	message.AddContent(mail.NewContent(contentType, email.Body))

	for _, a := range email.Attachments {
		att := mail.NewAttachment()
		att.SetContent(base64.StdEncoding.EncodeToString(a.Data))
		att.SetType(a.ContentType)
		att.SetFilename(a.Filename)
		att.SetDisposition("attachment")
		message.AddAttachment(att)
	}

	return message
}
