package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/smtp"
	"net/textproto"
	"strings"
)

// SMTPSender delivers email via Brevo SMTP
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	if port == 0 {
		port = 587
	}
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *SMTPSender) Send(_ context.Context, email *Email) error {
	if len(email.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}

	msg, err := buildMessage(s.from, email)
	if err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.from, email.To, msg); err != nil {
		slog.Error("failed to send email", "error", err, "to", email.To)
		return fmt.Errorf("failed to send email: %w", err)
	}

	slog.Info("email sent successfully", "to", email.To, "subject", email.Subject)
	return nil
}

// buildMessage renders an RFC 5322 message. Messages with attachments are multipart/mixed.
func buildMessage(from string, email *Email) ([]byte, error) {
	var msg bytes.Buffer
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(email.To, ", ")))
	if email.ReplyTo != "" {
		msg.WriteString(fmt.Sprintf("Reply-To: %s\r\n", email.ReplyTo))
	}
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", email.Subject)))
	msg.WriteString("MIME-Version: 1.0\r\n")

	bodyType := "text/plain; charset=\"utf-8\""
	if email.IsHTML {
		bodyType = "text/html; charset=\"utf-8\""
	}

	if len(email.Attachments) == 0 {
		msg.WriteString(fmt.Sprintf("Content-Type: %s\r\n", bodyType))
		msg.WriteString("\r\n")
		msg.WriteString(email.Body)
		return msg.Bytes(), nil
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	h := textproto.MIMEHeader{}
	h.Set("Content-Type", bodyType)
	h.Set("Content-Transfer-Encoding", "quoted-printable")
	pw, err := mw.CreatePart(h)
	if err != nil {
		return nil, err
	}
	qp := quotedprintable.NewWriter(pw)
	if _, err := qp.Write([]byte(email.Body)); err != nil {
		return nil, err
	}
	if err := qp.Close(); err != nil {
		return nil, err
	}

	for _, a := range email.Attachments {
		h := textproto.MIMEHeader{}
		h.Set("Content-Type", fmt.Sprintf("%s; name=%q", a.ContentType, a.Filename))
		h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Filename))
		h.Set("Content-Transfer-Encoding", "base64")
		pw, err := mw.CreatePart(h)
		if err != nil {
			return nil, err
		}
		if err := writeBase64Lines(pw, a.Data); err != nil {
			return nil, fmt.Errorf("failed to encode attachment %s: %w", a.Filename, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	msg.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=%q\r\n", mw.Boundary()))
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}

// writeBase64Lines wraps encoded output at 76 characters as MIME requires.
func writeBase64Lines(w io.Writer, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 0 {
		n := min(76, len(encoded))
		if _, err := w.Write([]byte(encoded[:n] + "\r\n")); err != nil {
			return err
		}
		encoded = encoded[n:]
	}
	return nil
}
