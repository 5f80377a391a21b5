package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"
)

const (
	ProviderSendGrid = "sendgrid"
	ProviderSMTP     = "smtp"

	BrandName = "Nittany Craft"
)

var ErrNotConfigured = errors.New("email service not configured")

// Email represents an email message
type Email struct {
	To          []string
	Subject     string
	Body        string
	IsHTML      bool
	ReplyTo     string
	Attachments []Attachment
}

// Attachment is a file carried alongside an email body.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Sender delivers a single email message.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

type Config struct {
	Provider string
	APIKey   string
	From     string
	// Internal receives order notifications.
	Internal []string
	SiteURL  string

	SMTPHost  string
	SMTPPort  int
	SMTPLogin string
	SMTPKey   string
}

// Service handles order notifications
type Service struct {
	sender   Sender
	internal []string
	siteURL  string
}

// NewService builds a Service for the configured provider. It returns ErrNotConfigured
// when the provider's credentials are absent.
func NewService(cfg Config) (*Service, error) {
	var sender Sender
	switch cfg.Provider {
	case ProviderSendGrid, "":
		if cfg.APIKey == "" || cfg.From == "" {
			return nil, ErrNotConfigured
		}
		sender = NewSendGridSender(cfg.APIKey, cfg.From, BrandName)
	case ProviderSMTP:
		if cfg.SMTPHost == "" || cfg.SMTPKey == "" || cfg.From == "" {
			return nil, ErrNotConfigured
		}
		sender = NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPLogin, cfg.SMTPKey, cfg.From)
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}

	return NewServiceWithSender(sender, cfg.Internal, cfg.SiteURL), nil
}

func NewServiceWithSender(sender Sender, internal []string, siteURL string) *Service {
	return &Service{
		sender:   sender,
		internal: internal,
		siteURL:  siteURL,
	}
}

// ParseRecipients splits a comma separated address list, dropping blanks.
func ParseRecipients(list string) []string {
	var out []string
	for _, addr := range strings.Split(list, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// FormatCents converts cents to dollar string (e.g., 1234 -> "$12.34")
func FormatCents(cents int64) string {
	dollars := float64(cents) / 100.0
	return fmt.Sprintf("$%.2f", dollars)
}

// PurchaseData contains everything needed for the order notifications
type PurchaseData struct {
	OrderID           string
	CustomerEmail     string
	AmountCents       int64
	PlacedAt          time.Time
	OriginalURL       string
	ProcessedURL      string
	Original          []byte
	Processed         []byte
	OriginalMimeType  string
	ProcessedMimeType string
	// Extra is attached to the workshop notification only.
	Extra []Attachment
}

// SendResult summarises delivery across all recipients.
type SendResult struct {
	Success bool   `json:"success"`
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
	Error   string `json:"error,omitempty"`
}

func (r *SendResult) record(err error) {
	if err == nil {
		r.Sent++
		return
	}
	r.Failed++
	if r.Error == "" {
		r.Error = err.Error()
	}
}

// SendPurchaseNotification mails the workshop one notification per internal recipient and,
// when an address is known, a confirmation to the customer. Delivery failures are reported
// in the result rather than returned.
func (s *Service) SendPurchaseNotification(ctx context.Context, data *PurchaseData) SendResult {
	if s == nil || s.sender == nil {
		return SendResult{Error: ErrNotConfigured.Error()}
	}

	var result SendResult

	admin, err := s.adminEmail(data)
	if err != nil {
		result.record(err)
	} else {
		for _, to := range s.internal {
			msg := *admin
			msg.To = []string{to}
			err := s.sender.Send(ctx, &msg)
			if err != nil {
				slog.Error("failed to send order notification", "error", err, "to", to, "order_id", data.OrderID)
			}
			result.record(err)
		}
	}

	if data.CustomerEmail != "" {
		customer, err := s.customerEmail(data)
		if err == nil {
			err = s.sender.Send(ctx, customer)
		}
		if err != nil {
			slog.Error("failed to send order confirmation", "error", err, "order_id", data.OrderID)
		}
		result.record(err)
	}

	result.Success = result.Sent > 0 && result.Failed == 0
	return result
}

func (s *Service) adminEmail(data *PurchaseData) (*Email, error) {
	attachments := []Attachment{
		imageAttachment("original", data.OrderID, data.Original, data.OriginalMimeType),
		imageAttachment("engraving", data.OrderID, data.Processed, data.ProcessedMimeType),
	}
	attachments = append(attachments, data.Extra...)

	names := make([]string, 0, len(attachments))
	for _, a := range attachments {
		if len(a.Data) > 0 {
			names = append(names, a.Filename)
		}
	}

	subject := fmt.Sprintf("New Custom Engraving Order - %s", data.OrderID)
	html, err := RenderAdminOrderEmail(data, names, s.siteURL)
	if err != nil {
		return nil, err
	}

	email := &Email{
		Subject:     subject,
		Body:        html,
		IsHTML:      true,
		Attachments: nonEmpty(attachments),
	}
	if data.CustomerEmail != "" {
		email.ReplyTo = data.CustomerEmail
	}
	return email, nil
}

func (s *Service) customerEmail(data *PurchaseData) (*Email, error) {
	html, err := RenderCustomerOrderEmail(data, s.siteURL)
	if err != nil {
		return nil, err
	}

	return &Email{
		To:          []string{data.CustomerEmail},
		Subject:     fmt.Sprintf("Your %s order is confirmed", BrandName),
		Body:        html,
		IsHTML:      true,
		Attachments: nonEmpty([]Attachment{imageAttachment("engraving-preview", data.OrderID, data.Processed, data.ProcessedMimeType)}),
	}, nil
}

type orderView struct {
	OrderID       string
	CustomerEmail string
	PlacedAt      string
	Amount        string
	OriginalURL   string
	ProcessedURL  string
	Attachments   []string
}

func newOrderView(data *PurchaseData) orderView {
	placed := data.PlacedAt
	if placed.IsZero() {
		placed = time.Now()
	}
	return orderView{
		OrderID:       data.OrderID,
		CustomerEmail: data.CustomerEmail,
		PlacedAt:      placed.Format("January 2, 2006 at 3:04 PM MST"),
		Amount:        FormatCents(data.AmountCents),
		OriginalURL:   data.OriginalURL,
		ProcessedURL:  data.ProcessedURL,
	}
}

var (
	adminTmpl    = template.Must(template.New("admin").Parse(adminOrderContentTemplate))
	customerTmpl = template.Must(template.New("customer").Parse(customerOrderContentTemplate))
)

// RenderAdminOrderEmail renders the workshop notification
func RenderAdminOrderEmail(data *PurchaseData, attachments []string, siteURL string) (string, error) {
	view := newOrderView(data)
	view.Attachments = attachments

	var content bytes.Buffer
	if err := adminTmpl.Execute(&content, view); err != nil {
		return "", fmt.Errorf("failed to render admin email content: %w", err)
	}

	return WrapEmailContent(content.String(), fmt.Sprintf("New Custom Engraving Order - %s", data.OrderID), siteURL)
}

// RenderCustomerOrderEmail renders the customer confirmation
func RenderCustomerOrderEmail(data *PurchaseData, siteURL string) (string, error) {
	var content bytes.Buffer
	if err := customerTmpl.Execute(&content, newOrderView(data)); err != nil {
		return "", fmt.Errorf("failed to render customer email content: %w", err)
	}

	return WrapEmailContent(content.String(), "Order Confirmation", siteURL)
}

func imageAttachment(role, orderID string, data []byte, mimeType string) Attachment {
	if mimeType == "" {
		mimeType = "image/png"
	}
	ext := "png"
	if _, sub, ok := strings.Cut(mimeType, "/"); ok && sub != "" {
		ext = sub
	}
	return Attachment{
		Filename:    fmt.Sprintf("%s-%s.%s", role, orderID, ext),
		ContentType: mimeType,
		Data:        data,
	}
}

func nonEmpty(attachments []Attachment) []Attachment {
	out := attachments[:0]
	for _, a := range attachments {
		if len(a.Data) > 0 {
			out = append(out, a)
		}
	}
	return out
}
