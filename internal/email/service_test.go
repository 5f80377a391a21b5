package email

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu     sync.Mutex
	sent   []*Email
	failTo map[string]bool
}

func (r *recordingSender) Send(_ context.Context, email *Email) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, to := range email.To {
		if r.failTo[to] {
			return errors.New("mailbox unavailable")
		}
	}
	r.sent = append(r.sent, email)
	return nil
}

func testPurchase() *PurchaseData {
	return &PurchaseData{
		OrderID:           "cs_test_" + gofakeit.LetterN(12),
		CustomerEmail:     gofakeit.Email(),
		AmountCents:       4000,
		PlacedAt:          time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC),
		OriginalURL:       "https://blob.test/temp/1-abc/original.jpeg",
		ProcessedURL:      "https://blob.test/temp/1-abc/processed.png",
		Original:          []byte("original-bytes"),
		Processed:         []byte("processed-bytes"),
		OriginalMimeType:  "image/jpeg",
		ProcessedMimeType: "image/png",
	}
}

func TestSendPurchaseNotification_NotConfigured(t *testing.T) {
	var svc *Service
	result := svc.SendPurchaseNotification(t.Context(), testPurchase())

	assert.False(t, result.Success)
	assert.Zero(t, result.Sent)
	assert.Zero(t, result.Failed)
	assert.Equal(t, "email service not configured", result.Error)
}

func TestSendPurchaseNotification_AdminAndCustomer(t *testing.T) {
	sender := &recordingSender{}
	internal := []string{gofakeit.Email(), gofakeit.Email()}
	svc := NewServiceWithSender(sender, internal, "https://nittanycraft.test")

	data := testPurchase()
	data.Extra = []Attachment{{Filename: "proof.png", ContentType: "image/png", Data: []byte("proof")}}

	result := svc.SendPurchaseNotification(t.Context(), data)

	assert.True(t, result.Success)
	assert.Equal(t, 3, result.Sent)
	assert.Zero(t, result.Failed)
	assert.Empty(t, result.Error)

	require.Len(t, sender.sent, 3)
	for i, to := range internal {
		msg := sender.sent[i]
		assert.Equal(t, []string{to}, msg.To)
		assert.Contains(t, msg.Subject, data.OrderID)
		assert.Equal(t, data.CustomerEmail, msg.ReplyTo)
		assert.True(t, msg.IsHTML)
		assert.Contains(t, msg.Body, data.ProcessedURL)
		assert.Contains(t, msg.Body, "$40.00")

		require.Len(t, msg.Attachments, 3)
		assert.Equal(t, "original-"+data.OrderID+".jpeg", msg.Attachments[0].Filename)
		assert.Equal(t, []byte("original-bytes"), msg.Attachments[0].Data)
		assert.Equal(t, "engraving-"+data.OrderID+".png", msg.Attachments[1].Filename)
		assert.Equal(t, "proof.png", msg.Attachments[2].Filename)
	}

	customer := sender.sent[2]
	assert.Equal(t, []string{data.CustomerEmail}, customer.To)
	require.Len(t, customer.Attachments, 1)
	assert.Equal(t, "image/png", customer.Attachments[0].ContentType)
	assert.NotContains(t, customer.Body, data.OriginalURL)
}

func TestSendPurchaseNotification_NoCustomerEmail(t *testing.T) {
	sender := &recordingSender{}
	svc := NewServiceWithSender(sender, []string{"orders@nittanycraft.com"}, "")

	data := testPurchase()
	data.CustomerEmail = ""
	result := svc.SendPurchaseNotification(t.Context(), data)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Sent)
	require.Len(t, sender.sent, 1)
	assert.Empty(t, sender.sent[0].ReplyTo)
	assert.Contains(t, sender.sent[0].Body, "not provided")
}

func TestSendPurchaseNotification_PartialFailure(t *testing.T) {
	sender := &recordingSender{failTo: map[string]bool{"broken@nittanycraft.com": true}}
	svc := NewServiceWithSender(sender, []string{"broken@nittanycraft.com", "orders@nittanycraft.com"}, "")

	result := svc.SendPurchaseNotification(t.Context(), testPurchase())

	assert.False(t, result.Success)
	assert.Equal(t, 2, result.Sent)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, "mailbox unavailable", result.Error)
}

func TestSendPurchaseNotification_SkipsEmptyAttachments(t *testing.T) {
	sender := &recordingSender{}
	svc := NewServiceWithSender(sender, []string{"orders@nittanycraft.com"}, "")

	data := testPurchase()
	data.Original = nil
	data.CustomerEmail = ""
	svc.SendPurchaseNotification(t.Context(), data)

	require.Len(t, sender.sent, 1)
	require.Len(t, sender.sent[0].Attachments, 1)
	assert.True(t, strings.HasPrefix(sender.sent[0].Attachments[0].Filename, "engraving-"))
}

func TestNewService(t *testing.T) {
	_, err := NewService(Config{Provider: ProviderSendGrid, From: "orders@nittanycraft.com"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewService(Config{Provider: ProviderSMTP, SMTPHost: "smtp-relay.brevo.com", From: "orders@nittanycraft.com"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewService(Config{Provider: "pigeon", APIKey: "k", From: "a@b.c"})
	assert.Error(t, err)

	svc, err := NewService(Config{Provider: ProviderSMTP, SMTPHost: "smtp-relay.brevo.com", SMTPKey: "key", From: "orders@nittanycraft.com"})
	require.NoError(t, err)
	assert.IsType(t, &SMTPSender{}, svc.sender)

	svc, err = NewService(Config{APIKey: "SG.key", From: "orders@nittanycraft.com"})
	require.NoError(t, err)
	assert.IsType(t, &SendGridSender{}, svc.sender)
}

func TestParseRecipients(t *testing.T) {
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, ParseRecipients(" a@x.com, ,b@x.com,"))
	assert.Nil(t, ParseRecipients(""))
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$40.00", FormatCents(4000))
	assert.Equal(t, "$12.34", FormatCents(1234))
}

func TestBuildMessage_Multipart(t *testing.T) {
	attachment := []byte(strings.Repeat("engraving", 40))
	raw, err := buildMessage("orders@nittanycraft.com", &Email{
		To:          []string{"a@x.com", "b@x.com"},
		Subject:     "New Custom Engraving Order",
		Body:        "<p>Hello workshop</p>",
		IsHTML:      true,
		ReplyTo:     "customer@x.com",
		Attachments: []Attachment{{Filename: "engraving.png", ContentType: "image/png", Data: attachment}},
	})
	require.NoError(t, err)

	msg, err := mail.ReadMessage(strings.NewReader(string(raw)))
	require.NoError(t, err)
	assert.Equal(t, "a@x.com, b@x.com", msg.Header.Get("To"))
	assert.Equal(t, "customer@x.com", msg.Header.Get("Reply-To"))

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/mixed", mediaType)

	mr := multipart.NewReader(msg.Body, params["boundary"])

	bodyPart, err := mr.NextPart()
	require.NoError(t, err)
	body, err := io.ReadAll(bodyPart)
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello workshop</p>", string(body))

	filePart, err := mr.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "engraving.png", filePart.FileName())
	decoded, err := io.ReadAll(base64.NewDecoder(base64.StdEncoding, filePart))
	require.NoError(t, err)
	assert.Equal(t, attachment, decoded)

	_, err = mr.NextPart()
	assert.ErrorIs(t, err, io.EOF)
}

func TestBuildMessage_PlainWithoutAttachments(t *testing.T) {
	raw, err := buildMessage("orders@nittanycraft.com", &Email{To: []string{"a@x.com"}, Subject: "Hi", Body: "plain body"})
	require.NoError(t, err)

	msg, err := mail.ReadMessage(strings.NewReader(string(raw)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(msg.Header.Get("Content-Type"), "text/plain"))
	body, err := io.ReadAll(msg.Body)
	require.NoError(t, err)
	assert.Equal(t, "plain body", string(body))
}

func TestBuildSendGridMessage(t *testing.T) {
	sender := NewSendGridSender("SG.key", "orders@nittanycraft.com", BrandName)
	message := buildSendGridMessage(sender.from, &Email{
		To:          []string{"a@x.com", "b@x.com"},
		Subject:     "Order",
		Body:        "<p>hi</p>",
		IsHTML:      true,
		ReplyTo:     "customer@x.com",
		Attachments: []Attachment{{Filename: "engraving.png", ContentType: "image/png", Data: []byte("png")}},
	})

	require.Len(t, message.Personalizations, 1)
	assert.Len(t, message.Personalizations[0].To, 2)
	assert.Equal(t, "customer@x.com", message.ReplyTo.Address)
	require.Len(t, message.Content, 1)
	assert.Equal(t, "text/html", message.Content[0].Type)
	require.Len(t, message.Attachments, 1)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("png")), message.Attachments[0].Content)
	assert.Equal(t, "engraving.png", message.Attachments[0].Filename)
}

func TestRenderCustomerOrderEmail_EscapesInput(t *testing.T) {
	data := testPurchase()
	data.OrderID = "<script>alert(1)</script>"

	html, err := RenderCustomerOrderEmail(data, "")
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "NITTANY CRAFT.")
}
