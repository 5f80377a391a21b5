package stripe

import (
	"context"
	"fmt"
	"strings"

	stripego "github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/client"
	"github.com/stripe/stripe-go/v80/webhook"
)

// The storefront sells a single item at a fixed price.
const (
	ProductName        = "Custom Laser Engraving"
	ProductDescription = "Custom photo laser-engraved on wood"
	UnitAmountCents    = int64(4000)
	Currency           = "usd"
	OrderTypeEngraving = "custom-engraving"

	EventCheckoutSessionCompleted = "checkout.session.completed"

	// MetadataFallbackLimit bounds the inline base64 copies kept in session metadata;
	// Stripe rejects metadata values longer than 500 characters.
	MetadataFallbackLimit = 500
)

// Checkout session metadata keys.
const (
	MetaOrderType         = "orderType"
	MetaOriginalURL       = "originalUrl"
	MetaProcessedURL      = "processedUrl"
	MetaOriginalImage     = "originalImage"
	MetaProcessedImage    = "processedImage"
	MetaOriginalMimeType  = "originalMimeType"
	MetaProcessedMimeType = "processedMimeType"
)

type StripeService struct {
	api           *client.API
	webhookSecret string
}

func NewStripeService(secretKey, webhookSecret string) *StripeService {
	return &StripeService{
		api:           client.New(secretKey, nil),
		webhookSecret: webhookSecret,
	}
}

// EngravingCheckout is everything needed to open a hosted checkout for one engraving.
type EngravingCheckout struct {
	OriginalURL       string
	ProcessedURL      string
	OriginalBase64    string
	ProcessedBase64   string
	OriginalMimeType  string
	ProcessedMimeType string
	// Origin is the scheme://host the customer returns to after checkout.
	Origin string
}

// CheckoutParams builds the session request for a single fixed-price engraving.
func CheckoutParams(req EngravingCheckout) *stripego.CheckoutSessionParams {
	origin := strings.TrimRight(req.Origin, "/")

	return &stripego.CheckoutSessionParams{
		PaymentMethodTypes: stripego.StringSlice([]string{"card"}),
		Mode:               stripego.String(string(stripego.CheckoutSessionModePayment)),
		LineItems: []*stripego.CheckoutSessionLineItemParams{
			{
				PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripego.String(Currency),
					UnitAmount: stripego.Int64(UnitAmountCents),
					ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripego.String(ProductName),
						Description: stripego.String(ProductDescription),
					},
				},
				Quantity: stripego.Int64(1),
			},
		},
		SuccessURL: stripego.String(origin + "/thank-you?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripego.String(origin + "/upload?canceled=true"),
		Metadata: map[string]string{
			MetaOrderType:         OrderTypeEngraving,
			MetaOriginalURL:       req.OriginalURL,
			MetaProcessedURL:      req.ProcessedURL,
			MetaOriginalImage:     Truncate(req.OriginalBase64, MetadataFallbackLimit),
			MetaProcessedImage:    Truncate(req.ProcessedBase64, MetadataFallbackLimit),
			MetaOriginalMimeType:  req.OriginalMimeType,
			MetaProcessedMimeType: req.ProcessedMimeType,
		},
	}
}

func (s *StripeService) CreateEngravingCheckout(ctx context.Context, req EngravingCheckout) (*stripego.CheckoutSession, error) {
	params := CheckoutParams(req)
	params.Context = ctx

	session, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return session, nil
}

// CanVerifyWebhooks reports whether a webhook signing secret is configured.
func (s *StripeService) CanVerifyWebhooks() bool {
	return s != nil && s.webhookSecret != ""
}

// ConstructEvent verifies the Stripe-Signature header against the raw body.
// The account's API version may differ from the library's, so the version check is skipped.
func (s *StripeService) ConstructEvent(payload []byte, signature string) (stripego.Event, error) {
	return webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret, webhook.ConstructEventOptions{
		Tolerance:                webhook.DefaultTolerance,
		IgnoreAPIVersionMismatch: true,
	})
}

// Truncate returns the first n bytes of s. Base64 text is ASCII, so bytes are characters.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
