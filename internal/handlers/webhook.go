package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/loganlanou/laserwood/internal/blob"
	"github.com/loganlanou/laserwood/internal/email"
	"github.com/loganlanou/laserwood/internal/proof"
	"github.com/loganlanou/laserwood/internal/stripe"
	"github.com/loganlanou/laserwood/storage"
	stripego "github.com/stripe/stripe-go/v80"
	"golang.org/x/sync/errgroup"
)

// EventVerifier authenticates a webhook body against its Stripe-Signature header.
type EventVerifier interface {
	ConstructEvent(payload []byte, signature string) (stripego.Event, error)
}

type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type Notifier interface {
	SendPurchaseNotification(ctx context.Context, data *email.PurchaseData) email.SendResult
}

// Ledger records fulfilled checkout sessions.
type Ledger interface {
	Lookup(ctx context.Context, sessionID string) (*storage.RecordedResponse, bool, error)
	Record(ctx context.Context, sessionID, eventID, eventType string, status int, body []byte) (bool, error)
}

// WebhookDeps are the webhook's collaborators. Verifier is required for any event to be
// accepted; Ledger is optional and disables deduplication when nil.
type WebhookDeps struct {
	Verifier EventVerifier
	Store    blob.Store
	Fetcher  ImageFetcher
	Notifier Notifier
	Ledger   Ledger
	// Artifacts attaches a proof sheet and work order to the workshop email.
	Artifacts bool
}

type WebhookHandler struct {
	deps WebhookDeps
}

func NewWebhookHandler(deps WebhookDeps) *WebhookHandler {
	return &WebhookHandler{deps: deps}
}

type WebhookResponse struct {
	Success bool             `json:"success"`
	OrderID string           `json:"orderId"`
	Images  ImageURLs        `json:"images"`
	Email   email.SendResult `json:"email"`
}

// requestError is a failure that maps to a specific HTTP response.
type requestError struct {
	status  int
	message string
	details string
}

func (e *requestError) Error() string {
	if e.details == "" {
		return e.message
	}
	return e.message + ": " + e.details
}

func (h *WebhookHandler) HandleWebhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Unable to read request body", err.Error())
	}

	signature := c.Request().Header.Get("Stripe-Signature")
	if signature == "" {
		return jsonError(c, http.StatusBadRequest, "No signature provided", "")
	}

	if h.deps.Verifier == nil {
		return jsonError(c, http.StatusInternalServerError, "Stripe not configured", "")
	}

	event, err := h.deps.Verifier.ConstructEvent(payload, signature)
	if err != nil {
		slog.Error("webhook signature verification failed", "error", err)
		return jsonError(c, http.StatusBadRequest, fmt.Sprintf("Webhook Error: %s", err.Error()), "")
	}

	if string(event.Type) != stripe.EventCheckoutSessionCompleted {
		slog.Debug("unhandled webhook event type", "type", event.Type)
		return c.JSON(http.StatusOK, map[string]bool{"received": true})
	}

	var session stripego.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		slog.Error("error parsing checkout session", "error", err)
		return jsonError(c, http.StatusBadRequest, "Error parsing webhook JSON", err.Error())
	}

	ctx := c.Request().Context()

	if h.deps.Ledger != nil && session.ID != "" {
		recorded, found, err := h.deps.Ledger.Lookup(ctx, session.ID)
		if err != nil {
			slog.Warn("webhook ledger lookup failed, processing anyway", "error", err, "order_id", session.ID)
		} else if found {
			slog.Info("checkout session already fulfilled", "order_id", session.ID, "first_event_id", recorded.EventID, "event_id", event.ID)
			return c.JSONBlob(recorded.StatusCode, recorded.Body)
		}
	}

	resp, err := h.fulfill(ctx, &session)
	if err != nil {
		slog.Error("error processing order", "error", err, "order_id", session.ID)
		var rerr *requestError
		if errors.As(err, &rerr) {
			return jsonError(c, rerr.status, rerr.message, rerr.details)
		}
		return jsonError(c, http.StatusInternalServerError, "Failed to process order", err.Error())
	}

	body, err := json.Marshal(resp)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "Failed to process order", err.Error())
	}

	if h.deps.Ledger != nil && session.ID != "" {
		if _, err := h.deps.Ledger.Record(ctx, session.ID, event.ID, string(event.Type), http.StatusOK, body); err != nil {
			slog.Warn("failed to record webhook event", "error", err, "order_id", session.ID)
		}
	}

	return c.JSONBlob(http.StatusOK, body)
}

type resolvedImages struct {
	originalURL, processedURL   string
	original, processed         []byte
	originalType, processedType string
}

func (h *WebhookHandler) fulfill(ctx context.Context, session *stripego.CheckoutSession) (*WebhookResponse, error) {
	orderID := session.ID

	customerEmail := session.CustomerEmail
	if customerEmail == "" && session.CustomerDetails != nil {
		customerEmail = session.CustomerDetails.Email
	}

	images, err := h.resolveImages(ctx, orderID, session.Metadata)
	if err != nil {
		return nil, err
	}

	slog.Info("processing order with images",
		"order_id", orderID,
		"original", images.originalURL,
		"processed", images.processedURL,
		"has_customer_email", customerEmail != "")

	amount := session.AmountTotal
	if amount == 0 {
		amount = stripe.UnitAmountCents
	}
	placedAt := time.Now()
	if session.Created > 0 {
		placedAt = time.Unix(session.Created, 0)
	}

	data := &email.PurchaseData{
		OrderID:           orderID,
		CustomerEmail:     customerEmail,
		AmountCents:       amount,
		PlacedAt:          placedAt,
		OriginalURL:       images.originalURL,
		ProcessedURL:      images.processedURL,
		Original:          images.original,
		Processed:         images.processed,
		OriginalMimeType:  images.originalType,
		ProcessedMimeType: images.processedType,
	}
	if h.deps.Artifacts {
		data.Extra = orderArtifacts(data)
	}

	var result email.SendResult
	if h.deps.Notifier == nil {
		result = email.SendResult{Error: email.ErrNotConfigured.Error()}
	} else {
		result = h.deps.Notifier.SendPurchaseNotification(ctx, data)
	}

	slog.Info("email send result",
		"order_id", orderID,
		"success", result.Success,
		"sent", result.Sent,
		"failed", result.Failed,
		"error", result.Error)

	return &WebhookResponse{
		Success: true,
		OrderID: orderID,
		Images: ImageURLs{
			Original:  images.originalURL,
			Processed: images.processedURL,
		},
		Email: result,
	}, nil
}

// resolveImages prefers the URLs stored at checkout and falls back to re-storing the
// inline copies from metadata.
func (h *WebhookHandler) resolveImages(ctx context.Context, orderID string, md map[string]string) (*resolvedImages, error) {
	images := &resolvedImages{
		originalURL:   md[stripe.MetaOriginalURL],
		processedURL:  md[stripe.MetaProcessedURL],
		originalType:  metaOr(md, stripe.MetaOriginalMimeType, "image/png"),
		processedType: metaOr(md, stripe.MetaProcessedMimeType, "image/png"),
	}

	if images.originalURL != "" && images.processedURL != "" {
		if h.deps.Fetcher == nil {
			return nil, fmt.Errorf("image fetcher not configured")
		}
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			data, err := h.deps.Fetcher.Fetch(gctx, images.originalURL)
			images.original = data
			return err
		})
		g.Go(func() error {
			data, err := h.deps.Fetcher.Fetch(gctx, images.processedURL)
			images.processed = data
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return images, nil
	}

	originalB64 := md[stripe.MetaOriginalImage]
	processedB64 := md[stripe.MetaProcessedImage]
	if originalB64 == "" || processedB64 == "" {
		slog.Error("missing image data, images should be saved before purchase", "order_id", orderID)
		return nil, &requestError{status: http.StatusBadRequest, message: "Missing image data"}
	}

	var err error
	if images.original, err = decodeFallback(originalB64); err != nil {
		return nil, &requestError{status: http.StatusBadRequest, message: "Missing image data", details: "original image fallback is unusable: " + err.Error()}
	}
	if images.processed, err = decodeFallback(processedB64); err != nil {
		return nil, &requestError{status: http.StatusBadRequest, message: "Missing image data", details: "processed image fallback is unusable: " + err.Error()}
	}

	if h.deps.Store == nil {
		return nil, &requestError{status: http.StatusInternalServerError, message: "Blob storage not configured"}
	}

	stamp := blob.NewStamp()
	folder := blob.Folder(orderID)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		obj, err := h.deps.Store.Put(gctx, blob.ObjectKey(folder, "original", stamp, blob.ExtFromMimeType(images.originalType)), images.original, images.originalType)
		if err != nil {
			return err
		}
		images.originalURL = obj.URL
		return nil
	})
	g.Go(func() error {
		obj, err := h.deps.Store.Put(gctx, blob.ObjectKey(folder, "processed", stamp, "png"), images.processed, images.processedType)
		if err != nil {
			return err
		}
		images.processedURL = obj.URL
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Warn("recovered order images from checkout metadata", "order_id", orderID, "folder", folder)
	return images, nil
}

// decodeFallback rejects metadata copies that were cut short at checkout.
func decodeFallback(s string) ([]byte, error) {
	data, err := decodeBase64(s)
	if err != nil {
		return nil, err
	}
	if _, err := proof.Verify(data); err != nil {
		return nil, err
	}
	return data, nil
}

// orderArtifacts renders the proof sheet and work order. Failures are logged and skipped.
func orderArtifacts(data *email.PurchaseData) []email.Attachment {
	var out []email.Attachment

	sheet, err := proof.ComposeProof(data.Original, data.Processed, data.OrderID)
	if err != nil {
		slog.Warn("failed to compose proof sheet", "error", err, "order_id", data.OrderID)
	} else {
		out = append(out, email.Attachment{
			Filename:    fmt.Sprintf("proof-%s.png", data.OrderID),
			ContentType: "image/png",
			Data:        sheet,
		})
	}

	workOrder, err := proof.WorkOrderPDF(proof.WorkOrder{
		OrderID:       data.OrderID,
		CustomerEmail: data.CustomerEmail,
		PlacedAt:      data.PlacedAt,
		AmountCents:   data.AmountCents,
		Item:          stripe.ProductName,
		Engraving:     data.Processed,
		EngravingURL:  data.ProcessedURL,
	})
	if err != nil {
		slog.Warn("failed to render work order", "error", err, "order_id", data.OrderID)
	} else {
		out = append(out, email.Attachment{
			Filename:    fmt.Sprintf("work-order-%s.pdf", data.OrderID),
			ContentType: "application/pdf",
			Data:        workOrder,
		})
	}

	return out
}

func metaOr(md map[string]string, key, fallback string) string {
	if v := md[key]; v != "" {
		return v
	}
	return fallback
}
