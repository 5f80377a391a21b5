package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/loganlanou/laserwood/internal/blob"
	"github.com/loganlanou/laserwood/internal/stripe"
	stripego "github.com/stripe/stripe-go/v80"
	"golang.org/x/sync/errgroup"
)

// CheckoutCreator opens a hosted payment session for one engraving.
type CheckoutCreator interface {
	CreateEngravingCheckout(ctx context.Context, req stripe.EngravingCheckout) (*stripego.CheckoutSession, error)
}

type CheckoutHandler struct {
	checkout       CheckoutCreator
	store          blob.Store
	fallbackOrigin string
}

func NewCheckoutHandler(checkout CheckoutCreator, store blob.Store, fallbackOrigin string) *CheckoutHandler {
	return &CheckoutHandler{
		checkout:       checkout,
		store:          store,
		fallbackOrigin: fallbackOrigin,
	}
}

type ImageURLs struct {
	Original  string `json:"original"`
	Processed string `json:"processed"`
}

type CreateCheckoutResponse struct {
	Success   bool      `json:"success"`
	SessionID string    `json:"sessionId"`
	URL       string    `json:"url"`
	ImageURLs ImageURLs `json:"imageUrls"`
}

// CreateCheckout stores both images under a temporary folder, then opens a checkout
// session whose metadata points at them. Stored images are not removed if the session
// cannot be created.
func (h *CheckoutHandler) CreateCheckout(c echo.Context) error {
	if h.checkout == nil || h.store == nil {
		return jsonError(c, http.StatusInternalServerError, "Stripe or Blob storage not configured.", "")
	}

	originalB64 := c.FormValue("originalImage")
	processedB64 := c.FormValue("processedImage")
	if originalB64 == "" || processedB64 == "" {
		return jsonError(c, http.StatusBadRequest, "Missing image data", "")
	}

	originalType := formValueOr(c, "originalMimeType", "image/png")
	processedType := formValueOr(c, "processedMimeType", "image/png")

	original, err := decodeBase64(originalB64)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid image data", "originalImage: "+err.Error())
	}
	processed, err := decodeBase64(processedB64)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid image data", "processedImage: "+err.Error())
	}

	stamp := blob.NewStamp()
	folder := blob.TempFolder(stamp)

	var originalObj, processedObj *blob.Object
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		obj, err := h.store.Put(ctx, folder+"/original."+blob.ExtFromMimeType(originalType), original, originalType)
		originalObj = obj
		return err
	})
	g.Go(func() error {
		obj, err := h.store.Put(ctx, folder+"/processed.png", processed, processedType)
		processedObj = obj
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Error("error storing checkout images", "error", err, "folder", folder)
		return jsonError(c, http.StatusInternalServerError, "Failed to create checkout session", err.Error())
	}

	session, err := h.checkout.CreateEngravingCheckout(c.Request().Context(), stripe.EngravingCheckout{
		OriginalURL:       originalObj.URL,
		ProcessedURL:      processedObj.URL,
		OriginalBase64:    originalB64,
		ProcessedBase64:   processedB64,
		OriginalMimeType:  originalType,
		ProcessedMimeType: processedType,
		Origin:            h.origin(c),
	})
	if err != nil {
		slog.Error("error creating checkout session", "error", err, "folder", folder)
		return jsonError(c, http.StatusInternalServerError, "Failed to create checkout session", err.Error())
	}

	slog.Info("checkout session created", "session_id", session.ID, "folder", folder)

	return c.JSON(http.StatusOK, CreateCheckoutResponse{
		Success:   true,
		SessionID: session.ID,
		URL:       session.URL,
		ImageURLs: ImageURLs{
			Original:  originalObj.URL,
			Processed: processedObj.URL,
		},
	})
}

func (h *CheckoutHandler) origin(c echo.Context) string {
	if origin := c.Request().Header.Get(echo.HeaderOrigin); origin != "" {
		return origin
	}
	return h.fallbackOrigin
}

func formValueOr(c echo.Context, name, fallback string) string {
	if v := c.FormValue(name); v != "" {
		return v
	}
	return fallback
}
