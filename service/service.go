package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/loganlanou/laserwood/internal/blob"
	"github.com/loganlanou/laserwood/internal/email"
	"github.com/loganlanou/laserwood/internal/handlers"
	"github.com/loganlanou/laserwood/internal/imagegen"
	"github.com/loganlanou/laserwood/internal/stripe"
	"github.com/loganlanou/laserwood/storage"
	"github.com/loganlanou/laserwood/views/checkout"
	"github.com/loganlanou/laserwood/views/home"
	"github.com/loganlanou/laserwood/views/layout"
	"github.com/loganlanou/laserwood/views/upload"
)

// Collaborators are the external services behind the API handlers. A nil field means the
// credential for it is missing, and the handlers that need it answer with a configuration error.
type Collaborators struct {
	Generator handlers.Generator
	Store     blob.Store
	Checkout  handlers.CheckoutCreator
	Verifier  handlers.EventVerifier
	Fetcher   handlers.ImageFetcher
	Notifier  handlers.Notifier
	Ledger    handlers.Ledger
}

type Service struct {
	storage *storage.Storage
	config  *Config
	deps    Collaborators

	imageHandler    *handlers.ImageHandler
	checkoutHandler *handlers.CheckoutHandler
	webhookHandler  *handlers.WebhookHandler

	closers []func() error
}

// New builds every collaborator the configuration has credentials for. storage may be nil,
// which disables webhook deduplication.
func New(ctx context.Context, storage *storage.Storage, config *Config) *Service {
	var (
		deps    Collaborators
		closers []func() error
	)

	if config.Gemini.APIKey != "" {
		client, err := imagegen.NewClient(ctx, config.Gemini.APIKey, config.Gemini.Model)
		if err != nil {
			slog.Error("failed to initialize image generation client", "error", err)
		} else {
			deps.Generator = client
			closers = append(closers, client.Close)
		}
	}

	store, err := blob.Open(ctx, config.BlobConfig())
	switch {
	case errors.Is(err, blob.ErrNotConfigured):
		slog.Warn("blob storage not configured, image persistence disabled")
	case err != nil:
		slog.Error("failed to initialize blob storage", "provider", config.Blob.Provider, "error", err)
	default:
		deps.Store = store
	}

	if config.Stripe.SecretKey != "" {
		stripeService := stripe.NewStripeService(config.Stripe.SecretKey, config.Stripe.WebhookSecret)
		deps.Checkout = stripeService
		if stripeService.CanVerifyWebhooks() {
			deps.Verifier = stripeService
		} else {
			slog.Warn("STRIPE_WEBHOOK_SECRET not set, webhooks will be rejected")
		}
	}

	emailService, err := email.NewService(config.EmailConfig())
	if err != nil {
		slog.Warn("order notification emails disabled", "provider", config.Email.Provider, "error", err)
	} else {
		deps.Notifier = emailService
	}

	deps.Fetcher = blob.NewFetcher(nil)

	if config.Ledger.Dedup && storage != nil {
		deps.Ledger = storage.WebhookLedger()
	}

	s := NewWithCollaborators(storage, config, deps)
	s.closers = closers
	return s
}

// NewWithCollaborators wires the handlers around already built collaborators.
func NewWithCollaborators(storage *storage.Storage, config *Config, deps Collaborators) *Service {
	return &Service{
		storage:         storage,
		config:          config,
		deps:            deps,
		imageHandler:    handlers.NewImageHandler(deps.Generator, deps.Store),
		checkoutHandler: handlers.NewCheckoutHandler(deps.Checkout, deps.Store, config.Stripe.FallbackOrigin),
		webhookHandler: handlers.NewWebhookHandler(handlers.WebhookDeps{
			Verifier:  deps.Verifier,
			Store:     deps.Store,
			Fetcher:   deps.Fetcher,
			Notifier:  deps.Notifier,
			Ledger:    deps.Ledger,
			Artifacts: true,
		}),
	}
}

// Close releases the clients opened by New.
func (s *Service) Close() error {
	var errs []error
	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Service) RegisterRoutes(e *echo.Echo) {
	// Pages
	e.GET("/", s.handleHome)
	e.GET("/upload", s.handleUpload)
	e.GET("/thank-you", s.handleThankYou)

	e.GET("/health", s.handleHealth)

	// API
	api := e.Group("/api")
	api.POST("/process-image", s.imageHandler.ProcessImage)
	api.POST("/save-image", s.imageHandler.SaveImage)
	api.POST("/create-checkout", s.checkoutHandler.CreateCheckout)
	api.POST("/stripe-webhook", s.webhookHandler.HandleWebhook)
}

func (s *Service) handleHome(c echo.Context) error {
	meta := layout.NewPageMeta(c, s.config.BaseURL)
	meta.Title = "Old Main | Laser Engraved Collection"
	return Render(c, home.Page(meta, stripe.UnitAmountCents))
}

func (s *Service) handleUpload(c echo.Context) error {
	meta := layout.NewPageMeta(c, s.config.BaseURL).WithTitle("Custom Engraving")
	meta.Description = "Upload a photo and preview it as a laser engraved sketch on wood."
	return Render(c, upload.Page(meta, stripe.UnitAmountCents, c.QueryParam("canceled") == "true"))
}

func (s *Service) handleThankYou(c echo.Context) error {
	meta := layout.NewPageMeta(c, s.config.BaseURL).WithTitle("Thank You")
	return Render(c, checkout.ThankYou(meta, c.QueryParam("session_id")))
}

func (s *Service) handleHealth(c echo.Context) error {
	database := "disabled"
	if s.storage != nil {
		if err := s.storage.DB().PingContext(c.Request().Context()); err != nil {
			database = "unreachable"
		} else {
			database = "connected"
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":      "healthy",
		"environment": s.config.Environment,
		"database":    database,
		"services": map[string]bool{
			"imageGeneration": s.deps.Generator != nil,
			"blobStorage":     s.deps.Store != nil,
			"checkout":        s.deps.Checkout != nil,
			"webhooks":        s.deps.Verifier != nil,
			"email":           s.deps.Notifier != nil,
			"webhookDedup":    s.deps.Ledger != nil,
		},
	})
}

// Render renders a templ component and writes it to the response
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return component.Render(c.Request().Context(), c.Response())
}
