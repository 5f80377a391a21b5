package service

import (
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/loganlanou/laserwood/internal/blob"
	"github.com/loganlanou/laserwood/storage"
)

// setupTestService creates a service with an in-memory database and the given collaborators
func setupTestService(t *testing.T, deps Collaborators) *Service {
	t.Helper()

	store, cleanup, err := storage.NewTestStorage()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(cleanup)

	config := &Config{
		Environment: "test",
		Port:        "8080",
		BaseURL:     "https://nittanycraft.test",
	}
	config.Stripe.FallbackOrigin = config.BaseURL

	if deps.Fetcher == nil {
		deps.Fetcher = blob.NewFetcher(nil)
	}
	if deps.Ledger == nil {
		deps.Ledger = store.WebhookLedger()
	}

	return NewWithCollaborators(store, config, deps)
}

// setupTestEcho creates an Echo instance with routes registered
func setupTestEcho(t *testing.T, deps Collaborators) (*echo.Echo, *Service) {
	t.Helper()

	e := echo.New()
	svc := setupTestService(t, deps)
	svc.RegisterRoutes(e)

	return e, svc
}
