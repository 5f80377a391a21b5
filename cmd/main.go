package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	appmiddleware "github.com/loganlanou/laserwood/internal/middleware"
	"github.com/loganlanou/laserwood/service"
	"github.com/loganlanou/laserwood/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	config, err := service.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	configureLogging(config.SlogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The database only backs the webhook ledger.
	var db *storage.Storage
	if config.Ledger.Dedup {
		db, err = storage.New(config.DBPath)
		if err != nil {
			slog.Error("failed to initialize database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	// Checkout requests carry both images base64 encoded.
	e.Use(middleware.BodyLimit("30M"))

	e.Use(appmiddleware.RequestLogger(slog.Default()))
	e.Use(appmiddleware.SecurityHeaders())

	e.Static("/public", "public")

	svc := service.New(ctx, db, config)
	defer svc.Close()
	svc.RegisterRoutes(e)

	addr := fmt.Sprintf(":%s", config.Port)
	slog.Info("Nittany Craft starting",
		"url", fmt.Sprintf("http://localhost:%s", config.Port),
		"environment", config.Environment,
		"gemini_model", config.Gemini.Model,
		"blob_provider", config.Blob.Provider,
		"webhook_dedup", config.Ledger.Dedup,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
		}
	}
}
