package service

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/loganlanou/laserwood/internal/blob"
	"github.com/loganlanou/laserwood/internal/email"
	"github.com/loganlanou/laserwood/internal/imagegen"
)

type Config struct {
	Environment string
	Port        string
	BaseURL     string
	LogLevel    string
	DBPath      string

	Gemini struct {
		APIKey string
		Model  string
	}

	Blob struct {
		Provider      string
		Token         string
		Bucket        string
		Region        string
		Endpoint      string
		PublicBaseURL string
		SupabaseURL   string
	}

	Stripe struct {
		SecretKey     string
		WebhookSecret string
		// FallbackOrigin builds redirect URLs when a checkout request carries no Origin header.
		FallbackOrigin string
	}

	Email struct {
		Provider string
		APIKey   string
		From     string
		Internal []string

		SMTPHost  string
		SMTPPort  int
		SMTPLogin string
		SMTPKey   string
	}

	Ledger struct {
		Dedup bool
	}
}

// LoadConfig reads the environment, after applying an optional .env file.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8000"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DBPath:      getEnv("DB_PATH", "./db/laserwood.db"),
	}

	// Gemini
	config.Gemini.APIKey = getEnv("GEMINI_API_KEY", "")
	config.Gemini.Model = getEnv("GEMINI_MODEL", imagegen.DefaultModel)

	// Blob storage
	config.Blob.Provider = getEnv("BLOB_PROVIDER", blob.ProviderS3)
	config.Blob.Token = getEnv("BLOB_READ_WRITE_TOKEN", "")
	config.Blob.Bucket = getEnv("BLOB_BUCKET", "laserwood")
	config.Blob.Region = getEnv("BLOB_REGION", "us-east-1")
	config.Blob.Endpoint = getEnv("BLOB_ENDPOINT", "")
	config.Blob.PublicBaseURL = getEnv("BLOB_PUBLIC_BASE_URL", "")
	config.Blob.SupabaseURL = getEnv("SUPABASE_URL", "")

	// Stripe
	config.Stripe.SecretKey = getEnv("STRIPE_SECRET_KEY", "")
	config.Stripe.WebhookSecret = getEnv("STRIPE_WEBHOOK_SECRET", "")
	config.Stripe.FallbackOrigin = getEnv("CHECKOUT_FALLBACK_ORIGIN", config.BaseURL)

	// Email
	config.Email.Provider = getEnv("EMAIL_PROVIDER", email.ProviderSendGrid)
	config.Email.APIKey = getEnv("EMAIL_API_KEY", "")
	config.Email.From = getEnv("EMAIL_FROM", "orders@nittanycraft.com")
	config.Email.Internal = email.ParseRecipients(getEnv("EMAIL_TO_INTERNAL", "orders@nittanycraft.com"))
	config.Email.SMTPHost = getEnv("BREVO_SMTP_HOST", "")
	config.Email.SMTPLogin = getEnv("BREVO_SMTP_LOGIN", "")
	config.Email.SMTPKey = getEnv("BREVO_SMTP_KEY", "")
	port := getEnv("BREVO_SMTP_PORT", "587")
	if p, err := strconv.Atoi(port); err == nil {
		config.Email.SMTPPort = p
	} else {
		slog.Warn("invalid BREVO_SMTP_PORT, using 587", "value", port)
		config.Email.SMTPPort = 587
	}

	// Ledger
	config.Ledger.Dedup = getEnvBool("WEBHOOK_DEDUP", true)

	return config, nil
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) BlobConfig() blob.Config {
	return blob.Config{
		Provider:      c.Blob.Provider,
		Token:         c.Blob.Token,
		Bucket:        c.Blob.Bucket,
		Region:        c.Blob.Region,
		Endpoint:      c.Blob.Endpoint,
		PublicBaseURL: c.Blob.PublicBaseURL,
		SupabaseURL:   c.Blob.SupabaseURL,
	}
}

func (c *Config) EmailConfig() email.Config {
	return email.Config{
		Provider:  c.Email.Provider,
		APIKey:    c.Email.APIKey,
		From:      c.Email.From,
		Internal:  c.Email.Internal,
		SiteURL:   c.BaseURL,
		SMTPHost:  c.Email.SMTPHost,
		SMTPPort:  c.Email.SMTPPort,
		SMTPLogin: c.Email.SMTPLogin,
		SMTPKey:   c.Email.SMTPKey,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
