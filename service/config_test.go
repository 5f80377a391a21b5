package service

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENVIRONMENT", "BASE_URL", "GEMINI_API_KEY", "GEMINI_MODEL", "BLOB_PROVIDER",
		"BLOB_BUCKET", "CHECKOUT_FALLBACK_ORIGIN", "EMAIL_PROVIDER", "EMAIL_TO_INTERNAL",
		"BREVO_SMTP_PORT", "DB_PATH", "WEBHOOK_DEDUP", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", config.Port)
	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "gemini-2.5-flash-image", config.Gemini.Model)
	assert.Equal(t, "s3", config.Blob.Provider)
	assert.Equal(t, "laserwood", config.Blob.Bucket)
	assert.Equal(t, "http://localhost:8000", config.Stripe.FallbackOrigin)
	assert.Equal(t, "sendgrid", config.Email.Provider)
	assert.Equal(t, []string{"orders@nittanycraft.com"}, config.Email.Internal)
	assert.Equal(t, 587, config.Email.SMTPPort)
	assert.Equal(t, "./db/laserwood.db", config.DBPath)
	assert.True(t, config.Ledger.Dedup)
	assert.Equal(t, slog.LevelInfo, config.SlogLevel())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("BASE_URL", "https://nittanycraft.com")
	t.Setenv("CHECKOUT_FALLBACK_ORIGIN", "")
	t.Setenv("EMAIL_TO_INTERNAL", "a@example.com, b@example.com")
	t.Setenv("BREVO_SMTP_PORT", "2525")
	t.Setenv("WEBHOOK_DEDUP", "false")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("BLOB_PROVIDER", "supabase")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://nittanycraft.com", config.Stripe.FallbackOrigin)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, config.Email.Internal)
	assert.Equal(t, 2525, config.Email.SMTPPort)
	assert.False(t, config.Ledger.Dedup)
	assert.Equal(t, slog.LevelDebug, config.SlogLevel())

	blobCfg := config.BlobConfig()
	assert.Equal(t, "supabase", blobCfg.Provider)

	emailCfg := config.EmailConfig()
	assert.Equal(t, "https://nittanycraft.com", emailCfg.SiteURL)
	assert.Equal(t, 2525, emailCfg.SMTPPort)
}

func TestNew_WithoutCredentials(t *testing.T) {
	config := &Config{Environment: "test", BaseURL: "http://localhost:8000"}
	config.Email.Provider = "sendgrid"
	config.Blob.Provider = "s3"

	svc := New(t.Context(), nil, config)
	t.Cleanup(func() { _ = svc.Close() })

	assert.Nil(t, svc.deps.Generator)
	assert.Nil(t, svc.deps.Store)
	assert.Nil(t, svc.deps.Checkout)
	assert.Nil(t, svc.deps.Verifier)
	assert.Nil(t, svc.deps.Notifier)
	assert.Nil(t, svc.deps.Ledger)
	assert.NotNil(t, svc.deps.Fetcher)
}

func TestNew_StripeWithoutWebhookSecret(t *testing.T) {
	config := &Config{Environment: "test"}
	config.Stripe.SecretKey = "sk_test_dummy"

	svc := New(t.Context(), nil, config)

	assert.NotNil(t, svc.deps.Checkout)
	assert.Nil(t, svc.deps.Verifier)
}
