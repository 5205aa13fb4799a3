package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"STOREFRONT_API_URL", "STOREFRONT_WEB_ADDR", "STOREFRONT_HTTP_TIMEOUT",
		"STOREFRONT_PRODUCT_REDIRECT_DELAY", "STOREFRONT_ORDER_RESET_DELAY",
		"STOREFRONT_WORKSPACE_TTL", "STOREFRONT_CREDENTIALS_DSN",
		"STOREFRONT_CREDENTIALS_FILE", "STOREFRONT_LOG_LEVEL", "STOREFRONT_SECURE_COOKIE",
	} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, "http://localhost:5000", cfg.APIURL)
	assert.Equal(t, ":8080", cfg.WebAddr)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.ProductRedirectDelay)
	assert.Equal(t, 2*time.Second, cfg.OrderResetDelay)
	assert.Equal(t, 30*time.Minute, cfg.WorkspaceTTL)
	assert.Empty(t, cfg.CredentialsDSN)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.SecureCookie)
}

func TestLoadSecureCookie(t *testing.T) {
	t.Setenv("STOREFRONT_SECURE_COOKIE", "true")
	assert.True(t, Load().SecureCookie)

	t.Setenv("STOREFRONT_SECURE_COOKIE", "maybe")
	assert.False(t, Load().SecureCookie)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STOREFRONT_API_URL", "https://api.shop.example/")
	t.Setenv("STOREFRONT_ORDER_RESET_DELAY", "500ms")
	t.Setenv("STOREFRONT_HTTP_TIMEOUT", "soon")
	t.Setenv("STOREFRONT_LOG_LEVEL", "debug")
	t.Setenv("STOREFRONT_CREDENTIALS_DSN", "postgres://u:p@db/sf")

	cfg := Load()
	assert.Equal(t, "https://api.shop.example", cfg.APIURL)
	assert.Equal(t, 500*time.Millisecond, cfg.OrderResetDelay)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "postgres", cfg.credentialStore())
}
