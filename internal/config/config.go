package config

import (
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIURL               string
	WebAddr              string
	HTTPTimeout          time.Duration
	ProductRedirectDelay time.Duration
	OrderResetDelay      time.Duration
	WorkspaceTTL         time.Duration
	SecureCookie         bool
	CredentialsDSN       string
	CredentialsFile      string
	LogLevel             slog.Level
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[config] %s=%q is not a positive duration, using %s", k, v, def)
		return def
	}
	return d
}

func getbool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		log.Printf("[config] %s=%q is not a boolean, using %t", k, v, def)
		return def
	}
	return b
}

func getlevel(k string, def slog.Level) slog.Level {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
		log.Printf("[config] %s=%q is not a log level, using %s", k, v, def)
		return def
	}
	return l
}

func Load() Config {
	_ = godotenv.Load() // load .env if it exists
	cfg := Config{
		APIURL:               strings.TrimRight(getenv("STOREFRONT_API_URL", "http://localhost:5000"), "/"),
		WebAddr:              getenv("STOREFRONT_WEB_ADDR", ":8080"),
		HTTPTimeout:          getduration("STOREFRONT_HTTP_TIMEOUT", 10*time.Second),
		ProductRedirectDelay: getduration("STOREFRONT_PRODUCT_REDIRECT_DELAY", 1500*time.Millisecond),
		OrderResetDelay:      getduration("STOREFRONT_ORDER_RESET_DELAY", 2*time.Second),
		WorkspaceTTL:         getduration("STOREFRONT_WORKSPACE_TTL", 30*time.Minute),
		SecureCookie:         getbool("STOREFRONT_SECURE_COOKIE", false),
		CredentialsDSN:       getenv("STOREFRONT_CREDENTIALS_DSN", ""),
		CredentialsFile:      getenv("STOREFRONT_CREDENTIALS_FILE", ""),
		LogLevel:             getlevel("STOREFRONT_LOG_LEVEL", slog.LevelInfo),
	}
	log.Printf("[config] STOREFRONT_API_URL=%s", cfg.APIURL)
	log.Printf("[config] STOREFRONT_WEB_ADDR=%s", cfg.WebAddr)
	log.Printf("[config] STOREFRONT_HTTP_TIMEOUT=%s", cfg.HTTPTimeout)
	log.Printf("[config] STOREFRONT_SECURE_COOKIE=%t", cfg.SecureCookie)
	log.Printf("[config] credential store=%s", cfg.credentialStore())
	return cfg
}

// credentialStore names the store in use without printing the DSN.
func (c Config) credentialStore() string {
	switch {
	case c.CredentialsDSN != "":
		return "postgres"
	case c.CredentialsFile != "":
		return "file:" + c.CredentialsFile
	}
	return "default"
}
