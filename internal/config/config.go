package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contains runtime configuration values.
type Config struct {
	Environment string
	HTTPPort    string
	ServiceName string

	DatabaseURL string
	RedisURL    string

	PinterestClientID     string
	PinterestClientSecret string
	PinterestRedirectURI  string
	PinterestAuthorizeURL string
	PinterestTokenURL     string
	PinterestIdentityURL  string

	AppOrigin      string
	FrontendOrigin string
	CookieDomain   string

	SessionSecret string
	SessionTTL    time.Duration
	StateTTL      time.Duration

	ProviderTimeout time.Duration

	TelemetryEndpoint string
	TelemetryInsecure bool
}

// Load reads configuration from environment variables. Only the user store
// location is required up front; provider credentials and the signing secret
// are validated by the endpoints that need them so a misconfigured deployment
// answers 500 instead of refusing to boot.
func Load() (Config, error) {
	cfg := Config{
		Environment: getEnv("APP_ENV", "development"),
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		ServiceName: getEnv("SERVICE_NAME", "pinterest-ranker-auth"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		PinterestClientID:     os.Getenv("PINTEREST_CLIENT_ID"),
		PinterestClientSecret: os.Getenv("PINTEREST_CLIENT_SECRET"),
		PinterestRedirectURI:  os.Getenv("PINTEREST_REDIRECT_URI"),
		PinterestAuthorizeURL: getEnv("PINTEREST_AUTHORIZE_URL", "https://www.pinterest.com/oauth/"),
		PinterestTokenURL:     getEnv("PINTEREST_TOKEN_URL", "https://api.pinterest.com/v5/oauth/token"),
		PinterestIdentityURL:  getEnv("PINTEREST_IDENTITY_URL", "https://api.pinterest.com/v5/user_account"),

		AppOrigin:      os.Getenv("APP_ORIGIN"),
		FrontendOrigin: os.Getenv("FRONTEND_ORIGIN"),
		CookieDomain:   os.Getenv("COOKIE_DOMAIN"),

		SessionSecret: os.Getenv("JWT_SECRET"),
		SessionTTL:    getDuration("SESSION_TTL", 7*24*time.Hour),
		StateTTL:      getDuration("OAUTH_STATE_TTL", 10*time.Minute),

		ProviderTimeout: getDuration("PROVIDER_TIMEOUT", 10*time.Second),

		TelemetryEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		TelemetryInsecure: getBool("OTEL_EXPORTER_OTLP_INSECURE", true),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

// OAuthReady reports whether the provider credentials needed by the login
// endpoints are present.
func (c Config) OAuthReady() bool {
	return c.PinterestClientID != "" &&
		c.PinterestClientSecret != "" &&
		c.PinterestRedirectURI != "" &&
		c.AppOrigin != ""
}

// SessionReady reports whether session issuance/verification can work.
func (c Config) SessionReady() bool {
	return c.SessionSecret != ""
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(v) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}
