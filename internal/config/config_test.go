package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/ranker")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.HTTPPort)
	require.Equal(t, "https://api.pinterest.com/v5/oauth/token", cfg.PinterestTokenURL)
	require.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	require.Equal(t, 10*time.Minute, cfg.StateTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/ranker")
	t.Setenv("SESSION_TTL", "24h")
	t.Setenv("OAUTH_STATE_TTL", "5m")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.HTTPPort)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, 5*time.Minute, cfg.StateTTL)
}

func TestOAuthReady(t *testing.T) {
	cfg := Config{
		PinterestClientID:     "id",
		PinterestClientSecret: "secret",
		PinterestRedirectURI:  "https://app.example.com/auth/pinterest/callback",
		AppOrigin:             "https://app.example.com",
	}
	require.True(t, cfg.OAuthReady())

	cfg.PinterestClientSecret = ""
	require.False(t, cfg.OAuthReady())
}

func TestSessionReady(t *testing.T) {
	require.False(t, Config{}.SessionReady())
	require.True(t, Config{SessionSecret: "s"}.SessionReady())
}
