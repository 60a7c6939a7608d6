package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.BrokerTimeout)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 604800, cfg.CookieMaxAge())
	assert.Equal(t, "session_token", cfg.CookieName)
	assert.Equal(t, "/", cfg.CookiePath)
	assert.True(t, cfg.CookieSecure)
	assert.True(t, cfg.CookieHTTPOnly)
	assert.Equal(t, "None", cfg.CookieSameSite)
	assert.Equal(t, 10, cfg.SessionRateLimit)
}

func TestLoadConfig_NormalisesSameSite(t *testing.T) {
	t.Setenv("COOKIE_SAME_SITE", "strict")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "Strict", cfg.CookieSameSite)
}

func TestLoadConfig_RejectsInsecureSameSiteNone(t *testing.T) {
	t.Setenv("COOKIE_SECURE", "false")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "requires cookie_secure")
}

func TestLoadConfig_RejectsUnknownSameSite(t *testing.T) {
	t.Setenv("COOKIE_SAME_SITE", "sometimes")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "cookie_same_site")
}

func TestValidate_RequiresPositiveTTL(t *testing.T) {
	cfg := &Config{BrokerURL: "http://broker", BrokerTimeout: time.Second, CookieSameSite: "Lax"}
	assert.ErrorContains(t, cfg.Validate(), "session_ttl")
}
