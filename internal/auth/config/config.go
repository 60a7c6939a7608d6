package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds all configuration for the auth module.
type Config struct {
	// Identity broker
	BrokerURL     string        `env:"AUTH_BROKER_URL" envDefault:"http://localhost:8080/auth/v1/session-data"`
	BrokerTimeout time.Duration `env:"AUTH_BROKER_TIMEOUT" envDefault:"10s"`

	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"168h"` // 7 days

	// Requests per minute per client IP on POST /auth/session
	SessionRateLimit int `env:"AUTH_SESSION_RATE_LIMIT" envDefault:"10"`

	// Cookie Configuration
	CookieName     string `env:"COOKIE_NAME" envDefault:"session_token"`
	CookiePath     string `env:"COOKIE_PATH" envDefault:"/"`
	CookieDomain   string `env:"COOKIE_DOMAIN" envDefault:""`
	CookieSecure   bool   `env:"COOKIE_SECURE" envDefault:"true"`
	CookieHTTPOnly bool   `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	CookieSameSite string `env:"COOKIE_SAME_SITE" envDefault:"None"` // "Lax", "Strict", "None"
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to load auth configuration from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate normalises cookie settings and checks required values
func (c *Config) Validate() error {
	if c.BrokerURL == "" {
		return errors.New("auth_broker_url is required")
	}
	if c.BrokerTimeout <= 0 {
		return errors.New("auth_broker_timeout must be positive")
	}
	if c.SessionTTL <= 0 {
		return errors.New("session_ttl must be positive")
	}
	if c.SessionRateLimit <= 0 {
		c.SessionRateLimit = 10
	}

	c.CookieSameSite = normalizeSameSite(c.CookieSameSite)
	if !(c.CookieSameSite == "Lax" || c.CookieSameSite == "Strict" || c.CookieSameSite == "None") {
		return errors.New("cookie_same_site must be one of 'Lax', 'Strict', or 'None'")
	}
	// Browsers drop SameSite=None cookies that are not Secure.
	if c.CookieSameSite == "None" && !c.CookieSecure {
		return errors.New("cookie_same_site 'None' requires cookie_secure")
	}
	if c.CookieName == "" {
		c.CookieName = "session_token"
	}
	if c.CookiePath == "" {
		c.CookiePath = "/"
	}
	return nil
}

// CookieMaxAge is the cookie lifetime in seconds, matching the session lifetime
func (c *Config) CookieMaxAge() int {
	return int(c.SessionTTL.Seconds())
}

func normalizeSameSite(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return v
	}
	return strings.ToUpper(v[:1]) + v[1:]
}
