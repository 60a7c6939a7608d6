package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Config holds result limits for the catalogue and favorites endpoints
type Config struct {
	AttractionsDefaultLimit int64 `env:"ATTRACTIONS_DEFAULT_LIMIT" envDefault:"1000"`
	AttractionsMaxLimit     int64 `env:"ATTRACTIONS_MAX_LIMIT" envDefault:"1000"`
	EventsDefaultLimit      int64 `env:"EVENTS_DEFAULT_LIMIT" envDefault:"100"`
	EventsMaxLimit          int64 `env:"EVENTS_MAX_LIMIT" envDefault:"1000"`
	AnalyticsMaxResults     int64 `env:"ANALYTICS_MAX_RESULTS" envDefault:"10000"`
	HolidaysMaxResults      int64 `env:"HOLIDAYS_MAX_RESULTS" envDefault:"100"`
	FavoritesMaxResults     int64 `env:"FAVORITES_MAX_RESULTS" envDefault:"1000"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to load tourism configuration from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the built-in limits
func DefaultConfig() *Config {
	return &Config{
		AttractionsDefaultLimit: 1000,
		AttractionsMaxLimit:     1000,
		EventsDefaultLimit:      100,
		EventsMaxLimit:          1000,
		AnalyticsMaxResults:     10000,
		HolidaysMaxResults:      100,
		FavoritesMaxResults:     1000,
	}
}

// Validate checks that every limit is positive and defaults do not exceed maxima
func (c *Config) Validate() error {
	for name, v := range map[string]int64{
		"attractions_default_limit": c.AttractionsDefaultLimit,
		"attractions_max_limit":     c.AttractionsMaxLimit,
		"events_default_limit":      c.EventsDefaultLimit,
		"events_max_limit":          c.EventsMaxLimit,
		"analytics_max_results":     c.AnalyticsMaxResults,
		"holidays_max_results":      c.HolidaysMaxResults,
		"favorites_max_results":     c.FavoritesMaxResults,
	} {
		if v <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	if c.AttractionsDefaultLimit > c.AttractionsMaxLimit {
		return errors.New("attractions_default_limit exceeds attractions_max_limit")
	}
	if c.EventsDefaultLimit > c.EventsMaxLimit {
		return errors.New("events_default_limit exceeds events_max_limit")
	}
	return nil
}
