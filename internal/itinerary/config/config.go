package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds configuration for itinerary generation
type Config struct {
	// AI provider
	APIKey      string        `env:"AI_API_KEY"`
	Model       string        `env:"AI_MODEL" envDefault:"gemini-2.0-flash"`
	Timeout     time.Duration `env:"AI_TIMEOUT" envDefault:"60s"`
	Temperature float32       `env:"AI_TEMPERATURE" envDefault:"0.7"`

	DailyLimit int `env:"ITINERARY_DAILY_LIMIT" envDefault:"5"`

	// Prompt context bounds
	MaxAttractions  int64 `env:"ITINERARY_MAX_ATTRACTIONS" envDefault:"50"`
	MaxEvents       int64 `env:"ITINERARY_MAX_EVENTS" envDefault:"20"`
	MaxHolidays     int64 `env:"ITINERARY_MAX_HOLIDAYS" envDefault:"20"`
	MaxEntryLength  int   `env:"ITINERARY_MAX_ENTRY_LENGTH" envDefault:"150"`
	HistoryMaxItems int64 `env:"ITINERARY_HISTORY_LIMIT" envDefault:"100"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to load itinerary configuration from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks limits. An empty API key is allowed so the service can start
// without generation; Generate then fails upstream.
func (c *Config) Validate() error {
	if c.DailyLimit <= 0 {
		return errors.New("itinerary_daily_limit must be positive")
	}
	if c.Timeout <= 0 {
		return errors.New("ai_timeout must be positive")
	}
	if c.MaxAttractions <= 0 || c.MaxEvents <= 0 || c.MaxHolidays <= 0 || c.HistoryMaxItems <= 0 {
		return errors.New("itinerary context limits must be positive")
	}
	if c.MaxEntryLength < 20 {
		return errors.New("itinerary_max_entry_length must be at least 20")
	}
	if c.Model == "" {
		return errors.New("ai_model is required")
	}
	return nil
}
