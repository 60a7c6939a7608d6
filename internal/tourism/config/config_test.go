package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("EVENTS_DEFAULT_LIMIT", "50")
	t.Setenv("HOLIDAYS_MAX_RESULTS", "10")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, int64(50), cfg.EventsDefaultLimit)
	assert.Equal(t, int64(10), cfg.HolidaysMaxResults)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AnalyticsMaxResults = 0
	assert.EqualError(t, cfg.Validate(), "analytics_max_results must be positive")

	cfg = DefaultConfig()
	cfg.EventsDefaultLimit = 2000
	assert.Error(t, cfg.Validate())
}
