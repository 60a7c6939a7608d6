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

	assert.Equal(t, "8001", cfg.Server.Port)
	assert.Equal(t, "/api", cfg.Server.APIPrefix)
	assert.Equal(t, StoreDriverMongo, cfg.Store.Driver)
	assert.Equal(t, "sarawak_tourism", cfg.Store.DatabaseName)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, "logrus", cfg.Log.Backend)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("API_PREFIX", "v1/")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("LOG_BACKEND", "ZAP")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, "/v1", cfg.Server.APIPrefix)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6380", cfg.Redis.GetAddr())
	assert.Equal(t, "zap", cfg.Log.Backend)
}

func TestLoadConfig_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "store_driver")
}

func TestLoadConfig_RejectsWildcardOrigin(t *testing.T) {
	for _, origins := range []string{"*", "http://localhost:3000, *"} {
		t.Setenv("CORS_ALLOW_ORIGINS", origins)

		_, err := LoadConfig()
		assert.ErrorContains(t, err, "cors_allow_origins", origins)
	}
}

func TestLoadConfig_ProxyHeaderNeedsTrustedProxies(t *testing.T) {
	t.Setenv("PROXY_HEADER", "X-Forwarded-For")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "trusted_proxies")

	t.Setenv("TRUSTED_PROXIES", "10.0.0.1,10.0.0.2")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.Server.TrustedProxies)
}

func TestLoadConfig_RejectsBadDuration(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestNewRedisClient(t *testing.T) {
	client := NewRedisClient(&RedisConfig{Host: "localhost", Port: "6379", Database: 2, EnableTLS: true})
	defer client.Close()

	opts := client.Options()
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 30*time.Minute, opts.ConnMaxIdleTime)
	require.NotNil(t, opts.TLSConfig)
	assert.Equal(t, "localhost", opts.TLSConfig.ServerName)
}
