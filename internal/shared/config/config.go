package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// Store drivers
const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

// Config holds process-wide configuration shared by all modules.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Redis  RedisConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host             string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port             string        `env:"SERVER_PORT" envDefault:"8001"`
	APIPrefix        string        `env:"API_PREFIX" envDefault:"/api"`
	CORSAllowOrigins string        `env:"CORS_ALLOW_ORIGINS" envDefault:"http://localhost:3000"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
	// ProxyHeader is read for the client IP only when the peer is one of TrustedProxies.
	ProxyHeader    string   `env:"PROXY_HEADER" envDefault:""`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// Addr returns host:port for Listen
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// StoreConfig selects and configures the document store
type StoreConfig struct {
	Driver         string        `env:"STORE_DRIVER" envDefault:"mongo"`
	MongoURL       string        `env:"MONGO_URL" envDefault:"mongodb://localhost:27017"`
	DatabaseName   string        `env:"DB_NAME" envDefault:"sarawak_tourism"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"30s"`
}

// RedisConfig holds Redis connection settings for the read-through cache.
type RedisConfig struct {
	Enabled         bool          `env:"REDIS_ENABLED" envDefault:"false"`
	Host            string        `env:"REDIS_HOST" envDefault:"localhost"`
	Port            string        `env:"REDIS_PORT" envDefault:"6379"`
	Password        string        `env:"REDIS_PASSWORD" envDefault:""`
	Database        int           `env:"REDIS_DB" envDefault:"0"`
	MaxRetries      int           `env:"REDIS_MAX_RETRIES" envDefault:"3"`
	PoolSize        int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns    int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	EnableTLS       bool          `env:"REDIS_TLS" envDefault:"false"`
	ConnMaxIdleTime time.Duration `env:"REDIS_CONN_MAX_IDLE_TIME" envDefault:"30m"`
	ConnMaxLifetime time.Duration `env:"REDIS_CONN_MAX_LIFETIME" envDefault:"1h"`
	CacheTTL        time.Duration `env:"CACHE_TTL" envDefault:"5m"`
}

// GetAddr returns the Redis address
func (c RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// LogConfig selects the logging backend
type LogConfig struct {
	Level   string `env:"LOG_LEVEL" envDefault:"info"`
	Format  string `env:"LOG_FORMAT" envDefault:"text"`
	Backend string `env:"LOG_BACKEND" envDefault:"logrus"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration from environment: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	if c.Store.Driver != StoreDriverMongo && c.Store.Driver != StoreDriverMemory {
		return fmt.Errorf("store_driver must be one of '%s' or '%s'", StoreDriverMongo, StoreDriverMemory)
	}
	if c.Store.Driver == StoreDriverMongo && c.Store.MongoURL == "" {
		return errors.New("mongo_url is required when store_driver is mongo")
	}
	if c.Store.DatabaseName == "" {
		return errors.New("db_name is required")
	}

	if !strings.HasPrefix(c.Server.APIPrefix, "/") {
		c.Server.APIPrefix = "/" + c.Server.APIPrefix
	}
	c.Server.APIPrefix = strings.TrimRight(c.Server.APIPrefix, "/")
	for _, origin := range strings.Split(c.Server.CORSAllowOrigins, ",") {
		if strings.TrimSpace(origin) == "*" {
			return errors.New("cors_allow_origins must list explicit origins when credentials are enabled")
		}
	}
	if c.Server.ProxyHeader != "" && len(c.Server.TrustedProxies) == 0 {
		return errors.New("trusted_proxies is required when proxy_header is set")
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 15 * time.Second
	}

	if c.Redis.CacheTTL <= 0 {
		c.Redis.CacheTTL = 5 * time.Minute
	}

	c.Log.Backend = strings.ToLower(c.Log.Backend)
	c.Log.Format = strings.ToLower(c.Log.Format)
	return nil
}
