package di

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"sarawak-tourism/internal/auth"
	authconfig "sarawak-tourism/internal/auth/config"
	authrepo "sarawak-tourism/internal/auth/domain/repository"
	"sarawak-tourism/internal/itinerary"
	"sarawak-tourism/internal/itinerary/adapter/ai"
	"sarawak-tourism/internal/itinerary/adapter/catalog"
	itineraryconfig "sarawak-tourism/internal/itinerary/config"
	itineraryrepo "sarawak-tourism/internal/itinerary/domain/repository"
	"sarawak-tourism/internal/shared/cache"
	"sarawak-tourism/internal/shared/config"
	"sarawak-tourism/internal/shared/docstore"
	"sarawak-tourism/internal/shared/logger"
	"sarawak-tourism/internal/shared/metrics"
	"sarawak-tourism/internal/tourism"
	tourismconfig "sarawak-tourism/internal/tourism/config"

	"github.com/gofiber/fiber/v2"
)

// Container owns the shared infrastructure and the domain modules built on it
type Container struct {
	mu sync.RWMutex

	Config  *config.Config
	Logger  logger.Logger
	Metrics metrics.Recorder

	// Infrastructure
	Store docstore.Store
	Cache cache.Cache

	// Module instances
	AuthModule      *auth.AuthModule
	TourismModule   *tourism.TourismModule
	ItineraryModule *itinerary.ItineraryModule
}

// NewContainer creates an empty container
func NewContainer(cfg *config.Config, log logger.Logger, rec metrics.Recorder) *Container {
	if rec == nil {
		rec = metrics.NewNoop()
	}
	return &Container{
		Config:  cfg,
		Logger:  log.WithComponent("container"),
		Metrics: rec,
	}
}

// InitializeStore connects the document store selected by STORE_DRIVER
func (c *Container) InitializeStore(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.Config.Store.Driver {
	case config.StoreDriverMemory:
		c.Store = docstore.NewMemoryStore()
		c.Logger.Warn("Using in-memory document store; data is lost on restart")
	case config.StoreDriverMongo:
		connectCtx, cancel := context.WithTimeout(ctx, c.Config.Store.ConnectTimeout)
		defer cancel()
		store, err := docstore.Connect(connectCtx, c.Config.Store.MongoURL, c.Config.Store.DatabaseName)
		if err != nil {
			return fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		c.Store = store
		c.Logger.WithFields(map[string]interface{}{"database": c.Config.Store.DatabaseName}).
			Info("MongoDB connection established")
	default:
		return fmt.Errorf("unknown store driver %q", c.Config.Store.Driver)
	}
	return nil
}

// UseStore installs an existing store instead of connecting one
func (c *Container) UseStore(store docstore.Store) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Store = store
}

// InitializeCache connects Redis when enabled. An unreachable Redis is logged and
// replaced by a disabled cache; it never prevents start-up.
func (c *Container) InitializeCache(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.Config.Redis.Enabled {
		c.Cache = cache.NewNoop()
		return
	}

	client := config.NewRedisClient(&c.Config.Redis)
	redisCache := cache.NewRedisCache(client, "sarawak:", c.Logger)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisCache.Ping(pingCtx); err != nil {
		c.Logger.WithFields(map[string]interface{}{
			"addr":  c.Config.Redis.GetAddr(),
			"error": err.Error(),
		}).Warn("Redis unavailable, caching disabled")
		_ = redisCache.Close()
		c.Cache = cache.NewNoop()
		return
	}

	c.Cache = redisCache
	c.Logger.WithFields(map[string]interface{}{"addr": c.Config.Redis.GetAddr()}).Info("Redis cache connected")
}

// InitializeAuth initializes the authentication module with the HTTP identity broker.
// A non-nil broker replaces it.
func (c *Container) InitializeAuth(ctx context.Context, cfg *authconfig.Config, broker authrepo.IdentityBroker) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Store == nil {
		return errors.New("store must be initialized before auth module")
	}

	var (
		module *auth.AuthModule
		err    error
	)
	if broker != nil {
		module, err = auth.NewAuthModuleWithBroker(ctx, c.Store, broker, cfg, c.Logger, c.Metrics)
	} else {
		module, err = auth.NewAuthModule(ctx, c.Store, cfg, c.Logger, c.Metrics)
	}
	if err != nil {
		return fmt.Errorf("failed to create auth module: %w", err)
	}
	c.AuthModule = module
	return nil
}

// InitializeTourism initializes the catalogue and favorites module
func (c *Container) InitializeTourism(ctx context.Context, cfg *tourismconfig.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Store == nil {
		return errors.New("store must be initialized before tourism module")
	}

	module, err := tourism.NewTourismModule(ctx, c.Store, cfg, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create tourism module: %w", err)
	}
	c.TourismModule = module
	return nil
}

// InitializeItinerary initializes itinerary generation. When completer is nil, a
// Gemini completer is built from cfg, or an always-failing one if no API key is set.
func (c *Container) InitializeItinerary(ctx context.Context, cfg *itineraryconfig.Config, completer itineraryrepo.Completer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.AuthModule == nil || c.TourismModule == nil {
		return errors.New("auth and tourism modules must be initialized before itinerary module")
	}
	if c.Cache == nil {
		c.Cache = cache.NewNoop()
	}

	if completer == nil {
		if cfg.APIKey == "" {
			c.Logger.Warn("AI_API_KEY not set, itinerary generation is unavailable")
			completer = ai.Unavailable{}
		} else {
			client, err := ai.NewGeminiClient(ctx, cfg.APIKey)
			if err != nil {
				return fmt.Errorf("failed to create AI client: %w", err)
			}
			completer = ai.NewGeminiCompleter(client.Models, cfg.Model, cfg.Temperature, cfg.Timeout, c.Logger)
		}
	}

	source := catalog.NewSource(
		c.TourismModule.Attractions(),
		c.TourismModule.Events(),
		c.TourismModule.Holidays(),
		c.Cache,
		c.Config.Redis.CacheTTL,
	)

	module, err := itinerary.NewItineraryModule(ctx, itinerary.Dependencies{
		Store:     c.Store,
		Source:    source,
		Completer: completer,
		Session:   c.AuthModule.GetMiddleware().OptionalAuth(),
		Logger:    c.Logger,
		Metrics:   c.Metrics,
	}, cfg)
	if err != nil {
		return fmt.Errorf("failed to create itinerary module: %w", err)
	}
	c.ItineraryModule = module
	return nil
}

// RegisterRoutes mounts every initialized module under router
func (c *Container) RegisterRoutes(router fiber.Router) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.AuthModule != nil {
		c.AuthModule.RegisterRoutes(router.Group("/auth"))
	}
	if c.TourismModule != nil {
		c.TourismModule.RegisterRoutes(router)
	}
	if c.ItineraryModule != nil {
		c.ItineraryModule.RegisterRoutes(router.Group("/itinerary"))
	}
}

// HealthReport is the body of the health endpoint
type HealthReport struct {
	Status      string           `json:"status"`
	Database    string           `json:"database,omitempty"`
	Collections map[string]int64 `json:"collections,omitempty"`
	Cache       string           `json:"cache,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// Health pings the store and counts the main collections. It never returns an error;
// failures are reported in the body.
func (c *Container) Health(ctx context.Context) HealthReport {
	c.mu.RLock()
	defer c.mu.RUnlock()

	unhealthy := func(err error) HealthReport {
		return HealthReport{Status: "unhealthy", Error: err.Error()}
	}

	if c.Store == nil || c.TourismModule == nil {
		return unhealthy(errors.New("service is not initialized"))
	}
	if err := c.Store.Ping(ctx); err != nil {
		return unhealthy(err)
	}

	attractions, err := c.TourismModule.Attractions().Count(ctx)
	if err != nil {
		return unhealthy(err)
	}
	events, err := c.TourismModule.Events().Count(ctx)
	if err != nil {
		return unhealthy(err)
	}

	report := HealthReport{
		Status:   "healthy",
		Database: "connected",
		Collections: map[string]int64{
			"attractions": attractions,
			"events":      events,
		},
	}
	if c.Config.Redis.Enabled {
		report.Cache = "connected"
		if _, isNoop := c.Cache.(cache.Noop); isNoop {
			report.Cache = "disabled"
		} else if err := c.Cache.Ping(ctx); err != nil {
			report.Cache = "unreachable"
		}
	}
	return report
}

// Cleanup stops modules in reverse order of initialization, then closes the cache
// and the store
func (c *Container) Cleanup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error

	if c.ItineraryModule != nil {
		errs = append(errs, c.ItineraryModule.Stop())
		c.ItineraryModule = nil
	}
	if c.TourismModule != nil {
		errs = append(errs, c.TourismModule.Stop())
		c.TourismModule = nil
	}
	if c.AuthModule != nil {
		errs = append(errs, c.AuthModule.Stop())
		c.AuthModule = nil
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close cache: %w", err))
		}
		c.Cache = nil
	}
	if c.Store != nil {
		if err := c.Store.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to close store: %w", err))
		}
		c.Store = nil
	}

	return errors.Join(errs...)
}
