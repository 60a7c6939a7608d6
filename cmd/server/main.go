package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	authconfig "sarawak-tourism/internal/auth/config"
	"sarawak-tourism/internal/di"
	itineraryconfig "sarawak-tourism/internal/itinerary/config"
	"sarawak-tourism/internal/shared/config"
	"sarawak-tourism/internal/shared/logger"
	"sarawak-tourism/internal/shared/metrics"
	"sarawak-tourism/internal/shared/middleware"
	"sarawak-tourism/internal/shared/response"
	tourismconfig "sarawak-tourism/internal/tourism/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

const (
	appName    = "Discover Sarawak API"
	appVersion = "1.0.0"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Log.Backend, cfg.Log.Level, cfg.Log.Format)
	if err := run(cfg, appLogger); err != nil {
		appLogger.Fatalf("Server stopped with error: %v", err)
	}
	appLogger.Info("Application stopped gracefully")
}

func run(cfg *config.Config, appLogger logger.Logger) error {
	authCfg, err := authconfig.LoadConfig()
	if err != nil {
		return err
	}
	tourismCfg, err := tourismconfig.LoadConfig()
	if err != nil {
		return err
	}
	itineraryCfg, err := itineraryconfig.LoadConfig()
	if err != nil {
		return err
	}

	collector := metrics.NewCollector()
	container := di.NewContainer(cfg, appLogger, collector)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := container.Cleanup(ctx); err != nil {
			appLogger.Errorf("Failed to release resources: %v", err)
		}
	}()

	ctx := context.Background()
	if err := container.InitializeStore(ctx); err != nil {
		return err
	}
	container.InitializeCache(ctx)
	if err := container.InitializeAuth(ctx, authCfg, nil); err != nil {
		return err
	}
	if err := container.InitializeTourism(ctx, tourismCfg); err != nil {
		return err
	}
	if err := container.InitializeItinerary(ctx, itineraryCfg, nil); err != nil {
		return err
	}
	appLogger.Info("All modules initialized")

	app := newApp(cfg, container, collector, appLogger)

	serverErr := make(chan error, 1)
	go func() {
		appLogger.WithFields(map[string]interface{}{"addr": cfg.Server.Addr()}).Info("Starting HTTP server")
		serverErr <- app.Listen(cfg.Server.Addr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-quit:
		appLogger.WithFields(map[string]interface{}{"signal": sig.String()}).Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLogger.Errorf("Server forced to shutdown: %v", err)
		}
	}
	return nil
}

func newApp(cfg *config.Config, container *di.Container, collector *metrics.Collector, appLogger logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      fmt.Sprintf("%s v%s", appName, appVersion),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return response.Error(c, err)
		},
		// c.IP() reads ProxyHeader only when the peer is a trusted proxy
		ProxyHeader:             cfg.Server.ProxyHeader,
		EnableTrustedProxyCheck: len(cfg.Server.TrustedProxies) > 0,
		TrustedProxies:          cfg.Server.TrustedProxies,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(appLogger))
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.CORS(cfg.Server.CORSAllowOrigins))
	app.Use(collector.Middleware())

	app.Get("/metrics", collector.Handler())

	api := app.Group(cfg.Server.APIPrefix)
	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": appName, "version": appVersion})
	})
	api.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()
		return c.JSON(container.Health(ctx))
	})

	container.RegisterRoutes(api)
	return app
}
