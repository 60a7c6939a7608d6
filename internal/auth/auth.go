package auth

import (
	"context"
	"fmt"

	"sarawak-tourism/internal/auth/adapter/broker"
	authhttp "sarawak-tourism/internal/auth/adapter/http"
	"sarawak-tourism/internal/auth/adapter/persistence"
	"sarawak-tourism/internal/auth/config"
	"sarawak-tourism/internal/auth/domain/repository"
	"sarawak-tourism/internal/auth/usecase"
	"sarawak-tourism/internal/shared/docstore"
	"sarawak-tourism/internal/shared/logger"
	"sarawak-tourism/internal/shared/metrics"

	"github.com/gofiber/fiber/v2"
)

// AuthModule represents the complete authentication module
type AuthModule struct {
	repository repository.AuthRepository
	broker     repository.IdentityBroker
	usecase    usecase.AuthUsecaseInterface
	handler    *authhttp.AuthHTTPHandler
	middleware *authhttp.AuthMiddleware
	config     *config.Config
}

// NewAuthModule creates the module with the HTTP identity broker from cfg
func NewAuthModule(ctx context.Context, store docstore.Store, cfg *config.Config, log logger.Logger, rec metrics.Recorder) (*AuthModule, error) {
	client := broker.NewClient(cfg.BrokerURL, cfg.BrokerTimeout, log, rec)
	return NewAuthModuleWithBroker(ctx, store, client, cfg, log, rec)
}

// NewAuthModuleWithBroker creates the module around an existing identity broker
func NewAuthModuleWithBroker(
	ctx context.Context,
	store docstore.Store,
	identityBroker repository.IdentityBroker,
	cfg *config.Config,
	log logger.Logger,
	rec metrics.Recorder,
) (*AuthModule, error) {
	authRepo, err := persistence.NewAuthRepository(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth repository: %w", err)
	}

	authUsecase := usecase.NewAuthUsecase(authRepo, identityBroker, cfg, log, rec)

	return &AuthModule{
		repository: authRepo,
		broker:     identityBroker,
		usecase:    authUsecase,
		handler:    authhttp.NewAuthHTTPHandler(authUsecase, cfg),
		middleware: authhttp.NewAuthMiddleware(authUsecase, cfg.CookieName, log),
		config:     cfg,
	}, nil
}

// RegisterRoutes registers authentication routes with the provided router
func (am *AuthModule) RegisterRoutes(router fiber.Router) {
	am.handler.SetupAuthRoutesWithMiddleware(router, am.middleware)
}

// GetUsecase returns the auth usecase for external access
func (am *AuthModule) GetUsecase() usecase.AuthUsecaseInterface {
	return am.usecase
}

// GetMiddleware returns the session middleware shared by other modules
func (am *AuthModule) GetMiddleware() *authhttp.AuthMiddleware {
	return am.middleware
}

// Stop performs cleanup when the module is shut down
func (am *AuthModule) Stop() error {
	return nil
}
