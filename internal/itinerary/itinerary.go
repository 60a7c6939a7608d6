package itinerary

import (
	"context"
	"fmt"

	itineraryhttp "sarawak-tourism/internal/itinerary/adapter/http"
	"sarawak-tourism/internal/itinerary/adapter/persistence"
	"sarawak-tourism/internal/itinerary/config"
	"sarawak-tourism/internal/itinerary/domain/repository"
	"sarawak-tourism/internal/itinerary/usecase"
	"sarawak-tourism/internal/shared/docstore"
	"sarawak-tourism/internal/shared/logger"
	"sarawak-tourism/internal/shared/metrics"

	"github.com/gofiber/fiber/v2"
)

// ItineraryModule represents the itinerary generation module
type ItineraryModule struct {
	repository repository.ItineraryRepository
	usecase    usecase.ItineraryUsecaseInterface
	handler    *itineraryhttp.ItineraryHTTPHandler
	session    fiber.Handler
}

// Dependencies are the collaborators the module does not own
type Dependencies struct {
	Store     docstore.Store
	Source    repository.ContextSource
	Completer repository.Completer
	// Session attaches the caller's identity to the request context
	Session fiber.Handler
	Logger  logger.Logger
	Metrics metrics.Recorder
}

// NewItineraryModule creates the module
func NewItineraryModule(ctx context.Context, deps Dependencies, cfg *config.Config) (*ItineraryModule, error) {
	repo, err := persistence.NewItineraryRepository(ctx, deps.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to create itinerary repository: %w", err)
	}

	uc := usecase.NewItineraryUsecase(repo, deps.Source, deps.Completer, cfg, deps.Logger, deps.Metrics)

	session := deps.Session
	if session == nil {
		session = func(c *fiber.Ctx) error { return c.Next() }
	}

	return &ItineraryModule{
		repository: repo,
		usecase:    uc,
		handler:    itineraryhttp.NewItineraryHTTPHandler(uc),
		session:    session,
	}, nil
}

// RegisterRoutes registers itinerary routes with the provided router
func (m *ItineraryModule) RegisterRoutes(router fiber.Router) {
	m.handler.SetupRoutes(router, m.session)
}

// GetUsecase returns the itinerary usecase
func (m *ItineraryModule) GetUsecase() usecase.ItineraryUsecaseInterface {
	return m.usecase
}

// Stop performs cleanup when the module is shut down
func (m *ItineraryModule) Stop() error {
	return nil
}
