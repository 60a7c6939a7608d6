package tourism

import (
	"context"
	"fmt"

	"sarawak-tourism/internal/shared/docstore"
	"sarawak-tourism/internal/shared/logger"
	tourismhttp "sarawak-tourism/internal/tourism/adapter/http"
	"sarawak-tourism/internal/tourism/adapter/persistence"
	"sarawak-tourism/internal/tourism/config"
	"sarawak-tourism/internal/tourism/domain/repository"
	"sarawak-tourism/internal/tourism/usecase"

	"github.com/gofiber/fiber/v2"
)

// TourismModule bundles the catalogue queries and favorites
type TourismModule struct {
	attractions repository.AttractionRepository
	events      repository.EventRepository
	holidays    repository.HolidayRepository
	catalog     usecase.CatalogUsecaseInterface
	favorites   usecase.FavoriteUsecaseInterface
	handler     *tourismhttp.TourismHTTPHandler
}

// NewTourismModule wires repositories, use cases and the HTTP handler
func NewTourismModule(ctx context.Context, store docstore.Store, cfg *config.Config, log logger.Logger) (*TourismModule, error) {
	attractions := persistence.NewAttractionRepository(store)
	events := persistence.NewEventRepository(store)
	holidays := persistence.NewHolidayRepository(store)

	favoriteRepo, err := persistence.NewFavoriteRepository(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("failed to create favorite repository: %w", err)
	}

	catalog := usecase.NewCatalogUsecase(attractions, events, persistence.NewAnalyticsRepository(store), holidays, cfg, log)
	favorites := usecase.NewFavoriteUsecase(favoriteRepo, attractions, cfg, log)

	return &TourismModule{
		attractions: attractions,
		events:      events,
		holidays:    holidays,
		catalog:     catalog,
		favorites:   favorites,
		handler:     tourismhttp.NewTourismHTTPHandler(catalog, favorites),
	}, nil
}

// RegisterRoutes registers catalogue and favorites routes
func (m *TourismModule) RegisterRoutes(router fiber.Router) {
	m.handler.SetupRoutes(router)
}

func (m *TourismModule) Attractions() repository.AttractionRepository { return m.attractions }
func (m *TourismModule) Events() repository.EventRepository           { return m.events }
func (m *TourismModule) Holidays() repository.HolidayRepository       { return m.holidays }

// GetCatalogUsecase returns the catalogue use case
func (m *TourismModule) GetCatalogUsecase() usecase.CatalogUsecaseInterface {
	return m.catalog
}

// GetFavoriteUsecase returns the favorites use case
func (m *TourismModule) GetFavoriteUsecase() usecase.FavoriteUsecaseInterface {
	return m.favorites
}

// Stop performs cleanup when the module is shut down
func (m *TourismModule) Stop() error {
	return nil
}
