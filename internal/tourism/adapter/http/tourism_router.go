package http

import (
	"strconv"
	"time"

	apperrors "sarawak-tourism/internal/shared/errors"
	"sarawak-tourism/internal/shared/response"
	"sarawak-tourism/internal/shared/validation"
	"sarawak-tourism/internal/tourism/usecase"

	"github.com/gofiber/fiber/v2"
)

// TourismHTTPHandler serves catalogue and favorites endpoints
type TourismHTTPHandler struct {
	catalog   usecase.CatalogUsecaseInterface
	favorites usecase.FavoriteUsecaseInterface
}

// NewTourismHTTPHandler creates the handler
func NewTourismHTTPHandler(catalog usecase.CatalogUsecaseInterface, favorites usecase.FavoriteUsecaseInterface) *TourismHTTPHandler {
	return &TourismHTTPHandler{catalog: catalog, favorites: favorites}
}

// SetupRoutes registers the catalogue and favorites routes on router
func (h *TourismHTTPHandler) SetupRoutes(router fiber.Router) {
	router.Get("/attractions", h.ListAttractions)
	router.Get("/attractions/:id", h.GetAttraction)
	router.Get("/events", h.ListEvents)
	router.Get("/events/:id", h.GetEvent)
	router.Get("/analytics", h.ListAnalytics)
	router.Get("/holidays", h.ListHolidays)

	router.Post("/favorites", h.AddFavorite)
	router.Get("/favorites/:user_id", h.ListFavorites)
	router.Delete("/favorites/:user_id/:attraction_id", h.RemoveFavorite)
}

func (h *TourismHTTPHandler) ListAttractions(c *fiber.Ctx) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return response.Error(c, err)
	}

	out, err := h.catalog.ListAttractions(c.UserContext(), usecase.AttractionQuery{
		Category: c.Query("category"),
		Location: c.Query("location"),
		Limit:    int64(limit),
	})
	if err != nil {
		return response.Error(c, err)
	}
	return c.JSON(out)
}

func (h *TourismHTTPHandler) GetAttraction(c *fiber.Ctx) error {
	out, err := h.catalog.GetAttraction(c.UserContext(), c.Params("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return c.JSON(out)
}

func (h *TourismHTTPHandler) ListEvents(c *fiber.Ctx) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return response.Error(c, err)
	}
	start, err := queryTime(c, "start_date")
	if err != nil {
		return response.Error(c, err)
	}
	end, err := queryTime(c, "end_date")
	if err != nil {
		return response.Error(c, err)
	}

	out, err := h.catalog.ListEvents(c.UserContext(), usecase.EventQuery{
		Category:  c.Query("category"),
		StartDate: start,
		EndDate:   end,
		Limit:     int64(limit),
	})
	if err != nil {
		return response.Error(c, err)
	}
	return c.JSON(out)
}

func (h *TourismHTTPHandler) GetEvent(c *fiber.Ctx) error {
	out, err := h.catalog.GetEvent(c.UserContext(), c.Params("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return c.JSON(out)
}

func (h *TourismHTTPHandler) ListAnalytics(c *fiber.Ctx) error {
	year, err := queryInt(c, "year")
	if err != nil {
		return response.Error(c, err)
	}
	month, err := queryInt(c, "month")
	if err != nil {
		return response.Error(c, err)
	}

	out, err := h.catalog.ListAnalytics(c.UserContext(), usecase.AnalyticsQuery{
		Year:        year,
		Month:       month,
		Country:     c.Query("country"),
		VisitorType: c.Query("visitor_type"),
	})
	if err != nil {
		return response.Error(c, err)
	}
	return c.JSON(out)
}

func (h *TourismHTTPHandler) ListHolidays(c *fiber.Ctx) error {
	year, err := queryInt(c, "year")
	if err != nil {
		return response.Error(c, err)
	}

	out, err := h.catalog.ListHolidays(c.UserContext(), usecase.HolidayQuery{Year: year})
	if err != nil {
		return response.Error(c, err)
	}
	return c.JSON(out)
}

type addFavoriteRequest struct {
	UserID       string `json:"user_id" validate:"required"`
	AttractionID string `json:"attraction_id" validate:"required"`
}

func (h *TourismHTTPHandler) AddFavorite(c *fiber.Ctx) error {
	var req addFavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, apperrors.NewValidationError("Invalid request body"))
	}
	if err := validation.Struct(req); err != nil {
		return response.Error(c, err)
	}

	fav, err := h.favorites.Add(c.UserContext(), req.UserID, req.AttractionID)
	if err != nil {
		return response.Error(c, err)
	}
	return c.JSON(fav)
}

func (h *TourismHTTPHandler) ListFavorites(c *fiber.Ctx) error {
	out, err := h.favorites.ListForUser(c.UserContext(), c.Params("user_id"))
	if err != nil {
		return response.Error(c, err)
	}
	return c.JSON(out)
}

func (h *TourismHTTPHandler) RemoveFavorite(c *fiber.Ctx) error {
	if err := h.favorites.Remove(c.UserContext(), c.Params("user_id"), c.Params("attraction_id")); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, "Favorite removed successfully")
}

// queryInt parses an optional integer query parameter; absent means zero
func queryInt(c *fiber.Ctx, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError(name + " must be an integer").WithDetail("field", name)
	}
	return v, nil
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"}

// queryTime parses an optional date or datetime query parameter. Values without a zone
// are UTC.
func queryTime(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, apperrors.NewValidationError(name + " must be a date (YYYY-MM-DD) or RFC 3339 datetime").
		WithDetail("field", name)
}
