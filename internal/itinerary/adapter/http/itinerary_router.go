package http

import (
	"sarawak-tourism/internal/itinerary/domain/model"
	"sarawak-tourism/internal/itinerary/usecase"
	apperrors "sarawak-tourism/internal/shared/errors"
	"sarawak-tourism/internal/shared/response"
	"sarawak-tourism/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
)

// ItineraryHTTPHandler serves itinerary generation and quota endpoints
type ItineraryHTTPHandler struct {
	usecase usecase.ItineraryUsecaseInterface
}

// NewItineraryHTTPHandler creates the handler
func NewItineraryHTTPHandler(uc usecase.ItineraryUsecaseInterface) *ItineraryHTTPHandler {
	return &ItineraryHTTPHandler{usecase: uc}
}

// SetupRoutes registers routes behind session, which attaches the caller's user id to
// the request context when a valid session is presented
func (h *ItineraryHTTPHandler) SetupRoutes(router fiber.Router, session fiber.Handler) {
	router.Post("/generate", session, h.Generate)
	router.Get("/limit", session, h.CheckLimit)
	router.Get("/user/:user_id", h.ListForUser)
}

func identity(c *fiber.Ctx) string {
	return utils.GetUserIDOrDefault(c.UserContext(), model.GuestIdentity)
}

func (h *ItineraryHTTPHandler) Generate(c *fiber.Ctx) error {
	var req usecase.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, apperrors.NewValidationError("Invalid request body"))
	}

	it, err := h.usecase.Generate(c.UserContext(), &req, identity(c))
	if err != nil {
		return response.Error(c, err)
	}
	return c.JSON(it)
}

func (h *ItineraryHTTPHandler) CheckLimit(c *fiber.Ctx) error {
	status, err := h.usecase.CheckLimit(c.UserContext(), identity(c))
	if err != nil {
		return response.Error(c, err)
	}
	return c.JSON(status)
}

func (h *ItineraryHTTPHandler) ListForUser(c *fiber.Ctx) error {
	out, err := h.usecase.ListForUser(c.UserContext(), c.Params("user_id"))
	if err != nil {
		return response.Error(c, err)
	}
	return c.JSON(out)
}
