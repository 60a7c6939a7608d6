package http

import (
	"time"

	"sarawak-tourism/internal/auth/config"
	"sarawak-tourism/internal/auth/usecase"
	apperrors "sarawak-tourism/internal/shared/errors"
	"sarawak-tourism/internal/shared/response"

	"github.com/gofiber/fiber/v2"
)

const sessionIDHeader = "X-Session-ID"

// AuthHTTPHandler handles HTTP requests for authentication
type AuthHTTPHandler struct {
	usecase        usecase.AuthUsecaseInterface
	cookieName     string
	cookiePath     string
	cookieDomain   string
	cookieMaxAge   int
	cookieSecure   bool
	cookieHTTPOnly bool
	cookieSameSite string
	rateLimit      int
}

// NewAuthHTTPHandler creates a new authentication HTTP handler
func NewAuthHTTPHandler(uc usecase.AuthUsecaseInterface, cfg *config.Config) *AuthHTTPHandler {
	return &AuthHTTPHandler{
		usecase:        uc,
		cookieName:     cfg.CookieName,
		cookiePath:     cfg.CookiePath,
		cookieDomain:   cfg.CookieDomain,
		cookieMaxAge:   cfg.CookieMaxAge(),
		cookieSecure:   cfg.CookieSecure,
		cookieHTTPOnly: cfg.CookieHTTPOnly,
		cookieSameSite: cfg.CookieSameSite,
		rateLimit:      cfg.SessionRateLimit,
	}
}

// SetupAuthRoutesWithMiddleware sets up authentication routes with middleware
func (h *AuthHTTPHandler) SetupAuthRoutesWithMiddleware(router fiber.Router, middleware *AuthMiddleware) {
	router.Post("/session", middleware.RateLimiter(h.rateLimit), h.CreateSession)
	router.Post("/logout", h.Logout)
	router.Get("/me", middleware.Protect(), h.GetCurrentUser)
}

type createSessionRequest struct {
	SessionID string `json:"session_id"`
}

// CreateSession exchanges an external session id for a session cookie. The id is read
// from the X-Session-ID header, falling back to the JSON body.
func (h *AuthHTTPHandler) CreateSession(c *fiber.Ctx) error {
	externalID := c.Get(sessionIDHeader)
	if externalID == "" && len(c.Body()) > 0 {
		var req createSessionRequest
		if err := c.BodyParser(&req); err != nil {
			return response.Error(c, apperrors.NewValidationError("Invalid request body"))
		}
		externalID = req.SessionID
	}

	resp, err := h.usecase.CreateSession(c.UserContext(), externalID)
	if err != nil {
		return response.Error(c, err)
	}

	h.setCookie(c, resp.SessionToken)
	return c.JSON(resp)
}

// Logout deletes the presented session, if any, and clears the cookie
func (h *AuthHTTPHandler) Logout(c *fiber.Ctx) error {
	token := c.Cookies(h.cookieName)
	if token == "" {
		token = bearerToken(c)
	}

	if err := h.usecase.Logout(c.UserContext(), token); err != nil {
		return response.Error(c, err)
	}

	h.clearCookie(c)
	return response.Message(c, "Logged out successfully")
}

// GetCurrentUser returns the user resolved by Protect
func (h *AuthHTTPHandler) GetCurrentUser(c *fiber.Ctx) error {
	user, ok := GetUser(c)
	if !ok {
		return response.Error(c, apperrors.NewAuthenticationError("Not authenticated"))
	}
	return c.JSON(user)
}

func (h *AuthHTTPHandler) setCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     h.cookiePath,
		Domain:   h.cookieDomain,
		MaxAge:   h.cookieMaxAge,
		Secure:   h.cookieSecure,
		HTTPOnly: h.cookieHTTPOnly,
		SameSite: h.cookieSameSite,
		Expires:  time.Now().Add(time.Duration(h.cookieMaxAge) * time.Second),
	})
}

func (h *AuthHTTPHandler) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     h.cookiePath,
		Domain:   h.cookieDomain,
		MaxAge:   -1,
		Secure:   h.cookieSecure,
		HTTPOnly: h.cookieHTTPOnly,
		SameSite: h.cookieSameSite,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
