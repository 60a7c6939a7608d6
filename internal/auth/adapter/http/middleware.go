package http

import (
	"strings"
	"time"

	"sarawak-tourism/internal/auth/domain/model"
	"sarawak-tourism/internal/auth/usecase"
	apperrors "sarawak-tourism/internal/shared/errors"
	"sarawak-tourism/internal/shared/logger"
	"sarawak-tourism/internal/shared/response"
	"sarawak-tourism/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Locals keys set by the session middleware
const (
	localsUser   = "user"
	localsUserID = "user_id"
)

// AuthMiddleware resolves session tokens for every session-bound route
type AuthMiddleware struct {
	usecase    usecase.AuthUsecaseInterface
	cookieName string
	logger     logger.Logger
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(uc usecase.AuthUsecaseInterface, cookieName string, log logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		usecase:    uc,
		cookieName: cookieName,
		logger:     log.WithComponent("auth_middleware"),
	}
}

// RateLimiter limits requests per client IP to maxPerMinute. The IP honours the app's
// ProxyHeader only for trusted proxies; client supplied forwarding headers are ignored.
func (m *AuthMiddleware) RateLimiter(maxPerMinute int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               maxPerMinute,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Rate limit exceeded. Please try again later.",
			})
		},
	})
}

// Protect rejects requests without a valid session
func (m *AuthMiddleware) Protect() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := m.extractToken(c)
		user, err := m.usecase.ResolveSession(c.UserContext(), token)
		if err != nil {
			return response.Error(c, err)
		}
		m.setUser(c, user, token)
		return c.Next()
	}
}

// OptionalAuth attaches the user when a valid session is presented and otherwise
// continues anonymously.
func (m *AuthMiddleware) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := m.extractToken(c)
		if token == "" {
			return c.Next()
		}

		user, err := m.usecase.ResolveSession(c.UserContext(), token)
		if err != nil {
			if !apperrors.IsAuthentication(err) {
				m.logger.WithContext(c.UserContext()).WithFields(map[string]interface{}{
					"error": err.Error(),
				}).Warn("Session lookup failed, continuing as guest")
			}
			return c.Next()
		}
		m.setUser(c, user, token)
		return c.Next()
	}
}

func (m *AuthMiddleware) setUser(c *fiber.Ctx, user *model.User, token string) {
	c.Locals(localsUser, user)
	c.Locals(localsUserID, user.UserID)

	ctx := utils.WithUserID(c.UserContext(), user.UserID)
	ctx = utils.WithUserEmail(ctx, user.Email)
	ctx = utils.WithSessionToken(ctx, token)
	c.SetUserContext(ctx)
}

// extractToken returns the session token, preferring the cookie over the
// Authorization header.
func (m *AuthMiddleware) extractToken(c *fiber.Ctx) string {
	if token := c.Cookies(m.cookieName); token != "" {
		return token
	}

	return bearerToken(c)
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// GetUser returns the user attached by Protect or OptionalAuth
func GetUser(c *fiber.Ctx) (*model.User, bool) {
	user, ok := c.Locals(localsUser).(*model.User)
	return user, ok && user != nil
}

// GetUserID returns the id of the user attached by Protect or OptionalAuth
func GetUserID(c *fiber.Ctx) (string, bool) {
	userID, ok := c.Locals(localsUserID).(string)
	return userID, ok && userID != ""
}
