// Package middleware holds the Fiber middleware shared by every route.
package middleware

import (
	"time"

	"sarawak-tourism/internal/shared/logger"
	"sarawak-tourism/internal/shared/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// requestIDLocal is where the requestid middleware stores the id
const requestIDLocal = "requestid"

// RequestID assigns X-Request-ID, keeping one supplied by the client
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		ContextKey: requestIDLocal,
	})
}

// CORS allows credentialed requests from origins (comma separated). Session cookies
// are cross-site, so origins must be explicit; config.LoadConfig rejects "*".
func CORS(origins string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With,X-Session-ID,X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	})
}

// SecurityHeaders adds security headers
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	}
}

// RequestLogger copies the request id into the user context and writes one log line
// per request. It must run after RequestID.
func RequestLogger(log logger.Logger) fiber.Handler {
	log = log.WithComponent("http")
	return func(c *fiber.Ctx) error {
		if id, ok := c.Locals(requestIDLocal).(string); ok && id != "" {
			c.SetUserContext(utils.WithRequestID(c.UserContext(), id))
		}

		start := time.Now()
		err := c.Next()
		if err != nil {
			// Let the app error handler write the response so the status is final.
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		entry := log.WithContext(c.UserContext()).WithFields(map[string]interface{}{
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.IP(),
		})
		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Error("Request failed")
		case status >= fiber.StatusBadRequest:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request completed")
		}
		return nil
	}
}
