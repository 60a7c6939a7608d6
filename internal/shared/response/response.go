// Package response translates application errors into HTTP responses. It is the only
// place where the error taxonomy meets status codes.
package response

import (
	"errors"
	"strconv"
	"time"

	apperrors "sarawak-tourism/internal/shared/errors"

	"github.com/gofiber/fiber/v2"
)

// Error writes err as a JSON error body with the status that matches its type.
// Errors outside the taxonomy become a generic 500 so internals never leak.
func Error(c *fiber.Ctx, err error) error {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal Server Error",
		})
	}

	body := fiber.Map{
		"error": appErr.Message,
		"type":  appErr.Type,
	}
	if appErr.Code != "" {
		body["code"] = appErr.Code
	}
	if len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}

	if appErr.Type == apperrors.ErrorTypeRateLimit {
		if reset, ok := appErr.Details["reset_time"].(time.Time); ok {
			c.Set(fiber.HeaderRetryAfter, strconv.FormatInt(retryAfterSeconds(reset), 10))
			body["reset_time"] = reset
		}
	}

	status := appErr.HTTPCode
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(body)
}

// Message writes a simple {"message": ...} body with status 200
func Message(c *fiber.Ctx, msg string) error {
	return c.JSON(fiber.Map{"message": msg})
}

func retryAfterSeconds(reset time.Time) int64 {
	secs := int64(time.Until(reset).Seconds())
	if secs < 1 {
		return 1
	}
	return secs
}
