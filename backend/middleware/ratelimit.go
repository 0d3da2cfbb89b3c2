package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/tensuraworld/gachabot/backend/models"
	"github.com/tensuraworld/gachabot/backend/utils"
)

// RateLimit allows limit requests per client IP in each window. A limit of
// zero disables it.
func RateLimit(limit int, window time.Duration) fiber.Handler {
	if limit <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return utils.GetIPAddress(c)
		},
		LimitReached: func(c *fiber.Ctx) error {
			slog.Warn("API rate limit exceeded",
				slog.String("type", "api"),
				slog.String("ip", utils.GetIPAddress(c)),
				slog.String("path", c.Path()))
			return c.Status(fiber.StatusTooManyRequests).
				JSON(models.NewErrorResponse("RATE_LIMITED", "Too many requests", nil))
		},
	})
}
