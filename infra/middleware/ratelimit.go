package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"assistant_server/pkg/apperr"
	"assistant_server/pkg/logger"
	"assistant_server/pkg/ratelimit"
)

// RateLimit enforces a fixed-window limit per client. Requests are keyed by
// user_id when present (body-carried for analyze routes, query elsewhere)
// and by IP otherwise. A limiter storage error lets the request through;
// throttling must not take the API down with it.
func RateLimit(limiter ratelimit.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Query("user_id")
		if key == "" {
			key = c.IP()
		}

		result, err := limiter.Allow(c.Context(), key)
		if err != nil {
			logger.WithError(err).Warn("Rate limiter unavailable, allowing request")
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))

		if !result.Allowed {
			c.Set("Retry-After", fmt.Sprintf("%d", int(result.RetryAfter/time.Second)))
			return apperr.New(apperr.CodeRateLimited, "too many requests", fiber.StatusTooManyRequests).
				WithDetail("retry_after_seconds", int(result.RetryAfter/time.Second))
		}

		return c.Next()
	}
}
