package middleware

import (
	"fmt"
	"time"

	"storefront/pkg/logx"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// RequestLogger writes one log line per request. Errors returned by the
// chain are handed to the app's error handler here so the logged status is
// the one the client receives.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		event := logx.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			event = logx.Error()
		case status >= fiber.StatusBadRequest:
			event = logx.Warn()
		}
		event.
			Str("request_id", fmt.Sprint(c.Locals(requestid.ConfigDefault.ContextKey))).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Err(chainErr).
			Msg("request")
		return nil
	}
}
