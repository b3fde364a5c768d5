package serverutils

import (
	"time"

	"buddyai-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs one line per request after the error handler has set the final status.
func RequestLogger(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()
		if err != nil {
			if hErr := ctx.App().ErrorHandler(ctx, err); hErr != nil {
				_ = ctx.SendStatus(fiber.StatusInternalServerError)
			}
		}

		details := map[string]interface{}{
			"method":     ctx.Method(),
			"path":       ctx.Path(),
			"status":     ctx.Response().StatusCode(),
			"latency_ms": time.Since(start).Milliseconds(),
		}
		if userId, ok := ctx.Locals(LocalUserID).(interface{ String() string }); ok {
			details["user_id"] = userId.String()
		}
		log.Info("HTTP", "request", details)
		return nil
	}
}
