package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-eventdesk/logging"
	"go.uber.org/zap"
)

// AccessLog logs one line per request. It never logs bodies or headers.
func AccessLog(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()
		if err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		logger.Info("http_request",
			zap.String("method", c.Method()),
			zap.String("path", logging.SanitizePath(c.Path())),
			zap.Int("status_code", c.Response().StatusCode()),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
		)

		return nil
	}
}
