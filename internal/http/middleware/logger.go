package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/logger"
)

// Logger is a middleware that writes one structured entry per HTTP request.
// Fields: request_id (set by RequestID), method, path, status, latency_ms.
// 5xx responses are logged at error level and 4xx at warn.
func Logger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		rid := RequestIDFrom(c)
		status := statusOf(c, err)
		fields := []interface{}{
			"request_id", rid,
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency_ms", float64(time.Since(start).Microseconds()) / 1000,
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			if err != nil {
				fields = append(fields, "error", err.Error())
			}
			log.Error("http_request", fields...)
		case status >= fiber.StatusBadRequest:
			log.Warn("http_request", fields...)
		default:
			log.Info("http_request", fields...)
		}

		return err
	}
}
