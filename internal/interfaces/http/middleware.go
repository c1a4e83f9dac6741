package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invoicer-api/pkg/logger"
)

// RequestLogger registra cada petición: método, ruta, estado, latencia y request id.
// Debe montarse después de requestid.New().
func RequestLogger(log *logger.Logger) fiber.Handler {
	log = log.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			// Deja que el ErrorHandler de Fiber escriba la respuesta antes de leer el estado.
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		rid, _ := c.Locals("requestid").(string)
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", rid).
			Msg("petición HTTP")
		return nil
	}
}
