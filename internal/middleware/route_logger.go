package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RouteLogger logs each request entry and exit with duration, status and trace ID.
// Exits are logged at warn for 4xx and error for 5xx. Runs before Identity, so the
// caller is only known on exit.
func RouteLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := GetTraceID(c)
		if traceID == "" {
			traceID = "no-trace-id"
		}
		start := time.Now()
		log.Debug().Str("trace_id", traceID).Str("method", c.Method()).Str("path", c.Path()).Msg("Entering request")

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		ev := exitEvent(status).
			Str("trace_id", traceID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Int64("ms", time.Since(start).Milliseconds())
		if id := GetIdentity(c); id != nil {
			ev = ev.Str("user_id", id.ID)
		}
		ev.Msg("Exiting request")
		return err
	}
}

func exitEvent(status int) *zerolog.Event {
	switch {
	case status >= fiber.StatusInternalServerError:
		return log.Error()
	case status >= fiber.StatusBadRequest:
		return log.Warn()
	}
	return log.Info()
}
