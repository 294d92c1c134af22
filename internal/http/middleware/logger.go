package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Logger logs each HTTP request as one structured event and makes a request-scoped logger
// available to handlers through zerolog.Ctx(c.UserContext()).
//
// Logged fields: request_id, method, path, route, status, latency_ms. 5xx responses are
// logged at error level, 4xx at warn, the rest at info.
func Logger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		reqLog := log.With().Str("request_id", GetRequestID(c)).Logger()
		c.SetUserContext(reqLog.WithContext(c.UserContext()))

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		var event *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			event = reqLog.Error().Err(err)
		case status >= fiber.StatusBadRequest:
			event = reqLog.Warn()
		default:
			event = reqLog.Info()
		}

		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", c.Route().Path).
			Int("status", status).
			Float64("latency_ms", float64(time.Since(start).Microseconds())/1000).
			Msg("http_request")

		return err
	}
}
