package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Logger writes one access-log line per request. Server errors are logged at
// error level with their underlying cause; client errors at warn.
func Logger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			rid, _ := c.Get(requestIDKey).(string)

			err := next(c)

			status := responseStatus(c, err)
			var he *echo.HTTPError
			errors.As(err, &he)

			evt := logger.Info()
			switch {
			case status >= 500:
				evt = logger.Error()
				if he != nil && he.Internal != nil {
					evt = evt.AnErr("cause", he.Internal)
				}
				evt = evt.Err(err)
			case err != nil || status >= 400:
				evt = logger.Warn()
				if err != nil {
					evt = evt.Err(err)
				}
			}

			evt.
				Str("request_id", rid).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("route", c.Path()).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Str("remote_ip", c.RealIP()).
				Msg("request")

			return err
		}
	}
}

// responseStatus reports the status the client will see. Errors returned up
// the chain are rendered by echo's error handler after middleware runs, so
// the recorded response status is not final yet.
func responseStatus(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
