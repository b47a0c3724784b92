package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/incubyte/booking/internal/platform/metrics"
)

// Metrics records request counts and latency per matched route. Unmatched
// paths share a single label so scanners cannot inflate cardinality.
func Metrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := responseStatus(c, err)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
