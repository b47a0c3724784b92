package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/incubyte/booking/internal/config"
	"github.com/incubyte/booking/internal/domain/practice"
	"github.com/incubyte/booking/internal/domain/scheduling"
	"github.com/incubyte/booking/internal/platform/db"
	"github.com/incubyte/booking/internal/platform/metrics"
	"github.com/incubyte/booking/internal/platform/middleware"
)

const maxBodySize = "1M"

// newServer builds the HTTP server for b. m may be nil when metrics are off.
func newServer(cfg *config.Config, logger zerolog.Logger, b *backend, m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Pre(echomw.RemoveTrailingSlash())

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	if m != nil {
		e.Use(middleware.Metrics(m))
		b.scheduling.WithObserver(m)
	}
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	rl := middleware.DefaultRateLimitConfig()
	rl.RequestsPerSecond = cfg.RateLimitRPS
	rl.BurstSize = cfg.RateLimitBurst
	e.Use(middleware.RateLimit(rl))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	e.Use(middleware.BodyLimit(maxBodySize))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/health/db", db.HealthHandler(b.driver, b.ping, b.pool))
	if m != nil {
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}

	api := e.Group("")
	practice.NewHandler(b.practice).RegisterRoutes(api)
	scheduling.NewHandler(b.scheduling).RegisterRoutes(api)

	return e
}
