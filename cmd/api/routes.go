// Package main provides the API server entry point.
package main

import (
	"github.com/labstack/echo/v4"

	"github.com/lllypuk/userhub/internal/infrastructure/httpserver"
	"github.com/lllypuk/userhub/internal/middleware"
)

// SetupRoutes configures all API routes and middleware chains.
func SetupRoutes(c *Container) *httpserver.Router {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	routerConfig := httpserver.DefaultRouterConfig()
	routerConfig.Logger = c.Logger
	routerConfig.LoggingConfig.Logger = c.Logger
	routerConfig.RecoveryConfig.Logger = c.Logger
	if origins := c.Config.Server.AllowOrigins; len(origins) > 0 {
		routerConfig.CORSConfig.AllowOrigins = origins
	}
	if c.HTTPMetrics != nil {
		routerConfig.MetricsMiddleware = middleware.Metrics(c.HTTPMetrics)
	}
	if c.RateLimitStore != nil {
		routerConfig.RateLimitMiddleware = middleware.RateLimit(rateLimitConfig(c))
	}

	router := httpserver.NewRouter(e, routerConfig)

	// Container implements httpserver.HealthChecker
	router.RegisterHealthEndpointsWithChecker(c)
	router.RegisterMetricsEndpoint(c.MetricsRegistry)

	router.RegisterAll(c.UserHandler, c.RankingHandler)

	if c.Config.IsDevelopment() {
		router.PrintRoutes()
	}

	return router
}

func rateLimitConfig(c *Container) middleware.RateLimitConfig {
	cfg := middleware.DefaultRateLimitConfig()
	cfg.Logger = c.Logger
	cfg.Store = c.RateLimitStore
	cfg.Limit = c.Config.RateLimit.Limit
	cfg.Window = c.Config.RateLimit.Window
	cfg.BurstSize = c.Config.RateLimit.Burst
	return cfg
}
