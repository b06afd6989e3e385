package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RegisterRoutes configures all API routes, middleware, and error handlers
func RegisterRoutes(e *echo.Echo, h *Handlers, cfg ServerConfig) {
	// Set custom error handler for consistent JSON responses
	e.HTTPErrorHandler = JSONErrorHandler()

	// Apply global middleware
	e.Use(SetJSONContentType) // Ensure all responses are JSON
	e.Use(SetNoCacheHeaders)  // Prevent caching of quotes, which go stale in minutes
	e.Use(middleware.Secure())
	e.Use(middleware.BodyLimit("10K"))

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
	}))

	// Optional API key authentication; the health endpoint stays open for
	// load balancer probes.
	if cfg.APIKey != "" {
		e.Use(middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
			KeyLookup: "header:X-API-Key",
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/health"
			},
			Validator: func(key string, c echo.Context) (bool, error) {
				return key == cfg.APIKey, nil
			},
		}))
	}

	e.GET("/health", h.Health)

	// API v1 routes; quoting and handoff have independent request budgets
	v1 := e.Group("/v1")
	v1.POST("/quote", h.Quote, perIPRateLimit(cfg.QuoteRatePerMin,
		"Too many quote requests. Try again in 1 minute."))
	v1.POST("/swap", h.SwapHandoff, perIPRateLimit(cfg.SwapRatePerMin,
		"Too many swap requests. Try again in 1 minute."))
	v1.GET("/swap/:id", h.SwapStatus)

	// Catch-all route for 404 responses
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Not found",
			Message: "Endpoint " + c.Request().Method + " " + c.Request().URL.Path + " does not exist",
		})
	})
}

// perIPRateLimit budgets requests per client IP per minute, rejecting excess
// with 429 rather than queuing.
func perIPRateLimit(perMin int, msg string) echo.MiddlewareFunc {
	if perMin <= 0 {
		perMin = 30
	}
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(perMin) / 60.0),
			Burst:     perMin,
			ExpiresIn: 3 * time.Minute,
		}),
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, ErrorResponse{
				Error: msg,
				Code:  "rate_limited",
			})
		},
	})
}
