package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework for routing
	"github.com/redis/go-redis/v9"

	"github.com/vsip/visit-sync/internal/config"
	"github.com/vsip/visit-sync/internal/handler"    // handlers implementing the visit operations
	"github.com/vsip/visit-sync/internal/middleware" // JWT, role and rate limit middleware
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring probes hit this to verify the
	// service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterVisits registers the visit scheduling endpoints under /v1.
// Every route requires a valid JWT carrying the VISIT_SCHEDULER role,
// then passes through the Redis token-bucket rate limiter. A nil Redis
// client disables rate limiting (the limiter fails open).
func RegisterVisits(e *echo.Echo, v *handler.VisitHandler, jwtSecret string, rdb *redis.Client) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("VISIT_SCHEDULER"))
	g.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	// Book a new visit for an offender's active booking.
	g.POST("/visits", v.CreateVisit)
	// Rewrite a visit's timing, room and visitor set.
	g.PUT("/visits/:id", v.UpdateVisit)
	// Cancel a scheduled visit and reverse its order, if any.
	g.PUT("/visits/:id/cancel", v.CancelVisit)
}
