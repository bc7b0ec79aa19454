package router

import (
	"net/http"

	"gymdesk/internal/common"
	"gymdesk/internal/config"
	"gymdesk/internal/domain/admin"
	"gymdesk/internal/domain/member"
	"gymdesk/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New creates and configures the Gin router with all middleware and routes.
func New(
	cfg *config.Config,
	verifier middleware.TokenVerifier,
	adminHandler *admin.Handler,
	memberHandler *member.Handler,
) *gin.Engine {
	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()

	// Global middleware stack (order matters)
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowedHeaders,
	))

	// Rate limiter
	rateLimiter := middleware.NewRateLimiter(
		cfg.RateLimit.RequestsPerSecond,
		cfg.RateLimit.Burst,
	)
	r.Use(rateLimiter.Middleware())

	r.Use(gin.Logger())

	// Public routes
	r.GET("/health", healthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/api/v1/login", adminHandler.Login)

	// Protected API routes (Bearer token required)
	protectedAPI := r.Group("/api/v1")
	protectedAPI.Use(middleware.Auth(verifier))
	{
		memberHandler.RegisterRoutes(protectedAPI)
	}

	return r
}

// healthCheck handles GET /health
func healthCheck(c *gin.Context) {
	common.Success(c, http.StatusOK, gin.H{
		"status":  "ok",
		"service": "gymdesk",
	})
}
