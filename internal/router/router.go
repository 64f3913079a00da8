package router

import (
	"github.com/gin-gonic/gin"

	"scanstation/internal/config"
	"scanstation/internal/handler"
	"scanstation/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	scanH *handler.ScanHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// All scan routes require a valid JWT from the surrounding app
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(&cfg.JWT))

	scans := protected.Group("/scans")
	scans.POST("", scanH.Capture)
	scans.GET("/session", scanH.Session)
	scans.PATCH("/session", scanH.UpdateStaged)
	scans.DELETE("/session", scanH.Cancel)
	scans.POST("/session/commit", scanH.Commit)
	scans.GET("/recent", scanH.Recent)
	scans.GET("/recent/export", scanH.ExportRecent)
	scans.GET("/types", scanH.Types)
	scans.GET("/:session_id/audit", scanH.AuditTrail)

	return r
}
