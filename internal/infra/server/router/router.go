// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/scope3-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/scope3-tracker/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	entryController     *controller.EntryController
	coverageController  *controller.CoverageController
	dashboardController *controller.DashboardController
	reportController    *controller.ReportController
	digestRateLimiter   *middleware.RateLimiter
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	entryController *controller.EntryController,
	coverageController *controller.CoverageController,
	dashboardController *controller.DashboardController,
	reportController *controller.ReportController,
	digestRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:    healthController,
		entryController:     entryController,
		coverageController:  coverageController,
		dashboardController: dashboardController,
		reportController:    reportController,
		digestRateLimiter:   digestRateLimiter,
		authMiddleware:      authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Entry routes (require authentication)
		if r.entryController != nil && r.authMiddleware != nil {
			entries := v1.Group("/entries")
			entries.Use(r.authMiddleware.Authenticate())
			{
				entries.GET("", r.entryController.List)
				entries.POST("", r.entryController.Create)
				entries.POST("/bulk", r.entryController.BulkCreate)
				entries.PATCH("/:id", r.entryController.Update)
				entries.DELETE("/:id", r.entryController.Delete)
			}
		}

		// Coverage routes (require authentication)
		if r.coverageController != nil && r.authMiddleware != nil {
			cov := v1.Group("/coverage")
			cov.Use(r.authMiddleware.Authenticate())
			{
				cov.GET("/reminders", r.coverageController.GetReminders)
				if r.digestRateLimiter != nil {
					cov.POST("/reminders/digest", r.digestRateLimiter.Middleware(), r.coverageController.QueueDigest)
				} else {
					cov.POST("/reminders/digest", r.coverageController.QueueDigest)
				}
			}
		}

		// Dashboard routes (require authentication)
		if r.dashboardController != nil && r.authMiddleware != nil {
			dashboard := v1.Group("/dashboard")
			dashboard.Use(r.authMiddleware.Authenticate())
			{
				dashboard.GET("/summary", r.dashboardController.GetSummary)
			}
		}

		// Report routes (require authentication)
		if r.reportController != nil && r.authMiddleware != nil {
			reports := v1.Group("/reports")
			reports.Use(r.authMiddleware.Authenticate())
			{
				reports.GET("/export", r.reportController.Export)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
