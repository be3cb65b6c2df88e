// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/agency-ops/backend/internal/integration/entrypoint/controller"
	"github.com/agency-ops/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine             *gin.Engine
	healthController   *controller.HealthController
	authController     *controller.AuthController
	documentController *controller.DocumentController
	vatController      *controller.VATController
	clientController   *controller.ClientController
	loginRateLimiter   *middleware.RateLimiter
	authMiddleware     *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	documentController *controller.DocumentController,
	vatController *controller.VATController,
	clientController *controller.ClientController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:   healthController,
		authController:     authController,
		documentController: documentController,
		vatController:      vatController,
		clientController:   clientController,
		loginRateLimiter:   loginRateLimiter,
		authMiddleware:     authMiddleware,
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

// setupAPIRoutes configures the main API routes. The whole bookkeeping and
// client surface is admin-only; non-admin accounts can authenticate but
// reach nothing beyond the auth endpoints.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes (only setup if auth controller is available)
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
				auth.POST("/forgot-password", r.loginRateLimiter.Middleware(), r.authController.ForgotPassword)
				auth.POST("/reset-password", r.authController.ResetPassword)
			}
		}

		// Document routes (admin only)
		if r.documentController != nil && r.authMiddleware != nil {
			documents := v1.Group("/documents")
			documents.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireAdmin())
			{
				documents.GET("", r.documentController.List)
				documents.POST("", r.documentController.Upload)
				documents.POST("/:id/review", r.documentController.Review)
				documents.POST("/:id/extract", r.documentController.Extract)
			}
		}

		// VAT reporting routes (admin only)
		if r.vatController != nil && r.authMiddleware != nil {
			vat := v1.Group("/vat")
			vat.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireAdmin())
			{
				vat.GET("/report", r.vatController.Report)
				vat.GET("/health", r.vatController.DataHealth)
				vat.GET("/export", r.vatController.Export)
				vat.GET("/export-xlsx", r.vatController.ExportXLSX)
			}
		}

		// Client directory routes (admin only)
		if r.clientController != nil && r.authMiddleware != nil {
			clients := v1.Group("/clients")
			clients.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireAdmin())
			{
				clients.GET("", r.clientController.List)
				clients.POST("", r.clientController.Create)
				clients.PUT("/:id", r.clientController.Update)
				clients.DELETE("/:id", r.clientController.Delete)
				clients.POST("/:id/invite", r.clientController.Invite)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
