// internal/app/router.go
package app

import (
	adminHandler "github.com/swayamn72/Aegis2.0/internal/handlers/admin"
	authHandler "github.com/swayamn72/Aegis2.0/internal/handlers/auth"
	"github.com/swayamn72/Aegis2.0/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AuthHandler    *authHandler.AuthHandler
	AdminHandler   *adminHandler.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/register", h.AuthHandler.Register)
		authPublic.POST("/login", h.AuthHandler.Login)
		authPublic.POST("/refresh", h.AuthHandler.RefreshToken)
		authPublic.POST("/forgot-password", h.AuthHandler.ForgotPassword)
		authPublic.POST("/reset-password/:token", h.AuthHandler.ResetPassword)
		authPublic.GET("/verify-email/:token", h.AuthHandler.VerifyEmail)
	}

	// ==================== Authenticated Auth Routes ====================
	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware.Auth())
	{
		authProtected.POST("/logout", h.AuthHandler.Logout)
		authProtected.POST("/revoke-all", h.AuthHandler.RevokeAllSessions)
		authProtected.POST("/resend-verification", h.AuthHandler.ResendVerification)
	}

	// ==================== Admin Routes ====================
	admin := api.Group("/admin")
	admin.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.AdminOnly())
	{
		admin.POST("/organizations/:id/approve", h.AdminHandler.ApproveOrganization)
		admin.POST("/organizations/:id/reject", h.AdminHandler.RejectOrganization)
		admin.GET("/audit/users/:id", h.AdminHandler.UserActivity)
		admin.GET("/audit/security-events", h.AdminHandler.SecurityEvents)
	}
}
