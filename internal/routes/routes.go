package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/keylounge/keylounge-backend/internal/handler"
	"github.com/keylounge/keylounge-backend/internal/middleware"
	"github.com/keylounge/keylounge-backend/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	jwtManager *jwt.Manager,
	authHandler *handler.AuthHandler,
	reportHandler *handler.ReportHandler,
	contentHandler *handler.ContentHandler,
	penaltyHandler *handler.PenaltyHandler,
) {
	auth := middleware.JWTAuth(jwtManager)

	api := router.Group("/api/v1")

	// Auth
	api.POST("/auth/login", authHandler.Login)

	// Report intake (any authenticated user)
	api.POST("/reports", auth, reportHandler.Submit)

	// Sanction check (board services call this before allowing a post)
	api.GET("/users/:id/sanction", auth, penaltyHandler.CheckSanction)

	// Admin back office
	admin := api.Group("/admin")
	admin.Use(auth, middleware.RequireAdmin())

	admin.GET("/reports", reportHandler.List)
	admin.POST("/reports/:id/review", reportHandler.MarkReviewed)
	admin.POST("/reports/:id/process", reportHandler.Process)

	admin.POST("/contents/hide", contentHandler.Hide)
	admin.POST("/contents/delete", contentHandler.Delete)
	admin.POST("/contents/recover", contentHandler.Recover)
	admin.GET("/deletion-logs", contentHandler.SearchDeletionLog)

	admin.POST("/penalties", penaltyHandler.Issue)
	admin.GET("/penalties", penaltyHandler.List)
	admin.PUT("/penalties/:id/status", penaltyHandler.SetStatus)
}
