// Package api exposes the recipe, engagement and account operations over
// HTTP with gin.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/smartchef/backend/internal/middleware"
	"github.com/pageza/smartchef/backend/internal/service"
	"github.com/pageza/smartchef/backend/internal/store"
)

// Services bundles everything the handlers call.
type Services struct {
	Backend    store.Backend
	Auth       service.IAuthService
	Recipes    service.IRecipeService
	Engagement service.IEngagementService
	Import     service.IImportService
	Images     service.IImageService
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, svc Services) {
	router.GET("/health", NewHealthHandler(svc.Backend).Check)

	v1 := router.Group("/api/v1")
	requireAuth := middleware.AuthMiddleware(svc.Auth)

	NewAuthHandler(svc.Auth).RegisterRoutes(v1, requireAuth)
	NewProfileHandler(svc.Auth, svc.Recipes).RegisterRoutes(v1, requireAuth)
	NewRecipeHandler(svc.Recipes, svc.Engagement, svc.Images).RegisterRoutes(v1, requireAuth, middleware.OptionalAuth(svc.Auth))
	NewToolsHandler(svc.Import).RegisterRoutes(v1, requireAuth)
}
