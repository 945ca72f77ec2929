package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/smartchef/backend/internal/service"
)

const mealDBImportLimit = 10

// ToolsHandler exposes maintenance actions to signed-in users.
type ToolsHandler struct {
	importService service.IImportService
}

func NewToolsHandler(importService service.IImportService) *ToolsHandler {
	return &ToolsHandler{importService: importService}
}

func (h *ToolsHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	tools := router.Group("/tools")
	tools.Use(requireAuth)
	{
		tools.POST("/import-mealdb", h.ImportMealDB)
	}
}

func (h *ToolsHandler) ImportMealDB(c *gin.Context) {
	count, err := h.importService.ImportMealDB(c.Request.Context(), mealDBImportLimit)
	if err != nil {
		respondError(c, err, "Failed to import recipes")
		return
	}

	msg := "No new recipes found or database offline."
	if count > 0 {
		msg = fmt.Sprintf("Successfully imported %d new recipes from the internet!", count)
	}
	c.JSON(http.StatusOK, gin.H{"count": count, "message": msg})
}
