package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pageza/smartchef/backend/internal/common"
	"github.com/pageza/smartchef/backend/internal/logging"
	"github.com/pageza/smartchef/backend/internal/middleware"
	"github.com/pageza/smartchef/backend/internal/models"
	"github.com/pageza/smartchef/backend/internal/service"
	"github.com/pageza/smartchef/backend/internal/types"
)

var languageNames = map[string]string{
	"en": "English",
	"hi": "हिंदी",
	"mr": "मराठी",
}

// ProfileHandler serves the signed-in user's profile and settings.
type ProfileHandler struct {
	authService   service.IAuthService
	recipeService service.IRecipeService
}

func NewProfileHandler(authService service.IAuthService, recipeService service.IRecipeService) *ProfileHandler {
	return &ProfileHandler{authService: authService, recipeService: recipeService}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	profile := router.Group("/profile")
	profile.Use(requireAuth)
	{
		profile.GET("", h.GetProfile)
		profile.PUT("/settings", h.UpdateSettings)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	ctx := c.Request.Context()
	user, err := h.authService.GetUserByID(ctx, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		respondError(c, err, "failed to get profile")
		return
	}

	stats, err := h.recipeService.ProfileStats(ctx, user.ID)
	if err != nil {
		respondError(c, err, "failed to get profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "stats": stats})
}

func (h *ProfileHandler) UpdateSettings(c *gin.Context) {
	var req types.SettingsRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Failed to update settings"})
		return
	}

	settings := models.UserSettings{Language: req.Language, Theme: req.Theme}
	if err := h.authService.UpdateSettings(c.Request.Context(), middleware.UserID(c), settings); err != nil {
		status, _ := statusFor(err, "")
		if status >= http.StatusInternalServerError {
			logging.For("api").WithError(err).Error("Failed to update settings")
		}
		c.JSON(status, gin.H{"success": false, "error": "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": settingsMessage(settings)})
}

// settingsMessage describes the change; a language change wins over a
// theme change.
func settingsMessage(s models.UserSettings) string {
	switch {
	case s.Language != "":
		name, ok := languageNames[s.Language]
		if !ok {
			name = s.Language
		}
		return fmt.Sprintf("Language changed to %s", name)
	case s.Theme != "":
		return fmt.Sprintf("%s mode activated", cases.Title(language.Und).String(s.Theme))
	default:
		return "Settings updated!"
	}
}
