package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/smartchef/backend/internal/logging"
	"github.com/pageza/smartchef/backend/internal/middleware"
	"github.com/pageza/smartchef/backend/internal/models"
	"github.com/pageza/smartchef/backend/internal/service"
	"github.com/pageza/smartchef/backend/internal/types"
)

const (
	homeLatest   = 6
	homeTrending = 3
)

type RecipeHandler struct {
	recipeService     service.IRecipeService
	engagementService service.IEngagementService
	imageService      service.IImageService
}

func NewRecipeHandler(recipes service.IRecipeService, engagement service.IEngagementService, images service.IImageService) *RecipeHandler {
	return &RecipeHandler{
		recipeService:     recipes,
		engagementService: engagement,
		imageService:      images,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth, optionalAuth gin.HandlerFunc) {
	router.GET("/categories", h.ListCategories)
	router.GET("/home", h.Home)
	router.GET("/manage/recipes", requireAuth, h.ListForManagement)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", optionalAuth, h.GetRecipe)
		recipes.POST("", requireAuth, h.CreateRecipe)
		recipes.PUT("/:id", requireAuth, h.UpdateRecipe)
		recipes.DELETE("/:id", requireAuth, h.DeleteRecipe)
		recipes.POST("/:id/like", requireAuth, h.ToggleLike)
		recipes.POST("/:id/rate", requireAuth, h.Rate)
		recipes.GET("/:id/comments", h.ListComments)
		recipes.POST("/:id/comments", requireAuth, h.AddComment)
	}
}

func (h *RecipeHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.Categories()})
}

// Home returns the newest recipes, the most liked ones and the categories.
func (h *RecipeHandler) Home(c *gin.Context) {
	ctx := c.Request.Context()
	latest, err := h.recipeService.List(ctx, models.RecipeQuery{Limit: homeLatest})
	if err != nil {
		respondError(c, err, "Failed to fetch recipes")
		return
	}
	trending, err := h.recipeService.Trending(ctx, homeTrending)
	if err != nil {
		respondError(c, err, "Failed to fetch recipes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes":    newRecipeResponses(latest.Recipes),
		"trending":   newRecipeResponses(trending),
		"categories": models.Categories(),
		"fallback":   latest.Fallback,
	})
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	q := models.RecipeQuery{
		Category: c.DefaultQuery("category", models.CategoryAll),
		Search:   strings.TrimSpace(c.Query("search")),
	}

	list, err := h.recipeService.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Failed to fetch recipes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes":  newRecipeResponses(list.Recipes),
		"fallback": list.Fallback,
	})
}

// GetRecipe returns a recipe with its comments and counts the view.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	ctx := c.Request.Context()
	ref := models.ParseRecipeRef(c.Param("id"))

	recipe, err := h.recipeService.Get(ctx, ref)
	if err != nil {
		respondError(c, err, "Failed to fetch recipe")
		return
	}
	h.recipeService.IncrementViews(ctx, ref)

	comments, err := h.engagementService.ListComments(ctx, ref)
	if err != nil {
		logging.For("api").WithError(err).WithField("recipe_id", ref.ID()).Warn("Failed to load comments")
		comments = []*models.Comment{}
	}

	c.JSON(http.StatusOK, RecipeDetailResponse{
		RecipeResponse:  newRecipeResponse(recipe),
		TranslatedSteps: recipe.TranslatedSteps(),
		Comments:        comments,
		UserLiked:       recipe.LikedBy(middleware.UserID(c)),
	})
}

// CreateRecipe reads a multipart or urlencoded form. Ingredients and steps
// are one per line.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	in := models.RecipeInput{
		Title:       strings.TrimSpace(c.PostForm("title")),
		TitleHi:     strings.TrimSpace(c.PostForm("title_hi")),
		TitleMr:     strings.TrimSpace(c.PostForm("title_mr")),
		Category:    c.DefaultPostForm("category", "veg"),
		Ingredients: splitLines(c.PostForm("ingredients")),
		Steps:       splitLines(c.PostForm("steps")),
		StepsHi:     splitLines(c.PostForm("steps_hi")),
		StepsMr:     splitLines(c.PostForm("steps_mr")),
		PrepTime:    c.DefaultPostForm("prep_time", "0 mins"),
		CookTime:    c.DefaultPostForm("cook_time", "0 mins"),
		Servings:    2,
	}
	if in.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	if raw := strings.TrimSpace(c.PostForm("servings")); raw != "" {
		servings, err := strconv.Atoi(raw)
		if err != nil || servings <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid servings"})
			return
		}
		in.Servings = servings
	}

	if header, err := c.FormFile("image"); err == nil {
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
			return
		}
		defer file.Close()

		url, err := h.imageService.SaveRecipeImage(c.Request.Context(), header.Filename, file, header.Header.Get("Content-Type"))
		if err != nil {
			respondError(c, err, "Failed to save image")
			return
		}
		in.Image = url
	}

	recipe, err := h.recipeService.Create(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		respondError(c, err, "Failed to create recipe")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Recipe added successfully!",
		"recipe":  newRecipeResponse(recipe),
	})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	update := models.RecipeUpdate{
		Title:       req.Title,
		TitleHi:     req.TitleHi,
		TitleMr:     req.TitleMr,
		Category:    req.Category,
		Ingredients: trimAll(req.Ingredients),
		Steps:       trimAll(req.Steps),
		StepsHi:     trimAll(req.StepsHi),
		StepsMr:     trimAll(req.StepsMr),
		PrepTime:    req.PrepTime,
		CookTime:    req.CookTime,
		Servings:    req.Servings,
		Image:       req.Image,
	}
	if update.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}
	if err := h.recipeService.Update(c.Request.Context(), c.Param("id"), middleware.UserID(c), update); err != nil {
		respondError(c, err, "Failed to update recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe updated successfully!"})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	if err := h.recipeService.Delete(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		respondError(c, err, "Failed to delete recipe")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted"})
}

// ListForManagement lists every stored recipe with its management author.
func (h *RecipeHandler) ListForManagement(c *gin.Context) {
	recipes, err := h.recipeService.ListForManagement(c.Request.Context(), "")
	if err != nil {
		respondError(c, err, "Failed to fetch recipes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": newRecipeResponses(recipes)})
}

func (h *RecipeHandler) ToggleLike(c *gin.Context) {
	ctx := c.Request.Context()
	ref := models.ParseRecipeRef(c.Param("id"))

	action, err := h.engagementService.ToggleLike(ctx, ref, middleware.UserID(c))
	if err != nil {
		status, _ := statusFor(err, "")
		c.JSON(status, gin.H{"success": false, "error": "Failed to like recipe"})
		return
	}

	count := 0
	if recipe, err := h.recipeService.Get(ctx, ref); err == nil {
		count = recipe.LikeCount()
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "action": action, "count": count})
}

func (h *RecipeHandler) Rate(c *gin.Context) {
	var req types.RateRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid rating"})
		return
	}
	value, ok := parseRating(req.Rating)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid rating"})
		return
	}

	ref := models.ParseRecipeRef(c.Param("id"))
	if err := h.engagementService.AddRating(c.Request.Context(), ref, middleware.UserID(c), value); err != nil {
		status, _ := statusFor(err, "")
		c.JSON(status, gin.H{"success": false, "error": "Failed to submit rating"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Thanks for rating!"})
}

// parseRating accepts a non-empty string of ASCII digits.
func parseRating(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	value, err := strconv.Atoi(raw)
	return value, err == nil
}

func (h *RecipeHandler) ListComments(c *gin.Context) {
	comments, err := h.engagementService.ListComments(c.Request.Context(), models.ParseRecipeRef(c.Param("id")))
	if err != nil {
		respondError(c, err, "Failed to fetch comments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h *RecipeHandler) AddComment(c *gin.Context) {
	var req types.CommentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment cannot be empty"})
		return
	}

	comment, err := h.engagementService.AddComment(c.Request.Context(), models.ParseRecipeRef(c.Param("id")), middleware.UserID(c), text)
	if err != nil {
		respondError(c, err, "Failed to post comment")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Comment posted!", "comment": comment})
}

func splitLines(s string) []string {
	return trimAll(strings.Split(strings.TrimSpace(s), "\n"))
}

// trimAll trims every entry and drops blank ones. A nil slice stays nil so
// that an absent update field is left alone.
func trimAll(lines []string) []string {
	if lines == nil {
		return nil
	}
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}
	return out
}
