package api

import (
	"github.com/pageza/smartchef/backend/internal/models"
)

// RecipeResponse is a recipe with its derived fields.
type RecipeResponse struct {
	*models.Recipe
	AvgRating    float64 `json:"avg_rating"`
	RatingCount  int     `json:"rating_count"`
	LikesCount   int     `json:"likes_count"`
	CategoryName string  `json:"category_name"`
}

// RecipeDetailResponse is returned by the recipe detail endpoint.
type RecipeDetailResponse struct {
	RecipeResponse
	TranslatedSteps []models.StepTranslation `json:"translated_steps"`
	Comments        []*models.Comment        `json:"comments"`
	UserLiked       bool                     `json:"user_liked"`
}

func newRecipeResponse(r *models.Recipe) RecipeResponse {
	return RecipeResponse{
		Recipe:       r,
		AvgRating:    r.AverageRating(),
		RatingCount:  r.RatingCount(),
		LikesCount:   r.LikeCount(),
		CategoryName: r.CategoryName(),
	}
}

func newRecipeResponses(recipes []*models.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, newRecipeResponse(r))
	}
	return out
}
