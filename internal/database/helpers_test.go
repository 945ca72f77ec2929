package database

import "github.com/pageza/smartchef/backend/internal/models"

func modelsQuery() models.RecipeQuery {
	return models.RecipeQuery{Limit: 10}
}
