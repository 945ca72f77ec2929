package mealdb

import (
	"fmt"
	"strings"

	"github.com/pageza/smartchef/backend/internal/models"
)

// Source labels recipes imported from TheMealDB.
const Source = "TheMealDB"

var categoryMap = map[string]string{
	"Vegetarian": "veg",
	"Chicken":    "non-veg",
	"Beef":       "non-veg",
	"Dessert":    "dessert",
}

// ToRecipe converts a meal into an unowned recipe ready for import.
func ToRecipe(m Meal) *models.Recipe {
	var ingredients []string
	for i, ing := range m.Ingredients {
		ing = strings.TrimSpace(ing)
		if ing == "" {
			continue
		}
		measure := ""
		if i < len(m.Measures) {
			measure = strings.TrimSpace(m.Measures[i])
		}
		ingredients = append(ingredients, fmt.Sprintf("%s - %s", ing, measure))
	}

	var steps []string
	for _, line := range strings.Split(strings.ReplaceAll(m.Instructions, "\r", ""), "\n") {
		if s := strings.TrimSpace(line); s != "" {
			steps = append(steps, s)
		}
	}

	return &models.Recipe{
		Title:       m.Name,
		Category:    category(m),
		Ingredients: nonNil(ingredients),
		Steps:       nonNil(steps),
		PrepTime:    "15 mins",
		CookTime:    "30 mins",
		Servings:    4,
		Image:       m.Thumb,
		Likes:       []string{},
		Ratings:     []int{},
		Source:      Source,
	}
}

// category maps the API category. Only a meal without the category key
// counts as vegetarian; a null or unmapped one falls through to the title.
func category(m Meal) string {
	apiCategory := m.Category
	if m.CategoryMissing {
		apiCategory = "Vegetarian"
	}
	if c, ok := categoryMap[apiCategory]; ok {
		return c
	}
	if strings.Contains(m.Name, "Paneer") {
		return "veg"
	}
	return "non-veg"
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
