package mealdb

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRecipe(t *testing.T) {
	var resp searchResponse
	require.NoError(t, json.Unmarshal([]byte(paneerResponse), &resp))

	r := ToRecipe(resp.Meals[0])
	assert.Equal(t, "Paneer Tikka", r.Title)
	assert.Equal(t, "veg", r.Category)
	assert.Equal(t, []string{"Paneer - 250g", "Yogurt - 1 cup", "Salt - "}, r.Ingredients)
	assert.Equal(t, []string{"Cube the paneer.", "Marinate for an hour.", "Grill until charred."}, r.Steps)
	assert.Equal(t, "15 mins", r.PrepTime)
	assert.Equal(t, "30 mins", r.CookTime)
	assert.Equal(t, 4, r.Servings)
	assert.Equal(t, "https://www.themealdb.com/images/media/meals/paneer.jpg", r.Image)
	assert.Equal(t, Source, r.Source)
	assert.Empty(t, r.CreatedBy)
	assert.Empty(t, r.Likes)
	assert.Empty(t, r.Ratings)
}

func TestCategoryMapping(t *testing.T) {
	tests := []struct {
		name     string
		meal     Meal
		expected string
	}{
		{"vegetarian", Meal{Name: "Dal", Category: "Vegetarian"}, "veg"},
		{"chicken", Meal{Name: "Chicken Curry", Category: "Chicken"}, "non-veg"},
		{"beef", Meal{Name: "Beef Stew", Category: "Beef"}, "non-veg"},
		{"dessert", Meal{Name: "Cake", Category: "Dessert"}, "dessert"},
		{"unmapped paneer", Meal{Name: "Palak Paneer", Category: "Side"}, "veg"},
		{"unmapped other", Meal{Name: "Pasta Bake", Category: "Pasta"}, "non-veg"},
		{"missing category", Meal{Name: "Mystery", CategoryMissing: true}, "veg"},
		{"empty category", Meal{Name: "Mystery"}, "non-veg"},
		{"empty category paneer", Meal{Name: "Paneer Bhurji"}, "veg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToRecipe(tt.meal).Category)
		})
	}
}

func TestCategoryPresenceFromJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"key absent", `{"strMeal":"Mystery Stew"}`, "veg"},
		{"null", `{"strMeal":"Mystery Stew","strCategory":null}`, "non-veg"},
		{"null paneer", `{"strMeal":"Paneer Stew","strCategory":null}`, "veg"},
		{"mapped", `{"strMeal":"Mystery Stew","strCategory":"Dessert"}`, "dessert"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Meal
			require.NoError(t, json.Unmarshal([]byte(tt.body), &m))
			assert.Equal(t, tt.expected, ToRecipe(m).Category)
		})
	}
}
