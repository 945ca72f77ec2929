package service

import (
	"time"

	"github.com/pageza/smartchef/backend/internal/models"
)

// SampleCatalog serves the fixed demo recipes shown when the store is
// unreachable or empty. Callers always receive copies.
type SampleCatalog struct {
	recipes []*models.Recipe
}

func NewSampleCatalog() *SampleCatalog {
	return &SampleCatalog{recipes: sampleRecipes()}
}

// All returns the whole catalog in its fixed order.
func (c *SampleCatalog) All() []*models.Recipe {
	out := make([]*models.Recipe, len(c.recipes))
	for i, r := range c.recipes {
		out[i] = r.Clone()
	}
	return out
}

// Get returns the sample with the given id.
func (c *SampleCatalog) Get(id string) (*models.Recipe, bool) {
	for _, r := range c.recipes {
		if r.ID == id {
			return r.Clone(), true
		}
	}
	return nil, false
}

var sampleCreatedAt = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

func sampleRecipes() []*models.Recipe {
	return []*models.Recipe{
		{
			ID:       "sample1",
			Title:    "Paneer Butter Masala",
			Category: "veg",
			Ingredients: []string{
				"Paneer - 250g", "Butter - 50g", "Tomato - 4", "Cream - 100ml", "Garam Masala - 1 tsp",
			},
			Steps: []string{
				"Cut paneer into cubes and lightly fry",
				"Blend tomatoes to make puree",
				"Heat butter and add tomato puree",
				"Add spices and cook for 5 minutes",
				"Add cream and paneer, simmer for 10 minutes",
			},
			PrepTime:  "15 mins",
			CookTime:  "30 mins",
			Servings:  4,
			Image:     "/static/images/paneer-butter-masala.jpg",
			Author:    "Chef Ravi",
			Likes:     []string{"sample_user1", "sample_user2"},
			Views:     1520,
			Ratings:   []int{5, 4, 5, 5},
			CreatedAt: sampleCreatedAt,
			Sample:    true,
		},
		{
			ID:       "sample2",
			Title:    "Chicken Biryani",
			Category: "non-veg",
			Ingredients: []string{
				"Chicken - 500g", "Basmati Rice - 2 cups", "Onion - 3", "Yogurt - 1 cup", "Biryani Masala - 2 tbsp",
			},
			Steps: []string{
				"Marinate chicken with yogurt and spices",
				"Fry onions until golden brown",
				"Cook marinated chicken partially",
				"Layer rice and chicken alternately",
				"Dum cook for 30 minutes",
			},
			PrepTime:  "30 mins",
			CookTime:  "45 mins",
			Servings:  6,
			Image:     "/static/images/chicken-biryani.jpg",
			Author:    "Chef Ahmad",
			Likes:     []string{"sample_user3", "sample_user4", "sample_user5"},
			Views:     3200,
			Ratings:   []int{5, 5, 5, 4, 5},
			CreatedAt: sampleCreatedAt,
			Sample:    true,
		},
		{
			ID:       "sample3",
			Title:    "Mango Lassi",
			Category: "drinks",
			Ingredients: []string{
				"Mango - 2", "Yogurt - 2 cups", "Sugar - 4 tbsp", "Ice cubes", "Cardamom powder",
			},
			Steps: []string{
				"Peel and chop mangoes",
				"Blend mango with yogurt",
				"Add sugar and cardamom",
				"Blend until smooth",
				"Serve cold with ice",
			},
			PrepTime:  "5 mins",
			CookTime:  "0 mins",
			Servings:  2,
			Image:     "/static/images/mango-lassi.jpg",
			Author:    "Chef Priya",
			Likes:     []string{"sample_user6"},
			Views:     980,
			Ratings:   []int{4, 4, 3, 5},
			CreatedAt: sampleCreatedAt,
			Sample:    true,
		},
		{
			ID:       "sample4",
			Title:    "Gulab Jamun",
			Category: "desserts",
			Ingredients: []string{
				"Khoya - 200g", "Maida - 2 tbsp", "Sugar - 2 cups", "Cardamom", "Rose water",
			},
			Steps: []string{
				"Make dough with khoya and maida",
				"Shape into small balls",
				"Deep fry on low heat until golden",
				"Make sugar syrup with cardamom",
				"Soak jamuns in warm syrup",
			},
			PrepTime:  "20 mins",
			CookTime:  "30 mins",
			Servings:  12,
			Image:     "/static/images/gulab-jamun.jpg",
			Author:    "Chef Sunita",
			Likes:     []string{"sample_user7", "sample_user8"},
			Views:     2100,
			Ratings:   []int{5, 5, 4, 3},
			CreatedAt: sampleCreatedAt,
			Sample:    true,
		},
	}
}
