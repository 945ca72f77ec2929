package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		avg     float64
		count   int
	}{
		{"no ratings", nil, 4.5, 0},
		{"rounds up from .75", []int{5, 4, 5, 5}, 4.8, 4},
		{"tie rounds to even", []int{5, 5, 4, 3}, 4.2, 4},
		{"tie rounds up to even", []int{3, 3, 3, 2}, 2.8, 4},
		{"rounds up past the tie", []int{1, 2, 2}, 1.7, 3},
		{"exact", []int{4, 4, 3, 5}, 4.0, 4},
		{"single", []int{2}, 2.0, 1},
		{"repeating decimal", []int{5, 5, 4}, 4.7, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Recipe{Ratings: tt.ratings}
			assert.Equal(t, tt.avg, r.AverageRating())
			assert.Equal(t, tt.count, r.RatingCount())
		})
	}
}

func TestLikeCount(t *testing.T) {
	r := &Recipe{Likes: []string{"a", "b"}}
	assert.Equal(t, 2, r.LikeCount())
	assert.True(t, r.LikedBy("a"))
	assert.False(t, r.LikedBy("c"))
	assert.False(t, r.LikedBy(""))

	legacy := 17
	r = &Recipe{LegacyLikes: &legacy}
	assert.Equal(t, 17, r.LikeCount())
	assert.False(t, r.LikedBy("a"))
}

func TestCategoryName(t *testing.T) {
	for id, want := range map[string]string{
		"veg":      "Vegetarian",
		"non-veg":  "Non-Vegetarian",
		"dessert":  "Desserts",
		"desserts": "Desserts",
		"drinks":   "Drinks",
		"snacks":   "Snacks",
		"soups":    "Other",
		"":         "Other",
	} {
		r := &Recipe{Category: id}
		assert.Equal(t, want, r.CategoryName(), id)
	}
}

func TestTranslatedSteps(t *testing.T) {
	r := &Recipe{
		Steps:   []string{"Boil", "Mash", "Serve"},
		StepsHi: []string{"उबालें"},
	}

	steps := r.TranslatedSteps()
	assert.Equal(t, []StepTranslation{
		{EN: "Boil", HI: "उबालें", MR: "Boil"},
		{EN: "Mash", HI: "Mash", MR: "Mash"},
		{EN: "Serve", HI: "Serve", MR: "Serve"},
	}, steps)
}

func TestClone(t *testing.T) {
	n := 3
	r := &Recipe{ID: "x", Likes: []string{"a"}, Ratings: []int{5}, LegacyLikes: &n}
	c := r.Clone()

	c.Likes[0] = "b"
	c.Ratings[0] = 1
	*c.LegacyLikes = 9

	assert.Equal(t, "a", r.Likes[0])
	assert.Equal(t, 5, r.Ratings[0])
	assert.Equal(t, 3, *r.LegacyLikes)
}

func TestParseRecipeRef(t *testing.T) {
	assert.Equal(t, SampleRef{SampleID: "sample3"}, ParseRecipeRef("sample3"))
	assert.Equal(t, StoredRef{RecipeID: "abc"}, ParseRecipeRef("abc"))
	assert.True(t, IsSample(ParseRecipeRef("sample1")))
	assert.False(t, IsSample(ParseRecipeRef("65f0c0ffee")))
	assert.Equal(t, "sample1", ParseRecipeRef("sample1").ID())
}

func TestRecipeUpdateEmpty(t *testing.T) {
	assert.True(t, RecipeUpdate{}.Empty())
	title := "New"
	assert.False(t, RecipeUpdate{Title: &title}.Empty())
	assert.False(t, RecipeUpdate{Steps: []string{}}.Empty())
}

func TestCategories(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, 6)
	assert.Equal(t, CategoryAll, cats[0].ID)
	cats[0].ID = "changed"
	assert.Equal(t, CategoryAll, Categories()[0].ID)
}
