// Package storetest holds the behaviour every store.Backend must share.
// Adapter packages run it against their own backend.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/smartchef/backend/internal/common"
	"github.com/pageza/smartchef/backend/internal/models"
	"github.com/pageza/smartchef/backend/internal/store"
)

// Harness builds a fresh, empty backend for one test. MissingID is a well
// formed id that names no record.
type Harness struct {
	New       func(t *testing.T) store.Backend
	MissingID string
}

// Run executes the shared backend behaviour tests.
func Run(t *testing.T, h Harness) {
	t.Run("Users", func(t *testing.T) { testUsers(t, h) })
	t.Run("RecipeCRUD", func(t *testing.T) { testRecipeCRUD(t, h) })
	t.Run("RecipeList", func(t *testing.T) { testRecipeList(t, h) })
	t.Run("RecipeSearchSpecialCharacters", func(t *testing.T) { testRecipeSearchSpecialCharacters(t, h) })
	t.Run("Engagement", func(t *testing.T) { testEngagement(t, h) })
	t.Run("Comments", func(t *testing.T) { testComments(t, h) })
}

func newUser(username, email string) *models.User {
	return &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: []byte("hash"),
		Language:     models.DefaultLanguage,
		Theme:        models.DefaultTheme,
		Favorites:    []string{},
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
}

func newRecipe(title, category, ownerID string, createdAt time.Time) *models.Recipe {
	return &models.Recipe{
		Title:       title,
		Category:    category,
		Ingredients: []string{"Salt - 1 tsp"},
		Steps:       []string{"Mix well"},
		PrepTime:    "10 mins",
		CookTime:    "20 mins",
		Servings:    2,
		Image:       models.DefaultRecipeImage,
		CreatedBy:   ownerID,
		CreatedAt:   createdAt.UTC().Truncate(time.Millisecond),
		Likes:       []string{},
		Ratings:     []int{},
	}
}

func testUsers(t *testing.T, h Harness) {
	ctx := context.Background()
	b := h.New(t)
	users := b.Users()

	asha := newUser("asha", "asha@example.com")
	require.NoError(t, users.Create(ctx, asha))
	require.NotEmpty(t, asha.ID)

	err := users.Create(ctx, newUser("asha", "other@example.com"))
	assert.ErrorIs(t, err, common.ErrDuplicateUsername)
	err = users.Create(ctx, newUser("other", "asha@example.com"))
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)

	got, err := users.GetByID(ctx, asha.ID)
	require.NoError(t, err)
	assert.Equal(t, "asha", got.Username)
	assert.Equal(t, []byte("hash"), got.PasswordHash)
	assert.Equal(t, models.DefaultLanguage, got.Language)

	byName, err := users.GetByUsername(ctx, "asha")
	require.NoError(t, err)
	assert.Equal(t, asha.ID, byName.ID)

	found, err := users.FindByUsernameOrEmail(ctx, "nobody", "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, asha.ID, found.ID)

	_, err = users.FindByUsernameOrEmail(ctx, "nobody", "nobody@example.com")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = users.GetByID(ctx, h.MissingID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = users.GetByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, common.ErrMalformedID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, users.UpdateSettings(ctx, asha.ID, models.UserSettings{Theme: "dark"}))
	got, err = users.GetByID(ctx, asha.ID)
	require.NoError(t, err)
	assert.Equal(t, "dark", got.Theme)
	assert.Equal(t, models.DefaultLanguage, got.Language)

	assert.ErrorIs(t, users.UpdateSettings(ctx, asha.ID, models.UserSettings{}), common.ErrNoChanges)
	assert.ErrorIs(t, users.UpdateSettings(ctx, h.MissingID, models.UserSettings{Language: "hi"}), common.ErrNotFound)
}

func testRecipeCRUD(t *testing.T, h Harness) {
	ctx := context.Background()
	b := h.New(t)
	owner := newUser("ravi", "ravi@example.com")
	require.NoError(t, b.Users().Create(ctx, owner))
	recipes := b.Recipes()

	r := newRecipe("Dal Tadka", "veg", owner.ID, time.Now())
	r.StepsHi = []string{"अच्छी तरह मिलाएं"}
	require.NoError(t, recipes.Create(ctx, r))
	require.NotEmpty(t, r.ID)

	got, err := recipes.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dal Tadka", got.Title)
	assert.Equal(t, owner.ID, got.CreatedBy)
	assert.Equal(t, []string{"Salt - 1 tsp"}, got.Ingredients)
	assert.Equal(t, []string{"अच्छी तरह मिलाएं"}, got.StepsHi)
	assert.Empty(t, got.Likes)
	assert.Empty(t, got.Ratings)
	assert.Zero(t, got.Views)

	byTitle, err := recipes.FindByTitle(ctx, "Dal Tadka")
	require.NoError(t, err)
	assert.Equal(t, r.ID, byTitle.ID)
	_, err = recipes.FindByTitle(ctx, "Missing")
	assert.ErrorIs(t, err, common.ErrNotFound)

	title := "Dal Fry"
	servings := 6
	require.NoError(t, recipes.Update(ctx, r.ID, models.RecipeUpdate{Title: &title, Servings: &servings}))
	got, err = recipes.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dal Fry", got.Title)
	assert.Equal(t, 6, got.Servings)
	assert.Equal(t, "veg", got.Category)
	assert.Equal(t, "10 mins", got.PrepTime)

	require.NoError(t, recipes.Update(ctx, r.ID, models.RecipeUpdate{}))
	assert.ErrorIs(t, recipes.Update(ctx, h.MissingID, models.RecipeUpdate{Title: &title}), common.ErrNotFound)

	require.NoError(t, recipes.IncrementViews(ctx, r.ID))
	require.NoError(t, recipes.IncrementViews(ctx, r.ID))
	got, err = recipes.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Views)

	require.NoError(t, recipes.Delete(ctx, r.ID))
	_, err = recipes.GetByID(ctx, r.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.ErrorIs(t, recipes.Delete(ctx, r.ID), common.ErrNotFound)

	_, err = recipes.GetByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, common.ErrMalformedID)
}

func testRecipeList(t *testing.T, h Harness) {
	ctx := context.Background()
	b := h.New(t)
	owner := newUser("meera", "meera@example.com")
	require.NoError(t, b.Users().Create(ctx, owner))
	recipes := b.Recipes()

	base := time.Now().Add(-time.Hour)
	seed := []*models.Recipe{
		newRecipe("Paneer Tikka", "veg", owner.ID, base),
		newRecipe("Chicken Curry", "non-veg", "", base.Add(time.Minute)),
		newRecipe("Kheer", "desserts", owner.ID, base.Add(2*time.Minute)),
	}
	seed[2].Ingredients = []string{"Rice - 1/4 cup", "Milk (full fat) - 1 l"}
	for _, r := range seed {
		require.NoError(t, recipes.Create(ctx, r))
	}

	all, err := recipes.List(ctx, models.RecipeQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Kheer", "Chicken Curry", "Paneer Tikka"}, titles(all))

	veg, err := recipes.List(ctx, models.RecipeQuery{Category: "veg"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Paneer Tikka"}, titles(veg))

	search, err := recipes.List(ctx, models.RecipeQuery{Search: "MILK"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Kheer"}, titles(search))

	search, err = recipes.List(ctx, models.RecipeQuery{Search: "(full"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Kheer"}, titles(search))

	search, err = recipes.List(ctx, models.RecipeQuery{Search: "non-"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Chicken Curry"}, titles(search))

	limited, err := recipes.List(ctx, models.RecipeQuery{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Kheer", "Chicken Curry"}, titles(limited))

	mine, err := recipes.List(ctx, models.RecipeQuery{OwnerID: owner.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"Kheer", "Paneer Tikka"}, titles(mine))

	none, err := recipes.List(ctx, models.RecipeQuery{Category: "drinks"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testRecipeSearchSpecialCharacters(t *testing.T, h Harness) {
	ctx := context.Background()
	b := h.New(t)
	recipes := b.Recipes()

	r := newRecipe("Sandwich", "snacks", "", time.Now())
	r.Ingredients = []string{"Salt & Pepper", "Bread <white>"}
	r.Steps = []string{`Say "cheese"`, "Toast"}
	require.NoError(t, recipes.Create(ctx, r))

	for _, term := range []string{"salt & pepper", "<WHITE>", `"cheese"`, "toast"} {
		found, err := recipes.List(ctx, models.RecipeQuery{Search: term})
		require.NoError(t, err)
		assert.Equal(t, []string{"Sandwich"}, titles(found), term)
	}

	for _, term := range []string{`pepper","bread`, "pepper bread", `\u0026`} {
		found, err := recipes.List(ctx, models.RecipeQuery{Search: term})
		require.NoError(t, err)
		assert.Empty(t, found, term)
	}

	got, err := recipes.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Salt & Pepper", "Bread <white>"}, got.Ingredients)

	require.NoError(t, recipes.Update(ctx, r.ID, models.RecipeUpdate{Ingredients: []string{"Mustard & Cress"}}))
	found, err := recipes.List(ctx, models.RecipeQuery{Search: "mustard & cress"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sandwich"}, titles(found))
	found, err = recipes.List(ctx, models.RecipeQuery{Search: "salt"})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func testEngagement(t *testing.T, h Harness) {
	ctx := context.Background()
	b := h.New(t)
	u1 := newUser("u1", "u1@example.com")
	u2 := newUser("u2", "u2@example.com")
	require.NoError(t, b.Users().Create(ctx, u1))
	require.NoError(t, b.Users().Create(ctx, u2))
	recipes := b.Recipes()

	r := newRecipe("Poha", "snacks", u1.ID, time.Now())
	require.NoError(t, recipes.Create(ctx, r))

	want := []models.LikeAction{models.Liked, models.Unliked, models.Liked, models.Unliked}
	for i, w := range want {
		action, err := recipes.ToggleLike(ctx, r.ID, u1.ID)
		require.NoError(t, err)
		assert.Equal(t, w, action, "toggle %d", i)
	}

	_, err := recipes.ToggleLike(ctx, r.ID, u1.ID)
	require.NoError(t, err)
	_, err = recipes.ToggleLike(ctx, r.ID, u2.ID)
	require.NoError(t, err)
	got, err := recipes.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.LikeCount())
	assert.True(t, got.LikedBy(u1.ID))
	assert.True(t, got.LikedBy(u2.ID))

	_, err = recipes.ToggleLike(ctx, h.MissingID, u1.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	for _, v := range []int{5, 4, 5, 5, 5} {
		require.NoError(t, recipes.AddRating(ctx, r.ID, u1.ID, v))
	}
	got, err = recipes.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 4, 5, 5, 5}, got.Ratings)
	assert.Equal(t, 4.8, got.AverageRating())

	assert.ErrorIs(t, recipes.AddRating(ctx, h.MissingID, u1.ID, 3), common.ErrNotFound)
}

func testComments(t *testing.T, h Harness) {
	ctx := context.Background()
	b := h.New(t)
	u := newUser("commenter", "c@example.com")
	require.NoError(t, b.Users().Create(ctx, u))
	r := newRecipe("Upma", "snacks", u.ID, time.Now())
	require.NoError(t, b.Recipes().Create(ctx, r))

	base := time.Now().UTC().Truncate(time.Millisecond)
	first := &models.Comment{RecipeID: r.ID, UserID: u.ID, Text: "First", CreatedAt: base}
	second := &models.Comment{RecipeID: r.ID, UserID: u.ID, Text: "Second", CreatedAt: base.Add(time.Second)}
	require.NoError(t, b.Comments().Create(ctx, first))
	require.NoError(t, b.Comments().Create(ctx, second))
	assert.NotEmpty(t, first.ID)

	comments, err := b.Comments().ListByRecipe(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "Second", comments[0].Text)
	assert.Equal(t, "First", comments[1].Text)
	assert.Equal(t, u.ID, comments[0].UserID)

	empty, err := b.Comments().ListByRecipe(ctx, h.MissingID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func titles(rs []*models.Recipe) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Title
	}
	return out
}
