package testhelpers

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/smartchef/backend/internal/models"
	"github.com/pageza/smartchef/backend/internal/store"
)

// TestPassword is the password of every user created by CreateTestUser.
const TestPassword = "password123"

// CreateTestUser stores a user named username with TestPassword.
func CreateTestUser(t *testing.T, backend store.Backend, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Language:     models.DefaultLanguage,
		Theme:        models.DefaultTheme,
		Favorites:    []string{},
		CreatedAt:    time.Now().UTC(),
	}
	if err := backend.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestRecipe stores a recipe owned by ownerID (empty for none),
// created at createdAt.
func CreateTestRecipe(t *testing.T, backend store.Backend, ownerID, title string, createdAt time.Time) *models.Recipe {
	t.Helper()
	r := &models.Recipe{
		Title:       title,
		Category:    "veg",
		Ingredients: []string{"Rice - 1 cup", "Water - 2 cups"},
		Steps:       []string{"Rinse the rice", "Boil until soft"},
		StepsHi:     []string{},
		StepsMr:     []string{},
		PrepTime:    "5 mins",
		CookTime:    "20 mins",
		Servings:    2,
		Image:       models.DefaultRecipeImage,
		CreatedBy:   ownerID,
		CreatedAt:   createdAt.UTC(),
		Likes:       []string{},
		Ratings:     []int{},
	}
	if err := backend.Recipes().Create(context.Background(), r); err != nil {
		t.Fatalf("failed to create test recipe: %v", err)
	}
	return r
}
