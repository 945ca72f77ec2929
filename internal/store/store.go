// Package store declares the persistence ports used by the services. The
// mongostore and sqlstore packages implement them; Unavailable stands in
// when no store could be reached at startup.
package store

import (
	"context"

	"github.com/pageza/smartchef/backend/internal/models"
)

// DefaultListLimit caps recipe listings that do not ask for a limit.
const DefaultListLimit = 50

// UserRepository persists accounts.
type UserRepository interface {
	// Create assigns user.ID on success.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// FindByUsernameOrEmail returns the first user whose username equals
	// username or whose email equals email.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	UpdateSettings(ctx context.Context, id string, settings models.UserSettings) error
}

// RecipeRepository persists recipes along with their likes and ratings.
type RecipeRepository interface {
	// List applies q.Category as an exact match (empty means any), q.Search
	// as a case-insensitive substring over title, ingredients, steps and
	// category, newest first, at most q.Limit rows (0 means unlimited).
	List(ctx context.Context, q models.RecipeQuery) ([]*models.Recipe, error)
	GetByID(ctx context.Context, id string) (*models.Recipe, error)
	FindByTitle(ctx context.Context, title string) (*models.Recipe, error)
	// Create assigns recipe.ID on success and keeps CreatedAt if set.
	Create(ctx context.Context, recipe *models.Recipe) error
	// Update fails with common.ErrNotFound when the recipe does not exist.
	Update(ctx context.Context, id string, update models.RecipeUpdate) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	// ToggleLike removes userID from the like set when present and adds it
	// otherwise. A legacy numeric like counter is replaced by {userID}.
	ToggleLike(ctx context.Context, id, userID string) (models.LikeAction, error)
	AddRating(ctx context.Context, id, userID string, value int) error
}

// CommentRepository persists comments.
type CommentRepository interface {
	// ListByRecipe returns the comments of a recipe, newest first.
	ListByRecipe(ctx context.Context, recipeID string) ([]*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
}

// Backend bundles the repositories of one store.
type Backend interface {
	Name() string
	Available() bool
	Ping(ctx context.Context) error
	Users() UserRepository
	Recipes() RecipeRepository
	Comments() CommentRepository
	Close(ctx context.Context) error
}
