package store

import (
	"context"

	"github.com/pageza/smartchef/backend/internal/common"
	"github.com/pageza/smartchef/backend/internal/models"
)

// Unavailable returns the backend used when the store could not be reached.
// Every call fails with common.ErrStoreUnavailable.
func Unavailable() Backend { return unavailable{} }

type unavailable struct{}

func errUnavailable(op string) error {
	return common.E(common.KindStoreUnavailable, op, nil)
}

func (unavailable) Name() string                { return "unavailable" }
func (unavailable) Available() bool             { return false }
func (unavailable) Ping(context.Context) error  { return errUnavailable("ping") }
func (unavailable) Close(context.Context) error { return nil }
func (unavailable) Users() UserRepository       { return unavailableUsers{} }
func (unavailable) Recipes() RecipeRepository   { return unavailableRecipes{} }
func (unavailable) Comments() CommentRepository { return unavailableComments{} }

type unavailableUsers struct{}

func (unavailableUsers) Create(context.Context, *models.User) error {
	return errUnavailable("users.create")
}

func (unavailableUsers) GetByID(context.Context, string) (*models.User, error) {
	return nil, errUnavailable("users.get")
}

func (unavailableUsers) GetByUsername(context.Context, string) (*models.User, error) {
	return nil, errUnavailable("users.get_by_username")
}

func (unavailableUsers) FindByUsernameOrEmail(context.Context, string, string) (*models.User, error) {
	return nil, errUnavailable("users.find")
}

func (unavailableUsers) UpdateSettings(context.Context, string, models.UserSettings) error {
	return errUnavailable("users.update_settings")
}

type unavailableRecipes struct{}

func (unavailableRecipes) List(context.Context, models.RecipeQuery) ([]*models.Recipe, error) {
	return nil, errUnavailable("recipes.list")
}

func (unavailableRecipes) GetByID(context.Context, string) (*models.Recipe, error) {
	return nil, errUnavailable("recipes.get")
}

func (unavailableRecipes) FindByTitle(context.Context, string) (*models.Recipe, error) {
	return nil, errUnavailable("recipes.find_by_title")
}

func (unavailableRecipes) Create(context.Context, *models.Recipe) error {
	return errUnavailable("recipes.create")
}

func (unavailableRecipes) Update(context.Context, string, models.RecipeUpdate) error {
	return errUnavailable("recipes.update")
}

func (unavailableRecipes) Delete(context.Context, string) error {
	return errUnavailable("recipes.delete")
}

func (unavailableRecipes) IncrementViews(context.Context, string) error {
	return errUnavailable("recipes.increment_views")
}

func (unavailableRecipes) ToggleLike(context.Context, string, string) (models.LikeAction, error) {
	return "", errUnavailable("recipes.toggle_like")
}

func (unavailableRecipes) AddRating(context.Context, string, string, int) error {
	return errUnavailable("recipes.add_rating")
}

type unavailableComments struct{}

func (unavailableComments) ListByRecipe(context.Context, string) ([]*models.Comment, error) {
	return nil, errUnavailable("comments.list")
}

func (unavailableComments) Create(context.Context, *models.Comment) error {
	return errUnavailable("comments.create")
}
