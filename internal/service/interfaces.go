package service

import (
	"context"
	"io"
	"time"

	"github.com/pageza/smartchef/backend/internal/models"
	"github.com/pageza/smartchef/backend/internal/types"
)

// TokenDenylist remembers revoked token ids until they expire.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// IAuthService defines the interface for account and token operations
type IAuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, usernameOrEmail, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateSettings(ctx context.Context, id string, settings models.UserSettings) error
	GenerateToken(user *models.User) (string, error)
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
	Logout(ctx context.Context, claims *types.TokenClaims) error
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	List(ctx context.Context, q models.RecipeQuery) (*RecipeList, error)
	Get(ctx context.Context, ref models.RecipeRef) (*models.Recipe, error)
	Create(ctx context.Context, ownerID string, in models.RecipeInput) (*models.Recipe, error)
	Update(ctx context.Context, id, actorID string, update models.RecipeUpdate) error
	Delete(ctx context.Context, id, actorID string) error
	IncrementViews(ctx context.Context, ref models.RecipeRef)
	ListForManagement(ctx context.Context, ownerID string) ([]*models.Recipe, error)
	ProfileStats(ctx context.Context, userID string) (*models.ProfileStats, error)
	Trending(ctx context.Context, n int) ([]*models.Recipe, error)
	Import(ctx context.Context, recipe *models.Recipe) (bool, error)
}

// IEngagementService defines the interface for likes, ratings and comments
type IEngagementService interface {
	ToggleLike(ctx context.Context, ref models.RecipeRef, userID string) (models.LikeAction, error)
	AddRating(ctx context.Context, ref models.RecipeRef, userID string, value int) error
	ListComments(ctx context.Context, ref models.RecipeRef) ([]*models.Comment, error)
	AddComment(ctx context.Context, ref models.RecipeRef, userID, text string) (*models.Comment, error)
}

// IImportService defines the interface for bulk recipe imports
type IImportService interface {
	ImportMealDB(ctx context.Context, limit int) (int, error)
	ImportSeed(ctx context.Context, r io.Reader) (int, error)
}

// IImageService defines the interface for recipe image uploads
type IImageService interface {
	SaveRecipeImage(ctx context.Context, filename string, body io.Reader, contentType string) (string, error)
}
