package service

import (
	"context"
	"errors"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pageza/smartchef/backend/internal/common"
	"github.com/pageza/smartchef/backend/internal/logging"
	"github.com/pageza/smartchef/backend/internal/models"
	"github.com/pageza/smartchef/backend/internal/store"
)

// Fallback tells why a listing is made of sample recipes.
type Fallback string

const (
	FallbackNone        Fallback = ""
	FallbackUnavailable Fallback = "unavailable"
	FallbackEmpty       Fallback = "empty"
)

const trendingPool = 100

// RecipeList is the result of a listing.
type RecipeList struct {
	Recipes  []*models.Recipe `json:"recipes"`
	Fallback Fallback         `json:"fallback,omitempty"`
}

// RecipeOptions holds the policy switches of the recipe service.
type RecipeOptions struct {
	// EnforceOwnership rejects updates and deletes by anyone but the owner.
	EnforceOwnership bool
	// SampleFallbackOnEmpty serves the sample catalog when a healthy store
	// has no matching recipe.
	SampleFallbackOnEmpty bool
}

// RecipeService handles recipe operations
type RecipeService struct {
	backend store.Backend
	samples *SampleCatalog
	opts    RecipeOptions
	now     func() time.Time
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(backend store.Backend, samples *SampleCatalog, opts RecipeOptions) *RecipeService {
	return &RecipeService{
		backend: backend,
		samples: samples,
		opts:    opts,
		now:     time.Now,
	}
}

// List returns recipes matching q, newest first. A failing store yields the
// sample catalog instead of an error; only a cancelled context is returned.
func (s *RecipeService) List(ctx context.Context, q models.RecipeQuery) (*RecipeList, error) {
	if q.Category == models.CategoryAll {
		q.Category = ""
	}
	if q.Limit <= 0 {
		q.Limit = store.DefaultListLimit
	}

	recipes, err := s.backend.Recipes().List(ctx, q)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logging.For("recipes").WithError(err).Warn("Error fetching recipes, serving samples")
		return &RecipeList{Recipes: s.samples.All(), Fallback: FallbackUnavailable}, nil
	}
	if len(recipes) == 0 && s.opts.SampleFallbackOnEmpty {
		return &RecipeList{Recipes: s.samples.All(), Fallback: FallbackEmpty}, nil
	}

	authors := newAuthorResolver(s.backend.Users())
	for _, r := range recipes {
		r.Author = authors.display(ctx, r.CreatedBy)
	}
	return &RecipeList{Recipes: recipes}, nil
}

// Get resolves a recipe reference. Sample references never reach the store.
func (s *RecipeService) Get(ctx context.Context, ref models.RecipeRef) (*models.Recipe, error) {
	switch ref := ref.(type) {
	case models.SampleRef:
		if r, ok := s.samples.Get(ref.SampleID); ok {
			return r, nil
		}
		return nil, common.E(common.KindNotFound, "recipes.get", nil)
	case models.StoredRef:
		r, err := s.backend.Recipes().GetByID(ctx, ref.RecipeID)
		if err != nil {
			// ParseRecipeRef sends every sample id to SampleRef, so this
			// only matches a StoredRef built by hand around a sample id.
			if sample, ok := s.samples.Get(ref.RecipeID); ok {
				return sample, nil
			}
			logging.For("recipes").WithError(err).WithField("recipe_id", ref.RecipeID).Debug("Recipe lookup failed")
			return nil, err
		}
		r.Author = newAuthorResolver(s.backend.Users()).display(ctx, r.CreatedBy)
		return r, nil
	default:
		return nil, common.E(common.KindMalformedID, "recipes.get", nil)
	}
}

// Create stores a new recipe owned by ownerID.
func (s *RecipeService) Create(ctx context.Context, ownerID string, in models.RecipeInput) (*models.Recipe, error) {
	image := in.Image
	if image == "" {
		image = models.DefaultRecipeImage
	}
	r := &models.Recipe{
		Title:       in.Title,
		TitleHi:     in.TitleHi,
		TitleMr:     in.TitleMr,
		Category:    in.Category,
		Ingredients: nonNil(in.Ingredients),
		Steps:       nonNil(in.Steps),
		StepsHi:     nonNil(in.StepsHi),
		StepsMr:     nonNil(in.StepsMr),
		PrepTime:    in.PrepTime,
		CookTime:    in.CookTime,
		Servings:    in.Servings,
		Image:       image,
		CreatedBy:   ownerID,
		CreatedAt:   s.now().UTC(),
		Likes:       []string{},
		Ratings:     []int{},
	}
	if err := s.backend.Recipes().Create(ctx, r); err != nil {
		logging.For("recipes").WithError(err).Error("Error creating recipe")
		return nil, err
	}
	r.Author = newAuthorResolver(s.backend.Users()).display(ctx, ownerID)
	return r, nil
}

// Update overwrites the fields present in update.
func (s *RecipeService) Update(ctx context.Context, id, actorID string, update models.RecipeUpdate) error {
	if err := s.authorize(ctx, "recipes.update", id, actorID); err != nil {
		return err
	}
	return s.backend.Recipes().Update(ctx, id, update)
}

// Delete removes a recipe. Under the relaxed policy anyone may delete.
func (s *RecipeService) Delete(ctx context.Context, id, actorID string) error {
	if err := s.authorize(ctx, "recipes.delete", id, actorID); err != nil {
		return err
	}
	if err := s.backend.Recipes().Delete(ctx, id); err != nil {
		return err
	}
	logging.For("recipes").WithFields(log.Fields{
		"recipe_id": id,
		"actor_id":  actorID,
	}).Info("Recipe deleted")
	return nil
}

func (s *RecipeService) authorize(ctx context.Context, op, id, actorID string) error {
	if !s.opts.EnforceOwnership {
		return nil
	}
	r, err := s.backend.Recipes().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if r.CreatedBy == "" || r.CreatedBy != actorID {
		return common.E(common.KindForbidden, op, nil)
	}
	return nil
}

// IncrementViews bumps the view counter and ignores every failure.
func (s *RecipeService) IncrementViews(ctx context.Context, ref models.RecipeRef) {
	stored, ok := ref.(models.StoredRef)
	if !ok {
		return
	}
	if err := s.backend.Recipes().IncrementViews(ctx, stored.RecipeID); err != nil {
		logging.For("recipes").WithError(err).WithField("recipe_id", stored.RecipeID).Debug("View increment skipped")
	}
}

// ListForManagement lists every recipe, or only ownerID's when set, without
// limit and without sample fallback.
func (s *RecipeService) ListForManagement(ctx context.Context, ownerID string) ([]*models.Recipe, error) {
	recipes, err := s.backend.Recipes().List(ctx, models.RecipeQuery{OwnerID: ownerID})
	if err != nil {
		if errors.Is(err, common.ErrStoreUnavailable) {
			return []*models.Recipe{}, nil
		}
		logging.For("recipes").WithError(err).Error("Error listing recipes for management")
		return nil, err
	}

	authors := newAuthorResolver(s.backend.Users())
	for _, r := range recipes {
		r.Author = authors.management(ctx, r)
	}
	return recipes, nil
}

// ProfileStats sums the recipes, views and likes of userID's recipes.
func (s *RecipeService) ProfileStats(ctx context.Context, userID string) (*models.ProfileStats, error) {
	recipes, err := s.backend.Recipes().List(ctx, models.RecipeQuery{OwnerID: userID})
	if err != nil {
		return nil, err
	}
	stats := &models.ProfileStats{TotalRecipes: len(recipes)}
	for _, r := range recipes {
		stats.TotalViews += r.Views
		stats.TotalLikes += r.LikeCount()
	}
	return stats, nil
}

// Trending returns the n most liked recipes among the newest listed ones.
func (s *RecipeService) Trending(ctx context.Context, n int) ([]*models.Recipe, error) {
	list, err := s.List(ctx, models.RecipeQuery{Limit: trendingPool})
	if err != nil {
		return nil, err
	}
	recipes := list.Recipes
	sort.SliceStable(recipes, func(i, j int) bool {
		return recipes[i].LikeCount() > recipes[j].LikeCount()
	})
	if len(recipes) > n {
		recipes = recipes[:n]
	}
	return recipes, nil
}

// Import inserts recipe unless one with the same title exists. It reports
// whether the recipe was inserted.
func (s *RecipeService) Import(ctx context.Context, recipe *models.Recipe) (bool, error) {
	_, err := s.backend.Recipes().FindByTitle(ctx, recipe.Title)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, common.ErrNotFound):
		return false, err
	}

	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = s.now().UTC()
	}
	if recipe.Image == "" {
		recipe.Image = models.DefaultRecipeImage
	}
	recipe.Ingredients = nonNil(recipe.Ingredients)
	recipe.Steps = nonNil(recipe.Steps)
	recipe.Likes = nonNil(recipe.Likes)
	if recipe.Ratings == nil {
		recipe.Ratings = []int{}
	}
	if err := s.backend.Recipes().Create(ctx, recipe); err != nil {
		return false, err
	}
	return true, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
