package service

import (
	"context"
	"time"

	"github.com/pageza/smartchef/backend/internal/common"
	"github.com/pageza/smartchef/backend/internal/logging"
	"github.com/pageza/smartchef/backend/internal/models"
	"github.com/pageza/smartchef/backend/internal/store"
)

// EngagementService handles likes, ratings and comments. Interactions with
// sample recipes succeed without touching the store.
type EngagementService struct {
	backend store.Backend
	now     func() time.Time
}

func NewEngagementService(backend store.Backend) *EngagementService {
	return &EngagementService{backend: backend, now: time.Now}
}

// ToggleLike adds userID to the recipe's likes, or removes it when present.
func (s *EngagementService) ToggleLike(ctx context.Context, ref models.RecipeRef, userID string) (models.LikeAction, error) {
	switch ref := ref.(type) {
	case models.SampleRef:
		return models.Liked, nil
	case models.StoredRef:
		action, err := s.backend.Recipes().ToggleLike(ctx, ref.RecipeID, userID)
		if err != nil {
			logging.For("engagement").WithError(err).WithField("recipe_id", ref.RecipeID).Error("Like toggle error")
			return "", err
		}
		return action, nil
	default:
		return "", common.E(common.KindMalformedID, "engagement.toggle_like", nil)
	}
}

// AddRating appends value to the recipe's ratings. Repeated ratings by the
// same user are all kept.
func (s *EngagementService) AddRating(ctx context.Context, ref models.RecipeRef, userID string, value int) error {
	switch ref := ref.(type) {
	case models.SampleRef:
		return nil
	case models.StoredRef:
		return s.backend.Recipes().AddRating(ctx, ref.RecipeID, userID, value)
	default:
		return common.E(common.KindMalformedID, "engagement.add_rating", nil)
	}
}

// ListComments returns the recipe's comments, newest first.
func (s *EngagementService) ListComments(ctx context.Context, ref models.RecipeRef) ([]*models.Comment, error) {
	stored, ok := ref.(models.StoredRef)
	if !ok {
		return []*models.Comment{}, nil
	}
	comments, err := s.backend.Comments().ListByRecipe(ctx, stored.RecipeID)
	if err != nil {
		return nil, err
	}
	authors := newAuthorResolver(s.backend.Users())
	for _, c := range comments {
		c.Author = authors.display(ctx, c.UserID)
	}
	return comments, nil
}

// AddComment stores a comment. On a sample recipe it returns a comment that
// is never persisted.
func (s *EngagementService) AddComment(ctx context.Context, ref models.RecipeRef, userID, text string) (*models.Comment, error) {
	switch ref := ref.(type) {
	case models.SampleRef:
		return &models.Comment{
			ID:        models.SampleCommentID,
			RecipeID:  ref.SampleID,
			Text:      text,
			Author:    models.SampleCommentAuthor,
			CreatedAt: s.now().UTC(),
		}, nil
	case models.StoredRef:
		c := &models.Comment{
			RecipeID:  ref.RecipeID,
			UserID:    userID,
			Text:      text,
			CreatedAt: s.now().UTC(),
		}
		if err := s.backend.Comments().Create(ctx, c); err != nil {
			logging.For("engagement").WithError(err).WithField("recipe_id", ref.RecipeID).Error("Error adding comment")
			return nil, err
		}
		c.Author = newAuthorResolver(s.backend.Users()).display(ctx, userID)
		return c, nil
	default:
		return nil, common.E(common.KindMalformedID, "engagement.add_comment", nil)
	}
}
