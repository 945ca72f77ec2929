package sqlstore

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/smartchef/backend/internal/models"
)

type commentRepository struct {
	db *gorm.DB
}

func (r *commentRepository) ListByRecipe(ctx context.Context, recipeID string) ([]*models.Comment, error) {
	if err := parseID("comments.list", recipeID); err != nil {
		return nil, err
	}
	var rows []commentRow
	err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, translate("comments.list", err)
	}

	comments := make([]*models.Comment, 0, len(rows))
	for i := range rows {
		comments = append(comments, rows[i].toModel())
	}
	return comments, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := parseID("comments.create", comment.RecipeID); err != nil {
		return err
	}
	row := &commentRow{
		ID:        uuid.NewString(),
		RecipeID:  comment.RecipeID,
		UserID:    comment.UserID,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return translate("comments.create", err)
	}
	comment.ID = row.ID
	comment.CreatedAt = row.CreatedAt
	return nil
}
