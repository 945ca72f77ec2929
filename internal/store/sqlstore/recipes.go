package sqlstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/smartchef/backend/internal/common"
	"github.com/pageza/smartchef/backend/internal/models"
)

const searchClause = `LOWER(title) LIKE ? ESCAPE '\' OR LOWER(ingredients_text) LIKE ? ESCAPE '\' OR ` +
	`LOWER(steps_text) LIKE ? ESCAPE '\' OR LOWER(category) LIKE ? ESCAPE '\'`

type recipeRepository struct {
	db *gorm.DB
}

func withEngagement(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Likes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Preload("Ratings", func(db *gorm.DB) *gorm.DB { return db.Order("id") })
}

func (r *recipeRepository) List(ctx context.Context, q models.RecipeQuery) ([]*models.Recipe, error) {
	query := r.db.WithContext(ctx).Model(&recipeRow{})

	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.OwnerID != "" {
		if err := parseID("recipes.list", q.OwnerID); err != nil {
			return nil, err
		}
		query = query.Where("created_by = ?", q.OwnerID)
	}
	if q.Search != "" {
		like := containsPattern(q.Search)
		query = query.Where(searchClause, like, like, like, like)
	}
	query = query.Order("created_at DESC")
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var rows []recipeRow
	if err := withEngagement(query).Find(&rows).Error; err != nil {
		return nil, translate("recipes.list", err)
	}

	recipes := make([]*models.Recipe, 0, len(rows))
	for i := range rows {
		recipes = append(recipes, rows[i].toModel())
	}
	return recipes, nil
}

func (r *recipeRepository) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	if err := parseID("recipes.get", id); err != nil {
		return nil, err
	}
	var row recipeRow
	if err := withEngagement(r.db.WithContext(ctx)).First(&row, "id = ?", id).Error; err != nil {
		return nil, translate("recipes.get", err)
	}
	return row.toModel(), nil
}

func (r *recipeRepository) FindByTitle(ctx context.Context, title string) (*models.Recipe, error) {
	var row recipeRow
	if err := withEngagement(r.db.WithContext(ctx)).First(&row, "title = ?", title).Error; err != nil {
		return nil, translate("recipes.find_by_title", err)
	}
	return row.toModel(), nil
}

func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	row := newRecipeRow(recipe)
	row.ID = uuid.NewString()
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	// Likes and ratings of a new recipe start empty.
	if err := r.db.WithContext(ctx).Omit("Likes", "Ratings").Create(row).Error; err != nil {
		return translate("recipes.create", err)
	}
	recipe.ID = row.ID
	recipe.CreatedAt = row.CreatedAt
	return nil
}

func (r *recipeRepository) exists(ctx context.Context, op, id string) error {
	if err := parseID(op, id); err != nil {
		return err
	}
	var n int64
	if err := r.db.WithContext(ctx).Model(&recipeRow{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return translate(op, err)
	}
	if n == 0 {
		return common.E(common.KindNotFound, op, nil)
	}
	return nil
}

func (r *recipeRepository) Update(ctx context.Context, id string, update models.RecipeUpdate) error {
	if err := r.exists(ctx, "recipes.update", id); err != nil {
		return err
	}
	updates := updateColumns(update)
	if len(updates) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Model(&recipeRow{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return translate("recipes.update", err)
	}
	return nil
}

func updateColumns(u models.RecipeUpdate) map[string]interface{} {
	cols := map[string]interface{}{}
	setString := func(col string, v *string) {
		if v != nil {
			cols[col] = *v
		}
	}
	setList := func(col string, v []string) {
		if v != nil {
			cols[col] = StringList(v)
		}
	}
	setString("title", u.Title)
	setString("title_hi", u.TitleHi)
	setString("title_mr", u.TitleMr)
	setString("category", u.Category)
	setList("ingredients", u.Ingredients)
	setList("steps", u.Steps)
	if u.Ingredients != nil {
		cols["ingredients_text"] = searchText(u.Ingredients)
	}
	if u.Steps != nil {
		cols["steps_text"] = searchText(u.Steps)
	}
	setList("steps_hi", u.StepsHi)
	setList("steps_mr", u.StepsMr)
	setString("prep_time", u.PrepTime)
	setString("cook_time", u.CookTime)
	setString("image", u.Image)
	if u.Servings != nil {
		cols["servings"] = *u.Servings
	}
	return cols
}

func (r *recipeRepository) Delete(ctx context.Context, id string) error {
	if err := parseID("recipes.delete", id); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&recipeRow{})
		if res.Error != nil {
			return translate("recipes.delete", res.Error)
		}
		if res.RowsAffected == 0 {
			return common.E(common.KindNotFound, "recipes.delete", nil)
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&likeRow{}).Error; err != nil {
			return translate("recipes.delete", err)
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&ratingRow{}).Error; err != nil {
			return translate("recipes.delete", err)
		}
		return nil
	})
}

func (r *recipeRepository) IncrementViews(ctx context.Context, id string) error {
	if err := parseID("recipes.increment_views", id); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(&recipeRow{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return translate("recipes.increment_views", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.E(common.KindNotFound, "recipes.increment_views", nil)
	}
	return nil
}

func (r *recipeRepository) ToggleLike(ctx context.Context, id, userID string) (models.LikeAction, error) {
	if err := parseID("recipes.toggle_like", id); err != nil {
		return "", err
	}
	db := r.db.WithContext(ctx)

	res := db.Where("recipe_id = ? AND user_id = ?", id, userID).Delete(&likeRow{})
	if res.Error != nil {
		return "", translate("recipes.toggle_like", res.Error)
	}
	if res.RowsAffected > 0 {
		return models.Unliked, nil
	}

	if err := r.exists(ctx, "recipes.toggle_like", id); err != nil {
		return "", err
	}
	err := db.Create(&likeRow{RecipeID: id, UserID: userID, CreatedAt: time.Now().UTC()}).Error
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", translate("recipes.toggle_like", err)
	}
	return models.Liked, nil
}

func (r *recipeRepository) AddRating(ctx context.Context, id, userID string, value int) error {
	if err := r.exists(ctx, "recipes.add_rating", id); err != nil {
		return err
	}
	row := &ratingRow{RecipeID: id, UserID: userID, Value: value, CreatedAt: time.Now().UTC()}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return translate("recipes.add_rating", err)
	}
	return nil
}
