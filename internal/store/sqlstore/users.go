package sqlstore

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/smartchef/backend/internal/common"
	"github.com/pageza/smartchef/backend/internal/models"
)

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	row := &userRow{
		ID:           uuid.NewString(),
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Language:     user.Language,
		Theme:        user.Theme,
		Favorites:    StringList(user.Favorites),
		CreatedAt:    user.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.duplicateKind(ctx, user.Username, err)
		}
		return translate("users.create", err)
	}
	user.ID = row.ID
	return nil
}

// duplicateKind tells a username clash from an email clash after the unique
// index rejected an insert.
func (r *userRepository) duplicateKind(ctx context.Context, username string, cause error) error {
	var n int64
	r.db.WithContext(ctx).Model(&userRow{}).Where("username = ?", username).Count(&n)
	if n > 0 {
		return common.E(common.KindDuplicateUsername, "users.create", cause)
	}
	return common.E(common.KindDuplicateEmail, "users.create", cause)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if err := parseID("users.get", id); err != nil {
		return nil, err
	}
	var row userRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translate("users.get", err)
	}
	return row.toModel(), nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).First(&row, "username = ?", username).Error; err != nil {
		return nil, translate("users.get_by_username", err)
	}
	return row.toModel(), nil
}

func (r *userRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error) {
	var row userRow
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		Take(&row).Error
	if err != nil {
		return nil, translate("users.find", err)
	}
	return row.toModel(), nil
}

func (r *userRepository) UpdateSettings(ctx context.Context, id string, settings models.UserSettings) error {
	if err := parseID("users.update_settings", id); err != nil {
		return err
	}
	updates := map[string]interface{}{}
	if settings.Language != "" {
		updates["language"] = settings.Language
	}
	if settings.Theme != "" {
		updates["theme"] = settings.Theme
	}
	if len(updates) == 0 {
		return common.E(common.KindNoChanges, "users.update_settings", nil)
	}

	res := r.db.WithContext(ctx).Model(&userRow{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return translate("users.update_settings", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.E(common.KindNotFound, "users.update_settings", nil)
	}
	return nil
}
