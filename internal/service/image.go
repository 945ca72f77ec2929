package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/pageza/smartchef/backend/internal/logging"
	"github.com/pageza/smartchef/backend/internal/storage"
)

// ImageService stores uploaded recipe images
type ImageService struct {
	store storage.ImageStore
}

// NewImageService creates a new ImageService instance
func NewImageService(store storage.ImageStore) *ImageService {
	return &ImageService{store: store}
}

// SaveRecipeImage stores body under a unique key derived from filename and
// returns the URL to put on the recipe.
func (s *ImageService) SaveRecipeImage(ctx context.Context, filename string, body io.Reader, contentType string) (string, error) {
	key := RecipeImageKey(filename)
	url, err := s.store.Save(ctx, key, body, contentType)
	if err != nil {
		logging.For("images").WithError(err).WithField("key", key).Error("Failed to save recipe image")
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return url, nil
}

// RecipeImageKey returns recipes/{uuid hex}_{base name}.
func RecipeImageKey(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.ReplaceAll(base, " ", "_")
	if base == "." || base == "/" || base == "" {
		base = "image"
	}
	return fmt.Sprintf("recipes/%s_%s", strings.ReplaceAll(uuid.NewString(), "-", ""), base)
}
