package service

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/smartchef/backend/internal/storage"
)

func TestRecipeImageKey(t *testing.T) {
	pattern := regexp.MustCompile(`^recipes/[0-9a-f]{32}_`)

	key := RecipeImageKey("My Dal.jpg")
	assert.Regexp(t, pattern, key)
	assert.True(t, strings.HasSuffix(key, "_My_Dal.jpg"))

	key = RecipeImageKey(`C:\Users\me\photo.png`)
	assert.True(t, strings.HasSuffix(key, "_photo.png"), key)

	key = RecipeImageKey("../../etc/passwd")
	assert.True(t, strings.HasSuffix(key, "_passwd"), key)

	assert.NotEqual(t, RecipeImageKey("a.jpg"), RecipeImageKey("a.jpg"))
}

func TestSaveRecipeImage(t *testing.T) {
	root := t.TempDir()
	svc := NewImageService(storage.NewLocalStore(root))

	url, err := svc.SaveRecipeImage(context.Background(), "dal.jpg", strings.NewReader("jpeg"), "image/jpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/media/recipes/"))

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(url, "/media/"))))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))
}
