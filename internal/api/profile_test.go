package api

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/smartchef/backend/internal/models"
	"github.com/pageza/smartchef/backend/internal/service"
	"github.com/pageza/smartchef/backend/internal/testhelpers"
)

func TestGetProfile(t *testing.T) {
	env := setupTestEnv(t, service.RecipeOptions{})
	user, token := env.createUserAndToken(t, "priya")
	testhelpers.CreateTestRecipe(t, env.backend, user.ID, "Poha", time.Now())
	testhelpers.CreateTestRecipe(t, env.backend, user.ID, "Upma", time.Now())
	testhelpers.CreateTestRecipe(t, env.backend, "", "Someone else's", time.Now())

	w := env.doJSON(t, http.MethodGet, "/api/v1/profile", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, "priya", body["user"].(map[string]any)["username"])
	stats := body["stats"].(map[string]any)
	assert.Equal(t, float64(2), stats["total_recipes"])
	assert.Equal(t, float64(0), stats["total_views"])
	assert.Equal(t, float64(0), stats["total_likes"])
}

func TestGetProfileUnauthorized(t *testing.T) {
	env := setupTestEnv(t, service.RecipeOptions{})

	w := env.doJSON(t, http.MethodGet, "/api/v1/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.doJSON(t, http.MethodGet, "/api/v1/profile", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateSettings(t *testing.T) {
	env := setupTestEnv(t, service.RecipeOptions{})
	user, token := env.createUserAndToken(t, "anil")

	tests := []struct {
		name   string
		form   url.Values
		status int
		msg    string
	}{
		{"hindi", url.Values{"language": {"hi"}}, http.StatusOK, "Language changed to हिंदी"},
		{"marathi", url.Values{"language": {"mr"}}, http.StatusOK, "Language changed to मराठी"},
		{"unknown language", url.Values{"language": {"fr"}}, http.StatusOK, "Language changed to fr"},
		{"theme", url.Values{"theme": {"dark"}}, http.StatusOK, "Dark mode activated"},
		{"language wins", url.Values{"language": {"en"}, "theme": {"light"}}, http.StatusOK, "Language changed to English"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.doForm(http.MethodPut, "/api/v1/profile/settings", tt.form, token)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			body := decode(t, w)
			assert.Equal(t, true, body["success"])
			assert.Equal(t, tt.msg, body["message"])
		})
	}

	stored, err := env.backend.Users().GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "en", stored.Language)
	assert.Equal(t, "light", stored.Theme)
}

func TestUpdateSettingsNothingToChange(t *testing.T) {
	env := setupTestEnv(t, service.RecipeOptions{})
	_, token := env.createUserAndToken(t, "anil")

	w := env.doJSON(t, http.MethodPut, "/api/v1/profile/settings", map[string]string{}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Failed to update settings", body["error"])
}

func TestSettingsMessage(t *testing.T) {
	assert.Equal(t, "Settings updated!", settingsMessage(models.UserSettings{}))
	assert.Equal(t, "Light mode activated", settingsMessage(models.UserSettings{Theme: "light"}))
}
