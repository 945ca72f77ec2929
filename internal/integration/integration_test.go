package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/smartchef/backend/config"
	"github.com/pageza/smartchef/backend/internal/api"
	"github.com/pageza/smartchef/backend/internal/logging"
	"github.com/pageza/smartchef/backend/internal/mealdb"
	"github.com/pageza/smartchef/backend/internal/server"
	"github.com/pageza/smartchef/backend/internal/service"
	"github.com/pageza/smartchef/backend/internal/storage"
	"github.com/pageza/smartchef/backend/internal/store"
	"github.com/pageza/smartchef/backend/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
	logging.Silence()
}

func setupRouter(t *testing.T, backend store.Backend) http.Handler {
	cfg := &config.Config{
		Env:         config.Test,
		ServerHost:  "127.0.0.1",
		ServerPort:  "0",
		CORSOrigins: []string{"http://localhost:5173"},
		MediaRoot:   t.TempDir(),
	}
	recipes := service.NewRecipeService(backend, service.NewSampleCatalog(), service.RecipeOptions{
		EnforceOwnership:      true,
		SampleFallbackOnEmpty: true,
	})
	return server.New(cfg, api.Services{
		Backend:    backend,
		Auth:       service.NewAuthService(backend.Users(), "integration-secret", time.Hour, nil),
		Recipes:    recipes,
		Engagement: service.NewEngagementService(backend),
		Import:     service.NewImportService(recipes, backend.Users(), mealdb.NewClient("http://127.0.0.1:1")),
		Images:     service.NewImageService(storage.NewLocalStore(cfg.MediaRoot)),
	}).Handler()
}

type client struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func (c *client) do(method, path, contentType string, body []byte) (int, map[string]any) {
	c.t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func (c *client) json(method, path string, payload any) (int, map[string]any) {
	c.t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(c.t, err)
	return c.do(method, path, "application/json", body)
}

func (c *client) form(path string, values url.Values) (int, map[string]any) {
	c.t.Helper()
	return c.do(http.MethodPost, path, "application/x-www-form-urlencoded", []byte(values.Encode()))
}

func register(t *testing.T, handler http.Handler, username string) *client {
	c := &client{t: t, handler: handler}
	code, body := c.json(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username":         username,
		"email":            username + "@example.com",
		"password":         "secret123",
		"confirm_password": "secret123",
	})
	require.Equal(t, http.StatusCreated, code, body)
	c.token = body["token"].(string)
	return c
}

// runRecipeLifecycle drives one user through the whole recipe flow and a
// second user through the engagement and ownership paths.
func runRecipeLifecycle(t *testing.T, backend store.Backend) {
	handler := setupRouter(t, backend)

	// Empty store: the sample catalog is served.
	anon := &client{t: t, handler: handler}
	code, body := anon.do(http.MethodGet, "/api/v1/recipes", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "empty", body["fallback"])

	chef := register(t, handler, "chef")
	guest := register(t, handler, "guest")

	code, body = chef.json(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "chef@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Welcome back, chef!", body["message"])

	code, body = chef.form("/api/v1/recipes", url.Values{
		"title":       {"Masala Dosa"},
		"category":    {"veg"},
		"ingredients": {"Rice - 2 cups\nUrad dal - 1 cup"},
		"steps":       {"Soak\nGrind\nFerment"},
		"steps_hi":    {"भिगोएं"},
		"servings":    {"4"},
	})
	require.Equal(t, http.StatusCreated, code, body)
	id := body["recipe"].(map[string]any)["id"].(string)
	require.NotEmpty(t, id)

	code, body = anon.do(http.MethodGet, "/api/v1/recipes?search=dosa", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "", body["fallback"])
	require.Len(t, body["recipes"], 1)
	listed := body["recipes"].([]any)[0].(map[string]any)
	assert.Equal(t, "chef", listed["author"])
	assert.Equal(t, 4.5, listed["avg_rating"])

	code, body = guest.do(http.MethodPost, "/api/v1/recipes/"+id+"/like", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "liked", body["action"])
	assert.Equal(t, float64(1), body["count"])

	for _, c := range []*client{chef, guest} {
		code, _ = c.json(http.MethodPost, "/api/v1/recipes/"+id+"/rate", map[string]string{"rating": "4"})
		require.Equal(t, http.StatusOK, code)
	}
	code, _ = guest.json(http.MethodPost, "/api/v1/recipes/"+id+"/rate", map[string]string{"rating": "5"})
	require.Equal(t, http.StatusOK, code)

	code, body = guest.json(http.MethodPost, "/api/v1/recipes/"+id+"/comments", map[string]string{"text": "  Crispy!  "})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Crispy!", body["comment"].(map[string]any)["text"])

	code, body = guest.do(http.MethodGet, "/api/v1/recipes/"+id, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 4.3, body["avg_rating"])
	assert.Equal(t, float64(3), body["rating_count"])
	assert.Equal(t, true, body["user_liked"])
	assert.Equal(t, "Vegetarian", body["category_name"])
	comments := body["comments"].([]any)
	require.Len(t, comments, 1)
	assert.Equal(t, "guest", comments[0].(map[string]any)["author"])
	steps := body["translated_steps"].([]any)
	require.Len(t, steps, 3)
	assert.Equal(t, "भिगोएं", steps[0].(map[string]any)["hi"])
	assert.Equal(t, "Grind", steps[1].(map[string]any)["hi"])

	code, body = guest.json(http.MethodPut, "/api/v1/recipes/"+id, map[string]string{"title": "Stolen"})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "You can only edit your own recipes", body["error"])

	code, _ = chef.json(http.MethodPut, "/api/v1/recipes/"+id, map[string]string{"title": "Paper Dosa"})
	require.Equal(t, http.StatusOK, code)

	code, body = chef.do(http.MethodGet, "/api/v1/manage/recipes", "", nil)
	require.Equal(t, http.StatusOK, code)
	managed := body["recipes"].([]any)
	require.Len(t, managed, 1)
	assert.Equal(t, "Paper Dosa", managed[0].(map[string]any)["title"])

	code, body = chef.do(http.MethodGet, "/api/v1/profile", "", nil)
	require.Equal(t, http.StatusOK, code)
	stats := body["stats"].(map[string]any)
	assert.Equal(t, float64(1), stats["total_recipes"])
	assert.Equal(t, float64(1), stats["total_likes"])
	assert.Equal(t, float64(1), stats["total_views"])

	code, _ = chef.do(http.MethodDelete, "/api/v1/recipes/"+id, "", nil)
	require.Equal(t, http.StatusOK, code)
	code, body = anon.do(http.MethodGet, "/api/v1/recipes/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Recipe not found", body["error"])

	code, body = anon.do(http.MethodGet, "/api/v1/recipes/sample1", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["is_sample"])
	assert.True(t, strings.HasPrefix(body["id"].(string), "sample"))
}

func TestRecipeLifecyclePostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	runRecipeLifecycle(t, testhelpers.SetupPostgresBackend(t))
}

func TestRecipeLifecycleMongo(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	runRecipeLifecycle(t, testhelpers.SetupMongoBackend(t))
}

func TestRecipeLifecycleSQLite(t *testing.T) {
	runRecipeLifecycle(t, testhelpers.SetupSQLiteBackend(t))
}
