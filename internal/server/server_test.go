package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/smartchef/backend/config"
	"github.com/pageza/smartchef/backend/internal/api"
	"github.com/pageza/smartchef/backend/internal/logging"
	"github.com/pageza/smartchef/backend/internal/mealdb"
	"github.com/pageza/smartchef/backend/internal/service"
	"github.com/pageza/smartchef/backend/internal/storage"
	"github.com/pageza/smartchef/backend/internal/store"
	"github.com/pageza/smartchef/backend/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
	logging.Silence()
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Env:         config.Test,
		ServerHost:  "127.0.0.1",
		ServerPort:  "0",
		CORSOrigins: []string{"http://localhost:5173"},
		MediaRoot:   t.TempDir(),
	}
}

func testServices(t *testing.T, backend store.Backend) api.Services {
	recipes := service.NewRecipeService(backend, service.NewSampleCatalog(), service.RecipeOptions{SampleFallbackOnEmpty: true})
	return api.Services{
		Backend:    backend,
		Auth:       service.NewAuthService(backend.Users(), "test-secret", time.Hour, nil),
		Recipes:    recipes,
		Engagement: service.NewEngagementService(backend),
		Import:     service.NewImportService(recipes, backend.Users(), mealdb.NewClient("http://127.0.0.1:1")),
		Images:     service.NewImageService(storage.NewLocalStore(t.TempDir())),
	}
}

func TestNew(t *testing.T) {
	srv := New(testConfig(t), testServices(t, testhelpers.SetupSQLiteBackend(t)))
	require.NotNil(t, srv)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "sqlite", body["store"])
	assert.Equal(t, true, body["connected"])
}

func TestHealthWhenOffline(t *testing.T) {
	srv := New(testConfig(t), testServices(t, store.Unavailable()))

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `"degraded"`, mustField(t, w.Body.Bytes(), "status"))
	assert.JSONEq(t, `false`, mustField(t, w.Body.Bytes(), "connected"))

	// Listings still work from the sample catalog.
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `"unavailable"`, mustField(t, w.Body.Bytes(), "fallback"))
}

func mustField(t *testing.T, body []byte, key string) string {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &m))
	return string(m[key])
}

func TestStartAndShutdown(t *testing.T) {
	srv := New(testConfig(t), testServices(t, store.Unavailable()))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()
	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
