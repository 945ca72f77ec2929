package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/pageza/smartchef/backend/internal/logging"
	"github.com/pageza/smartchef/backend/internal/models"
	"github.com/pageza/smartchef/backend/internal/service"
	"github.com/pageza/smartchef/backend/internal/storage"
	"github.com/pageza/smartchef/backend/internal/store"
	"github.com/pageza/smartchef/backend/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
	logging.Silence()
}

// testEnv is a router wired to services over an in-memory SQLite store.
type testEnv struct {
	router    *gin.Engine
	backend   store.Backend
	auth      *service.AuthService
	importer  *fakeImporter
	mediaRoot string
}

func setupTestEnv(t *testing.T, opts service.RecipeOptions) *testEnv {
	t.Helper()
	return setupTestEnvWithBackend(t, testhelpers.SetupSQLiteBackend(t), opts)
}

func setupTestEnvWithBackend(t *testing.T, backend store.Backend, opts service.RecipeOptions) *testEnv {
	t.Helper()
	env := &testEnv{
		backend:   backend,
		auth:      service.NewAuthService(backend.Users(), "test-secret", time.Hour, newMemoryDenylist()),
		importer:  &fakeImporter{},
		mediaRoot: t.TempDir(),
	}

	env.router = gin.New()
	RegisterRoutes(env.router, Services{
		Backend:    backend,
		Auth:       env.auth,
		Recipes:    service.NewRecipeService(backend, service.NewSampleCatalog(), opts),
		Engagement: service.NewEngagementService(backend),
		Import:     env.importer,
		Images:     service.NewImageService(storage.NewLocalStore(env.mediaRoot)),
	})
	return env
}

// createUserAndToken stores a user and signs a token for it.
func (e *testEnv) createUserAndToken(t *testing.T, username string) (*models.User, string) {
	t.Helper()
	user := testhelpers.CreateTestUser(t, e.backend, username)
	token, err := e.auth.GenerateToken(user)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) serve(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) doJSON(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	return e.serve(req, token)
}

func (e *testEnv) doForm(method, path string, form url.Values, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.serve(req, token)
}

func (e *testEnv) doMultipart(t *testing.T, path string, fields map[string]string, fileField, fileName, fileBody, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = io.WriteString(fw, fileBody)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return e.serve(req, token)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

type fakeImporter struct {
	count int
	err   error
	limit int
}

func (f *fakeImporter) ImportMealDB(_ context.Context, limit int) (int, error) {
	f.limit = limit
	return f.count, f.err
}

func (f *fakeImporter) ImportSeed(context.Context, io.Reader) (int, error) {
	return 0, nil
}

type memoryDenylist struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func newMemoryDenylist() *memoryDenylist {
	return &memoryDenylist{revoked: map[string]bool{}}
}

func (d *memoryDenylist) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[tokenID] = true
	return nil
}

func (d *memoryDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.revoked[tokenID], nil
}
