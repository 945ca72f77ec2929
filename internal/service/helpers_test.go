package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pageza/smartchef/backend/internal/logging"
	"github.com/pageza/smartchef/backend/internal/models"
	"github.com/pageza/smartchef/backend/internal/store"
	"github.com/pageza/smartchef/backend/internal/testhelpers"
)

func init() {
	logging.Silence()
}

// fixedClock returns a clock that advances one second per call.
func fixedClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	now := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

func newRecipeService(t *testing.T, opts RecipeOptions) (*RecipeService, store.Backend) {
	t.Helper()
	backend := testhelpers.SetupSQLiteBackend(t)
	return NewRecipeService(backend, NewSampleCatalog(), opts), backend
}

// countingBackend records every repository access.
type countingBackend struct {
	store.Backend
	mu    sync.Mutex
	calls int
}

func (b *countingBackend) touch() {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
}

func (b *countingBackend) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func (b *countingBackend) Users() store.UserRepository {
	b.touch()
	return b.Backend.Users()
}

func (b *countingBackend) Recipes() store.RecipeRepository {
	b.touch()
	return b.Backend.Recipes()
}

func (b *countingBackend) Comments() store.CommentRepository {
	b.touch()
	return b.Backend.Comments()
}

// memoryDenylist is a TokenDenylist kept in a map.
type memoryDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newMemoryDenylist() *memoryDenylist {
	return &memoryDenylist{revoked: map[string]time.Duration{}}
}

func (d *memoryDenylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[tokenID] = ttl
	return nil
}

func (d *memoryDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.revoked[tokenID]
	return ok, nil
}

func stored(id string) models.RecipeRef { return models.StoredRef{RecipeID: id} }
