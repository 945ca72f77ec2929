package sqlstore_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/smartchef/backend/internal/common"
	"github.com/pageza/smartchef/backend/internal/models"
	"github.com/pageza/smartchef/backend/internal/store"
	"github.com/pageza/smartchef/backend/internal/store/storetest"
	"github.com/pageza/smartchef/backend/internal/testhelpers"
)

func TestSQLiteBackend(t *testing.T) {
	storetest.Run(t, storetest.Harness{
		New:       func(t *testing.T) store.Backend { return testhelpers.SetupSQLiteBackend(t) },
		MissingID: uuid.NewString(),
	})
}

func TestPostgresBackend(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	storetest.Run(t, storetest.Harness{
		New:       func(t *testing.T) store.Backend { return testhelpers.SetupPostgresBackend(t) },
		MissingID: uuid.NewString(),
	})
}

func TestClosedBackendIsUnavailable(t *testing.T) {
	b := testhelpers.SetupSQLiteBackend(t)
	require.NoError(t, b.Close(context.Background()))

	_, err := b.Recipes().List(context.Background(), models.RecipeQuery{})
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
}

func TestBackendName(t *testing.T) {
	b := testhelpers.SetupSQLiteBackend(t)
	assert.Equal(t, "sqlite", b.Name())
	assert.True(t, b.Available())
	assert.NoError(t, b.Ping(context.Background()))
}
