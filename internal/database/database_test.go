package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/smartchef/backend/config"
	"github.com/pageza/smartchef/backend/internal/common"
)

func TestConnectMongoUnreachable(t *testing.T) {
	start := time.Now()
	m, err := ConnectMongo(context.Background(), MongoConfig{
		URI:            "mongodb://127.0.0.1:1/?directConnection=true",
		Database:       "smartchef_test",
		ConnectTimeout: 200 * time.Millisecond,
	})

	require.Error(t, err)
	assert.Nil(t, m)
	// Two bounded attempts, never an open-ended wait.
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestOpenStoreFallsBackToUnavailable(t *testing.T) {
	cfg := &config.Config{
		StoreDriver:         config.DriverMongo,
		MongoURI:            "mongodb://127.0.0.1:1/?directConnection=true",
		MongoDatabase:       "smartchef_test",
		MongoConnectTimeout: 100 * time.Millisecond,
	}

	backend, err := OpenStore(context.Background(), cfg)
	require.Error(t, err)
	require.NotNil(t, backend)
	assert.False(t, backend.Available())

	_, err = backend.Recipes().List(context.Background(), modelsQuery())
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
	assert.Error(t, RunMigrations(context.Background(), backend))
}

func TestOpenStoreSQLite(t *testing.T) {
	cfg := &config.Config{
		StoreDriver: config.DriverSQLite,
		SQLitePath:  filepath.Join(t.TempDir(), "smartchef.db"),
	}

	backend, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close(context.Background()) })

	assert.True(t, backend.Available())
	assert.Equal(t, "sqlite", backend.Name())
	require.NoError(t, RunMigrations(context.Background(), backend))
	require.NoError(t, backend.Ping(context.Background()))

	recipes, err := backend.Recipes().List(context.Background(), modelsQuery())
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestOpenStoreUnsupportedDriver(t *testing.T) {
	backend, err := OpenStore(context.Background(), &config.Config{StoreDriver: "cassandra"})
	assert.Error(t, err)
	assert.False(t, backend.Available())
}
