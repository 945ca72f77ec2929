package database

import (
	"context"
	"fmt"

	"github.com/pageza/smartchef/backend/config"
	"github.com/pageza/smartchef/backend/internal/logging"
	"github.com/pageza/smartchef/backend/internal/store"
	"github.com/pageza/smartchef/backend/internal/store/mongostore"
	"github.com/pageza/smartchef/backend/internal/store/sqlstore"
)

// OpenStore connects the backend selected by cfg.StoreDriver. When the
// store cannot be reached it returns store.Unavailable() together with the
// connection error, so callers can keep serving in offline mode.
func OpenStore(ctx context.Context, cfg *config.Config) (store.Backend, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		m, err := ConnectMongo(ctx, MongoConfig{
			URI:            cfg.MongoURI,
			Database:       cfg.MongoDatabase,
			ConnectTimeout: cfg.MongoConnectTimeout,
		})
		if err != nil {
			return store.Unavailable(), err
		}
		return mongostore.New(m.DB), nil
	case config.DriverPostgres, config.DriverSQLite:
		db, err := OpenSQL(cfg)
		if err != nil {
			return store.Unavailable(), err
		}
		return sqlstore.New(db), nil
	default:
		return store.Unavailable(), fmt.Errorf("unsupported store driver: %s", cfg.StoreDriver)
	}
}

type migrator interface {
	Migrate(ctx context.Context) error
}

// RunMigrations brings the store schema up to date: tables for the SQL
// backends, indexes for MongoDB.
func RunMigrations(ctx context.Context, backend store.Backend) error {
	if !backend.Available() {
		return fmt.Errorf("cannot migrate: store unavailable")
	}
	m, ok := backend.(migrator)
	if !ok {
		return fmt.Errorf("backend %s does not support migrations", backend.Name())
	}
	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", backend.Name(), err)
	}
	logging.For("database").WithField("backend", backend.Name()).Info("Migrations applied")
	return nil
}
