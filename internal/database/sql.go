package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/smartchef/backend/config"
	"github.com/pageza/smartchef/backend/internal/logging"
)

var retryDelays = []time.Duration{time.Second, 2 * time.Second}

// OpenSQL opens the relational store selected by cfg.StoreDriver, retrying
// a bounded number of times before giving up.
func OpenSQL(cfg *config.Config) (*gorm.DB, error) {
	log := logging.For("database").WithFields(logrus.Fields{
		"db_driver": cfg.StoreDriver,
		"db_host":   cfg.DBHost,
		"db_name":   cfg.DBName,
	})

	var dialector gorm.Dialector
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.PostgresDSN())
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.StoreDriver)
	}

	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}

	var lastErr error
	for attempt := 0; attempt <= len(retryDelays); attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelays[attempt-1])
		}
		log.WithField("attempt", attempt+1).Info("Attempting database connection")

		db, err := gorm.Open(dialector, gormCfg)
		if err == nil {
			err = ping(db)
		}
		if err == nil {
			configureConnectionPool(db, cfg.StoreDriver)
			log.Info("Database connection established")
			return db, nil
		}
		lastErr = err
		log.WithError(err).Warn("Database connection attempt failed")
	}
	return nil, fmt.Errorf("error connecting to the database: %w", lastErr)
}

func ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func configureConnectionPool(db *gorm.DB, driver string) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if driver == config.DriverSQLite {
		// sqlite serialises writers; a single connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
		return
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
}
