package main

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pageza/smartchef/backend/config"
	"github.com/pageza/smartchef/backend/internal/database"
	"github.com/pageza/smartchef/backend/internal/logging"
)

const migrateTimeout = 2 * time.Minute

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logging.Setup(cfg.LogLevel, cfg.Env.JSONLogs())

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	backend, err := database.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", cfg.StoreDriver, err)
	}
	defer backend.Close(ctx)

	if err := database.RunMigrations(ctx, backend); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.WithField("store", backend.Name()).Info("All migrations applied successfully")
}
