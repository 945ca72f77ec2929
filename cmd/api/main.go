package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pageza/smartchef/backend/config"
	"github.com/pageza/smartchef/backend/internal/api"
	"github.com/pageza/smartchef/backend/internal/database"
	"github.com/pageza/smartchef/backend/internal/logging"
	"github.com/pageza/smartchef/backend/internal/mealdb"
	"github.com/pageza/smartchef/backend/internal/server"
	"github.com/pageza/smartchef/backend/internal/service"
	"github.com/pageza/smartchef/backend/internal/storage"
	"github.com/pageza/smartchef/backend/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logging.Setup(cfg.LogLevel, cfg.Env.JSONLogs())

	ctx := context.Background()

	backend, err := database.OpenStore(ctx, cfg)
	if err != nil {
		log.WithError(err).WithField("driver", cfg.StoreDriver).
			Warn("Store unreachable, running in offline mode with sample recipes")
	} else if err := database.RunMigrations(ctx, backend); err != nil {
		log.WithError(err).Warn("Migrations failed")
	}
	defer closeBackend(backend)

	var denylist service.TokenDenylist
	if cfg.RedisEnabled() {
		client, err := database.NewRedisClient(cfg)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, logout will not revoke tokens")
		} else {
			defer client.Close()
			denylist = database.NewRedisDenylist(client)
		}
	}

	images, err := storage.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to configure image storage: %v", err)
	}

	recipes := service.NewRecipeService(backend, service.NewSampleCatalog(), service.RecipeOptions{
		EnforceOwnership:      cfg.OwnershipPolicy == config.OwnershipEnforced,
		SampleFallbackOnEmpty: cfg.SampleFallbackOnEmpty,
	})
	srv := server.New(cfg, api.Services{
		Backend:    backend,
		Auth:       service.NewAuthService(backend.Users(), cfg.JWTSecret, cfg.TokenTTL, denylist),
		Recipes:    recipes,
		Engagement: service.NewEngagementService(backend),
		Import:     service.NewImportService(recipes, backend.Users(), mealdb.NewClient(cfg.MealDBBaseURL)),
		Images:     service.NewImageService(images),
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
		return
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received signal")
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		log.WithError(err).Error("Server shutdown error")
	}
	log.Info("Server stopped")
}

func closeBackend(backend store.Backend) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := backend.Close(ctx); err != nil {
		log.WithError(err).Warn("Failed to close store")
	}
}
