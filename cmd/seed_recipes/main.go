package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pageza/smartchef/backend/config"
	"github.com/pageza/smartchef/backend/internal/database"
	"github.com/pageza/smartchef/backend/internal/logging"
	"github.com/pageza/smartchef/backend/internal/mealdb"
	"github.com/pageza/smartchef/backend/internal/service"
	"github.com/pageza/smartchef/backend/internal/store"
)

// readPassword is swapped out when stdin is not a terminal.
var readPassword = term.ReadPassword

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "seed_recipes",
		Short:        "Load recipes and the admin account into the SmartChef store",
		SilenceUsage: true,
	}
	root.AddCommand(newJSONCmd(), newMealDBCmd(), newAdminCmd())
	return root
}

func newJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "json <file>",
		Short: "Import recipes from a JSON seed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open seed file: %w", err)
			}
			defer f.Close()

			return withImporter(cmd.Context(), func(imp *service.ImportService) error {
				n, err := imp.ImportSeed(cmd.Context(), f)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d recipes from %s\n", n, args[0])
				return nil
			})
		},
	}
}

func newMealDBCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "mealdb",
		Short: "Import recipes from TheMealDB",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withImporter(cmd.Context(), func(imp *service.ImportService) error {
				n, err := imp.ImportMealDB(cmd.Context(), limit)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new recipes from TheMealDB\n", n)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of recipes to import")
	return cmd
}

func newAdminCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Create the admin account that owns seeded recipes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprint(cmd.OutOrStdout(), "Admin password: ")
			pw, err := readPassword(int(syscall.Stdin))
			fmt.Fprintln(cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			return withBackend(cmd.Context(), func(cfg *config.Config, backend store.Backend) error {
				auth := service.NewAuthService(backend.Users(), cfg.JWTSecret, cfg.TokenTTL, nil)
				user, err := auth.Register(cmd.Context(), service.SeedAdminUsername, email, strings.TrimSpace(string(pw)))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", user.Username, user.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "admin@smartchef.local", "email of the admin account")
	return cmd
}

func withBackend(ctx context.Context, fn func(*config.Config, store.Backend) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logging.Setup(cfg.LogLevel, cfg.Env.JSONLogs())

	backend, err := database.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", cfg.StoreDriver, err)
	}
	defer backend.Close(ctx)

	if err := database.RunMigrations(ctx, backend); err != nil {
		return err
	}
	return fn(cfg, backend)
}

func withImporter(ctx context.Context, fn func(*service.ImportService) error) error {
	return withBackend(ctx, func(cfg *config.Config, backend store.Backend) error {
		recipes := service.NewRecipeService(backend, service.NewSampleCatalog(), service.RecipeOptions{
			EnforceOwnership: cfg.OwnershipPolicy == config.OwnershipEnforced,
		})
		return fn(service.NewImportService(recipes, backend.Users(), mealdb.NewClient(cfg.MealDBBaseURL)))
	})
}
