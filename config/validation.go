package config

import (
	"errors"
	"fmt"
	"strconv"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks the configuration for the current environment and
// reports every problem at once.
func ValidateConfig(cfg *Config) error {
	var errs []error
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		add("SERVER_PORT", fmt.Sprintf("invalid port %q", cfg.ServerPort))
	}

	switch cfg.StoreDriver {
	case DriverMongo:
		if cfg.MongoURI == "" {
			add("MONGODB_URI", "required for the mongodb driver")
		}
		if cfg.MongoDatabase == "" {
			add("MONGODB_NAME", "required for the mongodb driver")
		}
		if cfg.MongoConnectTimeout <= 0 {
			add("MONGODB_CONNECT_TIMEOUT", "must be positive")
		}
	case DriverPostgres:
		if cfg.DBHost == "" || cfg.DBName == "" {
			add("DB_HOST", "host and database name are required for the postgres driver")
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "required for the sqlite driver")
		}
	default:
		add("STORE_DRIVER", fmt.Sprintf("unsupported driver %q (supported: mongodb, postgres, sqlite)", cfg.StoreDriver))
	}

	switch cfg.OwnershipPolicy {
	case OwnershipRelaxed, OwnershipEnforced:
	default:
		add("RECIPE_OWNERSHIP", fmt.Sprintf("unsupported policy %q (supported: relaxed, enforced)", cfg.OwnershipPolicy))
	}

	if cfg.TokenTTL <= 0 {
		add("TOKEN_TTL", "must be positive")
	}

	if cfg.Env == Production {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultDevJWTSecret {
			add("jwt_secret", "a dedicated secret is required in production")
		}
		if cfg.StoreDriver == DriverPostgres && cfg.DBPassword == "" {
			add("db_password", "secret is required in production")
		}
	}

	return errors.Join(errs...)
}
