package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Store drivers
const (
	DriverMongo    = "mongodb"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Recipe ownership policies
const (
	OwnershipRelaxed  = "relaxed"
	OwnershipEnforced = "enforced"
)

const defaultDevJWTSecret = "smartchef-dev-secret"

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string
	LogLevel    string

	// Store selection
	StoreDriver string

	// MongoDB configuration
	MongoURI            string
	MongoDatabase       string
	MongoConnectTimeout time.Duration

	// Relational database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string
	TokenTTL  time.Duration

	// Image storage: S3 when a bucket is configured, local disk otherwise
	S3Bucket  string
	AWSRegion string
	MediaRoot string

	// Domain policy
	OwnershipPolicy       string
	SampleFallbackOnEmpty bool

	// Recipe import
	MealDBBaseURL string
}

// LoadConfig reads .env (if present), environment variables and secret files
// and validates the result.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using system environment variables")
	}

	env := GetEnvironment()
	cfg := &Config{
		Env:         env,
		ServerPort:  GetEnvWithDefault("SERVER_PORT", "8080"),
		ServerHost:  GetEnvWithDefault("SERVER_HOST", "0.0.0.0"),
		CORSOrigins: splitList(GetEnvWithDefault("CORS_ORIGINS", "http://localhost:5173")),
		LogLevel:    GetEnvWithDefault("LOG_LEVEL", defaultLogLevel(env)),

		StoreDriver: strings.ToLower(GetEnvWithDefault("STORE_DRIVER", DriverMongo)),

		MongoURI:            secretOrEnv("mongodb_uri", "MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:       GetEnvWithDefault("MONGODB_NAME", "smartchef_db"),
		MongoConnectTimeout: GetEnvAsType("MONGODB_CONNECT_TIMEOUT", 2500*time.Millisecond),

		DBHost:     GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:     GetEnvWithDefault("DB_PORT", "5432"),
		DBUser:     GetEnvWithDefault("DB_USER", "postgres"),
		DBPassword: secretOrEnv("db_password", "DB_PASSWORD", ""),
		DBName:     GetEnvWithDefault("DB_NAME", "smartchef"),
		DBSSLMode:  GetEnvWithDefault("DB_SSL_MODE", "disable"),
		SQLitePath: GetEnvWithDefault("SQLITE_PATH", "smartchef.db"),

		RedisHost:     GetEnvWithDefault("REDIS_HOST", ""),
		RedisPort:     GetEnvWithDefault("REDIS_PORT", "6379"),
		RedisPassword: secretOrEnv("redis_password", "REDIS_PASSWORD", ""),
		RedisDB:       GetEnvAsType("REDIS_DB", 0),
		RedisURL:      secretOrEnv("redis_url", "REDIS_URL", ""),

		JWTSecret: secretOrEnv("jwt_secret", "JWT_SECRET", ""),
		TokenTTL:  GetEnvAsType("TOKEN_TTL", 24*time.Hour),

		S3Bucket:  GetEnvWithDefault("S3_BUCKET_NAME", ""),
		AWSRegion: GetEnvWithDefault("AWS_REGION", "us-east-1"),
		MediaRoot: GetEnvWithDefault("MEDIA_ROOT", "media"),

		OwnershipPolicy:       strings.ToLower(GetEnvWithDefault("RECIPE_OWNERSHIP", OwnershipRelaxed)),
		SampleFallbackOnEmpty: GetEnvAsType("SAMPLE_FALLBACK_ON_EMPTY", true),

		MealDBBaseURL: GetEnvWithDefault("MEALDB_BASE_URL", "https://www.themealdb.com/api/json/v1/1"),
	}

	if cfg.JWTSecret == "" && env != Production {
		log.Warn("JWT secret not configured, using the development default")
		cfg.JWTSecret = defaultDevJWTSecret
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	log.Debugf("Configuration loaded: %s", cfg)
	return cfg, nil
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// PostgresDSN builds the gorm postgres DSN.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// RedisEnabled reports whether a Redis endpoint is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Env: %s, Addr: %s, StoreDriver: %s, MongoURI: %s, MongoDatabase: %s, "+
		"DBHost: %s, DBName: %s, DBPassword: [REDACTED], RedisURL: %s, JWTSecret: [REDACTED], "+
		"S3Bucket: %s, OwnershipPolicy: %s, SampleFallbackOnEmpty: %t}",
		c.Env, c.Addr(), c.StoreDriver, maskURL(c.MongoURI), c.MongoDatabase,
		c.DBHost, c.DBName, maskURL(c.RedisURL),
		c.S3Bucket, c.OwnershipPolicy, c.SampleFallbackOnEmpty)
}

// maskURL masks the password in a connection URL
func maskURL(raw string) string {
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "[REDACTED_INVALID_URL]"
	}
	if parsed.User != nil {
		if _, ok := parsed.User.Password(); ok {
			parsed.User = url.UserPassword(parsed.User.Username(), "REDACTED")
		}
	}
	return parsed.String()
}

func defaultLogLevel(env Environment) string {
	switch env {
	case Development:
		return "debug"
	case Production:
		return "warn"
	default:
		return "info"
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetEnvWithDefault returns the environment variable key, or defaultValue
// when it is unset or empty.
func GetEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvAsType retrieves an environment variable and converts it to the
// type of defaultValue. Unparsable values fall back to the default.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			log.Warnf("Invalid integer in %s, using default", key)
			return defaultValue
		}
		return any(intValue).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			log.Warnf("Invalid boolean in %s, using default", key)
			return defaultValue
		}
		return any(boolValue).(T)
	case time.Duration:
		d, err := time.ParseDuration(value)
		if err != nil {
			log.Warnf("Invalid duration in %s, using default", key)
			return defaultValue
		}
		return any(d).(T)
	case string:
		return any(value).(T)
	default:
		return defaultValue
	}
}

// secretOrEnv prefers a Docker secret file over the environment variable.
func secretOrEnv(secret, envKey, defaultValue string) string {
	if v := readSecret(secret); v != "" {
		return v
	}
	return GetEnvWithDefault(envKey, defaultValue)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
