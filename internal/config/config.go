package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Storage drivers
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds the application configuration, populated from environment variables.
type Config struct {
	App     AppConfig
	Storage StorageConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Auth    AuthConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production, test
	Port        string
	Version     string
}

type StorageConfig struct {
	Driver string // postgres, memory
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Password string
	DB       int
	// AuthorTTL bounds how long a cached author (and its active flag) may be served.
	AuthorTTL time.Duration
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

// AccessTTL returns the access token lifetime as a duration.
func (j JWTConfig) AccessTTL() time.Duration {
	return time.Duration(j.AccessTokenExpiry) * time.Minute
}

type AuthConfig struct {
	BcryptCost int
	// LegacyDuplicateStatus answers duplicate registrations with 404 instead of 409.
	LegacyDuplicateStatus bool
}

// Load reads the config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Blog API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getEnv("STORAGE_DRIVER", StoragePostgres)),
		},
		Redis: RedisConfig{
			Enabled:   getEnvBool("REDIS_ENABLED", true),
			Host:      getEnv("REDIS_HOST", "localhost:6379"),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvInt("REDIS_DB", 0),
			AuthorTTL: getEnvDuration("AUTHOR_CACHE_TTL", time.Minute),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 30), // 30 minutes
		},
		Auth: AuthConfig{
			BcryptCost:            getEnvInt("BCRYPT_COST", 12),
			LegacyDuplicateStatus: getEnvBool("AUTH_LEGACY_DUPLICATE_STATUS", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations the server must not start with
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.JWT.AccessTokenExpiry <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRY must be positive, got %d", c.JWT.AccessTokenExpiry)
	}

	switch c.Storage.Driver {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Storage.Driver == StorageMemory {
			return fmt.Errorf("STORAGE_DRIVER=memory is not allowed in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
