// Package config loads service settings from the environment, optionally
// primed from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port            string
	MaxRequestBytes int64 // request bodies larger than this are rejected
	DefaultHardware string

	// Catalog store. With neither set the built-in catalog is served.
	DatabaseURL      string
	DatabaseSecretID string // Secrets Manager secret holding the DSN
	AWSRegion        string
	CatalogMigrate   bool
	CatalogSeed      bool

	// Logging
	LogLevel  string
	LogFormat string
}

// UsesDatabase reports whether a Postgres catalog is configured.
func (c *Config) UsesDatabase() bool {
	return c.DatabaseURL != "" || c.DatabaseSecretID != ""
}

// Load reads settings from the environment after applying the given .env
// files (default ".env"). Missing files are ignored; variables already set
// in the environment win over file contents.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		MaxRequestBytes: int64(getEnvInt("MAX_REQUEST_BYTES", 64*1024)),
		DefaultHardware: getEnv("DEFAULT_HARDWARE", "standard"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DatabaseSecretID: os.Getenv("DATABASE_SECRET_ID"),
		AWSRegion:        os.Getenv("AWS_REGION"),
		CatalogMigrate:   getEnvBool("CATALOG_MIGRATE", false),
		CatalogSeed:      getEnvBool("CATALOG_SEED", false),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	if p, err := strconv.Atoi(cfg.Port); err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("PORT must be a TCP port number, got %q", cfg.Port)
	}
	if cfg.MaxRequestBytes < 1024 {
		return nil, fmt.Errorf("MAX_REQUEST_BYTES must be at least 1024, got %d", cfg.MaxRequestBytes)
	}
	if cfg.CatalogSeed && !cfg.UsesDatabase() {
		return nil, fmt.Errorf("CATALOG_SEED requires DATABASE_URL or DATABASE_SECRET_ID")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
