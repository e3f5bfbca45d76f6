package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Catalog sources
const (
	CatalogSeed     = "seed"
	CatalogFile     = "file"
	CatalogPostgres = "postgres"
	CatalogURL      = "url"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Catalog  CatalogConfig
	Cart     CartConfig
	LogLevel string

	// DotEnvLoaded reports whether a .env file was applied
	DotEnvLoaded bool
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
	AllowedOrigins  []string
}

// AuthConfig configures the identity provider and ID token verification.
// Both are optional; without them sign-in is unavailable and checkout is anonymous.
type AuthConfig struct {
	FirebaseProjectID       string
	FirebaseCredentialsFile string
	IdentityAPIKey          string
}

type CatalogConfig struct {
	Source      string
	File        string
	DatabaseURL string
	URLs        []string
}

type CartConfig struct {
	TaxRate decimal.Decimal
}

// Load reads configuration from environment variables. Outside production a
// .env file in the working directory is applied first, without overriding
// variables that are already set.
func Load() (*Config, error) {
	dotEnvLoaded := false
	if os.Getenv("ENV") != "production" {
		dotEnvLoaded = godotenv.Load() == nil
	}

	taxRate, err := getEnvAsDecimal("TAX_RATE", "0.18")
	if err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
			AllowedOrigins:  getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Auth: AuthConfig{
			FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
			IdentityAPIKey:          getEnv("IDENTITY_API_KEY", ""),
		},
		Catalog: CatalogConfig{
			Source:      strings.ToLower(getEnv("CATALOG_SOURCE", CatalogSeed)),
			File:        getEnv("CATALOG_FILE", ""),
			DatabaseURL: getEnv("DATABASE_URL", ""),
			URLs:        getEnvAsSlice("CATALOG_URLS", nil),
		},
		Cart: CartConfig{
			TaxRate: taxRate,
		},
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DotEnvLoaded: dotEnvLoaded,
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("PORT is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return errors.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	switch c.Catalog.Source {
	case CatalogSeed:
	case CatalogFile:
		if c.Catalog.File == "" {
			return errors.New("CATALOG_FILE is required when CATALOG_SOURCE=file")
		}
	case CatalogPostgres:
		if c.Catalog.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when CATALOG_SOURCE=postgres")
		}
	case CatalogURL:
		if len(c.Catalog.URLs) == 0 {
			return errors.New("CATALOG_URLS is required when CATALOG_SOURCE=url")
		}
	default:
		return errors.Errorf("invalid catalog source: %s (must be seed, file, postgres, or url)", c.Catalog.Source)
	}

	if c.Cart.TaxRate.IsNegative() {
		return errors.Errorf("TAX_RATE must not be negative, got %s", c.Cart.TaxRate)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
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

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	return values
}

func getEnvAsDecimal(key, defaultValue string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(getEnv(key, defaultValue))
	if err != nil {
		return decimal.Decimal{}, errors.Wrapf(err, "%s", key)
	}
	return value, nil
}
