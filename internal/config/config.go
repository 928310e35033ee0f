package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/freelancehub/api/pkg/jwt"
)

// DefaultJWTSecret is the development signing key. Production refuses it.
const DefaultJWTSecret = "freelancehub-dev-secret-change-me"

// MinProductionSecretLength is the shortest JWT_SECRET_KEY accepted in production
const MinProductionSecretLength = 32

// Supported DB_DRIVER values
const (
	DriverSurrealDB = "surrealdb"
	DriverMongoDB   = "mongodb"
	DriverMemory    = "memory"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Auth     AuthConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// DatabaseConfig selects the store backend and holds its connection settings
type DatabaseConfig struct {
	Driver string

	// SurrealDB
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string

	// MongoDB
	MongoURL      string
	MongoDatabase string
}

// JWTConfig holds token signing settings
type JWTConfig struct {
	Secret string
	Issuer string
}

// Codec returns codec settings. The validity window is always jwt.DefaultTTL.
func (c JWTConfig) Codec() jwt.Config {
	return jwt.Config{
		Secret: []byte(c.Secret),
		Issuer: c.Issuer,
		TTL:    jwt.DefaultTTL,
	}
}

// AuthConfig holds credential hashing settings
type AuthConfig struct {
	BcryptCost int
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Env:            getEnv("SERVER_ENV", "development"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Driver:        strings.ToLower(getEnv("DB_DRIVER", DriverSurrealDB)),
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnv("DB_PORT", "8000"),
			Namespace:     getEnv("DB_NAMESPACE", "freelancehub"),
			Database:      getEnv("DB_DATABASE", "main"),
			User:          getEnv("DB_USER", "root"),
			Password:      getEnv("DB_PASSWORD", "root"),
			MongoURL:      getEnv("MONGODB_URL", "mongodb://localhost:27017"),
			MongoDatabase: getEnv("MONGODB_DATABASE", "freelancehub"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET_KEY", DefaultJWTSecret),
			Issuer: getEnv("JWT_ISSUER", "freelancehub.forgo.software"),
		},
		Auth: AuthConfig{
			BcryptCost: getIntEnv("BCRYPT_COST", 12),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	// Database validation
	if err := c.Database.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.IsProduction() && c.Database.Driver == DriverMemory {
		errs = append(errs, errors.New("DB_DRIVER=memory is not allowed in production"))
	}

	// JWT validation - critical for production
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY is required"))
	}
	if c.IsProduction() {
		if c.JWT.Secret == DefaultJWTSecret {
			errs = append(errs, errors.New("JWT_SECRET_KEY must be changed from the default in production"))
		}
		if len(c.JWT.Secret) < MinProductionSecretLength {
			errs = append(errs, fmt.Errorf("JWT_SECRET_KEY must be at least %d bytes in production", MinProductionSecretLength))
		}
	}

	// Hashing validation
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Validate checks the settings required by the selected driver
func (d DatabaseConfig) Validate() error {
	var missing []string
	switch d.Driver {
	case DriverSurrealDB:
		if d.Host == "" {
			missing = append(missing, "DB_HOST")
		}
		if d.Port == "" {
			missing = append(missing, "DB_PORT")
		}
		if d.Namespace == "" {
			missing = append(missing, "DB_NAMESPACE")
		}
		if d.Database == "" {
			missing = append(missing, "DB_DATABASE")
		}
	case DriverMongoDB:
		if d.MongoURL == "" {
			missing = append(missing, "MONGODB_URL")
		}
		if d.MongoDatabase == "" {
			missing = append(missing, "MONGODB_DATABASE")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("DB_DRIVER must be '%s', '%s', or '%s', got '%s'", DriverSurrealDB, DriverMongoDB, DriverMemory, d.Driver)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields for %s: %s", d.Driver, strings.Join(missing, ", "))
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

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return defaultValue
}
