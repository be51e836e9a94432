package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Session store backends.
const (
	SessionStoreMemory   = "memory"
	SessionStorePostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Session  SessionConfig
	Catalog  CatalogConfig
	Discount DiscountConfig
	S3       S3Config
	CORS     CORSConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
// It is only used when the postgres session store is selected.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// SessionConfig holds cart session configuration.
type SessionConfig struct {
	Store        string // "memory" or "postgres"
	CookieName   string
	CookieSecure bool
	TTL          time.Duration
}

// CatalogConfig holds configuration for the external product API.
type CatalogConfig struct {
	BaseURL string
	Limit   int
	Timeout time.Duration
}

// DiscountConfig holds discount table configuration.
type DiscountConfig struct {
	// File is a gzipped CODE,PERCENT table. Empty means the built-in table.
	File string
}

// S3Config holds AWS S3 configuration for the discount table file.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "discounts/")
}

// CORSConfig holds cross-origin configuration.
// With "*" browsers send no cookies cross-origin, so a front end on another
// origin needs an explicit list to keep its cart session.
type CORSConfig struct {
	AllowOrigins []string
}

// AllowsAnyOrigin reports whether the wildcard origin is configured.
func (c CORSConfig) AllowsAnyOrigin() bool {
	return slices.Contains(c.AllowOrigins, "*")
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "sessioncart"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Session: SessionConfig{
			Store:        getEnv("SESSION_STORE", SessionStoreMemory),
			CookieName:   getEnv("SESSION_COOKIE_NAME", "cart_session"),
			CookieSecure: getEnvAsBool("SESSION_COOKIE_SECURE", false),
			TTL:          time.Duration(getEnvAsInt("SESSION_TTL_MINUTES", 120)) * time.Minute,
		},
		Catalog: CatalogConfig{
			BaseURL: getEnv("CATALOG_BASE_URL", "https://fakestoreapi.com"),
			Limit:   getEnvAsInt("CATALOG_LIMIT", 10),
			Timeout: getEnvAsDuration("CATALOG_TIMEOUT", 10*time.Second),
		},
		Discount: DiscountConfig{
			File: getEnv("DISCOUNT_FILE", ""),
		},
		S3: S3Config{
			Enabled: getEnvAsBool("S3_ENABLED", false),
			Bucket:  getEnv("S3_BUCKET", ""),
			Region:  getEnv("S3_REGION", "us-east-1"),
			Prefix:  getEnv("S3_PREFIX", "discounts/"),
		},
		CORS: CORSConfig{
			AllowOrigins: splitCSV(getEnv("CORS_ALLOW_ORIGINS", "*")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Session.Store {
	case SessionStoreMemory:
	case SessionStorePostgres:
		if err := c.Database.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid session store: %s (must be memory or postgres)", c.Session.Store)
	}

	if c.Session.CookieName == "" {
		return fmt.Errorf("session cookie name is required")
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("session TTL must be positive")
	}

	if u, err := url.Parse(c.Catalog.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid catalog base URL: %q", c.Catalog.BaseURL)
	}

	if c.Catalog.Limit < 1 {
		return fmt.Errorf("catalog limit must be at least 1")
	}

	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("catalog timeout must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
		if c.Discount.File == "" {
			return fmt.Errorf("discount file is required when S3 is enabled")
		}
	}

	return nil
}

// Validate validates the database configuration.
func (c *DatabaseConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a duration (e.g. "10s").
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
