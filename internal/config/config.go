package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	environment := GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(logrus.DebugLevel)
	case "production":
		log.SetLevel(logrus.ErrorLevel)
	default:
		// Default to info level for other environments
		log.SetLevel(logrus.InfoLevel)
	}
}

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server Configuration
	Port int    `json:"port"`
	Host string `json:"host"`

	// Database configuration
	DBDriver    string `json:"db_driver"`
	DatabaseURL string `json:"database_url"`
	SQLitePath  string `json:"sqlite_path"`

	// Logging configuration
	LogLevel string `json:"log_level"`

	// Security Configuration. Both secrets are required: the API secret
	// signs access and client tokens, the session secret signs the
	// interactive session cookie. They must differ so the two token
	// domains can never be swapped.
	APIJWTSecret  string `json:"api_jwt_secret"`
	SessionSecret string `json:"session_secret"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %d, Host: %s, DBDriver: %s, DatabaseURL: %s, SQLitePath: %s, LogLevel: %s, APIJWTSecret: [REDACTED], SessionSecret: [REDACTED]}",
		c.Port, c.Host, c.DBDriver, maskDatabaseURL(c.DatabaseURL), c.SQLitePath, c.LogLevel)
}

// maskDatabaseURL masks password in database URL
func maskDatabaseURL(dbURL string) string {
	if dbURL == "" {
		return ""
	}

	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "[REDACTED_INVALID_URL]"
	}

	if parsed.User != nil {
		// Replace password with [REDACTED]
		parsed.User = url.UserPassword(parsed.User.Username(), "[REDACTED]")
	}

	return parsed.String()
}

// LoadConfig reads the configuration from environment variables and returns a
// Config struct. The signing secrets have no defaults: a deployment that does
// not supply them must not start.
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "8080"))
	if err != nil {
		return nil, err
	}

	apiSecret := os.Getenv("API_JWT_SECRET")
	if apiSecret == "" {
		return nil, errors.New("API_JWT_SECRET environment variable is required")
	}
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		return nil, errors.New("SESSION_SECRET environment variable is required")
	}

	driver := GetEnvWithDefault("DB_DRIVER", "sqlite")
	dbURL := GetEnvWithDefault("DATABASE_URL", "")
	if driver == "postgres" || driver == "postgresql" {
		if dbURL == "" {
			return nil, errors.New("DATABASE_URL environment variable is required for postgres")
		}
		// validate URL with net/url
		if _, err := url.ParseRequestURI(dbURL); err != nil {
			return nil, fmt.Errorf("invalid DATABASE_URL format: %w", err)
		}
	}

	config := &Config{
		Port:          port,
		Host:          GetEnvWithDefault("APP_HOST", "localhost"),
		DBDriver:      driver,
		DatabaseURL:   dbURL,
		SQLitePath:    GetEnvWithDefault("SQLITE_PATH", "vocab.sqlite"),
		LogLevel:      GetEnvWithDefault("LOG_LEVEL", "info"),
		APIJWTSecret:  apiSecret,
		SessionSecret: sessionSecret,
	}
	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Warnf("Environment variable %s not set, using default value: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
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
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}
