package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Environment selects which loading strategy applies.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment resolves the runtime environment. CI=true (set by most CI
// providers) wins over ENV; anything unrecognized falls back to development.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	switch os.Getenv("ENV") {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Gemini configuration
	GeminiAPIKey string
	GeminiAPIURL string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	// Load configuration based on environment
	switch env {
	case CI:
		if err := loadCIConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load CI configuration: %w", err)
		}
	case Development, Test:
		loadDevConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig loads configuration for CI environment using ONLY GitHub Actions secrets
func loadCIConfig(cfg *Config) error {
	// GitHub Actions variables
	cfg.ServerPort = os.Getenv("SERVER_PORT")
	cfg.ServerHost = os.Getenv("SERVER_HOST")
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = os.Getenv("DB_PORT")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = os.Getenv("DB_SSL_MODE")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = os.Getenv("REDIS_PORT")
	cfg.GeminiAPIURL = os.Getenv("GEMINI_API_URL")

	// GitHub Actions secrets - use environment variables directly
	cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	if cfg.DBPassword == "" {
		return fmt.Errorf("TEST_DB_PASSWORD environment variable is required in CI environment")
	}
	cfg.JWTSecret = os.Getenv("TEST_JWT_SECRET")
	cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
	cfg.RedisURL = os.Getenv("TEST_REDIS_URL")
	cfg.GeminiAPIKey = os.Getenv("TEST_GEMINI_API_KEY")
	cfg.RedisDB = 0 // This is a constant, not a secret

	return nil
}

// loadDevConfig loads configuration for development and test environments.
// Environment variables with defaults keep a bare checkout runnable; any
// Docker secret that exists overrides its variable.
func loadDevConfig(cfg *Config) {
	cfg.ServerPort = getEnvOrDefault("SERVER_PORT", "8080")
	cfg.ServerHost = getEnvOrDefault("SERVER_HOST", "0.0.0.0")
	cfg.DBHost = getEnvOrDefault("DB_HOST", "localhost")
	cfg.DBPort = getEnvOrDefault("DB_PORT", "5432")
	cfg.DBUser = getEnvOrDefault("DB_USER", "postgres")
	cfg.DBPassword = getEnvOrDefault("DB_PASSWORD", "postgres")
	cfg.DBName = getEnvOrDefault("DB_NAME", "glucolife")
	cfg.DBSSLMode = getEnvOrDefault("DB_SSL_MODE", "disable")
	cfg.RedisHost = getEnvOrDefault("REDIS_HOST", "localhost")
	cfg.RedisPort = getEnvOrDefault("REDIS_PORT", "6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisURL = getEnvOrDefault("REDIS_URL", "redis://localhost:6379")
	cfg.RedisDB = getEnvIntOrDefault("REDIS_DB", 0)
	cfg.JWTSecret = getEnvOrDefault("JWT_SECRET", "your-secret-key")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.GeminiAPIURL = os.Getenv("GEMINI_API_URL")

	overrideFromSecrets(cfg)
}

// loadProdConfig loads configuration for production environment using ONLY Docker secrets
func loadProdConfig(cfg *Config) {
	cfg.ServerPort = readSecret("server_port")
	cfg.ServerHost = readSecret("server_host")
	cfg.DBHost = readSecret("db_host")
	cfg.DBPort = readSecret("db_port")
	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.DBName = readSecret("db_name")
	cfg.DBSSLMode = readSecret("db_ssl_mode")
	cfg.RedisHost = readSecret("redis_host")
	cfg.RedisPort = readSecret("redis_port")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.RedisDB = 0 // This is a constant, not a secret
	cfg.RedisURL = readSecret("redis_url")
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.GeminiAPIKey = readSecret("gemini_api_key")
	cfg.GeminiAPIURL = readSecret("gemini_api_url")
}

// overrideFromSecrets replaces config fields with any Docker secrets present.
func overrideFromSecrets(cfg *Config) {
	overrides := map[string]*string{
		"server_port":    &cfg.ServerPort,
		"server_host":    &cfg.ServerHost,
		"db_host":        &cfg.DBHost,
		"db_port":        &cfg.DBPort,
		"db_user":        &cfg.DBUser,
		"db_password":    &cfg.DBPassword,
		"db_name":        &cfg.DBName,
		"db_ssl_mode":    &cfg.DBSSLMode,
		"redis_host":     &cfg.RedisHost,
		"redis_port":     &cfg.RedisPort,
		"redis_password": &cfg.RedisPassword,
		"redis_url":      &cfg.RedisURL,
		"jwt_secret":     &cfg.JWTSecret,
		"gemini_api_key": &cfg.GeminiAPIKey,
		"gemini_api_url": &cfg.GeminiAPIURL,
	}
	for name, field := range overrides {
		if value := readSecret(name); value != "" {
			*field = value
		}
	}
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

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
