package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all connection-level configuration for the application.
// Scoring parameters live in ScoringConfig.
type Config struct {
	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration; rate limiting is disabled when no address is set
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Per-user request budget per window, enforced through Redis
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// JWT verification
	JWTSecret string
	JWTIssuer string

	// Logging
	LogLevel  string
	LogFormat string

	// Scoring configuration file (YAML), optional
	ScoringConfigPath string

	// Catalog import
	CatalogBucket string
	CatalogKey    string
	AWSRegion     string
}

// RedisEnabled reports whether a Redis endpoint is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI:
		loadCIConfig(cfg)
	case Development, Test:
		loadDevConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}
	loadSettings(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig reads plain environment variables; secrets use the TEST_ prefix.
func loadCIConfig(cfg *Config) {
	cfg.ServerPort = os.Getenv("SERVER_PORT")
	cfg.ServerHost = os.Getenv("SERVER_HOST")
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = os.Getenv("DB_PORT")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = os.Getenv("DB_SSL_MODE")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = os.Getenv("REDIS_PORT")

	cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	cfg.JWTSecret = os.Getenv("TEST_JWT_SECRET")
	cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
	cfg.RedisURL = os.Getenv("TEST_REDIS_URL")
}

// loadDevConfig prefers Docker secrets and falls back to environment variables
// so a developer can run without a secrets directory.
func loadDevConfig(cfg *Config) {
	cfg.ServerPort = secretOrEnv("server_port")
	cfg.ServerHost = secretOrEnv("server_host")
	cfg.DBHost = secretOrEnv("db_host")
	cfg.DBPort = secretOrEnv("db_port")
	cfg.DBUser = secretOrEnv("db_user")
	cfg.DBPassword = secretOrEnv("db_password")
	cfg.DBName = secretOrEnv("db_name")
	cfg.DBSSLMode = secretOrEnv("db_ssl_mode")
	cfg.RedisHost = secretOrEnv("redis_host")
	cfg.RedisPort = secretOrEnv("redis_port")
	cfg.RedisPassword = secretOrEnv("redis_password")
	cfg.RedisURL = secretOrEnv("redis_url")
	cfg.JWTSecret = secretOrEnv("jwt_secret")
}

// loadProdConfig loads configuration for production using ONLY Docker secrets
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
	cfg.RedisURL = readSecret("redis_url")
	cfg.JWTSecret = readSecret("jwt_secret")
}

// loadSettings fills the non-secret settings shared by every environment.
func loadSettings(cfg *Config) {
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.DBSSLMode == "" {
		cfg.DBSSLMode = "disable"
	}
	cfg.JWTIssuer = os.Getenv("JWT_ISSUER")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "json")
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	cfg.ScoringConfigPath = os.Getenv("SCORING_CONFIG")
	cfg.CatalogBucket = getEnv("CATALOG_BUCKET", "smartcanteen-catalog")
	cfg.CatalogKey = getEnv("CATALOG_KEY", "menu.json")
	cfg.AWSRegion = os.Getenv("AWS_REGION")
	cfg.RateLimitRequests = 120
	if n, err := strconv.Atoi(os.Getenv("RATE_LIMIT_REQUESTS")); err == nil && n > 0 {
		cfg.RateLimitRequests = n
	}
	cfg.RateLimitWindow = time.Minute
	if d, err := time.ParseDuration(os.Getenv("RATE_LIMIT_WINDOW")); err == nil && d > 0 {
		cfg.RateLimitWindow = d
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func secretOrEnv(name string) string {
	if v := readSecret(name); v != "" {
		return v
	}
	return os.Getenv(strings.ToUpper(name))
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
