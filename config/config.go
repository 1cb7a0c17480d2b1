package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"confidence-pool-go/logging"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig `json:"server"`

	// Database configuration
	Database DatabaseConfig `json:"database"`

	// Logging configuration
	Logging LoggingConfig `json:"logging"`

	// Authentication configuration
	Auth AuthConfig `json:"auth"`

	// Application configuration
	App AppConfig `json:"app"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string `json:"port"`
	Host        string `json:"host"`
	Environment string `json:"environment"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string        `json:"host"`
	Port     string        `json:"port"`
	Username string        `json:"username"`
	Password string        `json:"password"`
	Database string        `json:"database"`
	Timeout  time.Duration `json:"timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level       string `json:"level"`
	Prefix      string `json:"prefix"`
	EnableColor bool   `json:"enable_color"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret   string        `json:"jwt_secret"`
	TokenExpiry time.Duration `json:"token_expiry"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	CurrentSeason      int           `json:"current_season"`
	DefaultSeasonType  int           `json:"default_season_type"`
	ScoreCheckEnabled  bool          `json:"score_check_enabled"`
	ScoreCheckInterval time.Duration `json:"score_check_interval"`
	IsDevelopment      bool          `json:"is_development"`
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Missing .env is not an error
		logging.Warnf("Could not load .env file: %v", err)
	}

	environment := getEnv("ENVIRONMENT", "development")
	isDevelopment := strings.ToLower(environment) == "development"

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Environment: environment,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "27017"),
			Username: getEnv("DB_USERNAME", "pooladmin"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "confidence_pool"),
			Timeout:  getDurationEnv("DB_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level:       getEnv("LOG_LEVEL", "debug"),
			Prefix:      getEnv("LOG_PREFIX", "confidence-pool"),
			EnableColor: getBoolEnv("LOG_COLOR", true),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", "change-me-in-production"),
			TokenExpiry: getDurationEnv("JWT_TOKEN_EXPIRY", 30*24*time.Hour),
		},
		App: AppConfig{
			CurrentSeason:      getIntEnv("CURRENT_SEASON", 2025),
			DefaultSeasonType:  getIntEnv("DEFAULT_SEASON_TYPE", 2),
			ScoreCheckEnabled:  getBoolEnv("SCORE_CHECK_ENABLED", true),
			ScoreCheckInterval: getDurationEnv("SCORE_CHECK_INTERVAL", 5*time.Minute),
			IsDevelopment:      isDevelopment,
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration for required fields and sensible values
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Port == "" {
		return fmt.Errorf("database port is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.Auth.JWTSecret == "change-me-in-production" && !c.App.IsDevelopment {
		return fmt.Errorf("JWT secret must be changed in production")
	}
	if c.Auth.TokenExpiry < time.Minute {
		return fmt.Errorf("token expiry must be at least one minute, got: %v", c.Auth.TokenExpiry)
	}

	if c.App.CurrentSeason < 2020 || c.App.CurrentSeason > 2035 {
		return fmt.Errorf("current season must be between 2020 and 2035, got: %d", c.App.CurrentSeason)
	}
	if c.App.DefaultSeasonType < 1 || c.App.DefaultSeasonType > 3 {
		return fmt.Errorf("default season type must be 1 (pre), 2 (regular) or 3 (post), got: %d", c.App.DefaultSeasonType)
	}
	if c.App.ScoreCheckInterval < time.Minute {
		return fmt.Errorf("score check interval must be at least one minute, got: %v", c.App.ScoreCheckInterval)
	}

	return nil
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

// LogConfiguration logs the current configuration (without sensitive data)
func (c *Config) LogConfiguration() {
	logging.Info("=== Application Configuration ===")
	logging.Infof("Server: %s (Environment: %s)", c.GetServerAddress(), c.Server.Environment)
	logging.Infof("Database: %s:%s/%s (Username: %s, Auth: %t)",
		c.Database.Host, c.Database.Port, c.Database.Database,
		c.Database.Username, c.Database.Password != "")
	logging.Infof("Logging: Level=%s, Prefix=%s, Color=%t",
		c.Logging.Level, c.Logging.Prefix, c.Logging.EnableColor)
	logging.Infof("App: Season=%d, SeasonType=%d, ScoreCheck=%t every %v, Development=%t",
		c.App.CurrentSeason, c.App.DefaultSeasonType,
		c.App.ScoreCheckEnabled, c.App.ScoreCheckInterval, c.App.IsDevelopment)
	logging.Info("================================")
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
