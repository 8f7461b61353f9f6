package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	App        AppConfig        `yaml:"app"`
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	CORS       CORSConfig       `yaml:"cors"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Assignment AssignmentConfig `yaml:"assignment"`
}

// AppConfig contains application identity settings
type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port                int `yaml:"port"`
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"`
	ShutdownSeconds     int `yaml:"shutdown_seconds"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Type     string         `yaml:"type"`
	MySQL    MySQLConfig    `yaml:"mysql"`
	Postgres PostgresConfig `yaml:"postgres"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`

	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	Isolation              string `yaml:"isolation"`
	LogLevel               string `yaml:"log_level"`
}

// MySQLConfig contains MySQL connection settings
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// PostgresConfig contains PostgreSQL connection settings
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
	Schema   string `yaml:"schema"`
	// Driver selects the database/sql driver: "pgx" (default) or "pq".
	Driver string `yaml:"driver"`
}

// SQLiteConfig contains SQLite settings for local/desktop use
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// CORSConfig contains allowed origins for the browser frontend
type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

// RateLimitConfig contains rate limiting settings
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requests_per_minute"`
	RequestsPerHour   int  `yaml:"requests_per_hour"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
	LogRequests bool   `yaml:"log_requests"`
}

// MetricsConfig contains metrics settings
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	// WindowSchedule is the cron expression used to roll the per-minute request window.
	WindowSchedule string `yaml:"window_schedule"`
	// LatencySchedule is the cron expression used to sample database latency.
	LatencySchedule string `yaml:"latency_schedule"`
}

// AssignmentConfig contains tenant assignment workflow settings
type AssignmentConfig struct {
	AllowActiveTenantReassign bool `yaml:"allow_active_tenant_reassign"`
	RetryAttempts             int  `yaml:"retry_attempts"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "Property Management API",
			Version:     "1.0.0",
			Environment: "development",
		},
		Server: ServerConfig{
			Port:                8000,
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 15,
			ShutdownSeconds:     10,
		},
		Database: DatabaseConfig{
			Type: "postgres",
			Postgres: PostgresConfig{
				Host:     "127.0.0.1",
				Port:     5432,
				User:     "postgres",
				Database: "pm_app",
				SSLMode:  "disable",
				Driver:   "pgx",
			},
			MySQL: MySQLConfig{
				Host:     "127.0.0.1",
				Port:     3306,
				User:     "pm_user",
				Database: "pm_app",
			},
			SQLite: SQLiteConfig{
				Path: "pm_app.db",
			},
			MaxOpenConns:           15,
			MaxIdleConns:           5,
			ConnMaxLifetimeMinutes: 30,
			Isolation:              "read_committed",
			LogLevel:               "warn",
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
		},
		RateLimit: RateLimitConfig{
			Enabled:           false,
			RequestsPerMinute: 120,
			RequestsPerHour:   3600,
		},
		Logging: LoggingConfig{
			Level:       "info",
			Development: true,
			LogRequests: true,
		},
		Metrics: MetricsConfig{
			Enabled:         true,
			WindowSchedule:  "@every 1m",
			LatencySchedule: "@every 30s",
		},
		Assignment: AssignmentConfig{
			AllowActiveTenantReassign: true,
			RetryAttempts:             1,
		},
	}
}

// LoadConfig loads configuration from a YAML file, then applies .env and
// environment overrides.
func LoadConfig(filepath string) (*Config, error) {
	// Start with default config
	config := DefaultConfig()

	if _, err := os.Stat(filepath); err == nil {
		data, err := os.ReadFile(filepath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	applyEnv(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return config, nil
}

func applyEnv(c *Config) {
	c.Database.Type = getEnvOrConfig(c.Database.Type, "DB_TYPE")
	c.Server.Port = getEnvIntOrConfig(c.Server.Port, "PORT")
	c.Logging.Level = getEnvOrConfig(c.Logging.Level, "LOG_LEVEL")
	c.App.Environment = getEnvOrConfig(c.App.Environment, "APP_ENV")
	if c.App.Environment == "production" {
		c.Logging.Development = false
	}

	switch c.Database.Type {
	case "mysql":
		m := &c.Database.MySQL
		m.Host = getEnvOrConfig(m.Host, "DB_HOST")
		m.Port = getEnvIntOrConfig(m.Port, "DB_PORT")
		m.User = getEnvOrConfig(m.User, "DB_USER")
		m.Password = getEnvOrConfig(m.Password, "DB_PASSWORD")
		m.Database = getEnvOrConfig(m.Database, "DB_NAME")
	case "sqlite":
		c.Database.SQLite.Path = getEnvOrConfig(c.Database.SQLite.Path, "DB_PATH")
	default:
		p := &c.Database.Postgres
		p.Host = getEnvOrConfig(p.Host, "DB_HOST")
		p.Port = getEnvIntOrConfig(p.Port, "DB_PORT")
		p.User = getEnvOrConfig(p.User, "DB_USER")
		p.Password = getEnvOrConfig(p.Password, "DB_PASSWORD")
		p.Database = getEnvOrConfig(p.Database, "DB_NAME")
		p.Schema = getEnvOrConfig(p.Schema, "DB_SCHEMA")
	}

	if origins := os.Getenv("CORS_ALLOW_ORIGINS"); origins != "" {
		c.CORS.AllowOrigins = strings.Split(origins, ",")
	}
}

// Validate checks the configuration for values the service cannot run with
func (c *Config) Validate() error {
	switch c.Database.Type {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database type %q", c.Database.Type)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Database.Type == "postgres" {
		switch c.Database.Postgres.Driver {
		case "", "pgx", "pq":
		default:
			return fmt.Errorf("unsupported postgres driver %q", c.Database.Postgres.Driver)
		}
	}
	if c.Assignment.RetryAttempts < 0 {
		return fmt.Errorf("assignment retry_attempts must be >= 0")
	}
	return nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetReadTimeout returns the read timeout as a duration
func (c *ServerConfig) GetReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

// GetWriteTimeout returns the write timeout as a duration
func (c *ServerConfig) GetWriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

// GetShutdownTimeout returns the graceful shutdown timeout as a duration
func (c *ServerConfig) GetShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownSeconds) * time.Second
}

// GetConnMaxLifetime returns the pool connection lifetime as a duration
func (c *DatabaseConfig) GetConnMaxLifetime() time.Duration {
	return time.Duration(c.ConnMaxLifetimeMinutes) * time.Minute
}

func getEnvOrConfig(configValue, envKey string) string {
	if value := os.Getenv(envKey); value != "" {
		return value
	}
	return configValue
}

func getEnvIntOrConfig(configValue int, envKey string) int {
	if value := os.Getenv(envKey); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return configValue
}
