package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Query     QueryConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	LogLevel        slog.Level
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	SQLitePath      string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogQueries      bool
}

// QueryConfig bounds interactive and export page sizes and fixes the
// date-time layout used by every startFrom/startTo filter
type QueryConfig struct {
	DateLayout        string
	DefaultPageSize   int
	MaxPageSize       int
	DefaultExportSize int
	MaxExportPageSize int
	DefaultSortOrder  string
}

type RateLimitConfig struct {
	ExportPerSecond int
	ExportBurst     int
}

// Load reads configuration from the environment. A .env file in the working
// directory, when present, is loaded first and never overrides variables
// that are already set.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Environment:     getEnv("APP_ENV", "development"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			LogLevel:        getLogLevelEnv("LOG_LEVEL", slog.LevelInfo),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "operations"),
			Password:        getEnv("DB_PASSWORD", "operations"),
			Name:            getEnv("DB_NAME", "operations"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			SQLitePath:      getEnv("DB_SQLITE_PATH", "operations.db"),
			MaxConnections:  getIntEnv("DB_MAX_CONNECTIONS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			LogQueries:      getBoolEnv("DB_LOG_QUERIES", false),
		},
		Query: QueryConfig{
			DateLayout:        getEnv("QUERY_DATE_LAYOUT", "2006-01-02 15:04:05"),
			DefaultPageSize:   getIntEnv("QUERY_DEFAULT_PAGE_SIZE", 20),
			MaxPageSize:       getIntEnv("QUERY_MAX_PAGE_SIZE", 1000),
			DefaultExportSize: getIntEnv("EXPORT_DEFAULT_PAGE_SIZE", 10000),
			MaxExportPageSize: getIntEnv("EXPORT_MAX_PAGE_SIZE", 50000),
			DefaultSortOrder:  getEnv("QUERY_DEFAULT_SORT_ORDER", "DESC"),
		},
		RateLimit: RateLimitConfig{
			ExportPerSecond: getIntEnv("EXPORT_RATE_LIMIT_PER_SECOND", 2),
			ExportBurst:     getIntEnv("EXPORT_RATE_LIMIT_BURST", 4),
		},
	}

	return config
}

// DefaultQueryConfig returns the query settings Load uses when no
// environment overrides are present
func DefaultQueryConfig() QueryConfig {
	return QueryConfig{
		DateLayout:        "2006-01-02 15:04:05",
		DefaultPageSize:   20,
		MaxPageSize:       1000,
		DefaultExportSize: 10000,
		MaxExportPageSize: 50000,
		DefaultSortOrder:  "DESC",
	}
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getLogLevelEnv(key string, defaultValue slog.Level) slog.Level {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return defaultValue
	}
	return level
}
