package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Environment represents the deployment environment of the service.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// ParseEnvironment falls back to Development for unknown values.
func ParseEnvironment(v string) Environment {
	switch Environment(strings.ToLower(v)) {
	case Production:
		return Production
	case Staging:
		return Staging
	case Testing:
		return Testing
	default:
		return Development
	}
}

// IsProduction reports whether the environment corresponds to production.
func (e Environment) IsProduction() bool {
	return e == Production
}

// Supported database drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig holds the connection and pool settings.
type DatabaseConfig struct {
	Driver          string
	Host            string
	User            string
	Password        string
	Name            string
	Port            int
	TLS             bool
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Config is the process configuration.
type Config struct {
	Port            string
	Env             Environment
	LogLevel        zerolog.Level
	Database        DatabaseConfig
	RedisURL        string
	ProductCacheTTL time.Duration
	RabbitMQURL     string
}

// ListenAddr returns the address the HTTP server binds to.
func (c *Config) ListenAddr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetDefault("PORT", "5000")
	v.SetDefault("APP_ENV", string(Development))
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_DRIVER", DriverMySQL)
	v.SetDefault("DATABASE_HOST", "127.0.0.1")
	v.SetDefault("DATABASE_PORT", 4000)
	v.SetDefault("DATABASE_TLS", true)
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("PRODUCT_CACHE_TTL", "30s")
	v.AutomaticEnv()

	level, err := zerolog.ParseLevel(strings.ToLower(v.GetString("LOG_LEVEL")))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", v.GetString("LOG_LEVEL"), err)
	}

	lifetime, err := time.ParseDuration(v.GetString("DATABASE_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, fmt.Errorf("invalid DATABASE_CONN_MAX_LIFETIME: %w", err)
	}

	cacheTTL, err := time.ParseDuration(v.GetString("PRODUCT_CACHE_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid PRODUCT_CACHE_TTL: %w", err)
	}

	driver := strings.ToLower(v.GetString("DATABASE_DRIVER"))
	switch driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", driver)
	}

	return &Config{
		Port:     v.GetString("PORT"),
		Env:      ParseEnvironment(v.GetString("APP_ENV")),
		LogLevel: level,
		Database: DatabaseConfig{
			Driver:          driver,
			Host:            v.GetString("DATABASE_HOST"),
			User:            v.GetString("DATABASE_USER"),
			Password:        v.GetString("DATABASE_PASSWORD"),
			Name:            v.GetString("DATABASE_NAME"),
			Port:            v.GetInt("DATABASE_PORT"),
			TLS:             v.GetBool("DATABASE_TLS"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: lifetime,
		},
		RedisURL:        v.GetString("REDIS_URL"),
		ProductCacheTTL: cacheTTL,
		RabbitMQURL:     v.GetString("RABBITMQ_URL"),
	}, nil
}
