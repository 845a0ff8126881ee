package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/rezkam/todo/internal/env"
)

// ServerConfig holds all configuration for the server binary.
type ServerConfig struct {
	Database        DatabaseConfig
	HTTP            HTTPConfig
	Todo            TodoConfig
	Observability   ObservabilityConfig
	ShutdownTimeout time.Duration `env:"TODO_SHUTDOWN_TIMEOUT" default:"10s"`
}

// HTTPConfig holds HTTP server configuration.
// Zero values are replaced by the HTTP server's own defaults.
type HTTPConfig struct {
	Host              string        `env:"TODO_HTTP_HOST"`
	Port              string        `env:"TODO_HTTP_PORT" default:"8080"`
	ReadTimeout       time.Duration `env:"TODO_HTTP_READ_TIMEOUT"`
	WriteTimeout      time.Duration `env:"TODO_HTTP_WRITE_TIMEOUT"`
	IdleTimeout       time.Duration `env:"TODO_HTTP_IDLE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `env:"TODO_HTTP_READ_HEADER_TIMEOUT"`
	MaxHeaderBytes    int           `env:"TODO_HTTP_MAX_HEADER_BYTES"`
	MaxBodyBytes      int64         `env:"TODO_HTTP_MAX_BODY_BYTES"`
}

// TodoConfig holds todo service configuration.
type TodoConfig struct {
	DefaultPageSize int `env:"TODO_DEFAULT_PAGE_SIZE" default:"20"`
	MaxPageSize     int `env:"TODO_MAX_PAGE_SIZE" default:"100"`
}

// Validate validates pagination limits.
func (c *TodoConfig) Validate() error {
	if c.DefaultPageSize <= 0 {
		return fmt.Errorf("TODO_DEFAULT_PAGE_SIZE must be > 0, got %d", c.DefaultPageSize)
	}
	if c.MaxPageSize < c.DefaultPageSize {
		return fmt.Errorf("TODO_MAX_PAGE_SIZE (%d) must be >= TODO_DEFAULT_PAGE_SIZE (%d)", c.MaxPageSize, c.DefaultPageSize)
	}
	return nil
}

// ObservabilityConfig holds observability configuration.
type ObservabilityConfig struct {
	OTelEnabled bool   `env:"TODO_OTEL_ENABLED" default:"false"`
	ServiceName string `env:"OTEL_SERVICE_NAME"`
	LogLevel    string `env:"TODO_LOG_LEVEL" default:"info"`
}

// LoadServerConfig loads and validates server configuration from environment.
// Variables found in the given dotenv files (".env" when none are given) are
// added first; variables already present in the environment always win.
func LoadServerConfig(dotenvFiles ...string) (*ServerConfig, error) {
	if err := loadDotenv(dotenvFiles...); err != nil {
		return nil, err
	}

	cfg := &ServerConfig{}
	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	return cfg, nil
}

// LoadDatabaseConfig loads only the storage settings, for commands that never
// start the HTTP server.
func LoadDatabaseConfig(dotenvFiles ...string) (*DatabaseConfig, error) {
	if err := loadDotenv(dotenvFiles...); err != nil {
		return nil, err
	}

	cfg := &DatabaseConfig{}
	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	return cfg, nil
}

func loadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
	}
	return nil
}
