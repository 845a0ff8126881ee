package config

import (
	"fmt"

	"github.com/rezkam/todo/internal/env"
)

// TestConfig holds configuration for integration tests that need a real database.
// An empty PostgresDSN means postgres-backed tests are skipped.
type TestConfig struct {
	PostgresDSN string `env:"TODO_TEST_DB_DSN"`
}

// LoadTestConfig loads test configuration from environment.
func LoadTestConfig() (*TestConfig, error) {
	cfg := &TestConfig{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load test config: %w", err)
	}

	return cfg, nil
}
