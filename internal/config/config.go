package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Environment
	Environment string

	// Server
	Port string

	// Redis
	RedisURL      string
	RedisPassword string

	// Database (optional; hand archive is disabled when unset)
	DatabaseURL      string
	PostgresDB       string
	PostgresUser     string
	PostgresPassword string
	PostgresHost     string
	PostgresPort     string

	// Authentication
	JWTSecret string

	// Tables
	TableLimit      float64
	TableMaxPlayers int
}

func Load() *Config {
	return &Config{
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		Port: getEnvOrDefault("PORT", "8080"),

		RedisURL:      getEnvOrDefault("REDIS_URL", "redis://localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),

		DatabaseURL:      getEnvOrDefault("DATABASE_URL", ""),
		PostgresDB:       getEnvOrDefault("POSTGRES_DB", ""),
		PostgresUser:     getEnvOrDefault("POSTGRES_USER", "poker_user"),
		PostgresPassword: getEnvOrDefault("POSTGRES_PASSWORD", "poker_password"),
		PostgresHost:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnvOrDefault("POSTGRES_PORT", "5432"),

		JWTSecret: getEnvOrDefault("JWT_SECRET", "blockpoker-secret-key-change-in-production"),

		TableLimit:      getEnvFloatOrDefault("TABLE_LIMIT", 200),
		TableMaxPlayers: getEnvIntOrDefault("TABLE_MAX_PLAYERS", 5),
	}
}

// HasDatabase reports whether a hand-archive database is configured.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != "" || c.PostgresDB != ""
}

func (c *Config) GetDatabaseURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser,
		c.PostgresPassword,
		c.PostgresHost,
		c.PostgresPort,
		c.PostgresDB,
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
