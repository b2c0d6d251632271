package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// ServerConfig holds runtime configuration for the HTTP server.
type ServerConfig struct {
	Port         string
	DatabaseHost string
	DatabaseUser string
	DatabasePass string
	DatabaseName string
	LogLevel     string
	StoreBackend string // "postgres" or "memory"
}

// LoadServerConfig reads server configuration from the environment. A .env
// file in the working directory is loaded first when present.
func LoadServerConfig() (*ServerConfig, error) {
	_ = godotenv.Load()

	cfg := &ServerConfig{
		Port:         getEnv("PORT", "8050"),
		DatabaseHost: getEnv("DATABASE_HOST", "localhost"),
		DatabaseUser: getEnv("DATABASE_USER", "postgres"),
		DatabasePass: getEnv("DATABASE_PASSWORD", ""),
		DatabaseName: getEnv("DATABASE_NAME", "assetdb"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		StoreBackend: getEnv("STORE_BACKEND", "postgres"),
	}

	if cfg.StoreBackend != "postgres" && cfg.StoreBackend != "memory" {
		return nil, fmt.Errorf("STORE_BACKEND must be 'postgres' or 'memory', got %q", cfg.StoreBackend)
	}
	if cfg.StoreBackend == "postgres" && cfg.DatabaseName == "" {
		return nil, fmt.Errorf("DATABASE_NAME is required")
	}

	return cfg, nil
}

// DSN builds the lib/pq connection string.
func (c *ServerConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DatabaseHost, c.DatabaseUser, c.DatabasePass, c.DatabaseName)
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
