// Package config loads all application configuration from environment
// variables, with .env support for development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries every runtime setting, one sub-struct per concern.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Storage  StorageConfig
	CORS     CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string
}

// JWTConfig holds session-token settings. Tokens expire ExpiryMinutes after
// issue; there is no server-side revocation before that.
type JWTConfig struct {
	Secret        string
	ExpiryMinutes int
}

// StorageConfig holds image upload settings.
type StorageConfig struct {
	Dir     string
	MaxSize int64
}

// CORSConfig holds the allowed browser origin.
type CORSConfig struct {
	Origin string
}

// Load builds a Config from the environment. A .env file is loaded first if
// present; real env vars win in production.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	expiry, err := strconv.Atoi(getEnv("JWT_EXPIRY_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_MINUTES: %w", err)
	}

	maxSize, err := strconv.ParseInt(getEnv("UPLOAD_MAX_SIZE", "5242880"), 10, 64) // 5MB
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_SIZE: %w", err)
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./data/masterblog.db"),
		},
		JWT: JWTConfig{
			Secret:        jwtSecret,
			ExpiryMinutes: expiry,
		},
		Storage: StorageConfig{
			Dir:     getEnv("STORAGE_DIR", "./storage"),
			MaxSize: maxSize,
		},
		CORS: CORSConfig{
			Origin: getEnv("CORS_ORIGIN", "http://localhost:3000"),
		},
	}

	return cfg, nil
}

// Addr returns the listen address, e.g. "0.0.0.0:8080".
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
