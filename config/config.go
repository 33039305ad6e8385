package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	Port      string
	StaticDir string
}

type DatabaseConfig struct {
	URL string
}

// AuthConfig carries both auth secrets: the operator credentials and JWT
// signing key for the web UI, and the shared notify key for ingestion.
type AuthConfig struct {
	WebUsername string
	WebPassword string
	SecretKey   string
	NotifyKey   string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnv("PORT", "8080"),
			StaticDir: getEnv("STATIC_DIR", "static"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Auth: AuthConfig{
			WebUsername: getEnv("WEB_USERNAME", "admin"),
			WebPassword: getEnv("WEB_PASSWORD", "admin"),
			SecretKey:   getEnv("SECRET_KEY", ""),
			NotifyKey:   getEnv("NOTIFY_KEY", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Auth.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY is required")
	}

	if c.Auth.NotifyKey == "" {
		return fmt.Errorf("NOTIFY_KEY is required")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
