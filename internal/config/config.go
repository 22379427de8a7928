package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken     string
	KrdictAPIKey string
	Database     DatabaseConfig
	Sweep        SweepConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// SweepConfig holds reminder sweep and interval scheduling settings
type SweepConfig struct {
	Period             time.Duration
	ReminderCooldown   time.Duration
	MinIntervalMinutes int
	MaxIntervalMinutes int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:     os.Getenv("BOT_TOKEN"),
		KrdictAPIKey: os.Getenv("KRDICT_API_KEY"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "hanbot"),
			User:     getEnv("DB_USER", "hanbot"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Sweep: SweepConfig{
			Period:             time.Duration(getEnvInt("SWEEP_PERIOD_MINUTES", 30)) * time.Minute,
			ReminderCooldown:   time.Duration(getEnvInt("REMINDER_COOLDOWN_HOURS", 24)) * time.Hour,
			MinIntervalMinutes: getEnvInt("MIN_INTERVAL_MINUTES", 10),
			MaxIntervalMinutes: getEnvInt("MAX_INTERVAL_MINUTES", 7*24*60),
		},
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.KrdictAPIKey == "" {
		return nil, fmt.Errorf("KRDICT_API_KEY is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	if cfg.Sweep.MinIntervalMinutes < 1 || cfg.Sweep.MaxIntervalMinutes < cfg.Sweep.MinIntervalMinutes {
		return nil, fmt.Errorf("invalid interval bounds: min=%d max=%d",
			cfg.Sweep.MinIntervalMinutes, cfg.Sweep.MaxIntervalMinutes)
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
