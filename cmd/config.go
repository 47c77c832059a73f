package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	LogLevel               string
	Environment            string
	NotificationCronSpec   string
	NotificationBatchSize  int
	NotificationTimeout    time.Duration
	ListingCloseWindowDays int
	ShutdownTimeout        time.Duration
}

// LoadConfig reads the configuration from the environment. A .env file in
// the working directory is loaded first when present; variables already set
// in the environment win.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:             getEnv("HTTP_PORT", "8080"),
		DBHost:               getEnv("DB_HOST", "localhost"),
		DBPort:               getEnv("DB_PORT", "5432"),
		DBUser:               getEnv("DB_USER", "postgres"),
		DBPassword:           os.Getenv("DB_PASSWORD"),
		DBName:               getEnv("DB_NAME", "order_cycles"),
		DBSslMode:            getEnv("DB_SSLMODE", "disable"),
		LogLevel:             strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Environment:          strings.ToLower(getEnv("ENVIRONMENT", "development")),
		NotificationCronSpec: getEnv("NOTIFICATION_CRON_SPEC", "*/30 * * * * *"),
	}

	var err error
	if cfg.NotificationBatchSize, err = getEnvInt("NOTIFICATION_BATCH_SIZE", 20); err != nil {
		return Config{}, err
	}
	if cfg.ListingCloseWindowDays, err = getEnvInt("LISTING_CLOSE_WINDOW_DAYS", 31); err != nil {
		return Config{}, err
	}
	if cfg.NotificationTimeout, err = getEnvDuration("NOTIFICATION_TIMEOUT", time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}

	if cfg.NotificationBatchSize <= 0 {
		return Config{}, fmt.Errorf("NOTIFICATION_BATCH_SIZE must be positive, got %d", cfg.NotificationBatchSize)
	}
	if cfg.ListingCloseWindowDays <= 0 {
		return Config{}, fmt.Errorf("LISTING_CLOSE_WINDOW_DAYS must be positive, got %d", cfg.ListingCloseWindowDays)
	}

	return cfg, nil
}

// DSN is the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}

// ListingCloseWindow is how far back the listing looks for closed cycles by default.
func (c Config) ListingCloseWindow() time.Duration {
	return time.Duration(c.ListingCloseWindowDays) * 24 * time.Hour
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
