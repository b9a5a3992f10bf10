package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"sessionbook-backend/internal/catalog"
)

type Config struct {
	// Server
	Port     string
	Env      string
	LogLevel string

	// Frontend origins allowed by CORS
	FrontendURLs []string

	// Redis (optional; empty keeps the payment queue and event broker in process)
	RedisURL string

	// Booking flow
	PaymentDelay   time.Duration
	PaymentWorkers int
	BookingTTL     time.Duration
	SweepInterval  time.Duration
	TicketSecret   string

	// Catalog
	DefaultCity string

	// Rate limiting for mutating endpoints
	RateLimitPerMinute int
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnvOrDefault("PORT", "8080"),
		Env:                getEnvOrDefault("ENV", "development"),
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "info"),
		FrontendURLs:       getEnvAsListOrDefault("FRONTEND_URL", []string{"http://localhost:3000"}),
		RedisURL:           getEnvOrDefault("REDIS_URL", ""),
		PaymentDelay:       getEnvAsDurationOrDefault("PAYMENT_DELAY", 2*time.Second),
		PaymentWorkers:     getEnvAsIntOrDefault("PAYMENT_WORKERS", 2),
		BookingTTL:         getEnvAsDurationOrDefault("BOOKING_TTL", 30*time.Minute),
		SweepInterval:      getEnvAsDurationOrDefault("SWEEP_INTERVAL", time.Minute),
		TicketSecret:       getEnvOrDefault("TICKET_SECRET", ""),
		DefaultCity:        getEnvOrDefault("DEFAULT_CITY", "Miami"),
		RateLimitPerMinute: getEnvAsIntOrDefault("RATE_LIMIT_PER_MINUTE", 60),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %q", c.Port)
	}
	if c.PaymentDelay <= 0 {
		return fmt.Errorf("PAYMENT_DELAY must be positive, got %s", c.PaymentDelay)
	}
	if c.PaymentWorkers < 1 {
		return fmt.Errorf("PAYMENT_WORKERS must be positive, got %d", c.PaymentWorkers)
	}
	if c.BookingTTL <= 0 {
		return fmt.Errorf("BOOKING_TTL must be positive, got %s", c.BookingTTL)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be positive, got %s", c.SweepInterval)
	}
	if c.RateLimitPerMinute < 1 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimitPerMinute)
	}
	if !catalog.IsCity(c.DefaultCity) {
		return fmt.Errorf("DEFAULT_CITY %q is not a known city", c.DefaultCity)
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func getEnvAsListOrDefault(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
