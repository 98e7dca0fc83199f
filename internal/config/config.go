// Package config loads application configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/fx"
)

// Module provides the loaded configuration.
var Module = fx.Module("config",
	fx.Provide(Load),
)

type DatabaseConfig struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

type ReminderConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

type TracingConfig struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	SamplingRatio    float64
}

type Config struct {
	Environment    string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string

	// OwnerAPIKey is the single authorized user's key. The app is
	// single-tenant: there is no user management beyond this.
	OwnerAPIKey string

	Database DatabaseConfig
	Reminder ReminderConfig
	Tracing  TracingConfig

	ExportRateLimit  int
	ExportRateWindow time.Duration
}

// Load reads configuration from FAKTUR_* environment variables,
// falling back to development defaults.
func Load() *Config {
	return &Config{
		Environment:    getEnv("FAKTUR_ENV", "development"),
		ServiceName:    getEnv("FAKTUR_SERVICE_NAME", "faktur"),
		ServiceVersion: getEnv("FAKTUR_SERVICE_VERSION", "dev"),
		HTTPAddr:       getEnv("FAKTUR_HTTP_ADDR", ":8080"),
		OwnerAPIKey:    strings.TrimSpace(os.Getenv("FAKTUR_OWNER_API_KEY")),
		Database: DatabaseConfig{
			Driver:       getEnv("FAKTUR_DB_DRIVER", "sqlite"),
			DSN:          getEnv("FAKTUR_DB_DSN", "faktur.db"),
			MaxOpenConns: getEnvInt("FAKTUR_DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvInt("FAKTUR_DB_MAX_IDLE_CONNS", 5),
		},
		Reminder: ReminderConfig{
			Endpoint: strings.TrimSpace(os.Getenv("FAKTUR_REMINDER_ENDPOINT")),
			APIKey:   strings.TrimSpace(os.Getenv("FAKTUR_REMINDER_API_KEY")),
			Timeout:  getEnvDuration("FAKTUR_REMINDER_TIMEOUT", 15*time.Second),
		},
		Tracing: TracingConfig{
			Enabled:          getEnvBool("FAKTUR_TRACING_ENABLED", false),
			ExporterEndpoint: strings.TrimSpace(os.Getenv("FAKTUR_TRACING_ENDPOINT")),
			ExporterProtocol: getEnv("FAKTUR_TRACING_PROTOCOL", "http"),
			SamplingRatio:    getEnvFloat("FAKTUR_TRACING_SAMPLING_RATIO", 1.0),
		},
		ExportRateLimit:  getEnvInt("FAKTUR_EXPORT_RATE_LIMIT", 30),
		ExportRateWindow: getEnvDuration("FAKTUR_EXPORT_RATE_WINDOW", time.Minute),
	}
}

// IsProduction reports whether the app runs with production hardening.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key))); err == nil {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64); err == nil {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key))); err == nil {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key))); err == nil && value > 0 {
		return value
	}
	return fallback
}
