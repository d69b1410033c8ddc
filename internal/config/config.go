package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the CLI.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Auth    AuthConfig
	Session SessionConfig
	Seed    SeedConfig
	Demo    DemoConfig
}

// AppConfig identifies the application.
type AppConfig struct {
	Name    string
	Env     string
	Version string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines session token parameters.
type AuthConfig struct {
	JWTSecret         string
	SessionTTLMinutes int
}

// SessionConfig locates the session token file.
type SessionConfig struct {
	FilePath string
}

// SeedConfig optionally points at a fixture overriding the built-in
// demo dataset.
type SeedConfig struct {
	FilePath string
}

// DemoConfig mirrors the original interface's cosmetic behavior.
type DemoConfig struct {
	SimulatedLatencyMS int
}

// Load reads configuration from environment variables, applying
// defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "helpdesk-core"),
			Env:     getEnv("APP_ENV", "development"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:         getEnv("AUTH_JWT_SECRET", "dev-secret"),
			SessionTTLMinutes: getEnvAsInt("AUTH_SESSION_TTL_MINUTES", 60),
		},
		Session: SessionConfig{
			FilePath: getEnv("SESSION_FILE", defaultSessionPath()),
		},
		Seed: SeedConfig{
			FilePath: os.Getenv("SEED_FILE"),
		},
		Demo: DemoConfig{
			SimulatedLatencyMS: getEnvAsInt("SIMULATED_LATENCY_MS", 0),
		},
	}
	return cfg, nil
}

// SimulatedLatency returns the cosmetic pre-result delay.
func (d DemoConfig) SimulatedLatency() time.Duration {
	if d.SimulatedLatencyMS <= 0 {
		return 0
	}
	return time.Duration(d.SimulatedLatencyMS) * time.Millisecond
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "helpdesk-session")
	}
	return filepath.Join(home, ".helpdesk", "session")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
