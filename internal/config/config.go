package config

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Addr      string
	DBPath    string
	SensorKey string
	RateLimit int // ingest requests per remote per minute
	MockMode  bool
	Debug     bool
}

// Load parses command line flags and environment variables to populate Config.
// Flags take precedence over environment variables.
func Load() *Config {
	cfg := &Config{}

	// Defaults and Environment Variables
	cfg.Addr = getEnv("APSENTRY_ADDR", ":8080")
	cfg.DBPath = getEnv("APSENTRY_DB", getDefaultDBPath())
	cfg.SensorKey = getEnv("APSENTRY_SENSOR_KEY", "")
	cfg.RateLimit = getEnvInt("APSENTRY_RATE_LIMIT", 60)
	cfg.MockMode = getEnvBool("APSENTRY_MOCK", false)

	// Command Line Flags (Override Env)
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP server address")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite database")
	flag.StringVar(&cfg.SensorKey, "sensor-key", cfg.SensorKey, "Shared secret for sensor and API access (plain or bcrypt hash)")
	flag.IntVar(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "Ingest requests per remote per minute")
	flag.BoolVar(&cfg.MockMode, "mock", cfg.MockMode, "Run with in-memory storage (no SQLite)")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable verbose debug logging")

	flag.Parse()

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getDefaultDBPath returns the default database path in user's home directory.
// Creates the directory if it doesn't exist.
func getDefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Warning: Could not get user home directory, using current dir: %v", err)
		return "apsentry.db"
	}

	dir := filepath.Join(home, ".apsentry")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("Warning: Could not create .apsentry directory, using current dir: %v", err)
		return "apsentry.db"
	}

	return filepath.Join(dir, "apsentry.db")
}
