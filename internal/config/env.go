package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvServerURL = "TAGGER_SERVER_URL"
	EnvTimeout   = "TAGGER_TIMEOUT"
	EnvLogLevel  = "TAGGER_LOG_LEVEL"
	EnvLogFile   = "TAGGER_LOG_FILE"
)

// Defaults used when neither the environment nor preferences say otherwise
const (
	DefaultServerURL = "http://localhost:8000"
	DefaultTimeout   = 30 * time.Second
	DefaultLogLevel  = "info"
)

// Env holds process configuration read from the environment
type Env struct {
	ServerURL string
	Timeout   time.Duration
	LogLevel  string
	LogFile   string

	// DotEnvLoaded is true when a .env file was read
	DotEnvLoaded bool
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// getEnvSeconds reads a positive number of seconds, falling back on parse errors.
func getEnvSeconds(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}

// LoadEnv loads configuration from environment variables, reading the given
// .env files first (".env" in the working directory when none are given).
// Existing environment variables are never overridden by the files.
func LoadEnv(files ...string) *Env {
	loaded := godotenv.Load(files...) == nil

	return &Env{
		ServerURL:    getEnv(EnvServerURL, DefaultServerURL),
		Timeout:      getEnvSeconds(EnvTimeout, DefaultTimeout),
		LogLevel:     getEnv(EnvLogLevel, DefaultLogLevel),
		LogFile:      getEnv(EnvLogFile, ""),
		DotEnvLoaded: loaded,
	}
}
