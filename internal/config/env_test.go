package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadEnv_Defaults(t *testing.T) {
	t.Setenv(EnvServerURL, "")
	t.Setenv(EnvTimeout, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogFile, "")

	env := LoadEnv(filepath.Join(t.TempDir(), "missing.env"))

	if env.ServerURL != DefaultServerURL {
		t.Errorf("Expected server URL %s, got %s", DefaultServerURL, env.ServerURL)
	}
	if env.Timeout != DefaultTimeout {
		t.Errorf("Expected timeout %v, got %v", DefaultTimeout, env.Timeout)
	}
	if env.LogLevel != DefaultLogLevel {
		t.Errorf("Expected log level %s, got %s", DefaultLogLevel, env.LogLevel)
	}
	if env.LogFile != "" {
		t.Errorf("Expected empty log file, got %s", env.LogFile)
	}
	if env.DotEnvLoaded {
		t.Error("Missing .env file should not be reported as loaded")
	}
}

func TestLoadEnv_FromVariables(t *testing.T) {
	t.Setenv(EnvServerURL, "http://backend:8080")
	t.Setenv(EnvTimeout, "5")
	t.Setenv(EnvLogLevel, "debug")

	env := LoadEnv(filepath.Join(t.TempDir(), "missing.env"))

	if env.ServerURL != "http://backend:8080" {
		t.Errorf("Expected server URL from env, got %s", env.ServerURL)
	}
	if env.Timeout != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %v", env.Timeout)
	}
	if env.LogLevel != "debug" {
		t.Errorf("Expected debug level, got %s", env.LogLevel)
	}
}

func TestLoadEnv_InvalidTimeout(t *testing.T) {
	t.Setenv(EnvTimeout, "soon")

	env := LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	if env.Timeout != DefaultTimeout {
		t.Errorf("Expected default timeout for invalid value, got %v", env.Timeout)
	}
}

func TestLoadEnv_DotEnvFile(t *testing.T) {
	// Empty value so the file is allowed to fill it in
	t.Setenv(EnvLogFile, "")
	os.Unsetenv(EnvLogFile)

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte(EnvLogFile+"=/var/log/tagger.log\n"), 0644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	env := LoadEnv(path)

	if !env.DotEnvLoaded {
		t.Error("Expected .env file to be reported as loaded")
	}
	if env.LogFile != "/var/log/tagger.log" {
		t.Errorf("Expected log file from .env, got %q", env.LogFile)
	}
}
