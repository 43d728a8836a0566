package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("TICKVAULT_API_URL", "")
	t.Setenv("TICKVAULT_USERNAME", "")
	t.Setenv("TICKVAULT_PASSWORD", "")
	t.Setenv("TICKVAULT_TIMEOUT_SEC", "")

	cfg := FromEnv()
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("expected default api url, got %q", cfg.APIURL)
	}
	if cfg.TimeoutSec != DefaultTimeoutSec {
		t.Errorf("expected default timeout, got %d", cfg.TimeoutSec)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must be valid: %v", err)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("TICKVAULT_API_URL", "https://tickvault.example.com")
	t.Setenv("TICKVAULT_USERNAME", "admin")
	t.Setenv("TICKVAULT_PASSWORD", "secret")
	t.Setenv("TICKVAULT_TIMEOUT_SEC", "60")

	cfg := FromEnv()
	if cfg.APIURL != "https://tickvault.example.com" {
		t.Errorf("unexpected api url: %q", cfg.APIURL)
	}
	if cfg.Username != "admin" || cfg.Password != "secret" {
		t.Errorf("unexpected credentials: %q/%q", cfg.Username, cfg.Password)
	}
	if cfg.TimeoutSec != 60 {
		t.Errorf("unexpected timeout: %d", cfg.TimeoutSec)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TICKVAULT_TEST_PASSWORD", "from-env")

	path := filepath.Join(t.TempDir(), "config.yml")
	data := "api_url: https://tickvault.example.com\nusername: admin\npassword: ${TICKVAULT_TEST_PASSWORD}\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Password != "from-env" {
		t.Errorf("expected ${VAR} expansion, got %q", cfg.Password)
	}
	// Незаданный таймаут получает значение по умолчанию
	if cfg.TimeoutSec != DefaultTimeoutSec {
		t.Errorf("expected default timeout, got %d", cfg.TimeoutSec)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{APIURL: "ftp://example.com", TimeoutSec: 30}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidAPIURL) {
		t.Errorf("expected ErrInvalidAPIURL for bad scheme, got %v", err)
	}

	cfg = &Config{APIURL: "http://localhost:8080", Password: "secret", TimeoutSec: 30}
	if err := cfg.Validate(); !errors.Is(err, ErrPasswordWithoutUsername) {
		t.Errorf("expected ErrPasswordWithoutUsername, got %v", err)
	}

	cfg = &Config{APIURL: "http://localhost:8080", Username: "admin", Password: "secret", TimeoutSec: 30}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
