package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Kaggle.BaseURL != "https://www.kaggle.com/api/v1" {
		t.Errorf("unexpected base URL: %s", cfg.Kaggle.BaseURL)
	}
	if cfg.RateLimit.RequestsPerMinute != 60 {
		t.Errorf("unexpected requests per minute: %d", cfg.RateLimit.RequestsPerMinute)
	}
	if cfg.Harvest.Language != "python" {
		t.Errorf("unexpected language: %s", cfg.Harvest.Language)
	}
	if cfg.Harvest.PageSize != 100 {
		t.Errorf("unexpected page size: %d", cfg.Harvest.PageSize)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("KAGGLE_USERNAME", "envuser")
	t.Setenv("KAGGLE_KEY", "envkey")
	t.Setenv("KAGGLEFETCH_LANGUAGE", "r")
	t.Setenv("KAGGLEFETCH_REQUESTS_PER_MINUTE", "30")
	t.Setenv("KAGGLEFETCH_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	if err := cfg.LoadFromEnv(); err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}

	if cfg.Kaggle.Username != "envuser" {
		t.Errorf("username not loaded: %s", cfg.Kaggle.Username)
	}
	if cfg.Kaggle.Key != "envkey" {
		t.Errorf("key not loaded: %s", cfg.Kaggle.Key)
	}
	if cfg.Harvest.Language != "r" {
		t.Errorf("language not loaded: %s", cfg.Harvest.Language)
	}
	if cfg.RateLimit.RequestsPerMinute != 30 {
		t.Errorf("requests per minute not loaded: %d", cfg.RateLimit.RequestsPerMinute)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level not loaded: %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `
kaggle:
  username: fileuser
  key: filekey
rate_limit:
  requests_per_minute: 20
  retry_delay: 2s
harvest:
  language: python
  page_size: 50
logging:
  level: warn
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg := DefaultConfig()
	if err := cfg.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Kaggle.Username != "fileuser" {
		t.Errorf("username not loaded: %s", cfg.Kaggle.Username)
	}
	if cfg.RateLimit.RequestsPerMinute != 20 {
		t.Errorf("requests per minute not loaded: %d", cfg.RateLimit.RequestsPerMinute)
	}
	if cfg.RateLimit.RetryDelay != 2*time.Second {
		t.Errorf("retry delay not loaded: %v", cfg.RateLimit.RetryDelay)
	}
	if cfg.Harvest.PageSize != 50 {
		t.Errorf("page size not loaded: %d", cfg.Harvest.PageSize)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("log level not loaded: %s", cfg.Logging.Level)
	}

	// Fields absent from the file keep their defaults
	if cfg.Kaggle.BaseURL != "https://www.kaggle.com/api/v1" {
		t.Errorf("base URL should keep default: %s", cfg.Kaggle.BaseURL)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("kaggle: [not a mapping"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := cfg.LoadFromFile(bad); err == nil {
		t.Error("expected error for malformed config file")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	content := `
kaggle:
  username: fileuser
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("KAGGLE_USERNAME", "envuser")

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Kaggle.Username != "envuser" {
		t.Errorf("environment should override file, got %s", cfg.Kaggle.Username)
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("KAGGLEFETCH_LANGUAGE", "r")

	cfg, err := Load("", map[string]interface{}{
		"language":  "python",
		"log-level": "debug",
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Harvest.Language != "python" {
		t.Errorf("flags should override environment, got %s", cfg.Harvest.Language)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level flag not applied: %s", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"missing base URL", func(c *Config) { c.Kaggle.BaseURL = "" }, "base URL"},
		{"zero rpm", func(c *Config) { c.RateLimit.RequestsPerMinute = 0 }, "requests per minute"},
		{"negative retries", func(c *Config) { c.RateLimit.MaxRetries = -1 }, "max retries"},
		{"empty language", func(c *Config) { c.Harvest.Language = "" }, "language"},
		{"zero page size", func(c *Config) { c.Harvest.PageSize = 0 }, "page size"},
		{"zero timeout", func(c *Config) { c.Harvest.RequestTimeout = 0 }, "timeout"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateCredentialsOptional(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Kaggle.Username = ""
	cfg.Kaggle.Key = ""

	// Credentials may come from the credential manager later
	if err := cfg.Validate(); err != nil {
		t.Errorf("config without credentials should validate: %v", err)
	}
}
