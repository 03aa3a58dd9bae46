package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the Kaggle fetcher
type Config struct {
	// Kaggle API settings
	Kaggle KaggleConfig `yaml:"kaggle" json:"kaggle"`

	// Rate limiting configuration
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Harvest settings
	Harvest HarvestConfig `yaml:"harvest" json:"harvest"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// KaggleConfig holds Kaggle API configuration
type KaggleConfig struct {
	Username  string `yaml:"username" json:"username"`
	Key       string `yaml:"key" json:"key"`
	BaseURL   string `yaml:"base_url" json:"base_url"`
	UserAgent string `yaml:"user_agent" json:"user_agent"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" json:"requests_per_minute"`
	MaxRetries        int           `yaml:"max_retries" json:"max_retries"`
	RetryDelay        time.Duration `yaml:"retry_delay" json:"retry_delay"`
}

// HarvestConfig holds traversal settings shared by the kernels and notebooks commands
type HarvestConfig struct {
	// Language is the only kernel language accepted by the notebooks command.
	Language string `yaml:"language" json:"language"`

	// PageSize is the page size used when listing competitions and kernels.
	PageSize int `yaml:"page_size" json:"page_size"`

	// RequestTimeout bounds a single API call.
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Kaggle: KaggleConfig{
			BaseURL:   "https://www.kaggle.com/api/v1",
			UserAgent: "kagglefetch/1.0",
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 60,
			MaxRetries:        3,
			RetryDelay:        5 * time.Second,
		},
		Harvest: HarvestConfig{
			Language:       "python",
			PageSize:       100,
			RequestTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	// Kaggle credentials use the same variables as the official CLI
	if username := os.Getenv("KAGGLE_USERNAME"); username != "" {
		c.Kaggle.Username = username
	}
	if key := os.Getenv("KAGGLE_KEY"); key != "" {
		c.Kaggle.Key = key
	}
	if baseURL := os.Getenv("KAGGLEFETCH_BASE_URL"); baseURL != "" {
		c.Kaggle.BaseURL = baseURL
	}
	if userAgent := os.Getenv("KAGGLEFETCH_USER_AGENT"); userAgent != "" {
		c.Kaggle.UserAgent = userAgent
	}

	// Rate limiting
	if rpm := os.Getenv("KAGGLEFETCH_REQUESTS_PER_MINUTE"); rpm != "" {
		var val int
		fmt.Sscanf(rpm, "%d", &val)
		if val > 0 {
			c.RateLimit.RequestsPerMinute = val
		}
	}

	// Harvest settings
	if language := os.Getenv("KAGGLEFETCH_LANGUAGE"); language != "" {
		c.Harvest.Language = language
	}

	// Logging level
	if logLevel := os.Getenv("KAGGLEFETCH_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	// Check in order of precedence
	locations := []string{
		".kagglefetch.yaml",
		".kagglefetch.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "kagglefetch", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "kagglefetch", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".kagglefetch.yaml"),
		filepath.Join(os.Getenv("HOME"), ".kagglefetch.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid. Credentials are not checked
// here because they can also come from the credential manager at command time.
func (c *Config) Validate() error {
	var errs []error

	if c.Kaggle.BaseURL == "" {
		errs = append(errs, errors.New("Kaggle base URL is required"))
	}

	// Validate rate limiting
	if c.RateLimit.RequestsPerMinute <= 0 {
		errs = append(errs, errors.New("requests per minute must be positive"))
	}
	if c.RateLimit.MaxRetries < 0 {
		errs = append(errs, errors.New("max retries cannot be negative"))
	}

	// Validate harvest settings
	if c.Harvest.Language == "" {
		errs = append(errs, errors.New("kernel language is required"))
	}
	if c.Harvest.PageSize <= 0 {
		errs = append(errs, errors.New("page size must be positive"))
	}
	if c.Harvest.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}

	// Validate logging
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if username, ok := flags["username"].(string); ok && username != "" {
		c.Kaggle.Username = username
	}
	if key, ok := flags["key"].(string); ok && key != "" {
		c.Kaggle.Key = key
	}
	if rpm, ok := flags["requests-per-minute"].(int); ok && rpm > 0 {
		c.RateLimit.RequestsPerMinute = rpm
	}
	if language, ok := flags["language"].(string); ok && language != "" {
		c.Harvest.Language = language
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".env"))
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".kagglefetch.env"))

	// Start with defaults
	config := DefaultConfig()

	// Load from config file
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Override with command line flags
	config.MergeCommandLineFlags(flags)

	// Validate final configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
