package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all Astra configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	Companion CompanionConfig `yaml:"companion"`
	Sentiment SentimentConfig `yaml:"sentiment"`
	Store     StoreConfig     `yaml:"store"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// CompanionConfig configures reply composition.
type CompanionConfig struct {
	Name         string `yaml:"name"`
	RecentWindow int    `yaml:"recent_window"`
	DefaultWorld string `yaml:"default_world"`

	// Seed fixes template selection; 0 means seed from the clock.
	Seed           uint64 `yaml:"seed"`
	PersistTimeout string `yaml:"persist_timeout"`
}

// SentimentConfig configures the polarity fallback service.
type SentimentConfig struct {
	Provider      string  `yaml:"provider"` // lexicon, gemini, http, none
	APIKey        string  `yaml:"api_key"`
	Model         string  `yaml:"model"`
	BaseURL       string  `yaml:"base_url"`
	Timeout       string  `yaml:"timeout"`
	RatePerSecond float64 `yaml:"rate_per_second"`
	Burst         int     `yaml:"burst"`
	MaxWait       string  `yaml:"max_wait"`
}

// StoreConfig configures SQLite persistence.
type StoreConfig struct {
	DatabasePath string `yaml:"database_path"`
	HistoryLimit int    `yaml:"history_limit"`
	MaxSessions  int    `yaml:"max_sessions"`
	SessionTTL   string `yaml:"session_ttl"`
}

// ValidProviders lists accepted sentiment providers.
var ValidProviders = []string{"lexicon", "gemini", "http", "none"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "Astra",
		Version: "1.0.0",
		Companion: CompanionConfig{
			Name:           "Astra",
			RecentWindow:   5,
			PersistTimeout: "5s",
		},
		Sentiment: SentimentConfig{
			Provider:      "lexicon",
			Model:         "gemini-2.5-flash",
			Timeout:       "10s",
			RatePerSecond: 2,
			Burst:         4,
			MaxWait:       "500ms",
		},
		Store: StoreConfig{
			DatabasePath: filepath.Join(".astra", "astra.db"),
			HistoryLimit: 20,
			MaxSessions:  256,
			SessionTTL:   "30m",
		},
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "text",
			DebugMode: false,
		},
	}
}

// Load reads configuration from a YAML file, then applies .env and
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
		// defaults
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// envOverrides is parsed from the process environment.
type envOverrides struct {
	GeminiAPIKey      string  `env:"GEMINI_API_KEY"`
	SentimentProvider string  `env:"ASTRA_SENTIMENT_PROVIDER"`
	SentimentURL      string  `env:"ASTRA_SENTIMENT_URL"`
	SentimentKey      string  `env:"ASTRA_SENTIMENT_API_KEY"`
	SentimentRate     float64 `env:"ASTRA_SENTIMENT_RATE"`
	DatabasePath      string  `env:"ASTRA_DB"`
	LogLevel          string  `env:"ASTRA_LOG_LEVEL"`
	Debug             *bool   `env:"ASTRA_DEBUG"`
	Seed              uint64  `env:"ASTRA_SEED"`
}

// LoadDotEnv loads variables from the given .env files (default ".env").
// Missing files are not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	if o.GeminiAPIKey != "" {
		c.Sentiment.APIKey = o.GeminiAPIKey
		if c.Sentiment.Provider == "" || c.Sentiment.Provider == "lexicon" {
			c.Sentiment.Provider = "gemini"
		}
	}
	if o.SentimentURL != "" {
		c.Sentiment.BaseURL = o.SentimentURL
	}
	if o.SentimentKey != "" {
		c.Sentiment.APIKey = o.SentimentKey
	}
	if o.SentimentProvider != "" {
		c.Sentiment.Provider = o.SentimentProvider
	}
	if o.SentimentRate > 0 {
		c.Sentiment.RatePerSecond = o.SentimentRate
	}
	if o.DatabasePath != "" {
		c.Store.DatabasePath = o.DatabasePath
	}
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.Debug != nil {
		c.Logging.DebugMode = *o.Debug
	}
	if o.Seed != 0 {
		c.Companion.Seed = o.Seed
	}
	return nil
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return fallback
}

// GetSentimentTimeout returns the sentiment timeout as a duration.
func (c *Config) GetSentimentTimeout() time.Duration {
	return parseDuration(c.Sentiment.Timeout, 10*time.Second)
}

// GetSentimentMaxWait returns how long a call may wait for a rate token.
func (c *Config) GetSentimentMaxWait() time.Duration {
	return parseDuration(c.Sentiment.MaxWait, 500*time.Millisecond)
}

// GetPersistTimeout returns the per-exchange persistence timeout.
func (c *Config) GetPersistTimeout() time.Duration {
	return parseDuration(c.Companion.PersistTimeout, 5*time.Second)
}

// GetSessionTTL returns the idle session lifetime.
func (c *Config) GetSessionTTL() time.Duration {
	return parseDuration(c.Store.SessionTTL, 30*time.Minute)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	valid := false
	for _, p := range ValidProviders {
		if c.Sentiment.Provider == p {
			valid = true
			break
		}
	}
	if !valid {
		errs = append(errs, fmt.Errorf("invalid sentiment provider: %s (valid: %v)", c.Sentiment.Provider, ValidProviders))
	}

	switch c.Sentiment.Provider {
	case "gemini":
		if c.Sentiment.APIKey == "" {
			errs = append(errs, fmt.Errorf("sentiment provider gemini requires an API key (set GEMINI_API_KEY)"))
		}
	case "http":
		if c.Sentiment.BaseURL == "" {
			errs = append(errs, fmt.Errorf("sentiment provider http requires base_url"))
		}
	}

	if c.Companion.RecentWindow <= 0 {
		errs = append(errs, fmt.Errorf("companion.recent_window must be positive, got %d", c.Companion.RecentWindow))
	}
	if c.Store.DatabasePath == "" {
		errs = append(errs, fmt.Errorf("store.database_path is required"))
	}

	return errors.Join(errs...)
}
