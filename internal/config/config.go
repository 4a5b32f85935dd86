package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mcoot/wordbingo/internal/services/auth"
	"github.com/mcoot/wordbingo/internal/services/feedback"
	"github.com/mcoot/wordbingo/internal/services/lock"
	"github.com/mcoot/wordbingo/internal/storage"
	redisstorage "github.com/mcoot/wordbingo/internal/storage/redis"
)

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config holds the server configuration. Every field is read from the
// environment variable named in its tag.
type Config struct {
	Port        int    `mapstructure:"PORT"`
	StorageType string `mapstructure:"STORAGE_TYPE"`
	RedisURL    string `mapstructure:"REDIS_URL"`

	GameTTL time.Duration `mapstructure:"GAME_TTL"`
	LockTTL time.Duration `mapstructure:"LOCK_TTL"`

	SessionSecret string        `mapstructure:"SESSION_SECRET"`
	SessionTTL    time.Duration `mapstructure:"SESSION_TTL"`

	FeedbackAPIKey  string        `mapstructure:"FEEDBACK_API_KEY"`
	FeedbackBaseURL string        `mapstructure:"FEEDBACK_BASE_URL"`
	FeedbackModel   string        `mapstructure:"FEEDBACK_MODEL"`
	FeedbackTimeout time.Duration `mapstructure:"FEEDBACK_TIMEOUT"`

	HubCleanupInterval time.Duration `mapstructure:"HUB_CLEANUP_INTERVAL"`

	LogLevel string `mapstructure:"LOG_LEVEL"`
}

// defaults doubles as the list of keys read from the environment
var defaults = map[string]any{
	"PORT":                 8080,
	"STORAGE_TYPE":         StorageMemory,
	"REDIS_URL":            "",
	"GAME_TTL":             storage.DefaultGameTTL,
	"LOCK_TTL":             lock.DefaultTTL,
	"SESSION_SECRET":       auth.DefaultConfig().Secret,
	"SESSION_TTL":          auth.DefaultConfig().SessionDuration,
	"FEEDBACK_API_KEY":     "",
	"FEEDBACK_BASE_URL":    "",
	"FEEDBACK_MODEL":       "",
	"FEEDBACK_TIMEOUT":     feedback.DefaultTimeout,
	"HUB_CLEANUP_INTERVAL": time.Minute,
	"LOG_LEVEL":            "info",
}

// Load reads configuration from the environment. envFile, if non-empty
// and present, supplies values the environment does not set.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read %s: %w", envFile, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.StorageType = strings.ToLower(strings.TrimSpace(cfg.StorageType))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail later at startup
func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	switch c.StorageType {
	case StorageMemory:
	case StorageRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL required when STORAGE_TYPE=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_TYPE must be %q or %q, got %q", StorageMemory, StorageRedis, c.StorageType))
	}
	if c.GameTTL <= 0 {
		errs = append(errs, errors.New("GAME_TTL must be positive"))
	}
	if c.LockTTL <= 0 {
		errs = append(errs, errors.New("LOCK_TTL must be positive"))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SlogLevel parses LogLevel
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Redis returns the connection settings for the redis backend
func (c *Config) Redis() redisstorage.Config {
	cfg := redisstorage.DefaultConfig()
	cfg.URL = c.RedisURL
	return cfg
}

// Auth returns the session settings
func (c *Config) Auth() auth.Config {
	return auth.Config{
		Secret:          c.SessionSecret,
		SessionDuration: c.SessionTTL,
	}
}

// Feedback returns the completion client settings
func (c *Config) Feedback() feedback.OpenAIConfig {
	return feedback.OpenAIConfig{
		APIKey:  c.FeedbackAPIKey,
		BaseURL: c.FeedbackBaseURL,
		Model:   c.FeedbackModel,
	}
}

// FeedbackEnabled reports whether an API key was configured
func (c *Config) FeedbackEnabled() bool {
	return c.FeedbackAPIKey != ""
}
