// Package server provides configuration helpers that define runtime defaults,
// file and environment overrides, and validation for the relay service.
package server

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// RateLimitConfig defines the parameters for per-connection message rate limiting.
type RateLimitConfig struct {
	Enabled        bool          `yaml:"enabled" envconfig:"ENABLED"`
	Burst          int           `yaml:"burst" envconfig:"BURST" validate:"required_if=Enabled true,gte=0"`
	RefillInterval time.Duration `yaml:"refill_interval" envconfig:"REFILLINTERVAL" validate:"gte=0"`
}

// Config holds the server configuration settings.
type Config struct {
	Addr            string          `yaml:"addr" envconfig:"SERVER_ADDR" validate:"required"`
	Path            string          `yaml:"path" envconfig:"CHAT_PATH" validate:"required,startswith=/"`
	AllowedOrigins  []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	MaxMessageSize  int64           `yaml:"max_message_size" envconfig:"MAX_MESSAGE_SIZE" validate:"gt=0"`
	QueueLimit      int             `yaml:"queue_limit" envconfig:"QUEUE_LIMIT" validate:"gte=0"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	PingInterval    time.Duration   `yaml:"ping_interval" envconfig:"PING_INTERVAL" validate:"gte=0"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
	LogLevel        string          `yaml:"log_level" envconfig:"LOG_LEVEL" validate:"oneof=DEBUG INFO WARN ERROR"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// NewConfig creates a Config instance populated with default values for all settings.
func NewConfig() *Config {
	return &Config{
		Addr:            "127.0.0.1:3030",
		Path:            "/chat",
		MaxMessageSize:  1 << 20,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		LogLevel:        "INFO",
		RateLimit: RateLimitConfig{
			Burst:          5,
			RefillInterval: time.Second,
		},
	}
}

// LoadConfig starts from the defaults, applies the YAML file at path when
// path is not empty, then environment variables, and validates the result.
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) normalize() {
	c.LogLevel = strings.ToUpper(strings.TrimSpace(c.LogLevel))
	for i := range c.AllowedOrigins {
		c.AllowedOrigins[i] = strings.TrimSpace(c.AllowedOrigins[i])
	}
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	return validate.Struct(c)
}
