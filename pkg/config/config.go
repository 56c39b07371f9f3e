// Package config handles loading and validation of user configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sgaunet/gitci/internal/logger"
	"github.com/sgaunet/gitci/pkg/travis"
)

var (
	errConfigNotFound       = errors.New("config file not found")
	errWebhookURLMissing    = errors.New("webhook url is not set")
	errWebhookSecretMissing = errors.New("webhook secret is not set")
	errUnknownLogLevel      = errors.New("unknown log level")
)

// ErrConfigNotFound is returned by Load when no config file exists.
var ErrConfigNotFound = errConfigNotFound

// Config represents the complete configuration for gitci.
type Config struct {
	Webhook      WebhookConfig     `yaml:"webhook"`
	Organisation string            `yaml:"organisation"`
	Travis       travis.Settings   `yaml:"travis"`
	Secrets      map[string]string `yaml:"secrets"`
	LogLevel     string            `yaml:"log_level"`
}

// WebhookConfig describes the push webhook installed during setup.
type WebhookConfig struct {
	URL       string `yaml:"url"`
	Secret    string `yaml:"secret"`
	VerifySSL bool   `yaml:"verify_ssl"`
}

// Load reads and parses the configuration file from the user's home directory.
func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return LoadFile(filepath.Join(homeDir, ".config", "gitci", "config.yml"))
}

// LoadFile reads and parses the configuration file at path.
func LoadFile(path string) (*Config, error) {
	// #nosec G304 - Reading config from user's home directory is intentional
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errConfigNotFound, path)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Webhook.URL == "" {
		return errWebhookURLMissing
	}
	if c.Webhook.Secret == "" {
		return errWebhookSecretMissing
	}
	if c.LogLevel != "" && !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("%w: %s", errUnknownLogLevel, c.LogLevel)
	}
	return nil
}
