// Package config handles configuration loading and saving.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	configDirName  = ".helpdock"
	configFileName = "config.yaml"
)

var configDirOverride string

// SetConfigDir overrides the config directory for the current process.
// Empty value clears the override.
func SetConfigDir(dir string) {
	configDirOverride = strings.TrimSpace(dir)
}

// Config is the root configuration structure.
type Config struct {
	Service ServiceConfig `json:"service" yaml:"service"`
	Health  HealthConfig  `json:"health,omitempty" yaml:"health,omitempty"`
	Widget  WidgetConfig  `json:"widget" yaml:"widget"`
	Panel   PanelConfig   `json:"panel,omitempty" yaml:"panel,omitempty"`
	Texts   TextsConfig   `json:"texts,omitempty" yaml:"texts,omitempty"`
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// ServiceConfig locates the assistant service.
type ServiceConfig struct {
	BaseURL string        `json:"baseUrl" yaml:"baseUrl" env:"HELPDOCK_SERVICE_BASE_URL"`
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty" env:"HELPDOCK_SERVICE_TIMEOUT"` // 0 = no timeout
}

// HealthConfig controls the readiness poller.
type HealthConfig struct {
	Disabled      bool          `json:"disabled,omitempty" yaml:"disabled,omitempty" env:"HELPDOCK_HEALTH_DISABLED"`
	NotReadyDelay time.Duration `json:"notReadyDelay,omitempty" yaml:"notReadyDelay,omitempty"` // defaults to 5s
	FailureDelay  time.Duration `json:"failureDelay,omitempty" yaml:"failureDelay,omitempty"`   // defaults to 10s
}

// WidgetConfig contains widget session settings.
type WidgetConfig struct {
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	MaxMessages int    `json:"maxMessages" yaml:"maxMessages" env:"HELPDOCK_WIDGET_MAX_MESSAGES"` // 0 = unlimited
	ToggleKey   string `json:"toggleKey,omitempty" yaml:"toggleKey,omitempty" env:"HELPDOCK_WIDGET_TOGGLE_KEY"`
}

// PanelConfig sizes the floating panel, in terminal cells.
type PanelConfig struct {
	Width          int `json:"width,omitempty" yaml:"width,omitempty"`
	Height         int `json:"height,omitempty" yaml:"height,omitempty"`
	MinWidth       int `json:"minWidth,omitempty" yaml:"minWidth,omitempty"`
	MinHeight      int `json:"minHeight,omitempty" yaml:"minHeight,omitempty"`
	ViewportMargin int `json:"viewportMargin,omitempty" yaml:"viewportMargin,omitempty"`
	AnchorInset    int `json:"anchorInset,omitempty" yaml:"anchorInset,omitempty"`
}

// TextsConfig overrides user-visible strings. Empty values keep the
// built-in text.
type TextsConfig struct {
	Greeting      string `json:"greeting,omitempty" yaml:"greeting,omitempty"`
	ResetGreeting string `json:"resetGreeting,omitempty" yaml:"resetGreeting,omitempty"`
	Pending       string `json:"pending,omitempty" yaml:"pending,omitempty"`
	Unreachable   string `json:"unreachable,omitempty" yaml:"unreachable,omitempty"`
	ErrorPrefix   string `json:"errorPrefix,omitempty" yaml:"errorPrefix,omitempty"`
	ServiceFailed string `json:"serviceFailed,omitempty" yaml:"serviceFailed,omitempty"`
	WatchVideo    string `json:"watchVideo,omitempty" yaml:"watchVideo,omitempty"`
	VideoAlt      string `json:"videoAlt,omitempty" yaml:"videoAlt,omitempty"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Enabled *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Level   string `json:"level,omitempty" yaml:"level,omitempty" env:"HELPDOCK_LOG_LEVEL"` // debug, info, warn, error
	Format  string `json:"format,omitempty" yaml:"format,omitempty"`                        // text, json
	Stdout  bool   `json:"stdout,omitempty" yaml:"stdout,omitempty"`                        // log to stdout
	File    string `json:"file,omitempty" yaml:"file,omitempty"`                            // log file path
}

// ConfigDir returns the config directory, ~/.helpdock unless overridden.
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home dir: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// ConfigPath returns the path of the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file on top of the defaults and then applies
// environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit path.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the config to the config file, creating the directory.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile is Save for an explicit path.
func (c *Config) SaveFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
