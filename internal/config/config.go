// Package config provides configuration management for the autocomplete CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/autocomplete"
)

// Config represents the autocomplete CLI configuration.
type Config struct {
	Message          string `yaml:"message"`            // Question shown before the input line
	SuggestOnly      bool   `yaml:"suggest_only"`       // Answer with the typed text instead of a list pick
	Default          string `yaml:"default"`            // Initial line or empty-submit value
	PageSize         int    `yaml:"page_size"`          // Candidates shown per page
	SearchingMessage string `yaml:"searching_message"`  // Shown while a slow search runs ("" disables)
	NoResultMessage  string `yaml:"no_result_message"`  // Shown for an empty result ("" disables)
	DebounceMs       int    `yaml:"debounce_ms"`        // Quiet window after an edit before searching
	SearchingDelayMs int    `yaml:"searching_delay_ms"` // Delay before the searching indicator
	Theme            string `yaml:"theme"`              // Built-in color scheme name
	Delimiters       string `yaml:"delimiters"`         // Token delimiter class for --token mode
	Limit            int    `yaml:"limit"`              // Max candidates per search (0 = no limit)
	LogLevel         string `yaml:"log_level"`          // debug, info, warn, error
	LogFile          string `yaml:"log_file"`           // Log file path (empty = no logging)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Message:          "Select",
		SuggestOnly:      false,
		PageSize:         autocomplete.DefaultPageSize,
		SearchingMessage: autocomplete.DefaultSearchingMessage,
		NoResultMessage:  autocomplete.DefaultNoResultMessage,
		DebounceMs:       int(autocomplete.DefaultDebounce / time.Millisecond),
		SearchingDelayMs: int(autocomplete.DefaultSearchingDelay / time.Millisecond),
		Theme:            "default",
		Delimiters:       `\s`,
		Limit:            0,
		LogLevel:         "info",
		LogFile:          "", // Logging disabled
	}
}

// DefaultPath returns the config file location, following the XDG Base
// Directory layout on Unix-like systems and %APPDATA% on Windows.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, "autocomplete", "config.yaml")
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "autocomplete", "config.yaml")
}

// LoadFromFile loads the configuration from path. A missing file yields the
// defaults.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnvOverrides()
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves the configuration to the specified file.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Message == "" {
		return errors.New("message must not be empty")
	}
	if c.PageSize <= 0 {
		return errors.New("page_size must be > 0")
	}
	if c.DebounceMs < 0 {
		return errors.New("debounce_ms must be >= 0")
	}
	if c.SearchingDelayMs < 0 {
		return errors.New("searching_delay_ms must be >= 0")
	}
	if c.Limit < 0 {
		return errors.New("limit must be >= 0")
	}
	if !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("log_level must be debug, info, warn, or error (got: %s)", c.LogLevel)
	}
	if _, err := autocomplete.ThemeByName(c.Theme); err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	return nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// ApplyEnvOverrides applies environment variable overrides to the config.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("AUTOCOMPLETE_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			c.LogLevel = "debug"
		}
	}
	if v := os.Getenv("AUTOCOMPLETE_LOG_LEVEL"); v != "" {
		if isValidLogLevel(v) {
			c.LogLevel = v
		}
	}
	if v := os.Getenv("AUTOCOMPLETE_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("AUTOCOMPLETE_THEME"); v != "" {
		c.Theme = v
	}
}

// Debounce returns debounce_ms as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// SearchingDelay returns searching_delay_ms as a duration.
func (c *Config) SearchingDelay() time.Duration {
	return time.Duration(c.SearchingDelayMs) * time.Millisecond
}

// Options translates the configuration into prompt options.
func (c *Config) Options() ([]autocomplete.Option, error) {
	theme, err := autocomplete.ThemeByName(c.Theme)
	if err != nil {
		return nil, err
	}

	opts := []autocomplete.Option{
		autocomplete.WithPageSize(c.PageSize),
		autocomplete.WithSearchingMessage(c.SearchingMessage),
		autocomplete.WithNoResultMessage(c.NoResultMessage),
		autocomplete.WithDebounce(c.Debounce()),
		autocomplete.WithSearchingDelay(c.SearchingDelay()),
		autocomplete.WithColorScheme(theme),
	}
	if c.Default != "" {
		opts = append(opts, autocomplete.WithDefault(c.Default))
	}
	if c.SuggestOnly {
		opts = append(opts, autocomplete.WithSuggestOnly())
	}
	return opts, nil
}
