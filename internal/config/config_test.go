package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "Select", cfg.Message)
	assert.False(t, cfg.SuggestOnly)
	assert.Equal(t, 7, cfg.PageSize)
	assert.Equal(t, "Searching...", cfg.SearchingMessage)
	assert.Equal(t, "No results...", cfg.NoResultMessage)
	assert.Equal(t, 400, cfg.DebounceMs)
	assert.Equal(t, 300, cfg.SearchingDelayMs)
	assert.Equal(t, 400*time.Millisecond, cfg.Debounce())
	assert.Equal(t, 300*time.Millisecond, cfg.SearchingDelay())
	assert.Equal(t, "default", cfg.Theme)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().PageSize, cfg.PageSize)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `message: "Pick a branch"
suggest_only: true
page_size: 12
debounce_ms: 50
theme: dracula
delimiters: '\s,'
limit: 100
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Pick a branch", cfg.Message)
	assert.True(t, cfg.SuggestOnly)
	assert.Equal(t, 12, cfg.PageSize)
	assert.Equal(t, 50, cfg.DebounceMs)
	assert.Equal(t, "dracula", cfg.Theme)
	assert.Equal(t, `\s,`, cfg.Delimiters)
	assert.Equal(t, 100, cfg.Limit)
	// Unset keys keep their defaults
	assert.Equal(t, 300, cfg.SearchingDelayMs)
	assert.Equal(t, "Searching...", cfg.SearchingMessage)
}

func TestLoadFromFileErrors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("page_size: [oops"), 0o600))
	_, err := LoadFromFile(bad)
	assert.ErrorContains(t, err, "failed to parse config file")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("page_size: 0\n"), 0o600))
	_, err = LoadFromFile(invalid)
	assert.ErrorContains(t, err, "invalid config: page_size must be > 0")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "empty message", mutate: func(c *Config) { c.Message = "" }, wantErr: "message must not be empty"},
		{name: "negative debounce", mutate: func(c *Config) { c.DebounceMs = -1 }, wantErr: "debounce_ms must be >= 0"},
		{name: "negative delay", mutate: func(c *Config) { c.SearchingDelayMs = -1 }, wantErr: "searching_delay_ms must be >= 0"},
		{name: "negative limit", mutate: func(c *Config) { c.Limit = -5 }, wantErr: "limit must be >= 0"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "log_level must be"},
		{name: "unknown theme", mutate: func(c *Config) { c.Theme = "neon" }, wantErr: "theme"},
		{name: "uncompilable delimiters are taken literally", mutate: func(c *Config) { c.Delimiters = `\` }},
		{name: "caret delimiters", mutate: func(c *Config) { c.Delimiters = "^" }},
		{name: "empty delimiters are fine", mutate: func(c *Config) { c.Delimiters = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("AUTOCOMPLETE_LOG_LEVEL", "warn")
	t.Setenv("AUTOCOMPLETE_LOG_FILE", "/tmp/ac.log")
	t.Setenv("AUTOCOMPLETE_THEME", "monokai")

	cfg := DefaultConfig()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "/tmp/ac.log", cfg.LogFile)
	assert.Equal(t, "monokai", cfg.Theme)

	t.Setenv("AUTOCOMPLETE_DEBUG", "true")
	t.Setenv("AUTOCOMPLETE_LOG_LEVEL", "")
	cfg.ApplyEnvOverrides()
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestSaveToFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Message = "Pick"
	cfg.Limit = 20
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDefaultPathHonoursXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if filepath.Separator != '/' {
		t.Skip("XDG layout is Unix-only")
	}
	assert.Equal(t, "/xdg/autocomplete/config.yaml", DefaultPath())
}

func TestOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SuggestOnly = true
	cfg.Default = "main"

	opts, err := cfg.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 8)

	cfg.Theme = "neon"
	_, err = cfg.Options()
	assert.Error(t, err)
}
