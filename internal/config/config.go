// Package config loads mockforge user configuration. Settings live in a
// JSON file (default ~/.mockforge/config.json); a missing file yields
// defaults so the tool works with nothing but an API key in the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all mockforge configuration.
type Config struct {
	// Generation service
	Provider    string  `json:"provider"`    // gemini (SSE) or genai (SDK)
	APIKey      string  `json:"api_key"`
	Model       string  `json:"model"`
	BaseURL     string  `json:"base_url"`
	Temperature float64 `json:"temperature"`
	Timeout     string  `json:"timeout"` // Go duration string, e.g. "5m"

	// Engine
	FanOut int `json:"fan_out"` // variants per prompt

	// Persistence
	VaultPath string `json:"vault_path"`

	// Logging
	Logging LoggingConfig `json:"logging"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `json:"level"` // debug/info/warn/error
	JSON  bool   `json:"json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Provider:    "gemini",
		Model:       "gemini-2.5-flash",
		Temperature: 1.0,
		Timeout:     "5m",
		FanOut:      3,
		VaultPath:   filepath.Join(home, ".mockforge", "vault.db"),
		Logging:     LoggingConfig{Level: "info"},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".mockforge", "config.json")
	}
	return filepath.Join(home, ".mockforge", "config.json")
}

// Load reads the config file at path, layering it over defaults and then
// applying environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyEnv()

	if cfg.FanOut <= 0 {
		cfg.FanOut = 3
	}
	return cfg, nil
}

// applyEnv lets environment variables override file settings. The API key
// env fallback (GEMINI_API_KEY / GOOGLE_API_KEY) is resolved by the llm
// client factory, not here, so an empty api_key in the file stays empty.
func (c *Config) applyEnv() {
	if v := os.Getenv("MOCKFORGE_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("MOCKFORGE_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("MOCKFORGE_VAULT"); v != "" {
		c.VaultPath = v
	}
	if v := os.Getenv("MOCKFORGE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Save writes the config to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
