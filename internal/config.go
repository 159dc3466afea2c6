package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultAllowedExtensions mirrors the upload allow-list of the CLI:
// plain-text formats that are safe to inline into a prompt.
var DefaultAllowedExtensions = []string{
	".txt", ".md", ".py", ".json", ".csv", ".html", ".css", ".js",
	".yaml", ".yml", ".sh", ".xml", ".log", ".ini", ".cfg", ".toml", ".go",
}

// DefaultMaxFileSizeKB caps each staged file
const DefaultMaxFileSizeKB = 50

// Config holds the application settings. The core treats it as read-only;
// setup is the only writer.
type Config struct {
	Provider          string   `yaml:"provider"`
	Model             string   `yaml:"model"`
	APIKey            string   `yaml:"api_key,omitempty"`
	BaseURL           string   `yaml:"base_url,omitempty"`
	MaxFileSizeKB     int      `yaml:"max_file_size_kb,omitempty"`
	AllowedExtensions []string `yaml:"allowed_extensions,omitempty"`
}

// DefaultConfigPath returns ~/.aichat/config.yaml
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".aichat", "config.yaml"), nil
}

// LoadConfig reads the config file at path. A missing file yields an empty
// config; Validate decides whether that is fatal.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// SaveConfig writes the config to path, creating parent directories
func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// Validate checks required fields and fills defaults. Returns a ConfigError
// on the first missing precondition; callers treat it as fatal before any
// session work begins.
func (c *Config) Validate() error {
	if c.Provider == "" {
		c.Provider = "openai"
	}
	if c.Model == "" {
		return &ConfigError{Field: "model", Reason: "not set; run `aichat setup configure` first"}
	}
	if c.Provider == "openai" && c.APIKey == "" {
		return &ConfigError{Field: "api_key", Reason: "not set; run `aichat setup configure` first"}
	}
	if c.MaxFileSizeKB <= 0 {
		c.MaxFileSizeKB = DefaultMaxFileSizeKB
	}
	if len(c.AllowedExtensions) == 0 {
		c.AllowedExtensions = DefaultAllowedExtensions
	}
	return nil
}

// MaxFileSizeBytes returns the per-file staging cap in bytes
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeKB) * 1024
}

// MaskKey renders an API key for display without revealing it
func MaskKey(key string) string {
	if key == "" {
		return "<not set>"
	}
	if len(key) <= 8 {
		return "<key hidden>"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
