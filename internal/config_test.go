package internal

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/iksnae/aichat/testutil"
)

func TestLoadConfig_Missing(t *testing.T) {
	dir := testutil.CreateTempDir(t)

	cfg, err := LoadConfig(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Provider != "" || cfg.Model != "" {
		t.Errorf("LoadConfig() on missing file = %+v, want empty config", cfg)
	}
}

func TestConfig_SaveAndLoad(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	path := filepath.Join(dir, "nested", "config.yaml")

	in := &Config{
		Provider:      "ollama",
		Model:         "llama2",
		BaseURL:       "http://localhost:11434",
		MaxFileSizeKB: 100,
	}
	if err := SaveConfig(path, in); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	out, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if out.Provider != "ollama" || out.Model != "llama2" {
		t.Errorf("LoadConfig() = %+v, want provider/model round-tripped", out)
	}
	if out.BaseURL != "http://localhost:11434" {
		t.Errorf("LoadConfig() BaseURL = %q", out.BaseURL)
	}
	if out.MaxFileSizeKB != 100 {
		t.Errorf("LoadConfig() MaxFileSizeKB = %d, want 100", out.MaxFileSizeKB)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	path := testutil.WriteTextFixture(t, dir, "config.yaml", "provider: [unclosed")

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() expected error for malformed YAML")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantErr   bool
		wantField string
	}{
		{
			name:    "complete openai",
			cfg:     Config{Provider: "openai", Model: "gpt-4", APIKey: "sk-test"},
			wantErr: false,
		},
		{
			name:    "provider defaults to openai",
			cfg:     Config{Model: "gpt-4", APIKey: "sk-test"},
			wantErr: false,
		},
		{
			name:      "missing model",
			cfg:       Config{Provider: "openai", APIKey: "sk-test"},
			wantErr:   true,
			wantField: "model",
		},
		{
			name:      "openai missing key",
			cfg:       Config{Provider: "openai", Model: "gpt-4"},
			wantErr:   true,
			wantField: "api_key",
		},
		{
			name:    "ollama needs no key",
			cfg:     Config{Provider: "ollama", Model: "llama2"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ce *ConfigError
				if !errors.As(err, &ce) {
					t.Fatalf("Validate() error = %T, want *ConfigError", err)
				}
				if ce.Field != tt.wantField {
					t.Errorf("Validate() field = %q, want %q", ce.Field, tt.wantField)
				}
			}
		})
	}
}

func TestConfig_Validate_FillsDefaults(t *testing.T) {
	cfg := Config{Model: "gpt-4", APIKey: "sk-test"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Provider != "openai" {
		t.Errorf("Validate() Provider = %q, want openai", cfg.Provider)
	}
	if cfg.MaxFileSizeKB != DefaultMaxFileSizeKB {
		t.Errorf("Validate() MaxFileSizeKB = %d, want %d", cfg.MaxFileSizeKB, DefaultMaxFileSizeKB)
	}
	if len(cfg.AllowedExtensions) == 0 {
		t.Error("Validate() should fill AllowedExtensions")
	}
}

func TestConfig_MaxFileSizeBytes(t *testing.T) {
	cfg := Config{MaxFileSizeKB: 50}
	if got := cfg.MaxFileSizeBytes(); got != 51200 {
		t.Errorf("MaxFileSizeBytes() = %d, want 51200", got)
	}
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"empty", "", "<not set>"},
		{"short key hidden entirely", "sk-12345", "<key hidden>"},
		{"long key masked", "sk-abcdefghijklmnop", "sk-a...mnop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskKey(tt.key); got != tt.want {
				t.Errorf("MaskKey(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
