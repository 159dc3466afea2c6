package provider

import (
	"errors"
	"os"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantName string
		wantErr  bool
	}{
		{
			name:     "openai explicit",
			opts:     Options{Provider: "openai", Model: "gpt-4", APIKey: "sk-test"},
			wantName: "openai",
		},
		{
			name:     "empty defaults to openai",
			opts:     Options{Model: "gpt-4", APIKey: "sk-test"},
			wantName: "openai",
		},
		{
			name:     "ollama",
			opts:     Options{Provider: "ollama", Model: "llama2"},
			wantName: "ollama",
		},
		{
			name:    "unsupported",
			opts:    Options{Provider: "anthropic", Model: "x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if p.Name() != tt.wantName {
				t.Errorf("New() provider name = %q, want %q", p.Name(), tt.wantName)
			}
		})
	}
}

func TestNew_OllamaBaseURL(t *testing.T) {
	original, had := os.LookupEnv("OLLAMA_HOST")
	defer func() {
		if had {
			os.Setenv("OLLAMA_HOST", original)
		} else {
			os.Unsetenv("OLLAMA_HOST")
		}
	}()

	p, err := New(Options{Provider: "ollama", Model: "llama2", BaseURL: "http://10.0.0.5:11434"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p.Name() != "ollama" {
		t.Errorf("New() provider name = %q, want ollama", p.Name())
	}
	if got := os.Getenv("OLLAMA_HOST"); got != "http://10.0.0.5:11434" {
		t.Errorf("OLLAMA_HOST = %q, want the configured base URL", got)
	}
}

func TestError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &Error{Provider: "ollama", Err: cause}

	want := "ollama error: connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Error("Error should unwrap to its cause")
	}
}
