// Package provider abstracts the remote LLM capability behind a single
// interface: an ordered, role-tagged message history in, one assistant
// reply out. Engine code never branches on provider identity.
package provider

import (
	"context"
	"fmt"
)

// Message is one role-tagged turn of the request history
type Message struct {
	Role    string
	Content string
}

// Provider converts an ordered message history into an assistant reply
type Provider interface {
	Name() string
	Complete(ctx context.Context, messages []Message, temperature float32) (string, error)
}

// Error wraps a provider failure with a human-readable cause
type Error struct {
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Options selects and configures a concrete provider at startup
type Options struct {
	Provider string // "openai" (default) or "ollama"
	Model    string
	APIKey   string
	BaseURL  string
}

// New builds the configured provider. Selection happens exactly once here.
func New(opts Options) (Provider, error) {
	switch opts.Provider {
	case "", "openai":
		return newOpenAI(opts), nil
	case "ollama":
		return newOllama(opts)
	default:
		return nil, fmt.Errorf("unsupported provider: %s (supported: openai, ollama)", opts.Provider)
	}
}
