package provider

import (
	"context"
	"os"
	"strings"

	"github.com/jmorganca/ollama/api"
)

// ollama talks to a local Ollama server. No API key is required.
type ollama struct {
	client *api.Client
	model  string
}

// The api package constructs its client solely from OLLAMA_HOST, so a
// configured base URL is exported there before construction. Without one the
// environment (or the package default, 127.0.0.1:11434) applies.
func newOllama(opts Options) (*ollama, error) {
	if opts.BaseURL != "" {
		if err := os.Setenv("OLLAMA_HOST", opts.BaseURL); err != nil {
			return nil, &Error{Provider: "ollama", Err: err}
		}
	}
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, &Error{Provider: "ollama", Err: err}
	}
	return &ollama{
		client: client,
		model:  opts.Model,
	}, nil
}

func (o *ollama) Name() string {
	return "ollama"
}

func (o *ollama) Complete(ctx context.Context, messages []Message, temperature float32) (string, error) {
	req := &api.ChatRequest{
		Model:  o.model,
		Stream: new(bool), // non-streaming: false
		Options: map[string]interface{}{
			"temperature": float64(temperature),
		},
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, api.Message{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	var sb strings.Builder
	err := o.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		sb.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", &Error{Provider: "ollama", Err: err}
	}
	return sb.String(), nil
}
